package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:             "development",
			Port:            "8080",
			JWTSecret:       "secure-secret-at-least-32-chars-long",
			DBPassword:      "secure-password",
			DBSSLMode:       "disable",
			MaxUsers:        2,
			MaxUploadSizeMB: 2,
		}
	}

	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		c := base()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := base()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("user cap must be positive", func(t *testing.T) {
		c := base()
		c.MaxUsers = 0
		assert.Error(t, c.Validate())
	})

	t.Run("upload size must be positive", func(t *testing.T) {
		c := base()
		c.MaxUploadSizeMB = 0
		assert.Error(t, c.Validate())
	})
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"default jwt secret rejected", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }, true},
		{"short jwt secret rejected", func(c *Config) { c.JWTSecret = "short" }, true},
		{"weak db password rejected", func(c *Config) { c.DBPassword = "password" }, true},
		{"strong settings accepted", func(c *Config) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:             "production",
				Port:            "8080",
				JWTSecret:       "secure-secret-at-least-32-chars-long",
				DBPassword:      "secure-password",
				DBSSLMode:       "require",
				MaxUsers:        2,
				MaxUploadSizeMB: 2,
			}
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
