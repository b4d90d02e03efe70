// Package validation contains input validation rules for API payloads.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 8

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}

// ValidatePassword enforces minimum password strength.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// RegisterInput is the untrusted registration payload before validation.
type RegisterInput struct {
	Name      string
	Age       int
	BirthDate string
	Phone     string
	Email     string
	Password  string
}

// ValidateRegister returns field-level messages for every invalid
// registration field, or an empty map when the input is acceptable.
func ValidateRegister(in RegisterInput) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if in.Age < 1 {
		fields["age"] = "age must be at least 1"
	}
	if strings.TrimSpace(in.BirthDate) == "" {
		fields["birth_date"] = "birth date is required"
	}
	if strings.TrimSpace(in.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if err := ValidateEmail(in.Email); err != nil {
		fields["email"] = err.Error()
	}
	if err := ValidatePassword(in.Password); err != nil {
		fields["password"] = err.Error()
	}

	return fields
}
