package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. The password column holds a
// bcrypt hash and is never serialized.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Age       int            `gorm:"not null" json:"age"`
	BirthDate time.Time      `gorm:"not null" json:"birth_date"`
	Phone     string         `gorm:"not null" json:"phone"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
