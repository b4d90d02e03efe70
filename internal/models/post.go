// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a published article in the Inkwell application.
// Deletion is logical: a soft-deleted post keeps its row but is
// excluded from every normal query.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Subtitle string `gorm:"size:255" json:"subtitle"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Author   string `gorm:"size:255;not null;index" json:"author"`
	// Image is the blob-store path of the attached image, empty when none.
	Image     string         `json:"image"`
	Tags      []Tag          `gorm:"many2many:post_tags" json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TagNames returns the names of the post's loaded tags in order.
func (p *Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}
