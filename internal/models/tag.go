package models

// Tag labels posts. Names are stored normalized (trimmed, lower-cased)
// and are globally unique; tags are created lazily the first time a post
// references them and are never garbage-collected.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}
