package models

import (
	"time"

	"feedsvc/internal/hypermedia"
)

// Post is a feed entry owned by exactly one creator. The creator and the
// creation timestamp are assigned once and never mutated afterwards.
type Post struct {
	PostID    int       `gorm:"column:post_id;primaryKey" json:"post_id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      *string   `json:"body"`
	ImageURL  *string   `json:"image_url"`
	CreatedBy int       `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	// Interests is not persisted on this table; joined through post_interests at read time
	Interests []Interest `gorm:"-" json:"interests"`
	// Links carries the hypermedia relations of the resource (computed per response)
	Links hypermedia.Links `gorm:"-" json:"links,omitempty"`
}

// TableName overrides the default pluralization to match the feed schema.
func (Post) TableName() string { return "posts" }
