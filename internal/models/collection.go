// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Collection is a user-curated set of memes.
type Collection struct {
	ID          uint                       `gorm:"primaryKey" json:"id"`
	Name        string                     `gorm:"not null" json:"name"`
	Description string                     `json:"description"`
	AuthorID    uint                       `gorm:"not null;index" json:"author_id"`
	Author      User                       `gorm:"foreignKey:AuthorID" json:"author"`
	CoverImage  string                     `json:"cover_image"`
	IsPublic    bool                       `gorm:"not null;default:true;index" json:"is_public"`
	IsFeatured  bool                       `gorm:"not null;default:false;index" json:"is_featured"`
	Category    string                     `gorm:"index" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Memes       []Meme                     `gorm:"many2many:collection_memes" json:"memes,omitempty"`
	// MemesCount is not persisted; computed at query time
	MemesCount int            `gorm:"->;-:migration" json:"memes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CollectionMeme is the join row linking a collection to a meme.
type CollectionMeme struct {
	CollectionID uint      `gorm:"primaryKey" json:"collection_id"`
	MemeID       uint      `gorm:"primaryKey" json:"meme_id"`
	CreatedAt    time.Time `json:"created_at"`
}
