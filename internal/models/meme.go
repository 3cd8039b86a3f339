// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Media types for a meme.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Aspect ratio presentation hints.
const (
	AspectRatioNormal = "normal"
	AspectRatioReel   = "reel"
)

// Meme lifecycle states. Active memes are visible in listings; inactive memes
// are hidden by moderation; deleted is terminal and cascades comment removal.
const (
	MemeStatusActive   = "active"
	MemeStatusInactive = "inactive"
	MemeStatusDeleted  = "deleted"
)

// Meme represents one uploaded meme.
type Meme struct {
	ID          uint                       `gorm:"primaryKey" json:"id"`
	Title       string                     `gorm:"not null" json:"title"`
	MediaURL    string                     `gorm:"not null" json:"media_url"`
	MediaType   string                     `gorm:"not null;default:image" json:"media_type"`
	AspectRatio string                     `gorm:"not null;default:normal" json:"aspect_ratio"`
	AuthorID    uint                       `gorm:"not null;index" json:"author_id"`
	Author      User                       `gorm:"foreignKey:AuthorID" json:"author"`
	Views       int                        `gorm:"not null;default:0" json:"views"`
	Shares      int                        `gorm:"not null;default:0" json:"shares"`
	Categories  datatypes.JSONSlice[string] `json:"categories"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Status      string                     `gorm:"not null;default:active;index" json:"status"`
	// TrendingScore is materialized lazily; zero means "never computed".
	TrendingScore int `gorm:"not null;default:0;index" json:"trending_score"`
	// LikesCount, DislikesCount and CommentsCount are not persisted; computed
	// at query time. -:migration keeps them out of the schema so the ORDER BY
	// aliases in the listing query never collide with real columns.
	LikesCount    int `gorm:"->;-:migration" json:"likes_count"`
	DislikesCount int `gorm:"->;-:migration" json:"dislikes_count"`
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this meme (computed)
	Liked     bool           `gorm:"->;-:migration" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Sort options accepted by the meme listing. Unknown values fall back to
// SortNewest silently.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortTrending   = "trending"
	SortPopular    = "popular"
	SortMostViewed = "mostViewed"
)

// MemeView is the flattened projection returned by listing and detail
// endpoints. It strips internal-only fields and substitutes a placeholder
// author when the author record is missing.
type MemeView struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	MediaURL      string       `json:"media_url"`
	MediaType     string       `json:"media_type"`
	AspectRatio   string       `json:"aspect_ratio"`
	Author        PublicAuthor `json:"author"`
	LikesCount    int          `json:"likes_count"`
	DislikesCount int          `json:"dislikes_count"`
	Views         int          `json:"views"`
	Shares        int          `json:"shares"`
	Categories    []string     `json:"categories"`
	Tags          []string     `json:"tags"`
	TrendingScore int          `json:"trending_score"`
	CommentsCount int          `json:"comments_count"`
	Liked         bool         `json:"liked"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ViewOf projects a meme into its public view form.
func ViewOf(m *Meme) MemeView {
	v := MemeView{
		ID:            m.ID,
		Title:         m.Title,
		MediaURL:      m.MediaURL,
		MediaType:     m.MediaType,
		AspectRatio:   m.AspectRatio,
		Author:        PublicAuthorOf(&m.Author),
		LikesCount:    m.LikesCount,
		DislikesCount: m.DislikesCount,
		Views:         m.Views,
		Shares:        m.Shares,
		Categories:    m.Categories,
		Tags:          m.Tags,
		TrendingScore: m.TrendingScore,
		CommentsCount: m.CommentsCount,
		Liked:         m.Liked,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if v.Categories == nil {
		v.Categories = []string{}
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v
}
