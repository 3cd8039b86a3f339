// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on a meme. Comments are hard-deleted together
// with their parent meme.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemeID    uint      `gorm:"not null;index" json:"meme_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentView is the flattened projection returned by the comments endpoint.
type CommentView struct {
	ID        uint         `json:"id"`
	MemeID    uint         `json:"meme_id"`
	Text      string       `json:"text"`
	Author    PublicAuthor `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CommentViewOf projects a comment into its public view form.
func CommentViewOf(c *Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		MemeID:    c.MemeID,
		Text:      c.Text,
		Author:    PublicAuthorOf(&c.Author),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
