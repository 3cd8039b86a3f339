package models

import "time"

// Reaction kinds. A user holds at most one row per (meme, kind); liking and
// disliking the same meme at once is allowed and resolved client-side.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction represents a user's like or dislike on a meme.
// The combination of UserID, MemeID and Kind must be unique.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_meme_kind" json:"user_id"`
	MemeID    uint      `gorm:"not null;uniqueIndex:idx_user_meme_kind" json:"meme_id"`
	Kind      string    `gorm:"not null;uniqueIndex:idx_user_meme_kind" json:"kind"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Meme Meme `gorm:"foreignKey:MemeID" json:"-"`
}
