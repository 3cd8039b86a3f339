// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Admins may delete any meme or comment and change meme status.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Role        string         `gorm:"not null;default:user" json:"role"`
	DisplayName string         `json:"display_name"`
	Bio         string         `json:"bio"`
	AvatarURL   string         `json:"avatar_url"`
	// FollowersCount, FollowingCount and MemesCount are not persisted; computed at query time
	FollowersCount int            `gorm:"->;-:migration" json:"followers_count"`
	FollowingCount int            `gorm:"->;-:migration" json:"following_count"`
	MemesCount     int            `gorm:"->;-:migration" json:"memes_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicAuthor is the denormalized author projection embedded in meme and
// comment responses. A missing or deleted author is rendered as the
// placeholder author instead of failing the whole page.
type PublicAuthor struct {
	ID          uint    `json:"id,omitempty"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url"`
}

// AnonymousAuthor is the placeholder used when an author record is gone.
func AnonymousAuthor() PublicAuthor {
	return PublicAuthor{Username: "Anonymous", AvatarURL: nil}
}

// PublicAuthorOf projects a user into its public author form.
func PublicAuthorOf(u *User) PublicAuthor {
	if u == nil || u.ID == 0 {
		return AnonymousAuthor()
	}
	var avatar *string
	if u.AvatarURL != "" {
		a := u.AvatarURL
		avatar = &a
	}
	return PublicAuthor{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   avatar,
	}
}
