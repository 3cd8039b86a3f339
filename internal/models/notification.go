package models

import "time"

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification records an event addressed to a user. Notifications are also
// pushed over the realtime hub; the stored row is the durable copy.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint      `gorm:"not null" json:"actor_id"`
	Actor       User      `gorm:"foreignKey:ActorID" json:"actor"`
	Type        string    `gorm:"not null" json:"type"`
	MemeID      *uint     `json:"meme_id,omitempty"`
	IsRead      bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
