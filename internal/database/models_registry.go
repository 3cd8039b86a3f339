package database

import "github.com/niyati34/college-meme-page/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables migrate before the tables that point at them.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Meme{},
		&models.Reaction{},
		&models.Comment{},
		&models.Collection{},
		&models.CollectionMeme{},
		&models.Follow{},
		&models.Notification{},
	}
}
