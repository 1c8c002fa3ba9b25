package database

import (
	"quill/internal/models"

	"gorm.io/gorm"
)

// migratedModels lists every persisted model in dependency order.
func migratedModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Topic{},
		&models.PostTopic{},
		&models.Comment{},
		&models.SavedPost{},
	}
}

// Migrate applies schema migrations for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(migratedModels()...)
}
