package database

import "pinboard/internal/models"

// PersistentModels returns every model that participates in migration,
// ordered so parent tables migrate before their dependents.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Board{},
		&models.Pin{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	}
}
