package daemon

import (
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed the default admin account if the user table is empty.

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		db.Create(
			&models.User{
				Username: "admin",
				Password: models.HashPassword("changeme"),
				Active:   true,
			},
		)
	}
}
