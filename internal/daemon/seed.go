package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/controller/setting"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/models"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/document"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data if user table is empty

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		db.Create(
			&models.User{
				Username: "admin",
				Email:    "admin@localhost",
				Active:   true,
			},
		)
	}

	// Ensure the rulebook override key exists so the admin surface lists it
	if _, err := setting.Record(db, document.SettingKeyRulebookURL); err != nil {
		_, err = setting.Set(db, document.SettingKeyRulebookURL, "", setting.Meta{
			Description: "External rulebook URL. When set it takes precedence over the local file.",
			Category:    models.SettingCategoryDocuments,
			IsPublic:    false,
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to seed rulebook setting")
		}
	}
}
