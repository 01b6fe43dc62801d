// Package setting provides read and upsert operations for application settings.
//
// Read operations degrade to defaults instead of propagating store failures;
// only Set surfaces errors, since callers need to know a write was lost.
package setting

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/models"
)

const (
	keyQueryPattern = "`key` = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to read/write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrInvalidCategory is returned when a setting is written with a category outside the permitted set.
	ErrInvalidCategory = errors.New("setting category is not in the permitted set")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Meta carries the optional attributes of a setting write.
type Meta struct {
	Description string
	Category    models.SettingCategory
	IsPublic    bool
	UpdatedBy   *uint64
}

// Get retrieves a setting value by key. It never returns an error: on any
// lookup failure (missing row, unavailable store) the failure is logged and
// defaultValue is returned.
func Get(db *gorm.DB, key string, defaultValue string) string {
	record, err := Record(db, key)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			log.Error().Err(err).Str("key", key).Msg("failed to read setting, using default")
		}

		return defaultValue
	}

	return record.Value
}

// Record retrieves the full setting record by key.
func Record(db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.Setting
	result := db.Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// Set creates or updates a setting by key (upsert operation). The upsert is
// atomic in the store: concurrent writes on the same key serialize on the
// unique key index instead of racing through read-modify-write.
func Set(db *gorm.DB, key string, value string, meta Meta) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	if meta.Category == "" {
		meta.Category = models.SettingCategoryGeneral
	}

	if !meta.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	setting := models.Setting{
		Key:         key,
		Value:       value,
		Description: meta.Description,
		Category:    meta.Category,
		IsPublic:    meta.IsPublic,
		UpdatedBy:   meta.UpdatedBy,
	}

	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "description", "category", "is_public", "updated_by", "updated_at",
		}),
	}).Create(&setting)
	if result.Error != nil {
		return nil, result.Error
	}

	// Re-read so the caller sees the stored row, including timestamps of a
	// conflict-updated record.
	return Record(db, key)
}

// GetByCategory retrieves all settings of a category as a key to value
// mapping. On failure it logs and returns an empty mapping, never an error.
func GetByCategory(db *gorm.DB, category models.SettingCategory) map[string]string {
	out := make(map[string]string)

	if db == nil {
		log.Error().Err(ErrDBNil).Str("category", string(category)).Msg("failed to read settings by category")
		return out
	}

	var settings []models.Setting
	result := db.Where("category = ?", category).Find(&settings)
	if result.Error != nil {
		log.Error().Err(result.Error).Str("category", string(category)).Msg("failed to read settings by category")
		return out
	}

	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out
}

// GetPublic retrieves all settings marked public as a key to value mapping.
// On failure it logs and returns an empty mapping, never an error.
func GetPublic(db *gorm.DB) map[string]string {
	out := make(map[string]string)

	if db == nil {
		log.Error().Err(ErrDBNil).Msg("failed to read public settings")
		return out
	}

	var settings []models.Setting
	result := db.Where("is_public = ?", true).Find(&settings)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to read public settings")
		return out
	}

	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out
}
