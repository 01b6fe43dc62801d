// Package models contains database model definitions.
package models

import (
	"time"
)

// SettingCategory classifies a setting for grouped retrieval.
type SettingCategory string

const (
	// SettingCategoryGeneral is the default category.
	SettingCategoryGeneral SettingCategory = "general"
	// SettingCategoryDocuments groups document delivery settings (e.g. rulebook_url).
	SettingCategoryDocuments SettingCategory = "documents"
	// SettingCategoryEmail groups email related settings.
	SettingCategoryEmail SettingCategory = "email"
	// SettingCategoryPayment groups payment related settings.
	SettingCategoryPayment SettingCategory = "payment"
	// SettingCategoryOther groups everything else.
	SettingCategoryOther SettingCategory = "other"
)

// SettingCategories is the closed set of permitted categories.
var SettingCategories = []SettingCategory{
	SettingCategoryGeneral,
	SettingCategoryDocuments,
	SettingCategoryEmail,
	SettingCategoryPayment,
	SettingCategoryOther,
}

// Valid reports whether c is one of the permitted categories.
func (c SettingCategory) Valid() bool {
	for _, known := range SettingCategories {
		if c == known {
			return true
		}
	}

	return false
}

// Setting represents a configuration setting stored in the database.
// Keys are globally unique; settings are upserted in place and never
// hard-deleted by the delivery subsystem.
type Setting struct {
	// ID is the unique identifier for the setting.
	ID uint64 `gorm:"primaryKey"`
	// Key is the unique, trimmed lookup key.
	Key string `gorm:"uniqueIndex;size:191;not null"`
	// Value is the stored value.
	Value string `gorm:"type:text"`
	// Description is a human readable description of the setting.
	Description string `gorm:"size:255"`
	// Category groups the setting for category based retrieval.
	Category SettingCategory `gorm:"type:varchar(20);index;not null;default:'general'"`
	// IsPublic marks whether non-admin callers may read this setting.
	IsPublic bool `gorm:"not null;default:false"`
	// UpdatedBy references the user that last wrote the setting, if known.
	UpdatedBy *uint64
	// CreatedAt is the timestamp when the setting was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the setting was last updated (managed by GORM).
	UpdatedAt time.Time
}
