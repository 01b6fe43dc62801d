package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()
	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingKey    string
		defaultValue  string
		seedData      []models.Setting
		expectedValue string
	}{
		{
			name:          "nil database degrades to default",
			dbParam:       nil,
			settingKey:    "rulebook_url",
			defaultValue:  "fallback",
			expectedValue: "fallback",
		},
		{
			name:          "empty key degrades to default",
			dbParam:       db,
			settingKey:    "",
			defaultValue:  "fallback",
			expectedValue: "fallback",
		},
		{
			name:          "missing setting degrades to default",
			dbParam:       db,
			settingKey:    "nonexistent",
			defaultValue:  "",
			expectedValue: "",
		},
		{
			name:         "successful get",
			dbParam:      db,
			settingKey:   "site_name",
			defaultValue: "fallback",
			seedData: []models.Setting{
				{Key: "site_name", Value: "GoEvent", Category: models.SettingCategoryGeneral},
			},
			expectedValue: "GoEvent",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Clean database for each test
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			value := Get(tc.dbParam, tc.settingKey, tc.defaultValue)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestRecord(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingKey    string
		seedData      []models.Setting
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			settingKey:    "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			settingKey:    "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			settingKey:    "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:       "successful fetch",
			dbParam:    db,
			settingKey: "rulebook_url",
			seedData: []models.Setting{
				{Key: "rulebook_url", Value: "https://cdn.example/doc.pdf", Category: models.SettingCategoryDocuments},
			},
			expectedValue: "https://cdn.example/doc.pdf",
		},
		{
			name:       "key is trimmed before lookup",
			dbParam:    db,
			settingKey: "  rulebook_url  ",
			seedData: []models.Setting{
				{Key: "rulebook_url", Value: "https://cdn.example/doc.pdf", Category: models.SettingCategoryDocuments},
			},
			expectedValue: "https://cdn.example/doc.pdf",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			record, err := Record(tc.dbParam, tc.settingKey)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, record)
			} else {
				require.NoError(t, err)
				require.NotNil(t, record)
				assert.Equal(t, tc.expectedValue, record.Value)
			}
		})
	}
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingKey    string
		value         string
		meta          Meta
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			settingKey:    "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			settingKey:    "   ",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "invalid category",
			dbParam:       db,
			settingKey:    "rulebook_url",
			value:         "https://cdn.example/doc.pdf",
			meta:          Meta{Category: "bogus"},
			expectedError: ErrInvalidCategory,
		},
		{
			name:       "create with defaults",
			dbParam:    db,
			settingKey: "rulebook_url",
			value:      "https://cdn.example/doc.pdf",
			meta:       Meta{},
		},
		{
			name:       "create with full meta",
			dbParam:    db,
			settingKey: "rulebook_url",
			value:      "https://cdn.example/doc.pdf",
			meta: Meta{
				Description: "rulebook override",
				Category:    models.SettingCategoryDocuments,
				IsPublic:    true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			record, err := Set(tc.dbParam, tc.settingKey, tc.value, tc.meta)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, record)
			} else {
				require.NoError(t, err)
				require.NotNil(t, record)
				assert.Equal(t, tc.value, record.Value)
				assert.Equal(t, tc.meta.IsPublic, record.IsPublic)
			}
		})
	}
}

// TestSetIdempotence verifies that writing the same key twice leaves a
// single record holding the last written value.
func TestSetIdempotence(t *testing.T) {
	db := setupTestDB(t)

	meta := Meta{Category: models.SettingCategoryDocuments, IsPublic: true}

	first, err := Set(db, "rulebook_url", "https://cdn.example/v1.pdf", meta)
	require.NoError(t, err)

	second, err := Set(db, "rulebook_url", "https://cdn.example/v2.pdf", meta)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "upsert must update in place")
	assert.Equal(t, "https://cdn.example/v2.pdf", second.Value)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetByCategory(t *testing.T) {
	db := setupTestDB(t)

	seedSettings(t, db, []models.Setting{
		{Key: "rulebook_url", Value: "https://cdn.example/doc.pdf", Category: models.SettingCategoryDocuments},
		{Key: "rulebook_filename", Value: "Rulebook.pdf", Category: models.SettingCategoryDocuments},
		{Key: "smtp_notice", Value: "on", Category: models.SettingCategoryEmail},
	})

	documents := GetByCategory(db, models.SettingCategoryDocuments)
	assert.Equal(t, map[string]string{
		"rulebook_url":      "https://cdn.example/doc.pdf",
		"rulebook_filename": "Rulebook.pdf",
	}, documents)

	// unknown category and nil db both degrade to an empty mapping
	assert.Empty(t, GetByCategory(db, "bogus"))
	assert.Empty(t, GetByCategory(nil, models.SettingCategoryEmail))
}

// TestGetPublic verifies the visibility invariant: a setting appears in the
// public mapping iff IsPublic is true.
func TestGetPublic(t *testing.T) {
	db := setupTestDB(t)

	seedSettings(t, db, []models.Setting{
		{Key: "rulebook_url", Value: "https://cdn.example/doc.pdf", Category: models.SettingCategoryDocuments, IsPublic: true},
		{Key: "payment_upi", Value: "events@bank", Category: models.SettingCategoryPayment, IsPublic: false},
		{Key: "registration_open", Value: "true", Category: models.SettingCategoryGeneral, IsPublic: true},
	})

	public := GetPublic(db)
	assert.Equal(t, map[string]string{
		"rulebook_url":      "https://cdn.example/doc.pdf",
		"registration_open": "true",
	}, public)

	var all []models.Setting
	require.NoError(t, db.Find(&all).Error)
	for _, s := range all {
		_, visible := public[s.Key]
		assert.Equal(t, s.IsPublic, visible, "setting %s visibility mismatch", s.Key)
	}

	assert.Empty(t, GetPublic(nil))
}
