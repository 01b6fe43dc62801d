// Package settings provides the admin JSON surface over the settings store.
package settings

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/controller/setting"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/models"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler"
)

const (
	// Path is the base path of the settings endpoints.
	Path = "/api/settings"
)

// Service is the settings handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the settings handler.
var Handler = Service{}

// SetRequest is the body of a settings write.
type SetRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"    validate:"omitempty,oneof=general documents email payment other"`
	IsPublic    bool   `json:"isPublic"`
}

// Response is the JSON view of a stored setting.
type Response struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsPublic    bool      `json:"isPublic"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	// register routes; the fixed paths must come before the :key wildcard
	app.Route(Path, func(router fiber.Router) {
		router.Get("/public", s.GetPublic)
		router.Get("/category/:category", s.GetByCategory)
		router.Get("/:key", s.Get)
		router.Put("/:key", s.Put)
	})

	return nil
}

// GetPublic returns all settings marked public as a key to value mapping.
func (s *Service) GetPublic(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":  true,
		"settings": setting.GetPublic(s.db),
	})
}

// GetByCategory returns all settings of one category as a key to value mapping.
func (s *Service) GetByCategory(c *fiber.Ctx) error {
	category := models.SettingCategory(c.Params("category"))
	if !category.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("unknown settings category"))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": setting.GetByCategory(s.db, category),
	})
}

// Get returns one full setting record.
func (s *Service) Get(c *fiber.Ctx) error {
	record, err := setting.Record(s.db, c.Params("key"))
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) || errors.Is(err, setting.ErrSettingKeyEmpty) {
			return c.Status(fiber.StatusNotFound).JSON(handler.Fail("setting not found"))
		}

		log.Error().Err(err).Str("key", c.Params("key")).Msg("failed to load setting")

		return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("failed to load setting"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"setting": toResponse(record),
	})
}

// Put upserts one setting.
func (s *Service) Put(c *fiber.Ctx) error {
	var req SetRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("invalid request body"))
	}

	if err := s.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("setting category is not in the permitted set"))
	}

	record, err := setting.Set(s.db, c.Params("key"), req.Value, setting.Meta{
		Description: req.Description,
		Category:    models.SettingCategory(req.Category),
		IsPublic:    req.IsPublic,
		UpdatedBy:   actorID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, setting.ErrSettingKeyEmpty):
			return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("setting key cannot be empty"))
		case errors.Is(err, setting.ErrInvalidCategory):
			return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("setting category is not in the permitted set"))
		default:
			log.Error().Err(err).Str("key", c.Params("key")).Msg("failed to store setting")

			return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("failed to store setting"))
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"setting": toResponse(record),
	})
}

// actorID extracts the acting user from request locals when an upstream
// auth layer put one there. This service runs without its own auth.
func actorID(c *fiber.Ctx) *uint64 {
	if id, ok := c.Locals("user_id").(uint64); ok {
		return &id
	}

	return nil
}

func toResponse(record *models.Setting) Response {
	return Response{
		Key:         record.Key,
		Value:       record.Value,
		Description: record.Description,
		Category:    string(record.Category),
		IsPublic:    record.IsPublic,
		UpdatedAt:   record.UpdatedAt,
	}
}
