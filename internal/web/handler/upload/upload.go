// Package upload provides the multipart upload boundary. Candidate files
// pass the storage resolver's validation before any bytes are accepted.
package upload

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/storage"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler"
)

const (
	// Path is the path of the upload endpoint.
	Path = "/uploads/:class"

	// FieldName is the expected multipart form field.
	FieldName = "file"
)

// Service is the upload handler service.
type Service struct {
	cfg      *config.Config
	resolver *storage.Resolver
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, resolver *storage.Resolver) error {
	if app == nil || cfg == nil || resolver == nil {
		return errors.New("app, cfg, or storage resolver is nil")
	}

	s.cfg = cfg
	s.resolver = resolver

	app.Post(Path, s.Post)

	return nil
}

// Post validates and stores one uploaded file.
func (s *Service) Post(c *fiber.Ctx) error {
	class := storage.AssetClass(c.Params("class"))

	fileHeader, err := c.FormFile(FieldName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("multipart field 'file' is required"))
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)

	if err := s.resolver.Validate(class, fileHeader.Filename, contentType, fileHeader.Size); err != nil {
		switch {
		case errors.Is(err, storage.ErrUnknownAssetClass):
			return c.Status(fiber.StatusNotFound).JSON(handler.Fail("unknown asset class"))
		case errors.Is(err, storage.ErrUnsupportedType),
			errors.Is(err, storage.ErrTooLarge):
			log.Info().
				Str("class", string(class)).
				Str("filename", fileHeader.Filename).
				Str("content_type", contentType).
				Int64("size", fileHeader.Size).
				Err(err).
				Msg("upload rejected")

			return c.Status(fiber.StatusBadRequest).JSON(handler.Fail(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("upload validation failed"))
		}
	}

	destination, err := s.resolver.BuildDestination(class, fileHeader.Filename)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("failed to build destination"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to open uploaded file")

		return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("failed to read upload"))
	}
	defer file.Close() //nolint: errcheck

	location, err := s.resolver.Backend().Put(c.Context(), class, destination, file, fileHeader.Size, contentType)
	if err != nil {
		log.Error().Err(err).Str("class", string(class)).Str("name", destination.Name).Msg("failed to store upload")

		return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("failed to store upload"))
	}

	log.Info().
		Str("class", string(class)).
		Str("name", location.Name).
		Str("backend", string(location.Kind)).
		Int64("size", location.Size).
		Msg("upload stored")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"location": location,
	})
}
