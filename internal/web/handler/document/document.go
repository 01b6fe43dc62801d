// Package document provides the document download, view and info endpoints.
package document

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	docsvc "github.com/GoEvent-Admin/GoEvent-Admin/internal/document"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler"
)

const (
	// Path is the base path of the document endpoints.
	Path = "/documents/:name"

	// cacheControl allows public caching for one day.
	cacheControl = "public, max-age=86400"

	dispositionAttachment = "attachment"
	dispositionInline     = "inline"
)

// Service is the document delivery handler service.
type Service struct {
	cfg  *config.Config
	docs *docsvc.Service
}

// Handler is the document delivery handler.
var Handler = Service{}

// Init initializes the document handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, docs *docsvc.Service) error {
	if app == nil || cfg == nil || docs == nil {
		return errors.New("app, cfg, or document service is nil")
	}

	s.cfg = cfg
	s.docs = docs

	app.Route(Path, func(router fiber.Router) {
		router.Get("/download", s.Download)
		router.Get("/view", s.View)
		router.Get("/info", s.Info)
	})

	return nil
}

// Download serves a document as an attachment.
func (s *Service) Download(c *fiber.Ctx) error {
	return s.serve(c, dispositionAttachment)
}

// View serves a document inline for in-browser display.
func (s *Service) View(c *fiber.Ctx) error {
	return s.serve(c, dispositionInline)
}

// Info returns document metadata without transferring the artifact.
func (s *Service) Info(c *fiber.Ctx) error {
	name := c.Params("name")

	info, err := s.docs.Info(name)
	if err != nil {
		if errors.Is(err, docsvc.ErrUnknownDocument) {
			return c.Status(fiber.StatusNotFound).JSON(handler.Fail(notFoundMessage(name)))
		}

		log.Error().Err(err).Str("document", name).Msg("document info failed")

		return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("Error getting document information"))
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"available":    info.Available,
		"storage":      info.Storage,
		"url":          info.URL,
		"filename":     info.Filename,
		"size":         info.Size,
		"lastModified": info.LastModified,
		"downloadUrl":  "/documents/" + name + "/download",
		"viewUrl":      "/documents/" + name + "/view",
	})
}

// serve resolves the document and emits exactly one of redirect, stream,
// 404 or 500. Headers are computed in full before the first body byte: a
// mid-stream failure after that point is logged by the server and ends the
// connection, it never produces a second response.
func (s *Service) serve(c *fiber.Ctx, disposition string) error {
	name := c.Params("name")

	resolution, err := s.docs.Resolve(name)
	if err != nil {
		if errors.Is(err, docsvc.ErrUnknownDocument) {
			return c.Status(fiber.StatusNotFound).JSON(handler.Fail(notFoundMessage(name)))
		}

		log.Error().Err(err).Str("document", name).Msg("document resolution failed")

		return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("Error serving document"))
	}

	switch resolution.Outcome {
	case docsvc.OutcomeRedirect:
		return c.Redirect(resolution.URL, fiber.StatusFound)

	case docsvc.OutcomeStream:
		f, err := os.Open(resolution.Path)
		if err != nil {
			// before any header was sent: a structured 500 is still possible
			log.Error().Err(err).Str("document", name).Str("path", resolution.Path).Msg("failed to open document")

			return c.Status(fiber.StatusInternalServerError).JSON(handler.Fail("Error serving document"))
		}

		log.Debug().
			Str("document", name).
			Int64("size", resolution.Size).
			Str("disposition", disposition).
			Msg("streaming local document")

		c.Set(fiber.HeaderContentType, resolution.ContentType)
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`%s; filename=%q`, disposition, resolution.Filename))
		c.Set(fiber.HeaderContentLength, strconv.FormatInt(resolution.Size, 10))
		c.Set(fiber.HeaderCacheControl, cacheControl)

		return c.SendStream(f, int(resolution.Size))

	default:
		return c.Status(fiber.StatusNotFound).JSON(handler.Fail(notFoundMessage(name)))
	}
}

func notFoundMessage(name string) string {
	if name == "" {
		name = "document"
	}

	return fmt.Sprintf("%s not found. Please contact the administrator.",
		strings.ToUpper(name[:1])+name[1:])
}
