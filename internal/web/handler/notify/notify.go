// Package notify provides the email send surface consumed by registration
// and notification flows.
package notify

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/mail"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler"
)

const (
	// Path is the path of the notification endpoint.
	Path = "/api/notifications"
)

// Service is the notification handler service.
type Service struct {
	cfg        *config.Config
	dispatcher *mail.Dispatcher
	validator  *validator.Validate
}

// Handler is the notification handler.
var Handler = Service{}

// SendRequest is the body of a notification send.
type SendRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Subject   string `json:"subject"   validate:"required"`
	HTMLBody  string `json:"htmlBody"  validate:"required"`
	TextBody  string `json:"textBody"`
}

// Init initializes the notification handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, dispatcher *mail.Dispatcher) error {
	if app == nil || cfg == nil || dispatcher == nil {
		return errors.New("app, cfg, or mail dispatcher is nil")
	}

	s.cfg = cfg
	s.dispatcher = dispatcher
	s.validator = validator.New()

	app.Post(Path, s.Post)

	return nil
}

// Post dispatches one notification email. Delivery already includes the
// dispatcher's retry budget, so a failure here is final.
func (s *Service) Post(c *fiber.Ctx) error {
	var req SendRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("invalid request body"))
	}

	if err := s.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("recipient, subject and htmlBody are required"))
	}

	messageID, err := s.dispatcher.Send(c.Context(), mail.Message{
		Recipient: req.Recipient,
		Subject:   req.Subject,
		HTMLBody:  req.HTMLBody,
		TextBody:  req.TextBody,
	})
	if err != nil {
		switch {
		case errors.Is(err, mail.ErrConfigIncomplete):
			return c.Status(fiber.StatusServiceUnavailable).JSON(handler.Fail("email is not configured"))
		case errors.Is(err, mail.ErrDeliveryFailed):
			return c.Status(fiber.StatusBadGateway).JSON(handler.Fail("email delivery failed"))
		default:
			log.Error().Err(err).Str("to", req.Recipient).Msg("notification rejected")

			return c.Status(fiber.StatusBadRequest).JSON(handler.Fail("invalid notification"))
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success":   true,
		"messageId": messageID,
	})
}
