// Package handler holds shared types for the web handler services.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail builds the standard error body.
func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
