package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/mail"
)

// setupApp wires the handler against a dispatcher without transport
// credentials, so no network attempt can happen.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, &config.Config{Title: "test"}, mail.New(config.Mail{})))

	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, Path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestPostWithoutMailConfig(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app,
		`{"recipient":"user@example.org","subject":"Welcome","htmlBody":"<p>Hello</p>"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
}

func TestPostRejectsMissingFields(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing recipient", `{"subject":"s","htmlBody":"b"}`},
		{"invalid recipient", `{"recipient":"not-an-address","subject":"s","htmlBody":"b"}`},
		{"missing subject", `{"recipient":"user@example.org","htmlBody":"b"}`},
		{"missing body", `{"recipient":"user@example.org","subject":"s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestPostRejectsMalformedJSON(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, `{"recipient":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
