package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/services"
)

func TestReportsRateLimited(t *testing.T) {
	db, _ := dbtest.New(t)
	cfg := &config.Config{DefaultPlateState: "CA", PhotoMaxKB: 1024, RateLimitPerMin: 2}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Setup(app, cfg,
		handlers.NewHealthHandler(db),
		handlers.NewReportHandler(services.NewReportService(db, cfg)),
	)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusBadRequest, post())
	assert.Equal(t, fiber.StatusBadRequest, post())
	assert.Equal(t, fiber.StatusTooManyRequests, post())
}
