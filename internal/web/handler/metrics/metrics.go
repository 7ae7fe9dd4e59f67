// Package metrics exposes the prometheus metrics endpoint.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler"
)

// Path is the path to the metrics endpoint.
const Path = "/metrics"

// Service is the metrics handler service.
type Service struct {
	handler.Service
}

// Handler is the metrics handler.
var Handler = Service{}

// Init initializes the metrics handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	app.Get(Path, adaptor.HTTPHandler(promhttp.Handler()))
}
