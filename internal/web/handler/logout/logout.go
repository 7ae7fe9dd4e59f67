// Package logout implements the logout action of the web UI.
package logout

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler/login"
	"github.com/go-settings-admin/go-settings-admin/internal/web/session"
)

// Path is the path to the logout action.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get invalidates the session and redirects to the login page.
func (s *Service) Get(c *fiber.Ctx) error {
	if sessionID := c.Cookies("session"); sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Debug().Err(err).Msg("could not delete session data")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:    "session",
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})

	return c.Redirect(login.Path)
}
