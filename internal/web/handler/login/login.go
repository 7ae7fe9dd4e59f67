// Package login implements the login screen of the web UI.
package login

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
	"github.com/go-settings-admin/go-settings-admin/internal/random"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler/profiles"
	"github.com/go-settings-admin/go-settings-admin/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"

	sessionExpiry = 12 * time.Hour
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	user := new(models.User)

	if err := c.BodyParser(user); err != nil {
		return err
	}

	renderError := func(msg string) error {
		return c.Status(fiber.StatusUnauthorized).Render(TemplateName, fiber.Map{
			"Title": s.cfg.Title,
			"Error": msg,
		})
	}

	// find user in db
	var dbUser models.User
	result := s.db.Where("username = ?", user.Username).First(&dbUser)
	if result.Error != nil {
		return renderError("Invalid username or password")
	}

	if !dbUser.Active {
		return renderError("Account is inactive")
	}

	if !dbUser.VerifyPassword(user.Password) {
		return renderError("Invalid username or password")
	}

	sessionID, err := random.SessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return renderError("Internal server error")
	}

	sessData := session.Data{User: dbUser}
	if err := sessData.Write(sessionID, sessionExpiry); err != nil {
		log.Error().Err(err).Msg("failed to write session data")
		return renderError("Internal server error")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		HTTPOnly: true,
		Expires:  time.Now().Add(sessionExpiry),
	})

	return c.Redirect(profiles.Path)
}
