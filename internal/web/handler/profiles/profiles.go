// Package profiles implements the settings profile list screen and the
// activate/delete actions.
package profiles

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	controller "github.com/go-settings-admin/go-settings-admin/internal/db/controller/profile"
	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler"
	"github.com/go-settings-admin/go-settings-admin/internal/web/navigation"
)

const (
	// Path is the path to the profile list page.
	Path = handler.RootPath + "profiles"

	// TemplateName is the name of the profile list template.
	TemplateName = "profiles"
)

// Service is the profile list handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the profile list handler.
var Handler = Service{}

// Init initializes the profile list handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, s.Get)
	app.Post(Path+"/activate", s.Activate)
	app.Post(Path+"/delete", s.Delete)
}

// Get renders the profile list.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Settings Profiles", "profiles").
		AddBreadcrumb("Profiles", Path, true)

	all, err := controller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load profiles")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load profiles")
	}

	return c.Render(TemplateName, fiber.Map{
		"Profiles":   all,
		"Navigation": nav,
		"Error":      c.Query("error"),
	}, handler.BaseLayout)
}

// Activate marks the posted profile as active. The save deactivates all other
// profiles, regenerates the overlay file and signals a restart.
func (s *Service) Activate(c *fiber.Ctx) error {
	p, err := s.formProfile(c)
	if err != nil {
		return s.redirectError(c, err)
	}

	p.IsActive = true

	if err := controller.Save(s.db, s.cfg, p, true); err != nil {
		log.Error().Err(err).Uint64("id", p.ID).Msg("failed to activate profile")

		return s.redirectError(c, err)
	}

	log.Info().Str("name", p.Name).Msg("profile activated")

	return c.Redirect(Path)
}

// Delete removes the posted profile. Deleting the active profile is rejected
// unless the configuration permits zero active profiles.
func (s *Service) Delete(c *fiber.Ctx) error {
	p, err := s.formProfile(c)
	if err != nil {
		return s.redirectError(c, err)
	}

	if err := controller.Delete(s.db, s.cfg, p); err != nil {
		log.Error().Err(err).Uint64("id", p.ID).Msg("failed to delete profile")

		return s.redirectError(c, err)
	}

	log.Info().Str("name", p.Name).Msg("profile deleted")

	return c.Redirect(Path)
}

// formProfile loads the profile referenced by the posted id field.
func (s *Service) formProfile(c *fiber.Ctx) (*models.Profile, error) {
	id, err := strconv.ParseUint(c.FormValue("id"), 10, 64)
	if err != nil {
		return nil, controller.ErrProfileNotFound
	}

	return controller.Get(s.db, id)
}

func (s *Service) redirectError(c *fiber.Ctx, err error) error {
	msg := "Operation failed"

	switch {
	case errors.Is(err, controller.ErrProfileNotFound):
		msg = "Profile not found"
	case errors.Is(err, controller.ErrActiveProfileDelete):
		msg = "Cannot delete the active profile"
	case errors.Is(err, controller.ErrLastActive):
		msg = "One profile must stay active"
	}

	return c.Redirect(Path + "?error=" + url.QueryEscape(msg))
}
