// Package edit implements the settings profile add/edit form.
package edit

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	controller "github.com/go-settings-admin/go-settings-admin/internal/db/controller/profile"
	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
	"github.com/go-settings-admin/go-settings-admin/internal/timezone"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler"
	"github.com/go-settings-admin/go-settings-admin/internal/web/handler/profiles"
	"github.com/go-settings-admin/go-settings-admin/internal/web/navigation"
)

const (
	// Path is the path to the profile edit page.
	Path = profiles.Path + "/edit"

	// TemplateName is the name of the profile edit template.
	TemplateName = "profiles/edit"
)

// Form carries the posted profile fields.
type Form struct {
	ID           uint64 `form:"id"`
	Name         string `form:"name"          validate:"required,max=255"`
	IsActive     bool   `form:"is_active"`
	DebugMode    bool   `form:"debug_mode"`
	SecretKey    string `form:"secret_key"    validate:"max=255"`
	TimeZone     string `form:"time_zone"     validate:"max=255"`
	AppendSlash  bool   `form:"append_slash"`
	AllowedHosts string `form:"allowed_hosts" validate:"max=255"`
}

// Service is the profile edit handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the profile edit handler.
var Handler = Service{}

// Init initializes the profile edit handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewContext("Edit Profile", "profiles").
		AddBreadcrumb("Profiles", profiles.Path, false).
		AddBreadcrumb("Edit", Path, true)
}

func (s *Service) render(c *fiber.Ctx, status int, p *models.Profile, errMsg any) error {
	return c.Status(status).Render(TemplateName, fiber.Map{
		"Profile":    p,
		"Timezones":  timezone.Common(),
		"Navigation": s.nav(),
		"Error":      errMsg,
	}, handler.BaseLayout)
}

// Get renders the edit form. Without an id query parameter an empty form for
// a new profile is shown.
func (s *Service) Get(c *fiber.Ctx) error {
	p := &models.Profile{}

	if id := c.QueryInt("id"); id > 0 {
		var err error

		p, err = controller.Get(s.db, uint64(id))
		if err != nil {
			if errors.Is(err, controller.ErrProfileNotFound) {
				return c.Status(fiber.StatusNotFound).SendString("Profile not found")
			}

			log.Error().Err(err).Msg("failed to load profile")

			return c.Status(fiber.StatusInternalServerError).SendString("Failed to load profile")
		}
	}

	return s.render(c, fiber.StatusOK, p, nil)
}

// Post handles the edit form submission: parse, validate, apply to the
// stored profile and save with a reboot request.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse profile form")

		return s.render(c, fiber.StatusBadRequest, &models.Profile{}, "Invalid form data")
	}

	p, errMsg := s.applyForm(form)
	if errMsg != nil {
		return s.render(c, fiber.StatusBadRequest, p, errMsg)
	}

	// repairable invariant violations are reported back to the form instead
	// of being silently fixed
	if err := controller.Validate(s.db, s.cfg, p); err != nil {
		if errors.Is(err, controller.ErrLastActive) {
			return s.render(c, fiber.StatusBadRequest, p,
				"No other active profile, so this one must stay active")
		}

		log.Error().Err(err).Msg("profile validation failed")

		return s.render(c, fiber.StatusInternalServerError, p, "Failed to save profile")
	}

	if err := controller.Save(s.db, s.cfg, p, true); err != nil {
		log.Error().Err(err).Msg("failed to save profile")

		return s.render(c, fiber.StatusInternalServerError, p, "Failed to save profile")
	}

	log.Info().Str("name", p.Name).Bool("active", p.IsActive).Msg("profile saved")

	return c.Redirect(profiles.Path)
}

// applyForm validates the form and merges it into the stored profile, or a
// new one when no id was posted.
func (s *Service) applyForm(form *Form) (*models.Profile, any) {
	p := &models.Profile{}

	if form.ID != 0 {
		var err error

		p, err = controller.Get(s.db, form.ID)
		if err != nil {
			return &models.Profile{}, "Profile not found"
		}
	}

	p.Name = form.Name
	p.IsActive = form.IsActive
	p.DebugMode = form.DebugMode
	p.SecretKey = form.SecretKey
	p.TimeZone = form.TimeZone
	p.AppendSlash = form.AppendSlash
	p.AllowedHosts = form.AllowedHosts

	if err := s.validator.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		errorMessages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		return p, errorMessages
	}

	if !timezone.Valid(form.TimeZone) {
		return p, "Unknown time zone " + form.TimeZone
	}

	return p, nil
}
