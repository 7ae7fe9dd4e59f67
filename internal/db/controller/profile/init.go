package profile

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
	"github.com/go-settings-admin/go-settings-admin/internal/random"
)

// Init runs the startup initialization of the settings profiles:
//   - when an active profile exists, refresh it from live configuration so
//     the record always reflects reality, and repair the invariant if other
//     profiles are active too;
//   - when none is active and one is required, activate the first profile
//     found, or create the default profile from live configuration.
//
// Database errors are logged as warnings and are not fatal, so the service
// still starts when the database is not ready yet.
func Init(db *gorm.DB, cfg *config.Config) {
	log.Info().Msg("running settings profile init")

	if db == nil || cfg == nil {
		log.Warn().Msg("profile init skipped, db or config is nil")
		return
	}

	active, err := Active(db)

	switch {
	case err == nil:
		if err := Read(db, cfg, active); err != nil {
			log.Warn().Err(err).Msg("db not ready (profile read failed)")
			return
		}

		var extras int64
		if err := db.Model(&models.Profile{}).
			Where(activeQueryPattern, true).
			Where("id <> ?", active.ID).
			Count(&extras).Error; err != nil {
			log.Warn().Err(err).Msg("db not ready (profile count failed)")
			return
		}

		// other actives exist, save to deactivate them and rewrite the file
		if extras > 0 {
			if err := Save(db, cfg, active, true); err != nil {
				log.Warn().Err(err).Msg("profile invariant repair failed")
			}
		}
	case errors.Is(err, ErrProfileNotFound):
		if cfg.Settings.AllowNone {
			return
		}

		initFirstActive(db, cfg)
	default:
		log.Warn().Err(err).Msg("db not ready (profile init failed)")
	}
}

// initFirstActive promotes the first existing profile to active, or creates
// the default profile from live configuration when the table is empty.
func initFirstActive(db *gorm.DB, cfg *config.Config) {
	var first models.Profile

	err := db.Order("id").First(&first).Error

	switch {
	case err == nil:
		first.IsActive = true

		if err := Save(db, cfg, &first, true); err != nil {
			log.Warn().Err(err).Msg("could not activate existing profile")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		p := models.Profile{Name: models.DefaultProfileName, IsActive: true}

		if err := Read(db, cfg, &p); err != nil {
			log.Warn().Err(err).Msg("could not create default profile")
		}
	default:
		log.Warn().Err(err).Msg("db not ready (profile lookup failed)")
	}
}

// EnsureSecretKey replaces the known-insecure default secret of the active
// profile with a randomly generated one. Database errors are logged as
// warnings and are not fatal.
func EnsureSecretKey(db *gorm.DB, cfg *config.Config) {
	log.Info().Msg("checking the active profile secret key")

	if db == nil || cfg == nil {
		log.Warn().Msg("secret key check skipped, db or config is nil")
		return
	}

	active, err := Active(db)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			log.Warn().Err(err).Msg("db not ready (secret key check failed)")
		}

		return
	}

	if active.SecretKey != config.DefaultSecretKey {
		return
	}

	active.SecretKey = random.SecretKey()

	if err := Save(db, cfg, active, true); err != nil {
		log.Error().Err(err).Msg("could not save regenerated secret key")
	}
}
