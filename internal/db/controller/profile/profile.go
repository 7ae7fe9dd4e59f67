// Package profile implements the lifecycle of runtime settings profiles: the
// single-active-record invariant, refreshing a profile from live
// configuration, rendering the active profile into the generated overlay file
// and signalling the web server to restart.
package profile

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
	"github.com/go-settings-admin/go-settings-admin/internal/settingsfile"
)

const (
	activeQueryPattern = "is_active = ?"
)

// Get retrieves a profile by its ID.
func Get(db *gorm.DB, id uint64) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Profile
	result := db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// GetAll retrieves all profiles ordered by ID.
func GetAll(db *gorm.DB) ([]models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var profiles []models.Profile
	result := db.Order("id").Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

// Active retrieves the currently active profile.
func Active(db *gorm.DB) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Profile
	result := db.Where(activeQueryPattern, true).Order("id").First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// Validate checks a profile before saving. Deactivating the sole active
// profile is rejected unless the configuration permits zero active profiles.
func Validate(db *gorm.DB, cfg *config.Config, p *models.Profile) error {
	if db == nil {
		return ErrDBNil
	}
	if cfg == nil {
		return ErrConfigNil
	}

	if p.IsActive || cfg.Settings.AllowNone {
		return nil
	}

	q := db.Model(&models.Profile{}).Where(activeQueryPattern, true)
	if p.ID != 0 {
		q = q.Where("id <> ?", p.ID)
	}

	var otherActives int64
	if err := q.Count(&otherActives).Error; err != nil {
		return err
	}

	if otherActives == 0 {
		return ErrLastActive
	}

	return nil
}

// Save persists a profile and repairs the single-active-record invariant
// inside one transaction: activating this profile deactivates all others;
// deactivating it keeps one other profile active, or re-activates this one
// when no other exists and none is not allowed. After the transaction
// commits, an active profile with reboot requested is rendered into the
// overlay file and the restart signal is issued. File I/O is deferred until
// commit so a rollback never leaves a stale file behind.
func Save(db *gorm.DB, cfg *config.Config, p *models.Profile, reboot bool) error {
	if db == nil {
		return ErrDBNil
	}
	if cfg == nil {
		return ErrConfigNil
	}

	if p.Name == "" {
		p.Name = models.DefaultProfileName
	}

	var fileRemoved bool

	err := db.Transaction(func(tx *gorm.DB) error {
		others := tx.Model(&models.Profile{}).Where(activeQueryPattern, true)
		if p.ID != 0 {
			others = others.Where("id <> ?", p.ID)
		}

		if p.IsActive {
			// this profile is active, so all others must not be
			if err := others.Update("is_active", false).Error; err != nil {
				return err
			}

			return tx.Save(p).Error
		}

		// this profile is inactive; keep exactly one other profile active
		var active models.Profile

		q := tx.Where(activeQueryPattern, true)
		if p.ID != 0 {
			q = q.Where("id <> ?", p.ID)
		}

		err := q.Order("id").First(&active).Error

		switch {
		case err == nil:
			// deactivate extraneous actives beyond the first
			extras := tx.Model(&models.Profile{}).
				Where(activeQueryPattern, true).
				Where("id <> ?", active.ID)
			if p.ID != 0 {
				extras = extras.Where("id <> ?", p.ID)
			}

			if err := extras.Update("is_active", false).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if cfg.Settings.AllowNone {
				fileRemoved = true
			} else {
				// one profile is required, so this one stays active
				p.IsActive = true
			}
		default:
			return err
		}

		return tx.Save(p).Error
	})
	if err != nil {
		return err
	}

	// side effects run after commit only
	if fileRemoved {
		if err := settingsfile.Remove(cfg.Settings.FilePath()); err != nil {
			log.Warn().Err(err).Msg("could not remove settings overlay file")
		}

		settingsfile.SignalReboot(cfg.Settings.RebootFiles)

		return nil
	}

	if p.IsActive && reboot {
		if err := settingsfile.Write(cfg.Settings.FilePath(), p.Mappings()); err != nil {
			return err
		}

		settingsfile.SignalReboot(cfg.Settings.RebootFiles)
	}

	return nil
}

// Read copies each readable mapped field from live configuration into the
// profile and persists it without triggering a reboot.
func Read(db *gorm.DB, cfg *config.Config, p *models.Profile) error {
	if cfg == nil {
		return ErrConfigNil
	}

	for _, m := range p.Mappings() {
		if m.Readable {
			m.Read(cfg)
		}
	}

	return Save(db, cfg, p, false)
}

// Delete removes a profile. Deleting the active profile is rejected unless
// the configuration permits zero active profiles.
func Delete(db *gorm.DB, cfg *config.Config, p *models.Profile) error {
	if db == nil {
		return ErrDBNil
	}
	if cfg == nil {
		return ErrConfigNil
	}

	if p.IsActive && !cfg.Settings.AllowNone {
		return ErrActiveProfileDelete
	}

	result := db.Delete(&models.Profile{}, p.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}
