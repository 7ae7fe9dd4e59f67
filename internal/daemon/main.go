// Package daemon wires the database, the settings profile initializer and the
// web service together.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmemory "github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
	"github.com/go-settings-admin/go-settings-admin/internal/db/controller/profile"
	"github.com/go-settings-admin/go-settings-admin/internal/db/dsn"
	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
	"github.com/go-settings-admin/go-settings-admin/internal/web"
	"github.com/go-settings-admin/go-settings-admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dialector, sessionStorage := openEngine(cfg)

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	// load or create the active settings profile, then rotate the insecure
	// default secret if it is still in place
	profile.Init(db, cfg)
	profile.EnsureSecretKey(db, cfg)

	session.Init(sessionStorage)

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}

// openEngine selects the gorm dialector and the matching fiber session
// storage backend for the configured database engine.
func openEngine(cfg *config.Config) (gorm.Dialector, fiber.Storage) {
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		storage := sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         "sessions",
		})

		return gormmysql.Open(dsn.MySQL(cfg)), storage
	case config.EnginePostgres:
		storage := sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.PostgresURL(cfg),
			Table:         "sessions",
		})

		return gormpostgres.Open(dsn.Postgres(cfg)), storage
	case config.EngineSQLite:
		return sqlite.Open(cfg.DB.File), sessionmemory.New()
	default:
		log.Fatal().Str("engine", cfg.DB.Engine).Msg("unsupported database engine")
		return nil, nil
	}
}
