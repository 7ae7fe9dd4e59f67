package config

import (
	"path/filepath"

	"github.com/go-settings-admin/go-settings-admin/internal/logger"
)

// DefaultSettingsFileName is the file the active profile is rendered into,
// relative to the config directory.
const DefaultSettingsFileName = "runtime.toml"

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Runtime   Runtime  `toml:"runtime"`
	Settings  Settings `toml:"settings"`
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}

// Settings holds the behavior of the settings profile machinery itself.
type Settings struct {
	Dir         string   `json:"-" toml:"-"`   // config directory, set by ReadConfig
	FileName    string   `toml:"file_name"`    // name of the generated overlay file
	RebootFiles []string `toml:"reboot_files"` // paths touched to signal a restart
	AllowNone   bool     `toml:"allow_none"`   // permit zero active profiles
}

// FilePath returns the full path of the generated overlay file.
func (s Settings) FilePath() string {
	return filepath.Join(s.Dir, s.FileName)
}
