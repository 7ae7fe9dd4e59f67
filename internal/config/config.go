// Package config handles input from etc/*.toml files and the generated
// runtime overlay file.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

// EnvConfigJSON is the environment variable holding a JSON config override.
const EnvConfigJSON = "GO_SETTINGS_ADMIN_CONFIG_JSON"

// ReadConfig reads main.toml from the config directory, merges the generated
// runtime overlay file over it when one exists, and applies the JSON override
// from the environment.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(filepath.Join(path, "main.toml"), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// The overlay is written by the settings profile on save. Values in it win
	// over main.toml, which is how an edited profile materializes in the
	// running process.
	overlay := filepath.Join(path, settingsFileName(c))
	if _, err = os.Stat(overlay); err == nil {
		if _, err = toml.DecodeFile(overlay, &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to read runtime overlay file")
		}
	}

	// override it from env
	if jsonEnv := os.Getenv(EnvConfigJSON); jsonEnv != "" {
		c, err = decodeAndMergeConfig(c, jsonEnv)
		if err != nil {
			return c, err
		}
	}

	c.Settings.Dir = path

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to merge json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func settingsFileName(c Config) string {
	if c.Settings.FileName != "" {
		return c.Settings.FileName
	}

	return DefaultSettingsFileName
}

// validate minimal config settings and fill in defaults for everything the
// config file may leave out.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.DB.Engine == "" {
		c.DB.Engine = EngineSQLite
	}

	if c.DB.Engine == EngineSQLite && c.DB.File == "" {
		c.DB.File = "settings.db"
	}

	if c.Settings.FileName == "" {
		c.Settings.FileName = DefaultSettingsFileName
	}

	return nil
}
