// Package settingsfile renders a settings profile into the generated overlay
// file and signals the web server to restart by touching sentinel files.
package settingsfile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
)

// Header is the warning comment at the top of every generated file.
const Header = "# WARNING: autogenerated by go-settings-admin. Do not edit by hand."

// Render produces the overlay file content for the given mapping table: the
// warning header followed by one `key = value` line per writable field.
// Fields encoding to an empty string are skipped.
func Render(mappings []models.Mapping) string {
	var b strings.Builder

	b.WriteString(Header + "\n\n[runtime]\n")

	for _, m := range mappings {
		if !m.Writable {
			continue
		}

		v := m.Encode()
		if v == "" {
			continue
		}

		fmt.Fprintf(&b, "%s = %s\n", m.Key, v)
	}

	return b.String()
}

// Write overwrites the overlay file at path with the rendered profile.
func Write(path string, mappings []models.Mapping) error {
	log.Info().Str("path", path).Msg("writing settings overlay file")

	if err := os.WriteFile(path, []byte(Render(mappings)), 0o600); err != nil {
		return errors.Wrap(err, "failed to write settings overlay file")
	}

	return nil
}

// Remove deletes the overlay file at path.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return errors.Wrap(err, "failed to remove settings overlay file")
	}

	return nil
}

// SignalReboot touches the given sentinel files to prompt the process manager
// to reload the server. When the list is empty the running executable is
// touched instead. Paths that do not exist are skipped silently.
func SignalReboot(files []string) {
	if len(files) == 0 {
		exe, err := os.Executable()
		if err != nil {
			log.Warn().Err(err).Msg("can't resolve executable for reboot signal")
			return
		}

		files = []string{exe}
	}

	log.Info().Msg("signalling webserver reboot")

	now := time.Now()

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			log.Debug().Str("file", f).Msg("reboot signal file skipped, doesn't exist")
			continue
		}

		if err := os.Chtimes(f, now, now); err != nil {
			log.Error().Err(err).Str("file", f).Msg("failed to touch reboot signal file")
			continue
		}

		log.Debug().Str("file", f).Msg("touched reboot signal file")
	}
}
