package config

import (
	"strconv"
	"strings"
)

// Names of the runtime settings managed through settings profiles. These are
// the keys written to the generated overlay file.
const (
	SettingDebug        = "debug"
	SettingSecretKey    = "secret_key"
	SettingTimeZone     = "time_zone"
	SettingAppendSlash  = "append_slash"
	SettingAllowedHosts = "allowed_hosts"
)

// DefaultSecretKey is the insecure placeholder secret shipped in the sample
// config. It is replaced with a random secret on first startup.
const DefaultSecretKey = "not-a-very-good-secret"

// Runtime holds the live values managed through settings profiles. They come
// from main.toml, overridden by the generated overlay file.
type Runtime struct {
	Debug        bool   `toml:"debug"`
	SecretKey    string `toml:"secret_key"`
	TimeZone     string `toml:"time_zone"`
	AppendSlash  bool   `toml:"append_slash"`
	AllowedHosts string `toml:"allowed_hosts"` // comma-delimited host allow-list
}

// defaults are the module-level fallback values the accessor returns when the
// configuration leaves a setting unset.
var defaults = map[string]string{
	SettingDebug:        "true",
	SettingSecretKey:    DefaultSecretKey,
	SettingTimeZone:     "America/Chicago",
	SettingAppendSlash:  "false",
	SettingAllowedHosts: "*",
}

// Default returns the module-level default for a named runtime setting. The
// second return is false for unknown names.
func Default(name string) (string, bool) {
	v, ok := defaults[name]

	return v, ok
}

// SplitHostList splits a comma-delimited host allow-list into trimmed hosts.
func SplitHostList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if h := strings.TrimSpace(p); h != "" {
			out = append(out, h)
		}
	}

	return out
}

// Setting resolves a named runtime setting from the live configuration,
// falling back to the module-level default when the configuration leaves it
// unset. The second return is false for names this accessor does not know.
func (c *Config) Setting(name string) (string, bool) {
	switch name {
	case SettingDebug:
		return strconv.FormatBool(c.Runtime.Debug), true
	case SettingAppendSlash:
		return strconv.FormatBool(c.Runtime.AppendSlash), true
	case SettingSecretKey:
		if c.Runtime.SecretKey != "" {
			return c.Runtime.SecretKey, true
		}
	case SettingTimeZone:
		if c.Runtime.TimeZone != "" {
			return c.Runtime.TimeZone, true
		}
	case SettingAllowedHosts:
		if c.Runtime.AllowedHosts != "" {
			return c.Runtime.AllowedHosts, true
		}
	default:
		return "", false
	}

	return Default(name)
}
