// Package models contains database model definitions.
package models

import (
	"strconv"
	"time"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
)

// DefaultProfileName is the name given to the profile created at first startup.
const DefaultProfileName = "Default"

// Profile represents one named runtime settings profile. At most one profile
// is active at a time; the active profile's values are rendered into the
// generated overlay file.
type Profile struct {
	ID       uint64 `gorm:"primaryKey"`
	Name     string `gorm:"unique;size:255;not null"`
	IsActive bool

	DebugMode    bool
	SecretKey    string `gorm:"size:255"`
	TimeZone     string `gorm:"size:255"`
	AppendSlash  bool
	AllowedHosts string `gorm:"size:255"` // comma-delimited host allow-list

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Mapping binds one profile field to a runtime setting key. Readable fields
// are refreshed from live configuration, writable fields are rendered into
// the generated overlay file.
type Mapping struct {
	Key      string
	Readable bool
	Writable bool
	Read     func(cfg *config.Config) // copy the live value into the profile
	Encode   func() string            // file representation, "" skips the line
}

// Mappings returns the field-to-setting mapping table for this profile.
func (p *Profile) Mappings() []Mapping {
	return []Mapping{
		{
			Key:      config.SettingDebug,
			Readable: true,
			Writable: true,
			Read:     func(cfg *config.Config) { p.DebugMode = boolSetting(cfg, config.SettingDebug) },
			Encode:   func() string { return strconv.FormatBool(p.DebugMode) },
		},
		{
			Key:      config.SettingSecretKey,
			Readable: true,
			Writable: true,
			Read:     func(cfg *config.Config) { p.SecretKey = stringSetting(cfg, config.SettingSecretKey) },
			Encode:   func() string { return encodeString(p.SecretKey) },
		},
		{
			Key:      config.SettingTimeZone,
			Readable: true,
			Writable: true,
			Read:     func(cfg *config.Config) { p.TimeZone = stringSetting(cfg, config.SettingTimeZone) },
			Encode:   func() string { return encodeString(p.TimeZone) },
		},
		{
			Key:      config.SettingAppendSlash,
			Readable: true,
			Writable: true,
			Read:     func(cfg *config.Config) { p.AppendSlash = boolSetting(cfg, config.SettingAppendSlash) },
			Encode:   func() string { return strconv.FormatBool(p.AppendSlash) },
		},
		{
			Key:      config.SettingAllowedHosts,
			Readable: true,
			Writable: true,
			Read:     func(cfg *config.Config) { p.AllowedHosts = stringSetting(cfg, config.SettingAllowedHosts) },
			Encode:   func() string { return encodeString(p.AllowedHosts) },
		},
	}
}

// AllowedHostList splits the comma-delimited allow-list into single hosts.
func (p *Profile) AllowedHostList() []string {
	return config.SplitHostList(p.AllowedHosts)
}

// encodeString returns the quoted file representation of a string setting.
// Empty strings encode to "" and their line is skipped by the writer.
func encodeString(v string) string {
	if v == "" {
		return ""
	}

	return strconv.Quote(v)
}

func boolSetting(cfg *config.Config, name string) bool {
	v, _ := cfg.Setting(name)

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}

	return b
}

func stringSetting(cfg *config.Config, name string) string {
	v, _ := cfg.Setting(name)

	return v
}
