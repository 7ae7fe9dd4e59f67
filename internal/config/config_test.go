package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.DB.Engine == "" {
		t.Error("DB.Engine should not be empty")
	}

	if cfg.Settings.Dir != configPath {
		t.Errorf("Settings.Dir = %v, want %v", cfg.Settings.Dir, configPath)
	}

	if cfg.Settings.FileName == "" {
		t.Error("Settings.FileName should not be empty")
	}
}

func TestReadConfigOverlay(t *testing.T) {
	dir := t.TempDir()

	mainConfig := `Title = "Overlay Test"

[Webserver]
Port = 8080
URL = "http://localhost:8080"

[runtime]
debug = false
time_zone = "America/Chicago"
`

	overlay := `# generated
[runtime]
debug = true
time_zone = "Europe/Berlin"
secret_key = "from-overlay"
`

	if err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(mainConfig), 0o600); err != nil {
		t.Fatalf("failed to write main.toml: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultSettingsFileName), []byte(overlay), 0o600); err != nil {
		t.Fatalf("failed to write overlay: %v", err)
	}

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Overlay values win over main.toml.
	if !cfg.Runtime.Debug {
		t.Error("Runtime.Debug should be true from the overlay")
	}

	if cfg.Runtime.TimeZone != "Europe/Berlin" {
		t.Errorf("Runtime.TimeZone = %v, want Europe/Berlin", cfg.Runtime.TimeZone)
	}

	if cfg.Runtime.SecretKey != "from-overlay" {
		t.Errorf("Runtime.SecretKey = %v, want from-overlay", cfg.Runtime.SecretKey)
	}

	// Values the overlay leaves alone survive from main.toml.
	if cfg.Title != "Overlay Test" {
		t.Errorf("Title = %v, want Overlay Test", cfg.Title)
	}
}

func TestReadConfigWithoutOverlay(t *testing.T) {
	dir := t.TempDir()

	mainConfig := `Title = "No Overlay"

[Webserver]
Port = 8080
URL = "http://localhost:8080"

[runtime]
time_zone = "America/New_York"
`

	if err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(mainConfig), 0o600); err != nil {
		t.Fatalf("failed to write main.toml: %v", err)
	}

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Runtime.TimeZone != "America/New_York" {
		t.Errorf("Runtime.TimeZone = %v, want America/New_York", cfg.Runtime.TimeZone)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: false,
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{
					Port: 0,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: true,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidationDefaults(t *testing.T) {
	cfg := Config{
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.Webserver.ShutDownTime != 5 {
		t.Errorf("Webserver.ShutDownTime = %v, want 5", cfg.Webserver.ShutDownTime)
	}

	if cfg.DB.Engine != EngineSQLite {
		t.Errorf("DB.Engine = %v, want %v", cfg.DB.Engine, EngineSQLite)
	}

	if cfg.DB.File != "settings.db" {
		t.Errorf("DB.File = %v, want settings.db", cfg.DB.File)
	}

	if cfg.Settings.FileName != DefaultSettingsFileName {
		t.Errorf("Settings.FileName = %v, want %v", cfg.Settings.FileName, DefaultSettingsFileName)
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	// Set JSON override environment variable
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}
}

func TestSetting(t *testing.T) {
	tests := []struct {
		name      string
		runtime   Runtime
		setting   string
		wantValue string
		wantOK    bool
	}{
		{"debug set", Runtime{Debug: true}, SettingDebug, "true", true},
		{"debug unset", Runtime{}, SettingDebug, "false", true},
		{"append slash set", Runtime{AppendSlash: true}, SettingAppendSlash, "true", true},
		{"secret key set", Runtime{SecretKey: "s3cret"}, SettingSecretKey, "s3cret", true},
		{"secret key fallback", Runtime{}, SettingSecretKey, DefaultSecretKey, true},
		{"time zone set", Runtime{TimeZone: "Europe/Berlin"}, SettingTimeZone, "Europe/Berlin", true},
		{"time zone fallback", Runtime{}, SettingTimeZone, "America/Chicago", true},
		{"allowed hosts set", Runtime{AllowedHosts: "example.com"}, SettingAllowedHosts, "example.com", true},
		{"allowed hosts fallback", Runtime{}, SettingAllowedHosts, "*", true},
		{"unknown name", Runtime{}, "no_such_setting", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Runtime: tt.runtime}

			value, ok := cfg.Setting(tt.setting)
			if ok != tt.wantOK {
				t.Errorf("Setting(%q) ok = %v, want %v", tt.setting, ok, tt.wantOK)
			}

			if value != tt.wantValue {
				t.Errorf("Setting(%q) = %v, want %v", tt.setting, value, tt.wantValue)
			}
		})
	}
}

func TestSplitHostList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single host", "example.com", []string{"example.com"}},
		{"multiple hosts", "a.example.com,b.example.com", []string{"a.example.com", "b.example.com"}},
		{"spaces trimmed", " a.example.com , b.example.com ", []string{"a.example.com", "b.example.com"}},
		{"empty entries dropped", "a.example.com,,b.example.com,", []string{"a.example.com", "b.example.com"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitHostList(tt.input)

			if len(got) != len(tt.want) {
				t.Fatalf("SplitHostList(%q) = %v, want %v", tt.input, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitHostList(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDumpConfig(t *testing.T) {
	var err error

	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	var tomlStr string

	tomlStr, err = DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if tomlStr == "" {
		t.Error("DumpConfig() returned empty string")
	}

	// Check if output contains expected values
	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}
}

func TestDumpConfigJSON(t *testing.T) {
	var err error

	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	var jsonStr string

	jsonStr, err = DumpConfigJSON(cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if jsonStr == "" {
		t.Error("DumpConfigJSON() returned empty string")
	}

	// Check if output is valid JSON by checking for expected fields
	if !strings.Contains(jsonStr, "Test") {
		t.Error("DumpConfigJSON() output should contain Title")
	}
}
