package settingsfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-settings-admin/go-settings-admin/internal/db/models"
)

func testProfile() *models.Profile {
	return &models.Profile{
		Name:         "Default",
		IsActive:     true,
		DebugMode:    true,
		SecretKey:    "s3cret",
		TimeZone:     "America/Chicago",
		AppendSlash:  false,
		AllowedHosts: "example.com,www.example.com",
	}
}

func TestRender(t *testing.T) {
	out := Render(testProfile().Mappings())

	assert.True(t, strings.HasPrefix(out, Header), "output must start with the warning header")
	assert.Contains(t, out, "[runtime]")
	assert.Contains(t, out, "debug = true")
	assert.Contains(t, out, `secret_key = "s3cret"`)
	assert.Contains(t, out, `time_zone = "America/Chicago"`)
	assert.Contains(t, out, "append_slash = false")
	assert.Contains(t, out, `allowed_hosts = "example.com,www.example.com"`)
}

func TestRenderOneLinePerWritableField(t *testing.T) {
	out := Render(testProfile().Mappings())

	var lines []string

	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, " = ") {
			lines = append(lines, l)
		}
	}

	assert.Len(t, lines, 5)
}

func TestRenderSkipsEmptyValues(t *testing.T) {
	p := testProfile()
	p.SecretKey = ""

	out := Render(p.Mappings())

	assert.NotContains(t, out, "secret_key")
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime.toml")

	err := Write(path, testProfile().Mappings())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render(testProfile().Mappings()), string(content))
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime.toml")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	err := Write(path, testProfile().Mappings())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime.toml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	require.NoError(t, Remove(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSignalRebootTouchesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentinel")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	stale := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, stale, stale))

	SignalReboot([]string{path})

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(stale), "mtime should have been refreshed")
}

func TestSignalRebootSkipsMissingFile(t *testing.T) {
	// must not panic or error on nonexistent paths
	SignalReboot([]string{filepath.Join(t.TempDir(), "does-not-exist")})
}
