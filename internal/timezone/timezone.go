// Package timezone provides the list of IANA time zone names offered in the
// profile edit form.
package timezone

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// zoneDirs are the places the system zoneinfo database is commonly found.
var zoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/share/lib/zoneinfo",
}

// fallback is used when no system zoneinfo database is available.
var fallback = []string{
	"Africa/Cairo",
	"Africa/Johannesburg",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/New_York",
	"America/Sao_Paulo",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Europe/Amsterdam",
	"Europe/Berlin",
	"Europe/London",
	"Europe/Madrid",
	"Europe/Moscow",
	"Europe/Paris",
	"Pacific/Auckland",
	"UTC",
}

var (
	once  sync.Once
	names []string
)

// Common returns the sorted list of available time zone names. The system
// zoneinfo database is read once; when none is found a built-in list of
// common zones is returned.
func Common() []string {
	once.Do(func() {
		for _, dir := range zoneDirs {
			if zones := readZoneDir(dir); len(zones) > 0 {
				names = zones
				return
			}
		}

		names = fallback
	})

	return names
}

// Valid reports whether name is in the available zone list. The empty name
// is valid and means the system default.
func Valid(name string) bool {
	if name == "" {
		return true
	}

	for _, z := range Common() {
		if z == name {
			return true
		}
	}

	return false
}

func readZoneDir(dir string) []string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}

	var zones []string

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil //nolint:nilerr
		}

		name := strings.TrimPrefix(path, dir+string(filepath.Separator))

		// skip the posix/right duplicates and non-zone files
		first := strings.SplitN(name, string(filepath.Separator), 2)[0]
		switch first {
		case "posix", "right", "posixrules", "leapseconds", "tzdata.zi", "zone.tab", "zone1970.tab", "iso3166.tab":
			return nil
		}

		// region zones only, same shape as the common zone lists
		if !strings.Contains(name, string(filepath.Separator)) && name != "UTC" {
			return nil
		}

		zones = append(zones, filepath.ToSlash(name))

		return nil
	})

	sort.Strings(zones)

	return zones
}
