package web

import (
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
)

// AllowedHostsMiddleware rejects requests whose Host header is not covered by
// the runtime host allow-list. A "*" entry allows every host, an empty list
// disables the check.
func AllowedHostsMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hosts := config.SplitHostList(cfg.Runtime.AllowedHosts)
		if len(hosts) == 0 {
			return c.Next()
		}

		reqHost := c.Hostname()

		for _, h := range hosts {
			if h == "*" || strings.EqualFold(h, reqHost) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusBadRequest).SendString("Host not allowed")
	}
}

// AppendSlashMiddleware redirects GET requests without a trailing slash to
// the slashed path when the append_slash runtime setting is enabled. Paths
// that look like files (with an extension) are left alone.
func AppendSlashMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Runtime.AppendSlash || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		p := c.Path()
		if p == "/" || strings.HasSuffix(p, "/") || path.Ext(p) != "" {
			return c.Next()
		}

		return c.Redirect(p+"/", fiber.StatusMovedPermanently)
	}
}
