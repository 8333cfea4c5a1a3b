package novela

import (
	"log/slog"
)

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides the directory whose files are served from the site
// root (default: server.staticDir from the config).
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Site.StaticDir = dir
	}
}

// WithLogger replaces the logger used for reloads and builds.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Site.Logger = l
	}
}
