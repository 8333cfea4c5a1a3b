// Package novela is a blog engine with the Novela theme, built with Go, Echo
// and templ. It reads a declarative site configuration and markdown content,
// serves it over HTTP and exports it as static files.
//
// Posts may embed tip callouts (see package components), and the site can
// activate a web manifest, a CMS admin page and an analytics tag through
// typed plugin activations (see package config).
package novela

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// App serves a Site over HTTP. It wires the cache, handlers, middleware and
// views together.
type App struct {
	Site *Site
	Echo *echo.Echo

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	initialized  bool
}

// New creates an App for site.
func New(site *Site, opts ...Option) *App {
	a := &App{
		Site: site,
		Echo: echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// previewEnabled reports whether the preview login is configured.
func (a *App) previewEnabled() bool {
	return a.Site.Config.Server.AdminPassword != ""
}

// Init registers middleware and routes. Start calls it; tests call it to
// drive the App through Echo.ServeHTTP.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	srv := a.Site.Config.Server
	if a.previewEnabled() && srv.SessionSecret == "" {
		return fmt.Errorf("novela: server.sessionSecret is required when server.adminPassword is set")
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// Start initializes the App and listens on server.addr until Shutdown.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Site.Config.Server.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Site != nil {
		return a.Site.Close()
	}
	return nil
}
