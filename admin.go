package novela

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordyvandomselaar/novela/cms"
	"github.com/jordyvandomselaar/novela/views"
)

func (a *App) handlePreviewLogin(c echo.Context) error {
	if IsPreview(c) {
		return c.Redirect(http.StatusSeeOther, views.HomePath(a.Site.Config.Theme()))
	}
	return Render(c, a.Site.Views.PreviewLogin(a.globals(c), false, CsrfToken(c)))
}

func (a *App) handlePreviewLoginSubmit(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Site.Config.Server.AdminPassword)) == 1 {
		if err := setPreviewSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, views.HomePath(a.Site.Config.Theme()))
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Site.Views.PreviewLogin(a.globals(c), true, CsrfToken(c)))
}

func (a *App) handlePreviewLogout(c echo.Context) error {
	if err := clearPreviewSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, views.HomePath(a.Site.Config.Theme()))
}

func (a *App) handleCMSPage(c echo.Context) error {
	opts, _ := a.Site.Config.CMS()
	return Render(c, cms.AdminPage(opts))
}

func (a *App) handleCMSConfig(c echo.Context) error {
	opts, _ := a.Site.Config.CMS()
	data, err := cms.Config(opts, a.Site.Config.Theme(), a.Site.Config.Server.StaticDir)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/yaml; charset=utf-8", data)
}
