package novela

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jordyvandomselaar/novela/cms"
	"github.com/jordyvandomselaar/novela/manifest"
	"github.com/jordyvandomselaar/novela/views"
)

func (a *App) setupRoutes() {
	e := a.Echo
	cfg := a.Site.Config
	theme := cfg.Theme()

	// Theme stylesheet, then the static directory from the site root.
	assets, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET(views.StylesheetPath, echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(assets)))))
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleFeed)

	if _, ok := cfg.Manifest(); ok {
		e.GET(manifest.Path, a.handleManifest)
		e.GET("/icons/:file", a.handleIcon)
	}
	if opts, ok := cfg.CMS(); ok {
		root := cms.Root(opts)
		e.GET(root, a.handleCMSPage)
		e.GET(root+cms.ConfigFile, a.handleCMSConfig)
	}
	if a.previewEnabled() {
		g := e.Group("/preview", a.csrfMiddleware())
		g.GET("/login/", a.handlePreviewLogin)
		g.POST("/login/", a.handlePreviewLoginSubmit)
		g.POST("/logout/", a.handlePreviewLogout)
	}
	if theme.AuthorsPage {
		e.GET(views.AuthorPath(theme, ":slug"), a.handleAuthor)
	}

	base := views.HomePath(theme)
	e.GET(base, a.handleHome)
	e.GET(base+"page/:n/", a.handlePage)
	e.GET(base+":slug/", a.handlePost)
	e.GET(base+":slug/*", a.handlePostAsset)
	e.GET("/*", a.handleStatic)
}

func (a *App) globals(c echo.Context) views.Globals {
	req := c.Request()
	return a.Site.globals(req.URL.Path, req.Header.Get("DNT") == "1", IsPreview(c))
}

func (a *App) handleHome(c echo.Context) error {
	return a.renderHome(c, 1)
}

func (a *App) handlePage(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 {
		return echo.ErrNotFound
	}
	if n == 1 {
		return c.Redirect(http.StatusMovedPermanently, views.HomePath(a.Site.Config.Theme()))
	}
	return a.renderHome(c, n)
}

func (a *App) renderHome(c echo.Context, n int) error {
	g := a.globals(c)
	page, err := a.Site.HomePage(n, g.Preview)
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return Render(c, a.Site.Views.Home(g, page))
}

func (a *App) handlePost(c echo.Context) error {
	g := a.globals(c)
	page, err := a.Site.PostPage(c.Param("slug"), g.Preview)
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return Render(c, a.Site.Views.Post(g, page))
}

func (a *App) handleAuthor(c echo.Context) error {
	g := a.globals(c)
	page, err := a.Site.AuthorPage(c.Param("slug"), g.Preview)
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return Render(c, a.Site.Views.Author(g, page))
}

func (a *App) handleSitemap(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.Site.writeSitemap(c.Response())
}

func (a *App) handleFeed(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.Site.writeRSS(c.Response())
}

// handleRobots prefers a robots.txt from the static directory.
func (a *App) handleRobots(c echo.Context) error {
	if file, ok := safeJoin(a.Site.StaticDir, "robots.txt"); ok && isFile(file) {
		return c.File(file)
	}
	return c.String(http.StatusOK, robotsTxt(a.Site.Config))
}

func (a *App) handleManifest(c echo.Context) error {
	opts, _ := a.Site.Config.Manifest()
	data, err := manifest.BuildManifest(opts).JSON()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/manifest+json", data)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Site.Views.NotFound(a.globals(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Site.Views.ServerError(a.globals(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
