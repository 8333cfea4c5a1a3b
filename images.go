package novela

import (
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/jordyvandomselaar/novela/manifest"
)

// iconSet lazily generates the manifest icons and keeps them until the next
// reload.
type iconSet struct {
	mu     sync.Mutex
	source func() (map[string][]byte, error)
	icons  map[string][]byte
}

func (i *iconSet) get() (map[string][]byte, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.icons != nil {
		return i.icons, nil
	}
	icons, err := i.source()
	if err != nil {
		return nil, err
	}
	i.icons = icons
	return icons, nil
}

func (i *iconSet) reset() {
	i.mu.Lock()
	i.icons = nil
	i.mu.Unlock()
}

func (s *Site) iconSource() (map[string][]byte, error) {
	opts, ok := s.Config.Manifest()
	if !ok {
		return nil, ErrNotFound
	}
	return manifest.Icons(s.Config.Path(opts.Icon))
}

// Icons returns the resized manifest icons keyed by URL path.
func (s *Site) Icons() (map[string][]byte, error) {
	return s.icons.get()
}

func (a *App) handleIcon(c echo.Context) error {
	icons, err := a.Site.Icons()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	data, ok := icons["/icons/"+c.Param("file")]
	if !ok {
		return echo.ErrNotFound
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// handlePostAsset serves files that sit next to a post's index.md, such as
// its hero image. Paths that do not belong to a post fall through to the
// static directory.
func (a *App) handlePostAsset(c echo.Context) error {
	post, err := a.Site.Cache.GetPost(c.Param("slug"))
	if errors.Is(err, ErrNotFound) || (err == nil && post.AssetDir == "") {
		return a.handleStatic(c)
	}
	if err != nil {
		return err
	}
	rel := c.Param("*")
	if isMarkdownFile(rel) {
		return echo.ErrNotFound
	}
	file, ok := safeJoin(post.AssetDir, rel)
	if !ok || !isFile(file) {
		return echo.ErrNotFound
	}
	return c.File(file)
}

// handleStatic serves the static directory from the site root.
func (a *App) handleStatic(c echo.Context) error {
	file, ok := safeJoin(a.Site.StaticDir, c.Request().URL.Path)
	if !ok || !isFile(file) {
		return echo.ErrNotFound
	}
	return c.File(file)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
