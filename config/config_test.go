package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const blogConfig = `
siteMetadata:
  title: "Jordy's blog"
  name: jordy.app
  siteUrl: https://jordy.app/
  description: "Jordy van Domselaar's blog"
  hero:
    heading: Welcome to my blog. Here I write about things I like.
    maxWidth: 652
  social:
    - name: twitter
      url: https://twitter.com/Jordy_vD_
    - name: github
      url: https://github.com/jordyvandomselaar
plugins:
  - resolve: "@narative/gatsby-theme-novela"
    options:
      contentPosts: content/posts
      contentAuthors: content/authors
      basePath: /
      authorsPage: true
      sources:
        local: true
  - resolve: gatsby-plugin-manifest
    options:
      name: Novela by Narative
      short_name: Novela
      start_url: /
      background_color: "#fff"
      theme_color: "#fff"
      display: standalone
      icon: src/assets/favicon.png
  - resolve: gatsby-plugin-netlify-cms
    options: {}
  - resolve: gatsby-plugin-google-gtag
    options:
      trackingIds: [G-TEST123]
      gtagConfig:
        anonymize_ip: true
        cookie_expires: 0
      pluginConfig:
        head: false
        respectDNT: true
        exclude: ["/preview/**"]
server:
  cacheTTL: 10m
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDecodesMetadataAndPlugins(t *testing.T) {
	cfg, err := Load(writeConfig(t, blogConfig))
	require.NoError(t, err)

	require.Equal(t, "Jordy's blog", cfg.Site.Title)
	require.Equal(t, "https://jordy.app", cfg.Site.SiteURL)
	require.Equal(t, 652, cfg.Site.Hero.MaxWidth)
	require.Len(t, cfg.Site.Social, 2)
	require.Equal(t, "github", cfg.Site.Social[1].Name)

	require.Len(t, cfg.Plugins, 4)
	require.Equal(t, ThemePlugin, cfg.Plugins[0].Resolve())
	require.Equal(t, AnalyticsPlugin, cfg.Plugins[3].Resolve())

	theme := cfg.Theme()
	require.True(t, theme.AuthorsPage)
	require.Equal(t, 6, theme.PageLength)
	require.Equal(t, "/authors", theme.AuthorsPath)

	m, ok := cfg.Manifest()
	require.True(t, ok)
	require.Equal(t, "Novela", m.ShortName)
	require.Equal(t, "#fff", m.BackgroundColor)

	cms, ok := cfg.CMS()
	require.True(t, ok)
	require.Equal(t, "admin", cms.PublicPath)
	require.Equal(t, "git-gateway", cms.Backend)

	a, ok := cfg.Analytics()
	require.True(t, ok)
	require.Equal(t, []string{"G-TEST123"}, a.TrackingIDs)
	require.True(t, a.GtagConfig.AnonymizeIP)
	require.True(t, a.PluginConfig.RespectDNT)

	require.Equal(t, 10*time.Minute, cfg.Server.CacheTTL)
	require.Equal(t, ":3000", cfg.Server.Addr)
}

func TestLoadResolvesPathsAgainstConfigDir(t *testing.T) {
	path := writeConfig(t, blogConfig)
	dir := filepath.Dir(path)
	t.Chdir(t.TempDir())

	cfg, err := Load(path)
	require.NoError(t, err)

	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	require.Equal(t, absDir, cfg.Dir)

	theme := cfg.Theme()
	require.Equal(t, "content/posts", theme.ContentPosts)
	require.Equal(t, filepath.Join(absDir, "content", "posts"), cfg.Path(theme.ContentPosts))
	require.Equal(t, filepath.Join(absDir, "content", "authors"), cfg.Path(theme.ContentAuthors))
	require.Equal(t, filepath.Join(absDir, "data", "index.db"), cfg.Path(cfg.Server.DatabasePath))
	require.Equal(t, filepath.Join(absDir, "static"), cfg.Path(cfg.Server.StaticDir))
	manifest, ok := cfg.Manifest()
	require.True(t, ok)
	require.Equal(t, filepath.Join(absDir, "src", "assets", "favicon.png"), cfg.Path(manifest.Icon))
}

func TestPathKeepsAbsoluteAndEmpty(t *testing.T) {
	cfg := &Config{Dir: filepath.FromSlash("/srv/blog")}
	abs := filepath.Join(t.TempDir(), "posts")
	require.Equal(t, abs, cfg.Path(abs))
	require.Equal(t, "", cfg.Path(""))
	require.Equal(t, "posts", (&Config{}).Path("posts"))
}

func TestLoadEnvOverridesServer(t *testing.T) {
	t.Setenv("NOVELA_SERVER_ADDR", ":8080")

	cfg, err := Load(writeConfig(t, blogConfig))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadRejectsUnknownPlugin(t *testing.T) {
	_, err := Load(writeConfig(t, `
plugins:
  - resolve: "@narative/gatsby-theme-novela"
  - resolve: gatsby-plugin-sass
`))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Error(), "gatsby-plugin-sass")
}

func TestLoadRejectsUnknownOption(t *testing.T) {
	_, err := Load(writeConfig(t, `
plugins:
  - resolve: "@narative/gatsby-theme-novela"
    options:
      contentPost: content/posts
`))
	require.Error(t, err)
	require.Contains(t, strings.ToLower(err.Error()), "contentpost")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func validConfig() *Config {
	cfg := &Config{
		Site: SiteMetadata{
			Title:   "Blog",
			SiteURL: "https://example.com",
			Social: []SocialLink{
				{Name: "github", URL: "https://github.com/example"},
			},
		},
		Plugins: []Plugin{&ThemeOptions{}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsDuplicateSocialNames(t *testing.T) {
	cfg := validConfig()
	cfg.Site.Social = append(cfg.Site.Social, SocialLink{Name: "GitHub", URL: "https://github.com/other"})

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate platform")
}

func TestValidateRejectsRelativeURLs(t *testing.T) {
	cfg := validConfig()
	cfg.Site.Social[0].URL = "github.com/example"

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not an absolute URL")
}

func TestValidateRequiresTheme(t *testing.T) {
	cfg := validConfig()
	cfg.Plugins = nil

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be activated")
}

func TestValidateRejectsCMSBeforeTheme(t *testing.T) {
	cfg := validConfig()
	cfg.Plugins = []Plugin{&CMSOptions{}, &ThemeOptions{}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), `"@narative/gatsby-theme-novela" must be activated before "gatsby-plugin-netlify-cms"`)
}

func TestValidateAcceptsCMSAfterTheme(t *testing.T) {
	cfg := validConfig()
	cfg.Plugins = []Plugin{&ThemeOptions{}, &CMSOptions{}}
	cfg.ApplyDefaults()

	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsDuplicatePlugin(t *testing.T) {
	cfg := validConfig()
	cfg.Plugins = []Plugin{&ThemeOptions{}, &ThemeOptions{}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "more than once")
}

func TestValidateCollectsPluginProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Plugins = append(cfg.Plugins,
		&ManifestOptions{Display: "window"},
		&AnalyticsOptions{},
	)

	err := cfg.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 2)
	require.Contains(t, verr.Problems[0], "name is required")
	require.Contains(t, verr.Problems[0], "icon is required")
	require.Contains(t, verr.Problems[1], "tracking id")
}

func TestThemeRejectsContentful(t *testing.T) {
	theme := &ThemeOptions{Sources: Sources{Contentful: true}}
	theme.setDefaults()
	require.Error(t, theme.Validate())
}

func TestThemeDefaultsToLocalSource(t *testing.T) {
	theme := DefaultTheme()
	require.True(t, theme.Sources.Local)
	require.Equal(t, "content/posts", theme.ContentPosts)
	require.NoError(t, theme.Validate())
}

func TestThemeFallsBackWhenNotActivated(t *testing.T) {
	cfg := &Config{}
	require.Equal(t, "/", cfg.Theme().BasePath)
}
