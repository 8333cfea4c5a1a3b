package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Plugin names as they appear in the resolve field.
const (
	ThemePlugin     = "@narative/gatsby-theme-novela"
	ManifestPlugin  = "gatsby-plugin-manifest"
	CMSPlugin       = "gatsby-plugin-netlify-cms"
	AnalyticsPlugin = "gatsby-plugin-google-gtag"
)

// Plugin is one activation in the plugins list. Each known plugin has its own
// options type; the concrete type is the discriminator.
type Plugin interface {
	Resolve() string
	// Requires lists plugins that must be activated earlier in the list.
	Requires() []string
	Validate() error
}

var registry = map[string]func() Plugin{
	ThemePlugin:     func() Plugin { return &ThemeOptions{} },
	ManifestPlugin:  func() Plugin { return &ManifestOptions{} },
	CMSPlugin:       func() Plugin { return &CMSOptions{} },
	AnalyticsPlugin: func() Plugin { return &AnalyticsOptions{} },
}

// KnownPlugins returns the resolve names this build understands.
func KnownPlugins() []string {
	return []string{ThemePlugin, ManifestPlugin, CMSPlugin, AnalyticsPlugin}
}

func decodePlugin(resolve string, options map[string]any) (Plugin, error) {
	newPlugin, ok := registry[resolve]
	if !ok {
		return nil, fmt.Errorf("unknown plugin (known: %s)", strings.Join(KnownPlugins(), ", "))
	}
	p := newPlugin()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(options); err != nil {
		return nil, err
	}
	return p, nil
}

// ThemeOptions configures the content theme: where posts and authors live and
// how listing pages are laid out.
type ThemeOptions struct {
	ContentPosts   string  `mapstructure:"contentPosts"`
	ContentAuthors string  `mapstructure:"contentAuthors"`
	BasePath       string  `mapstructure:"basePath"`
	AuthorsPath    string  `mapstructure:"authorsPath"`
	AuthorsPage    bool    `mapstructure:"authorsPage"`
	PageLength     int     `mapstructure:"pageLength"`
	Sources        Sources `mapstructure:"sources"`
	Logo           string  `mapstructure:"logo"`
	Mailchimp      bool    `mapstructure:"mailchimp"`
}

// Sources toggles where content is read from.
type Sources struct {
	Local      bool `mapstructure:"local"`
	Contentful bool `mapstructure:"contentful"`
}

// DefaultTheme returns theme options with every default applied.
func DefaultTheme() *ThemeOptions {
	t := &ThemeOptions{}
	t.setDefaults()
	return t
}

func (t *ThemeOptions) Resolve() string    { return ThemePlugin }
func (t *ThemeOptions) Requires() []string { return nil }

func (t *ThemeOptions) setDefaults() {
	if t.ContentPosts == "" {
		t.ContentPosts = "content/posts"
	}
	if t.ContentAuthors == "" {
		t.ContentAuthors = "content/authors"
	}
	if t.BasePath == "" {
		t.BasePath = "/"
	}
	if t.AuthorsPath == "" {
		t.AuthorsPath = "/authors"
	}
	if t.PageLength == 0 {
		t.PageLength = 6
	}
	if !t.Sources.Local && !t.Sources.Contentful {
		t.Sources.Local = true
	}
	if t.Logo == "" {
		t.Logo = "/logo.jpg"
	}
}

func (t *ThemeOptions) Validate() error {
	var errs []error
	if t.Sources.Contentful {
		errs = append(errs, errors.New("sources.contentful is not supported, use local content"))
	}
	if !strings.HasPrefix(t.BasePath, "/") {
		errs = append(errs, fmt.Errorf("basePath %q must start with /", t.BasePath))
	}
	if !strings.HasPrefix(t.AuthorsPath, "/") {
		errs = append(errs, fmt.Errorf("authorsPath %q must start with /", t.AuthorsPath))
	}
	if t.PageLength < 1 {
		errs = append(errs, fmt.Errorf("pageLength must be positive, got %d", t.PageLength))
	}
	return errors.Join(errs...)
}

// ManifestOptions describes the generated web app manifest.
type ManifestOptions struct {
	Name            string `mapstructure:"name"`
	ShortName       string `mapstructure:"short_name"`
	StartURL        string `mapstructure:"start_url"`
	BackgroundColor string `mapstructure:"background_color"`
	ThemeColor      string `mapstructure:"theme_color"`
	Display         string `mapstructure:"display"`
	Icon            string `mapstructure:"icon"`
}

var manifestDisplays = map[string]bool{
	"fullscreen": true,
	"standalone": true,
	"minimal-ui": true,
	"browser":    true,
}

func (m *ManifestOptions) Resolve() string    { return ManifestPlugin }
func (m *ManifestOptions) Requires() []string { return nil }

func (m *ManifestOptions) setDefaults() {
	if m.ShortName == "" {
		m.ShortName = m.Name
	}
	if m.StartURL == "" {
		m.StartURL = "/"
	}
	if m.Display == "" {
		m.Display = "standalone"
	}
}

func (m *ManifestOptions) Validate() error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if m.Icon == "" {
		errs = append(errs, errors.New("icon is required"))
	}
	if !manifestDisplays[m.Display] {
		errs = append(errs, fmt.Errorf("display %q is not one of fullscreen, standalone, minimal-ui, browser", m.Display))
	}
	return errors.Join(errs...)
}

// CMSOptions configures the git-backed CMS admin page.
type CMSOptions struct {
	PublicPath string `mapstructure:"publicPath"`
	Backend    string `mapstructure:"backend"`
	Branch     string `mapstructure:"branch"`
}

func (c *CMSOptions) Resolve() string { return CMSPlugin }

// Requires the theme because the CMS collections are derived from the theme's
// content directories.
func (c *CMSOptions) Requires() []string { return []string{ThemePlugin} }

func (c *CMSOptions) setDefaults() {
	c.PublicPath = strings.Trim(c.PublicPath, "/")
	if c.PublicPath == "" {
		c.PublicPath = "admin"
	}
	if c.Backend == "" {
		c.Backend = "git-gateway"
	}
	if c.Branch == "" {
		c.Branch = "master"
	}
}

func (c *CMSOptions) Validate() error {
	if strings.ContainsAny(c.PublicPath, " ?#") {
		return fmt.Errorf("publicPath %q is not a valid path segment", c.PublicPath)
	}
	return nil
}

// AnalyticsOptions configures the Google tag snippet.
type AnalyticsOptions struct {
	TrackingIDs  []string           `mapstructure:"trackingIds"`
	GtagConfig   GtagConfig         `mapstructure:"gtagConfig"`
	PluginConfig AnalyticsBehaviour `mapstructure:"pluginConfig"`
}

// GtagConfig is passed to every gtag('config', ...) call.
type GtagConfig struct {
	AnonymizeIP   bool `mapstructure:"anonymize_ip"`
	CookieExpires int  `mapstructure:"cookie_expires"`
}

// AnalyticsBehaviour controls where and when the snippet is emitted.
type AnalyticsBehaviour struct {
	Head       bool     `mapstructure:"head"`
	RespectDNT bool     `mapstructure:"respectDNT"`
	Exclude    []string `mapstructure:"exclude"`
}

func (a *AnalyticsOptions) Resolve() string    { return AnalyticsPlugin }
func (a *AnalyticsOptions) Requires() []string { return nil }

func (a *AnalyticsOptions) Validate() error {
	var errs []error
	if len(a.TrackingIDs) == 0 {
		errs = append(errs, errors.New("at least one tracking id is required"))
	}
	for _, id := range a.TrackingIDs {
		if strings.TrimSpace(id) == "" || strings.ContainsAny(id, `"'<>\`) {
			errs = append(errs, fmt.Errorf("invalid tracking id %q", id))
		}
	}
	if a.GtagConfig.CookieExpires < 0 {
		errs = append(errs, errors.New("gtagConfig.cookie_expires must not be negative"))
	}
	return errors.Join(errs...)
}

// Lookup returns the first activation of plugin type T.
func Lookup[T Plugin](c *Config) (T, bool) {
	for _, p := range c.Plugins {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Theme returns the theme options, or the defaults when the theme plugin is
// not activated.
func (c *Config) Theme() *ThemeOptions {
	if t, ok := Lookup[*ThemeOptions](c); ok {
		return t
	}
	return DefaultTheme()
}

func (c *Config) Manifest() (*ManifestOptions, bool)   { return Lookup[*ManifestOptions](c) }
func (c *Config) CMS() (*CMSOptions, bool)             { return Lookup[*CMSOptions](c) }
func (c *Config) Analytics() (*AnalyticsOptions, bool) { return Lookup[*AnalyticsOptions](c) }
