// Package config loads the site configuration: static metadata consumed by
// page templates, and the ordered list of plugin activations that decide which
// outputs a build produces.
//
// The file mirrors the shape of a Gatsby config:
//
//	siteMetadata:
//	  title: Jordy's blog
//	  social:
//	    - name: github
//	      url: https://github.com/jordyvandomselaar
//	plugins:
//	  - resolve: "@narative/gatsby-theme-novela"
//	    options:
//	      authorsPage: true
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the fully decoded and validated site configuration.
type Config struct {
	Site    SiteMetadata
	Plugins []Plugin
	Server  Server

	// Dir is the absolute directory of the file Load read. Relative paths in
	// the config are resolved against it by Path.
	Dir string
}

// Path resolves a path from the config file. Absolute paths, empty paths and
// configs built without a file are returned unchanged.
func (c *Config) Path(p string) string {
	if p == "" || c.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// SiteMetadata is read-only input to every page template.
type SiteMetadata struct {
	Title       string       `mapstructure:"title"`
	Name        string       `mapstructure:"name"`
	SiteURL     string       `mapstructure:"siteUrl"`
	Description string       `mapstructure:"description"`
	Hero        Hero         `mapstructure:"hero"`
	Social      []SocialLink `mapstructure:"social"`
}

// Hero is the heading block on the home page.
type Hero struct {
	Heading  string `mapstructure:"heading"`
	MaxWidth int    `mapstructure:"maxWidth"`
}

// SocialLink is one (platform, url) pair shown in the site header and footer.
type SocialLink struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// Server holds runtime settings that only matter to `novela serve`.
type Server struct {
	Addr          string        `mapstructure:"addr"`
	DatabasePath  string        `mapstructure:"databasePath"`
	StaticDir     string        `mapstructure:"staticDir"`
	AdminPassword string        `mapstructure:"adminPassword"`
	SessionSecret string        `mapstructure:"sessionSecret"`
	CookieSecure  bool          `mapstructure:"cookieSecure"`
	CacheTTL      time.Duration `mapstructure:"cacheTTL"`
}

const (
	defaultHeroMaxWidth = 652
	defaultAddr         = ":3000"
	defaultDatabasePath = "data/index.db"
	defaultStaticDir    = "static"
	defaultCacheTTL     = 5 * time.Minute
)

func (s *SiteMetadata) setDefaults() {
	s.SiteURL = strings.TrimSuffix(s.SiteURL, "/")
	if s.Title == "" {
		s.Title = "Blog"
	}
	if s.Name == "" {
		s.Name = s.Title
	}
	if s.Hero.MaxWidth == 0 {
		s.Hero.MaxWidth = defaultHeroMaxWidth
	}
}

func (s *Server) setDefaults() {
	if s.Addr == "" {
		s.Addr = defaultAddr
	}
	if s.DatabasePath == "" {
		s.DatabasePath = defaultDatabasePath
	}
	if s.StaticDir == "" {
		s.StaticDir = defaultStaticDir
	}
	if s.CacheTTL == 0 {
		s.CacheTTL = defaultCacheTTL
	}
}

type rawConfig struct {
	SiteMetadata SiteMetadata `mapstructure:"siteMetadata"`
	Plugins      []rawPlugin  `mapstructure:"plugins"`
	Server       Server       `mapstructure:"server"`
}

type rawPlugin struct {
	Resolve string         `mapstructure:"resolve"`
	Options map[string]any `mapstructure:"options"`
}

// Load reads the config file at path. An empty path looks for config.yaml in
// the working directory. NOVELA_* environment variables override server
// settings, e.g. NOVELA_SERVER_ADDR.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.databasePath", defaultDatabasePath)
	v.SetDefault("server.staticDir", defaultStaticDir)
	v.SetDefault("server.adminPassword", "")
	v.SetDefault("server.sessionSecret", "")
	v.SetDefault("server.cookieSecure", false)
	v.SetDefault("server.cacheTTL", defaultCacheTTL)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NOVELA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}
	if dir, err := filepath.Abs(filepath.Dir(v.ConfigFileUsed())); err == nil {
		cfg.Dir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func describe(path string) string {
	if path == "" {
		return "config.yaml"
	}
	return path
}

func fromRaw(raw rawConfig) (*Config, error) {
	cfg := &Config{
		Site:   raw.SiteMetadata,
		Server: raw.Server,
	}
	verr := &ValidationError{}
	for i, rp := range raw.Plugins {
		p, err := decodePlugin(rp.Resolve, rp.Options)
		if err != nil {
			verr.add("plugins[%d] %q: %v", i, rp.Resolve, err)
			continue
		}
		cfg.Plugins = append(cfg.Plugins, p)
	}
	if verr.has() {
		return nil, verr
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills zero values. Load calls it; code that builds a Config
// by hand should call it before Validate.
func (c *Config) ApplyDefaults() {
	c.Site.setDefaults()
	c.Server.setDefaults()
	for _, p := range c.Plugins {
		if d, ok := p.(interface{ setDefaults() }); ok {
			d.setDefaults()
		}
	}
}
