// Package cms serves the Netlify CMS admin page and the config it loads.
package cms

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/a-h/templ"
	"gopkg.in/yaml.v2"

	"github.com/jordyvandomselaar/novela/config"
)

const (
	cmsScript      = "https://unpkg.com/netlify-cms@^2.0.0/dist/netlify-cms.js"
	identityScript = "https://identity.netlify.com/v1/netlify-identity-widget.js"
)

// ConfigFile is the file name the admin page asks the CMS to load.
const ConfigFile = "config.yml"

// Root returns the URL path the admin page is served under, with slashes on
// both ends.
func Root(opts *config.CMSOptions) string {
	return "/" + strings.Trim(opts.PublicPath, "/") + "/"
}

// AdminPage renders the single page that boots the CMS.
func AdminPage(opts *config.CMSOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>")
		b.WriteString(`<html lang="en"><head><meta charset="utf-8"/>`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0"/>`)
		b.WriteString("<title>Content Manager</title>")
		b.WriteString(`<link href="` + templ.EscapeString(Root(opts)+ConfigFile) + `" type="text/yaml" rel="cms-config-url"/>`)
		if opts.Backend == "git-gateway" {
			b.WriteString(`<script src="` + identityScript + `"></script>`)
		}
		b.WriteString("</head><body>")
		b.WriteString(`<script src="` + cmsScript + `"></script>`)
		b.WriteString("</body></html>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

type cmsConfig struct {
	Backend      backend      `yaml:"backend"`
	MediaFolder  string       `yaml:"media_folder"`
	PublicFolder string       `yaml:"public_folder"`
	Collections  []collection `yaml:"collections"`
}

type backend struct {
	Name   string `yaml:"name"`
	Branch string `yaml:"branch,omitempty"`
}

type collection struct {
	Name      string  `yaml:"name"`
	Label     string  `yaml:"label"`
	Folder    string  `yaml:"folder"`
	Create    bool    `yaml:"create"`
	Extension string  `yaml:"extension"`
	Format    string  `yaml:"format"`
	Slug      string  `yaml:"slug"`
	Fields    []field `yaml:"fields"`
}

type field struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Widget   string `yaml:"widget"`
	Required *bool  `yaml:"required,omitempty"`
}

func optional(name, label, widget string) field {
	no := false
	return field{Name: name, Label: label, Widget: widget, Required: &no}
}

// Config renders the CMS config.yml. Posts and authors are editable as
// frontmatter markdown files in the theme's content directories; uploads go
// to the static images folder.
func Config(opts *config.CMSOptions, theme *config.ThemeOptions, staticDir string) ([]byte, error) {
	c := cmsConfig{
		Backend:      backend{Name: opts.Backend, Branch: opts.Branch},
		MediaFolder:  path.Join(staticDir, "images"),
		PublicFolder: "/images",
		Collections: []collection{
			{
				Name:      "posts",
				Label:     "Posts",
				Folder:    theme.ContentPosts,
				Create:    true,
				Extension: "md",
				Format:    "frontmatter",
				Slug:      "{{year}}-{{month}}-{{day}}-{{slug}}",
				Fields: []field{
					{Name: "title", Label: "Title", Widget: "string"},
					{Name: "author", Label: "Author", Widget: "string"},
					{Name: "date", Label: "Date", Widget: "date"},
					optional("hero", "Hero image", "image"),
					optional("excerpt", "Excerpt", "text"),
					optional("secret", "Secret", "boolean"),
					optional("canonical_url", "Canonical URL", "string"),
					{Name: "body", Label: "Body", Widget: "markdown"},
				},
			},
			{
				Name:      "authors",
				Label:     "Authors",
				Folder:    theme.ContentAuthors,
				Create:    true,
				Extension: "md",
				Format:    "frontmatter",
				Slug:      "{{slug}}",
				Fields: []field{
					{Name: "name", Label: "Name", Widget: "string"},
					optional("avatar", "Avatar", "image"),
					optional("featured", "Featured", "boolean"),
					optional("bio", "Bio", "text"),
				},
			},
		},
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("cms: encode config: %w", err)
	}
	return out, nil
}
