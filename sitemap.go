package novela

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemapURLs lists every public page: listing pages, posts and, when
// enabled, author pages.
func (s *Site) sitemapURLs() ([]sitemapURL, error) {
	posts, err := s.Cache.ListPosts(false)
	if err != nil {
		return nil, err
	}
	base := s.Config.Site.SiteURL
	theme := s.Config.Theme()

	var urls []sitemapURL
	for n := 1; n <= pageCount(len(posts), theme.PageLength); n++ {
		urls = append(urls, sitemapURL{Loc: views.BuildURL(base, views.PagePath(theme, n))})
	}
	for _, p := range posts {
		u := sitemapURL{Loc: views.BuildURL(base, views.PostPath(theme, p.Slug))}
		if !p.Date.IsZero() {
			u.LastMod = p.Date.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	if theme.AuthorsPage {
		authors, err := s.Cache.ListAuthors()
		if err != nil {
			return nil, err
		}
		for _, a := range authors {
			urls = append(urls, sitemapURL{Loc: views.BuildURL(base, views.AuthorPath(theme, a.Slug))})
		}
	}
	return urls, nil
}

func (s *Site) writeSitemap(w io.Writer) error {
	urls, err := s.sitemapURLs()
	if err != nil {
		return err
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}

func robotsTxt(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	if cms, ok := cfg.CMS(); ok {
		b.WriteString("Disallow: /" + cms.PublicPath + "/\n")
	}
	if cfg.Server.AdminPassword != "" {
		b.WriteString("Disallow: /preview/\n")
	}
	b.WriteString("Sitemap: " + views.BuildURL(cfg.Site.SiteURL, "/sitemap.xml") + "\n")
	return b.String()
}
