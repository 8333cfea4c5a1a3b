// Package analytics renders the Google gtag.js tag for pages that are not
// excluded from tracking.
package analytics

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/jordyvandomselaar/novela/config"
)

const loaderURL = "https://www.googletagmanager.com/gtag/js?id="

// Snippet renders the gtag loader and one config call per tracking ID.
// Nothing is rendered when opts is nil, when the path is excluded, or when
// the visitor sent DNT and the site respects it.
func Snippet(opts *config.AnalyticsOptions, pagePath string, dnt bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !Enabled(opts, pagePath, dnt) {
			return nil
		}
		s, err := script(opts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	})
}

// Enabled reports whether Snippet renders anything for the page.
func Enabled(opts *config.AnalyticsOptions, pagePath string, dnt bool) bool {
	if opts == nil || len(opts.TrackingIDs) == 0 {
		return false
	}
	if dnt && opts.PluginConfig.RespectDNT {
		return false
	}
	return !Excluded(opts.PluginConfig.Exclude, pagePath)
}

func script(opts *config.AnalyticsOptions) (string, error) {
	settings, err := json.Marshal(map[string]any{
		"anonymize_ip":   opts.GtagConfig.AnonymizeIP,
		"cookie_expires": opts.GtagConfig.CookieExpires,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<script async src="`)
	b.WriteString(templ.EscapeString(loaderURL + url.QueryEscape(opts.TrackingIDs[0])))
	b.WriteString(`"></script>`)
	b.WriteString("<script>")
	if opts.PluginConfig.RespectDNT {
		b.WriteString(`if(!(navigator.doNotTrack=="1"||window.doNotTrack=="1")){`)
	}
	b.WriteString("window.dataLayer=window.dataLayer||[];")
	b.WriteString("function gtag(){dataLayer.push(arguments);}")
	b.WriteString("gtag('js',new Date());")
	for _, id := range opts.TrackingIDs {
		lit, err := json.Marshal(id)
		if err != nil {
			return "", err
		}
		b.WriteString("gtag('config',")
		b.WriteString(strings.ReplaceAll(string(lit), "</", `<\/`))
		b.WriteString(",")
		b.Write(settings)
		b.WriteString(");")
	}
	if opts.PluginConfig.RespectDNT {
		b.WriteString("}")
	}
	b.WriteString("</script>")
	return b.String(), nil
}

// Excluded reports whether pagePath matches one of the glob patterns.
// A pattern ending in "/**" matches the prefix and everything below it;
// other patterns use path.Match and ignore a trailing slash on the page.
func Excluded(patterns []string, pagePath string) bool {
	for _, pat := range patterns {
		if base, ok := strings.CutSuffix(pat, "/**"); ok {
			if pagePath == base || pagePath == base+"/" || strings.HasPrefix(pagePath, base+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, pagePath); ok {
			return true
		}
		if trimmed := strings.TrimSuffix(pagePath, "/"); trimmed != pagePath && trimmed != "" {
			if ok, _ := path.Match(pat, trimmed); ok {
				return true
			}
		}
	}
	return false
}
