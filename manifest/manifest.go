// Package manifest builds the web app manifest and its resized icons.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/jordyvandomselaar/novela/config"
)

// Path is where the manifest is served.
const Path = "/manifest.webmanifest"

// IconSizes are the square icon sizes generated from the source icon.
var IconSizes = []int{48, 72, 96, 144, 192, 256, 384, 512}

// Icon is one entry of the manifest's icons list.
type Icon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// WebManifest is the JSON document browsers read for "add to home screen".
type WebManifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name,omitempty"`
	StartURL        string `json:"start_url,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	ThemeColor      string `json:"theme_color,omitempty"`
	Display         string `json:"display,omitempty"`
	Icons           []Icon `json:"icons"`
}

// IconPath returns the URL path of the icon of the given size.
func IconPath(size int) string {
	return fmt.Sprintf("/icons/icon-%dx%d.png", size, size)
}

// BuildManifest maps plugin options onto the manifest document.
func BuildManifest(opts *config.ManifestOptions) WebManifest {
	m := WebManifest{
		Name:            opts.Name,
		ShortName:       opts.ShortName,
		StartURL:        opts.StartURL,
		BackgroundColor: opts.BackgroundColor,
		ThemeColor:      opts.ThemeColor,
		Display:         opts.Display,
	}
	for _, size := range IconSizes {
		m.Icons = append(m.Icons, Icon{
			Src:   IconPath(size),
			Sizes: fmt.Sprintf("%dx%d", size, size),
			Type:  "image/png",
		})
	}
	return m
}

// JSON encodes the manifest with indentation.
func (m WebManifest) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
