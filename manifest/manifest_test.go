package manifest

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jordyvandomselaar/novela/config"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildManifest(t *testing.T) {
	m := BuildManifest(&config.ManifestOptions{
		Name:       "Novela",
		ShortName:  "Novela",
		StartURL:   "/",
		ThemeColor: "#fff",
		Display:    "standalone",
		Icon:       "src/assets/favicon.png",
	})

	require.Equal(t, "Novela", m.Name)
	require.Len(t, m.Icons, len(IconSizes))
	require.Equal(t, Icon{Src: "/icons/icon-48x48.png", Sizes: "48x48", Type: "image/png"}, m.Icons[0])

	raw, err := m.JSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "standalone", decoded["display"])
	require.NotContains(t, decoded, "background_color")
}

func TestResizeIconIsSquarePNG(t *testing.T) {
	out, err := ResizeIcon(bytes.NewReader(pngBytes(t, 400, 200)), 96)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 96, 96), img.Bounds())

	// Letterboxed: the top row is transparent, the centre is painted.
	_, _, _, top := img.At(48, 0).RGBA()
	require.Zero(t, top)
	_, _, _, mid := img.At(48, 48).RGBA()
	require.NotZero(t, mid)
}

func TestResizeIconRejectsGarbage(t *testing.T) {
	_, err := ResizeIcon(bytes.NewReader([]byte("not an image")), 48)
	require.Error(t, err)

	_, err = ResizeIcon(bytes.NewReader(pngBytes(t, 10, 10)), 0)
	require.Error(t, err)
}

func TestIconsGeneratesEverySize(t *testing.T) {
	file := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(file, pngBytes(t, 64, 64), 0o644))

	icons, err := Icons(file)
	require.NoError(t, err)
	require.Len(t, icons, len(IconSizes))
	require.Contains(t, icons, "/icons/icon-512x512.png")

	_, err = Icons(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}
