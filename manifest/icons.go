package manifest

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// ResizeIcon decodes src and returns a size x size PNG. The source is scaled
// to fit and centred on a transparent square, so non-square icons keep their
// aspect ratio.
func ResizeIcon(src io.Reader, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("manifest: invalid icon size %d", size)
	}
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("manifest: decode icon: %w", err)
	}
	return resize(img, size)
}

func resize(img image.Image, size int) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("manifest: empty icon")
	}

	tw, th := size, size
	if w > h {
		th = max(1, h*size/w)
	} else if h > w {
		tw = max(1, w*size/h)
	}
	x0, y0 := (size-tw)/2, (size-th)/2

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("manifest: encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

// Icons reads the icon file once and returns every generated size keyed by
// its URL path.
func Icons(iconFile string) (map[string][]byte, error) {
	f, err := os.Open(iconFile)
	if err != nil {
		return nil, fmt.Errorf("manifest: open icon: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("manifest: decode icon %s: %w", iconFile, err)
	}
	out := make(map[string][]byte, len(IconSizes))
	for _, size := range IconSizes {
		data, err := resize(img, size)
		if err != nil {
			return nil, err
		}
		out[IconPath(size)] = data
	}
	return out, nil
}
