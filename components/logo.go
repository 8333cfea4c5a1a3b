package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// LogoHeight is the rendered logo height in pixels.
const LogoHeight = 100

// Logo renders the site logo image.
func Logo(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<img class="logo" src="`+templ.EscapeString(src)+`" alt="" style="height:`+strconv.Itoa(LogoHeight)+`px"/>`)
		return err
	})
}
