// Package components holds the small presentational pieces that posts and
// page templates embed: the Tip callout and the site logo.
package components

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// DefaultTipTitle is rendered when a Tip is given no title.
const DefaultTipTitle = "Tip"

// Size selects the visual density of a Tip.
type Size int

const (
	Small Size = iota
	Medium
)

// String returns the lowercase variant name.
func (s Size) String() string {
	switch s {
	case Medium:
		return "medium"
	default:
		return "small"
	}
}

// WrapperClass is the outer class name the theme stylesheet keys on.
func (s Size) WrapperClass() string {
	switch s {
	case Medium:
		return "Image__Medium"
	default:
		return "Image__Small"
	}
}

// ParseSize maps "small" / "medium" (any case) to a Size. Anything else is Small.
func ParseSize(s string) Size {
	if strings.EqualFold(strings.TrimSpace(s), "medium") {
		return Medium
	}
	return Small
}

// tipStyle is the spacing record for one Size, in pixels.
type tipStyle struct {
	Padding       int
	MarginY       int
	TitleGap      int
	ParagraphGap  int
	LastChildZero bool
}

var tipStyles = map[Size]tipStyle{
	Small:  {Padding: 20, MarginY: 0, TitleGap: 10, ParagraphGap: 10, LastChildZero: true},
	Medium: {Padding: 20, MarginY: 30, TitleGap: 10, ParagraphGap: 10, LastChildZero: true},
}

func styleFor(s Size) tipStyle {
	if st, ok := tipStyles[s]; ok {
		return st
	}
	return tipStyles[Small]
}

const tipClass = "novela-tip"

func (s Size) tipClass() string {
	return tipClass + " " + tipClass + "--" + s.String()
}

// TipProps configures a Tip. The zero value is a Small tip titled "Tip".
type TipProps struct {
	Title string
	Size  Size
	// Attrs are forwarded to the inner box. A "class" entry is appended to the
	// component's own classes rather than replacing them.
	Attrs templ.Attributes
}

// Tip renders a titled callout box around children.
func Tip(props TipProps, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		size := props.Size
		if _, ok := tipStyles[size]; !ok {
			size = Small
		}
		title := props.Title
		if title == "" {
			title = DefaultTipTitle
		}

		var b strings.Builder
		b.WriteString(`<div class="`)
		b.WriteString(size.WrapperClass())
		b.WriteString(`"><div`)
		writeAttrs(&b, size.tipClass(), props.Attrs)
		b.WriteString(`><strong>`)
		b.WriteString(templ.EscapeString(title))
		b.WriteString(`</strong>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

// TipStyles emits the stylesheet for every Tip size. Layouts include it once
// in <head>.
func TipStyles() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<style>"+tipCSS()+"</style>")
		return err
	})
}

func tipCSS() string {
	sizes := make([]Size, 0, len(tipStyles))
	for s := range tipStyles {
		sizes = append(sizes, s)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	var b strings.Builder
	fmt.Fprintf(&b, ".%s{background:var(--color-background)}", tipClass)
	for _, s := range sizes {
		st := tipStyles[s]
		sel := "." + tipClass + "--" + s.String()
		fmt.Fprintf(&b, "%s{padding:%dpx;margin:%dpx 0}", sel, st.Padding, st.MarginY)
		if st.LastChildZero {
			fmt.Fprintf(&b, "%s>*:last-child{margin-bottom:0}", sel)
		}
		fmt.Fprintf(&b, "%s strong+*{margin-top:%dpx}", sel, st.TitleGap)
		fmt.Fprintf(&b, "%s p{margin-bottom:%dpx}", sel, st.ParagraphGap)
	}
	return b.String()
}
