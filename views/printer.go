package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// printer writes markup and remembers the first error, so templates read as
// a flat sequence of writes.
type printer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newPrinter(ctx context.Context, w io.Writer) *printer {
	return &printer{ctx: ctx, w: w}
}

func (p *printer) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

// text writes escaped text.
func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (p *printer) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) render(c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(p.ctx, p.w)
	}
}
