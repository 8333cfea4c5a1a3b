package components

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

var reAttrName = regexp.MustCompile(`^[a-zA-Z_:][-a-zA-Z0-9_:.]*$`)

// writeAttrs renders class followed by the caller's attributes in key order.
// Names that are not valid HTML attribute names are dropped.
func writeAttrs(b *strings.Builder, class string, attrs templ.Attributes) {
	if extra, ok := attrs["class"]; ok {
		if s := strings.TrimSpace(attrString(extra)); s != "" {
			class += " " + s
		}
	}
	b.WriteString(` class="`)
	b.WriteString(templ.EscapeString(class))
	b.WriteString(`"`)

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == "class" || !reAttrName.MatchString(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				b.WriteString(" ")
				b.WriteString(k)
			}
		case nil:
		default:
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString(`="`)
			b.WriteString(templ.EscapeString(attrString(v)))
			b.WriteString(`"`)
		}
	}
}

func attrString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
