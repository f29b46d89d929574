package page

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs alternates names and values; empty values
// are dropped and "" names are ignored.
func (h *htmlWriter) open(tag string, attrs ...string) {
	h.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if name == "" {
			continue
		}
		if value == "" && !booleanAttr(name) {
			continue
		}
		if booleanAttr(name) {
			if value == "true" {
				h.raw(" ", name)
			}
			continue
		}
		h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</", tag, ">")
}

func (h *htmlWriter) element(tag, text string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func booleanAttr(name string) bool {
	switch name {
	case "disabled", "required", "hidden", "defer", "novalidate":
		return true
	}
	return false
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// classes joins the non-empty class names.
func classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		fn(h)
		return h.err
	})
}
