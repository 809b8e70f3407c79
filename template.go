package bracefmt

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Template is a parsed template that can be rendered repeatedly without
// parsing again. A Template is immutable and safe for concurrent use.
type Template struct {
	source     string
	nargs      int
	components []Component
}

// Compile parses template for exactly nargs arguments. Adjacent literal runs
// are merged.
func Compile(template string, nargs int) (*Template, error) {
	t := &Template{source: template, nargs: nargs}
	var lit strings.Builder
	var first Component
	pending := false
	flush := func() {
		if !pending {
			return
		}
		first.Text = lit.String()
		t.components = append(t.components, first)
		lit.Reset()
		pending = false
	}
	for c, err := range NewParser(template, nargs).All() {
		if err != nil {
			return nil, err
		}
		if c.Kind == Literal {
			if !pending {
				first, pending = c, true
			}
			lit.WriteString(c.Text)
			continue
		}
		flush()
		t.components = append(t.components, c)
	}
	flush()
	return t, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(template string, nargs int) *Template {
	t, err := Compile(template, nargs)
	if err != nil {
		panic(fmt.Sprintf("bracefmt: Compile(%q): %v", template, err))
	}
	return t
}

// String returns the source template.
func (t *Template) String() string { return t.source }

// NArgs returns the number of arguments the template was compiled for.
func (t *Template) NArgs() int { return t.nargs }

// Components returns a copy of the parsed components.
func (t *Template) Components() []Component { return slices.Clone(t.components) }

// Format renders the template with args into dest, see [Format].
func (t *Template) Format(dest any, args ...any) (int, error) {
	a, err := AppenderFor(dest)
	if err != nil {
		return 0, err
	}
	return t.FormatTo(a, args...)
}

// FormatTo renders the template with args into a.
func (t *Template) FormatTo(a Appender, args ...any) (int, error) {
	if len(args) != t.nargs {
		return 0, fmt.Errorf("%w: template takes %d, got %d", ErrArgCount, t.nargs, len(args))
	}
	table, err := newDispatchTable(args)
	if err != nil {
		return 0, err
	}
	e := newEngine(a, table, args)
	defer e.release()
	err = e.run(t.components)
	return e.total, err
}

// Fprint renders the template with args to w.
func (t *Template) Fprint(w io.Writer, args ...any) (int, error) {
	return t.FormatTo(NewWriterAppender(w), args...)
}

// Append renders the template with args onto dst.
func (t *Template) Append(dst []byte, args ...any) ([]byte, error) {
	_, err := t.FormatTo(NewBufferAppender(&dst), args...)
	return dst, err
}

// Sprint renders the template with args into a new string.
func (t *Template) Sprint(args ...any) (string, error) {
	var buf []byte
	if _, err := t.FormatTo(NewBufferAppender(&buf), args...); err != nil {
		return "", err
	}
	return string(buf), nil
}
