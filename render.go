package bracefmt

import (
	"fmt"
	"reflect"
	"sync"
)

// --- Render Shapes ---
//
// A type becomes renderable by implementing one of the interfaces below. When
// a type implements several, the one listed first wins: option-aware shapes
// always outrank shapes that ignore options, and within each group writing
// straight to the Appender outranks building a string first.

// FormatAppender writes the value to a honoring the placeholder's option text
// and returns the number of bytes written.
type FormatAppender interface {
	AppendFormat(a Appender, options string) (int, error)
}

// OptionStringer returns the value's text for the given option text.
type OptionStringer interface {
	FormatString(options string) string
}

// AppenderTo writes the value to a, ignoring options.
type AppenderTo interface {
	AppendTo(a Appender) (int, error)
}

// fmt.Stringer is the fourth and last shape.

// Shape identifies which rendering path was selected for a type.
type Shape int

const (
	ShapeNone Shape = iota
	// ShapeRegistered is a function installed with [Register].
	ShapeRegistered
	// ShapeText is the built-in copy for string and []byte.
	ShapeText
	ShapeAppendFormat
	ShapeFormatString
	ShapeAppendTo
	ShapeString
	// ShapePrimitive is the built-in renderer for numeric, bool, string and
	// byte slice kinds.
	ShapePrimitive
)

var shapeNames = [...]string{
	ShapeNone:         "none",
	ShapeRegistered:   "registered",
	ShapeText:         "text",
	ShapeAppendFormat: "append-format",
	ShapeFormatString: "format-string",
	ShapeAppendTo:     "append-to",
	ShapeString:       "string",
	ShapePrimitive:    "primitive",
}

// String returns the shape name.
func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// renderFunc renders one argument. v always has the dynamic type the function
// was resolved for.
type renderFunc func(v any, a Appender, options string) (int, error)

type renderer struct {
	shape Shape
	fn    renderFunc
}

var (
	formatAppenderType = reflect.TypeFor[FormatAppender]()
	optionStringerType = reflect.TypeFor[OptionStringer]()
	appenderToType     = reflect.TypeFor[AppenderTo]()
	stringerType       = reflect.TypeFor[fmt.Stringer]()
	stringType         = reflect.TypeFor[string]()
	bytesType          = reflect.TypeFor[[]byte]()
)

var (
	registry sync.Map // reflect.Type -> renderFunc
	resolved sync.Map // reflect.Type -> renderer

	// registerMu keeps a probe that missed the registry from caching its
	// result after a concurrent Register cleared the entry.
	registerMu sync.RWMutex
)

// Register installs fn as the renderer for values of type T, taking
// precedence over every other shape. T must be a concrete type; arguments are
// matched by their dynamic type. Registering a type again replaces the
// previous function.
func Register[T any](fn func(v T, a Appender, options string) (int, error)) {
	t := reflect.TypeFor[T]()
	registerMu.Lock()
	defer registerMu.Unlock()
	registry.Store(t, renderFunc(func(v any, a Appender, options string) (int, error) {
		return fn(v.(T), a, options)
	}))
	resolved.Delete(t)
}

// ShapeOf reports which shape renders v. It returns an error wrapping
// [ErrNoRenderer] when v cannot be rendered.
func ShapeOf(v any) (Shape, error) {
	if v == nil {
		return ShapeNone, fmt.Errorf("%w: nil value", ErrNoRenderer)
	}
	r, err := resolve(reflect.TypeOf(v))
	return r.shape, err
}

// IsRenderable reports whether values of type T can be used as arguments.
func IsRenderable[T any]() bool {
	_, err := resolve(reflect.TypeFor[T]())
	return err == nil
}

func resolve(t reflect.Type) (renderer, error) {
	if v, ok := resolved.Load(t); ok {
		r := v.(renderer)
		if r.fn == nil {
			return r, noRenderer(t)
		}
		return r, nil
	}
	registerMu.RLock()
	r := probe(t)
	resolved.Store(t, r)
	registerMu.RUnlock()
	if r.fn == nil {
		return r, noRenderer(t)
	}
	return r, nil
}

func noRenderer(t reflect.Type) error {
	return fmt.Errorf("%w for type %s", ErrNoRenderer, t)
}

// probe picks the highest-precedence renderer available for t.
func probe(t reflect.Type) renderer {
	if fn, ok := registry.Load(t); ok {
		return renderer{ShapeRegistered, fn.(renderFunc)}
	}
	switch t {
	case stringType:
		return renderer{ShapeText, renderString}
	case bytesType:
		return renderer{ShapeText, renderBytes}
	}
	switch {
	case t.Implements(formatAppenderType):
		return renderer{ShapeAppendFormat, func(v any, a Appender, options string) (int, error) {
			return v.(FormatAppender).AppendFormat(a, options)
		}}
	case t.Implements(optionStringerType):
		return renderer{ShapeFormatString, func(v any, a Appender, options string) (int, error) {
			return appendText(a, v.(OptionStringer).FormatString(options))
		}}
	case t.Implements(appenderToType):
		return renderer{ShapeAppendTo, func(v any, a Appender, _ string) (int, error) {
			return v.(AppenderTo).AppendTo(a)
		}}
	case t.Implements(stringerType):
		return renderer{ShapeString, func(v any, a Appender, _ string) (int, error) {
			return appendText(a, v.(fmt.Stringer).String())
		}}
	}
	if fn := primitive(t); fn != nil {
		return renderer{ShapePrimitive, fn}
	}
	return renderer{ShapeNone, nil}
}

func renderString(v any, a Appender, _ string) (int, error) {
	return appendText(a, v.(string))
}

func renderBytes(v any, a Appender, _ string) (int, error) {
	b := v.([]byte)
	if err := a.AppendBytes(b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func appendText(a Appender, s string) (int, error) {
	if err := a.AppendString(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// dispatchTable holds one render function per argument position.
type dispatchTable []renderFunc

func newDispatchTable(args []any) (dispatchTable, error) {
	table := make(dispatchTable, len(args))
	for i, arg := range args {
		if arg == nil {
			return nil, fmt.Errorf("argument %d: %w: nil value", i, ErrNoRenderer)
		}
		r, err := resolve(reflect.TypeOf(arg))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		table[i] = r.fn
	}
	return table, nil
}
