package bracefmt

import (
	"io"
	"iter"
	"strconv"
	"strings"
)

// Kind distinguishes the two component types a template splits into.
type Kind int

const (
	Literal Kind = iota
	Placeholder
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Placeholder:
		return "placeholder"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Component is one piece of a parsed template.
//
// For a [Literal], Text holds the output bytes with brace escapes already
// resolved. For a [Placeholder], Index, Width and Options describe the
// argument reference and Text is empty.
type Component struct {
	Kind Kind
	Text string

	Index int
	// Width is the minimum field width. Positive right-aligns, negative
	// left-aligns, zero disables padding.
	Width   int
	Options string
	// Buffered reports that Options contained doubled braces and was rebuilt
	// in the parser's scratch buffer rather than sliced from the template.
	Buffered bool

	// Ordinal is the zero-based position of the placeholder among all
	// placeholders in the template. Literals carry the ordinal of the
	// preceding placeholder, or -1.
	Ordinal int
	// Offset is the byte offset in the template where the component starts.
	Offset int
}

// Parser splits a template into components one at a time. It makes a single
// forward pass; once it returns an error every further call returns the same
// error.
type Parser struct {
	src     string
	nargs   int
	pos     int
	ordinal int
	scratch []byte
	err     error
}

// NewParser returns a parser for template whose placeholders may reference
// arguments 0 through nargs-1.
func NewParser(template string, nargs int) *Parser {
	return &Parser{src: template, nargs: nargs, ordinal: -1}
}

// Next returns the next component, or [io.EOF] when the template is
// exhausted. Parse failures are returned as *[ParseError].
func (p *Parser) Next() (Component, error) {
	if p.err != nil {
		return Component{}, p.err
	}
	if p.pos >= len(p.src) {
		return Component{}, io.EOF
	}
	start := p.pos
	i := strings.IndexAny(p.src[start:], "{}")
	if i < 0 {
		p.pos = len(p.src)
		return p.literal(p.src[start:], start), nil
	}
	brace := start + i
	if p.doubled(brace) {
		// The literal keeps one brace and the cursor skips both.
		p.pos = brace + 2
		return p.literal(p.src[start:brace+1], start), nil
	}
	if i > 0 {
		p.pos = brace
		return p.literal(p.src[start:brace], start), nil
	}
	if p.src[brace] == '}' {
		return Component{}, p.fail(ErrUnexpectedCharacter, brace, p.ordinal)
	}
	return p.placeholder(brace)
}

// All returns the remaining components as a lazy sequence. Iteration stops
// after the first error, which is yielded with a zero Component.
func (p *Parser) All() iter.Seq2[Component, error] {
	return func(yield func(Component, error) bool) {
		for {
			c, err := p.Next()
			if err == io.EOF {
				return
			}
			if !yield(c, err) || err != nil {
				return
			}
		}
	}
}

func (p *Parser) literal(text string, offset int) Component {
	return Component{Kind: Literal, Text: text, Ordinal: p.ordinal, Offset: offset}
}

func (p *Parser) doubled(i int) bool {
	return i+1 < len(p.src) && p.src[i+1] == p.src[i]
}

func (p *Parser) placeholder(lbrace int) (Component, error) {
	p.ordinal++
	n := p.ordinal
	c := Component{Kind: Placeholder, Ordinal: n, Offset: lbrace}

	pos := lbrace + 1
	if pos < len(p.src) && !isDigit(p.src[pos]) {
		return Component{}, p.fail(ErrMalformedIndex, pos, n)
	}
	index, end, err := p.integer(pos, false, ErrMalformedIndex, n)
	if err != nil {
		return Component{}, err
	}
	if index >= p.nargs {
		perr := p.fail(ErrIndexOutOfRange, pos, n)
		perr.Index = index
		perr.Max = p.nargs - 1
		return Component{}, perr
	}
	c.Index = index
	pos = end

	if pos < len(p.src) && p.src[pos] == ',' {
		width, end, err := p.integer(pos+1, true, ErrMalformedWidth, n)
		if err != nil {
			return Component{}, err
		}
		c.Width = width
		pos = end
	}

	if pos >= len(p.src) {
		return Component{}, p.fail(ErrUnterminatedPlaceholder, pos, n)
	}
	switch p.src[pos] {
	case '}':
		p.pos = pos + 1
		return c, nil
	case ':':
		return p.options(c, pos+1)
	default:
		return Component{}, p.fail(ErrUnexpectedCharacter, pos, n)
	}
}

// options scans option text up to the closing brace. Doubled braces inside
// the text are resolved into the scratch buffer.
func (p *Parser) options(c Component, start int) (Component, error) {
	pos := start
	escaped := false
	for {
		j := strings.IndexAny(p.src[pos:], "{}")
		if j < 0 {
			return Component{}, p.fail(ErrUnterminatedPlaceholder, len(p.src), c.Ordinal)
		}
		brace := pos + j
		if p.doubled(brace) {
			escaped = true
			pos = brace + 2
			continue
		}
		if p.src[brace] == '{' {
			return Component{}, p.fail(ErrUnexpectedCharacter, brace, c.Ordinal)
		}
		raw := p.src[start:brace]
		if escaped {
			p.scratch = unescape(p.scratch[:0], raw)
			c.Options = string(p.scratch)
			c.Buffered = true
		} else {
			c.Options = raw
		}
		p.pos = brace + 1
		return c, nil
	}
}

// integer parses a run of ASCII digits at pos, with a leading '-' when signed
// is set. It returns the value and the offset just past the digits.
func (p *Parser) integer(pos int, signed bool, malformed error, ordinal int) (int, int, error) {
	start := pos
	if signed && pos < len(p.src) && p.src[pos] == '-' {
		pos++
	}
	digits := pos
	for pos < len(p.src) && isDigit(p.src[pos]) {
		pos++
	}
	if pos == digits {
		if pos >= len(p.src) {
			return 0, pos, p.fail(ErrUnterminatedPlaceholder, pos, ordinal)
		}
		return 0, pos, p.fail(malformed, pos, ordinal)
	}
	v, err := strconv.Atoi(p.src[start:pos])
	if err != nil {
		return 0, pos, p.fail(malformed, start, ordinal)
	}
	return v, pos, nil
}

func (p *Parser) fail(kind error, offset, ordinal int) *ParseError {
	perr := &ParseError{Err: kind, Offset: offset, Ordinal: ordinal}
	if kind == ErrUnexpectedCharacter && offset < len(p.src) {
		perr.Char = p.src[offset]
	}
	p.err = perr
	p.pos = len(p.src)
	return perr
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// unescape appends raw to dst collapsing every doubled brace to one.
func unescape(dst []byte, raw string) []byte {
	for i := 0; i < len(raw); i++ {
		dst = append(dst, raw[i])
		if raw[i] == '{' || raw[i] == '}' {
			i++
		}
	}
	return dst
}

// parse drives p to the end, handing literal text and placeholders to the two
// callbacks in template order.
func parse(p *Parser, onLiteral func(text string) error, onPlaceholder func(c Component) error) error {
	for {
		c, err := p.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if c.Kind == Literal {
			err = onLiteral(c.Text)
		} else {
			err = onPlaceholder(c)
		}
		if err != nil {
			return err
		}
	}
}
