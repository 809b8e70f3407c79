package bracefmt_test

import (
	"io"
	"testing"

	"github.com/bjaus/bracefmt"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, template string, nargs int) []bracefmt.Component {
	t.Helper()
	var out []bracefmt.Component
	for c, err := range bracefmt.NewParser(template, nargs).All() {
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestParserComponents(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		template string
		nargs    int
		want     []bracefmt.Component
	}{
		"empty": {
			template: "",
			want:     nil,
		},
		"literal": {
			template: "hello",
			want: []bracefmt.Component{
				{Kind: bracefmt.Literal, Text: "hello", Ordinal: -1},
			},
		},
		"escapes split literals": {
			template: "a{{b}}c",
			want: []bracefmt.Component{
				{Kind: bracefmt.Literal, Text: "a{", Ordinal: -1},
				{Kind: bracefmt.Literal, Text: "b}", Ordinal: -1, Offset: 3},
				{Kind: bracefmt.Literal, Text: "c", Ordinal: -1, Offset: 6},
			},
		},
		"full placeholder": {
			template: "x{0,-3:a}}}y{1}",
			nargs:    2,
			want: []bracefmt.Component{
				{Kind: bracefmt.Literal, Text: "x", Ordinal: -1},
				{Kind: bracefmt.Placeholder, Index: 0, Width: -3, Options: "a}", Buffered: true, Ordinal: 0, Offset: 1},
				{Kind: bracefmt.Literal, Text: "y", Ordinal: 0, Offset: 11},
				{Kind: bracefmt.Placeholder, Index: 1, Ordinal: 1, Offset: 12},
			},
		},
		"options alias template": {
			template: "{0,12:abc}",
			nargs:    1,
			want: []bracefmt.Component{
				{Kind: bracefmt.Placeholder, Width: 12, Options: "abc"},
			},
		},
		"empty options": {
			template: "{0:}",
			nargs:    1,
			want: []bracefmt.Component{
				{Kind: bracefmt.Placeholder},
			},
		},
		"leading zero index": {
			template: "{007}",
			nargs:    8,
			want: []bracefmt.Component{
				{Kind: bracefmt.Placeholder, Index: 7},
			},
		},
		"adjacent placeholders": {
			template: "{1}{0}",
			nargs:    2,
			want: []bracefmt.Component{
				{Kind: bracefmt.Placeholder, Index: 1},
				{Kind: bracefmt.Placeholder, Index: 0, Ordinal: 1, Offset: 3},
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := collect(t, tt.template, tt.nargs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("components mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParserNextEOF(t *testing.T) {
	t.Parallel()
	p := bracefmt.NewParser("ab", 0)
	c, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "ab", c.Text)
	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParserErrorIsSticky(t *testing.T) {
	t.Parallel()
	p := bracefmt.NewParser("a{x}b", 1)
	_, err := p.Next()
	require.NoError(t, err)
	_, first := p.Next()
	require.ErrorIs(t, first, bracefmt.ErrMalformedIndex)
	_, second := p.Next()
	assert.Same(t, first, second)
}

func TestParserAllStopsAtError(t *testing.T) {
	t.Parallel()
	var kinds []bracefmt.Kind
	var errs []error
	for c, err := range bracefmt.NewParser("a{0}b{5}c{0}", 1).All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []bracefmt.Kind{bracefmt.Literal, bracefmt.Placeholder, bracefmt.Literal}, kinds)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], bracefmt.ErrIndexOutOfRange)
}

func TestParserAllEarlyBreak(t *testing.T) {
	t.Parallel()
	p := bracefmt.NewParser("{0}{0}{0}", 1)
	n := 0
	for range p.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
	// The sequence resumes where the break left off.
	rest := 0
	for _, err := range p.All() {
		require.NoError(t, err)
		rest++
	}
	assert.Equal(t, 2, rest)
}

func TestParserErrorOffsets(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		template string
		want     error
		offset   int
		ordinal  int
	}{
		"malformed index":   {template: "ab{x}", want: bracefmt.ErrMalformedIndex, offset: 3, ordinal: 0},
		"malformed width":   {template: "{0}{0,x}", want: bracefmt.ErrMalformedWidth, offset: 6, ordinal: 1},
		"unexpected":        {template: "{0,2!}", want: bracefmt.ErrUnexpectedCharacter, offset: 4, ordinal: 0},
		"unterminated":      {template: "{0:abc", want: bracefmt.ErrUnterminatedPlaceholder, offset: 6, ordinal: 0},
		"unterminated open": {template: "ab{", want: bracefmt.ErrUnterminatedPlaceholder, offset: 3, ordinal: 0},
		"stray close":       {template: "ab}c", want: bracefmt.ErrUnexpectedCharacter, offset: 2, ordinal: -1},
		"open in options":   {template: "{0:a{b}", want: bracefmt.ErrUnexpectedCharacter, offset: 4, ordinal: 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := bracefmt.Validate(tt.template, 1)
			var perr *bracefmt.ParseError
			require.ErrorAs(t, err, &perr)
			assert.ErrorIs(t, perr, tt.want)
			assert.Equal(t, tt.offset, perr.Offset)
			assert.Equal(t, tt.ordinal, perr.Ordinal)
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "literal", bracefmt.Literal.String())
	assert.Equal(t, "placeholder", bracefmt.Placeholder.String())
	assert.Equal(t, "Kind(7)", bracefmt.Kind(7).String())
}
