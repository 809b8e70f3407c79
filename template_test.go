package bracefmt_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/bjaus/bracefmt"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileMergesLiterals(t *testing.T) {
	t.Parallel()
	tmpl, err := bracefmt.Compile("a{{b{0}c}}", 1)
	require.NoError(t, err)
	want := []bracefmt.Component{
		{Kind: bracefmt.Literal, Text: "a{b", Ordinal: -1},
		{Kind: bracefmt.Placeholder, Index: 0, Offset: 4},
		{Kind: bracefmt.Literal, Text: "c}", Ordinal: 0, Offset: 7},
	}
	if diff := cmp.Diff(want, tmpl.Components()); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "a{{b{0}c}}", tmpl.String())
	assert.Equal(t, 1, tmpl.NArgs())
}

func TestCompileError(t *testing.T) {
	t.Parallel()
	tmpl, err := bracefmt.Compile("{0} {1}", 1)
	require.ErrorIs(t, err, bracefmt.ErrIndexOutOfRange)
	assert.Nil(t, tmpl)
}

func TestMustCompile(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { bracefmt.MustCompile("{0}", 1) })
	assert.Panics(t, func() { bracefmt.MustCompile("{0", 1) })
}

func TestTemplateRender(t *testing.T) {
	t.Parallel()
	tmpl := bracefmt.MustCompile("{0,-6}|{1,4:x}|{2:{{opt}}}", 3)

	got, err := tmpl.Sprint("ab", 255, allShapes{})
	require.NoError(t, err)
	assert.Equal(t, "ab    |  ff|fmt[{opt}]", got)

	// Options sourced from the scratch buffer survive later calls.
	got, err = tmpl.Sprint("c", 1, allShapes{})
	require.NoError(t, err)
	assert.Equal(t, "c     |   1|fmt[{opt}]", got)

	var buf bytes.Buffer
	n, err := tmpl.Fprint(&buf, "ab", 255, allShapes{})
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	out, err := tmpl.Append([]byte("> "), "ab", 255, allShapes{})
	require.NoError(t, err)
	assert.Equal(t, "> ab    |  ff|fmt[{opt}]", string(out))

	var b []byte
	_, err = tmpl.Format(&b, "ab", 255, allShapes{})
	require.NoError(t, err)
	assert.Equal(t, "ab    |  ff|fmt[{opt}]", string(b))
}

func TestTemplateArgCount(t *testing.T) {
	t.Parallel()
	tmpl := bracefmt.MustCompile("{0}", 1)
	tests := map[string][]any{
		"too few":  nil,
		"too many": {"a", "b"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tmpl.Sprint(args...)
			require.ErrorIs(t, err, bracefmt.ErrArgCount)
		})
	}
}

func TestTemplateErrors(t *testing.T) {
	t.Parallel()
	tmpl := bracefmt.MustCompile("x{0}", 1)

	_, err := tmpl.Sprint(opaque{})
	require.ErrorIs(t, err, bracefmt.ErrNoRenderer)

	_, err = tmpl.Format(3.14, "a")
	require.ErrorIs(t, err, bracefmt.ErrUnsupportedDestination)

	out, err := tmpl.Append(nil, failing{})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, "x", string(out))
}

func TestTemplateConcurrentUse(t *testing.T) {
	t.Parallel()
	tmpl := bracefmt.MustCompile("{0,3}-{1,-3}", 2)
	var wg sync.WaitGroup
	results := make([]string, 32)
	errs := make([]error, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = tmpl.Sprint(i, i)
		}()
	}
	wg.Wait()
	for i, got := range results {
		require.NoError(t, errs[i])
		want, err := bracefmt.Sprint("{0,3}-{1,-3}", i, i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
