package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/bracefmt"
	"github.com/bjaus/bracefmt/internal/report"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunTemplate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args []string
		want string
	}{
		"inferred types": {
			args: []string{"{0,-4}|{1:x}|{2:f1}|{3}", "ab", "255", "2.5", "true"},
			want: "ab  |ff|2.5|true\n",
		},
		"strings only": {
			args: []string{"--strings", "{0:x}", "255"},
			want: "255\n",
		},
		"no newline": {
			args: []string{"--newline=false", "{0,3}", "7"},
			want: "  7",
		},
		"escaped braces": {
			args: []string{"{{{0}}}", "x"},
			want: "{x}\n",
		},
		"flags after template": {
			args: []string{"{0}", "x", "--newline=false"},
			want: "x",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			stdout, _, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunTemplateErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args    []string
		wantErr error
	}{
		"missing template":  {args: nil, wantErr: errUsage},
		"parse error":       {args: []string{"{0", "x"}, wantErr: bracefmt.ErrUnterminatedPlaceholder},
		"too few arguments": {args: []string{"{1}", "a"}, wantErr: bracefmt.ErrIndexOutOfRange},
		"bad options":       {args: []string{"{0:q}", "1"}, wantErr: bracefmt.ErrInvalidOptions},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := runCLI(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRunValidate(t *testing.T) {
	t.Parallel()
	stdout, _, err := runCLI(t, "--validate", "2", "{0} {1}")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	_, _, err = runCLI(t, "--validate", "1", "{0} {1}")
	var perr *bracefmt.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Index)
}

func TestRunVerbose(t *testing.T) {
	t.Parallel()
	_, stderr, err := runCLI(t, "-v", "{0}", "12")
	require.NoError(t, err)
	assert.Contains(t, stderr, "type=int")
	assert.Contains(t, stderr, "written=2")

	_, stderr, err = runCLI(t, "{0}", "12")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestRunHelp(t *testing.T) {
	t.Parallel()
	stdout, stderr, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "--jobs")
}

func writeJobs(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunJobs(t *testing.T) {
	t.Parallel()
	path := writeJobs(t, "jobs.yaml", `
jobs:
  - name: hex
    template: "{0:x}-{1,3}"
    args: [255, 7]
  - name: check
    template: "{0}"
    validate: 1
`)
	stdout, _, err := runCLI(t, "--jobs", path, "-o", "jsonl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"name": "hex", "template": "{0:x}-{1,3}", "output": "ff-  7", "written": 6}`, lines[0])
	assert.JSONEq(t, `{"name": "check", "template": "{0}", "written": 0}`, lines[1])
}

func TestRunJobsFailure(t *testing.T) {
	t.Parallel()
	path := writeJobs(t, "jobs.jsonc", `{
  "jobs": [
    {"name": "ok", "template": "{0}", "args": ["a"]},
    // one argument short
    {"name": "short", "template": "{0}{1}", "args": ["a"]},
  ],
}`)
	stdout, _, err := runCLI(t, "--jobs", path)
	require.EqualError(t, err, "1 of 2 jobs failed")
	assert.Contains(t, stdout, "ok: a\n")
	assert.Contains(t, stdout, "short: error: ")
}

func TestRunJobsErrors(t *testing.T) {
	t.Parallel()
	path := writeJobs(t, "jobs.yaml", "jobs: []\n")

	_, _, err := runCLI(t, "--jobs", path, "extra")
	require.ErrorIs(t, err, errUsage)

	_, _, err = runCLI(t, "--jobs", path, "-o", "xml")
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)

	_, _, err = runCLI(t, "--jobs", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestInferArg(t *testing.T) {
	t.Parallel()
	tests := map[string]any{
		"42":    int64(42),
		"-7":    int64(-7),
		"2.5":   2.5,
		"1e3":   1000.0,
		"true":  true,
		"false": false,
		"inf":   "inf",
		"NaN":   "NaN",
		"True":  "True",
		"":      "",
		"hello": "hello",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, inferArg(in))
		})
	}
}
