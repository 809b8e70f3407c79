// Package jobfile loads batches of formatting jobs from disk.
//
// A job file lists templates together with the arguments to render them
// with. YAML (.yaml, .yml) and JSONC (.json, .jsonc; JSON extended with
// comments and trailing commas) are accepted:
//
//	jobs:
//	  - name: greeting
//	    template: "{0}, {1,-8}!"
//	    args: [Hello, world]
//	  - name: check
//	    template: "{0} {1}"
//	    validate: 2
//
// Numeric arguments decode as int64 when they are integral and float64
// otherwise, so the same file produces the same argument types in both
// encodings.
package jobfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownExtension is returned when a job file has an extension that
	// does not name a supported encoding.
	ErrUnknownExtension = errors.New("unknown job file extension")

	// ErrEmptyTemplate is returned for a job without a template.
	ErrEmptyTemplate = errors.New("empty template")

	// ErrUnsupportedArg is returned for an argument that is not a scalar.
	ErrUnsupportedArg = errors.New("unsupported argument")
)

// File is a decoded job file.
type File struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// Job is one template and its arguments.
type Job struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Template string `json:"template" yaml:"template"`
	Args     []any  `json:"args,omitempty" yaml:"args,omitempty"`

	// Validate, when set, checks Template against that many arguments
	// instead of rendering it. Args is ignored.
	Validate *int `json:"validate,omitempty" yaml:"validate,omitempty"`
}

// Label returns the job name, or its position when the job is unnamed.
func (j Job) Label(i int) string {
	if j.Name != "" {
		return j.Name
	}
	return fmt.Sprintf("job %d", i+1)
}

// Load reads and parses the job file at path. The encoding is chosen by the
// file extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the encoding named by ext, which includes the leading
// dot as returned by [filepath.Ext].
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.UseNumber()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}

	for i := range f.Jobs {
		job := &f.Jobs[i]
		if job.Template == "" {
			return nil, fmt.Errorf("%s: %w", job.Label(i), ErrEmptyTemplate)
		}
		for k, arg := range job.Args {
			v, err := normalize(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", job.Label(i), k, err)
			}
			job.Args[k] = v
		}
	}
	return &f, nil
}

// normalize maps decoded scalars onto int64, float64, bool and string.
func normalize(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: null", ErrUnsupportedArg)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", ErrUnsupportedArg, v)
		}
		return f, nil
	case int:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return float64(v), nil
		}
		return int64(v), nil
	case int64, float64, bool, string:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedArg, v)
	}
}
