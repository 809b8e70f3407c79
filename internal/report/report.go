// Package report writes the outcome of formatting jobs in a choice of output
// formats.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for a format name that is not
	// recognized.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidTemplate is returned when a go-template format does not parse.
	ErrInvalidTemplate = errors.New("invalid go template")
)

// Format names an output format.
type Format string

const (
	Plain    Format = "plain"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	Table    Format = "table"
	Markdown Format = "markdown"
	HTML     Format = "html"
	List     Format = "list"
	ENV      Format = "env"
)

const goTemplatePrefix = "go-template="

var formats = []Format{Plain, JSON, JSONL, YAML, CSV, TSV, Table, Markdown, HTML, List, ENV}

func (f Format) String() string { return string(f) }

// Formats returns every supported format.
func Formats() []Format {
	return slices.Clone(formats)
}

// GoTemplate returns a Format that executes a Go text/template once per
// result, each on its own line.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format name. Besides the static formats it accepts
// "go-template=<template>".
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) || slices.Contains(formats, Format(s)) {
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Result is the outcome of one job.
type Result struct {
	Name     string `json:"name" yaml:"name"`
	Template string `json:"template" yaml:"template"`
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`
	Written  int    `json:"written" yaml:"written"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the job ended in an error.
func (r Result) Failed() bool { return r.Error != "" }

// String renders the result as one line of plain output.
func (r Result) String() string {
	if r.Failed() {
		return r.Name + ": error: " + r.Error
	}
	return r.Name + ": " + r.Output
}

var header = []string{"NAME", "WRITTEN", "OUTPUT", "ERROR"}

func (r Result) row() []string {
	return []string{r.Name, strconv.Itoa(r.Written), r.Output, r.Error}
}

// Write writes results to w in format f.
func Write(w io.Writer, f Format, results ...Result) error {
	switch f {
	case Plain:
		return writePlain(w, results)
	case JSON:
		return writeJSON(w, results)
	case JSONL:
		return writeJSONL(w, results)
	case YAML:
		return writeYAML(w, results)
	case CSV:
		return writeCSV(w, results)
	case TSV:
		return writeTSV(w, results)
	case Table:
		return writeTable(w, results)
	case Markdown:
		return writeMarkdown(w, results)
	case HTML:
		return writeHTML(w, results)
	case List:
		return writeList(w, results)
	case ENV:
		return writeENV(w, results)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, results)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
