package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// WriteIter writes results from seq to w as they arrive. Formats whose rows
// are independent are written per result. JSON, YAML, Table, Markdown and
// HTML need every result for their layout and are collected first.
func WriteIter(w io.Writer, f Format, seq iter.Seq[Result]) error {
	switch f {
	case Plain:
		for r := range seq {
			if err := writePlain(w, []Result{r}); err != nil {
				return err
			}
		}
		return nil
	case JSONL:
		enc := json.NewEncoder(w)
		for r := range seq {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case CSV:
		return streamCSV(w, seq)
	case TSV:
		if err := writeTSVRow(w, header); err != nil {
			return err
		}
		for r := range seq {
			if err := writeTSVRow(w, r.row()); err != nil {
				return err
			}
		}
		return nil
	case List, ENV:
		for r := range seq {
			if err := Write(w, f, r); err != nil {
				return err
			}
		}
		return nil
	case JSON, YAML, Table, Markdown, HTML:
		return Write(w, f, slices.Collect(seq)...)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return streamGoTemplate(w, tmpl, seq)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func streamCSV(w io.Writer, seq iter.Seq[Result]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for r := range seq {
		if err := cw.Write(r.row()); err != nil {
			return err
		}
		// Each row is visible as soon as its result is known.
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
