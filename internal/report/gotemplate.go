package report

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"text/template"
)

func parseGoTemplate(tmplStr string) (*template.Template, error) {
	tmpl, err := template.New("result").Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return tmpl, nil
}

func writeGoTemplate(w io.Writer, tmplStr string, results []Result) error {
	return streamGoTemplate(w, tmplStr, slices.Values(results))
}

func streamGoTemplate(w io.Writer, tmplStr string, seq iter.Seq[Result]) error {
	tmpl, err := parseGoTemplate(tmplStr)
	if err != nil {
		return err
	}
	for r := range seq {
		if err := tmpl.Execute(w, r); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
