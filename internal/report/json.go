package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

const indent = "  "

func writeJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	if results == nil {
		results = []Result{}
	}
	return enc.Encode(results)
}

func writeJSONL(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(len(indent))
	if results == nil {
		results = []Result{}
	}
	if err := enc.Encode(results); err != nil {
		return err
	}
	return enc.Close()
}
