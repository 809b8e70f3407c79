package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

func writePlain(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(r.row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTSV(w io.Writer, results []Result) error {
	if err := writeTSVRow(w, header); err != nil {
		return err
	}
	for _, r := range results {
		if err := writeTSVRow(w, r.row()); err != nil {
			return err
		}
	}
	return nil
}

// Tabs and newlines inside a cell would break the row structure.
var tsvEscaper = strings.NewReplacer("\\", `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)

func writeTSVRow(w io.Writer, cells []string) error {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = tsvEscaper.Replace(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(escaped, "\t"))
	return err
}

// writeList writes only the output of each successful job.
func writeList(w io.Writer, results []Result) error {
	for _, r := range results {
		if r.Failed() {
			continue
		}
		if _, err := fmt.Fprintln(w, r.Output); err != nil {
			return err
		}
	}
	return nil
}

// writeENV writes one quoted shell assignment per successful job, keyed by the
// job name.
func writeENV(w io.Writer, results []Result) error {
	for _, r := range results {
		if r.Failed() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", envKey(r.Name), strconv.Quote(r.Output)); err != nil {
			return err
		}
	}
	return nil
}

func envKey(name string) string {
	key := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, name)
	if key == "" || unicode.IsDigit(rune(key[0])) {
		key = "_" + key
	}
	return key
}
