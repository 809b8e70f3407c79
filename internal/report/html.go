package report

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(w io.Writer, results []Result) error {
	if _, err := fmt.Fprintln(w, "<table>\n  <thead>"); err != nil {
		return err
	}
	if err := writeHTMLRow(w, "th", header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  </thead>\n  <tbody>"); err != nil {
		return err
	}
	for _, r := range results {
		if err := writeHTMLRow(w, "td", r.row()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "  </tbody>\n</table>")
	return err
}

func writeHTMLRow(w io.Writer, tag string, cells []string) error {
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i, cell := range cells {
		if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", tag, alignStyle(i), html.EscapeString(cell), tag); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "    </tr>")
	return err
}

func alignStyle(col int) string {
	if aligns[col] == alignRight {
		return ` style="text-align: right"`
	}
	return ""
}
