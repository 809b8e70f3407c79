package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

// The WRITTEN column holds numbers.
var aligns = []alignment{alignLeft, alignRight, alignLeft, alignLeft}

// maxCellWidth bounds the display width of a table cell.
const maxCellWidth = 48

// Newlines inside a cell would break the row structure.
var cellEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

func cells(results []Result, escape func(string) string) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		row := r.row()
		for k := range row {
			row[k] = escape(row[k])
		}
		rows[i] = row
	}
	return rows
}

func computeWidths(rows [][]string, minWidth int) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(runewidth.StringWidth(h), minWidth)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func writeTable(w io.Writer, results []Result) error {
	rows := cells(results, cellEscaper.Replace)
	widths := computeWidths(rows, 0)
	for i := range widths {
		widths[i] = min(widths[i], maxCellWidth)
	}

	if err := drawHLine(w, widths, "╭", "─", "┬", "╮"); err != nil {
		return err
	}
	if err := drawRow(w, header, widths); err != nil {
		return err
	}
	if err := drawHLine(w, widths, "├", "─", "┼", "┤"); err != nil {
		return err
	}
	for _, row := range rows {
		if err := drawRow(w, row, widths); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, "╰", "─", "┴", "╯")
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawRow(w io.Writer, row []string, widths []int) error {
	var sb strings.Builder
	sb.WriteString("│")
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(fitCell(row[i], width, aligns[i]))
		sb.WriteString(" │")
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// fitCell truncates s to width display columns and pads it to exactly width.
func fitCell(s string, width int, align alignment) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "...")
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if align == alignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", "<br>", "\r", "")

func writeMarkdown(w io.Writer, results []Result) error {
	rows := cells(results, markdownEscaper.Replace)
	// Alignment markers need at least three columns.
	widths := computeWidths(rows, 3)

	if err := writeMarkdownRow(w, header, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		if aligns[i] == alignRight {
			sep[i] = strings.Repeat("-", width-1) + ":"
		} else {
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, row []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(row[i], width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
