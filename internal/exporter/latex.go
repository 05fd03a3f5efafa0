package exporter

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"reporttable/pkg/contracts/domain"
)

// latexLayout describes the environment and rules of a LaTeX table style
type latexLayout struct {
	environment string
	top         string
	belowHeader string
	bottom      string
	escape      bool
}

var (
	latexTabular = latexLayout{
		environment: "tabular",
		top:         `\hline`,
		belowHeader: `\hline`,
		bottom:      `\hline`,
		escape:      true,
	}
	latexLongtable = latexLayout{
		environment: "longtable",
		top:         `\hline`,
		belowHeader: "\\hline\n\\endhead",
		bottom:      `\hline`,
		escape:      true,
	}
	latexRaw = latexLayout{
		environment: "tabular",
		top:         `\hline`,
		belowHeader: `\hline`,
		bottom:      `\hline`,
	}
	latexBooktabs = latexLayout{
		environment: "tabular",
		top:         `\toprule`,
		belowHeader: `\midrule`,
		bottom:      `\bottomrule`,
		escape:      true,
	}
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`^`, `\^{}`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`<`, `\ensuremath{<}`,
	`>`, `\ensuremath{>}`,
)

// EscapeLaTeX escapes the LaTeX special characters in s
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

type latexFormatter struct {
	name   string
	layout latexLayout
}

func newLaTeXFormatter(name string, layout latexLayout) *latexFormatter {
	return &latexFormatter{name: name, layout: layout}
}

func (f *latexFormatter) Name() string          { return f.name }
func (f *latexFormatter) DefaultIndent() string { return LaTeXIndent }
func (f *latexFormatter) Binary() bool          { return false }

// Render writes the table with every cell padded to its column width
func (f *latexFormatter) Render(w io.Writer, t *domain.Table) error {
	header, rows := f.cells(t)
	widths := columnWidths(header, rows)

	bw := bufio.NewWriter(w)
	bw.WriteString(`\begin{` + f.layout.environment + `}{` + strings.Repeat("l", len(widths)) + "}\n")
	bw.WriteString(f.layout.top + "\n")
	if header != nil {
		bw.WriteString(latexRow(header, widths))
		bw.WriteString(f.layout.belowHeader + "\n")
	}
	for _, row := range rows {
		bw.WriteString(latexRow(row, widths))
	}
	bw.WriteString(f.layout.bottom + "\n")
	bw.WriteString(`\end{` + f.layout.environment + "}\n")
	return bw.Flush()
}

// cells returns the rendered header and body cells.
// The indent prefix is never escaped so commands like \quad survive.
func (f *latexFormatter) cells(t *domain.Table) ([]string, [][]string) {
	esc := func(s string) string {
		if f.layout.escape {
			return EscapeLaTeX(s)
		}
		return s
	}

	var header []string
	if t.HasHeader() {
		header = make([]string, len(t.Header))
		for i, h := range t.Header {
			header[i] = esc(h)
		}
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, []string{r.Indent + esc(r.Label), esc(r.Value)})
	}
	return header, rows
}

func latexRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, width := range widths {
		if i > 0 {
			sb.WriteString(" &")
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(pad(cell, width))
	}
	sb.WriteString(` \\` + "\n")
	return sb.String()
}

// columnWidths returns the widest cell per column, with at least two columns
func columnWidths(header []string, rows [][]string) []int {
	n := 2
	if len(header) > n {
		n = len(header)
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		for i, c := range cells {
			if l := utf8.RuneCountInString(c); l > widths[i] {
				widths[i] = l
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func pad(s string, width int) string {
	if gap := width - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
