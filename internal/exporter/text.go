package exporter

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"reporttable/pkg/contracts/domain"
)

type textStyle int

const (
	textPlain textStyle = iota
	textSimple
	textGrid
	textPipe
	textGithub
)

type textFormatter struct {
	name  string
	style textStyle
}

func newTextFormatter(name string, style textStyle) *textFormatter {
	return &textFormatter{name: name, style: style}
}

func (f *textFormatter) Name() string          { return f.name }
func (f *textFormatter) DefaultIndent() string { return TextIndent }
func (f *textFormatter) Binary() bool          { return false }

func (f *textFormatter) renderer() tw.Renderer {
	noBorders := tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off}

	switch f.style {
	case textPipe, textGithub:
		return renderer.NewMarkdown()
	case textGrid:
		return renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleASCII),
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenRows: tw.On, BetweenColumns: tw.On},
			},
		})
	case textSimple:
		return renderer.NewBlueprint(tw.Rendition{
			Borders: noBorders,
			Symbols: tw.NewSymbols(tw.StyleASCII),
			Settings: tw.Settings{
				Lines:      tw.Lines{ShowHeaderLine: tw.On},
				Separators: tw.Separators{BetweenRows: tw.Off, BetweenColumns: tw.Off},
			},
		})
	default:
		return renderer.NewBlueprint(tw.Rendition{
			Borders: noBorders,
			Symbols: tw.NewSymbols(tw.StyleASCII),
			Settings: tw.Settings{
				Lines:      tw.Lines{ShowHeaderLine: tw.Off},
				Separators: tw.Separators{BetweenRows: tw.Off, BetweenColumns: tw.Off},
			},
		})
	}
}

// Render draws the table with tablewriter. Cell text is kept as-is:
// no header upper-casing and no trimming, so indented sub-rows stay indented.
func (f *textFormatter) Render(w io.Writer, t *domain.Table) error {
	table := tablewriter.NewTable(w, tablewriter.WithRenderer(f.renderer()))
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Behavior.TrimSpace = tw.Off
	})

	if t.HasHeader() {
		table.Header(t.Header)
	}
	for _, row := range t.Rows {
		if err := table.Append(row.Cells()); err != nil {
			return err
		}
	}
	return table.Render()
}
