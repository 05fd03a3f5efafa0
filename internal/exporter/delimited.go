package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"reporttable/pkg/contracts/domain"
)

// delimitedFormatter writes header and rows as CSV records
type delimitedFormatter struct {
	name  string
	comma rune
}

func newDelimitedFormatter(name string, comma rune) *delimitedFormatter {
	return &delimitedFormatter{name: name, comma: comma}
}

func (f *delimitedFormatter) Name() string          { return f.name }
func (f *delimitedFormatter) DefaultIndent() string { return TextIndent }
func (f *delimitedFormatter) Binary() bool          { return false }

func (f *delimitedFormatter) Render(w io.Writer, t *domain.Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = f.comma

	for i, record := range t.Records() {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
