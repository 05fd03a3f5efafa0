package exporter

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	apperrors "reporttable/internal/errors"
	"reporttable/pkg/contracts/domain"
)

const (
	// LaTeXIndent prefixes sub-rows in LaTeX output
	LaTeXIndent = `\quad `
	// TextIndent prefixes sub-rows in plain text, markdown and delimited output
	TextIndent = "  "
)

// Formatter renders a table in one output format
type Formatter interface {
	Name() string
	// DefaultIndent is the sub-row prefix used when none is configured
	DefaultIndent() string
	// Binary formatters cannot be wrapped with prepend/append text
	Binary() bool
	Render(w io.Writer, t *domain.Table) error
}

var registry = newRegistry(
	newLaTeXFormatter("latex_longtable", latexLongtable),
	newLaTeXFormatter("latex", latexTabular),
	newLaTeXFormatter("latex_raw", latexRaw),
	newLaTeXFormatter("latex_booktabs", latexBooktabs),
	newTextFormatter("plain", textPlain),
	newTextFormatter("simple", textSimple),
	newTextFormatter("grid", textGrid),
	newTextFormatter("pipe", textPipe),
	newTextFormatter("github", textGithub),
	newDelimitedFormatter("csv", ','),
	newDelimitedFormatter("tsv", '\t'),
	newXLSXFormatter(),
)

func newRegistry(formatters ...Formatter) map[string]Formatter {
	m := make(map[string]Formatter, len(formatters))
	for _, f := range formatters {
		m[f.Name()] = f
	}
	return m
}

// Lookup returns the formatter registered under name
func Lookup(name string) (Formatter, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("unknown format %q (available: %s)", name, strings.Join(Names(), ", "))).
			WithContext("format", name)
	}
	return f, nil
}

// IsRegistered reports whether name is a known format
func IsRegistered(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Names returns all registered format names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats t in memory so nothing reaches disk when rendering fails
func Render(name string, t *domain.Table) ([]byte, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf, t); err != nil {
		return nil, apperrors.NewFormatError("failed to render "+f.Name(), err)
	}
	return buf.Bytes(), nil
}
