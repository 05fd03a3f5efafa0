package dataprocessing

import (
	"context"
	"log/slog"

	apperrors "reporttable/internal/errors"
	"reporttable/pkg/contracts/domain"
)

// BuildOptions configures table assembly
type BuildOptions struct {
	Header []string
	Indent string
	// Rules are applied to every chunk in order. nil selects DefaultRules;
	// an empty non-nil slice disables rewriting.
	Rules []ChunkRule
}

// BuildStats summarizes a build run
type BuildStats struct {
	Rows        int      `json:"rows"`
	EmptyChunks int      `json:"empty_chunks"`
	Collapsed   int      `json:"collapsed"`
	EmptyLabels []string `json:"empty_labels,omitempty"`
}

// TableBuilder assembles table rows from grouped data
type TableBuilder struct {
	opts   BuildOptions
	rules  []ChunkRule
	logger *slog.Logger
}

// NewTableBuilder creates a builder for opts
func NewTableBuilder(opts BuildOptions, logger *slog.Logger) *TableBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	return &TableBuilder{
		opts:   opts,
		rules:  rules,
		logger: logger.With(slog.String("component", "table_builder")),
	}
}

// BuildTable is a convenience wrapper around NewTableBuilder(opts, nil).Build
func BuildTable(data *domain.GroupedData, opts BuildOptions) (*domain.Table, error) {
	table, _, err := NewTableBuilder(opts, nil).Build(context.Background(), data)
	return table, err
}

// Build walks the labels in order and emits rows for each chunk
func (b *TableBuilder) Build(ctx context.Context, data *domain.GroupedData) (*domain.Table, BuildStats, error) {
	table := &domain.Table{Rows: make([]domain.Row, 0, data.Len())}
	stats := BuildStats{}

	if len(b.opts.Header) > 0 {
		table.Header = append([]string(nil), b.opts.Header...)
	}

	for _, label := range data.Keys {
		chunk := b.applyRules(ctx, label, data.Chunk(label), &stats)

		switch {
		case len(chunk) == 0:
			stats.EmptyChunks++
			stats.EmptyLabels = append(stats.EmptyLabels, label)
			b.logger.WarnContext(ctx, "empty chunk for "+label, slog.String("label", label))

		case len(chunk) == 1:
			table.Rows = append(table.Rows, domain.Row{
				Label: label,
				Value: chunk[0],
				Kind:  domain.RowSimple,
			})

		default:
			if len(chunk)%2 != 0 {
				err := &apperrors.UnevenValuePairingError{Label: label, Count: len(chunk)}
				b.logger.ErrorContext(ctx, "Got an odd number of values",
					slog.String("label", label),
					slog.Int("count", len(chunk)))
				return nil, stats, err
			}

			table.Rows = append(table.Rows, domain.Row{
				Label: label,
				Kind:  domain.RowGroupHeader,
			})
			subLabels, subValues := Bisect(chunk)
			for i := range subLabels {
				table.Rows = append(table.Rows, domain.Row{
					Label:  subLabels[i],
					Value:  subValues[i],
					Indent: b.opts.Indent,
					Kind:   domain.RowSubRow,
				})
			}
		}
	}

	stats.Rows = len(table.Rows)

	b.logger.InfoContext(ctx, "Table assembled",
		slog.Int("rows", stats.Rows),
		slog.Int("empty_chunks", stats.EmptyChunks),
		slog.Int("collapsed", stats.Collapsed),
		slog.Bool("header", table.HasHeader()))

	return table, stats, nil
}

func (b *TableBuilder) applyRules(ctx context.Context, label string, chunk []string, stats *BuildStats) []string {
	for _, rule := range b.rules {
		labels, values := Bisect(chunk)
		if !rule.Match(labels, values) {
			continue
		}
		chunk = rule.Transform(labels, values)
		stats.Collapsed++
		b.logger.DebugContext(ctx, "Chunk rewritten",
			slog.String("label", label),
			slog.String("rule", rule.Name),
			slog.Int("values", len(chunk)))
	}
	return chunk
}
