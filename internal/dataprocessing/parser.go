package dataprocessing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"reporttable/internal/config"
	apperrors "reporttable/internal/errors"
	"reporttable/pkg/contracts/domain"
)

// maxLineBytes bounds a single report line read by ParseReader
const maxLineBytes = 1 << 20

// ParseOptions configures how a fixed-width report is split and filtered
type ParseOptions struct {
	SplitColumn int      // character offset where the value column starts
	SkipLines   []int    // 0-based line indices ignored unconditionally
	Blacklist   []string // labels excluded from the output entirely
	Clean       bool     // apply CleanLabel / CleanValue
}

// DefaultParseOptions returns the options matching the summary tool's layout
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		SplitColumn: config.DefaultSplitColumn,
		SkipLines:   config.DefaultSkipLines(),
		Blacklist:   config.DefaultBlacklist(),
		Clean:       true,
	}
}

// ParseStats summarizes a parse run
type ParseStats struct {
	LinesRead   int `json:"lines_read"`
	Skipped     int `json:"skipped"`
	Blacklisted int `json:"blacklisted"`
	Values      int `json:"values"`
	Labels      int `json:"labels"`
}

// Parser turns fixed-width report lines into grouped data
type Parser struct {
	opts      ParseOptions
	skip      map[int]struct{}
	blacklist map[string]struct{}
	logger    *slog.Logger
}

// NewParser creates a parser for opts
func NewParser(opts ParseOptions, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	skip := make(map[int]struct{}, len(opts.SkipLines))
	for _, n := range opts.SkipLines {
		skip[n] = struct{}{}
	}

	blacklist := make(map[string]struct{}, len(opts.Blacklist))
	for _, label := range opts.Blacklist {
		blacklist[strings.TrimSpace(label)] = struct{}{}
	}

	return &Parser{
		opts:      opts,
		skip:      skip,
		blacklist: blacklist,
		logger:    logger.With(slog.String("component", "line_parser")),
	}
}

// ParseLines is a convenience wrapper around NewParser(opts, nil).ParseLines
func ParseLines(lines []string, opts ParseOptions) (*domain.GroupedData, error) {
	data, _, err := NewParser(opts, nil).ParseLines(context.Background(), lines)
	return data, err
}

// ParseReader reads every line from r and parses them
func (p *Parser) ParseReader(ctx context.Context, r io.Reader) (*domain.GroupedData, ParseStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, ParseStats{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, ParseStats{}, apperrors.NewParsingError("failed to read report lines", err).
			WithContext("line", len(lines))
	}

	return p.ParseLines(ctx, lines)
}

// ParseLines groups values by label in first-seen label order.
// Lines may carry their terminator; it is never part of the value.
func (p *Parser) ParseLines(ctx context.Context, lines []string) (*domain.GroupedData, ParseStats, error) {
	if p.opts.SplitColumn <= 0 {
		return nil, ParseStats{}, apperrors.NewAppValidationError(
			fmt.Sprintf("split column number must be positive, got %d", p.opts.SplitColumn))
	}

	data := domain.NewGroupedData()
	stats := ParseStats{}

	// lastLabel carries the forward-fill state; lastBlacklisted travels with it
	// so continuation lines of an excluded label are excluded too.
	lastLabel := ""
	lastBlacklisted := false

	for i, line := range lines {
		stats.LinesRead++

		if strings.TrimSpace(line) == "" || p.skipped(i) {
			stats.Skipped++
			continue
		}

		rawLabel, value := SplitFields(line, p.opts.SplitColumn)
		label := rawLabel
		blacklisted := p.isBlacklisted(rawLabel)

		if p.opts.Clean {
			label = CleanLabel(label)
			value = CleanValue(value)
			blacklisted = blacklisted || p.isBlacklisted(label)
		}

		if label == "" {
			if lastLabel == "" {
				err := &apperrors.MissingPriorLabelError{Line: i}
				p.logger.ErrorContext(ctx, "Cannot find previous label to use",
					slog.Int("line", i))
				return nil, stats, err
			}
			label = lastLabel
			blacklisted = lastBlacklisted
		}

		lastLabel = label
		lastBlacklisted = blacklisted

		if blacklisted {
			stats.Blacklisted++
			p.logger.DebugContext(ctx, "Dropping blacklisted line",
				slog.Int("line", i),
				slog.String("label", label))
			continue
		}

		if value != "" {
			data.Append(label, value)
			stats.Values++
		} else {
			data.Touch(label)
		}
	}

	stats.Labels = data.Len()

	p.logger.InfoContext(ctx, "Report parsed",
		slog.Int("lines_read", stats.LinesRead),
		slog.Int("skipped", stats.Skipped),
		slog.Int("blacklisted", stats.Blacklisted),
		slog.Int("labels", stats.Labels),
		slog.Int("values", stats.Values))

	return data, stats, nil
}

func (p *Parser) skipped(index int) bool {
	_, ok := p.skip[index]
	return ok
}

func (p *Parser) isBlacklisted(label string) bool {
	if label == "" {
		return false
	}
	_, ok := p.blacklist[label]
	return ok
}

// SplitFields splits line at the split offset (in characters) into a trimmed
// label and value. The line terminator is dropped first; a line shorter than
// the offset yields an empty value.
func SplitFields(line string, split int) (label, value string) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	runes := []rune(line)
	if len(runes) <= split {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(string(runes[:split])), strings.TrimSpace(string(runes[split:]))
}
