package operations

import (
	"bytes"
	"context"
	"log/slog"

	"reporttable/internal/dataprocessing"
	"reporttable/internal/exporter"
	"reporttable/internal/files"
)

// ReadStage loads the report and the optional prepend/append documents
type ReadStage struct {
	files *files.Manager
}

// NewReadStage creates the read stage
func NewReadStage(fm *files.Manager) *ReadStage {
	return &ReadStage{files: fm}
}

func (s *ReadStage) ID() string { return StageRead }

func (s *ReadStage) Execute(ctx context.Context, state *RunState) error {
	var err error
	if state.Report, err = s.files.ReadText(state.Job.Input); err != nil {
		return err
	}
	if state.Prepend, err = s.files.ReadOptional(state.Job.Prepend); err != nil {
		return err
	}
	if state.Appendix, err = s.files.ReadOptional(state.Job.Append); err != nil {
		return err
	}
	return nil
}

// ParseStage groups the report lines by label
type ParseStage struct {
	logger *slog.Logger
}

// NewParseStage creates the parse stage
func NewParseStage(logger *slog.Logger) *ParseStage {
	return &ParseStage{logger: logger}
}

func (s *ParseStage) ID() string { return StageParse }

func (s *ParseStage) Execute(ctx context.Context, state *RunState) error {
	parser := dataprocessing.NewParser(dataprocessing.ParseOptions{
		SplitColumn: state.Job.SplitColumn,
		SkipLines:   state.Job.SkipLines,
		Blacklist:   state.Job.Blacklist,
		Clean:       state.Job.Clean,
	}, s.logger)

	data, stats, err := parser.ParseReader(ctx, bytes.NewReader(state.Report))
	if err != nil {
		return err
	}
	state.Data = data
	state.ParseStats = stats
	return nil
}

// BuildStage turns grouped data into table rows
type BuildStage struct {
	logger *slog.Logger
}

// NewBuildStage creates the build stage
func NewBuildStage(logger *slog.Logger) *BuildStage {
	return &BuildStage{logger: logger}
}

func (s *BuildStage) ID() string { return StageBuild }

func (s *BuildStage) Execute(ctx context.Context, state *RunState) error {
	builder := dataprocessing.NewTableBuilder(dataprocessing.BuildOptions{
		Header: state.Job.Header,
		Indent: state.Indent,
	}, s.logger)

	table, stats, err := builder.Build(ctx, state.Data)
	if err != nil {
		return err
	}
	state.Table = table
	state.BuildStats = stats
	return nil
}

// RenderStage formats the table in memory
type RenderStage struct{}

// NewRenderStage creates the render stage
func NewRenderStage() *RenderStage {
	return &RenderStage{}
}

func (s *RenderStage) ID() string { return StageRender }

func (s *RenderStage) Execute(ctx context.Context, state *RunState) error {
	body, err := exporter.Render(state.Formatter.Name(), state.Table)
	if err != nil {
		return err
	}
	state.Body = body
	return nil
}

// WriteStage writes prepend + table + append to the output path
type WriteStage struct {
	files *files.Manager
}

// NewWriteStage creates the write stage
func NewWriteStage(fm *files.Manager) *WriteStage {
	return &WriteStage{files: fm}
}

func (s *WriteStage) ID() string { return StageWrite }

func (s *WriteStage) Execute(ctx context.Context, state *RunState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := s.files.WriteDocument(state.Job.Output, state.Prepend, state.Body, state.Appendix)
	state.BytesOut = n
	return err
}

// DefaultStages returns the conversion stages in execution order
func DefaultStages(fm *files.Manager, logger *slog.Logger) []Stage {
	return []Stage{
		NewReadStage(fm),
		NewParseStage(logger),
		NewBuildStage(logger),
		NewRenderStage(),
		NewWriteStage(fm),
	}
}
