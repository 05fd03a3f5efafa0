package domain

// ConversionJob describes one report-to-table conversion
type ConversionJob struct {
	Name        string   `json:"name,omitempty" yaml:"name"`
	Input       string   `json:"input" yaml:"input" validate:"required"`
	Output      string   `json:"output" yaml:"output" validate:"required"`
	Format      string   `json:"format" yaml:"format" validate:"required,format"`
	Prepend     string   `json:"prepend,omitempty" yaml:"prepend"`
	Append      string   `json:"append,omitempty" yaml:"append"`
	SplitColumn int      `json:"split_column_number" yaml:"split_column_number" validate:"gt=0"`
	SkipLines   []int    `json:"skip_lines" yaml:"skip_lines" validate:"nonnegative_ints"`
	Header      []string `json:"header,omitempty" yaml:"header" validate:"omitempty,max=2"`
	Blacklist   []string `json:"blacklist,omitempty" yaml:"blacklist"`
	Clean       bool     `json:"clean" yaml:"clean"`
	Indent      *string  `json:"indent,omitempty" yaml:"indent"`
}

// DisplayName returns the job name, falling back to its input path
func (j *ConversionJob) DisplayName() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Input
}

// RunResult summarizes a completed conversion
type RunResult struct {
	Job         string `json:"job"`
	LinesRead   int    `json:"lines_read"`
	Labels      int    `json:"labels"`
	Rows        int    `json:"rows"`
	EmptyChunks int    `json:"empty_chunks"`
	Collapsed   int    `json:"collapsed"`
	BytesOut    int    `json:"bytes_out"`
}
