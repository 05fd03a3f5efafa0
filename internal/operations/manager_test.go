package operations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporttable/internal/config"
	apperrors "reporttable/internal/errors"
	"reporttable/internal/infrastructure"
	"reporttable/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func fixedLine(label, value string) string {
	return fmt.Sprintf("%-63s%s\n", label, value)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newJob(input, output string) *domain.ConversionJob {
	job := JobFromConfig(config.Default().Converter)
	job.Input = input
	job.Output = output
	job.SkipLines = []int{0}
	return &job
}

func TestManager_RunWrapsTable(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "table one.txt", "Table 1\n"+fixedLine("Age", "65 (12.3)"))

	job := newJob(input, filepath.Join(dir, "out", "table1.tex"))
	job.Prepend = writeFile(t, dir, "pre.tex", "\\begin{table}\n")
	job.Append = writeFile(t, dir, "post.tex", "\\end{table}\n")

	result, err := NewManager(testLogger()).Run(context.Background(), job)
	require.NoError(t, err)

	got, err := os.ReadFile(job.Output)
	require.NoError(t, err)

	want := strings.Join([]string{
		`\begin{table}`,
		`\begin{longtable}{ll}`,
		`\hline`,
		` Age & 65 (12.3) \\`,
		`\hline`,
		`\end{longtable}`,
		`\end{table}`,
	}, "\n") + "\n"
	assert.Equal(t, want, string(got))

	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, 1, result.Labels)
	assert.Equal(t, 2, result.LinesRead)
	assert.Equal(t, len(want), result.BytesOut)
}

func TestManager_RunSexCollapseAndBlacklist(t *testing.T) {
	dir := t.TempDir()
	report := "Table 1\n" +
		fixedLine("data_partner_id (mean (SD))", "4.2 (1.1)") +
		fixedLine("Sex", "TRUE") +
		fixedLine("", "FALSE") +
		fixedLine("", "40 (50)") +
		fixedLine("", "40 (50)")
	input := writeFile(t, dir, "report.txt", report)

	job := newJob(input, filepath.Join(dir, "table.csv"))
	job.Format = "csv"

	_, err := NewManager(testLogger()).Run(context.Background(), job)
	require.NoError(t, err)

	got, err := os.ReadFile(job.Output)
	require.NoError(t, err)
	assert.Equal(t, "Sex,40 (50)\n", string(got))
}

func TestManager_RunUsesIndentOverride(t *testing.T) {
	dir := t.TempDir()
	report := "Table 1\n" +
		fixedLine("Race", "White") +
		fixedLine("", "Black") +
		fixedLine("", "10 (50)") +
		fixedLine("", "10 (50)")
	input := writeFile(t, dir, "report.txt", report)

	job := newJob(input, filepath.Join(dir, "table.tsv"))
	job.Format = "tsv"
	indent := "- "
	job.Indent = &indent

	_, err := NewManager(testLogger()).Run(context.Background(), job)
	require.NoError(t, err)

	got, err := os.ReadFile(job.Output)
	require.NoError(t, err)
	assert.Equal(t, "Race\t\n- White\t10 (50)\n- Black\t10 (50)\n", string(got))
}

func TestManager_RunOddValuesWritesNothing(t *testing.T) {
	dir := t.TempDir()
	report := "Table 1\n" +
		fixedLine("Race", "White") +
		fixedLine("", "Black") +
		fixedLine("", "10 (50)")
	input := writeFile(t, dir, "report.txt", report)
	output := filepath.Join(dir, "table.tex")

	result, err := NewManager(testLogger()).Run(context.Background(), newJob(input, output))
	require.Error(t, err)
	assert.Nil(t, result)

	var uneven *apperrors.UnevenValuePairingError
	require.ErrorAs(t, err, &uneven)
	assert.Equal(t, "Race", uneven.Label)
	assert.Equal(t, StageBuild, GetStage(err))

	_, statErr := os.Stat(output)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestManager_RunMissingPriorLabel(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "report.txt", "Table 1\n"+fixedLine("", "12"))

	_, err := NewManager(testLogger()).Run(context.Background(), newJob(input, filepath.Join(dir, "t.tex")))
	require.Error(t, err)
	assert.True(t, apperrors.IsParsingError(err))
	assert.Equal(t, StageParse, GetStage(err))
}

func TestManager_RunValidation(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(testLogger())

	_, err := m.Run(context.Background(), newJob(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "t.tex")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")

	input := writeFile(t, dir, "report.txt", "Table 1\n")
	job := newJob(input, filepath.Join(dir, "t.tex"))
	job.Format = "html"
	_, err = m.Run(context.Background(), job)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	_, err = m.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestManager_RunCancelled(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "report.txt", "Table 1\n"+fixedLine("Age", "65"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewManager(testLogger()).Run(ctx, newJob(input, filepath.Join(dir, "t.tex")))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StageRead, GetStage(err))
}

type recordingStage struct {
	id    string
	calls *[]string
	err   error
}

func (s *recordingStage) ID() string { return s.id }

func (s *recordingStage) Execute(ctx context.Context, state *RunState) error {
	*s.calls = append(*s.calls, s.id)
	return s.err
}

func TestManager_StagesRunInOrderAndStopOnFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "report.txt", "Table 1\n")

	var calls []string
	boom := errors.New("boom")
	m := NewManager(testLogger(), WithStages(
		&recordingStage{id: "one", calls: &calls},
		&recordingStage{id: "two", calls: &calls, err: boom},
		&recordingStage{id: "three", calls: &calls},
	))

	_, err := m.Run(context.Background(), newJob(input, filepath.Join(dir, "t.tex")))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "two", GetStage(err))
	assert.Equal(t, []string{"one", "two"}, calls)
}

func TestManager_RecordsMetrics(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "report.txt", "Table 1\n"+fixedLine("Age", "65")+fixedLine("Comorbidities", ""))

	tel, err := infrastructure.InitializeTelemetry(context.Background(),
		config.TelemetryConfig{TraceExporter: "none"}, testLogger())
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	m := NewManager(testLogger(), WithTelemetry(tel))
	_, err = m.Run(context.Background(), newJob(input, filepath.Join(dir, "t.tex")))
	require.NoError(t, err)

	metricsPath := filepath.Join(dir, "metrics", "maketable.prom")
	require.NoError(t, tel.WriteMetrics(metricsPath))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "maketable_rows_emitted")
	assert.Contains(t, text, "maketable_empty_chunks")
	assert.Contains(t, text, `status="success"`)
}
