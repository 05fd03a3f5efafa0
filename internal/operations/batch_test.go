package operations

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporttable/pkg/contracts/domain"
)

func TestManager_RunBatch(t *testing.T) {
	dir := t.TempDir()

	var jobs []domain.ConversionJob
	for _, name := range []string{"a", "b", "c"} {
		input := writeFile(t, dir, name+".txt", "Table\n"+fixedLine("Age "+name, "65"))
		job := newJob(input, filepath.Join(dir, "out", name+".csv"))
		job.Name = name
		job.Format = "csv"
		jobs = append(jobs, *job)
	}

	results, err := NewManager(testLogger()).RunBatch(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, name := range []string{"a", "b", "c"} {
		require.NotNil(t, results[i])
		assert.Equal(t, name, results[i].Job)

		got, err := os.ReadFile(filepath.Join(dir, "out", name+".csv"))
		require.NoError(t, err)
		assert.Equal(t, "Age "+name+",65\n", string(got))
	}
}

func TestManager_RunBatchFailure(t *testing.T) {
	dir := t.TempDir()

	good := newJob(writeFile(t, dir, "good.txt", "Table\n"+fixedLine("Age", "65")), filepath.Join(dir, "good.tex"))
	good.Name = "good"
	bad := newJob(writeFile(t, dir, "bad.txt", "Table\n"+fixedLine("", "65")), filepath.Join(dir, "bad.tex"))
	bad.Name = "bad"

	results, err := NewManager(testLogger()).RunBatch(context.Background(), []domain.ConversionJob{*good, *bad}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Equal(t, StageParse, GetStage(err))
	require.Len(t, results, 2)
	assert.Nil(t, results[1])

	_, statErr := os.Stat(bad.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestManager_RunBatchEmpty(t *testing.T) {
	results, err := NewManager(testLogger()).RunBatch(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
