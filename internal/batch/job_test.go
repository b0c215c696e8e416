package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/killallgit/interviewcut/internal/fragments"
	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	interviewID = "2025-01-01_001"
	sourcePath  = "/data/originals/interview_2025-01-01_001.mp4"
	outputDir   = "/data/fragments"
)

// fakeTool fails for the outputs listed in failFor
type fakeTool struct {
	failFor map[string]bool
	calls   []ffmpeg.CutOptions
}

func (f *fakeTool) Cut(ctx context.Context, opts ffmpeg.CutOptions) error {
	f.calls = append(f.calls, opts)
	if f.failFor[opts.Output] {
		return ffmpeg.NewProcessingError("cut", opts.Input, errors.New("exit status 1"), "Invalid data found")
	}
	return nil
}

func newSet(t *testing.T, fs afero.Fs, closed int) *marks.MarkSet {
	t.Helper()
	set, err := marks.NewMarkSet(interviewID, sourcePath, "/data/marks/marks_2025-01-01_001.json", marks.WithFs(fs))
	require.NoError(t, err)
	for i := 1; i <= closed; i++ {
		m, err := marks.NewClosedMark(interviewID, i, float64(i*10), float64(i*10+5), "")
		require.NoError(t, err)
		require.NoError(t, set.Add(m))
	}
	return set
}

func setup(t *testing.T, closed int, failFor ...int) (*marks.MarkSet, *fakeTool, *fragments.Cutter) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, sourcePath, []byte("video"), 0644))

	tool := &fakeTool{failFor: map[string]bool{}}
	for _, qid := range failFor {
		tool.failFor[outputDir+"/"+fragments.FileName(interviewID, qid, "mp4")] = true
	}
	return newSet(t, fs, closed), tool, fragments.NewCutter(tool, fragments.WithFs(fs))
}

func TestRunIsolatesFailures(t *testing.T) {
	set, tool, cutter := setup(t, 5, 3)

	res := NewJob(cutter).Run(context.Background(), set, sourcePath, outputDir)

	assert.Equal(t, 4, res.Succeeded)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 1, res.Failed())
	assert.Len(t, tool.calls, 5)

	var errorLines, successLines []string
	for _, line := range res.Log {
		switch {
		case strings.HasPrefix(line, "error generating fragment"):
			errorLines = append(errorLines, line)
		case strings.HasPrefix(line, "fragment generated: "):
			successLines = append(successLines, line)
		}
	}

	require.Len(t, errorLines, 1)
	assert.Contains(t, errorLines[0], "(question 3)")
	assert.Equal(t, []string{
		"fragment generated: fragment_2025-01-01_001_001.mp4",
		"fragment generated: fragment_2025-01-01_001_002.mp4",
		"fragment generated: fragment_2025-01-01_001_004.mp4",
		"fragment generated: fragment_2025-01-01_001_005.mp4",
	}, successLines)
	assert.Equal(t, "4/5 completed", res.Log[len(res.Log)-1])

	require.Len(t, res.Items, 5)
	assert.Equal(t, StatusFailed, res.Items[2].Status)
	assert.Equal(t, 3, res.Items[2].QuestionID)
	assert.NotEmpty(t, res.Items[2].Error)
}

func TestRunSkipsOpenMarks(t *testing.T) {
	set, tool, cutter := setup(t, 2)

	open, err := marks.NewOpenMark(interviewID, 3, 100)
	require.NoError(t, err)
	require.NoError(t, set.Add(open))

	res := NewJob(cutter).Run(context.Background(), set, sourcePath, outputDir)

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Total, "skipped marks are not counted")
	assert.Len(t, tool.calls, 2)
	assert.Contains(t, res.Log, "invalid mark (question 3): mark has no end")
	assert.Equal(t, StatusSkipped, res.Items[2].Status)
	assert.Equal(t, "2/2 completed", res.Log[len(res.Log)-1])
}

func TestRunEmptySet(t *testing.T) {
	set, _, cutter := setup(t, 0)

	res := NewJob(cutter).Run(context.Background(), set, sourcePath, outputDir)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, []string{"0/0 completed"}, res.Log)
}

func TestRunMissingSource(t *testing.T) {
	set, tool, cutter := setup(t, 2)

	res := NewJob(cutter).Run(context.Background(), set, "/nope.mp4", outputDir)

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 2, res.Total)
	assert.Empty(t, tool.calls)
	assert.Contains(t, res.Log[0], "source video not found")
}

func TestRunProgressAndLogger(t *testing.T) {
	set, _, cutter := setup(t, 3, 2)

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "info", Output: &buf})

	var progress [][2]int
	job := NewJob(cutter,
		WithLogger(logger),
		WithProgress(func(done, total int) { progress = append(progress, [2]int{done, total}) }),
	)

	res := job.Run(context.Background(), set, sourcePath, outputDir)

	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
	assert.Equal(t, "2/3 completed", res.Summary())
	assert.Contains(t, buf.String(), "error generating fragment")
	assert.Contains(t, buf.String(), "2/3 completed")
}

func TestRunStopsWhenCancelled(t *testing.T) {
	set, tool, cutter := setup(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	job := NewJob(cutter, WithProgress(func(done, total int) {
		if done == 1 {
			cancel()
		}
	}))

	res := job.Run(ctx, set, sourcePath, outputDir)

	assert.Len(t, tool.calls, 1)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, "1/1 completed", res.Log[len(res.Log)-1])
}
