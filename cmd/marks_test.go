package cmd

import (
	"path/filepath"
	"testing"

	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInterview = "2024-05-01_001"

// writeMarks stores a set with question 1 closed [10, 20) and question 2 open at 25
func writeMarks(t *testing.T, fs afero.Fs, path, video string) {
	t.Helper()

	set, err := marks.NewMarkSet(testInterview, video, path, marks.WithFs(fs))
	require.NoError(t, err)

	closed, err := marks.NewClosedMark(testInterview, 1, 10, 20, "intro")
	require.NoError(t, err)
	require.NoError(t, set.Add(closed))

	open, err := marks.NewOpenMark(testInterview, 2, 25)
	require.NoError(t, err)
	require.NoError(t, set.Add(open))
}

func TestMarksShow(t *testing.T) {
	fs := useMemFs(t)
	writeMarks(t, fs, "/m/marks.json", "/v/interview.mp4")

	out, err := execute(t, nil, "marks", "show", "/m/marks.json")
	require.NoError(t, err)

	assert.Contains(t, out, "Interview: "+testInterview)
	assert.Contains(t, out, "/v/interview.mp4")
	assert.Contains(t, out, "intro")
	assert.Contains(t, out, "open")

	out, err = execute(t, nil, "marks", "show", "/m/marks.json", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"video_file": "/v/interview.mp4"`)
}

func TestMarksShowMissingFile(t *testing.T) {
	useMemFs(t)

	_, err := execute(t, nil, "marks", "show", "/nope.json")
	assert.ErrorIs(t, err, marks.ErrSchema)
}

func TestMarksClose(t *testing.T) {
	fs := useMemFs(t)
	writeMarks(t, fs, "/marks.json", "/video.mp4")

	out, err := execute(t, nil, "marks", "close", "/marks.json", "2", "30", "--note", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "Closed question 2 at 30.0s")

	set, err := marks.Load(fs, "/marks.json", "")
	require.NoError(t, err)
	closed := set.ClosedMarks()
	require.Len(t, closed, 2)
	assert.Equal(t, 30.0, closed[1].End)
	assert.Equal(t, "done", closed[1].Note)
}

func TestMarksCloseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"already closed", []string{"1", "30"}, marks.ErrAlreadyClosed},
		{"unknown question", []string{"7", "30"}, marks.ErrNotFound},
		{"end before start", []string{"2", "24"}, marks.ErrValidation},
		{"not a number", []string{"2", "soon"}, marks.ErrValidation},
		{"nan", []string{"2", "NaN"}, marks.ErrValidation},
		{"infinite", []string{"2", "+Inf"}, marks.ErrValidation},
		{"bad question id", []string{"0", "30"}, marks.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := useMemFs(t)
			writeMarks(t, fs, "/marks.json", "/video.mp4")

			args := append([]string{"marks", "close", "/marks.json"}, tt.args...)
			_, err := execute(t, nil, args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarksAddAndRemove(t *testing.T) {
	fs := useMemFs(t)
	path := filepath.Join("/data", "marks.json")
	writeMarks(t, fs, path, "/video.mp4")

	_, err := execute(t, nil, "marks", "add", path, "3", "40", "50", "--note", "wrap-up")
	require.NoError(t, err)

	_, err = execute(t, nil, "marks", "add", path, "4", "15", "18")
	assert.ErrorIs(t, err, marks.ErrOverlap)

	out, err := execute(t, nil, "marks", "remove", path, "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed question 2")

	_, err = execute(t, nil, "marks", "remove", path, "2")
	assert.ErrorIs(t, err, marks.ErrNotFound)

	set, err := marks.Load(fs, path, "")
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	m, ok := set.FindByQuestion(3)
	require.True(t, ok)
	assert.Equal(t, "wrap-up", m.Note())
}
