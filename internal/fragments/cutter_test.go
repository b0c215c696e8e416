package fragments

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const source = "/data/originals/interview_2025-01-01_001.mp4"

type MockTool struct {
	mock.Mock
}

func (m *MockTool) Cut(ctx context.Context, opts ffmpeg.CutOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func closedMark(t *testing.T, qid int, start, end float64) marks.Mark {
	t.Helper()
	m, err := marks.NewClosedMark("2025-01-01_001", qid, start, end, "")
	require.NoError(t, err)
	return m
}

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, source, []byte("video"), 0644))
	return fs
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "fragment_2025-01-01_001_007.mp4", FileName("2025-01-01_001", 7, "mp4"))
	assert.Equal(t, "fragment_2025-01-01_001_123.mov", FileName("2025-01-01_001", 123, ".mov"))
	assert.Equal(t, "fragment_x_001.mp4", FileName("x", 1, ""))
}

func TestNewFragment(t *testing.T) {
	f, err := NewFragment(closedMark(t, 7, 12.5, 20), "/data/fragments", "")
	require.NoError(t, err)

	assert.Equal(t, "/data/fragments/fragment_2025-01-01_001_007.mp4", f.OutputPath())
	assert.InDelta(t, 7.5, f.Duration(), 1e-9)
	assert.False(t, f.IsGenerated())
}

func TestNewFragmentRequiresClosedMark(t *testing.T) {
	open, err := marks.NewOpenMark("2025-01-01_001", 1, 0)
	require.NoError(t, err)

	_, err = NewFragment(open, "/data/fragments", "mp4")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCutterCut(t *testing.T) {
	fs := newFs(t)
	tool := new(MockTool)
	enc := ffmpeg.EncodeOptions{VideoCodec: "libx264", AudioCodec: "aac", Preset: "veryfast"}
	cutter := NewCutter(tool, WithFs(fs), WithEncodeOptions(enc))

	f, err := NewFragment(closedMark(t, 2, 12.5, 20), "/data/fragments", "mp4")
	require.NoError(t, err)

	tool.On("Cut", mock.Anything, ffmpeg.CutOptions{
		Input:    source,
		Output:   "/data/fragments/fragment_2025-01-01_001_002.mp4",
		Start:    12.5,
		Duration: 7.5,
		Encode:   enc,
	}).Return(nil).Once()

	gen, err := cutter.Cut(context.Background(), f, source)
	require.NoError(t, err)
	assert.Equal(t, f.OutputPath(), gen.OutputPath)
	assert.InDelta(t, 7.5, gen.Duration, 1e-9)
	assert.True(t, f.IsGenerated())

	dirExists, _ := afero.DirExists(fs, "/data/fragments")
	assert.True(t, dirExists, "output directory is created")

	tool.AssertExpectations(t)
}

func TestCutterCutIsOneShot(t *testing.T) {
	fs := newFs(t)
	tool := new(MockTool)
	cutter := NewCutter(tool, WithFs(fs))

	f, err := NewFragment(closedMark(t, 1, 0, 5), "/data/fragments", "mp4")
	require.NoError(t, err)
	copied := f

	tool.On("Cut", mock.Anything, mock.Anything).Return(nil).Once()

	_, err = cutter.Cut(context.Background(), f, source)
	require.NoError(t, err)

	_, err = cutter.Cut(context.Background(), copied, source)
	assert.True(t, errors.Is(err, ErrAlreadyGenerated))

	tool.AssertNumberOfCalls(t, "Cut", 1)
}

func TestCutterSourceNotFound(t *testing.T) {
	tool := new(MockTool)
	cutter := NewCutter(tool, WithFs(afero.NewMemMapFs()))

	f, err := NewFragment(closedMark(t, 1, 0, 5), "/data/fragments", "mp4")
	require.NoError(t, err)

	_, err = cutter.Cut(context.Background(), f, "/missing.mp4")
	assert.True(t, errors.Is(err, ErrSourceNotFound))
	tool.AssertNotCalled(t, "Cut", mock.Anything, mock.Anything)
}

func TestCutterInvalidRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
	}{
		{"empty", 8, 8},
		{"reversed", 9, 8},
		{"nan start", math.NaN(), 8},
		{"nan end", 1, math.NaN()},
		{"infinite end", 1, math.Inf(1)},
		{"negative infinite start", math.Inf(-1), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t)
			tool := new(MockTool)
			cutter := NewCutter(tool, WithFs(fs))

			f := NewFragmentFromClosed(marks.ClosedMark{InterviewID: "2025-01-01_001", QuestionID: 4, Start: tt.start, End: tt.end}, "/data/fragments", "mp4")

			_, err := cutter.Cut(context.Background(), f, source)
			assert.True(t, errors.Is(err, ErrInvalidRange))
			tool.AssertNotCalled(t, "Cut", mock.Anything, mock.Anything)
		})
	}
}

func TestCutterToolFailure(t *testing.T) {
	fs := newFs(t)
	tool := new(MockTool)
	cutter := NewCutter(tool, WithFs(fs))

	f, err := NewFragment(closedMark(t, 3, 1, 2), "/data/fragments", "mp4")
	require.NoError(t, err)

	toolErr := ffmpeg.NewProcessingError("cut", source, errors.New("exit status 1"), "moov atom not found")
	tool.On("Cut", mock.Anything, mock.Anything).Return(toolErr).Twice()

	_, err = cutter.Cut(context.Background(), f, source)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCutFailed))

	var cutErr *CutError
	require.True(t, errors.As(err, &cutErr))
	assert.Equal(t, "moov atom not found", cutErr.Stderr)
	assert.False(t, f.IsGenerated(), "failed cut leaves the fragment pending")

	_, err = cutter.Cut(context.Background(), f, source)
	assert.True(t, errors.Is(err, ErrCutFailed), "a failed fragment can be attempted again")
}

func TestFragmentZeroValueRejected(t *testing.T) {
	cutter := NewCutter(new(MockTool), WithFs(newFs(t)))
	_, err := cutter.Cut(context.Background(), Fragment{}, source)
	assert.True(t, errors.Is(err, ErrValidation))
}
