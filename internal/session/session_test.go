package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/killallgit/interviewcut/internal/capture"
	"github.com/killallgit/interviewcut/internal/fragments"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/report"
	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(seconds float64) {
	c.now = c.now.Add(time.Duration(seconds * float64(time.Second)))
}

// recordingTool writes a placeholder file for every cut
type recordingTool struct {
	fs    afero.Fs
	calls int
}

func (r *recordingTool) Cut(ctx context.Context, opts ffmpeg.CutOptions) error {
	r.calls++
	return afero.WriteFile(r.fs, opts.Output, []byte("fragment"), 0644)
}

type historyStub struct {
	summaries []Summary
}

func (h *historyStub) RecordSession(ctx context.Context, summary Summary) error {
	h.summaries = append(h.summaries, summary)
	return nil
}

type fixture struct {
	fs      afero.Fs
	clock   *fakeClock
	device  *capture.NopDevice
	tool    *recordingTool
	history *historyStub
	session *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	f := &fixture{
		fs:      fs,
		clock:   &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)},
		device:  &capture.NopDevice{},
		tool:    &recordingTool{fs: fs},
		history: &historyStub{},
	}

	s, err := New(Config{
		BaseDir: "/data",
		Capture: CaptureSettings{Resolution: "720p", Codec: "H.264", AudioCodec: "AAC"},
		Device:  f.device,
		Cutter:  fragments.NewCutter(f.tool, fragments.WithFs(fs)),
		Fs:      fs,
		Clock:   f.clock.Now,
		History: f.history,
	})
	require.NoError(t, err)
	f.session = s
	return f
}

// startWithVideo starts the session and creates the recording the device
// would have produced
func (f *fixture) startWithVideo(t *testing.T) {
	t.Helper()
	require.NoError(t, f.session.Start())
	require.NoError(t, afero.WriteFile(f.fs, f.session.VideoPath(), []byte("video"), 0644))
}

func TestNewCreatesLayout(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "2025-01-01_001", f.session.ID())
	assert.Equal(t, StateNotStarted, f.session.State())
	assert.Equal(t, "/data/originals/interview_2025-01-01_001.mp4", f.session.VideoPath())
	assert.Equal(t, "/data/fragments/2025-01-01_001", f.session.FragmentsDir())
	assert.Equal(t, "/data/marks/marks_2025-01-01_001.json", f.session.MarksPath())

	for _, dir := range []string{"/data/originals", "/data/fragments/2025-01-01_001", "/data/marks"} {
		ok, err := afero.DirExists(f.fs, dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}

	doc, parsed, err := marks.ReadDocument(f.fs, f.session.MarksPath())
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01_001", doc.InterviewID)
	assert.Empty(t, parsed)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Config{BaseDir: "/data", Cutter: fragments.NewCutter(&recordingTool{})})
	assert.Error(t, err)

	_, err = New(Config{Device: &capture.NopDevice{}, Cutter: fragments.NewCutter(&recordingTool{})})
	assert.Error(t, err)
}

func TestDefaultInterviewID(t *testing.T) {
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09_001", DefaultInterviewID(day, 0))
	assert.Equal(t, "2025-03-09_042", DefaultInterviewID(day, 42))
}

func TestNextInterviewID(t *testing.T) {
	fs := afero.NewMemMapFs()
	day := time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC)

	id, err := NextInterviewID(fs, "/data", day)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01_001", id)

	require.NoError(t, afero.WriteFile(fs, "/data/marks/marks_2025-01-01_001.json", []byte("{}"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/marks/marks_2025-01-01_002.json", []byte("{}"), 0644))

	id, err = NextInterviewID(fs, "/data", day)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01_003", id)

	id, err = NextInterviewID(fs, "/data", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02_001", id)
}

func TestNextInterviewIDSkipsDeletedNumbers(t *testing.T) {
	fs := afero.NewMemMapFs()
	day := time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC)

	for _, path := range []string{
		"/data/marks/marks_2025-01-01_001.json",
		"/data/marks/marks_2025-01-01_003.json",
		"/data/marks/.marks_2025-01-01_009.tmp",
		"/data/marks/marks_2024-12-31_042.json",
		"/data/marks/report_2025-01-01_007.json",
	} {
		require.NoError(t, afero.WriteFile(fs, path, []byte("{}"), 0644))
	}

	id, err := NextInterviewID(fs, "/data", day)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01_004", id, "number 2 was deleted and stays retired")

	require.NoError(t, afero.WriteFile(fs, "/data/originals/interview_2025-01-01_005.mp4", []byte("v"), 0644))
	id, err = NextInterviewID(fs, "/data", day)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01_006", id, "a recording without marks still holds its number")
}

func TestStateMachine(t *testing.T) {
	t.Run("start twice", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.Start())
		assert.True(t, errors.Is(f.session.Start(), ErrAlreadyStarted))
	})

	t.Run("mark before start", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.MarkQuestionStart()
		assert.True(t, errors.Is(err, ErrNotRecording))
		assert.True(t, errors.Is(f.session.MarkQuestionEnd(1, ""), ErrNotRecording))
	})

	t.Run("stop before start", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.session.Stop(context.Background())
		assert.True(t, errors.Is(err, ErrNotRecording))
	})

	t.Run("stop twice", func(t *testing.T) {
		f := newFixture(t)
		f.startWithVideo(t)
		_, err := f.session.Stop(context.Background())
		require.NoError(t, err)

		_, err = f.session.Stop(context.Background())
		assert.True(t, errors.Is(err, ErrNotRecording))
		assert.True(t, errors.Is(f.session.Start(), ErrAlreadyStarted))
	})

	t.Run("capture failure keeps session not started", func(t *testing.T) {
		f := newFixture(t)
		f.device.StartErr = errors.New("no camera")

		err := f.session.Start()
		assert.True(t, errors.Is(err, ErrCaptureFailed))
		assert.Equal(t, StateNotStarted, f.session.State())

		f.device.StartErr = nil
		require.NoError(t, f.session.Start())
		assert.Equal(t, StateRecording, f.session.State())
	})
}

func TestFullInterview(t *testing.T) {
	f := newFixture(t)
	f.startWithVideo(t)
	assert.Equal(t, "/data/originals/interview_2025-01-01_001.mp4", f.device.LastPath)

	q1, err := f.session.MarkQuestionStart()
	require.NoError(t, err)
	assert.Equal(t, 1, q1)

	f.clock.Advance(12.5)
	require.NoError(t, f.session.MarkQuestionEnd(q1, "ok"))

	q2, err := f.session.MarkQuestionStart()
	require.NoError(t, err)
	assert.Equal(t, 2, q2)

	f.clock.Advance(7.5)
	require.NoError(t, f.session.MarkQuestionEnd(q2, ""))

	q3, err := f.session.MarkQuestionStart()
	require.NoError(t, err)
	assert.Equal(t, 3, q3)

	f.clock.Advance(10)
	summary, err := f.session.Stop(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateStopped, f.session.State())
	assert.False(t, f.device.Recording())
	assert.Equal(t, 2, summary.QuestionsClosed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 2, summary.Total)
	assert.InDelta(t, 30, summary.RecordingDuration, 1e-9)
	assert.Equal(t, "2/2 completed", summary.Log[len(summary.Log)-1])
	assert.Contains(t, summary.Log, "invalid mark (question 3): mark has no end")
	assert.Equal(t, 2, f.tool.calls)

	for _, name := range []string{"fragment_2025-01-01_001_001.mp4", "fragment_2025-01-01_001_002.mp4"} {
		ok, _ := afero.Exists(f.fs, "/data/fragments/2025-01-01_001/"+name)
		assert.True(t, ok, name)
	}

	assert.Equal(t, "/data/marks/report_2025-01-01_001.json", summary.ReportPath)
	r, err := report.Read(f.fs, summary.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Summary.TotalQuestions)
	assert.Equal(t, 1, r.Summary.QuestionsWithNote)
	assert.InDelta(t, 20, r.Summary.TotalDuration, 1e-9)

	require.Len(t, f.history.summaries, 1)
	assert.Equal(t, "2025-01-01_001", f.history.summaries[0].InterviewID)
}

func TestStopContinuesWhenCaptureStopFails(t *testing.T) {
	f := newFixture(t)
	f.startWithVideo(t)
	f.device.StopErr = errors.New("ffmpeg hung")

	q, err := f.session.MarkQuestionStart()
	require.NoError(t, err)
	f.clock.Advance(3)
	require.NoError(t, f.session.MarkQuestionEnd(q, ""))

	summary, err := f.session.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateStopped, f.session.State())
	assert.Equal(t, "ffmpeg hung", summary.CaptureError)
	assert.Equal(t, 1, summary.Succeeded)
}

func TestMarkQuestionEndErrors(t *testing.T) {
	f := newFixture(t)
	f.startWithVideo(t)

	err := f.session.MarkQuestionEnd(99, "")
	assert.True(t, errors.Is(err, marks.ErrNotFound))

	q, err := f.session.MarkQuestionStart()
	require.NoError(t, err)
	f.clock.Advance(1)
	require.NoError(t, f.session.MarkQuestionEnd(q, ""))

	err = f.session.MarkQuestionEnd(q, "")
	assert.True(t, errors.Is(err, marks.ErrAlreadyClosed))
}
