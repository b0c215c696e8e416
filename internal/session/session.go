package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/capture"
	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// State of an interview session
type State string

const (
	StateNotStarted State = "not_started"
	StateRecording  State = "recording"
	StateStopped    State = "stopped"
)

const maxInterviewsPerDay = 999

// Directory names under the base directory
const (
	OriginalsDir = "originals"
	FragmentsDir = "fragments"
	MarksDir     = "marks"
)

// CaptureSettings are passed to the capture device on Start
type CaptureSettings struct {
	Resolution string
	Codec      string
	AudioCodec string
}

// Clock returns the current time
type Clock func() time.Time

// HistoryRecorder persists the summary of a finished session
type HistoryRecorder interface {
	RecordSession(ctx context.Context, summary Summary) error
}

// Summary describes a stopped session
type Summary struct {
	InterviewID       string        `json:"interview_id"`
	StartedAt         time.Time     `json:"started_at"`
	StoppedAt         time.Time     `json:"stopped_at"`
	RecordingDuration float64       `json:"recording_duration"`
	QuestionsClosed   int           `json:"questions_closed"`
	Succeeded         int           `json:"succeeded"`
	Total             int           `json:"total"`
	Log               []string      `json:"log"`
	Items             []batch.Item  `json:"items"`
	VideoPath         string        `json:"video_path"`
	MarksPath         string        `json:"marks_path"`
	ReportPath        string        `json:"report_path"`
	FragmentsDir      string        `json:"fragments_dir"`
	Report            report.Report `json:"report"`
	CaptureError      string        `json:"capture_error,omitempty"`
}

// Config holds everything a session needs
type Config struct {
	BaseDir     string
	InterviewID string // empty generates YYYY-MM-DD_NNN
	Sequence    int    // NNN when InterviewID is empty, defaults to 1
	FragmentExt string
	Capture     CaptureSettings

	Device  capture.Device
	Cutter  batch.Cutter
	Fs      afero.Fs
	Clock   Clock
	Logger  logrus.FieldLogger
	History HistoryRecorder
}

// Session drives one interview from recording to fragments. It is not safe
// for concurrent use.
type Session struct {
	id          string
	state       State
	startedAt   time.Time
	nextID      int
	videoPath   string
	marksPath   string
	fragments   string
	fragmentExt string
	capture     CaptureSettings

	set     *marks.MarkSet
	device  capture.Device
	cutter  batch.Cutter
	fs      afero.Fs
	clock   Clock
	logger  logrus.FieldLogger
	history HistoryRecorder
}

// DefaultInterviewID formats an id from a date and a sequence number
func DefaultInterviewID(day time.Time, seq int) string {
	if seq <= 0 {
		seq = 1
	}
	return fmt.Sprintf("%s_%03d", day.Format("2006-01-02"), seq)
}

// NextInterviewID returns the id after the highest one used for day under
// baseDir. Both marks files and recordings count, so gaps left by deleted
// interviews are not filled.
func NextInterviewID(fs afero.Fs, baseDir string, day time.Time) (string, error) {
	date := day.Format("2006-01-02")
	used := []struct{ dir, prefix, suffix string }{
		{MarksDir, "marks_" + date + "_", ".json"},
		{OriginalsDir, "interview_" + date + "_", ".mp4"},
	}

	highest := 0
	for _, u := range used {
		entries, err := afero.ReadDir(fs, filepath.Join(baseDir, u.dir))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasPrefix(name, u.prefix) || !strings.HasSuffix(name, u.suffix) {
				continue
			}
			seq, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, u.prefix), u.suffix))
			if err == nil && seq > highest {
				highest = seq
			}
		}
	}

	if highest >= maxInterviewsPerDay {
		return "", fmt.Errorf("no free interview number left for %s", date)
	}
	return DefaultInterviewID(day, highest+1), nil
}

// FragmentsPath returns the directory holding the fragments of one interview
func FragmentsPath(baseDir, interviewID string) string {
	return filepath.Join(baseDir, FragmentsDir, interviewID)
}

// VideoFileName returns the recording file name for an interview
func VideoFileName(interviewID string) string {
	return fmt.Sprintf("interview_%s.mp4", interviewID)
}

// New prepares the directory layout and writes an empty marks snapshot
func New(cfg Config) (*Session, error) {
	if cfg.BaseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if cfg.Device == nil {
		return nil, fmt.Errorf("capture device is required")
	}
	if cfg.Cutter == nil {
		return nil, fmt.Errorf("fragment cutter is required")
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.InterviewID == "" {
		cfg.InterviewID = DefaultInterviewID(cfg.Clock(), cfg.Sequence)
	}

	s := &Session{
		id:          cfg.InterviewID,
		state:       StateNotStarted,
		videoPath:   filepath.Join(cfg.BaseDir, OriginalsDir, VideoFileName(cfg.InterviewID)),
		marksPath:   filepath.Join(cfg.BaseDir, MarksDir, marks.FileName(cfg.InterviewID)),
		fragments:   FragmentsPath(cfg.BaseDir, cfg.InterviewID),
		fragmentExt: cfg.FragmentExt,
		capture:     cfg.Capture,
		device:      cfg.Device,
		cutter:      cfg.Cutter,
		fs:          cfg.Fs,
		clock:       cfg.Clock,
		logger:      logging.OrDiscard(cfg.Logger).WithField("interview_id", cfg.InterviewID),
		history:     cfg.History,
	}

	for _, dir := range []string{filepath.Dir(s.videoPath), s.fragments, filepath.Dir(s.marksPath)} {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	set, err := marks.NewMarkSet(s.id, s.videoPath, s.marksPath, marks.WithFs(s.fs))
	if err != nil {
		return nil, err
	}
	if err := set.Save(); err != nil {
		return nil, err
	}
	s.set = set

	return s, nil
}

// ID returns the interview id
func (s *Session) ID() string { return s.id }

// State returns the current state
func (s *Session) State() State { return s.state }

// VideoPath returns where the recording is written
func (s *Session) VideoPath() string { return s.videoPath }

// MarksPath returns the marks snapshot file
func (s *Session) MarksPath() string { return s.marksPath }

// FragmentsDir returns the fragment output directory
func (s *Session) FragmentsDir() string { return s.fragments }

// Marks returns the session's mark set
func (s *Session) Marks() *marks.MarkSet { return s.set }

// StartedAt returns the wall-clock start, zero before Start
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Start begins recording. On capture failure the session stays not started.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}

	startedAt := s.clock()
	err := s.device.StartRecording(s.videoPath, s.capture.Resolution, s.capture.Codec, s.capture.AudioCodec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	s.startedAt = startedAt
	s.state = StateRecording
	s.logger.WithField("video", s.videoPath).Info("Interview started")
	return nil
}

// Elapsed returns seconds since Start
func (s *Session) Elapsed() float64 {
	if s.startedAt.IsZero() {
		return 0
	}
	return s.clock().Sub(s.startedAt).Seconds()
}

// MarkQuestionStart opens a mark at the current offset and returns its id
func (s *Session) MarkQuestionStart() (int, error) {
	if s.state != StateRecording {
		return 0, ErrNotRecording
	}

	qid := s.nextID + 1
	m, err := marks.NewOpenMark(s.id, qid, s.Elapsed())
	if err != nil {
		return 0, err
	}
	if err := s.set.Add(m); err != nil {
		return 0, err
	}

	s.nextID = qid
	s.logger.WithFields(logrus.Fields{"question_id": qid, "start": m.Start()}).Debug("Question started")
	return qid, nil
}

// MarkQuestionEnd closes the open mark for questionID at the current offset
func (s *Session) MarkQuestionEnd(questionID int, note string) error {
	if s.state != StateRecording {
		return ErrNotRecording
	}

	end := s.Elapsed()
	if err := s.set.Close(questionID, end, note); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"question_id": questionID, "end": end}).Debug("Question ended")
	return nil
}

// Stop ends the recording, cuts a fragment per closed mark and writes the
// report. The session is stopped even when the capture device fails to stop.
func (s *Session) Stop(ctx context.Context, opts ...batch.Option) (Summary, error) {
	if s.state != StateRecording {
		return Summary{}, ErrNotRecording
	}

	stoppedAt := s.clock()
	s.state = StateStopped

	summary := Summary{
		InterviewID:       s.id,
		StartedAt:         s.startedAt,
		StoppedAt:         stoppedAt,
		RecordingDuration: stoppedAt.Sub(s.startedAt).Seconds(),
		VideoPath:         s.videoPath,
		MarksPath:         s.marksPath,
		FragmentsDir:      s.fragments,
		ReportPath:        filepath.Join(filepath.Dir(s.marksPath), report.FileName(s.id, report.FormatJSON)),
	}

	if err := s.device.StopRecording(); err != nil {
		summary.CaptureError = err.Error()
		s.logger.WithError(err).Warn("Stopping capture failed, cutting whatever was recorded")
	}

	jobOpts := append([]batch.Option{batch.WithLogger(s.logger), batch.WithExtension(s.ext())}, opts...)
	res := batch.NewJob(s.cutter, jobOpts...).Run(ctx, s.set, s.videoPath, s.fragments)

	summary.QuestionsClosed = len(s.set.ClosedMarks())
	summary.Succeeded = res.Succeeded
	summary.Total = res.Total
	summary.Log = res.Log
	summary.Items = res.Items
	summary.Report = report.Build(s.set, stoppedAt)

	if err := s.set.Save(); err != nil {
		return summary, err
	}
	if err := summary.Report.Write(s.fs, summary.ReportPath, report.FormatJSON); err != nil {
		return summary, err
	}

	if s.history != nil {
		if err := s.history.RecordSession(ctx, summary); err != nil {
			s.logger.WithError(err).Warn("Failed to record interview history")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"succeeded": summary.Succeeded,
		"total":     summary.Total,
		"duration":  summary.RecordingDuration,
	}).Info("Interview stopped")

	return summary, nil
}

func (s *Session) ext() string {
	if s.fragmentExt == "" {
		return "mp4"
	}
	return s.fragmentExt
}
