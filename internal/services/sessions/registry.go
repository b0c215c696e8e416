package sessions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionBusy     = errors.New("session is stopping")
	ErrSessionActive   = errors.New("session is still recording")
)

// StateStopping is reported while fragments are being cut after a stop
const StateStopping session.State = "stopping"

// Factory builds a session for an interview id
type Factory func(interviewID string) (*session.Session, error)

// IDFunc returns the next free interview id
type IDFunc func() (string, error)

// Progress of the cuts running after a stop
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Info is a point-in-time view of a live session
type Info struct {
	InterviewID  string           `json:"interview_id"`
	State        session.State    `json:"state"`
	StartedAt    *time.Time       `json:"started_at,omitempty"`
	Elapsed      float64          `json:"elapsed"`
	VideoPath    string           `json:"video_path"`
	MarksPath    string           `json:"marks_path"`
	FragmentsDir string           `json:"fragments_dir"`
	Progress     *Progress        `json:"progress,omitempty"`
	Summary      *session.Summary `json:"summary,omitempty"`
	Error        string           `json:"error,omitempty"`
}

type entry struct {
	// mu serializes every call into the session. A stop holds it until the
	// background cut finishes.
	mu      sync.Mutex
	session *session.Session

	infoMu    sync.RWMutex
	state     session.State
	startedAt time.Time
	progress  *Progress
	summary   *session.Summary
	err       string
}

// Registry tracks live interview sessions for concurrent callers
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry

	factory Factory
	nextID  IDFunc
	fs      afero.Fs
	clock   session.Clock
	logger  logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Registry
type Option func(*Registry)

// WithFs sets the filesystem marks snapshots are read from
func WithFs(fs afero.Fs) Option {
	return func(r *Registry) { r.fs = fs }
}

// WithClock sets the clock used for elapsed times
func WithClock(clock session.Clock) Option {
	return func(r *Registry) { r.clock = clock }
}

// WithLogger sets the registry logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Registry) { r.logger = logging.OrDiscard(logger) }
}

// NewRegistry creates an empty registry
func NewRegistry(factory Factory, nextID IDFunc, opts ...Option) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		entries: make(map[string]*entry),
		factory: factory,
		nextID:  nextID,
		fs:      afero.NewOsFs(),
		clock:   time.Now,
		logger:  logging.Discard(),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithField("component", "sessions")
	return r
}

// Create prepares a new session. An empty id picks the next free one.
func (r *Registry) Create(interviewID string) (Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if interviewID == "" {
		id, err := r.nextID()
		if err != nil {
			return Info{}, fmt.Errorf("allocating interview id: %w", err)
		}
		interviewID = id
	}
	if _, ok := r.entries[interviewID]; ok {
		return Info{}, fmt.Errorf("%w: %s", ErrSessionExists, interviewID)
	}

	s, err := r.factory(interviewID)
	if err != nil {
		return Info{}, err
	}

	e := &entry{session: s, state: s.State()}
	r.entries[s.ID()] = e
	r.logger.WithField("interview_id", s.ID()).Info("session created")
	return r.info(e), nil
}

// Get returns the current view of a session
func (r *Registry) Get(interviewID string) (Info, error) {
	e, err := r.lookup(interviewID)
	if err != nil {
		return Info{}, err
	}
	return r.info(e), nil
}

// List returns every tracked session ordered by id
func (r *Registry) List() []Info {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, r.info(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InterviewID < out[j].InterviewID })
	return out
}

// Start begins recording
func (r *Registry) Start(interviewID string) (Info, error) {
	e, err := r.acquire(interviewID)
	if err != nil {
		return Info{}, err
	}
	defer e.mu.Unlock()

	if err := e.session.Start(); err != nil {
		return Info{}, err
	}

	e.infoMu.Lock()
	e.state = e.session.State()
	e.startedAt = e.session.StartedAt()
	e.infoMu.Unlock()
	return r.info(e), nil
}

// StartQuestion opens a mark at the current offset and returns its question id
func (r *Registry) StartQuestion(interviewID string) (int, error) {
	e, err := r.acquire(interviewID)
	if err != nil {
		return 0, err
	}
	defer e.mu.Unlock()

	return e.session.MarkQuestionStart()
}

// EndQuestion closes the open mark of a question
func (r *Registry) EndQuestion(interviewID string, questionID int, note string) error {
	e, err := r.acquire(interviewID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	return e.session.MarkQuestionEnd(questionID, note)
}

// Stop ends the recording and cuts fragments in the background. Poll Get
// for progress and the summary.
func (r *Registry) Stop(interviewID string) (Info, error) {
	e, err := r.acquire(interviewID)
	if err != nil {
		return Info{}, err
	}

	if e.session.State() != session.StateRecording {
		e.mu.Unlock()
		return Info{}, session.ErrNotRecording
	}

	e.infoMu.Lock()
	e.state = StateStopping
	e.progress = &Progress{}
	e.infoMu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		// the lock taken by acquire is released here
		defer e.mu.Unlock()
		r.stop(e)
	}()

	return r.info(e), nil
}

func (r *Registry) stop(e *entry) {
	log := r.logger.WithField("interview_id", e.session.ID())

	summary, err := e.session.Stop(r.ctx, batch.WithProgress(func(done, total int) {
		e.infoMu.Lock()
		e.progress = &Progress{Done: done, Total: total}
		e.infoMu.Unlock()
	}))

	e.infoMu.Lock()
	defer e.infoMu.Unlock()
	e.state = e.session.State()
	e.summary = &summary
	if err != nil {
		e.err = err.Error()
		log.WithError(err).Error("session stop failed")
		return
	}
	log.Info(fmt.Sprintf("%d/%d fragments completed", summary.Succeeded, summary.Total))
}

// Marks returns the last saved marks snapshot of a session
func (r *Registry) Marks(interviewID string) (marks.Document, error) {
	e, err := r.lookup(interviewID)
	if err != nil {
		return marks.Document{}, err
	}
	doc, _, err := marks.ReadDocument(r.fs, e.session.MarksPath())
	return doc, err
}

// Remove forgets a session that is not recording. Files stay on disk.
func (r *Registry) Remove(interviewID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[interviewID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, interviewID)
	}

	e.infoMu.RLock()
	state := e.state
	e.infoMu.RUnlock()
	switch state {
	case session.StateRecording:
		return fmt.Errorf("%w: %s", ErrSessionActive, interviewID)
	case StateStopping:
		return fmt.Errorf("%w: %s", ErrSessionBusy, interviewID)
	}

	delete(r.entries, interviewID)
	return nil
}

// Shutdown stops every recording session and waits for pending cuts. When
// ctx ends first the cuts are interrupted.
func (r *Registry) Shutdown(ctx context.Context) error {
	for _, info := range r.List() {
		if info.State != session.StateRecording {
			continue
		}
		if _, err := r.Stop(info.InterviewID); err != nil && !errors.Is(err, session.ErrNotRecording) {
			r.logger.WithError(err).WithField("interview_id", info.InterviewID).Warn("failed to stop session")
		}
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}

func (r *Registry) lookup(interviewID string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[interviewID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, interviewID)
	}
	return e, nil
}

// acquire returns the entry locked, or ErrSessionBusy while a stop runs
func (r *Registry) acquire(interviewID string) (*entry, error) {
	e, err := r.lookup(interviewID)
	if err != nil {
		return nil, err
	}
	if !e.mu.TryLock() {
		e.infoMu.RLock()
		stopping := e.state == StateStopping
		e.infoMu.RUnlock()
		if stopping {
			return nil, fmt.Errorf("%w: %s", ErrSessionBusy, interviewID)
		}
		e.mu.Lock()
	}
	return e, nil
}

func (r *Registry) info(e *entry) Info {
	e.infoMu.RLock()
	defer e.infoMu.RUnlock()

	info := Info{
		InterviewID:  e.session.ID(),
		State:        e.state,
		VideoPath:    e.session.VideoPath(),
		MarksPath:    e.session.MarksPath(),
		FragmentsDir: e.session.FragmentsDir(),
		Summary:      e.summary,
		Error:        e.err,
	}
	if e.progress != nil {
		p := *e.progress
		info.Progress = &p
	}
	if !e.startedAt.IsZero() {
		started := e.startedAt
		info.StartedAt = &started
		switch {
		case e.summary != nil:
			info.Elapsed = e.summary.RecordingDuration
		default:
			info.Elapsed = r.clock().Sub(e.startedAt).Seconds()
		}
	}
	return info
}
