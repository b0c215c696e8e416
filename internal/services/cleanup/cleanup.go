package cleanup

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// tempPrefixes are left behind when a write is interrupted before its rename
var tempPrefixes = []string{".marks_", ".doctor-"}

// JobCleaner removes finished jobs older than a retention period
type JobCleaner interface {
	CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error)
}

// Config controls what the service removes
type Config struct {
	Dirs         []string      // scanned for abandoned temporary files
	MaxAge       time.Duration // temp files younger than this are kept
	Interval     time.Duration
	Jobs         JobCleaner
	JobRetention time.Duration
}

// Service periodically removes abandoned temporary files and old jobs
type Service struct {
	fs     afero.Fs
	cfg    Config
	clock  func() time.Time
	logger logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a new cleanup service
func NewService(fs afero.Fs, cfg Config, logger logrus.FieldLogger) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = time.Hour
	}
	return &Service{
		fs:     fs,
		cfg:    cfg,
		clock:  time.Now,
		logger: logging.OrDiscard(logger).WithField("component", "cleanup"),
	}
}

// Start runs one pass immediately and then one per interval until Stop
// or ctx is done
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			s.RunOnce(ctx)
			select {
			case <-ctx.Done():
				s.logger.Debug("Cleanup service stopped")
				return
			case <-ticker.C:
			}
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"interval": s.cfg.Interval,
		"max_age":  s.cfg.MaxAge,
	}).Info("Cleanup service started")
}

// Stop stops the service and waits for a running pass
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Result counts what a pass removed
type Result struct {
	TempFiles int
	Jobs      int64
}

// RunOnce performs a single cleanup pass
func (s *Service) RunOnce(ctx context.Context) Result {
	var res Result
	for _, dir := range s.cfg.Dirs {
		res.TempFiles += s.removeTempFiles(dir)
	}

	if s.cfg.Jobs != nil && s.cfg.JobRetention > 0 {
		n, err := s.cfg.Jobs.CleanupOldJobs(ctx, s.cfg.JobRetention)
		if err != nil {
			s.logger.WithError(err).Warn("Job cleanup failed")
		}
		res.Jobs = n
	}

	if res.TempFiles > 0 || res.Jobs > 0 {
		s.logger.WithFields(logrus.Fields{
			"temp_files": res.TempFiles,
			"jobs":       res.Jobs,
		}).Info("Cleanup pass removed stale data")
	}
	return res
}

func (s *Service) removeTempFiles(dir string) int {
	if exists, _ := afero.DirExists(s.fs, dir); !exists {
		return 0
	}

	removed := 0
	cutoff := s.clock().Add(-s.cfg.MaxAge)
	err := afero.Walk(s.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !isTempFile(info.Name()) {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.WithError(err).WithField("path", path).Warn("Failed to remove temp file")
			return nil
		}
		s.logger.WithField("path", path).Debug("Removed abandoned temp file")
		removed++
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("dir", dir).Error("Cleanup walk error")
	}
	return removed
}

func isTempFile(name string) bool {
	for _, prefix := range tempPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp")
}
