package cmd

import (
	"os"
	"time"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/capture"
	"github.com/killallgit/interviewcut/internal/fragments"
	"github.com/killallgit/interviewcut/internal/questions"
	"github.com/killallgit/interviewcut/internal/services/sessions"
	"github.com/killallgit/interviewcut/internal/session"
	"github.com/killallgit/interviewcut/pkg/config"
	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func newFFmpeg(cfg *config.Config) *ffmpeg.FFmpeg {
	return ffmpeg.New(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFprobePath, cfg.FFmpeg.Timeout)
}

func newCutter(cfg *config.Config, tool fragments.Tool, fs afero.Fs, log logrus.FieldLogger) *fragments.Cutter {
	return fragments.NewCutter(tool,
		fragments.WithFs(fs),
		fragments.WithEncodeOptions(ffmpeg.EncodeOptions{
			VideoCodec: cfg.FFmpeg.VideoCodec,
			AudioCodec: cfg.FFmpeg.AudioCodec,
			Preset:     cfg.FFmpeg.Preset,
			CRF:        cfg.FFmpeg.CRF,
		}),
		fragments.WithLogger(log),
	)
}

func captureConfig(cfg *config.Config) capture.Config {
	return capture.Config{
		FrameRate:   cfg.Capture.FrameRate,
		VideoDevice: cfg.Capture.VideoDevice,
		AudioDevice: cfg.Capture.AudioDevice,
		StopTimeout: cfg.Capture.StopTimeout,
	}
}

// sessionSettings is what every session built from the settings file shares
type sessionSettings struct {
	cfg     *config.Config
	fs      afero.Fs
	device  func() capture.Device
	cutter  batch.Cutter
	history session.HistoryRecorder
	logger  logrus.FieldLogger
}

func (s sessionSettings) newSession(interviewID string) (*session.Session, error) {
	return session.New(session.Config{
		BaseDir:     s.cfg.Storage.BaseDir,
		InterviewID: interviewID,
		FragmentExt: s.cfg.Storage.FragmentExt,
		Capture: session.CaptureSettings{
			Resolution: s.cfg.Capture.Resolution,
			Codec:      s.cfg.Capture.Codec,
			AudioCodec: s.cfg.Capture.AudioCodec,
		},
		Device:  s.device(),
		Cutter:  s.cutter,
		Fs:      s.fs,
		Logger:  s.logger,
		History: s.history,
	})
}

func (s sessionSettings) nextID() (string, error) {
	return session.NextInterviewID(s.fs, s.cfg.Storage.BaseDir, time.Now())
}

func (s sessionSettings) registry() *sessions.Registry {
	return sessions.NewRegistry(s.newSession, s.nextID,
		sessions.WithFs(s.fs),
		sessions.WithLogger(s.logger),
	)
}

// loadCatalog reads the configured catalog file, falling back to the
// built-in questions when none is configured or the file is missing
func loadCatalog(fs afero.Fs, path string) (*questions.Catalog, error) {
	if path == "" {
		return questions.Default(), nil
	}
	if _, err := fs.Stat(path); os.IsNotExist(err) {
		return questions.Default(), nil
	}
	return questions.Load(fs, path)
}
