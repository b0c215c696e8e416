package capture

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Device records camera and microphone input to a file
type Device interface {
	StartRecording(path, resolution, codec, audioCodec string) error
	StopRecording() error
}

var resolutions = map[string]string{
	"720p": "1280x720",
}

// VideoSize maps a named resolution to WIDTHxHEIGHT
func VideoSize(resolution string) (string, error) {
	size, ok := resolutions[resolution]
	if !ok {
		return "", fmt.Errorf("%w: %s", ffmpeg.ErrUnsupportedSize, resolution)
	}
	return size, nil
}

// Config selects the capture inputs
type Config struct {
	FrameRate   int
	VideoDevice string // empty picks the platform default
	AudioDevice string
	StopTimeout time.Duration
	GOOS        string // empty uses runtime.GOOS
}

// FFmpegDevice captures through an ffmpeg child process
type FFmpegDevice struct {
	ff     *ffmpeg.FFmpeg
	cfg    Config
	fs     afero.Fs
	logger logrus.FieldLogger

	mu  sync.Mutex
	rec *ffmpeg.Recording
}

// NewFFmpegDevice creates a capture device
func NewFFmpegDevice(ff *ffmpeg.FFmpeg, cfg Config, logger logrus.FieldLogger) *FFmpegDevice {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = 5 * time.Second
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if cfg.GOOS == "" {
		cfg.GOOS = runtime.GOOS
	}
	return &FFmpegDevice{
		ff:     ff,
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		logger: logging.OrDiscard(logger),
	}
}

// Options builds the ffmpeg capture options for the configured platform
func (d *FFmpegDevice) Options(path, resolution, codec, audioCodec string) (ffmpeg.CaptureOptions, error) {
	size, err := VideoSize(resolution)
	if err != nil {
		return ffmpeg.CaptureOptions{}, err
	}

	opts := ffmpeg.CaptureOptions{
		VideoSize:  size,
		FrameRate:  d.cfg.FrameRate,
		VideoCodec: videoEncoder(codec),
		AudioCodec: audioEncoder(audioCodec),
		Output:     path,
	}

	video, audio := d.cfg.VideoDevice, d.cfg.AudioDevice
	switch d.cfg.GOOS {
	case "darwin":
		opts.Format = "avfoundation"
		opts.Input = withDefault(video, "0") + ":" + withDefault(audio, "0")
	case "windows":
		opts.Format = "dshow"
		opts.Input = "video=" + withDefault(video, "Integrated Camera")
		if audio != "" {
			opts.Input += ":audio=" + audio
		}
	case "linux":
		opts.Format = "v4l2"
		opts.Input = withDefault(video, "/dev/video0")
		opts.AudioFormat = "alsa"
		opts.AudioInput = withDefault(audio, "default")
	default:
		return ffmpeg.CaptureOptions{}, fmt.Errorf("%w: %s", ffmpeg.ErrUnsupportedPlatform, d.cfg.GOOS)
	}
	return opts, nil
}

// StartRecording launches the capture process
func (d *FFmpegDevice) StartRecording(path, resolution, codec, audioCodec string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rec != nil {
		return ffmpeg.ErrCaptureInProgress
	}

	dir := filepath.Dir(path)
	if ok, _ := afero.DirExists(d.fs, dir); !ok {
		return fmt.Errorf("%w: %s", ffmpeg.ErrOutputDirNotExisting, dir)
	}

	opts, err := d.Options(path, resolution, codec, audioCodec)
	if err != nil {
		return err
	}

	rec, err := d.ff.StartCapture(opts)
	if err != nil {
		return err
	}
	d.rec = rec

	d.logger.WithFields(logrus.Fields{
		"output": path,
		"format": opts.Format,
		"input":  opts.Input,
		"size":   opts.VideoSize,
	}).Info("Recording started")
	return nil
}

// StopRecording asks ffmpeg to finish the file, killing it after the stop
// timeout. The device is idle afterwards even when an error is returned.
func (d *FFmpegDevice) StopRecording() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rec == nil {
		return ffmpeg.ErrNoCaptureInProgress
	}
	rec := d.rec
	d.rec = nil

	if err := rec.Stop(d.cfg.StopTimeout); err != nil {
		d.logger.WithError(err).Warn("Recording stopped forcefully")
		return err
	}
	d.logger.WithField("output", rec.Output()).Info("Recording saved")
	return nil
}

// NopDevice records nothing. It is used in tests and for sessions built
// around a video recorded elsewhere.
type NopDevice struct {
	mu        sync.Mutex
	recording bool
	StartErr  error
	StopErr   error
	LastPath  string
}

// StartRecording implements Device
func (n *NopDevice) StartRecording(path, resolution, codec, audioCodec string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.StartErr != nil {
		return n.StartErr
	}
	if n.recording {
		return ffmpeg.ErrCaptureInProgress
	}
	n.recording = true
	n.LastPath = path
	return nil
}

// StopRecording implements Device
func (n *NopDevice) StopRecording() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.recording {
		return ffmpeg.ErrNoCaptureInProgress
	}
	n.recording = false
	return n.StopErr
}

// Recording reports whether StartRecording was called without a stop
func (n *NopDevice) Recording() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.recording
}

func videoEncoder(codec string) string {
	switch codec {
	case "", "h264", "H264", "H.264":
		return "libx264"
	default:
		return codec
	}
}

func audioEncoder(codec string) string {
	switch codec {
	case "", "AAC", "aac":
		return "aac"
	default:
		return codec
	}
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
