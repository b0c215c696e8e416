// Package doctor checks that the external tools and directories interviewcut
// relies on are usable before a session is started.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/killallgit/interviewcut/internal/capture"
	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/spf13/afero"
)

// ErrMissingDependencies is returned by Report.Err when a required check failed
var ErrMissingDependencies = errors.New("missing required dependencies")

// Status of a single check
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is one named probe. Optional checks only warn when they fail.
type Check struct {
	Name     string
	Hint     string
	Optional bool
	Run      func(ctx context.Context) (string, error)
}

// Result is the outcome of a check
type Result struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

// Report collects check results in order
type Report struct {
	Results []Result `json:"results"`
}

// Failed reports whether a required check failed
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFail {
			return true
		}
	}
	return false
}

// Err lists the failed checks with their hints, nil when none failed
func (r Report) Err() error {
	var lines []string
	for _, res := range r.Results {
		if res.Status != StatusFail {
			continue
		}
		line := fmt.Sprintf("%s: %s", res.Name, res.Detail)
		if res.Hint != "" {
			line += " (" + res.Hint + ")"
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n  %s", ErrMissingDependencies, strings.Join(lines, "\n  "))
}

// Env describes what the default checks look at
type Env struct {
	FFmpeg  *ffmpeg.FFmpeg
	Fs      afero.Fs
	BaseDir string
	Capture capture.Config

	// LookPath and Version default to exec.LookPath and FFmpeg.Version
	LookPath func(file string) (string, error)
	Version  func(ctx context.Context) (string, error)
}

// DefaultChecks returns the checks run by the doctor command
func DefaultChecks(env Env) []Check {
	lookPath := env.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	version := env.Version
	if version == nil && env.FFmpeg != nil {
		version = env.FFmpeg.Version
	}
	fs := env.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	ffmpegPath, ffprobePath := "ffmpeg", "ffprobe"
	if env.FFmpeg != nil {
		ffmpegPath, ffprobePath = env.FFmpeg.FFmpegPath(), env.FFmpeg.FFprobePath()
	}

	return []Check{
		{
			Name: "ffmpeg",
			Hint: "install ffmpeg or set ffmpeg.ffmpeg_path",
			Run: func(context.Context) (string, error) {
				p, err := lookPath(ffmpegPath)
				if err != nil {
					return "", fmt.Errorf("%w: %s", ffmpeg.ErrFFmpegNotFound, ffmpegPath)
				}
				return p, nil
			},
		},
		{
			Name: "ffprobe",
			Hint: "ffprobe ships with ffmpeg; set ffmpeg.ffprobe_path if it lives elsewhere",
			Run: func(context.Context) (string, error) {
				p, err := lookPath(ffprobePath)
				if err != nil {
					return "", fmt.Errorf("%w: %s", ffmpeg.ErrFFprobeNotFound, ffprobePath)
				}
				return p, nil
			},
		},
		{
			Name: "ffmpeg version",
			Hint: "the ffmpeg binary must run",
			Run: func(ctx context.Context) (string, error) {
				if version == nil {
					return "", errors.New("no ffmpeg configured")
				}
				return version(ctx)
			},
		},
		{
			Name: "storage",
			Hint: "storage.base_dir must be writable",
			Run: func(context.Context) (string, error) {
				return env.BaseDir, checkWritable(fs, env.BaseDir)
			},
		},
		{
			Name:     "capture",
			Hint:     "live recording needs macOS, Windows or Linux; cutting still works",
			Optional: true,
			Run: func(context.Context) (string, error) {
				dev := capture.NewFFmpegDevice(env.FFmpeg, env.Capture, nil)
				opts, err := dev.Options(filepath.Join(env.BaseDir, "probe.mp4"), "720p", "H.264", "AAC")
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s %s", opts.Format, opts.Input), nil
			},
		},
	}
}

// Run executes every check in order
func Run(ctx context.Context, checks []Check) Report {
	report := Report{Results: make([]Result, 0, len(checks))}
	for _, c := range checks {
		res := Result{Name: c.Name, Status: StatusOK}
		detail, err := c.Run(ctx)
		if err != nil {
			res.Detail = err.Error()
			res.Hint = c.Hint
			res.Status = StatusFail
			if c.Optional {
				res.Status = StatusWarn
			}
		} else {
			res.Detail = detail
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func checkWritable(fs afero.Fs, dir string) error {
	if dir == "" {
		return errors.New("no base directory configured")
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := afero.TempFile(fs, dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return fs.Remove(name)
}
