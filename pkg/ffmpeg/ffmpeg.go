package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance. A zero timeout disables the per-call
// deadline.
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// FFmpegPath returns the configured ffmpeg binary
func (f *FFmpeg) FFmpegPath() string { return f.ffmpegPath }

// FFprobePath returns the configured ffprobe binary
func (f *FFmpeg) FFprobePath() string { return f.ffprobePath }

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// Version returns the first line of `ffmpeg -version`
func (f *FFmpeg) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, f.ffmpegPath, "-hide_banner", "-version")
	out, err := cmd.Output()
	if err != nil {
		return "", NewProcessingError("version", f.ffmpegPath, err, "")
	}
	if i := bytes.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return string(bytes.TrimSpace(out)), nil
}

// Cut extracts [Start, Start+Duration) from Input into Output, re-encoding
// both streams so the fragment begins on a clean frame.
func (f *FFmpeg) Cut(ctx context.Context, opts CutOptions) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, CutArgs(opts)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = ErrProcessingTimeout
		}
		return NewProcessingError("cut", opts.Input, err, stderr.String())
	}
	return nil
}

// CutArgs builds the ffmpeg argument list for a cut. The seek is placed
// before -i so ffmpeg jumps straight to the offset.
func CutArgs(opts CutOptions) []string {
	enc := opts.Encode
	if enc.VideoCodec == "" {
		enc.VideoCodec = DefaultEncodeOptions().VideoCodec
	}
	if enc.AudioCodec == "" {
		enc.AudioCodec = DefaultEncodeOptions().AudioCodec
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatSeconds(opts.Start),
		"-i", opts.Input,
		"-t", formatSeconds(opts.Duration),
		"-c:v", enc.VideoCodec,
	}
	if enc.Preset != "" {
		args = append(args, "-preset", enc.Preset)
	}
	if enc.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(enc.CRF))
	}
	args = append(args,
		"-c:a", enc.AudioCodec,
		"-y",
		opts.Output,
	)
	return args
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
