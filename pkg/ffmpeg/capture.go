package ffmpeg

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// Recording is a running ffmpeg capture process
type Recording struct {
	cmd    *exec.Cmd
	output string
	stderr bytes.Buffer
	done   chan error

	stopOnce sync.Once
	stopErr  error
}

// Output returns the file being written
func (r *Recording) Output() string { return r.output }

// CaptureArgs builds the ffmpeg argument list for a device capture
func CaptureArgs(opts CaptureOptions) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-f", opts.Format}
	if opts.FrameRate > 0 {
		args = append(args, "-framerate", strconv.Itoa(opts.FrameRate))
	}
	if opts.VideoSize != "" {
		args = append(args, "-video_size", opts.VideoSize)
	}
	args = append(args, "-i", opts.Input)
	if opts.AudioFormat != "" {
		args = append(args, "-f", opts.AudioFormat, "-i", opts.AudioInput)
	}
	args = append(args,
		"-c:v", opts.VideoCodec,
		"-preset", "ultrafast",
		"-c:a", opts.AudioCodec,
		"-pix_fmt", "yuv420p",
		"-y",
		opts.Output,
	)
	return args
}

// StartCapture launches ffmpeg recording from local devices. The process keeps
// running until Stop is called on the returned Recording.
func (f *FFmpeg) StartCapture(opts CaptureOptions) (*Recording, error) {
	rec := &Recording{output: opts.Output, done: make(chan error, 1)}

	rec.cmd = exec.Command(f.ffmpegPath, CaptureArgs(opts)...)
	rec.cmd.Stderr = &rec.stderr

	if err := rec.cmd.Start(); err != nil {
		return nil, NewProcessingError("capture_start", opts.Output, err, "")
	}

	go func() {
		rec.done <- rec.cmd.Wait()
	}()

	return rec, nil
}

// Stop interrupts the capture so ffmpeg can finalize the container, then
// kills it if it has not exited within grace.
func (r *Recording) Stop(grace time.Duration) error {
	r.stopOnce.Do(func() {
		r.stopErr = r.stop(grace)
	})
	return r.stopErr
}

func (r *Recording) stop(grace time.Duration) error {
	if err := r.cmd.Process.Signal(os.Interrupt); err != nil {
		// Interrupt is unavailable on windows; fall through to kill.
		_ = r.cmd.Process.Kill()
		<-r.done
		return nil
	}

	select {
	case err := <-r.done:
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return NewProcessingError("capture_stop", r.output, err, r.stderr.String())
		}
		return nil
	case <-time.After(grace):
		_ = r.cmd.Process.Kill()
		<-r.done
		return NewProcessingError("capture_stop", r.output,
			fmt.Errorf("ffmpeg did not exit within %s and was killed", grace), r.stderr.String())
	}
}
