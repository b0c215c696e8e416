package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoSize(t *testing.T) {
	size, err := VideoSize("720p")
	require.NoError(t, err)
	assert.Equal(t, "1280x720", size)

	_, err = VideoSize("1080p")
	assert.True(t, errors.Is(err, ffmpeg.ErrUnsupportedSize))
}

func TestFFmpegDeviceOptions(t *testing.T) {
	ff := ffmpeg.New("ffmpeg", "ffprobe", time.Minute)

	tests := []struct {
		name        string
		cfg         Config
		format      string
		input       string
		audioFormat string
	}{
		{"darwin defaults", Config{GOOS: "darwin"}, "avfoundation", "0:0", ""},
		{"darwin devices", Config{GOOS: "darwin", VideoDevice: "1", AudioDevice: "2"}, "avfoundation", "1:2", ""},
		{"windows", Config{GOOS: "windows", VideoDevice: "USB Cam", AudioDevice: "Mic"}, "dshow", "video=USB Cam:audio=Mic", ""},
		{"linux", Config{GOOS: "linux"}, "v4l2", "/dev/video0", "alsa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFFmpegDevice(ff, tt.cfg, nil)
			opts, err := d.Options("/rec/out.mp4", "720p", "h264", "AAC")
			require.NoError(t, err)

			assert.Equal(t, tt.format, opts.Format)
			assert.Equal(t, tt.input, opts.Input)
			assert.Equal(t, tt.audioFormat, opts.AudioFormat)
			assert.Equal(t, "1280x720", opts.VideoSize)
			assert.Equal(t, 30, opts.FrameRate)
			assert.Equal(t, "libx264", opts.VideoCodec)
			assert.Equal(t, "aac", opts.AudioCodec)
			assert.Equal(t, "/rec/out.mp4", opts.Output)
		})
	}
}

func TestFFmpegDeviceOptionsErrors(t *testing.T) {
	ff := ffmpeg.New("ffmpeg", "ffprobe", time.Minute)

	_, err := NewFFmpegDevice(ff, Config{GOOS: "plan9"}, nil).Options("/x.mp4", "720p", "h264", "aac")
	assert.True(t, errors.Is(err, ffmpeg.ErrUnsupportedPlatform))

	_, err = NewFFmpegDevice(ff, Config{GOOS: "linux"}, nil).Options("/x.mp4", "4k", "h264", "aac")
	assert.True(t, errors.Is(err, ffmpeg.ErrUnsupportedSize))
}

func TestFFmpegDeviceRejectsMissingDirectory(t *testing.T) {
	d := NewFFmpegDevice(ffmpeg.New("ffmpeg", "ffprobe", time.Minute), Config{GOOS: "linux"}, nil)
	d.fs = afero.NewMemMapFs()

	err := d.StartRecording("/missing/dir/out.mp4", "720p", "h264", "aac")
	assert.True(t, errors.Is(err, ffmpeg.ErrOutputDirNotExisting))
}

func TestFFmpegDeviceStopWithoutStart(t *testing.T) {
	d := NewFFmpegDevice(ffmpeg.New("ffmpeg", "ffprobe", time.Minute), Config{}, nil)
	assert.True(t, errors.Is(d.StopRecording(), ffmpeg.ErrNoCaptureInProgress))
}

func TestNopDevice(t *testing.T) {
	d := &NopDevice{}

	require.NoError(t, d.StartRecording("/rec/a.mp4", "720p", "h264", "aac"))
	assert.True(t, d.Recording())
	assert.Equal(t, "/rec/a.mp4", d.LastPath)
	assert.True(t, errors.Is(d.StartRecording("/rec/b.mp4", "720p", "h264", "aac"), ffmpeg.ErrCaptureInProgress))

	require.NoError(t, d.StopRecording())
	assert.False(t, d.Recording())
	assert.True(t, errors.Is(d.StopRecording(), ffmpeg.ErrNoCaptureInProgress))
}
