package cmd

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/killallgit/interviewcut/pkg/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with every flag back at its default, so
// calls sharing the global command tree do not leak flag values
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	resetFlags(cmd)
	defer resetFlags(cmd)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(stdin)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// useConfig installs a settings struct rooted at a temp directory
func useConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: ":memory:"},
		Storage:  config.StorageConfig{BaseDir: t.TempDir(), FragmentExt: "mp4"},
		FFmpeg: config.FFmpegConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
			Timeout:     time.Minute,
			VideoCodec:  "libx264",
			AudioCodec:  "aac",
		},
		Capture: config.CaptureConfig{Resolution: "720p", Codec: "H.264", AudioCodec: "AAC", FrameRate: 30},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}

	prev := appConfig
	appConfig = cfg
	t.Cleanup(func() { appConfig = prev })
	return cfg
}

// useMemFs swaps the filesystem of the file-only commands
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	prev := cliFs
	cliFs = fs
	t.Cleanup(func() { cliFs = prev })
	return fs
}
