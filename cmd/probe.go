package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/killallgit/interviewcut/pkg/ffmpeg"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <video>",
	Short: "Show ffprobe metadata of a recording or fragment",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().Bool("json", false, "print metadata as JSON")
}

func runProbe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	meta, err := newFFmpeg(appConfig).GetMetadata(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}
	return printMetadata(cmd.OutOrStdout(), args[0], meta)
}

func printMetadata(out io.Writer, path string, m *ffmpeg.VideoMetadata) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "File:\t%s\n", path)
	fmt.Fprintf(w, "Format:\t%s\n", m.Format)
	fmt.Fprintf(w, "Duration:\t%.2fs\n", m.Duration)
	fmt.Fprintf(w, "Size:\t%d bytes\n", m.Size)
	fmt.Fprintf(w, "Bitrate:\t%d b/s\n", m.Bitrate)
	if m.VideoCodec != "" {
		fmt.Fprintf(w, "Video:\t%s %dx%d @ %.2f fps\n", m.VideoCodec, m.Width, m.Height, m.FrameRate)
	}
	if m.AudioCodec != "" {
		fmt.Fprintf(w, "Audio:\t%s %d Hz, %d ch\n", m.AudioCodec, m.SampleRate, m.Channels)
	}
	return w.Flush()
}
