package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/killallgit/interviewcut/internal/doctor"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that ffmpeg, ffprobe and the storage directory are usable",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().Bool("json", false, "print results as JSON")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	checks := doctor.DefaultChecks(doctor.Env{
		FFmpeg:  newFFmpeg(appConfig),
		Fs:      afero.NewOsFs(),
		BaseDir: appConfig.Storage.BaseDir,
		Capture: captureConfig(appConfig),
	})
	report := doctor.Run(cmd.Context(), checks)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if err := printDoctor(out, report); err != nil {
		return err
	}
	return report.Err()
}

func printDoctor(out io.Writer, r doctor.Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, res := range r.Results {
		fmt.Fprintf(w, "[%s]\t%s\t%s\n", res.Status, res.Name, res.Detail)
		if res.Hint != "" {
			fmt.Fprintf(w, "\t\thint: %s\n", res.Hint)
		}
	}
	return w.Flush()
}
