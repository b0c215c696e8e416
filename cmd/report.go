package cmd

import (
	"fmt"
	"time"

	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <marks.json>",
	Short: "Export the interview report of a marks file",
	Long: `Build the interview report from the closed marks of a marks file.

Example:
  interviewcut report marks_2024-05-01_001.json --format md
  interviewcut report marks_2024-05-01_001.json --format html --out report.html`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("format", "f", "json", "json, md or html")
	reportCmd.Flags().StringP("out", "o", "", "write to a file instead of standard output")
}

func runReport(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	formatFlag, _ := flags.GetString("format")
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	set, err := marks.Load(cliFs, args[0], "")
	if err != nil {
		return err
	}
	r := report.Build(set, time.Now().UTC())

	if path, _ := flags.GetString("out"); path != "" {
		if err := r.Write(cliFs, path, format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := r.Render(format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
