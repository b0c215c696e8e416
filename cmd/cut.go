package cmd

import (
	"fmt"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/database"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/killallgit/interviewcut/internal/services/history"
	"github.com/killallgit/interviewcut/internal/session"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var cutCmd = &cobra.Command{
	Use:   "cut <marks.json>",
	Short: "Cut one fragment per closed question of a marks file",
	Long: `Cut the fragments of an already recorded interview.

Every closed mark becomes its own file; open marks are skipped. Fragments
are cut one after another and a failed cut does not stop the others.

Example:
  interviewcut cut data/marks/marks_2024-05-01_001.json
  interviewcut cut marks.json --source recording.mp4 --out clips`,
	Args: cobra.ExactArgs(1),
	RunE: runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().String("source", "", "source video (default: video_file of the marks file)")
	cutCmd.Flags().String("out", "", "output directory (default: <base_dir>/fragments/<interview_id>)")
	cutCmd.Flags().String("ext", "", "fragment extension (overrides config)")
	cutCmd.Flags().Bool("record-history", false, "store the outcome in the history database")
}

func runCut(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	cfg := appConfig
	log := newLogger(cmd)
	fs := afero.NewOsFs()
	flags := cmd.Flags()

	set, err := marks.Load(fs, args[0], "")
	if err != nil {
		return err
	}

	source, _ := flags.GetString("source")
	if source == "" {
		source = set.VideoPath()
	}
	outDir, _ := flags.GetString("out")
	if outDir == "" {
		outDir = session.FragmentsPath(cfg.Storage.BaseDir, set.InterviewID())
	}
	ext, _ := flags.GetString("ext")
	if ext == "" {
		ext = cfg.Storage.FragmentExt
	}

	out := cmd.OutOrStdout()
	job := batch.NewJob(newCutter(cfg, newFFmpeg(cfg), fs, log),
		batch.WithLogger(log),
		batch.WithExtension(ext),
		batch.WithProgress(func(done, total int) {
			fmt.Fprintf(out, "  cut %d/%d\n", done, total)
		}),
	)
	res := job.Run(cmd.Context(), set, source, outDir)

	for _, line := range res.Log {
		fmt.Fprintln(out, "  "+line)
	}
	fmt.Fprintln(out, res.Summary())

	if record, _ := flags.GetBool("record-history"); record {
		db, err := database.Open(cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := history.NewService(history.NewRepository(db.DB), log).RecordBatch(cmd.Context(), set.InterviewID(), res); err != nil {
			return err
		}
	}

	if res.Failed() > 0 {
		return fmt.Errorf("%d of %d fragments failed", res.Failed(), res.Total)
	}
	return nil
}
