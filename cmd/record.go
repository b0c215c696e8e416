package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/killallgit/interviewcut/internal/batch"
	"github.com/killallgit/interviewcut/internal/capture"
	"github.com/killallgit/interviewcut/internal/database"
	"github.com/killallgit/interviewcut/internal/services/history"
	"github.com/killallgit/interviewcut/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an interview and mark questions from the terminal",
	Long: `Record an interview from the default camera and microphone.

Commands read from standard input:
  q               start a question
  e <id> [note]   end question <id> with an optional note
  m               list the marks so far
  s               stop, cut the fragments and print the summary

End of input or Ctrl-C also stops the interview.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().String("id", "", "interview id (default YYYY-MM-DD_NNN)")
	recordCmd.Flags().String("base-dir", "", "storage directory (overrides config)")
	recordCmd.Flags().Bool("no-capture", false, "only mark questions, the video is recorded elsewhere")
	recordCmd.Flags().Bool("no-history", false, "do not store the interview in the history database")
}

func runRecord(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	cfg := *appConfig
	flags := cmd.Flags()
	if dir, _ := flags.GetString("base-dir"); dir != "" {
		cfg.Storage.BaseDir = dir
	}

	log := newLogger(cmd)
	fs := afero.NewOsFs()
	ff := newFFmpeg(&cfg)

	settings := sessionSettings{
		cfg:    &cfg,
		fs:     fs,
		cutter: newCutter(&cfg, ff, fs, log),
		logger: log,
		device: func() capture.Device { return capture.NewFFmpegDevice(ff, captureConfig(&cfg), log) },
	}
	if noCapture, _ := flags.GetBool("no-capture"); noCapture {
		settings.device = func() capture.Device { return &capture.NopDevice{} }
	}
	if noHistory, _ := flags.GetBool("no-history"); !noHistory {
		db, err := database.Open(cfg.Database, log)
		if err != nil {
			log.WithError(err).Warn("History database unavailable, continuing without it")
		} else {
			defer db.Close()
			settings.history = history.NewService(history.NewRepository(db.DB), log)
		}
	}

	id, _ := flags.GetString("id")
	if id == "" {
		next, err := settings.nextID()
		if err != nil {
			return err
		}
		id = next
	}

	sess, err := settings.newSession(id)
	if err != nil {
		return err
	}
	if err := sess.Start(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recording interview %s to %s\n", sess.ID(), sess.VideoPath())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive(ctx, cmd.InOrStdin(), out, sess, log)

	summary, err := sess.Stop(context.Background(), batch.WithProgress(func(done, total int) {
		fmt.Fprintf(out, "  cut %d/%d\n", done, total)
	}))
	if err != nil {
		return err
	}
	printSummary(out, summary)
	return nil
}

// interactive handles input lines until stop, end of input or ctx is done
func interactive(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session, log logrus.FieldLogger) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if handleLine(out, sess, line) {
				return
			}
		}
	}
}

// handleLine runs one command and reports whether recording should stop
func handleLine(out io.Writer, sess *session.Session, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "q", "start":
		qid, err := sess.MarkQuestionStart()
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(out, "Q%d started at %.1fs\n", qid, sess.Elapsed())
	case "e", "end":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: e <id> [note]")
			return false
		}
		qid, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(out, "error: invalid question id %q\n", fields[1])
			return false
		}
		note := strings.Join(fields[2:], " ")
		if err := sess.MarkQuestionEnd(qid, note); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(out, "Q%d ended at %.1fs\n", qid, sess.Elapsed())
	case "m", "marks":
		for _, m := range sess.Marks().Marks() {
			fmt.Fprintln(out, "  "+m.String())
		}
	case "s", "stop":
		return true
	default:
		fmt.Fprintf(out, "unknown command %q\n", fields[0])
	}
	return false
}

func printSummary(out io.Writer, s session.Summary) {
	fmt.Fprintf(out, "Interview %s stopped after %.1fs\n", s.InterviewID, s.RecordingDuration)
	if s.CaptureError != "" {
		fmt.Fprintf(out, "capture error: %s\n", s.CaptureError)
	}
	for _, line := range s.Log {
		fmt.Fprintln(out, "  "+line)
	}
	fmt.Fprintf(out, "Fragments: %s\n", batch.Result{Succeeded: s.Succeeded, Total: s.Total}.Summary())
	fmt.Fprintf(out, "Marks:     %s\n", s.MarksPath)
	fmt.Fprintf(out, "Report:    %s\n", s.ReportPath)
}
