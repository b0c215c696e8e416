package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// cliFs backs the file-only commands and is swapped in tests
var cliFs afero.Fs = afero.NewOsFs()

var marksCmd = &cobra.Command{
	Use:   "marks",
	Short: "Inspect and edit a marks file",
}

var marksShowCmd = &cobra.Command{
	Use:   "show <marks.json>",
	Short: "List the marks of an interview",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarksShow,
}

var marksAddCmd = &cobra.Command{
	Use:   "add <marks.json> <question-id> <start> [end]",
	Short: "Add a mark, open unless an end is given",
	Args:  cobra.RangeArgs(3, 4),
	RunE:  runMarksAdd,
}

var marksRemoveCmd = &cobra.Command{
	Use:   "remove <marks.json> <question-id>",
	Short: "Remove every mark of a question",
	Args:  cobra.ExactArgs(2),
	RunE:  runMarksRemove,
}

var marksCloseCmd = &cobra.Command{
	Use:   "close <marks.json> <question-id> <end>",
	Short: "Close an open mark",
	Args:  cobra.ExactArgs(3),
	RunE:  runMarksClose,
}

func init() {
	rootCmd.AddCommand(marksCmd)
	marksCmd.AddCommand(marksShowCmd, marksAddCmd, marksRemoveCmd, marksCloseCmd)

	marksShowCmd.Flags().Bool("json", false, "print the marks file document")
	marksAddCmd.Flags().String("note", "", "note for a closed mark")
	marksCloseCmd.Flags().String("note", "", "note stored with the mark")
}

func runMarksShow(cmd *cobra.Command, args []string) error {
	doc, parsed, err := marks.ReadDocument(cliFs, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	fmt.Fprintf(out, "Interview: %s\nVideo:     %s\n\n", doc.InterviewID, doc.VideoFile)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUESTION\tSTART\tEND\tDURATION\tNOTE")
	for _, m := range parsed {
		end, dur := "open", "-"
		if c, ok := m.Closed(); ok {
			end = strconv.FormatFloat(c.End, 'f', 1, 64)
			dur = strconv.FormatFloat(c.Duration(), 'f', 1, 64)
		}
		fmt.Fprintf(w, "%d\t%.1f\t%s\t%s\t%s\n", m.QuestionID(), m.Start(), end, dur, m.Note())
	}
	return w.Flush()
}

func runMarksAdd(cmd *cobra.Command, args []string) error {
	set, err := marks.Load(cliFs, args[0], "")
	if err != nil {
		return err
	}
	qid, err := parseQuestionID(args[1])
	if err != nil {
		return err
	}
	start, err := parseSeconds(args[2])
	if err != nil {
		return err
	}

	var m marks.Mark
	if len(args) == 4 {
		end, err := parseSeconds(args[3])
		if err != nil {
			return err
		}
		note, _ := cmd.Flags().GetString("note")
		m, err = marks.NewClosedMark(set.InterviewID(), qid, start, end, note)
		if err != nil {
			return err
		}
	} else {
		m, err = marks.NewOpenMark(set.InterviewID(), qid, start)
		if err != nil {
			return err
		}
	}

	if err := set.Add(m); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", m)
	return nil
}

func runMarksRemove(cmd *cobra.Command, args []string) error {
	set, err := marks.Load(cliFs, args[0], "")
	if err != nil {
		return err
	}
	qid, err := parseQuestionID(args[1])
	if err != nil {
		return err
	}
	if _, ok := set.FindByQuestion(qid); !ok {
		return fmt.Errorf("%w: question %d", marks.ErrNotFound, qid)
	}
	if err := set.Remove(qid); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed question %d\n", qid)
	return nil
}

func runMarksClose(cmd *cobra.Command, args []string) error {
	set, err := marks.Load(cliFs, args[0], "")
	if err != nil {
		return err
	}
	qid, err := parseQuestionID(args[1])
	if err != nil {
		return err
	}
	end, err := parseSeconds(args[2])
	if err != nil {
		return err
	}
	note, _ := cmd.Flags().GetString("note")

	if err := set.Close(qid, end, note); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Closed question %d at %.1fs\n", qid, end)
	return nil
}

func parseQuestionID(s string) (int, error) {
	qid, err := strconv.Atoi(s)
	if err != nil || qid <= 0 {
		return 0, fmt.Errorf("%w: question id must be a positive integer, got %q", marks.ErrValidation, s)
	}
	return qid, nil
}

func parseSeconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number of seconds", marks.ErrValidation, s)
	}
	return v, nil
}
