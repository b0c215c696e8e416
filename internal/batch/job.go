package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/killallgit/interviewcut/internal/fragments"
	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/sirupsen/logrus"
)

// Status of a single mark within a batch run
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Item is the outcome for one mark
type Item struct {
	QuestionID int     `json:"question_id"`
	Status     Status  `json:"status"`
	OutputPath string  `json:"output_path,omitempty"`
	Start      float64 `json:"start"`
	End        float64 `json:"end,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Result summarizes a batch run. Skipped marks are not counted in Total.
type Result struct {
	Succeeded int      `json:"succeeded"`
	Total     int      `json:"total"`
	Log       []string `json:"log"`
	Items     []Item   `json:"items"`
}

// Summary returns the "succeeded/total completed" line
func (r Result) Summary() string {
	return fmt.Sprintf("%d/%d completed", r.Succeeded, r.Total)
}

// Failed returns the number of attempted marks that did not produce a file
func (r Result) Failed() int {
	return r.Total - r.Succeeded
}

// ProgressFunc is called after each mark has been handled
type ProgressFunc func(done, total int)

// Cutter is the part of fragments.Cutter used by a Job
type Cutter interface {
	Cut(ctx context.Context, f fragments.Fragment, source string) (fragments.Generated, error)
}

// Job cuts every closed mark of a set into its own fragment
type Job struct {
	cutter   Cutter
	ext      string
	logger   logrus.FieldLogger
	progress ProgressFunc
}

// Option configures a Job
type Option func(*Job)

// WithLogger sets where log lines are also emitted
func WithLogger(logger logrus.FieldLogger) Option {
	return func(j *Job) { j.logger = logging.OrDiscard(logger) }
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(j *Job) { j.progress = fn }
}

// WithExtension sets the fragment container extension
func WithExtension(ext string) Option {
	return func(j *Job) { j.ext = ext }
}

// NewJob creates a batch job
func NewJob(cutter Cutter, opts ...Option) *Job {
	j := &Job{
		cutter: cutter,
		ext:    fragments.DefaultExt,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run processes the set's marks in insertion order. A failing mark never
// stops the run; cancellation of ctx does, after the current mark.
func (j *Job) Run(ctx context.Context, set *marks.MarkSet, source, outputDir string) Result {
	all := set.Marks()
	res := Result{
		Log:   make([]string, 0, len(all)+1),
		Items: make([]Item, 0, len(all)),
	}

	for i, m := range all {
		if ctx.Err() != nil {
			line := fmt.Sprintf("batch cancelled: %v", ctx.Err())
			res.Log = append(res.Log, line)
			j.logger.Warn(line)
			break
		}

		j.runOne(ctx, m, source, outputDir, &res)

		if j.progress != nil {
			j.progress(i+1, len(all))
		}
	}

	summary := res.Summary()
	res.Log = append(res.Log, summary)
	j.logger.WithFields(logrus.Fields{
		"succeeded": res.Succeeded,
		"total":     res.Total,
	}).Info(summary)

	return res
}

func (j *Job) runOne(ctx context.Context, m marks.Mark, source, outputDir string, res *Result) {
	qid := m.QuestionID()

	c, ok := m.Closed()
	if !ok || c.End <= c.Start {
		reason := "mark has no end"
		if ok {
			reason = fmt.Sprintf("end %.3f is not after start %.3f", c.End, c.Start)
		}
		line := fmt.Sprintf("invalid mark (question %d): %s", qid, reason)
		res.Log = append(res.Log, line)
		res.Items = append(res.Items, Item{QuestionID: qid, Status: StatusSkipped, Start: m.Start(), Error: reason})
		j.logger.Warn(line)
		return
	}

	res.Total++
	item := Item{QuestionID: qid, Start: c.Start, End: c.End}

	f := fragments.NewFragmentFromClosed(c, outputDir, j.ext)
	gen, err := j.cutter.Cut(ctx, f, source)
	if err != nil {
		line := fmt.Sprintf("error generating fragment (question %d): %v", qid, err)
		res.Log = append(res.Log, line)
		item.Status = StatusFailed
		item.Error = err.Error()
		res.Items = append(res.Items, item)
		j.logger.WithError(err).WithField("question_id", qid).Error("error generating fragment")
		return
	}

	res.Succeeded++
	line := fmt.Sprintf("fragment generated: %s", filepath.Base(gen.OutputPath))
	res.Log = append(res.Log, line)
	item.Status = StatusSucceeded
	item.OutputPath = gen.OutputPath
	res.Items = append(res.Items, item)
	j.logger.WithField("question_id", qid).Info(line)
}
