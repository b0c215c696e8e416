package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/interviewcut/internal/marks"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format of an exported report
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts json, md/markdown and html
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", s)
	}
}

// Summary aggregates the closed questions of an interview
type Summary struct {
	InterviewID       string    `json:"interview_id"`
	TotalQuestions    int       `json:"total_questions"`
	QuestionsWithNote int       `json:"questions_with_note"`
	TotalDuration     float64   `json:"total_duration"`
	CreatedAt         time.Time `json:"created_at"`
}

// Question is one closed mark in the report
type Question struct {
	QuestionID int     `json:"question_id"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Note       string  `json:"note"`
	Duration   float64 `json:"duration"`
}

// Report is the interview report written after a session stops
type Report struct {
	Summary   Summary    `json:"summary"`
	Questions []Question `json:"questions"`
}

// Build creates a report from the closed marks of a set
func Build(set *marks.MarkSet, createdAt time.Time) Report {
	return FromClosed(set.InterviewID(), set.ClosedMarks(), createdAt)
}

// FromClosed creates a report from closed marks
func FromClosed(interviewID string, closed []marks.ClosedMark, createdAt time.Time) Report {
	r := Report{
		Summary: Summary{
			InterviewID: interviewID,
			CreatedAt:   createdAt,
		},
		Questions: make([]Question, 0, len(closed)),
	}

	for _, c := range closed {
		r.Questions = append(r.Questions, Question{
			QuestionID: c.QuestionID,
			Start:      c.Start,
			End:        c.End,
			Note:       c.Note,
			Duration:   c.Duration(),
		})
		r.Summary.TotalDuration += c.Duration()
		if c.Note != "" {
			r.Summary.QuestionsWithNote++
		}
	}
	r.Summary.TotalQuestions = len(r.Questions)

	return r
}

// FileName returns the conventional report file name
func FileName(interviewID string, format Format) string {
	ext := "json"
	switch format {
	case FormatMarkdown:
		ext = "md"
	case FormatHTML:
		ext = "html"
	}
	return fmt.Sprintf("report_%s.%s", interviewID, ext)
}

// JSON renders the report as indented JSON
func (r Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Markdown renders the report as a Markdown document
func (r Report) Markdown() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Interview %s\n\n", r.Summary.InterviewID)
	fmt.Fprintf(&b, "- Created: %s\n", r.Summary.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Questions: %d\n", r.Summary.TotalQuestions)
	fmt.Fprintf(&b, "- Questions with notes: %d\n", r.Summary.QuestionsWithNote)
	fmt.Fprintf(&b, "- Total duration: %s\n\n", formatDuration(r.Summary.TotalDuration))

	if len(r.Questions) == 0 {
		b.WriteString("_No questions were recorded._\n")
		return b.Bytes()
	}

	b.WriteString("| Question | Start | End | Duration | Note |\n")
	b.WriteString("|---:|---:|---:|---:|---|\n")
	for _, q := range r.Questions {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			q.QuestionID,
			formatDuration(q.Start),
			formatDuration(q.End),
			formatDuration(q.Duration),
			escapeCell(q.Note),
		)
	}
	return b.Bytes()
}

// HTML renders the Markdown form through goldmark
func (r Report) HTML() ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert(r.Markdown(), &body); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Interview %s</title>\n", r.Summary.InterviewID)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Render returns the report in the requested format
func (r Report) Render(format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return r.Markdown(), nil
	case FormatHTML:
		return r.HTML()
	default:
		return r.JSON()
	}
}

// Write renders the report and writes it to path, creating parents
func (r Report) Write(fs afero.Fs, path string, format Format) error {
	data, err := r.Render(format)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Read loads a JSON report
func Read(fs afero.Fs, path string) (Report, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Report{}, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("decoding report: %w", err)
	}
	return r, nil
}

// formatDuration prints seconds as m:ss.mmm
func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
	m := int(d / time.Minute)
	s := float64(d%time.Minute) / float64(time.Second)
	return fmt.Sprintf("%d:%06.3f", m, s)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
