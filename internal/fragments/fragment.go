package fragments

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/killallgit/interviewcut/internal/marks"
)

// DefaultExt is the container used when none is configured
const DefaultExt = "mp4"

// Fragment is a pending cut for one closed mark. Copies of a Fragment share
// their generated state, so a fragment can be cut at most once no matter how
// it is passed around.
type Fragment struct {
	mark       marks.ClosedMark
	outputPath string
	state      *fragmentState
}

type fragmentState struct {
	generated atomic.Bool
}

// Generated is the result of a successful cut
type Generated struct {
	Mark       marks.ClosedMark
	OutputPath string
	Duration   float64
}

// FileName returns the deterministic fragment file name
func FileName(interviewID string, questionID int, ext string) string {
	if ext == "" {
		ext = DefaultExt
	}
	return fmt.Sprintf("fragment_%s_%03d.%s", interviewID, questionID, strings.TrimPrefix(ext, "."))
}

// NewFragment prepares a fragment for a closed mark
func NewFragment(m marks.Mark, outputDir, ext string) (Fragment, error) {
	c, ok := m.Closed()
	if !ok {
		return Fragment{}, fmt.Errorf("%w: question %d has no end", ErrValidation, m.QuestionID())
	}
	return NewFragmentFromClosed(c, outputDir, ext), nil
}

// NewFragmentFromClosed prepares a fragment from an already closed view
func NewFragmentFromClosed(c marks.ClosedMark, outputDir, ext string) Fragment {
	return Fragment{
		mark:       c,
		outputPath: filepath.Join(outputDir, FileName(c.InterviewID, c.QuestionID, ext)),
		state:      &fragmentState{},
	}
}

// Mark returns the mark the fragment was built from
func (f Fragment) Mark() marks.ClosedMark { return f.mark }

// OutputPath returns where the fragment will be written
func (f Fragment) OutputPath() string { return f.outputPath }

// Duration returns the fragment length in seconds
func (f Fragment) Duration() float64 { return f.mark.Duration() }

// IsGenerated reports whether a cut has already succeeded
func (f Fragment) IsGenerated() bool {
	return f.state != nil && f.state.generated.Load()
}
