package marks

import (
	"fmt"
	"math"
	"strings"
)

// Mark is one question's time span within a recording.
//
// A Mark is either open (no end yet) or closed. Only the closed form, obtained
// through Closed, exposes a duration.
type Mark struct {
	interviewID string
	questionID  int
	start       float64
	end         *float64
	note        string
}

// ClosedMark is the closed variant of a Mark
type ClosedMark struct {
	InterviewID string
	QuestionID  int
	Start       float64
	End         float64
	Note        string
}

// Duration returns the length of the interval in seconds
func (c ClosedMark) Duration() float64 {
	return c.End - c.Start
}

// Overlaps reports whether two half-open intervals [Start, End) intersect.
// Touching boundaries do not overlap.
func (c ClosedMark) Overlaps(other ClosedMark) bool {
	return c.Start < other.End && c.End > other.Start
}

// NewOpenMark creates a mark for a question that has just started
func NewOpenMark(interviewID string, questionID int, start float64) (Mark, error) {
	if err := validateIdentity(interviewID, questionID, start); err != nil {
		return Mark{}, err
	}
	return Mark{
		interviewID: interviewID,
		questionID:  questionID,
		start:       start,
	}, nil
}

// NewClosedMark creates a mark with both ends known
func NewClosedMark(interviewID string, questionID int, start, end float64, note string) (Mark, error) {
	if err := validateIdentity(interviewID, questionID, start); err != nil {
		return Mark{}, err
	}
	if err := validateOffset("end", end); err != nil {
		return Mark{}, err
	}
	if end <= start {
		return Mark{}, fmt.Errorf("%w: end %.3f must be greater than start %.3f", ErrValidation, end, start)
	}
	return Mark{
		interviewID: interviewID,
		questionID:  questionID,
		start:       start,
		end:         &end,
		note:        note,
	}, nil
}

func validateIdentity(interviewID string, questionID int, start float64) error {
	if strings.TrimSpace(interviewID) == "" {
		return fmt.Errorf("%w: interview id must be a non-empty string", ErrValidation)
	}
	if questionID <= 0 {
		return fmt.Errorf("%w: question id must be positive, got %d", ErrValidation, questionID)
	}
	if err := validateOffset("start", start); err != nil {
		return err
	}
	if start < 0 {
		return fmt.Errorf("%w: start cannot be negative, got %.3f", ErrValidation, start)
	}
	return nil
}

// validateOffset rejects NaN and infinities, which slip through ordered comparisons
func validateOffset(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number of seconds, got %v", ErrValidation, name, v)
	}
	return nil
}

// InterviewID returns the owning interview id
func (m Mark) InterviewID() string { return m.interviewID }

// QuestionID returns the question id
func (m Mark) QuestionID() int { return m.questionID }

// Start returns the start offset in seconds
func (m Mark) Start() float64 { return m.start }

// Note returns the free-form note attached when the mark was closed
func (m Mark) Note() string { return m.note }

// End returns the end offset and whether the mark is closed
func (m Mark) End() (float64, bool) {
	if m.end == nil {
		return 0, false
	}
	return *m.end, true
}

// IsOpen reports whether the mark has no end yet
func (m Mark) IsOpen() bool {
	return m.end == nil
}

// Closed returns the closed variant of the mark. The values are returned as
// stored; callers cutting media re-check the range themselves.
func (m Mark) Closed() (ClosedMark, bool) {
	if m.end == nil {
		return ClosedMark{}, false
	}
	return ClosedMark{
		InterviewID: m.interviewID,
		QuestionID:  m.questionID,
		Start:       m.start,
		End:         *m.end,
		Note:        m.note,
	}, true
}

// close returns a copy of the mark with its end and note set
func (m Mark) close(end float64, note string) Mark {
	closed := m
	closed.end = &end
	closed.note = note
	return closed
}

// Equal compares two marks by value
func (m Mark) Equal(other Mark) bool {
	if m.interviewID != other.interviewID || m.questionID != other.questionID ||
		m.start != other.start || m.note != other.note {
		return false
	}
	a, aok := m.End()
	b, bok := other.End()
	return aok == bok && a == b
}

func (m Mark) String() string {
	if end, ok := m.End(); ok {
		return fmt.Sprintf("Mark(%s #%d %.3f-%.3f)", m.interviewID, m.questionID, m.start, end)
	}
	return fmt.Sprintf("Mark(%s #%d %.3f-open)", m.interviewID, m.questionID, m.start)
}
