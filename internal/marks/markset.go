package marks

import (
	"fmt"

	"github.com/spf13/afero"
)

// MarkSet holds the ordered marks of a single interview and mirrors every
// mutation to a snapshot file. It is not safe for concurrent writers.
type MarkSet struct {
	interviewID  string
	videoPath    string
	snapshotPath string
	fs           afero.Fs
	marks        []Mark
}

// Option configures a MarkSet
type Option func(*MarkSet)

// WithFs sets the filesystem used for snapshots, import and export
func WithFs(fs afero.Fs) Option {
	return func(s *MarkSet) {
		s.fs = fs
	}
}

// NewMarkSet creates an empty set. snapshotPath is rewritten after every
// successful mutation.
func NewMarkSet(interviewID, videoPath, snapshotPath string, opts ...Option) (*MarkSet, error) {
	if interviewID == "" {
		return nil, fmt.Errorf("%w: interview id must be a non-empty string", ErrValidation)
	}
	if snapshotPath == "" {
		return nil, fmt.Errorf("%w: snapshot path is required", ErrValidation)
	}

	s := &MarkSet{
		interviewID:  interviewID,
		videoPath:    videoPath,
		snapshotPath: snapshotPath,
		fs:           afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// InterviewID returns the interview this set belongs to
func (s *MarkSet) InterviewID() string { return s.interviewID }

// VideoPath returns the recording the marks refer to
func (s *MarkSet) VideoPath() string { return s.videoPath }

// SnapshotPath returns the file rewritten on every mutation
func (s *MarkSet) SnapshotPath() string { return s.snapshotPath }

// Len returns the number of marks
func (s *MarkSet) Len() int { return len(s.marks) }

// Marks returns a copy of all marks in insertion order
func (s *MarkSet) Marks() []Mark {
	out := make([]Mark, len(s.marks))
	copy(out, s.marks)
	return out
}

// ClosedMarks returns the closed marks in insertion order
func (s *MarkSet) ClosedMarks() []ClosedMark {
	var out []ClosedMark
	for _, m := range s.marks {
		if c, ok := m.Closed(); ok {
			out = append(out, c)
		}
	}
	return out
}

// Save writes the current state to the snapshot path
func (s *MarkSet) Save() error {
	return s.commit(s.marks)
}

// Add appends a mark. Closed marks are rejected when they overlap another
// closed mark; open marks are accepted as is.
func (s *MarkSet) Add(m Mark) error {
	if m.interviewID != s.interviewID {
		return fmt.Errorf("%w: expected %q, got %q", ErrMismatchedInterview, s.interviewID, m.interviewID)
	}

	if c, ok := m.Closed(); ok {
		if conflict, found := s.findOverlap(c, -1); found {
			return fmt.Errorf("%w: question %d [%.3f, %.3f) overlaps question %d [%.3f, %.3f)",
				ErrOverlap, c.QuestionID, c.Start, c.End, conflict.QuestionID, conflict.Start, conflict.End)
		}
	}

	next := make([]Mark, len(s.marks), len(s.marks)+1)
	copy(next, s.marks)
	next = append(next, m)
	return s.commit(next)
}

// Remove drops every mark with the given question id
func (s *MarkSet) Remove(questionID int) error {
	next := make([]Mark, 0, len(s.marks))
	for _, m := range s.marks {
		if m.questionID != questionID {
			next = append(next, m)
		}
	}
	return s.commit(next)
}

// FindByQuestion returns the first mark with the given question id
func (s *MarkSet) FindByQuestion(questionID int) (Mark, bool) {
	for _, m := range s.marks {
		if m.questionID == questionID {
			return m, true
		}
	}
	return Mark{}, false
}

// Close sets the end and note of the open mark for questionID.
//
// The closed interval is checked against the other closed marks, and the end
// must fall after the start.
func (s *MarkSet) Close(questionID int, end float64, note string) error {
	idx := -1
	seen := false
	for i, m := range s.marks {
		if m.questionID != questionID {
			continue
		}
		seen = true
		if m.IsOpen() {
			idx = i
			break
		}
	}
	if !seen {
		return fmt.Errorf("%w: question %d", ErrNotFound, questionID)
	}
	if idx < 0 {
		return fmt.Errorf("%w: question %d", ErrAlreadyClosed, questionID)
	}

	open := s.marks[idx]
	if err := validateOffset("end", end); err != nil {
		return err
	}
	if end <= open.start {
		return fmt.Errorf("%w: end %.3f must be greater than start %.3f", ErrValidation, end, open.start)
	}

	closed := open.close(end, note)
	c, _ := closed.Closed()
	if conflict, found := s.findOverlap(c, idx); found {
		return fmt.Errorf("%w: question %d [%.3f, %.3f) overlaps question %d [%.3f, %.3f)",
			ErrOverlap, c.QuestionID, c.Start, c.End, conflict.QuestionID, conflict.Start, conflict.End)
	}

	next := s.Marks()
	next[idx] = closed
	return s.commit(next)
}

// Export writes the set to path, creating parent directories
func (s *MarkSet) Export(path string) error {
	return writeDocument(s.fs, path, toDocument(s.interviewID, s.videoPath, s.marks))
}

// Import replaces the video path and the marks with the contents of path.
// The snapshot is not rewritten.
func (s *MarkSet) Import(path string) error {
	doc, parsed, err := ReadDocument(s.fs, path)
	if err != nil {
		return err
	}
	if doc.InterviewID != s.interviewID {
		return fmt.Errorf("%w: file is for interview %q, set is %q", ErrSchema, doc.InterviewID, s.interviewID)
	}
	for i, m := range parsed {
		if m.interviewID != s.interviewID {
			return fmt.Errorf("%w: mark %d is for interview %q", ErrSchema, i, m.interviewID)
		}
	}

	s.videoPath = doc.VideoFile
	s.marks = parsed
	return nil
}

// Load builds a set from an existing marks file. The returned set snapshots
// to snapshotPath, or back to path when snapshotPath is empty.
func Load(fs afero.Fs, path, snapshotPath string) (*MarkSet, error) {
	doc, parsed, err := ReadDocument(fs, path)
	if err != nil {
		return nil, err
	}
	if snapshotPath == "" {
		snapshotPath = path
	}

	s, err := NewMarkSet(doc.InterviewID, doc.VideoFile, snapshotPath, WithFs(fs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	for i, m := range parsed {
		if m.interviewID != s.interviewID {
			return nil, fmt.Errorf("%w: mark %d is for interview %q", ErrSchema, i, m.interviewID)
		}
	}
	s.marks = parsed
	return s, nil
}

func (s *MarkSet) findOverlap(c ClosedMark, skip int) (ClosedMark, bool) {
	for i, m := range s.marks {
		if i == skip {
			continue
		}
		other, ok := m.Closed()
		if !ok {
			continue
		}
		if c.Overlaps(other) {
			return other, true
		}
	}
	return ClosedMark{}, false
}

// commit persists next and adopts it only when the write succeeds
func (s *MarkSet) commit(next []Mark) error {
	if err := writeDocument(s.fs, s.snapshotPath, toDocument(s.interviewID, s.videoPath, next)); err != nil {
		return fmt.Errorf("saving marks snapshot: %w", err)
	}
	s.marks = next
	return nil
}
