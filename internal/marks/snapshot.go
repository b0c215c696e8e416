package marks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Document is the on-disk shape of a marks file
type Document struct {
	InterviewID string         `json:"interview_id"`
	VideoFile   string         `json:"video_file"`
	Marks       []MarkDocument `json:"marks"`
}

// MarkDocument is one mark inside a marks file
type MarkDocument struct {
	InterviewID string   `json:"interview_id"`
	QuestionID  int      `json:"question_id"`
	Start       float64  `json:"start"`
	End         *float64 `json:"end"`
	Note        string   `json:"note"`
}

// rawDocument mirrors Document with pointers so absent keys can be told
// apart from zero values on import
type rawDocument struct {
	InterviewID *string            `json:"interview_id"`
	VideoFile   *string            `json:"video_file"`
	Marks       *[]rawMarkDocument `json:"marks"`
}

type rawMarkDocument struct {
	InterviewID *string  `json:"interview_id"`
	QuestionID  *int     `json:"question_id"`
	Start       *float64 `json:"start"`
	End         *float64 `json:"end"`
	Note        *string  `json:"note"`
}

// FileName returns the conventional marks file name for an interview
func FileName(interviewID string) string {
	return fmt.Sprintf("marks_%s.json", interviewID)
}

func toDocument(interviewID, videoPath string, marks []Mark) Document {
	doc := Document{
		InterviewID: interviewID,
		VideoFile:   videoPath,
		Marks:       make([]MarkDocument, 0, len(marks)),
	}
	for _, m := range marks {
		md := MarkDocument{
			InterviewID: m.interviewID,
			QuestionID:  m.questionID,
			Start:       m.start,
			Note:        m.note,
		}
		if end, ok := m.End(); ok {
			md.End = &end
		}
		doc.Marks = append(doc.Marks, md)
	}
	return doc
}

// writeDocument overwrites path with the pretty-printed document. The data is
// written to a temporary sibling first and renamed into place.
func writeDocument(fs afero.Fs, path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding marks: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating marks directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, ".marks_*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp marks file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("writing marks: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("syncing marks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("closing marks: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("replacing marks file: %w", err)
	}
	return nil
}

// ReadDocument loads and validates a marks file without binding it to a set
func ReadDocument(fs afero.Fs, path string) (Document, []Mark, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil, fmt.Errorf("%w: file %s does not exist", ErrSchema, path)
		}
		return Document{}, nil, fmt.Errorf("reading marks file: %w", err)
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if raw.InterviewID == nil {
		return Document{}, nil, fmt.Errorf("%w: missing key interview_id", ErrSchema)
	}
	if raw.Marks == nil {
		return Document{}, nil, fmt.Errorf("%w: missing key marks", ErrSchema)
	}

	doc := Document{InterviewID: *raw.InterviewID}
	if raw.VideoFile != nil {
		doc.VideoFile = *raw.VideoFile
	}

	parsed := make([]Mark, 0, len(*raw.Marks))
	for i, rm := range *raw.Marks {
		switch {
		case rm.InterviewID == nil:
			return Document{}, nil, fmt.Errorf("%w: mark %d missing key interview_id", ErrSchema, i)
		case rm.QuestionID == nil:
			return Document{}, nil, fmt.Errorf("%w: mark %d missing key question_id", ErrSchema, i)
		case rm.Start == nil:
			return Document{}, nil, fmt.Errorf("%w: mark %d missing key start", ErrSchema, i)
		}

		note := ""
		if rm.Note != nil {
			note = *rm.Note
		}

		var m Mark
		var err error
		if rm.End == nil {
			m, err = NewOpenMark(*rm.InterviewID, *rm.QuestionID, *rm.Start)
			m.note = note
		} else {
			m, err = NewClosedMark(*rm.InterviewID, *rm.QuestionID, *rm.Start, *rm.End, note)
		}
		if err != nil {
			return Document{}, nil, fmt.Errorf("%w: mark %d: %v", ErrSchema, i, err)
		}

		doc.Marks = append(doc.Marks, MarkDocument{
			InterviewID: *rm.InterviewID,
			QuestionID:  *rm.QuestionID,
			Start:       *rm.Start,
			End:         rm.End,
			Note:        note,
		})
		parsed = append(parsed, m)
	}

	return doc, parsed, nil
}
