package marks

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenMark(t *testing.T) {
	m, err := NewOpenMark("2025-01-01_001", 1, 0)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01_001", m.InterviewID())
	assert.Equal(t, 1, m.QuestionID())
	assert.Equal(t, 0.0, m.Start())
	assert.True(t, m.IsOpen())

	_, ok := m.End()
	assert.False(t, ok)

	_, ok = m.Closed()
	assert.False(t, ok, "open mark must not expose a closed view")
}

func TestNewMarkValidation(t *testing.T) {
	tests := []struct {
		name        string
		interviewID string
		questionID  int
		start       float64
		end         *float64
	}{
		{name: "empty interview id", interviewID: "", questionID: 1, start: 0},
		{name: "blank interview id", interviewID: "   ", questionID: 1, start: 0},
		{name: "zero question id", interviewID: "i", questionID: 0, start: 0},
		{name: "negative question id", interviewID: "i", questionID: -3, start: 0},
		{name: "negative start", interviewID: "i", questionID: 1, start: -0.5},
		{name: "end equal to start", interviewID: "i", questionID: 1, start: 5, end: ptr(5)},
		{name: "end before start", interviewID: "i", questionID: 1, start: 5, end: ptr(4)},
		{name: "nan start", interviewID: "i", questionID: 1, start: math.NaN()},
		{name: "infinite start", interviewID: "i", questionID: 1, start: math.Inf(1)},
		{name: "nan start closed", interviewID: "i", questionID: 1, start: math.NaN(), end: ptr(5)},
		{name: "nan end", interviewID: "i", questionID: 1, start: 0, end: ptr(math.NaN())},
		{name: "infinite end", interviewID: "i", questionID: 1, start: 0, end: ptr(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.end == nil {
				_, err = NewOpenMark(tt.interviewID, tt.questionID, tt.start)
			} else {
				_, err = NewClosedMark(tt.interviewID, tt.questionID, tt.start, *tt.end, "")
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestClosedMarkDuration(t *testing.T) {
	m, err := NewClosedMark("i", 2, 12.5, 20, "ok")
	require.NoError(t, err)

	c, ok := m.Closed()
	require.True(t, ok)
	assert.InDelta(t, 7.5, c.Duration(), 1e-9)
	assert.Equal(t, "ok", c.Note)
}

func TestClosedMarkOverlaps(t *testing.T) {
	base := ClosedMark{QuestionID: 1, Start: 0, End: 12.5}

	tests := []struct {
		name     string
		other    ClosedMark
		overlaps bool
	}{
		{"touching end", ClosedMark{Start: 12.5, End: 20}, false},
		{"identical", ClosedMark{Start: 0, End: 12.5}, true},
		{"contained", ClosedMark{Start: 5, End: 8}, true},
		{"containing", ClosedMark{Start: -1, End: 30}, true},
		{"before", ClosedMark{Start: -5, End: 0}, false},
		{"after", ClosedMark{Start: 13, End: 14}, false},
		{"straddling end", ClosedMark{Start: 12, End: 13}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestMarkCloseReturnsCopy(t *testing.T) {
	open, err := NewOpenMark("i", 1, 3)
	require.NoError(t, err)

	closed := open.close(9, "done")

	assert.True(t, open.IsOpen())
	assert.False(t, closed.IsOpen())
	end, ok := closed.End()
	require.True(t, ok)
	assert.Equal(t, 9.0, end)
	assert.Equal(t, "done", closed.Note())
}

func TestMarkEqual(t *testing.T) {
	a, _ := NewClosedMark("i", 1, 0, 2, "n")
	b, _ := NewClosedMark("i", 1, 0, 2, "n")
	c, _ := NewClosedMark("i", 1, 0, 3, "n")
	d, _ := NewOpenMark("i", 1, 0)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func ptr(f float64) *float64 { return &f }
