package types

// CreateSessionRequest optionally names the interview
type CreateSessionRequest struct {
	InterviewID string `json:"interviewId" binding:"omitempty,max=100,excludesall=/\\"`
}

// EndQuestionRequest carries the note stored with a closed mark
type EndQuestionRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// FragmentJobRequest queues a background cut of a marks file
type FragmentJobRequest struct {
	InterviewID string `json:"interviewId" binding:"omitempty,max=100"`
	MarksPath   string `json:"marksPath" binding:"required"`
	SourcePath  string `json:"sourcePath"` // Defaults to the video file named in the marks file
	OutputDir   string `json:"outputDir"`  // Defaults to the configured fragments directory
	FragmentExt string `json:"fragmentExt" binding:"omitempty,alphanum"`
	Priority    int    `json:"priority" binding:"gte=0,lte=100"`
}

// AddQuestionRequest appends a question to a category
type AddQuestionRequest struct {
	Question string `json:"question" binding:"required,max=500"`
}
