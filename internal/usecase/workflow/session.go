package workflow

import (
	"sync"
	"time"
)

// Step is a position in the summary workflow
type Step int

const (
	StepUpload Step = iota + 1
	StepInstruct
	StepReview
	StepShare
	StepDone
)

var stepNames = map[Step]string{
	StepUpload:   "upload",
	StepInstruct: "instruct",
	StepReview:   "review",
	StepShare:    "share",
	StepDone:     "done",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Session is the state of one user's pass through the workflow.
// All fields are guarded by mu.
type Session struct {
	mu sync.Mutex

	id                 string
	step               Step
	transcriptText     string
	transcriptFilename string
	summaryID          string
	summaryContent     string
	savedContent       string
	inFlight           bool
	epoch              uint64
	createdAt          time.Time
	updatedAt          time.Time
}

// NewSession creates a session at the upload step
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		id:        id,
		step:      StepUpload,
		createdAt: now,
		updatedAt: now,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// View is a read-only snapshot of a session
type View struct {
	ID                 string    `json:"id"`
	Step               string    `json:"step"`
	StepNumber         int       `json:"stepNumber"`
	TranscriptFilename string    `json:"transcriptFilename,omitempty"`
	TranscriptText     string    `json:"transcriptText,omitempty"`
	SummaryID          string    `json:"summaryId,omitempty"`
	SummaryContent     string    `json:"summaryContent,omitempty"`
	Generating         bool      `json:"generating"`
	Unsaved            bool      `json:"unsaved"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// View returns a snapshot of the current state
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		ID:                 s.id,
		Step:               s.step.String(),
		StepNumber:         int(s.step),
		TranscriptFilename: s.transcriptFilename,
		TranscriptText:     s.transcriptText,
		SummaryID:          s.summaryID,
		SummaryContent:     s.summaryContent,
		Generating:         s.inFlight && s.step == StepInstruct,
		Unsaved:            s.summaryContent != s.savedContent,
		CreatedAt:          s.createdAt,
		UpdatedAt:          s.updatedAt,
	}
}

// touch must be called with mu held
func (s *Session) touch() {
	s.updatedAt = time.Now().UTC()
}

// clear must be called with mu held
func (s *Session) clear() {
	s.step = StepUpload
	s.transcriptText = ""
	s.transcriptFilename = ""
	s.summaryID = ""
	s.summaryContent = ""
	s.savedContent = ""
	s.inFlight = false
	s.epoch++
	s.touch()
}
