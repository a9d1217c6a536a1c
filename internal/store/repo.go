package store

import (
	"context"
	"time"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the full learner state at a point in time:
// the question bank with per-question scheduling and attempt history,
// the aggregate performance record, and all-time bests.
type SnapshotData struct {
	Version       int                  `json:"version"`
	Player        string               `json:"player,omitempty"`
	Student       string               `json:"student,omitempty"`
	Questions     []*question.Question `json:"questions"`
	Performance   *game.Performance    `json:"performance"`
	HighestScore  int                  `json:"highestScore"`
	HighestStreak int                  `json:"highestStreak"`
}

// SnapshotVersion is the current SnapshotData schema version.
const SnapshotVersion = 1

// SnapshotKeep is how many snapshots Prune retains.
const SnapshotKeep = 10

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AnswerEventData captures one answered (or timed-out) question.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	Topic         string
	QuestionType  string
	QuestionText  string
	CorrectAnswer string
	PlayerAnswer  string
	Correct       bool
	TimeSecs      float64
	MasteryLevel  int
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	Player          string
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	MaxStreak       int
	DurationSecs    int
}

// SessionEventRecord is a stored session event with its envelope.
type SessionEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	ID           int
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsageStat aggregates LLM usage for one purpose or model.
type LLMUsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records one answered question.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSession records a session start or end.
	AppendSession(ctx context.Context, data SessionEventData) error

	// QuerySessions returns session events, most recent first.
	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventData, error)

	// GetLLMEvent returns one LLM request event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventData, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage grouped by model ID.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error)
}
