package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRow is a row ready for insertion into the workout_sessions table.
// Document holds the full validated session as JSON.
type SessionRow struct {
	SessionID     uuid.UUID
	StartTime     time.Time
	EndTime       *time.Time
	BlockCount    int
	ExerciseCount int
	SetCount      int
	Tags          []string
	Mood          *int
	Energy        *int
	Document      []byte `json:"-"`
}

// GoalRow is a row for the workout_goals table.
type GoalRow struct {
	GoalID          uuid.UUID `json:"goalId"`
	SessionID       uuid.UUID `json:"sessionId"`
	ExerciseID      uuid.UUID `json:"exerciseId"`
	GoalType        string    `json:"goalType"`
	TargetValue     float64   `json:"targetValue"`
	TargetUnit      string    `json:"targetUnit"`
	TargetDate      time.Time `json:"targetDate"`
	CurrentProgress float64   `json:"currentProgress"`
	Notes           string    `json:"notes,omitempty"`
}
