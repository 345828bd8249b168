package models

import "time"

// BlockType is the kind of a workout block.
type BlockType string

const (
	BlockStrength BlockType = "strength"
	BlockCardio   BlockType = "cardio"
	BlockHIIT     BlockType = "hiit"
	BlockSuperset BlockType = "superset"
	BlockCircuit  BlockType = "circuit"
)

// BlockTypes lists all block types in declaration order.
var BlockTypes = []BlockType{BlockStrength, BlockCardio, BlockHIIT, BlockSuperset, BlockCircuit}

// Valid reports whether b is one of the known block types.
func (b BlockType) Valid() bool {
	for _, t := range BlockTypes {
		if t == b {
			return true
		}
	}
	return false
}

// ExerciseType classifies an exercise movement.
type ExerciseType string

const (
	ExerciseCompound   ExerciseType = "compound"
	ExerciseIsolation  ExerciseType = "isolation"
	ExerciseCardio     ExerciseType = "cardio"
	ExerciseBodyweight ExerciseType = "bodyweight"
)

// ExerciseTypes lists all exercise types in declaration order.
var ExerciseTypes = []ExerciseType{ExerciseCompound, ExerciseIsolation, ExerciseCardio, ExerciseBodyweight}

// Valid reports whether e is one of the known exercise types.
func (e ExerciseType) Valid() bool {
	for _, t := range ExerciseTypes {
		if t == e {
			return true
		}
	}
	return false
}

// TargetType is the unit dimension of a set target or goal.
type TargetType string

const (
	TargetWeight     TargetType = "weight"
	TargetTime       TargetType = "time"
	TargetReps       TargetType = "reps"
	TargetDistance   TargetType = "distance"
	TargetPercentage TargetType = "percentage"
)

// TargetTypes lists all target types in declaration order.
var TargetTypes = []TargetType{TargetWeight, TargetTime, TargetReps, TargetDistance, TargetPercentage}

// Valid reports whether t is one of the known target types.
func (t TargetType) Valid() bool {
	for _, v := range TargetTypes {
		if v == t {
			return true
		}
	}
	return false
}

// WorkoutSession is a complete logged training session.
// IDs are kept as their canonical textual form.
type WorkoutSession struct {
	SessionID     string           `json:"sessionId"`
	StartTime     time.Time        `json:"startTime"`
	EndTime       *time.Time       `json:"endTime,omitempty"`
	WorkoutBlocks []WorkoutBlock   `json:"workoutBlocks"`
	Metadata      *SessionMetadata `json:"metadata,omitempty"`
	Goals         []WorkoutGoal    `json:"goals,omitempty"`
}

// SessionMetadata holds optional subjective notes about a session.
type SessionMetadata struct {
	Notes  *string  `json:"notes,omitempty"`
	Mood   *int     `json:"mood,omitempty"`
	Energy *int     `json:"energy,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// WorkoutBlock groups exercises performed with a shared rest configuration.
// Rest durations are in seconds.
type WorkoutBlock struct {
	BlockID           string     `json:"blockId"`
	BlockType         BlockType  `json:"blockType"`
	Exercises         []Exercise `json:"exercises"`
	RestBetweenSets   float64    `json:"restBetweenSets"`
	RestBetweenBlocks float64    `json:"restBetweenBlocks"`
	Notes             *string    `json:"notes,omitempty"`
}

// Exercise is one movement within a block.
type Exercise struct {
	ExerciseID      string        `json:"exerciseId"`
	ExerciseName    string        `json:"exerciseName"`
	ExerciseType    ExerciseType  `json:"exerciseType"`
	MuscleGroups    []string      `json:"muscleGroups"`
	Equipment       []string      `json:"equipment"`
	Sets            []ExerciseSet `json:"sets"`
	SupersetWith    []string      `json:"supersetWith,omitempty"`
	LinkedToWorkout *string       `json:"linkedToWorkout,omitempty"`
	Notes           *string       `json:"notes,omitempty"`
}

// ExerciseSet is a single planned set, optionally with what was achieved.
type ExerciseSet struct {
	SetNumber    int             `json:"setNumber"`
	Target       ExerciseTarget  `json:"target"`
	Actual       *ExerciseActual `json:"actual,omitempty"`
	RestAfterSet float64         `json:"restAfterSet"`
	Notes        *string         `json:"notes,omitempty"`
}

// ExerciseTarget is the prescription for a set.
type ExerciseTarget struct {
	Type            TargetType `json:"type"`
	Value           float64    `json:"value"`
	Unit            string     `json:"unit"`
	PercentageOf1RM *float64   `json:"percentageOf1RM,omitempty"`
}

// ExerciseActual records performance. Time is in seconds.
type ExerciseActual struct {
	Weight   *float64 `json:"weight,omitempty"`
	Reps     *float64 `json:"reps,omitempty"`
	Time     *float64 `json:"time,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	RPE      *float64 `json:"RPE,omitempty"`
}

// WorkoutGoal is a target attached to an exercise.
type WorkoutGoal struct {
	GoalID          string     `json:"goalId"`
	ExerciseID      string     `json:"exerciseId"`
	GoalType        TargetType `json:"goalType"`
	TargetValue     float64    `json:"targetValue"`
	TargetUnit      string     `json:"targetUnit"`
	TargetDate      time.Time  `json:"targetDate"`
	CurrentProgress float64    `json:"currentProgress"`
	Notes           *string    `json:"notes,omitempty"`
}

// ExerciseCount returns the number of exercises across all blocks.
func (s *WorkoutSession) ExerciseCount() int {
	n := 0
	for _, b := range s.WorkoutBlocks {
		n += len(b.Exercises)
	}
	return n
}

// SetCount returns the number of sets across all exercises.
func (s *WorkoutSession) SetCount() int {
	n := 0
	for _, b := range s.WorkoutBlocks {
		for _, e := range b.Exercises {
			n += len(e.Sets)
		}
	}
	return n
}
