package storage

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/liftlog/internal/models"
)

// sessionRows flattens a validated session into its table rows.
func sessionRows(s *models.WorkoutSession) (models.SessionRow, []models.GoalRow, error) {
	sessionID, err := uuid.Parse(s.SessionID)
	if err != nil {
		return models.SessionRow{}, nil, fmt.Errorf("session id: %w", err)
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return models.SessionRow{}, nil, fmt.Errorf("encoding session: %w", err)
	}

	row := models.SessionRow{
		SessionID:     sessionID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		BlockCount:    len(s.WorkoutBlocks),
		ExerciseCount: s.ExerciseCount(),
		SetCount:      s.SetCount(),
		Tags:          []string{},
		Document:      doc,
	}
	if m := s.Metadata; m != nil {
		if m.Tags != nil {
			row.Tags = m.Tags
		}
		row.Mood = m.Mood
		row.Energy = m.Energy
	}

	goals := make([]models.GoalRow, 0, len(s.Goals))
	seen := make(map[uuid.UUID]bool, len(s.Goals))
	for i, g := range s.Goals {
		goalID, err := uuid.Parse(g.GoalID)
		if err != nil {
			return models.SessionRow{}, nil, fmt.Errorf("goal %d id: %w", i, err)
		}
		if seen[goalID] {
			return models.SessionRow{}, nil, fmt.Errorf("goal %d %s: %w", i, goalID, ErrDuplicateGoal)
		}
		seen[goalID] = true
		exerciseID, err := uuid.Parse(g.ExerciseID)
		if err != nil {
			return models.SessionRow{}, nil, fmt.Errorf("goal %d exercise id: %w", i, err)
		}
		gr := models.GoalRow{
			GoalID:          goalID,
			SessionID:       sessionID,
			ExerciseID:      exerciseID,
			GoalType:        string(g.GoalType),
			TargetValue:     g.TargetValue,
			TargetUnit:      g.TargetUnit,
			TargetDate:      g.TargetDate,
			CurrentProgress: g.CurrentProgress,
		}
		if g.Notes != nil {
			gr.Notes = *g.Notes
		}
		goals = append(goals, gr)
	}
	return row, goals, nil
}
