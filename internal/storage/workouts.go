package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftlog/internal/models"
)

// SessionSummary is the list view of a stored session.
type SessionSummary struct {
	SessionID     uuid.UUID  `json:"sessionId"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	BlockCount    int        `json:"blockCount"`
	ExerciseCount int        `json:"exerciseCount"`
	SetCount      int        `json:"setCount"`
	Tags          []string   `json:"tags"`
	Mood          *int       `json:"mood,omitempty"`
	Energy        *int       `json:"energy,omitempty"`
}

// InsertSession stores a validated session and its goals in one transaction.
// Returns ErrDuplicate if the session ID is already stored.
func (db *DB) InsertSession(ctx context.Context, s *models.WorkoutSession) error {
	row, goals, err := sessionRows(s)
	if err != nil {
		return err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO workout_sessions (session_id, start_time, end_time, block_count, exercise_count,
		 set_count, tags, mood, energy, document)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (session_id) DO NOTHING`,
		row.SessionID, row.StartTime, row.EndTime, row.BlockCount, row.ExerciseCount,
		row.SetCount, row.Tags, row.Mood, row.Energy, row.Document)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicate
	}

	if err := insertGoals(ctx, tx, goals); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

func insertGoals(ctx context.Context, tx pgx.Tx, rows []models.GoalRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO workout_goals (goal_id, session_id, exercise_id, goal_type, target_value,
		target_unit, target_date, current_progress, notes) VALUES `
	args := make([]any, 0, len(rows)*9)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.GoalID, r.SessionID, r.ExerciseID, r.GoalType, r.TargetValue,
			r.TargetUnit, r.TargetDate, r.CurrentProgress, r.Notes)
	}

	query += strings.Join(valueStrings, ",")

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting goals: %w", err)
	}
	return nil
}

// QuerySessions lists sessions starting in [start, end), newest first.
// A non-empty tag restricts the result to sessions carrying it.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, tag string) ([]SessionSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT session_id, start_time, end_time, block_count, exercise_count, set_count,
		 tags, mood, energy
		 FROM workout_sessions
		 WHERE start_time >= $1 AND start_time < $2 AND ($3 = '' OR $3 = ANY(tags))
		 ORDER BY start_time DESC`,
		start, end, tag)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	result := []SessionSummary{}
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.SessionID, &s.StartTime, &s.EndTime, &s.BlockCount,
			&s.ExerciseCount, &s.SetCount, &s.Tags, &s.Mood, &s.Energy); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetSession returns the full stored session document.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*models.WorkoutSession, error) {
	var doc []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT document FROM workout_sessions WHERE session_id = $1`,
		sessionID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	var s models.WorkoutSession
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("decoding session document: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a session and, by cascade, its goals.
func (db *DB) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// QueryGoals lists goals ordered by target date. A non-nil exerciseID
// restricts the result to that exercise.
func (db *DB) QueryGoals(ctx context.Context, exerciseID *uuid.UUID) ([]models.GoalRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT goal_id, session_id, exercise_id, goal_type, target_value, target_unit,
		 target_date, current_progress, notes
		 FROM workout_goals
		 WHERE $1::uuid IS NULL OR exercise_id = $1
		 ORDER BY target_date ASC, goal_id ASC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	result := []models.GoalRow{}
	for rows.Next() {
		var g models.GoalRow
		if err := rows.Scan(&g.GoalID, &g.SessionID, &g.ExerciseID, &g.GoalType, &g.TargetValue,
			&g.TargetUnit, &g.TargetDate, &g.CurrentProgress, &g.Notes); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
