package storage

import (
	"context"
	"fmt"
	"time"
)

// BlockTypeCount is the number of blocks of one type within a period.
type BlockTypeCount struct {
	BlockType string `json:"blockType"`
	Blocks    int    `json:"blocks"`
}

// TrainingSummaryPeriod holds aggregated session volume for one time period.
type TrainingSummaryPeriod struct {
	Period     string           `json:"period"`
	Sessions   int              `json:"sessions"`
	Blocks     int              `json:"blocks"`
	Exercises  int              `json:"exercises"`
	Sets       int              `json:"sets"`
	AvgMood    *float64         `json:"avgMood,omitempty"`
	AvgEnergy  *float64         `json:"avgEnergy,omitempty"`
	BlockTypes []BlockTypeCount `json:"blockTypes"`
}

// GetTrainingSummary returns session volume per period, newest first,
// with a breakdown of block types.
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]TrainingSummaryPeriod, error) {
	// Query 1: session counts grouped by period
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, start_time)::date AS period,
		        COUNT(*)::int,
		        COALESCE(SUM(block_count), 0)::int,
		        COALESCE(SUM(exercise_count), 0)::int,
		        COALESCE(SUM(set_count), 0)::int,
		        AVG(mood)::float8,
		        AVG(energy)::float8
		 FROM workout_sessions
		 WHERE start_time >= $2 AND start_time < $3
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end)
	if err != nil {
		return nil, fmt.Errorf("querying training summary: %w", err)
	}
	defer rows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string

	for rows.Next() {
		var periodTime time.Time
		p := TrainingSummaryPeriod{BlockTypes: []BlockTypeCount{}}
		if err := rows.Scan(&periodTime, &p.Sessions, &p.Blocks, &p.Exercises, &p.Sets, &p.AvgMood, &p.AvgEnergy); err != nil {
			return nil, fmt.Errorf("scanning training summary: %w", err)
		}
		p.Period = periodKey(periodTime)
		periodMap[p.Period] = &p
		periodOrder = append(periodOrder, p.Period)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query 2: block types from the stored documents
	typeRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, s.start_time)::date AS period,
		        b->>'blockType',
		        COUNT(*)::int
		 FROM workout_sessions s, jsonb_array_elements(s.document->'workoutBlocks') b
		 WHERE s.start_time >= $2 AND s.start_time < $3
		 GROUP BY period, b->>'blockType'
		 ORDER BY period DESC, COUNT(*) DESC`,
		truncInterval(bucket), start, end)
	if err != nil {
		return nil, fmt.Errorf("querying block types: %w", err)
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var periodTime time.Time
		var bt BlockTypeCount
		if err := typeRows.Scan(&periodTime, &bt.BlockType, &bt.Blocks); err != nil {
			return nil, fmt.Errorf("scanning block types: %w", err)
		}
		if p, ok := periodMap[periodKey(periodTime)]; ok {
			p.BlockTypes = append(p.BlockTypes, bt)
		}
	}
	if err := typeRows.Err(); err != nil {
		return nil, err
	}

	// Assemble result in order
	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

func periodKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 week":
		return "week"
	case "1 month":
		return "month"
	default:
		return "month"
	}
}
