// Package validation checks untrusted workout session documents against the
// session schema and runs the superset and HIIT consistency checks.
//
// All functions are pure and safe for concurrent use.
package validation

import (
	"github.com/meltforce/liftlog/internal/models"
)

var (
	blockTypes    = enumValues(models.BlockTypes)
	exerciseTypes = enumValues(models.ExerciseTypes)
	targetTypes   = enumValues(models.TargetTypes)
)

// Parse decodes input into a WorkoutSession. input may be a generic JSON
// value, raw JSON bytes, or any value encoding/json can marshal.
// On a schema violation the error is a *SchemaError listing every violated
// field; if the validator itself faults the error is ErrUnknown.
func Parse(input any) (session *models.WorkoutSession, err error) {
	defer func() {
		if r := recover(); r != nil {
			session, err = nil, ErrUnknown
		}
	}()

	doc, err := normalize(input)
	if err != nil {
		return nil, ErrUnknown
	}

	w := &walker{}
	s, ok := w.session(doc)
	if !ok || len(w.issues) > 0 {
		return nil, &SchemaError{Issues: w.issues}
	}
	return s, nil
}

func (w *walker) session(v any) (*models.WorkoutSession, bool) {
	f, ok := w.object(nil, v)
	if !ok {
		return nil, false
	}
	s := &models.WorkoutSession{}
	valid := true

	if v, p, ok := f.required("sessionId"); ok {
		s.SessionID, ok = w.str(p, v, uuidFormat)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("startTime"); ok {
		s.StartTime, ok = w.timestamp(p, v)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, present := f.optional("endTime"); present {
		t, ok := w.timestamp(p, v)
		if ok {
			s.EndTime = &t
		}
		valid = valid && ok
	}

	if v, p, ok := f.required("workoutBlocks"); ok {
		if items, ok := w.array(p, v, 1); ok {
			for i, item := range items {
				b, ok := w.block(p.index(i), item)
				valid = valid && ok
				s.WorkoutBlocks = append(s.WorkoutBlocks, b)
			}
		} else {
			valid = false
		}
	} else {
		valid = false
	}

	if v, p, present := f.optional("metadata"); present {
		m, ok := w.metadata(p, v)
		s.Metadata = m
		valid = valid && ok
	}

	if v, p, present := f.optional("goals"); present {
		if items, ok := w.array(p, v, 0); ok {
			s.Goals = make([]models.WorkoutGoal, 0, len(items))
			for i, item := range items {
				g, ok := w.goal(p.index(i), item)
				valid = valid && ok
				s.Goals = append(s.Goals, g)
			}
		} else {
			valid = false
		}
	}

	return s, valid
}

func (w *walker) metadata(p path, v any) (*models.SessionMetadata, bool) {
	f, ok := w.object(p, v)
	if !ok {
		return nil, false
	}
	m := &models.SessionMetadata{}
	valid := true

	m.Notes, ok = w.optStr(f, "notes")
	valid = valid && ok
	m.Mood, ok = w.optInt(f, "mood", gte(1), lte(10))
	valid = valid && ok
	m.Energy, ok = w.optInt(f, "energy", gte(1), lte(10))
	valid = valid && ok

	if v, p, present := f.optional("tags"); present {
		m.Tags, ok = w.strList(p, v, 0)
		valid = valid && ok
	}
	return m, valid
}

func (w *walker) block(p path, v any) (models.WorkoutBlock, bool) {
	var b models.WorkoutBlock
	f, ok := w.object(p, v)
	if !ok {
		return b, false
	}
	valid := true

	if v, p, ok := f.required("blockId"); ok {
		b.BlockID, ok = w.str(p, v, uuidFormat)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("blockType"); ok {
		var t string
		t, ok = w.enum(p, v, blockTypes)
		b.BlockType = models.BlockType(t)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("exercises"); ok {
		if items, ok := w.array(p, v, 1); ok {
			for i, item := range items {
				e, ok := w.exercise(p.index(i), item)
				valid = valid && ok
				b.Exercises = append(b.Exercises, e)
			}
		} else {
			valid = false
		}
	} else {
		valid = false
	}

	if v, p, ok := f.required("restBetweenSets"); ok {
		b.RestBetweenSets, ok = w.num(p, v, gte(0), lte(3600))
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("restBetweenBlocks"); ok {
		b.RestBetweenBlocks, ok = w.num(p, v, gte(0), lte(3600))
		valid = valid && ok
	} else {
		valid = false
	}

	b.Notes, ok = w.optStr(f, "notes")
	valid = valid && ok

	return b, valid
}

func (w *walker) exercise(p path, v any) (models.Exercise, bool) {
	var e models.Exercise
	f, ok := w.object(p, v)
	if !ok {
		return e, false
	}
	valid := true

	if v, p, ok := f.required("exerciseId"); ok {
		e.ExerciseID, ok = w.str(p, v, uuidFormat)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("exerciseName"); ok {
		e.ExerciseName, ok = w.str(p, v, nonEmpty)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("exerciseType"); ok {
		var t string
		t, ok = w.enum(p, v, exerciseTypes)
		e.ExerciseType = models.ExerciseType(t)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("muscleGroups"); ok {
		e.MuscleGroups, ok = w.strList(p, v, 1)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("equipment"); ok {
		e.Equipment, ok = w.strList(p, v, 0)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("sets"); ok {
		if items, ok := w.array(p, v, 1); ok {
			for i, item := range items {
				s, ok := w.set(p.index(i), item)
				valid = valid && ok
				e.Sets = append(e.Sets, s)
			}
		} else {
			valid = false
		}
	} else {
		valid = false
	}

	if v, p, present := f.optional("supersetWith"); present {
		e.SupersetWith, ok = w.strList(p, v, 0, uuidFormat)
		valid = valid && ok
	}

	e.LinkedToWorkout, ok = w.optStr(f, "linkedToWorkout", uuidFormat)
	valid = valid && ok

	e.Notes, ok = w.optStr(f, "notes")
	valid = valid && ok

	return e, valid
}

func (w *walker) set(p path, v any) (models.ExerciseSet, bool) {
	var s models.ExerciseSet
	f, ok := w.object(p, v)
	if !ok {
		return s, false
	}
	valid := true

	if v, p, ok := f.required("setNumber"); ok {
		var n float64
		n, ok = w.num(p, v, integer, positive)
		s.SetNumber = int(n)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("target"); ok {
		s.Target, ok = w.target(p, v)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, present := f.optional("actual"); present {
		s.Actual, ok = w.actual(p, v)
		valid = valid && ok
	}

	if v, p, ok := f.required("restAfterSet"); ok {
		s.RestAfterSet, ok = w.num(p, v, gte(0), lte(3600))
		valid = valid && ok
	} else {
		valid = false
	}

	s.Notes, ok = w.optStr(f, "notes")
	valid = valid && ok

	return s, valid
}

func (w *walker) target(p path, v any) (models.ExerciseTarget, bool) {
	var t models.ExerciseTarget
	f, ok := w.object(p, v)
	if !ok {
		return t, false
	}
	valid := true

	if v, p, ok := f.required("type"); ok {
		var s string
		s, ok = w.enum(p, v, targetTypes)
		t.Type = models.TargetType(s)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("value"); ok {
		t.Value, ok = w.num(p, v, positive)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("unit"); ok {
		t.Unit, ok = w.str(p, v, nonEmpty)
		valid = valid && ok
	} else {
		valid = false
	}

	t.PercentageOf1RM, ok = w.optNum(f, "percentageOf1RM", gte(0), lte(100))
	valid = valid && ok

	return t, valid
}

func (w *walker) actual(p path, v any) (*models.ExerciseActual, bool) {
	f, ok := w.object(p, v)
	if !ok {
		return nil, false
	}
	a := &models.ExerciseActual{}
	valid := true

	a.Weight, ok = w.optNum(f, "weight", gte(0))
	valid = valid && ok
	a.Reps, ok = w.optNum(f, "reps", gte(0))
	valid = valid && ok
	a.Time, ok = w.optNum(f, "time", gte(0))
	valid = valid && ok
	a.Distance, ok = w.optNum(f, "distance", gte(0))
	valid = valid && ok
	a.RPE, ok = w.optNum(f, "RPE", gte(1), lte(10))
	valid = valid && ok

	return a, valid
}

func (w *walker) goal(p path, v any) (models.WorkoutGoal, bool) {
	var g models.WorkoutGoal
	f, ok := w.object(p, v)
	if !ok {
		return g, false
	}
	valid := true

	if v, p, ok := f.required("goalId"); ok {
		g.GoalID, ok = w.str(p, v, uuidFormat)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("exerciseId"); ok {
		g.ExerciseID, ok = w.str(p, v, uuidFormat)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("goalType"); ok {
		var s string
		s, ok = w.enum(p, v, targetTypes)
		g.GoalType = models.TargetType(s)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("targetValue"); ok {
		g.TargetValue, ok = w.num(p, v, positive)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("targetUnit"); ok {
		g.TargetUnit, ok = w.str(p, v, nonEmpty)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("targetDate"); ok {
		g.TargetDate, ok = w.timestamp(p, v)
		valid = valid && ok
	} else {
		valid = false
	}

	if v, p, ok := f.required("currentProgress"); ok {
		g.CurrentProgress, ok = w.num(p, v, gte(0))
		valid = valid && ok
	} else {
		valid = false
	}

	g.Notes, ok = w.optStr(f, "notes")
	valid = valid && ok

	return g, valid
}
