package validation

import (
	"encoding/json"
	"testing"
)

const (
	sessionID   = "0b7e6c1a-2f4d-4c3b-9a8e-1d2c3b4a5f60"
	blockID     = "5a1f2e3d-4c5b-4a69-8877-665544332211"
	exerciseAID = "9c8b7a69-5847-4362-9150-a1b2c3d4e5f6"
	exerciseBID = "1f2e3d4c-5b6a-4798-8a9b-0c1d2e3f4a5b"
	goalID      = "7d6c5b4a-3928-4716-a5b4-c3d2e1f0a9b8"
	otherID     = "ffffffff-eeee-4ddd-8ccc-bbbbbbbbbbbb"
)

// strengthSession is one strength block, one exercise, one set.
const strengthSession = `{
  "sessionId": "` + sessionID + `",
  "startTime": "2024-03-01T07:30:00Z",
  "workoutBlocks": [{
    "blockId": "` + blockID + `",
    "blockType": "strength",
    "exercises": [{
      "exerciseId": "` + exerciseAID + `",
      "exerciseName": "Back Squat",
      "exerciseType": "compound",
      "muscleGroups": ["quads", "glutes"],
      "equipment": ["barbell"],
      "sets": [{
        "setNumber": 1,
        "target": {"type": "weight", "value": 135, "unit": "lbs"},
        "restAfterSet": 180
      }]
    }],
    "restBetweenSets": 90,
    "restBetweenBlocks": 120
  }]
}`

// supersetSession pairs two exercises that reference each other.
const supersetSession = `{
  "sessionId": "` + sessionID + `",
  "startTime": "2024-03-02T18:00:00Z",
  "workoutBlocks": [{
    "blockId": "` + blockID + `",
    "blockType": "superset",
    "exercises": [{
      "exerciseId": "` + exerciseAID + `",
      "exerciseName": "Bench Press",
      "exerciseType": "compound",
      "muscleGroups": ["chest"],
      "equipment": ["barbell", "bench"],
      "sets": [{"setNumber": 1, "target": {"type": "reps", "value": 8, "unit": "reps"}, "restAfterSet": 0}],
      "supersetWith": ["` + exerciseBID + `"]
    }, {
      "exerciseId": "` + exerciseBID + `",
      "exerciseName": "Bent Over Row",
      "exerciseType": "compound",
      "muscleGroups": ["back"],
      "equipment": ["barbell"],
      "sets": [{"setNumber": 1, "target": {"type": "reps", "value": 8, "unit": "reps"}, "restAfterSet": 90}],
      "supersetWith": ["` + exerciseAID + `"]
    }],
    "restBetweenSets": 0,
    "restBetweenBlocks": 120
  }]
}`

// hiitSession has 40s of timed work against 320s of configured rest.
const hiitSession = `{
  "sessionId": "` + sessionID + `",
  "startTime": "2024-03-03T06:00:00Z",
  "workoutBlocks": [{
    "blockId": "` + blockID + `",
    "blockType": "hiit",
    "exercises": [{
      "exerciseId": "` + exerciseAID + `",
      "exerciseName": "Burpees",
      "exerciseType": "bodyweight",
      "muscleGroups": ["full body"],
      "equipment": [],
      "sets": [
        {"setNumber": 1, "target": {"type": "time", "value": 20, "unit": "seconds"}, "restAfterSet": 10},
        {"setNumber": 2, "target": {"type": "time", "value": 20, "unit": "seconds"}, "restAfterSet": 10}
      ]
    }],
    "restBetweenSets": 20,
    "restBetweenBlocks": 300
  }]
}`

// fullSession exercises every optional field.
const fullSession = `{
  "sessionId": "` + sessionID + `",
  "startTime": "2024-03-01T07:30:00Z",
  "endTime": "2024-03-01T08:45:00+01:00",
  "workoutBlocks": [{
    "blockId": "` + blockID + `",
    "blockType": "strength",
    "exercises": [{
      "exerciseId": "` + exerciseAID + `",
      "exerciseName": "Deadlift",
      "exerciseType": "compound",
      "muscleGroups": ["hamstrings", "back"],
      "equipment": [],
      "sets": [{
        "setNumber": 1,
        "target": {"type": "percentage", "value": 80, "unit": "%", "percentageOf1RM": 80},
        "actual": {"weight": 180, "reps": 5, "time": 30, "distance": 0, "RPE": 8.5},
        "restAfterSet": 240,
        "notes": "felt heavy"
      }],
      "linkedToWorkout": "` + otherID + `",
      "notes": "mixed grip"
    }],
    "restBetweenSets": 240,
    "restBetweenBlocks": 0,
    "notes": "main lift"
  }],
  "metadata": {"notes": "good day", "mood": 7, "energy": 6, "tags": ["pull", "heavy"]},
  "goals": [{
    "goalId": "` + goalID + `",
    "exerciseId": "` + exerciseAID + `",
    "goalType": "weight",
    "targetValue": 200,
    "targetUnit": "kg",
    "targetDate": "2024-06-01T00:00:00Z",
    "currentProgress": 180,
    "notes": "summer"
  }]
}`

func decode(t *testing.T, doc string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return v
}

// dig walks a decoded document by object keys and array indexes.
func dig(t *testing.T, v any, keys ...any) map[string]any {
	t.Helper()
	for _, k := range keys {
		switch k := k.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				t.Fatalf("dig %q: not an object", k)
			}
			v = m[k]
		case int:
			a, ok := v.([]any)
			if !ok || k >= len(a) {
				t.Fatalf("dig %d: not an array or out of range", k)
			}
			v = a[k]
		}
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("dig %v: target is not an object", keys)
	}
	return m
}

func firstSet(t *testing.T, doc any) map[string]any {
	return dig(t, doc, "workoutBlocks", 0, "exercises", 0, "sets", 0)
}
