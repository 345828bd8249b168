package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

// TestStrengthSessionValid verifies the baseline strength session passes and
// the validated data carries the typed values.
func TestStrengthSessionValid(t *testing.T) {
	res := ValidateWorkoutSchema(decode(t, strengthSession))
	if !res.IsValid {
		t.Fatalf("IsValid = false, errors = %v", res.Errors)
	}
	if res.Errors != nil {
		t.Errorf("Errors = %v, want nil", res.Errors)
	}
	s := res.ValidatedData
	if s == nil {
		t.Fatal("ValidatedData is nil")
	}
	if s.SessionID != sessionID {
		t.Errorf("SessionID = %q, want %q", s.SessionID, sessionID)
	}
	if !s.StartTime.Equal(time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)) {
		t.Errorf("StartTime = %v", s.StartTime)
	}
	set := s.WorkoutBlocks[0].Exercises[0].Sets[0]
	if set.Target.Type != models.TargetWeight || set.Target.Value != 135 || set.Target.Unit != "lbs" {
		t.Errorf("target = %+v", set.Target)
	}
	if set.RestAfterSet != 180 {
		t.Errorf("RestAfterSet = %v, want 180", set.RestAfterSet)
	}
}

// TestRestAfterSetTooLarge verifies an out of range rest is reported at its
// full dotted path.
func TestRestAfterSetTooLarge(t *testing.T) {
	doc := decode(t, strengthSession)
	firstSet(t, doc)["restAfterSet"] = 4000.0

	res := ValidateWorkoutSchema(doc)
	if res.IsValid {
		t.Fatal("IsValid = true, want false")
	}
	want := []string{"workoutBlocks.0.exercises.0.sets.0.restAfterSet: must be <= 3600"}
	if !reflect.DeepEqual(res.Errors, want) {
		t.Errorf("Errors = %q, want %q", res.Errors, want)
	}
	if res.ValidatedData != nil {
		t.Error("ValidatedData should be nil on failure")
	}
}

// TestEmptyWorkoutBlocks verifies the cardinality rule on workoutBlocks.
func TestEmptyWorkoutBlocks(t *testing.T) {
	doc := decode(t, strengthSession)
	doc.(map[string]any)["workoutBlocks"] = []any{}

	res := ValidateWorkoutSchema(doc)
	want := []string{"workoutBlocks: must contain at least 1 element(s)"}
	if res.IsValid || !reflect.DeepEqual(res.Errors, want) {
		t.Errorf("got %+v, want errors %q", res, want)
	}
}

// TestFieldViolations covers one violation per constrained field.
func TestFieldViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, doc any)
		want   string
	}{
		{
			name:   "missing sessionId",
			mutate: func(t *testing.T, doc any) { delete(doc.(map[string]any), "sessionId") },
			want:   "sessionId: Required",
		},
		{
			name:   "malformed sessionId",
			mutate: func(t *testing.T, doc any) { doc.(map[string]any)["sessionId"] = "not-a-uuid" },
			want:   "sessionId: Invalid uuid",
		},
		{
			name:   "braced uuid is not canonical",
			mutate: func(t *testing.T, doc any) { doc.(map[string]any)["sessionId"] = "{" + sessionID + "}" },
			want:   "sessionId: Invalid uuid",
		},
		{
			name:   "bad startTime",
			mutate: func(t *testing.T, doc any) { doc.(map[string]any)["startTime"] = "yesterday" },
			want:   "startTime: Invalid datetime",
		},
		{
			name:   "endTime wrong type",
			mutate: func(t *testing.T, doc any) { doc.(map[string]any)["endTime"] = 12.0 },
			want:   "endTime: Expected string, received number",
		},
		{
			name:   "workoutBlocks not an array",
			mutate: func(t *testing.T, doc any) { doc.(map[string]any)["workoutBlocks"] = map[string]any{} },
			want:   "workoutBlocks: Expected array, received object",
		},
		{
			name: "unknown blockType",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0)["blockType"] = "yoga"
			},
			want: "workoutBlocks.0.blockType: Invalid enum value. Expected 'strength' | 'cardio' | 'hiit' | 'superset' | 'circuit', received 'yoga'",
		},
		{
			name: "negative restBetweenSets",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0)["restBetweenSets"] = -1.0
			},
			want: "workoutBlocks.0.restBetweenSets: must be >= 0",
		},
		{
			name: "restBetweenBlocks over an hour",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0)["restBetweenBlocks"] = 3600.5
			},
			want: "workoutBlocks.0.restBetweenBlocks: must be <= 3600",
		},
		{
			name: "empty exercises",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0)["exercises"] = []any{}
			},
			want: "workoutBlocks.0.exercises: must contain at least 1 element(s)",
		},
		{
			name: "empty exerciseName",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0)["exerciseName"] = ""
			},
			want: "workoutBlocks.0.exercises.0.exerciseName: must contain at least 1 character(s)",
		},
		{
			name: "exerciseType not a string",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0)["exerciseType"] = true
			},
			want: "workoutBlocks.0.exercises.0.exerciseType: Expected 'compound' | 'isolation' | 'cardio' | 'bodyweight', received boolean",
		},
		{
			name: "empty muscleGroups",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0)["muscleGroups"] = []any{}
			},
			want: "workoutBlocks.0.exercises.0.muscleGroups: must contain at least 1 element(s)",
		},
		{
			name: "equipment element not a string",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0)["equipment"] = []any{3.0}
			},
			want: "workoutBlocks.0.exercises.0.equipment.0: Expected string, received number",
		},
		{
			name: "missing equipment",
			mutate: func(t *testing.T, doc any) {
				delete(dig(t, doc, "workoutBlocks", 0, "exercises", 0), "equipment")
			},
			want: "workoutBlocks.0.exercises.0.equipment: Required",
		},
		{
			name: "empty sets",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0)["sets"] = []any{}
			},
			want: "workoutBlocks.0.exercises.0.sets: must contain at least 1 element(s)",
		},
		{
			name: "malformed supersetWith entry",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0)["supersetWith"] = []any{"abc"}
			},
			want: "workoutBlocks.0.exercises.0.supersetWith.0: Invalid uuid",
		},
		{
			name: "malformed linkedToWorkout",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0)["linkedToWorkout"] = "workout-42"
			},
			want: "workoutBlocks.0.exercises.0.linkedToWorkout: Invalid uuid",
		},
		{
			name:   "zero setNumber",
			mutate: func(t *testing.T, doc any) { firstSet(t, doc)["setNumber"] = 0.0 },
			want:   "workoutBlocks.0.exercises.0.sets.0.setNumber: must be > 0",
		},
		{
			name:   "fractional setNumber",
			mutate: func(t *testing.T, doc any) { firstSet(t, doc)["setNumber"] = 1.5 },
			want:   "workoutBlocks.0.exercises.0.sets.0.setNumber: Expected integer, received float",
		},
		{
			name:   "setNumber beyond safe integer range",
			mutate: func(t *testing.T, doc any) { firstSet(t, doc)["setNumber"] = 1e20 },
			want:   "workoutBlocks.0.exercises.0.sets.0.setNumber: must be <= 9007199254740991",
		},
		{
			name:   "energy below safe integer range",
			mutate: func(t *testing.T, doc any) { doc.(map[string]any)["metadata"] = map[string]any{"energy": -1e17} },
			want:   "metadata.energy: must be >= -9007199254740991",
		},
		{
			name:   "negative fractional setNumber reports first failure only",
			mutate: func(t *testing.T, doc any) { firstSet(t, doc)["setNumber"] = -1.5 },
			want:   "workoutBlocks.0.exercises.0.sets.0.setNumber: Expected integer, received float",
		},
		{
			name:   "restAfterSet as string",
			mutate: func(t *testing.T, doc any) { firstSet(t, doc)["restAfterSet"] = "180" },
			want:   "workoutBlocks.0.exercises.0.sets.0.restAfterSet: Expected number, received string",
		},
		{
			name:   "missing target",
			mutate: func(t *testing.T, doc any) { delete(firstSet(t, doc), "target") },
			want:   "workoutBlocks.0.exercises.0.sets.0.target: Required",
		},
		{
			name: "unknown target type",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0, "sets", 0, "target")["type"] = "volume"
			},
			want: "workoutBlocks.0.exercises.0.sets.0.target.type: Invalid enum value. Expected 'weight' | 'time' | 'reps' | 'distance' | 'percentage', received 'volume'",
		},
		{
			name: "zero target value",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0, "sets", 0, "target")["value"] = 0.0
			},
			want: "workoutBlocks.0.exercises.0.sets.0.target.value: must be > 0",
		},
		{
			name: "empty target unit",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0, "sets", 0, "target")["unit"] = ""
			},
			want: "workoutBlocks.0.exercises.0.sets.0.target.unit: must contain at least 1 character(s)",
		},
		{
			name: "percentageOf1RM over 100",
			mutate: func(t *testing.T, doc any) {
				dig(t, doc, "workoutBlocks", 0, "exercises", 0, "sets", 0, "target")["percentageOf1RM"] = 101.0
			},
			want: "workoutBlocks.0.exercises.0.sets.0.target.percentageOf1RM: must be <= 100",
		},
		{
			name:   "RPE below scale",
			mutate: func(t *testing.T, doc any) { firstSet(t, doc)["actual"] = map[string]any{"RPE": 0.0} },
			want:   "workoutBlocks.0.exercises.0.sets.0.actual.RPE: must be >= 1",
		},
		{
			name:   "negative actual weight",
			mutate: func(t *testing.T, doc any) { firstSet(t, doc)["actual"] = map[string]any{"weight": -5.0} },
			want:   "workoutBlocks.0.exercises.0.sets.0.actual.weight: must be >= 0",
		},
		{
			name:   "metadata null",
			mutate: func(t *testing.T, doc any) { doc.(map[string]any)["metadata"] = nil },
			want:   "metadata: Expected object, received null",
		},
		{
			name: "mood above scale",
			mutate: func(t *testing.T, doc any) {
				doc.(map[string]any)["metadata"] = map[string]any{"mood": 11.0}
			},
			want: "metadata.mood: must be <= 10",
		},
		{
			name: "fractional energy",
			mutate: func(t *testing.T, doc any) {
				doc.(map[string]any)["metadata"] = map[string]any{"energy": 5.5}
			},
			want: "metadata.energy: Expected integer, received float",
		},
		{
			name: "goal with negative progress",
			mutate: func(t *testing.T, doc any) {
				doc.(map[string]any)["goals"] = []any{map[string]any{
					"goalId":          goalID,
					"exerciseId":      exerciseAID,
					"goalType":        "reps",
					"targetValue":     10.0,
					"targetUnit":      "reps",
					"targetDate":      "2024-05-01T00:00:00Z",
					"currentProgress": -1.0,
				}}
			},
			want: "goals.0.currentProgress: must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, strengthSession)
			tt.mutate(t, doc)

			res := ValidateWorkoutSchema(doc)
			if res.IsValid {
				t.Fatal("IsValid = true, want false")
			}
			if len(res.Errors) != 1 || res.Errors[0] != tt.want {
				t.Errorf("Errors = %q, want [%q]", res.Errors, tt.want)
			}
		})
	}
}

// TestErrorOrder verifies errors follow field declaration order, then
// document order, regardless of map iteration.
func TestErrorOrder(t *testing.T) {
	doc := decode(t, strengthSession)
	m := doc.(map[string]any)
	m["startTime"] = "later"
	delete(m, "sessionId")
	firstSet(t, doc)["restAfterSet"] = -1.0
	dig(t, doc, "workoutBlocks", 0)["restBetweenBlocks"] = 9000.0
	m["metadata"] = map[string]any{"tags": []any{"ok", 1.0, false}}

	want := []string{
		"sessionId: Required",
		"startTime: Invalid datetime",
		"workoutBlocks.0.exercises.0.sets.0.restAfterSet: must be >= 0",
		"workoutBlocks.0.restBetweenBlocks: must be <= 3600",
		"metadata.tags.1: Expected string, received number",
		"metadata.tags.2: Expected string, received boolean",
	}
	for i := 0; i < 5; i++ {
		res := ValidateWorkoutSchema(doc)
		if !reflect.DeepEqual(res.Errors, want) {
			t.Fatalf("run %d: Errors = %q, want %q", i, res.Errors, want)
		}
	}
}

// TestNonObjectRoot verifies a non-object input fails at the empty root path.
func TestNonObjectRoot(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{"hello", ": Expected object, received string"},
		{nil, ": Expected object, received null"},
		{[]any{}, ": Expected object, received array"},
		{42, ": Expected object, received number"},
	}
	for _, tt := range tests {
		res := ValidateWorkoutSchema(tt.input)
		if res.IsValid || len(res.Errors) != 1 || res.Errors[0] != tt.want {
			t.Errorf("ValidateWorkoutSchema(%v) = %+v, want [%q]", tt.input, res, tt.want)
		}
	}
}

// TestInputForms verifies raw JSON bytes and typed Go values validate the
// same way as a decoded document.
func TestInputForms(t *testing.T) {
	if res := ValidateWorkoutSchema([]byte(strengthSession)); !res.IsValid {
		t.Errorf("[]byte: errors = %v", res.Errors)
	}
	if res := ValidateWorkoutSchema(json.RawMessage(strengthSession)); !res.IsValid {
		t.Errorf("json.RawMessage: errors = %v", res.Errors)
	}

	parsed, err := Parse(decode(t, fullSession))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res := ValidateWorkoutSchema(parsed); !res.IsValid {
		t.Errorf("typed session: errors = %v", res.Errors)
	}
}

// TestUnknownFault verifies that input the engine cannot process collapses
// to the single generic message.
func TestUnknownFault(t *testing.T) {
	res := ValidateWorkoutSchema(make(chan int))
	want := []string{MsgUnknown}
	if res.IsValid || !reflect.DeepEqual(res.Errors, want) {
		t.Errorf("got %+v, want errors %q", res, want)
	}

	if _, err := Parse([]byte("{not json")); !errors.Is(err, ErrUnknown) {
		t.Errorf("Parse(invalid bytes) error = %v, want ErrUnknown", err)
	}
}

// TestParseSchemaError verifies Parse exposes issues with their kind and path.
func TestParseSchemaError(t *testing.T) {
	doc := decode(t, strengthSession)
	firstSet(t, doc)["restAfterSet"] = 4000.0

	_, err := Parse(doc)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if len(se.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(se.Issues))
	}
	is := se.Issues[0]
	if is.Kind != Structural {
		t.Errorf("Kind = %v, want structural", is.Kind)
	}
	if is.Path != "workoutBlocks.0.exercises.0.sets.0.restAfterSet" {
		t.Errorf("Path = %q", is.Path)
	}
	if is.Message != "must be <= 3600" {
		t.Errorf("Message = %q", is.Message)
	}
}

// TestRoundTrip verifies validated data re-encodes to the same document:
// nothing dropped, nothing invented.
func TestRoundTrip(t *testing.T) {
	for name, doc := range map[string]string{
		"strength": strengthSession,
		"superset": supersetSession,
		"hiit":     hiitSession,
		"full":     fullSession,
	} {
		t.Run(name, func(t *testing.T) {
			in := decode(t, doc)
			res := ValidateWorkoutSchema(in)
			if !res.IsValid {
				t.Fatalf("errors = %v", res.Errors)
			}
			data, err := json.Marshal(res.ValidatedData)
			if err != nil {
				t.Fatal(err)
			}
			out := decode(t, string(data))
			if !reflect.DeepEqual(in, out) {
				t.Errorf("round trip mismatch:\n in = %v\nout = %v", in, out)
			}
		})
	}
}

// TestRoundTripLargeSetNumber verifies the largest exact integer is kept as is.
func TestRoundTripLargeSetNumber(t *testing.T) {
	in := decode(t, strengthSession)
	firstSet(t, in)["setNumber"] = float64(maxSafeInteger)

	res := ValidateWorkoutSchema(in)
	if !res.IsValid {
		t.Fatalf("errors = %v", res.Errors)
	}
	data, err := json.Marshal(res.ValidatedData)
	if err != nil {
		t.Fatal(err)
	}
	out := decode(t, string(data))
	if got := firstSet(t, out)["setNumber"]; got != float64(maxSafeInteger) {
		t.Errorf("setNumber = %v, want %v", got, float64(maxSafeInteger))
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in = %v\nout = %v", in, out)
	}
}

// TestUnknownFieldsStripped verifies undeclared keys are accepted and
// dropped from the validated data.
func TestUnknownFieldsStripped(t *testing.T) {
	doc := decode(t, strengthSession)
	doc.(map[string]any)["userAgent"] = "ios"

	res := ValidateWorkoutSchema(doc)
	if !res.IsValid {
		t.Fatalf("errors = %v", res.Errors)
	}
	data, _ := json.Marshal(res.ValidatedData)
	if _, ok := decode(t, string(data)).(map[string]any)["userAgent"]; ok {
		t.Error("unknown field should not be carried into validated data")
	}
}
