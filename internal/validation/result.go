package validation

import (
	"errors"

	"github.com/meltforce/liftlog/internal/models"
)

// Result is the outcome of one validator. Errors is set only when IsValid
// is false; ValidatedData only on a successful schema validation.
type Result struct {
	IsValid       bool                   `json:"isValid"`
	Errors        []string               `json:"errors,omitempty"`
	ValidatedData *models.WorkoutSession `json:"validatedData,omitempty"`
}

func fromIssues(issues []Issue) Result {
	if len(issues) == 0 {
		return Result{IsValid: true}
	}
	return Result{IsValid: false, Errors: messages(issues)}
}

// schemaResult converts a Parse outcome into a Result.
func schemaResult(s *models.WorkoutSession, err error) Result {
	if err == nil {
		return Result{IsValid: true, ValidatedData: s}
	}
	var se *SchemaError
	if errors.As(err, &se) && len(se.Issues) > 0 {
		return Result{IsValid: false, Errors: se.Messages()}
	}
	return Result{IsValid: false, Errors: []string{MsgUnknown}}
}

func invalidStructure() Result {
	return Result{IsValid: false, Errors: []string{MsgInvalidStructure}}
}

// ValidateWorkoutSchema checks input against the workout session schema.
func ValidateWorkoutSchema(input any) Result {
	return schemaResult(Parse(input))
}

// ValidateExerciseLinking checks superset references and linked workout
// IDs. Any schema violation yields the single MsgInvalidStructure error.
func ValidateExerciseLinking(input any) Result {
	s, err := Parse(input)
	if err != nil {
		return invalidStructure()
	}
	return fromIssues(checkLinking(s))
}

// ValidateHIITIntervals checks the work/rest ratio of every HIIT block.
// Any schema violation yields the single MsgInvalidStructure error.
func ValidateHIITIntervals(input any) Result {
	s, err := Parse(input)
	if err != nil {
		return invalidStructure()
	}
	return fromIssues(checkHIIT(s))
}

// Report holds the results of all three validators for one document.
type Report struct {
	Schema  Result `json:"schema"`
	Linking Result `json:"linking"`
	HIIT    Result `json:"hiit"`
}

// Valid reports whether every validator passed.
func (r Report) Valid() bool {
	return r.Schema.IsValid && r.Linking.IsValid && r.HIIT.IsValid
}

// Session returns the validated session, or nil if the schema check failed.
func (r Report) Session() *models.WorkoutSession {
	return r.Schema.ValidatedData
}

// ValidateAll runs every validator over input, parsing it once. Each result
// is identical to calling the corresponding Validate function directly.
func ValidateAll(input any) Report {
	s, err := Parse(input)
	if err != nil {
		return Report{
			Schema:  schemaResult(nil, err),
			Linking: invalidStructure(),
			HIIT:    invalidStructure(),
		}
	}
	return Report{
		Schema:  schemaResult(s, nil),
		Linking: fromIssues(checkLinking(s)),
		HIIT:    fromIssues(checkHIIT(s)),
	}
}
