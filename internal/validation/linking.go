package validation

import (
	"fmt"

	"github.com/meltforce/liftlog/internal/models"
)

// checkLinking verifies that every superset reference names another
// exercise in the same block and that linked workout IDs are UUIDs.
// Whether a linked workout exists is up to the caller.
func checkLinking(s *models.WorkoutSession) []Issue {
	var issues []Issue
	for _, b := range s.WorkoutBlocks {
		for i, e := range b.Exercises {
			for _, ref := range e.SupersetWith {
				if !hasSibling(b.Exercises, i, ref) {
					issues = append(issues, Issue{
						Kind:    Referential,
						Message: fmt.Sprintf("Superset reference %s not found in block %s", ref, b.BlockID),
					})
				}
			}
			if e.LinkedToWorkout != nil && !IsUUID(*e.LinkedToWorkout) {
				issues = append(issues, Issue{
					Kind:    Referential,
					Message: "Invalid linked workout UUID: " + *e.LinkedToWorkout,
				})
			}
		}
	}
	return issues
}

// hasSibling reports whether an exercise other than exercises[self] has id.
func hasSibling(exercises []models.Exercise, self int, id string) bool {
	for j, other := range exercises {
		if j != self && other.ExerciseID == id {
			return true
		}
	}
	return false
}
