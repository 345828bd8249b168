package validation

import (
	"fmt"
	"math/big"

	"github.com/meltforce/liftlog/internal/models"
)

// Accepted bounds for a HIIT block's work/rest ratio.
const (
	MinHIITRatio = 0.1
	MaxHIITRatio = 10.0
)

// BlockIntervals is the work and rest time of one HIIT block, in seconds.
type BlockIntervals struct {
	WorkTime float64
	RestTime float64
}

// Ratio returns work/rest and false when either side is zero.
func (b BlockIntervals) Ratio() (float64, bool) {
	if b.WorkTime <= 0 || b.RestTime <= 0 {
		return 0, false
	}
	return b.WorkTime / b.RestTime, true
}

// Intervals sums the time-denominated set targets of a block as work, and
// takes the block's configured rest between sets and blocks as rest.
// Targets of any other type contribute no work time.
func Intervals(b models.WorkoutBlock) BlockIntervals {
	var work float64
	for _, e := range b.Exercises {
		for _, s := range e.Sets {
			if s.Target.Type == models.TargetTime {
				work += s.Target.Value
			}
		}
	}
	return BlockIntervals{WorkTime: work, RestTime: b.RestBetweenSets + b.RestBetweenBlocks}
}

// checkHIIT flags HIIT blocks whose work/rest ratio falls outside
// [MinHIITRatio, MaxHIITRatio]. Blocks with no work or no rest are skipped.
func checkHIIT(s *models.WorkoutSession) []Issue {
	var issues []Issue
	for _, b := range s.WorkoutBlocks {
		if b.BlockType != models.BlockHIIT {
			continue
		}
		ratio, ok := Intervals(b).Ratio()
		if !ok {
			continue
		}
		if ratio < MinHIITRatio || ratio > MaxHIITRatio {
			issues = append(issues, Issue{
				Kind:    Semantic,
				Message: fmt.Sprintf("HIIT block %s has extreme work/rest ratio: %s", b.BlockID, formatRatio(ratio)),
			})
		}
	}
	return issues
}

// formatRatio renders a non-negative ratio with two decimals, rounding exact
// halves up. %.2f alone would round 10.125 to 10.12.
func formatRatio(r float64) string {
	hundredths := new(big.Float).SetPrec(128).SetFloat64(r)
	hundredths.Mul(hundredths, big.NewFloat(100))

	whole, _ := hundredths.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(hundredths, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return fmt.Sprintf("%.2f", r)
	}

	whole.Add(whole, big.NewInt(1))
	q, m := new(big.Int).QuoRem(whole, big.NewInt(100), new(big.Int))
	return fmt.Sprintf("%s.%02d", q, m.Int64())
}
