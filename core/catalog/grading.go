package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrScoreOutOfRange = errors.New("score is outside the grading scale range")
	// ErrScaleInconsistency flags a scale whose ranges do not partition
	// [0, maxScore]: a data-integrity fault, never patched silently.
	ErrScaleInconsistency = errors.New("grading scale ranges do not partition the score range")
)

type GradeResult struct {
	Grade  string       `json:"grade"`
	GPA    null.Float64 `json:"gpa,omitempty"`
	Passed bool         `json:"passed"`
}

// Evaluate resolves a score against a grading scale. Exactly one range must
// contain the score; zero or multiple matches mean the scale invariant was
// broken upstream and surface as ErrScaleInconsistency.
func Evaluate(scale GradingScale, score float64) (GradeResult, error) {
	if score < 0 || score > scale.MaxScore {
		return GradeResult{}, ErrScoreOutOfRange
	}

	var (
		matched GradeRange
		matches int
	)
	for _, r := range scale.Ranges {
		if score >= r.Min && score <= r.Max {
			matched = r
			matches++
		}
	}
	if matches != 1 {
		return GradeResult{}, ErrScaleInconsistency
	}

	return GradeResult{
		Grade:  matched.Grade,
		GPA:    matched.GPA,
		Passed: isPassing(scale, matched, score),
	}, nil
}

// ValidateScale checks the partition invariant: inclusive ranges covering
// [0, maxScore] with no overlap and no gap, under the integer boundary
// convention (next.Min = prev.Max + 1).
func ValidateScale(scale GradingScale) error {
	if len(scale.Ranges) == 0 {
		return fmt.Errorf("grading scale %q has no ranges: %w", scale.ID, ErrScaleInconsistency)
	}
	if scale.MaxScore <= 0 {
		return fmt.Errorf("grading scale %q has a non-positive max score: %w", scale.ID, ErrScaleInconsistency)
	}

	ranges := append([]GradeRange(nil), scale.Ranges...)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Min < ranges[j].Min })

	for i, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("grading scale %q range %q is inverted: %w", scale.ID, r.Grade, ErrScaleInconsistency)
		}
		if i == 0 {
			if r.Min != 0 {
				return fmt.Errorf("grading scale %q does not start at 0: %w", scale.ID, ErrScaleInconsistency)
			}
			continue
		}
		prev := ranges[i-1]
		if r.Min <= prev.Max {
			return fmt.Errorf("grading scale %q ranges %q and %q overlap: %w", scale.ID, prev.Grade, r.Grade, ErrScaleInconsistency)
		}
		if r.Min != prev.Max+1 {
			return fmt.Errorf("grading scale %q has a gap between %q and %q: %w", scale.ID, prev.Grade, r.Grade, ErrScaleInconsistency)
		}
	}
	if last := ranges[len(ranges)-1]; last.Max != scale.MaxScore {
		return fmt.Errorf("grading scale %q does not cover up to %v: %w", scale.ID, scale.MaxScore, ErrScaleInconsistency)
	}
	return nil
}

// PassingGrades returns the set of grade symbols at or above the passing
// grade, in rank order (highest band first). Used for letter/descriptive
// scales where the threshold is a symbol, not a number.
func PassingGrades(scale GradingScale) []string {
	ranges := append([]GradeRange(nil), scale.Ranges...)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Min > ranges[j].Min })

	passing := make([]string, 0, len(ranges))
	for _, r := range ranges {
		passing = append(passing, r.Grade)
		if r.Grade == scale.PassingGrade {
			return passing
		}
	}
	// passing grade not found in the scale: nothing passes
	return nil
}

func isPassing(scale GradingScale, matched GradeRange, score float64) bool {
	switch scale.Type {
	case ScaleNumeric, ScalePercentage:
		if threshold, err := strconv.ParseFloat(scale.PassingGrade, 64); err == nil {
			return score >= threshold
		}
		// threshold recorded as a symbol: fall through to set membership
		fallthrough
	default:
		for _, g := range PassingGrades(scale) {
			if g == matched.Grade {
				return true
			}
		}
		return false
	}
}
