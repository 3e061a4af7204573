// Package grading holds the grade arithmetic: percentages, letters and weighted averages.
package grading

import (
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
)

var ErrInvalidMaxMarks = errors.New("max marks must be greater than zero")

// Assessment is a single graded piece of work.
type Assessment interface {
	SubjectName() string
	Marks() (obtained, max int)
	AssessmentWeight() float64
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percentage returns obtained/max as a whole percentage, halves rounded up.
// Marks above max are allowed and yield more than 100.
func Percentage(obtained, max int) (int, error) {
	if max <= 0 {
		return 0, ErrInvalidMaxMarks
	}
	return round(float64(obtained) / float64(max) * 100), nil
}

// Letter grades
const (
	LetterA     = "A"
	LetterBPlus = "B+"
	LetterB     = "B"
	LetterCPlus = "C+"
	LetterC     = "C"
	LetterF     = "F"
)

var letterBands = []struct {
	min    int
	letter string
}{
	{90, LetterA},
	{80, LetterBPlus},
	{70, LetterB},
	{60, LetterCPlus},
	{50, LetterC},
}

func LetterGrade(pct int) string {
	for _, band := range letterBands {
		if pct >= band.min {
			return band.letter
		}
	}
	return LetterF
}

// LetterFor is LetterGrade(Percentage(obtained, max)).
func LetterFor(obtained, max int) (string, error) {
	pct, err := Percentage(obtained, max)
	if err != nil {
		return "", err
	}
	return LetterGrade(pct), nil
}

// WeightedAverage returns the weight-normalised average percentage of grades.
// It is 0 for an empty set or when the weights sum to zero.
// Assessments with an invalid max are left out entirely.
func WeightedAverage[A Assessment](grades []A) int {
	var sum, totalWeight float64
	for _, g := range grades {
		pct, err := Percentage(g.Marks())
		if err != nil {
			continue
		}
		w := g.AssessmentWeight()
		sum += float64(pct) * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return round(sum / totalWeight)
}

func SubjectAverage[A Assessment](grades []A, subject string) int {
	filtered := make([]A, 0, len(grades))
	for _, g := range grades {
		if g.SubjectName() == subject {
			filtered = append(filtered, g)
		}
	}
	return WeightedAverage(filtered)
}

type SubjectResult struct {
	Subject  core.Subject `json:"subject"`
	Average  int          `json:"average"`
	Letter   string       `json:"letter"`
	Standing string       `json:"standing"`
	Count    int          `json:"count"`
}

// SubjectAverages returns one result per palette subject that has at least one grade,
// in palette order.
func SubjectAverages[A Assessment](grades []A) []SubjectResult {
	counts := make(map[string]int)
	for _, g := range grades {
		counts[g.SubjectName()]++
	}

	results := make([]SubjectResult, 0, len(counts))
	for _, s := range core.Subjects {
		n := counts[s.Name]
		if n == 0 {
			continue
		}
		avg := SubjectAverage(grades, s.Name)
		results = append(results, SubjectResult{
			Subject:  s,
			Average:  avg,
			Letter:   LetterGrade(avg),
			Standing: Standing(avg),
			Count:    n,
		})
	}
	return results
}

// Standing bands
const (
	StandingExcellent = "excellent"
	StandingGood      = "good"
	StandingFair      = "fair"
	StandingWeak      = "weak"
	StandingFailing   = "failing"
)

func Standing(pct int) string {
	switch {
	case pct >= 90:
		return StandingExcellent
	case pct >= 80:
		return StandingGood
	case pct >= 70:
		return StandingFair
	case pct >= 60:
		return StandingWeak
	default:
		return StandingFailing
	}
}
