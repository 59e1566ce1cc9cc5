package golf

import (
	"fmt"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// ValidateHoles checks the course invariants: hole numbers unique in
// 1..len, par within 3..6, and stroke indexes forming an exact permutation
// of 1..len.
func ValidateHoles(holes []models.CourseHole) error {
	n := len(holes)
	if n == 0 {
		return fmt.Errorf("course has no holes")
	}

	seenHole := make(map[int]bool, n)
	seenIndex := make(map[int]bool, n)
	for _, h := range holes {
		if h.HoleNumber < 1 || h.HoleNumber > n {
			return fmt.Errorf("hole number %d out of range 1..%d", h.HoleNumber, n)
		}
		if seenHole[h.HoleNumber] {
			return fmt.Errorf("duplicate hole number %d", h.HoleNumber)
		}
		seenHole[h.HoleNumber] = true

		if h.Par < 3 || h.Par > 6 {
			return fmt.Errorf("hole %d: par %d out of range 3..6", h.HoleNumber, h.Par)
		}

		if h.StrokeIndex < 1 || h.StrokeIndex > n {
			return fmt.Errorf("hole %d: stroke index %d out of range 1..%d", h.HoleNumber, h.StrokeIndex, n)
		}
		if seenIndex[h.StrokeIndex] {
			return fmt.Errorf("duplicate stroke index %d", h.StrokeIndex)
		}
		seenIndex[h.StrokeIndex] = true
	}

	return nil
}

// HoleByNumber returns the hole with the given number, or false.
func HoleByNumber(holes []models.CourseHole, holeNumber int) (models.CourseHole, bool) {
	for _, h := range holes {
		if h.HoleNumber == holeNumber {
			return h, true
		}
	}
	return models.CourseHole{}, false
}

// teamPalette is the fixed colour cycle for team display. Colours are
// derived from the team's position in the tournament team list, never
// stored.
var teamPalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8",
	"#f58231", "#911eb4", "#46f0f0", "#f032e6",
}

// TeamColour returns the display colour for the team at the given position
// in the tournament's ordered team list.
func TeamColour(position int) string {
	if position < 0 {
		position = 0
	}
	return teamPalette[position%len(teamPalette)]
}
