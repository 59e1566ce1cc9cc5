package golf

import "github.com/shopspring/decimal"

var eighteen = decimal.NewFromInt(18)

// Allocation converts an effective playing handicap into the number of
// handicap strokes for a round. Handicaps scale down for 9-hole rounds:
// allocation = round(handicap * holesInRound / 18). Negative (plus)
// handicaps allocate zero strokes.
func Allocation(effectiveHandicap decimal.Decimal, holesInRound int) int {
	alloc := effectiveHandicap.
		Mul(decimal.NewFromInt(int64(holesInRound))).
		Div(eighteen).
		Round(0).
		IntPart()
	if alloc < 0 {
		return 0
	}
	return int(alloc)
}

// StrokesReceived returns the handicap strokes a hole receives, given its
// stroke index. Every hole gets allocation/holesInRound guaranteed strokes;
// the remainder goes one each to the hardest holes, stroke index 1 first,
// wrapping around when the allocation exceeds the hole count.
//
// Pure and deterministic: verifiable against hand-computed tables.
func StrokesReceived(effectiveHandicap decimal.Decimal, strokeIndex, holesInRound int) int {
	if holesInRound <= 0 {
		return 0
	}
	alloc := Allocation(effectiveHandicap, holesInRound)
	strokes := alloc / holesInRound
	if strokeIndex <= alloc%holesInRound {
		strokes++
	}
	return strokes
}
