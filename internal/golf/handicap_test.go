package golf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllocation(t *testing.T) {
	tests := []struct {
		name     string
		handicap string
		holes    int
		want     int
	}{
		{"scratch", "0", 18, 0},
		{"nine handicap full round", "9", 18, 9},
		{"nine handicap nine holes", "9", 9, 5}, // 9*9/18 = 4.5 rounds to 5
		{"eighteen handicap nine holes", "18", 9, 9},
		{"fractional rounds half away", "12.5", 18, 13},
		{"twenty four over eighteen", "24", 18, 24},
		{"plus handicap clamps to zero", "-2", 18, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := decimal.RequireFromString(tt.handicap)
			assert.Equal(t, tt.want, Allocation(h, tt.holes))
		})
	}
}

func TestStrokesReceivedNineHandicap(t *testing.T) {
	// handicap 9 over 18 holes gives one stroke on stroke indexes 1..9
	h := decimal.NewFromInt(9)
	for si := 1; si <= 18; si++ {
		want := 0
		if si <= 9 {
			want = 1
		}
		assert.Equal(t, want, StrokesReceived(h, si, 18), "stroke index %d", si)
	}
}

func TestStrokesReceivedWrapsPastHoleCount(t *testing.T) {
	// handicap 20 over 18 holes: every hole gets one, SI 1 and 2 get two
	h := decimal.NewFromInt(20)
	assert.Equal(t, 2, StrokesReceived(h, 1, 18))
	assert.Equal(t, 2, StrokesReceived(h, 2, 18))
	assert.Equal(t, 1, StrokesReceived(h, 3, 18))
	assert.Equal(t, 1, StrokesReceived(h, 18, 18))
}

func TestStrokesReceivedMonotonicInHandicap(t *testing.T) {
	// a higher handicap never receives fewer strokes on any hole
	for si := 1; si <= 18; si++ {
		prev := 0
		for hc := 0; hc <= 36; hc++ {
			got := StrokesReceived(decimal.NewFromInt(int64(hc)), si, 18)
			assert.GreaterOrEqual(t, got, prev, "handicap %d stroke index %d", hc, si)
			prev = got
		}
	}
}

func TestStrokesReceivedTotalEqualsAllocation(t *testing.T) {
	for hc := 0; hc <= 40; hc++ {
		h := decimal.NewFromInt(int64(hc))
		total := 0
		for si := 1; si <= 18; si++ {
			total += StrokesReceived(h, si, 18)
		}
		assert.Equal(t, Allocation(h, 18), total, "handicap %d", hc)
	}
}

func TestStrokesReceivedZeroHoles(t *testing.T) {
	assert.Equal(t, 0, StrokesReceived(decimal.NewFromInt(9), 1, 0))
}
