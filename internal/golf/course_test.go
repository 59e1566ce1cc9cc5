package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

func nineHoles() []models.CourseHole {
	holes := make([]models.CourseHole, 9)
	for i := range holes {
		holes[i] = models.CourseHole{
			HoleNumber:  i + 1,
			Par:         4,
			StrokeIndex: 9 - i,
		}
	}
	return holes
}

func TestValidateHoles(t *testing.T) {
	t.Run("valid nine", func(t *testing.T) {
		assert.NoError(t, ValidateHoles(nineHoles()))
	})

	t.Run("empty course", func(t *testing.T) {
		assert.Error(t, ValidateHoles(nil))
	})

	t.Run("duplicate hole number", func(t *testing.T) {
		holes := nineHoles()
		holes[1].HoleNumber = 1
		assert.Error(t, ValidateHoles(holes))
	})

	t.Run("duplicate stroke index", func(t *testing.T) {
		holes := nineHoles()
		holes[1].StrokeIndex = holes[0].StrokeIndex
		assert.Error(t, ValidateHoles(holes))
	})

	t.Run("stroke index beyond hole count", func(t *testing.T) {
		holes := nineHoles()
		holes[0].StrokeIndex = 10
		assert.Error(t, ValidateHoles(holes))
	})

	t.Run("par out of range", func(t *testing.T) {
		holes := nineHoles()
		holes[0].Par = 2
		assert.Error(t, ValidateHoles(holes))
	})
}

func TestHoleByNumber(t *testing.T) {
	holes := nineHoles()

	h, ok := HoleByNumber(holes, 3)
	assert.True(t, ok)
	assert.Equal(t, 3, h.HoleNumber)

	_, ok = HoleByNumber(holes, 10)
	assert.False(t, ok)
}

func TestTeamColour(t *testing.T) {
	assert.Equal(t, TeamColour(0), TeamColour(8), "palette wraps")
	assert.NotEqual(t, TeamColour(0), TeamColour(1))
	assert.Equal(t, TeamColour(0), TeamColour(-5), "negative positions pin to first colour")
}
