package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
)

func TestStepperSaturatesAtBounds(t *testing.T) {
	s := NewStepper()
	assert.Equal(t, 1, s.Back(), "back at step 1 is a no-op")

	for i := 0; i < 20; i++ {
		s.Next()
	}
	assert.Equal(t, TotalSteps, s.Current())
	assert.Equal(t, TotalSteps, s.Next(), "next at step 9 is a no-op")

	assert.Equal(t, TotalSteps-1, s.Back())
}

func TestStepperJumpTo(t *testing.T) {
	s := NewStepper()
	require.NoError(t, s.JumpTo(StepTopRanking))
	assert.Equal(t, StepTopRanking, s.Current())

	for _, bad := range []int{0, -1, TotalSteps + 1} {
		err := s.JumpTo(bad)
		assert.ErrorIs(t, err, appErrors.ErrInvalidStep)
		assert.Equal(t, StepTopRanking, s.Current())
	}

	s.Reset()
	assert.Equal(t, StepGeneral, s.Current())
}

func TestStepName(t *testing.T) {
	assert.Equal(t, "general", StepName(StepGeneral))
	assert.Equal(t, "checkout", StepName(StepCheckout))
	assert.Equal(t, "", StepName(42))
}
