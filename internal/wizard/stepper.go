package wizard

import (
	"fmt"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
)

const (
	StepGeneral = iota + 1
	StepMiniGame
	StepAddOns
	StepFAQs
	StepBonusLevel
	StepSpecialReward
	StepTopRanking
	StepVideo
	StepCheckout

	TotalSteps = StepCheckout
)

var stepNames = map[int]string{
	StepGeneral:       "general",
	StepMiniGame:      "mini_game",
	StepAddOns:        "add_ons",
	StepFAQs:          "faqs_terms",
	StepBonusLevel:    "bonus_level",
	StepSpecialReward: "special_reward",
	StepTopRanking:    "top_ranking",
	StepVideo:         "video",
	StepCheckout:      "checkout",
}

// StepName returns the slug of a step, or "" when out of range.
func StepName(step int) string {
	return stepNames[step]
}

// Stepper tracks a step index in [1, TotalSteps]. Next and Back saturate at
// the bounds.
type Stepper struct {
	current int
}

func NewStepper() Stepper {
	return Stepper{current: StepGeneral}
}

func (s *Stepper) Current() int {
	if s.current == 0 {
		return StepGeneral
	}
	return s.current
}

func (s *Stepper) Next() int {
	if cur := s.Current(); cur < TotalSteps {
		s.current = cur + 1
	}
	return s.Current()
}

func (s *Stepper) Back() int {
	if cur := s.Current(); cur > StepGeneral {
		s.current = cur - 1
	}
	return s.Current()
}

func (s *Stepper) JumpTo(step int) error {
	if step < StepGeneral || step > TotalSteps {
		return fmt.Errorf("%w: %d", appErrors.ErrInvalidStep, step)
	}
	s.current = step
	return nil
}

func (s *Stepper) Reset() {
	s.current = StepGeneral
}

func itoa(i int) string {
	return fmt.Sprintf("%d", i)
}
