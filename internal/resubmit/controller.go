package resubmit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/wizard"
)

const DefaultSubmitDelay = 1500 * time.Millisecond

// SaveFunc receives the edited draft once the simulated submit resolves.
type SaveFunc func(ctx context.Context, campaignID int, draft model.CampaignDraft) error

type Options struct {
	SubmitDelay time.Duration
	OnSave      SaveFunc
}

// Controller edits a rejected campaign. It is a wizard seeded from the
// campaign plus the field errors read out of the rejection detail.
type Controller struct {
	mu sync.Mutex

	id         string
	campaign   model.Campaign
	draft      model.CampaignDraft
	step       wizard.Stepper
	errors     []model.FieldError
	submitting bool
	closed     bool

	delay  time.Duration
	onSave SaveFunc

	ctx    context.Context
	cancel context.CancelFunc
}

func New(c model.Campaign, opts Options) *Controller {
	delay := opts.SubmitDelay
	if delay <= 0 {
		delay = DefaultSubmitDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Controller{
		id:     uuid.NewString(),
		step:   wizard.NewStepper(),
		delay:  delay,
		onSave: opts.OnSave,
		ctx:    ctx,
		cancel: cancel,
	}
	r.load(c)
	return r
}

func (r *Controller) ID() string { return r.id }

// SetCampaign swaps the edited campaign, re-deriving errors and the step.
func (r *Controller) SetCampaign(c model.Campaign) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.load(c)
}

func (r *Controller) load(c model.Campaign) {
	r.campaign = c
	r.draft = draftFrom(c)
	r.errors = ParseRejection(c.RejectionDetail)
	r.step.Reset()
	if len(r.errors) > 0 {
		first := r.errors[0].Step
		for _, e := range r.errors[1:] {
			if e.Step < first {
				first = e.Step
			}
		}
		// ParseRejection only emits steps in range.
		_ = r.step.JumpTo(first)
	}
}

func draftFrom(c model.Campaign) model.CampaignDraft {
	if c.Draft != nil {
		return c.Draft.Clone()
	}
	return model.CampaignDraft{
		Title:     c.Title,
		Author:    c.Author,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}
}

type Snapshot struct {
	ID              string              `json:"id"`
	CampaignID      int                 `json:"campaign_id"`
	CurrentStep     int                 `json:"current_step"`
	StepName        string              `json:"step_name"`
	Draft           model.CampaignDraft `json:"draft"`
	Errors          []model.FieldError  `json:"errors"`
	StepsWithErrors []int               `json:"steps_with_errors"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	Submitting      bool                `json:"submitting"`
	Closed          bool                `json:"closed"`
}

func (r *Controller) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.step.Current()
	return Snapshot{
		ID:              r.id,
		CampaignID:      r.campaign.ID,
		CurrentStep:     cur,
		StepName:        wizard.StepName(cur),
		Draft:           r.draft.Clone(),
		Errors:          append([]model.FieldError{}, r.errors...),
		StepsWithErrors: r.stepsWithErrorsLocked(),
		RejectionReason: r.campaign.RejectionReason,
		Submitting:      r.submitting,
		Closed:          r.closed,
	}
}

func (r *Controller) Errors() []model.FieldError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.FieldError{}, r.errors...)
}

func (r *Controller) CurrentStep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step.Current()
}

func (r *Controller) Draft() model.CampaignDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft.Clone()
}

func (r *Controller) HasErrorInField(field string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// FieldErrorMessage returns the first message flagged for field.
func (r *Controller) FieldErrorMessage(field string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (r *Controller) HasErrorsInStep(step int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.errors {
		if e.Step == step {
			return true
		}
	}
	return false
}

// StepsWithErrors returns each flagged step once, ascending.
func (r *Controller) StepsWithErrors() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stepsWithErrorsLocked()
}

func (r *Controller) stepsWithErrorsLocked() []int {
	seen := map[int]bool{}
	steps := []int{}
	for _, e := range r.errors {
		if !seen[e.Step] {
			seen[e.Step] = true
			steps = append(steps, e.Step)
		}
	}
	sort.Ints(steps)
	return steps
}

func (r *Controller) editableLocked() error {
	if r.closed {
		return appErrors.ErrWizardClosed
	}
	if r.submitting {
		return appErrors.ErrPaymentInProgress
	}
	return nil
}

func (r *Controller) move(fn func(*wizard.Stepper) error) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.editableLocked(); err != nil {
		return r.step.Current(), err
	}
	err := fn(&r.step)
	return r.step.Current(), err
}

func (r *Controller) Next() (int, error) {
	return r.move(func(s *wizard.Stepper) error { s.Next(); return nil })
}

func (r *Controller) Back() (int, error) {
	return r.move(func(s *wizard.Stepper) error { s.Back(); return nil })
}

// JumpTo backs the breadcrumb that links straight to a flagged step.
func (r *Controller) JumpTo(step int) (int, error) {
	return r.move(func(s *wizard.Stepper) error { return s.JumpTo(step) })
}

func (r *Controller) UpdateDraft(p wizard.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.editableLocked(); err != nil {
		return err
	}
	merged, err := wizard.ApplyPatch(r.draft, p)
	if err != nil {
		return err
	}
	r.draft = merged
	return nil
}

func (r *Controller) SetReward(block wizard.RewardBlock, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.editableLocked(); err != nil {
		return err
	}
	return wizard.SetReward(&r.draft, block, enabled)
}

// Submit waits out the simulated network delay and then hands the complete
// edited draft to the save callback. Flagged errors never block it.
func (r *Controller) Submit(ctx context.Context) (model.CampaignDraft, error) {
	r.mu.Lock()
	if err := r.editableLocked(); err != nil {
		r.mu.Unlock()
		return model.CampaignDraft{}, err
	}
	r.submitting = true
	life := r.ctx
	delay := r.delay
	r.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-life.Done():
		return model.CampaignDraft{}, appErrors.ErrWizardClosed
	case <-ctx.Done():
		r.mu.Lock()
		r.submitting = false
		r.mu.Unlock()
		return model.CampaignDraft{}, ctx.Err()
	case <-timer.C:
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return model.CampaignDraft{}, appErrors.ErrWizardClosed
	}
	draft := r.draft.Clone()
	campaignID := r.campaign.ID
	onSave := r.onSave
	r.mu.Unlock()

	if onSave != nil {
		if err := onSave(ctx, campaignID, draft); err != nil {
			r.mu.Lock()
			r.submitting = false
			r.mu.Unlock()
			return draft, err
		}
	}

	r.mu.Lock()
	r.submitting = false
	r.closed = true
	r.mu.Unlock()
	r.cancel()
	return draft, nil
}

// Dismiss closes the dialog and abandons any pending submit.
func (r *Controller) Dismiss() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()
}
