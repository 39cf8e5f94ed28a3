package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusDismissed Status = "dismissed"
)

const DefaultPaymentDelay = 2 * time.Second

// CompleteFunc receives the finished draft when the wizard completes.
type CompleteFunc func(ctx context.Context, draft model.CampaignDraft) error

type Options struct {
	PaymentDelay time.Duration
	OnComplete   CompleteFunc
}

// Wizard owns one campaign draft while its dialog is open. Every timer it
// starts is bound to its lifetime and stops when it completes or is dismissed.
type Wizard struct {
	mu sync.Mutex

	id      string
	draft   model.CampaignDraft
	step    Stepper
	status  Status
	payment PaymentState

	paymentDelay time.Duration
	onComplete   CompleteFunc

	ctx    context.Context
	cancel context.CancelFunc
}

func New(opts Options) *Wizard {
	delay := opts.PaymentDelay
	if delay <= 0 {
		delay = DefaultPaymentDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Wizard{
		id:           uuid.NewString(),
		step:         NewStepper(),
		status:       StatusOpen,
		payment:      PaymentIdle,
		paymentDelay: delay,
		onComplete:   opts.OnComplete,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *Wizard) ID() string { return w.id }

// Snapshot is the serialisable state of a wizard.
type Snapshot struct {
	ID          string              `json:"id"`
	CurrentStep int                 `json:"current_step"`
	StepName    string              `json:"step_name"`
	Status      Status              `json:"status"`
	Payment     PaymentState        `json:"payment"`
	Draft       model.CampaignDraft `json:"draft"`
	Issues      []model.FieldError  `json:"issues"`
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() Snapshot {
	cur := w.step.Current()
	issues := StepIssues(w.draft, cur)
	if issues == nil {
		issues = []model.FieldError{}
	}
	return Snapshot{
		ID:          w.id,
		CurrentStep: cur,
		StepName:    StepName(cur),
		Status:      w.status,
		Payment:     w.payment,
		Draft:       w.draft.Clone(),
		Issues:      issues,
	}
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() model.CampaignDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

func (w *Wizard) CurrentStep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step.Current()
}

// mutate runs fn against the draft while the wizard accepts edits.
func (w *Wizard) mutate(fn func(d *model.CampaignDraft) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return err
	}
	next := w.draft.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	w.draft = next
	return nil
}

func (w *Wizard) editableLocked() error {
	if w.status != StatusOpen {
		return appErrors.ErrWizardClosed
	}
	if w.payment == PaymentProcessing {
		return appErrors.ErrPaymentInProgress
	}
	return nil
}

// UpdateDraft shallow-merges p into the draft. It never validates.
func (w *Wizard) UpdateDraft(p Patch) error {
	return w.mutate(func(d *model.CampaignDraft) error {
		merged, err := ApplyPatch(*d, p)
		if err != nil {
			return err
		}
		*d = merged
		return nil
	})
}

func (w *Wizard) SetReward(block RewardBlock, enabled bool) error {
	return w.mutate(func(d *model.CampaignDraft) error {
		return SetReward(d, block, enabled)
	})
}

func (w *Wizard) SetTopPositions(n int) error {
	return w.mutate(func(d *model.CampaignDraft) error {
		return SetTopPositions(d, n)
	})
}

func (w *Wizard) AddFAQ(faq model.FAQ) error {
	return w.mutate(func(d *model.CampaignDraft) error {
		d.FAQs = append(d.FAQs, faq)
		return nil
	})
}

func (w *Wizard) UpdateFAQ(i int, faq model.FAQ) error {
	return w.mutate(func(d *model.CampaignDraft) error {
		if i < 0 || i >= len(d.FAQs) {
			return appErrors.NewNotFound("faq", itoa(i))
		}
		d.FAQs[i] = faq
		return nil
	})
}

func (w *Wizard) RemoveFAQ(i int) error {
	return w.mutate(func(d *model.CampaignDraft) error {
		if i < 0 || i >= len(d.FAQs) {
			return appErrors.NewNotFound("faq", itoa(i))
		}
		d.FAQs = append(d.FAQs[:i], d.FAQs[i+1:]...)
		return nil
	})
}

func (w *Wizard) move(fn func(*Stepper) error) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return w.step.Current(), err
	}
	if err := fn(&w.step); err != nil {
		return w.step.Current(), err
	}
	return w.step.Current(), nil
}

func (w *Wizard) Next() (int, error) {
	return w.move(func(s *Stepper) error { s.Next(); return nil })
}

func (w *Wizard) Back() (int, error) {
	return w.move(func(s *Stepper) error { s.Back(); return nil })
}

func (w *Wizard) JumpTo(step int) (int, error) {
	return w.move(func(s *Stepper) error { return s.JumpTo(step) })
}

// Checkout prices the current add-on selection.
func (w *Wizard) Checkout() (CheckoutSummary, error) {
	w.mu.Lock()
	addOns := w.draft.AddOns
	w.mu.Unlock()
	return Summarize(addOns)
}

// Pay runs the simulated payment: idle, processing for the payment delay,
// then success, which completes the wizard. Cancelling ctx returns the state
// to idle; dismissing the wizard abandons the payment without touching state.
// A free checkout has nothing to charge and completes at once.
func (w *Wizard) Pay(ctx context.Context) (model.CampaignDraft, error) {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return model.CampaignDraft{}, err
	}
	if cur := w.step.Current(); cur != StepCheckout {
		w.mu.Unlock()
		return model.CampaignDraft{}, appErrors.ErrInvalidStep
	}
	summary, err := Summarize(w.draft.AddOns)
	if err != nil {
		w.mu.Unlock()
		return model.CampaignDraft{}, err
	}
	if summary.Free {
		w.mu.Unlock()
		return w.Complete(context.WithoutCancel(ctx))
	}
	w.payment = PaymentProcessing
	life := w.ctx
	delay := w.paymentDelay
	w.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-life.Done():
		return model.CampaignDraft{}, appErrors.ErrWizardClosed
	case <-ctx.Done():
		w.mu.Lock()
		if w.status == StatusOpen {
			w.payment = PaymentIdle
		}
		w.mu.Unlock()
		return model.CampaignDraft{}, ctx.Err()
	case <-timer.C:
	}

	w.mu.Lock()
	if w.status != StatusOpen {
		w.mu.Unlock()
		return model.CampaignDraft{}, appErrors.ErrWizardClosed
	}
	w.payment = PaymentSuccess
	w.mu.Unlock()

	return w.Complete(context.WithoutCancel(ctx))
}

// StartPayment runs Pay in the background under the wizard's own lifetime.
// A free checkout is submitted before it returns.
func (w *Wizard) StartPayment() error {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.step.Current() != StepCheckout {
		w.mu.Unlock()
		return appErrors.ErrInvalidStep
	}
	summary, err := Summarize(w.draft.AddOns)
	life := w.ctx
	w.mu.Unlock()
	if err != nil {
		return err
	}
	if summary.Free {
		_, err := w.Complete(context.Background())
		return err
	}

	go func() {
		if _, err := w.Pay(life); err != nil {
			logrus.WithField("wizard_id", w.id).WithError(err).Warn("⚠️ payment did not complete")
		}
	}()
	return nil
}

// Complete hands a copy of the draft to the completion callback, closes the
// wizard and resets the step to 1. The draft is not cleared.
func (w *Wizard) Complete(ctx context.Context) (model.CampaignDraft, error) {
	w.mu.Lock()
	if w.status != StatusOpen {
		w.mu.Unlock()
		return model.CampaignDraft{}, appErrors.ErrWizardClosed
	}
	draft := w.draft.Clone()
	w.status = StatusCompleted
	w.step.Reset()
	onComplete := w.onComplete
	w.mu.Unlock()

	defer w.cancel()
	if onComplete != nil {
		if err := onComplete(ctx, draft); err != nil {
			return draft, err
		}
	}
	return draft, nil
}

// Dismiss discards the wizard and cancels any pending timer.
func (w *Wizard) Dismiss() {
	w.mu.Lock()
	if w.status == StatusOpen {
		w.status = StatusDismissed
	}
	w.mu.Unlock()
	w.cancel()
}

func (w *Wizard) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Wizard) Payment() PaymentState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}
