package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
)

type completions struct {
	mu     sync.Mutex
	drafts []model.CampaignDraft
}

func (c *completions) record(_ context.Context, d model.CampaignDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts = append(c.drafts, d)
	return nil
}

func (c *completions) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.drafts)
}

func toCheckout(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.UpdateDraft(Patch{"add_ons": raw(t, model.AddOns{VisibilityBoost: true})}))
	for i := 0; i < TotalSteps; i++ {
		_, err := w.Next()
		require.NoError(t, err)
	}
	require.Equal(t, StepCheckout, w.CurrentStep())
}

func TestWizardNavigationIsSaturating(t *testing.T) {
	w := New(Options{})
	step, err := w.Back()
	require.NoError(t, err)
	assert.Equal(t, 1, step)

	toCheckout(t, w)
	step, err = w.Next()
	require.NoError(t, err)
	assert.Equal(t, TotalSteps, step)
}

func TestWizardNavigationIgnoresValidation(t *testing.T) {
	w := New(Options{})
	require.NotEmpty(t, w.Snapshot().Issues)

	step, err := w.Next()
	require.NoError(t, err)
	assert.Equal(t, StepMiniGame, step)
}

func TestWizardUpdateDraftMerges(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.UpdateDraft(Patch{"title": raw(t, "Verano")}))
	require.NoError(t, w.UpdateDraft(Patch{"author": raw(t, "Acme")}))

	d := w.Draft()
	assert.Equal(t, "Verano", d.Title)
	assert.Equal(t, "Acme", d.Author)
}

func TestWizardRewardToggles(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.SetReward(RewardTopRanking, true))
	require.NoError(t, w.SetTopPositions(10))
	assert.Len(t, w.Draft().TopRanking.Prizes, 10)

	require.NoError(t, w.SetReward(RewardTopRanking, false))
	assert.Nil(t, w.Draft().TopRanking)
}

func TestWizardFAQs(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.AddFAQ(model.FAQ{Question: "a", Answer: "1"}))
	require.NoError(t, w.AddFAQ(model.FAQ{Question: "b", Answer: "2"}))
	require.NoError(t, w.AddFAQ(model.FAQ{Question: "c", Answer: "3"}))
	require.NoError(t, w.RemoveFAQ(1))
	require.NoError(t, w.UpdateFAQ(1, model.FAQ{Question: "c", Answer: "33"}))

	assert.Equal(t, []model.FAQ{{Question: "a", Answer: "1"}, {Question: "c", Answer: "33"}}, w.Draft().FAQs)
	assert.True(t, appErrors.IsNotFound(w.RemoveFAQ(5)))
}

func TestWizardCompleteHandsOffDraft(t *testing.T) {
	done := &completions{}
	w := New(Options{OnComplete: done.record})
	require.NoError(t, w.UpdateDraft(Patch{"title": raw(t, "Verano")}))
	_, err := w.JumpTo(StepVideo)
	require.NoError(t, err)

	d, err := w.Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Verano", d.Title)
	assert.Equal(t, 1, done.count())

	snap := w.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.Equal(t, StepGeneral, snap.CurrentStep)
	assert.Equal(t, "Verano", snap.Draft.Title, "draft is not reset on completion")

	_, err = w.Complete(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrWizardClosed)
	assert.ErrorIs(t, w.UpdateDraft(Patch{"title": raw(t, "x")}), appErrors.ErrWizardClosed)
}

func TestWizardPayCompletes(t *testing.T) {
	done := &completions{}
	w := New(Options{PaymentDelay: 5 * time.Millisecond, OnComplete: done.record})
	toCheckout(t, w)

	_, err := w.Pay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PaymentSuccess, w.Payment())
	assert.Equal(t, StatusCompleted, w.Status())
	assert.Equal(t, 1, done.count())
}

func TestWizardFreeCheckoutSubmitsImmediately(t *testing.T) {
	done := &completions{}
	w := New(Options{PaymentDelay: time.Hour, OnComplete: done.record})
	_, err := w.JumpTo(StepCheckout)
	require.NoError(t, err)

	summary, err := w.Checkout()
	require.NoError(t, err)
	require.True(t, summary.Free)

	start := time.Now()
	_, err = w.Pay(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, StatusCompleted, w.Status())
	assert.Equal(t, PaymentIdle, w.Payment(), "nothing was charged")
	assert.Equal(t, 1, done.count())
}

func TestWizardStartPaymentSubmitsFreeCheckoutSynchronously(t *testing.T) {
	done := &completions{}
	w := New(Options{PaymentDelay: time.Hour, OnComplete: done.record})
	_, err := w.JumpTo(StepCheckout)
	require.NoError(t, err)

	require.NoError(t, w.StartPayment())
	assert.Equal(t, 1, done.count())
	assert.Equal(t, StatusCompleted, w.Status())
}

func TestWizardPayRequiresCheckoutStep(t *testing.T) {
	w := New(Options{PaymentDelay: time.Millisecond})
	_, err := w.Pay(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrInvalidStep)
}

func TestWizardPayCancelledByCaller(t *testing.T) {
	w := New(Options{PaymentDelay: time.Hour})
	toCheckout(t, w)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := w.Pay(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, PaymentIdle, w.Payment())
	assert.Equal(t, StatusOpen, w.Status())
}

func TestWizardDismissStopsPendingPayment(t *testing.T) {
	done := &completions{}
	w := New(Options{PaymentDelay: 200 * time.Millisecond, OnComplete: done.record})
	toCheckout(t, w)
	require.NoError(t, w.StartPayment())

	assert.Eventually(t, func() bool { return w.Payment() == PaymentProcessing }, time.Second, time.Millisecond)
	assert.ErrorIs(t, w.UpdateDraft(Patch{"title": raw(t, "x")}), appErrors.ErrPaymentInProgress)

	w.Dismiss()
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, StatusDismissed, w.Status())
	assert.Equal(t, 0, done.count(), "a dismissed wizard never completes")
}

func TestWizardStartPaymentCompletesInBackground(t *testing.T) {
	done := &completions{}
	w := New(Options{PaymentDelay: 5 * time.Millisecond, OnComplete: done.record})
	toCheckout(t, w)
	require.NoError(t, w.StartPayment())

	assert.Eventually(t, func() bool { return done.count() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, StatusCompleted, w.Status())
}

func TestStore(t *testing.T) {
	s := NewStore[*Wizard]()
	w := New(Options{})
	s.Put(w.ID(), w)

	got, ok := s.Get(w.ID())
	require.True(t, ok)
	assert.Same(t, w, got)
	assert.Equal(t, 1, s.Len())

	s.Delete(w.ID())
	_, ok = s.Get(w.ID())
	assert.False(t, ok)
}

func TestStoreExpiresIdleEntries(t *testing.T) {
	s := NewStore[string]()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put("old", "a")
	s.Put("busy", "b")
	now = now.Add(20 * time.Minute)
	_, ok := s.Get("busy")
	require.True(t, ok)
	now = now.Add(20 * time.Minute)

	assert.Equal(t, []string{"a"}, s.Expire(30*time.Minute))
	assert.Equal(t, 1, s.Len())
	_, ok = s.Get("old")
	assert.False(t, ok)
}
