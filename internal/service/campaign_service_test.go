package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/queue"
	"github.com/unclebandit/brandplay-backend/internal/repository"
	"github.com/unclebandit/brandplay-backend/internal/resubmit"
	"github.com/unclebandit/brandplay-backend/internal/service"
	"github.com/unclebandit/brandplay-backend/internal/wizard"
)

type published struct {
	topic   string
	payload any
}

// recordingQueue captures published messages instead of delivering them.
type recordingQueue struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (q *recordingQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, published{topic, payload})
	return nil
}

func (q *recordingQueue) Subscribe(string, func(any) error) error { return nil }

func (q *recordingQueue) all() []published {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]published(nil), q.msgs...)
}

func completeDraft() model.CampaignDraft {
	return model.CampaignDraft{
		Title:       "Verano Crunchy",
		Author:      "Crunchy",
		Description: "Juega y gana snacks",
		StartDate:   "2026-11-01",
		EndDate:     "2026-11-30",
		MiniGameID:  "snack-runner",
		Terms:       "Bases legales",
	}
}

func TestSubmitDraftStoresPendingAndPublishes(t *testing.T) {
	repo := repository.NewMemoryCampaignRepository()
	q := &recordingQueue{}
	svc := &service.CampaignService{CampaignRepo: repo, Queue: q}

	c, err := svc.SubmitDraft(context.Background(), "brand-1", completeDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Status != model.StatusPending || c.Title != "Verano Crunchy" || c.OwnerID != "brand-1" {
		t.Errorf("unexpected campaign: %+v", c)
	}

	msgs := q.all()
	if len(msgs) != 1 || msgs[0].topic != queue.TopicCampaignSubmissions {
		t.Fatalf("expected one submission message, got %+v", msgs)
	}
	ev := msgs[0].payload.(queue.SubmissionEvent)
	if ev.CampaignID != c.ID || ev.Resubmitted {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestSubmitDraftSurvivesQueueFailure(t *testing.T) {
	repo := repository.NewMemoryCampaignRepository()
	svc := &service.CampaignService{CampaignRepo: repo, Queue: &recordingQueue{err: errors.New("broker down")}}

	c, err := svc.SubmitDraft(context.Background(), "brand-1", completeDraft())
	if err != nil {
		t.Fatalf("expected submit to succeed without the queue, got %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), c.ID)
	if stored.Status != model.StatusPending {
		t.Errorf("expected pending, got %s", stored.Status)
	}
}

func TestReviewSubmissionRejectsIncompleteDraft(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCampaignRepository()
	svc := &service.CampaignService{CampaignRepo: repo}

	c, _ := svc.SubmitDraft(ctx, "brand-1", model.CampaignDraft{Title: "Solo título"})
	if err := svc.ReviewSubmission(ctx, c.ID); err != nil {
		t.Fatalf("review: %v", err)
	}

	stored, _ := repo.GetByID(ctx, c.ID)
	if stored.Status != model.StatusRejected {
		t.Fatalf("expected rejected, got %s", stored.Status)
	}
	if stored.RejectionDetail == "" {
		t.Fatal("expected a rejection detail")
	}

	// The detail must point the edit dialog back at the missing fields.
	ctl := resubmit.New(*stored, resubmit.Options{})
	for _, field := range []string{wizard.FieldAuthor, wizard.FieldDescription, wizard.FieldStartDate, wizard.FieldEndDate, wizard.FieldMiniGame, wizard.FieldTerms} {
		if !ctl.HasErrorInField(field) {
			t.Errorf("expected %s flagged by %q", field, stored.RejectionDetail)
		}
	}
	if ctl.HasErrorInField(wizard.FieldTitle) {
		t.Errorf("title was present and should not be flagged")
	}
	got := ctl.StepsWithErrors()
	want := []int{1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("expected steps %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected steps %v, got %v", want, got)
		}
	}
	if ctl.CurrentStep() != 1 {
		t.Errorf("expected edit dialog to open on step 1, got %d", ctl.CurrentStep())
	}
}

func TestReviewSubmissionLeavesCompleteDraftPending(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCampaignRepository()
	svc := &service.CampaignService{CampaignRepo: repo}

	c, _ := svc.SubmitDraft(ctx, "brand-1", completeDraft())
	if err := svc.ReviewSubmission(ctx, c.ID); err != nil {
		t.Fatalf("review: %v", err)
	}
	stored, _ := repo.GetByID(ctx, c.ID)
	if stored.Status != model.StatusPending {
		t.Errorf("expected pending, got %s", stored.Status)
	}
}

func TestReviewSubmissionIgnoresMissingCampaign(t *testing.T) {
	svc := &service.CampaignService{CampaignRepo: repository.NewMemoryCampaignRepository()}
	if err := svc.ReviewSubmission(context.Background(), 404); err != nil {
		t.Errorf("expected missing campaign to be skipped, got %v", err)
	}
}

func TestRejectionDetailMentionsEachFieldOnce(t *testing.T) {
	detail := service.RejectionDetail([]model.FieldError{
		{Field: wizard.FieldEndDate, Step: 1},
		{Field: wizard.FieldEndDate, Step: 1},
		{Field: wizard.FieldVideoEmbed, Step: 8},
	})
	want := "Revisa los siguientes campos: fecha de fin, vídeo."
	if detail != want {
		t.Errorf("expected %q, got %q", want, detail)
	}
	if service.RejectionDetail(nil) != "" {
		t.Errorf("expected empty detail without issues")
	}
}

func TestGetCampaignHidesOtherOwners(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCampaignRepository(service.FixtureCampaigns("brand-1")...)
	svc := &service.CampaignService{CampaignRepo: repo}

	if _, err := svc.GetCampaign(ctx, 1, "brand-1"); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if _, err := svc.GetCampaign(ctx, 1, "brand-2"); !appErrors.IsNotFound(err) {
		t.Errorf("expected not found for another owner, got %v", err)
	}
}

func TestResubmitFlowReturnsCampaignToPending(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCampaignRepository(service.FixtureCampaigns("brand-1")...)
	q := &recordingQueue{}
	campaigns := &service.CampaignService{CampaignRepo: repo, Queue: q}
	dialogs := service.NewDialogService(campaigns, time.Millisecond, time.Millisecond)

	if _, err := dialogs.OpenResubmit(ctx, "brand-1", 1); !errors.Is(err, appErrors.ErrNotRejected) {
		t.Fatalf("expected active campaign to be refused, got %v", err)
	}

	ctl, err := dialogs.OpenResubmit(ctx, "brand-1", 3)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !ctl.HasErrorInField(wizard.FieldTitle) || !ctl.HasErrorInField(wizard.FieldStartDate) {
		t.Errorf("expected title and dates flagged, got %+v", ctl.Errors())
	}
	if _, err := dialogs.Resubmit("brand-2", ctl.ID()); !appErrors.IsNotFound(err) {
		t.Errorf("expected dialog hidden from other users, got %v", err)
	}

	patch := wizard.Patch{"title": []byte(`"Trivia Express 2"`), "end_date": []byte(`"2026-10-31"`)}
	if err := ctl.UpdateDraft(patch); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := ctl.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stored, _ := repo.GetByID(ctx, 3)
	if stored.Status != model.StatusPending || stored.Title != "Trivia Express 2" || stored.EndDate != "2026-10-31" {
		t.Errorf("unexpected stored campaign %+v", stored)
	}
	if stored.Draft == nil || stored.Draft.StartDate != "2026-10-01" {
		t.Errorf("expected the full draft to be stored, got %+v", stored.Draft)
	}
	msgs := q.all()
	if len(msgs) != 1 || !msgs[0].payload.(queue.SubmissionEvent).Resubmitted {
		t.Errorf("expected one resubmission event, got %+v", msgs)
	}

	if _, resubmits := dialogs.OpenDialogs(); resubmits != 0 {
		t.Errorf("expected submitted dialog to be dropped, %d left", resubmits)
	}
}

func TestStaleResubmitDialogCannotOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCampaignRepository(service.FixtureCampaigns("brand-1")...)
	q := &recordingQueue{}
	campaigns := &service.CampaignService{CampaignRepo: repo, Queue: q}
	dialogs := service.NewDialogService(campaigns, time.Millisecond, time.Millisecond)

	first, err := dialogs.OpenResubmit(ctx, "brand-1", 3)
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	second, err := dialogs.OpenResubmit(ctx, "brand-1", 3)
	if err != nil {
		t.Fatalf("open second: %v", err)
	}

	if err := first.UpdateDraft(wizard.Patch{"title": []byte(`"Primera"`)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := first.Submit(ctx); err != nil {
		t.Fatalf("submit first: %v", err)
	}
	// review approves the campaign before the other dialog submits
	if err := repo.UpdateStatus(ctx, 3, model.StatusActive, "", ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := second.UpdateDraft(wizard.Patch{"title": []byte(`"Segunda"`)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := second.Submit(ctx); !errors.Is(err, appErrors.ErrNotRejected) {
		t.Fatalf("expected stale submit to be refused, got %v", err)
	}

	stored, _ := repo.GetByID(ctx, 3)
	if stored.Status != model.StatusActive || stored.Title != "Primera" {
		t.Errorf("stale dialog changed the campaign: %+v", stored)
	}
	if n := len(q.all()); n != 1 {
		t.Errorf("expected only the first resubmission queued, got %d events", n)
	}
}

func TestWizardCompletionSubmitsCampaign(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCampaignRepository()
	campaigns := &service.CampaignService{CampaignRepo: repo}
	dialogs := service.NewDialogService(campaigns, time.Millisecond, time.Millisecond)

	w := dialogs.OpenWizard("brand-1")
	if got, err := dialogs.Wizard("brand-1", w.ID()); err != nil || got != w {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := w.JumpTo(wizard.StepCheckout); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if _, err := w.Pay(ctx); err != nil {
		t.Fatalf("pay: %v", err)
	}

	list, _, _ := repo.List(ctx, 0, 10, "brand-1", model.StatusPending)
	if len(list) != 1 {
		t.Fatalf("expected one pending campaign, got %d", len(list))
	}

	if wizards, _ := dialogs.OpenDialogs(); wizards != 0 {
		t.Errorf("expected completed wizard to be dropped, %d left", wizards)
	}
	if _, err := dialogs.Wizard("brand-1", w.ID()); !appErrors.IsNotFound(err) {
		t.Errorf("expected completed wizard gone, got %v", err)
	}
}

func TestSweepDropsIdleDialogs(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCampaignRepository(service.FixtureCampaigns("brand-1")...)
	dialogs := service.NewDialogService(&service.CampaignService{CampaignRepo: repo}, time.Hour, time.Hour)
	dialogs.IdleTTL = time.Millisecond

	w := dialogs.OpenWizard("brand-1")
	if _, err := dialogs.OpenResubmit(ctx, "brand-1", 3); err != nil {
		t.Fatalf("open resubmit: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if n := dialogs.Sweep(); n != 2 {
		t.Fatalf("expected 2 dialogs swept, got %d", n)
	}
	if wizards, resubmits := dialogs.OpenDialogs(); wizards != 0 || resubmits != 0 {
		t.Errorf("expected no dialogs left, got %d/%d", wizards, resubmits)
	}
	if w.Status() != wizard.StatusDismissed {
		t.Errorf("expected swept wizard dismissed, got %s", w.Status())
	}
}
