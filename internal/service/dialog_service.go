package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/resubmit"
	"github.com/unclebandit/brandplay-backend/internal/wizard"
)

type owned[T any] struct {
	owner string
	ctl   T
}

// DialogService keeps the open creation wizards and edit-and-resubmit
// dialogs, each addressed by id and visible only to the user who opened it.
type DialogService struct {
	Campaigns *CampaignService

	PaymentDelay  time.Duration
	ResubmitDelay time.Duration
	// IdleTTL is how long an untouched dialog is kept before Sweep drops it.
	IdleTTL time.Duration

	wizards   *wizard.Store[owned[*wizard.Wizard]]
	resubmits *wizard.Store[owned[*resubmit.Controller]]
}

const DefaultDialogIdleTTL = 2 * time.Hour

func NewDialogService(campaigns *CampaignService, paymentDelay, resubmitDelay time.Duration) *DialogService {
	return &DialogService{
		Campaigns:     campaigns,
		PaymentDelay:  paymentDelay,
		ResubmitDelay: resubmitDelay,
		IdleTTL:       DefaultDialogIdleTTL,
		wizards:       wizard.NewStore[owned[*wizard.Wizard]](),
		resubmits:     wizard.NewStore[owned[*resubmit.Controller]](),
	}
}

// OpenWizard starts an empty draft. Completing it submits the campaign on
// behalf of ownerID and drops the wizard.
func (s *DialogService) OpenWizard(ownerID string) *wizard.Wizard {
	var w *wizard.Wizard
	w = wizard.New(wizard.Options{
		PaymentDelay: s.PaymentDelay,
		OnComplete: func(ctx context.Context, draft model.CampaignDraft) error {
			if _, err := s.Campaigns.SubmitDraft(ctx, ownerID, draft); err != nil {
				return err
			}
			s.wizards.Delete(w.ID())
			return nil
		},
	})
	s.wizards.Put(w.ID(), owned[*wizard.Wizard]{owner: ownerID, ctl: w})
	logrus.WithFields(logrus.Fields{"wizard_id": w.ID(), "owner_id": ownerID}).Debug("wizard opened")
	return w
}

func (s *DialogService) Wizard(ownerID, id string) (*wizard.Wizard, error) {
	o, ok := s.wizards.Get(id)
	if !ok || o.owner != ownerID {
		return nil, appErrors.NewNotFound("wizard", id)
	}
	return o.ctl, nil
}

// DismissWizard closes the dialog, cancelling any payment still running.
func (s *DialogService) DismissWizard(ownerID, id string) error {
	w, err := s.Wizard(ownerID, id)
	if err != nil {
		return err
	}
	w.Dismiss()
	s.wizards.Delete(id)
	return nil
}

// OpenResubmit opens the edit dialog for one of the owner's rejected
// campaigns.
func (s *DialogService) OpenResubmit(ctx context.Context, ownerID string, campaignID int) (*resubmit.Controller, error) {
	c, err := s.Campaigns.RejectedCampaign(ctx, campaignID, ownerID)
	if err != nil {
		return nil, err
	}
	var r *resubmit.Controller
	r = resubmit.New(*c, resubmit.Options{
		SubmitDelay: s.ResubmitDelay,
		OnSave: func(ctx context.Context, campaignID int, draft model.CampaignDraft) error {
			if err := s.Campaigns.SaveResubmission(ctx, campaignID, draft); err != nil {
				return err
			}
			s.resubmits.Delete(r.ID())
			return nil
		},
	})
	s.resubmits.Put(r.ID(), owned[*resubmit.Controller]{owner: ownerID, ctl: r})
	return r, nil
}

func (s *DialogService) Resubmit(ownerID, id string) (*resubmit.Controller, error) {
	o, ok := s.resubmits.Get(id)
	if !ok || o.owner != ownerID {
		return nil, appErrors.NewNotFound("resubmission", id)
	}
	return o.ctl, nil
}

// ReloadResubmit refreshes the dialog from the stored campaign, re-reading
// the rejection detail.
func (s *DialogService) ReloadResubmit(ctx context.Context, ownerID, id string) (*resubmit.Controller, error) {
	r, err := s.Resubmit(ownerID, id)
	if err != nil {
		return nil, err
	}
	c, err := s.Campaigns.RejectedCampaign(ctx, r.Snapshot().CampaignID, ownerID)
	if err != nil {
		return nil, err
	}
	r.SetCampaign(*c)
	return r, nil
}

func (s *DialogService) DismissResubmit(ownerID, id string) error {
	r, err := s.Resubmit(ownerID, id)
	if err != nil {
		return err
	}
	r.Dismiss()
	s.resubmits.Delete(id)
	return nil
}

// OpenDialogs reports how many wizards and resubmit dialogs are held.
func (s *DialogService) OpenDialogs() (wizards, resubmits int) {
	return s.wizards.Len(), s.resubmits.Len()
}

// Sweep dismisses and drops every dialog idle for longer than IdleTTL.
func (s *DialogService) Sweep() int {
	ttl := s.IdleTTL
	if ttl <= 0 {
		ttl = DefaultDialogIdleTTL
	}
	n := 0
	for _, o := range s.wizards.Expire(ttl) {
		o.ctl.Dismiss()
		n++
	}
	for _, o := range s.resubmits.Expire(ttl) {
		o.ctl.Dismiss()
		n++
	}
	if n > 0 {
		logrus.WithField("count", n).Info("🧹 idle dialogs dropped")
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *DialogService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
