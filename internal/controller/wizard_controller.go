package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/brandplay-backend/internal/handler"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/service"
	"github.com/unclebandit/brandplay-backend/internal/wizard"
)

// WizardController exposes the campaign creation wizard. Every mutating call
// answers with the wizard snapshot.
type WizardController struct {
	Dialogs *service.DialogService
}

func (c *WizardController) lookup(w http.ResponseWriter, r *http.Request) (*wizard.Wizard, bool) {
	wz, err := c.Dialogs.Wizard(handler.UserFrom(r.Context()).ID, chi.URLParam(r, "wid"))
	if err != nil {
		handler.WriteError(w, err)
		return nil, false
	}
	return wz, true
}

func (c *WizardController) Open(w http.ResponseWriter, r *http.Request) {
	wz := c.Dialogs.OpenWizard(handler.UserFrom(r.Context()).ID)
	handler.WriteJSON(w, http.StatusCreated, wz.Snapshot())
}

func (c *WizardController) Get(w http.ResponseWriter, r *http.Request) {
	if wz, ok := c.lookup(w, r); ok {
		handler.WriteJSON(w, http.StatusOK, wz.Snapshot())
	}
}

// do runs op on the addressed wizard and replies with its snapshot.
func (c *WizardController) do(w http.ResponseWriter, r *http.Request, op func(*wizard.Wizard) error) {
	wz, ok := c.lookup(w, r)
	if !ok {
		return
	}
	if err := op(wz); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, wz.Snapshot())
}

func (c *WizardController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var patch wizard.Patch
	if err := handler.DecodeJSON(r, &patch); err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(wz *wizard.Wizard) error { return wz.UpdateDraft(patch) })
}

func (c *WizardController) Next(w http.ResponseWriter, r *http.Request) {
	c.do(w, r, func(wz *wizard.Wizard) error { _, err := wz.Next(); return err })
}

func (c *WizardController) Back(w http.ResponseWriter, r *http.Request) {
	c.do(w, r, func(wz *wizard.Wizard) error { _, err := wz.Back(); return err })
}

type jumpRequest struct {
	Step int `json:"step"`
}

func (c *WizardController) Jump(w http.ResponseWriter, r *http.Request) {
	var body jumpRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(wz *wizard.Wizard) error { _, err := wz.JumpTo(body.Step); return err })
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

func (c *WizardController) SetReward(w http.ResponseWriter, r *http.Request) {
	var body toggleRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	block := wizard.RewardBlock(chi.URLParam(r, "block"))
	c.do(w, r, func(wz *wizard.Wizard) error { return wz.SetReward(block, body.Enabled) })
}

type topPositionsRequest struct {
	Positions int `json:"positions"`
}

func (c *WizardController) SetTopPositions(w http.ResponseWriter, r *http.Request) {
	var body topPositionsRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(wz *wizard.Wizard) error { return wz.SetTopPositions(body.Positions) })
}

func (c *WizardController) AddFAQ(w http.ResponseWriter, r *http.Request) {
	var faq model.FAQ
	if err := handler.DecodeJSON(r, &faq); err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(wz *wizard.Wizard) error { return wz.AddFAQ(faq) })
}

func faqIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, handler.BadRequest("invalid faq index %q", raw)
	}
	return i, nil
}

func (c *WizardController) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	i, err := faqIndex(r)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	var faq model.FAQ
	if err := handler.DecodeJSON(r, &faq); err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(wz *wizard.Wizard) error { return wz.UpdateFAQ(i, faq) })
}

func (c *WizardController) RemoveFAQ(w http.ResponseWriter, r *http.Request) {
	i, err := faqIndex(r)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(wz *wizard.Wizard) error { return wz.RemoveFAQ(i) })
}

func (c *WizardController) Checkout(w http.ResponseWriter, r *http.Request) {
	wz, ok := c.lookup(w, r)
	if !ok {
		return
	}
	summary, err := wz.Checkout()
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// Pay waits for the simulated payment by default; the client hanging up
// cancels it. With ?async=true the payment runs in the background and the
// client polls the wizard for the outcome.
func (c *WizardController) Pay(w http.ResponseWriter, r *http.Request) {
	wz, ok := c.lookup(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("async") == "true" {
		if err := wz.StartPayment(); err != nil {
			handler.WriteError(w, err)
			return
		}
		handler.WriteJSON(w, http.StatusAccepted, wz.Snapshot())
		return
	}
	if _, err := wz.Pay(r.Context()); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, wz.Snapshot())
}

func (c *WizardController) Dismiss(w http.ResponseWriter, r *http.Request) {
	if err := c.Dialogs.DismissWizard(handler.UserFrom(r.Context()).ID, chi.URLParam(r, "wid")); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
