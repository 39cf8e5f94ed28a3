package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/brandplay-backend/internal/handler"
	"github.com/unclebandit/brandplay-backend/internal/resubmit"
	"github.com/unclebandit/brandplay-backend/internal/service"
	"github.com/unclebandit/brandplay-backend/internal/wizard"
)

// ResubmitController exposes the edit-and-resubmit dialog of a rejected
// campaign.
type ResubmitController struct {
	Dialogs *service.DialogService
}

func (c *ResubmitController) Open(w http.ResponseWriter, r *http.Request) {
	id, err := handler.IntParam(r, "id")
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	ctl, err := c.Dialogs.OpenResubmit(r.Context(), handler.UserFrom(r.Context()).ID, id)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, ctl.Snapshot())
}

func (c *ResubmitController) do(w http.ResponseWriter, r *http.Request, op func(*resubmit.Controller) error) {
	ctl, err := c.Dialogs.Resubmit(handler.UserFrom(r.Context()).ID, chi.URLParam(r, "rid"))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	if op != nil {
		if err := op(ctl); err != nil {
			handler.WriteError(w, err)
			return
		}
	}
	handler.WriteJSON(w, http.StatusOK, ctl.Snapshot())
}

func (c *ResubmitController) Get(w http.ResponseWriter, r *http.Request) {
	c.do(w, r, nil)
}

// Reload re-reads the campaign, recomputing the flagged fields.
func (c *ResubmitController) Reload(w http.ResponseWriter, r *http.Request) {
	ctl, err := c.Dialogs.ReloadResubmit(r.Context(), handler.UserFrom(r.Context()).ID, chi.URLParam(r, "rid"))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, ctl.Snapshot())
}

func (c *ResubmitController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var patch wizard.Patch
	if err := handler.DecodeJSON(r, &patch); err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(ctl *resubmit.Controller) error { return ctl.UpdateDraft(patch) })
}

func (c *ResubmitController) Next(w http.ResponseWriter, r *http.Request) {
	c.do(w, r, func(ctl *resubmit.Controller) error { _, err := ctl.Next(); return err })
}

func (c *ResubmitController) Back(w http.ResponseWriter, r *http.Request) {
	c.do(w, r, func(ctl *resubmit.Controller) error { _, err := ctl.Back(); return err })
}

func (c *ResubmitController) Jump(w http.ResponseWriter, r *http.Request) {
	var body jumpRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	c.do(w, r, func(ctl *resubmit.Controller) error { _, err := ctl.JumpTo(body.Step); return err })
}

func (c *ResubmitController) SetReward(w http.ResponseWriter, r *http.Request) {
	var body toggleRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	block := wizard.RewardBlock(chi.URLParam(r, "block"))
	c.do(w, r, func(ctl *resubmit.Controller) error { return ctl.SetReward(block, body.Enabled) })
}

// Submit blocks for the simulated save; flagged fields never stop it.
func (c *ResubmitController) Submit(w http.ResponseWriter, r *http.Request) {
	c.do(w, r, func(ctl *resubmit.Controller) error {
		_, err := ctl.Submit(r.Context())
		return err
	})
}

func (c *ResubmitController) Dismiss(w http.ResponseWriter, r *http.Request) {
	if err := c.Dialogs.DismissResubmit(handler.UserFrom(r.Context()).ID, chi.URLParam(r, "rid")); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
