package controller

import (
	"net/http"

	"github.com/unclebandit/brandplay-backend/internal/handler"
	"github.com/unclebandit/brandplay-backend/internal/service"
	"github.com/unclebandit/brandplay-backend/internal/wizard"
)

type SupportController struct {
	ContactService *service.ContactService
}

type embedRequest struct {
	Code string `json:"code"`
}

type embedResponse struct {
	Valid      bool   `json:"valid"`
	PreviewURL string `json:"preview_url,omitempty"`
	Message    string `json:"message,omitempty"`
}

// EmbedPreview resolves a pasted YouTube link or iframe to its preview URL.
func (c *SupportController) EmbedPreview(w http.ResponseWriter, r *http.Request) {
	var body embedRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	preview, ok := wizard.ParseEmbed(body.Code)
	handler.WriteJSON(w, http.StatusOK, embedResponse{
		Valid:      ok,
		PreviewURL: preview,
		Message:    wizard.EmbedMessage(body.Code),
	})
}

func (c *SupportController) Contact(w http.ResponseWriter, r *http.Request) {
	var body service.ContactMessage
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	var userID string
	if u := handler.UserFrom(r.Context()); u != nil {
		userID = u.ID
	}
	if err := c.ContactService.Submit(r.Context(), userID, body); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (c *SupportController) Health(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
