// internal/handler/response.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type badRequest struct{ msg string }

func (e *badRequest) Error() string { return e.msg }

// BadRequest marks a malformed request.
func BadRequest(format string, args ...any) error {
	return &badRequest{msg: fmt.Sprintf(format, args...)}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("⚠️ failed to encode response")
	}
}

// StatusFor maps an error onto its HTTP status.
func StatusFor(err error) int {
	var verr *appErrors.ValidationError
	var bad *badRequest
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case appErrors.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &verr),
		errors.Is(err, appErrors.ErrInvalidStep),
		errors.Is(err, appErrors.ErrInvalidPatch),
		errors.Is(err, appErrors.ErrInvalidTopPositions),
		errors.Is(err, appErrors.ErrRewardDisabled),
		errors.Is(err, appErrors.ErrInvalidPlan):
		return http.StatusUnprocessableEntity
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, appErrors.ErrWizardClosed),
		errors.Is(err, appErrors.ErrPaymentInProgress),
		errors.Is(err, appErrors.ErrEmailTaken),
		errors.Is(err, appErrors.ErrNotRejected):
		return http.StatusConflict
	case errors.Is(err, appErrors.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// WriteError renders err with its mapped status. The original message is
// kept so remote failures reach the client as reported.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorBody{Error: err.Error()}
	var verr *appErrors.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).Error("❌ request failed")
	}
	WriteJSON(w, status, body)
}

const maxBody = 1 << 20

// DecodeJSON reads a JSON body into v, refusing unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return BadRequest("invalid body: %v", err)
	}
	return nil
}

// IntParam reads a numeric chi URL parameter.
func IntParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, BadRequest("invalid %s %q", name, raw)
	}
	return n, nil
}
