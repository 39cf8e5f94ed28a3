package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/handler"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{appErrors.NewCampaignNotFound(3), http.StatusNotFound},
		{appErrors.NewNotFound("wizard", "x"), http.StatusNotFound},
		{&appErrors.ValidationError{Fields: map[string]string{"email": "bad"}}, http.StatusUnprocessableEntity},
		{fmt.Errorf("jump: %w", appErrors.ErrInvalidStep), http.StatusUnprocessableEntity},
		{appErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{appErrors.ErrWizardClosed, http.StatusConflict},
		{appErrors.ErrNotRejected, http.StatusConflict},
		{appErrors.ErrProviderNotConfigured, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: use email sign-in", appErrors.ErrEmailTaken), http.StatusConflict},
		{handler.BadRequest("nope"), http.StatusBadRequest},
		{errors.New("profile service unavailable"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := handler.StatusFor(c.err); got != c.want {
			t.Errorf("%v: expected %d, got %d", c.err, c.want, got)
		}
	}
}

func TestWriteErrorIncludesFields(t *testing.T) {
	w := httptest.NewRecorder()
	handler.WriteError(w, &appErrors.ValidationError{Fields: map[string]string{"email": "Introduce un correo"}})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body handler.ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Fields["email"] != "Introduce un correo" {
		t.Errorf("unexpected body %+v", body)
	}
}

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, raw string) (service.Principal, *model.User, error) {
	if raw != "good" {
		return service.Principal{}, nil, appErrors.ErrUnauthenticated
	}
	return service.Principal{UserID: "u1", TokenID: "t1"}, &model.User{ID: "u1"}, nil
}

func TestRequireUser(t *testing.T) {
	var seen *model.User
	h := handler.RequireUser(stubAuth{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.UserFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, tok := range []string{"", "bad"} {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: expected 401, got %d", tok, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || seen == nil || seen.ID != "u1" {
		t.Errorf("expected user u1, got %d %+v", w.Code, seen)
	}
}

func TestOptionalUserLetsAnonymousThrough(t *testing.T) {
	called := false
	h := handler.OptionalUser(stubAuth{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if handler.UserFrom(r.Context()) != nil {
			t.Errorf("expected anonymous request")
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/rankings", nil)
	req.Header.Set("Authorization", "Bearer bad")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Error("expected handler to run")
	}
}
