package controller_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/repository"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

// stubGoogle vouches for whatever account each code was issued to.
type stubGoogle map[string]service.ProviderIdentity

func (g stubGoogle) AuthCodeURL(state string) string {
	return "https://accounts.example/auth?state=" + url.QueryEscape(state)
}

func (g stubGoogle) Identify(_ context.Context, code string) (*service.ProviderIdentity, error) {
	id, ok := g[code]
	if !ok {
		return nil, appErrors.ErrUnauthenticated
	}
	return &id, nil
}

func googleState(t *testing.T, env *testEnv, returnTo string) string {
	t.Helper()
	w := env.call(t, http.MethodGet, "/api/auth/google?return_to="+url.QueryEscape(returnTo), nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("google: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		URL string `json:"url"`
	}
	decode(t, w, &body)
	u, err := url.Parse(body.URL)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	return u.Query().Get("state")
}

func TestGoogleCallbackIgnoresClientEmail(t *testing.T) {
	env := newEnv(t, repository.NewMemoryCampaignRepository())
	env.auth.Google = stubGoogle{
		"attacker-code": {Email: "attacker@example.com", EmailVerified: true},
	}
	state := googleState(t, env, "/dashboard")

	// the victim's email in the body is not an accepted field
	w := env.call(t, http.MethodPost, "/api/auth/google/callback", map[string]string{"state": state, "email": "brand@example.com"}, false)
	if w.Code == http.StatusOK {
		t.Fatalf("posted email must not sign anyone in: %s", w.Body.String())
	}
	// a code the provider never issued
	w = env.call(t, http.MethodPost, "/api/auth/google/callback", map[string]string{"state": state, "code": "made-up"}, false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown code: expected 401, got %d", w.Code)
	}

	w = env.call(t, http.MethodPost, "/api/auth/google/callback", map[string]string{"state": state, "code": "attacker-code"}, false)
	if w.Code != http.StatusOK {
		t.Fatalf("callback: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Session struct {
			User struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"user"`
		} `json:"session"`
		ReturnTo string `json:"return_to"`
	}
	decode(t, w, &body)
	if body.Session.User.Email != "attacker@example.com" || body.Session.User.ID == env.userID {
		t.Errorf("session must belong to the code owner, got %+v", body.Session.User)
	}
	if body.ReturnTo != "/dashboard" {
		t.Errorf("expected /dashboard, got %q", body.ReturnTo)
	}
}

func TestGoogleCallbackRefusesPasswordAccount(t *testing.T) {
	env := newEnv(t, repository.NewMemoryCampaignRepository())
	env.auth.Google = stubGoogle{
		"victim-code": {Email: "Brand@Example.com", EmailVerified: true},
	}
	state := googleState(t, env, "/dashboard")

	w := env.call(t, http.MethodPost, "/api/auth/google/callback", map[string]string{"state": state, "code": "victim-code"}, false)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGoogleRejectsOffsiteReturn(t *testing.T) {
	env := newEnv(t, repository.NewMemoryCampaignRepository())
	env.auth.Google = stubGoogle{}

	for _, target := range []string{"https://evil.example", "//evil.example/x"} {
		w := env.call(t, http.MethodGet, "/api/auth/google?return_to="+url.QueryEscape(target), nil, false)
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: expected 422, got %d", target, w.Code)
		}
		if strings.Contains(w.Body.String(), "accounts.example") {
			t.Errorf("%s: no provider url should be issued", target)
		}
	}
}

func TestGoogleUnconfigured(t *testing.T) {
	env := newEnv(t, repository.NewMemoryCampaignRepository())

	if w := env.call(t, http.MethodGet, "/api/auth/google", nil, false); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
