package controller

import (
	"net/http"

	"github.com/unclebandit/brandplay-backend/internal/handler"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

type AuthController struct {
	Auth *service.AuthService
}

func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var body service.SignUpInput
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	// ?plan= pre-selects the signup context
	if body.Plan == "" {
		body.Plan = model.Plan(r.URL.Query().Get("plan"))
	}
	sess, err := c.Auth.SignUpWithEmail(r.Context(), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, sess)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	sess, err := c.Auth.LoginWithEmail(r.Context(), body.Email, body.Password)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, sess)
}

func (c *AuthController) Google(w http.ResponseWriter, r *http.Request) {
	authURL, err := c.Auth.LoginWithGoogle(r.URL.Query().Get("return_to"))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"url": authURL})
}

func (c *AuthController) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	var body service.ProviderSession
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	sess, returnTo, err := c.Auth.AcceptProviderSession(r.Context(), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]any{"session": sess, "return_to": returnTo})
}

func principal(r *http.Request) service.Principal {
	p, _ := handler.PrincipalFrom(r.Context())
	return p
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Auth.Logout(r.Context(), principal(r)); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, err := c.Auth.CurrentUser(r.Context(), principal(r))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, user)
}

func (c *AuthController) reply(w http.ResponseWriter, user *model.User, err error) {
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, user)
}

func (c *AuthController) AcceptTerms(w http.ResponseWriter, r *http.Request) {
	user, err := c.Auth.AcceptTerms(r.Context(), principal(r))
	c.reply(w, user, err)
}

func (c *AuthController) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	var body service.ProfileInput
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	user, err := c.Auth.CompleteProfile(r.Context(), principal(r), body)
	c.reply(w, user, err)
}

func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body service.ProfileUpdate
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	user, err := c.Auth.UpdateProfile(r.Context(), principal(r), body)
	c.reply(w, user, err)
}

type planRequest struct {
	Plan model.Plan `json:"plan"`
}

func (c *AuthController) UpgradePlan(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.WriteError(w, err)
		return
	}
	user, err := c.Auth.UpgradePlan(r.Context(), principal(r), body.Plan)
	c.reply(w, user, err)
}
