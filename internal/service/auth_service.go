package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/repository"
)

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"

	// DefaultReturnTo is where a provider sign-in lands without a return path.
	DefaultReturnTo = "/dashboard"

	// PlanPeriod is how long a paid plan lasts after an upgrade.
	PlanPeriod = 30 * 24 * time.Hour
)

// AuthService owns the session: every mutation writes the profile store
// first and only then refreshes the cached user. A failed write leaves the
// cached user untouched and is returned as is.
type AuthService struct {
	Profiles repository.ProfileStore
	Sessions repository.SessionStore
	Tokens   *TokenIssuer

	// Google is nil when Google sign-in is not configured.
	Google IdentityProvider

	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Session is returned by every sign-in path.
type Session struct {
	Token        string      `json:"token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	User         *model.User `json:"user"`
	SelectedPlan model.Plan  `json:"selected_plan,omitempty"`
}

type SignUpInput struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	FullName string     `json:"full_name" validate:"required,max=120"`
	Plan     model.Plan `json:"plan"`
}

func (s *AuthService) openSession(ctx context.Context, p *model.Profile) (*Session, error) {
	token, principal, err := s.Tokens.Issue(p.ID)
	if err != nil {
		return nil, err
	}
	user := p.User()
	if err := s.Sessions.Put(ctx, principal.TokenID, user, time.Until(principal.ExpiresAt)); err != nil {
		return nil, fmt.Errorf("cache session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: principal.ExpiresAt, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUpWithEmail registers an email/password profile and signs it in. The
// requested plan is only echoed back; upgrading is a separate step.
func (s *AuthService) SignUpWithEmail(ctx context.Context, in SignUpInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Plan != "" && !in.Plan.Valid() {
		return nil, appErrors.ErrInvalidPlan
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	p := &model.Profile{
		ID:               uuid.NewString(),
		Email:            in.Email,
		PasswordHash:     string(hash),
		Provider:         ProviderEmail,
		FullName:         in.FullName,
		SubscriptionPlan: model.PlanFree,
	}
	if err := s.Profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	logrus.WithField("user_id", p.ID).Info("✅ profile created")

	sess, err := s.openSession(ctx, p)
	if err != nil {
		return nil, err
	}
	sess.SelectedPlan = in.Plan
	return sess, nil
}

func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string) (*Session, error) {
	p, err := s.Profiles.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if p.Provider != ProviderEmail || p.PasswordHash == "" {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}
	return s.openSession(ctx, p)
}

// ReturnPath accepts only a path on this site: it must start with a single
// slash and carry no scheme, host or backslash. Empty means DefaultReturnTo.
func ReturnPath(raw string) (string, error) {
	if raw == "" {
		return DefaultReturnTo, nil
	}
	invalid := &appErrors.ValidationError{Fields: map[string]string{"return_to": "must be a path on this site"}}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, "\\\r\n\t") {
		return "", invalid
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "", invalid
	}
	return raw, nil
}

// LoginWithGoogle builds the provider redirect. The state value carries the
// path to return to after sign-in.
func (s *AuthService) LoginWithGoogle(returnTo string) (string, error) {
	if s.Google == nil {
		return "", appErrors.ErrProviderNotConfigured
	}
	returnTo, err := ReturnPath(returnTo)
	if err != nil {
		return "", err
	}
	state, err := s.Tokens.State(returnTo)
	if err != nil {
		return "", err
	}
	return s.Google.AuthCodeURL(state), nil
}

// ProviderSession is what the provider redirect hands back: the signed state
// and the authorization code to exchange.
type ProviderSession struct {
	State string `json:"state" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// AcceptProviderSession exchanges the code with the provider and signs in
// the account it vouches for, creating the profile on first visit. An email
// already registered with a password is never linked. It returns the path
// carried in the state.
func (s *AuthService) AcceptProviderSession(ctx context.Context, ps ProviderSession) (*Session, string, error) {
	if s.Google == nil {
		return nil, "", appErrors.ErrProviderNotConfigured
	}
	if err := validateStruct(ps); err != nil {
		return nil, "", err
	}
	returnTo, err := s.Tokens.CheckState(ps.State)
	if err != nil {
		return nil, "", err
	}
	if returnTo, err = ReturnPath(returnTo); err != nil {
		return nil, "", err
	}

	id, err := s.Google.Identify(ctx, ps.Code)
	if err != nil {
		return nil, "", err
	}
	email := normalizeEmail(id.Email)
	if email == "" || !id.EmailVerified {
		return nil, "", fmt.Errorf("%w: provider email is not verified", appErrors.ErrUnauthenticated)
	}

	p, err := s.Profiles.GetByEmail(ctx, email)
	switch {
	case appErrors.IsNotFound(err):
		p = &model.Profile{
			ID:               uuid.NewString(),
			Email:            email,
			Provider:         ProviderGoogle,
			FullName:         strings.TrimSpace(id.FullName),
			SubscriptionPlan: model.PlanFree,
		}
		if err := s.Profiles.Create(ctx, p); err != nil {
			return nil, "", err
		}
		logrus.WithField("user_id", p.ID).Info("✅ profile created from provider session")
	case err != nil:
		return nil, "", err
	case p.Provider != ProviderGoogle:
		logrus.WithField("user_id", p.ID).Warn("⚠️ provider sign-in refused for a password account")
		return nil, "", fmt.Errorf("%w: sign in with email and password", appErrors.ErrEmailTaken)
	}

	sess, err := s.openSession(ctx, p)
	if err != nil {
		return nil, "", err
	}
	return sess, returnTo, nil
}

// Authenticate resolves a bearer token to its principal and cached user.
// A revoked or unknown session is unauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (Principal, *model.User, error) {
	p, err := s.Tokens.Verify(raw)
	if err != nil {
		return Principal{}, nil, err
	}
	user, err := s.Sessions.Get(ctx, p.TokenID)
	if err != nil {
		return Principal{}, nil, err
	}
	if user == nil {
		return Principal{}, nil, appErrors.ErrUnauthenticated
	}
	return p, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, p Principal) (*model.User, error) {
	user, err := s.Sessions.Get(ctx, p.TokenID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, p Principal) error {
	return s.Sessions.Delete(ctx, p.TokenID)
}

// mutate writes fields to the profile store and, only on success, replaces
// the cached session user with the stored record.
func (s *AuthService) mutate(ctx context.Context, p Principal, fields map[string]any) (*model.User, error) {
	ttl := time.Until(p.ExpiresAt)
	if ttl <= 0 {
		return nil, appErrors.ErrUnauthenticated
	}
	updated, err := s.Profiles.Update(ctx, p.UserID, fields)
	if err != nil {
		logrus.WithField("user_id", p.UserID).WithError(err).Warn("⚠️ profile update failed, session unchanged")
		return nil, err
	}
	user := updated.User()
	if err := s.Sessions.Put(ctx, p.TokenID, user, ttl); err != nil {
		return nil, fmt.Errorf("cache session: %w", err)
	}
	return user, nil
}

func (s *AuthService) AcceptTerms(ctx context.Context, p Principal) (*model.User, error) {
	now := s.now().UTC()
	return s.mutate(ctx, p, map[string]any{repository.ColTermsAcceptedAt: &now})
}

type ProfileInput struct {
	FullName    string            `json:"full_name" validate:"required,max=120"`
	Phone       string            `json:"phone" validate:"required,e164"`
	City        string            `json:"city" validate:"required,max=120"`
	BirthDate   string            `json:"birth_date" validate:"required,datetime=2006-01-02"`
	SocialMedia map[string]string `json:"social_media" validate:"omitempty,dive,keys,required,endkeys,url"`
}

// CompleteProfile fills the onboarding form and marks the profile complete.
func (s *AuthService) CompleteProfile(ctx context.Context, p Principal, in ProfileInput) (*model.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	fields := map[string]any{
		repository.ColFullName:         strings.TrimSpace(in.FullName),
		repository.ColPhone:            in.Phone,
		repository.ColCity:             strings.TrimSpace(in.City),
		repository.ColBirthDate:        in.BirthDate,
		repository.ColProfileCompleted: true,
	}
	if in.SocialMedia != nil {
		fields[repository.ColSocialMedia] = in.SocialMedia
	}
	return s.mutate(ctx, p, fields)
}

// ProfileUpdate is a partial edit; nil fields are left alone.
type ProfileUpdate struct {
	FullName    *string           `json:"full_name" validate:"omitempty,min=1,max=120"`
	Phone       *string           `json:"phone" validate:"omitempty,e164"`
	City        *string           `json:"city" validate:"omitempty,max=120"`
	BirthDate   *string           `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	SocialMedia map[string]string `json:"social_media" validate:"omitempty,dive,keys,required,endkeys,url"`
}

func (s *AuthService) UpdateProfile(ctx context.Context, p Principal, in ProfileUpdate) (*model.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.FullName != nil {
		fields[repository.ColFullName] = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		fields[repository.ColPhone] = *in.Phone
	}
	if in.City != nil {
		fields[repository.ColCity] = strings.TrimSpace(*in.City)
	}
	if in.BirthDate != nil {
		fields[repository.ColBirthDate] = *in.BirthDate
	}
	if in.SocialMedia != nil {
		fields[repository.ColSocialMedia] = in.SocialMedia
	}
	if len(fields) == 0 {
		return s.CurrentUser(ctx, p)
	}
	return s.mutate(ctx, p, fields)
}

// UpgradePlan switches the subscription. Paid plans run for PlanPeriod from
// now; the free plan has no expiry.
func (s *AuthService) UpgradePlan(ctx context.Context, p Principal, plan model.Plan) (*model.User, error) {
	if !plan.Valid() {
		return nil, appErrors.ErrInvalidPlan
	}
	var expires *time.Time
	if plan != model.PlanFree {
		t := s.now().UTC().Add(PlanPeriod)
		expires = &t
	}
	return s.mutate(ctx, p, map[string]any{
		repository.ColSubscriptionPlan:      plan,
		repository.ColSubscriptionExpiresAt: expires,
	})
}
