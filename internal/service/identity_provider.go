package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ProviderIdentity is the account an identity provider vouches for.
type ProviderIdentity struct {
	Email         string
	EmailVerified bool
	FullName      string
}

// IdentityProvider runs the authorization-code flow against an external
// sign-in provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	// Identify exchanges the authorization code and returns the account it
	// belongs to. The code is single-use.
	Identify(ctx context.Context, code string) (*ProviderIdentity, error)
}

// GoogleProvider signs users in with their Google account.
type GoogleProvider struct {
	Config      oauth2.Config
	UserInfoURL string
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		UserInfoURL: googleUserInfoURL,
	}
}

func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.Config.AuthCodeURL(state)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (g *GoogleProvider) Identify(ctx context.Context, code string) (*ProviderIdentity, error) {
	tok, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %v", appErrors.ErrUnauthenticated, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.Config.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch google user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch google user info: status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode google user info: %w", err)
	}
	return &ProviderIdentity{Email: info.Email, EmailVerified: info.VerifiedEmail, FullName: info.Name}, nil
}
