package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/Kiash254/pos-terminal/pkg/token"
)

// Auth endpoints. All of these go through the raw client on purpose: they
// are the calls the refresh machinery itself issues, so routing them
// through the resilient wrapper would recurse.

// ObtainToken exchanges credentials for a token pair.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (*token.Pair, error) {
	body := map[string]string{"username": username, "password": password}
	var pair token.Pair
	err := c.do(ctx, http.MethodPost, "/api/token/", body, &pair, "")
	if errors.Is(err, ErrAuthorizationExpired) {
		// On the token endpoint a 401 means the credentials were wrong,
		// not that a credential went stale.
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshToken exchanges a refresh token for a fresh access token.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	body := map[string]string{"refresh": refresh}
	var out struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/token/refresh/", body, &out, ""); err != nil {
		return "", err
	}
	return out.Access, nil
}

// FetchProfile loads the authenticated user's profile with the given token.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/profile/", nil, &profile, accessToken); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*UserProfile, error) {
	var profile UserProfile
	err := c.do(ctx, http.MethodPost, "/api/register/", input, &profile, "")
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, input ProfileUpdate) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, http.MethodPut, "/api/profile/", input, &profile, accessToken); err != nil {
		return nil, err
	}
	return &profile, nil
}
