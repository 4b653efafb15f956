package backend

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"
)

// Authorizer supplies the current access token and a coalesced refresh.
// Implemented by the session manager.
type Authorizer interface {
	// AccessToken returns the current access token, or "" when there is
	// no authenticated session.
	AccessToken() string
	// Refresh exchanges the refresh token for a new access token. All
	// concurrent callers share one underlying exchange.
	Refresh(ctx context.Context) error
}

// Resilient wraps the raw client with credential injection and a single
// refresh-and-retry on authorization failure. All CRUD traffic goes
// through here.
type Resilient struct {
	client  *Client
	auth    Authorizer
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewResilient(client *Client, auth Authorizer) *Resilient {
	settings := gobreaker.Settings{
		Name: "pos-backend",
		// Only transport failures count against the breaker; a 4xx means
		// the backend is up and answering.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrNetwork)
		},
	}
	return &Resilient{
		client:  client,
		auth:    auth,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// Do sends one logical request with a retry budget of one. If the server
// rejects the credential, the request refreshes through the authorizer
// (coalesced across callers) and re-dispatches once with the new token.
// A second authorization failure surfaces to the caller; by then the
// session manager has already run its logout path.
func (r *Resilient) Do(ctx context.Context, method, path string, body, out interface{}) error {
	return r.send(ctx, method, path, body, out, 1)
}

func (r *Resilient) send(ctx context.Context, method, path string, body, out interface{}, retryBudget int) error {
	tok := r.auth.AccessToken()
	_, err := r.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, r.client.do(ctx, method, path, body, out, tok)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(ErrNetwork, err)
	}

	if errors.Is(err, ErrAuthorizationExpired) && retryBudget > 0 {
		if refreshErr := r.auth.Refresh(ctx); refreshErr != nil {
			// Propagate the original authorization failure; the refresh
			// failure already forced a logout.
			return err
		}
		return r.send(ctx, method, path, body, out, retryBudget-1)
	}
	return err
}
