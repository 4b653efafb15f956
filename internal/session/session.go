package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/store"
	"github.com/Kiash254/pos-terminal/pkg/token"
)

// Status is the lifecycle state of the terminal's single session.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

var (
	// ErrNoSession is returned by Refresh when there is no refresh token
	// to exchange.
	ErrNoSession = errors.New("session: no refresh token")

	// ErrSessionClosed is returned when a refresh completed after a
	// logout; its outcome is discarded rather than re-authenticating.
	ErrSessionClosed = errors.New("session: closed during refresh")
)

// Manager is the single source of truth for whether the terminal is
// authenticated and with what credential. It owns the persisted token
// pair and the decoded profile, schedules refreshes, and implements
// backend.Authorizer for the resilient client.
type Manager struct {
	client *backend.Client
	store  store.Store
	log    logger.Logger

	mu     sync.Mutex
	status Status
	pair   *token.Pair
	user   *backend.UserProfile
	// epoch increments on every logout. A refresh that started before a
	// logout observes a stale epoch and is discarded on completion.
	epoch uint64

	sf singleflight.Group
}

func NewManager(client *backend.Client, st store.Store, log logger.Logger) *Manager {
	return &Manager{
		client: client,
		store:  st,
		log:    log.Named("session"),
	}
}

// Login exchanges credentials for a token pair, persists it, then fetches
// the user profile before the session counts as authenticated. A rejected
// login surfaces backend.ErrInvalidCredentials; a profile fetch failure
// rolls the session back to unauthenticated.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	m.status = StatusAuthenticating
	m.mu.Unlock()

	pair, err := m.client.ObtainToken(ctx, username, password)
	if err != nil {
		m.mu.Lock()
		if m.status == StatusAuthenticating {
			m.status = StatusUnauthenticated
		}
		m.mu.Unlock()
		return err
	}

	if err := m.persistPair(ctx, pair); err != nil {
		m.log.Error("persisting token pair failed", "error", err)
	}

	profile, err := m.client.FetchProfile(ctx, pair.Access)
	if err != nil {
		m.Logout(ctx)
		return err
	}

	m.mu.Lock()
	m.pair = pair
	m.user = profile
	m.status = StatusAuthenticated
	m.mu.Unlock()

	m.log.Info("login succeeded", "user", profile.Username)
	return nil
}

// Logout clears the session and the persisted tokens. It is unconditional:
// safe from any state, safe while a refresh is in flight (the refresh's
// eventual outcome is discarded via the epoch check), and it never fails.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.epoch++
	m.pair = nil
	m.user = nil
	m.status = StatusUnauthenticated
	if err := m.store.Delete(ctx, store.KeyTokenPair); err != nil {
		m.log.Warn("clearing persisted tokens failed", "error", err)
	}
	m.mu.Unlock()

	m.log.Info("logged out")
}

// Register creates a new account. It does not log the new user in.
func (m *Manager) Register(ctx context.Context, input backend.RegisterInput) (*backend.UserProfile, error) {
	return m.client.Register(ctx, input)
}

// Restore rehydrates the session from the persistent store at startup.
// An absent or undecodable token pair leaves the session unauthenticated;
// an expired access token is exchanged through Refresh; a token the server
// rejects on the profile fetch forces a logout regardless of its claimed
// expiry. Restore itself never fails: every bad outcome lands in the
// unauthenticated state.
func (m *Manager) Restore(ctx context.Context) {
	pair, ok := m.loadPair(ctx)
	if !ok {
		return
	}

	claims, err := token.Decode(pair.Access)
	if err != nil || claims.Expired() {
		if err := m.Refresh(ctx); err != nil {
			return // Refresh already logged out
		}
		m.mu.Lock()
		pair = m.pair
		m.mu.Unlock()
	} else {
		m.mu.Lock()
		m.pair = pair
		m.mu.Unlock()
	}

	profile, err := m.client.FetchProfile(ctx, pair.Access)
	if err != nil {
		m.log.Warn("restore: profile fetch failed", "error", err)
		m.Logout(ctx)
		return
	}

	m.mu.Lock()
	m.user = profile
	m.status = StatusAuthenticated
	m.mu.Unlock()

	m.log.Info("session restored", "user", profile.Username)
}

// Refresh exchanges the persisted refresh token for a new access token.
// Concurrent callers coalesce onto one in-flight exchange and share its
// outcome. Any failure, including a network error, fails closed with a
// logout rather than leaving a half-dead session behind.
func (m *Manager) Refresh(ctx context.Context) error {
	// The exchange outlives any single caller: a canceled request must
	// not abort a refresh that other callers are waiting on.
	refreshCtx := context.WithoutCancel(ctx)
	_, err, _ := m.sf.Do("refresh", func() (interface{}, error) {
		return nil, m.refresh(refreshCtx)
	})
	return err
}

func (m *Manager) refresh(ctx context.Context) error {
	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	pair, ok := m.loadPair(ctx)
	if !ok || pair.Refresh == "" {
		m.Logout(ctx)
		return ErrNoSession
	}

	access, err := m.client.RefreshToken(ctx, pair.Refresh)
	if err != nil {
		m.log.Warn("token refresh rejected", "error", err)
		m.Logout(ctx)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		// A logout won the race. Do not re-authenticate.
		return ErrSessionClosed
	}
	fresh := &token.Pair{Access: access, Refresh: pair.Refresh}
	m.pair = fresh
	m.status = StatusAuthenticated
	b, err := json.Marshal(fresh)
	if err == nil {
		err = m.store.Set(ctx, store.KeyTokenPair, b)
	}
	if err != nil {
		m.log.Error("persisting refreshed token pair failed", "error", err)
	}
	return nil
}

// UpdateProfile updates the remote profile and the cached copy.
func (m *Manager) UpdateProfile(ctx context.Context, input backend.ProfileUpdate) (*backend.UserProfile, error) {
	profile, err := m.client.UpdateProfile(ctx, m.AccessToken(), input)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.user = profile
	m.mu.Unlock()
	return profile, nil
}

// AccessToken implements backend.Authorizer.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair == nil {
		return ""
	}
	return m.pair.Access
}

// IsAuthenticated reports whether the session is live right now.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusAuthenticated
}

// CurrentUser returns the profile of the authenticated user, or nil.
func (m *Manager) CurrentUser() *backend.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	cp := *m.user
	return &cp
}

func (m *Manager) persistPair(ctx context.Context, pair *token.Pair) error {
	b, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, store.KeyTokenPair, b)
}

// loadPair reads the persisted token pair. Any read or decode failure is
// treated as "no session persisted".
func (m *Manager) loadPair(ctx context.Context) (*token.Pair, bool) {
	b, err := m.store.Get(ctx, store.KeyTokenPair)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.Warn("reading persisted tokens failed", "error", err)
		}
		return nil, false
	}
	var pair token.Pair
	if err := json.Unmarshal(b, &pair); err != nil || pair.Access == "" {
		return nil, false
	}
	return &pair, true
}
