package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/store"
	"github.com/Kiash254/pos-terminal/pkg/token"
)

func signAccessToken(t *testing.T, userID int64, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"token_type": "access",
		"user_id":    userID,
		"exp":        time.Now().Add(ttl).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

// fakeBackend is an httptest stand-in for the POS REST API's auth surface.
type fakeBackend struct {
	t *testing.T

	mu           sync.Mutex
	validAccess  map[string]bool
	refreshOK    bool
	refreshGives string
	refreshHits  atomic.Int64
	profileHits  atomic.Int64
	// refreshGate, when set, blocks the refresh handler until released.
	refreshGate chan struct{}

	srv *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	f := &fakeBackend{t: t, validAccess: map[string]bool{}, refreshOK: true}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Username != "cashier" || body.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		access := signAccessToken(t, 1, 15*time.Minute)
		f.allow(access)
		json.NewEncoder(w).Encode(map[string]string{"access": access, "refresh": "refresh-1"})
	})
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		f.refreshHits.Add(1)
		if gate := f.gate(); gate != nil {
			<-gate
		}
		f.mu.Lock()
		ok, gives := f.refreshOK, f.refreshGives
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if gives == "" {
			gives = signAccessToken(t, 1, 15*time.Minute)
		}
		f.allow(gives)
		json.NewEncoder(w).Encode(map[string]string{"access": gives})
	})
	mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
		f.profileHits.Add(1)
		auth := r.Header.Get("Authorization")
		f.mu.Lock()
		ok := len(auth) > 7 && f.validAccess[auth[7:]]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(backend.UserProfile{ID: 1, Username: "cashier"})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) allow(access string) {
	f.mu.Lock()
	f.validAccess[access] = true
	f.mu.Unlock()
}

func (f *fakeBackend) gate() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshGate
}

func (f *fakeBackend) setRefreshOK(ok bool) {
	f.mu.Lock()
	f.refreshOK = ok
	f.mu.Unlock()
}

func newTestManager(t *testing.T, f *fakeBackend) (*Manager, store.Store) {
	st := store.NewMemStore()
	client := backend.NewClient(f.srv.URL, 5*time.Second, logger.NewNop())
	return NewManager(client, st, logger.NewNop()), st
}

func persistedPair(t *testing.T, st store.Store) (*token.Pair, bool) {
	b, err := st.Get(context.Background(), store.KeyTokenPair)
	if err != nil {
		return nil, false
	}
	var pair token.Pair
	require.NoError(t, json.Unmarshal(b, &pair))
	return &pair, true
}

func TestLoginSuccess(t *testing.T) {
	f := newFakeBackend(t)
	m, st := newTestManager(t, f)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "cashier", "pw"))

	assert.True(t, m.IsAuthenticated())
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, "cashier", m.CurrentUser().Username)

	pair, ok := persistedPair(t, st)
	require.True(t, ok)
	assert.Equal(t, "refresh-1", pair.Refresh)
	assert.Equal(t, m.AccessToken(), pair.Access)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFakeBackend(t)
	m, st := newTestManager(t, f)

	err := m.Login(context.Background(), "cashier", "wrong")
	assert.ErrorIs(t, err, backend.ErrInvalidCredentials)
	assert.False(t, m.IsAuthenticated())

	_, ok := persistedPair(t, st)
	assert.False(t, ok)
}

func TestRestoreWithValidToken(t *testing.T) {
	f := newFakeBackend(t)
	m, st := newTestManager(t, f)
	ctx := context.Background()

	access := signAccessToken(t, 1, 15*time.Minute)
	f.allow(access)
	b, _ := json.Marshal(token.Pair{Access: access, Refresh: "refresh-1"})
	require.NoError(t, st.Set(ctx, store.KeyTokenPair, b))

	m.Restore(ctx)

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, int64(0), f.refreshHits.Load())
}

func TestRestoreWithNothingPersisted(t *testing.T) {
	f := newFakeBackend(t)
	m, _ := newTestManager(t, f)

	m.Restore(context.Background())

	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, int64(0), f.profileHits.Load())
}

func TestRestoreExpiredTokenRefreshes(t *testing.T) {
	f := newFakeBackend(t)
	m, st := newTestManager(t, f)
	ctx := context.Background()

	expired := signAccessToken(t, 1, -time.Minute)
	b, _ := json.Marshal(token.Pair{Access: expired, Refresh: "refresh-1"})
	require.NoError(t, st.Set(ctx, store.KeyTokenPair, b))

	m.Restore(ctx)

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, int64(1), f.refreshHits.Load())
}

func TestRestoreRejectedTokenLogsOut(t *testing.T) {
	f := newFakeBackend(t)
	m, st := newTestManager(t, f)
	ctx := context.Background()

	// Unexpired by its claims, but the server does not accept it.
	access := signAccessToken(t, 1, 15*time.Minute)
	b, _ := json.Marshal(token.Pair{Access: access, Refresh: "refresh-1"})
	require.NoError(t, st.Set(ctx, store.KeyTokenPair, b))

	m.Restore(ctx)

	assert.False(t, m.IsAuthenticated())
	_, ok := persistedPair(t, st)
	assert.False(t, ok)
}

func TestRefreshFailureLogsOutAndClearsTokens(t *testing.T) {
	f := newFakeBackend(t)
	f.setRefreshOK(false)
	m, st := newTestManager(t, f)
	ctx := context.Background()

	b, _ := json.Marshal(token.Pair{Access: signAccessToken(t, 1, -time.Minute), Refresh: "stale"})
	require.NoError(t, st.Set(ctx, store.KeyTokenPair, b))

	err := m.Refresh(ctx)
	require.Error(t, err)
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.AccessToken())

	_, ok := persistedPair(t, st)
	assert.False(t, ok)
}

func TestRefreshWithoutRefreshTokenFailsClosed(t *testing.T) {
	f := newFakeBackend(t)
	m, _ := newTestManager(t, f)

	err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, int64(0), f.refreshHits.Load())
	assert.False(t, m.IsAuthenticated())
}

func TestRefreshCoalescesConcurrentCallers(t *testing.T) {
	f := newFakeBackend(t)
	f.mu.Lock()
	f.refreshGate = make(chan struct{})
	f.mu.Unlock()

	m, st := newTestManager(t, f)
	ctx := context.Background()

	b, _ := json.Marshal(token.Pair{Access: signAccessToken(t, 1, -time.Minute), Refresh: "refresh-1"})
	require.NoError(t, st.Set(ctx, store.KeyTokenPair, b))

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.Refresh(ctx)
		}(i)
	}

	// Let every caller attach to the in-flight exchange, then release it.
	time.Sleep(100 * time.Millisecond)
	close(f.refreshGate)
	wg.Wait()

	assert.Equal(t, int64(1), f.refreshHits.Load())
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.NotEmpty(t, m.AccessToken())
}

func TestLogoutDuringRefreshDiscardsOutcome(t *testing.T) {
	f := newFakeBackend(t)
	f.mu.Lock()
	f.refreshGate = make(chan struct{})
	f.mu.Unlock()

	m, st := newTestManager(t, f)
	ctx := context.Background()

	b, _ := json.Marshal(token.Pair{Access: signAccessToken(t, 1, -time.Minute), Refresh: "refresh-1"})
	require.NoError(t, st.Set(ctx, store.KeyTokenPair, b))

	done := make(chan error, 1)
	go func() { done <- m.Refresh(ctx) }()

	// Wait for the exchange to be in flight, then log out underneath it.
	require.Eventually(t, func() bool { return f.refreshHits.Load() == 1 },
		time.Second, 5*time.Millisecond)
	m.Logout(ctx)
	close(f.refreshGate)

	err := <-done
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.AccessToken())
	_, ok := persistedPair(t, st)
	assert.False(t, ok)
}

func TestLogoutIsUnconditional(t *testing.T) {
	f := newFakeBackend(t)
	m, _ := newTestManager(t, f)
	ctx := context.Background()

	// From a clean state.
	m.Logout(ctx)
	assert.False(t, m.IsAuthenticated())

	// And again after a login.
	require.NoError(t, m.Login(ctx, "cashier", "pw"))
	m.Logout(ctx)
	m.Logout(ctx)
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.CurrentUser())
}
