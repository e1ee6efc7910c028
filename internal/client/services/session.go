// Package services contains the application services of the GeoVision
// client. This file defines the session manager: the owner of the
// authentication lifecycle — login, registration, logout, stored-session
// restoration, token verification and refresh.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/api"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/models"
	sessionrepo "github.com/karanja-droid/geo-miner-ai-sub000/internal/client/repositories/session"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/common"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/logging"
)

const (
	loginPath    = "/api/v1/auth/login"
	registerPath = "/api/v1/auth/register"
	verifyPath   = "/api/v1/auth/test-token"
	refreshPath  = "/api/v1/auth/refresh-token"
)

// SessionManager owns the session state machine. It is the only writer of
// the session state and of durable session storage; everything else reads
// state through State or Subscribe.
//
// The manager never holds its lock across a network or storage call, so
// observers always see consistent snapshots and a slow backend cannot block
// state reads.
type SessionManager struct {
	client *api.Client
	store  sessionrepo.Store
	nav    Navigator
	log    logging.Logger

	mu      sync.RWMutex
	state   SessionState
	subs    map[int]func(SessionState)
	nextSub int

	refresh singleflight.Group
}

// NewSessionManager wires the manager to its collaborators and installs the
// bearer-token source and the 401 hook on the API client. The session starts
// empty with IsLoading set, until VerifySession resolves the bootstrap.
func NewSessionManager(client *api.Client, store sessionrepo.Store, nav Navigator, log logging.Logger) *SessionManager {
	m := &SessionManager{
		client: client,
		store:  store,
		nav:    nav,
		log:    log.With("component", "session"),
		state:  SessionState{IsLoading: true},
		subs:   make(map[int]func(SessionState)),
	}

	client.SetTokenSource(m.currentToken)
	client.SetUnauthorizedHook(m.handleUnauthorized)

	return m
}

// State returns a snapshot of the current session state.
func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers fn to be called with every state transition and
// returns an unsubscribe function. Callbacks run synchronously on the
// goroutine performing the transition.
func (m *SessionManager) Subscribe(fn func(SessionState)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Login authenticates with the backend. Malformed input fails locally
// without a network call; a response missing the token or the minimal user
// fields is a shape failure, not a partial login. A failed durable write
// does not roll back the in-memory session.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	if err := validateLogin(email, password); err != nil {
		return err
	}

	m.setLoading(true)

	res := m.client.PostJSON(ctx, loginPath, models.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if !res.OK() {
		m.setLoading(false)
		return errors.New(res.Err)
	}

	return m.installTokenResponse(ctx, res)
}

// Register creates an account and, like Login, installs the returned
// session. An already-registered email surfaces a distinct message instead
// of the raw backend text.
func (m *SessionManager) Register(ctx context.Context, params models.RegisterRequest) error {
	if err := validateRegistration(params.FullName, params.Email, params.Password); err != nil {
		return err
	}

	m.setLoading(true)

	res := m.client.PostJSON(ctx, registerPath, models.RegisterRequest{
		FullName:     strings.TrimSpace(params.FullName),
		Email:        strings.TrimSpace(params.Email),
		Password:     params.Password,
		Organization: strings.TrimSpace(params.Organization),
	})
	if !res.OK() {
		m.setLoading(false)
		if isConflict(res) {
			return common.ErrAccountExists
		}
		return errors.New(res.Err)
	}

	return m.installTokenResponse(ctx, res)
}

// Logout clears the session locally. The in-memory state is authoritative;
// purge failures are logged and the logout proceeds regardless.
func (m *SessionManager) Logout(ctx context.Context) {
	m.setState(SessionState{})
	m.purgeStoredSession(ctx)
	m.nav.NavigateToLogin()
}

// VerifySession restores the session from durable storage at bootstrap.
//
// A partial or corrupt record (either key missing, or the user not parsing
// as a complete profile) is purged and treated as entirely absent. A
// well-formed record installs an optimistic authenticated state immediately
// — observers see it before the server round trip resolves — and is then
// verified against the backend; any verification failure reverts the session
// and purges storage, so a revoked token is never left installed.
func (m *SessionManager) VerifySession(ctx context.Context) {
	token, user, ok := m.readStoredSession(ctx)
	if !ok {
		m.purgeStoredSession(ctx)
		m.setState(SessionState{})
		return
	}

	m.setState(SessionState{User: user, Token: token, IsAuthenticated: true})

	res := m.client.PostJSON(ctx, verifyPath, nil)
	if !res.OK() {
		m.log.Info(ctx, "stored session failed verification", "reason", res.Err)
		m.setState(SessionState{})
		m.purgeStoredSession(ctx)
		return
	}

	// The backend returns the current profile; prefer it over the cached
	// copy when it is well-formed.
	var fresh models.User
	if err := res.Decode(&fresh); err != nil || !fresh.Complete() {
		m.log.Warn(ctx, "verification response missing user fields")
		m.setState(SessionState{})
		m.purgeStoredSession(ctx)
		return
	}

	m.setState(SessionState{User: &fresh, Token: token, IsAuthenticated: true})
	m.persistSession(ctx, &fresh, token)
}

// RefreshToken exchanges the current token for a fresh one. Concurrent calls
// collapse into a single network request. Any failure — transport, HTTP,
// missing token in the response — forces the session to Unauthenticated and
// raises the navigate-to-login intent; refreshes are never retried silently.
func (m *SessionManager) RefreshToken(ctx context.Context) error {
	if m.currentToken() == "" {
		return common.ErrNotAuthenticated
	}

	_, err, _ := m.refresh.Do("refresh", func() (any, error) {
		res := m.client.PostJSON(ctx, refreshPath, nil)
		if !res.OK() {
			m.forceLogout(ctx, "token refresh failed", res.Err)
			return nil, errors.New(res.Err)
		}

		var tr models.TokenResponse
		if err := res.Decode(&tr); err != nil || tr.AccessToken == "" {
			m.forceLogout(ctx, "token refresh returned no token", "")
			return nil, common.ErrInvalidServerResponse
		}

		m.mu.Lock()
		m.state.Token = tr.AccessToken
		if tr.User.Complete() {
			m.state.User = tr.User
		}
		m.state.IsAuthenticated = m.state.User != nil
		state := m.state
		m.mu.Unlock()
		m.notify(state)

		m.persistSession(ctx, state.User, state.Token)
		return nil, nil
	})
	return err
}

// installTokenResponse shape-validates a login/register payload and installs
// the session on success.
func (m *SessionManager) installTokenResponse(ctx context.Context, res *api.Result) error {
	var tr models.TokenResponse
	if err := res.Decode(&tr); err != nil || tr.AccessToken == "" {
		m.setLoading(false)
		return common.ErrInvalidServerResponse
	}
	if !tr.User.Complete() {
		m.setLoading(false)
		return common.ErrInvalidUserData
	}

	m.setState(SessionState{User: tr.User, Token: tr.AccessToken, IsAuthenticated: true})
	m.persistSession(ctx, tr.User, tr.AccessToken)
	return nil
}

// readStoredSession loads and parses the durable record. Storage read errors
// count as an absent record.
func (m *SessionManager) readStoredSession(ctx context.Context) (string, *models.User, bool) {
	rawToken, err := m.store.Get(ctx, common.TokenStorageKey)
	if err != nil {
		m.log.Warn(ctx, "failed to read stored token", "error", err)
		return "", nil, false
	}
	rawUser, err := m.store.Get(ctx, common.UserStorageKey)
	if err != nil {
		m.log.Warn(ctx, "failed to read stored user", "error", err)
		return "", nil, false
	}
	if len(rawToken) == 0 || len(rawUser) == 0 {
		return "", nil, false
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil || !user.Complete() {
		m.log.Warn(ctx, "stored user record is corrupt, discarding session")
		return "", nil, false
	}

	return string(rawToken), &user, true
}

func (m *SessionManager) persistSession(ctx context.Context, user *models.User, token string) {
	rawUser, err := json.Marshal(user)
	if err != nil {
		m.log.Warn(ctx, "failed to encode user for storage", "error", err)
		return
	}
	err = m.store.Replace(ctx, map[string][]byte{
		common.TokenStorageKey: []byte(token),
		common.UserStorageKey:  rawUser,
	})
	if err != nil {
		// The in-memory session stays authoritative for this run.
		m.log.Warn(ctx, "failed to persist session", "error", err)
	}
}

func (m *SessionManager) purgeStoredSession(ctx context.Context) {
	if err := m.store.Delete(ctx, common.TokenStorageKey); err != nil {
		m.log.Warn(ctx, "failed to purge stored token", "error", err)
	}
	if err := m.store.Delete(ctx, common.UserStorageKey); err != nil {
		m.log.Warn(ctx, "failed to purge stored user", "error", err)
	}
}

func (m *SessionManager) forceLogout(ctx context.Context, msg, reason string) {
	m.log.Info(ctx, msg, "reason", reason)
	m.setState(SessionState{})
	m.purgeStoredSession(ctx)
	m.nav.NavigateToLogin()
}

// handleUnauthorized is the 401 hook installed on the API client: durable
// storage is purged and the login surface requested no matter which
// operation saw the 401.
func (m *SessionManager) handleUnauthorized() {
	ctx := context.Background()
	m.purgeStoredSession(ctx)
	m.nav.NavigateToLogin()
}

func (m *SessionManager) currentToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

func (m *SessionManager) setLoading(loading bool) {
	m.mu.Lock()
	m.state.IsLoading = loading
	state := m.state
	m.mu.Unlock()
	m.notify(state)
}

func (m *SessionManager) setState(state SessionState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
	m.notify(state)
}

func (m *SessionManager) notify(state SessionState) {
	m.mu.RLock()
	subs := make([]func(SessionState), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}

// isConflict detects the account-already-exists case: a 409, or the
// backend's 400 with an "already exists" detail.
func isConflict(res *api.Result) bool {
	if res.Status == 409 {
		return true
	}
	return res.Status == 400 && strings.Contains(strings.ToLower(res.Err), "already exists")
}
