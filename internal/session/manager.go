// Package session owns the client's authentication state: who is logged in,
// derived from the backend at startup and updated by login/logout. It is the
// single source of truth the rest of the application reads.
package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/pixelhive/pixelhive-cli/internal/api"
	"github.com/pixelhive/pixelhive-cli/internal/notify"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// AuthService is the backend surface the manager needs. *api.AuthAPI
// satisfies it; tests substitute fakes.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) api.Result[api.AuthData]
	Logout(ctx context.Context) api.Result[api.Envelope]
	Profile(ctx context.Context) api.Result[api.AuthData]
	Signup(ctx context.Context, data models.SignupData) api.Result[api.Envelope]
}

// Snapshot is one observation of the session. User is non-nil exactly when
// IsAuthenticated is true; Loading is true only until the initial resolution
// completes.
type Snapshot struct {
	User            *models.UserProfile
	IsAuthenticated bool
	Loading         bool
}

// OpResult is the outcome of a session operation. Error is always set when
// Success is false.
type OpResult struct {
	Success bool
	Error   string
	User    *models.UserProfile
}

const genericNetworkError = "Network error. Please try again."

// Manager holds the process-wide session. Snapshots are replaced wholesale
// under the lock, so a reader can never observe authenticated-without-user
// or the reverse.
//
// Concurrency contract: Resolve runs at most once per process. Login, Logout
// and Signup are not serialized against each other; when calls overlap the
// last one to complete wins the snapshot. The UI disables controls during
// in-flight operations, so overlap is discouraged rather than prevented.
type Manager struct {
	mu     sync.RWMutex
	cur    Snapshot
	auth   AuthService
	events *notify.Bus
	logger *slog.Logger

	resolveOnce sync.Once

	// onClear runs after logout clears the session; wiring uses it to drop
	// the persisted cookie jar.
	onClear func()
}

// NewManager creates a Manager in the loading state. events and logger may
// be nil.
func NewManager(auth AuthService, events *notify.Bus, logger *slog.Logger) *Manager {
	if events == nil {
		events = notify.NewBus(0)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		cur:    Snapshot{Loading: true},
		auth:   auth,
		events: events,
		logger: logger,
	}
}

// OnClear registers a hook invoked whenever the session is cleared.
func (m *Manager) OnClear(fn func()) {
	m.onClear = fn
}

// Current returns the session as of now. Panics when called on a nil
// manager: silently reporting "logged out" from an uninitialized scope is
// exactly the failure mode this accessor exists to prevent.
func (m *Manager) Current() Snapshot {
	if m == nil {
		panic("session: manager accessed before initialization")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Resolve derives the session from the backend's profile endpoint. It runs
// the resolution at most once per process; later calls return the settled
// state. Every failure mode (transport error, non-2xx, missing profile)
// collapses to logged out: an ambiguous session cookie is treated as no
// session at all.
func (m *Manager) Resolve(ctx context.Context) Snapshot {
	m.resolveOnce.Do(func() {
		res := m.auth.Profile(ctx)

		if res.Success && res.Data.OK() && res.Data.User != nil {
			m.swap(Snapshot{User: res.Data.User, IsAuthenticated: true})
			m.logger.Debug("session resolved", "user", res.Data.User.Email)
			return
		}

		m.logger.Debug("session resolution failed closed", "status", res.Status, "error", res.Error)
		m.swap(Snapshot{})
	})
	return m.Current()
}

// Login exchanges credentials for an authenticated session. On any failure
// the current snapshot is left untouched.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) OpResult {
	res := m.auth.Login(ctx, creds)

	if res.Success && res.Data.OK() && res.Data.User != nil {
		user := res.Data.User
		m.swap(Snapshot{User: user, IsAuthenticated: true})
		m.events.Success("Welcome back, " + user.Name + "!")
		return OpResult{Success: true, User: user}
	}

	msg := genericNetworkError
	if res.Error == "" {
		msg = res.Data.ErrorMessage("Login failed")
	}
	m.events.Error(msg)
	return OpResult{Error: msg}
}

// Logout clears the session unconditionally. The backend call is attempted
// first, but its failure is tolerated and logged: the user's intent is to
// stop being treated as authenticated locally, and that must not depend on
// the network.
func (m *Manager) Logout(ctx context.Context) OpResult {
	res := m.auth.Logout(ctx)
	if !res.Success {
		m.logger.Warn("logout request failed, clearing session anyway", "status", res.Status, "error", res.Error)
	}

	m.swap(Snapshot{})
	if m.onClear != nil {
		m.onClear()
	}
	m.events.Info("Logged out")
	return OpResult{Success: true}
}

// Signup registers an account and forwards the backend's verdict. The
// session is not touched: signing up does not log the user in.
func (m *Manager) Signup(ctx context.Context, data models.SignupData) OpResult {
	res := m.auth.Signup(ctx, data)

	if res.Success && res.Data.OK() {
		m.events.Success("Account created successfully! You can now log in.")
		return OpResult{Success: true}
	}

	msg := genericNetworkError
	if res.Error == "" {
		msg = res.Data.ErrorMessage("Failed to create account")
	}
	m.events.Error(msg)
	return OpResult{Error: msg}
}

// swap replaces the snapshot wholesale. Loading is preserved only through
// the initial resolution; any explicit transition settles it to false.
func (m *Manager) swap(next Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = next
}
