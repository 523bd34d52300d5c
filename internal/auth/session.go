// Package auth holds the gateway's admin session: the bearer token for the
// upstream backend plus the cached user and restaurant profiles behind it.
// One gateway process serves one restaurant, so there is a single session.
package auth

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sevenmenu/gateway/internal/models"
	"github.com/sevenmenu/gateway/internal/storage"
	"github.com/sevenmenu/gateway/internal/upstream"
)

// TokenKey is the storage key holding the persisted session token.
const TokenKey = "seven_token"

type State int

const (
	StateUnauthenticated State = iota
	StateRestoring
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Backend is the slice of the upstream client the session needs. An
// interface so tests can stub credential exchange.
type Backend interface {
	Login(ctx context.Context, email, password string) (*upstream.Session, error)
	Register(ctx context.Context, email, password, name, restaurantName string) (*upstream.Session, error)
	Me(ctx context.Context, token string) (*upstream.MeResponse, error)
}

// Manager owns the session state machine. The invariant it protects: user
// and restaurant are populated exactly when a validated token is present;
// an invalid token clears all three together.
type Manager struct {
	store   storage.Store
	backend Backend
	log     *logrus.Entry

	mu         sync.RWMutex
	loading    bool
	token      string
	user       *models.User
	restaurant *models.Restaurant
}

func NewManager(store storage.Store, backend Backend, log *logrus.Entry) *Manager {
	return &Manager{
		store:   store,
		backend: backend,
		log:     log,
		loading: true,
	}
}

// Restore replays a persisted token against the backend. It always ends the
// loading phase, success or not; route guards must not redirect before then.
// A token the backend rejects is purged from storage so the next start does
// not revalidate it.
func (m *Manager) Restore(ctx context.Context) {
	defer m.finishLoading()

	token, err := m.store.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			m.log.WithError(err).Warn("could not read stored session token")
		}
		return
	}

	me, err := m.backend.Me(ctx, token)
	if err != nil {
		m.log.WithError(err).Info("stored session token rejected, clearing it")
		if rmErr := m.store.Remove(ctx, TokenKey); rmErr != nil {
			m.log.WithError(rmErr).Warn("could not purge stored session token")
		}
		return
	}

	m.mu.Lock()
	m.token = token
	m.user = &me.User
	m.restaurant = &me.Restaurant
	m.mu.Unlock()
	m.log.WithField("user", me.User.Email).Info("session restored")
}

func (m *Manager) finishLoading() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// Login exchanges credentials and, on success, persists the new token and
// populates the session. On failure the session is left untouched and the
// backend's message comes back as *upstream.AuthError.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	session, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.adopt(ctx, session)
	return nil
}

// Register has the same contract as Login against the registration endpoint.
func (m *Manager) Register(ctx context.Context, email, password, name, restaurantName string) error {
	session, err := m.backend.Register(ctx, email, password, name, restaurantName)
	if err != nil {
		return err
	}
	m.adopt(ctx, session)
	return nil
}

func (m *Manager) adopt(ctx context.Context, session *upstream.Session) {
	if err := m.store.Set(ctx, TokenKey, session.Token); err != nil {
		// the session still works for this process lifetime
		m.log.WithError(err).Warn("could not persist session token")
	}
	m.mu.Lock()
	m.token = session.Token
	m.user = &session.User
	m.restaurant = &session.Restaurant
	m.mu.Unlock()
}

// Logout clears the persisted and in-memory session. It never fails: a
// storage error is logged and swallowed, logging out must not be blockable.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Remove(ctx, TokenKey); err != nil {
		m.log.WithError(err).Warn("could not remove stored session token")
	}
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.restaurant = nil
	m.mu.Unlock()
}

// UpdateRestaurant patches the cached restaurant profile in place. No
// backend call happens here; callers do that first and patch the cache only
// after the save succeeded. A no-op when no restaurant is loaded.
func (m *Manager) UpdateRestaurant(patch models.RestaurantPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.restaurant == nil {
		return
	}
	updated := patch.Apply(*m.restaurant)
	m.restaurant = &updated
}

func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) Restaurant() *models.Restaurant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.restaurant == nil {
		return nil
	}
	r := *m.restaurant
	return &r
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.loading:
		return StateRestoring
	case m.token != "":
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}
