package auth

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenmenu/gateway/internal/models"
	"github.com/sevenmenu/gateway/internal/storage"
	"github.com/sevenmenu/gateway/internal/upstream"
)

type stubBackend struct {
	meCalls   int
	meResp    *upstream.MeResponse
	meErr     error
	loginResp *upstream.Session
	loginErr  error
}

func (s *stubBackend) Login(ctx context.Context, email, password string) (*upstream.Session, error) {
	return s.loginResp, s.loginErr
}

func (s *stubBackend) Register(ctx context.Context, email, password, name, restaurantName string) (*upstream.Session, error) {
	return s.loginResp, s.loginErr
}

func (s *stubBackend) Me(ctx context.Context, token string) (*upstream.MeResponse, error) {
	s.meCalls++
	return s.meResp, s.meErr
}

func testLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func profiles() (models.User, models.Restaurant) {
	return models.User{ID: 1, Email: "ana@sete.com", Name: "Ana"},
		models.Restaurant{ID: 1, Slug: "cantina-da-ana", Name: "Cantina da Ana", WhatsApp: "11987654321"}
}

func TestRestoreWithValidToken(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, TokenKey, "tok-123"))

	user, restaurant := profiles()
	backend := &stubBackend{meResp: &upstream.MeResponse{User: user, Restaurant: restaurant}}

	m := NewManager(store, backend, testLog())
	assert.True(t, m.Loading())
	assert.Equal(t, StateRestoring, m.State())

	m.Restore(ctx)

	assert.False(t, m.Loading())
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "tok-123", m.Token())
	require.NotNil(t, m.User())
	assert.Equal(t, "ana@sete.com", m.User().Email)
	require.NotNil(t, m.Restaurant())
	assert.Equal(t, "cantina-da-ana", m.Restaurant().Slug)
}

func TestRestoreWithoutTokenSkipsValidation(t *testing.T) {
	backend := &stubBackend{}
	m := NewManager(storage.NewMemoryStore(), backend, testLog())

	m.Restore(context.Background())

	assert.False(t, m.Loading())
	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Zero(t, backend.meCalls)
}

func TestRestoreWithRejectedTokenPurgesIt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, TokenKey, "stale"))

	backend := &stubBackend{meErr: &upstream.StatusError{Status: 401}}
	m := NewManager(store, backend, testLog())
	m.Restore(ctx)

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())
	assert.Nil(t, m.Restaurant())

	_, err := store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// a later start must not revalidate the purged token
	second := NewManager(store, backend, testLog())
	second.Restore(ctx)
	assert.Equal(t, 1, backend.meCalls)
}

func TestLoginPopulatesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	user, restaurant := profiles()
	backend := &stubBackend{loginResp: &upstream.Session{Token: "fresh", User: user, Restaurant: restaurant}}

	m := NewManager(store, backend, testLog())
	m.Restore(ctx)
	require.NoError(t, m.Login(ctx, "ana@sete.com", "secret"))

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "fresh", m.Token())

	persisted, err := store.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "fresh", persisted)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	backend := &stubBackend{loginErr: &upstream.AuthError{Detail: "Credenciais inválidas"}}
	m := NewManager(storage.NewMemoryStore(), backend, testLog())
	m.Restore(ctx)

	err := m.Login(ctx, "ana@sete.com", "wrong")

	var ae *upstream.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Credenciais inválidas", ae.Detail)
	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Empty(t, m.Token())
}

type failingRemoveStore struct {
	storage.Store
}

func (f failingRemoveStore) Remove(ctx context.Context, key string) error {
	return errors.New("disk on fire")
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	user, restaurant := profiles()
	backend := &stubBackend{loginResp: &upstream.Session{Token: "tok", User: user, Restaurant: restaurant}}

	m := NewManager(failingRemoveStore{storage.NewMemoryStore()}, backend, testLog())
	m.Restore(ctx)
	require.NoError(t, m.Login(ctx, "ana@sete.com", "secret"))

	m.Logout(ctx)

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())
	assert.Nil(t, m.Restaurant())
}

func TestUpdateRestaurantMergesLoadedProfile(t *testing.T) {
	ctx := context.Background()
	user, restaurant := profiles()
	backend := &stubBackend{loginResp: &upstream.Session{Token: "tok", User: user, Restaurant: restaurant}}
	m := NewManager(storage.NewMemoryStore(), backend, testLog())
	m.Restore(ctx)
	require.NoError(t, m.Login(ctx, "ana@sete.com", "secret"))

	name := "Cantina Nova"
	open := false
	m.UpdateRestaurant(models.RestaurantPatch{Name: &name, IsOpen: &open})

	got := m.Restaurant()
	require.NotNil(t, got)
	assert.Equal(t, "Cantina Nova", got.Name)
	assert.False(t, got.IsOpen)
	// untouched fields survive the merge
	assert.Equal(t, "11987654321", got.WhatsApp)
}

func TestUpdateRestaurantWithoutProfileIsNoOp(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), &stubBackend{}, testLog())
	m.Restore(context.Background())

	name := "Ghost"
	m.UpdateRestaurant(models.RestaurantPatch{Name: &name})

	assert.Nil(t, m.Restaurant())
}
