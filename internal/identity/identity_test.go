package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	rec       Record
	found     bool
	saveErr   error
	deleteErr error
	deletes   int
}

func (m *memoryStorage) Load(context.Context) (Record, bool, error) { return m.rec, m.found, nil }

func (m *memoryStorage) Save(_ context.Context, rec Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rec, m.found = rec, true
	return nil
}

func (m *memoryStorage) Delete(context.Context) error {
	m.deletes++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.rec, m.found = Record{}, false
	return nil
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func TestResolve(t *testing.T) {
	tests := []struct {
		token    string
		wantRole Role
		wantID   string
		wantOK   bool
	}{
		{"", RoleAnonymous, "", false},
		{"admin", RoleAdmin, "", false},
		{"jsmith", RoleTraveler, "jsmith", true},
		{"42", RoleTraveler, "42", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			s := Resolve(tt.token)
			assert.Equal(t, tt.wantRole, s.Role())
			id, ok := s.PassengerID()
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.token, s.Token())
		})
	}
}

func TestTraveler_EmptyIDIsAnonymous(t *testing.T) {
	assert.True(t, Traveler("").IsAnonymous())
	assert.Equal(t, "traveler(7)", Traveler("7").String())
	assert.Equal(t, "admin", Admin().String())
}

func TestStore_SetPersistsWithExpiry(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	storage := &memoryStorage{}

	store, err := NewStore(ctx, storage, WithClock(c.Now))
	require.NoError(t, err)
	assert.True(t, store.Get().IsAnonymous())

	session, err := store.Set(ctx, "jsmith")
	require.NoError(t, err)
	assert.Equal(t, RoleTraveler, session.Role())
	assert.Equal(t, session, store.Get())

	require.True(t, storage.found)
	assert.Equal(t, "jsmith", storage.rec.Token)
	assert.Equal(t, c.t.Add(DefaultTTL), storage.rec.ExpiresAt)
	assert.Equal(t, c.t.Add(DefaultTTL), store.ExpiresAt())
}

func TestStore_AdminToken(t *testing.T) {
	ctx := context.Background()
	storage := &memoryStorage{}
	store, err := NewStore(ctx, storage)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, Admin()))
	assert.Equal(t, RoleAdmin, store.Get().Role())
	assert.Equal(t, "admin", storage.rec.Token)
}

func TestStore_RestoresLiveRecord(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	storage := &memoryStorage{
		rec:   Record{Token: "admin", ExpiresAt: now.Add(time.Hour)},
		found: true,
	}

	store, err := NewStore(ctx, storage, WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	assert.Equal(t, Admin(), store.Get())
}

func TestStore_ExpiredRecordLoadsAnonymous(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	storage := &memoryStorage{
		rec:   Record{Token: "jsmith", ExpiresAt: now},
		found: true,
	}

	store, err := NewStore(ctx, storage, WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	assert.True(t, store.Get().IsAnonymous())
	assert.False(t, storage.found)
	assert.Equal(t, 1, storage.deletes)
}

func TestStore_WithoutLoggerOption(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	storage := &memoryStorage{
		rec:       Record{Token: "jsmith", ExpiresAt: now.Add(-time.Minute)},
		found:     true,
		deleteErr: errors.New("disk full"),
	}

	var store *Store
	require.NotPanics(t, func() {
		var err error
		store, err = NewStore(ctx, storage, WithClock(func() time.Time { return now }))
		require.NoError(t, err)
	})
	assert.True(t, store.Get().IsAnonymous())

	storage.deleteErr = nil
	require.NotPanics(t, func() {
		require.NoError(t, store.Put(ctx, Traveler("rory")))
	})
	assert.Equal(t, "rory", storage.rec.Token)
}

func TestStore_GetLapsesAfterTTL(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store, err := NewStore(ctx, &memoryStorage{}, WithClock(c.Now), WithTTL(time.Hour))
	require.NoError(t, err)

	_, err = store.Set(ctx, "jsmith")
	require.NoError(t, err)

	c.t = c.t.Add(59 * time.Minute)
	assert.Equal(t, RoleTraveler, store.Get().Role())

	c.t = c.t.Add(time.Minute)
	assert.True(t, store.Get().IsAnonymous())
}

func TestStore_SaveFailureKeepsPreviousSession(t *testing.T) {
	ctx := context.Background()
	storage := &memoryStorage{}
	store, err := NewStore(ctx, storage)
	require.NoError(t, err)

	storage.saveErr = errors.New("disk full")
	_, err = store.Set(ctx, "jsmith")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.saveErr)
	assert.True(t, store.Get().IsAnonymous())
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	storage := &memoryStorage{}
	store, err := NewStore(ctx, storage)
	require.NoError(t, err)

	_, err = store.Set(ctx, "jsmith")
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))
	assert.True(t, store.Get().IsAnonymous())
	assert.False(t, storage.found)
	assert.True(t, store.ExpiresAt().IsZero())
}

func TestStore_ClearDropsMemoryEvenOnStorageError(t *testing.T) {
	ctx := context.Background()
	storage := &memoryStorage{}
	store, err := NewStore(ctx, storage)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, Traveler("9")))

	storage.deleteErr = errors.New("locked")
	err = store.Clear(ctx)
	require.Error(t, err)
	assert.True(t, store.Get().IsAnonymous())
}

func TestStore_PutAnonymousClears(t *testing.T) {
	ctx := context.Background()
	storage := &memoryStorage{}
	store, err := NewStore(ctx, storage)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, Traveler("9")))

	require.NoError(t, store.Put(ctx, Anonymous()))
	assert.True(t, store.Get().IsAnonymous())
	assert.False(t, storage.found)
}

func tempStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := tempStorage(t)

	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	expires := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, Record{Token: "jsmith", ExpiresAt: expires}))
	require.NoError(t, s.Save(ctx, Record{Token: "admin", ExpiresAt: expires}))

	rec, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "admin", rec.Token)
	assert.True(t, expires.Equal(rec.ExpiresAt))

	require.NoError(t, s.Delete(ctx))
	_, found, err = s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")
	now := time.Now()

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	store, err := NewStore(ctx, first)
	require.NoError(t, err)
	_, err = store.Set(ctx, "jsmith")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	reloaded, err := NewStore(ctx, second, WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	id, ok := reloaded.Get().PassengerID()
	assert.True(t, ok)
	assert.Equal(t, "jsmith", id)
}
