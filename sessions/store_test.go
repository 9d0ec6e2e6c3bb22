package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

func TestStorePutGetDelete(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	session := models.Session{ID: "s1", Subject: "Physics", CreatedAt: now, ExpiresAt: now.Add(2 * time.Minute)}
	store.Put(session)

	got, ok := store.Get("s1")
	assert.True(t, ok)
	assert.Equal(t, session, got)

	// Put overwrites by id.
	session.Room = "B-204"
	store.Put(session)
	got, _ = store.Get("s1")
	assert.Equal(t, "B-204", got.Room)

	store.Delete("s1")
	_, ok = store.Get("s1")
	assert.False(t, ok)
}

func TestStoreSweepExpired(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	store.Put(models.Session{ID: "past", ExpiresAt: now.Add(-time.Second)})
	store.Put(models.Session{ID: "boundary", ExpiresAt: now})
	store.Put(models.Session{ID: "future", ExpiresAt: now.Add(time.Minute)})

	removed := store.SweepExpired(now)
	assert.Equal(t, 1, removed)

	_, ok := store.Get("past")
	assert.False(t, ok)

	// Sweep removal is strict: a session expiring exactly now survives until
	// the next sweep.
	_, ok = store.Get("boundary")
	assert.True(t, ok)
	_, ok = store.Get("future")
	assert.True(t, ok)

	assert.Equal(t, 2, store.Len())
}
