package draft

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/resume"
)

func TestDraft_Empty(t *testing.T) {
	assert.True(t, Draft{}.Empty())

	blank := Draft{FormData: resume.NewDocument(), Timestamp: time.Now()}
	assert.True(t, blank.Empty(), "a seeded but untouched document is the empty baseline")

	advanced := blank
	advanced.CurrentStep = 2
	assert.False(t, advanced.Empty())

	typed := blank
	typed.FormData.PersonalDetails.FullName = "Ada"
	assert.False(t, typed.Empty())

	described := blank
	described.FormData.WorkExperience[0].CompanyName = "Acme"
	assert.False(t, described.Empty())
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)

	doc := resume.NewDocument()
	doc.PersonalDetails.FullName = "Ada Lovelace"
	d := Draft{FormData: doc, CurrentStep: 3, Timestamp: time.Now()}
	require.NoError(t, store.Set(ctx, "sess-1", d))

	got, ok, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.CurrentStep)
	assert.Equal(t, "Ada Lovelace", got.FormData.PersonalDetails.FullName)

	require.NoError(t, store.Clear(ctx, "sess-1"))
	_, ok, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing again is not an error.
	require.NoError(t, store.Clear(ctx, "sess-1"))
}

func TestRedisStore_Lifecycle_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping integration test: REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := NewRedisStore(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	sessionID := "test-" + time.Now().Format("150405.000000000")
	defer store.Clear(ctx, sessionID)

	doc := resume.NewDocument()
	doc.Objective = "Build things"
	require.NoError(t, store.Set(ctx, sessionID, Draft{FormData: doc, CurrentStep: 1, Timestamp: time.Now()}))

	got, ok, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Build things", got.FormData.Objective)
	assert.Equal(t, 1, got.CurrentStep)

	require.NoError(t, store.Clear(ctx, sessionID))
	_, ok, err = store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}
