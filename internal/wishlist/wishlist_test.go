package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Add_IdempotentOnID(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore(), zerolog.Nop())

	e.Add(ctx, "s1", Item{ProductID: 1, Name: "Bánh tằm chay", Slug: "banh-tam-chay", Price: 24000})
	e.Add(ctx, "s1", Item{ProductID: 1, Name: "Bánh tằm chay", Slug: "banh-tam-chay", Price: 24000})

	items := e.Items(ctx, "s1")
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
}

func TestEngine_Remove(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore(), zerolog.Nop())

	e.Add(ctx, "s1", Item{ProductID: 1, Name: "A", Slug: "a", Price: 10000})
	e.Add(ctx, "s1", Item{ProductID: 2, Name: "B", Slug: "b", Price: 20000})

	e.Remove(ctx, "s1", 1)
	assert.False(t, e.Contains(ctx, "s1", 1))
	assert.True(t, e.Contains(ctx, "s1", 2))

	// Removing again is a no-op
	e.Remove(ctx, "s1", 1)
	require.Len(t, e.Items(ctx, "s1"), 1)
}

func TestEngine_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := NewEngine(store, zerolog.Nop())
	first.Add(ctx, "s1", Item{ProductID: 1, Name: "A", Slug: "a", Price: 10000})
	first.Add(ctx, "s1", Item{ProductID: 2, Name: "B", Slug: "b", Price: 20000})

	// Fresh engine over the same store simulates a process restart.
	second := NewEngine(store, zerolog.Nop())
	items := second.Items(ctx, "s1")

	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, int64(2), items[1].ProductID)
}

func TestEngine_CorruptStoredDataDiscarded(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "s1", []byte(`{"not":"an array"`)))

	e := NewEngine(store, zerolog.Nop())

	assert.Empty(t, e.Items(ctx, "s1"))

	// The engine stays usable after discarding the corrupt document.
	e.Add(ctx, "s1", Item{ProductID: 1, Name: "A", Slug: "a", Price: 10000})
	require.Len(t, e.Items(ctx, "s1"), 1)
}

func TestEngine_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStore(), zerolog.Nop())

	e.Add(ctx, "s1", Item{ProductID: 1, Name: "A", Slug: "a", Price: 10000})

	assert.True(t, e.Contains(ctx, "s1", 1))
	assert.False(t, e.Contains(ctx, "s2", 1))
	assert.Empty(t, e.Items(ctx, "s2"))
}

func TestEngine_PruneIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	e := NewEngine(NewMemoryStore(), zerolog.Nop())
	e.now = func() time.Time { return now }

	e.Add(ctx, "stale", Item{ProductID: 1, Name: "A", Slug: "a", Price: 10000})

	e.now = func() time.Time { return now.Add(30 * time.Hour) }
	e.Add(ctx, "fresh", Item{ProductID: 2, Name: "B", Slug: "b", Price: 20000})

	assert.Equal(t, 1, e.PruneIdle(24*time.Hour))
	assert.Len(t, e.lists, 1)

	// Eviction only drops the cached copy; the stored document reloads on
	// the next access
	assert.True(t, e.Contains(ctx, "stale", 1))
	assert.True(t, e.Contains(ctx, "fresh", 2))
}

func TestEngine_AnimationWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	e := NewEngine(NewMemoryStore(), zerolog.Nop())
	e.now = func() time.Time { return now }

	assert.False(t, e.Animating("s1"))

	e.Add(ctx, "s1", Item{ProductID: 1, Name: "A", Slug: "a", Price: 10000})
	assert.True(t, e.Animating("s1"))

	e.now = func() time.Time { return now.Add(701 * time.Millisecond) }
	assert.False(t, e.Animating("s1"))

	// Duplicate add must not re-trigger the pulse
	e.Add(ctx, "s1", Item{ProductID: 1, Name: "A", Slug: "a", Price: 10000})
	assert.False(t, e.Animating("s1"))
}
