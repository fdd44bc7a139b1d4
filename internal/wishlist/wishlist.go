package wishlist

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// animationWindow mirrors the storefront heart-icon pulse after a save.
const animationWindow = 700 * time.Millisecond

// Item is one saved product. Uniqueness is by product ID.
type Item struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"image_url,omitempty"`
}

// Engine keeps per-session wishlists in memory and writes the full list
// through to the key-value store after every mutation. A session's list is
// loaded from the store once, on first access; stored data that fails to
// parse is discarded and treated as an empty wishlist.
type Engine struct {
	store  Store
	logger zerolog.Logger

	mu             sync.Mutex
	lists          map[string][]Item
	loaded         map[string]bool
	animatingUntil map[string]time.Time
	lastSeen       map[string]time.Time
	now            func() time.Time
}

// NewEngine creates a wishlist engine backed by the given store.
func NewEngine(store Store, logger zerolog.Logger) *Engine {
	return &Engine{
		store:          store,
		logger:         logger.With().Str("component", "wishlist").Logger(),
		lists:          make(map[string][]Item),
		loaded:         make(map[string]bool),
		animatingUntil: make(map[string]time.Time),
		lastSeen:       make(map[string]time.Time),
		now:            time.Now,
	}
}

// Add inserts the item unless its product ID is already present. The insert
// is idempotent; a duplicate add leaves the list untouched and does not
// trigger the animation flag.
func (e *Engine) Add(ctx context.Context, sessionID string, item Item) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.load(ctx, sessionID)
	for _, existing := range e.lists[sessionID] {
		if existing.ProductID == item.ProductID {
			return
		}
	}
	e.lists[sessionID] = append(e.lists[sessionID], item)
	e.animatingUntil[sessionID] = e.now().Add(animationWindow)
	e.persist(ctx, sessionID)
}

// Remove deletes the item with the given product ID, if present.
func (e *Engine) Remove(ctx context.Context, sessionID string, productID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.load(ctx, sessionID)
	list := e.lists[sessionID]
	for i := range list {
		if list[i].ProductID == productID {
			e.lists[sessionID] = append(list[:i], list[i+1:]...)
			e.persist(ctx, sessionID)
			return
		}
	}
}

// Contains reports whether the product is on the session's wishlist.
func (e *Engine) Contains(ctx context.Context, sessionID string, productID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.load(ctx, sessionID)
	for _, item := range e.lists[sessionID] {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Items returns the session's wishlist in insertion order.
func (e *Engine) Items(ctx context.Context, sessionID string) []Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.load(ctx, sessionID)
	out := make([]Item, len(e.lists[sessionID]))
	copy(out, e.lists[sessionID])
	return out
}

// Animating reports whether the session is inside the post-add pulse window.
func (e *Engine) Animating(sessionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now().Before(e.animatingUntil[sessionID])
}

// PruneIdle drops the in-memory state of sessions not touched within
// maxIdle and reports how many were evicted. The stored document survives;
// an evicted session reloads it on its next access.
func (e *Engine) PruneIdle(maxIdle time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-maxIdle)
	pruned := 0
	for id, seen := range e.lastSeen {
		if seen.Before(cutoff) {
			delete(e.lists, id)
			delete(e.loaded, id)
			delete(e.animatingUntil, id)
			delete(e.lastSeen, id)
			pruned++
		}
	}
	return pruned
}

// load pulls the stored document on a session's first access. Callers must
// hold e.mu.
func (e *Engine) load(ctx context.Context, sessionID string) {
	e.lastSeen[sessionID] = e.now()
	if e.loaded[sessionID] {
		return
	}
	e.loaded[sessionID] = true

	data, err := e.store.Get(ctx, sessionID)
	if err != nil {
		e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to read wishlist, starting empty")
		return
	}
	if len(data) == 0 {
		return
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("discarding unparseable wishlist")
		return
	}
	e.lists[sessionID] = items
}

// persist writes the whole list as one JSON document. Callers must hold e.mu.
// Write failures are logged but never surfaced; the in-memory copy stays
// authoritative for the session.
func (e *Engine) persist(ctx context.Context, sessionID string) {
	items := e.lists[sessionID]
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		e.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to encode wishlist")
		return
	}
	if err := e.store.Set(ctx, sessionID, data); err != nil {
		e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to persist wishlist")
	}
}
