package cache

import "time"

const (
	// Wishlist document per session: wishlist:{session_id} -> JSON array
	KeyWishlist = "wishlist:%s"

	// Order read cache for the public lookup path: order:{order_code} -> JSON order
	KeyOrderLookup = "order:%s"
)

var (
	// TTLOrderLookup bounds staleness of the public order-lookup cache.
	// Admin edits bypass the cache, so entries expire rather than invalidate.
	TTLOrderLookup = 5 * time.Minute
)
