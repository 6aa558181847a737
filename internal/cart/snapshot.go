package cart

import (
	"encoding/json"
	"fmt"
	"time"
)

// snapshot is the persisted wire form of a cart. The slug rides alongside the
// items and the timestamp records the last mutation in epoch milliseconds.
type snapshot struct {
	Cart           []LineItem `json:"cart"`
	RestaurantSlug *string    `json:"restaurantSlug"`
	Timestamp      int64      `json:"timestamp"`
}

// EncodeSnapshot serializes the cart with a fresh last-modified timestamp.
func EncodeSnapshot(c Cart, now time.Time) ([]byte, error) {
	snap := snapshot{
		Cart:      c.Items(),
		Timestamp: now.UnixMilli(),
	}
	if snap.Cart == nil {
		snap.Cart = []LineItem{}
	}
	if slug := c.RestaurantSlug(); slug != "" {
		snap.RestaurantSlug = &slug
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return payload, nil
}

// DecodeSnapshot parses a stored snapshot. The second return is false when
// the snapshot is stale (or carries no usable timestamp) and must be discarded
// unread rather than partially adopted.
func DecodeSnapshot(payload []byte, now time.Time, ttl time.Duration) (Cart, bool, error) {
	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Cart{}, false, fmt.Errorf("decode cart snapshot: %w", err)
	}

	if snap.Timestamp <= 0 {
		return Cart{}, false, nil
	}
	age := now.Sub(time.UnixMilli(snap.Timestamp))
	if age > ttl {
		return Cart{}, false, nil
	}

	slug := ""
	if snap.RestaurantSlug != nil {
		slug = *snap.RestaurantSlug
	}
	return Restore(snap.Cart, slug), true, nil
}
