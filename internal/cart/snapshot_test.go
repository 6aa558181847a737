package cart

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	now := time.Now()

	payload, err := EncodeSnapshot(c, now)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	restored, fresh, err := DecodeSnapshot(payload, now.Add(30*time.Minute), time.Hour)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !fresh {
		t.Fatal("expected snapshot inside the window to be fresh")
	}
	if restored.RestaurantSlug() != "udupi-grand" || len(restored.Items()) != 1 {
		t.Fatalf("round trip mismatch: %+v slug=%q", restored.Items(), restored.RestaurantSlug())
	}
}

func TestSnapshotWireShape(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	now := time.UnixMilli(1712345678901)

	payload, err := EncodeSnapshot(c, now)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"cart", "restaurantSlug", "timestamp"} {
		if _, ok := wire[key]; !ok {
			t.Fatalf("missing %q field in %s", key, payload)
		}
	}
	if string(wire["timestamp"]) != "1712345678901" {
		t.Fatalf("expected epoch millis timestamp, got %s", wire["timestamp"])
	}
	if string(wire["restaurantSlug"]) != `"udupi-grand"` {
		t.Fatalf("unexpected slug encoding %s", wire["restaurantSlug"])
	}
}

func TestDecodeSnapshotExpired(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	saved := time.Now()

	payload, _ := EncodeSnapshot(c, saved)
	_, fresh, err := DecodeSnapshot(payload, saved.Add(time.Hour+time.Second), time.Hour)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if fresh {
		t.Fatal("expected snapshot past the window to be stale")
	}
}

func TestDecodeSnapshotMissingTimestampIsStale(t *testing.T) {
	t.Parallel()

	_, fresh, err := DecodeSnapshot([]byte(`{"cart":[],"restaurantSlug":null}`), time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if fresh {
		t.Fatal("snapshot without a timestamp must not be adopted")
	}
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	t.Parallel()

	if _, _, err := DecodeSnapshot([]byte(`{"cart":`), time.Now(), time.Hour); err == nil {
		t.Fatal("expected decode error for malformed payload")
	}
}
