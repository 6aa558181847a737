package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DayHours is a single day's opening window. Closed wins over the times.
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// OpeningHours maps lowercase weekday names to their hours, persisted as JSONB.
type OpeningHours map[string]DayHours

// Value marshals the map into JSON for Postgres.
func (h OpeningHours) Value() (driver.Value, error) {
	if h == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (h *OpeningHours) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("opening hours: unsupported scan type %T", value)
	}

	result := make(OpeningHours)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*h = result
	return nil
}
