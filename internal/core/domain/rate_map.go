package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RateEntry is a single target currency and its rate relative to the base.
type RateEntry struct {
	Code string
	Rate decimal.Decimal
}

// RateMap is a currency → rate mapping that keeps the key order of the source document.
type RateMap struct {
	entries []RateEntry
	index   map[string]int
}

// NewRateMap builds a RateMap from entries in the given order.
func NewRateMap(entries ...RateEntry) *RateMap {
	m := &RateMap{}
	for _, e := range entries {
		m.Set(e.Code, e.Rate)
	}
	return m
}

// Set adds or replaces a rate. A replaced key keeps its original position.
func (m *RateMap) Set(code string, rate decimal.Decimal) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[code]; ok {
		m.entries[i].Rate = rate
		return
	}
	m.index[code] = len(m.entries)
	m.entries = append(m.entries, RateEntry{Code: code, Rate: rate})
}

// Len returns the number of entries.
func (m *RateMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in document order.
func (m *RateMap) Entries() []RateEntry {
	if m == nil {
		return nil
	}
	out := make([]RateEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// UnmarshalJSON decodes a JSON object token by token so that key order survives.
func (m *RateMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("conversion_rates: expected object, got %v", tok)
	}

	*m = RateMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("conversion_rates: unexpected key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("conversion_rates[%s]: %w", code, err)
		}
		var rate decimal.Decimal
		if err := rate.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("conversion_rates[%s]: %w", code, err)
		}
		m.Set(code, rate)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
