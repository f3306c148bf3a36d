// Package core implements the transaction ledger domain: payload
// normalization, sorting, and the financial aggregates derived from one
// owner's transactions. Everything here is a pure function of its inputs.
package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// RawTransaction is an incoming write payload before coercion. Amount holds
// whatever the JSON decoder produced (number, string, bool, nil) and Date is
// the raw caller-supplied string.
type RawTransaction struct {
	Owner       string
	Kind        string
	Description string
	Category    string
	Amount      any
	Date        string
}

// Patch is a partial field replacement for a stored transaction. Nil fields
// are left untouched by the store.
type Patch struct {
	Owner       *string
	Kind        *string
	Description *string
	Category    *string
	Amount      *float64
	CreatedAt   *time.Time
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Owner == nil && p.Kind == nil && p.Description == nil &&
		p.Category == nil && p.Amount == nil && p.CreatedAt == nil
}

// Apply merges the patch into t and returns the result.
func (p Patch) Apply(t Transaction) Transaction {
	if p.Owner != nil {
		t.Owner = *p.Owner
	}
	if p.Kind != nil {
		t.Kind = *p.Kind
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.CreatedAt != nil {
		t.CreatedAt = *p.CreatedAt
	}
	return t
}

// Accepted date formats, most specific first.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// Normalize coerces a raw payload into a canonical Transaction. It never
// rejects input: an unparsable or missing amount becomes 0 and a missing or
// unparsable date becomes now. Normalizing an already-canonical record yields
// the same amount and createdAt.
func Normalize(raw RawTransaction, now time.Time) Transaction {
	return Transaction{
		Owner:       raw.Owner,
		Kind:        raw.Kind,
		Description: raw.Description,
		Category:    raw.Category,
		Amount:      CoerceAmount(raw.Amount),
		CreatedAt:   ParseDate(raw.Date, now),
	}
}

// NormalizePatch extracts the recognized fields from a raw partial payload.
// Unknown keys are dropped; amount and date go through the same coercion as
// Normalize. The date key also accepts createdAt for round-tripping records.
func NormalizePatch(fields map[string]any, now time.Time) Patch {
	var p Patch
	for key, v := range fields {
		switch key {
		case "owner":
			p.Owner = stringField(v)
		case "kind":
			p.Kind = stringField(v)
		case "description":
			p.Description = stringField(v)
		case "category":
			p.Category = stringField(v)
		case "amount":
			a := CoerceAmount(v)
			p.Amount = &a
		case "date", "createdAt":
			if s, ok := v.(string); ok {
				t := ParseDate(s, now)
				p.CreatedAt = &t
			}
		}
	}
	return p
}

// CoerceAmount converts a caller-supplied value to float64. Unparsable or
// missing values coerce to 0, never to an error.
func CoerceAmount(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return 0
}

// ParseDate parses a caller-supplied date string, falling back to the given
// moment when the string is empty or unparsable.
func ParseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

func stringField(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}
