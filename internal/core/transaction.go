package core

import (
	"strings"
	"time"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindUnknown Kind = "unknown"
)

type (
	// Kind classifies a transaction for aggregation. Anything that is not
	// recognizably income or expense is KindUnknown and contributes to no
	// total.
	Kind string

	// Transaction is the canonical ledger record. Kind keeps whatever string
	// the caller supplied; aggregation goes through KindOf so the comparison
	// stays case-insensitive and tolerant of missing values.
	Transaction struct {
		ID          string    `json:"id,omitempty"`
		Owner       string    `json:"owner"`
		Kind        string    `json:"kind,omitempty"`
		Description string    `json:"description,omitempty"`
		Category    string    `json:"category,omitempty"`
		Amount      float64   `json:"amount"`
		CreatedAt   time.Time `json:"createdAt"`
	}
)

// ParseKind interprets a raw kind value. Matching is case-insensitive;
// unrecognized values, including the empty string, map to KindUnknown.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome
	case "expense":
		return KindExpense
	default:
		return KindUnknown
	}
}

// KindOf returns the classified kind of the transaction.
func (t Transaction) KindOf() Kind {
	return ParseKind(t.Kind)
}
