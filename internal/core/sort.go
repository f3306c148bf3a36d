package core

import (
	"sort"
	"strings"
)

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

type (
	SortField string
	SortOrder string
)

// ParseSortField maps a raw sortBy value to a sort field. Unrecognized or
// empty values fall back to date ordering.
func ParseSortField(s string) SortField {
	if strings.EqualFold(strings.TrimSpace(s), string(SortByAmount)) {
		return SortByAmount
	}
	return SortByDate
}

// ParseSortOrder maps a raw order value to a direction, defaulting to
// descending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(OrderAsc)) {
		return OrderAsc
	}
	return OrderDesc
}

// SortTransactions orders txs in place by the requested field and direction.
// The sort is stable, so ties keep their retrieval order.
func SortTransactions(txs []Transaction, field SortField, order SortOrder) {
	less := func(a, b Transaction) bool { return a.CreatedAt.Before(b.CreatedAt) }
	if field == SortByAmount {
		less = func(a, b Transaction) bool { return a.Amount < b.Amount }
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if order == OrderDesc {
			return less(txs[j], txs[i])
		}
		return less(txs[i], txs[j])
	})
}
