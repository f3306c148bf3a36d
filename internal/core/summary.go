package core

type (
	// Overview holds the income/expense totals for one owner's ledger.
	Overview struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
		Balance      float64 `json:"balance"`
	}

	// CategoryAmount is one row of the per-category expense breakdown.
	CategoryAmount struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	// CategoryReport extends the overview with an expense breakdown ordered
	// by first appearance of each category.
	CategoryReport struct {
		TotalIncome  float64          `json:"totalIncome"`
		TotalExpense float64          `json:"totalExpense"`
		NetBalance   float64          `json:"netBalance"`
		CategoryData []CategoryAmount `json:"categoryData"`
	}
)

// Summarize computes income and expense totals plus the net balance.
// Transactions whose kind is neither income nor expense are ignored; an
// empty ledger yields all zeros.
func Summarize(txs []Transaction) Overview {
	var o Overview
	for _, t := range txs {
		switch t.KindOf() {
		case KindIncome:
			o.TotalIncome += t.Amount
		case KindExpense:
			o.TotalExpense += t.Amount
		}
	}
	o.Balance = o.TotalIncome - o.TotalExpense
	return o
}

// Report computes the totals of Summarize and additionally sums expense
// amounts per category, preserving the order categories are first seen.
func Report(txs []Transaction) CategoryReport {
	r := CategoryReport{CategoryData: []CategoryAmount{}}
	index := make(map[string]int)
	for _, t := range txs {
		switch t.KindOf() {
		case KindIncome:
			r.TotalIncome += t.Amount
		case KindExpense:
			r.TotalExpense += t.Amount
			i, ok := index[t.Category]
			if !ok {
				i = len(r.CategoryData)
				index[t.Category] = i
				r.CategoryData = append(r.CategoryData, CategoryAmount{Category: t.Category})
			}
			r.CategoryData[i].Amount += t.Amount
		}
	}
	r.NetBalance = r.TotalIncome - r.TotalExpense
	return r
}
