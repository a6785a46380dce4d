package core

import "github.com/shopspring/decimal"

// Summary is the derived income/expense/balance view for one month.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Summarize derives totals from a transaction list. Income is the sum
// of positive amounts, Expense the absolute value of the negative sum,
// Balance their difference. Pure function; callers recompute it from
// the store on every request instead of caching.
func Summarize(txs []Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txs {
		if t.Amount.IsPositive() {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	expense = expense.Abs()
	return Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}
