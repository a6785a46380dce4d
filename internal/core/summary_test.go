package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func tx(kind Kind, amount string) Transaction {
	return Transaction{Kind: kind, Amount: kind.Signed(decimal.RequireFromString(amount))}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name    string
		txs     []Transaction
		income  string
		expense string
		balance string
	}{
		{"empty", nil, "0", "0", "0"},
		{
			"salary and internet",
			[]Transaction{tx(Income, "4700.00"), tx(Expense, "100.00")},
			"4700", "100", "4600",
		},
		{
			"expenses only",
			[]Transaction{tx(Expense, "39.90"), tx(Expense, "99.00")},
			"0", "138.90", "-138.90",
		},
		{
			"mixed cents",
			[]Transaction{tx(Income, "0.01"), tx(Income, "0.02"), tx(Expense, "0.01")},
			"0.03", "0.01", "0.02",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(tc.txs)
			if !got.Income.Equal(decimal.RequireFromString(tc.income)) {
				t.Errorf("income = %s, want %s", got.Income, tc.income)
			}
			if !got.Expense.Equal(decimal.RequireFromString(tc.expense)) {
				t.Errorf("expense = %s, want %s", got.Expense, tc.expense)
			}
			if !got.Balance.Equal(decimal.RequireFromString(tc.balance)) {
				t.Errorf("balance = %s, want %s", got.Balance, tc.balance)
			}
			// Balance is always income minus expense, by definition.
			if !got.Balance.Equal(got.Income.Sub(got.Expense)) {
				t.Errorf("balance %s != income %s - expense %s", got.Balance, got.Income, got.Expense)
			}
		})
	}
}
