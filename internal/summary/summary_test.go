package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/model"
)

func tx(typ model.TransactionType, category string, amount float64) model.Transaction {
	return model.Transaction{Type: typ, Category: category, Amount: amount}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		transactions []model.Transaction
		want         Totals
	}{
		{
			name: "empty page",
			want: Totals{},
		},
		{
			name: "mixed page",
			transactions: []model.Transaction{
				tx(model.TypeIncome, "gaji", 5000000),
				tx(model.TypeExpense, "makanan_dan_minuman", 150000),
				tx(model.TypeExpense, "transport", 50000),
				tx(model.TypeIncome, "bonus", 250000),
			},
			want: Totals{Income: 5250000, Expense: 200000, Balance: 5050000},
		},
		{
			name: "expense heavy page goes negative",
			transactions: []model.Transaction{
				tx(model.TypeIncome, "gaji", 100),
				tx(model.TypeExpense, "belanja", 300),
			},
			want: Totals{Income: 100, Expense: 300, Balance: -200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.transactions)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Income-got.Expense, got.Balance)
		})
	}
}

func TestExpenseBreakdown(t *testing.T) {
	transactions := []model.Transaction{
		tx(model.TypeExpense, "makanan_dan_minuman", 300),
		tx(model.TypeExpense, "transport", 100),
		tx(model.TypeExpense, "makanan_dan_minuman", 100),
		tx(model.TypeIncome, "gaji", 9999), // income never appears in the breakdown
		tx(model.TypeExpense, "belanja", 100),
	}

	breakdown := ExpenseBreakdown(transactions)
	require.Len(t, breakdown, 3)

	assert.Equal(t, "makanan_dan_minuman", breakdown[0].Key)
	assert.Equal(t, "Food & Drink", breakdown[0].Label)
	assert.InDelta(t, 400, breakdown[0].Amount, 0.001)
	assert.InDelta(t, 66.666, breakdown[0].Percent, 0.01)

	// Equal amounts tie-break on key, ascending.
	assert.Equal(t, "belanja", breakdown[1].Key)
	assert.Equal(t, "transport", breakdown[2].Key)
	assert.InDelta(t, 16.666, breakdown[1].Percent, 0.01)

	var total float64
	for _, entry := range breakdown {
		total += entry.Percent
	}
	assert.InDelta(t, 100, total, 0.001)
}

func TestExpenseBreakdown_Empty(t *testing.T) {
	assert.Empty(t, ExpenseBreakdown(nil))
	assert.Empty(t, ExpenseBreakdown([]model.Transaction{
		tx(model.TypeIncome, "gaji", 100),
	}))
}

func TestExpenseBreakdown_DropsNonPositive(t *testing.T) {
	breakdown := ExpenseBreakdown([]model.Transaction{
		tx(model.TypeExpense, "transport", 0),
		tx(model.TypeExpense, "belanja", 100),
	})
	require.Len(t, breakdown, 1)
	assert.Equal(t, "belanja", breakdown[0].Key)
}
