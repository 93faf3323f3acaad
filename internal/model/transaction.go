package model

import "time"

// TransactionType indicates whether a transaction is income or expense.
type TransactionType string

const (
	// TypeIncome represents money flowing into a wallet.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money flowing out of a wallet.
	TypeExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is income or expense.
func ValidTransactionType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense event tied to exactly one wallet.
type Transaction struct {
	Date        time.Time
	Description string
	Category    string // category key, e.g. "makanan_dan_minuman"
	Notes       string
	Type        TransactionType
	ID          int64
	WalletID    int64
	Amount      float64
}

// Field length limits enforced before any transaction mutation is sent.
const (
	MaxTransactionDescriptionLen = 100
	MaxTransactionNotesLen       = 500
)
