// Package category holds the closed category enumerations and their mapping
// to the backend's numeric identifiers. The mapping is declarative and
// includes the legacy english keys that older clients submitted; canonical
// and legacy keys for the same category share one identifier.
package category

import "github.com/dompetku/dompetku/internal/model"

// Entry is one selectable category: its canonical key, display label, and
// the backend identifier.
type Entry struct {
	Key   string
	Label string
	ID    int
}

// Expense categories, in display order. IDs follow the backend enum.
var Expense = []Entry{
	{Key: "makanan_dan_minuman", Label: "Food & Drink", ID: 1},
	{Key: "transport", Label: "Transportation", ID: 2},
	{Key: "belanja", Label: "Shopping", ID: 3},
	{Key: "hiburan", Label: "Entertainment", ID: 4},
	{Key: "tagihan_dan_utilitas", Label: "Bills & Utilities", ID: 5},
	{Key: "kesehatan", Label: "Health", ID: 6},
	{Key: "pendidikan", Label: "Education", ID: 7},
	{Key: "rumah", Label: "Housing", ID: 8},
	{Key: "perjalanan", Label: "Travel", ID: 9},
	{Key: "hadiah_dan_donasi", Label: "Gifts & Donations", ID: 10},
	{Key: "lainnya_expense", Label: "Other", ID: 11},
}

// Income categories, in display order.
var Income = []Entry{
	{Key: "gaji", Label: "Salary", ID: 12},
	{Key: "bisnis", Label: "Business", ID: 13},
	{Key: "investasi", Label: "Investment", ID: 14},
	{Key: "bonus", Label: "Bonus", ID: 15},
	{Key: "hadiah", Label: "Gift", ID: 16},
	{Key: "piutang", Label: "Refund / Receivable", ID: 17},
	{Key: "lainnya_income", Label: "Other", ID: 18},
}

// Identifiers of the "other" buckets, the fallback for unknown keys.
const (
	OtherExpenseID = 11
	OtherIncomeID  = 18
)

// ids maps every accepted key, canonical and legacy alike, to its backend
// identifier. Legacy keys are kept forever: transactions recorded by old
// clients still carry them.
var ids = map[model.TransactionType]map[string]int{
	model.TypeExpense: {
		"makanan_dan_minuman":  1,
		"food":                 1,
		"transport":            2,
		"transportation":       2,
		"belanja":              3,
		"shopping":             3,
		"hiburan":              4,
		"entertainment":        4,
		"tagihan_dan_utilitas": 5,
		"bills":                5,
		"kesehatan":            6,
		"health":               6,
		"pendidikan":           7,
		"education":            7,
		"rumah":                8,
		"housing":              8,
		"perjalanan":           9,
		"travel":               9,
		"hadiah_dan_donasi":    10,
		"gift":                 10,
		"lainnya_expense":      11,
		"lainnya":              11,
		"other":                11,
	},
	model.TypeIncome: {
		"gaji":           12,
		"salary":         12,
		"bisnis":         13,
		"business":       13,
		"investasi":      14,
		"investment":     14,
		"bonus":          15,
		"hadiah":         16,
		"gift":           16,
		"piutang":        17,
		"refund":         17,
		"lainnya_income": 18,
		"lainnya":        18,
		"other":          18,
	},
}

// ResolveID returns the backend identifier for a category key within the
// enumeration matching typ. Keys absent from both the canonical set and the
// legacy aliases resolve to the "other" bucket for that type. The result is
// never zero.
func ResolveID(key string, typ model.TransactionType) int {
	if id, ok := ids[typ][key]; ok {
		return id
	}
	if typ == model.TypeIncome {
		return OtherIncomeID
	}
	return OtherExpenseID
}

// KeyFor returns the canonical key for a backend identifier, used when the
// backend reports categories numerically.
func KeyFor(id int) (string, bool) {
	for _, e := range Expense {
		if e.ID == id {
			return e.Key, true
		}
	}
	for _, e := range Income {
		if e.ID == id {
			return e.Key, true
		}
	}
	return "", false
}

// LabelFor returns the display label for a category key, or the key itself
// when it is not part of the canonical enumerations.
func LabelFor(key string) string {
	for _, e := range Expense {
		if e.Key == key {
			return e.Label
		}
	}
	for _, e := range Income {
		if e.Key == key {
			return e.Label
		}
	}
	return key
}

// ForType returns the canonical enumeration for typ.
func ForType(typ model.TransactionType) []Entry {
	if typ == model.TypeIncome {
		return Income
	}
	return Expense
}
