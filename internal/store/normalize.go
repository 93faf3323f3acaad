package store

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dompetku/dompetku/internal/category"
	"github.com/dompetku/dompetku/internal/model"
)

// transactionRecord matches a transaction however the backend serializes
// it: english or indonesian field names, numeric or string amounts, "id" or
// "_id". Normalization collapses all of that into one fixed shape.
type transactionRecord struct {
	Type          string          `json:"type"`
	TipeTransaksi string          `json:"tipe_transaksi"`
	Description   string          `json:"description"`
	Deskripsi     string          `json:"deskripsi"`
	Date          string          `json:"date"`
	Tanggal       string          `json:"tanggal"`
	Notes         string          `json:"notes"`
	Catatan       string          `json:"catatan"`
	ID            json.RawMessage `json:"id"`
	AltID         json.RawMessage `json:"_id"`
	Amount        json.RawMessage `json:"amount"`
	Jumlah        json.RawMessage `json:"jumlah"`
	Category      json.RawMessage `json:"category"`
	CategoryID    int             `json:"category_id"`
	WalletID      int64           `json:"walletId"`
	AltWalletID   int64           `json:"wallet_id"`
}

// normalizeTransaction coerces one raw record into the fixed transaction
// shape. Required fields that are missing or malformed get the documented
// defaults (amount 0, type expense, date now); each applied default is
// logged so a misbehaving backend shows up in the logs instead of being
// silently papered over.
func normalizeTransaction(raw json.RawMessage, now time.Time) model.Transaction {
	var rec transactionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		slog.Warn("Undecodable transaction record", "error", err)
		return model.Transaction{Type: model.TypeExpense, Date: now}
	}

	tx := model.Transaction{
		ID:          coerceID(rec.ID, rec.AltID),
		Description: firstNonEmpty(rec.Description, rec.Deskripsi),
		Notes:       firstNonEmpty(rec.Notes, rec.Catatan),
		WalletID:    rec.WalletID,
	}
	if tx.WalletID == 0 {
		tx.WalletID = rec.AltWalletID
	}

	amountRaw := rec.Amount
	if len(amountRaw) == 0 {
		amountRaw = rec.Jumlah
	}
	tx.Amount = coerceAmount(amountRaw, 0)
	if tx.Amount == 0 {
		slog.Warn("Transaction amount coerced to 0", "id", tx.ID)
	}

	switch t := model.TransactionType(firstNonEmpty(rec.Type, rec.TipeTransaksi)); {
	case model.ValidTransactionType(t):
		tx.Type = t
	default:
		slog.Warn("Transaction type defaulted to expense", "id", tx.ID, "raw_type", t)
		tx.Type = model.TypeExpense
	}

	tx.Date = parseBackendDate(firstNonEmpty(rec.Date, rec.Tanggal))
	if tx.Date.IsZero() {
		slog.Warn("Transaction date defaulted to now", "id", tx.ID)
		tx.Date = now
	}

	tx.Category = coerceCategory(rec.Category, rec.CategoryID)
	return tx
}

// coerceID accepts numeric or string identifiers, preferring "id" over
// "_id".
func coerceID(candidates ...json.RawMessage) int64 {
	for _, raw := range candidates {
		if len(raw) == 0 {
			continue
		}
		var n int64
		if err := json.Unmarshal(raw, &n); err == nil {
			return n
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// coerceAmount accepts a JSON number or a numeric string; anything else
// yields the fallback.
func coerceAmount(raw json.RawMessage, fallback float64) float64 {
	if len(raw) == 0 {
		return fallback
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return fallback
}

// coerceCategory accepts a category key string or a numeric identifier,
// mapping identifiers back to their canonical keys.
func coerceCategory(raw json.RawMessage, categoryID int) string {
	if len(raw) > 0 {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var n int
		if err := json.Unmarshal(raw, &n); err == nil && n != 0 {
			if key, ok := category.KeyFor(n); ok {
				return key
			}
		}
	}
	if categoryID != 0 {
		if key, ok := category.KeyFor(categoryID); ok {
			return key
		}
	}
	return ""
}

// parseBackendDate tries the timestamp layouts the backend has been seen to
// emit. Returns the zero time when nothing matches.
func parseBackendDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
