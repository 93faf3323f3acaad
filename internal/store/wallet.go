// Package store holds the client-side state for wallets and transactions
// and mediates every mutation against the backend. Each store applies
// completed responses atomically under its own lock; the only cross-store
// coupling is one-directional, from wallet selection into the transaction
// filter.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dompetku/dompetku/internal/api"
	"github.com/dompetku/dompetku/internal/model"
)

// DefaultWalletColor is assigned when a draft does not pick one.
const DefaultWalletColor = "#3B82F6"

// WalletDraft is the user's input for creating or editing a wallet.
type WalletDraft struct {
	Name        string
	Description string
	Color       string
	Type        model.WalletType
	Balance     float64
}

// WalletStore holds the wallet collection, the current selection, and the
// derived total balance.
type WalletStore struct {
	client   *api.Client
	current  *model.Wallet
	onSelect func(*model.Wallet)
	lastErr  string
	wallets  []model.Wallet
	total    float64
	mu       sync.Mutex
}

// NewWalletStore creates an empty wallet store backed by client.
func NewWalletStore(client *api.Client) *WalletStore {
	return &WalletStore{client: client}
}

// BindSelection registers a callback invoked whenever the current wallet
// changes. The transaction store uses this to narrow its filter; the
// propagation is one-directional by design.
func (s *WalletStore) BindSelection(fn func(*model.Wallet)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSelect = fn
}

// walletRecord matches a wallet as the backend serializes it. Older
// endpoints use the english field names, newer ones the indonesian; both
// are tolerated and the first non-empty value wins.
type walletRecord struct {
	NamaDompet  string          `json:"nama_dompet"`
	Name        string          `json:"name"`
	Deskripsi   string          `json:"deskripsi"`
	Description string          `json:"description"`
	TipeDompet  string          `json:"tipe_dompet"`
	Type        string          `json:"type"`
	Warna       string          `json:"warna"`
	Color       string          `json:"color"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	SaldoAwal   json.RawMessage `json:"saldo_awal"`
	Balance     json.RawMessage `json:"balance"`
	ID          int64           `json:"id"`
}

// walletPayload is the shape the backend expects on create and update.
type walletPayload struct {
	NamaDompet string  `json:"nama_dompet"`
	Deskripsi  string  `json:"deskripsi"`
	TipeDompet string  `json:"tipe_dompet"`
	Warna      string  `json:"warna"`
	SaldoAwal  float64 `json:"saldo_awal"`
}

func decodeWallet(raw json.RawMessage) (model.Wallet, error) {
	var rec walletRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Wallet{}, fmt.Errorf("failed to decode wallet: %w", err)
	}

	w := model.Wallet{
		ID:          rec.ID,
		Name:        firstNonEmpty(rec.NamaDompet, rec.Name),
		Description: firstNonEmpty(rec.Deskripsi, rec.Description),
		Color:       firstNonEmpty(rec.Warna, rec.Color, DefaultWalletColor),
		Type:        model.WalletType(firstNonEmpty(rec.TipeDompet, rec.Type, string(model.WalletTypeCash))),
		Balance:     coerceAmount(rec.SaldoAwal, coerceAmount(rec.Balance, 0)),
	}
	if t, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
		w.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, rec.UpdatedAt); err == nil {
		w.UpdatedAt = t
	}
	return w, nil
}

func validateWalletDraft(draft WalletDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return validationErr("name", "wallet name is required")
	}
	if len(strings.TrimSpace(draft.Name)) > model.MaxWalletNameLen {
		return validationErr("name", fmt.Sprintf("wallet name must be at most %d characters", model.MaxWalletNameLen))
	}
	if len(draft.Description) > model.MaxWalletDescriptionLen {
		return validationErr("description", fmt.Sprintf("description must be at most %d characters", model.MaxWalletDescriptionLen))
	}
	if draft.Balance < 0 {
		return validationErr("balance", "balance must not be negative")
	}
	if draft.Type != "" && !model.ValidWalletType(draft.Type) {
		return validationErr("type", fmt.Sprintf("unknown wallet type %q", draft.Type))
	}
	return nil
}

func draftPayload(draft WalletDraft) walletPayload {
	payload := walletPayload{
		NamaDompet: strings.TrimSpace(draft.Name),
		Deskripsi:  strings.TrimSpace(draft.Description),
		SaldoAwal:  draft.Balance,
		TipeDompet: string(draft.Type),
		Warna:      draft.Color,
	}
	if payload.TipeDompet == "" {
		payload.TipeDompet = string(model.WalletTypeCash)
	}
	if payload.Warna == "" {
		payload.Warna = DefaultWalletColor
	}
	return payload
}

// FetchAll requests the full wallet collection. On success it replaces the
// local collection and recomputes the total balance; on failure the prior
// collection is preserved and the error message is retained for display.
func (s *WalletStore) FetchAll(ctx context.Context) ([]model.Wallet, error) {
	raw, err := s.client.Get(ctx, "/wallets", nil)
	if err != nil {
		return nil, s.fail("fetch wallets", err)
	}
	items, _, err := api.DecodeList(raw)
	if err != nil {
		return nil, s.fail("fetch wallets", err)
	}

	wallets := make([]model.Wallet, 0, len(items))
	for _, item := range items {
		w, err := decodeWallet(item)
		if err != nil {
			return nil, s.fail("fetch wallets", err)
		}
		wallets = append(wallets, w)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = wallets
	s.total = sumBalances(wallets)
	s.lastErr = ""
	return append([]model.Wallet(nil), wallets...), nil
}

// Create validates the draft locally, then creates the wallet in a single
// round trip and appends it to the collection.
func (s *WalletStore) Create(ctx context.Context, draft WalletDraft) (model.Wallet, error) {
	if err := validateWalletDraft(draft); err != nil {
		return model.Wallet{}, err
	}

	raw, err := s.client.Post(ctx, "/wallets", draftPayload(draft))
	if err != nil {
		return model.Wallet{}, s.fail("create wallet", err)
	}
	wallet, err := decodeCreated(raw)
	if err != nil {
		return model.Wallet{}, s.fail("create wallet", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = append(s.wallets, wallet)
	s.total = sumBalances(s.wallets)
	s.lastErr = ""
	return wallet, nil
}

// Update validates like Create, then replaces the matching wallet in place,
// preserving its position. If the updated wallet is the current selection,
// the selection is refreshed to the new data.
func (s *WalletStore) Update(ctx context.Context, id int64, draft WalletDraft) (model.Wallet, error) {
	if id == 0 {
		return model.Wallet{}, validationErr("id", "wallet id is required")
	}
	if err := validateWalletDraft(draft); err != nil {
		return model.Wallet{}, err
	}

	raw, err := s.client.Put(ctx, fmt.Sprintf("/wallets/%d", id), draftPayload(draft))
	if err != nil {
		return model.Wallet{}, s.fail("update wallet", err)
	}
	wallet, err := decodeCreated(raw)
	if err != nil {
		return model.Wallet{}, s.fail("update wallet", err)
	}
	if wallet.ID == 0 {
		wallet.ID = id
	}

	s.mu.Lock()
	for i := range s.wallets {
		if s.wallets[i].ID == wallet.ID {
			s.wallets[i] = wallet
			break
		}
	}
	s.total = sumBalances(s.wallets)
	s.lastErr = ""
	if s.current != nil && s.current.ID == wallet.ID {
		w := wallet
		s.current = &w
	}
	s.mu.Unlock()
	return wallet, nil
}

// Delete removes the wallet by id. The backend cascades the deletion to the
// wallet's transactions; the client only reflects the removal. A deleted
// current selection becomes nil.
func (s *WalletStore) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return validationErr("id", "wallet id is required")
	}
	if err := s.client.Delete(ctx, fmt.Sprintf("/wallets/%d", id)); err != nil {
		return s.fail("delete wallet", err)
	}

	s.mu.Lock()
	kept := s.wallets[:0]
	for _, w := range s.wallets {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	s.wallets = kept
	s.total = sumBalances(s.wallets)
	s.lastErr = ""
	// The selection is cleared, but the transaction filter referencing the
	// wallet is deliberately left alone: cascade correctness is the
	// backend's responsibility.
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()
	return nil
}

// Balance fetches the backend-computed balance for one wallet.
func (s *WalletStore) Balance(ctx context.Context, id int64) (float64, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf("/wallets/%d/balance", id), nil)
	if err != nil {
		return 0, s.fail("fetch wallet balance", err)
	}

	var bare float64
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}
	var env struct {
		Balance   json.RawMessage `json:"balance"`
		SaldoAwal json.RawMessage `json:"saldo_awal"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0, s.fail("fetch wallet balance", fmt.Errorf("failed to decode balance response: %w", err))
	}
	for _, candidate := range []json.RawMessage{env.Balance, env.SaldoAwal, env.Data} {
		if len(candidate) > 0 {
			return coerceAmount(candidate, 0), nil
		}
	}
	return 0, nil
}

// SetCurrent changes the current selection. Pure local state change; no
// network call is made.
func (s *WalletStore) SetCurrent(w *model.Wallet) {
	s.mu.Lock()
	if w != nil {
		copied := *w
		s.current = &copied
	} else {
		s.current = nil
	}
	onSelect := s.onSelect
	current := s.current
	s.mu.Unlock()

	if onSelect != nil {
		onSelect(current)
	}
}

// Current returns the current selection, or nil.
func (s *WalletStore) Current() *model.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Wallets returns a copy of the loaded collection.
func (s *WalletStore) Wallets() []model.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Wallet(nil), s.wallets...)
}

// ByID returns the loaded wallet with the given id.
func (s *WalletStore) ByID(id int64) (model.Wallet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wallets {
		if w.ID == id {
			return w, true
		}
	}
	return model.Wallet{}, false
}

// TotalBalance is the sum of all loaded wallets' balances.
func (s *WalletStore) TotalBalance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Err returns the last request error message, empty when the last request
// succeeded. Validation failures never appear here.
func (s *WalletStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *WalletStore) fail(op string, err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	slog.Error("Wallet store request failed", "op", op, "error", err)
	return err
}

func decodeCreated(raw json.RawMessage) (model.Wallet, error) {
	obj, err := api.DecodeObject(raw)
	if err != nil {
		return model.Wallet{}, err
	}
	return decodeWallet(obj)
}

func sumBalances(wallets []model.Wallet) float64 {
	var total float64
	for _, w := range wallets {
		total += w.Balance
	}
	return total
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
