package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dompetku/dompetku/internal/api"
	"github.com/dompetku/dompetku/internal/category"
	"github.com/dompetku/dompetku/internal/model"
	"github.com/dompetku/dompetku/internal/query"
)

// ErrAmountInvalid is the exact message surfaced for a non-positive or
// non-numeric amount.
const ErrAmountInvalid = "amount must be a valid number greater than 0"

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TransactionDraft is the user's input for creating or editing a
// transaction. Date accepts either a date-only value (a default time of day
// is appended) or a full timestamp; empty means now.
type TransactionDraft struct {
	Description string
	Category    string
	Date        string
	Notes       string
	Type        model.TransactionType
	WalletID    int64
	Amount      float64
}

// FilterPatch merges partial filter fields. Nil fields are left unchanged;
// a pointed-to zero value clears that dimension.
type FilterPatch struct {
	WalletID    *int64
	Type        *model.TransactionType
	StartDate   *model.Date
	EndDate     *model.Date
	SearchQuery *string
}

// PaginationPatch merges partial pagination fields.
type PaginationPatch struct {
	Page  *int
	Limit *int
}

// TransactionStore holds the loaded transaction page, the active filters,
// and the pagination state. Every successful mutation triggers a full page
// re-fetch: the backend's counts are the truth, never a locally adjusted
// guess.
type TransactionStore struct {
	client        *api.Client
	defaultWallet func() *model.Wallet
	search        *query.Debouncer
	lastErr       string
	transactions  []model.Transaction
	filter        model.Filter
	pagination    model.Pagination
	seq           uint64
	applied       uint64
	mu            sync.Mutex
}

// NewTransactionStore creates an empty store backed by client.
// defaultWallet supplies the currently selected wallet for wallet
// resolution on create; it may be nil.
func NewTransactionStore(client *api.Client, defaultWallet func() *model.Wallet) *TransactionStore {
	return &TransactionStore{
		client:        client,
		defaultWallet: defaultWallet,
		pagination:    model.DefaultPagination(),
		search:        query.NewDebouncer(query.DefaultDebounce),
	}
}

// FetchPage builds a query from the current filter and pagination state and
// loads one page. Responses are tagged with a sequence number taken when the
// request is issued; a response that is no longer the latest is discarded so
// rapid filter changes cannot interleave into stale state.
func (s *TransactionStore) FetchPage(ctx context.Context) ([]model.Transaction, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	filter := s.filter
	pagination := s.pagination
	s.mu.Unlock()

	raw, err := s.client.Get(ctx, "/transactions", query.Build(filter, pagination))
	if err != nil {
		return nil, s.fail("fetch transactions", err)
	}
	items, meta, err := api.DecodeList(raw)
	if err != nil {
		return nil, s.fail("fetch transactions", err)
	}

	transactions := make([]model.Transaction, 0, len(items))
	for _, item := range items {
		transactions = append(transactions, normalizeTransaction(item, time.Now()))
	}

	totalItems := meta.TotalItems
	if totalItems == 0 {
		totalItems = len(transactions)
	}
	totalPages := meta.TotalPages
	if totalPages == 0 {
		totalPages = model.PageCount(totalItems, pagination.Limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		slog.Debug("Discarding stale transaction page", "seq", seq, "applied", s.applied)
		return append([]model.Transaction(nil), s.transactions...), nil
	}
	s.applied = seq
	s.transactions = transactions
	s.pagination.TotalItems = totalItems
	s.pagination.TotalPages = totalPages
	s.lastErr = ""
	return append([]model.Transaction(nil), transactions...), nil
}

// Get fetches a single transaction by id.
func (s *TransactionStore) Get(ctx context.Context, id int64) (model.Transaction, error) {
	if id == 0 {
		return model.Transaction{}, validationErr("id", "transaction id is required")
	}
	raw, err := s.client.Get(ctx, fmt.Sprintf("/transactions/%d", id), nil)
	if err != nil {
		return model.Transaction{}, s.fail("fetch transaction", err)
	}
	obj, err := api.DecodeObject(raw)
	if err != nil {
		return model.Transaction{}, s.fail("fetch transaction", err)
	}
	return normalizeTransaction(obj, time.Now()), nil
}

// Create validates the draft, resolves the wallet and category, submits the
// transaction, and re-fetches the active page so pagination metadata and
// aggregates stay correct.
func (s *TransactionStore) Create(ctx context.Context, draft TransactionDraft) (model.Transaction, error) {
	payload, err := s.buildPayload(draft, true)
	if err != nil {
		return model.Transaction{}, err
	}

	raw, err := s.client.Post(ctx, "/transactions", payload)
	if err != nil {
		return model.Transaction{}, s.fail("create transaction", err)
	}
	obj, err := api.DecodeObject(raw)
	if err != nil {
		return model.Transaction{}, s.fail("create transaction", err)
	}
	created := normalizeTransaction(obj, time.Now())

	s.refresh(ctx)
	return created, nil
}

// Update validates like Create but never changes the wallet, then submits
// and re-fetches the active page.
func (s *TransactionStore) Update(ctx context.Context, id int64, draft TransactionDraft) (model.Transaction, error) {
	if id == 0 {
		return model.Transaction{}, validationErr("id", "transaction id is required")
	}
	payload, err := s.buildPayload(draft, false)
	if err != nil {
		return model.Transaction{}, err
	}

	raw, err := s.client.Put(ctx, fmt.Sprintf("/transactions/%d", id), payload)
	if err != nil {
		return model.Transaction{}, s.fail("update transaction", err)
	}
	obj, err := api.DecodeObject(raw)
	if err != nil {
		return model.Transaction{}, s.fail("update transaction", err)
	}
	updated := normalizeTransaction(obj, time.Now())
	if updated.ID == 0 {
		updated.ID = id
	}

	s.refresh(ctx)
	return updated, nil
}

// Delete removes a transaction, then re-fetches the active page.
func (s *TransactionStore) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return validationErr("id", "transaction id is required")
	}
	if err := s.client.Delete(ctx, fmt.Sprintf("/transactions/%d", id)); err != nil {
		return s.fail("delete transaction", err)
	}

	s.refresh(ctx)
	return nil
}

// SetFilters merges partial filter fields into the current filters, resets
// pagination to page 1, and re-fetches.
func (s *TransactionStore) SetFilters(ctx context.Context, patch FilterPatch) error {
	s.mu.Lock()
	if patch.WalletID != nil {
		s.filter.WalletID = *patch.WalletID
	}
	if patch.Type != nil {
		s.filter.Type = *patch.Type
	}
	if patch.StartDate != nil {
		s.filter.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		s.filter.EndDate = *patch.EndDate
	}
	if patch.SearchQuery != nil {
		s.filter.SearchQuery = strings.TrimSpace(*patch.SearchQuery)
	}
	s.pagination.Page = 1
	s.mu.Unlock()

	_, err := s.FetchPage(ctx)
	return err
}

// SetPagination merges partial pagination fields and re-fetches.
func (s *TransactionStore) SetPagination(ctx context.Context, patch PaginationPatch) error {
	s.mu.Lock()
	if patch.Page != nil && *patch.Page >= 1 {
		s.pagination.Page = *patch.Page
	}
	if patch.Limit != nil && *patch.Limit >= 1 {
		s.pagination.Limit = *patch.Limit
	}
	s.mu.Unlock()

	_, err := s.FetchPage(ctx)
	return err
}

// QueueSearch applies a free-text search after the debounce delay. A new
// call inside the delay window cancels the pending one, so a burst of
// keystrokes results in one request carrying the final text.
func (s *TransactionStore) QueueSearch(ctx context.Context, text string) {
	s.search.Trigger(func() {
		q := text
		if err := s.SetFilters(ctx, FilterPatch{SearchQuery: &q}); err != nil {
			slog.Error("Debounced search failed", "error", err)
		}
	})
}

// SetWallet narrows the filter to one wallet (0 clears). Used as the
// selection propagation target; resets pagination like any filter change
// but does not fetch on its own.
func (s *TransactionStore) SetWallet(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.WalletID = id
	s.pagination.Page = 1
}

// Transactions returns a copy of the loaded page.
func (s *TransactionStore) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Transaction(nil), s.transactions...)
}

// Filter returns the active filter state.
func (s *TransactionStore) Filter() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Pagination returns the active pagination state.
func (s *TransactionStore) Pagination() model.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Err returns the last request error message, empty when the last request
// succeeded. Validation failures never appear here.
func (s *TransactionStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// transactionPayload is the mutation shape the backend expects.
type transactionPayload struct {
	Deskripsi      string  `json:"deskripsi"`
	TipeTransaksi  string  `json:"tipe_transaksi"`
	Tanggal        string  `json:"tanggal"`
	Catatan        string  `json:"catatan"`
	CategoryID     int     `json:"category_id"`
	WalletID       int64   `json:"wallet_id,omitempty"`
	Jumlah         float64 `json:"jumlah"`
}

func (s *TransactionStore) buildPayload(draft TransactionDraft, resolveWallet bool) (transactionPayload, error) {
	description := strings.TrimSpace(draft.Description)
	if description == "" {
		return transactionPayload{}, validationErr("description", "description is required")
	}
	if len(description) > model.MaxTransactionDescriptionLen {
		return transactionPayload{}, validationErr("description",
			fmt.Sprintf("description must be at most %d characters", model.MaxTransactionDescriptionLen))
	}
	if !model.ValidTransactionType(draft.Type) {
		return transactionPayload{}, validationErr("type", "type must be income or expense")
	}
	if !positiveFinite(draft.Amount) {
		return transactionPayload{}, validationErr("amount", ErrAmountInvalid)
	}
	if strings.TrimSpace(draft.Category) == "" {
		return transactionPayload{}, validationErr("category", "category must be selected")
	}
	notes := strings.TrimSpace(draft.Notes)
	if len(notes) > model.MaxTransactionNotesLen {
		return transactionPayload{}, validationErr("notes",
			fmt.Sprintf("notes must be at most %d characters", model.MaxTransactionNotesLen))
	}

	date, err := normalizeDate(draft.Date, time.Now())
	if err != nil {
		return transactionPayload{}, validationErr("date", err.Error())
	}

	// Resolution never yields zero: unknown keys land in the "other"
	// bucket. A zero here would be a client bug, so it is a hard stop
	// before any network traffic.
	categoryID := category.ResolveID(strings.TrimSpace(draft.Category), draft.Type)
	if categoryID == 0 {
		return transactionPayload{}, validationErr("category", "category could not be resolved")
	}

	payload := transactionPayload{
		Jumlah:        draft.Amount,
		Deskripsi:     description,
		TipeTransaksi: string(draft.Type),
		CategoryID:    categoryID,
		Tanggal:       date,
		Catatan:       notes,
	}

	if resolveWallet {
		walletID := draft.WalletID
		if walletID == 0 {
			walletID = s.Filter().WalletID
		}
		if walletID == 0 && s.defaultWallet != nil {
			if w := s.defaultWallet(); w != nil {
				walletID = w.ID
			}
		}
		if walletID == 0 {
			return transactionPayload{}, validationErr("walletId", "wallet must be selected")
		}
		payload.WalletID = walletID
	}
	return payload, nil
}

// refresh re-fetches the active page after a successful mutation. The
// mutation itself already succeeded, so a failed refresh is logged and
// retained as the store error rather than failing the operation.
func (s *TransactionStore) refresh(ctx context.Context) {
	if _, err := s.FetchPage(ctx); err != nil {
		slog.Warn("Page refresh after mutation failed", "error", err)
	}
}

func (s *TransactionStore) fail(op string, err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	slog.Error("Transaction store request failed", "op", op, "error", err)
	return err
}

// normalizeDate turns the draft's date input into the timestamp the backend
// stores: now when empty, start of day appended for date-only input, and
// anything else must parse as a known timestamp layout.
func normalizeDate(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now.Format(time.RFC3339), nil
	}
	if dateOnlyRe.MatchString(input) {
		if _, err := time.Parse("2006-01-02", input); err != nil {
			return "", fmt.Errorf("invalid date %q", input)
		}
		return input + "T00:00:00", nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if _, err := time.Parse(layout, input); err == nil {
			return input, nil
		}
	}
	return "", fmt.Errorf("invalid date %q", input)
}

func positiveFinite(f float64) bool {
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
