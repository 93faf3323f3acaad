package store

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/model"
)

func validDraft() TransactionDraft {
	return TransactionDraft{
		Description: "Lunch",
		Category:    "makanan_dan_minuman",
		Type:        model.TypeExpense,
		Amount:      25000,
		WalletID:    1,
	}
}

func TestTransactionStore_FetchPage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"deskripsi":"Lunch","jumlah":25000,"tipe_transaksi":"expense","category_id":1,"wallet_id":1,"tanggal":"2024-06-10T12:00:00"},
			{"id":2,"description":"Salary","amount":"5000000","type":"income","category":"gaji","walletId":1,"date":"2024-06-01"}
		],"totalItems":42,"totalPages":5}`))
	}))

	s := NewTransactionStore(client, nil)
	page, err := s.FetchPage(context.Background())
	require.NoError(t, err)
	require.Len(t, page, 2)

	assert.Equal(t, "Lunch", page[0].Description)
	assert.Equal(t, model.TypeExpense, page[0].Type)
	assert.Equal(t, "makanan_dan_minuman", page[0].Category, "numeric category mapped to its key")
	assert.InDelta(t, 25000, page[0].Amount, 0.001)
	assert.Equal(t, int64(1), page[0].WalletID)

	assert.Equal(t, model.TypeIncome, page[1].Type)
	assert.InDelta(t, 5000000, page[1].Amount, 0.001, "string amount coerced")

	p := s.Pagination()
	assert.Equal(t, 42, p.TotalItems)
	assert.Equal(t, 5, p.TotalPages)
	assert.Empty(t, s.Err())
}

func TestTransactionStore_FetchPageDerivesTotals(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"jumlah":10,"tipe_transaksi":"expense"},{"id":2,"jumlah":20,"tipe_transaksi":"expense"}]`))
	}))

	s := NewTransactionStore(client, nil)
	_, err := s.FetchPage(context.Background())
	require.NoError(t, err)

	p := s.Pagination()
	assert.Equal(t, 2, p.TotalItems, "bare arrays fall back to the item count")
	assert.Equal(t, 1, p.TotalPages)
}

func TestTransactionStore_SetFiltersResetsPage(t *testing.T) {
	var lastPage atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPage.Store(r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"data":[],"totalItems":100,"totalPages":10}`))
	}))

	s := NewTransactionStore(client, nil)
	page := 4
	require.NoError(t, s.SetPagination(context.Background(), PaginationPatch{Page: &page}))
	assert.Equal(t, "4", lastPage.Load())
	assert.Equal(t, 4, s.Pagination().Page)

	typ := model.TypeIncome
	require.NoError(t, s.SetFilters(context.Background(), FilterPatch{Type: &typ}))
	assert.Equal(t, "1", lastPage.Load(), "a filter change always restarts at page 1")
	assert.Equal(t, 1, s.Pagination().Page)
	assert.Equal(t, typ, s.Filter().Type)
}

func TestTransactionStore_FilterPatchClearsDimension(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	s := NewTransactionStore(client, nil)
	wallet := int64(7)
	require.NoError(t, s.SetFilters(context.Background(), FilterPatch{WalletID: &wallet}))
	require.Equal(t, int64(7), s.Filter().WalletID)

	// A pointed-to zero clears; a nil field leaves the dimension alone.
	zero := int64(0)
	q := "coffee"
	require.NoError(t, s.SetFilters(context.Background(), FilterPatch{WalletID: &zero, SearchQuery: &q}))
	assert.Equal(t, int64(0), s.Filter().WalletID)
	assert.Equal(t, "coffee", s.Filter().SearchQuery)

	require.NoError(t, s.SetFilters(context.Background(), FilterPatch{}))
	assert.Equal(t, "coffee", s.Filter().SearchQuery)
}

func TestTransactionStore_CreateValidation(t *testing.T) {
	var requests atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))

	tests := []struct {
		name    string
		mutate  func(*TransactionDraft)
		field   string
		message string
	}{
		{
			name:   "empty description",
			mutate: func(d *TransactionDraft) { d.Description = "" },
			field:  "description",
		},
		{
			name:   "description too long",
			mutate: func(d *TransactionDraft) { d.Description = strings.Repeat("x", model.MaxTransactionDescriptionLen+1) },
			field:  "description",
		},
		{
			name:   "bad type",
			mutate: func(d *TransactionDraft) { d.Type = "transfer" },
			field:  "type",
		},
		{
			name:    "zero amount",
			mutate:  func(d *TransactionDraft) { d.Amount = 0 },
			field:   "amount",
			message: ErrAmountInvalid,
		},
		{
			name:    "negative amount",
			mutate:  func(d *TransactionDraft) { d.Amount = -5 },
			field:   "amount",
			message: ErrAmountInvalid,
		},
		{
			name:    "NaN amount",
			mutate:  func(d *TransactionDraft) { d.Amount = math.NaN() },
			field:   "amount",
			message: ErrAmountInvalid,
		},
		{
			name:    "infinite amount",
			mutate:  func(d *TransactionDraft) { d.Amount = math.Inf(1) },
			field:   "amount",
			message: ErrAmountInvalid,
		},
		{
			name:   "empty category",
			mutate: func(d *TransactionDraft) { d.Category = " " },
			field:  "category",
		},
		{
			name:   "notes too long",
			mutate: func(d *TransactionDraft) { d.Notes = strings.Repeat("x", model.MaxTransactionNotesLen+1) },
			field:  "notes",
		},
		{
			name:   "unparseable date",
			mutate: func(d *TransactionDraft) { d.Date = "next tuesday" },
			field:  "date",
		},
		{
			name:   "no wallet anywhere",
			mutate: func(d *TransactionDraft) { d.WalletID = 0 },
			field:  "walletId",
		},
	}

	s := NewTransactionStore(client, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			_, err := s.Create(context.Background(), draft)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, vErr.Message)
			}
		})
	}

	assert.Zero(t, requests.Load(), "validation failures must not reach the network")
	assert.Empty(t, s.Err(), "validation failures never set the store error")
}

func TestTransactionStore_CreateRefreshesPage(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
		payload transactionPayload
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			_, _ = w.Write([]byte(`{"data":{"id":9,"deskripsi":"Lunch","jumlah":25000,"tipe_transaksi":"expense"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":9,"deskripsi":"Lunch","jumlah":25000,"tipe_transaksi":"expense"}],"totalItems":11,"totalPages":2}`))
	}))

	s := NewTransactionStore(client, nil)
	created, err := s.Create(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodPost, http.MethodGet}, methods,
		"a successful create is followed by a page re-fetch")

	assert.Equal(t, "Lunch", payload.Deskripsi)
	assert.Equal(t, 1, payload.CategoryID)
	assert.Equal(t, int64(1), payload.WalletID)
	assert.InDelta(t, 25000, payload.Jumlah, 0.001)

	p := s.Pagination()
	assert.Equal(t, 11, p.TotalItems, "totals come from the backend, not a local guess")
	assert.Equal(t, 2, p.TotalPages)
}

func TestTransactionStore_WalletResolutionOrder(t *testing.T) {
	var got atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var payload transactionPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			got.Store(payload.WalletID)
			_, _ = w.Write([]byte(`{"id":1,"deskripsi":"x","jumlah":1,"tipe_transaksi":"expense"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	selected := model.Wallet{ID: 30}
	s := NewTransactionStore(client, func() *model.Wallet { return &selected })

	// Draft wallet wins over everything.
	draft := validDraft()
	draft.WalletID = 10
	_, err := s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Load())

	// Filter wallet next.
	filterWallet := int64(20)
	require.NoError(t, s.SetFilters(context.Background(), FilterPatch{WalletID: &filterWallet}))
	draft.WalletID = 0
	_, err = s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.Load())

	// Finally the current selection.
	zero := int64(0)
	require.NoError(t, s.SetFilters(context.Background(), FilterPatch{WalletID: &zero}))
	_, err = s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(30), got.Load())
}

func TestTransactionStore_UpdateNeverSendsWallet(t *testing.T) {
	var body atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			assert.Equal(t, "/transactions/5", r.URL.Path)
			var raw map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			body.Store(raw)
			_, _ = w.Write([]byte(`{"id":5,"deskripsi":"Lunch","jumlah":30000,"tipe_transaksi":"expense"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	s := NewTransactionStore(client, nil)
	draft := validDraft()
	draft.WalletID = 99 // must be ignored on update
	updated, err := s.Update(context.Background(), 5, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.ID)

	raw := body.Load().(map[string]json.RawMessage)
	_, hasWallet := raw["wallet_id"]
	assert.False(t, hasWallet, "updates cannot move a transaction between wallets")
}

func TestTransactionStore_Delete(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodDelete {
			assert.Equal(t, "/transactions/3", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	s := NewTransactionStore(client, nil)
	require.NoError(t, s.Delete(context.Background(), 3))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodDelete, http.MethodGet}, methods)
}

func TestTransactionStore_DeleteRequiresID(t *testing.T) {
	s := NewTransactionStore(nil, nil)
	err := s.Delete(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTransactionStore_StaleResponseDiscarded(t *testing.T) {
	firstArrived := make(chan struct{})
	release := make(chan struct{})
	var requests atomic.Int64

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			close(firstArrived)
			<-release
			_, _ = w.Write([]byte(`{"data":[{"id":1,"deskripsi":"stale","jumlah":1,"tipe_transaksi":"expense"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":2,"deskripsi":"fresh","jumlah":2,"tipe_transaksi":"expense"}]}`))
	}))

	s := NewTransactionStore(client, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.FetchPage(context.Background())
	}()

	<-firstArrived
	_, err := s.FetchPage(context.Background())
	require.NoError(t, err)

	close(release)
	wg.Wait()

	page := s.Transactions()
	require.Len(t, page, 1)
	assert.Equal(t, "fresh", page[0].Description,
		"a response overtaken by a newer one must not overwrite state")
}

func TestTransactionStore_FetchFailureRetainsError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream offline"}`))
	}))

	s := NewTransactionStore(client, nil)
	_, err := s.FetchPage(context.Background())
	require.Error(t, err)
	assert.Contains(t, s.Err(), "upstream offline")
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty means now", input: "", want: now.Format(time.RFC3339)},
		{name: "date-only gets start of day", input: "2024-06-10", want: "2024-06-10T00:00:00"},
		{name: "rfc3339 passes through", input: "2024-06-10T08:30:00Z", want: "2024-06-10T08:30:00Z"},
		{name: "local timestamp passes through", input: "2024-06-10T08:30:00", want: "2024-06-10T08:30:00"},
		{name: "impossible calendar date", input: "2024-13-45", wantErr: true},
		{name: "free text", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeDate(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetRequiresID(t *testing.T) {
	s := NewTransactionStore(nil, nil)
	_, err := s.Get(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
