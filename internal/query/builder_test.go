package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dompetku/dompetku/internal/model"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		filter     model.Filter
		pagination model.Pagination
		want       map[string]string
		absent     []string
	}{
		{
			name:       "pagination only",
			pagination: model.Pagination{Page: 1, Limit: 10},
			want:       map[string]string{"page": "1", "limit": "10"},
			absent:     []string{"walletId", "startDate", "endDate", "type", "q"},
		},
		{
			name: "all dimensions set",
			filter: model.Filter{
				WalletID:    7,
				Type:        "expense",
				StartDate:   model.NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
				EndDate:     model.NewDate(time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)),
				SearchQuery: "coffee",
			},
			pagination: model.Pagination{Page: 2, Limit: 25},
			want: map[string]string{
				"page":      "2",
				"limit":     "25",
				"walletId":  "7",
				"startDate": "2024-06-01",
				"endDate":   "2024-06-30",
				"type":      "expense",
				"q":         "coffee",
			},
		},
		{
			name:       "type all is treated as unset",
			filter:     model.Filter{Type: "all"},
			pagination: model.Pagination{Page: 1, Limit: 10},
			absent:     []string{"type"},
		},
		{
			name:       "search is trimmed",
			filter:     model.Filter{SearchQuery: "  groceries  "},
			pagination: model.Pagination{Page: 1, Limit: 10},
			want:       map[string]string{"q": "groceries"},
		},
		{
			name:       "whitespace-only search omitted",
			filter:     model.Filter{SearchQuery: "   "},
			pagination: model.Pagination{Page: 1, Limit: 10},
			absent:     []string{"q"},
		},
		{
			name:       "raw date passes through verbatim",
			filter:     model.Filter{StartDate: model.RawDate("2024-01-15")},
			pagination: model.Pagination{Page: 1, Limit: 10},
			want:       map[string]string{"startDate": "2024-01-15"},
		},
		{
			name:       "zero wallet omitted",
			filter:     model.Filter{WalletID: 0},
			pagination: model.Pagination{Page: 1, Limit: 10},
			absent:     []string{"walletId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Build(tt.filter, tt.pagination)
			for key, want := range tt.want {
				assert.Equal(t, want, values.Get(key), "param %s", key)
			}
			for _, key := range tt.absent {
				assert.False(t, values.Has(key), "param %s should be absent", key)
			}
		})
	}
}
