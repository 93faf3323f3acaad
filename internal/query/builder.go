// Package query translates filter and pagination state into backend query
// parameters, debounces free-text search input, and maps dashboard periods
// onto concrete date ranges.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dompetku/dompetku/internal/model"
)

// Build produces the query parameters for GET /transactions from the active
// filter and pagination state. Unset filter dimensions are omitted entirely;
// a type of "all" counts as unset, and search text is trimmed before use.
func Build(f model.Filter, p model.Pagination) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	values.Set("limit", strconv.Itoa(p.Limit))

	if f.WalletID != 0 {
		values.Set("walletId", strconv.FormatInt(f.WalletID, 10))
	}
	if !f.StartDate.IsZero() {
		values.Set("startDate", f.StartDate.Query())
	}
	if !f.EndDate.IsZero() {
		values.Set("endDate", f.EndDate.Query())
	}
	if t := string(f.Type); t != "" && t != "all" {
		values.Set("type", t)
	}
	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		values.Set("q", q)
	}
	return values
}
