package model

import "time"

// Date is a filter bound that is either a concrete point in time or a raw
// string already formatted for the backend. Raw strings pass through to the
// query unchanged; concrete times are serialized to YYYY-MM-DD.
type Date struct {
	Time time.Time
	Raw  string
}

// NewDate wraps a concrete time.
func NewDate(t time.Time) Date { return Date{Time: t} }

// RawDate wraps a backend-formatted date string.
func RawDate(s string) Date { return Date{Raw: s} }

// IsZero reports whether no bound is set.
func (d Date) IsZero() bool { return d.Time.IsZero() && d.Raw == "" }

// Query returns the value to place in a backend query parameter.
func (d Date) Query() string {
	if !d.Time.IsZero() {
		return d.Time.Format("2006-01-02")
	}
	return d.Raw
}

// Filter is the active set of constraints narrowing which transactions are
// fetched. Zero values mean "no constraint on this dimension".
type Filter struct {
	StartDate   Date
	EndDate     Date
	SearchQuery string
	Type        TransactionType // empty means all types
	WalletID    int64           // 0 means all wallets
}

// Pagination is the page/limit/total-count state governing which slice of
// the transaction collection is loaded. Page is 1-based.
type Pagination struct {
	Page       int
	Limit      int
	TotalItems int
	TotalPages int
}

// DefaultPagination mirrors the initial state of the transaction collection.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, Limit: 10, TotalPages: 1}
}

// PageCount derives the number of pages for total items at the given limit.
func PageCount(totalItems, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (totalItems + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}
