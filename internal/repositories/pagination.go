package repositories

import "errors"

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is the skip/limit window of a list query.
type Page struct {
	Skip  int
	Limit int
}

// Normalize applies the default limit and caps oversized ones.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
