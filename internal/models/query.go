package models

import "fmt"

// CatalogQuery identifies one page of externally-sourced catalog items.
type CatalogQuery struct {
	Category string `json:"category"`
	Page     int    `json:"page,omitempty"`
}

// Validate ensures the query has valid fields and sets defaults.
// Pages are 1-based; zero or negative pages normalize to 1. An unrecognized
// category is not an error here — the upstream client treats it as "no
// extra filter".
func (q *CatalogQuery) Validate() error {
	if q.Category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return nil
}

// Key returns the cache key for this query.
func (q *CatalogQuery) Key() string {
	return fmt.Sprintf("%s_%d", q.Category, q.Page)
}
