package model

import "time"

// Item is a stocked item. Exactly one of InventoryID (multi-tenant) and
// UserID (single-tenant) is set.
type Item struct {
	ID          int64
	InventoryID *int64
	UserID      *int64
	Name        string
	Quantity    int
	Unit        *string
	ParLevel    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemPage is one page of a paginated item listing.
type ItemPage struct {
	Items    []Item
	Page     int
	PageSize int
	Total    int
}

// Field is an optional raw input value, as decoded from a request body.
// Set distinguishes an absent key from an explicit null.
type Field struct {
	Set   bool
	Value any
}

// Present returns a set field holding v.
func Present(v any) Field { return Field{Set: true, Value: v} }

// ItemInput carries the raw fields of an item create or patch.
type ItemInput struct {
	Name     Field
	Quantity Field
	Unit     Field
	ParLevel Field
}
