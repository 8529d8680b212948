package main

import (
	"context"
	"time"
)

// Book represents a book record as persisted by the store.
// The identity is assigned by the store at creation time and
// never changes afterwards.
type Book struct {
	ID            int64   `json:"bookId"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	StockQuantity int     `json:"stockQuantity"`
	Price         float64 `json:"price"`
	Image         []byte  `json:"image,omitempty"`
}

// BookView is the read projection of a Book. It is the only shape
// ever placed into the cache or returned on the all-books path.
// The image is carried as a base64 string so the encoded collection
// stays a plain UTF-8 JSON document.
type BookView struct {
	ID            int64   `json:"bookId"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	StockQuantity int     `json:"stockQuantity"`
	Price         float64 `json:"price"`
	Image         string  `json:"image,omitempty"`
}

// CreateBookRequest carries the fields of a book creation call.
// The image comes base64-encoded on the wire and is mandatory.
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	StockQuantity int     `json:"stockQuantity"`
	Price         float64 `json:"price"`
	Image         []byte  `json:"image"`
}

// UpdateBookRequest carries a partial update. Every field is optional:
// a nil pointer (or an empty supplied string) leaves the current value
// untouched, while a supplied number or image always overwrites.
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Description   *string  `json:"description"`
	StockQuantity *int     `json:"stockQuantity"`
	Price         *float64 `json:"price"`
	Image         []byte   `json:"image"`
}

// ApplyTo merges the request into an existing book record.
func (ur *UpdateBookRequest) ApplyTo(book *Book) {
	if ur.Title != nil && *ur.Title != "" {
		book.Title = *ur.Title
	}
	if ur.Author != nil && *ur.Author != "" {
		book.Author = *ur.Author
	}
	if ur.Description != nil && *ur.Description != "" {
		book.Description = *ur.Description
	}
	if ur.StockQuantity != nil {
		book.StockQuantity = *ur.StockQuantity
	}
	if ur.Price != nil {
		book.Price = *ur.Price
	}
	if len(ur.Image) != 0 {
		book.Image = ur.Image
	}
}

// PaginatedBooks is a transient view over one page of book projections.
// TotalCount reflects the full underlying sequence, not the page.
type PaginatedBooks struct {
	Items      []BookView `json:"items"`
	PageNumber int        `json:"pageNumber"`
	PageSize   int        `json:"pageSize"`
	TotalCount int        `json:"totalCount"`
}

// BookStorage defines possible operations on book records.
type BookStorage interface {
	Create(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id int64, update UpdateBookRequest) (Book, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

// BookCache is a key-value gateway to the shared cache service.
// Get reports ErrCacheMiss when the key is absent. Remove is
// idempotent and does not fail on an absent key.
type BookCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
