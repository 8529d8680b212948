package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// The cache holds one entry: the JSON encoding of the full ordered list
// of book projections at the moment of the last population. The codec is
// the single owner of that layout so the read path and the tests agree
// on what a valid snapshot looks like.

// ToBookView projects a book record into its cacheable/transport shape.
// The image becomes a base64 string only when the source blob is non-empty.
func ToBookView(book Book) BookView {
	view := BookView{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		StockQuantity: book.StockQuantity,
		Price:         book.Price,
	}
	if len(book.Image) != 0 {
		view.Image = base64.StdEncoding.EncodeToString(book.Image)
	}
	return view
}

// ToBookViews projects a sequence of book records, preserving order.
func ToBookViews(books []Book) []BookView {
	views := make([]BookView, 0, len(books))
	for _, book := range books {
		views = append(views, ToBookView(book))
	}
	return views
}

// EncodeBookViews serializes a sequence of book projections into the
// textual form stored under the all-books cache key.
func EncodeBookViews(views []BookView) ([]byte, error) {
	data, err := json.Marshal(views)
	if err != nil {
		return nil, fmt.Errorf("codec: failed to encode books collection: %w", err)
	}
	return data, nil
}

// DecodeBookViews deserializes a cached snapshot. A decode failure means
// the payload is corrupt or from an incompatible revision; callers must
// treat it exactly like a cache miss, never as a request failure.
func DecodeBookViews(data []byte) ([]BookView, error) {
	var views []BookView
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, fmt.Errorf("codec: failed to decode books collection: %w", err)
	}
	return views, nil
}
