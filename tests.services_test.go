package main

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCacheConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			AllBooksKey: "allBooks",
			TTL:         5 * time.Minute,
		},
	}
}

func newTestBooks() []Book {
	return []Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Description: "Spice", StockQuantity: 10, Price: 19.99, Image: []byte{0x1, 0x2, 0x3}},
		{ID: 2, Title: "Neuromancer", Author: "William Gibson", Description: "Cyberspace", StockQuantity: 4, Price: 12.50},
	}
}

// TestGetAllBooks_CacheMiss ensures a miss loads from the store, repopulates
// the snapshot with the configured TTL and reports database provenance.
func TestGetAllBooks_CacheMiss(t *testing.T) {
	books := newTestBooks()
	var storeCalls int
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			storeCalls++
			return books, nil
		},
	}
	cache := NewMemoryBookCache()
	config := newTestCacheConfig()
	bs := NewBookService(zap.NewNop(), config, NewMockClocker(), mockRepo, cache, &MockQueuer{})

	page, fromCache, err := bs.GetAll(context.Background(), 1, 15)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 1, storeCalls)
	assert.Equal(t, 2, page.TotalCount)
	assert.Len(t, page.Items, 2)

	// the snapshot must be live in the cache with the configured TTL.
	assert.True(t, cache.Contains(config.Cache.AllBooksKey))
	require.Len(t, cache.SetTTLs, 1)
	assert.Equal(t, 5*time.Minute, cache.SetTTLs[0])

	// the populated snapshot must decode back to the same projections.
	data, err := cache.Get(context.Background(), config.Cache.AllBooksKey)
	require.NoError(t, err)
	views, err := DecodeBookViews(data)
	require.NoError(t, err)
	assert.Equal(t, ToBookViews(books), views)
}

// TestGetAllBooks_CacheHit ensures a valid snapshot is served without
// touching the store and without refreshing the TTL.
func TestGetAllBooks_CacheHit(t *testing.T) {
	books := newTestBooks()
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			t.Fatal("store must not be called on a cache hit")
			return nil, nil
		},
	}
	cache := NewMemoryBookCache()
	config := newTestCacheConfig()
	encoded, err := EncodeBookViews(ToBookViews(books))
	require.NoError(t, err)
	cache.Put(config.Cache.AllBooksKey, encoded)

	bs := NewBookService(zap.NewNop(), config, NewMockClocker(), mockRepo, cache, &MockQueuer{})
	page, fromCache, err := bs.GetAll(context.Background(), 1, 15)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 2, page.TotalCount)
	assert.Empty(t, cache.SetTTLs, "a hit must not re-set the cache entry")
}

// TestGetAllBooks_CorruptSnapshot ensures an undecodable payload behaves
// exactly like a miss and gets replaced by a fresh snapshot.
func TestGetAllBooks_CorruptSnapshot(t *testing.T) {
	books := newTestBooks()
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return books, nil
		},
	}
	cache := NewMemoryBookCache()
	config := newTestCacheConfig()
	cache.Put(config.Cache.AllBooksKey, []byte("{definitely-not-a-books-snapshot"))

	bs := NewBookService(zap.NewNop(), config, NewMockClocker(), mockRepo, cache, &MockQueuer{})
	page, fromCache, err := bs.GetAll(context.Background(), 1, 15)
	require.NoError(t, err, "a corrupt snapshot must never surface as a request failure")
	assert.False(t, fromCache)
	assert.Equal(t, 2, page.TotalCount)

	data, err := cache.Get(context.Background(), config.Cache.AllBooksKey)
	require.NoError(t, err)
	_, err = DecodeBookViews(data)
	assert.NoError(t, err, "the snapshot must have been repopulated with a valid payload")
}

// TestGetAllBooks_CacheFault ensures a cache transport failure degrades
// to the store path instead of aborting the request.
func TestGetAllBooks_CacheFault(t *testing.T) {
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return newTestBooks(), nil
		},
	}
	cache := NewMemoryBookCache()
	cache.GetErr = errors.New("i/o timeout")

	bs := NewBookService(zap.NewNop(), newTestCacheConfig(), NewMockClocker(), mockRepo, cache, &MockQueuer{})
	page, fromCache, err := bs.GetAll(context.Background(), 1, 15)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 2, page.TotalCount)
}

// TestGetAllBooks_SetFailure ensures a failed repopulation is not
// surfaced to the caller.
func TestGetAllBooks_SetFailure(t *testing.T) {
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return newTestBooks(), nil
		},
	}
	cache := NewMemoryBookCache()
	cache.SetErr = errors.New("connection reset")

	bs := NewBookService(zap.NewNop(), newTestCacheConfig(), NewMockClocker(), mockRepo, cache, &MockQueuer{})
	page, _, err := bs.GetAll(context.Background(), 1, 15)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
}

// TestGetAllBooks_StoreFault ensures a store failure on the miss path is
// propagated to the caller.
func TestGetAllBooks_StoreFault(t *testing.T) {
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return nil, errors.New("store unavailable")
		},
	}
	bs := NewBookService(zap.NewNop(), newTestCacheConfig(), NewMockClocker(), mockRepo, NewMemoryBookCache(), &MockQueuer{})
	_, _, err := bs.GetAll(context.Background(), 1, 15)
	assert.Error(t, err)
}

// TestGetAllBooks_TwoPages replays the two-pages scenario: pageSize=1
// over 2 stored books yields one book per page, both with TotalCount 2.
func TestGetAllBooks_TwoPages(t *testing.T) {
	books := newTestBooks()
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return books, nil
		},
	}
	bs := NewBookService(zap.NewNop(), newTestCacheConfig(), NewMockClocker(), mockRepo, NewMemoryBookCache(), &MockQueuer{})

	page1, _, err := bs.GetAll(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page1.Items, 1)
	assert.Equal(t, "Dune", page1.Items[0].Title)
	assert.Equal(t, 2, page1.TotalCount)

	page2, _, err := bs.GetAll(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "Neuromancer", page2.Items[0].Title)
	assert.Equal(t, 2, page2.TotalCount)
}

// TestPaginateBooks checks the skip/take arithmetic over various
// sequence lengths, page numbers and sizes.
func TestPaginateBooks(t *testing.T) {
	makeViews := func(n int) []BookView {
		views := make([]BookView, 0, n)
		for i := 0; i < n; i++ {
			views = append(views, BookView{ID: int64(i + 1)})
		}
		return views
	}

	testCases := []struct {
		name       string
		total      int
		pageNumber int
		pageSize   int
		wantLen    int
		wantFirst  int64
	}{
		{"first page full", 5, 1, 2, 2, 1},
		{"middle page", 5, 2, 2, 2, 3},
		{"last partial page", 5, 3, 2, 1, 5},
		{"page beyond data", 5, 4, 2, 0, 0},
		{"page far beyond data", 5, 100, 2, 0, 0},
		{"size larger than data", 3, 1, 15, 3, 1},
		{"empty sequence", 0, 1, 15, 0, 0},
		{"invalid page falls back to default", 5, 0, 2, 2, 1},
		{"invalid size falls back to default", 5, 1, 0, 5, 1},
		{"huge page number", 5, math.MaxInt, 2, 0, 0},
		{"huge page size", 3, 1, math.MaxInt, 3, 1},
		{"huge page number and size", 2, 1 << 62, 1 << 62, 0, 0},
		{"huge size on second page", 5, 2, math.MaxInt, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := paginateBooks(makeViews(tc.total), tc.pageNumber, tc.pageSize)
			assert.Equal(t, tc.wantLen, len(page.Items))
			assert.Equal(t, tc.total, page.TotalCount)
			if tc.wantLen > 0 {
				assert.Equal(t, tc.wantFirst, page.Items[0].ID)
			}
		})
	}
}

// TestWritePath_InvalidatesCache ensures every mutation drops the
// all-books snapshot, whether the store mutation succeeded or not.
func TestWritePath_InvalidatesCache(t *testing.T) {
	config := newTestCacheConfig()
	seed := func(cache *MemoryBookCache) {
		encoded, err := EncodeBookViews(ToBookViews(newTestBooks()))
		require.NoError(t, err)
		cache.Put(config.Cache.AllBooksKey, encoded)
	}

	testCases := []struct {
		name     string
		storeErr error
		mutate   func(bs BookServiceProvider) error
	}{
		{
			"create success", nil,
			func(bs BookServiceProvider) error {
				_, err := bs.Add(context.Background(), CreateBookRequest{Title: "Dune", Author: "Frank Herbert", Description: "Spice", Image: []byte{0x1}})
				return err
			},
		},
		{
			"create failure", errors.New("store fault"),
			func(bs BookServiceProvider) error {
				_, err := bs.Add(context.Background(), CreateBookRequest{Title: "Dune", Author: "Frank Herbert", Description: "Spice", Image: []byte{0x1}})
				return err
			},
		},
		{
			"update success", nil,
			func(bs BookServiceProvider) error {
				_, err := bs.Update(context.Background(), 1, UpdateBookRequest{})
				return err
			},
		},
		{
			"update not found", ErrBookNotFound,
			func(bs BookServiceProvider) error {
				_, err := bs.Update(context.Background(), 99, UpdateBookRequest{})
				return err
			},
		},
		{
			"delete success", nil,
			func(bs BookServiceProvider) error {
				return bs.Delete(context.Background(), 1)
			},
		},
		{
			"delete not found", ErrBookNotFound,
			func(bs BookServiceProvider) error {
				return bs.Delete(context.Background(), 99)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockBookStorage{
				CreateFunc: func(ctx context.Context, book Book) (Book, error) {
					book.ID = 1
					return book, tc.storeErr
				},
				UpdateFunc: func(ctx context.Context, id int64, update UpdateBookRequest) (Book, error) {
					return Book{ID: id}, tc.storeErr
				},
				DeleteFunc: func(ctx context.Context, id int64) error {
					return tc.storeErr
				},
			}
			cache := NewMemoryBookCache()
			seed(cache)
			queue := &MockQueuer{}
			bs := NewBookService(zap.NewNop(), config, NewMockClocker(), mockRepo, cache, queue)

			err := tc.mutate(bs)
			if tc.storeErr != nil {
				assert.ErrorIs(t, err, tc.storeErr)
			} else {
				assert.NoError(t, err)
			}
			assert.False(t, cache.Contains(config.Cache.AllBooksKey), "the snapshot must be gone after any mutation")
			// every mutation leaves one audit event with the store outcome.
			require.Len(t, queue.Events, 1)
			assert.Equal(t, tc.storeErr == nil, queue.Events[0].Success)
		})
	}
}

// TestWritePath_InvalidationFailureIsSwallowed ensures a failed removal
// does not change the mutation outcome.
func TestWritePath_InvalidationFailureIsSwallowed(t *testing.T) {
	mockRepo := &MockBookStorage{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	cache := NewMemoryBookCache()
	cache.RemErr = errors.New("connection refused")
	bs := NewBookService(zap.NewNop(), newTestCacheConfig(), NewMockClocker(), mockRepo, cache, &MockQueuer{})
	assert.NoError(t, bs.Delete(context.Background(), 1))
}

// TestUpdateBookRequest_ApplyTo verifies the per-field merge rule:
// absent or empty strings preserve the current value, supplied numbers
// and image always overwrite.
func TestUpdateBookRequest_ApplyTo(t *testing.T) {
	base := func() Book {
		return Book{
			ID:            7,
			Title:         "Dune",
			Author:        "Frank Herbert",
			Description:   "Spice",
			StockQuantity: 10,
			Price:         19.99,
			Image:         []byte{0x1, 0x2, 0x3},
		}
	}

	t.Run("price only", func(t *testing.T) {
		book := base()
		price := 9.99
		update := UpdateBookRequest{Price: &price}
		update.ApplyTo(&book)
		assert.Equal(t, 9.99, book.Price)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "Frank Herbert", book.Author)
		assert.Equal(t, "Spice", book.Description)
		assert.Equal(t, 10, book.StockQuantity)
		assert.Equal(t, []byte{0x1, 0x2, 0x3}, book.Image)
	})

	t.Run("empty strings are no change", func(t *testing.T) {
		book := base()
		empty := ""
		update := UpdateBookRequest{Title: &empty, Author: &empty, Description: &empty}
		update.ApplyTo(&book)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "Frank Herbert", book.Author)
		assert.Equal(t, "Spice", book.Description)
	})

	t.Run("supplied numeric overwrites with zero", func(t *testing.T) {
		book := base()
		zero := 0
		update := UpdateBookRequest{StockQuantity: &zero}
		update.ApplyTo(&book)
		assert.Equal(t, 0, book.StockQuantity)
	})

	t.Run("supplied image overwrites", func(t *testing.T) {
		book := base()
		update := UpdateBookRequest{Image: []byte{0x9}}
		update.ApplyTo(&book)
		assert.Equal(t, []byte{0x9}, book.Image)
	})
}
