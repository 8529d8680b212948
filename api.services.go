package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 15
)

type BookServiceProvider interface {
	Add(ctx context.Context, req CreateBookRequest) (Book, error)
	GetOne(ctx context.Context, id int64) (BookView, error)
	GetAll(ctx context.Context, pageNumber, pageSize int) (PaginatedBooks, bool, error)
	Update(ctx context.Context, id int64, req UpdateBookRequest) (Book, error)
	Delete(ctx context.Context, id int64) error
}

// BookService coordinates the store, the shared cache and the audit
// queue. Reads are cache-aside over a single all-books snapshot; every
// write invalidates that snapshot after the store mutation completed,
// regardless of the mutation outcome. There is no locking between the
// two paths: a reader racing a writer may repopulate a stale snapshot
// which then lives at most until the configured TTL.
type BookService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage BookStorage
	cache   BookCache
	queue   Queuer
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, storage BookStorage, cache BookCache, queue Queuer) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
		cache:   cache,
		queue:   queue,
	}
}

// invalidate drops the all-books snapshot. Removal is idempotent and
// cheap so it runs even after a failed mutation; a removal failure is
// logged and left for the TTL to resolve.
func (bs *BookService) invalidate(ctx context.Context) {
	if err := bs.cache.Remove(ctx, bs.config.Cache.AllBooksKey); err != nil {
		bs.logger.Error("service: failed to invalidate books cache", zap.String("cache.key", bs.config.Cache.AllBooksKey), zap.Error(err))
	}
}

// publish pushes a mutation event onto the audit queue. Audit delivery
// is best effort and never affects the caller's outcome.
func (bs *BookService) publish(ctx context.Context, action string, id int64, success bool) {
	event := BookEvent{Action: action, BookID: id, Success: success, At: bs.clock.Now()}
	if err := bs.queue.Push(ctx, AuditQueue, event); err != nil {
		bs.logger.Error("service: failed to push event to queue", zap.String("qid", AuditQueue), zap.Error(err))
	}
}

// Add inserts a new book then invalidates the all-books snapshot.
func (bs *BookService) Add(ctx context.Context, req CreateBookRequest) (Book, error) {
	book, err := bs.storage.Create(ctx, Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
		Image:         req.Image,
	})
	bs.invalidate(ctx)
	bs.publish(ctx, ActionCreate, book.ID, err == nil)
	return book, err
}

// Update merges the supplied fields into the stored record then
// invalidates the all-books snapshot.
func (bs *BookService) Update(ctx context.Context, id int64, req UpdateBookRequest) (Book, error) {
	book, err := bs.storage.Update(ctx, id, req)
	bs.invalidate(ctx)
	bs.publish(ctx, ActionUpdate, id, err == nil)
	return book, err
}

// Delete removes the record then invalidates the all-books snapshot.
func (bs *BookService) Delete(ctx context.Context, id int64) error {
	err := bs.storage.Delete(ctx, id)
	bs.invalidate(ctx)
	bs.publish(ctx, ActionDelete, id, err == nil)
	return err
}

// GetOne retrieves a single book straight from the store. The shared
// cache only ever holds the full collection snapshot.
func (bs *BookService) GetOne(ctx context.Context, id int64) (BookView, error) {
	book, err := bs.storage.GetOne(ctx, id)
	if err != nil {
		return BookView{}, err
	}
	return ToBookView(book), nil
}

// GetAll serves one page of the books collection. It first tries the
// cached snapshot; a cache fault or an undecodable payload degrades to
// a miss. On miss the full collection is loaded from the store and the
// snapshot repopulated with the configured TTL before paginating. The
// returned flag reports whether the page came from the cache.
func (bs *BookService) GetAll(ctx context.Context, pageNumber, pageSize int) (PaginatedBooks, bool, error) {
	key := bs.config.Cache.AllBooksKey
	data, err := bs.cache.Get(ctx, key)
	switch {
	case err == nil && len(data) != 0:
		views, derr := DecodeBookViews(data)
		if derr == nil {
			return paginateBooks(views, pageNumber, pageSize), true, nil
		}
		bs.logger.Warn("service: cached books snapshot is not decodable", zap.String("cache.key", key), zap.Error(derr))
	case err != nil && !errors.Is(err, ErrCacheMiss):
		bs.logger.Error("service: failed to read books cache", zap.String("cache.key", key), zap.Error(err))
	}

	books, err := bs.storage.GetAll(ctx)
	if err != nil {
		return PaginatedBooks{}, false, err
	}
	views := ToBookViews(books)

	// Repopulation happens before pagination so the snapshot lands in the
	// cache even for an out-of-range page request.
	if encoded, eerr := EncodeBookViews(views); eerr != nil {
		bs.logger.Error("service: failed to encode books snapshot", zap.Error(eerr))
	} else if serr := bs.cache.Set(ctx, key, encoded, bs.config.Cache.TTL); serr != nil {
		bs.logger.Error("service: failed to populate books cache", zap.String("cache.key", key), zap.Error(serr))
	}

	return paginateBooks(views, pageNumber, pageSize), false, nil
}

// paginateBooks applies skip/take arithmetic over the full sequence.
// Out of range pages yield an empty items list while TotalCount keeps
// reflecting the whole sequence.
func paginateBooks(views []BookView, pageNumber, pageSize int) PaginatedBooks {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(views)
	items := []BookView{}
	// The page is in range iff (pageNumber-1)*pageSize < total. The
	// division form of that check keeps huge page inputs from
	// overflowing before the offsets are known to be bounded by total.
	if total > 0 && pageNumber-1 <= (total-1)/pageSize {
		start := (pageNumber - 1) * pageSize
		end := start + pageSize
		if end > total || end < start {
			end = total
		}
		items = append(items, views[start:end]...)
	}
	return PaginatedBooks{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
