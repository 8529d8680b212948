package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// CreateBook godoc
// @Summary Create a new book
// @Description Inserts a new book record with its cover image and invalidates the all-books cache entry.
// @Accept json
// @Produce json
// @Param book body CreateBookRequest true "book creation payload"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/book [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := CreateBookRequest{}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeCreateBookRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to create the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	// A missing image short-circuits with a plain text failure before
	// any store or cache call.
	if len(req.Image) == 0 {
		api.logger.Error("failed to create book: image is missing", zap.String("request.id", requestID))
		http.Error(w, "image is required", http.StatusBadRequest)
		return
	}

	err = ValidateCreateBookRequestBody(&req)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to create the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.Add(r.Context(), req)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to create the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to create book", zap.Int64("book.id", book.ID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, "Book created successfully", nil, book)
	if err = WriteResponse(r.Context(), w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks godoc
// @Summary List books with pagination
// @Description Serves one page of the books collection, from the shared cache snapshot when available, from the store otherwise.
// @Produce json
// @Param pageNumber query int false "1-based page number" default(1)
// @Param pageSize query int false "page size" default(15)
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/book [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	pageNumber := ParsePositiveQueryParam(r, "pageNumber", DefaultPageNumber)
	pageSize := ParsePositiveQueryParam(r, "pageSize", DefaultPageSize)

	page, fromCache, err := api.bookService.GetAll(r.Context(), pageNumber, pageSize)
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to get all books", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	message := "Books retrieved from database"
	if fromCache {
		message = "Books retrieved from cache"
	}
	api.logger.Info("success to get all books",
		zap.String("request.id", requestID),
		zap.Bool("cache.hit", fromCache),
		zap.Int("books.total", page.TotalCount),
	)
	total := page.TotalCount
	resp := GenericResponse(requestID, message, &total, page)
	if err = WriteResponse(r.Context(), w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneBook godoc
// @Summary Fetch a single book
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/book/{id} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, "book id provided is not valid", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	view, err := api.bookService.GetOne(r.Context(), id)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, "Book not found", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to get the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, "Book fetched successfully", nil, view)
	if err = WriteResponse(r.Context(), w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook godoc
// @Summary Partially update a book
// @Description Overwrites only the supplied fields then invalidates the all-books cache entry.
// @Accept json
// @Produce json
// @Param bookId path int true "book id"
// @Param book body UpdateBookRequest true "book update payload"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/book/{bookId} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseBookID(ps.ByName("bookId"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("bookId")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, "book id provided is not valid", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	var req UpdateBookRequest
	err = DecodeUpdateBookRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to update the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateUpdateBookRequestBody(&req)
	if err != nil {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to update the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.Update(r.Context(), id, req)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, "Book not found", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to update the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, "Book updated successfully", nil, book)
	if err = WriteResponse(r.Context(), w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook godoc
// @Summary Delete a book
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/book/{id} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, "book id provided is not valid", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = api.bookService.Delete(r.Context(), id)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, "Book not found", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, "failed to delete the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, "Book deleted successfully", nil, EmptyData)
	if err = WriteResponse(r.Context(), w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
