package book

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

// defaultFilterRating is applied by GET /books/fetch when no rating is given.
// Existing clients rely on it, so an unfiltered call returns only rating-1 books.
const defaultFilterRating = 1

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type bookRequest struct {
	ID          *int   `json:"id,omitempty"`
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Author      string `json:"author" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=100"`
	Rating      int    `json:"rating" validate:"gte=1,lte=5"`
	Published   string `json:"published" validate:"required,datetime=2006-01-02"`
}

func (req bookRequest) toBook() Book {
	return Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Rating:      req.Rating,
		Published:   req.Published,
	}
}

// RegisterRoutes mounts the book endpoints on mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /books/fetch/all", h.FetchAll)
	mux.HandleFunc("GET /books/fetch/rating/{rating}", h.FetchByRating)
	mux.HandleFunc("GET /books/fetch/{book_id}", h.FetchByID)
	mux.HandleFunc("GET /books/fetch", h.FetchFiltered)
	mux.HandleFunc("POST /books/create", h.Create)
	mux.HandleFunc("POST /book/create", h.Create)
	mux.HandleFunc("PUT /books/update/{book_id}", h.Update)
	mux.HandleFunc("DELETE /books/delete/{book_id}", h.Delete)
}

// FetchAll handles GET /books/fetch/all
func (h *HTTPHandler) FetchAll(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListAll(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, books, map[string]any{"total": len(books)})
}

// FetchByID handles GET /books/fetch/{book_id}. A missing book is not an error:
// the response succeeds without data.
func (h *HTTPHandler) FetchByID(w http.ResponseWriter, r *http.Request) {
	id, ok := positiveIntParam(w, r, "book_id")
	if !ok {
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONSuccess(r, w, nil, nil)
			return
		}
		h.internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, book, nil)
}

// FetchByRating handles GET /books/fetch/rating/{rating}
func (h *HTTPHandler) FetchByRating(w http.ResponseWriter, r *http.Request) {
	rating, ok := positiveIntParam(w, r, "rating")
	if !ok {
		return
	}

	books, err := h.service.FilterByRating(r.Context(), rating)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, books, map[string]any{"total": len(books)})
}

// FetchFiltered handles GET /books/fetch?title=&author=&rating=&published=
func (h *HTTPHandler) FetchFiltered(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var f Filter
	if v := query.Get("title"); v != "" {
		f.Title = &v
	}
	if v := query.Get("author"); v != "" {
		f.Author = &v
	}
	if v := query.Get("published"); v != "" {
		f.Published = &v
	}

	rating := defaultFilterRating
	if v := query.Get("rating"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			httpx.JSONError(r, w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input",
				[]httpx.ErrorDetail{{Field: "rating", Message: "rating must be an integer"}})
			return
		}
		rating = parsed
	}
	f.Rating = &rating

	books, err := h.service.FilterBy(r.Context(), f)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, books, map[string]any{"total": len(books)})
}

// Create handles POST /books/create
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}

	book, err := h.service.Create(r.Context(), req.toBook())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, book)
}

// Update handles PUT /books/update/{book_id}. The published field of the body is
// accepted but not applied; an unknown id is a no-op.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := positiveIntParam(w, r, "book_id")
	if !ok {
		return
	}
	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, req.toBook()); err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Delete handles DELETE /books/delete/{book_id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := positiveIntParam(w, r, "book_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("book handler error: method=%s path=%s request_id=%s error=%v",
		r.Method, r.URL.Path, httpx.RequestIDFrom(r), err)
	httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// positiveIntParam reads an integer path value that must be > 0, writing a 422 when it is not.
func positiveIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: name, Message: name + " must be an integer"}})
		return 0, false
	}
	if details := httpx.ValidateVar(name, value, "gt=0"); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return 0, false
	}
	return value, true
}

func decodeBookRequest(w http.ResponseWriter, r *http.Request) (bookRequest, bool) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httpx.JSONError(r, w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return bookRequest{}, false
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			httpx.JSONError(r, w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input",
				[]httpx.ErrorDetail{{Field: typeErr.Field, Message: typeErr.Field + " has the wrong type"}})
			return bookRequest{}, false
		}
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return bookRequest{}, false
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return bookRequest{}, false
	}
	return req, true
}
