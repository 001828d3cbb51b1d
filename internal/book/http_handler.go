package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookstore/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONData(w, http.StatusOK, books)
}

// GetByID handles GET /books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, fmt.Sprintf("Book with id '%s' does not exist", id), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	httpx.JSONData(w, http.StatusOK, b)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	b, details := ValidateInput(input)
	if details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Validation failed", details)
		return
	}

	created, err := h.service.Create(r.Context(), b)
	if err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			httpx.JSONError(w, http.StatusConflict, fmt.Sprintf("Book with title '%s' already exists", b.Title), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to insert new book", nil)
		return
	}
	httpx.JSONMessageData(w, http.StatusOK, "Successfully inserted new book", created)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	b, details := ValidateInput(input)
	if details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Validation failed", details)
		return
	}

	updated, err := h.service.Update(r.Context(), id, b)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateTitle):
			httpx.JSONError(w, http.StatusConflict, fmt.Sprintf("Book with title '%s' already exists", b.Title), nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, fmt.Sprintf("Book with id '%s' does not exist", id), nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}
	httpx.JSONMessageData(w, http.StatusOK, "Successfully updated book", updated)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, fmt.Sprintf("Book with id '%s' does not exist", id), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, "Successfully deleted book")
}

// Search handles GET /search?title=&author=&min_price=&max_price=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := SearchQuery{
		Title:    query.Get("title"),
		Author:   query.Get("author"),
		MinPrice: 0,
		MaxPrice: 999,
	}

	if s := query.Get("min_price"); s != "" {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid price ranges", nil)
			return
		}
		q.MinPrice = val
	}
	if s := query.Get("max_price"); s != "" {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid price ranges", nil)
			return
		}
		q.MaxPrice = val
	}

	books, err := h.service.Search(r.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidPriceRange) {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid price ranges", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if len(books) == 0 {
		httpx.JSONMessage(w, http.StatusOK, "No books match search parameters")
		return
	}
	httpx.JSONData(w, http.StatusOK, books)
}

// TotalStock handles GET /stats/inventory
func (h *HTTPHandler) TotalStock(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalStock(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	httpx.JSONData(w, http.StatusOK, map[string]int64{"total_stock": total})
}

// TopBestsellers handles GET /stats/bestsellers
func (h *HTTPHandler) TopBestsellers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopBestsellers(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if rows == nil {
		rows = []TitleSales{}
	}
	httpx.JSONData(w, http.StatusOK, rows)
}

// TopStockedAuthors handles GET /stats/authors
func (h *HTTPHandler) TopStockedAuthors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopStockedAuthors(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if rows == nil {
		rows = []AuthorStock{}
	}
	httpx.JSONData(w, http.StatusOK, rows)
}
