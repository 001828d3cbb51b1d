package book

import (
	"context"
	"errors"
)

// Service provides the inventory business logic on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book in the store's natural order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.FindAll(ctx)
}

// Get returns the book with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a validated book. A book whose normalized title is
// already taken is rejected with ErrDuplicateTitle. The title check and
// the insert are two store round trips, so a concurrent create of the
// same title can slip between them.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	_, err := s.repo.FindByTitle(ctx, b.Title)
	if err == nil {
		return Book{}, ErrDuplicateTitle
	}
	if !errors.Is(err, ErrNotFound) {
		return Book{}, err
	}
	return s.repo.Insert(ctx, b)
}

// Update replaces every field of the book with the given id. If another
// book (different id) already holds the new title, the update is
// rejected with ErrDuplicateTitle and nothing is written.
func (s *Service) Update(ctx context.Context, id string, b Book) (Book, error) {
	existing, err := s.repo.FindByTitle(ctx, b.Title)
	if err == nil && existing.ID.Hex() != id {
		return Book{}, ErrDuplicateTitle
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Book{}, err
	}
	return s.repo.ReplaceByID(ctx, id, b)
}

// Delete removes the book with the given id and returns its last value.
func (s *Service) Delete(ctx context.Context, id string) (Book, error) {
	return s.repo.DeleteByID(ctx, id)
}

// Search returns books matching the title and author substrings
// (case-insensitive) whose price falls within the inclusive range.
// Bounds below zero or an inverted range yield ErrInvalidPriceRange.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Book, error) {
	if q.MinPrice < 0 || q.MaxPrice < 0 || q.MinPrice > q.MaxPrice {
		return nil, ErrInvalidPriceRange
	}
	return s.repo.Search(ctx, q)
}

// TotalStock sums the stock field across all records. An empty store
// yields 0.
func (s *Service) TotalStock(ctx context.Context) (int64, error) {
	return s.repo.TotalStock(ctx)
}

// TopBestsellers returns up to five titles with the highest summed
// sales, descending. Ties fall in the store's internal order.
func (s *Service) TopBestsellers(ctx context.Context) ([]TitleSales, error) {
	return s.repo.TopBestsellers(ctx)
}

// TopStockedAuthors returns up to five authors with the highest summed
// stock, descending. Ties fall in the store's internal order.
func (s *Service) TopStockedAuthors(ctx context.Context) ([]AuthorStock, error) {
	return s.repo.TopStockedAuthors(ctx)
}
