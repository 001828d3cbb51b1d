package book

import (
	"context"
)

// Repository defines the contract for book record storage.
type Repository interface {
	FindAll(ctx context.Context) ([]Book, error)
	FindByID(ctx context.Context, id string) (Book, error)
	FindByTitle(ctx context.Context, title string) (Book, error)
	Insert(ctx context.Context, b Book) (Book, error)
	ReplaceByID(ctx context.Context, id string, b Book) (Book, error)
	DeleteByID(ctx context.Context, id string) (Book, error)
	Search(ctx context.Context, q SearchQuery) ([]Book, error)
	TotalStock(ctx context.Context) (int64, error)
	TopBestsellers(ctx context.Context) ([]TitleSales, error)
	TopStockedAuthors(ctx context.Context) ([]AuthorStock, error)
}
