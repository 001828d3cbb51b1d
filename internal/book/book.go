package book

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no book matches the given id.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateTitle is returned when another book already carries the
// same normalized title.
var ErrDuplicateTitle = errors.New("duplicate book title")

// ErrInvalidPriceRange is returned when search price bounds are malformed.
var ErrInvalidPriceRange = errors.New("invalid price range")

// Book represents one inventory record in the store.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Sales       int                `bson:"sales" json:"sales"`
}

// SearchQuery defines the filters for the search endpoint. Title and
// Author are case-insensitive substring matches; the price bounds are
// inclusive.
type SearchQuery struct {
	Title    string
	Author   string
	MinPrice float64
	MaxPrice float64
}

// TitleSales is one bestseller aggregation row: a title and the sales
// summed across all records sharing it.
type TitleSales struct {
	Title string `bson:"_id" json:"title"`
	Sales int64  `bson:"sales" json:"sales"`
}

// AuthorStock is one stocked-authors aggregation row: an author and the
// stock summed across all of their records.
type AuthorStock struct {
	Author string `bson:"_id" json:"author"`
	Stock  int64  `bson:"stock" json:"stock"`
}
