package book

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Input is the client-supplied book shape, before sanitization.
type Input struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Sales       int     `json:"sales" validate:"gte=0"`
}

// ValidationError describes a single offending field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateInput runs the field pipeline in order: trim the string
// fields, check emptiness and negativity, then title-case title and
// author. It returns the normalized Book or the offending fields.
func ValidateInput(in Input) (Book, []ValidationError) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Description = strings.TrimSpace(in.Description)

	if err := validate.Struct(in); err != nil {
		var details []ValidationError
		for _, fe := range err.(validator.ValidationErrors) {
			details = append(details, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageFor(fe),
			})
		}
		return Book{}, details
	}

	return Book{
		Title:       TitleCase(in.Title),
		Author:      TitleCase(in.Author),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Sales:       in.Sales,
	}, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return "must not be negative"
	}
	return "is invalid"
}

// TitleCase capitalizes the first letter of each space-separated word
// and lowercases the remainder. Tokenization splits on single spaces,
// so runs of interior spaces survive unchanged.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	r := []rune(word)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
