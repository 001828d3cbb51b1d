package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"o'brien tale", "O'brien Tale"},
		{"LORD OF THE RINGS", "Lord Of The Rings"},
		{"the hobbit", "The Hobbit"},
		{"a  b", "A  B"}, // interior spacing survives
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TitleCase(tc.in))
	}
}

func TestValidateInput(t *testing.T) {
	valid := Input{
		Title:       " the hobbit ",
		Author:      "j.r.r. tolkien",
		Description: "  A hole in the ground.  ",
		Price:       12.5,
		Stock:       3,
		Sales:       7,
	}

	t.Run("trims and normalizes", func(t *testing.T) {
		b, details := ValidateInput(valid)
		assert.Nil(t, details)
		assert.Equal(t, "The Hobbit", b.Title)
		assert.Equal(t, "J.r.r. Tolkien", b.Author)
		assert.Equal(t, "A hole in the ground.", b.Description)
		assert.Equal(t, 12.5, b.Price)
		assert.Equal(t, 3, b.Stock)
		assert.Equal(t, 7, b.Sales)
	})

	t.Run("rejects whitespace-only strings", func(t *testing.T) {
		in := valid
		in.Title = "   "
		_, details := ValidateInput(in)
		if assert.Len(t, details, 1) {
			assert.Equal(t, "title", details[0].Field)
			assert.Equal(t, "must not be empty", details[0].Message)
		}
	})

	t.Run("rejects negative numbers", func(t *testing.T) {
		in := valid
		in.Price = -1
		in.Sales = -2
		_, details := ValidateInput(in)
		assert.Len(t, details, 2)
		fields := []string{details[0].Field, details[1].Field}
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "sales")
		assert.Equal(t, "must not be negative", details[0].Message)
	})

	t.Run("zero values pass the negative check", func(t *testing.T) {
		in := valid
		in.Price = 0
		in.Stock = 0
		in.Sales = 0
		_, details := ValidateInput(in)
		assert.Nil(t, details)
	})

	t.Run("description is trimmed but not title-cased", func(t *testing.T) {
		in := valid
		in.Description = " SHOUTED description "
		b, details := ValidateInput(in)
		assert.Nil(t, details)
		assert.Equal(t, "SHOUTED description", b.Description)
	})
}
