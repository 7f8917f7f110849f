package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBook() Book {
	return Book{
		ISBN:      "0691161518",
		AmazonURL: "http://a.co/eobPtX2",
		Author:    "Matthew Lane",
		Language:  "english",
		Pages:     264,
		Publisher: "Princeton University Press",
		Title:     "Power-Up: Unlocking the Hidden Mathematics in Video Games",
		Year:      2017,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestApplyPatch(t *testing.T) {
	t.Run("empty patch keeps the book", func(t *testing.T) {
		book := sampleBook()
		assert.Equal(t, book, ApplyPatch(book, BookPatch{}))
	})

	t.Run("only present fields are overlaid", func(t *testing.T) {
		book := sampleBook()
		merged := ApplyPatch(book, BookPatch{
			Author: strPtr("Robert C. Martin"),
			Year:   intPtr(2018),
		})

		assert.Equal(t, "Robert C. Martin", merged.Author)
		assert.Equal(t, 2018, merged.Year)
		assert.Equal(t, book.Pages, merged.Pages)
		assert.Equal(t, book.Title, merged.Title)
		assert.Equal(t, book.ISBN, merged.ISBN)
	})

	t.Run("original is not modified", func(t *testing.T) {
		book := sampleBook()
		_ = ApplyPatch(book, BookPatch{Pages: intPtr(1)})
		assert.Equal(t, 264, book.Pages)
	})

	t.Run("every field can be patched", func(t *testing.T) {
		merged := ApplyPatch(sampleBook(), BookPatch{
			AmazonURL: strPtr("http://a.co/x"),
			Author:    strPtr("a"),
			Language:  strPtr("l"),
			Pages:     intPtr(7),
			Publisher: strPtr("p"),
			Title:     strPtr("t"),
			Year:      intPtr(1999),
		})
		assert.Equal(t, Book{
			ISBN:      "0691161518",
			AmazonURL: "http://a.co/x",
			Author:    "a",
			Language:  "l",
			Pages:     7,
			Publisher: "p",
			Title:     "t",
			Year:      1999,
		}, merged)
	})
}

func TestBookPatchIsEmpty(t *testing.T) {
	assert.True(t, BookPatch{}.IsEmpty())
	assert.False(t, BookPatch{Title: strPtr("x")}.IsEmpty())
}

func TestBookValidate(t *testing.T) {
	book := sampleBook()
	require.NoError(t, book.Validate())

	noISBN := sampleBook()
	noISBN.ISBN = "  "
	assert.ErrorIs(t, noISBN.Validate(), ErrEmptyISBN)

	partial := sampleBook()
	partial.Author = ""
	partial.Title = ""
	err := partial.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteBook))
	assert.Contains(t, err.Error(), "author, title")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]string{"a", "b"})

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation failed: a; b", err.Error())

	var target *ValidationError
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, []string{"a", "b"}, target.Messages)

	assert.Equal(t, "validation failed", NewValidationError(nil).Error())
}
