package domain

import (
	"fmt"
	"strings"
)

// Book is the sole entity of the API. The isbn is its identity and never
// changes once the book exists.
type Book struct {
	ISBN      string `json:"isbn"`
	AmazonURL string `json:"amazon_url"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}

// BookPatch describes a partial update. A nil field leaves the stored value
// untouched. There is deliberately no ISBN field.
type BookPatch struct {
	AmazonURL *string
	Author    *string
	Language  *string
	Pages     *int
	Publisher *string
	Title     *string
	Year      *int
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.AmazonURL == nil && p.Author == nil && p.Language == nil &&
		p.Pages == nil && p.Publisher == nil && p.Title == nil && p.Year == nil
}

// ApplyPatch returns a copy of b with every non-nil field of p overlaid.
// The isbn of b is always preserved.
func ApplyPatch(b Book, p BookPatch) Book {
	merged := b
	if p.AmazonURL != nil {
		merged.AmazonURL = *p.AmazonURL
	}
	if p.Author != nil {
		merged.Author = *p.Author
	}
	if p.Language != nil {
		merged.Language = *p.Language
	}
	if p.Pages != nil {
		merged.Pages = *p.Pages
	}
	if p.Publisher != nil {
		merged.Publisher = *p.Publisher
	}
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Year != nil {
		merged.Year = *p.Year
	}
	return merged
}

// Validate checks that the book is complete enough to be stored as a row.
// Range and format rules belong to the schema package; this only guards the
// "no partial rows" invariant.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.ISBN) == "" {
		return ErrEmptyISBN
	}

	var missing []string
	if b.AmazonURL == "" {
		missing = append(missing, "amazon_url")
	}
	if b.Author == "" {
		missing = append(missing, "author")
	}
	if b.Language == "" {
		missing = append(missing, "language")
	}
	if b.Publisher == "" {
		missing = append(missing, "publisher")
	}
	if b.Title == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteBook, strings.Join(missing, ", "))
	}

	return nil
}
