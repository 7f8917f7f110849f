package schema

import (
	"fmt"

	"github.com/phrazzld/books-api/internal/domain"
)

// Book field names as they appear in payloads.
const (
	FieldISBN      = "isbn"
	FieldAmazonURL = "amazon_url"
	FieldAuthor    = "author"
	FieldLanguage  = "language"
	FieldPages     = "pages"
	FieldPublisher = "publisher"
	FieldTitle     = "title"
	FieldYear      = "year"
)

// DefaultMaxYear is the publication year cutoff of the reference data set.
const DefaultMaxYear = 2021

// NewBookSchema returns the book schema with the given publication year cutoff.
func NewBookSchema(maxYear int) *Schema {
	minPages := 1
	return New(
		Field{Name: FieldISBN, Type: TypeString, Required: true, ReadOnly: true, MinLength: 1},
		Field{Name: FieldAmazonURL, Type: TypeString, Required: true, Format: FormatURI},
		Field{Name: FieldAuthor, Type: TypeString, Required: true, MinLength: 1},
		Field{Name: FieldLanguage, Type: TypeString, Required: true, MinLength: 1},
		Field{Name: FieldPages, Type: TypeInteger, Required: true, Minimum: &minPages},
		Field{Name: FieldPublisher, Type: TypeString, Required: true, MinLength: 1},
		Field{Name: FieldTitle, Type: TypeString, Required: true, MinLength: 1},
		Field{Name: FieldYear, Type: TypeInteger, Required: true, Maximum: &maxYear},
	)
}

// WithoutReadOnly returns a copy of payload with the schema's read-only
// fields removed.
func (s *Schema) WithoutReadOnly(payload Payload) Payload {
	out := make(Payload, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	for _, f := range s.fields {
		if f.ReadOnly {
			delete(out, f.Name)
		}
	}
	return out
}

// BookFromPayload converts a payload that passed create-mode validation.
func BookFromPayload(payload Payload) (domain.Book, error) {
	var (
		book domain.Book
		err  error
	)
	if book.ISBN, err = requireString(payload, FieldISBN); err != nil {
		return domain.Book{}, err
	}
	if book.AmazonURL, err = requireString(payload, FieldAmazonURL); err != nil {
		return domain.Book{}, err
	}
	if book.Author, err = requireString(payload, FieldAuthor); err != nil {
		return domain.Book{}, err
	}
	if book.Language, err = requireString(payload, FieldLanguage); err != nil {
		return domain.Book{}, err
	}
	if book.Pages, err = requireInt(payload, FieldPages); err != nil {
		return domain.Book{}, err
	}
	if book.Publisher, err = requireString(payload, FieldPublisher); err != nil {
		return domain.Book{}, err
	}
	if book.Title, err = requireString(payload, FieldTitle); err != nil {
		return domain.Book{}, err
	}
	if book.Year, err = requireInt(payload, FieldYear); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// PatchFromPayload converts a payload that passed update-mode validation.
// The isbn is never part of the patch.
func PatchFromPayload(payload Payload) (domain.BookPatch, error) {
	var (
		patch domain.BookPatch
		err   error
	)
	if patch.AmazonURL, err = optionalString(payload, FieldAmazonURL); err != nil {
		return domain.BookPatch{}, err
	}
	if patch.Author, err = optionalString(payload, FieldAuthor); err != nil {
		return domain.BookPatch{}, err
	}
	if patch.Language, err = optionalString(payload, FieldLanguage); err != nil {
		return domain.BookPatch{}, err
	}
	if patch.Pages, err = optionalInt(payload, FieldPages); err != nil {
		return domain.BookPatch{}, err
	}
	if patch.Publisher, err = optionalString(payload, FieldPublisher); err != nil {
		return domain.BookPatch{}, err
	}
	if patch.Title, err = optionalString(payload, FieldTitle); err != nil {
		return domain.BookPatch{}, err
	}
	if patch.Year, err = optionalInt(payload, FieldYear); err != nil {
		return domain.BookPatch{}, err
	}
	return patch, nil
}

func requireString(payload Payload, name string) (string, error) {
	s, err := optionalString(payload, name)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("%w: missing %s", domain.ErrValidation, name)
	}
	return *s, nil
}

func requireInt(payload Payload, name string) (int, error) {
	n, err := optionalInt(payload, name)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrValidation, name)
	}
	return *n, nil
}

func optionalString(payload Payload, name string) (*string, error) {
	v, ok := payload[name]
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a string", domain.ErrValidation, name)
	}
	return &s, nil
}

func optionalInt(payload Payload, name string) (*int, error) {
	v, ok := payload[name]
	if !ok {
		return nil, nil
	}
	n, ok := asInteger(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an integer", domain.ErrValidation, name)
	}
	return &n, nil
}
