package testutils

import "github.com/phrazzld/books-api/internal/domain"

// CleanCodeISBN is the isbn of CleanCodeBook.
const CleanCodeISBN = "0132350884"

// PowerUpISBN is the isbn of PowerUpBook.
const PowerUpISBN = "0691161518"

// CleanCodeBook returns a complete, valid book.
func CleanCodeBook() domain.Book {
	return domain.Book{
		ISBN:      CleanCodeISBN,
		AmazonURL: "http://a.co/eobPtX2",
		Author:    "Robert C. Martin",
		Language:  "english",
		Pages:     400,
		Publisher: "University Press",
		Title:     "Clean Code: A Handbook of Agile Software Craftsmanship",
		Year:      2018,
	}
}

// PowerUpBook returns a second complete, valid book.
func PowerUpBook() domain.Book {
	return domain.Book{
		ISBN:      PowerUpISBN,
		AmazonURL: "http://a.co/eobPtX2",
		Author:    "Matthew Lane",
		Language:  "english",
		Pages:     264,
		Publisher: "Princeton University Press",
		Title:     "Power-Up: Unlocking the Hidden Mathematics in Video Games",
		Year:      2017,
	}
}

// BookBody returns b as a JSON-ready map, suitable for mutating in tests
// before sending.
func BookBody(b domain.Book) map[string]any {
	return map[string]any{
		"isbn":       b.ISBN,
		"amazon_url": b.AmazonURL,
		"author":     b.Author,
		"language":   b.Language,
		"pages":      b.Pages,
		"publisher":  b.Publisher,
		"title":      b.Title,
		"year":       b.Year,
	}
}
