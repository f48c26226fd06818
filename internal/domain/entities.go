// Package domain contains core business entities and rules.
package domain

// Quote is a quotation in the catalog.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID uint

	// Text is the body of the quote. Stored trimmed, at most 5000 characters.
	Text string

	// Source is an optional attribution (book, speech, interview).
	Source string

	// AuthorID references the Author who said or wrote the quote.
	AuthorID uint
}

// Author is the originator of one or more quotes.
// Names are stored in canonical form (see SanitizeAuthorName) and are
// unique case-insensitively.
type Author struct {
	ID   uint
	Name string
}

// Tag is a free-form label attached to quotes. Tag names are single
// lowercase alphanumeric tokens (see SanitizeTagName) and are unique
// case-insensitively.
type Tag struct {
	ID   uint
	Name string
}

// Category groups quotes by theme. Keywords is an ordered list used by
// import tooling to auto-assign quotes to the category.
type Category struct {
	ID       uint
	Name     string
	Keywords []string
}

// User is a reader with favorite quotes, authors, and tags.
// Name and email are each unique exactly (not case-folded); email is
// stored lowercased.
type User struct {
	ID    uint
	Name  string
	Email string
}

// Profile aggregates a user together with their favorites.
type Profile struct {
	User    User
	Quotes  []Quote
	Authors []Author
	Tags    []Tag
}
