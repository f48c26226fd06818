// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/naadamki/quotehub/internal/domain"
)

// QuoteStore persists quotes and their associations.
type QuoteStore interface {
	// GetByID retrieves a quote by its identifier.
	// Returns domain.ErrNotFound if the quote does not exist.
	GetByID(ctx context.Context, id uint) (*domain.Quote, error)

	// FindByText looks up a quote by exact text match, excluding the record
	// with excludeID when excludeID is non-zero. Returns domain.ErrNotFound
	// when no other quote carries the text.
	FindByText(ctx context.Context, text string, excludeID uint) (*domain.Quote, error)

	// SearchText returns all quotes whose text contains the given fragment,
	// matched case-insensitively.
	SearchText(ctx context.Context, fragment string) ([]domain.Quote, error)

	// ListByAuthor returns all quotes attributed to the given author.
	ListByAuthor(ctx context.Context, authorID uint) ([]domain.Quote, error)

	// List returns all quotes ordered by identifier.
	List(ctx context.Context) ([]domain.Quote, error)

	// ListPage returns a page of quotes ordered by identifier, starting
	// after the given cursor.
	ListPage(ctx context.Context, afterID uint, limit int) ([]domain.Quote, error)

	// Count reports the number of stored quotes.
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, quote *domain.Quote) error
	Update(ctx context.Context, quote *domain.Quote) error

	// Delete removes a quote and its tag, category, and favorite
	// associations. Returns domain.ErrNotFound if the quote does not exist.
	Delete(ctx context.Context, id uint) error

	// Tags returns the tags attached to a quote.
	Tags(ctx context.Context, quoteID uint) ([]domain.Tag, error)

	// Categories returns the categories attached to a quote.
	Categories(ctx context.Context, quoteID uint) ([]domain.Category, error)

	// AddTag attaches a tag to a quote. Attaching an already attached tag
	// is a no-op.
	AddTag(ctx context.Context, quoteID, tagID uint) error

	// RemoveTag detaches a tag from a quote.
	RemoveTag(ctx context.Context, quoteID, tagID uint) error

	// AddCategory attaches a category to a quote. Attaching an already
	// attached category is a no-op.
	AddCategory(ctx context.Context, quoteID, categoryID uint) error

	// RemoveCategory detaches a category from a quote.
	RemoveCategory(ctx context.Context, quoteID, categoryID uint) error
}

// AuthorStore persists authors.
type AuthorStore interface {
	// GetByID retrieves an author by its identifier.
	// Returns domain.ErrNotFound if the author does not exist.
	GetByID(ctx context.Context, id uint) (*domain.Author, error)

	// FindByName looks up an author by exact name.
	// Returns domain.ErrNotFound when no author matches.
	FindByName(ctx context.Context, name string) (*domain.Author, error)

	// FindByNameFold looks up an author by case-insensitive name, excluding
	// the record with excludeID when excludeID is non-zero.
	// Returns domain.ErrNotFound when no other author matches.
	FindByNameFold(ctx context.Context, name string, excludeID uint) (*domain.Author, error)

	// List returns all authors ordered by identifier.
	List(ctx context.Context) ([]domain.Author, error)

	Create(ctx context.Context, author *domain.Author) error
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes an author. Returns domain.ErrNotFound if the author
	// does not exist, and domain.ErrConflict while quotes still reference it.
	Delete(ctx context.Context, id uint) error
}

// TagStore persists tags.
type TagStore interface {
	// GetByID retrieves a tag by its identifier.
	// Returns domain.ErrNotFound if the tag does not exist.
	GetByID(ctx context.Context, id uint) (*domain.Tag, error)

	// FindByName looks up a tag by exact name.
	// Returns domain.ErrNotFound when no tag matches.
	FindByName(ctx context.Context, name string) (*domain.Tag, error)

	// FindByNameFold looks up a tag by case-insensitive name, excluding the
	// record with excludeID when excludeID is non-zero.
	// Returns domain.ErrNotFound when no other tag matches.
	FindByNameFold(ctx context.Context, name string, excludeID uint) (*domain.Tag, error)

	// List returns all tags ordered by identifier.
	List(ctx context.Context) ([]domain.Tag, error)

	// ListQuotes returns all quotes carrying the tag.
	ListQuotes(ctx context.Context, tagID uint) ([]domain.Quote, error)

	Create(ctx context.Context, tag *domain.Tag) error
	Update(ctx context.Context, tag *domain.Tag) error

	// Delete removes a tag and its quote associations.
	// Returns domain.ErrNotFound if the tag does not exist.
	Delete(ctx context.Context, id uint) error
}

// CategoryStore persists categories.
type CategoryStore interface {
	// GetByID retrieves a category by its identifier.
	// Returns domain.ErrNotFound if the category does not exist.
	GetByID(ctx context.Context, id uint) (*domain.Category, error)

	// FindByName looks up a category by exact name.
	// Returns domain.ErrNotFound when no category matches.
	FindByName(ctx context.Context, name string) (*domain.Category, error)

	// FindByNameFold looks up a category by case-insensitive name, excluding
	// the record with excludeID when excludeID is non-zero.
	// Returns domain.ErrNotFound when no other category matches.
	FindByNameFold(ctx context.Context, name string, excludeID uint) (*domain.Category, error)

	// List returns all categories ordered by identifier.
	List(ctx context.Context) ([]domain.Category, error)

	// ListQuotes returns all quotes filed under the category.
	ListQuotes(ctx context.Context, categoryID uint) ([]domain.Quote, error)

	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category and its quote associations.
	// Returns domain.ErrNotFound if the category does not exist.
	Delete(ctx context.Context, id uint) error
}

// UserStore persists users and their favorite quotes.
type UserStore interface {
	// GetByID retrieves a user by its identifier.
	// Returns domain.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByNameOrEmail looks up a user whose name or email matches
	// exactly, excluding the record with excludeID when excludeID is
	// non-zero. Emails are stored lowercased, so callers fold the email
	// before the lookup. Returns domain.ErrNotFound when no other user
	// matches.
	FindByNameOrEmail(ctx context.Context, name, email string, excludeID uint) (*domain.User, error)

	// List returns all users ordered by identifier.
	List(ctx context.Context) ([]domain.User, error)

	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and its favorite associations.
	// Returns domain.ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id uint) error

	// AddFavorite marks a quote as a favorite of the user. Marking an
	// already favorited quote is a no-op.
	AddFavorite(ctx context.Context, userID, quoteID uint) error

	// RemoveFavorite removes a quote from the user's favorites.
	RemoveFavorite(ctx context.Context, userID, quoteID uint) error

	// ListFavorites returns the user's favorite quotes ordered by identifier.
	ListFavorites(ctx context.Context, userID uint) ([]domain.Quote, error)
}

// RecordStore aggregates the per-entity stores behind a single
// persistence boundary.
type RecordStore interface {
	Quotes() QuoteStore
	Authors() AuthorStore
	Tags() TagStore
	Categories() CategoryStore
	Users() UserStore

	// Atomic runs fn against a store view whose writes commit together.
	// When fn returns an error every write made through the view is rolled
	// back and the error is returned unchanged.
	Atomic(ctx context.Context, fn func(RecordStore) error) error
}
