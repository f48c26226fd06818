// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/naadamki/quotehub/internal/domain"
	"github.com/naadamki/quotehub/internal/ports"
)

// Limits applied during validation.
const (
	MaxQuoteTextLen    = 5000
	MaxQuoteSourceLen  = 300
	MaxCategoryNameLen = 50
	MinUserNameLen     = 3
)

// Result is the outcome of validating an entity. A result is either
// valid, carrying the sanitized entity ready for persistence, or a
// duplicate signal carrying the already stored entity it collides with.
//
// Duplicate is deliberately not an error: whether a collision is fatal
// is the caller's decision, made at the point of attempted persistence.
type Result[E any] struct {
	entity    E
	existing  E
	duplicate bool
}

// Valid returns a result carrying the sanitized entity.
func Valid[E any](entity E) Result[E] {
	return Result[E]{entity: entity}
}

// DuplicateOf returns a result signalling that entity collides with an
// already stored record.
func DuplicateOf[E any](entity, existing E) Result[E] {
	return Result[E]{entity: entity, existing: existing, duplicate: true}
}

// IsDuplicate reports whether the validated entity collides with an
// existing record.
func (r Result[E]) IsDuplicate() bool {
	return r.duplicate
}

// Entity returns the sanitized entity.
func (r Result[E]) Entity() E {
	return r.entity
}

// Existing returns the stored record the entity collides with.
// Only meaningful when IsDuplicate reports true.
func (r Result[E]) Existing() E {
	return r.existing
}

// Validator applies per-entity sanitization and business rules.
// Each method returns a validation error for malformed input, or a
// Result distinguishing a clean entity from a duplicate of an existing
// record. Methods are typed per entity so adding a new entity kind
// forces call sites to be revisited at compile time.
type Validator struct {
	store ports.RecordStore
}

// NewValidator creates a validator backed by the given store.
func NewValidator(store ports.RecordStore) *Validator {
	return &Validator{store: store}
}

// withStore returns a validator bound to store, so validation inside a
// unit of work reads through the same transaction it commits with.
func (v *Validator) withStore(store ports.RecordStore) *Validator {
	return &Validator{store: store}
}

// Quote validates a quote. The text is trimmed and checked for length,
// the trimmed text must not match another quote exactly, and the author
// must exist. excludeID exempts the record being updated; pass zero
// when creating.
func (v *Validator) Quote(ctx context.Context, quote domain.Quote, excludeID uint) (Result[domain.Quote], error) {
	quote.Text = strings.TrimSpace(quote.Text)

	if quote.Text == "" {
		return Result[domain.Quote]{}, domain.NewValidationError("text", "quote text cannot be empty")
	}

	if len(quote.Text) > MaxQuoteTextLen {
		return Result[domain.Quote]{}, domain.NewValidationError("text",
			fmt.Sprintf("quote text cannot exceed %d characters", MaxQuoteTextLen))
	}

	quote.Source = strings.TrimSpace(quote.Source)
	if len(quote.Source) > MaxQuoteSourceLen {
		return Result[domain.Quote]{}, domain.NewValidationError("source",
			fmt.Sprintf("quote source cannot exceed %d characters", MaxQuoteSourceLen))
	}

	// Duplicate text is detected before the author reference is checked,
	// so a duplicate signals even when the author id is dangling.
	existing, err := v.store.Quotes().FindByText(ctx, quote.Text, excludeID)
	if err == nil {
		return DuplicateOf(quote, *existing), nil
	}
	if !domain.IsNotFound(err) {
		return Result[domain.Quote]{}, err
	}

	if _, err := v.store.Authors().GetByID(ctx, quote.AuthorID); err != nil {
		if domain.IsNotFound(err) {
			return Result[domain.Quote]{}, domain.NewValidationError("author_id", "author does not exist")
		}

		return Result[domain.Quote]{}, err
	}

	return Valid(quote), nil
}

// Author validates an author. The name is sanitized into canonical form
// and must not match another author case-insensitively.
func (v *Validator) Author(ctx context.Context, author domain.Author, excludeID uint) (Result[domain.Author], error) {
	author.Name = domain.SanitizeAuthorName(author.Name)

	if author.Name == "" {
		return Result[domain.Author]{}, domain.NewValidationError("name", "author name cannot be empty")
	}

	existing, err := v.store.Authors().FindByNameFold(ctx, author.Name, excludeID)
	if err != nil {
		if domain.IsNotFound(err) {
			return Valid(author), nil
		}

		return Result[domain.Author]{}, err
	}

	return DuplicateOf(author, *existing), nil
}

// Tag validates a tag. The name is reduced to a lowercase alphanumeric
// token and must not match another tag.
func (v *Validator) Tag(ctx context.Context, tag domain.Tag, excludeID uint) (Result[domain.Tag], error) {
	name, err := domain.SanitizeTagName(tag.Name)
	if err != nil {
		return Result[domain.Tag]{}, err
	}

	tag.Name = name

	existing, err := v.store.Tags().FindByNameFold(ctx, tag.Name, excludeID)
	if err != nil {
		if domain.IsNotFound(err) {
			return Valid(tag), nil
		}

		return Result[domain.Tag]{}, err
	}

	return DuplicateOf(tag, *existing), nil
}

// Category validates a category. The name is trimmed, bounded in
// length, and must not match another category case-insensitively.
func (v *Validator) Category(ctx context.Context, category domain.Category, excludeID uint) (Result[domain.Category], error) {
	category.Name = strings.TrimSpace(category.Name)

	if category.Name == "" {
		return Result[domain.Category]{}, domain.NewValidationError("name", "category name cannot be empty")
	}

	if len(category.Name) > MaxCategoryNameLen {
		return Result[domain.Category]{}, domain.NewValidationError("name",
			fmt.Sprintf("category name cannot exceed %d characters", MaxCategoryNameLen))
	}

	existing, err := v.store.Categories().FindByNameFold(ctx, category.Name, excludeID)
	if err != nil {
		if domain.IsNotFound(err) {
			return Valid(category), nil
		}

		return Result[domain.Category]{}, err
	}

	return DuplicateOf(category, *existing), nil
}

// User validates a user. The name must meet the minimum length, the
// email must look like an address and is folded to lowercase, and
// neither name nor email may match another user.
func (v *Validator) User(ctx context.Context, user domain.User, excludeID uint) (Result[domain.User], error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if len(user.Name) < MinUserNameLen {
		return Result[domain.User]{}, domain.NewValidationError("name",
			fmt.Sprintf("user name must be at least %d characters", MinUserNameLen))
	}

	if !strings.Contains(user.Email, "@") {
		return Result[domain.User]{}, domain.NewValidationError("email", "email address is not valid")
	}

	existing, err := v.store.Users().FindByNameOrEmail(ctx, user.Name, user.Email, excludeID)
	if err != nil {
		if domain.IsNotFound(err) {
			return Valid(user), nil
		}

		return Result[domain.User]{}, err
	}

	return DuplicateOf(user, *existing), nil
}
