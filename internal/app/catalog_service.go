package app

import (
	"context"
	"log/slog"

	"github.com/naadamki/quotehub/internal/domain"
	"github.com/naadamki/quotehub/internal/ports"
)

// CatalogService orchestrates create, update, and delete use cases for
// the quote catalog. It depends on port interfaces, not concrete
// implementations, following the Dependency Inversion Principle.
//
// Writes follow a two-step protocol: the validator reports duplicates
// as data, and the service decides at the point of persistence whether
// a duplicate is a conflict. All service methods treat it as one and
// raise domain.DuplicateError. Each validate-and-persist pair runs
// inside store.Atomic so the duplicate check and the write commit as
// one unit.
type CatalogService struct {
	store     ports.RecordStore
	validator *Validator
	logger    *slog.Logger
}

// CatalogServiceConfig contains configuration for the catalog service.
type CatalogServiceConfig struct {
	Store     ports.RecordStore
	Validator *Validator
	Logger    *slog.Logger
}

// NewCatalogService creates a new catalog service with the provided dependencies.
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	return &CatalogService{
		store:     cfg.Store,
		validator: cfg.Validator,
		logger:    cfg.Logger,
	}
}

// CreateQuote validates and persists a new quote.
func (s *CatalogService) CreateQuote(ctx context.Context, quote domain.Quote) (*domain.Quote, error) {
	var created domain.Quote

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		res, err := s.validator.withStore(tx).Quote(ctx, quote, 0)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("quote", res.Entity().Text)
		}

		created = res.Entity()

		return tx.Quotes().Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "created quote",
		slog.Uint64("quote_id", uint64(created.ID)),
		slog.Uint64("author_id", uint64(created.AuthorID)),
	)

	return &created, nil
}

// UpdateQuote validates and persists changes to an existing quote.
func (s *CatalogService) UpdateQuote(ctx context.Context, quote domain.Quote) (*domain.Quote, error) {
	var updated domain.Quote

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		if _, err := tx.Quotes().GetByID(ctx, quote.ID); err != nil {
			return err
		}

		res, err := s.validator.withStore(tx).Quote(ctx, quote, quote.ID)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("quote", res.Entity().Text)
		}

		updated = res.Entity()

		return tx.Quotes().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "updated quote",
		slog.Uint64("quote_id", uint64(updated.ID)),
	)

	return &updated, nil
}

// GetQuote retrieves a quote by its identifier.
func (s *CatalogService) GetQuote(ctx context.Context, id uint) (*domain.Quote, error) {
	return s.store.Quotes().GetByID(ctx, id)
}

// ListQuotes returns a page of quotes ordered by identifier.
func (s *CatalogService) ListQuotes(ctx context.Context, afterID uint, limit int) ([]domain.Quote, error) {
	return s.store.Quotes().ListPage(ctx, afterID, limit)
}

// DeleteQuote removes a quote along with its associations.
func (s *CatalogService) DeleteQuote(ctx context.Context, id uint) error {
	if err := s.store.Quotes().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "deleted quote",
		slog.Uint64("quote_id", uint64(id)),
	)

	return nil
}

// TagQuote attaches a tag to a quote.
func (s *CatalogService) TagQuote(ctx context.Context, quoteID, tagID uint) error {
	if _, err := s.store.Quotes().GetByID(ctx, quoteID); err != nil {
		return err
	}

	if _, err := s.store.Tags().GetByID(ctx, tagID); err != nil {
		return err
	}

	return s.store.Quotes().AddTag(ctx, quoteID, tagID)
}

// UntagQuote detaches a tag from a quote.
func (s *CatalogService) UntagQuote(ctx context.Context, quoteID, tagID uint) error {
	return s.store.Quotes().RemoveTag(ctx, quoteID, tagID)
}

// CategorizeQuote files a quote under a category.
func (s *CatalogService) CategorizeQuote(ctx context.Context, quoteID, categoryID uint) error {
	if _, err := s.store.Quotes().GetByID(ctx, quoteID); err != nil {
		return err
	}

	if _, err := s.store.Categories().GetByID(ctx, categoryID); err != nil {
		return err
	}

	return s.store.Quotes().AddCategory(ctx, quoteID, categoryID)
}

// UncategorizeQuote removes a quote from a category.
func (s *CatalogService) UncategorizeQuote(ctx context.Context, quoteID, categoryID uint) error {
	return s.store.Quotes().RemoveCategory(ctx, quoteID, categoryID)
}

// QuoteTags returns the tags attached to a quote.
func (s *CatalogService) QuoteTags(ctx context.Context, quoteID uint) ([]domain.Tag, error) {
	if _, err := s.store.Quotes().GetByID(ctx, quoteID); err != nil {
		return nil, err
	}

	return s.store.Quotes().Tags(ctx, quoteID)
}

// QuoteCategories returns the categories a quote is filed under.
func (s *CatalogService) QuoteCategories(ctx context.Context, quoteID uint) ([]domain.Category, error) {
	if _, err := s.store.Quotes().GetByID(ctx, quoteID); err != nil {
		return nil, err
	}

	return s.store.Quotes().Categories(ctx, quoteID)
}

// CreateAuthor validates and persists a new author.
func (s *CatalogService) CreateAuthor(ctx context.Context, author domain.Author) (*domain.Author, error) {
	var created domain.Author

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		res, err := s.validator.withStore(tx).Author(ctx, author, 0)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("author", res.Entity().Name)
		}

		created = res.Entity()

		return tx.Authors().Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "created author",
		slog.Uint64("author_id", uint64(created.ID)),
		slog.String("name", created.Name),
	)

	return &created, nil
}

// UpdateAuthor validates and persists changes to an existing author.
func (s *CatalogService) UpdateAuthor(ctx context.Context, author domain.Author) (*domain.Author, error) {
	var updated domain.Author

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		if _, err := tx.Authors().GetByID(ctx, author.ID); err != nil {
			return err
		}

		res, err := s.validator.withStore(tx).Author(ctx, author, author.ID)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("author", res.Entity().Name)
		}

		updated = res.Entity()

		return tx.Authors().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetAuthor retrieves an author by its identifier.
func (s *CatalogService) GetAuthor(ctx context.Context, id uint) (*domain.Author, error) {
	return s.store.Authors().GetByID(ctx, id)
}

// ListAuthors returns all authors.
func (s *CatalogService) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	return s.store.Authors().List(ctx)
}

// DeleteAuthor removes an author. Authors still referenced by quotes
// cannot be removed.
func (s *CatalogService) DeleteAuthor(ctx context.Context, id uint) error {
	return s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		quotes, err := tx.Quotes().ListByAuthor(ctx, id)
		if err != nil {
			return err
		}

		if len(quotes) > 0 {
			return domain.NewConflictError("author", "author is still referenced by quotes")
		}

		return tx.Authors().Delete(ctx, id)
	})
}

// CreateTag validates and persists a new tag.
func (s *CatalogService) CreateTag(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	var created domain.Tag

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		res, err := s.validator.withStore(tx).Tag(ctx, tag, 0)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("tag", res.Entity().Name)
		}

		created = res.Entity()

		return tx.Tags().Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateTag validates and persists changes to an existing tag.
func (s *CatalogService) UpdateTag(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	var updated domain.Tag

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		if _, err := tx.Tags().GetByID(ctx, tag.ID); err != nil {
			return err
		}

		res, err := s.validator.withStore(tx).Tag(ctx, tag, tag.ID)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("tag", res.Entity().Name)
		}

		updated = res.Entity()

		return tx.Tags().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetTag retrieves a tag by its identifier.
func (s *CatalogService) GetTag(ctx context.Context, id uint) (*domain.Tag, error) {
	return s.store.Tags().GetByID(ctx, id)
}

// ListTags returns all tags.
func (s *CatalogService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.store.Tags().List(ctx)
}

// DeleteTag removes a tag along with its quote associations.
func (s *CatalogService) DeleteTag(ctx context.Context, id uint) error {
	return s.store.Tags().Delete(ctx, id)
}

// CreateCategory validates and persists a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	var created domain.Category

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		res, err := s.validator.withStore(tx).Category(ctx, category, 0)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("category", res.Entity().Name)
		}

		created = res.Entity()

		return tx.Categories().Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateCategory validates and persists changes to an existing category.
func (s *CatalogService) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	var updated domain.Category

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		if _, err := tx.Categories().GetByID(ctx, category.ID); err != nil {
			return err
		}

		res, err := s.validator.withStore(tx).Category(ctx, category, category.ID)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("category", res.Entity().Name)
		}

		updated = res.Entity()

		return tx.Categories().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetCategory retrieves a category by its identifier.
func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	return s.store.Categories().GetByID(ctx, id)
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.Categories().List(ctx)
}

// DeleteCategory removes a category along with its quote associations.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.store.Categories().Delete(ctx, id)
}

// CreateUser validates and persists a new user.
func (s *CatalogService) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var created domain.User

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		res, err := s.validator.withStore(tx).User(ctx, user, 0)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("user", res.Entity().Name)
		}

		created = res.Entity()

		return tx.Users().Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "created user",
		slog.Uint64("user_id", uint64(created.ID)),
	)

	return &created, nil
}

// UpdateUser validates and persists changes to an existing user.
func (s *CatalogService) UpdateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var updated domain.User

	err := s.store.Atomic(ctx, func(tx ports.RecordStore) error {
		if _, err := tx.Users().GetByID(ctx, user.ID); err != nil {
			return err
		}

		res, err := s.validator.withStore(tx).User(ctx, user, user.ID)
		if err != nil {
			return err
		}

		if res.IsDuplicate() {
			return domain.NewDuplicateError("user", res.Entity().Name)
		}

		updated = res.Entity()

		return tx.Users().Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetUser retrieves a user by its identifier.
func (s *CatalogService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

// DeleteUser removes a user along with its favorite associations.
func (s *CatalogService) DeleteUser(ctx context.Context, id uint) error {
	return s.store.Users().Delete(ctx, id)
}

// AddFavorite marks a quote as a favorite of the user.
func (s *CatalogService) AddFavorite(ctx context.Context, userID, quoteID uint) error {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return err
	}

	if _, err := s.store.Quotes().GetByID(ctx, quoteID); err != nil {
		return err
	}

	return s.store.Users().AddFavorite(ctx, userID, quoteID)
}

// RemoveFavorite removes a quote from the user's favorites.
func (s *CatalogService) RemoveFavorite(ctx context.Context, userID, quoteID uint) error {
	return s.store.Users().RemoveFavorite(ctx, userID, quoteID)
}

// ListFavorites returns the user's favorite quotes.
func (s *CatalogService) ListFavorites(ctx context.Context, userID uint) ([]domain.Quote, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.store.Users().ListFavorites(ctx, userID)
}

// Profile assembles a user's profile from their favorite quotes and the
// authors and tags those quotes carry.
func (s *CatalogService) Profile(ctx context.Context, userID uint) (*domain.Profile, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quotes, err := s.store.Users().ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	authorSeen := make(map[uint]bool)
	tagSeen := make(map[uint]bool)

	var (
		authors []domain.Author
		tags    []domain.Tag
	)

	for _, q := range quotes {
		if !authorSeen[q.AuthorID] {
			authorSeen[q.AuthorID] = true

			author, err := s.store.Authors().GetByID(ctx, q.AuthorID)
			if err != nil {
				return nil, err
			}

			authors = append(authors, *author)
		}

		quoteTags, err := s.store.Quotes().Tags(ctx, q.ID)
		if err != nil {
			return nil, err
		}

		for _, t := range quoteTags {
			if !tagSeen[t.ID] {
				tagSeen[t.ID] = true
				tags = append(tags, t)
			}
		}
	}

	return &domain.Profile{
		User:    *user,
		Quotes:  quotes,
		Authors: authors,
		Tags:    tags,
	}, nil
}
