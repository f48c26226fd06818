package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naadamki/quotehub/internal/adapters/storage/memstore"
	"github.com/naadamki/quotehub/internal/domain"
)

func newCatalogService(store *memstore.Store) *CatalogService {
	return NewCatalogService(CatalogServiceConfig{
		Store:     store,
		Validator: NewValidator(store),
		Logger:    discardLogger(),
	})
}

func TestCatalogService_CreateQuote(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	author := seedAuthor(t, store, "Mark Twain")

	created, err := svc.CreateQuote(ctx, domain.Quote{Text: "Ideas are easy.", AuthorID: author.ID})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	t.Run("duplicate text surfaces as conflict", func(t *testing.T) {
		_, err := svc.CreateQuote(ctx, domain.Quote{Text: "Ideas are easy.", AuthorID: author.ID})
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))

		var dup *domain.DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "quote", dup.Entity)
	})

	t.Run("validation error passes through", func(t *testing.T) {
		_, err := svc.CreateQuote(ctx, domain.Quote{Text: "", AuthorID: author.ID})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestCatalogService_UpdateQuote(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	author := seedAuthor(t, store, "Mark Twain")
	first := seedQuote(t, store, "First quote.", author.ID)
	second := seedQuote(t, store, "Second quote.", author.ID)

	t.Run("update keeps own text without conflict", func(t *testing.T) {
		updated, err := svc.UpdateQuote(ctx, domain.Quote{ID: first.ID, Text: "First quote.", AuthorID: author.ID})
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
	})

	t.Run("update onto another quote's text conflicts", func(t *testing.T) {
		_, err := svc.UpdateQuote(ctx, domain.Quote{ID: second.ID, Text: "First quote.", AuthorID: author.ID})
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("unknown quote not found", func(t *testing.T) {
		_, err := svc.UpdateQuote(ctx, domain.Quote{ID: 9999, Text: "Ghost.", AuthorID: author.ID})
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestCatalogService_DeleteQuoteRemovesAssociations(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	author := seedAuthor(t, store, "Mark Twain")
	quote := seedQuote(t, store, "Tagged quote.", author.ID)

	tag, err := svc.CreateTag(ctx, domain.Tag{Name: "wisdom"})
	require.NoError(t, err)
	require.NoError(t, svc.TagQuote(ctx, quote.ID, tag.ID))

	user, err := svc.CreateUser(ctx, domain.User{Name: "reader", Email: "reader@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.AddFavorite(ctx, user.ID, quote.ID))

	require.NoError(t, svc.DeleteQuote(ctx, quote.ID))

	_, err = svc.GetQuote(ctx, quote.ID)
	assert.True(t, domain.IsNotFound(err))

	favorites, err := svc.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	quotes, err := store.Tags().ListQuotes(ctx, tag.ID)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestCatalogService_DeleteAuthor(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	author := seedAuthor(t, store, "Mark Twain")
	quote := seedQuote(t, store, "Still referenced.", author.ID)

	t.Run("referenced author cannot be deleted", func(t *testing.T) {
		err := svc.DeleteAuthor(ctx, author.ID)
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("unreferenced author deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteQuote(ctx, quote.ID))
		require.NoError(t, svc.DeleteAuthor(ctx, author.ID))

		_, err := svc.GetAuthor(ctx, author.ID)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestCatalogService_TagQuote(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	author := seedAuthor(t, store, "Mark Twain")
	quote := seedQuote(t, store, "A quote.", author.ID)

	tag, err := svc.CreateTag(ctx, domain.Tag{Name: "wisdom"})
	require.NoError(t, err)

	require.NoError(t, svc.TagQuote(ctx, quote.ID, tag.ID))

	t.Run("attaching twice is a no-op", func(t *testing.T) {
		require.NoError(t, svc.TagQuote(ctx, quote.ID, tag.ID))

		tags, err := svc.QuoteTags(ctx, quote.ID)
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("unknown tag not found", func(t *testing.T) {
		err := svc.TagQuote(ctx, quote.ID, 9999)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("detach removes the association", func(t *testing.T) {
		require.NoError(t, svc.UntagQuote(ctx, quote.ID, tag.ID))

		tags, err := svc.QuoteTags(ctx, quote.ID)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestCatalogService_CreateAuthorSanitizes(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	created, err := svc.CreateAuthor(ctx, domain.Author{Name: "jean-paul sartre"})
	require.NoError(t, err)
	assert.Equal(t, "Jean-Paul Sartre", created.Name)

	t.Run("same name after sanitization conflicts", func(t *testing.T) {
		_, err := svc.CreateAuthor(ctx, domain.Author{Name: "JEAN-PAUL  SARTRE"})
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})
}

func TestCatalogService_Favorites(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	author := seedAuthor(t, store, "Mark Twain")
	quote := seedQuote(t, store, "Favored words.", author.ID)

	user, err := svc.CreateUser(ctx, domain.User{Name: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.AddFavorite(ctx, user.ID, quote.ID))
	require.NoError(t, svc.AddFavorite(ctx, user.ID, quote.ID))

	favorites, err := svc.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, quote.ID, favorites[0].ID)

	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, quote.ID))

	favorites, err = svc.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestCatalogService_Profile(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newCatalogService(store)

	twain := seedAuthor(t, store, "Mark Twain")
	sartre := seedAuthor(t, store, "Jean-Paul Sartre")

	q1 := seedQuote(t, store, "Quote one.", twain.ID)
	q2 := seedQuote(t, store, "Quote two.", twain.ID)
	q3 := seedQuote(t, store, "Quote three.", sartre.ID)

	tag, err := svc.CreateTag(ctx, domain.Tag{Name: "wisdom"})
	require.NoError(t, err)
	require.NoError(t, svc.TagQuote(ctx, q1.ID, tag.ID))
	require.NoError(t, svc.TagQuote(ctx, q2.ID, tag.ID))

	user, err := svc.CreateUser(ctx, domain.User{Name: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	for _, q := range []domain.Quote{q1, q2, q3} {
		require.NoError(t, svc.AddFavorite(ctx, user.ID, q.ID))
	}

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, profile.User.ID)
	assert.Len(t, profile.Quotes, 3)
	assert.Len(t, profile.Authors, 2)

	// The shared tag appears once despite two tagged favorites.
	require.Len(t, profile.Tags, 1)
	assert.Equal(t, "wisdom", profile.Tags[0].Name)
}
