//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naadamki/quotehub/internal/adapters/storage/memstore"
	"github.com/naadamki/quotehub/internal/app"
	"github.com/naadamki/quotehub/internal/domain"
	"github.com/naadamki/quotehub/internal/platform/logging"
)

// newTestCatalog wires a catalog service onto a fresh in-memory store.
func newTestCatalog(t *testing.T) *app.CatalogService {
	t.Helper()

	logger := logging.NewWithWriter(&logging.Config{
		Level:  "error",
		Format: "text",
	}, io.Discard)

	store := memstore.New()

	return app.NewCatalogService(app.CatalogServiceConfig{
		Store:     store,
		Validator: app.NewValidator(store),
		Logger:    logger,
	})
}

// TestConcurrent_QuoteCreation verifies that concurrent creates produce
// unique identifiers with no lost records.
func TestConcurrent_QuoteCreation(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	author, err := catalog.CreateAuthor(ctx, domain.Author{Name: "Load Test Author"})
	require.NoError(t, err)

	const numGoroutines = 50

	var wg sync.WaitGroup
	ids := make(chan uint, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			quote, err := catalog.CreateQuote(ctx, domain.Quote{
				Text:     fmt.Sprintf("Concurrent quote number %d.", n),
				AuthorID: author.ID,
			})
			if err == nil {
				ids <- quote.ID
			}
		}(i)
	}

	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate ID %d assigned", id)
		seen[id] = true
	}

	assert.Len(t, seen, numGoroutines, "every create should succeed with a unique ID")

	quotes, err := catalog.ListQuotes(ctx, 0, numGoroutines+1)
	require.NoError(t, err)
	assert.Len(t, quotes, numGoroutines)
}

// TestConcurrent_DuplicateDetection verifies that racing creates of the
// same text admit exactly one winner.
func TestConcurrent_DuplicateDetection(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	author, err := catalog.CreateAuthor(ctx, domain.Author{Name: "Race Author"})
	require.NoError(t, err)

	const numGoroutines = 20

	var wg sync.WaitGroup
	var successes, conflicts int32

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := catalog.CreateQuote(ctx, domain.Quote{
				Text:     "There is only one of this quote.",
				AuthorID: author.ID,
			})
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case domain.IsConflict(err):
				atomic.AddInt32(&conflicts, 1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&successes), "exactly one create should win")
	assert.Equal(t, int32(numGoroutines-1), atomic.LoadInt32(&conflicts), "the rest should observe a conflict")
}

// TestConcurrent_Favorites verifies that concurrent favorite toggles on
// a shared user converge without lost updates.
func TestConcurrent_Favorites(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	author, err := catalog.CreateAuthor(ctx, domain.Author{Name: "Favorite Author"})
	require.NoError(t, err)

	user, err := catalog.CreateUser(ctx, domain.User{Name: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	const numQuotes = 20

	quoteIDs := make([]uint, 0, numQuotes)
	for i := 0; i < numQuotes; i++ {
		quote, err := catalog.CreateQuote(ctx, domain.Quote{
			Text:     fmt.Sprintf("Favorite candidate %d.", i),
			AuthorID: author.ID,
		})
		require.NoError(t, err)
		quoteIDs = append(quoteIDs, quote.ID)
	}

	var wg sync.WaitGroup
	for _, id := range quoteIDs {
		wg.Add(1)
		go func(quoteID uint) {
			defer wg.Done()
			assert.NoError(t, catalog.AddFavorite(ctx, user.ID, quoteID))
		}(id)
	}
	wg.Wait()

	favorites, err := catalog.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, numQuotes)

	// Remove half concurrently.
	for _, id := range quoteIDs[:numQuotes/2] {
		wg.Add(1)
		go func(quoteID uint) {
			defer wg.Done()
			assert.NoError(t, catalog.RemoveFavorite(ctx, user.ID, quoteID))
		}(id)
	}
	wg.Wait()

	favorites, err = catalog.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, numQuotes/2)
}

// TestConcurrent_ReadsDuringWrites verifies the HTTP surface stays
// consistent while the store is being mutated.
func TestConcurrent_ReadsDuringWrites(t *testing.T) {
	server := newTestServer(t)

	var author struct {
		ID uint `json:"id"`
	}
	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/authors",
		map[string]any{"name": "Busy Author"}, &author)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	const writers = 5
	const readers = 10
	const iterations = 10

	var wg sync.WaitGroup
	var writeErrors, readErrors int32

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/quotes", map[string]any{
					"text":     fmt.Sprintf("Writer %d iteration %d.", w, i),
					"authorId": author.ID,
				}, nil)
				if resp.StatusCode != http.StatusCreated {
					atomic.AddInt32(&writeErrors, 1)
				}
			}
		}(w)
	}

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/quotes?limit=10", nil, nil)
				if resp.StatusCode != http.StatusOK {
					atomic.AddInt32(&readErrors, 1)
				}
			}
		}()
	}

	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&writeErrors), "all writes should succeed")
	assert.Zero(t, atomic.LoadInt32(&readErrors), "all reads should succeed")

	var page struct {
		Items []struct {
			ID uint `json:"id"`
		} `json:"items"`
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/quotes?limit=100", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page.Items, writers*iterations)
}
