package app

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/naadamki/quotehub/internal/domain"
	"github.com/naadamki/quotehub/internal/ports"
)

// SearchService answers catalog queries by composing per-criterion
// result sets with set algebra. Criteria within a query intersect;
// names within a single criterion union.
type SearchService struct {
	store  ports.RecordStore
	logger *slog.Logger
}

// SearchServiceConfig contains configuration for the search service.
type SearchServiceConfig struct {
	Store  ports.RecordStore
	Logger *slog.Logger
}

// NewSearchService creates a new search service with the provided dependencies.
func NewSearchService(cfg SearchServiceConfig) *SearchService {
	return &SearchService{
		store:  cfg.Store,
		logger: cfg.Logger,
	}
}

// SearchCriteria describes an advanced search. Zero-valued fields are
// ignored; a criteria with no fields set matches nothing.
type SearchCriteria struct {
	// Author filters to quotes by the named author, matched after
	// canonical name sanitization.
	Author string

	// Text filters to quotes whose text contains the fragment,
	// case-insensitively.
	Text string

	// Tags filters to quotes carrying the named tags: any of them by
	// default, all of them when MatchAllTags is set.
	Tags         []string
	MatchAllTags bool

	// Categories filters to quotes filed under the named categories,
	// composed the same way under MatchAllCategories.
	Categories         []string
	MatchAllCategories bool
}

func (c SearchCriteria) empty() bool {
	return c.Author == "" && c.Text == "" && len(c.Tags) == 0 && len(c.Categories) == 0
}

// quoteSet is a set of quotes keyed by identifier.
type quoteSet map[uint]domain.Quote

func newQuoteSet(quotes []domain.Quote) quoteSet {
	set := make(quoteSet, len(quotes))
	for _, q := range quotes {
		set[q.ID] = q
	}

	return set
}

func (s quoteSet) union(other quoteSet) quoteSet {
	for id, q := range other {
		s[id] = q
	}

	return s
}

func (s quoteSet) intersect(other quoteSet) quoteSet {
	for id := range s {
		if _, ok := other[id]; !ok {
			delete(s, id)
		}
	}

	return s
}

// sorted returns the set's quotes ordered by ascending identifier so
// equal sets always produce identical output.
func (s quoteSet) sorted() []domain.Quote {
	out := make([]domain.Quote, 0, len(s))
	for _, q := range s {
		out = append(out, q)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ByTagNames returns quotes carrying the named tags. Names are
// sanitized before lookup; names that resolve to no tag are skipped.
// With matchAll the per-tag quote sets intersect, seeded from the first
// resolved tag; otherwise they union. No resolved tag means an empty
// result either way.
func (s *SearchService) ByTagNames(ctx context.Context, names []string, matchAll bool) ([]domain.Quote, error) {
	var result quoteSet

	for _, name := range names {
		clean, err := domain.SanitizeTagName(name)
		if err != nil {
			continue
		}

		tag, err := s.store.Tags().FindByName(ctx, clean)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}

			return nil, err
		}

		quotes, err := s.store.Tags().ListQuotes(ctx, tag.ID)
		if err != nil {
			return nil, err
		}

		set := newQuoteSet(quotes)
		switch {
		case result == nil:
			result = set
		case matchAll:
			result.intersect(set)
		default:
			result.union(set)
		}
	}

	if result == nil {
		return []domain.Quote{}, nil
	}

	return result.sorted(), nil
}

// ByCategoryNames returns quotes filed under the named categories,
// composed the same way as ByTagNames. Unknown names are skipped.
func (s *SearchService) ByCategoryNames(ctx context.Context, names []string, matchAll bool) ([]domain.Quote, error) {
	var result quoteSet

	for _, name := range names {
		category, err := s.store.Categories().FindByNameFold(ctx, strings.TrimSpace(name), 0)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}

			return nil, err
		}

		quotes, err := s.store.Categories().ListQuotes(ctx, category.ID)
		if err != nil {
			return nil, err
		}

		set := newQuoteSet(quotes)
		switch {
		case result == nil:
			result = set
		case matchAll:
			result.intersect(set)
		default:
			result.union(set)
		}
	}

	if result == nil {
		return []domain.Quote{}, nil
	}

	return result.sorted(), nil
}

// ByAuthorName returns quotes attributed to the named author. The name
// is sanitized into canonical form before lookup.
func (s *SearchService) ByAuthorName(ctx context.Context, name string) ([]domain.Quote, error) {
	author, err := s.store.Authors().FindByNameFold(ctx, domain.SanitizeAuthorName(name), 0)
	if err != nil {
		if domain.IsNotFound(err) {
			return []domain.Quote{}, nil
		}

		return nil, err
	}

	return s.store.Quotes().ListByAuthor(ctx, author.ID)
}

// ByText returns quotes whose text contains the fragment, matched
// case-insensitively.
func (s *SearchService) ByText(ctx context.Context, fragment string) ([]domain.Quote, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return []domain.Quote{}, nil
	}

	return s.store.Quotes().SearchText(ctx, fragment)
}

// Advanced intersects the result sets of each populated criterion.
// Empty criteria match nothing. An author that resolves to no record
// short-circuits to an empty result; a tag or category criterion whose
// names all fail to resolve likewise empties the intersection.
func (s *SearchService) Advanced(ctx context.Context, criteria SearchCriteria) ([]domain.Quote, error) {
	if criteria.empty() {
		return []domain.Quote{}, nil
	}

	s.logger.DebugContext(ctx, "running advanced search",
		slog.String("author", criteria.Author),
		slog.String("text", criteria.Text),
		slog.Int("tags", len(criteria.Tags)),
		slog.Int("categories", len(criteria.Categories)),
	)

	var result quoteSet

	narrow := func(quotes []domain.Quote) {
		if result == nil {
			result = newQuoteSet(quotes)
			return
		}

		result.intersect(newQuoteSet(quotes))
	}

	if criteria.Author != "" {
		quotes, err := s.ByAuthorName(ctx, criteria.Author)
		if err != nil {
			return nil, err
		}

		if len(quotes) == 0 {
			return []domain.Quote{}, nil
		}

		narrow(quotes)
	}

	if criteria.Text != "" {
		quotes, err := s.ByText(ctx, criteria.Text)
		if err != nil {
			return nil, err
		}

		narrow(quotes)
	}

	if len(criteria.Tags) > 0 {
		quotes, err := s.ByTagNames(ctx, criteria.Tags, criteria.MatchAllTags)
		if err != nil {
			return nil, err
		}

		narrow(quotes)

		if len(result) == 0 {
			return []domain.Quote{}, nil
		}
	}

	if len(criteria.Categories) > 0 {
		quotes, err := s.ByCategoryNames(ctx, criteria.Categories, criteria.MatchAllCategories)
		if err != nil {
			return nil, err
		}

		narrow(quotes)

		if len(result) == 0 {
			return []domain.Quote{}, nil
		}
	}

	return result.sorted(), nil
}

// SearchAll returns quotes matching the fragment in their text, their
// author's name, or one of their tags.
func (s *SearchService) SearchAll(ctx context.Context, fragment string) ([]domain.Quote, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return []domain.Quote{}, nil
	}

	byText, err := s.store.Quotes().SearchText(ctx, fragment)
	if err != nil {
		return nil, err
	}

	result := newQuoteSet(byText)

	byAuthor, err := s.ByAuthorName(ctx, fragment)
	if err != nil {
		return nil, err
	}

	result.union(newQuoteSet(byAuthor))

	byTag, err := s.ByTagNames(ctx, []string{fragment}, false)
	if err != nil {
		return nil, err
	}

	result.union(newQuoteSet(byTag))

	return result.sorted(), nil
}
