// Package memstore provides an in-memory RecordStore implementation.
// It backs tests and local development where no database is available.
package memstore

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/naadamki/quotehub/internal/domain"
	"github.com/naadamki/quotehub/internal/ports"
)

// Store holds all records in process memory behind a single lock.
// Reads return copies, so callers never observe concurrent mutation.
type Store struct {
	mu   sync.RWMutex
	data *tables
}

type tables struct {
	quotes     map[uint]domain.Quote
	authors    map[uint]domain.Author
	tags       map[uint]domain.Tag
	categories map[uint]domain.Category
	users      map[uint]domain.User

	quoteTags       map[uint]map[uint]bool
	quoteCategories map[uint]map[uint]bool
	favorites       map[uint]map[uint]bool

	nextID uint
}

func newTables() *tables {
	return &tables{
		quotes:          make(map[uint]domain.Quote),
		authors:         make(map[uint]domain.Author),
		tags:            make(map[uint]domain.Tag),
		categories:      make(map[uint]domain.Category),
		users:           make(map[uint]domain.User),
		quoteTags:       make(map[uint]map[uint]bool),
		quoteCategories: make(map[uint]map[uint]bool),
		favorites:       make(map[uint]map[uint]bool),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	c.nextID = t.nextID

	for id, q := range t.quotes {
		c.quotes[id] = q
	}

	for id, a := range t.authors {
		c.authors[id] = a
	}

	for id, tag := range t.tags {
		c.tags[id] = tag
	}

	for id, cat := range t.categories {
		cat.Keywords = append([]string(nil), cat.Keywords...)
		c.categories[id] = cat
	}

	for id, u := range t.users {
		c.users[id] = u
	}

	for id, set := range t.quoteTags {
		c.quoteTags[id] = cloneSet(set)
	}

	for id, set := range t.quoteCategories {
		c.quoteCategories[id] = cloneSet(set)
	}

	for id, set := range t.favorites {
		c.favorites[id] = cloneSet(set)
	}

	return c
}

func cloneSet(set map[uint]bool) map[uint]bool {
	out := make(map[uint]bool, len(set))
	for id := range set {
		out[id] = true
	}

	return out
}

func (t *tables) allocID() uint {
	t.nextID++
	return t.nextID
}

var _ ports.RecordStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: newTables()}
}

// Quotes returns the quote store view.
func (s *Store) Quotes() ports.QuoteStore { return &quoteStore{s} }

// Authors returns the author store view.
func (s *Store) Authors() ports.AuthorStore { return &authorStore{s} }

// Tags returns the tag store view.
func (s *Store) Tags() ports.TagStore { return &tagStore{s} }

// Categories returns the category store view.
func (s *Store) Categories() ports.CategoryStore { return &categoryStore{s} }

// Users returns the user store view.
func (s *Store) Users() ports.UserStore { return &userStore{s} }

// Atomic runs fn against a scratch copy of the store and swaps it in
// only when fn succeeds, so a failed unit of work leaves no trace.
func (s *Store) Atomic(_ context.Context, fn func(ports.RecordStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scratch := &Store{data: s.data.clone()}
	if err := fn(scratch); err != nil {
		return err
	}

	s.data = scratch.data

	return nil
}

// Name identifies the store in health reports.
func (s *Store) Name() string { return "memstore" }

// Check reports the store as always healthy.
func (s *Store) Check(context.Context) error { return nil }

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type quoteStore struct{ s *Store }

func (q *quoteStore) GetByID(_ context.Context, id uint) (*domain.Quote, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	quote, ok := q.s.data.quotes[id]
	if !ok {
		return nil, domain.NewNotFoundError("quote", formatID(id))
	}

	return &quote, nil
}

func (q *quoteStore) FindByText(_ context.Context, text string, excludeID uint) (*domain.Quote, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	for _, quote := range q.s.data.quotes {
		if quote.Text == text && quote.ID != excludeID {
			return &quote, nil
		}
	}

	return nil, domain.NewNotFoundError("quote", "")
}

func (q *quoteStore) SearchText(_ context.Context, fragment string) ([]domain.Quote, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	fragment = strings.ToLower(fragment)

	var out []domain.Quote
	for _, quote := range q.s.data.quotes {
		if strings.Contains(strings.ToLower(quote.Text), fragment) {
			out = append(out, quote)
		}
	}

	sortQuotes(out)

	return out, nil
}

func (q *quoteStore) ListByAuthor(_ context.Context, authorID uint) ([]domain.Quote, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	var out []domain.Quote
	for _, quote := range q.s.data.quotes {
		if quote.AuthorID == authorID {
			out = append(out, quote)
		}
	}

	sortQuotes(out)

	return out, nil
}

func (q *quoteStore) List(_ context.Context) ([]domain.Quote, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	out := make([]domain.Quote, 0, len(q.s.data.quotes))
	for _, quote := range q.s.data.quotes {
		out = append(out, quote)
	}

	sortQuotes(out)

	return out, nil
}

func (q *quoteStore) ListPage(ctx context.Context, afterID uint, limit int) ([]domain.Quote, error) {
	all, err := q.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Quote
	for _, quote := range all {
		if quote.ID <= afterID {
			continue
		}

		out = append(out, quote)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

func (q *quoteStore) Count(_ context.Context) (int64, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	return int64(len(q.s.data.quotes)), nil
}

func (q *quoteStore) Create(_ context.Context, quote *domain.Quote) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	quote.ID = q.s.data.allocID()
	q.s.data.quotes[quote.ID] = *quote

	return nil
}

func (q *quoteStore) Update(_ context.Context, quote *domain.Quote) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	if _, ok := q.s.data.quotes[quote.ID]; !ok {
		return domain.NewNotFoundError("quote", formatID(quote.ID))
	}

	q.s.data.quotes[quote.ID] = *quote

	return nil
}

func (q *quoteStore) Delete(_ context.Context, id uint) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	if _, ok := q.s.data.quotes[id]; !ok {
		return domain.NewNotFoundError("quote", formatID(id))
	}

	// Associations go first, then the record.
	delete(q.s.data.quoteTags, id)
	delete(q.s.data.quoteCategories, id)

	for _, favs := range q.s.data.favorites {
		delete(favs, id)
	}

	delete(q.s.data.quotes, id)

	return nil
}

func (q *quoteStore) Tags(_ context.Context, quoteID uint) ([]domain.Tag, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	var out []domain.Tag
	for tagID := range q.s.data.quoteTags[quoteID] {
		out = append(out, q.s.data.tags[tagID])
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (q *quoteStore) Categories(_ context.Context, quoteID uint) ([]domain.Category, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()

	var out []domain.Category
	for catID := range q.s.data.quoteCategories[quoteID] {
		out = append(out, q.s.data.categories[catID])
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (q *quoteStore) AddTag(_ context.Context, quoteID, tagID uint) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	if q.s.data.quoteTags[quoteID] == nil {
		q.s.data.quoteTags[quoteID] = make(map[uint]bool)
	}

	q.s.data.quoteTags[quoteID][tagID] = true

	return nil
}

func (q *quoteStore) RemoveTag(_ context.Context, quoteID, tagID uint) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	delete(q.s.data.quoteTags[quoteID], tagID)

	return nil
}

func (q *quoteStore) AddCategory(_ context.Context, quoteID, categoryID uint) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	if q.s.data.quoteCategories[quoteID] == nil {
		q.s.data.quoteCategories[quoteID] = make(map[uint]bool)
	}

	q.s.data.quoteCategories[quoteID][categoryID] = true

	return nil
}

func (q *quoteStore) RemoveCategory(_ context.Context, quoteID, categoryID uint) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	delete(q.s.data.quoteCategories[quoteID], categoryID)

	return nil
}

type authorStore struct{ s *Store }

func (a *authorStore) GetByID(_ context.Context, id uint) (*domain.Author, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	author, ok := a.s.data.authors[id]
	if !ok {
		return nil, domain.NewNotFoundError("author", formatID(id))
	}

	return &author, nil
}

func (a *authorStore) FindByName(_ context.Context, name string) (*domain.Author, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	for _, author := range a.s.data.authors {
		if author.Name == name {
			return &author, nil
		}
	}

	return nil, domain.NewNotFoundError("author", "")
}

func (a *authorStore) FindByNameFold(_ context.Context, name string, excludeID uint) (*domain.Author, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	for _, author := range a.s.data.authors {
		if strings.EqualFold(author.Name, name) && author.ID != excludeID {
			return &author, nil
		}
	}

	return nil, domain.NewNotFoundError("author", "")
}

func (a *authorStore) List(_ context.Context) ([]domain.Author, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	out := make([]domain.Author, 0, len(a.s.data.authors))
	for _, author := range a.s.data.authors {
		out = append(out, author)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (a *authorStore) Create(_ context.Context, author *domain.Author) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	author.ID = a.s.data.allocID()
	a.s.data.authors[author.ID] = *author

	return nil
}

func (a *authorStore) Update(_ context.Context, author *domain.Author) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if _, ok := a.s.data.authors[author.ID]; !ok {
		return domain.NewNotFoundError("author", formatID(author.ID))
	}

	a.s.data.authors[author.ID] = *author

	return nil
}

func (a *authorStore) Delete(_ context.Context, id uint) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if _, ok := a.s.data.authors[id]; !ok {
		return domain.NewNotFoundError("author", formatID(id))
	}

	for _, quote := range a.s.data.quotes {
		if quote.AuthorID == id {
			return domain.NewConflictError("author", "author is still referenced by quotes")
		}
	}

	delete(a.s.data.authors, id)

	return nil
}

type tagStore struct{ s *Store }

func (t *tagStore) GetByID(_ context.Context, id uint) (*domain.Tag, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	tag, ok := t.s.data.tags[id]
	if !ok {
		return nil, domain.NewNotFoundError("tag", formatID(id))
	}

	return &tag, nil
}

func (t *tagStore) FindByName(_ context.Context, name string) (*domain.Tag, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	for _, tag := range t.s.data.tags {
		if tag.Name == name {
			return &tag, nil
		}
	}

	return nil, domain.NewNotFoundError("tag", "")
}

func (t *tagStore) FindByNameFold(_ context.Context, name string, excludeID uint) (*domain.Tag, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	for _, tag := range t.s.data.tags {
		if strings.EqualFold(tag.Name, name) && tag.ID != excludeID {
			return &tag, nil
		}
	}

	return nil, domain.NewNotFoundError("tag", "")
}

func (t *tagStore) List(_ context.Context) ([]domain.Tag, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]domain.Tag, 0, len(t.s.data.tags))
	for _, tag := range t.s.data.tags {
		out = append(out, tag)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (t *tagStore) ListQuotes(_ context.Context, tagID uint) ([]domain.Quote, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var out []domain.Quote
	for quoteID, tagIDs := range t.s.data.quoteTags {
		if tagIDs[tagID] {
			out = append(out, t.s.data.quotes[quoteID])
		}
	}

	sortQuotes(out)

	return out, nil
}

func (t *tagStore) Create(_ context.Context, tag *domain.Tag) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	tag.ID = t.s.data.allocID()
	t.s.data.tags[tag.ID] = *tag

	return nil
}

func (t *tagStore) Update(_ context.Context, tag *domain.Tag) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.data.tags[tag.ID]; !ok {
		return domain.NewNotFoundError("tag", formatID(tag.ID))
	}

	t.s.data.tags[tag.ID] = *tag

	return nil
}

func (t *tagStore) Delete(_ context.Context, id uint) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.data.tags[id]; !ok {
		return domain.NewNotFoundError("tag", formatID(id))
	}

	for _, tagIDs := range t.s.data.quoteTags {
		delete(tagIDs, id)
	}

	delete(t.s.data.tags, id)

	return nil
}

type categoryStore struct{ s *Store }

func (c *categoryStore) GetByID(_ context.Context, id uint) (*domain.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	category, ok := c.s.data.categories[id]
	if !ok {
		return nil, domain.NewNotFoundError("category", formatID(id))
	}

	return &category, nil
}

func (c *categoryStore) FindByName(_ context.Context, name string) (*domain.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	for _, category := range c.s.data.categories {
		if category.Name == name {
			return &category, nil
		}
	}

	return nil, domain.NewNotFoundError("category", "")
}

func (c *categoryStore) FindByNameFold(_ context.Context, name string, excludeID uint) (*domain.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	for _, category := range c.s.data.categories {
		if strings.EqualFold(category.Name, name) && category.ID != excludeID {
			return &category, nil
		}
	}

	return nil, domain.NewNotFoundError("category", "")
}

func (c *categoryStore) List(_ context.Context) ([]domain.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := make([]domain.Category, 0, len(c.s.data.categories))
	for _, category := range c.s.data.categories {
		out = append(out, category)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (c *categoryStore) ListQuotes(_ context.Context, categoryID uint) ([]domain.Quote, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	var out []domain.Quote
	for quoteID, catIDs := range c.s.data.quoteCategories {
		if catIDs[categoryID] {
			out = append(out, c.s.data.quotes[quoteID])
		}
	}

	sortQuotes(out)

	return out, nil
}

func (c *categoryStore) Create(_ context.Context, category *domain.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	category.ID = c.s.data.allocID()
	c.s.data.categories[category.ID] = *category

	return nil
}

func (c *categoryStore) Update(_ context.Context, category *domain.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.data.categories[category.ID]; !ok {
		return domain.NewNotFoundError("category", formatID(category.ID))
	}

	c.s.data.categories[category.ID] = *category

	return nil
}

func (c *categoryStore) Delete(_ context.Context, id uint) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.data.categories[id]; !ok {
		return domain.NewNotFoundError("category", formatID(id))
	}

	for _, catIDs := range c.s.data.quoteCategories {
		delete(catIDs, id)
	}

	delete(c.s.data.categories, id)

	return nil
}

type userStore struct{ s *Store }

func (u *userStore) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.data.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", formatID(id))
	}

	return &user, nil
}

func (u *userStore) FindByNameOrEmail(_ context.Context, name, email string, excludeID uint) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.data.users {
		if user.ID == excludeID {
			continue
		}

		if user.Name == name || user.Email == email {
			return &user, nil
		}
	}

	return nil, domain.NewNotFoundError("user", "")
}

func (u *userStore) List(_ context.Context) ([]domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	out := make([]domain.User, 0, len(u.s.data.users))
	for _, user := range u.s.data.users {
		out = append(out, user)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (u *userStore) Create(_ context.Context, user *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user.ID = u.s.data.allocID()
	u.s.data.users[user.ID] = *user

	return nil
}

func (u *userStore) Update(_ context.Context, user *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.data.users[user.ID]; !ok {
		return domain.NewNotFoundError("user", formatID(user.ID))
	}

	u.s.data.users[user.ID] = *user

	return nil
}

func (u *userStore) Delete(_ context.Context, id uint) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.data.users[id]; !ok {
		return domain.NewNotFoundError("user", formatID(id))
	}

	delete(u.s.data.favorites, id)
	delete(u.s.data.users, id)

	return nil
}

func (u *userStore) AddFavorite(_ context.Context, userID, quoteID uint) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.s.data.favorites[userID] == nil {
		u.s.data.favorites[userID] = make(map[uint]bool)
	}

	u.s.data.favorites[userID][quoteID] = true

	return nil
}

func (u *userStore) RemoveFavorite(_ context.Context, userID, quoteID uint) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	delete(u.s.data.favorites[userID], quoteID)

	return nil
}

func (u *userStore) ListFavorites(_ context.Context, userID uint) ([]domain.Quote, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	var out []domain.Quote
	for quoteID := range u.s.data.favorites[userID] {
		out = append(out, u.s.data.quotes[quoteID])
	}

	sortQuotes(out)

	return out, nil
}

func sortQuotes(quotes []domain.Quote) {
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].ID < quotes[j].ID })
}
