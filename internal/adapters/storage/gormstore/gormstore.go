// Package gormstore provides a PostgreSQL RecordStore implementation
// backed by GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/naadamki/quotehub/internal/domain"
	"github.com/naadamki/quotehub/internal/ports"
)

// Config describes the database connection.
type Config struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogQueries      bool
}

// Store implements ports.RecordStore on top of a PostgreSQL database.
type Store struct {
	db *gorm.DB
}

var _ ports.RecordStore = (*Store)(nil)

// New opens the database connection, configures the pool, and runs
// schema migration.
func New(cfg Config, log *slog.Logger) (*Store, error) {
	logLevel := logger.Warn
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database connection established")

	return store, nil
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&authorRecord{},
		&quoteRecord{},
		&tagRecord{},
		&categoryRecord{},
		&userRecord{},
	)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Quotes returns the quote store view.
func (s *Store) Quotes() ports.QuoteStore { return &quoteStore{s.db} }

// Authors returns the author store view.
func (s *Store) Authors() ports.AuthorStore { return &authorStore{s.db} }

// Tags returns the tag store view.
func (s *Store) Tags() ports.TagStore { return &tagStore{s.db} }

// Categories returns the category store view.
func (s *Store) Categories() ports.CategoryStore { return &categoryStore{s.db} }

// Users returns the user store view.
func (s *Store) Users() ports.UserStore { return &userStore{s.db} }

// Atomic runs fn inside a database transaction. Any error from fn
// rolls the transaction back and is returned unchanged.
func (s *Store) Atomic(ctx context.Context, fn func(ports.RecordStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Name identifies the store in health reports.
func (s *Store) Name() string { return "postgres" }

// Check pings the database.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// notFound translates gorm's record-not-found into the domain sentinel.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id != 0 {
			return domain.NewNotFoundError(entity, formatID(id))
		}

		return domain.NewNotFoundError(entity, "")
	}

	return err
}

type quoteStore struct{ db *gorm.DB }

func (q *quoteStore) GetByID(ctx context.Context, id uint) (*domain.Quote, error) {
	var record quoteRecord
	if err := q.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, notFound(err, "quote", id)
	}

	quote := record.toDomain()

	return &quote, nil
}

func (q *quoteStore) FindByText(ctx context.Context, text string, excludeID uint) (*domain.Quote, error) {
	query := q.db.WithContext(ctx).Where("text = ?", text)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var record quoteRecord
	if err := query.First(&record).Error; err != nil {
		return nil, notFound(err, "quote", 0)
	}

	quote := record.toDomain()

	return &quote, nil
}

func (q *quoteStore) SearchText(ctx context.Context, fragment string) ([]domain.Quote, error) {
	var records []quoteRecord

	err := q.db.WithContext(ctx).
		Where("text ILIKE ?", "%"+fragment+"%").
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return quotesToDomain(records), nil
}

func (q *quoteStore) ListByAuthor(ctx context.Context, authorID uint) ([]domain.Quote, error) {
	var records []quoteRecord

	err := q.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return quotesToDomain(records), nil
}

func (q *quoteStore) List(ctx context.Context) ([]domain.Quote, error) {
	var records []quoteRecord
	if err := q.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	return quotesToDomain(records), nil
}

func (q *quoteStore) ListPage(ctx context.Context, afterID uint, limit int) ([]domain.Quote, error) {
	query := q.db.WithContext(ctx).Where("id > ?", afterID).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []quoteRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	return quotesToDomain(records), nil
}

func (q *quoteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := q.db.WithContext(ctx).Model(&quoteRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (q *quoteStore) Create(ctx context.Context, quote *domain.Quote) error {
	record := quoteToRecord(quote)
	if err := q.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}

	quote.ID = record.ID

	return nil
}

func (q *quoteStore) Update(ctx context.Context, quote *domain.Quote) error {
	record := quoteToRecord(quote)

	result := q.db.WithContext(ctx).Model(&quoteRecord{ID: quote.ID}).
		Select("text", "source", "author_id").
		Updates(record)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("quote", formatID(quote.ID))
	}

	return nil
}

func (q *quoteStore) Delete(ctx context.Context, id uint) error {
	// Join rows go first, then the record itself.
	record := quoteRecord{ID: id}

	if err := q.db.WithContext(ctx).Model(&record).Association("Tags").Clear(); err != nil {
		return err
	}

	if err := q.db.WithContext(ctx).Model(&record).Association("Categories").Clear(); err != nil {
		return err
	}

	if err := q.db.WithContext(ctx).Exec("DELETE FROM user_quotes WHERE quote_record_id = ?", id).Error; err != nil {
		return err
	}

	result := q.db.WithContext(ctx).Delete(&quoteRecord{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("quote", formatID(id))
	}

	return nil
}

func (q *quoteStore) Tags(ctx context.Context, quoteID uint) ([]domain.Tag, error) {
	var records []tagRecord

	err := q.db.WithContext(ctx).Model(&quoteRecord{ID: quoteID}).
		Order("tags.id").
		Association("Tags").
		Find(&records)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Tag, len(records))
	for i := range records {
		out[i] = records[i].toDomain()
	}

	return out, nil
}

func (q *quoteStore) Categories(ctx context.Context, quoteID uint) ([]domain.Category, error) {
	var records []categoryRecord

	err := q.db.WithContext(ctx).Model(&quoteRecord{ID: quoteID}).
		Order("categories.id").
		Association("Categories").
		Find(&records)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, len(records))
	for i := range records {
		out[i] = records[i].toDomain()
	}

	return out, nil
}

func (q *quoteStore) AddTag(ctx context.Context, quoteID, tagID uint) error {
	return q.db.WithContext(ctx).Model(&quoteRecord{ID: quoteID}).
		Association("Tags").
		Append(&tagRecord{ID: tagID})
}

func (q *quoteStore) RemoveTag(ctx context.Context, quoteID, tagID uint) error {
	return q.db.WithContext(ctx).Model(&quoteRecord{ID: quoteID}).
		Association("Tags").
		Delete(&tagRecord{ID: tagID})
}

func (q *quoteStore) AddCategory(ctx context.Context, quoteID, categoryID uint) error {
	return q.db.WithContext(ctx).Model(&quoteRecord{ID: quoteID}).
		Association("Categories").
		Append(&categoryRecord{ID: categoryID})
}

func (q *quoteStore) RemoveCategory(ctx context.Context, quoteID, categoryID uint) error {
	return q.db.WithContext(ctx).Model(&quoteRecord{ID: quoteID}).
		Association("Categories").
		Delete(&categoryRecord{ID: categoryID})
}

type authorStore struct{ db *gorm.DB }

func (a *authorStore) GetByID(ctx context.Context, id uint) (*domain.Author, error) {
	var record authorRecord
	if err := a.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, notFound(err, "author", id)
	}

	author := record.toDomain()

	return &author, nil
}

func (a *authorStore) FindByName(ctx context.Context, name string) (*domain.Author, error) {
	var record authorRecord
	if err := a.db.WithContext(ctx).Where("name = ?", name).First(&record).Error; err != nil {
		return nil, notFound(err, "author", 0)
	}

	author := record.toDomain()

	return &author, nil
}

func (a *authorStore) FindByNameFold(ctx context.Context, name string, excludeID uint) (*domain.Author, error) {
	query := a.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var record authorRecord
	if err := query.First(&record).Error; err != nil {
		return nil, notFound(err, "author", 0)
	}

	author := record.toDomain()

	return &author, nil
}

func (a *authorStore) List(ctx context.Context) ([]domain.Author, error) {
	var records []authorRecord
	if err := a.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Author, len(records))
	for i := range records {
		out[i] = records[i].toDomain()
	}

	return out, nil
}

func (a *authorStore) Create(ctx context.Context, author *domain.Author) error {
	record := &authorRecord{Name: author.Name}
	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}

	author.ID = record.ID

	return nil
}

func (a *authorStore) Update(ctx context.Context, author *domain.Author) error {
	result := a.db.WithContext(ctx).Model(&authorRecord{ID: author.ID}).
		Update("name", author.Name)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("author", formatID(author.ID))
	}

	return nil
}

func (a *authorStore) Delete(ctx context.Context, id uint) error {
	var count int64

	err := a.db.WithContext(ctx).Model(&quoteRecord{}).
		Where("author_id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return domain.NewConflictError("author", "author is still referenced by quotes")
	}

	result := a.db.WithContext(ctx).Delete(&authorRecord{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("author", formatID(id))
	}

	return nil
}

type tagStore struct{ db *gorm.DB }

func (t *tagStore) GetByID(ctx context.Context, id uint) (*domain.Tag, error) {
	var record tagRecord
	if err := t.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, notFound(err, "tag", id)
	}

	tag := record.toDomain()

	return &tag, nil
}

func (t *tagStore) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var record tagRecord
	if err := t.db.WithContext(ctx).Where("name = ?", name).First(&record).Error; err != nil {
		return nil, notFound(err, "tag", 0)
	}

	tag := record.toDomain()

	return &tag, nil
}

func (t *tagStore) FindByNameFold(ctx context.Context, name string, excludeID uint) (*domain.Tag, error) {
	query := t.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var record tagRecord
	if err := query.First(&record).Error; err != nil {
		return nil, notFound(err, "tag", 0)
	}

	tag := record.toDomain()

	return &tag, nil
}

func (t *tagStore) List(ctx context.Context) ([]domain.Tag, error) {
	var records []tagRecord
	if err := t.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Tag, len(records))
	for i := range records {
		out[i] = records[i].toDomain()
	}

	return out, nil
}

func (t *tagStore) ListQuotes(ctx context.Context, tagID uint) ([]domain.Quote, error) {
	var records []quoteRecord

	err := t.db.WithContext(ctx).Model(&tagRecord{ID: tagID}).
		Order("quotes.id").
		Association("Quotes").
		Find(&records)
	if err != nil {
		return nil, err
	}

	return quotesToDomain(records), nil
}

func (t *tagStore) Create(ctx context.Context, tag *domain.Tag) error {
	record := &tagRecord{Name: tag.Name}
	if err := t.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}

	tag.ID = record.ID

	return nil
}

func (t *tagStore) Update(ctx context.Context, tag *domain.Tag) error {
	result := t.db.WithContext(ctx).Model(&tagRecord{ID: tag.ID}).
		Update("name", tag.Name)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("tag", formatID(tag.ID))
	}

	return nil
}

func (t *tagStore) Delete(ctx context.Context, id uint) error {
	record := tagRecord{ID: id}

	if err := t.db.WithContext(ctx).Model(&record).Association("Quotes").Clear(); err != nil {
		return err
	}

	result := t.db.WithContext(ctx).Delete(&tagRecord{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("tag", formatID(id))
	}

	return nil
}

type categoryStore struct{ db *gorm.DB }

func (c *categoryStore) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var record categoryRecord
	if err := c.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, notFound(err, "category", id)
	}

	category := record.toDomain()

	return &category, nil
}

func (c *categoryStore) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var record categoryRecord
	if err := c.db.WithContext(ctx).Where("name = ?", name).First(&record).Error; err != nil {
		return nil, notFound(err, "category", 0)
	}

	category := record.toDomain()

	return &category, nil
}

func (c *categoryStore) FindByNameFold(ctx context.Context, name string, excludeID uint) (*domain.Category, error) {
	query := c.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var record categoryRecord
	if err := query.First(&record).Error; err != nil {
		return nil, notFound(err, "category", 0)
	}

	category := record.toDomain()

	return &category, nil
}

func (c *categoryStore) List(ctx context.Context) ([]domain.Category, error) {
	var records []categoryRecord
	if err := c.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Category, len(records))
	for i := range records {
		out[i] = records[i].toDomain()
	}

	return out, nil
}

func (c *categoryStore) ListQuotes(ctx context.Context, categoryID uint) ([]domain.Quote, error) {
	var records []quoteRecord

	err := c.db.WithContext(ctx).Model(&categoryRecord{ID: categoryID}).
		Order("quotes.id").
		Association("Quotes").
		Find(&records)
	if err != nil {
		return nil, err
	}

	return quotesToDomain(records), nil
}

func (c *categoryStore) Create(ctx context.Context, category *domain.Category) error {
	record, err := categoryToRecord(category)
	if err != nil {
		return err
	}

	record.ID = 0
	if err := c.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}

	category.ID = record.ID

	return nil
}

func (c *categoryStore) Update(ctx context.Context, category *domain.Category) error {
	record, err := categoryToRecord(category)
	if err != nil {
		return err
	}

	result := c.db.WithContext(ctx).Model(&categoryRecord{ID: category.ID}).
		Select("name", "keywords").
		Updates(record)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("category", formatID(category.ID))
	}

	return nil
}

func (c *categoryStore) Delete(ctx context.Context, id uint) error {
	record := categoryRecord{ID: id}

	if err := c.db.WithContext(ctx).Model(&record).Association("Quotes").Clear(); err != nil {
		return err
	}

	result := c.db.WithContext(ctx).Delete(&categoryRecord{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("category", formatID(id))
	}

	return nil
}

type userStore struct{ db *gorm.DB }

func (u *userStore) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var record userRecord
	if err := u.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}

	user := record.toDomain()

	return &user, nil
}

func (u *userStore) FindByNameOrEmail(ctx context.Context, name, email string, excludeID uint) (*domain.User, error) {
	query := u.db.WithContext(ctx).
		Where("name = ? OR email = ?", name, email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var record userRecord
	if err := query.First(&record).Error; err != nil {
		return nil, notFound(err, "user", 0)
	}

	user := record.toDomain()

	return &user, nil
}

func (u *userStore) List(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if err := u.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]domain.User, len(records))
	for i := range records {
		out[i] = records[i].toDomain()
	}

	return out, nil
}

func (u *userStore) Create(ctx context.Context, user *domain.User) error {
	record := &userRecord{Name: user.Name, Email: user.Email}
	if err := u.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}

	user.ID = record.ID

	return nil
}

func (u *userStore) Update(ctx context.Context, user *domain.User) error {
	result := u.db.WithContext(ctx).Model(&userRecord{ID: user.ID}).
		Select("name", "email").
		Updates(&userRecord{Name: user.Name, Email: user.Email})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", formatID(user.ID))
	}

	return nil
}

func (u *userStore) Delete(ctx context.Context, id uint) error {
	record := userRecord{ID: id}

	if err := u.db.WithContext(ctx).Model(&record).Association("Favorites").Clear(); err != nil {
		return err
	}

	result := u.db.WithContext(ctx).Delete(&userRecord{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", formatID(id))
	}

	return nil
}

func (u *userStore) AddFavorite(ctx context.Context, userID, quoteID uint) error {
	return u.db.WithContext(ctx).Model(&userRecord{ID: userID}).
		Association("Favorites").
		Append(&quoteRecord{ID: quoteID})
}

func (u *userStore) RemoveFavorite(ctx context.Context, userID, quoteID uint) error {
	return u.db.WithContext(ctx).Model(&userRecord{ID: userID}).
		Association("Favorites").
		Delete(&quoteRecord{ID: quoteID})
}

func (u *userStore) ListFavorites(ctx context.Context, userID uint) ([]domain.Quote, error) {
	var records []quoteRecord

	err := u.db.WithContext(ctx).Model(&userRecord{ID: userID}).
		Order("quotes.id").
		Association("Favorites").
		Find(&records)
	if err != nil {
		return nil, err
	}

	return quotesToDomain(records), nil
}
