package gormstore

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/naadamki/quotehub/internal/domain"
)

// quoteRecord is the persistence shape of a quote.
type quoteRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Text     string `gorm:"not null;uniqueIndex;type:text"`
	Source   string `gorm:"type:varchar(300)"`
	AuthorID uint   `gorm:"not null;index"`

	Author     *authorRecord     `gorm:"foreignKey:AuthorID"`
	Tags       []*tagRecord      `gorm:"many2many:quote_tags"`
	Categories []*categoryRecord `gorm:"many2many:quote_categories"`
}

func (quoteRecord) TableName() string { return "quotes" }

func (r *quoteRecord) toDomain() domain.Quote {
	return domain.Quote{ID: r.ID, Text: r.Text, Source: r.Source, AuthorID: r.AuthorID}
}

func quoteToRecord(q *domain.Quote) *quoteRecord {
	return &quoteRecord{ID: q.ID, Text: q.Text, Source: q.Source, AuthorID: q.AuthorID}
}

func quotesToDomain(records []quoteRecord) []domain.Quote {
	out := make([]domain.Quote, len(records))
	for i := range records {
		out[i] = records[i].toDomain()
	}

	return out
}

// authorRecord is the persistence shape of an author.
type authorRecord struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex;type:varchar(255)"`
}

func (authorRecord) TableName() string { return "authors" }

func (r *authorRecord) toDomain() domain.Author {
	return domain.Author{ID: r.ID, Name: r.Name}
}

// tagRecord is the persistence shape of a tag.
type tagRecord struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex;type:varchar(100)"`

	Quotes []*quoteRecord `gorm:"many2many:quote_tags"`
}

func (tagRecord) TableName() string { return "tags" }

func (r *tagRecord) toDomain() domain.Tag {
	return domain.Tag{ID: r.ID, Name: r.Name}
}

// categoryRecord is the persistence shape of a category. Keywords are
// stored as a JSON array.
type categoryRecord struct {
	ID       uint           `gorm:"primaryKey"`
	Name     string         `gorm:"not null;uniqueIndex;type:varchar(50)"`
	Keywords datatypes.JSON `gorm:"type:jsonb"`

	Quotes []*quoteRecord `gorm:"many2many:quote_categories"`
}

func (categoryRecord) TableName() string { return "categories" }

func (r *categoryRecord) toDomain() domain.Category {
	category := domain.Category{ID: r.ID, Name: r.Name}

	if len(r.Keywords) > 0 {
		// Malformed keyword payloads degrade to an empty list.
		_ = json.Unmarshal(r.Keywords, &category.Keywords)
	}

	return category
}

func categoryToRecord(c *domain.Category) (*categoryRecord, error) {
	record := &categoryRecord{ID: c.ID, Name: c.Name}

	if len(c.Keywords) > 0 {
		raw, err := json.Marshal(c.Keywords)
		if err != nil {
			return nil, err
		}

		record.Keywords = datatypes.JSON(raw)
	}

	return record, nil
}

// userRecord is the persistence shape of a user.
type userRecord struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Email string `gorm:"not null;uniqueIndex;type:varchar(255)"`

	Favorites []*quoteRecord `gorm:"many2many:user_quotes"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() domain.User {
	return domain.User{ID: r.ID, Name: r.Name, Email: r.Email}
}
