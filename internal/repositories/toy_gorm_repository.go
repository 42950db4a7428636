package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"legolelo/internal/models"

	"gorm.io/gorm"
)

// toyRecord is the relational row of a toy. The id keeps the ObjectID hex form
// so identifiers look the same whichever backend serves them.
type toyRecord struct {
	ID          string    `gorm:"primaryKey;type:varchar(24)"`
	ToyName     string    `gorm:"column:toy_name"`
	SubCategory string    `gorm:"column:sub_category;index"`
	Email       string    `gorm:"column:email;index"`
	Picture     string    `gorm:"column:picture"`
	Details     string    `gorm:"column:details"`
	Quantity    int       `gorm:"column:quantity"`
	Ratings     float64   `gorm:"column:ratings"`
	Price       float64   `gorm:"column:price;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (toyRecord) TableName() string { return "toys" }

func newToyRecord(t *models.Toy) toyRecord {
	return toyRecord{
		ID:          t.ID.Hex(),
		ToyName:     t.ToyName,
		SubCategory: t.SubCategory,
		Email:       t.Email,
		Picture:     t.Picture,
		Details:     t.Details,
		Quantity:    t.Quantity,
		Ratings:     t.Ratings,
		Price:       t.Price,
	}
}

func (r toyRecord) toModel() (models.Toy, error) {
	id, err := models.ParseToyID(r.ID)
	if err != nil {
		return models.Toy{}, fmt.Errorf("corrupt toy id %q: %w", r.ID, err)
	}
	return models.Toy{
		ID:          id,
		ToyName:     r.ToyName,
		SubCategory: r.SubCategory,
		Email:       r.Email,
		Picture:     r.Picture,
		Details:     r.Details,
		Quantity:    r.Quantity,
		Ratings:     r.Ratings,
		Price:       r.Price,
	}, nil
}

// GORMToyRepository is a GORM implementation of ToyRepository.
// It supports the postgres and sqlite dialects.
type GORMToyRepository struct {
	db *gorm.DB
}

// NewGORMToyRepository creates a new instance of GORMToyRepository.
func NewGORMToyRepository(db *gorm.DB) *GORMToyRepository {
	return &GORMToyRepository{
		db: db,
	}
}

// Migrate creates or updates the toys table.
func (r *GORMToyRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&toyRecord{}); err != nil {
		return fmt.Errorf("failed to migrate toys table: %w", err)
	}
	return nil
}

// containsClause builds a literal, case-sensitive substring predicate.
// LIKE is avoided: it treats % and _ as wildcards and is case-insensitive on sqlite.
func (r *GORMToyRepository) containsClause(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}

// Find retrieves the toys matching the query.
func (r *GORMToyRepository) Find(ctx context.Context, q ToyQuery) ([]models.Toy, error) {
	if q.Limit != nil && *q.Limit == 0 {
		return []models.Toy{}, nil
	}

	tx := r.db.WithContext(ctx).Model(&toyRecord{})
	if q.Filter.NameContains != "" {
		tx = tx.Where(r.containsClause("toy_name"), q.Filter.NameContains)
	}
	if q.Filter.SubCategoryContains != "" {
		tx = tx.Where(r.containsClause("sub_category"), q.Filter.SubCategoryContains)
	}
	if q.Filter.Email != "" {
		tx = tx.Where("email = ?", q.Filter.Email)
	}
	switch q.Sort {
	case SortPriceAscending:
		tx = tx.Order("price ASC")
	case SortPriceDescending:
		tx = tx.Order("price DESC")
	}
	if q.Limit != nil {
		tx = tx.Limit(int(*q.Limit))
	}

	var records []toyRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find toys: %w", classifyGORMError(err))
	}

	toys := make([]models.Toy, 0, len(records))
	for _, rec := range records {
		toy, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		toys = append(toys, toy)
	}
	return toys, nil
}

// FindByID retrieves a single toy by its ID.
func (r *GORMToyRepository) FindByID(ctx context.Context, id models.ToyID) (*models.Toy, error) {
	var records []toyRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id.Hex()).Limit(1).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get toy by ID %s: %w", id.Hex(), classifyGORMError(err))
	}
	if len(records) == 0 {
		return nil, nil
	}
	toy, err := records[0].toModel()
	if err != nil {
		return nil, err
	}
	return &toy, nil
}

// Create inserts a new toy and assigns its ID.
func (r *GORMToyRepository) Create(ctx context.Context, toy *models.Toy) (models.InsertResult, error) {
	toy.ID = models.NewToyID()
	rec := newToyRecord(toy)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.InsertResult{}, fmt.Errorf("failed to create toy: %w", classifyGORMError(err))
	}
	return models.InsertResult{Acknowledged: true, InsertedID: toy.ID}, nil
}

// Update overwrites the mutable fields of a toy. The read and the write share a
// transaction so the modified count reflects the values actually replaced.
func (r *GORMToyRepository) Update(ctx context.Context, id models.ToyID, fields models.ToyFields) (models.UpdateResult, error) {
	res := models.UpdateResult{Acknowledged: true}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var records []toyRecord
		if err := tx.Where("id = ?", id.Hex()).Limit(1).Find(&records).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		res.MatchedCount = 1

		toy, err := records[0].toModel()
		if err != nil {
			return err
		}
		if !fields.Apply(&toy) {
			return nil
		}

		err = tx.Model(&toyRecord{}).Where("id = ?", id.Hex()).Updates(map[string]interface{}{
			"picture":  fields.Picture,
			"toy_name": fields.ToyName,
			"details":  fields.Details,
			"quantity": fields.Quantity,
			"ratings":  fields.Ratings,
			"price":    fields.Price,
		}).Error
		if err != nil {
			return err
		}
		res.ModifiedCount = 1
		return nil
	})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to update toy %s: %w", id.Hex(), classifyGORMError(err))
	}
	return res, nil
}

// Delete removes a toy by its ID. Rows are removed for good; there is no soft delete.
func (r *GORMToyRepository) Delete(ctx context.Context, id models.ToyID) (models.DeleteResult, error) {
	res := r.db.WithContext(ctx).Delete(&toyRecord{}, "id = ?", id.Hex())
	if res.Error != nil {
		return models.DeleteResult{}, fmt.Errorf("failed to delete toy %s: %w", id.Hex(), classifyGORMError(res.Error))
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

// Ping checks the underlying database connection.
func (r *GORMToyRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func classifyGORMError(err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
