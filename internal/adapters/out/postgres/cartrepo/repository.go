package cartrepo

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/cart"

	"gorm.io/gorm"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormCartRepository creates a cart repository. now stamps inserted rows.
func NewGormCartRepository(db *gorm.DB, now func() time.Time) *GormCartRepository {
	return &GormCartRepository{
		db:  db,
		now: now,
	}
}

// List returns the customer's entries in insertion order.
func (r *GormCartRepository) List(ctx context.Context, customerID int64) ([]cart.Entry, error) {
	var dtos []CartEntryDTO
	if err := r.db.WithContext(ctx).Where("user_id = ?", customerID).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]cart.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ClearAll deletes every entry of the customer's cart.
func (r *GormCartRepository) ClearAll(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", customerID).Delete(&CartEntryDTO{}).Error
}

// InsertAll appends entries in one batch insert.
func (r *GormCartRepository) InsertAll(ctx context.Context, customerID int64, entries []cart.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	now := r.now()
	dtos := make([]CartEntryDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(customerID, entry, now))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
