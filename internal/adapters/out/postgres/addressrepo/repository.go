package addressrepo

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressBook implements ports.AddressBook using GORM.
type GormAddressBook struct {
	db *gorm.DB
}

func NewGormAddressBook(db *gorm.DB) *GormAddressBook {
	return &GormAddressBook{db: db}
}

// Get returns the address only when customerID owns it. Someone else's
// address is reported as missing.
func (r *GormAddressBook) Get(ctx context.Context, customerID, addressID int64) (kernel.DeliveryAddress, error) {
	var dto AddressBookDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND user_id = ?", addressID, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.DeliveryAddress{}, errs.NewObjectNotFoundError("addressBookId", addressID)
		}
		return kernel.DeliveryAddress{}, err
	}

	return toDomain(dto)
}
