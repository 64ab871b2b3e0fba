// Package cartrepo stores shopping cart entries in the "shopping_cart" table.
package cartrepo

import (
	"time"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CartEntryDTO is one row of a customer's cart.
type CartEntryDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	UserID     int64  `gorm:"index;not null"`
	Name       string `gorm:"type:varchar(32);not null"`
	Image      string `gorm:"type:varchar(255)"`
	DishID     *int64
	SetmealID  *int64
	DishFlavor string          `gorm:"type:varchar(50)"`
	Number     int             `gorm:"not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreateTime time.Time
}

func (CartEntryDTO) TableName() string {
	return "shopping_cart"
}

func fromDomain(customerID int64, entry cart.Entry, now time.Time) CartEntryDTO {
	product := entry.Product()
	return CartEntryDTO{
		UserID:     customerID,
		Name:       entry.Name(),
		Image:      product.Image,
		DishID:     product.DishID,
		SetmealID:  product.SetmealID,
		DishFlavor: product.Flavor,
		Number:     entry.Quantity(),
		Amount:     entry.UnitPrice().Decimal(),
		CreateTime: now,
	}
}

func toDomain(dto CartEntryDTO) (cart.Entry, error) {
	price, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return cart.Entry{}, err
	}

	return cart.NewEntry(dto.Name, dto.Number, price, cart.Product{
		DishID:    dto.DishID,
		SetmealID: dto.SetmealID,
		Flavor:    dto.DishFlavor,
		Image:     dto.Image,
	})
}
