// Package addressrepo reads saved delivery addresses from the "address_book" table.
package addressrepo

import (
	"strings"

	"takeout/internal/core/domain/model/kernel"
)

// AddressBookDTO is one saved address. The engine only reads it; the
// region columns are folded into the address detail on read.
type AddressBookDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	UserID       int64  `gorm:"index;not null"`
	Consignee    string `gorm:"type:varchar(50)"`
	Phone        string `gorm:"type:varchar(11);not null"`
	ProvinceName string `gorm:"type:varchar(32)"`
	CityName     string `gorm:"type:varchar(32)"`
	DistrictName string `gorm:"type:varchar(32)"`
	Detail       string `gorm:"type:varchar(200);not null"`
	Label        string `gorm:"type:varchar(100)"`
	IsDefault    bool   `gorm:"not null;default:false"`
}

func (AddressBookDTO) TableName() string {
	return "address_book"
}

func toDomain(dto AddressBookDTO) (kernel.DeliveryAddress, error) {
	return kernel.NewDeliveryAddress(dto.Consignee, dto.Phone, fullDetail(dto))
}

func fullDetail(dto AddressBookDTO) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{dto.ProvinceName, dto.CityName, dto.DistrictName, dto.Detail} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
