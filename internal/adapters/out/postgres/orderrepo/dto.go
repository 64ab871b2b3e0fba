// Package orderrepo persists order aggregates and their line items.
// Orders live in the "orders" table and their line items in "order_details".
package orderrepo

import (
	"time"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the row shape of an order. Status and pay status are stored as
// their integer codes.
type OrderDTO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	Number          string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	CustomerID      int64           `gorm:"index;not null"`
	Status          int             `gorm:"index:idx_orders_status_order_time,priority:1;not null"`
	PayStatus       int             `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Remark          string          `gorm:"type:varchar(100)"`
	Consignee       string          `gorm:"type:varchar(50)"`
	Phone           string          `gorm:"type:varchar(20)"`
	Address         string          `gorm:"type:varchar(255)"`
	OrderTime       time.Time       `gorm:"index:idx_orders_status_order_time,priority:2;not null"`
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	CancelReason    string `gorm:"type:varchar(255)"`
	RejectionReason string `gorm:"type:varchar(255)"`
	DeliveryTime    *time.Time
	PaymentToken    string           `gorm:"type:varchar(255)"`
	Items           []OrderDetailDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderDetailDTO is the row shape of one line item.
type OrderDetailDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	OrderID    int64  `gorm:"index;not null"`
	Name       string `gorm:"type:varchar(32);not null"`
	Image      string `gorm:"type:varchar(255)"`
	DishID     *int64
	SetmealID  *int64
	DishFlavor string          `gorm:"type:varchar(50)"`
	Number     int             `gorm:"not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderDetailDTO) TableName() string {
	return "order_details"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	items := make([]OrderDetailDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, itemFromDomain(s.ID, item))
	}

	return OrderDTO{
		ID:              s.ID,
		Number:          s.Number.String(),
		CustomerID:      s.CustomerID,
		Status:          int(s.Status),
		PayStatus:       int(s.PayStatus),
		Amount:          s.Amount.Decimal(),
		Remark:          s.Remark,
		Consignee:       s.Address.Consignee(),
		Phone:           s.Address.Phone(),
		Address:         s.Address.Detail(),
		OrderTime:       s.OrderTime,
		CheckoutTime:    s.CheckoutTime,
		CancelTime:      s.CancelTime,
		CancelReason:    s.CancelReason,
		RejectionReason: s.RejectionReason,
		DeliveryTime:    s.DeliveryTime,
		PaymentToken:    s.PaymentToken,
		Items:           items,
	}
}

func itemFromDomain(orderID int64, item order.LineItem) OrderDetailDTO {
	product := item.Product()
	return OrderDetailDTO{
		ID:         item.ID(),
		OrderID:    orderID,
		Name:       item.Name(),
		Image:      product.Image,
		DishID:     product.DishID,
		SetmealID:  product.SetmealID,
		DishFlavor: product.Flavor,
		Number:     item.Quantity(),
		Amount:     item.UnitPrice().Decimal(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewDeliveryAddress(dto.Consignee, dto.Phone, dto.Address)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              dto.ID,
		Number:          number,
		CustomerID:      dto.CustomerID,
		Address:         address,
		Amount:          amount,
		Remark:          dto.Remark,
		OrderTime:       dto.OrderTime,
		CheckoutTime:    dto.CheckoutTime,
		CancelTime:      dto.CancelTime,
		CancelReason:    dto.CancelReason,
		RejectionReason: dto.RejectionReason,
		DeliveryTime:    dto.DeliveryTime,
		Status:          order.Status(dto.Status),
		PayStatus:       order.PayStatus(dto.PayStatus),
		PaymentToken:    dto.PaymentToken,
		Items:           items,
	})
}

func itemToDomain(dto OrderDetailDTO) (order.LineItem, error) {
	price, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.RestoreLineItem(dto.ID, dto.Name, dto.Number, price, cart.Product{
		DishID:    dto.DishID,
		SetmealID: dto.SetmealID,
		Flavor:    dto.DishFlavor,
		Image:     dto.Image,
	})
}
