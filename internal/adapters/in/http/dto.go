package http

import (
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

type submitOrderRequest struct {
	AddressBookID int64           `json:"addressBookId"`
	Amount        decimal.Decimal `json:"amount"`
	Remark        string          `json:"remark"`
}

type submitOrderResponse struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	OrderAmount string    `json:"orderAmount"`
	OrderTime   time.Time `json:"orderTime"`
}

func newSubmitOrderResponse(r commands.SubmitOrderResult) submitOrderResponse {
	return submitOrderResponse{
		ID:          r.ID,
		OrderNumber: r.Number.String(),
		OrderAmount: r.Amount.String(),
		OrderTime:   r.OrderTime,
	}
}

type paymentRequest struct {
	OrderNumber string `json:"orderNumber"`
}

type paymentResponse struct {
	OrderID      int64     `json:"orderId"`
	PaymentToken string    `json:"paymentToken"`
	CheckoutTime time.Time `json:"checkoutTime"`
}

type confirmRequest struct {
	ID int64 `json:"id"`
}

type rejectionRequest struct {
	ID              int64  `json:"id"`
	RejectionReason string `json:"rejectionReason"`
}

type cancelRequest struct {
	ID           int64  `json:"id"`
	CancelReason string `json:"cancelReason"`
}

type reorderResponse struct {
	Inserted int `json:"inserted"`
}

type statisticsResponse struct {
	ToBeConfirmed      int64 `json:"toBeConfirmed"`
	Confirmed          int64 `json:"confirmed"`
	DeliveryInProgress int64 `json:"deliveryInProgress"`
}

type orderDetailResponse struct {
	ID              int64             `json:"id"`
	Number          string            `json:"number"`
	UserID          int64             `json:"userId"`
	Status          int               `json:"status"`
	StatusName      string            `json:"statusName"`
	PayStatus       int               `json:"payStatus"`
	Amount          string            `json:"amount"`
	Remark          string            `json:"remark,omitempty"`
	Consignee       string            `json:"consignee"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	OrderTime       time.Time         `json:"orderTime"`
	CheckoutTime    *time.Time        `json:"checkoutTime,omitempty"`
	CancelTime      *time.Time        `json:"cancelTime,omitempty"`
	CancelReason    string            `json:"cancelReason,omitempty"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
	DeliveryTime    *time.Time        `json:"deliveryTime,omitempty"`
	OrderDishes     string            `json:"orderDishes"`
	Items           []orderDetailItem `json:"orderDetailList"`
}

type orderDetailItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	DishID     *int64 `json:"dishId,omitempty"`
	SetmealID  *int64 `json:"setmealId,omitempty"`
	DishFlavor string `json:"dishFlavor,omitempty"`
	Number     int    `json:"number"`
	Amount     string `json:"amount"`
}

func newOrderDetailResponse(d queries.OrderDetailResponse) orderDetailResponse {
	items := make([]orderDetailItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, orderDetailItem{
			ID:         item.ID,
			Name:       item.Name,
			Image:      item.Image,
			DishID:     item.DishID,
			SetmealID:  item.SetmealID,
			DishFlavor: item.Flavor,
			Number:     item.Quantity,
			Amount:     item.UnitPrice.StringFixed(2),
		})
	}

	return orderDetailResponse{
		ID:              d.ID,
		Number:          d.Number,
		UserID:          d.CustomerID,
		Status:          int(d.Status),
		StatusName:      d.Status.String(),
		PayStatus:       int(d.PayStatus),
		Amount:          d.Amount.StringFixed(2),
		Remark:          d.Remark,
		Consignee:       d.Consignee,
		Phone:           d.Phone,
		Address:         d.Address,
		OrderTime:       d.OrderTime,
		CheckoutTime:    d.CheckoutTime,
		CancelTime:      d.CancelTime,
		CancelReason:    d.CancelReason,
		RejectionReason: d.RejectionReason,
		DeliveryTime:    d.DeliveryTime,
		OrderDishes:     d.Summary,
		Items:           items,
	}
}
