package queries

import (
	"context"
	"fmt"
	"strings"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

const orderDetailSQL = `
	SELECT
		id,
		number,
		customer_id,
		status,
		pay_status,
		amount,
		remark,
		consignee,
		phone,
		address,
		order_time,
		checkout_time,
		cancel_time,
		cancel_reason,
		rejection_reason,
		delivery_time
	FROM orders
	WHERE id = ?`

const orderItemsSQL = `
	SELECT
		id,
		name,
		image,
		dish_id,
		setmeal_id,
		dish_flavor,
		number,
		amount
	FROM order_details
	WHERE order_id = ?
	ORDER BY id`

// GetOrderDetailQueryHandler reads an order and its line items.
// A customer-scoped query for someone else's order reports not found.
type GetOrderDetailQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailQueryHandler(db *gorm.DB) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{db: db}
}

func (h GetOrderDetailQueryHandler) Handle(ctx context.Context, query GetOrderDetailQuery) (OrderDetailResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderDetailResponse{}, err
	}

	detail, err := h.readOrder(ctx, query)
	if err != nil {
		return OrderDetailResponse{}, err
	}

	items, err := h.readItems(ctx, detail.ID)
	if err != nil {
		return OrderDetailResponse{}, err
	}
	detail.Items = items
	detail.Summary = summarize(items)

	return detail, nil
}

func (h GetOrderDetailQueryHandler) readOrder(ctx context.Context, query GetOrderDetailQuery) (OrderDetailResponse, error) {
	stmt := orderDetailSQL
	args := []any{query.OrderID()}
	if customerID := query.CustomerID(); customerID != nil {
		stmt += " AND customer_id = ?"
		args = append(args, *customerID)
	}

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return OrderDetailResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderDetailResponse{}, err
		}
		return OrderDetailResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}

	var (
		d                   OrderDetailResponse
		status, payStatus   int
		remark, cancel, rej *string
	)
	err = rows.Scan(
		&d.ID,
		&d.Number,
		&d.CustomerID,
		&status,
		&payStatus,
		&d.Amount,
		&remark,
		&d.Consignee,
		&d.Phone,
		&d.Address,
		&d.OrderTime,
		&d.CheckoutTime,
		&d.CancelTime,
		&cancel,
		&rej,
		&d.DeliveryTime,
	)
	if err != nil {
		return OrderDetailResponse{}, err
	}

	d.Status = order.Status(status)
	d.PayStatus = order.PayStatus(payStatus)
	d.Remark = deref(remark)
	d.CancelReason = deref(cancel)
	d.RejectionReason = deref(rej)

	return d, rows.Err()
}

func (h GetOrderDetailQueryHandler) readItems(ctx context.Context, orderID int64) ([]OrderDetailItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(orderItemsSQL, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderDetailItem, 0)
	for rows.Next() {
		var (
			item          OrderDetailItem
			image, flavor *string
		)
		err = rows.Scan(
			&item.ID,
			&item.Name,
			&image,
			&item.DishID,
			&item.SetmealID,
			&flavor,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, err
		}
		item.Image = deref(image)
		item.Flavor = deref(flavor)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func summarize(items []OrderDetailItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s*%d;", item.Name, item.Quantity)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
