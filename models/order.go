package models

import (
	"math"
	"time"

	"github.com/yeremiapane/restaurant-management/utils"
)

type Order struct {
	Base      `bson:",inline"`
	OrderID   string    `bson:"order_id" json:"order_id"`
	OrderDate time.Time `bson:"order_date" json:"order_date"`
	TableID   *string   `bson:"table_id" json:"table_id"`
}

func (o *Order) GetPublicID() string   { return o.OrderID }
func (o *Order) SetPublicID(id string) { o.OrderID = id }

type OrderUpdate struct {
	OrderDate *time.Time `bson:"order_date,omitempty" json:"order_date" binding:"omitempty,notfuture"`
	TableID   *string    `bson:"table_id,omitempty" json:"table_id"`
	UpdatedAt time.Time  `bson:"updated_at" json:"-"`
}

// OrderDetail is an order together with its items, as returned by the order detail endpoint.
type OrderDetail struct {
	Order
	OrderItems           []OrderItem `json:"order_items"`
	TotalAmount          float64     `json:"total_amount"`
	TotalAmountFormatted string      `json:"total_amount_formatted"`
}

// NewOrderDetail sums the item totals of order.
func NewOrderDetail(order Order, items []OrderItem) OrderDetail {
	var total float64
	for i := range items {
		total += items[i].ComputeTotal()
	}
	total = math.Round(total*100) / 100
	return OrderDetail{
		Order:                order,
		OrderItems:           items,
		TotalAmount:          total,
		TotalAmountFormatted: utils.FormatCurrency(total),
	}
}
