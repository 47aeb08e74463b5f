package models

import (
	"math"
	"time"
)

type OrderItem struct {
	Base        `bson:",inline"`
	OrderItemID string  `bson:"order_item_id" json:"order_item_id"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	FoodID      string  `bson:"food_id" json:"food_id"`
	OrderID     string  `bson:"order_id" json:"order_id"`

	// TotalPrice is derived on every read and never written to the store.
	TotalPrice float64 `bson:"-" json:"total_price"`
}

func (i *OrderItem) GetPublicID() string   { return i.OrderItemID }
func (i *OrderItem) SetPublicID(id string) { i.OrderItemID = id }

// ComputeTotal sets TotalPrice to quantity * unit price, rounded to cents.
func (i *OrderItem) ComputeTotal() float64 {
	i.TotalPrice = math.Round(float64(i.Quantity)*i.UnitPrice*100) / 100
	return i.TotalPrice
}

type OrderItemUpdate struct {
	Quantity  *int      `bson:"quantity,omitempty" json:"quantity" binding:"omitempty,min=1,max=100"`
	UnitPrice *float64  `bson:"unit_price,omitempty" json:"unit_price" binding:"omitempty,gt=0"`
	FoodID    *string   `bson:"food_id,omitempty" json:"food_id"`
	OrderID   *string   `bson:"order_id,omitempty" json:"order_id"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
