package models

import "time"

type Invoice struct {
	Base           `bson:",inline"`
	InvoiceID      string    `bson:"invoice_id" json:"invoice_id"`
	OrderID        string    `bson:"order_id" json:"order_id"`
	PaymentMethod  string    `bson:"payment_method" json:"payment_method"`
	PaymentStatus  string    `bson:"payment_status" json:"payment_status"`
	PaymentDueDate time.Time `bson:"payment_due_date" json:"payment_due_date"`
}

func (i *Invoice) GetPublicID() string   { return i.InvoiceID }
func (i *Invoice) SetPublicID(id string) { i.InvoiceID = id }

type InvoiceUpdate struct {
	OrderID        *string    `bson:"order_id,omitempty" json:"order_id"`
	PaymentMethod  *string    `bson:"payment_method,omitempty" json:"payment_method" binding:"omitempty,min=1"`
	PaymentStatus  *string    `bson:"payment_status,omitempty" json:"payment_status" binding:"omitempty,min=1"`
	PaymentDueDate *time.Time `bson:"payment_due_date,omitempty" json:"payment_due_date" binding:"omitempty,notpastdate"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"-"`
}
