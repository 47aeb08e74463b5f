package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-management/controllers"
	"github.com/yeremiapane/restaurant-management/models"
)

func TestInvoiceCRUD(t *testing.T) {
	e := newAuthedEnv(t)
	order := e.createOrder("")
	due := time.Now().UTC().Add(72 * time.Hour)

	w := e.do(http.MethodPost, "/invoices", map[string]interface{}{
		"order_id":         order.OrderID,
		"payment_method":   "CASH",
		"payment_status":   "PENDING",
		"payment_due_date": due,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var invoice models.Invoice
	decode(t, w, &invoice)
	assert.Regexp(t, `^invoice_[0-9a-f]{24}$`, invoice.InvoiceID)
	assert.Equal(t, order.OrderID, invoice.OrderID)

	w = e.do(http.MethodPatch, "/invoices/"+invoice.InvoiceID, map[string]interface{}{"payment_status": "PAID"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got models.Invoice
	decode(t, w, &got)
	assert.Equal(t, "PAID", got.PaymentStatus)
	assert.Equal(t, "CASH", got.PaymentMethod)

	w = e.do(http.MethodGet, "/invoices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list listData[models.Invoice]
	decode(t, w, &list)
	assert.EqualValues(t, 1, list.TotalCount)
	assert.Len(t, list.Invoices, 1)

	w = e.do(http.MethodGet, "/invoices/invoice_000000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateInvoice_Validation(t *testing.T) {
	e := newAuthedEnv(t)
	order := e.createOrder("")
	due := time.Now().UTC().Add(24 * time.Hour)

	w := e.do(http.MethodPost, "/invoices", map[string]interface{}{
		"order_id": "order_000000000000000000000000", "payment_method": "CARD", "payment_status": "PENDING", "payment_due_date": due,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, controllers.ErrOrderNotFound.Error(), decode(t, w, nil).Message)

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
	}{
		{"due yesterday", map[string]interface{}{
			"order_id": order.OrderID, "payment_method": "CARD", "payment_status": "PENDING",
			"payment_due_date": time.Now().UTC().Add(-48 * time.Hour),
		}, http.StatusBadRequest},
		{"missing method", map[string]interface{}{
			"order_id": order.OrderID, "payment_status": "PENDING", "payment_due_date": due,
		}, http.StatusBadRequest},
		{"missing due date", map[string]interface{}{
			"order_id": order.OrderID, "payment_method": "CARD", "payment_status": "PENDING",
		}, http.StatusBadRequest},
		{"due today", map[string]interface{}{
			"order_id": order.OrderID, "payment_method": "CARD", "payment_status": "PENDING",
			"payment_due_date": time.Now().UTC(),
		}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(http.MethodPost, "/invoices", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestUpdateInvoice_Validation(t *testing.T) {
	e := newAuthedEnv(t)
	order := e.createOrder("")
	w := e.do(http.MethodPost, "/invoices", map[string]interface{}{
		"order_id": order.OrderID, "payment_method": "CARD", "payment_status": "PENDING",
		"payment_due_date": time.Now().UTC().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var invoice models.Invoice
	decode(t, w, &invoice)

	w = e.do(http.MethodPatch, "/invoices/"+invoice.InvoiceID, map[string]interface{}{
		"payment_due_date": time.Now().UTC().Add(-48 * time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPatch, "/invoices/"+invoice.InvoiceID, map[string]interface{}{"order_id": "order_000000000000000000000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
