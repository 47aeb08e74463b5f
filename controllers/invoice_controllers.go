package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

var ErrInvoiceNotFound = errors.New("Invoice not found.")

type InvoiceController struct {
	Invoices *services.InvoiceService
	Orders   *services.OrderService
	Hub      *kds.Hub
}

func NewInvoiceController(svc *services.Services, hub *kds.Hub) *InvoiceController {
	RegisterValidators()
	if hub == nil {
		hub = kds.Default()
	}
	return &InvoiceController{Invoices: svc.Invoices, Orders: svc.Orders, Hub: hub}
}

type createInvoiceRequest struct {
	OrderID        string     `json:"order_id" binding:"required"`
	PaymentMethod  string     `json:"payment_method" binding:"required"`
	PaymentStatus  string     `json:"payment_status" binding:"required"`
	PaymentDueDate *time.Time `json:"payment_due_date" binding:"required,notpastdate"`
}

func (ic *InvoiceController) GetAllInvoices(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	total, err := ic.Invoices.CountInvoices(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	invoices, err := ic.Invoices.GetInvoices(ctx, p.Skip(), p.PerPage, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of invoices", listResponse("invoices", invoices, total, p))
}

func (ic *InvoiceController) GetInvoiceByID(c *gin.Context) {
	invoice, err := ic.Invoices.GetInvoice(c.Request.Context(), c.Param("invoice_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if invoice == nil {
		utils.RespondError(c, http.StatusNotFound, ErrInvoiceNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice detail", invoice)
}

func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderID, ok := ic.resolveOrder(c, req.OrderID)
	if !ok {
		return
	}

	invoice := models.Invoice{
		OrderID:        orderID,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  req.PaymentStatus,
		PaymentDueDate: req.PaymentDueDate.UTC(),
	}
	if _, err := ic.Invoices.CreateInvoice(ctx, &invoice); err != nil {
		respondServiceError(c, err)
		return
	}

	ic.Hub.Broadcast(kds.Message{Event: kds.EventInvoiceCreate, Data: invoice})
	utils.InfoLogger.WithField("invoice_id", invoice.InvoiceID).Info("Invoice created")
	utils.RespondJSON(c, http.StatusCreated, "Invoice created successfully", invoice)
}

func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	existing, err := ic.Invoices.GetInvoice(ctx, c.Param("invoice_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, ErrInvoiceNotFound)
		return
	}

	var req models.InvoiceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.OrderID != nil {
		orderID, ok := ic.resolveOrder(c, *req.OrderID)
		if !ok {
			return
		}
		req.OrderID = &orderID
	}

	if _, err := ic.Invoices.UpdateInvoice(ctx, existing.InvoiceID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	invoice, err := ic.Invoices.GetInvoice(ctx, existing.InvoiceID)
	if err != nil || invoice == nil {
		respondServiceError(c, err)
		return
	}

	ic.Hub.Broadcast(kds.Message{Event: kds.EventInvoiceUpdate, Data: invoice})
	utils.RespondJSON(c, http.StatusOK, "Invoice updated successfully", invoice)
}

func (ic *InvoiceController) resolveOrder(c *gin.Context, orderID string) (string, bool) {
	order, err := ic.Orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return "", false
	}
	if order == nil {
		utils.RespondError(c, http.StatusBadRequest, ErrOrderNotFound)
		return "", false
	}
	return order.OrderID, true
}
