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

var ErrOrderNotFound = errors.New("Order not found.")

type OrderController struct {
	Orders     *services.OrderService
	OrderItems *services.OrderItemService
	Tables     *services.TableService
	Hub        *kds.Hub
}

func NewOrderController(svc *services.Services, hub *kds.Hub) *OrderController {
	RegisterValidators()
	if hub == nil {
		hub = kds.Default()
	}
	return &OrderController{
		Orders:     svc.Orders,
		OrderItems: svc.OrderItems,
		Tables:     svc.Tables,
		Hub:        hub,
	}
}

type createOrderRequest struct {
	OrderDate *time.Time `json:"order_date" binding:"omitempty,notfuture"`
	TableID   *string    `json:"table_id"`
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	total, err := oc.Orders.CountOrders(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	orders, err := oc.Orders.GetOrders(ctx, p.Skip(), p.PerPage, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", listResponse("orders", orders, total, p))
}

// GetOrderByID -> order beserta items dan total
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	ctx := c.Request.Context()

	order, err := oc.Orders.GetOrder(ctx, c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order == nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	items, err := oc.OrderItems.GetOrderItemsByOrder(ctx, order.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", models.NewOrderDetail(*order, items))
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order := models.Order{OrderDate: now()}
	if req.OrderDate != nil {
		order.OrderDate = req.OrderDate.UTC()
	}

	tableID, ok := oc.resolveTable(c, req.TableID)
	if !ok {
		return
	}
	order.TableID = tableID

	if _, err := oc.Orders.CreateOrder(ctx, &order); err != nil {
		respondServiceError(c, err)
		return
	}

	oc.Hub.Broadcast(kds.Message{Event: kds.EventOrderCreate, Data: order})
	utils.InfoLogger.WithField("order_id", order.OrderID).Info("Order created")
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

func (oc *OrderController) UpdateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	existing, err := oc.Orders.GetOrder(ctx, c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	var req models.OrderUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.TableID != nil {
		tableID, ok := oc.resolveTable(c, req.TableID)
		if !ok {
			return
		}
		// an empty table_id leaves the stored reference alone
		req.TableID = tableID
	}

	if _, err := oc.Orders.UpdateOrder(ctx, existing.OrderID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := oc.Orders.GetOrder(ctx, existing.OrderID)
	if err != nil || order == nil {
		respondServiceError(c, err)
		return
	}

	oc.Hub.Broadcast(kds.Message{Event: kds.EventOrderUpdate, Data: order})
	utils.RespondJSON(c, http.StatusOK, "Order updated successfully", order)
}

// resolveTable checks an optional table reference. It writes the error
// response itself and reports false when the request must stop.
func (oc *OrderController) resolveTable(c *gin.Context, tableID *string) (*string, bool) {
	if tableID == nil || *tableID == "" {
		return nil, true
	}
	table, err := oc.Tables.GetTable(c.Request.Context(), *tableID)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	if table == nil {
		utils.RespondError(c, http.StatusBadRequest, ErrTableNotFound)
		return nil, false
	}
	return &table.TableID, true
}
