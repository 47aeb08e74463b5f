package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

var ErrOrderItemNotFound = errors.New("Order item not found.")

type OrderItemController struct {
	OrderItems *services.OrderItemService
	Foods      *services.FoodService
	Orders     *services.OrderService
	Hub        *kds.Hub
}

func NewOrderItemController(svc *services.Services, hub *kds.Hub) *OrderItemController {
	RegisterValidators()
	if hub == nil {
		hub = kds.Default()
	}
	return &OrderItemController{
		OrderItems: svc.OrderItems,
		Foods:      svc.Foods,
		Orders:     svc.Orders,
		Hub:        hub,
	}
}

type createOrderItemRequest struct {
	Quantity  int     `json:"quantity" binding:"required,min=1,max=100"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
	FoodID    string  `json:"food_id" binding:"required"`
	OrderID   string  `json:"order_id" binding:"required"`
}

func (ic *OrderItemController) GetAllOrderItems(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	total, err := ic.OrderItems.CountOrderItems(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items, err := ic.OrderItems.GetOrderItems(ctx, p.Skip(), p.PerPage, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of order items", listResponse("order_items", items, total, p))
}

func (ic *OrderItemController) GetOrderItemByID(c *gin.Context) {
	item, err := ic.OrderItems.GetOrderItem(c.Request.Context(), c.Param("order_item_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if item == nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderItemNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order item detail", item)
}

func (ic *OrderItemController) CreateOrderItem(c *gin.Context) {
	ctx := c.Request.Context()

	var req createOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	foodID, ok := ic.resolveFood(c, req.FoodID)
	if !ok {
		return
	}
	orderID, ok := ic.resolveOrder(c, req.OrderID)
	if !ok {
		return
	}

	item := models.OrderItem{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		FoodID:    foodID,
		OrderID:   orderID,
	}
	if _, err := ic.OrderItems.CreateOrderItem(ctx, &item); err != nil {
		respondServiceError(c, err)
		return
	}
	item.ComputeTotal()

	ic.Hub.Broadcast(kds.Message{Event: kds.EventOrderItemCreate, Data: item})
	utils.RespondJSON(c, http.StatusCreated, "Order item created successfully", item)
}

func (ic *OrderItemController) UpdateOrderItem(c *gin.Context) {
	ctx := c.Request.Context()

	existing, err := ic.OrderItems.GetOrderItem(ctx, c.Param("order_item_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderItemNotFound)
		return
	}

	var req models.OrderItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.FoodID != nil {
		foodID, ok := ic.resolveFood(c, *req.FoodID)
		if !ok {
			return
		}
		req.FoodID = &foodID
	}
	if req.OrderID != nil {
		orderID, ok := ic.resolveOrder(c, *req.OrderID)
		if !ok {
			return
		}
		req.OrderID = &orderID
	}

	if _, err := ic.OrderItems.UpdateOrderItem(ctx, existing.OrderItemID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	item, err := ic.OrderItems.GetOrderItem(ctx, existing.OrderItemID)
	if err != nil || item == nil {
		respondServiceError(c, err)
		return
	}

	ic.Hub.Broadcast(kds.Message{Event: kds.EventOrderItemUpdate, Data: item})
	utils.RespondJSON(c, http.StatusOK, "Order item updated successfully", item)
}

func (ic *OrderItemController) resolveFood(c *gin.Context, foodID string) (string, bool) {
	food, err := ic.Foods.GetFood(c.Request.Context(), foodID)
	if err != nil {
		respondServiceError(c, err)
		return "", false
	}
	if food == nil {
		utils.RespondError(c, http.StatusBadRequest, ErrFoodNotFound)
		return "", false
	}
	return food.FoodID, true
}

func (ic *OrderItemController) resolveOrder(c *gin.Context, orderID string) (string, bool) {
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
