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

func TestCreateOrder(t *testing.T) {
	e := newAuthedEnv(t)
	table := e.createTable(1, 4)

	before := time.Now().UTC().Add(-time.Second)
	order := e.createOrder(table.TableID)
	assert.Regexp(t, `^order_[0-9a-f]{24}$`, order.OrderID)
	require.NotNil(t, order.TableID)
	assert.Equal(t, table.TableID, *order.TableID)
	assert.True(t, order.OrderDate.After(before), "order_date defaults to now")

	walkIn := e.createOrder("")
	assert.Nil(t, walkIn.TableID)

	w := e.do(http.MethodPost, "/orders", map[string]interface{}{"table_id": ""})
	require.Equal(t, http.StatusCreated, w.Code)
	var empty models.Order
	decode(t, w, &empty)
	assert.Nil(t, empty.TableID)
}

func TestCreateOrder_Validation(t *testing.T) {
	e := newAuthedEnv(t)

	w := e.do(http.MethodPost, "/orders", map[string]interface{}{"table_id": "table_000000000000000000000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, controllers.ErrTableNotFound.Error(), decode(t, w, nil).Message)

	w = e.do(http.MethodPost, "/orders", map[string]interface{}{"order_date": time.Now().UTC().Add(time.Hour)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	past := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	w = e.do(http.MethodPost, "/orders", map[string]interface{}{"order_date": past})
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	decode(t, w, &order)
	assert.True(t, past.Equal(order.OrderDate))
}

func TestUpdateOrder(t *testing.T) {
	e := newAuthedEnv(t)
	first := e.createTable(1, 2)
	second := e.createTable(2, 2)
	order := e.createOrder(first.TableID)

	w := e.do(http.MethodPatch, "/orders/"+order.OrderID, map[string]interface{}{"table_id": second.TableID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got models.Order
	decode(t, w, &got)
	require.NotNil(t, got.TableID)
	assert.Equal(t, second.TableID, *got.TableID)

	w = e.do(http.MethodPatch, "/orders/"+order.OrderID, map[string]interface{}{"table_id": "table_000000000000000000000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPatch, "/orders/"+order.OrderID, map[string]interface{}{"order_date": time.Now().UTC().Add(time.Hour)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPut, "/orders/order_000000000000000000000000", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderByID_IncludesItemsAndTotal(t *testing.T) {
	e := newAuthedEnv(t)
	menu := e.createMenu("Dinner")
	food := e.createFood(menu.MenuID, 12.5)
	order := e.createOrder("")
	other := e.createOrder("")

	e.createOrderItem(food.FoodID, order.OrderID, 2, 12.5)
	e.createOrderItem(food.FoodID, order.OrderID, 3, 1000.333)
	e.createOrderItem(food.FoodID, other.OrderID, 1, 99)

	w := e.do(http.MethodGet, "/orders/"+order.OrderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail models.OrderDetail
	decode(t, w, &detail)
	assert.Equal(t, order.OrderID, detail.OrderID)
	require.Len(t, detail.OrderItems, 2)
	// newest first
	assert.Equal(t, 3000.99, detail.OrderItems[0].TotalPrice)
	assert.Equal(t, 25.0, detail.OrderItems[1].TotalPrice)
	assert.Equal(t, 3025.99, detail.TotalAmount)
	assert.Equal(t, "3,025.99", detail.TotalAmountFormatted)

	w = e.do(http.MethodGet, "/orders/"+other.OrderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &detail)
	assert.Len(t, detail.OrderItems, 1)
	assert.Equal(t, 99.0, detail.TotalAmount)

	w = e.do(http.MethodGet, "/orders/order_000000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list listData[models.Order]
	decode(t, w, &list)
	assert.EqualValues(t, 2, list.TotalCount)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, other.OrderID, list.Orders[0].OrderID)
}
