package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-management/config"
	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/router"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")
	os.Exit(m.Run())
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TestEndToEndIntegration runs the main flow:
// signup -> login -> menu -> food -> table -> order -> items -> order detail -> invoice -> logout
func TestEndToEndIntegration(t *testing.T) {
	r := setupTestServer(t)

	// 1. Signup and login
	call(t, r, http.MethodPost, "/signup", "", map[string]string{
		"first_name": "Siti", "last_name": "Rahma", "email": "siti@example.com",
		"password": "rahasia1", "password_confirm": "rahasia1",
	}, http.StatusCreated, nil)

	var auth struct {
		Tokens utils.TokenPair `json:"tokens"`
	}
	call(t, r, http.MethodPost, "/login", "", map[string]string{
		"email": "siti@example.com", "password": "rahasia1",
	}, http.StatusOK, &auth)
	token := auth.Tokens.Access
	require.NotEmpty(t, token)

	// 2. Menu and food
	start := time.Now().UTC().Add(-time.Hour)
	var menu struct {
		MenuID string `json:"menu_id"`
	}
	call(t, r, http.MethodPost, "/menus", token, map[string]interface{}{
		"name": "Makan Siang", "category": "Lunch", "start_date": start, "end_date": start.Add(48 * time.Hour),
	}, http.StatusCreated, &menu)

	var food struct {
		FoodID string  `json:"food_id"`
		Price  float64 `json:"price"`
	}
	call(t, r, http.MethodPost, "/foods", token, map[string]interface{}{
		"name": "Rendang", "price": 45000, "menu_id": menu.MenuID,
	}, http.StatusCreated, &food)

	// 3. Table and order
	var table struct {
		TableID string `json:"table_id"`
	}
	call(t, r, http.MethodPost, "/tables", token, map[string]interface{}{
		"table_number": 5, "number_of_guests": 4,
	}, http.StatusCreated, &table)

	var order struct {
		OrderID string `json:"order_id"`
	}
	call(t, r, http.MethodPost, "/orders", token, map[string]interface{}{
		"table_id": table.TableID,
	}, http.StatusCreated, &order)

	// 4. Items
	for _, qty := range []int{2, 1} {
		call(t, r, http.MethodPost, "/order-items", token, map[string]interface{}{
			"quantity": qty, "unit_price": food.Price, "food_id": food.FoodID, "order_id": order.OrderID,
		}, http.StatusCreated, nil)
	}

	// 5. Order detail
	var detail struct {
		OrderID              string  `json:"order_id"`
		TableID              string  `json:"table_id"`
		TotalAmount          float64 `json:"total_amount"`
		TotalAmountFormatted string  `json:"total_amount_formatted"`
		OrderItems           []struct {
			TotalPrice float64 `json:"total_price"`
		} `json:"order_items"`
	}
	call(t, r, http.MethodGet, "/orders/"+order.OrderID, "", nil, http.StatusOK, &detail)
	assert.Equal(t, table.TableID, detail.TableID)
	assert.Len(t, detail.OrderItems, 2)
	assert.Equal(t, 135000.0, detail.TotalAmount)
	assert.Equal(t, "135,000.00", detail.TotalAmountFormatted)

	// 6. Invoice
	var invoice struct {
		InvoiceID     string `json:"invoice_id"`
		PaymentStatus string `json:"payment_status"`
	}
	call(t, r, http.MethodPost, "/invoices", token, map[string]interface{}{
		"order_id": order.OrderID, "payment_method": "QRIS", "payment_status": "PENDING",
		"payment_due_date": time.Now().UTC().Add(24 * time.Hour),
	}, http.StatusCreated, &invoice)
	call(t, r, http.MethodPatch, "/invoices/"+invoice.InvoiceID, token, map[string]interface{}{
		"payment_status": "PAID",
	}, http.StatusOK, &invoice)
	assert.Equal(t, "PAID", invoice.PaymentStatus)

	// 7. Logout revokes the access token
	call(t, r, http.MethodPost, "/logout", token, nil, http.StatusOK, nil)
	call(t, r, http.MethodPost, "/tables", token, map[string]interface{}{
		"table_number": 6, "number_of_guests": 2,
	}, http.StatusUnauthorized, nil)
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Store.Driver = database.DriverMemory
	cfg.DBDSN = "file:integration?mode=memory&cache=shared"
	require.NoError(t, cfg.Validate())

	store, err := database.Open(context.Background(), cfg.Store)
	require.NoError(t, err)

	db, err := config.InitDB(cfg)
	require.NoError(t, err)

	return router.SetupRouter(router.Deps{
		Services:  services.New(store, nil, nil),
		DB:        db,
		Blacklist: services.NewMemoryBlacklist(),
		Hub:       kds.NewHub(),
	})
}

func call(t *testing.T, r http.Handler, method, path, token string, body interface{}, wantStatus int, out interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, wantStatus, w.Code, "%s %s: %s", method, path, w.Body.String())

	if out != nil {
		var resp apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
}
