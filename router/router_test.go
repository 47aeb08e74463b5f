package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/metrics"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

type testRouter struct {
	engine *gin.Engine
	hub    *kds.Hub
	token  string
}

func setupTestRouter(t *testing.T) *testRouter {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	reg := prometheus.NewRegistry()
	hub := kds.NewHub()
	r := SetupRouter(Deps{
		Services:       services.New(database.NewMemoryStore(), metrics.NewStoreMetricsWithRegisterer(reg), nil),
		DB:             db,
		Hub:            hub,
		CORSOrigin:     "https://pos.example.com",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	user := models.User{FirstName: "Kitchen", LastName: "Display", Email: "kds@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	tokens, err := utils.GenerateTokenPair(user.UserID, user.Email)
	require.NoError(t, err)

	return &testRouter{engine: r, hub: hub, token: tokens.Access}
}

func TestPing(t *testing.T) {
	tr := setupTestRouter(t)

	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "https://pos.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	tr := setupTestRouter(t)

	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/menus", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetricsExposeStoreOperations(t *testing.T) {
	tr := setupTestRouter(t)

	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	tr.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `restaurant_store_operations_total{collection="menu",operation="count",result="ok"} 1`)
}

func TestWebSocket_RequiresToken(t *testing.T) {
	tr := setupTestRouter(t)

	for _, path := range []string{"/ws", "/ws?token=garbage"} {
		w := httptest.NewRecorder()
		tr.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestWebSocket_ReceivesEntityEvents(t *testing.T) {
	tr := setupTestRouter(t)
	srv := httptest.NewServer(tr.engine)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + tr.token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return tr.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	payload, err := json.Marshal(map[string]interface{}{"table_number": 7, "number_of_guests": 2})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/tables", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tr.token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Event string       `json:"event"`
		Data  models.Table `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, kds.EventTableCreate, msg.Event)
	assert.Equal(t, 7, msg.Data.TableNumber)
}
