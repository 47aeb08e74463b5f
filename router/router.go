package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/restaurant-management/controllers"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/middlewares"
	"github.com/yeremiapane/restaurant-management/services"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Services  *services.Services
	DB        *gorm.DB
	Blacklist services.TokenBlacklist
	Hub       *kds.Hub

	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int

	// MetricsHandler serves /metrics. Defaults to the global prometheus registry.
	MetricsHandler http.Handler
}

func SetupRouter(deps Deps) *gin.Engine {
	if deps.Hub == nil {
		deps.Hub = kds.Default()
	}
	if deps.Blacklist == nil {
		deps.Blacklist = services.NewMemoryBlacklist()
	}
	if deps.MetricsHandler == nil {
		deps.MetricsHandler = promhttp.Handler()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	if deps.RateLimitRPS > 0 && deps.RateLimitBurst > 0 {
		r.Use(middlewares.NewRateLimiter(rate.Limit(deps.RateLimitRPS), deps.RateLimitBurst).RateLimit())
	}

	userCtrl := controllers.NewUserController(deps.DB, deps.Blacklist)
	menuCtrl := controllers.NewMenuController(deps.Services, deps.Hub)
	foodCtrl := controllers.NewFoodController(deps.Services, deps.Hub)
	tableCtrl := controllers.NewTableController(deps.Services, deps.Hub)
	orderCtrl := controllers.NewOrderController(deps.Services, deps.Hub)
	itemCtrl := controllers.NewOrderItemController(deps.Services, deps.Hub)
	invoiceCtrl := controllers.NewInvoiceController(deps.Services, deps.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(deps.Blacklist), controllers.KDSHandler(deps.Hub))

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/signup", userCtrl.Signup)
		public.POST("/login", userCtrl.Login)
	}
	r.POST("/token/refresh", userCtrl.RefreshToken)

	r.GET("/users", userCtrl.GetAllUsers)
	r.GET("/users/:user_id", userCtrl.GetUser)

	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	r.GET("/foods", foodCtrl.GetAllFoods)
	r.GET("/foods/:food_id", foodCtrl.GetFoodByID)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/order-items", itemCtrl.GetAllOrderItems)
	r.GET("/order-items/:order_item_id", itemCtrl.GetOrderItemByID)
	r.GET("/invoices", invoiceCtrl.GetAllInvoices)
	r.GET("/invoices/:invoice_id", invoiceCtrl.GetInvoiceByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(deps.Blacklist))

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.PUT("/profile", userCtrl.UpdateProfile)
	auth.POST("/change-password", userCtrl.ChangePassword)

	auth.POST("/menus", menuCtrl.CreateMenu)
	auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
	auth.PUT("/menus/:menu_id", menuCtrl.UpdateMenu)

	auth.POST("/foods", foodCtrl.CreateFood)
	auth.PATCH("/foods/:food_id", foodCtrl.UpdateFood)
	auth.PUT("/foods/:food_id", foodCtrl.UpdateFood)

	auth.POST("/tables", tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.PUT("/tables/:table_id", tableCtrl.UpdateTable)

	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.PUT("/orders/:order_id", orderCtrl.UpdateOrder)

	auth.POST("/order-items", itemCtrl.CreateOrderItem)
	auth.PATCH("/order-items/:order_item_id", itemCtrl.UpdateOrderItem)
	auth.PUT("/order-items/:order_item_id", itemCtrl.UpdateOrderItem)

	auth.POST("/invoices", invoiceCtrl.CreateInvoice)
	auth.PATCH("/invoices/:invoice_id", invoiceCtrl.UpdateInvoice)
	auth.PUT("/invoices/:invoice_id", invoiceCtrl.UpdateInvoice)

	return r
}
