package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/ai"
	"github.com/menuport/portal-app/cache"
	"github.com/menuport/portal-app/cart"
	"github.com/menuport/portal-app/controllers"
	"github.com/menuport/portal-app/middlewares"
)

// SetupRouter wires every endpoint. Customer routes are public; owner
// and staff routes sit under /admin behind JWT auth.
func SetupRouter(db *gorm.DB, aiClient ai.Client, cartStore cart.Store, views *cache.Views) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Global limiter must be installed before any route is registered
	// or gin never runs it.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	portalCtrl := controllers.NewPortalController(db, aiClient)
	menuCtrl := controllers.NewMenuItemController(db)
	orderCtrl := controllers.NewOrderController(db, views)
	paymentCtrl := controllers.NewPaymentController(db, views)
	cartCtrl := controllers.NewCartController(db, cartStore, views)
	chatCtrl := controllers.NewChatController(db, aiClient)
	analyzeCtrl := controllers.NewAnalyzeController(aiClient)
	seedCtrl := controllers.NewSeedController(db)
	receiptCtrl := controllers.NewReceiptController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	auth := middlewares.AuthMiddleware()
	strict := middlewares.NewStrictRateLimiter()

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(strict)
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Customer-facing storefront, no login required.
	r.GET("/portals/:portal_id", portalCtrl.GetPortal)
	r.GET("/portals/:portal_id/menu", menuCtrl.GetMenuItems)
	r.GET("/portals/:portal_id/menu/:item_id", menuCtrl.GetMenuItemByID)

	// Cart, keyed by the X-Cart-Session header.
	r.GET("/portals/:portal_id/cart", cartCtrl.GetCart)
	r.DELETE("/portals/:portal_id/cart", cartCtrl.ClearCart)
	r.POST("/portals/:portal_id/cart/items", cartCtrl.AddItem)
	r.PATCH("/portals/:portal_id/cart/items/:item_id", cartCtrl.UpdateItem)
	r.DELETE("/portals/:portal_id/cart/items/:item_id", cartCtrl.RemoveItem)
	r.POST("/portals/:portal_id/cart/checkout", cartCtrl.Checkout)

	// Checkout and order tracking.
	r.POST("/portals/:portal_id/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/orders/:order_id/pay", paymentCtrl.PayOrder)

	// Assistant endpoints.
	api := r.Group("/api")
	{
		api.POST("/chat", chatCtrl.Chat)
		api.POST("/analyze-restaurant", auth, strict, analyzeCtrl.AnalyzeRestaurant)
		api.POST("/seed", auth, middlewares.RequireRole("owner"), seedCtrl.Seed)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(auth)

	admin.GET("/profile", userCtrl.GetProfile)
	admin.POST("/logout", userCtrl.Logout)

	// PORTALS (owner)
	owner := admin.Group("/")
	owner.Use(middlewares.RequireRole("owner"))
	{
		owner.POST("/portals", portalCtrl.CreatePortal)
		owner.GET("/portals", portalCtrl.GetMyPortals)
		owner.PATCH("/portals/:portal_id", portalCtrl.UpdatePortal)
		owner.DELETE("/portals/:portal_id", portalCtrl.DeletePortal)

		// MENU ITEMS
		owner.POST("/portals/:portal_id/menu", menuCtrl.CreateMenuItem)
		owner.PATCH("/portals/:portal_id/menu/:item_id", menuCtrl.UpdateMenuItem)
		owner.DELETE("/portals/:portal_id/menu/:item_id", menuCtrl.DeleteMenuItem)

		// REPORTING
		owner.GET("/portals/:portal_id/stats", dashboardCtrl.GetPortalStats)
		owner.GET("/portals/:portal_id/chats", chatCtrl.GetTranscripts)
	}

	// ORDERS (owner/cashier/kitchen)
	admin.GET("/portals/:portal_id/orders", orderCtrl.GetPortalOrders)
	admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	admin.POST("/orders/:order_id/pay", paymentCtrl.PayOrder)
	admin.GET("/orders/:order_id/receipt.pdf", receiptCtrl.GenerateReceipt)

	// Dashboards
	admin.GET("/portals/:portal_id/cashier", orderCtrl.GetCashierView)
	admin.GET("/portals/:portal_id/kitchen", orderCtrl.GetKitchenView)

	// WebSocket endpoint for live dashboard updates
	ws := r.Group("/ws")
	ws.Use(auth)
	{
		ws.GET("/portals/:portal_id", controllers.LiveHandler)
	}

	return r
}
