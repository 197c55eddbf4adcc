package routes

import (
	"net/http"

	"greennest/auth"
	"greennest/cart"
	"greennest/catalog"
	"greennest/live"
	"greennest/middleware"
	"greennest/orders"
	"greennest/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/plantpic/*filepath", http.Dir("static/plantpic"))
	router.ServeFiles("/images/*filepath", http.Dir("static/images"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddPlantRoutes(router *httprouter.Router, h *catalog.Handler) {
	router.GET("/api/plants", h.GetPlants)
	router.GET("/api/plants/:id", h.GetPlantByID)
	router.POST("/api/plants", middleware.RequireAdmin(h.CreatePlant))
	router.PUT("/api/plants/:id", middleware.RequireAdmin(h.UpdatePlant))
	router.DELETE("/api/plants/:id", middleware.RequireAdmin(h.DeletePlant))
	router.POST("/api/plants/:id/image", middleware.RequireAdmin(h.UploadPlantImage))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(middleware.Authenticate(h.CreateOrder)))
	router.GET("/api/orders", middleware.RequireAdmin(h.GetAllOrders))
	router.GET("/api/orders/:id", middleware.Authenticate(h.GetOrderByID))
	router.GET("/api/orders/:id/invoice", middleware.Authenticate(h.PrintInvoice))
	router.PUT("/api/orders/:id/status", middleware.RequireAdmin(h.UpdateOrderStatus))
	router.PUT("/api/orders/:id/payment", middleware.RequireAdmin(h.UpdateOrderPayment))
}

func AddCartRoutes(router *httprouter.Router) {
	router.POST("/api/cart", middleware.Authenticate(cart.AddToCart))
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.PUT("/api/cart", middleware.Authenticate(cart.UpdateCart))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/orders", middleware.RequireAdmin(live.OrderFeed(hub)))
}
