package router

import (
	"github.com/gin-gonic/gin"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/interfaces/http/handler"
	"github.com/judn/backend/internal/interfaces/http/middleware"
)

// Handlers collects every HTTP handler the API exposes
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Order       *handler.OrderHandler
	OrderStream *handler.OrderStreamHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Campaign    *handler.CampaignHandler
	User        *handler.UserHandler
	Activity    *handler.ActivityHandler
	Report      *handler.ReportHandler
	Storefront  *handler.StorefrontHandler
}

// Middleware collects the route-scoped middleware. Global middleware
// (request ID, logging, CORS, body limit) is applied to the engine before
// Setup is called.
type Middleware struct {
	JWTAuth       gin.HandlerFunc
	ActivityLog   gin.HandlerFunc
	AuthRateLimit gin.HandlerFunc
}

// Setup registers all API routes on the engine. Public storefront and
// auth entry points stay outside the JWT gate; everything under /admin
// requires a valid token plus the route's permission.
func Setup(engine *gin.Engine, h Handlers, mw Middleware) {
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	api.GET("/ping", h.System.Ping)

	// Public storefront
	storefront := api.Group("/storefront")
	{
		storefront.POST("/checkout", h.Storefront.Checkout)
		storefront.GET("/orders/:number", h.Storefront.LookupOrder)
		storefront.GET("/cart/:key", h.Storefront.GetCart)
		storefront.PUT("/cart/:key", h.Storefront.SaveCart)
	}

	// Auth endpoints, credential routes get the stricter rate limit
	auth := api.Group("/auth")
	if mw.AuthRateLimit != nil {
		auth.Use(mw.AuthRateLimit)
	}
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}

	authSession := api.Group("/auth", mw.JWTAuth)
	{
		authSession.POST("/logout", h.Auth.Logout)
		authSession.GET("/me", h.Auth.Me)
		authSession.POST("/change-password", h.Auth.ChangePassword)
		authSession.POST("/register",
			middleware.RequirePermission(identity.PermUsersWrite), h.Auth.Register)
	}

	admin := api.Group("/admin", mw.JWTAuth, mw.ActivityLog)

	orders := admin.Group("/orders")
	{
		ordersRead := middleware.RequirePermission(identity.PermOrdersRead)
		ordersWrite := middleware.RequirePermission(identity.PermOrdersWrite)

		orders.GET("", ordersRead, h.Order.List)
		orders.GET("/recent", ordersRead, h.Order.Recent)
		orders.GET("/stream", ordersRead, h.OrderStream.Stream)
		orders.GET("/number/:number", ordersRead, h.Order.GetByNumber)
		orders.GET("/:id", ordersRead, h.Order.GetByID)
		orders.GET("/:id/timeline", ordersRead, h.Order.Timeline)
		orders.PUT("/:id", ordersWrite, h.Order.Update)
		orders.PUT("/:id/status", ordersWrite, h.Order.UpdateStatus)
	}

	products := admin.Group("/products")
	{
		productsRead := middleware.RequirePermission(identity.PermProductsRead)
		productsWrite := middleware.RequirePermission(identity.PermProductsWrite)

		products.GET("", productsRead, h.Product.List)
		products.GET("/sku/:sku", productsRead, h.Product.GetBySKU)
		products.GET("/:id", productsRead, h.Product.GetByID)
		products.POST("", productsWrite, h.Product.Create)
		products.PUT("/:id", productsWrite, h.Product.Update)
		products.PUT("/:id/stock", productsWrite, h.Product.AdjustStock)
		products.DELETE("/:id", productsWrite, h.Product.Delete)
	}

	customers := admin.Group("/customers")
	{
		customersRead := middleware.RequirePermission(identity.PermCustomersRead)
		customersWrite := middleware.RequirePermission(identity.PermCustomersWrite)

		customers.GET("", customersRead, h.Customer.List)
		customers.GET("/top-spenders", customersRead, h.Customer.TopSpenders)
		customers.GET("/phone/:phone", customersRead, h.Customer.GetByPhone)
		customers.GET("/:id", customersRead, h.Customer.GetByID)
		customers.POST("", customersWrite, h.Customer.Create)
		customers.PUT("/:id", customersWrite, h.Customer.Update)
		customers.PUT("/:id/follow-up", customersWrite, h.Customer.SetFollowUp)
		customers.POST("/:id/contacts", customersWrite, h.Customer.AddContact)
		customers.DELETE("/:id", customersWrite, h.Customer.Delete)
	}

	campaigns := admin.Group("/campaigns")
	{
		campaignsRead := middleware.RequirePermission(identity.PermCampaignsRead)
		campaignsWrite := middleware.RequirePermission(identity.PermCampaignsWrite)

		campaigns.GET("", campaignsRead, h.Campaign.List)
		campaigns.GET("/running", campaignsRead, h.Campaign.Running)
		campaigns.GET("/stats/platforms", campaignsRead, h.Campaign.StatsByPlatform)
		campaigns.GET("/:id", campaignsRead, h.Campaign.GetByID)
		campaigns.POST("", campaignsWrite, h.Campaign.Create)
		campaigns.PUT("/:id", campaignsWrite, h.Campaign.Update)
		campaigns.PUT("/:id/metrics", campaignsWrite, h.Campaign.LogPerformance)
		campaigns.DELETE("/:id", campaignsWrite, h.Campaign.Delete)
	}

	dashboard := admin.Group("/dashboard", middleware.RequirePermission(identity.PermReportsRead))
	{
		dashboard.GET("/stats", h.Report.Dashboard)
		dashboard.GET("/sales-trends", h.Report.SalesTrends)
	}

	users := admin.Group("/users", middleware.RequireRole(identity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.GetByID)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
		users.POST("/:id/unlock", h.User.Unlock)
		users.POST("/:id/reset-password", h.User.ResetPassword)
		users.DELETE("/:id", h.User.Delete)
	}

	admin.GET("/activities", middleware.RequireRole(identity.RoleAdmin), h.Activity.List)
}
