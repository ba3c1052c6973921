package router

import (
	"github.com/casepix/casepix-backend/config"
	"github.com/casepix/casepix-backend/internal/app/controller"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	brandController     *controller.BrandController
	modelController     *controller.ModelController
	compatController    *controller.CompatibilityController
	categoryController  *controller.CategoryController
	productController   *controller.ProductController
	contentController   *controller.ContentController
	cartController      *controller.CartController
	uploadController    *controller.UploadController
	importController    *controller.ImportController
	dashboardController *controller.DashboardController
	eventsController    *controller.EventsController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	brandController *controller.BrandController,
	modelController *controller.ModelController,
	compatController *controller.CompatibilityController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	contentController *controller.ContentController,
	cartController *controller.CartController,
	uploadController *controller.UploadController,
	importController *controller.ImportController,
	dashboardController *controller.DashboardController,
	eventsController *controller.EventsController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		brandController:     brandController,
		modelController:     modelController,
		compatController:    compatController,
		categoryController:  categoryController,
		productController:   productController,
		contentController:   contentController,
		cartController:      cartController,
		uploadController:    uploadController,
		importController:    importController,
		dashboardController: dashboardController,
		eventsController:    eventsController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "CasePix API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/profile", r.authMiddleware.Authenticate(), r.authController.Profile)
		}

		// Storefront reads: no authentication required.
		v1.GET("/brands", r.brandController.ListBrands)
		v1.GET("/brands/:id", r.brandController.GetBrand)
		v1.GET("/models", r.modelController.ListModels)
		v1.GET("/models/:id", r.modelController.GetModel)
		v1.GET("/compatibility/check", r.compatController.CheckAvailability)
		v1.GET("/categories", r.categoryController.ListCategories)
		v1.GET("/categories/:slug", r.categoryController.GetCategoryBySlug)
		v1.GET("/products", r.productController.ListProducts)
		v1.GET("/products/:id", r.productController.GetProduct)
		v1.GET("/products/:id/view", r.productController.GetProductView)
		v1.GET("/products/:id/related", r.productController.GetRelatedProducts)
		v1.GET("/content", r.contentController.ListContents)
		v1.GET("/content/:case_type", r.contentController.GetContent)

		// Session cart: keyed by X-Session-ID, no account needed.
		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:product_id", r.cartController.UpdateCartItem)
			cart.DELETE("/:product_id", r.cartController.RemoveCartItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		// Admin surface: authenticated admins only.
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole("admin"))
		{
			admin.POST("/brands", r.brandController.CreateBrand)
			admin.PUT("/brands/:id", r.brandController.UpdateBrand)
			admin.DELETE("/brands/:id", r.brandController.DeleteBrand)

			admin.POST("/models", r.modelController.CreateModel)
			admin.PUT("/models/:id", r.modelController.UpdateModel)
			admin.DELETE("/models/:id", r.modelController.DeleteModel)

			admin.GET("/compatibility", r.compatController.ListRegistry)
			admin.GET("/compatibility/models", r.compatController.ListModelsWithAvailability)
			admin.PUT("/compatibility", r.compatController.SetVisibility)
			admin.PUT("/compatibility/bulk", r.compatController.BulkSetVisibility)
			admin.DELETE("/compatibility/:id", r.compatController.DeleteEntry)

			admin.POST("/categories", r.categoryController.CreateCategory)
			admin.PUT("/categories/:id", r.categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", r.categoryController.DeleteCategory)

			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
			admin.PUT("/products/:id/variants", r.productController.SaveVariant)

			admin.PUT("/content", r.contentController.SaveContent)

			admin.POST("/upload/presigned-url", r.uploadController.GeneratePresignedURL)

			admin.POST("/import/models", r.importController.ImportModels)
			admin.POST("/import/scrape", r.importController.ScrapeModelInfo)

			admin.GET("/dashboard/stats", r.dashboardController.GetStats)
			admin.POST("/dashboard/stats/refresh", r.dashboardController.RefreshStats)

			admin.GET("/events", r.eventsController.Subscribe)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
