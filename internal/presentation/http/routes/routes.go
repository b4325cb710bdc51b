// Package routes declares the API surface and binds handlers to it.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/container"
	"github.com/MarajLabs/maraj-go/internal/presentation/http/handlers"
	"github.com/MarajLabs/maraj-go/internal/presentation/http/middleware"
)

// Register wires all endpoints onto the engine. Reads are public; every
// mutation sits behind bearer auth, and maintenance behind the admin role.
func Register(r *gin.Engine, c *container.Container) {
	r.Use(middleware.CORS())

	authHandler := handlers.NewAuthHandler(c.AuthService)
	regionHandler := handlers.NewRegionHandler(c.RegionService, c.StreetService)
	streetHandler := handlers.NewStreetHandler(c.StreetService, c.BranchService)
	branchHandler := handlers.NewBranchHandler(c.BranchService)
	productHandler := handlers.NewProductHandler(c.ProductService)
	catalogHandler := handlers.NewCatalogHandler(c.CatalogService)
	adminHandler := handlers.NewAdminHandler(c.ConsistencyService, c.PerfTracker)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		v1.GET("/catalog", catalogHandler.Query)
		v1.GET("/catalog/url", catalogHandler.ShareURL)
		v1.GET("/store", catalogHandler.Snapshot)
		v1.GET("/store/export", catalogHandler.Export)

		v1.GET("/regions", regionHandler.List)
		v1.GET("/regions/:id", regionHandler.Get)
		v1.GET("/regions/:id/streets", regionHandler.Streets)
		v1.GET("/streets", streetHandler.List)
		v1.GET("/streets/:id", streetHandler.Get)
		v1.GET("/streets/:id/branches", streetHandler.Branches)
		v1.GET("/branches", branchHandler.List)
		v1.GET("/branches/:id", branchHandler.Get)
		v1.GET("/products", productHandler.List)
		v1.GET("/products/:id", productHandler.Get)
	}

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(c.AuthService))
	{
		protected.GET("/auth/status", authHandler.Status)
		protected.POST("/auth/logout", authHandler.Logout)

		protected.POST("/regions", regionHandler.Create)
		protected.PUT("/regions/:id", regionHandler.Update)
		protected.DELETE("/regions/:id", regionHandler.Delete)

		protected.POST("/streets", streetHandler.Create)
		protected.PUT("/streets/:id", streetHandler.Update)
		protected.DELETE("/streets/:id", streetHandler.Delete)

		protected.POST("/branches", branchHandler.Create)
		protected.PUT("/branches/:id", branchHandler.Update)
		protected.PUT("/branches/:id/products", branchHandler.SetProducts)
		protected.DELETE("/branches/:id", branchHandler.Delete)

		protected.POST("/products", productHandler.Create)
		protected.PUT("/products/:id", productHandler.Update)
		protected.DELETE("/products/:id", productHandler.Delete)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", catalogHandler.Stats)
		admin.POST("/reconcile", adminHandler.Reconcile)
		admin.GET("/performance", adminHandler.Performance)
	}
}
