package router

import (
	"log/slog"
	"net/http"
	"time"

	"foodbank/internal/auth"
	"foodbank/internal/distribution"
	"foodbank/internal/inventory"
	"foodbank/internal/middleware"
	"foodbank/internal/nutrition"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	Auth         *auth.Handler
	Search       *nutrition.Handler
	Inventory    *inventory.Handler
	Distribution *distribution.Handler
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ───────────────────────── PUBLIC ─────────────────────────
	api.POST("/signup", d.Auth.Signup)
	api.POST("/login", d.Auth.Login)
	api.GET("/search", d.Search.Search)

	// ───────────────────────── INVENTORY ─────────────────────────
	inv := api.Group("/inventory")
	inv.Use(middleware.AuthMiddleware())
	{
		inv.GET("", d.Inventory.List)
		inv.POST("/add", d.Inventory.Add)
		inv.DELETE("/delete/:id", d.Inventory.Delete)
		inv.POST("/update-customers", d.Inventory.UpdateCustomers)
	}

	// ───────────────────────── DISTRIBUTION PLAN ─────────────────────────
	predict := api.Group("/predict")
	predict.Use(middleware.AuthMiddleware())
	{
		predict.POST("", d.Distribution.Predict)
		predict.POST("/export", d.Distribution.Export)
	}

	return r
}
