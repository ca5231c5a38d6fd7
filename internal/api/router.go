package api

import (
	"catalog_service/internal/middleware" // Custom package for middleware
	"catalog_service/internal/repository" // Storage interfaces
	"net/http"                            // HTTP status codes
	"time"                                // Token lifetime

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	Accounts  repository.AccountRepository // Account storage
	Products  repository.ProductRepository // Product storage
	Hasher    Credentials                  // Password hashing and checking
	Cache     ListingCache                 // Optional listing cache
	JWTSecret string                       // JWT secret key
	JWTTTL    time.Duration                // Lifetime of issued tokens
}

// NewRouter builds the gin engine with every route
func NewRouter(d Deps) *gin.Engine {
	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.RequestLogger())

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") }) // Liveness
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))                         // Prometheus scrape

	// Auth routes
	r.POST("/signup", SignupHandler(d.Accounts, d.Hasher))                      // Registration endpoint
	r.POST("/login", LoginHandler(d.Accounts, d.Hasher, d.JWTSecret, d.JWTTTL)) // Login endpoint

	// Every route below needs a valid token whose account still exists
	authenticated := []gin.HandlerFunc{
		middleware.JWTAuthMiddleware(d.JWTSecret),     // Token check
		middleware.LoadAccountMiddleware(d.Accounts), // Viewer lookup
	}

	profileGroup := r.Group("/profile")
	profileGroup.Use(authenticated...)
	profileGroup.PUT("", UpdateProfileHandler(d.Accounts, d.Hasher)) // Profile update endpoint

	taskGroup := r.Group("/task")
	taskGroup.Use(authenticated...)
	taskGroup.GET("/", ListProductsHandler(d.Products, d.Cache))                    // Listing endpoint
	taskGroup.POST("/create", CreateProductHandler(d.Products, d.Accounts, d.Cache)) // Create product endpoint

	return r
}
