package api

import (
	"catalog_service/internal/domain"     // Importing domain models
	"catalog_service/internal/metrics"    // Prometheus collectors
	"catalog_service/internal/middleware" // Request ID lookup
	"catalog_service/internal/repository" // Product storage
	"catalog_service/internal/validation" // Payload validators
	"context"                             // Context for cache operations
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CacheHeader reports whether a listing was served from cache
const CacheHeader = "X-Cache"

// ListingCache stores serialized product listings per seller. Listings are
// keyed by the seller's version at read time; Invalidate bumps the version.
type ListingCache interface {
	Version(ctx context.Context, sellerID uint) (int64, error)
	Get(ctx context.Context, sellerID uint, version int64, dest any) (bool, error)
	Set(ctx context.Context, sellerID uint, version int64, value any) error
	Invalidate(ctx context.Context, sellerID uint) error
}

// ListProductsHandler returns the viewer's products ordered by price
func ListProductsHandler(products repository.ProductRepository, cache ListingCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := currentAccount(c) // Viewer set by LoadAccountMiddleware
		if !ok {
			return
		}
		ctx := c.Request.Context() // Request scoped context
		useCache := cache != nil   // Skip the cache when absent or unreachable
		var version int64          // Listing version read before the database
		if useCache {
			v, err := cache.Version(ctx, account.ID)
			if err != nil {
				useCache = false
				metrics.ListingCacheOps.WithLabelValues("error").Inc()
				logCacheError(c, "Listing cache version read failed", account.ID, err)
			}
			version = v
		}
		if useCache {
			var cached []ProductResponse                               // Cached listing
			found, err := cache.Get(ctx, account.ID, version, &cached) // Try to get from cache
			switch {
			case err != nil:
				// Fall through to the database
				metrics.ListingCacheOps.WithLabelValues("error").Inc()
				logCacheError(c, "Listing cache read failed", account.ID, err)
			case found:
				metrics.ListingCacheOps.WithLabelValues("hit").Inc()
				c.Header(CacheHeader, "HIT")
				c.JSON(http.StatusOK, cached) // Return cached listing
				return
			default:
				metrics.ListingCacheOps.WithLabelValues("miss").Inc()
			}
		}
		list, err := products.ListBySeller(ctx, account.ID) // Fetch from database
		if err != nil {
			respondInternal(c, "Failed to fetch products", err)
			return
		}
		resp := NewProductResponses(list) // Serialize listing
		if useCache {
			// Stored under the version read above, so a concurrent create wins
			if err := cache.Set(ctx, account.ID, version, resp); err != nil {
				logCacheError(c, "Listing cache write failed", account.ID, err)
			}
			c.Header(CacheHeader, "MISS")
		}
		c.JSON(http.StatusOK, resp) // Return the listing
	}
}

// CreateProductHandler creates a product; the viewer is the seller unless the payload names one
func CreateProductHandler(products repository.ProductRepository, accounts validation.AccountLookup, cache ListingCache) gin.HandlerFunc {
	validator := validation.NewProductValidator(accounts) // Stateless, shared across requests
	return func(c *gin.Context) {
		account, ok := currentAccount(c) // Viewer set by LoadAccountMiddleware
		if !ok {
			return
		}
		var req validation.ProductInput // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		ctx := c.Request.Context() // Request scoped context
		valid, err := validator.ValidateCreate(ctx, req)
		if err != nil {
			respondValidation(c, "product", err)
			return
		}
		sellerID := valid.SellerID
		if sellerID == nil {
			sellerID = &account.ID // Default seller is the viewer
		}
		product := domain.Product{
			Name:     valid.Name,  // Product name
			Price:    valid.Price, // Optional price
			SellerID: sellerID,    // Owning account
		}
		// Save the new product
		if err := products.Create(ctx, &product); err != nil {
			respondInternal(c, "Failed to create product", err)
			return
		}
		metrics.ProductsCreated.Inc() // Count creations
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c), // Request ID
			"account_id": account.ID,              // Viewer
			"product_id": product.ID,              // New product ID
			"seller_id":  *sellerID,               // Owning account
		}).Info("Product created")
		// Invalidate the seller's listing cache
		if cache != nil {
			if err := cache.Invalidate(ctx, *sellerID); err != nil {
				logCacheError(c, "Listing cache invalidation failed", *sellerID, err)
			}
		}
		c.JSON(http.StatusCreated, NewProductResponse(product))
	}
}

// logCacheError logs a non-fatal cache failure
func logCacheError(c *gin.Context, msg string, sellerID uint, err error) {
	logrus.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c), // Request ID
		"seller_id":  sellerID,                // Listing owner
		"error":      err.Error(),             // Error message
	}).Warn(msg)
}
