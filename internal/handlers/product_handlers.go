package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hariomfashion/backend/internal/cache"
	"github.com/hariomfashion/backend/internal/models"
	"github.com/hariomfashion/backend/internal/repository"
)

//
// --- Catalog Handlers ---
//

type productRequest struct {
	Name             string   `json:"name"`
	Price            *float64 `json:"price"`
	OriginalPrice    *float64 `json:"originalPrice"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	Fabric           string   `json:"fabric"`
	CareInstructions string   `json:"careInstructions"`
	Sizes            []string `json:"sizes"`
	Colors           []string `json:"colors"`
	IsTrending       *bool    `json:"isTrending"`
	Images           []string `json:"images"`
}

// CreateProduct is the handler for POST /api/admin/products (back office). Images
// arrive as already-hosted URLs.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == "" || req.Price == nil || req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, price, and category are required"})
		return
	}

	product := &models.Product{
		Name:             req.Name,
		Slug:             slug.Make(req.Name),
		Price:            *req.Price,
		Category:         req.Category,
		Description:      req.Description,
		Fabric:           req.Fabric,
		CareInstructions: req.CareInstructions,
		Sizes:            req.Sizes,
		Colors:           req.Colors,
		Images:           req.Images,
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.IsTrending != nil {
		product.IsTrending = *req.IsTrending
	}
	if len(req.Images) > 0 {
		product.MainImage = req.Images[0]
	}

	if err := h.Store.Products.Insert(c.Request.Context(), product); err != nil {
		// Two products can legitimately share a name; disambiguate the slug
		// and try once more.
		product.Slug = product.Slug + "-" + uuid.NewString()[:8]
		if err := h.Store.Products.Insert(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
	}

	h.invalidateCatalog(c)
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct is the handler for PUT /api/admin/products/:id (back office).
// Absent fields keep their current values.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.Store.Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if req.Name != "" && req.Name != product.Name {
		product.Name = req.Name
		product.Slug = slug.Make(req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Fabric != "" {
		product.Fabric = req.Fabric
	}
	if req.CareInstructions != "" {
		product.CareInstructions = req.CareInstructions
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.IsTrending != nil {
		product.IsTrending = *req.IsTrending
	}
	if len(req.Images) > 0 {
		product.Images = req.Images
		product.MainImage = req.Images[0]
	}

	if err := h.Store.Products.Update(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.invalidateCatalog(c)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct is the handler for DELETE /api/admin/products/:id (back office).
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.Store.Products.Delete(c.Request.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	h.invalidateCatalog(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetAllProducts is the handler for GET /api/products.
func (h *Handlers) GetAllProducts(c *gin.Context) {
	if h.Cache != nil {
		if products, err := h.Cache.GetList(c.Request.Context(), "all"); err == nil {
			c.JSON(http.StatusOK, products)
			return
		}
	}

	products, err := h.Store.Products.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if h.Cache != nil {
		if err := h.Cache.SetList(c.Request.Context(), "all", products); err != nil {
			log.Printf("Catalog cache fill failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, products)
}

// GetProductsByCategory is the handler for GET /api/products/category/:category.
func (h *Handlers) GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")
	cacheKey := "category:" + category

	if h.Cache != nil {
		if products, err := h.Cache.GetList(c.Request.Context(), cacheKey); err == nil {
			c.JSON(http.StatusOK, products)
			return
		}
	}

	products, err := h.Store.Products.FindByCategory(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if h.Cache != nil {
		if err := h.Cache.SetList(c.Request.Context(), cacheKey, products); err != nil {
			log.Printf("Catalog cache fill failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct is the handler for GET /api/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if h.Cache != nil {
		if product, err := h.Cache.GetProduct(c.Request.Context(), productID.Hex()); err == nil {
			c.JSON(http.StatusOK, product)
			return
		}
	}

	product, err := h.Store.Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if h.Cache != nil {
		if err := h.Cache.SetProduct(c.Request.Context(), product); err != nil {
			log.Printf("Catalog cache fill failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, product)
}

// GetProductBySlug is the handler for GET /api/products/slug/:slug.
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	product, err := h.Store.Products.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handlers) invalidateCatalog(c *gin.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidate(c.Request.Context()); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("Catalog cache invalidation failed: %v", err)
	}
}
