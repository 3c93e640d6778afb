package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// ProductController handles admin product management and the public shop
// listing.
type ProductController struct {
	productService services.ProductService
	mediaBaseURL   string
}

// NewProductController creates a new ProductController.
func NewProductController(svc services.ProductService, mediaBaseURL string) *ProductController {
	return &ProductController{
		productService: svc,
		mediaBaseURL:   strings.TrimSuffix(mediaBaseURL, "/"),
	}
}

// Index handles GET /products and GET /shop.
func (pc *ProductController) Index(c *gin.Context) {
	filter := models.ProductFilter{
		CategoryID: c.Query("category_id"),
		Type:       c.Query("type"),
		Search:     c.Query("search"),
	}
	switch c.Query("status") {
	case "true":
		t := true
		filter.Status = &t
	case "false":
		f := false
		filter.Status = &f
	}

	page, limit := parsePagination(c)
	products, total, svcErr := pc.productService.List(c.Request.Context(), filter, page, limit)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	shaped := make([]gin.H, 0, len(products))
	for i := range products {
		shaped = append(shaped, pc.shapeProduct(&products[i]))
	}

	respondSuccess(c, http.StatusOK, "Products fetched successfully", gin.H{
		"products":   shaped,
		"pagination": paginationMeta(page, limit, total),
	})
}

// Store handles POST /products.
func (pc *ProductController) Store(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	product, svcErr := pc.productService.Create(c.Request.Context(), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondSuccess(c, http.StatusCreated, "Product created successfully", gin.H{
		"product": pc.shapeProduct(product),
	})
}

// Show handles GET /products/:id.
func (pc *ProductController) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, svcErr := pc.productService.Get(c.Request.Context(), id)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondSuccess(c, http.StatusOK, "Product fetched successfully", gin.H{
		"product": pc.shapeProduct(product),
	})
}

// ShowBySlug handles GET /shop/:slug.
func (pc *ProductController) ShowBySlug(c *gin.Context) {
	product, svcErr := pc.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondSuccess(c, http.StatusOK, "Product fetched successfully", gin.H{
		"product": pc.shapeProduct(product),
	})
}

// Update handles PUT /products/:id.
func (pc *ProductController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	product, svcErr := pc.productService.Update(c.Request.Context(), id, &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondSuccess(c, http.StatusOK, "Product updated successfully", gin.H{
		"product": pc.shapeProduct(product),
	})
}

// Destroy handles DELETE /products/:id.
func (pc *ProductController) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	if svcErr := pc.productService.Delete(c.Request.Context(), id); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondSuccess(c, http.StatusOK, "Product deleted successfully", nil)
}

func (pc *ProductController) mediaURL(path string) string {
	if path == "" {
		return ""
	}
	return pc.mediaBaseURL + "/" + strings.TrimPrefix(path, "/")
}

// shapeProduct builds the response body for one product, prefixing every
// stored path with the public media base URL.
func (pc *ProductController) shapeProduct(p *models.Product) gin.H {
	finalPrice := p.Price
	discount := 0.0
	if p.OfferPrice != nil {
		finalPrice = *p.OfferPrice
		discount = math.Round((p.Price-*p.OfferPrice)/p.Price*100*100) / 100
	}

	data := gin.H{
		"id":                  p.ID,
		"name":                p.Name,
		"slug":                p.Slug,
		"type":                p.Type,
		"price":               p.Price,
		"offer_price":         p.OfferPrice,
		"final_price":         finalPrice,
		"discount_percentage": discount,
		"status":              p.Status,
		"short_description":   p.ShortDescription,
		"description":         p.Description,
		"created_at":          p.CreatedAt,
		"updated_at":          p.UpdatedAt,
	}

	if p.Image != "" {
		data["image"] = pc.mediaURL(p.Image)
	}

	if p.Images != nil {
		gallery := make([]gin.H, 0, len(p.Images))
		for _, img := range p.Images {
			gallery = append(gallery, gin.H{
				"id":  img.ID,
				"url": pc.mediaURL(img.Image),
				"alt": p.Name,
			})
		}
		data["gallery_images"] = gallery
	}

	if p.Category != nil {
		data["category"] = gin.H{
			"id":   p.Category.ID,
			"name": p.Category.Name,
			"slug": p.Category.Slug,
		}
	}

	if kinds := models.KindsForType(p.Type); kinds != nil && p.Customizations != nil {
		customizations := make(gin.H, len(kinds))
		for _, kind := range kinds {
			items := make([]gin.H, 0)
			for _, item := range p.Customizations {
				if item.Kind != kind {
					continue
				}
				images := make([]gin.H, 0, len(item.Images))
				for _, img := range item.Images {
					images = append(images, gin.H{
						"id":  img.ID,
						"url": pc.mediaURL(img.Image),
					})
				}
				items = append(items, gin.H{
					"id":     item.ID,
					"name":   item.Name,
					"images": images,
				})
			}
			customizations[kind] = items
		}
		data["customizations"] = customizations
	}

	return data
}
