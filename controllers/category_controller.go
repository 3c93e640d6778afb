package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// CategoryController handles category management.
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(svc services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: svc}
}

// Index handles GET /categories.
func (cc *CategoryController) Index(c *gin.Context) {
	categories, svcErr := cc.categoryService.List(c.Request.Context())
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Categories fetched successfully", gin.H{"categories": categories})
}

// Store handles POST /categories.
func (cc *CategoryController) Store(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	category, svcErr := cc.categoryService.Create(c.Request.Context(), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusCreated, "Category created successfully", gin.H{"category": category})
}

// Show handles GET /categories/:id.
func (cc *CategoryController) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, svcErr := cc.categoryService.Get(c.Request.Context(), id)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Category fetched successfully", gin.H{"category": category})
}

// Update handles PUT /categories/:id.
func (cc *CategoryController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	category, svcErr := cc.categoryService.Update(c.Request.Context(), id, &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Category updated successfully", gin.H{"category": category})
}

// Destroy handles DELETE /categories/:id.
func (cc *CategoryController) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	if svcErr := cc.categoryService.Delete(c.Request.Context(), id); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Category deleted successfully", nil)
}
