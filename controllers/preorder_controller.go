package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/middleware"
	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
)

// PreOrderController handles pre-order drafts composed by customers.
type PreOrderController struct {
	preOrders repository.PreOrderRepository
	products  repository.ProductRepository
	logger    *zap.Logger
}

// NewPreOrderController creates a new PreOrderController.
func NewPreOrderController(preOrders repository.PreOrderRepository, products repository.ProductRepository, logger *zap.Logger) *PreOrderController {
	return &PreOrderController{preOrders: preOrders, products: products, logger: logger}
}

// Store handles POST /preorders.
func (pc *PreOrderController) Store(c *gin.Context) {
	var req models.PreOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondValidation(c, map[string]string{"product_id": "must be a valid UUID"})
		return
	}
	if _, err := pc.products.FindByID(c.Request.Context(), productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondValidation(c, map[string]string{"product_id": "product does not exist"})
			return
		}
		pc.logger.Error("Failed to look up product", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create pre-order")
		return
	}

	preOrder := &models.PreOrder{
		UserID:       userID,
		ProductID:    productID,
		Quantity:     req.Quantity,
		FinalProduct: req.FinalProduct,
	}
	if err := pc.preOrders.Create(c.Request.Context(), preOrder); err != nil {
		pc.logger.Error("Failed to create pre-order", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create pre-order")
		return
	}
	respondSuccess(c, http.StatusCreated, "Pre-order created successfully", gin.H{"preorder": preOrder})
}

// Index handles GET /preorders for the authenticated user.
func (pc *PreOrderController) Index(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	preOrders, err := pc.preOrders.FindByUser(c.Request.Context(), userID)
	if err != nil {
		pc.logger.Error("Failed to fetch pre-orders", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch pre-orders")
		return
	}
	respondSuccess(c, http.StatusOK, "Pre-orders fetched successfully", gin.H{"preorders": preOrders})
}

// Show handles GET /preorders/:id.
func (pc *PreOrderController) Show(c *gin.Context) {
	preOrder, ok := pc.load(c)
	if !ok {
		return
	}
	respondSuccess(c, http.StatusOK, "Pre-order fetched successfully", gin.H{"preorder": preOrder})
}

// Destroy handles DELETE /preorders/:id.
func (pc *PreOrderController) Destroy(c *gin.Context) {
	preOrder, ok := pc.load(c)
	if !ok {
		return
	}
	if err := pc.preOrders.Delete(c.Request.Context(), preOrder.ID); err != nil {
		pc.logger.Error("Failed to delete pre-order", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete pre-order")
		return
	}
	respondSuccess(c, http.StatusOK, "Pre-order deleted successfully", nil)
}

// load fetches the pre-order in the URL and enforces owner-or-admin access.
func (pc *PreOrderController) load(c *gin.Context) (*models.PreOrder, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid pre-order id")
		return nil, false
	}

	preOrder, err := pc.preOrders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Pre-order not found")
			return nil, false
		}
		pc.logger.Error("Failed to fetch pre-order", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch pre-order")
		return nil, false
	}

	userID, _ := middleware.UserID(c)
	role, _ := middleware.UserRole(c)
	if preOrder.UserID != userID && role != "admin" {
		respondError(c, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return preOrder, true
}
