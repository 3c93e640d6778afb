package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
)

// CreatePaymentRequest records a payment against an order.
type CreatePaymentRequest struct {
	OrderID       string  `json:"order_id" binding:"required,uuid"`
	Amount        float64 `json:"amount" binding:"required,gte=0"`
	Method        string  `json:"method" binding:"required,max=50"`
	Status        string  `json:"status" binding:"required,oneof=pending completed failed"`
	TransactionID string  `json:"transaction_id" binding:"omitempty,max=100"`
	Notes         string  `json:"notes"`
}

// UpdatePaymentRequest applies a partial payment update.
type UpdatePaymentRequest struct {
	Amount        *float64 `json:"amount" binding:"omitempty,gte=0"`
	Method        string   `json:"method" binding:"omitempty,max=50"`
	Status        string   `json:"status" binding:"omitempty,oneof=pending completed failed"`
	TransactionID string   `json:"transaction_id" binding:"omitempty,max=100"`
	Notes         string   `json:"notes"`
}

// PaymentController handles payment trace records.
type PaymentController struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(payments repository.PaymentRepository, orders repository.OrderRepository, logger *zap.Logger) *PaymentController {
	return &PaymentController{payments: payments, orders: orders, logger: logger}
}

// Index handles GET /payments.
func (pc *PaymentController) Index(c *gin.Context) {
	payments, err := pc.payments.FindAll(c.Request.Context())
	if err != nil {
		pc.logger.Error("Failed to fetch payments", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}
	respondSuccess(c, http.StatusOK, "Payments fetched successfully", gin.H{"payments": payments})
}

// Store handles POST /payments.
func (pc *PaymentController) Store(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		respondValidation(c, map[string]string{"order_id": "must be a valid UUID"})
		return
	}
	if _, err := pc.orders.FindByID(c.Request.Context(), orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondValidation(c, map[string]string{"order_id": "order does not exist"})
			return
		}
		pc.logger.Error("Failed to look up order", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	payment := &models.Payment{
		OrderID:       orderID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        req.Status,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if err := pc.payments.Create(c.Request.Context(), payment); err != nil {
		pc.logger.Error("Failed to record payment", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	respondSuccess(c, http.StatusCreated, "Payment recorded successfully", gin.H{"payment": payment})
}

// Show handles GET /payments/:id.
func (pc *PaymentController) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payment id")
		return
	}

	payment, err := pc.payments.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		pc.logger.Error("Failed to fetch payment", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch payment")
		return
	}
	respondSuccess(c, http.StatusOK, "Payment fetched successfully", gin.H{"payment": payment})
}

// Update handles PUT /payments/:id.
func (pc *PaymentController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payment id")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	payment, err := pc.payments.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		pc.logger.Error("Failed to fetch payment", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.Method != "" {
		payment.Method = req.Method
	}
	if req.Status != "" {
		payment.Status = req.Status
	}
	if req.TransactionID != "" {
		payment.TransactionID = req.TransactionID
	}
	if req.Notes != "" {
		payment.Notes = req.Notes
	}
	payment.Order = nil

	if err := pc.payments.Update(c.Request.Context(), payment); err != nil {
		pc.logger.Error("Failed to update payment", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}
	respondSuccess(c, http.StatusOK, "Payment updated successfully", gin.H{"payment": payment})
}

// Destroy handles DELETE /payments/:id.
func (pc *PaymentController) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid payment id")
		return
	}

	if _, err := pc.payments.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		pc.logger.Error("Failed to fetch payment", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete payment")
		return
	}

	if err := pc.payments.Delete(c.Request.Context(), id); err != nil {
		pc.logger.Error("Failed to delete payment", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete payment")
		return
	}
	respondSuccess(c, http.StatusOK, "Payment deleted successfully", nil)
}
