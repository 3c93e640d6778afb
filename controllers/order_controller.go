package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ahsan-alam-500/tonycustom/middleware"
	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// OrderController handles customer checkout and order history.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(svc services.OrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// Index handles GET /customer-orders: the authenticated customer's own
// orders, matched by email.
func (oc *OrderController) Index(c *gin.Context) {
	email, ok := middleware.UserEmail(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, svcErr := oc.orderService.ListByEmail(c.Request.Context(), email)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Orders fetched successfully", gin.H{"orders": orders})
}

// Store handles POST /customer-orders.
func (oc *OrderController) Store(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	order, svcErr := oc.orderService.Create(c.Request.Context(), userID, &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusCreated, "Order placed successfully", gin.H{"order": order})
}

// Show handles GET /customer-orders/:id. Customers may only see their
// own orders.
func (oc *OrderController) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, svcErr := oc.orderService.Get(c.Request.Context(), id)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	email, _ := middleware.UserEmail(c)
	role, _ := middleware.UserRole(c)
	if order.Email != email && role != "admin" {
		respondError(c, http.StatusForbidden, "Forbidden")
		return
	}
	respondSuccess(c, http.StatusOK, "Order fetched successfully", gin.H{"order": order})
}

// AdminOrderController handles the admin order surface: index, show,
// update.
type AdminOrderController struct {
	orderService services.OrderService
}

// NewAdminOrderController creates a new AdminOrderController.
func NewAdminOrderController(svc services.OrderService) *AdminOrderController {
	return &AdminOrderController{orderService: svc}
}

// Index handles GET /orders.
func (oc *AdminOrderController) Index(c *gin.Context) {
	page, limit := parsePagination(c)
	orders, total, svcErr := oc.orderService.ListAll(c.Request.Context(), c.Query("status"), page, limit)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Orders fetched successfully", gin.H{
		"orders":     orders,
		"pagination": paginationMeta(page, limit, total),
	})
}

// Show handles GET /orders/:id.
func (oc *AdminOrderController) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, svcErr := oc.orderService.Get(c.Request.Context(), id)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Order fetched successfully", gin.H{"order": order})
}

// Update handles PUT /orders/:id.
func (oc *AdminOrderController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id")
		return
	}

	actorID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	order, svcErr := oc.orderService.AdminUpdate(c.Request.Context(), id, actorID, &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	respondSuccess(c, http.StatusOK, "Order updated successfully", gin.H{"order": order})
}
