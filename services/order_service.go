package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
)

// OrderService defines the order business logic.
type OrderService interface {
	Create(ctx context.Context, userID *uuid.UUID, req *models.CreateOrderRequest) (*models.Order, *ServiceError)
	ListByEmail(ctx context.Context, email string) ([]models.Order, *ServiceError)
	ListAll(ctx context.Context, status string, page, limit int) ([]models.Order, int64, *ServiceError)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, *ServiceError)
	AdminUpdate(ctx context.Context, id, actorID uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, *ServiceError)
}

type orderServiceImpl struct {
	db     *gorm.DB
	repo   repository.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(db *gorm.DB, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		db:     db,
		repo:   repository.NewOrderRepository(db),
		logger: logger,
	}
}

// Create inserts the order, its line items, and one payment trace row in
// a single transaction.
func (s *orderServiceImpl) Create(ctx context.Context, userID *uuid.UUID, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	order := &models.Order{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Total:        req.Total,
		Status:       models.OrderStatusPending,
		IsCustomized: req.IsCustomized,
		UserID:       userID,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txOrders := repository.NewOrderRepository(tx)
		txProducts := repository.NewProductRepository(tx)

		if err := txOrders.Create(ctx, order); err != nil {
			return err
		}

		for i, input := range req.Items {
			productID, err := uuid.Parse(input.ProductID)
			if err != nil {
				return fmt.Errorf("items.%d.product_id: %w", i, err)
			}
			product, err := txProducts.FindByID(ctx, productID)
			if err != nil {
				return fmt.Errorf("items.%d: product lookup: %w", i, err)
			}

			unitPrice := product.Price
			if product.OfferPrice != nil {
				unitPrice = *product.OfferPrice
			}

			item := &models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				Price:     unitPrice,
			}
			if len(input.CustomizationImages) > 0 {
				encoded, err := json.Marshal(input.CustomizationImages)
				if err != nil {
					return err
				}
				item.CustomizationImages = string(encoded)
			}
			if err := txOrders.CreateItem(ctx, item); err != nil {
				return err
			}

			// A composed final product on any line marks the whole order.
			if input.FinalProduct != "" {
				order.IsCustomized = true
				order.CustomizedFile = input.FinalProduct
				if err := txOrders.Updates(ctx, order.ID, map[string]interface{}{
					"is_customized":   true,
					"customized_file": input.FinalProduct,
				}); err != nil {
					return err
				}
			}
		}

		txPayments := repository.NewPaymentRepository(tx)
		payment := &models.Payment{
			OrderID:       order.ID,
			Amount:        req.Payment.Amount,
			Method:        req.Payment.Method,
			Status:        req.Payment.Status,
			TransactionID: req.Payment.TransactionID,
			Notes:         req.Payment.Notes,
		}
		if err := txPayments.Create(ctx, payment); err != nil {
			return err
		}
		if payment.Status == models.PaymentStatusCompleted {
			return txOrders.Updates(ctx, order.ID, map[string]interface{}{"is_paid": true})
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("items", "one or more products do not exist")
		}
		s.logger.Error("Failed to create order", zap.Error(txErr))
		return nil, NewInternalError("Failed to create order")
	}

	created, err := s.repo.FindByID(ctx, order.ID)
	if err != nil {
		s.logger.Error("Failed to reload created order", zap.Error(err))
		return order, nil
	}
	return created, nil
}

func (s *orderServiceImpl) ListByEmail(ctx context.Context, email string) ([]models.Order, *ServiceError) {
	orders, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		return nil, NewInternalError("Failed to fetch orders")
	}
	return orders, nil
}

func (s *orderServiceImpl) ListAll(ctx context.Context, status string, page, limit int) ([]models.Order, int64, *ServiceError) {
	orders, total, err := s.repo.FindAll(ctx, status, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		return nil, 0, NewInternalError("Failed to fetch orders")
	}
	return orders, total, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.Error(err))
		return nil, NewInternalError("Failed to fetch order")
	}
	return order, nil
}

// AdminUpdate applies a partial update, setting updated_by to the acting
// user, and upserts nested items and payments by id presence.
func (s *orderServiceImpl) AdminUpdate(ctx context.Context, id, actorID uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, *ServiceError) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Order not found")
		}
		s.logger.Error("Failed to load order", zap.Error(err))
		return nil, NewInternalError("Failed to update order")
	}

	fields := map[string]interface{}{"updated_by": actorID}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsPaid != nil {
		fields["is_paid"] = *req.IsPaid
	}
	if req.IsCustomized != nil {
		fields["is_customized"] = *req.IsCustomized
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txOrders := repository.NewOrderRepository(tx)
		txPayments := repository.NewPaymentRepository(tx)

		if err := txOrders.Updates(ctx, id, fields); err != nil {
			return err
		}

		for i, input := range req.Items {
			productID, err := uuid.Parse(input.ProductID)
			if err != nil {
				return fmt.Errorf("items.%d.product_id: %w", i, err)
			}
			if input.ID != "" {
				itemID, err := uuid.Parse(input.ID)
				if err != nil {
					return fmt.Errorf("items.%d.id: %w", i, err)
				}
				item, err := txOrders.FindItem(ctx, id, itemID)
				if err != nil {
					// Unknown item ids are skipped, matching presence-based upsert.
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return err
				}
				item.ProductID = productID
				item.Quantity = input.Quantity
				if err := txOrders.UpdateItem(ctx, item); err != nil {
					return err
				}
				continue
			}
			if err := txOrders.CreateItem(ctx, &models.OrderItem{
				OrderID:   id,
				ProductID: productID,
				Quantity:  input.Quantity,
			}); err != nil {
				return err
			}
		}

		for i, input := range req.Payments {
			if input.ID != "" {
				paymentID, err := uuid.Parse(input.ID)
				if err != nil {
					return fmt.Errorf("payments.%d.id: %w", i, err)
				}
				payment, err := txPayments.FindByOrderAndID(ctx, id, paymentID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return err
				}
				if input.Amount != nil {
					payment.Amount = *input.Amount
				}
				if input.Method != "" {
					payment.Method = input.Method
				}
				if input.Status != "" {
					payment.Status = input.Status
				}
				if input.TransactionID != "" {
					payment.TransactionID = input.TransactionID
				}
				if input.Notes != "" {
					payment.Notes = input.Notes
				}
				if err := txPayments.Update(ctx, payment); err != nil {
					return err
				}
				continue
			}

			amount := 0.0
			if input.Amount != nil {
				amount = *input.Amount
			}
			status := input.Status
			if status == "" {
				status = models.PaymentStatusPending
			}
			if err := txPayments.Create(ctx, &models.Payment{
				OrderID:       id,
				Amount:        amount,
				Method:        input.Method,
				Status:        status,
				TransactionID: input.TransactionID,
				Notes:         input.Notes,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("Failed to update order", zap.String("id", id.String()), zap.Error(txErr))
		return nil, NewInternalError("Failed to update order")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to reload updated order", zap.Error(err))
		return nil, NewInternalError("Failed to update order")
	}
	return order, nil
}
