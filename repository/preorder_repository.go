package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
)

// PreOrderRepository defines data-access operations for pre-orders.
type PreOrderRepository interface {
	Create(ctx context.Context, preOrder *models.PreOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PreOrder, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.PreOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormPreOrderRepository implements PreOrderRepository using GORM.
type GormPreOrderRepository struct {
	db *gorm.DB
}

// NewPreOrderRepository creates a new GormPreOrderRepository.
func NewPreOrderRepository(db *gorm.DB) PreOrderRepository {
	return &GormPreOrderRepository{db: db}
}

func (r *GormPreOrderRepository) Create(ctx context.Context, preOrder *models.PreOrder) error {
	return r.db.WithContext(ctx).Create(preOrder).Error
}

func (r *GormPreOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PreOrder, error) {
	var p models.PreOrder
	if err := r.db.WithContext(ctx).Preload("Product").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPreOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.PreOrder, error) {
	var preOrders []models.PreOrder
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&preOrders).Error; err != nil {
		return nil, err
	}
	return preOrders, nil
}

func (r *GormPreOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PreOrder{}, "id = ?", id).Error
}
