package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
)

// ProductRepository defines data-access operations for products and the
// customization galleries hanging off them.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, filter models.ProductFilter, page, limit int) ([]models.Product, int64, error)

	CreateGalleryImage(ctx context.Context, img *models.ProductImage) error
	DeleteGalleryImages(ctx context.Context, productID uuid.UUID) error
	CreateCustomizationItem(ctx context.Context, item *models.CustomizationItem) error
	CreateCustomizationImage(ctx context.Context, img *models.CustomizationImage) error
	DeleteCustomizationKind(ctx context.Context, productID uuid.UUID, kind string) error
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new GormProductRepository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Preload("Customizations.Images").
		First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Preload("Customizations.Images").
		Where("slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter models.ProductFilter, page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Category").
		Preload("Images").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *GormProductRepository) CreateGalleryImage(ctx context.Context, img *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *GormProductRepository) DeleteGalleryImages(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductImage{}).Error
}

func (r *GormProductRepository) CreateCustomizationItem(ctx context.Context, item *models.CustomizationItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormProductRepository) CreateCustomizationImage(ctx context.Context, img *models.CustomizationImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

// DeleteCustomizationKind removes every item of one gallery kind; image
// rows go with them via FK cascade.
func (r *GormProductRepository) DeleteCustomizationKind(ctx context.Context, productID uuid.UUID, kind string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND kind = ?", productID, kind).
		Delete(&models.CustomizationItem{}).Error
}
