package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
)

// CategoryService defines the category business logic.
type CategoryService interface {
	Create(ctx context.Context, req *models.CategoryRequest) (*models.Category, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError)
	Delete(ctx context.Context, id uuid.UUID) *ServiceError
	Get(ctx context.Context, id uuid.UUID) (*models.Category, *ServiceError)
	List(ctx context.Context) ([]models.Category, *ServiceError)
}

type categoryServiceImpl struct {
	repo   repository.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, logger: logger}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	slug := MakeSlug(req.Name)
	exists, err := s.repo.SlugExists(ctx, slug, uuid.Nil)
	if err != nil {
		s.logger.Error("Failed to check category slug", zap.Error(err))
		return nil, NewInternalError("Failed to create category")
	}
	if exists {
		slug = fmt.Sprintf("%s-%s", slug, GenerateRandomCode(4))
	}

	category := &models.Category{ID: uuid.New(), Name: req.Name, Slug: slug}
	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, NewInternalError("Failed to create category")
	}
	return category, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Category not found")
		}
		s.logger.Error("Failed to load category", zap.Error(err))
		return nil, NewInternalError("Failed to update category")
	}

	slug := MakeSlug(req.Name)
	exists, err := s.repo.SlugExists(ctx, slug, id)
	if err != nil {
		s.logger.Error("Failed to check category slug", zap.Error(err))
		return nil, NewInternalError("Failed to update category")
	}
	if exists {
		slug = fmt.Sprintf("%s-%s", slug, GenerateRandomCode(4))
	}

	category.Name = req.Name
	category.Slug = slug
	if err := s.repo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, NewInternalError("Failed to update category")
	}
	return category, nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Category not found")
		}
		s.logger.Error("Failed to load category", zap.Error(err))
		return NewInternalError("Failed to delete category")
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count category products", zap.Error(err))
		return NewInternalError("Failed to delete category")
	}
	if count > 0 {
		return &ServiceError{StatusCode: 409, Message: "Category still has products"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete category", zap.Error(err))
		return NewInternalError("Failed to delete category")
	}
	return nil
}

func (s *categoryServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Category, *ServiceError) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Category not found")
		}
		s.logger.Error("Failed to fetch category", zap.Error(err))
		return nil, NewInternalError("Failed to fetch category")
	}
	return category, nil
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch categories", zap.Error(err))
		return nil, NewInternalError("Failed to fetch categories")
	}
	return categories, nil
}
