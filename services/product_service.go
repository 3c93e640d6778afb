package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
	"github.com/ahsan-alam-500/tonycustom/storage"
)

// Media folders.
const (
	folderMain           = "products/main"
	folderGallery        = "products/gallery"
	folderCustomizations = "products/customizations"
)

// ProductService defines the product business logic.
type ProductService interface {
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, *ServiceError)
	Delete(ctx context.Context, id uuid.UUID) *ServiceError
	Get(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError)
	GetBySlug(ctx context.Context, slug string) (*models.Product, *ServiceError)
	List(ctx context.Context, filter models.ProductFilter, page, limit int) ([]models.Product, int64, *ServiceError)
}

type productServiceImpl struct {
	db     *gorm.DB
	repo   repository.ProductRepository
	store  storage.MediaStore
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(db *gorm.DB, store storage.MediaStore, logger *zap.Logger) ProductService {
	return &productServiceImpl{
		db:     db,
		repo:   repository.NewProductRepository(db),
		store:  store,
		logger: logger,
	}
}

// stagedFiles tracks files written before the DB transaction so they can
// be removed again when the transaction rolls back.
type stagedFiles struct {
	store storage.MediaStore
	paths []string
}

func (s *stagedFiles) put(ctx context.Context, folder, payload, field string) (string, *ServiceError) {
	data, ext, err := storage.DecodeBase64Image(payload)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImageType) || errors.Is(err, storage.ErrDecodeFailed) {
			return "", NewValidationError(field, err.Error())
		}
		return "", NewInternalError("Failed to process image")
	}

	path, putErr := s.store.Put(ctx, folder, ext, data)
	if putErr != nil {
		return "", NewInternalError("Failed to save image to storage")
	}
	s.paths = append(s.paths, path)
	return path, nil
}

// discard removes everything staged so far; used on rollback.
func (s *stagedFiles) discard(ctx context.Context, logger *zap.Logger) {
	for _, p := range s.paths {
		if err := s.store.Delete(ctx, p); err != nil {
			logger.Warn("Failed to remove staged file", zap.String("path", p), zap.Error(err))
		}
	}
}

// stagedGalleryItem is one decoded customization entry ready to persist.
type stagedGalleryItem struct {
	name   string
	images []string
}

func (s *productServiceImpl) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, *ServiceError) {
	if svcErr := validateOfferPrice(req); svcErr != nil {
		return nil, svcErr
	}

	categoryID, svcErr := s.resolveCategory(ctx, req.CategoryID)
	if svcErr != nil {
		return nil, svcErr
	}

	slug, svcErr := s.resolveSlug(ctx, req, uuid.Nil)
	if svcErr != nil {
		return nil, svcErr
	}

	staged := &stagedFiles{store: s.store}

	mainPath := ""
	if req.Image != "" {
		if mainPath, svcErr = staged.put(ctx, folderMain, req.Image, "image"); svcErr != nil {
			staged.discard(ctx, s.logger)
			return nil, svcErr
		}
	}

	galleryPaths, svcErr := s.stageGallery(ctx, staged, req)
	if svcErr != nil {
		staged.discard(ctx, s.logger)
		return nil, svcErr
	}

	kinds, svcErr := s.stageCustomizations(ctx, staged, req)
	if svcErr != nil {
		staged.discard(ctx, s.logger)
		return nil, svcErr
	}

	product := &models.Product{
		ID:               uuid.New(),
		Name:             req.Name,
		Slug:             slug,
		Type:             req.Type,
		Price:            req.Price,
		OfferPrice:       req.OfferPrice,
		Status:           *req.Status,
		CategoryID:       categoryID,
		Image:            mainPath,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repository.NewProductRepository(tx)

		if err := txRepo.Create(ctx, product); err != nil {
			return err
		}
		for _, path := range galleryPaths {
			if err := txRepo.CreateGalleryImage(ctx, &models.ProductImage{ProductID: product.ID, Image: path}); err != nil {
				return err
			}
		}
		return createCustomizations(ctx, txRepo, product.ID, kinds)
	})
	if txErr != nil {
		staged.discard(ctx, s.logger)
		s.logger.Error("Failed to create product", zap.Error(txErr))
		return nil, NewInternalError("Failed to create product")
	}

	created, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		s.logger.Error("Failed to reload created product", zap.Error(err))
		return product, nil
	}
	return created, nil
}

func (s *productServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, *ServiceError) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product not found")
		}
		s.logger.Error("Failed to load product", zap.Error(err))
		return nil, NewInternalError("Failed to update product")
	}

	if svcErr := validateOfferPrice(req); svcErr != nil {
		return nil, svcErr
	}

	categoryID, svcErr := s.resolveCategory(ctx, req.CategoryID)
	if svcErr != nil {
		return nil, svcErr
	}

	slug, svcErr := s.resolveSlug(ctx, req, id)
	if svcErr != nil {
		return nil, svcErr
	}

	staged := &stagedFiles{store: s.store}
	var oldPaths []string

	mainPath := existing.Image
	if req.Image != "" {
		if mainPath, svcErr = staged.put(ctx, folderMain, req.Image, "image"); svcErr != nil {
			staged.discard(ctx, s.logger)
			return nil, svcErr
		}
		if existing.Image != "" {
			oldPaths = append(oldPaths, existing.Image)
		}
	}

	var galleryPaths []string
	replaceGallery := req.Images != nil
	if replaceGallery {
		if galleryPaths, svcErr = s.stageGallery(ctx, staged, req); svcErr != nil {
			staged.discard(ctx, s.logger)
			return nil, svcErr
		}
		for _, img := range existing.Images {
			oldPaths = append(oldPaths, img.Image)
		}
	}

	kinds, svcErr := s.stageCustomizations(ctx, staged, req)
	if svcErr != nil {
		staged.discard(ctx, s.logger)
		return nil, svcErr
	}
	// Submitted kinds are destructively replaced: their previous files
	// become unreferenced once the transaction commits.
	for _, item := range existing.Customizations {
		if _, submitted := kinds[item.Kind]; !submitted {
			continue
		}
		for _, img := range item.Images {
			oldPaths = append(oldPaths, img.Image)
		}
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repository.NewProductRepository(tx)

		updated := &models.Product{
			ID:               existing.ID,
			Name:             req.Name,
			Slug:             slug,
			Type:             req.Type,
			Price:            req.Price,
			OfferPrice:       req.OfferPrice,
			Status:           *req.Status,
			CategoryID:       categoryID,
			Image:            mainPath,
			ShortDescription: req.ShortDescription,
			Description:      req.Description,
			CreatedAt:        existing.CreatedAt,
		}
		if err := txRepo.Update(ctx, updated); err != nil {
			return err
		}

		if replaceGallery {
			if err := txRepo.DeleteGalleryImages(ctx, existing.ID); err != nil {
				return err
			}
			for _, path := range galleryPaths {
				if err := txRepo.CreateGalleryImage(ctx, &models.ProductImage{ProductID: existing.ID, Image: path}); err != nil {
					return err
				}
			}
		}

		for kind := range kinds {
			if err := txRepo.DeleteCustomizationKind(ctx, existing.ID, kind); err != nil {
				return err
			}
		}
		return createCustomizations(ctx, txRepo, existing.ID, kinds)
	})
	if txErr != nil {
		staged.discard(ctx, s.logger)
		s.logger.Error("Failed to update product", zap.String("id", id.String()), zap.Error(txErr))
		return nil, NewInternalError("Failed to update product")
	}

	// Committed; the previous files are unreferenced now.
	s.deleteFiles(ctx, oldPaths)

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to reload updated product", zap.Error(err))
		return existing, nil
	}
	return updated, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Product not found")
		}
		s.logger.Error("Failed to load product", zap.Error(err))
		return NewInternalError("Failed to delete product")
	}

	var paths []string
	if product.Image != "" {
		paths = append(paths, product.Image)
	}
	for _, img := range product.Images {
		paths = append(paths, img.Image)
	}
	for _, item := range product.Customizations {
		for _, img := range item.Images {
			paths = append(paths, img.Image)
		}
	}

	// Row first: gallery and customization rows go via FK cascade, files
	// are removed only after the delete is durable.
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.String("id", id.String()), zap.Error(err))
		return NewInternalError("Failed to delete product")
	}

	s.deleteFiles(ctx, paths)
	return nil
}

func (s *productServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Error(err))
		return nil, NewInternalError("Failed to fetch product")
	}
	return product, nil
}

func (s *productServiceImpl) GetBySlug(ctx context.Context, slug string) (*models.Product, *ServiceError) {
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Error(err))
		return nil, NewInternalError("Failed to fetch product")
	}
	return product, nil
}

func (s *productServiceImpl) List(ctx context.Context, filter models.ProductFilter, page, limit int) ([]models.Product, int64, *ServiceError) {
	products, total, err := s.repo.FindAll(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		return nil, 0, NewInternalError("Failed to fetch products")
	}
	return products, total, nil
}

func validateOfferPrice(req *models.ProductRequest) *ServiceError {
	if req.OfferPrice != nil && *req.OfferPrice >= req.Price {
		return NewValidationError("offer_price", "offer_price must be less than price")
	}
	return nil
}

func (s *productServiceImpl) resolveCategory(ctx context.Context, raw string) (uuid.UUID, *ServiceError) {
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError("category_id", "category_id must be a valid UUID")
	}

	catRepo := repository.NewCategoryRepository(s.db)
	if _, err := catRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, NewValidationError("category_id", "category does not exist")
		}
		s.logger.Error("Failed to look up category", zap.Error(err))
		return uuid.Nil, NewInternalError("Failed to save product")
	}
	return categoryID, nil
}

// resolveSlug picks the submitted or generated slug, suffixing with a
// random number to keep uniqueness.
func (s *productServiceImpl) resolveSlug(ctx context.Context, req *models.ProductRequest, excludeID uuid.UUID) (string, *ServiceError) {
	slug := req.Slug
	if slug == "" {
		slug = MakeSlug(req.Name)
	}

	exists, err := s.repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		s.logger.Error("Failed to check slug", zap.Error(err))
		return "", NewInternalError("Failed to save product")
	}
	if exists {
		if req.Slug != "" {
			return "", NewValidationError("slug", "slug already taken")
		}
		slug = fmt.Sprintf("%s-%s", slug, GenerateRandomCode(4))
	}
	return slug, nil
}

func (s *productServiceImpl) stageGallery(ctx context.Context, staged *stagedFiles, req *models.ProductRequest) ([]string, *ServiceError) {
	if req.Images == nil {
		return nil, nil
	}

	var paths []string
	for i, payload := range *req.Images {
		if payload == "" {
			continue
		}
		path, svcErr := staged.put(ctx, folderGallery, payload, fmt.Sprintf("images.%d", i))
		if svcErr != nil {
			return nil, svcErr
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// stageCustomizations decodes and stages every submitted gallery image,
// one routine for all kinds.
func (s *productServiceImpl) stageCustomizations(ctx context.Context, staged *stagedFiles, req *models.ProductRequest) (map[string][]stagedGalleryItem, *ServiceError) {
	out := make(map[string][]stagedGalleryItem)
	for kind, items := range req.Galleries() {
		prepared := make([]stagedGalleryItem, 0, len(items))
		for i, item := range items {
			entry := stagedGalleryItem{name: item.Name}
			for j, payload := range item.Images {
				field := fmt.Sprintf("%s.%d.images.%d", kind, i, j)
				path, svcErr := staged.put(ctx, folderCustomizations+"/"+kind, payload, field)
				if svcErr != nil {
					return nil, svcErr
				}
				entry.images = append(entry.images, path)
			}
			prepared = append(prepared, entry)
		}
		out[kind] = prepared
	}
	return out, nil
}

func createCustomizations(ctx context.Context, repo repository.ProductRepository, productID uuid.UUID, kinds map[string][]stagedGalleryItem) error {
	for kind, items := range kinds {
		for _, entry := range items {
			item := &models.CustomizationItem{
				ID:        uuid.New(),
				ProductID: productID,
				Kind:      kind,
				Name:      entry.name,
			}
			if err := repo.CreateCustomizationItem(ctx, item); err != nil {
				return err
			}
			for _, path := range entry.images {
				if err := repo.CreateCustomizationImage(ctx, &models.CustomizationImage{ItemID: item.ID, Image: path}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *productServiceImpl) deleteFiles(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil {
			s.logger.Warn("Failed to delete stored file", zap.String("path", p), zap.Error(err))
		}
	}
}

// MakeSlug lowercases a name and collapses non-alphanumerics to hyphens.
func MakeSlug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
