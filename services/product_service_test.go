package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/services"
	"github.com/ahsan-alam-500/tonycustom/storage"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

// fakeStore records writes and deletes in memory.
type fakeStore struct {
	puts    []string
	deletes []string
}

func (f *fakeStore) Put(_ context.Context, folder, ext string, _ []byte) (string, error) {
	path := folder + "/file-" + uuid.NewString()[:8] + "." + ext
	f.puts = append(f.puts, path)
	return path, nil
}

func (f *fakeStore) Delete(_ context.Context, path string) error {
	f.deletes = append(f.deletes, path)
	return nil
}

var _ storage.MediaStore = (*fakeStore)(nil)

func productRequest(categoryID uuid.UUID) *models.ProductRequest {
	status := true
	return &models.ProductRequest{
		Name:       "Custom Card",
		Type:       models.ProductTypeSimple,
		Price:      49.99,
		Status:     &status,
		CategoryID: categoryID.String(),
	}
}

func TestCreateProduct_OfferPriceMustBeBelowPrice(t *testing.T) {
	gormDB, _ := setupMockDB(t)
	store := &fakeStore{}
	svc := services.NewProductService(gormDB, store, zap.NewNop())

	req := productRequest(uuid.New())
	offer := 60.0
	req.OfferPrice = &offer

	product, svcErr := svc.Create(context.Background(), req)
	assert.Nil(t, product)
	require.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)
	assert.Contains(t, svcErr.Fields, "offer_price")
	assert.Empty(t, store.puts)
}

func TestCreateProduct_EqualOfferPriceRejected(t *testing.T) {
	gormDB, _ := setupMockDB(t)
	svc := services.NewProductService(gormDB, &fakeStore{}, zap.NewNop())

	req := productRequest(uuid.New())
	offer := req.Price
	req.OfferPrice = &offer

	_, svcErr := svc.Create(context.Background(), req)
	require.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &fakeStore{}
	svc := services.NewProductService(gormDB, store, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, svcErr := svc.Create(context.Background(), productRequest(uuid.New()))
	require.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)
	assert.Contains(t, svcErr.Fields, "category_id")
	assert.Empty(t, store.puts)
}

func TestCreateProduct_BadImageWritesNoFile(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &fakeStore{}
	svc := services.NewProductService(gormDB, store, zap.NewNop())

	categoryID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at", "updated_at"}).
			AddRow(categoryID, "Cards", "cards", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := productRequest(categoryID)
	req.Image = "data:image/bmp;base64,AAAA"

	product, svcErr := svc.Create(context.Background(), req)
	assert.Nil(t, product)
	require.NotNil(t, svcErr)
	assert.Equal(t, 422, svcErr.StatusCode)
	assert.Contains(t, svcErr.Fields, "image")
	assert.Empty(t, store.puts)
}

func productColumns() []string {
	return []string{"id", "name", "slug", "type", "price", "status", "category_id", "image", "created_at", "updated_at"}
}

func categoryRows(categoryID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "slug", "created_at", "updated_at"}).
		AddRow(categoryID, "Cards", "cards", now, now)
}

func TestUpdateProduct_ReplacesSubmittedKindFiles(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &fakeStore{}
	svc := services.NewProductService(gormDB, store, zap.NewNop())

	productID := uuid.New()
	categoryID := uuid.New()
	itemID := uuid.New()
	now := time.Now()

	oldMain := "products/main/old.png"
	oldSkinTone := "products/customizations/skin_tones/old.png"

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(productID, "Custom Card", "custom-card", models.ProductTypeCustomizable, 49.99, true, categoryID, oldMain, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(categoryRows(categoryID))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customization_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "kind", "name", "created_at"}).
			AddRow(itemID, productID, models.KindSkinTones, "Light", now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customization_images"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "image", "created_at"}).
			AddRow(uuid.New(), itemID, oldSkinTone, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_images"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(categoryRows(categoryID))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "customization_items"`)).
		WithArgs(productID, models.KindSkinTones).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "customization_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "customization_images"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	// Reload after commit; not found falls back to the already loaded row.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	status := true
	req := &models.ProductRequest{
		Name:       "Custom Card",
		Type:       models.ProductTypeCustomizable,
		Price:      49.99,
		Status:     &status,
		CategoryID: categoryID.String(),
		Image:      "data:image/png;base64,AAAA",
		SkinTones: []models.CustomizationItemInput{
			{Name: "Dark", Images: []string{"data:image/png;base64,AAAA"}},
		},
	}

	updated, svcErr := svc.Update(context.Background(), productID, req)
	require.Nil(t, svcErr)
	require.NotNil(t, updated)

	assert.Len(t, store.puts, 2)
	assert.ElementsMatch(t, []string{oldMain, oldSkinTone}, store.deletes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct_FailedTxDiscardsStagedFiles(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &fakeStore{}
	svc := services.NewProductService(gormDB, store, zap.NewNop())

	productID := uuid.New()
	categoryID := uuid.New()
	now := time.Now()
	oldMain := "products/main/old.png"

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(productID, "Custom Card", "custom-card", models.ProductTypeSimple, 49.99, true, categoryID, oldMain, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(categoryRows(categoryID))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customization_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_images"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(categoryRows(categoryID))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products"`)).
		WillReturnError(errors.New("server closed the connection"))
	mock.ExpectRollback()

	req := productRequest(categoryID)
	req.Image = "data:image/png;base64,AAAA"

	updated, svcErr := svc.Update(context.Background(), productID, req)
	assert.Nil(t, updated)
	require.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)

	require.Len(t, store.puts, 1)
	assert.Equal(t, store.puts, store.deletes)
	assert.NotContains(t, store.deletes, oldMain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProduct_RemovesAllOwnedFiles(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := &fakeStore{}
	svc := services.NewProductService(gormDB, store, zap.NewNop())

	productID := uuid.New()
	categoryID := uuid.New()
	itemID := uuid.New()
	now := time.Now()

	mainPath := "products/main/1.png"
	galleryPath := "products/gallery/2.png"
	custPath := "products/customizations/skin_tones/3.png"

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(productID, "Custom Card", "custom-card", models.ProductTypeCustomizable, 49.99, true, categoryID, mainPath, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(categoryRows(categoryID))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customization_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "kind", "name", "created_at"}).
			AddRow(itemID, productID, models.KindSkinTones, "Light", now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customization_images"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "image", "created_at"}).
			AddRow(uuid.New(), itemID, custPath, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_images"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "image", "created_at"}).
			AddRow(uuid.New(), productID, galleryPath, now))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svcErr := svc.Delete(context.Background(), productID)
	require.Nil(t, svcErr)
	assert.ElementsMatch(t, []string{mainPath, galleryPath, custPath}, store.deletes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewProductService(gormDB, &fakeStore{}, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	product, svcErr := svc.Get(context.Background(), uuid.New())
	assert.Nil(t, product)
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestMakeSlug(t *testing.T) {
	cases := map[string]string{
		"Custom Trading Card": "custom-trading-card",
		"  Spaced  Out  ":     "spaced-out",
		"Crown #1 (Gold)":     "crown-1-gold",
		"UPPER":               "upper",
	}
	for in, want := range cases {
		assert.Equal(t, want, services.MakeSlug(in))
	}
}
