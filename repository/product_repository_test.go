package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestSlugExists_True(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WithArgs("custom-card").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.SlugExists(context.Background(), "custom-card", uuid.Nil)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestSlugExists_False(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WithArgs("free-slug").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.SlugExists(context.Background(), "free-slug", uuid.Nil)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestFindBySlug_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	p, err := repo.FindBySlug(context.Background(), "missing")
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteGalleryImages(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewProductRepository(gormDB)

	productID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "product_images"`)).
		WithArgs(productID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	assert.NoError(t, repo.DeleteGalleryImages(context.Background(), productID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomizationKind(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewProductRepository(gormDB)

	productID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "customization_items"`)).
		WithArgs(productID, "skin_tones").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	assert.NoError(t, repo.DeleteCustomizationKind(context.Background(), productID, "skin_tones"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
