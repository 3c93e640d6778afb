package services_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/services"
)

func createOrderRequest(productID uuid.UUID) *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		Name:    "Jordan Buyer",
		Email:   "buyer@shop.test",
		Phone:   "123456",
		Address: "1 Main St",
		Total:   49.99,
		Items: []models.OrderItemInput{
			{ProductID: productID.String(), Quantity: 1},
		},
		Payment: models.PaymentInput{
			Amount: 49.99,
			Method: "card",
			Status: models.PaymentStatusPending,
		},
	}
}

func TestCreateOrder_UnknownProductRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewOrderService(gormDB, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	order, svcErr := svc.Create(context.Background(), nil, createOrderRequest(uuid.New()))
	assert.Nil(t, order)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.StatusCode)
	assert.Contains(t, svcErr.Fields, "items")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewOrderService(gormDB, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, svcErr := svc.Get(context.Background(), uuid.New())
	assert.Nil(t, order)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestAdminUpdate_SetsUpdatedBy(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewOrderService(gormDB, zap.NewNop())

	orderID := uuid.New()
	actorID := uuid.New()
	now := time.Now()
	orderCols := []string{"id", "name", "email", "status", "total", "is_paid", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(orderID, "Jordan Buyer", "buyer@shop.test", models.OrderStatusPending, 49.99, false, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WithArgs(models.OrderStatusCompleted, actorID, sqlmock.AnyArg(), orderID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows(append(orderCols, "updated_by")).
			AddRow(orderID, "Jordan Buyer", "buyer@shop.test", models.OrderStatusCompleted, 49.99, false, now, now, actorID))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	status := models.OrderStatusCompleted
	order, svcErr := svc.AdminUpdate(context.Background(), orderID, actorID, &models.UpdateOrderRequest{Status: &status})
	require.Nil(t, svcErr)
	require.NotNil(t, order)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.UpdatedBy)
	assert.Equal(t, actorID, *order.UpdatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdate_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewOrderService(gormDB, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	status := models.OrderStatusProcessing
	order, svcErr := svc.AdminUpdate(context.Background(), uuid.New(), uuid.New(), &models.UpdateOrderRequest{Status: &status})
	assert.Nil(t, order)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}
