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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// fakeMailer records sends instead of talking to SMTP.
type fakeMailer struct {
	otpTo   string
	otpCode string
	err     error
}

func (m *fakeMailer) SendOtpEmail(to, otp string) error {
	m.otpTo = to
	m.otpCode = otp
	return m.err
}

func (m *fakeMailer) SendContactNotification(_ *models.Contact) error { return m.err }

func userColumns() []string {
	return []string{"id", "name", "email", "password", "phone", "address", "role", "otp", "otp_expires_at", "created_at", "updated_at"}
}

func userRow(id uuid.UUID, email, password, otp string, otpExpires *time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns()).
		AddRow(id, "Test User", email, password, "", "", "customer", otp, otpExpires, now, now)
}

func newAuthService(db *gorm.DB, mailer services.EmailSender) *services.AuthService {
	return services.NewAuthService(db, services.NewTokenService("test-secret"), mailer, zap.NewNop())
}

func TestLogin_UnknownEmail(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := newAuthService(gormDB, &fakeMailer{})

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, _, svcErr := svc.Login(context.Background(), "nobody@shop.test", "secret123")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	assert.Equal(t, "Invalid email or password", svcErr.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := newAuthService(gormDB, &fakeMailer{})

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRow(uuid.New(), "user@shop.test", string(hashed), "", nil))

	_, _, svcErr := svc.Login(context.Background(), "user@shop.test", "wrong-password")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
}

func TestVerifyOtp_Valid(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := newAuthService(gormDB, &fakeMailer{})

	expires := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRow(uuid.New(), "user@shop.test", "x", "1234", &expires))

	assert.Nil(t, svc.VerifyOtp(context.Background(), "user@shop.test", "1234"))
}

func TestVerifyOtp_WrongCode(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := newAuthService(gormDB, &fakeMailer{})

	expires := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRow(uuid.New(), "user@shop.test", "x", "1234", &expires))

	svcErr := svc.VerifyOtp(context.Background(), "user@shop.test", "9999")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	assert.Equal(t, "Invalid OTP", svcErr.Message)
}

func TestVerifyOtp_Expired(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := newAuthService(gormDB, &fakeMailer{})

	expires := time.Now().Add(-time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRow(uuid.New(), "user@shop.test", "x", "1234", &expires))

	svcErr := svc.VerifyOtp(context.Background(), "user@shop.test", "1234")
	require.NotNil(t, svcErr)
	assert.Equal(t, "OTP expired", svcErr.Message)
}

func TestSendOtp_StoresAndMails(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	mailer := &fakeMailer{}
	svc := newAuthService(gormDB, mailer)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRow(uuid.New(), "user@shop.test", "x", "", nil))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.Nil(t, svc.SendOtp(context.Background(), "user@shop.test"))
	assert.Equal(t, "user@shop.test", mailer.otpTo)
	assert.Len(t, mailer.otpCode, 4)
}

func TestSendOtp_UnknownUser(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := newAuthService(gormDB, &fakeMailer{})

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	svcErr := svc.SendOtp(context.Background(), "nobody@shop.test")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}
