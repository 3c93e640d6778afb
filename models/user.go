package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User model
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	Phone        string     `gorm:"size:20" json:"phone,omitempty"`
	Address      string     `gorm:"size:500" json:"address,omitempty"`
	Role         string     `gorm:"type:varchar(50);default:'customer'" json:"role"`
	Otp          string     `gorm:"size:6" json:"-"`
	OtpExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// RefreshToken stores issued refresh tokens for rotation and revocation
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TokenID   string    `gorm:"unique;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Revoked   bool      `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Migrate runs auto migration for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Category{},
		&Product{},
		&ProductImage{},
		&CustomizationItem{},
		&CustomizationImage{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&PreOrder{},
		&Contact{},
		&Subscriber{},
	)
}
