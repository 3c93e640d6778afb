package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
)

// ContactRepository defines data-access operations for contact messages
// and newsletter subscribers.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	FindAllContacts(ctx context.Context) ([]models.Contact, error)
	FindContactByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error

	CreateSubscriber(ctx context.Context, sub *models.Subscriber) error
	FindAllSubscribers(ctx context.Context) ([]models.Subscriber, error)
	SubscriberExists(ctx context.Context, email string) (bool, error)
}

// GormContactRepository implements ContactRepository using GORM.
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new GormContactRepository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) CreateContact(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *GormContactRepository) FindAllContacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *GormContactRepository) FindContactByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var c models.Contact
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormContactRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id).Error
}

func (r *GormContactRepository) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *GormContactRepository) FindAllSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *GormContactRepository) SubscriberExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
