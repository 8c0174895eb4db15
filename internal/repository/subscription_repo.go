package repository

import (
	"context"

	"github.com/YanislavD/EventApp/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error
	Exists(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (bool, error)
	CountByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
	FindByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (*models.Subscription, error)
	FindWithEventsByUserID(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error)
	FindByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.Subscription, error)
	FindByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]models.Subscription, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	GetDB() *gorm.DB
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *subscriptionRepository) Create(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error {
	return tx.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) Exists(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) CountByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) FindByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := tx.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindWithEventsByUserID is the listing query: subscriptions with
// their events and categories preloaded.
func (r *subscriptionRepository) FindWithEventsByUserID(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Category").
		Where("user_id = ?", userID).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) FindByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) FindByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := tx.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&models.Subscription{}, "id = ?", id).Error
}
