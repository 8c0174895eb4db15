package repository

import (
	"context"

	"github.com/YanislavD/EventApp/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	FindByCode(ctx context.Context, code string) (*models.Ticket, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error)
	DeleteBySubscriptionID(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) FindByCode(ctx context.Context, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Subscription").
		Preload("Subscription.Event").
		Preload("Subscription.User").
		Where("code = ?", code).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Subscription").
		Joins("JOIN subscriptions ON subscriptions.id = tickets.subscription_id").
		Where("subscriptions.user_id = ?", userID).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) DeleteBySubscriptionID(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (int64, error) {
	res := tx.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Delete(&models.Ticket{})
	return res.RowsAffected, res.Error
}
