package service

import (
	"context"
	"errors"
	"time"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/YanislavD/EventApp/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService is the ledger of who is registered for what.
// Every deletion path revokes the subscription's ticket before the
// subscription row goes away, so the ticket 1:1 invariant holds even
// in the middle of a bulk cascade.
type SubscriptionService interface {
	Exists(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	CountForEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error)
	ListForEvent(ctx context.Context, eventID uuid.UUID) ([]models.Subscription, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User, event *models.Event) (*models.Subscription, error)
	DeleteForUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (bool, error)
	DeleteAllForEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error
	DeleteAllForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type subscriptionService struct {
	repo    repository.SubscriptionRepository
	tickets TicketService
}

func NewSubscriptionService(repo repository.SubscriptionRepository, tickets TicketService) SubscriptionService {
	return &subscriptionService{repo: repo, tickets: tickets}
}

func (s *subscriptionService) Exists(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	exists, err := s.repo.Exists(ctx, s.repo.GetDB(), userID, eventID)
	if err != nil {
		return false, domain.Unavailable(err)
	}
	return exists, nil
}

func (s *subscriptionService) CountForEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	count, err := s.repo.CountByEventID(ctx, s.repo.GetDB(), eventID)
	if err != nil {
		return 0, domain.Unavailable(err)
	}
	return count, nil
}

func (s *subscriptionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	subs, err := s.repo.FindWithEventsByUserID(ctx, userID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return subs, nil
}

func (s *subscriptionService) ListForEvent(ctx context.Context, eventID uuid.UUID) ([]models.Subscription, error) {
	subs, err := s.repo.FindByEventID(ctx, s.repo.GetDB(), eventID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return subs, nil
}

func (s *subscriptionService) Create(ctx context.Context, tx *gorm.DB, user *models.User, event *models.Event) (*models.Subscription, error) {
	if user == nil {
		return nil, domain.Invalid("user", "user is required")
	}
	if event == nil {
		return nil, domain.Invalid("event", "event is required")
	}

	sub := &models.Subscription{
		UserID:       user.ID,
		EventID:      event.ID,
		SubscribedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, tx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteForUserAndEvent removes one subscription and its ticket.
// Absence is not an error: it reports false and leaves the ledger alone.
func (s *subscriptionService) DeleteForUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (bool, error) {
	sub, err := s.repo.FindByUserAndEvent(ctx, tx, userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, domain.Unavailable(err)
	}
	if err := s.deleteOne(ctx, tx, sub); err != nil {
		return false, err
	}
	return true, nil
}

func (s *subscriptionService) DeleteAllForEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	subs, err := s.repo.FindByEventID(ctx, tx, eventID)
	if err != nil {
		return domain.Unavailable(err)
	}
	for i := range subs {
		if err := s.deleteOne(ctx, tx, &subs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *subscriptionService) DeleteAllForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	subs, err := s.repo.FindByUserID(ctx, tx, userID)
	if err != nil {
		return domain.Unavailable(err)
	}
	for i := range subs {
		if err := s.deleteOne(ctx, tx, &subs[i]); err != nil {
			return err
		}
	}
	return nil
}

// deleteOne removes the ticket first, then the subscription row.
func (s *subscriptionService) deleteOne(ctx context.Context, tx *gorm.DB, sub *models.Subscription) error {
	if err := s.tickets.RevokeForSubscription(ctx, tx, sub.ID); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, tx, sub.ID); err != nil {
		return domain.Unavailable(err)
	}
	return nil
}
