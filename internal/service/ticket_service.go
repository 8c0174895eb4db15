package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/YanislavD/EventApp/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// issueAttempts bounds the retry loop on ticket code collisions. A
// collision between random UUIDs is statistically negligible, so
// hitting the bound means something else owns the unique index.
const issueAttempts = 3

type TicketService interface {
	Issue(ctx context.Context, tx *gorm.DB, sub *models.Subscription) (*models.Ticket, error)
	ResolveByCode(ctx context.Context, code string) (*models.Ticket, error)
	ForUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]models.Ticket, error)
	RevokeForSubscription(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) error
	AuthorizeView(ctx context.Context, code string, requester *models.User) (*models.Ticket, error)
}

type ticketService struct {
	repo repository.TicketRepository
}

func NewTicketService(repo repository.TicketRepository) TicketService {
	return &ticketService{repo: repo}
}

// Issue mints a ticket for a fresh subscription inside the caller's
// transaction. Each attempt runs in a savepoint so a duplicate-code
// insert does not poison the outer transaction.
func (s *ticketService) Issue(ctx context.Context, tx *gorm.DB, sub *models.Subscription) (*models.Ticket, error) {
	if sub == nil {
		return nil, domain.Invalid("subscription", "subscription is required for ticket issuing")
	}

	for attempt := 0; attempt < issueAttempts; attempt++ {
		ticket := &models.Ticket{
			SubscriptionID: sub.ID,
			Code:           uuid.NewString(),
			IssuedAt:       time.Now(),
		}
		err := tx.Transaction(func(sp *gorm.DB) error {
			return s.repo.Create(ctx, sp, ticket)
		})
		if err == nil {
			log.Printf("[Ticket] issued for subscription %s", sub.ID)
			return ticket, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Unavailable(err)
		}
	}
	return nil, domain.ErrTicketCodeCollision
}

func (s *ticketService) ResolveByCode(ctx context.Context, code string) (*models.Ticket, error) {
	ticket, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, domain.Unavailable(err)
	}
	return ticket, nil
}

// ForUser maps event id to the user's ticket, one per subscribed event.
func (s *ticketService) ForUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]models.Ticket, error) {
	tickets, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	byEvent := make(map[uuid.UUID]models.Ticket, len(tickets))
	for _, t := range tickets {
		if t.Subscription == nil {
			continue
		}
		byEvent[t.Subscription.EventID] = t
	}
	return byEvent, nil
}

// RevokeForSubscription is idempotent: revoking an already-revoked
// (or never-issued) ticket is a no-op.
func (s *ticketService) RevokeForSubscription(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) error {
	if _, err := s.repo.DeleteBySubscriptionID(ctx, tx, subscriptionID); err != nil {
		return domain.Unavailable(err)
	}
	return nil
}

func (s *ticketService) AuthorizeView(ctx context.Context, code string, requester *models.User) (*models.Ticket, error) {
	ticket, err := s.ResolveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	isOwner := ticket.Subscription != nil && ticket.Subscription.UserID == requester.ID
	if !isOwner && !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return ticket, nil
}
