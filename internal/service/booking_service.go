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

// BookingService coordinates events, the subscription ledger and the
// ticket issuer under one transaction per mutation.
type BookingService interface {
	Subscribe(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error)
	Unsubscribe(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error)
	RatingEligibility(ctx context.Context, eventID, userID uuid.UUID, now time.Time) (bool, error)
}

type bookingService struct {
	eventRepo repository.EventRepository
	subRepo   repository.SubscriptionRepository
	subs      SubscriptionService
	tickets   TicketService
}

func NewBookingService(
	eventRepo repository.EventRepository,
	subRepo repository.SubscriptionRepository,
	subs SubscriptionService,
	tickets TicketService,
) BookingService {
	return &bookingService{eventRepo: eventRepo, subRepo: subRepo, subs: subs, tickets: tickets}
}

// Subscribe registers the user for the event and issues a ticket.
// Returns false without error when the user is already subscribed.
//
// The capacity check and the insert run inside one transaction with
// the event row locked, so two subscribers racing for the last slot
// cannot both get in. The (user, event) unique index backs up the
// duplicate check for the same reason.
func (s *bookingService) Subscribe(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error) {
	var joined bool

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return domain.Unavailable(err)
		}

		if event.CreatorID == user.ID {
			return domain.ErrOwnEvent
		}

		exists, err := s.subRepo.Exists(ctx, tx, user.ID, eventID)
		if err != nil {
			return domain.Unavailable(err)
		}
		if exists {
			return nil // already joined, not an error
		}

		if event.Capacity != nil {
			count, err := s.subRepo.CountByEventID(ctx, tx, eventID)
			if err != nil {
				return domain.Unavailable(err)
			}
			if count >= int64(*event.Capacity) {
				return domain.ErrEventFull
			}
		}

		sub, err := s.subs.Create(ctx, tx, user, event)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil // lost a duplicate race, same outcome as exists
			}
			return domain.Unavailable(err)
		}

		if _, err := s.tickets.Issue(ctx, tx, sub); err != nil {
			return err
		}

		joined = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if joined {
		log.Printf("[Booking] user %s subscribed to event %s", user.ID, eventID)
	}
	return joined, nil
}

// Unsubscribe removes the user's subscription and revokes its ticket.
// Returns false without error when there is nothing to remove.
func (s *bookingService) Unsubscribe(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error) {
	var removed bool

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return domain.Unavailable(err)
		}

		var err error
		removed, err = s.subs.DeleteForUserAndEvent(ctx, tx, user.ID, eventID)
		return err
	})
	if err != nil {
		return false, err
	}

	if removed {
		log.Printf("[Booking] user %s unsubscribed from event %s", user.ID, eventID)
	}
	return removed, nil
}

// RatingEligibility is the read-only predicate the rating collaborator
// consumes: the event must be over and the user must hold a
// subscription to it.
func (s *bookingService) RatingEligibility(ctx context.Context, eventID, userID uuid.UUID, now time.Time) (bool, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrEventNotFound
		}
		return false, domain.Unavailable(err)
	}

	if !now.After(event.EndTime) {
		return false, nil
	}

	return s.subs.Exists(ctx, userID, eventID)
}
