package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/rating"
	"github.com/google/uuid"
)

type RatingService interface {
	Create(ctx context.Context, eventID, userID uuid.UUID, score int) (*rating.Rating, error)
	SummaryForEvent(ctx context.Context, eventID uuid.UUID) *rating.Summary
	HasUserRated(ctx context.Context, eventID, userID uuid.UUID) bool
}

type ratingService struct {
	client   *rating.Client
	bookings BookingService
}

func NewRatingService(client *rating.Client, bookings BookingService) RatingService {
	return &ratingService{client: client, bookings: bookings}
}

// Create enforces eligibility locally before talking to the rating
// service: only past events the user was subscribed to are ratable.
func (s *ratingService) Create(ctx context.Context, eventID, userID uuid.UUID, score int) (*rating.Rating, error) {
	eligible, err := s.bookings.RatingEligibility(ctx, eventID, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, domain.ErrForbidden
	}

	result, err := s.client.CreateRating(ctx, rating.CreateRequest{
		EventID: eventID,
		UserID:  userID,
		Score:   score,
	})
	if err != nil {
		if errors.Is(err, rating.ErrAlreadyRated) {
			return nil, domain.ErrAlreadyRated
		}
		log.Printf("[Rating] create failed for event %s: %v", eventID, err)
		return nil, domain.Unavailable(err)
	}
	return result, nil
}

// SummaryForEvent never fails: an unreachable rating service means an
// empty summary, not a booking error.
func (s *ratingService) SummaryForEvent(ctx context.Context, eventID uuid.UUID) *rating.Summary {
	summary, err := s.client.SummaryForEvent(ctx, eventID)
	if err != nil {
		log.Printf("[Rating] summary fetch failed for event %s: %v", eventID, err)
		return &rating.Summary{EventID: eventID, Ratings: []rating.Rating{}}
	}
	return summary
}

func (s *ratingService) HasUserRated(ctx context.Context, eventID, userID uuid.UUID) bool {
	rated, err := s.client.HasUserRated(ctx, eventID, userID)
	if err != nil {
		log.Printf("[Rating] has-rated check failed for event %s: %v", eventID, err)
		return false
	}
	return rated
}
