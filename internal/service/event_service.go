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

// EventInput carries the mutable fields of an event. The creator is
// never part of it: ownership is fixed at creation.
type EventInput struct {
	Name        string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	ImageName   string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    *int
	CategoryID  uuid.UUID
}

type EventService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Create(ctx context.Context, in EventInput, creator *models.User) (*models.Event, error)
	Update(ctx context.Context, id uuid.UUID, in EventInput, actingUser *models.User) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID, actingUser *models.User) error
	ListUpcoming(ctx context.Context, now time.Time, sort repository.EventSort) ([]models.Event, error)
	ListPast(ctx context.Context, now time.Time, sort repository.EventSort) ([]models.Event, error)
	DeleteAllByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) error
	DeleteOlderThan(ctx context.Context, days int) (int, error)
}

type eventService struct {
	repo       repository.EventRepository
	categories CategoryService
	subs       SubscriptionService
	notifier   domain.Notifier
}

func NewEventService(
	repo repository.EventRepository,
	categories CategoryService,
	subs SubscriptionService,
	notifier domain.Notifier,
) EventService {
	return &eventService{repo: repo, categories: categories, subs: subs, notifier: notifier}
}

func (s *eventService) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, domain.Unavailable(err)
	}
	return event, nil
}

// validateSchedule is the authoritative check; form validation at the
// edge is a convenience, not a guarantee.
func validateSchedule(in EventInput) error {
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return domain.Invalid("start_time", "start and end time are required")
	}
	if !in.EndTime.After(in.StartTime) {
		return domain.Invalid("end_time", "end time must be after start time")
	}
	if in.Capacity != nil && *in.Capacity <= 0 {
		return domain.Invalid("capacity", "capacity must be positive")
	}
	return nil
}

func (s *eventService) resolveCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, domain.Invalid("category_id", "category is required")
	}
	category, err := s.categories.GetActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, domain.Invalid("category_id", "category not found or inactive")
		}
		return nil, err
	}
	return category, nil
}

func (s *eventService) Create(ctx context.Context, in EventInput, creator *models.User) (*models.Event, error) {
	if creator == nil {
		return nil, domain.Invalid("creator", "creator is required")
	}
	if in.Name == "" {
		return nil, domain.Invalid("name", "event name is required")
	}
	if err := validateSchedule(in); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		ImageName:   in.ImageName,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Capacity:    in.Capacity,
		CategoryID:  category.ID,
		CreatorID:   creator.ID,
	}
	if err := s.repo.Create(ctx, s.repo.GetDB(), event); err != nil {
		return nil, domain.Unavailable(err)
	}

	s.notify(ctx, domain.NewEvent(domain.EventCreated, domain.EventPayload{
		EventID:   event.ID,
		Name:      event.Name,
		CreatorID: creator.ID,
	}))
	log.Printf("[Event] created: %s by user %s", event.Name, creator.ID)
	return event, nil
}

// Update is creator-only. Admins may delete events but not edit them;
// the asymmetry is deliberate.
func (s *eventService) Update(ctx context.Context, id uuid.UUID, in EventInput, actingUser *models.User) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatorID != actingUser.ID {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.Invalid("name", "event name is required")
	}
	if err := validateSchedule(in); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	event.Name = in.Name
	event.Description = in.Description
	event.Location = in.Location
	event.Latitude = in.Latitude
	event.Longitude = in.Longitude
	event.ImageName = in.ImageName
	event.StartTime = in.StartTime
	event.EndTime = in.EndTime
	event.Capacity = in.Capacity
	event.CategoryID = category.ID
	event.Category = nil

	if err := s.repo.Save(ctx, s.repo.GetDB(), event); err != nil {
		return nil, domain.Unavailable(err)
	}
	log.Printf("[Event] updated: %s by user %s", event.Name, actingUser.ID)
	return event, nil
}

// Delete cascades children before the parent: tickets go with their
// subscriptions, subscriptions go before the event row.
func (s *eventService) Delete(ctx context.Context, id uuid.UUID, actingUser *models.User) error {
	var deleted *models.Event

	err := s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return domain.Unavailable(err)
		}

		if event.CreatorID != actingUser.ID && !actingUser.IsAdmin() {
			return domain.ErrForbidden
		}

		if err := s.subs.DeleteAllForEvent(ctx, tx, event.ID); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, event.ID); err != nil {
			return domain.Unavailable(err)
		}
		deleted = event
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, domain.NewEvent(domain.EventDeleted, domain.EventPayload{
		EventID: deleted.ID,
		Name:    deleted.Name,
	}))
	log.Printf("[Event] deleted: %s by user %s", deleted.Name, actingUser.ID)
	return nil
}

func (s *eventService) ListUpcoming(ctx context.Context, now time.Time, sort repository.EventSort) ([]models.Event, error) {
	events, err := s.repo.FindUpcoming(ctx, now, sort)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return events, nil
}

func (s *eventService) ListPast(ctx context.Context, now time.Time, sort repository.EventSort) ([]models.Event, error) {
	events, err := s.repo.FindPast(ctx, now, sort)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return events, nil
}

// DeleteAllByCreatorID removes every event the user created, each with
// its full subscription/ticket cascade. Runs in the caller's
// transaction as part of user deletion.
func (s *eventService) DeleteAllByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) error {
	events, err := s.repo.FindByCreatorID(ctx, tx, creatorID)
	if err != nil {
		return domain.Unavailable(err)
	}
	for i := range events {
		if err := s.subs.DeleteAllForEvent(ctx, tx, events[i].ID); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, events[i].ID); err != nil {
			return domain.Unavailable(err)
		}
		log.Printf("[Event] deleted as part of user cleanup: %s", events[i].Name)
	}
	return nil
}

// DeleteOlderThan expires events whose end time is past the retention
// cutoff. Each event gets its own transaction; a failure is logged and
// the batch moves on, leaving the event for the next run.
func (s *eventService) DeleteOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	events, err := s.repo.FindEndedBefore(ctx, cutoff)
	if err != nil {
		return 0, domain.Unavailable(err)
	}

	deleted := 0
	for i := range events {
		event := &events[i]
		err := s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.subs.DeleteAllForEvent(ctx, tx, event.ID); err != nil {
				return err
			}
			return s.repo.Delete(ctx, tx, event.ID)
		})
		if err != nil {
			log.Printf("[Cleanup] failed to delete event %s: %v", event.ID, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (s *eventService) notify(ctx context.Context, events ...domain.Event) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, events)
	}
}
