package repository

import (
	"context"
	"time"

	"github.com/YanislavD/EventApp/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortField selects the listing order for event queries.
type SortField string

const (
	SortByStartTime    SortField = "start_time"
	SortByCategoryName SortField = "category"
)

type EventSort struct {
	Field SortField
	Desc  bool
}

type EventRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.Event) error
	Save(ctx context.Context, tx *gorm.DB, event *models.Event) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error)
	FindUpcoming(ctx context.Context, now time.Time, sort EventSort) ([]models.Event, error)
	FindPast(ctx context.Context, now time.Time, sort EventSort) ([]models.Event, error)
	FindByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]models.Event, error)
	FindEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Save(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&models.Event{}, "id = ?", id).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the
// given transaction, serializing concurrent subscribe attempts on the
// same event. SQLite has a single writer, so the clause is only added
// on Postgres.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error) {
	q := tx.WithContext(ctx)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var event models.Event
	if err := q.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindUpcoming(ctx context.Context, now time.Time, sort EventSort) ([]models.Event, error) {
	return r.findPartitioned(ctx, "end_time > ?", now, sort)
}

func (r *eventRepository) FindPast(ctx context.Context, now time.Time, sort EventSort) ([]models.Event, error) {
	return r.findPartitioned(ctx, "end_time <= ?", now, sort)
}

func (r *eventRepository) findPartitioned(ctx context.Context, cond string, now time.Time, sort EventSort) ([]models.Event, error) {
	q := r.db.WithContext(ctx).
		Joins("Category").
		Joins("Creator").
		Where(cond, now)

	switch sort.Field {
	case SortByCategoryName:
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Table: "Category", Name: "name"},
			Desc:   sort.Desc,
		})
	default:
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: "start_time"},
			Desc:   sort.Desc,
		})
	}

	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := tx.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("end_time < ?", cutoff).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
