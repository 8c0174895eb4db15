package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/YanislavD/EventApp/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database limited to a single
// connection so concurrent transactions serialize the same way row
// locks do on Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Subscription{},
		&models.Ticket{},
	))
	return db
}

type testEnv struct {
	db         *gorm.DB
	categories CategoryService
	tickets    TicketService
	subs       SubscriptionService
	events     EventService
	bookings   BookingService
	users      UserService
	notifier   *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	notifier := &recordingNotifier{}
	ticketSvc := NewTicketService(repository.NewTicketRepository(db))
	subSvc := NewSubscriptionService(repository.NewSubscriptionRepository(db), ticketSvc)
	categorySvc := NewCategoryService(repository.NewCategoryRepository(db), nil)
	eventRepo := repository.NewEventRepository(db)
	eventSvc := NewEventService(eventRepo, categorySvc, subSvc, notifier)
	bookingSvc := NewBookingService(eventRepo, repository.NewSubscriptionRepository(db), subSvc, ticketSvc)
	userSvc := NewUserService(repository.NewUserRepository(db), subSvc, eventSvc, notifier)

	return &testEnv{
		db:         db,
		categories: categorySvc,
		tickets:    ticketSvc,
		subs:       subSvc,
		events:     eventSvc,
		bookings:   bookingSvc,
		users:      userSvc,
		notifier:   notifier,
	}
}

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, events []domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, events...)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]string, len(n.events))
	for i, e := range n.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// --- fixtures ---

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createAdmin(t *testing.T, username string) *models.User {
	t.Helper()
	user := env.createUser(t, username)
	user.Role = models.RoleAdmin
	require.NoError(t, env.db.Save(user).Error)
	return user
}

func (env *testEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := env.categories.Create(context.Background(), name)
	require.NoError(t, err)
	return category
}

func (env *testEnv) createEvent(t *testing.T, creator *models.User, category *models.Category, capacity *int, start, end time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:       "Test Event",
		StartTime:  start,
		EndTime:    end,
		Capacity:   capacity,
		CategoryID: category.ID,
		CreatorID:  creator.ID,
	}
	require.NoError(t, env.db.Create(event).Error)
	return event
}

func intPtr(n int) *int { return &n }

func futureWindow() (time.Time, time.Time) {
	start := time.Now().Add(24 * time.Hour)
	return start, start.Add(2 * time.Hour)
}

func pastWindow() (time.Time, time.Time) {
	end := time.Now().Add(-24 * time.Hour)
	return end.Add(-2 * time.Hour), end
}
