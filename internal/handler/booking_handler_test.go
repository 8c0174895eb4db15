package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/dto"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- Mock BookingService ---

type mockBookingService struct {
	subscribeFn   func(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error)
	unsubscribeFn func(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error)
}

func (m *mockBookingService) Subscribe(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error) {
	return m.subscribeFn(ctx, eventID, user)
}
func (m *mockBookingService) Unsubscribe(ctx context.Context, eventID uuid.UUID, user *models.User) (bool, error) {
	return m.unsubscribeFn(ctx, eventID, user)
}
func (m *mockBookingService) RatingEligibility(ctx context.Context, eventID, userID uuid.UUID, now time.Time) (bool, error) {
	return false, nil
}

// --- Tests ---

func TestSubscribe_Handler_Joined(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	bookings := &mockBookingService{
		subscribeFn: func(ctx context.Context, eventID uuid.UUID, u *models.User) (bool, error) {
			assert.Equal(t, user.ID, u.ID)
			return true, nil
		},
	}

	id := uuid.NewString()
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/events/"+id+"/subscription", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	authenticate(c, user)

	h := NewBookingHandler(bookings, &mockSubscriptionService{}, &mockTicketService{})
	rec = render(c, rec, h.Subscribe(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["joined"])
}

func TestSubscribe_Handler_AlreadySubscribed(t *testing.T) {
	bookings := &mockBookingService{
		subscribeFn: func(ctx context.Context, eventID uuid.UUID, u *models.User) (bool, error) {
			return false, nil
		},
	}

	id := uuid.NewString()
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/events/"+id+"/subscription", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	authenticate(c, &models.User{ID: uuid.New()})

	h := NewBookingHandler(bookings, &mockSubscriptionService{}, &mockTicketService{})
	rec = render(c, rec, h.Subscribe(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp["joined"])
}

func TestSubscribe_Handler_ConflictCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"own event", domain.ErrOwnEvent, domain.ConflictOwnEvent},
		{"full", domain.ErrEventFull, domain.ConflictFull},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := &mockBookingService{
				subscribeFn: func(ctx context.Context, eventID uuid.UUID, u *models.User) (bool, error) {
					return false, tc.err
				},
			}

			id := uuid.NewString()
			c, rec := newTestContext(t, http.MethodPost, "/api/v1/events/"+id+"/subscription", "")
			c.SetParamNames("id")
			c.SetParamValues(id)
			authenticate(c, &models.User{ID: uuid.New()})

			h := NewBookingHandler(bookings, &mockSubscriptionService{}, &mockTicketService{})
			rec = render(c, rec, h.Subscribe(c))

			assert.Equal(t, http.StatusConflict, rec.Code)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp["code"])
		})
	}
}

func TestUnsubscribe_Handler(t *testing.T) {
	bookings := &mockBookingService{
		unsubscribeFn: func(ctx context.Context, eventID uuid.UUID, u *models.User) (bool, error) {
			return true, nil
		},
	}

	id := uuid.NewString()
	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/events/"+id+"/subscription", "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	authenticate(c, &models.User{ID: uuid.New()})

	h := NewBookingHandler(bookings, &mockSubscriptionService{}, &mockTicketService{})
	rec = render(c, rec, h.Unsubscribe(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp["removed"])
}

func TestMySubscriptions_Handler_IncludesTicketCodes(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	event := sampleEvent()

	subs := &mockSubscriptionService{
		listFn: func(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
			return []models.Subscription{{
				ID:      uuid.New(),
				UserID:  user.ID,
				EventID: event.ID,
				Event:   event,
			}}, nil
		},
	}
	tickets := &mockTicketService{
		forUserFn: func(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]models.Ticket, error) {
			return map[uuid.UUID]models.Ticket{event.ID: {Code: "ticket-code-1"}}, nil
		},
	}

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/me/subscriptions", "")
	authenticate(c, user)

	h := NewBookingHandler(&mockBookingService{}, subs, tickets)
	rec = render(c, rec, h.MySubscriptions(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "ticket-code-1", resp[0].TicketCode)
}

func TestSubscribe_Handler_Unauthenticated(t *testing.T) {
	id := uuid.NewString()
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/events/"+id+"/subscription", "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	h := NewBookingHandler(&mockBookingService{}, &mockSubscriptionService{}, &mockTicketService{})
	rec = render(c, rec, h.Subscribe(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
