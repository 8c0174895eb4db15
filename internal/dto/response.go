package dto

import (
	"time"

	"github.com/YanislavD/EventApp/internal/models"
	"github.com/YanislavD/EventApp/internal/rating"
	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CategoryResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// EventResponse is the public view of an event, optionally enriched
// with attendance counters and the viewer's own subscription state.
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	ImageName   string    `json:"image_name,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    *int      `json:"capacity,omitempty"`
	Category    string    `json:"category,omitempty"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Creator     string    `json:"creator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Registered *int64 `json:"registered,omitempty"`
	Remaining  *int64 `json:"remaining,omitempty"`
	Full       *bool  `json:"full,omitempty"`
	Subscribed *bool  `json:"subscribed,omitempty"`
	TicketCode string `json:"ticket_code,omitempty"`

	Rating *rating.Summary `json:"rating,omitempty"`
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		ImageName:   e.ImageName,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Capacity:    e.Capacity,
		CategoryID:  e.CategoryID,
		CreatorID:   e.CreatorID,
		CreatedAt:   e.CreatedAt,
	}
	if e.Category != nil {
		resp.Category = e.Category.Name
	}
	if e.Creator != nil {
		resp.Creator = e.Creator.Username
	}
	return resp
}

// WithAttendance fills the counters derived from the subscription count.
func (r EventResponse) WithAttendance(registered int64) EventResponse {
	r.Registered = &registered
	if r.Capacity != nil {
		remaining := int64(*r.Capacity) - registered
		if remaining < 0 {
			remaining = 0
		}
		full := remaining == 0
		r.Remaining = &remaining
		r.Full = &full
	}
	return r
}

type TicketResponse struct {
	Code     string         `json:"code"`
	IssuedAt time.Time      `json:"issued_at"`
	UsedAt   *time.Time     `json:"used_at,omitempty"`
	Event    *EventResponse `json:"event,omitempty"`
	Holder   string         `json:"holder,omitempty"`
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	resp := TicketResponse{
		Code:     t.Code,
		IssuedAt: t.IssuedAt,
		UsedAt:   t.UsedAt,
	}
	if t.Subscription != nil {
		if t.Subscription.Event != nil {
			event := ToEventResponse(t.Subscription.Event)
			resp.Event = &event
		}
		if t.Subscription.User != nil {
			resp.Holder = t.Subscription.User.Username
		}
	}
	return resp
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func ToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Active: c.Active}
}
