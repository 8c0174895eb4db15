package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateEventRequest struct {
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	ImageName   string    `json:"image_name"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gt=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type CreateRatingRequest struct {
	Score int `json:"score" validate:"required,gte=1,lte=5"`
}
