package service

import (
	"context"
	"errors"
	"log"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/YanislavD/EventApp/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error
	DeleteWithData(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo     repository.UserRepository
	subs     SubscriptionService
	events   EventService
	notifier domain.Notifier
}

func NewUserService(
	repo repository.UserRepository,
	subs SubscriptionService,
	events EventService,
	notifier domain.Notifier,
) UserService {
	return &userService{repo: repo, subs: subs, events: events, notifier: notifier}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" {
		return nil, domain.Invalid("username", "username is required")
	}
	if in.Email == "" {
		return nil, domain.Invalid("email", "email is required")
	}
	if in.Password == "" {
		return nil, domain.Invalid("password", "password is required")
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         models.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, domain.Unavailable(err)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, []domain.Event{domain.NewEvent(domain.UserRegistered, domain.UserPayload{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		})})
	}
	log.Printf("[User] registered: %s", user.Email)
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Unavailable(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Unavailable(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	return users, nil
}

func (s *userService) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return domain.Invalid("role", "unknown role")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == role {
		return domain.ErrRoleUnchanged
	}

	user.Role = role
	if err := s.repo.Save(ctx, user); err != nil {
		return domain.Unavailable(err)
	}
	log.Printf("[User] role updated: %s to %s", user.Email, role)
	return nil
}

// DeleteWithData removes the user and everything hanging off them:
// their own subscriptions (with tickets), then every event they
// created (each with its full cascade), then the user row.
func (s *userService) DeleteWithData(ctx context.Context, userID uuid.UUID) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	err = s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.subs.DeleteAllForUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.events.DeleteAllByCreatorID(ctx, tx, userID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	log.Printf("[User] deleted with related data: %s", user.Email)
	return nil
}
