package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/YanislavD/EventApp/internal/repository"
	"github.com/YanislavD/EventApp/pkg/cache"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const activeCategoriesKey = "categories:active"

type CategoryService interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	GetActive(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Cache
}

// NewCategoryService wires the optional read-through cache; a nil
// cache disables caching entirely.
func NewCategoryService(repo repository.CategoryRepository, c *cache.Cache) CategoryService {
	return &categoryService{repo: repo, cache: c}
}

func (s *categoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		var cached []models.Category
		if s.cache.GetJSON(ctx, activeCategoriesKey, &cached) {
			return cached, nil
		}
	}

	categories, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, domain.Unavailable(err)
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, activeCategoriesKey, categories)
	}
	return categories, nil
}

func (s *categoryService) GetActive(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, domain.Unavailable(err)
	}
	if !category.Active {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, domain.Invalid("name", "category name is required")
	}

	// Names are unique case-insensitively; "Music" and "music" are
	// the same category.
	_, err := s.repo.FindByNameIgnoreCase(ctx, trimmed)
	if err == nil {
		return nil, domain.ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.Unavailable(err)
	}

	category := &models.Category{Name: trimmed, Active: true}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrCategoryExists
		}
		return nil, domain.Unavailable(err)
	}

	s.invalidate(ctx)
	log.Printf("[Category] created: %s", category.Name)
	return category, nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, false)
}

func (s *categoryService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, true)
}

func (s *categoryService) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	rows, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return domain.Unavailable(err)
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, activeCategoriesKey)
	}
}
