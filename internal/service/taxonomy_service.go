package service

import (
	"context"

	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/repository"
)

// TaxonomyService read access to categories and tags
type TaxonomyService interface {
	ListActiveCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
}

type taxonomyService struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
}

// NewTaxonomyService creates a new TaxonomyService. categories is usually
// the Redis-cached repository.
func NewTaxonomyService(categories repository.CategoryRepository, tags repository.TagRepository) TaxonomyService {
	return &taxonomyService{categories: categories, tags: tags}
}

func (s *taxonomyService) ListActiveCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.ListActive(ctx)
}

func (s *taxonomyService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.FindBySlug(ctx, slug)
}

func (s *taxonomyService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.tags.List(ctx)
}
