package repository

import (
	"context"

	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"gorm.io/gorm"
)

// CategoryRepository category data access
type CategoryRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListActive(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	var categories []*domain.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, translate("find categories", err, nil)
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate("find category", err, common.ErrNotFound)
	}
	return &category, nil
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, translate("list categories", err, nil)
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return translate("create category", r.db.WithContext(ctx).Create(category).Error, nil)
}

// TagRepository tag data access
type TagRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, translate("find tags", err, nil)
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, translate("list tags", err, nil)
	}
	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	return translate("create tag", r.db.WithContext(ctx).Create(tag).Error, nil)
}
