package repository

import (
	"context"
	"time"

	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"gorm.io/gorm"
)

// PostRepository post data access
type PostRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindByIDForUpdate(ctx context.Context, id string) (*domain.Post, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) error
	UpdateDraft(ctx context.Context, post *domain.Post) (bool, error)
	ListPublished(ctx context.Context, filter domain.PostListFilter, page, perPage int) ([]*domain.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID string, page, perPage int) ([]*domain.Post, int64, error)
	SlugTakenByOther(ctx context.Context, slug, excludeID string) (bool, error)
	ActiveCategoryCount(ctx context.Context, postID string) (int64, error)
	MarkPublished(ctx context.Context, id, slug string, at time.Time) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translate("find post", err, common.ErrPostNotFound)
	}
	if err := r.loadLinks(ctx, r.db, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translate("lock post", err, common.ErrPostNotFound)
	}
	if err := r.loadLinks(ctx, r.db, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, domain.PostStatusPublished).
		First(&post).Error
	if err != nil {
		return nil, translate("find post by slug", err, common.ErrPostNotFound)
	}
	if err := r.loadLinks(ctx, r.db, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts the post and its category/tag link rows. Callers run it
// inside a UnitOfWork so a failed link insert leaves nothing behind.
func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(post).Error; err != nil {
		return translate("create post", err, nil)
	}
	return insertLinks(db, post)
}

// UpdateDraft rewrites title, content and slug of a draft. A nil
// CategoryIDs or TagIDs leaves that link set untouched; an empty slice
// clears it. It reports false when the row is no longer a draft.
func (r *postRepository) UpdateDraft(ctx context.Context, post *domain.Post) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Post{}).
		Where("id = ? AND status = ?", post.ID, domain.PostStatusDraft).
		Updates(map[string]interface{}{
			"title":      post.Title,
			"content":    post.Content,
			"slug":       post.Slug,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, translate("update draft", res.Error, nil)
	}
	if res.RowsAffected != 1 {
		return false, nil
	}
	if post.CategoryIDs != nil {
		if err := db.Where("post_id = ?", post.ID).Delete(&domain.PostCategory{}).Error; err != nil {
			return false, translate("unlink post categories", err, nil)
		}
		if err := insertCategoryLinks(db, post); err != nil {
			return false, err
		}
	}
	if post.TagIDs != nil {
		if err := db.Where("post_id = ?", post.ID).Delete(&domain.PostTag{}).Error; err != nil {
			return false, translate("unlink post tags", err, nil)
		}
		if err := insertTagLinks(db, post); err != nil {
			return false, err
		}
	}
	return true, nil
}

func insertLinks(db *gorm.DB, post *domain.Post) error {
	if err := insertCategoryLinks(db, post); err != nil {
		return err
	}
	return insertTagLinks(db, post)
}

func insertCategoryLinks(db *gorm.DB, post *domain.Post) error {
	if len(post.CategoryIDs) > 0 {
		links := make([]domain.PostCategory, 0, len(post.CategoryIDs))
		for _, id := range post.CategoryIDs {
			links = append(links, domain.PostCategory{PostID: post.ID, CategoryID: id})
		}
		if err := db.Create(&links).Error; err != nil {
			return translate("link post categories", err, nil)
		}
	}
	return nil
}

func insertTagLinks(db *gorm.DB, post *domain.Post) error {
	if len(post.TagIDs) > 0 {
		links := make([]domain.PostTag, 0, len(post.TagIDs))
		for _, id := range post.TagIDs {
			links = append(links, domain.PostTag{PostID: post.ID, TagID: id})
		}
		if err := db.Create(&links).Error; err != nil {
			return translate("link post tags", err, nil)
		}
	}
	return nil
}

func (r *postRepository) ListPublished(ctx context.Context, filter domain.PostListFilter, page, perPage int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Post{}).Where("posts.status = ?", domain.PostStatusPublished)
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Joins("JOIN categories c ON c.id = pc.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN post_tags pt ON pt.post_id = posts.id").
			Joins("JOIN tags t ON t.id = pt.tag_id").
			Where("t.slug = ?", filter.TagSlug)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count published posts", err, nil)
	}
	if err := query.Select("posts.*").
		Order("posts.published_at DESC, posts.id DESC").
		Offset(offsetFor(page, perPage)).Limit(perPage).
		Find(&posts).Error; err != nil {
		return nil, 0, translate("list published posts", err, nil)
	}
	for _, p := range posts {
		if err := r.loadLinks(ctx, r.db, p); err != nil {
			return nil, 0, err
		}
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, page, perPage int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Post{}).Where("author_id = ?", authorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count author posts", err, nil)
	}
	if err := query.Order("created_at DESC, id DESC").
		Offset(offsetFor(page, perPage)).Limit(perPage).
		Find(&posts).Error; err != nil {
		return nil, 0, translate("list author posts", err, nil)
	}
	for _, p := range posts {
		if err := r.loadLinks(ctx, r.db, p); err != nil {
			return nil, 0, err
		}
	}
	return posts, total, nil
}

// SlugTakenByOther checks published posts only; drafts may share slugs.
func (r *postRepository) SlugTakenByOther(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("slug = ? AND status = ? AND id <> ?", slug, domain.PostStatusPublished, excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate("check slug", err, nil)
	}
	return count > 0, nil
}

func (r *postRepository) ActiveCategoryCount(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PostCategory{}).
		Joins("JOIN categories c ON c.id = post_categories.category_id").
		Where("post_categories.post_id = ? AND c.is_active = ?", postID, true).
		Count(&count).Error
	if err != nil {
		return 0, translate("count active categories", err, nil)
	}
	return count, nil
}

// MarkPublished flips a draft to published. It reports false when the row
// was no longer a draft.
func (r *postRepository) MarkPublished(ctx context.Context, id, slug string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("id = ? AND status = ?", id, domain.PostStatusDraft).
		Updates(map[string]interface{}{
			"status":       domain.PostStatusPublished,
			"slug":         slug,
			"published_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return false, translate("publish post", res.Error, nil)
	}
	return res.RowsAffected == 1, nil
}

func (r *postRepository) loadLinks(ctx context.Context, db *gorm.DB, post *domain.Post) error {
	categoryIDs := []string{}
	if err := db.WithContext(ctx).Model(&domain.PostCategory{}).
		Where("post_id = ?", post.ID).Order("category_id").
		Pluck("category_id", &categoryIDs).Error; err != nil {
		return translate("load post categories", err, nil)
	}
	tagIDs := []string{}
	if err := db.WithContext(ctx).Model(&domain.PostTag{}).
		Where("post_id = ?", post.ID).Order("tag_id").
		Pluck("tag_id", &tagIDs).Error; err != nil {
		return translate("load post tags", err, nil)
	}
	post.CategoryIDs = categoryIDs
	post.TagIDs = tagIDs
	return nil
}
