package repository

import (
	"context"
	"time"

	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository comment data access
type CommentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) error
	ListApprovedTopLevel(ctx context.Context, postID string, sort domain.CommentSort, page, perPage int) ([]*domain.Comment, int64, error)
	ListApprovedReplies(ctx context.Context, parentID string) ([]*domain.Comment, error)
	ListPending(ctx context.Context) ([]*domain.Comment, error)
	SetModerated(ctx context.Context, id string, status domain.CommentStatus, approvedAt *time.Time) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, translate("find comment", err, common.ErrCommentNotFound)
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(comment).Error; err != nil {
		return translate("create comment", err, nil)
	}
	return nil
}

func (r *commentRepository) ListApprovedTopLevel(ctx context.Context, postID string, sort domain.CommentSort, page, perPage int) ([]*domain.Comment, int64, error) {
	var comments []*domain.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("post_id = ? AND status = ? AND parent_comment_id IS NULL", postID, domain.CommentStatusApproved)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate("count comments", err, nil)
	}

	order := "created_at DESC, id DESC"
	if sort == domain.CommentSortOldest {
		order = "created_at ASC, id ASC"
	}
	if err := query.Preload("Author").Order(order).
		Offset(offsetFor(page, perPage)).Limit(perPage).
		Find(&comments).Error; err != nil {
		return nil, 0, translate("list comments", err, nil)
	}
	return comments, total, nil
}

// ListApprovedReplies is always oldest-first
func (r *commentRepository) ListApprovedReplies(ctx context.Context, parentID string) ([]*domain.Comment, error) {
	var replies []*domain.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("parent_comment_id = ? AND status = ?", parentID, domain.CommentStatusApproved).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, translate("list replies", err, nil)
	}
	return replies, nil
}

// ListPending returns every pending comment oldest-first, unpaginated.
func (r *commentRepository) ListPending(ctx context.Context) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("status = ?", domain.CommentStatusPending).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, translate("list pending comments", err, nil)
	}
	return comments, nil
}

// SetModerated moves a pending comment to status. It reports false when
// the comment had already left pending.
func (r *commentRepository) SetModerated(ctx context.Context, id string, status domain.CommentStatus, approvedAt *time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("id = ? AND status = ?", id, domain.CommentStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_at": approvedAt,
		})
	if res.Error != nil {
		return false, translate("moderate comment", res.Error, nil)
	}
	return res.RowsAffected == 1, nil
}
