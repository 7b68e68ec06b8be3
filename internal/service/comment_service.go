package service

import (
	"context"
	"errors"
	"time"

	"github.com/damoang/angple-press/internal/authz"
	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/repository"
	"github.com/damoang/angple-press/internal/validation"
	"github.com/damoang/angple-press/pkg/logger"
)

// CommentService business logic for comment submission and moderation
type CommentService interface {
	Submit(ctx context.Context, actor domain.Actor, postID string, req *domain.SubmitCommentRequest) (*domain.CommentResponse, error)
	Moderate(ctx context.Context, actor domain.Actor, commentID string, req *domain.ModerateCommentRequest) (*domain.ModerationResult, error)
	ListApproved(ctx context.Context, postID string, sort domain.CommentSort, page, perPage int) ([]*domain.ThreadedComment, *common.Meta, error)
	ListPending(ctx context.Context, actor domain.Actor) ([]*domain.CommentResponse, error)
}

type commentService struct {
	repos *repository.Repositories
	uow   repository.UnitOfWork
	now   func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(repos *repository.Repositories, uow repository.UnitOfWork) CommentService {
	return &commentService{repos: repos, uow: uow, now: time.Now}
}

// Submit creates a pending comment on a published post
func (s *commentService) Submit(ctx context.Context, actor domain.Actor, postID string, req *domain.SubmitCommentRequest) (*domain.CommentResponse, error) {
	if actor.ID == "" {
		return nil, common.ErrUnauthenticated
	}
	if !authz.Can(actor, authz.ActionSubmitComment, authz.Resource{}) {
		return nil, common.ErrForbidden
	}

	post, err := s.repos.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, common.ErrPostNotFound
	}

	if err := validation.ValidateCommentContent(req.Content); err != nil {
		return nil, err
	}
	if err := validation.ValidateParentID(req.ParentCommentID); err != nil {
		return nil, err
	}

	if req.ParentCommentID != nil {
		parent, err := s.repos.Comments.FindByID(ctx, *req.ParentCommentID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrParentCommentNotFound
			}
			return nil, err
		}
		// 답글은 한 단계까지만
		if parent.PostID != post.ID || parent.Status != domain.CommentStatusApproved || !parent.IsTopLevel() {
			return nil, common.ErrParentCommentNotFound
		}
	}

	comment := &domain.Comment{
		PostID:          post.ID,
		AuthorID:        actor.ID,
		Content:         req.Content,
		Status:          domain.CommentStatusPending,
		ParentCommentID: req.ParentCommentID,
		CreatedAt:       s.now(),
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Users.Upsert(ctx, &domain.User{ID: actor.ID, Email: actor.Email, Role: actor.Role}); err != nil {
			return err
		}
		return r.Comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}

	commentsSubmittedTotal.Inc()
	logger.GetLogger().Info().
		Str("comment_id", comment.ID).
		Str("post_id", post.ID).
		Str("author_id", actor.ID).
		Msg("comment submitted")

	comment.Author = &domain.User{ID: actor.ID, Email: actor.Email}
	return comment.ToResponse(), nil
}

// Moderate moves a pending comment to its terminal state. A second call on
// the same comment always fails with ErrAlreadyModerated.
func (s *commentService) Moderate(ctx context.Context, actor domain.Actor, commentID string, req *domain.ModerateCommentRequest) (*domain.ModerationResult, error) {
	if actor.ID == "" {
		return nil, common.ErrUnauthenticated
	}

	var moderated *domain.Comment
	err := s.uow.Do(ctx, func(r *repository.Repositories) error {
		comment, err := r.Comments.FindByID(ctx, commentID)
		if err != nil {
			return err
		}
		post, err := r.Posts.FindByID(ctx, comment.PostID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrCommentNotFound
			}
			return err
		}
		if !authz.Can(actor, authz.ActionModerateComment, authz.Resource{OwnerID: post.AuthorID}) {
			return common.ErrForbidden
		}
		if comment.Status != domain.CommentStatusPending {
			return common.ErrAlreadyModerated
		}
		target, err := validation.ValidateModerationStatus(req.Status)
		if err != nil {
			return err
		}

		var approvedAt *time.Time
		if target == domain.CommentStatusApproved {
			now := s.now()
			approvedAt = &now
		}
		ok, err := r.Comments.SetModerated(ctx, comment.ID, target, approvedAt)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrAlreadyModerated
		}

		comment.Status = target
		comment.ApprovedAt = approvedAt
		moderated = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	commentsModeratedTotal.WithLabelValues(string(moderated.Status)).Inc()
	logger.GetLogger().Info().
		Str("comment_id", moderated.ID).
		Str("actor_id", actor.ID).
		Str("status", string(moderated.Status)).
		Msg("comment moderated")

	if moderated.Status == domain.CommentStatusApproved {
		return &domain.ModerationResult{Approved: moderated.ToResponse()}, nil
	}
	return &domain.ModerationResult{Minimal: &domain.ModeratedCommentMinimal{
		ID:     moderated.ID,
		PostID: moderated.PostID,
		Status: moderated.Status,
	}}, nil
}

// ListApproved returns approved top-level comments of a published post,
// each with its approved replies oldest-first. A failed reply fetch leaves
// that comment with no replies instead of failing the listing.
func (s *commentService) ListApproved(ctx context.Context, postID string, sort domain.CommentSort, page, perPage int) ([]*domain.ThreadedComment, *common.Meta, error) {
	post, err := s.repos.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if !post.IsPublished() {
		return nil, nil, common.ErrPostNotFound
	}

	page, perPage = normalizePage(page, perPage)
	comments, total, err := s.repos.Comments.ListApprovedTopLevel(ctx, post.ID, sort, page, perPage)
	if err != nil {
		return nil, nil, err
	}

	threads := make([]*domain.ThreadedComment, 0, len(comments))
	for _, c := range comments {
		result := s.fetchReplies(ctx, c)
		thread := &domain.ThreadedComment{
			CommentResponse: c.ToResponse(),
			Replies:         make([]*domain.CommentResponse, 0, len(result.Replies)),
			RepliesDegraded: result.State == domain.ReplyStateDegraded,
		}
		for _, reply := range result.Replies {
			thread.Replies = append(thread.Replies, reply.ToResponse())
		}
		threads = append(threads, thread)
	}

	return threads, common.NewMeta(page, perPage, total), nil
}

func (s *commentService) fetchReplies(ctx context.Context, parent *domain.Comment) domain.ReplyResult {
	replies, err := s.repos.Comments.ListApprovedReplies(ctx, parent.ID)
	if err != nil {
		replyFetchDegradedTotal.Inc()
		logger.GetLogger().Warn().
			Err(err).
			Str("comment_id", parent.ID).
			Msg("reply fetch failed, showing comment without replies")
		return domain.ReplyResult{State: domain.ReplyStateDegraded, Reason: err.Error()}
	}
	return domain.ReplyResult{State: domain.ReplyStateOK, Replies: replies}
}

// ListPending returns every pending comment oldest-first (admin only)
func (s *commentService) ListPending(ctx context.Context, actor domain.Actor) ([]*domain.CommentResponse, error) {
	if actor.ID == "" {
		return nil, common.ErrUnauthenticated
	}
	if !authz.Can(actor, authz.ActionListPendingComments, authz.Resource{}) {
		return nil, common.ErrForbidden
	}

	comments, err := s.repos.Comments.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*domain.CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = c.ToResponse()
	}
	return responses, nil
}
