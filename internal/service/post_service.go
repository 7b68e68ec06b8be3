package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/damoang/angple-press/internal/authz"
	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/repository"
	"github.com/damoang/angple-press/internal/slug"
	"github.com/damoang/angple-press/internal/validation"
	"github.com/damoang/angple-press/pkg/cache"
	"github.com/damoang/angple-press/pkg/logger"
)

// PostService business logic for the post lifecycle
type PostService interface {
	CreateDraft(ctx context.Context, actor domain.Actor, req *domain.CreatePostRequest) (*domain.PostResponse, error)
	UpdateDraft(ctx context.Context, actor domain.Actor, postID string, req *domain.UpdatePostRequest) (*domain.PostResponse, error)
	Publish(ctx context.Context, actor domain.Actor, postID string) (*domain.PostResponse, error)
	GetPublished(ctx context.Context, id string) (*domain.PostResponse, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.PostResponse, error)
	ListPublished(ctx context.Context, filter domain.PostListFilter, page, perPage int) ([]*domain.PostResponse, *common.Meta, error)
	ListMine(ctx context.Context, actor domain.Actor, page, perPage int) ([]*domain.PostResponse, *common.Meta, error)
}

type postService struct {
	repos *repository.Repositories
	uow   repository.UnitOfWork
	cache cache.Service
	now   func() time.Time
}

// NewPostService creates a new PostService. cacheSvc may be nil.
func NewPostService(repos *repository.Repositories, uow repository.UnitOfWork, cacheSvc cache.Service) PostService {
	if cacheSvc == nil {
		cacheSvc = cache.NewService(nil)
	}
	return &postService{repos: repos, uow: uow, cache: cacheSvc, now: time.Now}
}

// CreateDraft creates a draft. The slug is derived from the title without
// any uniqueness check; drafts may share slugs.
func (s *postService) CreateDraft(ctx context.Context, actor domain.Actor, req *domain.CreatePostRequest) (*domain.PostResponse, error) {
	if !authz.Can(actor, authz.ActionCreatePost, authz.Resource{}) {
		return nil, common.ErrForbidden
	}
	if err := validation.ValidateCreatePost(req); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	post := &domain.Post{
		Title:       title,
		Content:     req.Content,
		Slug:        slug.Slugify(title),
		AuthorID:    actor.ID,
		Status:      domain.PostStatusDraft,
		CategoryIDs: dedupe(req.CategoryIDs),
		TagIDs:      dedupe(req.TagIDs),
	}

	err := s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := checkCategoriesExist(ctx, r.Categories, post.CategoryIDs); err != nil {
			return err
		}
		if err := checkTagsExist(ctx, r.Tags, post.TagIDs); err != nil {
			return err
		}
		return r.Posts.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	postsCreatedTotal.Inc()
	logger.GetLogger().Info().
		Str("post_id", post.ID).
		Str("author_id", actor.ID).
		Msg("draft created")

	return post.ToResponse(), nil
}

// UpdateDraft edits a draft in place. Published posts are immutable.
func (s *postService) UpdateDraft(ctx context.Context, actor domain.Actor, postID string, req *domain.UpdatePostRequest) (*domain.PostResponse, error) {
	var updated *domain.Post

	err := s.uow.Do(ctx, func(r *repository.Repositories) error {
		post, err := r.Posts.FindByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}
		if post.Status != domain.PostStatusDraft {
			return common.ErrPostNotDraft
		}
		if !authz.Can(actor, authz.ActionUpdatePost, authz.Resource{OwnerID: post.AuthorID}) {
			return common.ErrForbidden
		}
		if err := validation.ValidateUpdatePost(req); err != nil {
			return err
		}

		post.Title = strings.TrimSpace(req.Title)
		post.Content = req.Content
		post.Slug = slug.Slugify(post.Title)
		if req.CategoryIDs != nil {
			post.CategoryIDs = dedupe(req.CategoryIDs)
		}
		if req.TagIDs != nil {
			post.TagIDs = dedupe(req.TagIDs)
		}
		if err := checkCategoriesExist(ctx, r.Categories, post.CategoryIDs); err != nil {
			return err
		}
		if err := checkTagsExist(ctx, r.Tags, post.TagIDs); err != nil {
			return err
		}

		ok, err := r.Posts.UpdateDraft(ctx, post)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrPostNotDraft
		}
		updated, err = r.Posts.FindByID(ctx, post.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Info().
		Str("post_id", updated.ID).
		Str("actor_id", actor.ID).
		Msg("draft updated")

	return updated.ToResponse(), nil
}

// Publish moves a draft to published. Preconditions are checked in a fixed
// order and the first failure wins: exists, is draft, actor may publish,
// content length, active category, unique slug.
func (s *postService) Publish(ctx context.Context, actor domain.Actor, postID string) (*domain.PostResponse, error) {
	var published *domain.Post

	err := s.uow.Do(ctx, func(r *repository.Repositories) error {
		post, err := r.Posts.FindByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}
		if post.Status != domain.PostStatusDraft {
			return common.ErrPostNotDraft
		}
		if !authz.Can(actor, authz.ActionPublishPost, authz.Resource{OwnerID: post.AuthorID}) {
			return common.ErrForbidden
		}
		if err := validation.ValidatePublishContent(post.Content); err != nil {
			return err
		}
		n, err := r.Posts.ActiveCategoryCount(ctx, post.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return common.ErrNoActiveCategory
		}

		resolved, err := slug.Resolve(ctx, slug.Slugify(post.Title), post.ID, r.Posts)
		if err != nil {
			return err
		}

		ok, err := r.Posts.MarkPublished(ctx, post.ID, resolved, s.now())
		if err != nil {
			return err
		}
		if !ok {
			// a concurrent publish won
			return common.ErrPostNotDraft
		}

		published, err = r.Posts.FindByID(ctx, post.ID)
		return err
	})
	if err != nil {
		publishRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	postsPublishedTotal.Inc()
	logger.GetLogger().Info().
		Str("post_id", published.ID).
		Str("actor_id", actor.ID).
		Str("slug", published.Slug).
		Msg("post published")

	resp := published.ToResponse()
	s.cacheSet(ctx, resp)
	return resp, nil
}

// GetPublished returns a published post. Drafts and archived posts are
// NotFound for every requester.
func (s *postService) GetPublished(ctx context.Context, id string) (*domain.PostResponse, error) {
	var cached domain.PostResponse
	if err := s.cache.Get(ctx, cache.PostKey(id), &cached); err == nil {
		return &cached, nil
	}

	post, err := s.repos.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, common.ErrPostNotFound
	}
	resp := post.ToResponse()
	s.cacheSet(ctx, resp)
	return resp, nil
}

// GetPublishedBySlug returns the published post holding slug
func (s *postService) GetPublishedBySlug(ctx context.Context, slugValue string) (*domain.PostResponse, error) {
	var cached domain.PostResponse
	if err := s.cache.Get(ctx, cache.PostSlugKey(slugValue), &cached); err == nil {
		return &cached, nil
	}

	post, err := s.repos.Posts.FindPublishedBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	resp := post.ToResponse()
	s.cacheSet(ctx, resp)
	return resp, nil
}

// ListPublished retrieves paginated published posts, newest first
func (s *postService) ListPublished(ctx context.Context, filter domain.PostListFilter, page, perPage int) ([]*domain.PostResponse, *common.Meta, error) {
	page, perPage = normalizePage(page, perPage)

	posts, total, err := s.repos.Posts.ListPublished(ctx, filter, page, perPage)
	if err != nil {
		return nil, nil, err
	}
	return toPostResponses(posts), common.NewMeta(page, perPage, total), nil
}

// ListMine lists the actor's own posts in every state. This is separate
// from the public read path.
func (s *postService) ListMine(ctx context.Context, actor domain.Actor, page, perPage int) ([]*domain.PostResponse, *common.Meta, error) {
	if !authz.Can(actor, authz.ActionListOwnPosts, authz.Resource{}) {
		return nil, nil, common.ErrForbidden
	}
	page, perPage = normalizePage(page, perPage)

	posts, total, err := s.repos.Posts.ListByAuthor(ctx, actor.ID, page, perPage)
	if err != nil {
		return nil, nil, err
	}
	return toPostResponses(posts), common.NewMeta(page, perPage, total), nil
}

// cacheSet stores a published post under its id and slug keys. Failures
// only cost a cache miss later.
func (s *postService) cacheSet(ctx context.Context, resp *domain.PostResponse) {
	if !s.cache.IsAvailable() || resp.Status != domain.PostStatusPublished {
		return
	}
	for _, key := range []string{cache.PostKey(resp.ID), cache.PostSlugKey(resp.Slug)} {
		if err := s.cache.Set(ctx, key, resp, cache.TTLPost); err != nil {
			logger.GetLogger().Debug().Err(err).Str("key", key).Msg("post cache write failed")
		}
	}
}

func checkCategoriesExist(ctx context.Context, repo repository.CategoryRepository, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(found))
	for _, c := range found {
		seen[c.ID] = true
	}
	for _, id := range ids {
		if !seen[id] {
			return fmt.Errorf("%w: %s", common.ErrCategoryNotFound, id)
		}
	}
	return nil
}

func checkTagsExist(ctx context.Context, repo repository.TagRepository, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(found))
	for _, t := range found {
		seen[t.ID] = true
	}
	for _, id := range ids {
		if !seen[id] {
			return fmt.Errorf("%w: %s", common.ErrTagNotFound, id)
		}
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return "not_found"
	case errors.Is(err, common.ErrSlugExhausted):
		return "slug_exhausted"
	case errors.Is(err, common.ErrConflict):
		return "not_draft"
	case errors.Is(err, common.ErrForbidden):
		return "forbidden"
	case errors.Is(err, common.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}

func toPostResponses(posts []*domain.Post) []*domain.PostResponse {
	responses := make([]*domain.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = post.ToResponse()
	}
	return responses
}

// normalizePage applies the listing defaults: page ≥ 1, 1 ≤ perPage ≤ 100
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
