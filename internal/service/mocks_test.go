package service

import (
	"context"
	"time"

	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/repository"
	"github.com/stretchr/testify/mock"
)

// --- Mock PostRepository ---

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) FindByIDForUpdate(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) UpdateDraft(ctx context.Context, post *domain.Post) (bool, error) {
	args := m.Called(ctx, post)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) ListPublished(ctx context.Context, filter domain.PostListFilter, page, perPage int) ([]*domain.Post, int64, error) {
	args := m.Called(ctx, filter, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID string, page, perPage int) ([]*domain.Post, int64, error) {
	args := m.Called(ctx, authorID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) SlugTakenByOther(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) ActiveCategoryCount(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepo) MarkPublished(ctx context.Context, id, slug string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, slug, at)
	return args.Bool(0), args.Error(1)
}

// --- Mock CommentRepository ---

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) ListApprovedTopLevel(ctx context.Context, postID string, sort domain.CommentSort, page, perPage int) ([]*domain.Comment, int64, error) {
	args := m.Called(ctx, postID, sort, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *mockCommentRepo) ListApprovedReplies(ctx context.Context, parentID string) ([]*domain.Comment, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) ListPending(ctx context.Context) ([]*domain.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) SetModerated(ctx context.Context, id string, status domain.CommentStatus, approvedAt *time.Time) (bool, error) {
	args := m.Called(ctx, id, status, approvedAt)
	return args.Bool(0), args.Error(1)
}

// --- Mock CategoryRepository / TagRepository / UserRepository ---

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListActive(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) List(ctx context.Context) ([]*domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- fake UnitOfWork ---

// passthroughUoW runs fn against the same mocks without a transaction
type passthroughUoW struct {
	repos *repository.Repositories
}

func (u passthroughUoW) Do(_ context.Context, fn func(r *repository.Repositories) error) error {
	return fn(u.repos)
}

type mockSet struct {
	posts      *mockPostRepo
	comments   *mockCommentRepo
	categories *mockCategoryRepo
	tags       *mockTagRepo
	users      *mockUserRepo
	repos      *repository.Repositories
}

func newMockSet() *mockSet {
	m := &mockSet{
		posts:      new(mockPostRepo),
		comments:   new(mockCommentRepo),
		categories: new(mockCategoryRepo),
		tags:       new(mockTagRepo),
		users:      new(mockUserRepo),
	}
	m.repos = &repository.Repositories{
		Posts:      m.posts,
		Comments:   m.comments,
		Categories: m.categories,
		Tags:       m.tags,
		Users:      m.users,
	}
	return m
}

func (m *mockSet) uow() repository.UnitOfWork {
	return passthroughUoW{repos: m.repos}
}
