package repository

import (
	"context"
	"errors"

	"github.com/damoang/angple-press/internal/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repositories bundles the persistence port. Inside UnitOfWork.Do every
// member is bound to the same transaction.
type Repositories struct {
	Posts      PostRepository
	Comments   CommentRepository
	Categories CategoryRepository
	Tags       TagRepository
	Users      UserRepository
}

// NewRepositories creates gorm-backed repositories on db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Posts:      NewPostRepository(db),
		Comments:   NewCommentRepository(db),
		Categories: NewCategoryRepository(db),
		Tags:       NewTagRepository(db),
		Users:      NewUserRepository(db),
	}
}

// UnitOfWork runs a multi-step lifecycle operation as one logical write.
// Returning an error from fn rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r *Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transaction-scoped UnitOfWork
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(r *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// translate maps gorm errors onto the common error kinds. Record-not-found
// becomes notFound; everything else is an opaque storage failure.
func translate(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	return common.StorageError(op, err)
}

// forUpdate adds a row lock where the dialect supports it. SQLite
// serializes writers anyway and rejects FOR UPDATE.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector != nil && db.Dialector.Name() == "mysql" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func offsetFor(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
