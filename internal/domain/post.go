package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus is the lifecycle state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	// PostStatusArchived exists in the schema; no code path produces it.
	PostStatusArchived PostStatus = "archived"
)

// Post is an authored article. Drafts have no published_at and their slug
// may collide with other drafts.
type Post struct {
	ID          string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Title       string     `gorm:"column:title;type:varchar(200)" json:"title"`
	Content     string     `gorm:"column:content;type:mediumtext" json:"content"`
	Slug        string     `gorm:"column:slug;type:varchar(255);index" json:"slug"`
	AuthorID    string     `gorm:"column:author_id;type:char(36);index" json:"author_id"`
	Status      PostStatus `gorm:"column:status;type:varchar(20);index;default:'draft'" json:"status"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	CategoryIDs []string `gorm:"-" json:"category_ids"`
	TagIDs      []string `gorm:"-" json:"tag_ids"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsPublished reports whether the post is visible on the public read path
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CreatePostRequest is the draft creation payload
type CreatePostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	TagIDs      []string `json:"tag_ids,omitempty"`
}

// UpdatePostRequest replaces the editable fields of a draft. Nil id lists
// keep the current links.
type UpdatePostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	TagIDs      []string `json:"tag_ids,omitempty"`
}

// PostResponse post response
type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Slug        string     `json:"slug"`
	AuthorID    string     `json:"author_id"`
	Status      PostStatus `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CategoryIDs []string   `json:"category_ids"`
	TagIDs      []string   `json:"tag_ids"`
}

// ToResponse converts Post to PostResponse
func (p *Post) ToResponse() *PostResponse {
	categoryIDs := p.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	tagIDs := p.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	return &PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Slug:        p.Slug,
		AuthorID:    p.AuthorID,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		CategoryIDs: categoryIDs,
		TagIDs:      tagIDs,
	}
}

// PostListFilter narrows the public post listing
type PostListFilter struct {
	CategorySlug string
	TagSlug      string
}
