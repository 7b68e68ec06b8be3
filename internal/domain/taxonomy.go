package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is reference data; posts need at least one active category
// to be published.
type Category struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(100);uniqueIndex" json:"slug"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Tag is reference data
type Tag struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(50)" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(50);uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// PostCategory represents a post-category link
type PostCategory struct {
	PostID     string `gorm:"column:post_id;type:char(36);primaryKey" json:"post_id"`
	CategoryID string `gorm:"column:category_id;type:char(36);primaryKey" json:"category_id"`
}

func (PostCategory) TableName() string { return "post_categories" }

// PostTag represents a post-tag link
type PostTag struct {
	PostID string `gorm:"column:post_id;type:char(36);primaryKey" json:"post_id"`
	TagID  string `gorm:"column:tag_id;type:char(36);primaryKey" json:"tag_id"`
}

func (PostTag) TableName() string { return "post_tags" }
