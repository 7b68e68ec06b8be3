package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentStatus is the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
	CommentStatusSpam     CommentStatus = "spam"
)

// IsTerminal reports whether s is a moderation outcome
func (s CommentStatus) IsTerminal() bool {
	switch s {
	case CommentStatusApproved, CommentStatusRejected, CommentStatusSpam:
		return true
	}
	return false
}

// Comment on a published post. Replies point at an approved top-level
// comment of the same post.
type Comment struct {
	ID              string        `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	PostID          string        `gorm:"column:post_id;type:char(36);index" json:"post_id"`
	AuthorID        string        `gorm:"column:author_id;type:char(36);index" json:"author_id"`
	Content         string        `gorm:"column:content;type:text" json:"content"`
	Status          CommentStatus `gorm:"column:status;type:varchar(20);index;default:'pending'" json:"status"`
	ParentCommentID *string       `gorm:"column:parent_comment_id;type:char(36);index" json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ApprovedAt      *time.Time    `gorm:"column:approved_at" json:"approved_at,omitempty"`

	Author *User `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsTopLevel reports whether the comment has no parent
func (c *Comment) IsTopLevel() bool {
	return c.ParentCommentID == nil
}

// SubmitCommentRequest comment submission payload
type SubmitCommentRequest struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
}

// ModerateCommentRequest moderation payload
type ModerateCommentRequest struct {
	Status string `json:"status"`
}

// CommentResponse is the full comment shape
type CommentResponse struct {
	ID              string        `json:"id"`
	PostID          string        `json:"post_id"`
	Content         string        `json:"content"`
	Status          CommentStatus `json:"status"`
	ParentCommentID *string       `json:"parent_comment_id"`
	Author          *AuthorInfo   `json:"author"`
	CreatedAt       time.Time     `json:"created_at"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty"`
}

// ToResponse converts Comment to CommentResponse
func (c *Comment) ToResponse() *CommentResponse {
	author := &AuthorInfo{ID: c.AuthorID}
	if c.Author != nil {
		author.Email = c.Author.Email
	}
	return &CommentResponse{
		ID:              c.ID,
		PostID:          c.PostID,
		Content:         c.Content,
		Status:          c.Status,
		ParentCommentID: c.ParentCommentID,
		Author:          author,
		CreatedAt:       c.CreatedAt,
		ApprovedAt:      c.ApprovedAt,
	}
}

// ModeratedCommentMinimal is returned for rejected and spam outcomes. It
// carries neither author identity nor timestamps.
type ModeratedCommentMinimal struct {
	ID     string        `json:"id"`
	PostID string        `json:"post_id"`
	Status CommentStatus `json:"status"`
}

// ModerationResult holds exactly one of the two response shapes
type ModerationResult struct {
	Approved *CommentResponse
	Minimal  *ModeratedCommentMinimal
}

// Body returns the shape to serialize
func (r *ModerationResult) Body() interface{} {
	if r.Approved != nil {
		return r.Approved
	}
	return r.Minimal
}

// ReplyState tells whether a comment's replies were loaded
type ReplyState string

const (
	ReplyStateOK       ReplyState = "ok"
	ReplyStateDegraded ReplyState = "degraded"
)

// ReplyResult is the outcome of fetching one comment's replies. A degraded
// result has no replies and a reason; the listing still succeeds.
type ReplyResult struct {
	State   ReplyState
	Replies []*Comment
	Reason  string
}

// ThreadedComment is a top-level approved comment with its approved replies
type ThreadedComment struct {
	*CommentResponse
	Replies         []*CommentResponse `json:"replies"`
	RepliesDegraded bool               `json:"replies_degraded,omitempty"`
}

// CommentSort orders top-level comments
type CommentSort string

const (
	CommentSortOldest CommentSort = "oldest"
	CommentSortNewest CommentSort = "newest"
)

// ParseCommentSort falls back to newest for unknown values
func ParseCommentSort(s string) CommentSort {
	if CommentSort(s) == CommentSortOldest {
		return CommentSortOldest
	}
	return CommentSortNewest
}
