// Package validation holds the side-effect-free input rules for posts and
// comments. Callers do their own existence checks against storage.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	TitleMinLength          = 5
	TitleMaxLength          = 200
	PublishMinContentLength = 100
	CommentMinLength        = 1
	CommentMaxLength        = 5000
)

var validate = validator.New()

// ValidateTitle requires 5–200 characters
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return common.NewValidationError("title", "is required")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < TitleMinLength || n > TitleMaxLength {
		return common.NewValidationError("title", "must be between %d and %d characters", TitleMinLength, TitleMaxLength)
	}
	return nil
}

// ValidateDraftContent requires non-blank content
func ValidateDraftContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return common.NewValidationError("content", "is required")
	}
	return nil
}

// ValidatePublishContent requires at least 100 characters after trimming
func ValidatePublishContent(content string) error {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < PublishMinContentLength {
		return common.ErrContentTooShort
	}
	return nil
}

// IsUUID reports whether s has UUID shape
func IsUUID(s string) bool {
	return validate.Var(s, "required,uuid") == nil
}

// ValidateID requires a well-formed identifier
func ValidateID(field, id string) error {
	if !IsUUID(id) {
		return common.NewValidationError(field, "must be a valid identifier")
	}
	return nil
}

// ValidateIDs checks an optional id list. nil and empty are both valid.
func ValidateIDs(field string, ids []string) error {
	for _, id := range ids {
		if !IsUUID(id) {
			return common.NewValidationError(field, "contains an invalid identifier %q", id)
		}
	}
	return nil
}

// ValidateCreatePost checks a draft payload. The first failing rule wins.
func ValidateCreatePost(req *domain.CreatePostRequest) error {
	if err := ValidateTitle(req.Title); err != nil {
		return err
	}
	if err := ValidateDraftContent(req.Content); err != nil {
		return err
	}
	if err := ValidateIDs("category_ids", req.CategoryIDs); err != nil {
		return err
	}
	return ValidateIDs("tag_ids", req.TagIDs)
}

// ValidateUpdatePost applies the draft rules to an edit
func ValidateUpdatePost(req *domain.UpdatePostRequest) error {
	return ValidateCreatePost(&domain.CreatePostRequest{
		Title:       req.Title,
		Content:     req.Content,
		CategoryIDs: req.CategoryIDs,
		TagIDs:      req.TagIDs,
	})
}

// ValidateCommentContent requires 1–5000 characters
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return common.NewValidationError("content", "is required")
	}
	if n := utf8.RuneCountInString(content); n < CommentMinLength || n > CommentMaxLength {
		return common.NewValidationError("content", "must be between %d and %d characters", CommentMinLength, CommentMaxLength)
	}
	return nil
}

// ValidateParentID checks an optional parent comment id
func ValidateParentID(parentID *string) error {
	if parentID == nil {
		return nil
	}
	return ValidateID("parent_comment_id", *parentID)
}

// ValidateModerationStatus requires one of the terminal comment states
func ValidateModerationStatus(status string) (domain.CommentStatus, error) {
	s := domain.CommentStatus(status)
	if !s.IsTerminal() {
		return "", common.NewValidationError("status", "must be one of approved, rejected, spam")
	}
	return s, nil
}
