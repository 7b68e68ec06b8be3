// Package slug turns titles into URL-safe identifiers and resolves
// collisions among published posts.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/damoang/angple-press/internal/common"
)

// MaxAttempts bounds uniqueness resolution: base, base-1 … base-9.
const MaxAttempts = 10

// Fallback is used when a title has no slug-able characters
const Fallback = "post"

var (
	// \s is ASCII-only in RE2; \p{Z} adds no-break and ideographic spaces
	disallowed = regexp.MustCompile(`[^\w\s\p{Z}-]`)
	whitespace = regexp.MustCompile(`[\s\p{Z}]+`)
	hyphens    = regexp.MustCompile(`-+`)
)

// Slugify lowercases title, drops characters outside [word, whitespace,
// hyphen], turns whitespace runs into one hyphen, collapses hyphens and
// trims them from both ends.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Checker reports whether a published post other than excludeID holds slug.
type Checker interface {
	SlugTakenByOther(ctx context.Context, slug, excludeID string) (bool, error)
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context, slug, excludeID string) (bool, error)

func (f CheckerFunc) SlugTakenByOther(ctx context.Context, slug, excludeID string) (bool, error) {
	return f(ctx, slug, excludeID)
}

// Candidate returns the slug tried on the given zero-based attempt
func Candidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// Resolve finds the first free candidate for base within MaxAttempts.
// The post being published (excludeID) never counts as a collision.
// Running out of attempts returns common.ErrSlugExhausted.
func Resolve(ctx context.Context, base, excludeID string, checker Checker) (string, error) {
	if base == "" {
		base = Fallback
	}
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		candidate := Candidate(base, attempt)
		taken, err := checker.SlugTakenByOther(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%q after %d attempts: %w", base, MaxAttempts, common.ErrSlugExhausted)
}
