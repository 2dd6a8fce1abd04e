package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/avalanche-blog/internal/models"
	"github.com/google/uuid"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateArticleInput validates an admin article payload
func ValidateArticleInput(input *models.ArticleInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	if input.Category != "" {
		valid := false
		for _, c := range models.Categories {
			if input.Category == c {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, ValidationError{
				Field:   "category",
				Message: fmt.Sprintf("invalid category, must be one of: %s", strings.Join(models.Categories, ", ")),
				Value:   input.Category,
			})
		}
	}

	if input.Status != "" && !models.ValidStatuses[input.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: published, draft, scheduled",
			Value:   input.Status,
		})
	}

	if input.Status == models.StatusScheduled {
		if input.ScheduledFor == "" {
			errors = append(errors, ValidationError{Field: "scheduled_for", Message: "scheduled articles require scheduled_for"})
		} else if _, err := time.Parse(time.RFC3339, input.ScheduledFor); err != nil {
			errors = append(errors, ValidationError{Field: "scheduled_for", Message: "invalid ISO 8601 date format", Value: input.ScheduledFor})
		}
	} else if input.ScheduledFor != "" {
		errors = append(errors, ValidationError{Field: "scheduled_for", Message: "scheduled_for is only meaningful with the scheduled status"})
	}

	return errors
}

// ValidateCommentInput validates a comment payload. A quoted reply must
// name the comment it replies to.
func ValidateCommentInput(input *models.CommentInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	if strings.TrimSpace(input.Comment) == "" {
		errors = append(errors, ValidationError{Field: "comment", Message: "comment is required"})
	} else {
		wordCount := len(strings.Fields(input.Comment))
		if wordCount > models.MaxCommentWords {
			errors = append(errors, ValidationError{
				Field:   "comment",
				Message: fmt.Sprintf("comment exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount),
			})
		}
	}

	if input.QuotedComment != "" && input.ReplyTo == "" {
		errors = append(errors, ValidationError{Field: "reply_to", Message: "quoted_comment requires reply_to"})
	}

	return errors
}

// ValidateEmail validates a subscriber email address
func ValidateEmail(email string) []ValidationError {
	if email == "" {
		return []ValidationError{{Field: "email", Message: "email is required"}}
	}
	if !emailRegex.MatchString(email) {
		return []ValidationError{{Field: "email", Message: "invalid email format", Value: email}}
	}
	return nil
}

// IsValidSlug reports whether s is kebab-case (lowercase letters, digits,
// single hyphens)
func IsValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// IsValidID reports whether s is a valid UUID
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
