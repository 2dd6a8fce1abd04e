package validation

import (
	"strings"
	"testing"

	"github.com/avalanche-blog/internal/models"
)

func TestValidateArticleInput(t *testing.T) {
	tests := []struct {
		name       string
		input      *models.ArticleInput
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid minimal article",
			input:      &models.ArticleInput{Title: "A Title"},
			wantErrors: 0,
		},
		{
			name: "valid scheduled article",
			input: &models.ArticleInput{
				Title:        "A Title",
				Status:       models.StatusScheduled,
				ScheduledFor: "2026-10-01T09:00:00Z",
			},
			wantErrors: 0,
		},
		{
			name:       "missing title",
			input:      &models.ArticleInput{Title: "   "},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "unknown category",
			input:      &models.ArticleInput{Title: "A Title", Category: "Gossip"},
			wantErrors: 1,
			wantFields: []string{"category"},
		},
		{
			name:       "unknown status",
			input:      &models.ArticleInput{Title: "A Title", Status: "archived"},
			wantErrors: 1,
			wantFields: []string{"status"},
		},
		{
			name:       "scheduled without date",
			input:      &models.ArticleInput{Title: "A Title", Status: models.StatusScheduled},
			wantErrors: 1,
			wantFields: []string{"scheduled_for"},
		},
		{
			name: "scheduled with bad date",
			input: &models.ArticleInput{
				Title:        "A Title",
				Status:       models.StatusScheduled,
				ScheduledFor: "next tuesday",
			},
			wantErrors: 1,
			wantFields: []string{"scheduled_for"},
		},
		{
			name: "scheduled_for on a published article",
			input: &models.ArticleInput{
				Title:        "A Title",
				Status:       models.StatusPublished,
				ScheduledFor: "2026-10-01T09:00:00Z",
			},
			wantErrors: 1,
			wantFields: []string{"scheduled_for"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateArticleInput(tt.input)
			if len(errs) != tt.wantErrors {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, tt.wantErrors)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidateCommentInput(t *testing.T) {
	longComment := strings.TrimSpace(strings.Repeat("word ", models.MaxCommentWords+1))

	tests := []struct {
		name       string
		input      *models.CommentInput
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid comment",
			input:      &models.CommentInput{Name: "Reader", Comment: "Nice piece."},
			wantErrors: 0,
		},
		{
			name: "valid quoted reply",
			input: &models.CommentInput{
				Name:          "Reader",
				Comment:       "Agreed.",
				ReplyTo:       "Other Reader",
				QuotedComment: "the original text",
			},
			wantErrors: 0,
		},
		{
			name:       "missing name",
			input:      &models.CommentInput{Comment: "Hello"},
			wantErrors: 1,
			wantFields: []string{"name"},
		},
		{
			name:       "missing comment",
			input:      &models.CommentInput{Name: "Reader"},
			wantErrors: 1,
			wantFields: []string{"comment"},
		},
		{
			name:       "comment too long",
			input:      &models.CommentInput{Name: "Reader", Comment: longComment},
			wantErrors: 1,
			wantFields: []string{"comment"},
		},
		{
			name: "quote without reply target",
			input: &models.CommentInput{
				Name:          "Reader",
				Comment:       "Agreed.",
				QuotedComment: "the original text",
			},
			wantErrors: 1,
			wantFields: []string{"reply_to"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCommentInput(tt.input)
			if len(errs) != tt.wantErrors {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, tt.wantErrors)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"reader@example.com", "a.b+tag@sub.example.org"}
	for _, email := range valid {
		if errs := ValidateEmail(email); len(errs) != 0 {
			t.Errorf("ValidateEmail(%q) = %v, want none", email, errs)
		}
	}

	invalid := []string{"", "not-an-email", "missing@tld", "@example.com"}
	for _, email := range invalid {
		if errs := ValidateEmail(email); len(errs) == 0 {
			t.Errorf("ValidateEmail(%q) passed, want error", email)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "hello-world", "top-10-peaks"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "UpperCase", "with space"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("valid UUID rejected")
	}
	if IsValidID("not-a-uuid") {
		t.Error("invalid UUID accepted")
	}
}
