package models

import (
	"time"
)

// Comment represents a reader comment attached to one article.
// A reply carries ReplyTo; a quoted reply additionally carries the
// verbatim QuotedComment text.
type Comment struct {
	ID            string     `json:"id" db:"id"`
	ArticleID     string     `json:"article_id" db:"article_id"`
	Name          string     `json:"name" db:"name"`
	Comment       string     `json:"comment" db:"comment"`
	ReplyTo       string     `json:"reply_to,omitempty" db:"reply_to"`
	QuotedComment string     `json:"quoted_comment,omitempty" db:"quoted_comment"`
	Likes         int64      `json:"likes" db:"likes"`
	Edited        bool       `json:"edited" db:"edited"`
	EditedAt      *time.Time `json:"edited_at,omitempty" db:"edited_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// MaxCommentWords is the maximum allowed words in a comment body
const MaxCommentWords = 500
