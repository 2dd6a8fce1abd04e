package models

// ArticleInput is the admin create/update payload for an article.
// ScheduledFor is an RFC 3339 timestamp, only meaningful with the
// scheduled status.
type ArticleInput struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content"`
	Image        string `json:"image"`
	Author       string `json:"author"`
	Status       string `json:"status"`
	ScheduledFor string `json:"scheduled_for"`
}

// CommentInput is the payload for posting or editing a comment
type CommentInput struct {
	Name          string `json:"name"`
	Comment       string `json:"comment"`
	ReplyTo       string `json:"reply_to"`
	QuotedComment string `json:"quoted_comment"`
}

// SubscribeRequest is the newsletter signup payload
type SubscribeRequest struct {
	Email string `json:"email"`
}
