package service

import (
	"context"
	"errors"
	"time"

	"github.com/avalanche-blog/internal/config"
	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/notify"
	"github.com/avalanche-blog/internal/render"
	"github.com/avalanche-blog/internal/repository"
	"github.com/avalanche-blog/internal/tracker"
	"github.com/avalanche-blog/internal/validation"
	"github.com/rs/zerolog"
)

// ErrNotFound reports a missing article or comment
var ErrNotFound = errors.New("record not found")

// ErrPageOutOfRange reports a page request outside [1, totalPages].
// Callers treat it as a no-op and keep their current page.
var ErrPageOutOfRange = errors.New("page out of range")

// InvalidInputError carries field-level validation errors
type InvalidInputError struct {
	Errors []validation.ValidationError
}

func (e *InvalidInputError) Error() string { return "invalid input" }

// Feed is one page of the public article grid plus its controls
type Feed struct {
	Articles   []models.Article    `json:"articles"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
	Controls   []render.PageButton `json:"controls,omitempty"`
}

// Stats is the admin dashboard summary
type Stats struct {
	TotalArticles    int   `json:"total_articles"`
	TotalViews       int64 `json:"total_views"`
	TotalComments    int   `json:"total_comments"`
	TotalSubscribers int   `json:"total_subscribers"`
	MonthViews       int64 `json:"month_views"`
}

// ArticleService defines article CRUD, the public feed queries and the
// scheduled-publish loop
type ArticleService interface {
	Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string, publicOnly bool) (*models.Article, error)
	List(ctx context.Context, publicOnly bool) ([]models.Article, error)
	Feed(ctx context.Context, category string, page int) (*Feed, error)
	Trending(ctx context.Context) ([]render.TrendingEntry, error)
	Popular(ctx context.Context, limit int) ([]models.Article, error)
	Stats(ctx context.Context) (*Stats, error)
	StartScheduler(ctx context.Context)
	StopScheduler()
}

// CommentService defines comment operations
type CommentService interface {
	ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error)
	Create(ctx context.Context, articleID string, input *models.CommentInput) (*models.Comment, error)
	Update(ctx context.Context, id string, input *models.CommentInput) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// SubscriberService defines newsletter operations
type SubscriberService interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context) ([]models.Subscriber, error)
}

// Services holds all service interfaces plus the shared view/like tracker.
// Settings are a thin key/value surface and use the repository directly.
type Services struct {
	Article    ArticleService
	Comment    CommentService
	Subscriber SubscriberService
	Settings   repository.SettingRepository
	Tracker    *tracker.Tracker
	Devices    *tracker.MemoryStore
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, renderer *render.Renderer, dispatcher notify.Dispatcher, cfg *config.Config, log zerolog.Logger) *Services {
	counters := &repoCounters{articles: repos.Article, comments: repos.Comment}
	trk := tracker.New(counters, time.Now, log)

	return &Services{
		Article:    newArticleService(repos, renderer, dispatcher, cfg, log),
		Comment:    newCommentService(repos.Comment, repos.Article, log),
		Subscriber: newSubscriberService(repos.Subscriber, log),
		Settings:   repos.Setting,
		Tracker:    trk,
		Devices:    tracker.NewMemoryStore(),
	}
}

// repoCounters adapts the repositories to the tracker's remote
// atomic-increment contract
type repoCounters struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
}

func (c *repoCounters) IncrementViews(ctx context.Context, articleID string) error {
	return c.articles.IncrementViews(ctx, articleID)
}

func (c *repoCounters) IncrementArticleLikes(ctx context.Context, articleID string) error {
	return c.articles.IncrementLikes(ctx, articleID)
}

func (c *repoCounters) IncrementCommentLikes(ctx context.Context, commentID string) error {
	return c.comments.IncrementLikes(ctx, commentID)
}
