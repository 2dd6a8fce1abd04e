package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avalanche-blog/internal/database"
	"github.com/avalanche-blog/internal/models"
)

// ErrDuplicate reports a uniqueness violation (slug or subscriber email)
var ErrDuplicate = errors.New("record already exists")

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, publicOnly bool) ([]models.Article, error)
	ListScheduledDue(ctx context.Context, now time.Time) ([]models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	SumViews(ctx context.Context) (int64, error)
	ViewsOfArticlesCreatedSince(ctx context.Context, since time.Time) (int64, int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error)
	IncrementLikes(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SubscriberRepository defines the interface for subscriber data operations
type SubscriberRepository interface {
	Create(ctx context.Context, sub *models.Subscriber) error
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]models.Subscriber, error)
	Count(ctx context.Context) (int, error)
}

// SettingRepository defines the interface for site-settings documents
type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Put(ctx context.Context, setting *models.Setting) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article    ArticleRepository
	Comment    CommentRepository
	Subscriber SubscriberRepository
	Setting    SettingRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:    NewArticleRepo(db),
		Comment:    NewCommentRepo(db),
		Subscriber: NewSubscriberRepo(db),
		Setting:    NewSettingRepo(db),
	}
}
