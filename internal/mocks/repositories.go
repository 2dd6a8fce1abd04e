package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles       map[string]*models.Article
	SlugToArticle  map[string]*models.Article
	CreateError    error
	UpdateError    error
	IncrementError error
	ViewIncrements int
	LikeIncrements int
	UpdateCalls    int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:      make(map[string]*models.Article),
		SlugToArticle: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.SlugToArticle[article.Slug]; exists {
		return repository.ErrDuplicate
	}
	m.Articles[article.ID] = article
	m.SlugToArticle[article.Slug] = article
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Articles[article.ID] = article
	m.SlugToArticle[article.Slug] = article
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if a, ok := m.Articles[id]; ok {
		delete(m.SlugToArticle, a.Slug)
		delete(m.Articles, id)
	}
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return m.SlugToArticle[slug], nil
}

func (m *MockArticleRepository) List(ctx context.Context, publicOnly bool) ([]models.Article, error) {
	out := make([]models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if publicOnly && !a.IsPublic() {
			continue
		}
		out = append(out, *a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockArticleRepository) ListScheduledDue(ctx context.Context, now time.Time) ([]models.Article, error) {
	var due []models.Article
	for _, a := range m.Articles {
		if a.Status == models.StatusScheduled && a.ScheduledFor != nil && !a.ScheduledFor.After(now) {
			due = append(due, *a)
		}
	}
	return due, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, exists := m.SlugToArticle[slug]
	return exists, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) error {
	if m.IncrementError != nil {
		return m.IncrementError
	}
	if a, ok := m.Articles[id]; ok {
		a.Views++
	}
	m.ViewIncrements++
	return nil
}

func (m *MockArticleRepository) IncrementLikes(ctx context.Context, id string) error {
	if m.IncrementError != nil {
		return m.IncrementError
	}
	if a, ok := m.Articles[id]; ok {
		a.Likes++
	}
	m.LikeIncrements++
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

func (m *MockArticleRepository) SumViews(ctx context.Context) (int64, error) {
	var total int64
	for _, a := range m.Articles {
		total += a.Views
	}
	return total, nil
}

func (m *MockArticleRepository) ViewsOfArticlesCreatedSince(ctx context.Context, since time.Time) (int64, int, error) {
	var views int64
	var count int
	for _, a := range m.Articles {
		if !a.CreatedAt.Before(since) {
			views += a.Views
			count++
		}
	}
	return views, count, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments       map[string]*models.Comment
	CreateError    error
	IncrementError error
	LikeIncrements int
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[string]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	delete(m.Comments, id)
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return m.Comments[id], nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockCommentRepository) IncrementLikes(ctx context.Context, id string) error {
	if m.IncrementError != nil {
		return m.IncrementError
	}
	if c, ok := m.Comments[id]; ok {
		c.Likes++
	}
	m.LikeIncrements++
	return nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

// MockSubscriberRepository is a mock implementation of SubscriberRepository
type MockSubscriberRepository struct {
	Subscribers map[string]*models.Subscriber
	CreateError error
}

var _ repository.SubscriberRepository = (*MockSubscriberRepository)(nil)

func NewMockSubscriberRepository() *MockSubscriberRepository {
	return &MockSubscriberRepository{Subscribers: make(map[string]*models.Subscriber)}
}

func (m *MockSubscriberRepository) Create(ctx context.Context, sub *models.Subscriber) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.Subscribers[sub.Email]; exists {
		return repository.ErrDuplicate
	}
	m.Subscribers[sub.Email] = sub
	return nil
}

func (m *MockSubscriberRepository) Delete(ctx context.Context, email string) error {
	delete(m.Subscribers, email)
	return nil
}

func (m *MockSubscriberRepository) List(ctx context.Context) ([]models.Subscriber, error) {
	out := make([]models.Subscriber, 0, len(m.Subscribers))
	for _, s := range m.Subscribers {
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockSubscriberRepository) Count(ctx context.Context) (int, error) {
	return len(m.Subscribers), nil
}

// MockSettingRepository is a mock implementation of SettingRepository
type MockSettingRepository struct {
	Settings map[string]*models.Setting
}

var _ repository.SettingRepository = (*MockSettingRepository)(nil)

func NewMockSettingRepository() *MockSettingRepository {
	return &MockSettingRepository{Settings: make(map[string]*models.Setting)}
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	return m.Settings[key], nil
}

func (m *MockSettingRepository) Put(ctx context.Context, setting *models.Setting) error {
	m.Settings[setting.Key] = setting
	return nil
}
