package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avalanche-blog/internal/config"
	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/notify"
	"github.com/avalanche-blog/internal/render"
	"github.com/avalanche-blog/internal/repository"
	"github.com/avalanche-blog/internal/validation"
	"github.com/avalanche-blog/pkg/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos      *repository.Repositories
	renderer   *render.Renderer
	dispatcher notify.Dispatcher
	site       config.SiteConfig
	log        zerolog.Logger

	// scheduled-publish loop state
	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func newArticleService(repos *repository.Repositories, renderer *render.Renderer, dispatcher notify.Dispatcher, cfg *config.Config, log zerolog.Logger) *articleService {
	return &articleService{
		repos:      repos,
		renderer:   renderer,
		dispatcher: dispatcher,
		site:       cfg.Site,
		log:        log.With().Str("service", "article").Logger(),
	}
}

// Create stores a new article. The slug is derived from the title once,
// here; counters start at zero; createdAt is stamped and immutable.
func (s *articleService) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	if errs := validation.ValidateArticleInput(input); len(errs) > 0 {
		return nil, &InvalidInputError{Errors: errs}
	}

	status := input.Status
	if status == "" {
		status = models.StatusPublished
	}

	slug := render.Slugify(input.Title)
	exists, err := s.repos.Article.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("checking slug: %w", err)
	}
	if exists {
		// Same title twice; disambiguate rather than reject.
		slug = slug + "-" + uuid.NewString()[:8]
	}

	article := &models.Article{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     input.Title,
		Category:  input.Category,
		Excerpt:   input.Excerpt,
		Content:   input.Content,
		Image:     input.Image,
		Author:    input.Author,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if status == models.StatusScheduled {
		t, _ := time.Parse(time.RFC3339, input.ScheduledFor)
		article.ScheduledFor = &t
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}
	s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Str("status", article.Status).Msg("Article created")

	if article.IsPublic() {
		metrics.ArticlesPublished.Inc()
		s.notifySubscribers(ctx, article)
	}
	return article, nil
}

// Update rewrites an article's mutable fields and stamps updatedAt. The
// slug is never re-derived on edit.
func (s *articleService) Update(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error) {
	if errs := validation.ValidateArticleInput(input); len(errs) > 0 {
		return nil, &InvalidInputError{Errors: errs}
	}

	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading article: %w", err)
	}
	if article == nil {
		return nil, ErrNotFound
	}

	wasPublic := article.IsPublic()

	article.Title = input.Title
	article.Category = input.Category
	article.Excerpt = input.Excerpt
	article.Content = input.Content
	article.Image = input.Image
	article.Author = input.Author
	if input.Status != "" {
		article.Status = input.Status
	}
	article.ScheduledFor = nil
	if article.Status == models.StatusScheduled && input.ScheduledFor != "" {
		t, _ := time.Parse(time.RFC3339, input.ScheduledFor)
		article.ScheduledFor = &t
	}
	now := time.Now()
	article.UpdatedAt = &now

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("updating article: %w", err)
	}
	s.log.Info().Str("article_id", article.ID).Msg("Article updated")

	if !wasPublic && article.IsPublic() {
		metrics.ArticlesPublished.Inc()
		s.notifySubscribers(ctx, article)
	}
	return article, nil
}

// Delete removes an article and its comments
func (s *articleService) Delete(ctx context.Context, id string) error {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("loading article: %w", err)
	}
	if article == nil {
		return ErrNotFound
	}
	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}
	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

// Get retrieves one article by id regardless of status
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// GetBySlug retrieves one article by slug. With publicOnly, drafts and
// scheduled articles behave as missing.
func (s *articleService) GetBySlug(ctx context.Context, slug string, publicOnly bool) (*models.Article, error) {
	article, err := s.repos.Article.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil || (publicOnly && !article.IsPublic()) {
		return nil, ErrNotFound
	}
	return article, nil
}

// List retrieves all articles, newest first. The administrative listing
// includes drafts and scheduled records.
func (s *articleService) List(ctx context.Context, publicOnly bool) ([]models.Article, error) {
	return s.repos.Article.List(ctx, publicOnly)
}

// Feed returns one page of the public grid for a category selector.
// An out-of-range page is a no-op for the caller: ErrPageOutOfRange is
// returned and no slice is produced.
func (s *articleService) Feed(ctx context.Context, category string, page int) (*Feed, error) {
	articles, err := s.repos.Article.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	filtered := render.FilterByCategory(articles, category)
	totalPages := render.TotalPages(len(filtered))

	if len(filtered) == 0 && page == 1 {
		return &Feed{Page: 1, TotalPages: 0, Total: 0}, nil
	}
	if page < 1 || page > totalPages {
		return nil, ErrPageOutOfRange
	}

	return &Feed{
		Articles:   render.Paginate(filtered, page),
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
		Controls:   render.PageControls(page, totalPages),
	}, nil
}

// Trending returns the newest published articles with recency badges
func (s *articleService) Trending(ctx context.Context) ([]render.TrendingEntry, error) {
	articles, err := s.repos.Article.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return render.Trending(articles, time.Now()), nil
}

// Popular returns the most-viewed published articles
func (s *articleService) Popular(ctx context.Context, limit int) ([]models.Article, error) {
	articles, err := s.repos.Article.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return render.Popular(articles, limit), nil
}

// Stats builds the admin dashboard summary. MonthViews replicates the
// source computation: views of articles created in the current month,
// falling back to the last 30 days when the month has no articles.
func (s *articleService) Stats(ctx context.Context) (*Stats, error) {
	totalArticles, err := s.repos.Article.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalViews, err := s.repos.Article.SumViews(ctx)
	if err != nil {
		return nil, err
	}
	totalComments, err := s.repos.Comment.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSubscribers, err := s.repos.Subscriber.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthViews, monthCount, err := s.repos.Article.ViewsOfArticlesCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	if monthCount == 0 {
		monthViews, _, err = s.repos.Article.ViewsOfArticlesCreatedSince(ctx, now.AddDate(0, 0, -30))
		if err != nil {
			return nil, err
		}
	}

	return &Stats{
		TotalArticles:    totalArticles,
		TotalViews:       totalViews,
		TotalComments:    totalComments,
		TotalSubscribers: totalSubscribers,
		MonthViews:       monthViews,
	}, nil
}

// StartScheduler runs the scheduled-publish loop until the context is
// canceled or StopScheduler is called
func (s *articleService) StartScheduler(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.log.Info().Dur("interval", s.site.PublishInterval).Msg("Publish scheduler started")
	defer close(s.done)

	ticker := time.NewTicker(s.site.PublishInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.log.Info().Msg("Publish scheduler stopping")
			return
		case <-ticker.C:
			s.publishDue()
		}
	}
}

// StopScheduler stops the scheduled-publish loop
func (s *articleService) StopScheduler() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	<-s.done
	s.running = false
	s.log.Info().Msg("Publish scheduler stopped")
}

// publishDue flips due scheduled articles to published and notifies
// subscribers. One failed article never blocks the rest.
func (s *articleService) publishDue() {
	due, err := s.repos.Article.ListScheduledDue(s.ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list due scheduled articles")
		return
	}

	for i := range due {
		article := &due[i]
		article.Status = models.StatusPublished
		now := time.Now()
		article.UpdatedAt = &now

		if err := s.repos.Article.Update(s.ctx, article); err != nil {
			s.log.Error().Err(err).Str("article_id", article.ID).Msg("Failed to publish scheduled article")
			continue
		}
		s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Msg("Scheduled article published")
		metrics.ArticlesPublished.Inc()
		s.notifySubscribers(s.ctx, article)
	}
}

// notifySubscribers builds the new-article email payload and hands it to
// the dispatcher. Failures are logged; publishing an article never fails
// because the notification could not be sent.
func (s *articleService) notifySubscribers(ctx context.Context, article *models.Article) {
	if s.dispatcher == nil {
		return
	}

	subs, err := s.repos.Subscriber.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list subscribers for notification")
		return
	}
	if len(subs) == 0 {
		return
	}

	recipients := make([]string, 0, len(subs))
	for _, sub := range subs {
		recipients = append(recipients, sub.Email)
	}

	msg := notify.EmailMessage{
		Sender:     fmt.Sprintf("%s <%s>", s.site.Name, s.site.SenderEmail),
		Recipients: recipients,
		Subject:    fmt.Sprintf("New on %s: %s", s.site.Name, article.Title),
		HTMLBody:   s.renderer.RenderCard(article, true),
	}
	if err := s.dispatcher.DispatchNewArticle(msg); err != nil {
		s.log.Error().Err(err).Str("article_id", article.ID).Msg("Failed to dispatch notification")
	}
}
