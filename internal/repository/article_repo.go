package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/avalanche-blog/internal/database"
	"github.com/avalanche-blog/internal/models"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// publicStatuses matches the visibility rule: legacy records may carry an
// empty status or the spelling "publish"
var publicStatuses = pq.StringArray{"", "published", "publish"}

const articleColumns = `id, slug, title, category, excerpt, content, image, author, status, scheduled_for, views, likes, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, slug, title, category, excerpt, content, image, author, status, scheduled_for, views, likes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Category, article.Excerpt,
		article.Content, article.Image, article.Author, article.Status,
		article.ScheduledFor, article.Views, article.Likes, article.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Update rewrites the mutable fields of an article. Counters and
// created_at are deliberately excluded; counters move only through the
// increment operations.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $2, category = $3, excerpt = $4, content = $5, image = $6,
		    author = $7, status = $8, scheduled_for = $9, updated_at = $10
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Category, article.Excerpt, article.Content,
		article.Image, article.Author, article.Status, article.ScheduledFor, article.UpdatedAt,
	)
	return err
}

// Delete removes an article; its comments cascade
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	return err
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
	return scanArticle(row)
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE slug = $1", slug)
	return scanArticle(row)
}

// List retrieves articles ordered by creation time descending. With
// publicOnly, draft and scheduled records are excluded.
func (r *articleRepo) List(ctx context.Context, publicOnly bool) ([]models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles"
	args := []interface{}{}
	if publicOnly {
		query += " WHERE lower(trim(status)) = ANY($1)"
		args = append(args, publicStatuses)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectArticles(rows)
}

// ListScheduledDue retrieves scheduled articles whose publish time has
// passed
func (r *articleRepo) ListScheduledDue(ctx context.Context, now time.Time) ([]models.Article, error) {
	query := "SELECT " + articleColumns + ` FROM articles
		WHERE status = $1 AND scheduled_for IS NOT NULL AND scheduled_for <= $2
		ORDER BY scheduled_for`
	rows, err := r.db.QueryContext(ctx, query, models.StatusScheduled, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectArticles(rows)
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// IncrementViews applies the store's atomic numeric-increment operation
// to the view counter
func (r *articleRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE articles SET views = views + 1 WHERE id = $1", id)
	return err
}

// IncrementLikes applies the atomic increment to the like counter
func (r *articleRepo) IncrementLikes(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE articles SET likes = likes + 1 WHERE id = $1", id)
	return err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// SumViews returns the all-time view total
func (r *articleRepo) SumViews(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(views), 0) FROM articles").Scan(&sum)
	return sum, err
}

// ViewsOfArticlesCreatedSince sums views over articles created at or
// after the cutoff, returning the sum and how many articles matched. The
// name spells out the bias: this is views of recent articles, not views
// received recently.
func (r *articleRepo) ViewsOfArticlesCreatedSince(ctx context.Context, since time.Time) (int64, int, error) {
	var sum int64
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(views), 0), COUNT(*) FROM articles WHERE created_at >= $1", since,
	).Scan(&sum, &count)
	return sum, count, err
}

func scanArticle(row *sql.Row) (*models.Article, error) {
	var article models.Article
	var scheduledFor, updatedAt sql.NullTime

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Category, &article.Excerpt,
		&article.Content, &article.Image, &article.Author, &article.Status,
		&scheduledFor, &article.Views, &article.Likes, &article.CreatedAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if scheduledFor.Valid {
		article.ScheduledFor = &scheduledFor.Time
	}
	if updatedAt.Valid {
		article.UpdatedAt = &updatedAt.Time
	}
	return &article, nil
}

func collectArticles(rows *sql.Rows) ([]models.Article, error) {
	var articles []models.Article
	for rows.Next() {
		var article models.Article
		var scheduledFor, updatedAt sql.NullTime

		err := rows.Scan(
			&article.ID, &article.Slug, &article.Title, &article.Category, &article.Excerpt,
			&article.Content, &article.Image, &article.Author, &article.Status,
			&scheduledFor, &article.Views, &article.Likes, &article.CreatedAt, &updatedAt,
		)
		if err != nil {
			return nil, err
		}

		if scheduledFor.Valid {
			article.ScheduledFor = &scheduledFor.Time
		}
		if updatedAt.Valid {
			article.UpdatedAt = &updatedAt.Time
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == uniqueViolation
	}
	return false
}
