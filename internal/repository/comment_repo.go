package repository

import (
	"context"
	"database/sql"

	"github.com/avalanche-blog/internal/database"
	"github.com/avalanche-blog/internal/models"
)

const commentColumns = `id, article_id, name, comment, reply_to, quoted_comment, likes, edited, edited_at, created_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_id, name, comment, reply_to, quoted_comment, likes, edited, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleID, comment.Name, comment.Comment,
		comment.ReplyTo, comment.QuotedComment, comment.Likes, comment.Edited, comment.CreatedAt,
	)
	return err
}

// Update rewrites the comment body and edit markers
func (r *commentRepo) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET comment = $2, edited = $3, edited_at = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.Comment, comment.Edited, comment.EditedAt,
	)
	return err
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = $1", id)

	var comment models.Comment
	var editedAt sql.NullTime
	err := row.Scan(
		&comment.ID, &comment.ArticleID, &comment.Name, &comment.Comment,
		&comment.ReplyTo, &comment.QuotedComment, &comment.Likes, &comment.Edited,
		&editedAt, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if editedAt.Valid {
		comment.EditedAt = &editedAt.Time
	}
	return &comment, nil
}

// ListByArticle retrieves an article's comments, newest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	query := "SELECT " + commentColumns + " FROM comments WHERE article_id = $1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		var editedAt sql.NullTime
		err := rows.Scan(
			&comment.ID, &comment.ArticleID, &comment.Name, &comment.Comment,
			&comment.ReplyTo, &comment.QuotedComment, &comment.Likes, &comment.Edited,
			&editedAt, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if editedAt.Valid {
			comment.EditedAt = &editedAt.Time
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// IncrementLikes applies the atomic increment to the like counter
func (r *commentRepo) IncrementLikes(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE comments SET likes = likes + 1 WHERE id = $1", id)
	return err
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
