package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/repository"
	"github.com/avalanche-blog/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// ListByArticle returns an article's comments, newest first
func (s *commentService) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	return s.comments.ListByArticle(ctx, articleID)
}

// Create validates and stores a new comment on an existing article
func (s *commentService) Create(ctx context.Context, articleID string, input *models.CommentInput) (*models.Comment, error) {
	if errs := validation.ValidateCommentInput(input); len(errs) > 0 {
		return nil, &InvalidInputError{Errors: errs}
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("loading article: %w", err)
	}
	if article == nil {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		ID:            uuid.NewString(),
		ArticleID:     articleID,
		Name:          input.Name,
		Comment:       input.Comment,
		ReplyTo:       input.ReplyTo,
		QuotedComment: input.QuotedComment,
		CreatedAt:     time.Now(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	s.log.Info().Str("comment_id", comment.ID).Str("article_id", articleID).Msg("Comment created")
	return comment, nil
}

// Update rewrites a comment's text and marks it edited. Name and reply
// linkage never change on edit.
func (s *commentService) Update(ctx context.Context, id string, input *models.CommentInput) (*models.Comment, error) {
	if errs := validation.ValidateCommentInput(input); len(errs) > 0 {
		return nil, &InvalidInputError{Errors: errs}
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	comment.Comment = input.Comment
	comment.Edited = true
	comment.EditedAt = &now

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	s.log.Info().Str("comment_id", id).Msg("Comment updated")
	return comment, nil
}

// Delete removes a comment
func (s *commentService) Delete(ctx context.Context, id string) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("loading comment: %w", err)
	}
	if comment == nil {
		return ErrNotFound
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	s.log.Info().Str("comment_id", id).Msg("Comment deleted")
	return nil
}
