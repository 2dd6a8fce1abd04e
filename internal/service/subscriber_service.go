package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/repository"
	"github.com/avalanche-blog/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type subscriberService struct {
	subscribers repository.SubscriberRepository
	log         zerolog.Logger
}

func newSubscriberService(subscribers repository.SubscriberRepository, log zerolog.Logger) *subscriberService {
	return &subscriberService{
		subscribers: subscribers,
		log:         log.With().Str("service", "subscriber").Logger(),
	}
}

// Subscribe adds an email to the newsletter list. A duplicate signup is
// a normal outcome, reported as (false, nil) rather than an error.
func (s *subscriberService) Subscribe(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if errs := validation.ValidateEmail(email); len(errs) > 0 {
		return false, &InvalidInputError{Errors: errs}
	}

	sub := &models.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Debug().Str("email", email).Msg("Already subscribed")
			return false, nil
		}
		return false, fmt.Errorf("creating subscriber: %w", err)
	}

	s.log.Info().Str("email", email).Msg("Subscriber added")
	return true, nil
}

// Unsubscribe removes an email from the newsletter list
func (s *subscriberService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.subscribers.Delete(ctx, email); err != nil {
		return fmt.Errorf("deleting subscriber: %w", err)
	}
	s.log.Info().Str("email", email).Msg("Subscriber removed")
	return nil
}

// List returns all subscribers, oldest first
func (s *subscriberService) List(ctx context.Context) ([]models.Subscriber, error) {
	return s.subscribers.List(ctx)
}
