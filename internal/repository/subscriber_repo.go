package repository

import (
	"context"

	"github.com/avalanche-blog/internal/database"
	"github.com/avalanche-blog/internal/models"
)

// subscriberRepo is the concrete implementation of SubscriberRepository
type subscriberRepo struct {
	db *database.DB
}

// NewSubscriberRepo creates a new subscriber repository
func NewSubscriberRepo(db *database.DB) SubscriberRepository {
	return &subscriberRepo{db: db}
}

// Create inserts a new subscriber. The email must already be
// lowercase-normalized; a duplicate returns ErrDuplicate.
func (r *subscriberRepo) Create(ctx context.Context, sub *models.Subscriber) error {
	query := "INSERT INTO subscribers (id, email, created_at) VALUES ($1, $2, $3)"
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.Email, sub.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Delete removes a subscriber by email
func (r *subscriberRepo) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM subscribers WHERE email = $1", email)
	return err
}

// List retrieves all subscribers, oldest first
func (r *subscriberRepo) List(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, email, created_at FROM subscribers ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Count returns the total number of subscribers
func (r *subscriberRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers").Scan(&count)
	return count, err
}
