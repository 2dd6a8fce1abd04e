package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avalanche-blog/internal/mocks"
	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/repository"
)

func TestMockArticleRepository_SlugUniqueness(t *testing.T) {
	repo := mocks.NewMockArticleRepository()
	ctx := context.Background()

	first := &models.Article{ID: "a-1", Slug: "shared-slug", Title: "First", CreatedAt: time.Now()}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second := &models.Article{ID: "a-2", Slug: "shared-slug", Title: "Second", CreatedAt: time.Now()}
	if err := repo.Create(ctx, second); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate slug err = %v, want ErrDuplicate", err)
	}

	exists, err := repo.SlugExists(ctx, "shared-slug")
	if err != nil || !exists {
		t.Errorf("SlugExists = %v, %v", exists, err)
	}
}

func TestMockArticleRepository_ListOrdering(t *testing.T) {
	repo := mocks.NewMockArticleRepository()
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	repo.Articles["old"] = &models.Article{ID: "old", Slug: "old", Status: "published", CreatedAt: base}
	repo.Articles["new"] = &models.Article{ID: "new", Slug: "new", Status: "published", CreatedAt: base.Add(time.Hour)}
	repo.Articles["draft"] = &models.Article{ID: "draft", Slug: "draft", Status: "draft", CreatedAt: base.Add(2 * time.Hour)}

	public, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(public) != 2 || public[0].ID != "new" {
		t.Errorf("public list = %v, want [new old]", public)
	}

	all, _ := repo.List(ctx, false)
	if len(all) != 3 || all[0].ID != "draft" {
		t.Errorf("full list = %v, want draft first", all)
	}
}

func TestMockArticleRepository_ScheduledDue(t *testing.T) {
	repo := mocks.NewMockArticleRepository()
	ctx := context.Background()
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	repo.Articles["due"] = &models.Article{ID: "due", Slug: "due", Status: models.StatusScheduled, ScheduledFor: &past}
	repo.Articles["later"] = &models.Article{ID: "later", Slug: "later", Status: models.StatusScheduled, ScheduledFor: &future}
	repo.Articles["live"] = &models.Article{ID: "live", Slug: "live", Status: models.StatusPublished}

	due, err := repo.ListScheduledDue(ctx, now)
	if err != nil {
		t.Fatalf("ListScheduledDue failed: %v", err)
	}
	if len(due) != 1 || due[0].ID != "due" {
		t.Errorf("due = %v, want only the overdue scheduled article", due)
	}
}

func TestMockArticleRepository_Counters(t *testing.T) {
	repo := mocks.NewMockArticleRepository()
	ctx := context.Background()

	repo.Articles["a-1"] = &models.Article{ID: "a-1", Slug: "a-1", Status: "published"}
	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, "a-1"); err != nil {
			t.Fatalf("IncrementViews failed: %v", err)
		}
	}
	if err := repo.IncrementLikes(ctx, "a-1"); err != nil {
		t.Fatalf("IncrementLikes failed: %v", err)
	}

	if repo.Articles["a-1"].Views != 3 || repo.Articles["a-1"].Likes != 1 {
		t.Errorf("counters = %d views %d likes, want 3 and 1",
			repo.Articles["a-1"].Views, repo.Articles["a-1"].Likes)
	}

	total, err := repo.SumViews(ctx)
	if err != nil || total != 3 {
		t.Errorf("SumViews = %d, %v", total, err)
	}
}

func TestMockSubscriberRepository_DuplicateEmail(t *testing.T) {
	repo := mocks.NewMockSubscriberRepository()
	ctx := context.Background()

	sub := &models.Subscriber{ID: "s-1", Email: "reader@example.com", CreatedAt: time.Now()}
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &models.Subscriber{ID: "s-2", Email: "reader@example.com", CreatedAt: time.Now()}
	if err := repo.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate email err = %v, want ErrDuplicate", err)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
