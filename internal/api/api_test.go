package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avalanche-blog/internal/config"
	"github.com/avalanche-blog/internal/mocks"
	"github.com/avalanche-blog/internal/models"
	"github.com/avalanche-blog/internal/render"
	"github.com/avalanche-blog/internal/repository"
	"github.com/avalanche-blog/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const testAdminToken = "test-admin-token"

type testServer struct {
	router      *gin.Engine
	articles    *mocks.MockArticleRepository
	comments    *mocks.MockCommentRepository
	subscribers *mocks.MockSubscriberRepository
}

func newTestServer() *testServer {
	articles := mocks.NewMockArticleRepository()
	comments := mocks.NewMockCommentRepository()
	subscribers := mocks.NewMockSubscriberRepository()
	repos := &repository.Repositories{
		Article:    articles,
		Comment:    comments,
		Subscriber: subscribers,
		Setting:    mocks.NewMockSettingRepository(),
	}

	cfg := &config.Config{
		Site: config.SiteConfig{
			Name:            "Avalanche Media",
			BaseURL:         "https://example.com",
			SenderEmail:     "newsletter@example.com",
			PublishInterval: time.Minute,
		},
		Admin: config.AdminConfig{Token: testAdminToken},
	}

	log := zerolog.Nop()
	renderer := render.NewRenderer(cfg.Site.BaseURL, log)
	services := service.NewServices(repos, renderer, nil, cfg, log)

	return &testServer{
		router:      NewRouter(services, renderer, cfg, log),
		articles:    articles,
		comments:    comments,
		subscribers: subscribers,
	}
}

func (s *testServer) seedArticle(id, slug, title, status string, views int64) *models.Article {
	a := &models.Article{
		ID: id, Slug: slug, Title: title, Category: "Politics",
		Content: "Some content.", Status: status, Views: views,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	s.articles.Articles[id] = a
	s.articles.SlugToArticle[slug] = a
	return a
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testAdminToken}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer()
	w := s.do("GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decode(t, w)["status"]; got != "healthy" {
		t.Errorf("status field = %v", got)
	}
}

func TestListFeed(t *testing.T) {
	s := newTestServer()
	for i := 0; i < 8; i++ {
		s.seedArticle(fmt.Sprintf("00000000-0000-0000-0000-00000000000%d", i),
			fmt.Sprintf("article-%d", i), fmt.Sprintf("Article %d", i), "published", 0)
	}
	s.seedArticle("99999999-0000-0000-0000-000000000000", "draft-one", "Draft", "draft", 0)

	w := s.do("GET", "/v1/articles", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["total"].(float64) != 8 {
		t.Errorf("total = %v, want 8 (drafts excluded)", body["total"])
	}
	if body["total_pages"].(float64) != 2 {
		t.Errorf("total_pages = %v, want 2", body["total_pages"])
	}

	// Out-of-range page is rejected, client keeps its current page.
	if w := s.do("GET", "/v1/articles?page=9", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range page status = %d, want 400", w.Code)
	}

	// HTML rendering of the same page.
	w = s.do("GET", "/v1/articles?format=html", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "article-featured") {
		t.Errorf("html feed status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestGetArticleBySlug(t *testing.T) {
	s := newTestServer()
	s.seedArticle("00000000-0000-0000-0000-000000000001", "visible", "Visible", "published", 3)
	s.seedArticle("00000000-0000-0000-0000-000000000002", "hidden", "Hidden", "draft", 0)

	w := s.do("GET", "/v1/articles/visible", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["html"] == nil || body["article"] == nil {
		t.Error("response missing article or html")
	}

	// Drafts are invisible on the public surface.
	if w := s.do("GET", "/v1/articles/hidden", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("draft status = %d, want 404", w.Code)
	}
	if w := s.do("GET", "/v1/articles/missing", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", w.Code)
	}
}

func TestRegisterViewDedup(t *testing.T) {
	s := newTestServer()
	s.seedArticle("00000000-0000-0000-0000-000000000001", "story", "Story", "published", 0)
	device := map[string]string{"X-Device-ID": "device-1"}

	w := s.do("POST", "/v1/articles/story/views", "", device)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if counted := decode(t, w)["counted"]; counted != true {
		t.Errorf("first view counted = %v, want true", counted)
	}

	w = s.do("POST", "/v1/articles/story/views", "", device)
	if counted := decode(t, w)["counted"]; counted != false {
		t.Errorf("repeat view counted = %v, want false", counted)
	}
	if s.articles.ViewIncrements != 1 {
		t.Errorf("view increments = %d, want 1", s.articles.ViewIncrements)
	}

	// A different device counts.
	w = s.do("POST", "/v1/articles/story/views", "", map[string]string{"X-Device-ID": "device-2"})
	if counted := decode(t, w)["counted"]; counted != true {
		t.Errorf("second device counted = %v, want true", counted)
	}
}

func TestLikeArticleOnce(t *testing.T) {
	s := newTestServer()
	s.seedArticle("00000000-0000-0000-0000-000000000001", "story", "Story", "published", 0)
	device := map[string]string{"X-Device-ID": "device-1"}

	w := s.do("POST", "/v1/articles/story/likes", "", device)
	if liked := decode(t, w)["liked"]; liked != true {
		t.Errorf("first like = %v, want true", liked)
	}
	w = s.do("POST", "/v1/articles/story/likes", "", device)
	if liked := decode(t, w)["liked"]; liked != false {
		t.Errorf("repeat like = %v, want false", liked)
	}
	if s.articles.LikeIncrements != 1 {
		t.Errorf("like increments = %d, want 1", s.articles.LikeIncrements)
	}
}

func TestComments(t *testing.T) {
	s := newTestServer()
	s.seedArticle("00000000-0000-0000-0000-000000000001", "story", "Story", "published", 0)

	w := s.do("POST", "/v1/articles/story/comments", `{"name":"Reader","comment":"Great read"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	// Validation failures surface field errors.
	w = s.do("POST", "/v1/articles/story/comments", `{"name":"","comment":""}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid comment status = %d, want 400", w.Code)
	}

	w = s.do("GET", "/v1/articles/story/comments", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if count := decode(t, w)["count"]; count != float64(1) {
		t.Errorf("comment count = %v, want 1", count)
	}
}

func TestSubscribe(t *testing.T) {
	s := newTestServer()

	w := s.do("POST", "/v1/subscribers", `{"email":"reader@example.com"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("subscribe status = %d: %s", w.Code, w.Body.String())
	}

	// Duplicate signup is a quiet success.
	w = s.do("POST", "/v1/subscribers", `{"email":"reader@example.com"}`, nil)
	if w.Code != http.StatusOK {
		t.Errorf("duplicate status = %d, want 200", w.Code)
	}
	if subscribed := decode(t, w)["subscribed"]; subscribed != false {
		t.Errorf("duplicate subscribed = %v, want false", subscribed)
	}

	w = s.do("POST", "/v1/subscribers", `{"email":"not-an-email"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid email status = %d, want 400", w.Code)
	}
}

func TestAdminAuth(t *testing.T) {
	s := newTestServer()

	if w := s.do("GET", "/v1/admin/articles", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}
	bad := map[string]string{"Authorization": "Bearer wrong"}
	if w := s.do("GET", "/v1/admin/articles", "", bad); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
	if w := s.do("GET", "/v1/admin/articles", "", adminHeaders()); w.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", w.Code)
	}
}

func TestAdminArticleCRUD(t *testing.T) {
	s := newTestServer()

	w := s.do("POST", "/v1/admin/articles", `{"title":"New Piece","category":"Analysis"}`, adminHeaders())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	created := decode(t, w)
	id := created["id"].(string)
	if created["slug"] != "new-piece" {
		t.Errorf("slug = %v", created["slug"])
	}

	w = s.do("PUT", "/v1/admin/articles/"+id, `{"title":"New Piece","category":"Review"}`, adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["category"] != "Review" {
		t.Error("category not updated")
	}

	w = s.do("POST", "/v1/admin/articles", `{"title":"Bad","category":"Nope"}`, adminHeaders())
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid category status = %d, want 400", w.Code)
	}

	w = s.do("DELETE", "/v1/admin/articles/"+id, "", adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := s.do("GET", "/v1/admin/articles/"+id, "", adminHeaders()); w.Code != http.StatusNotFound {
		t.Errorf("deleted article status = %d, want 404", w.Code)
	}
}

func TestAdminStats(t *testing.T) {
	s := newTestServer()
	s.seedArticle("00000000-0000-0000-0000-000000000001", "a", "A", "published", 5)
	s.seedArticle("00000000-0000-0000-0000-000000000002", "b", "B", "published", 7)

	w := s.do("GET", "/v1/admin/stats", "", adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["total_articles"].(float64) != 2 {
		t.Errorf("total_articles = %v", body["total_articles"])
	}
	if body["total_views"].(float64) != 12 {
		t.Errorf("total_views = %v", body["total_views"])
	}
}

func TestAdminSettings(t *testing.T) {
	s := newTestServer()

	w := s.do("PUT", "/v1/admin/settings/banner", `{"enabled":true,"text":"Book launch"}`, adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", w.Code, w.Body.String())
	}

	w = s.do("GET", "/v1/admin/settings/banner", "", adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Book launch") {
		t.Errorf("setting body = %q", w.Body.String())
	}

	if w := s.do("GET", "/v1/admin/settings/unknown", "", adminHeaders()); w.Code != http.StatusBadRequest {
		t.Errorf("unknown key status = %d, want 400", w.Code)
	}
	if w := s.do("GET", "/v1/admin/settings/ebook", "", adminHeaders()); w.Code != http.StatusNotFound {
		t.Errorf("unset key status = %d, want 404", w.Code)
	}
}

func TestAdminViewExclusion(t *testing.T) {
	s := newTestServer()
	s.seedArticle("00000000-0000-0000-0000-000000000001", "story", "Story", "published", 0)
	device := map[string]string{"X-Device-ID": "admin-laptop"}

	headers := adminHeaders()
	headers["X-Device-ID"] = "admin-laptop"
	if w := s.do("POST", "/v1/admin/device", "", headers); w.Code != http.StatusOK {
		t.Fatalf("mark device status = %d", w.Code)
	}

	w := s.do("POST", "/v1/articles/story/views", "", device)
	if counted := decode(t, w)["counted"]; counted != false {
		t.Errorf("admin device view counted = %v, want false", counted)
	}
	if s.articles.ViewIncrements != 0 {
		t.Errorf("view increments = %d, want 0", s.articles.ViewIncrements)
	}
}
