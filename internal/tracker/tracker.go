package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Device-storage keys, one namespace per device
const (
	keyAdminSession  = "adminLoggedIn"
	keyAdminDevice   = "isAdminDevice"
	keyViewedList    = "viewedArticles"
	keyLikedArticles = "likedArticles"
	keyLikedComments = "likedComments"
)

// ErrAlreadyCounted is the policy outcome for a repeat like from the same
// device. It is not a failure; callers surface it as an informational
// notice with no counter change.
var ErrAlreadyCounted = errors.New("already counted from this device")

// DeviceStore is the per-device key-value collaborator. Values are
// strings; Get returns "" for absent keys. Assumed synchronous and always
// available, mirroring browser-local storage.
type DeviceStore interface {
	Get(key string) string
	Set(key, value string)
}

// Counters is the remote atomic-increment collaborator backing the
// view and like counters.
type Counters interface {
	IncrementViews(ctx context.Context, articleID string) error
	IncrementArticleLikes(ctx context.Context, articleID string) error
	IncrementCommentLikes(ctx context.Context, commentID string) error
}

// Tracker decides whether a page load or like attempt may increment a
// counter, using per-device markers. The ledger is best-effort: clearing
// device storage resets it, and that is the accepted contract.
type Tracker struct {
	counters Counters
	now      func() time.Time
	log      zerolog.Logger
}

// New creates a Tracker. now may be nil, defaulting to time.Now.
func New(counters Counters, now func() time.Time, log zerolog.Logger) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		counters: counters,
		now:      now,
		log:      log.With().Str("component", "tracker").Logger(),
	}
}

// RegisterView counts a view at most once per article per calendar day per
// device, and never for admin sessions or admin-flagged devices. The
// returned bool reports whether a remote increment happened. A remote
// failure is logged and returned, but callers must never let it block
// rendering the article itself.
func (t *Tracker) RegisterView(ctx context.Context, store DeviceStore, articleID string) (bool, error) {
	if store.Get(keyAdminSession) == "true" || store.Get(keyAdminDevice) == "true" {
		t.log.Debug().Str("article_id", articleID).Msg("Admin view - not counted")
		return false, nil
	}

	viewKey := articleID + "-" + t.now().Format("2006-01-02")
	viewed := readList(store, keyViewedList)
	if contains(viewed, viewKey) {
		t.log.Debug().Str("article_id", articleID).Msg("Already viewed today - not counted")
		return false, nil
	}

	if err := t.counters.IncrementViews(ctx, articleID); err != nil {
		t.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to increment views")
		return false, err
	}

	// Record the dedup key only after the increment succeeded, so a
	// failed increment can be retried on the next load.
	writeList(store, keyViewedList, append(viewed, viewKey))
	return true, nil
}

// LikeArticle permits one like per article per device. A repeat attempt
// returns ErrAlreadyCounted and changes nothing.
func (t *Tracker) LikeArticle(ctx context.Context, store DeviceStore, articleID string) error {
	return t.like(ctx, store, keyLikedArticles, articleID, t.counters.IncrementArticleLikes)
}

// LikeComment follows the identical one-per-device rule keyed by comment id
func (t *Tracker) LikeComment(ctx context.Context, store DeviceStore, commentID string) error {
	return t.like(ctx, store, keyLikedComments, commentID, t.counters.IncrementCommentLikes)
}

func (t *Tracker) like(ctx context.Context, store DeviceStore, listKey, id string, incr func(context.Context, string) error) error {
	liked := readList(store, listKey)
	if contains(liked, id) {
		return ErrAlreadyCounted
	}
	if err := incr(ctx, id); err != nil {
		t.log.Error().Err(err).Str("id", id).Msg("Failed to increment likes")
		return err
	}
	writeList(store, listKey, append(liked, id))
	return nil
}

// MarkAdminDevice flags the device so its views are never counted
func (t *Tracker) MarkAdminDevice(store DeviceStore) {
	store.Set(keyAdminDevice, "true")
}

// SetAdminSession records whether the device is currently logged into the
// admin panel
func (t *Tracker) SetAdminSession(store DeviceStore, loggedIn bool) {
	if loggedIn {
		store.Set(keyAdminSession, "true")
	} else {
		store.Set(keyAdminSession, "false")
	}
}

func readList(store DeviceStore, key string) []string {
	raw := store.Get(key)
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		// A corrupt ledger resets dedup state rather than failing.
		return nil
	}
	return list
}

func writeList(store DeviceStore, key string, list []string) {
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	store.Set(key, string(raw))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
