// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package catalog

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/vitrine/internal/metrics"
	"github.com/tomtom215/vitrine/internal/models"
)

// memPersistence is an in-memory Persistence stub recording saves.
type memPersistence struct {
	mu           sync.Mutex
	content      []models.ContentItem
	profiles     []models.UserProfile
	contentSaves int
	profileSaves int
	failSave     error
}

func (m *memPersistence) LoadContent(context.Context) ([]models.ContentItem, error) {
	return m.content, nil
}

func (m *memPersistence) LoadProfiles(context.Context) ([]models.UserProfile, error) {
	return m.profiles, nil
}

func (m *memPersistence) SaveContent(_ context.Context, items []models.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.content = items
	m.contentSaves++
	return nil
}

func (m *memPersistence) SaveProfiles(_ context.Context, profiles []models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.profiles = profiles
	m.profileSaves++
	return nil
}

func testFixtures() *memPersistence {
	return &memPersistence{
		content: []models.ContentItem{
			{ID: "1", Title: "Kara Liman", Type: models.ContentTypeSeries,
				Genres: []string{"Aksiyon", "Dram"}, IsPopular: true,
				Episodes: []models.Episode{
					{ID: "1-e1", Title: "Demir Atmak", SeasonNumber: 1, EpisodeNumber: 1},
					{ID: "1-e2", Title: "Sis", SeasonNumber: 1, EpisodeNumber: 2},
				}},
			{ID: "2", Title: "Son Vapur", Type: models.ContentTypeMovie,
				Genres: []string{"Gerilim"}, IsNew: true},
			{ID: "3", Title: "Bozkir", Type: models.ContentTypeMovie,
				Genres: []string{"Dram"}, IsPopular: true, IsNew: true},
		},
		profiles: []models.UserProfile{
			{ID: "p1", Name: "Mustafa", Role: models.RoleAdmin,
				Watchlist: []string{"2"}, History: []string{"3", "1"}},
			{ID: "p2", Name: "Zeynep", Role: models.RoleUser,
				Watchlist: []string{}, History: []string{}},
		},
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *memPersistence) {
	t.Helper()
	mem := testFixtures()
	s, err := NewStore(context.Background(), mem, opts...)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, mem
}

func contentIDs(items []models.ContentItem) []string {
	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.ID
	}
	return ids
}

func TestNewStoreRequiresPersistence(t *testing.T) {
	if _, err := NewStore(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil persistence")
	}
}

func TestUpsertContentMintsID(t *testing.T) {
	s, _ := newTestStore(t)

	created := s.UpsertContent(models.ContentItem{Title: "Yeni Film", Type: models.ContentTypeMovie})
	if created.ID == "" {
		t.Fatal("expected a minted ID for empty-ID upsert")
	}

	items := s.ListContent()
	if len(items) != 4 {
		t.Fatalf("expected 4 items after create, got %d", len(items))
	}
	if items[3].ID != created.ID {
		t.Errorf("new item should append at the end, got order %v", contentIDs(items))
	}
	if items[3].Comments == nil {
		t.Error("created item should have an empty comments slice, not nil")
	}
}

func TestUpsertContentReplacesInPlace(t *testing.T) {
	s, _ := newTestStore(t)

	s.UpsertContent(models.ContentItem{ID: "2", Title: "Son Vapur (Restored)", Type: models.ContentTypeMovie})

	items := s.ListContent()
	if got := contentIDs(items); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("replace must preserve catalog order, got %v", got)
	}
	if items[1].Title != "Son Vapur (Restored)" {
		t.Errorf("replace did not take effect: %q", items[1].Title)
	}
}

func TestDeleteContentIdempotentNoCascade(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	if err := s.DeleteContent(ctx, "3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteContent(ctx, "3"); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
	if err := s.DeleteContent(ctx, "no-such-id"); err != nil {
		t.Fatalf("deleting an unknown ID must be a no-op, got %v", err)
	}

	if got := contentIDs(s.ListContent()); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("unexpected catalog after delete: %v", got)
	}

	// Without cascade the profile keeps its dangling history reference.
	p, err := s.GetProfile("p1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if !p.InHistory("3") {
		t.Error("delete must not scrub profile references by default")
	}
	if mem.profileSaves != 0 {
		t.Errorf("no profile save expected without cascade, got %d", mem.profileSaves)
	}
}

func TestDeleteContentCascade(t *testing.T) {
	s, mem := newTestStore(t, WithCascadeDelete(true))

	if err := s.DeleteContent(context.Background(), "3"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	p, err := s.GetProfile("p1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.InHistory("3") {
		t.Error("cascade delete must scrub history references")
	}
	if got := p.History; !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("history after cascade = %v, want [1]", got)
	}
	if mem.profileSaves != 1 {
		t.Errorf("cascade must persist profiles once, got %d saves", mem.profileSaves)
	}
}

func TestUpsertEpisode(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.UpsertEpisode("1", models.Episode{Title: "Firtina", SeasonNumber: 1, EpisodeNumber: 3})
	if err != nil {
		t.Fatalf("create episode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a minted episode ID")
	}

	replaced, err := s.UpsertEpisode("1", models.Episode{ID: "1-e1", Title: "Demir Atmak (Extended)", SeasonNumber: 1, EpisodeNumber: 1})
	if err != nil {
		t.Fatalf("replace episode: %v", err)
	}
	if replaced.Title != "Demir Atmak (Extended)" {
		t.Errorf("replace returned %q", replaced.Title)
	}

	item, err := s.GetContent("1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if len(item.Episodes) != 3 {
		t.Fatalf("expected 3 episodes, got %d", len(item.Episodes))
	}
	if item.Episodes[0].Title != "Demir Atmak (Extended)" {
		t.Errorf("episode replace must be in place, got %q first", item.Episodes[0].Title)
	}

	if _, err := s.UpsertEpisode("2", models.Episode{Title: "x"}); err == nil {
		t.Error("adding an episode to a movie must fail")
	}
	if _, err := s.UpsertEpisode("no-such-id", models.Episode{Title: "x"}); !errors.Is(err, ErrContentNotFound) {
		t.Errorf("expected ErrContentNotFound, got %v", err)
	}
}

func TestDeleteEpisode(t *testing.T) {
	s, _ := newTestStore(t)

	s.DeleteEpisode("1", "1-e1")
	s.DeleteEpisode("1", "1-e1")          // absent episode, no-op
	s.DeleteEpisode("no-such-id", "1-e2") // absent series, no-op

	item, err := s.GetContent("1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if len(item.Episodes) != 1 || item.Episodes[0].ID != "1-e2" {
		t.Errorf("unexpected episodes after delete: %+v", item.Episodes)
	}
}

func TestAddCommentPrepends(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddComment("1", models.Comment{UserID: "p2", UserName: "Zeynep", Text: "Harika", Rating: 5})
	s.AddComment("1", models.Comment{UserID: "p1", UserName: "Mustafa", Text: "Fena degil", Rating: 3})

	item, err := s.GetContent("1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if len(item.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(item.Comments))
	}
	if item.Comments[0].Text != "Fena degil" {
		t.Errorf("newest comment must render first, got %q", item.Comments[0].Text)
	}
	if item.Comments[0].ID == "" || item.Comments[0].Date == "" {
		t.Error("comment ID and date must be filled when absent")
	}
}

func TestAddCommentSilentNoOps(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddComment("no-such-id", models.Comment{Text: "lost"})
	s.AddComment("1", models.Comment{Text: "   "})
	s.AddComment("1", models.Comment{Text: ""})

	item, err := s.GetContent("1")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if len(item.Comments) != 0 {
		t.Errorf("blank comments must be dropped, got %+v", item.Comments)
	}
}

func TestSaveFlushesContentOnly(t *testing.T) {
	s, mem := newTestStore(t)

	s.UpsertContent(models.ContentItem{Title: "Taslak"})
	if mem.contentSaves != 0 {
		t.Fatal("content writes must stay in memory until Save")
	}

	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if mem.contentSaves != 1 {
		t.Errorf("expected one content save, got %d", mem.contentSaves)
	}
	if len(mem.content) != 4 {
		t.Errorf("persisted snapshot has %d items, want 4", len(mem.content))
	}
}

func TestSaveFailuresWrapSentinel(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	mem.failSave = errors.New("disk full")

	failedBefore := testutil.ToFloat64(metrics.PersistenceSaves.WithLabelValues("profiles", "failure"))

	if _, err := s.ToggleWatchlist(ctx, "p1", "1"); !errors.Is(err, ErrSaveFailed) {
		t.Errorf("ToggleWatchlist save failure = %v, want ErrSaveFailed", err)
	}
	if got := testutil.ToFloat64(metrics.PersistenceSaves.WithLabelValues("profiles", "failure")); got != failedBefore+1 {
		t.Errorf("profile save failures = %v, want %v", got, failedBefore+1)
	}
	if _, err := s.AddToHistory(ctx, "p1", "2"); !errors.Is(err, ErrSaveFailed) {
		t.Errorf("AddToHistory save failure = %v, want ErrSaveFailed", err)
	}
	p, _ := s.GetProfile("p1")
	if err := s.UpsertProfile(ctx, p); !errors.Is(err, ErrSaveFailed) {
		t.Errorf("UpsertProfile save failure = %v, want ErrSaveFailed", err)
	}
	if err := s.Save(ctx); !errors.Is(err, ErrSaveFailed) {
		t.Errorf("Save failure = %v, want ErrSaveFailed", err)
	}
}

func TestUpsertProfileReplaceByIDOnly(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	p, _ := s.GetProfile("p2")
	p.Name = "Zeynep K."
	if err := s.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	got, _ := s.GetProfile("p2")
	if got.Name != "Zeynep K." {
		t.Errorf("profile not replaced: %q", got.Name)
	}
	if mem.profileSaves != 1 {
		t.Errorf("profile change must persist immediately, got %d saves", mem.profileSaves)
	}

	err := s.UpsertProfile(ctx, models.UserProfile{ID: "p99", Name: "Ghost"})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("unknown profile must be rejected, got %v", err)
	}
	if len(s.ListProfiles()) != 2 {
		t.Error("upsert must never create new profiles")
	}
}

func TestAddToHistoryFrontInsertDedup(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.AddToHistory(ctx, "p1", "2")
	if err != nil {
		t.Fatalf("AddToHistory: %v", err)
	}
	if got := p.History; !reflect.DeepEqual(got, []string{"2", "3", "1"}) {
		t.Fatalf("history = %v, want front insert [2 3 1]", got)
	}

	// Re-adding an existing ID leaves the list exactly as it was.
	p, err = s.AddToHistory(ctx, "p1", "3")
	if err != nil {
		t.Fatalf("AddToHistory: %v", err)
	}
	if got := p.History; !reflect.DeepEqual(got, []string{"2", "3", "1"}) {
		t.Errorf("duplicate add must not reorder, got %v", got)
	}

	if _, err := s.AddToHistory(ctx, "p99", "1"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestToggleWatchlistInvolution(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before, _ := s.GetProfile("p1")

	p, err := s.ToggleWatchlist(ctx, "p1", "3")
	if err != nil {
		t.Fatalf("ToggleWatchlist: %v", err)
	}
	if !p.InWatchlist("3") {
		t.Fatal("first toggle must add")
	}

	p, err = s.ToggleWatchlist(ctx, "p1", "3")
	if err != nil {
		t.Fatalf("ToggleWatchlist: %v", err)
	}
	if !reflect.DeepEqual(p.Watchlist, before.Watchlist) {
		t.Errorf("double toggle must restore the watchlist, got %v want %v", p.Watchlist, before.Watchlist)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s, _ := newTestStore(t)

	items := s.ListContent()
	items[0].Title = "mutated"
	items[0].Genres[0] = "mutated"

	fresh, _ := s.GetContent("1")
	if fresh.Title != "Kara Liman" || fresh.Genres[0] != "Aksiyon" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddComment("1", models.Comment{Text: "n1"})

	got := s.Stats()
	want := models.AdminStats{
		TotalContent: 3, Movies: 2, Series: 1, Episodes: 2,
		Comments: 1, Profiles: 2, PopularCount: 2, NewReleaseCnt: 2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
