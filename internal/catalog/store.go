// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package catalog holds the in-memory content and profile store plus the
// pure view derivations the storefront renders from.
//
// The store is the single authority for both collections. All reads hand
// out deep copies, all writes go through the store's mutex, and profile
// mutations are flushed to the persistence layer immediately while content
// mutations accumulate until an explicit Save.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/metrics"
	"github.com/tomtom215/vitrine/internal/models"
)

// Persistence is the durability boundary the store writes through. The
// badger adapter implements it; tests swap in a stub.
type Persistence interface {
	LoadContent(ctx context.Context) ([]models.ContentItem, error)
	LoadProfiles(ctx context.Context) ([]models.UserProfile, error)
	SaveContent(ctx context.Context, items []models.ContentItem) error
	SaveProfiles(ctx context.Context, profiles []models.UserProfile) error
}

// ErrProfileNotFound is returned by profile-scoped operations when the
// given profile ID does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// ErrContentNotFound is returned by operations that require an existing
// content item.
var ErrContentNotFound = errors.New("content not found")

// ErrSaveFailed wraps persistence write failures so handlers can tell a
// failed flush apart from a lookup miss.
var ErrSaveFailed = errors.New("persistence save failed")

// Store owns the catalog and profile collections. Content order is
// insertion order and is meaningful: the storefront rows and the
// continue-watching shelf both render in catalog order.
type Store struct {
	mu       sync.RWMutex
	content  []models.ContentItem
	profiles []models.UserProfile

	persistence   Persistence
	cascadeDelete bool
}

// Option configures a Store at construction.
type Option func(*Store)

// WithCascadeDelete controls whether deleting a content item also scrubs
// its ID from every profile's watchlist and history. Off by default:
// dangling references are accepted and filtered out at read time.
func WithCascadeDelete(enabled bool) Option {
	return func(s *Store) {
		s.cascadeDelete = enabled
	}
}

// NewStore loads both collections from the persistence layer and returns
// a ready store. Load failures are fatal here; the adapter itself already
// falls back to seed data when keys are missing or unreadable.
func NewStore(ctx context.Context, p Persistence, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, errors.New("catalog: persistence is required")
	}

	content, err := p.LoadContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	profiles, err := p.LoadProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	s := &Store{
		content:     content,
		profiles:    profiles,
		persistence: p,
	}
	for _, opt := range opts {
		opt(s)
	}

	logging.Info().
		Int("content_items", len(content)).
		Int("profiles", len(profiles)).
		Bool("cascade_delete", s.cascadeDelete).
		Msg("Catalog store loaded")

	return s, nil
}

// ---------------------------------------------------------------------------
// Content reads
// ---------------------------------------------------------------------------

// ListContent returns a deep-copied snapshot of the catalog in insertion
// order.
func (s *Store) ListContent() []models.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneContent(s.content)
}

// GetContent returns the item with the given ID, or ErrContentNotFound.
func (s *Store) GetContent(id string) (models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.content {
		if s.content[i].ID == id {
			return s.content[i].Clone(), nil
		}
	}
	return models.ContentItem{}, ErrContentNotFound
}

// ---------------------------------------------------------------------------
// Content writes
// ---------------------------------------------------------------------------

// UpsertContent inserts or replaces a content item. An empty ID means
// create: a fresh ID is minted and the item is appended, preserving
// catalog order. A non-empty ID replaces the matching entry in place; if
// no entry matches, the item is appended with the ID it arrived with.
//
// Content writes stay in memory until Save is called from the admin
// console.
func (s *Store) UpsertContent(item models.ContentItem) models.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := item.Clone()
	if stored.Comments == nil {
		stored.Comments = []models.Comment{}
	}

	if stored.ID == "" {
		stored.ID = uuid.NewString()
		s.content = append(s.content, stored)
		logging.Debug().Str("content_id", stored.ID).Str("title", stored.Title).Msg("Content created")
		return stored.Clone()
	}

	for i := range s.content {
		if s.content[i].ID == stored.ID {
			s.content[i] = stored
			logging.Debug().Str("content_id", stored.ID).Msg("Content replaced")
			return stored.Clone()
		}
	}

	s.content = append(s.content, stored)
	logging.Debug().Str("content_id", stored.ID).Msg("Content created with caller-assigned ID")
	return stored.Clone()
}

// DeleteContent removes the item with the given ID. Deleting an absent ID
// is a no-op. Profile references are left dangling unless cascade delete
// was enabled, in which case the ID is scrubbed from every watchlist and
// history and the profiles are persisted.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.content {
		if s.content[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	s.content = append(s.content[:idx], s.content[idx+1:]...)
	logging.Debug().Str("content_id", id).Msg("Content deleted")

	if !s.cascadeDelete {
		return nil
	}

	changed := false
	for i := range s.profiles {
		p := &s.profiles[i]
		if w := removeID(p.Watchlist, id); len(w) != len(p.Watchlist) {
			p.Watchlist = w
			changed = true
		}
		if h := removeID(p.History, id); len(h) != len(p.History) {
			p.History = h
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.saveProfilesLocked(ctx)
}

// UpsertEpisode inserts or replaces an episode on a series. An empty
// episode ID mints one. Replacement matches by episode ID within the one
// owning series; episodes never move between series.
func (s *Store) UpsertEpisode(seriesID string, ep models.Episode) (models.Episode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.content {
		if s.content[i].ID != seriesID {
			continue
		}
		if s.content[i].Type != models.ContentTypeSeries {
			return models.Episode{}, fmt.Errorf("content %q is not a series", seriesID)
		}
		if ep.ID == "" {
			ep.ID = uuid.NewString()
			s.content[i].Episodes = append(s.content[i].Episodes, ep)
			return ep, nil
		}
		for j := range s.content[i].Episodes {
			if s.content[i].Episodes[j].ID == ep.ID {
				s.content[i].Episodes[j] = ep
				return ep, nil
			}
		}
		s.content[i].Episodes = append(s.content[i].Episodes, ep)
		return ep, nil
	}
	return models.Episode{}, ErrContentNotFound
}

// DeleteEpisode removes an episode from a series. Absent series or
// episode IDs are no-ops.
func (s *Store) DeleteEpisode(seriesID, episodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.content {
		if s.content[i].ID != seriesID {
			continue
		}
		eps := s.content[i].Episodes
		for j := range eps {
			if eps[j].ID == episodeID {
				s.content[i].Episodes = append(eps[:j], eps[j+1:]...)
				return
			}
		}
		return
	}
}

// AddComment prepends a comment to the item's comment list so newest
// renders first. A missing content ID or a blank comment body is a
// silent no-op, matching the storefront's fire-and-forget submit.
func (s *Store) AddComment(contentID string, c models.Comment) {
	if strings.TrimSpace(c.Text) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.content {
		if s.content[i].ID != contentID {
			continue
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Date == "" {
			now := time.Now()
			c.Date = fmt.Sprintf("%d/%d/%d", now.Month(), now.Day(), now.Year())
		}
		s.content[i].Comments = append([]models.Comment{c}, s.content[i].Comments...)
		return
	}
}

// Save flushes the content collection to the persistence layer. Called
// from the admin console's explicit save action; profile writes do not go
// through here.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	snapshot := cloneContent(s.content)
	s.mu.RUnlock()

	err := s.persistence.SaveContent(ctx, snapshot)
	metrics.RecordSave("content", err)
	if err != nil {
		return fmt.Errorf("save content: %w: %w", ErrSaveFailed, err)
	}
	logging.Info().Int("content_items", len(snapshot)).Msg("Catalog saved")
	return nil
}

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

// ListProfiles returns a deep-copied snapshot of all profiles.
func (s *Store) ListProfiles() []models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfiles(s.profiles)
}

// GetProfile returns the profile with the given ID, or ErrProfileNotFound.
func (s *Store) GetProfile(id string) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			return s.profiles[i].Clone(), nil
		}
	}
	return models.UserProfile{}, ErrProfileNotFound
}

// UpsertProfile replaces an existing profile by ID and persists the
// profile collection. Unknown IDs are rejected: profiles are seeded, not
// created through this path.
func (s *Store) UpsertProfile(ctx context.Context, p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].ID == p.ID {
			s.profiles[i] = p.Clone()
			return s.saveProfilesLocked(ctx)
		}
	}
	return ErrProfileNotFound
}

// AddToHistory front-inserts a content ID into the profile's history. An
// ID already present anywhere in the history is left untouched: no
// duplicate, no promotion. The change is persisted immediately.
func (s *Store) AddToHistory(ctx context.Context, profileID, contentID string) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].ID != profileID {
			continue
		}
		p := &s.profiles[i]
		if p.InHistory(contentID) {
			return p.Clone(), nil
		}
		p.History = append([]string{contentID}, p.History...)
		if err := s.saveProfilesLocked(ctx); err != nil {
			return models.UserProfile{}, err
		}
		return p.Clone(), nil
	}
	return models.UserProfile{}, ErrProfileNotFound
}

// ToggleWatchlist adds the content ID to the profile's watchlist if
// absent, removes it if present, and persists. Applying it twice always
// restores the original watchlist.
func (s *Store) ToggleWatchlist(ctx context.Context, profileID, contentID string) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].ID != profileID {
			continue
		}
		p := &s.profiles[i]
		if p.InWatchlist(contentID) {
			p.Watchlist = removeID(p.Watchlist, contentID)
		} else {
			p.Watchlist = append(p.Watchlist, contentID)
		}
		if err := s.saveProfilesLocked(ctx); err != nil {
			return models.UserProfile{}, err
		}
		return p.Clone(), nil
	}
	return models.UserProfile{}, ErrProfileNotFound
}

// Stats summarizes the store for the admin dashboard.
func (s *Store) Stats() models.AdminStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.AdminStats{
		TotalContent: len(s.content),
		Profiles:     len(s.profiles),
	}
	for i := range s.content {
		c := &s.content[i]
		switch c.Type {
		case models.ContentTypeMovie:
			stats.Movies++
		case models.ContentTypeSeries:
			stats.Series++
		}
		stats.Episodes += len(c.Episodes)
		stats.Comments += len(c.Comments)
		if c.IsPopular {
			stats.PopularCount++
		}
		if c.IsNew {
			stats.NewReleaseCnt++
		}
	}
	return stats
}

// saveProfilesLocked persists the profile collection. Callers must hold
// the write lock.
func (s *Store) saveProfilesLocked(ctx context.Context) error {
	err := s.persistence.SaveProfiles(ctx, cloneProfiles(s.profiles))
	metrics.RecordSave("profiles", err)
	if err != nil {
		return fmt.Errorf("save profiles: %w: %w", ErrSaveFailed, err)
	}
	return nil
}

func cloneContent(items []models.ContentItem) []models.ContentItem {
	out := make([]models.ContentItem, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

func cloneProfiles(profiles []models.UserProfile) []models.UserProfile {
	out := make([]models.UserProfile, len(profiles))
	for i := range profiles {
		out[i] = profiles[i].Clone()
	}
	return out
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
