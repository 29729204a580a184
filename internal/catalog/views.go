// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package catalog

import (
	"strings"

	"github.com/tomtom215/vitrine/internal/models"
)

// View derivations. Each one re-derives from the current snapshot on
// every call; nothing here caches, so a stale result is impossible.

// ByType returns the catalog items of the given type in catalog order.
func (s *Store) ByType(t models.ContentType) []models.ContentItem {
	return s.filter(func(c *models.ContentItem) bool { return c.Type == t })
}

// Popular returns the items flagged popular, in catalog order.
func (s *Store) Popular() []models.ContentItem {
	return s.filter(func(c *models.ContentItem) bool { return c.IsPopular })
}

// NewReleases returns the items flagged as new, in catalog order.
func (s *Store) NewReleases() []models.ContentItem {
	return s.filter(func(c *models.ContentItem) bool { return c.IsNew })
}

// ContinueWatching returns the items in the profile's history, ordered by
// catalog position rather than recency. Dangling history IDs are skipped.
func (s *Store) ContinueWatching(profileID string) ([]models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var profile *models.UserProfile
	for i := range s.profiles {
		if s.profiles[i].ID == profileID {
			profile = &s.profiles[i]
			break
		}
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	out := []models.ContentItem{}
	for i := range s.content {
		if profile.InHistory(s.content[i].ID) {
			out = append(out, s.content[i].Clone())
		}
	}
	return out, nil
}

// Watchlist returns the items in the profile's watchlist in watchlist
// insertion order. Dangling IDs are skipped.
func (s *Store) Watchlist(profileID string) ([]models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var profile *models.UserProfile
	for i := range s.profiles {
		if s.profiles[i].ID == profileID {
			profile = &s.profiles[i]
			break
		}
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	out := []models.ContentItem{}
	for _, id := range profile.Watchlist {
		for i := range s.content {
			if s.content[i].ID == id {
				out = append(out, s.content[i].Clone())
				break
			}
		}
	}
	return out, nil
}

// Search matches the query as a case-insensitive substring of the title
// or any genre tag. An empty or whitespace-only query means search is
// inactive and yields an empty result, not the full catalog.
func (s *Store) Search(query string) []models.ContentItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.ContentItem{}
	}
	return s.filter(func(c *models.ContentItem) bool {
		if strings.Contains(strings.ToLower(c.Title), q) {
			return true
		}
		for _, g := range c.Genres {
			if strings.Contains(strings.ToLower(g), q) {
				return true
			}
		}
		return false
	})
}

// ResolveIDs maps recommendation IDs back to catalog items, dropping any
// ID that no longer exists. Result order follows the input order.
func (s *Store) ResolveIDs(ids []string) []models.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ContentItem{}
	for _, id := range ids {
		for i := range s.content {
			if s.content[i].ID == id {
				out = append(out, s.content[i].Clone())
				break
			}
		}
	}
	return out
}

// HistoryTitles returns the titles of the profile's history items in
// history order, skipping dangling IDs. Feeds the recommendation request.
func (s *Store) HistoryTitles(profileID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var profile *models.UserProfile
	for i := range s.profiles {
		if s.profiles[i].ID == profileID {
			profile = &s.profiles[i]
			break
		}
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	titles := []string{}
	for _, id := range profile.History {
		for i := range s.content {
			if s.content[i].ID == id {
				titles = append(titles, s.content[i].Title)
				break
			}
		}
	}
	return titles, nil
}

// Projections returns the {id, title, genres} view of the full catalog
// for the recommendation request.
func (s *Store) Projections() []models.CatalogProjection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CatalogProjection, 0, len(s.content))
	for i := range s.content {
		out = append(out, s.content[i].Project())
	}
	return out
}

func (s *Store) filter(keep func(*models.ContentItem) bool) []models.ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ContentItem{}
	for i := range s.content {
		if keep(&s.content[i]) {
			out = append(out, s.content[i].Clone())
		}
	}
	return out
}
