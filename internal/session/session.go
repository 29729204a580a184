// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package session tracks per-client storefront state: the active profile
// and which overlay, if any, sits above the browsing view.
//
// Overlays are a tagged variant rather than independent booleans, so two
// overlays can never render at once: opening the player closes the detail
// modal, opening the admin console closes whatever content overlay was
// up. Entering playback is the one transition with a side effect, a
// history write into the catalog store.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/models"
)

// OverlayKind enumerates the mutually exclusive overlay states.
type OverlayKind string

const (
	OverlayNone   OverlayKind = "browsing"
	OverlayDetail OverlayKind = "detail"
	OverlayPlayer OverlayKind = "player"
	OverlayAdmin  OverlayKind = "admin"
)

// Overlay is the tagged overlay variant. ContentID is set for detail and
// player; EpisodeID is set only for player and only when a specific
// episode was chosen.
type Overlay struct {
	Kind      OverlayKind `json:"kind"`
	ContentID string      `json:"contentId,omitempty"`
	EpisodeID string      `json:"episodeId,omitempty"`
}

// Session is one client's storefront state. RecGeneration is a monotonic
// counter for recommendation requests: a response is applied only if its
// generation is still the latest issued, so a slow older call can never
// overwrite a newer result.
type Session struct {
	ID              string    `json:"id"`
	ActiveProfileID string    `json:"activeProfileId,omitempty"`
	Overlay         Overlay   `json:"overlay"`
	RecGeneration   uint64    `json:"-"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
}

var (
	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoActiveProfile is returned by transitions that require a
	// selected profile.
	ErrNoActiveProfile = errors.New("no active profile selected")
)

// Manager owns all live sessions. It leans on the catalog store for the
// playback history side effect and for validating profile selection.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    *catalog.Store
}

// NewManager creates an empty session manager.
func NewManager(store *catalog.Store) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
	}
}

// Start creates a new session in the no-profile-selected state.
func (m *Manager) Start() Session {
	s := &Session{
		ID:              uuid.NewString(),
		Overlay:         Overlay{Kind: OverlayNone},
		Recommendations: []string{},
		CreatedAt:       time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logging.Debug().Str("session_id", s.ID).Msg("Session started")
	return *s
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return snapshot(s), nil
}

// End removes the session. Unknown IDs are a no-op.
func (m *Manager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// SelectProfile activates a profile for the session. The profile must
// exist in the store. Switching profiles drops any open overlay and any
// recommendations computed for the previous profile.
func (m *Manager) SelectProfile(id, profileID string) (Session, error) {
	if _, err := m.store.GetProfile(profileID); err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	s.ActiveProfileID = profileID
	s.Overlay = Overlay{Kind: OverlayNone}
	s.Recommendations = []string{}
	return snapshot(s), nil
}

// OpenDetail opens the detail overlay for a content item, replacing any
// overlay currently up.
func (m *Manager) OpenDetail(id, contentID string) (Session, error) {
	if _, err := m.store.GetContent(contentID); err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.ActiveProfileID == "" {
		return Session{}, ErrNoActiveProfile
	}

	s.Overlay = Overlay{Kind: OverlayDetail, ContentID: contentID}
	return snapshot(s), nil
}

// Play enters playback for a content item, closing the detail overlay if
// one is up, and front-inserts the content ID into the active profile's
// history (skipped when already present). episodeID may be empty for
// movies or trailer playback.
func (m *Manager) Play(ctx context.Context, id, contentID, episodeID string) (Session, error) {
	if _, err := m.store.GetContent(contentID); err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.ActiveProfileID == "" {
		return Session{}, ErrNoActiveProfile
	}

	if _, err := m.store.AddToHistory(ctx, s.ActiveProfileID, contentID); err != nil {
		return Session{}, err
	}

	s.Overlay = Overlay{Kind: OverlayPlayer, ContentID: contentID, EpisodeID: episodeID}
	return snapshot(s), nil
}

// OpenAdmin opens the admin console overlay, closing any content overlay.
// The credential gate is checked at the API boundary, not here.
func (m *Manager) OpenAdmin(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.ActiveProfileID == "" {
		return Session{}, ErrNoActiveProfile
	}

	s.Overlay = Overlay{Kind: OverlayAdmin}
	return snapshot(s), nil
}

// CloseOverlay returns the session to plain browsing.
func (m *Manager) CloseOverlay(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	s.Overlay = Overlay{Kind: OverlayNone}
	return snapshot(s), nil
}

// BeginRecommendation issues a new recommendation generation for the
// session and returns it. The caller passes the same value back to
// CompleteRecommendation when the external call resolves.
func (m *Manager) BeginRecommendation(id string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return 0, ErrSessionNotFound
	}
	s.RecGeneration++
	return s.RecGeneration, nil
}

// CompleteRecommendation stores the recommendation IDs if gen is still
// the latest generation issued for the session. A stale generation is
// discarded and reported false; last-issued wins, not last-resolved.
func (m *Manager) CompleteRecommendation(id string, gen uint64, ids []string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false, ErrSessionNotFound
	}
	if gen != s.RecGeneration {
		logging.Debug().
			Str("session_id", id).
			Uint64("generation", gen).
			Uint64("latest", s.RecGeneration).
			Msg("Stale recommendation response discarded")
		return false, nil
	}
	if ids == nil {
		ids = []string{}
	}
	s.Recommendations = ids
	return true, nil
}

// ActiveProfile resolves the session's active profile from the store.
func (m *Manager) ActiveProfile(id string) (models.UserProfile, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.RUnlock()
		return models.UserProfile{}, ErrSessionNotFound
	}
	profileID := s.ActiveProfileID
	m.mu.RUnlock()

	if profileID == "" {
		return models.UserProfile{}, ErrNoActiveProfile
	}
	return m.store.GetProfile(profileID)
}

func snapshot(s *Session) Session {
	out := *s
	out.Recommendations = make([]string, len(s.Recommendations))
	copy(out.Recommendations, s.Recommendations)
	return out
}
