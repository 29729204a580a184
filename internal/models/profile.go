// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package models

// Profile roles. RoleAdmin marks profiles allowed into the management
// console once the shared credential gate is unlocked.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserProfile is a storefront viewing profile.
//
// Watchlist is a saved-for-later set of content IDs with insertion order
// preserved for display. History is most-recent-first; an ID already
// present is never re-inserted or reordered. Both hold references only -
// deleting a content item leaves the IDs dangling unless cascade cleanup
// is enabled on the store.
type UserProfile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	ProfilePic string   `json:"profilePic"`
	Watchlist  []string `json:"watchlist"`
	History    []string `json:"history"`
	Role       string   `json:"role"`
}

// Clone returns a deep copy of the profile.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.Watchlist != nil {
		out.Watchlist = make([]string, len(p.Watchlist))
		copy(out.Watchlist, p.Watchlist)
	}
	if p.History != nil {
		out.History = make([]string, len(p.History))
		copy(out.History, p.History)
	}
	return out
}

// InWatchlist reports whether the content ID is saved in the watchlist.
func (p UserProfile) InWatchlist(contentID string) bool {
	for _, id := range p.Watchlist {
		if id == contentID {
			return true
		}
	}
	return false
}

// InHistory reports whether the content ID appears in the watch history.
func (p UserProfile) InHistory(contentID string) bool {
	for _, id := range p.History {
		if id == contentID {
			return true
		}
	}
	return false
}
