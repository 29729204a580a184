// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package models defines the catalog and profile entities served to the
// storefront UI, plus the shared API response envelope.
package models

// ContentType distinguishes movies from series.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// ContentItem is a movie or series entry in the catalog.
//
// Episodes is meaningful only for series; a movie carries none. Rating is
// displayed on a 0-5 scale but is not range-validated by the model - the
// write boundary accepts whatever the admin console submits.
type ContentItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Thumbnail   string      `json:"thumbnail"`
	Backdrop    string      `json:"backdrop"`
	Type        ContentType `json:"type"`
	Genres      []string    `json:"genres"`
	Rating      float64     `json:"rating"`
	Year        int         `json:"year"`
	Episodes    []Episode   `json:"episodes,omitempty"`
	TrailerURL  string      `json:"trailerUrl"`
	Comments    []Comment   `json:"comments"`
	IsNew       bool        `json:"isNew,omitempty"`
	IsPopular   bool        `json:"isPopular,omitempty"`
}

// Episode is a single playable unit owned by exactly one series.
//
// Duration is a free-text display string ("52 min"), not a validated
// numeric duration. (SeasonNumber, EpisodeNumber) uniqueness within a
// series is expected but not enforced anywhere.
type Episode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Duration      string `json:"duration"`
	Description   string `json:"description"`
	Thumbnail     string `json:"thumbnail"`
	VideoURL      string `json:"videoUrl"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
}

// Comment is a review posted against one content item. UserName and Date
// are captured at post time and never re-derived, so they can go stale if
// the author renames.
type Comment struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
	Date     string `json:"date"`
}

// Clone returns a deep copy of the content item. The store hands out
// clones so callers can never mutate shared state through a snapshot.
func (c ContentItem) Clone() ContentItem {
	out := c
	if c.Genres != nil {
		out.Genres = make([]string, len(c.Genres))
		copy(out.Genres, c.Genres)
	}
	if c.Episodes != nil {
		out.Episodes = make([]Episode, len(c.Episodes))
		copy(out.Episodes, c.Episodes)
	}
	if c.Comments != nil {
		out.Comments = make([]Comment, len(c.Comments))
		copy(out.Comments, c.Comments)
	}
	return out
}

// CatalogProjection is the {id, title, genres} view of a content item sent
// to the recommendation service.
type CatalogProjection struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}

// Project reduces the item to its recommendation projection.
func (c ContentItem) Project() CatalogProjection {
	return CatalogProjection{ID: c.ID, Title: c.Title, Genres: c.Genres}
}
