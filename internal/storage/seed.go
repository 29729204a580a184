// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package storage

import "github.com/tomtom215/vitrine/internal/models"

// Built-in demo dataset. Loaded whenever a persisted collection is
// missing or unreadable; profile watchlists and histories reference the
// content IDs below, so the two seeds must stay consistent with each
// other.

// SeedContent returns a fresh copy of the demo catalog.
func SeedContent() []models.ContentItem {
	return []models.ContentItem{
		{
			ID:          "1",
			Title:       "Kara Liman",
			Description: "Bir kacakcilik sebekesi, Istanbul'un eski liman mahallesinde cozulmeye baslar.",
			Thumbnail:   "https://images.unsplash.com/photo-1541339907198-e08756dedf3f?auto=format&fit=crop&w=400&h=600",
			Backdrop:    "https://images.unsplash.com/photo-1541339907198-e08756dedf3f?auto=format&fit=crop&w=1600&h=900",
			Type:        models.ContentTypeSeries,
			Genres:      []string{"Aksiyon", "Dram"},
			Rating:      4.6,
			Year:        2024,
			TrailerURL:  "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
			IsPopular:   true,
			Comments:    []models.Comment{},
			Episodes: []models.Episode{
				{
					ID:            "1-e1",
					Title:         "Demir Atmak",
					Duration:      "52 dk",
					Description:   "Limana yanasan sileb, manifestosunda yazandan fazlasini tasiyor.",
					Thumbnail:     "https://images.unsplash.com/photo-1494412574643-ff11b0a5c1c3?auto=format&fit=crop&w=400&h=225",
					VideoURL:      "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
					SeasonNumber:  1,
					EpisodeNumber: 1,
				},
				{
					ID:            "1-e2",
					Title:         "Sis",
					Duration:      "49 dk",
					Description:   "Gumruk baskini sebekenin icinde bir kopegin oldugunu aciga cikarir.",
					Thumbnail:     "https://images.unsplash.com/photo-1487621167305-5d248087c724?auto=format&fit=crop&w=400&h=225",
					VideoURL:      "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
					SeasonNumber:  1,
					EpisodeNumber: 2,
				},
				{
					ID:            "1-e3",
					Title:         "Rihtim",
					Duration:      "55 dk",
					Description:   "Iki aile arasindaki eski hesap limanda yeniden acilir.",
					Thumbnail:     "https://images.unsplash.com/photo-1506959436521-eca9acfa46d4?auto=format&fit=crop&w=400&h=225",
					VideoURL:      "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
					SeasonNumber:  1,
					EpisodeNumber: 3,
				},
			},
		},
		{
			ID:          "2",
			Title:       "Son Vapur",
			Description: "Gece yarisi kalkan son vapurda mahsur kalan yolcular, aralarindan birinin sir dolu gecmisiyle yuzlesir.",
			Thumbnail:   "https://images.unsplash.com/photo-1527838832700-5059252407fa?auto=format&fit=crop&w=400&h=600",
			Backdrop:    "https://images.unsplash.com/photo-1527838832700-5059252407fa?auto=format&fit=crop&w=1600&h=900",
			Type:        models.ContentTypeMovie,
			Genres:      []string{"Gerilim", "Gizem"},
			Rating:      4.1,
			Year:        2023,
			TrailerURL:  "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
			IsNew:       true,
			IsPopular:   true,
			Comments:    []models.Comment{},
		},
		{
			ID:          "3",
			Title:       "Bozkir Ruzgari",
			Description: "Ankara'nin bozkirinda buyuyen bir atletin olimpiyat yolculugu.",
			Thumbnail:   "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?auto=format&fit=crop&w=400&h=600",
			Backdrop:    "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?auto=format&fit=crop&w=1600&h=900",
			Type:        models.ContentTypeMovie,
			Genres:      []string{"Dram", "Spor"},
			Rating:      4.4,
			Year:        2022,
			TrailerURL:  "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
			Comments:    []models.Comment{},
		},
		{
			ID:          "4",
			Title:       "Galata Geceleri",
			Description: "Galata'da bir caz kulubunun etrafinda kesisen dort hayat.",
			Thumbnail:   "https://images.unsplash.com/photo-1524231757912-21f4fe3a7200?auto=format&fit=crop&w=400&h=600",
			Backdrop:    "https://images.unsplash.com/photo-1524231757912-21f4fe3a7200?auto=format&fit=crop&w=1600&h=900",
			Type:        models.ContentTypeSeries,
			Genres:      []string{"Romantik", "Muzik"},
			Rating:      3.9,
			Year:        2024,
			TrailerURL:  "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
			IsNew:       true,
			Comments:    []models.Comment{},
			Episodes: []models.Episode{
				{
					ID:            "4-e1",
					Title:         "Acilis Gecesi",
					Duration:      "45 dk",
					Description:   "Kulubun acilisinda sahneye beklenmedik bir ses cikar.",
					Thumbnail:     "https://images.unsplash.com/photo-1415201364774-f6f0bb35f28f?auto=format&fit=crop&w=400&h=225",
					VideoURL:      "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
					SeasonNumber:  1,
					EpisodeNumber: 1,
				},
				{
					ID:            "4-e2",
					Title:         "Dogaclama",
					Duration:      "47 dk",
					Description:   "Eski bir plak, kulubun sahibini gecmisine goturur.",
					Thumbnail:     "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?auto=format&fit=crop&w=400&h=225",
					VideoURL:      "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
					SeasonNumber:  1,
					EpisodeNumber: 2,
				},
			},
		},
		{
			ID:          "5",
			Title:       "Derin Mavi",
			Description: "Ege'nin derinliklerinde kaybolan bir arastirma denizaltisinin pesindeki kurtarma ekibi.",
			Thumbnail:   "https://images.unsplash.com/photo-1439405326854-014607f694d7?auto=format&fit=crop&w=400&h=600",
			Backdrop:    "https://images.unsplash.com/photo-1439405326854-014607f694d7?auto=format&fit=crop&w=1600&h=900",
			Type:        models.ContentTypeMovie,
			Genres:      []string{"Aksiyon", "Macera"},
			Rating:      4.0,
			Year:        2023,
			TrailerURL:  "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
			IsPopular:   true,
			Comments:    []models.Comment{},
		},
		{
			ID:          "6",
			Title:       "Tas Firin",
			Description: "Uc kusaktir ayni mahallede ekmek cikaran bir firinin modern zincirlerle imtihani.",
			Thumbnail:   "https://images.unsplash.com/photo-1509440159596-0249088772ff?auto=format&fit=crop&w=400&h=600",
			Backdrop:    "https://images.unsplash.com/photo-1509440159596-0249088772ff?auto=format&fit=crop&w=1600&h=900",
			Type:        models.ContentTypeMovie,
			Genres:      []string{"Komedi", "Dram"},
			Rating:      3.7,
			Year:        2021,
			TrailerURL:  "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
			Comments:    []models.Comment{},
		},
		{
			ID:          "7",
			Title:       "Minik Kasifler",
			Description: "Merakli bir grup cocugun mahalle bahcesindeki bilimsel kesifleri.",
			Thumbnail:   "https://images.unsplash.com/photo-1503454537195-1dcabb73ffb9?auto=format&fit=crop&w=400&h=600",
			Backdrop:    "https://images.unsplash.com/photo-1503454537195-1dcabb73ffb9?auto=format&fit=crop&w=1600&h=900",
			Type:        models.ContentTypeSeries,
			Genres:      []string{"Cocuk", "Egitim"},
			Rating:      4.8,
			Year:        2024,
			TrailerURL:  "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
			IsNew:       true,
			Comments:    []models.Comment{},
			Episodes: []models.Episode{
				{
					ID:            "7-e1",
					Title:         "Karinca Sehri",
					Duration:      "22 dk",
					Description:   "Bahcedeki karinca yuvasi kocaman bir sehre donusur.",
					Thumbnail:     "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?auto=format&fit=crop&w=400&h=225",
					VideoURL:      "https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8",
					SeasonNumber:  1,
					EpisodeNumber: 1,
				},
			},
		},
	}
}

// SeedProfiles returns a fresh copy of the demo profiles. Mustafa is the
// only admin-role profile.
func SeedProfiles() []models.UserProfile {
	return []models.UserProfile{
		{
			ID:         "p1",
			Name:       "Mustafa",
			Email:      "mustafa@vitrine.example",
			ProfilePic: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?auto=format&fit=crop&w=200&h=200",
			Watchlist:  []string{"1", "3"},
			History:    []string{"2", "4"},
			Role:       models.RoleAdmin,
		},
		{
			ID:         "p2",
			Name:       "Zeynep",
			Email:      "zeynep@vitrine.example",
			ProfilePic: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=200&h=200",
			Watchlist:  []string{"2", "5"},
			History:    []string{"1"},
			Role:       models.RoleUser,
		},
		{
			ID:         "p3",
			Name:       "Emre",
			Email:      "emre@vitrine.example",
			ProfilePic: "https://images.unsplash.com/photo-1599566150163-29194dcaad36?auto=format&fit=crop&w=200&h=200",
			Watchlist:  []string{},
			History:    []string{},
			Role:       models.RoleUser,
		},
		{
			ID:         "p4",
			Name:       "Kids",
			Email:      "kids@vitrine.example",
			ProfilePic: "https://images.unsplash.com/photo-1566004100631-35d015d479d9?auto=format&fit=crop&w=200&h=200",
			Watchlist:  []string{"7"},
			History:    []string{"7"},
			Role:       models.RoleUser,
		},
	}
}
