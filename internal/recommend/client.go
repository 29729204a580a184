// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package recommend calls an external generative-text service to turn a
// profile's watch history into a short list of catalog recommendations.
//
// The client is deliberately forgiving: any failure, from a network error
// to a response that is not a JSON string array, yields an empty list and
// never an error. The storefront must render identically with
// recommendations absent.
package recommend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/vitrine/internal/config"
	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/models"
)

// Recommender is the view layer's façade over the external service.
type Recommender interface {
	Recommend(ctx context.Context, historyTitles []string, catalog []models.CatalogProjection) []string
}

// Client talks to a Gemini-style generateContent endpoint. The circuit
// breaker sits between the caller and the HTTP round trip so a dead
// upstream degrades to instant empty results instead of piling up
// timeouts.
type Client struct {
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]string]

	baseURL    string
	model      string
	apiKey     string
	maxResults int
	enabled    bool
}

// Gemini generateContent wire shapes, reduced to the fields used here.
type generateContentRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewClient builds a client from configuration. With the feature disabled
// or no API key set, Recommend short-circuits to an empty list without
// any network activity.
func NewClient(cfg *config.RecommendConfig) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		enabled:    cfg.Enabled && cfg.APIKey != "",
	}

	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c.cb = gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:    "recommendation-api",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Recommendation breaker state change")
		},
	})

	return c
}

// Recommend asks the service for the best catalog picks given the
// profile's history. The request carries the history titles and an
// {id, title, genres} projection of the full catalog; the expected reply
// is a JSON array of content ID strings. Returned IDs are not checked
// against the catalog here, the caller filters them.
//
// Every failure path returns an empty slice. There is no retry and no
// caching; each call reflects the state at call time.
func (c *Client) Recommend(ctx context.Context, historyTitles []string, catalog []models.CatalogProjection) []string {
	if !c.enabled {
		return []string{}
	}

	ids, err := c.cb.Execute(func() ([]string, error) {
		return c.call(ctx, historyTitles, catalog)
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Recommendation request failed, returning empty list")
		return []string{}
	}
	return ids
}

func (c *Client) call(ctx context.Context, historyTitles []string, catalog []models.CatalogProjection) ([]string, error) {
	projection, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog projection: %w", err)
	}

	prompt := fmt.Sprintf(
		"User has watched: [%s]. Based on these, recommend the best items from this list of available content: %s. Return only the IDs of the top %d recommendations as a JSON array of strings.",
		strings.Join(historyTitles, ", "), projection, c.maxResults)

	body, err := json.Marshal(generateContentRequest{
		Contents:         []requestContent{{Parts: []requestPart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommendation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("recommendation service returned %d", resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("response carries no candidates")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text

	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return nil, fmt.Errorf("candidate text is not a JSON string array: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Disabled is a Recommender that always returns nothing. Used when the
// feature is off so callers never branch on nil.
type Disabled struct{}

// Recommend always returns an empty list.
func (Disabled) Recommend(context.Context, []string, []models.CatalogProjection) []string {
	return []string{}
}
