// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vitrine/internal/auth"
	"github.com/tomtom215/vitrine/internal/catalog"
	"github.com/tomtom215/vitrine/internal/config"
	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/models"
	"github.com/tomtom215/vitrine/internal/recommend"
	"github.com/tomtom215/vitrine/internal/session"
	"github.com/tomtom215/vitrine/internal/storage"
)

const (
	testAdminUser = "yonetici"
	testAdminPass = "cok-gizli-sifre"
	testJWTSecret = "0123456789abcdef0123456789abcdef"
)

// stubRecommender returns a fixed ID list and counts invocations.
type stubRecommender struct {
	ids   []string
	calls int
}

func (r *stubRecommender) Recommend(_ context.Context, _ []string, _ []models.CatalogProjection) []string {
	r.calls++
	if r.ids == nil {
		return []string{}
	}
	return r.ids
}

// failingProfileSaves decorates a Persistence so profile writes fail
// while loads keep serving the seed data.
type failingProfileSaves struct {
	catalog.Persistence
	err error
}

func (f failingProfileSaves) SaveProfiles(context.Context, []models.UserProfile) error {
	return f.err
}

// newTestEnv builds a full handler stack over an in-memory Badger store
// carrying the demo seed data.
func newTestEnv(t *testing.T, rec recommend.Recommender) (*Handler, http.Handler) {
	return newTestEnvPersist(t, rec, nil)
}

// newTestEnvPersist is newTestEnv with a persistence decorator applied
// to the backing store.
func newTestEnvPersist(t *testing.T, rec recommend.Recommender, wrap func(catalog.Persistence) catalog.Persistence) (*Handler, http.Handler) {
	t.Helper()

	logging.Init(logging.Config{Level: "error", Output: io.Discard})

	bs, err := storage.Open("", true)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { _ = bs.Close() })

	var persist catalog.Persistence = bs
	if wrap != nil {
		persist = wrap(persist)
	}

	store, err := catalog.NewStore(context.Background(), persist)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	cfg := &config.Config{
		Security: config.SecurityConfig{
			AdminUsername:     testAdminUser,
			AdminPassword:     testAdminPass,
			JWTSecret:         testJWTSecret,
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("Failed to create JWT manager: %v", err)
	}

	handler := NewHandler(store, session.NewManager(store), rec, cfg, auth.NewGate(&cfg.Security), jwtManager, nil)
	return handler, NewRouter(handler).SetupChi()
}

// doJSON executes one request against the router, encoding body as JSON
// when non-nil.
func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// doAuthed is doJSON with a Bearer token attached.
func doAuthed(t *testing.T, router http.Handler, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeData unwraps the response envelope and decodes its data field
// into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}
	if envelope.Status != "success" {
		t.Fatalf("Expected status 'success', got %q (body: %s)", envelope.Status, rec.Body.String())
	}
	if dst == nil {
		return
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("Failed to decode response data: %v", err)
	}
}

// errorCode extracts the error code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Status string `json:"status"`
		Error  struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if envelope.Status != "error" {
		t.Fatalf("Expected status 'error', got %q (body: %s)", envelope.Status, rec.Body.String())
	}
	return envelope.Error.Code
}

// loginToken logs in with the test credentials and returns the token.
func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Username: testAdminUser,
		Password: testAdminPass,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.LoginResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("Expected non-empty token")
	}
	return resp.Token
}

// startSession creates a session, optionally selecting a profile.
func startSession(t *testing.T, router http.Handler, profileID string) session.Session {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sessions/", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var s session.Session
	decodeData(t, rec, &s)

	if profileID != "" {
		rec = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/profile", map[string]string{"profileId": profileID})
		if rec.Code != http.StatusOK {
			t.Fatalf("Profile selection failed with status %d: %s", rec.Code, rec.Body.String())
		}
		decodeData(t, rec, &s)
	}
	return s
}
