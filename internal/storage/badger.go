// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package storage persists the catalog and profile collections as two
// independent JSON blobs in BadgerDB. Each collection lives under its own
// fixed key and is written whole; there is no per-entity keying and no
// cross-collection transaction, so one collection saving while the other
// fails is an accepted inconsistency.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/vitrine/internal/logging"
	"github.com/tomtom215/vitrine/internal/models"
)

// Fixed keys for the two persisted collections.
const (
	contentKey  = "catalog:content"
	profilesKey = "catalog:profiles"
)

// BadgerStore is the BadgerDB-backed persistence adapter. A missing or
// unreadable key falls back to the built-in seed for that collection
// only; the other collection is unaffected.
type BadgerStore struct {
	db *badger.DB
}

// Open opens (or creates) the database at path. An empty path with
// inMemory set runs fully in memory, which the demo and tests use.
func Open(path string, inMemory bool) (*BadgerStore, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	// Badger's own logger is chatty at INFO; route nothing through it and
	// keep all storage logging on zerolog.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}

	logging.Info().Str("path", path).Bool("in_memory", inMemory).Msg("Storage opened")
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already-open database. Tests use this with an
// in-memory instance they manage themselves.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close releases the database. Safe to call once at shutdown.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// LoadContent returns the persisted content collection, or the seed
// catalog when the key is absent or its value does not parse.
func (s *BadgerStore) LoadContent(ctx context.Context) ([]models.ContentItem, error) {
	var items []models.ContentItem
	found, err := s.load(ctx, contentKey, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		logging.Info().Msg("No stored catalog, using seed content")
		return SeedContent(), nil
	}
	return items, nil
}

// LoadProfiles returns the persisted profile collection, or the seed
// profiles when the key is absent or unreadable.
func (s *BadgerStore) LoadProfiles(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	found, err := s.load(ctx, profilesKey, &profiles)
	if err != nil {
		return nil, err
	}
	if !found {
		logging.Info().Msg("No stored profiles, using seed profiles")
		return SeedProfiles(), nil
	}
	return profiles, nil
}

// SaveContent writes the full content collection under its key.
func (s *BadgerStore) SaveContent(ctx context.Context, items []models.ContentItem) error {
	return s.save(ctx, contentKey, items)
}

// SaveProfiles writes the full profile collection under its key.
func (s *BadgerStore) SaveProfiles(ctx context.Context, profiles []models.UserProfile) error {
	return s.save(ctx, profilesKey, profiles)
}

// load reads and unmarshals one collection blob. It reports found=false
// both for a missing key and for a stored value that fails to parse; a
// corrupt blob is logged and treated like an absent one so the caller
// falls back to seed data instead of refusing to start.
func (s *BadgerStore) load(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, dst); err != nil {
				logging.Warn().Err(err).Str("key", key).Msg("Stored collection unreadable, falling back to seed")
				return nil
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *BadgerStore) save(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	logging.Debug().Str("key", key).Int("bytes", len(data)).Msg("Collection persisted")
	return nil
}
