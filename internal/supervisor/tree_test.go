// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// blockingService runs until its context is canceled.
type blockingService struct {
	started chan struct{}
}

func (s *blockingService) Serve(ctx context.Context) error {
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) String() string { return "blocking-service" }

func TestNewSupervisorTreeDefaults(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(discardLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	want := DefaultTreeConfig()
	if tree.config != want {
		t.Errorf("Expected defaults %+v, got %+v", want, tree.config)
	}
	if tree.Root() == nil {
		t.Error("Expected non-nil root supervisor")
	}
}

func TestSupervisorTreeServeAndShutdown(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(discardLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	messaging := &blockingService{started: make(chan struct{}, 1)}
	api := &blockingService{started: make(chan struct{}, 1)}
	tree.AddMessagingService(messaging)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	for _, svc := range []*blockingService{messaging, api} {
		select {
		case <-svc.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("Service %s did not start", svc)
		}
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Expected nil or context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Supervisor tree did not stop after cancellation")
	}
}

func TestSupervisorTreeRemove(t *testing.T) {
	t.Parallel()

	tree, err := NewSupervisorTree(discardLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	svc := &blockingService{started: make(chan struct{}, 1)}
	token := tree.AddMessagingService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("Service did not start")
	}

	if err := tree.messaging.Remove(token); err != nil {
		t.Errorf("Failed to remove service: %v", err)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("Supervisor tree did not stop")
	}
}
