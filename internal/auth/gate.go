// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/tomtom215/vitrine/internal/config"
)

// ErrInvalidCredentials is returned for any username/password pair other
// than the configured one. The message doubles as the inline rejection
// text shown in the console; repeated failures are not locked out here,
// the rate limiter at the HTTP edge handles abuse.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Gate is the admin console credential check: one shared pair from
// configuration unlocks the mutation surface.
//
// This is a presentation-layer convenience matching the storefront's
// demo behavior, not an access-control boundary. It keeps casual users
// out of the management console; anything resembling real protection
// has to come from deployment (reverse-proxy auth, network isolation).
type Gate struct {
	username string
	password string
}

// NewGate builds the gate from the security configuration.
func NewGate(cfg *config.SecurityConfig) *Gate {
	return &Gate{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
	}
}

// Unlock checks the credential pair. A correct pair returns nil; any
// other pair returns ErrInvalidCredentials.
func (g *Gate) Unlock(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
