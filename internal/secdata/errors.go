//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package secdata

import "errors"

var (
	// ErrNotInitialized is returned by every operation before Initialize.
	ErrNotInitialized = errors.New("datastore not initialized")

	// ErrClearForbiddenInProduction is returned by destructive operations
	// while bound to the production datastore.
	ErrClearForbiddenInProduction = errors.New("clearing security data is forbidden in production")

	// ErrUnknownMode is returned when no datastore is configured for a mode.
	ErrUnknownMode = errors.New("no datastore configured for mode")

	// ErrModeMismatch is returned by CreateSchema when the datastore was
	// initialized for another mode.
	ErrModeMismatch = errors.New("datastore mode mismatch")

	// ErrUnsupported is returned by Execute for an operation an entity kind
	// does not offer.
	ErrUnsupported = errors.New("unsupported operation")
)
