//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package secdata

import (
	"strings"

	"github.com/pgEdge/pgedge-secdata/internal/config"
)

// Mode selects the datastore a Service is bound to.
type Mode int

// Datastore modes.
const (
	ModeUninitialized Mode = iota
	ModeTest
	ModeUAT
	ModeProduction
)

// ParseMode maps a mode name to a Mode. Names other than "production" and
// "uat" select the test datastore.
func ParseMode(name string) Mode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case config.ModeProduction:
		return ModeProduction
	case config.ModeUAT:
		return ModeUAT
	}
	return ModeTest
}

func (m Mode) String() string {
	switch m {
	case ModeTest:
		return config.ModeTest
	case ModeUAT:
		return config.ModeUAT
	case ModeProduction:
		return config.ModeProduction
	}
	return "uninitialized"
}

// AllowsClear reports whether destructive bulk operations are permitted.
func (m Mode) AllowsClear() bool {
	return m == ModeTest || m == ModeUAT
}
