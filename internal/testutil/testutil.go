//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing against a
// live PostgreSQL server.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-secdata/internal/db"
)

const (
	// DefaultTestConnString is the default connection URL for tests.
	// Override with the PGEDGE_TEST_CONN environment variable.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestDBPrefix is the prefix for throwaway test databases.
	TestDBPrefix = "secdata_test_"
)

// SkipIfNoPostgres skips the test if PostgreSQL cannot be reached and
// otherwise returns the server connection URL.
func SkipIfNoPostgres(t *testing.T) string {
	t.Helper()

	connStr := os.Getenv("PGEDGE_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		t.Skipf("PostgreSQL not available, skipping integration test: %v", err)
	}
	_ = conn.Close(ctx)
	return connStr
}

// NewSchemaDB creates a throwaway database holding the reference data
// schema and returns a pool connected to it along with its connection
// URL. The pool is closed when the test finishes and the database is
// dropped unless the test failed, in which case it is kept for
// diagnostics.
func NewSchemaDB(t *testing.T, name string) (*pgxpool.Pool, string) {
	t.Helper()

	baseConnStr := SkipIfNoPostgres(t)
	dbName := TestDBPrefix + name + "_" + randomSuffix(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := execOn(ctx, baseConnStr, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	connStr, err := withDatabase(baseConnStr, dbName)
	if err != nil {
		t.Fatalf("Failed to build test connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if t.Failed() {
			t.Logf("Test failed - keeping database %s for diagnostics", dbName)
			return
		}
		dropDB(t, baseConnStr, dbName)
	})

	if err := db.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return pool, connStr
}

func randomSuffix(t *testing.T) string {
	t.Helper()
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("Failed to generate random database name: %v", err)
	}
	return hex.EncodeToString(b)
}

// withDatabase returns connStr pointed at dbName.
func withDatabase(connStr, dbName string) (string, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return "", err
	}
	u.Path = "/" + dbName
	return u.String(), nil
}

func execOn(ctx context.Context, connStr, sql string, args ...any) error {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, sql, args...)
	return err
}

func dropDB(t *testing.T, baseConnStr, dbName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Terminate leftover sessions first
	_ = execOn(ctx, baseConnStr, `
        SELECT pg_terminate_backend(pid)
        FROM pg_stat_activity
        WHERE datname = $1 AND pid <> pg_backend_pid()
    `, dbName)

	if err := execOn(ctx, baseConnStr, "DROP DATABASE IF EXISTS "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		t.Logf("Warning: Failed to drop test database %s: %v", dbName, err)
	}
}
