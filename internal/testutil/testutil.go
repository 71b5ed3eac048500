// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/r3p1n/scoring/internal/db"
	"github.com/r3p1n/scoring/internal/logging"
)

// OpenRawDB returns an empty in-memory sqlite database with no tables.
func OpenRawDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return conn
}

// OpenDB returns an in-memory database bootstrapped at the current schema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn := OpenRawDB(t)
	if err := db.Bootstrap(context.Background(), conn, logging.Discard()); err != nil {
		t.Fatalf("bootstrap schema: %v", err)
	}
	return conn
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
