package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CurrentVersion is stamped into the VERSION setting once the schema is
// up to date. Versions are compact yymmdd integers.
const CurrentVersion = 221005

// Migration is one additive schema step. It runs only when the stored
// version is strictly below Version.
type Migration struct {
	Version int
	Name    string
	Apply   func(tx *gorm.DB) error
}

// Migrations lists every step in ascending version order.
var Migrations = []Migration{
	{Version: 220903, Name: "add games.goal", Apply: addColumn(&Game{}, "goal")},
	{Version: 221005, Name: "add players.is_active", Apply: addColumn(&Player{}, "is_active")},
}

func models() []any {
	return []any{
		&User{},
		&Game{},
		&Player{},
		&Round{},
		&Score{},
		&Setting{},
		&Event{},
	}
}

// Bootstrap creates missing tables and brings an existing schema up to
// CurrentVersion. A database without a VERSION setting is a fresh install:
// its tables are created at the current shape and stamped directly.
func Bootstrap(ctx context.Context, conn *gorm.DB, logger *slog.Logger) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	conn = conn.WithContext(ctx)
	if err := createTables(conn); err != nil {
		return err
	}

	stored, found, err := readVersion(conn)
	if err != nil {
		return err
	}
	if !found {
		logger.Info("schema stamped", slog.Int("version", CurrentVersion))
		return writeVersion(conn, CurrentVersion)
	}
	if stored >= CurrentVersion {
		return nil
	}

	applied := stored
	for _, step := range Migrations {
		if step.Version <= stored {
			continue
		}
		if err := runMigration(conn, step); err != nil {
			logger.Error("schema migration failed",
				slog.Int("version", step.Version),
				slog.String("name", step.Name),
				slog.Any("error", err),
			)
			if applied > stored {
				_ = writeVersion(conn, applied)
			}
			return fmt.Errorf("migration %d (%s): %w", step.Version, step.Name, err)
		}
		logger.Info("schema migration applied",
			slog.Int("version", step.Version),
			slog.String("name", step.Name),
		)
		applied = step.Version
	}
	return writeVersion(conn, CurrentVersion)
}

func createTables(conn *gorm.DB) error {
	migrator := conn.Migrator()
	for _, model := range models() {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

func runMigration(conn *gorm.DB, step Migration) error {
	err := step.Apply(conn)
	if err != nil && IsAlreadyApplied(err) {
		return nil
	}
	return err
}

func addColumn(model any, column string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		migrator := tx.Migrator()
		if migrator.HasColumn(model, column) {
			return nil
		}
		return migrator.AddColumn(model, column)
	}
}

// IsAlreadyApplied reports whether err means an additive step already ran.
func IsAlreadyApplied(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42701" || pgErr.Code == "42P07"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}

func readVersion(conn *gorm.DB) (int, bool, error) {
	var records []Setting
	if err := conn.Where("key = ?", SettingVersion).Limit(1).Find(&records).Error; err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	if len(records) == 0 || strings.TrimSpace(records[0].Value) == "" {
		return 0, false, nil
	}
	version, err := strconv.Atoi(strings.TrimSpace(records[0].Value))
	if err != nil {
		// Unreadable versions are treated as the oldest schema so every
		// additive step gets a chance to run.
		return 0, true, nil
	}
	return version, true, nil
}

func writeVersion(conn *gorm.DB, version int) error {
	value := strconv.Itoa(version)
	result := conn.Model(&Setting{}).Where("key = ?", SettingVersion).Update("value", value)
	if result.Error != nil {
		return fmt.Errorf("write schema version: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if err := conn.Create(&Setting{Key: SettingVersion, Value: value}).Error; err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}
