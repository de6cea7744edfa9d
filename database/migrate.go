package database

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// MigrateFunc executes one migration step inside the migration transaction.
type MigrateFunc func(tx *gorm.DB, driver string) error

type Migration struct {
	Version int64
	Name    string
	Migrate MigrateFunc
}

// SchemaMigration records an applied migration.
type SchemaMigration struct {
	Version   int64     `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

var migrations = []Migration{
	{Version: 1, Name: "create_tables", Migrate: createTables},
	{Version: 2, Name: "add_game_columns", Migrate: addGameColumns},
	{Version: 3, Name: "rename_player_id_columns", Migrate: renamePlayerIDColumns},
	{Version: 4, Name: "create_team_indexes", Migrate: createTeamIndexes},
}

// Migrate applies every migration newer than the latest recorded version,
// all in one transaction.
func Migrate(ctx context.Context, db *DB, l *log.Logger) error {
	l = l.WithPrefix("migrate")
	return db.Gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !tx.Migrator().HasTable(&SchemaMigration{}) {
			if err := tx.Migrator().CreateTable(&SchemaMigration{}); err != nil {
				return fmt.Errorf("create schema_migrations: %w", err)
			}
		}

		var current int64
		if err := tx.Model(&SchemaMigration{}).Select("COALESCE(MAX(version), 0)").Scan(&current).Error; err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}

		for _, m := range migrations {
			if m.Version <= current {
				continue
			}

			l.Infof("running migration %d. %s", m.Version, m.Name)
			if err := m.Migrate(tx, db.driver); err != nil {
				return fmt.Errorf("migration %d %s: %w", m.Version, m.Name, err)
			}

			record := SchemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now().UTC()}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("record migration %d: %w", m.Version, err)
			}
		}

		return nil
	})
}

// Version returns the latest applied migration version, 0 if none.
func Version(ctx context.Context, db *DB) (int64, error) {
	if !db.Gorm.Migrator().HasTable(&SchemaMigration{}) {
		return 0, nil
	}
	var v int64
	err := db.Gorm.WithContext(ctx).Model(&SchemaMigration{}).Select("COALESCE(MAX(version), 0)").Scan(&v).Error
	return v, err
}

func createTables(tx *gorm.DB, driver string) error {
	for _, stmt := range tablesSchema(driver) {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func tablesSchema(driver string) []string {
	switch driver {
	case DriverSQLite:
		return []string{
			`CREATE TABLE IF NOT EXISTS admin_users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS teams (
				id VARCHAR(36) PRIMARY KEY,
				game_type TEXT NOT NULL DEFAULT 'pubg',
				team_name TEXT NOT NULL,
				leader_name TEXT NOT NULL,
				leader_whatsapp TEXT NOT NULL,
				leader_player_id TEXT NOT NULL,
				player2_name TEXT NOT NULL,
				player2_player_id TEXT NOT NULL,
				player3_name TEXT NOT NULL,
				player3_player_id TEXT NOT NULL,
				player4_name TEXT NOT NULL,
				player4_player_id TEXT NOT NULL,
				youtube_vote TEXT NOT NULL DEFAULT 'no',
				transaction_id TEXT NOT NULL,
				payment_screenshot TEXT NOT NULL,
				agreed_to_terms INTEGER NOT NULL DEFAULT 1,
				status TEXT NOT NULL DEFAULT 'pending',
				admin_notes TEXT,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		}
	default:
		return []string{
			`CREATE TABLE IF NOT EXISTS admin_users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(50) NOT NULL UNIQUE,
				password TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS teams (
				id VARCHAR(36) PRIMARY KEY,
				game_type TEXT NOT NULL DEFAULT 'pubg',
				team_name TEXT NOT NULL,
				leader_name TEXT NOT NULL,
				leader_whatsapp TEXT NOT NULL,
				leader_player_id TEXT NOT NULL,
				player2_name TEXT NOT NULL,
				player2_player_id TEXT NOT NULL,
				player3_name TEXT NOT NULL,
				player3_player_id TEXT NOT NULL,
				player4_name TEXT NOT NULL,
				player4_player_id TEXT NOT NULL,
				youtube_vote TEXT NOT NULL DEFAULT 'no',
				transaction_id TEXT NOT NULL,
				payment_screenshot TEXT NOT NULL,
				agreed_to_terms INTEGER NOT NULL DEFAULT 1,
				status TEXT NOT NULL DEFAULT 'pending',
				admin_notes TEXT,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		}
	}
}

// Tables created before multi-game support lack these columns.
func addGameColumns(tx *gorm.DB, _ string) error {
	columns := []struct{ name, ddl string }{
		{"game_type", "ALTER TABLE teams ADD COLUMN game_type TEXT NOT NULL DEFAULT 'pubg'"},
		{"youtube_vote", "ALTER TABLE teams ADD COLUMN youtube_vote TEXT NOT NULL DEFAULT 'no'"},
	}
	for _, c := range columns {
		if tx.Migrator().HasColumn("teams", c.name) {
			continue
		}
		if err := tx.Exec(c.ddl).Error; err != nil {
			return err
		}
	}
	return nil
}

// The first schema only knew PUBG and named the id columns *_pubg_id.
func renamePlayerIDColumns(tx *gorm.DB, _ string) error {
	for _, prefix := range []string{"leader", "player2", "player3", "player4"} {
		oldName, newName := prefix+"_pubg_id", prefix+"_player_id"
		if !tx.Migrator().HasColumn("teams", oldName) || tx.Migrator().HasColumn("teams", newName) {
			continue
		}
		if err := tx.Exec(fmt.Sprintf("ALTER TABLE teams RENAME COLUMN %s TO %s", oldName, newName)).Error; err != nil {
			return err
		}
	}
	return nil
}

func createTeamIndexes(tx *gorm.DB, _ string) error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_teams_game_type ON teams (game_type)",
		"CREATE INDEX IF NOT EXISTS idx_teams_status ON teams (status)",
		"CREATE INDEX IF NOT EXISTS idx_teams_created_at ON teams (created_at)",
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
