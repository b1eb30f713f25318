package database

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration is one schema step. IDs sort lexicographically, so the
// YYYYMMDD prefix convention gives application order.
type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var registeredMigrations []Migration

// RegisterMigration is called from migration file init functions.
func RegisterMigration(m Migration) {
	for _, existing := range registeredMigrations {
		if existing.ID == m.ID {
			panic(fmt.Sprintf("duplicate migration ID %s", m.ID))
		}
	}
	registeredMigrations = append(registeredMigrations, m)
}

type MigrationsManager struct {
	db *gorm.DB
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db}
}

// ApplyPending runs every registered migration that has not been
// recorded yet, each inside its own transaction.
func (m *MigrationsManager) ApplyPending() error {
	if err := m.db.Exec(`
CREATE TABLE IF NOT EXISTS public.migration_version (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`).Error; err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	var appliedIDs []string
	if err := m.db.Raw("SELECT id FROM public.migration_version").Scan(&appliedIDs).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[string]struct{}, len(appliedIDs))
	for _, id := range appliedIDs {
		applied[id] = struct{}{}
	}

	pending := make([]Migration, 0, len(registeredMigrations))
	for _, mig := range registeredMigrations {
		if _, ok := applied[mig.ID]; !ok {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })

	for _, mig := range pending {
		if mig.Up == nil {
			return fmt.Errorf("migration %s has no Up function", mig.ID)
		}
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Exec(
				"INSERT INTO public.migration_version (id, name, applied_at) VALUES (?, ?, ?)",
				mig.ID, mig.Name, time.Now(),
			).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
	}
	return nil
}
