package migrations

import (
	"github.com/geniehq/genie-search/pkg/infra/database"
	"gorm.io/gorm"
)

// Initial schema for the vector store side: documents with embedding
// columns plus the singleton sync progress row.
func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250301_initial_schema",
		Name: "Create documents and sync_progress tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE EXTENSION IF NOT EXISTS vector;
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS documents (
					id                  BIGSERIAL PRIMARY KEY,
					question            TEXT NOT NULL,
					answer              TEXT NOT NULL DEFAULT '',
					link                TEXT NOT NULL DEFAULT '',
					question_date       DATE,
					question_embedding  vector(4096),
					answer_embedding    vector(4096),
					created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT documents_question_key UNIQUE (question)
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE TABLE IF NOT EXISTS sync_progress (
					id              SMALLINT PRIMARY KEY CHECK (id = 1),
					last_source_id  BIGINT NOT NULL DEFAULT 0,
					updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP TABLE IF EXISTS sync_progress;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP TABLE IF EXISTS documents;`).Error
		},
	})
}
