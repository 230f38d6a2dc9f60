package store

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for all showcase tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id           TEXT PRIMARY KEY,
		collection   TEXT NOT NULL,
		slug         TEXT NOT NULL,
		title        TEXT NOT NULL,
		excerpt_html TEXT NOT NULL DEFAULT '',
		featured     INTEGER NOT NULL DEFAULT 0,
		published_at TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_items_collection_slug ON items(collection, slug)`,
	`CREATE INDEX IF NOT EXISTS idx_items_collection_published ON items(collection, published_at)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id       TEXT PRIMARY KEY,
		taxonomy TEXT NOT NULL,
		name     TEXT NOT NULL,
		slug     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_taxonomy ON categories(taxonomy)`,

	// category_id has no foreign key: items may be imported before their
	// terms.
	`CREATE TABLE IF NOT EXISTS item_categories (
		item_id     TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL,
		position    INTEGER NOT NULL,
		PRIMARY KEY (item_id, category_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_item_categories_category ON item_categories(category_id)`,
}

// alterStatements are column additions that need special handling since
// SQLite doesn't support IF NOT EXISTS for ALTER TABLE ADD COLUMN.
var alterStatements = []struct {
	table    string
	column   string
	alterSQL string
	indexSQL string // Optional index to create after column is added
}{
	{
		table:    "categories",
		column:   "description",
		alterSQL: "ALTER TABLE categories ADD COLUMN description TEXT NOT NULL DEFAULT ''",
	},
}

// migrate executes all schema DDL statements and alter migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	for _, alter := range alterStatements {
		if err := addColumnIfNotExists(ctx, db, alter.table, alter.column, alter.alterSQL); err != nil {
			return err
		}
		if alter.indexSQL != "" {
			if _, err := db.ExecContext(ctx, alter.indexSQL); err != nil {
				return err
			}
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, alterSQL string) error {
	exists, err := columnExists(ctx, db, table, column)
	if err != nil || exists {
		return err
	}
	_, err = db.ExecContext(ctx, alterSQL)
	return err
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue *string
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, rows.Err()
}
