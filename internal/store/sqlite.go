package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/me/showcase/pkg/model"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	if dbPath == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    time.Now,
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Items ---

// UpsertItem inserts or replaces the item identified by (collection, slug).
// An existing row keeps its ID; item.ID is updated to match.
func (s *SQLiteStore) UpsertItem(ctx context.Context, item *model.ContentItem) error {
	s.logger.Debug("sql", "op", "upsert", "table", "items", "collection", item.Collection, "slug", item.Slug)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM items WHERE collection = ? AND slug = ?`, item.Collection, item.Slug,
	).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return fmt.Errorf("lookup item: %w", err)
	default:
		item.ID = existingID
	}
	if item.ID == "" {
		item.ID = "item_" + uuid.New().String()
	}

	now := formatTime(s.now())
	featured := 0
	if item.Featured {
		featured = 1
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, collection, slug, title, excerpt_html, featured, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			collection = excluded.collection,
			slug = excluded.slug,
			title = excluded.title,
			excerpt_html = excluded.excerpt_html,
			featured = excluded.featured,
			published_at = excluded.published_at,
			updated_at = excluded.updated_at`,
		item.ID, item.Collection, item.Slug, item.Title, item.ExcerptHTML, featured,
		formatTime(item.Date), now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_categories WHERE item_id = ?`, item.ID); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	seen := make(map[string]bool)
	pos := 0
	for _, cid := range item.CategoryIDs {
		if cid == "" || seen[cid] {
			continue
		}
		seen[cid] = true
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO item_categories (item_id, category_id, position) VALUES (?, ?, ?)`,
			item.ID, cid, pos,
		); err != nil {
			return fmt.Errorf("insert category %s: %w", cid, err)
		}
		pos++
	}

	return tx.Commit()
}

// GetItem returns nil, nil when the item does not exist.
func (s *SQLiteStore) GetItem(ctx context.Context, collection, slug string) (*model.ContentItem, error) {
	s.logger.Debug("sql", "op", "select", "table", "items", "collection", collection, "slug", slug)

	item, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT id, collection, slug, title, excerpt_html, featured, published_at
		 FROM items WHERE collection = ? AND slug = ?`, collection, slug,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category_id FROM item_categories WHERE item_id = ? ORDER BY position`, item.ID)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			return nil, err
		}
		item.CategoryIDs = append(item.CategoryIDs, cid)
	}
	return item, rows.Err()
}

// ListItems returns every item of a collection, newest first with slug as
// the tie-breaker. This is the unfiltered listing order.
func (s *SQLiteStore) ListItems(ctx context.Context, collection string) ([]*model.ContentItem, error) {
	s.logger.Debug("sql", "op", "list", "table", "items", "collection", collection)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, collection, slug, title, excerpt_html, featured, published_at
		 FROM items WHERE collection = ? ORDER BY published_at DESC, slug ASC`, collection,
	)
	if err != nil {
		return nil, err
	}

	items := []*model.ContentItem{}
	byID := make(map[string]*model.ContentItem)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, item)
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	catRows, err := s.db.QueryContext(ctx,
		`SELECT ic.item_id, ic.category_id
		 FROM item_categories ic JOIN items i ON i.id = ic.item_id
		 WHERE i.collection = ? ORDER BY ic.item_id, ic.position`, collection,
	)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var itemID, cid string
		if err := catRows.Scan(&itemID, &cid); err != nil {
			return nil, err
		}
		if item, ok := byID[itemID]; ok {
			item.CategoryIDs = append(item.CategoryIDs, cid)
		}
	}
	return items, catRows.Err()
}

// DeleteItem reports whether a row was removed.
func (s *SQLiteStore) DeleteItem(ctx context.Context, collection, slug string) (bool, error) {
	s.logger.Debug("sql", "op", "delete", "table", "items", "collection", collection, "slug", slug)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	// foreign_keys is a per-connection pragma, so the cascade is not relied on.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_categories WHERE item_id IN (SELECT id FROM items WHERE collection = ? AND slug = ?)`,
		collection, slug,
	); err != nil {
		return false, fmt.Errorf("delete categories: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE collection = ? AND slug = ?`, collection, slug)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.ContentItem, error) {
	var item model.ContentItem
	var featured int
	var publishedAt string
	if err := row.Scan(&item.ID, &item.Collection, &item.Slug, &item.Title, &item.ExcerptHTML, &featured, &publishedAt); err != nil {
		return nil, err
	}
	item.Featured = featured != 0
	item.Date = parseTime(publishedAt)
	return &item, nil
}

// --- Categories ---

func (s *SQLiteStore) UpsertCategory(ctx context.Context, cat *model.Category) error {
	s.logger.Debug("sql", "op", "upsert", "table", "categories", "id", cat.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, taxonomy, name, slug, description) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			taxonomy = excluded.taxonomy,
			name = excluded.name,
			slug = excluded.slug,
			description = excluded.description`,
		cat.ID, cat.Taxonomy, cat.Name, cat.Slug, cat.Description,
	)
	return err
}

// ListCategories returns the terms of a taxonomy ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context, taxonomy string) ([]*model.Category, error) {
	s.logger.Debug("sql", "op", "list", "table", "categories", "taxonomy", taxonomy)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, taxonomy, name, slug, description FROM categories WHERE taxonomy = ? ORDER BY name, id`, taxonomy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []*model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Taxonomy, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		cats = append(cats, &c)
	}
	return cats, rows.Err()
}
