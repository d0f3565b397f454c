package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
	"github.com/jin0205/sourdough-pro-ai/internal/logger"
)

const createCollectionsTable = `
CREATE TABLE IF NOT EXISTS collections (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// SQLiteStore persists each collection as a single msgpack blob keyed by
// the collection name. Writes replace the whole collection, matching the
// Store contract.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger

	notifier
}

var _ domain.Store = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(createCollectionsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	log.Debug("sqlite store opened at %s", path)
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) read(ctx context.Context, key domain.Collection, dest any) error {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, string(key)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := msgpack.Unmarshal(blob, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) write(ctx context.Context, key domain.Collection, value any) error {
	blob, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		string(key), blob)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	s.publish(key)
	return nil
}

func (s *SQLiteStore) Recipes(ctx context.Context) ([]domain.SavedRecipe, error) {
	var recipes []domain.SavedRecipe
	if err := s.read(ctx, domain.CollectionRecipes, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *SQLiteStore) SaveRecipes(ctx context.Context, recipes []domain.SavedRecipe) error {
	return s.write(ctx, domain.CollectionRecipes, recipes)
}

func (s *SQLiteStore) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := s.read(ctx, domain.CollectionInventory, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQLiteStore) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	return s.write(ctx, domain.CollectionInventory, items)
}

func (s *SQLiteStore) PlannerItems(ctx context.Context) ([]domain.PlannerItem, error) {
	var items []domain.PlannerItem
	if err := s.read(ctx, domain.CollectionPlanner, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQLiteStore) SavePlannerItems(ctx context.Context, items []domain.PlannerItem) error {
	return s.write(ctx, domain.CollectionPlanner, items)
}

func (s *SQLiteStore) Close() error {
	s.shutdown()
	return s.db.Close()
}
