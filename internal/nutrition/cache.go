package nutrition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS nutrition_cache (
	food          TEXT PRIMARY KEY,
	calories      REAL NOT NULL,
	total_fat     REAL NOT NULL,
	protein       REAL NOT NULL,
	carbohydrates REAL NOT NULL,
	sugars        REAL NOT NULL,
	sodium        REAL NOT NULL,
	fetched_at    TIMESTAMP NOT NULL
)`

// Cache stores looked-up facts in SQLite. An empty path keeps the cache in memory.
type Cache struct {
	db *sql.DB
}

func OpenCache(path string) (*Cache, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create nutrition cache table: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func normalizeFood(food string) string {
	return strings.ToLower(strings.Join(strings.Fields(food), " "))
}

// Get returns (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, food string) (*Facts, error) {
	f := &Facts{}
	err := c.db.QueryRowContext(ctx, `
		SELECT calories, total_fat, protein, carbohydrates, sugars, sodium
		FROM nutrition_cache WHERE food = ?
	`, normalizeFood(food)).Scan(
		&f.Calories,
		&f.TotalFat,
		&f.Protein,
		&f.Carbohydrates,
		&f.Sugars,
		&f.Sodium,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (c *Cache) Put(ctx context.Context, food string, f *Facts) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO nutrition_cache
		(food, calories, total_fat, protein, carbohydrates, sugars, sodium, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		normalizeFood(food),
		f.Calories,
		f.TotalFat,
		f.Protein,
		f.Carbohydrates,
		f.Sugars,
		f.Sodium,
		time.Now().UTC(),
	)
	return err
}

// CachedLookup answers from the cache first and stores upstream hits.
type CachedLookup struct {
	upstream Lookuper
	cache    *Cache
	logger   *slog.Logger
}

func NewCachedLookup(upstream Lookuper, cache *Cache, logger *slog.Logger) *CachedLookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedLookup{upstream: upstream, cache: cache, logger: logger}
}

func (l *CachedLookup) Lookup(ctx context.Context, food string) (*Facts, error) {
	cached, err := l.cache.Get(ctx, food)
	if err != nil {
		l.logger.Warn("nutrition cache read failed", "food", food, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	facts, err := l.upstream.Lookup(ctx, food)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Put(ctx, food, facts); err != nil {
		l.logger.Warn("nutrition cache write failed", "food", food, "error", err)
	}
	return facts, nil
}
