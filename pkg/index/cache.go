package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Key prefixes per query operation
const (
	matchPhrasePrefix = "mph"
	matchPrefix       = "mat"
	idsPrefix         = "ids"
)

// Cache wraps a Searcher with a TTL-bounded badger result cache. Cached
// documents are read-only snapshots, so staleness is bounded by the TTL
// and hits never consult the backend.
type Cache struct {
	next   Searcher
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// NewCache opens a badger database at path (or in memory) and returns a
// caching wrapper around next.
func NewCache(next Searcher, path string, inMemory bool, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("index: create cache directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("index: open cache: %w", err)
	}

	return &Cache{next: next, db: db, ttl: ttl, logger: logger}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// MatchPhrase implements Searcher.
func (c *Cache) MatchPhrase(ctx context.Context, field, value string) (*Result, error) {
	return c.cached(makeKey(matchPhrasePrefix, field, value), func() (*Result, error) {
		return c.next.MatchPhrase(ctx, field, value)
	})
}

// Match implements Searcher.
func (c *Cache) Match(ctx context.Context, field, value string) (*Result, error) {
	return c.cached(makeKey(matchPrefix, field, value), func() (*Result, error) {
		return c.next.Match(ctx, field, value)
	})
}

// IDs implements Searcher.
func (c *Cache) IDs(ctx context.Context, ids []string) (*Result, error) {
	return c.cached(makeKey(idsPrefix, ids...), func() (*Result, error) {
		return c.next.IDs(ctx, ids)
	})
}

// makeKey builds a cache key from the operation prefix and its arguments.
// Arguments are joined with NUL so distinct argument lists cannot collide.
func makeKey(prefix string, args ...string) []byte {
	return []byte(prefix + "\x00" + strings.Join(args, "\x00"))
}

func (c *Cache) cached(key []byte, fetch func() (*Result, error)) (*Result, error) {
	var hit *Result
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var res Result
			if err := json.Unmarshal(val, &res); err != nil {
				return err
			}
			hit = &res
			return nil
		})
	})
	if err == nil {
		return hit, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		// Undecodable or unreadable entry: treat as a miss and refresh.
		c.logger.Warn("cache read failed", "error", err)
	}

	res, err := fetch()
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("index: encode cache entry: %w", err)
	}
	if err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, encoded)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	}); err != nil {
		// A failed write only loses the caching benefit.
		c.logger.Warn("cache write failed", "error", err)
	}
	return res, nil
}
