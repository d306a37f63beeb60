package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/docgrade/docgrade/internal/domain"
)

// ErrPersist wraps failures while writing a ledger to disk.
var ErrPersist = errors.New("ledger: persist failed")

// Store reads and writes per-source ledger files under a single
// directory. Record serializes per source document: concurrent records
// for different sources proceed in parallel, records for the same
// source queue behind one mutex.
type Store struct {
	dir      string
	logger   *zap.Logger
	registry *Registry

	mu      sync.Mutex
	sources map[string]*sync.Mutex
}

// NewStore creates a store rooted at dir, creating the directory if
// needed. The registry is optional; when non-nil every successful
// record notifies it.
func NewStore(dir string, registry *Registry, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ledger: create directory %q: %w", dir, err)
	}
	return &Store{
		dir:      dir,
		logger:   logger,
		registry: registry,
		sources:  make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the directory the store persists ledgers under.
func (s *Store) Dir() string { return s.dir }

// Path returns the ledger file path for a source document.
func (s *Store) Path(sourceFile string) string {
	return filepath.Join(s.dir, "cache_"+stem(sourceFile)+".json")
}

// stem strips the directory and extension from a source identity so
// "inspections/move_in.pdf" and "move_in.json" share one ledger.
func stem(sourceFile string) string {
	base := filepath.Base(sourceFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load returns the ledger for a source document. A missing ledger means
// no history yet and yields an empty cache; a corrupt or unreadable one
// is recoverable: it is logged and replaced by an empty cache rather
// than propagated.
func (s *Store) Load(sourceFile string) *Cache {
	path := s.Path(sourceFile)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("ledger unreadable, starting empty",
				zap.String("path", path), zap.Error(err))
		}
		return NewCache(sourceFile)
	}

	cache := NewCache(sourceFile)
	if err := json.Unmarshal(raw, cache); err != nil {
		s.logger.Warn("ledger corrupt, starting empty",
			zap.String("path", path), zap.Error(err))
		return NewCache(sourceFile)
	}
	if cache.Models == nil {
		cache.Models = make(map[domain.ModelKey]*CachedModelResult)
	}
	return cache
}

// Record folds one evaluation result into its source's ledger and
// persists the updated ledger atomically. The previous ledger stays
// intact if the persist step fails.
func (s *Store) Record(result *domain.EvaluationResult) (*Cache, error) {
	lock := s.sourceLock(result.SourceFile)
	lock.Lock()
	defer lock.Unlock()

	cache := s.Load(result.SourceFile)
	cache.Record(result)

	if err := s.persist(cache); err != nil {
		return nil, err
	}

	s.logger.Info("evaluation recorded",
		zap.String("source", result.SourceFile),
		zap.String("model", result.Model.String()),
		zap.Float64("overall_score", result.Scores.OverallScore))

	if s.registry != nil {
		// Notify with the ledger stem so store and watcher report the
		// same identity for one source document.
		s.registry.Notify(stem(result.SourceFile))
	}
	return cache, nil
}

func (s *Store) sourceLock(sourceFile string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stem(sourceFile)
	lock, ok := s.sources[key]
	if !ok {
		lock = &sync.Mutex{}
		s.sources[key] = lock
	}
	return lock
}

// persist writes the ledger to a temporary file in the same directory
// and renames it over the target, so readers only ever observe a
// complete ledger.
func (s *Store) persist(cache *Cache) error {
	path := s.Path(cache.SourceFile)

	raw, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %q: %v", ErrPersist, path, err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %q: %v", ErrPersist, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %q: %v", ErrPersist, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %q: %v", ErrPersist, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %q: %v", ErrPersist, path, err)
	}
	return nil
}

// List returns the ledger file paths currently present in the store's
// directory, sorted by file name.
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "cache_*.json"))
	if err != nil {
		return nil, fmt.Errorf("ledger: list %q: %w", s.dir, err)
	}
	return matches, nil
}

// LoadPath reads a ledger directly by file path. Unlike Load it
// propagates errors; the caller decides how to treat them.
func LoadPath(path string) (*Cache, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ledger: read %q: %w", path, err)
	}
	var cache Cache
	if err := json.Unmarshal(raw, &cache); err != nil {
		return nil, fmt.Errorf("ledger: decode %q: %w", path, err)
	}
	if cache.Models == nil {
		cache.Models = make(map[domain.ModelKey]*CachedModelResult)
	}
	return &cache, nil
}
