package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

const recordExt = ".json"

// Index maps lowercase identifiers to record files in one directory.
// It is rebuilt from disk on first use and whenever Refresh is called.
type Index struct {
	mu     sync.RWMutex
	dir    string
	byKey  map[string]string // lowercase file stem -> path
	names  []string          // file stems as found on disk, sorted
	loaded bool
}

func NewIndex(dir string) *Index {
	return &Index{
		dir:   filepath.Clean(dir),
		byKey: map[string]string{},
	}
}

func (ix *Index) Dir() string { return ix.dir }

// Lookup returns the file path for identifier, ignoring case.
func (ix *Index) Lookup(ctx context.Context, identifier string) (string, bool, error) {
	if err := ix.ensureLoaded(ctx); err != nil {
		return "", false, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p, ok := ix.byKey[indexKey(identifier)]
	return p, ok, nil
}

// Names returns the identifiers available in the directory.
func (ix *Index) Names(ctx context.Context) ([]string, error) {
	if err := ix.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return append([]string(nil), ix.names...), nil
}

// Refresh rescans the directory.
func (ix *Index) Refresh(ctx context.Context) error {
	entries, err := os.ReadDir(ix.dir)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	files := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), recordExt)
	})

	byKey := make(map[string]string, len(files))
	for _, e := range files {
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if stem == "" {
			continue
		}
		// First file wins when two stems differ only by case.
		if _, exists := byKey[indexKey(stem)]; !exists {
			byKey[indexKey(stem)] = filepath.Join(ix.dir, e.Name())
		}
	}

	names := lo.Map(lo.Values(byKey), func(p string, _ int) string {
		base := filepath.Base(p)
		return strings.TrimSuffix(base, filepath.Ext(base))
	})
	sort.Strings(names)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.byKey = byKey
	ix.names = names
	ix.loaded = true
	return nil
}

func (ix *Index) ensureLoaded(ctx context.Context) error {
	ix.mu.RLock()
	loaded := ix.loaded
	ix.mu.RUnlock()

	if loaded {
		return nil
	}
	return ix.Refresh(ctx)
}

func indexKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
