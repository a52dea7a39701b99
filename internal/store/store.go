package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"censusapi/internal/census"
)

var (
	ErrNotFound          = errors.New("record source not found")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// Source is what the HTTP layer needs from a record store.
type Source interface {
	Records(ctx context.Context, identifier string) ([]census.Record, error)
	List(ctx context.Context, kind Kind) ([]string, error)
}

// Store serves record files laid out as <root>/<states dir>/*.json and
// <root>/<cities dir>/*.json.
type Store struct {
	indexes map[Kind]*Index
}

// New creates a Store rooted at dir with the given subdirectory names.
func New(dir, statesDir, citiesDir string) *Store {
	return &Store{
		indexes: map[Kind]*Index{
			KindState: NewIndex(filepath.Join(dir, statesDir)),
			KindCity:  NewIndex(filepath.Join(dir, citiesDir)),
		},
	}
}

// Records loads and decodes the record file for identifier. Missing files
// yield ErrNotFound.
func (s *Store) Records(ctx context.Context, identifier string) ([]census.Record, error) {
	if identifier == "" {
		return nil, ErrInvalidIdentifier
	}

	path, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", identifier, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	recs, err := DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// List returns the identifiers available for kind.
func (s *Store) List(ctx context.Context, kind Kind) ([]string, error) {
	ix, ok := s.indexes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	if err := ix.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("list %s: %w", ix.Dir(), err)
	}
	return ix.Names(ctx)
}

// resolve looks the identifier up in the cached index first and rescans the
// directory once on a miss, so files added while running are picked up.
func (s *Store) resolve(ctx context.Context, identifier string) (string, error) {
	ix := s.indexes[KindOf(identifier)]

	p, ok, err := ix.Lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", identifier, ErrNotFound)
		}
		return "", err
	}
	if ok {
		return p, nil
	}

	if err := ix.Refresh(ctx); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", identifier, ErrNotFound)
		}
		return "", err
	}
	if p, ok, _ = ix.Lookup(ctx, identifier); ok {
		return p, nil
	}
	return "", fmt.Errorf("%s: %w", identifier, ErrNotFound)
}
