package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"censusapi/internal/census"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "states", "CA.json"), `{
		"a1": {"label": "Population, Census, April 1, 2020", "value": "39,538,223"},
		"b7": {"label": "FIPS Code", "value": "\"06\""}
	}`)
	writeFile(t, filepath.Join(root, "states", "tx.json"), `[]`)
	writeFile(t, filepath.Join(root, "cities", "SanFrancisco.json"), `[
		{"label": "Population, Census, April 1, 2020", "value": 873965}
	]`)
	writeFile(t, filepath.Join(root, "cities", "broken.json"), `{"a": {"label": "x"`)
	writeFile(t, filepath.Join(root, "cities", "notes.txt"), `ignored`)
	return New(root, "states", "cities"), root
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindState, KindOf("ca"))
	assert.Equal(t, KindState, KindOf("TX"))
	assert.Equal(t, KindCity, KindOf("c1"))
	assert.Equal(t, KindCity, KindOf("abc"))
	assert.Equal(t, KindCity, KindOf("sanfrancisco"))
	assert.Equal(t, KindCity, KindOf(""))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Cities")
	require.NoError(t, err)
	assert.Equal(t, KindCity, k)

	k, err = ParseKind("state")
	require.NoError(t, err)
	assert.Equal(t, KindState, k)

	_, err = ParseKind("counties")
	assert.Error(t, err)
}

func TestStore_Records(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	recs, err := s.Records(ctx, "ca")
	require.NoError(t, err)
	assert.Equal(t, []census.Record{
		{Label: "Population, Census, April 1, 2020", Value: "39,538,223"},
		{Label: "FIPS Code", Value: `"06"`},
	}, recs)

	recs, err = s.Records(ctx, "sanfrancisco")
	require.NoError(t, err)
	assert.Equal(t, []census.Record{
		{Label: "Population, Census, April 1, 2020", Value: "873965"},
	}, recs)

	recs, err = s.Records(ctx, "TX")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_RecordsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"ny", "atlantis", "../states/CA", "notes"} {
		_, err := s.Records(ctx, id)
		assert.True(t, errors.Is(err, ErrNotFound), "identifier %q: %v", id, err)
	}

	_, err := s.Records(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestStore_RecordsDecodeError(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Records(context.Background(), "broken")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestStore_PicksUpNewFiles(t *testing.T) {
	s, root := newTestStore(t)
	ctx := context.Background()

	_, err := s.Records(ctx, "ny")
	require.ErrorIs(t, err, ErrNotFound)

	writeFile(t, filepath.Join(root, "states", "NY.json"), `[]`)
	_, err = s.Records(ctx, "ny")
	assert.NoError(t, err)
}

func TestStore_List(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	states, err := s.List(ctx, KindState)
	require.NoError(t, err)
	assert.Equal(t, []string{"CA", "tx"}, states)

	cities, err := s.List(ctx, KindCity)
	require.NoError(t, err)
	assert.Equal(t, []string{"SanFrancisco", "broken"}, cities)
}

func TestStore_ListMissingDir(t *testing.T) {
	s := New(t.TempDir(), "states", "cities")

	_, err := s.List(context.Background(), KindCity)
	assert.Error(t, err)

	_, err = s.Records(context.Background(), "ca")
	assert.ErrorIs(t, err, ErrNotFound)
}
