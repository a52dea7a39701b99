package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"censusapi/internal/census"
	"censusapi/internal/store"
)

type fakeSource struct {
	records map[string][]census.Record
	listErr error
}

func (f *fakeSource) Records(_ context.Context, id string) ([]census.Record, error) {
	recs, ok := f.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return recs, nil
}

func (f *fakeSource) List(_ context.Context, kind store.Kind) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if kind == store.KindState {
		return []string{"CA"}, nil
	}
	return nil, nil
}

func newTestServer(src store.Source) *Server {
	return New(Options{Source: src, Logger: zerolog.Nop()})
}

func do(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestDocument(t *testing.T) {
	s := newTestServer(&fakeSource{records: map[string][]census.Record{
		"ca": {
			{Label: "Population, Census, April 1, 2020", Value: "12,345"},
			{Label: "Persons under 5 years, percent", Value: "X"},
		},
	}})

	rec := do(t, s, "/api/ca")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"2010": nil, "2020": 12345.0}, body["population_census"])
	assert.Equal(t, map[string]any{}, body["population_estimates"])
	assert.Equal(t, 0.0, body["age_distribution"]["under5"])
	assert.Equal(t, 100.0, body["age_distribution"]["other"])
}

func TestDocument_NotFound(t *testing.T) {
	s := newTestServer(&fakeSource{})

	rec := do(t, s, "/api/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Data not found"}`, rec.Body.String())
}

func TestRaw(t *testing.T) {
	s := newTestServer(&fakeSource{records: map[string][]census.Record{
		"tx": {{Label: "FIPS Code", Value: "48"}},
		"ny": nil,
	}})

	rec := do(t, s, "/api/tx/raw")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"label":"FIPS Code","value":"48"}]`, rec.Body.String())

	rec = do(t, s, "/api/ny/raw")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestList(t *testing.T) {
	s := newTestServer(&fakeSource{})

	rec := do(t, s, "/api/list/states")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["CA"]`, rec.Body.String())

	rec = do(t, s, "/api/list/cities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestList_Failure(t *testing.T) {
	s := newTestServer(&fakeSource{listErr: errors.New("disk on fire")})

	rec := do(t, s, "/api/list/cities")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to list cities"}`, rec.Body.String())

	rec = do(t, s, "/api/list/states")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to list states"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(&fakeSource{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReport(t *testing.T) {
	s := newTestServer(&fakeSource{records: map[string][]census.Record{
		"CA": {{Label: "Population, Census, April 1, 2020", Value: "12,345"}},
	}})

	rec := do(t, s, "/api/CA/report.docx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `ca.docx`)
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = do(t, s, "/api/zz/report.docx")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWithStore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "states"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cities"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "states", "CA.json"), []byte(`{
		"1": {"label": "White alone, not Hispanic, percent", "value": "34.3"},
		"2": {"label": "Population per square mile, 2020", "value": "253.7"}
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cities", "fresno.json"), []byte(`not json`), 0o644))

	s := newTestServer(store.New(root, "states", "cities"))

	rec := do(t, s, "/api/ca")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Race map[string]*float64            `json:"race_distribution"`
		Misc map[string]map[string]*float64 `json:"miscellaneous"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Contains(t, doc.Race, "white_alone_not_hispanic")
	assert.Equal(t, 34.3, *doc.Race["white_alone_not_hispanic"])
	assert.Contains(t, doc.Misc["geographic"], "population_per_square_mile_2020")

	assert.Equal(t, http.StatusNotFound, do(t, s, "/api/Fresno").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, "/api/ny").Code)

	rec = do(t, s, "/api/list/states")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["CA"]`, rec.Body.String())
}
