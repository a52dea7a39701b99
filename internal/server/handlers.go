package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"

	"censusapi/internal/census"
	"censusapi/internal/report"
	"censusapi/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

var notFoundBody = errorResponse{Error: "Data not found"}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(kind store.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		names, err := s.source.List(c.Request().Context(), kind)
		if err != nil {
			s.log.Error().Err(err).Str("kind", string(kind)).Msg("list failed")
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error: fmt.Sprintf("Failed to list %s", listNoun(kind)),
			})
		}
		if names == nil {
			names = []string{}
		}
		return c.JSON(http.StatusOK, names)
	}
}

func (s *Server) handleDocument(c echo.Context) error {
	recs, ok := s.loadRecords(c)
	if !ok {
		return c.JSON(http.StatusNotFound, notFoundBody)
	}
	return c.JSON(http.StatusOK, census.Transform(recs))
}

func (s *Server) handleRaw(c echo.Context) error {
	recs, ok := s.loadRecords(c)
	if !ok {
		return c.JSON(http.StatusNotFound, notFoundBody)
	}
	if recs == nil {
		recs = []census.Record{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (s *Server) handleReport(c echo.Context) error {
	recs, ok := s.loadRecords(c)
	if !ok {
		return c.JSON(http.StatusNotFound, notFoundBody)
	}

	tmp, err := os.CreateTemp("", "censusapi-*.docx")
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	id := c.Param("identifier")
	title := fmt.Sprintf("Census report: %s", id)
	if err := report.Write(path, title, census.Transform(recs)); err != nil {
		return err
	}
	return c.Attachment(path, strings.ToLower(id)+".docx")
}

// loadRecords fetches the records for the :identifier param. Any failure,
// missing file or unreadable content alike, is reported as not found.
func (s *Server) loadRecords(c echo.Context) ([]census.Record, bool) {
	id := c.Param("identifier")
	recs, err := s.source.Records(c.Request().Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrInvalidIdentifier) {
			s.log.Warn().Err(err).Str("identifier", id).Msg("failed to load records")
		}
		return nil, false
	}
	return recs, true
}

func listNoun(kind store.Kind) string {
	if kind == store.KindState {
		return "states"
	}
	return "cities"
}
