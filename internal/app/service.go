package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"censusapi/internal/census"
	"censusapi/internal/config"
	"censusapi/internal/report"
	"censusapi/internal/server"
	"censusapi/internal/store"
)

// Service wires configuration, the record store and the HTTP server.
type Service struct {
	Config *config.Config
	Store  *store.Store
	Log    zerolog.Logger
}

func NewService(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		Config: cfg,
		Store:  store.New(cfg.Data.Dir, cfg.Data.StatesDir, cfg.Data.CitiesDir),
		Log:    log,
	}, nil
}

// Records loads records either from a file path or, when no such file
// exists, from the store by identifier.
func (s *Service) Records(ctx context.Context, source string) ([]census.Record, error) {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, err
		}
		return store.DecodeRecords(data)
	}
	return s.Store.Records(ctx, source)
}

func (s *Service) Document(ctx context.Context, source string) (census.Document, error) {
	recs, err := s.Records(ctx, source)
	if err != nil {
		return census.Document{}, err
	}
	return census.Transform(recs), nil
}

func (s *Service) Tally(ctx context.Context, source string) (map[census.Destination]int, int, error) {
	recs, err := s.Records(ctx, source)
	if err != nil {
		return nil, 0, err
	}
	return census.Tally(recs), len(recs), nil
}

func (s *Service) GenerateReport(ctx context.Context, source, path string) error {
	doc, err := s.Document(ctx, source)
	if err != nil {
		return err
	}
	return report.Write(path, fmt.Sprintf("Census report: %s", source), doc)
}

func (s *Service) List(ctx context.Context, kind store.Kind) ([]string, error) {
	return s.Store.List(ctx, kind)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func (s *Service) Serve(ctx context.Context) error {
	srv := server.New(server.Options{
		Source:      s.Store,
		Logger:      s.Log,
		CORSOrigins: s.Config.Server.CORSOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(s.Config.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.Config.GetShutdownTimeout()
	s.Log.Info().Dur("timeout", timeout).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return waitErr(errCh, time.Second)
}

func waitErr(errCh <-chan error, d time.Duration) error {
	select {
	case err := <-errCh:
		return err
	case <-time.After(d):
		return nil
	}
}
