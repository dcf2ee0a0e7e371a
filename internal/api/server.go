// Package api serves reports, records and range checks over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/huangsam/thermolog/core"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/outwriter"
	"github.com/huangsam/thermolog/schema"
)

// Server answers read-only queries about the readings.
type Server struct {
	cfg     *contract.Config
	mgr     contract.CacheManager
	metrics *Metrics
	log     *slog.Logger
}

// NewServer builds a Server. A nil logger falls back to slog.Default.
func NewServer(cfg *contract.Config, mgr contract.CacheManager, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		mgr:     mgr,
		metrics: NewMetrics(),
		log:     log.With(slog.String("component", "api")),
	}
}

// Routes returns the chi router with every endpoint mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", healthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/zones", s.zones)
	r.Get("/check", s.check)
	r.Group(func(r chi.Router) {
		r.Use(s.withCriteria)
		r.Get("/report", s.report)
		r.Get("/records", s.records)
		r.Get("/export.csv", s.exportCSV)
	})
	return r
}

// logRequests logs one line per request once the response is written.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("took", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type cfgKey struct{}

// withCriteria resolves the zone, year, month and shift query parameters
// against the configured criteria and stores the request's config.
func (s *Server) withCriteria(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		year := 0
		if raw := q.Get("year"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", "year must be a number")
				return
			}
			year = n
		}
		criteria, err := contract.OverrideCriteria(s.cfg.Criteria, q.Get("zone"), year, q.Get("month"), q.Get("shift"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), cfgKey{}, s.cfg.CloneWithCriteria(criteria))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestConfig(r *http.Request) *contract.Config {
	return r.Context().Value(cfgKey{}).(*contract.Config)
}

// buildReport fetches the dataset for the request; ok is false once an
// error response has been written.
func (s *Server) buildReport(w http.ResponseWriter, r *http.Request) (schema.Report, bool) {
	cfg := requestConfig(r)
	store, err := core.NewRecordStore(cfg)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no_endpoint", err.Error())
		return schema.Report{}, false
	}
	report := core.BuildReport(core.WithQuiet(r.Context()), cfg, store, s.mgr)
	s.metrics.servedRecords(len(report.Records))
	return report, true
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	report, ok := s.buildReport(w, r)
	if !ok {
		return
	}
	s.metrics.reportedOutOfRange(report.Summary.OutOfRange)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) records(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative number")
			return
		}
		limit = n
	}
	report, ok := s.buildReport(w, r)
	if !ok {
		return
	}
	records := report.Records
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := s.buildReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="registros.csv"`)
	if err := outwriter.WriteExportCSV(w, report.Records); err != nil {
		s.log.Warn("export failed", slog.Any("err", err))
	}
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	zone, value := q.Get("zone"), q.Get("value")
	if zone == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", schema.ErrMissingZone.Error())
		return
	}
	if value == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", schema.ErrMissingCurrent.Error())
		return
	}
	writeJSON(w, http.StatusOK, core.CheckValue(s.cfg, zone, schema.ParseKind(q.Get("kind")), value))
}

func (s *Server) zones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, core.BuildCatalog(s.cfg, time.Now()))
}

// ListenAndServe serves the API on cfg.Listen until ctx is cancelled.
func ListenAndServe(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, log *slog.Logger) error {
	s := NewServer(cfg, mgr, log)
	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", slog.String("addr", cfg.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{
		"type":   code,
		"detail": detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
