package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/helmcode/bug-autopsy/pkg/model"
	"github.com/helmcode/bug-autopsy/pkg/prompts"
	"github.com/helmcode/bug-autopsy/pkg/store"
)

// Gateway is the one analysis operation the server needs. *analyzer.Analyzer
// satisfies it; tests substitute a fake.
type Gateway interface {
	Complete(ctx context.Context, req prompts.Request) (*model.BugAnalysis, error)
}

// CaseStore is the persistence surface the handlers use.
type CaseStore interface {
	List() []model.CaseFile
	Save(cf model.CaseFile) error
	Delete(id string) error
	Get(id string) (model.CaseFile, error)
	SetStatus(id string, status model.CaseStatus) (model.CaseFile, error)
	SetNotes(id, notes string) (model.CaseFile, error)
}

var _ CaseStore = (*store.Store)(nil)

// Server exposes the analysis gateway, the case store and the embedded web
// front-end over HTTP.
type Server struct {
	addr    string
	gateway Gateway
	cases   CaseStore
	log     *zap.Logger
}

func New(addr string, gateway Gateway, cases CaseStore, logger *zap.Logger) *Server {
	return &Server{
		addr:    addr,
		gateway: gateway,
		cases:   cases,
		log:     logger.Named("server"),
	}
}

// Handler builds the full route table, wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/detect", s.handleDetect)
	mux.HandleFunc("GET /api/languages", s.handleLanguages)

	mux.HandleFunc("GET /api/cases", s.handleListCases)
	mux.HandleFunc("POST /api/cases", s.handleSaveCase)
	mux.HandleFunc("GET /api/cases/{id}", s.handleGetCase)
	mux.HandleFunc("PATCH /api/cases/{id}", s.handleUpdateCase)
	mux.HandleFunc("DELETE /api/cases/{id}", s.handleDeleteCase)
	mux.HandleFunc("GET /api/cases/{id}/report", s.handleCaseReport)

	mux.Handle("GET /", s.staticHandler())

	return withCORS(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// withCORS echoes permissive cross-origin headers and answers pre-flight
// OPTIONS requests with an empty 204.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
