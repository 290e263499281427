package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/fedorov/pw44-wsi-conversion/internal/registry"
	"github.com/fedorov/pw44-wsi-conversion/internal/runtime"
	registrysvc "github.com/fedorov/pw44-wsi-conversion/internal/services/registry"
	logpkg "github.com/fedorov/pw44-wsi-conversion/pkg/log"
)

type Server struct {
	rt     *runtime.Runtime
	svc    *registrysvc.Service
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

// New constructs a server with its own service instance.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	return NewWithService(rt, registrysvc.NewWithLogger(rt, logger), logger)
}

// NewWithService constructs a server over a shared service instance.
func NewWithService(rt *runtime.Runtime, svc *registrysvc.Service, logger logpkg.Logger) *Server {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("http"))
	}
	mux := http.NewServeMux()
	s := &Server{rt: rt, svc: svc, logger: logger, srv: &http.Server{Handler: cors(mux)}}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/uids/get-or-create", s.handleGetOrCreate)
	mux.HandleFunc("/v1/uids/resolve", s.handleResolve)
	mux.HandleFunc("/v1/uids/list", s.handleList)
	mux.HandleFunc("/v1/uids/stats", s.handleStats)
	mux.HandleFunc("/v1/stamps/get-or-set", s.handleStamp)
	return s
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError maps service errors to status codes with a small JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, registry.ErrInvalidKey):
		status = http.StatusBadRequest
	case errors.Is(err, registrysvc.ErrCategoryNotAllowed):
		status = http.StatusForbidden
	case errors.Is(err, registry.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusServiceUnavailable || status == http.StatusInternalServerError {
		s.logger.Error("request failed", logpkg.Err(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.CheckHealth(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_serving"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type uidReq struct {
	Category  string `json:"category"`
	DomainKey string `json:"domainKey"`
}

func (s *Server) handleGetOrCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req uidReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	uid, err := s.svc.GetOrCreate(r.Context(), req.Category, req.DomainKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"category":  req.Category,
		"domainKey": req.DomainKey,
		"uid":       uid,
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rec, ok, err := s.svc.Resolve(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("domainKey"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	recs, err := s.svc.List(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("filter"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []registry.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": stats})
}

type stampReq struct {
	Category  string `json:"category"`
	DomainKey string `json:"domainKey"`
	Value     string `json:"value"`
}

func (s *Server) handleStamp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req stampReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	value, err := s.svc.GetOrSetStamp(r.Context(), req.Category, req.DomainKey, req.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"category":  req.Category,
		"domainKey": req.DomainKey,
		"value":     value,
	})
}
