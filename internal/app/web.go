package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/relabs-tech/sphere_trajectory/internal/config"
	"github.com/relabs-tech/sphere_trajectory/internal/imu"
	"github.com/relabs-tech/sphere_trajectory/internal/store"
	"github.com/relabs-tech/sphere_trajectory/internal/trajectory"
)

const maxUploadSize = 64 << 20

// Server exposes processing and run history over HTTP.
type Server struct {
	proc  *Processor
	store *store.Store
	hub   *Hub
}

// NewServer wires proc to st and hub so uploads are stored and announced.
func NewServer(proc *Processor, st *store.Store, hub *Hub) *Server {
	proc.Store = st
	proc.Hub = hub
	return &Server{proc: proc, store: st, hub: hub}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/process", s.handleProcess)
	mux.HandleFunc("GET /api/runs", s.handleListRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)
	mux.HandleFunc("DELETE /api/runs/{id}", s.handleDeleteRun)
	mux.HandleFunc("GET /api/runs/{id}/points", s.handleGetPoints)
	mux.HandleFunc("GET /charts/{id}", s.handleChart)
	mux.Handle("GET /ws", s.hub)
	return mux
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("missing recording upload: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	rec, err := imu.Parse(file)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := s.proc.Process(r.Context(), header.Filename, rec)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("web: processed %s radius=%.4f m run=%s", header.Filename, report.Run.Radius, report.Run.ID)
	writeJSON(w, http.StatusCreated, report.Run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRun(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.store.GetRunPoints(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	points, err := s.store.GetRunPoints(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := renderChart(&buf, run, points); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var terr *trajectory.Error
	switch {
	case errors.Is(err, imu.ErrNoUsableInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &terr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("web: %v", err)
	}
	http.Error(w, err.Error(), status)
}

// RunWeb serves the API until SIGINT or SIGTERM.
func RunWeb() error {
	cfg := config.Get()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := NewHub()
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WebServerPort),
		Handler:           NewServer(NewProcessor(cfg), st, hub).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("web: shutdown error: %v", err)
		}
	}()

	log.Printf("web server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Println("web: shut down")
	return nil
}
