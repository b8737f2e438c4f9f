package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"media-indexer/indexer"
	"media-indexer/internal/logging"
	"media-indexer/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server handles HTTP requests for the indexing daemon.
type Server struct {
	cache  *indexer.Cache
	outDir string
}

// New creates a server driving the given cache. outDir is the directory
// whose cache subfolder is reported by GetStats; empty disables stats.
func New(cache *indexer.Cache, outDir string) *Server {
	return &Server{cache: cache, outDir: outDir}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/index", s.handleIndex).Methods("POST")
	r.HandleFunc("/api/info", s.handleInfo).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.Use(metricsMiddleware)

	return r
}

// IndexRequest is the JSON body of POST /api/index. It mirrors
// indexer.IndexOptions plus the output folder policy.
type IndexRequest struct {
	Files  []string `json:"files"`
	Force  bool     `json:"force,omitempty"`
	Split  bool     `json:"split,omitempty"`
	Output string   `json:"output,omitempty"`
	Temp   bool     `json:"temp,omitempty"`
	Args   []string `json:"args,omitempty"`
}

// IndexResponse is the JSON body of a successful POST /api/index.
type IndexResponse struct {
	Indexes []string `json:"indexes"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Files) == 0 {
		writeError(w, http.StatusBadRequest, "no input files")
		return
	}

	opts := indexer.IndexOptions{
		Force:      req.Force,
		SplitFiles: req.Split,
		ExtraArgs:  req.Args,
	}
	switch {
	case req.Temp:
		opts.Output = indexer.TempDir()
	case req.Output != "":
		opts.Output = indexer.OutputDir(req.Output)
	}

	paths, err := s.cache.Index(r.Context(), req.Files, opts)
	if err != nil {
		logging.Error("Index request failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, IndexResponse{Indexes: paths})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	fileIdx := 0
	if v := r.URL.Query().Get("file"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid file parameter")
			return
		}
		fileIdx = n
	}

	info, err := s.cache.Tool().ReadInfo(path, fileIdx)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStats reports artifact count and size under the cache subfolder.
// It implements metrics.StatsProvider.
func (s *Server) GetStats() metrics.Stats {
	var stats metrics.Stats
	if s.outDir == "" {
		return stats
	}

	dir := filepath.Join(s.outDir, indexer.IndexFolderName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.Artifacts++
		stats.SizeBytes += info.Size()
	}

	return stats
}

func statusForError(err error) int {
	var notFound *indexer.NotFoundError
	var corrupted *indexer.CorruptedIndexError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &corrupted), errors.Is(err, indexer.ErrCorrupted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
