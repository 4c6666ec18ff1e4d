package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"pathedit/internal/editor"
	"pathedit/internal/logging"
	"pathedit/internal/model"
)

//go:embed static/*
var staticFS embed.FS

// Server exposes an editor over a small JSON API. The editor is not safe
// for concurrent use, so every request holds mu.
type Server struct {
	mu        sync.Mutex
	ed        *editor.Editor
	storeName string
	notice    string
	log       zerolog.Logger
}

// State is the response body of every API call.
type State struct {
	Store      string              `json:"store"`
	Notice     string              `json:"notice,omitempty"`
	Delimiter  string              `json:"delimiter"`
	Serialized string              `json:"serialized"`
	Entries    []model.EntryStatus `json:"entries"`
	CanUndo    bool                `json:"canUndo"`
	CanRedo    bool                `json:"canRedo"`
	Changed    bool                `json:"changed"`
	Version    string              `json:"version"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type dropRequest struct {
	From  int `json:"from"`
	After int `json:"after"` // -1 drops at the front
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer wraps ed. notice, when set, is reported with every state so the
// page can warn that edits are not persisted.
func NewServer(ed *editor.Editor, storeName, notice string) *Server {
	return &Server{
		ed:        ed,
		storeName: storeName,
		notice:    notice,
		log:       logging.GetLogger("web"),
	}
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("GET /api/entries", s.handleState)
	mux.HandleFunc("POST /api/entries", s.handleAppend)
	mux.HandleFunc("PUT /api/entries/{index}", s.handleEdit)
	mux.HandleFunc("DELETE /api/entries/{index}", s.handleRemove)
	mux.HandleFunc("POST /api/purge", s.handlePurge)
	mux.HandleFunc("POST /api/undo", s.handleUndo)
	mux.HandleFunc("POST /api/redo", s.handleRedo)
	mux.HandleFunc("POST /api/drop", s.handleDrop)
	mux.HandleFunc("GET /api/help", handleHelp)
	return mux
}

// StartServer serves the API on localhost:port until it fails.
func StartServer(port int, s *Server) error {
	addr := fmt.Sprintf("localhost:%d", port)
	fmt.Printf("Starting pathedit web server at http://%s\n", addr)
	s.log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) state(changed bool) State {
	return State{
		Store:      s.storeName,
		Notice:     s.notice,
		Delimiter:  s.ed.Delimiter(),
		Serialized: s.ed.Serialize(),
		Entries:    model.Annotate(s.ed.Entries()),
		CanUndo:    s.ed.CanUndo(),
		CanRedo:    s.ed.CanRedo(),
		Changed:    changed,
		Version:    model.Version,
	}
}

// respond writes the current state, or a 500 if the operation failed to
// persist. The list itself has already changed in that case.
func (s *Server) respond(w http.ResponseWriter, changed bool, err error) {
	if err != nil {
		s.log.Error().Err(err).Msg("operation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.state(changed))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.state(false))
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	if req.Value == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "value is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.ed.Append(req.Value)
	s.respond(w, true, err)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var req valueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	found, err := s.ed.EditAt(idx, req.Value)
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no entry at index %d", idx)})
		return
	}
	s.respond(w, true, err)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.ed.Remove(s.ed.At(idx))
	if !removed {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no entry at index %d", idx)})
		return
	}
	s.respond(w, true, err)
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.ed.Purge()
	s.respond(w, removed > 0, err)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.ed.Undo()
	s.respond(w, ok, err)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.ed.Redo()
	s.respond(w, ok, err)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.ed.At(req.From)
	if entry == nil || !s.ed.CanDrag(entry) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no entry at index %d", req.From)})
		return
	}
	target := s.ed.At(req.After)
	if target == nil && req.After != -1 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no entry at index %d", req.After)})
		return
	}
	// A nil target drops at the front.
	moved, err := s.ed.Drop(entry, target)
	s.respond(w, moved, err)
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(model.HelpText()))
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid index"})
		return 0, false
	}
	return idx, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
