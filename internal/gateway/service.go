// Package gateway is the HTTP and WebSocket surface of the auction board.
// It validates request shape and maps ledger refusals to status codes; the
// ledger itself never raises for business conditions.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fantadev/asta/internal/auction"
	"github.com/fantadev/asta/internal/formation"
	"github.com/fantadev/asta/internal/snapshot"
)

// maxBodyBytes bounds request payloads; a full listone is well under this
const maxBodyBytes = 8 << 20

// Service wires the ledger, the formation catalog and the snapshot backend
// behind the JSON API.
type Service struct {
	store     *auction.Store
	snapshots snapshot.Store // nil disables autosave
	manager   *ConnectionManager
	catalog   []formation.Formation
}

// NewService creates the API service
func NewService(store *auction.Store, snapshots snapshot.Store, manager *ConnectionManager) *Service {
	return &Service{
		store:     store,
		snapshots: snapshots,
		manager:   manager,
		catalog:   formation.Catalog(),
	}
}

// RegisterRoutes registers all API routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("GET /api/state/export", s.handleExportState)
	mux.HandleFunc("POST /api/state/import", s.handleImportState)
	mux.HandleFunc("POST /api/mode", s.handleSetMode)

	mux.HandleFunc("GET /api/teams", s.handleListTeams)
	mux.HandleFunc("POST /api/teams", s.handleAddTeam)
	mux.HandleFunc("DELETE /api/teams/{id}", s.handleRemoveTeam)
	mux.HandleFunc("POST /api/teams/{id}/rename", s.handleRenameTeam)
	mux.HandleFunc("POST /api/teams/{id}/user", s.handleSetUserTeam)
	mux.HandleFunc("DELETE /api/teams/user", s.handleClearUserTeam)

	mux.HandleFunc("GET /api/players", s.handleListPlayers)
	mux.HandleFunc("POST /api/players/import", s.handleImportPlayers)

	mux.HandleFunc("POST /api/auction/assign", s.handleAssign)
	mux.HandleFunc("POST /api/auction/unassign", s.handleUnassign)
	mux.HandleFunc("POST /api/auction/reset", s.handleReset)

	mux.HandleFunc("GET /api/formations", s.handleFormations)
	mux.HandleFunc("GET /api/analysis", s.handleAnalysis)

	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /ws/stats", s.handleConnectionStats)

	mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}

func (s *Service) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.UpgradeConnection(w, r); err != nil {
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
	}
}

func (s *Service) handleConnectionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"total_connections": s.manager.ConnectionCount(),
	})
}

// autosave persists the current ledger after a successful mutation. The
// original board saved on every store change; failures here are logged and
// never surface to the caller.
func (s *Service) autosave(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, s.store.Snapshot()); err != nil {
		log.Error().Err(err).Msg("autosave snapshot failed")
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return nil, false
	}
	return data, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	data, ok := readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
