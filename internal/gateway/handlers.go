package gateway

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fantadev/asta/internal/formation"
	"github.com/fantadev/asta/internal/models"
	"github.com/fantadev/asta/internal/state"
)

func (s *Service) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Service) handleExportState(w http.ResponseWriter, r *http.Request) {
	data, err := state.Export(s.store.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="asta-backup.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Service) handleImportState(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	rec, err := state.Import(data)
	if err != nil {
		// Prior state stays untouched on a malformed payload.
		writeError(w, http.StatusBadRequest, "malformed auction state")
		return
	}
	if err := s.store.Restore(rec); err != nil {
		writeError(w, http.StatusBadRequest, "malformed auction state")
		return
	}
	s.autosave(r.Context())
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type setModeRequest struct {
	Mode models.AuctionMode `json:"mode"`
}

func (s *Service) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.SetMode(req.Mode) {
		writeError(w, http.StatusBadRequest, "unknown mode")
		return
	}
	s.autosave(r.Context())
	writeJSON(w, http.StatusOK, map[string]models.AuctionMode{"mode": req.Mode})
}

func (s *Service) handleListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Teams())
}

type addTeamRequest struct {
	Name       string `json:"name"`
	Budget     int    `json:"budget"`
	IsUserTeam bool   `json:"is_user_team"`
}

func (s *Service) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	var req addTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Budget <= 0 {
		writeError(w, http.StatusBadRequest, "team needs a name and a positive budget")
		return
	}
	team := s.store.AddTeam(req.Name, req.Budget, req.IsUserTeam)
	s.autosave(r.Context())
	writeJSON(w, http.StatusCreated, team)
}

func (s *Service) handleRemoveTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.store.RemoveTeam(id) {
		writeError(w, http.StatusNotFound, "unknown team")
		return
	}
	s.autosave(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type renameTeamRequest struct {
	Name string `json:"name"`
}

func (s *Service) handleRenameTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req renameTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !s.store.RenameTeam(id, req.Name) {
		writeError(w, http.StatusNotFound, "unknown team")
		return
	}
	s.autosave(r.Context())
	team, _ := s.store.Team(id)
	writeJSON(w, http.StatusOK, team)
}

func (s *Service) handleSetUserTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.store.SetUserTeam(id) {
		writeError(w, http.StatusNotFound, "unknown team")
		return
	}
	s.autosave(r.Context())
	team, _ := s.store.Team(id)
	writeJSON(w, http.StatusOK, team)
}

func (s *Service) handleClearUserTeam(w http.ResponseWriter, r *http.Request) {
	s.store.ClearUserTeam()
	s.autosave(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Players())
}

func (s *Service) handleImportPlayers(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	imports, err := state.ParsePlayerImports(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed player list")
		return
	}
	if err := s.store.ImportRoster(imports); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.autosave(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(imports)})
}

type assignRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Price    int       `json:"price"`
}

func (s *Service) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// The ledger leaves price validation to its caller.
	if req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "price must be positive")
		return
	}
	if !s.store.Assign(req.PlayerID, req.TeamID, req.Price) {
		writeError(w, http.StatusConflict, "assignment refused: unknown player/team or insufficient budget")
		return
	}
	s.autosave(r.Context())
	player, _ := s.store.Player(req.PlayerID)
	writeJSON(w, http.StatusOK, player)
}

type unassignRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
}

func (s *Service) handleUnassign(w http.ResponseWriter, r *http.Request) {
	var req unassignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.Unassign(req.PlayerID) {
		writeError(w, http.StatusConflict, "player is not assigned")
		return
	}
	s.autosave(r.Context())
	player, _ := s.store.Player(req.PlayerID)
	writeJSON(w, http.StatusOK, player)
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset()
	s.autosave(r.Context())
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Service) handleFormations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

type analysisResponse struct {
	Team    string             `json:"team"`
	Reports []formation.Report `json:"reports"`
}

func (s *Service) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store.Mode() != models.ModeMantra {
		writeError(w, http.StatusConflict, "formation analysis requires mantra mode")
		return
	}
	team, ok := s.store.UserTeam()
	if !ok {
		writeError(w, http.StatusConflict, "no user team selected")
		return
	}
	writeJSON(w, http.StatusOK, analysisResponse{
		Team:    team.Name,
		Reports: formation.AnalyzeAll(team.Players, s.catalog),
	})
}
