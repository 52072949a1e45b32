package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantadev/asta/internal/auction"
	"github.com/fantadev/asta/internal/models"
	"github.com/fantadev/asta/internal/snapshot"
)

type testEnv struct {
	store     *auction.Store
	snapshots *snapshot.MemoryStore
	server    *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := auction.NewStore()
	snapshots := snapshot.NewMemoryStore()
	manager := NewConnectionManager(DefaultConnectionConfig())
	service := NewService(store, snapshots, manager)

	mux := http.NewServeMux()
	service.RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{store: store, snapshots: snapshots, server: server}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAuctionFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/teams", `{"name":"Draghi Volanti","budget":500,"is_user_team":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	team := decodeBody[models.Team](t, resp)
	assert.Equal(t, 500, team.Budget)
	assert.True(t, team.IsUserTeam)

	resp = env.do(t, http.MethodPost, "/api/players/import", `[{"name":"Mario","team":"Roma","role":"A"}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	player := env.store.Players()[0]
	body := fmt.Sprintf(`{"player_id":%q,"team_id":%q,"price":120}`, player.ID, team.ID)
	resp = env.do(t, http.MethodPost, "/api/auction/assign", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assigned := decodeBody[models.Player](t, resp)
	require.NotNil(t, assigned.Price)
	assert.Equal(t, 120, *assigned.Price)

	got, ok := env.store.Team(team.ID)
	require.True(t, ok)
	assert.Equal(t, 380, got.Budget)

	body = fmt.Sprintf(`{"player_id":%q}`, player.ID)
	resp = env.do(t, http.MethodPost, "/api/auction/unassign", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got, ok = env.store.Team(team.ID)
	require.True(t, ok)
	assert.Equal(t, 500, got.Budget)
}

func TestAssignValidationAndRefusals(t *testing.T) {
	env := newTestEnv(t)
	team := env.store.AddTeam("Draghi Volanti", 100, false)
	require.NoError(t, env.store.ImportRoster([]models.PlayerImport{
		{Name: "Mario", Club: "Roma", Roles: models.RoleList{"A"}},
	}))
	player := env.store.Players()[0]

	// Shape violations are the gateway's to reject.
	body := fmt.Sprintf(`{"player_id":%q,"team_id":%q,"price":0}`, player.ID, team.ID)
	resp := env.do(t, http.MethodPost, "/api/auction/assign", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/auction/assign", `{"player_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Budget shortfall is a business refusal, not a validation error.
	body = fmt.Sprintf(`{"player_id":%q,"team_id":%q,"price":101}`, player.ID, team.ID)
	resp = env.do(t, http.MethodPost, "/api/auction/assign", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	got, ok := env.store.Team(team.ID)
	require.True(t, ok)
	assert.Equal(t, 100, got.Budget, "refused assign leaves the ledger untouched")
}

func TestStateImportRejectsMalformedPayload(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddTeam("Draghi Volanti", 500, true)
	before := env.store.Snapshot()

	resp := env.do(t, http.MethodPost, "/api/state/import", `this is not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, before, env.store.Snapshot(), "malformed import leaves prior state untouched")
}

func TestStateExportImportRoundTripOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddTeam("Draghi Volanti", 500, true)
	env.store.AddTeam("Lupi Grigi", 400, false)
	require.NoError(t, env.store.ImportRoster([]models.PlayerImport{
		{Name: "Gigi", Club: "Juventus", Roles: models.RoleList{"P"}},
		{Name: "Mario", Club: "Roma", Roles: models.RoleList{"A"}},
	}))
	before := env.store.Snapshot()

	resp := env.do(t, http.MethodGet, "/api/state/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exported := decodeBody[json.RawMessage](t, resp)

	env.store.Reset()

	resp = env.do(t, http.MethodPost, "/api/state/import", string(exported))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, before, env.store.Snapshot())
}

func TestAnalysisEndpointRequiresMantraModeAndUserTeam(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/analysis", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	require.True(t, env.store.SetMode(models.ModeMantra))
	resp = env.do(t, http.MethodGet, "/api/analysis", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	team := env.store.AddTeam("Draghi Volanti", 500, true)
	require.NoError(t, env.store.ImportRoster([]models.PlayerImport{
		{Name: "Gigi", Club: "Juventus", Roles: models.RoleList{"P"}},
	}))
	require.True(t, env.store.Assign(env.store.Players()[0].ID, team.ID, 1))

	resp = env.do(t, http.MethodGet, "/api/analysis", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	analysis := decodeBody[analysisResponse](t, resp)
	assert.Equal(t, "Draghi Volanti", analysis.Team)
	require.NotEmpty(t, analysis.Reports)
	for _, report := range analysis.Reports {
		assert.False(t, report.Complete)
		assert.Greater(t, report.Coverage, 0.0)
	}
}

func TestMutationsAutosaveSnapshots(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/teams", `{"name":"Draghi Volanti","budget":500}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	saved, err := env.snapshots.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, saved.Teams, 1)
	assert.Equal(t, "Draghi Volanti", saved.Teams[0].Name)
}

func TestRemoveTeamEndpoint(t *testing.T) {
	env := newTestEnv(t)
	team := env.store.AddTeam("Draghi Volanti", 500, false)

	resp := env.do(t, http.MethodDelete, "/api/teams/"+team.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodDelete, "/api/teams/"+team.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodDelete, "/api/teams/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
