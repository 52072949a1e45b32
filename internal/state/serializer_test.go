package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantadev/asta/internal/auction"
	"github.com/fantadev/asta/internal/models"
)

func TestParsePlayerImportsNormalizesScalarRole(t *testing.T) {
	payload := []byte(`[{"name":"Mario","team":"Roma","role":"A"}]`)

	imports, err := ParsePlayerImports(payload)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "Mario", imports[0].Name)
	assert.Equal(t, "Roma", imports[0].Club)
	assert.Equal(t, models.RoleList{"A"}, imports[0].Roles)

	s := auction.NewStore()
	require.NoError(t, s.ImportRoster(imports))
	players := s.Players()
	require.Len(t, players, 1)
	assert.Equal(t, models.RoleList{"A"}, players[0].Roles)
	assert.Nil(t, players[0].Price)
	assert.Nil(t, players[0].AssignedTo)
}

func TestParsePlayerImportsKeepsRoleSequencesAndExtras(t *testing.T) {
	payload := []byte(`[{"name":"Jolly","team":"Milan","role":["C","A"],"fvm":42}]`)

	imports, err := ParsePlayerImports(payload)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, models.RoleList{"C", "A"}, imports[0].Roles)
	require.Contains(t, imports[0].Extra, "fvm")
	assert.JSONEq(t, "42", string(imports[0].Extra["fvm"]))
}

func TestParsePlayerImportsRejectsGarbage(t *testing.T) {
	_, err := ParsePlayerImports([]byte(`{"name":"not a list"}`))
	assert.Error(t, err)

	_, err = ParsePlayerImports([]byte(`not json`))
	assert.Error(t, err)
}

func TestImportDefaultsAbsentCollections(t *testing.T) {
	rec, err := Import([]byte(`{"mode":"mantra"}`))
	require.NoError(t, err)
	assert.Equal(t, models.ModeMantra, rec.Mode)
	assert.NotNil(t, rec.Teams)
	assert.Empty(t, rec.Teams)
	assert.NotNil(t, rec.Players)
	assert.Empty(t, rec.Players)
}

func TestImportNormalizesScalarRolesInsideTeams(t *testing.T) {
	rec, err := Import([]byte(`{
        "mode": "classic",
        "teams": [{
            "id": "7d444840-9dc0-11d1-b245-5ffdce74fad2",
            "name": "Draghi",
            "budget": 400,
            "initialBudget": 500,
            "isUserTeam": true,
            "players": [{
                "id": "7d444840-9dc0-11d1-b245-5ffdce74fad3",
                "name": "Mario",
                "team": "Roma",
                "role": "A",
                "price": 100,
                "assignedTo": "7d444840-9dc0-11d1-b245-5ffdce74fad2"
            }]
        }],
        "players": []
    }`))
	require.NoError(t, err)
	require.Len(t, rec.Teams, 1)
	require.Len(t, rec.Teams[0].Players, 1)
	assert.Equal(t, models.RoleList{"A"}, rec.Teams[0].Players[0].Roles)
}

func TestImportRejectsMalformedPayloads(t *testing.T) {
	for _, payload := range []string{
		`not json at all`,
		`{"mode": "hybrid"}`,
		`{"teams": "nope"}`,
	} {
		_, err := Import([]byte(payload))
		assert.Error(t, err, "payload %q must be rejected", payload)
	}
}

func TestExportImportRoundTripReproducesLedger(t *testing.T) {
	s := auction.NewStore()
	require.True(t, s.SetMode(models.ModeMantra))
	draghi := s.AddTeam("Draghi Volanti", 500, true)
	lupi := s.AddTeam("Lupi Grigi", 400, false)
	require.NoError(t, s.ImportRoster([]models.PlayerImport{
		{Name: "Gigi", Club: "Juventus", Roles: models.RoleList{"P"}},
		{Name: "Paolo", Club: "Milan", Roles: models.RoleList{"DC"}},
		{Name: "Andrea", Club: "Juventus", Roles: models.RoleList{"M", "C"}},
		{Name: "Francesco", Club: "Roma", Roles: models.RoleList{"T", "A"}},
		{Name: "Christian", Club: "Inter", Roles: models.RoleList{"A", "PC"}},
	}))
	players := s.Players()
	require.True(t, s.Assign(players[0].ID, draghi.ID, 40))
	require.True(t, s.Assign(players[3].ID, lupi.ID, 150))

	exported, err := Export(s.Snapshot())
	require.NoError(t, err)

	imported, err := Import(exported)
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), imported, "round trip reproduces the ledger exactly")

	// And restoring into a fresh store keeps the same portable form.
	restored := auction.NewStore()
	require.NoError(t, restored.Restore(imported))
	reExported, err := Export(restored.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, string(exported), string(reExported))
}

func TestExportPreservesUninterpretedPlayerFields(t *testing.T) {
	s := auction.NewStore()
	imports, err := ParsePlayerImports([]byte(`[{"name":"Mario","team":"Roma","role":"A","fvm":42}]`))
	require.NoError(t, err)
	require.NoError(t, s.ImportRoster(imports))

	exported, err := Export(s.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(exported), `"fvm":42`)

	rec, err := Import(exported)
	require.NoError(t, err)
	require.Contains(t, rec.Players[0].Extra, "fvm")
}
