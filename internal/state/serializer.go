// Package state converts the auction ledger to and from its portable JSON
// record. Parsing never touches live state: callers import into the ledger
// only after a payload decoded cleanly.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/fantadev/asta/internal/models"
)

// Export renders a record as its portable JSON form
func Export(rec *models.AuctionRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode auction state: %w", err)
	}
	return data, nil
}

// Import parses a portable record. Absent teams/players default to empty,
// scalar role fields are normalized to sequences, and an empty mode falls
// back to classic. Unparseable input or an unknown mode yields an error and
// no record.
func Import(data []byte) (*models.AuctionRecord, error) {
	var rec models.AuctionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse auction state: %w", err)
	}
	if rec.Mode == "" {
		rec.Mode = models.ModeClassic
	}
	if !rec.Mode.Valid() {
		return nil, fmt.Errorf("parse auction state: unknown mode %q", rec.Mode)
	}
	if rec.Teams == nil {
		rec.Teams = []models.Team{}
	}
	if rec.Players == nil {
		rec.Players = []models.Player{}
	}
	return &rec, nil
}

// ParsePlayerImports parses a listone payload: an ordered list of records
// with at least name, team and role (scalar or sequence). Extra fields are
// carried through untouched.
func ParsePlayerImports(data []byte) ([]models.PlayerImport, error) {
	var imports []models.PlayerImport
	if err := json.Unmarshal(data, &imports); err != nil {
		return nil, fmt.Errorf("parse player list: %w", err)
	}
	return imports, nil
}
