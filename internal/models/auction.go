package models

import "github.com/google/uuid"

// AuctionRecord is the portable whole-state unit used for export, import
// and snapshots.
type AuctionRecord struct {
	Mode       AuctionMode `json:"mode"`
	Teams      []Team      `json:"teams"`
	Players    []Player    `json:"players"`
	CurrentBid *CurrentBid `json:"currentBid,omitempty"`
}

// CurrentBid is a placeholder carried by historic exports. The ledger never
// populates it.
type CurrentBid struct {
	PlayerID uuid.UUID `json:"playerId"`
	Amount   int       `json:"amount"`
	TeamID   uuid.UUID `json:"teamId"`
}

// Clone returns a deep copy of the record
func (r *AuctionRecord) Clone() *AuctionRecord {
	out := &AuctionRecord{Mode: r.Mode}
	out.Teams = make([]Team, len(r.Teams))
	for i, t := range r.Teams {
		out.Teams[i] = t.Clone()
	}
	out.Players = make([]Player, len(r.Players))
	for i, p := range r.Players {
		out.Players[i] = p.Clone()
	}
	if r.CurrentBid != nil {
		bid := *r.CurrentBid
		out.CurrentBid = &bid
	}
	return out
}
