package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Player is one entry of the player pool. Price and AssignedTo are set
// together by the auction ledger and are both nil for unassigned players.
type Player struct {
	ID         uuid.UUID
	Name       string
	Club       string // source club label from the listone
	Roles      RoleList
	Price      *int
	AssignedTo *uuid.UUID

	// Extra carries import-payload fields the core does not interpret;
	// they survive export/import round trips untouched.
	Extra map[string]json.RawMessage
}

// playerJSON is the wire shape of Player. The field names match the
// historic export format ("team" is the source club).
type playerJSON struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Club       string     `json:"team"`
	Roles      RoleList   `json:"role"`
	Price      *int       `json:"price,omitempty"`
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`
}

var playerKnownKeys = []string{"id", "name", "team", "role", "price", "assignedTo"}

func (p Player) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(playerJSON{
		ID:         p.ID,
		Name:       p.Name,
		Club:       p.Club,
		Roles:      p.Roles,
		Price:      p.Price,
		AssignedTo: p.AssignedTo,
	})
	if err != nil || len(p.Extra) == 0 {
		return base, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var pj playerJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range playerKnownKeys {
		delete(raw, k)
	}

	p.ID = pj.ID
	p.Name = pj.Name
	p.Club = pj.Club
	p.Roles = pj.Roles
	p.Price = pj.Price
	p.AssignedTo = pj.AssignedTo
	p.Extra = nil
	if len(raw) > 0 {
		p.Extra = raw
	}
	return nil
}

// Assigned reports whether the player is currently owned by a team
func (p *Player) Assigned() bool {
	return p.AssignedTo != nil && p.Price != nil
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	out := p
	out.Roles = p.Roles.Clone()
	if p.Price != nil {
		v := *p.Price
		out.Price = &v
	}
	if p.AssignedTo != nil {
		v := *p.AssignedTo
		out.AssignedTo = &v
	}
	if p.Extra != nil {
		m := make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			m[k] = v
		}
		out.Extra = m
	}
	return out
}
