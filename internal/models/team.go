package models

import "github.com/google/uuid"

// Team is one auction participant. Budget always equals InitialBudget minus
// the sum of the prices of the currently owned players; the ledger maintains
// Players in lockstep with each Player's AssignedTo reference.
type Team struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Budget        int       `json:"budget"`
	InitialBudget int       `json:"initialBudget"`
	IsUserTeam    bool      `json:"isUserTeam"`
	Players       []Player  `json:"players"`
}

// Spent returns the budget consumed so far
func (t *Team) Spent() int {
	return t.InitialBudget - t.Budget
}

// Clone returns a deep copy of the team and its owned players
func (t Team) Clone() Team {
	out := t
	out.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		out.Players[i] = p.Clone()
	}
	return out
}
