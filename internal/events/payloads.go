package events

// TeamAddedPayload is the payload for a TeamAdded event
type TeamAddedPayload struct {
	TeamID        string `json:"team_id"`
	Name          string `json:"name"`
	InitialBudget int    `json:"initial_budget"`
	IsUserTeam    bool   `json:"is_user_team"`
}

// TeamRenamedPayload is the payload for a TeamRenamed event
type TeamRenamedPayload struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

// TeamRemovedPayload is the payload for a TeamRemoved event
type TeamRemovedPayload struct {
	TeamID          string `json:"team_id"`
	Name            string `json:"name"`
	ReleasedPlayers int    `json:"released_players"`
}

// UserTeamChangedPayload is the payload for a UserTeamChanged event. TeamID
// is empty when the user-team selection was cleared.
type UserTeamChangedPayload struct {
	TeamID string `json:"team_id"`
}

// PlayerAssignedPayload is the payload for a PlayerAssigned event
type PlayerAssignedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	Price      int    `json:"price"`
	BudgetLeft int    `json:"budget_left"`
}

// PlayerUnassignedPayload is the payload for a PlayerUnassigned event
type PlayerUnassignedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	TeamID         string `json:"team_id"`
	RefundedAmount int    `json:"refunded_amount"`
}

// RosterImportedPayload is the payload for a RosterImported event
type RosterImportedPayload struct {
	PlayerCount int `json:"player_count"`
}

// ModeChangedPayload is the payload for a ModeChanged event
type ModeChangedPayload struct {
	Mode string `json:"mode"`
}

// AuctionResetPayload is the payload for an AuctionReset event
type AuctionResetPayload struct{}

// StateRestoredPayload is the payload for a StateRestored event
type StateRestoredPayload struct {
	Mode        string `json:"mode"`
	TeamCount   int    `json:"team_count"`
	PlayerCount int    `json:"player_count"`
}
