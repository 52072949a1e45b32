package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope for every ledger change notification
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Type identifies the kind of ledger change an event describes
type Type string

const (
	TypeTeamAdded        Type = "TeamAdded"
	TypeTeamRenamed      Type = "TeamRenamed"
	TypeTeamRemoved      Type = "TeamRemoved"
	TypeUserTeamChanged  Type = "UserTeamChanged"
	TypePlayerAssigned   Type = "PlayerAssigned"
	TypePlayerUnassigned Type = "PlayerUnassigned"
	TypeRosterImported   Type = "RosterImported"
	TypeModeChanged      Type = "ModeChanged"
	TypeAuctionReset     Type = "AuctionReset"
	TypeStateRestored    Type = "StateRestored"
)

// New builds an event envelope around the given payload
func New(t Type, at time.Time, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:        uuid.New(),
		Type:      t,
		Timestamp: at,
		Data:      data,
	}, nil
}

// ParsePayload decodes an event's data into its typed payload struct.
// Unknown event types yield a nil payload.
func ParsePayload(event *Event) (interface{}, error) {
	switch event.Type {
	case TypeTeamAdded:
		var payload TeamAddedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypeTeamRenamed:
		var payload TeamRenamedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypeTeamRemoved:
		var payload TeamRemovedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypeUserTeamChanged:
		var payload UserTeamChangedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypePlayerAssigned:
		var payload PlayerAssignedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypePlayerUnassigned:
		var payload PlayerUnassignedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypeRosterImported:
		var payload RosterImportedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypeModeChanged:
		var payload ModeChangedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypeAuctionReset:
		var payload AuctionResetPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case TypeStateRestored:
		var payload StateRestoredPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil
	}
}
