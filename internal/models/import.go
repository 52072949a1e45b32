package models

import "encoding/json"

// PlayerImport is one record of a listone payload. The role field accepts a
// scalar or a sequence; fields beyond name/team/role end up in Extra and
// flow through to the created Player.
type PlayerImport struct {
	Name  string
	Club  string
	Roles RoleList
	Extra map[string]json.RawMessage
}

type playerImportJSON struct {
	Name  string   `json:"name"`
	Club  string   `json:"team"`
	Roles RoleList `json:"role"`
}

func (pi *PlayerImport) UnmarshalJSON(data []byte) error {
	var pj playerImportJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "name")
	delete(raw, "team")
	delete(raw, "role")

	pi.Name = pj.Name
	pi.Club = pj.Club
	pi.Roles = pj.Roles
	pi.Extra = nil
	if len(raw) > 0 {
		pi.Extra = raw
	}
	return nil
}
