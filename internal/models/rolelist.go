package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RoleList is a player's set of eligible roles. Historic exports stored the
// role field sometimes as a scalar and sometimes as a sequence; unmarshaling
// accepts both shapes and normalizes to a sequence. Marshaling always emits
// a sequence.
type RoleList []Role

func (rl *RoleList) UnmarshalJSON(data []byte) error {
	var many []Role
	if err := json.Unmarshal(data, &many); err == nil {
		*rl = many
		return nil
	}

	var one Role
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("role must be a string or a list of strings")
	}
	*rl = RoleList{one}
	return nil
}

// Has reports whether the list contains role
func (rl RoleList) Has(role Role) bool {
	for _, r := range rl {
		if r == role {
			return true
		}
	}
	return false
}

// String renders the list as a slash-joined descriptor, e.g. "DC/DD"
func (rl RoleList) String() string {
	parts := make([]string, len(rl))
	for i, r := range rl {
		parts[i] = string(r)
	}
	return strings.Join(parts, "/")
}

// Clone returns an independent copy of the list
func (rl RoleList) Clone() RoleList {
	if rl == nil {
		return nil
	}
	out := make(RoleList, len(rl))
	copy(out, rl)
	return out
}
