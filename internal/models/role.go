package models

// AuctionMode selects which role vocabulary is active for import and analysis
type AuctionMode string

const (
	ModeClassic AuctionMode = "classic"
	ModeMantra  AuctionMode = "mantra"
)

// Valid reports whether m is one of the known auction modes
func (m AuctionMode) Valid() bool {
	return m == ModeClassic || m == ModeMantra
}

// Role is a positional eligibility code. Classic mode uses the coarse
// four-code vocabulary, mantra mode the fine-grained twelve-code one.
type Role string

const (
	RoleP  Role = "P"  // portiere
	RoleD  Role = "D"  // difensore (classic only)
	RoleDS Role = "DS" // difensore sinistro
	RoleDC Role = "DC" // difensore centrale
	RoleDD Role = "DD" // difensore destro
	RoleB  Role = "B"  // braccetto
	RoleE  Role = "E"  // esterno
	RoleM  Role = "M"  // mediano
	RoleC  Role = "C"  // centrocampista
	RoleW  Role = "W"  // ala
	RoleT  Role = "T"  // trequartista
	RoleA  Role = "A"  // attaccante
	RolePC Role = "PC" // punta centrale
)

// ClassicRoles is the coarse vocabulary, in display order
var ClassicRoles = []Role{RoleP, RoleD, RoleC, RoleA}

// MantraRoles is the fine-grained vocabulary, in display order
var MantraRoles = []Role{
	RoleP, RoleDS, RoleDC, RoleDD, RoleB, RoleE,
	RoleM, RoleC, RoleW, RoleT, RoleA, RolePC,
}

// RolesForMode returns the vocabulary active under the given mode
func RolesForMode(mode AuctionMode) []Role {
	if mode == ModeMantra {
		return MantraRoles
	}
	return ClassicRoles
}

// ValidRole reports whether role belongs to the vocabulary of mode
func ValidRole(mode AuctionMode, role Role) bool {
	for _, r := range RolesForMode(mode) {
		if r == role {
			return true
		}
	}
	return false
}
