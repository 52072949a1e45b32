package formation

import (
	"strings"

	"github.com/fantadev/asta/internal/models"
)

// Slot is one positional opening: an ordered list of acceptable roles. A
// player eligible for any one of them satisfies the slot; a single-element
// slot is a required role.
type Slot []models.Role

// String renders the slot as a slash-joined label, e.g. "DC/DD"
func (s Slot) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = string(r)
	}
	return strings.Join(parts, "/")
}

// Formation is a named, ordered sequence of slots
type Formation struct {
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// mantraCatalog is the fixed set of known mantra tactical modules. Order is
// presentation order; it is not configurable at runtime.
var mantraCatalog = []Formation{
	{Name: "3-4-3", Slots: []Slot{{"P"}, {"DS"}, {"DC"}, {"DD"}, {"E"}, {"M"}, {"C"}, {"B"}, {"W"}, {"T"}, {"A"}}},
	{Name: "4-3-3", Slots: []Slot{{"P"}, {"DS"}, {"DC"}, {"DC"}, {"DD"}, {"M"}, {"C"}, {"B"}, {"W"}, {"T"}, {"A"}}},
	{Name: "3-5-2", Slots: []Slot{{"P"}, {"DS"}, {"DC"}, {"DD"}, {"E"}, {"M"}, {"C"}, {"B"}, {"W"}, {"T"}, {"A"}}},
	{Name: "4-4-2", Slots: []Slot{{"P"}, {"DS"}, {"DC"}, {"DC"}, {"DD"}, {"E"}, {"M"}, {"C"}, {"B"}, {"T"}, {"A"}}},
	{Name: "4-3-1-2", Slots: []Slot{{"P"}, {"DS"}, {"DC"}, {"DC"}, {"DD"}, {"M"}, {"M", "C"}, {"C"}, {"T"}, {"A"}, {"A", "PC"}}},
	{Name: "3-4-1-2", Slots: []Slot{{"P"}, {"DS"}, {"DC"}, {"DD"}, {"E"}, {"M"}, {"C"}, {"B"}, {"W", "T"}, {"A"}, {"A", "PC"}}},
}

// Catalog returns the known mantra formations in catalog order
func Catalog() []Formation {
	out := make([]Formation, len(mantraCatalog))
	copy(out, mantraCatalog)
	return out
}
