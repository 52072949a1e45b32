package auction

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/fantadev/asta/internal/events"
	"github.com/fantadev/asta/internal/models"
)

// Store is the auction ledger: the player pool, the teams and the single
// user-team selection. All mutation goes through the operations below; each
// either fully applies or leaves the ledger untouched. Business refusals
// (unknown id, budget shortfall) are reported as a false return, never as
// an error.
//
// The store is owned by the caller and guarded by a mutex so the HTTP
// gateway can serve concurrent requests; there is no package-level state.
type Store struct {
	mu         sync.RWMutex
	clock      clockwork.Clock
	sink       events.Publisher
	mode       models.AuctionMode
	teams      []models.Team
	players    []models.Player
	userTeamID *uuid.UUID
}

// Option configures a Store
type Option func(*Store)

// WithClock injects the clock used for event timestamps
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithPublisher sets the sink that receives one event per successful mutation
func WithPublisher(sink events.Publisher) Option {
	return func(s *Store) { s.sink = sink }
}

// NewStore creates an empty ledger in classic mode
func NewStore(opts ...Option) *Store {
	s := &Store{
		clock: clockwork.NewRealClock(),
		mode:  models.ModeClassic,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTeam creates a team with budget equal to initialBudget and an empty
// roster. When isUser is set the team becomes the user team, demoting any
// previous selection.
func (s *Store) AddTeam(name string, initialBudget int, isUser bool) models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := models.Team{
		ID:            uuid.New(),
		Name:          name,
		Budget:        initialBudget,
		InitialBudget: initialBudget,
		Players:       []models.Player{},
	}
	s.teams = append(s.teams, team)
	if isUser {
		id := team.ID
		s.userTeamID = &id
	}

	s.emit(events.TypeTeamAdded, events.TeamAddedPayload{
		TeamID:        team.ID.String(),
		Name:          name,
		InitialBudget: initialBudget,
		IsUserTeam:    isUser,
	})
	return s.teamOut(team)
}

// RenameTeam changes a team's display name
func (s *Store) RenameTeam(id uuid.UUID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teamByID(id)
	if t == nil {
		return false
	}
	t.Name = name

	s.emit(events.TypeTeamRenamed, events.TeamRenamedPayload{
		TeamID: id.String(),
		Name:   name,
	})
	return true
}

// SetUserTeam marks the given team as the user's team. The selection is a
// single nullable reference, so any previous user team is demoted
// implicitly.
func (s *Store) SetUserTeam(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.teamByID(id) == nil {
		return false
	}
	tid := id
	s.userTeamID = &tid

	s.emit(events.TypeUserTeamChanged, events.UserTeamChangedPayload{TeamID: id.String()})
	return true
}

// ClearUserTeam drops the user-team selection
func (s *Store) ClearUserTeam() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userTeamID == nil {
		return
	}
	s.userTeamID = nil
	s.emit(events.TypeUserTeamChanged, events.UserTeamChangedPayload{})
}

// RemoveTeam deletes a team. Every player the team still owns is unassigned
// first, so no player is left pointing at a team that no longer exists.
func (s *Store) RemoveTeam(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teamByID(id)
	if t == nil {
		return false
	}
	name := t.Name

	released := 0
	for _, owned := range t.Players {
		if p := s.playerByID(owned.ID); p != nil && p.AssignedTo != nil {
			p.Price = nil
			p.AssignedTo = nil
			released++
		}
	}

	for i := range s.teams {
		if s.teams[i].ID == id {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			break
		}
	}
	if s.userTeamID != nil && *s.userTeamID == id {
		s.userTeamID = nil
	}

	s.emit(events.TypeTeamRemoved, events.TeamRemovedPayload{
		TeamID:          id.String(),
		Name:            name,
		ReleasedPlayers: released,
	})
	return true
}

// ImportRoster replaces the whole player pool with freshly identified,
// unassigned players. Prior assignment state is discarded and nothing is
// preserved across the re-import: teams keep their rosters only until the
// next operation touches them, so callers normally reset or re-add teams
// around a re-import. A record without a name or without any role rejects
// the whole payload and leaves the pool untouched.
func (s *Store) ImportRoster(imports []models.PlayerImport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]models.Player, len(imports))
	for i, imp := range imports {
		if imp.Name == "" {
			return fmt.Errorf("player %d: missing name: %w", i, ErrInvalidPlayer)
		}
		if len(imp.Roles) == 0 {
			return fmt.Errorf("player %d (%s): missing role: %w", i, imp.Name, ErrInvalidPlayer)
		}
		players[i] = models.Player{
			ID:    uuid.New(),
			Name:  imp.Name,
			Club:  imp.Club,
			Roles: imp.Roles.Clone(),
			Extra: imp.Extra,
		}
	}
	s.players = players

	s.emit(events.TypeRosterImported, events.RosterImportedPayload{PlayerCount: len(players)})
	return nil
}

// Assign moves a player to a team at the given price. It refuses (ledger
// untouched) when the player or team is unknown or the team's budget is
// short. Price positivity is the caller's contract; the ledger only
// enforces budget sufficiency.
func (s *Store) Assign(playerID, teamID uuid.UUID, price int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerByID(playerID)
	t := s.teamByID(teamID)
	if p == nil || t == nil || t.Budget < price {
		return false
	}

	tid := t.ID
	p.Price = &price
	p.AssignedTo = &tid
	t.Budget -= price
	t.Players = append(t.Players, p.Clone())

	s.emit(events.TypePlayerAssigned, events.PlayerAssignedPayload{
		PlayerID:   p.ID.String(),
		PlayerName: p.Name,
		TeamID:     t.ID.String(),
		TeamName:   t.Name,
		Price:      price,
		BudgetLeft: t.Budget,
	})
	return true
}

// Unassign returns a player to the pool, refunding the recorded price to
// the owning team. It is a no-op for unknown, unassigned or priceless
// players.
func (s *Store) Unassign(playerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerByID(playerID)
	if p == nil || p.AssignedTo == nil || p.Price == nil {
		return false
	}
	t := s.teamByID(*p.AssignedTo)
	if t == nil {
		return false
	}

	refund := *p.Price
	t.Budget += refund
	for i := range t.Players {
		if t.Players[i].ID == playerID {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			break
		}
	}
	teamID := t.ID
	p.Price = nil
	p.AssignedTo = nil

	s.emit(events.TypePlayerUnassigned, events.PlayerUnassignedPayload{
		PlayerID:       p.ID.String(),
		PlayerName:     p.Name,
		TeamID:         teamID.String(),
		RefundedAmount: refund,
	})
	return true
}

// SetMode switches the active role vocabulary
func (s *Store) SetMode(mode models.AuctionMode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.Valid() {
		return false
	}
	s.mode = mode

	s.emit(events.TypeModeChanged, events.ModeChangedPayload{Mode: string(mode)})
	return true
}

// Reset wipes the ledger back to an empty classic-mode auction
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = models.ModeClassic
	s.teams = nil
	s.players = nil
	s.userTeamID = nil

	s.emit(events.TypeAuctionReset, events.AuctionResetPayload{})
}

// Restore replaces the whole ledger with the given record. The previous
// state is discarded, not merged. The record's per-team user flag is folded
// back into the store's single user-team reference; the first flagged team
// wins.
func (s *Store) Restore(rec *models.AuctionRecord) error {
	if rec == nil {
		return fmt.Errorf("restore: nil record")
	}
	mode := rec.Mode
	if mode == "" {
		mode = models.ModeClassic
	}
	if !mode.Valid() {
		return fmt.Errorf("restore: mode %q: %w", rec.Mode, ErrInvalidMode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := rec.Clone()
	s.mode = mode
	s.teams = clone.Teams
	s.players = clone.Players
	s.userTeamID = nil
	for i := range s.teams {
		if s.teams[i].IsUserTeam {
			id := s.teams[i].ID
			s.userTeamID = &id
			break
		}
	}
	// The per-team flag lives only in the portable record.
	for i := range s.teams {
		s.teams[i].IsUserTeam = false
	}

	s.emit(events.TypeStateRestored, events.StateRestoredPayload{
		Mode:        string(s.mode),
		TeamCount:   len(s.teams),
		PlayerCount: len(s.players),
	})
	return nil
}

// Snapshot returns a deep copy of the ledger as a portable record
func (s *Store) Snapshot() *models.AuctionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := &models.AuctionRecord{
		Mode:    s.mode,
		Teams:   make([]models.Team, len(s.teams)),
		Players: make([]models.Player, len(s.players)),
	}
	for i, t := range s.teams {
		rec.Teams[i] = s.teamOut(t)
	}
	for i, p := range s.players {
		rec.Players[i] = p.Clone()
	}
	return rec
}

// Mode returns the active auction mode
func (s *Store) Mode() models.AuctionMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Teams returns copies of all teams in creation order
func (s *Store) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Team, len(s.teams))
	for i, t := range s.teams {
		out[i] = s.teamOut(t)
	}
	return out
}

// Players returns copies of the whole player pool in import order
func (s *Store) Players() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Player, len(s.players))
	for i, p := range s.players {
		out[i] = p.Clone()
	}
	return out
}

// Team returns a copy of one team
func (s *Store) Team(id uuid.UUID) (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.teamByID(id); t != nil {
		return s.teamOut(*t), true
	}
	return models.Team{}, false
}

// Player returns a copy of one player
func (s *Store) Player(id uuid.UUID) (models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.playerByID(id); p != nil {
		return p.Clone(), true
	}
	return models.Player{}, false
}

// UserTeam returns a copy of the currently selected user team
func (s *Store) UserTeam() (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.userTeamID == nil {
		return models.Team{}, false
	}
	if t := s.teamByID(*s.userTeamID); t != nil {
		return s.teamOut(*t), true
	}
	return models.Team{}, false
}

func (s *Store) teamByID(id uuid.UUID) *models.Team {
	for i := range s.teams {
		if s.teams[i].ID == id {
			return &s.teams[i]
		}
	}
	return nil
}

func (s *Store) playerByID(id uuid.UUID) *models.Player {
	for i := range s.players {
		if s.players[i].ID == id {
			return &s.players[i]
		}
	}
	return nil
}

// teamOut copies a team for callers, deriving the serialized user flag from
// the store-level reference.
func (s *Store) teamOut(t models.Team) models.Team {
	out := t.Clone()
	out.IsUserTeam = s.userTeamID != nil && *s.userTeamID == t.ID
	return out
}

func (s *Store) emit(t events.Type, payload any) {
	if s.sink == nil {
		return
	}
	event, err := events.New(t, s.clock.Now(), payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(t)).Msg("build auction event")
		return
	}
	if err := s.sink.Publish(context.Background(), event); err != nil {
		log.Error().Err(err).Str("event_type", string(t)).Msg("publish auction event")
	}
}
