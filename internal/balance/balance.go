package balance

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/forgo/guildhall/internal/model"
)

// DefaultMinCapacity is the smallest capacity that lets a guild hold one player
// of each macro-role.
const DefaultMinCapacity = 3

var (
	ErrInvalidCapacity           = errors.New("max guild players below minimum")
	ErrInsufficientGuilds        = errors.New("guilds not found")
	ErrInsufficientClassCoverage = errors.New("not enough players in each class to distribute to the guilds")
)

// CapacityError is returned when the requested capacity is below the minimum.
// It matches ErrInvalidCapacity with errors.Is.
type CapacityError struct {
	Capacity int
	Minimum  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d < %d", ErrInvalidCapacity, e.Capacity, e.Minimum)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrInvalidCapacity
}

// Config holds engine settings
type Config struct {
	MinCapacity int // defaults to DefaultMinCapacity when zero
}

// Engine computes guild assignments for unassigned players.
// It is stateless between calls and safe for concurrent use.
type Engine struct {
	minCapacity int
}

// New creates an engine
func New(cfg Config) *Engine {
	minCapacity := cfg.MinCapacity
	if minCapacity <= 0 {
		minCapacity = DefaultMinCapacity
	}
	return &Engine{minCapacity: minCapacity}
}

// MinCapacity returns the smallest capacity Balance accepts
func (e *Engine) MinCapacity() int {
	return e.minCapacity
}

// Result is the outcome of a balancing run
type Result struct {
	Assignments []model.Assignment
	// Skipped holds candidates for which no guild had free capacity
	Skipped []*model.Player
}

// Balance assigns every unassigned candidate to a guild, one candidate at a time
// in input order. Guilds missing the candidate's class are preferred, then the
// guild with the lowest experience load; ties keep snapshot order.
//
// The snapshot is never modified. Decisions are computed against it as a point in
// time, so callers must serialize balancing runs and the application of their
// results against the same guilds.
func (e *Engine) Balance(guilds []*model.Guild, candidates []*model.Player, capacity int) (*Result, error) {
	if capacity < e.minCapacity {
		return nil, &CapacityError{Capacity: capacity, Minimum: e.minCapacity}
	}
	if len(guilds) == 0 {
		return nil, ErrInsufficientGuilds
	}

	slots := newSlots(guilds)
	unassigned := filterUnassigned(candidates, guilds)

	result := &Result{Assignments: make([]model.Assignment, 0, len(unassigned))}
	if len(unassigned) == 0 {
		return result, nil
	}

	// Checked once against the initial pool. Placements made below do not
	// re-trigger it, even if a later guild ends up short of a role.
	if err := checkCoverage(unassigned, len(guilds)); err != nil {
		return nil, err
	}

	for _, p := range unassigned {
		eligible := make([]*slot, 0, len(slots))
		for _, s := range slots {
			if s.members < capacity {
				eligible = append(eligible, s)
			}
		}
		if len(eligible) == 0 {
			result.Skipped = append(result.Skipped, p)
			continue
		}

		target := rank(eligible, p.Class)[0]
		target.add(p)
		result.Assignments = append(result.Assignments, model.Assignment{
			PlayerID: p.ID,
			GuildID:  target.guildID,
		})
	}

	return result, nil
}

// ResetAll returns one decision per player clearing its guild reference
func ResetAll(players []*model.Player) []model.Assignment {
	out := make([]model.Assignment, 0, len(players))
	for _, p := range players {
		out = append(out, model.Assignment{PlayerID: p.ID})
	}
	return out
}

// filterUnassigned keeps candidates with no guild reference, in input order.
// Candidates already listed on a roster and repeated ids are dropped.
func filterUnassigned(candidates []*model.Player, guilds []*model.Guild) []*model.Player {
	rostered := make(map[string]struct{})
	for _, g := range guilds {
		for i := range g.Members {
			rostered[g.Members[i].ID] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]*model.Player, 0, len(candidates))
	for _, p := range candidates {
		if p == nil || p.HasGuild() {
			continue
		}
		if _, ok := rostered[p.ID]; ok {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// checkCoverage requires at least one candidate per guild for every macro-role
func checkCoverage(pool []*model.Player, guildCount int) error {
	counts := make(map[model.Role]int, len(model.AllRoles))
	for _, p := range pool {
		counts[p.Class.Role()]++
	}
	for _, role := range model.AllRoles {
		if counts[role] < guildCount {
			return fmt.Errorf("%w: %d %s players for %d guilds", ErrInsufficientClassCoverage, counts[role], role, guildCount)
		}
	}
	return nil
}

// slot is the working copy of one guild during a run
type slot struct {
	guildID string
	members int
	load    int
	classes map[model.PlayerClass]struct{}
}

func newSlots(guilds []*model.Guild) []*slot {
	slots := make([]*slot, 0, len(guilds))
	for _, g := range guilds {
		s := &slot{
			guildID: g.ID,
			members: len(g.Members),
			classes: make(map[model.PlayerClass]struct{}),
		}
		for i := range g.Members {
			s.load += g.Members[i].Experience
			s.classes[g.Members[i].Class] = struct{}{}
		}
		slots = append(slots, s)
	}
	return slots
}

func (s *slot) add(p *model.Player) {
	s.members++
	s.load += p.Experience
	s.classes[p.Class] = struct{}{}
}

func (s *slot) has(class model.PlayerClass) bool {
	_, ok := s.classes[class]
	return ok
}

// rankKey orders guilds for one candidate: class need first, then load
type rankKey struct {
	covered int // 0 when the guild lacks the class
	load    int
}

func keyFor(s *slot, class model.PlayerClass) rankKey {
	k := rankKey{load: s.load}
	if s.has(class) {
		k.covered = 1
	}
	return k
}

func compareKeys(a, b rankKey) int {
	if c := cmp.Compare(a.covered, b.covered); c != 0 {
		return c
	}
	return cmp.Compare(a.load, b.load)
}

// rank sorts slots in place for the given class, stable on equal keys
func rank(slots []*slot, class model.PlayerClass) []*slot {
	slices.SortStableFunc(slots, func(a, b *slot) int {
		return compareKeys(keyFor(a, class), keyFor(b, class))
	})
	return slots
}
