package battle

import (
	"fmt"
	"math/rand"
	"strings"
)

// UnitSpec is the external unit/equipment data a session consumes at setup.
type UnitSpec struct {
	Name      string
	Archetype string
	MaxHP     int
	MaxSanity int
	Accuracy  int
	Will      int
	Move      float64
	Weapon    Weapon
	Targeting TargetRule
	Deck      []Card // personal deck composition; nil = draw from shared deck
}

// sessionOptionKind controls the pass in which an option is applied.
type sessionOptionKind int

const (
	optInfra   sessionOptionKind = iota // grid size, seed, decks: applied first
	optTerrain                          // terrain placement, needs the grid
	optUnit                             // unit placement, needs terrain
	optQueue                            // turn-order overrides, applied last
)

// SessionOption is a builder function applied to a Session during construction.
type SessionOption struct {
	kind sessionOptionKind
	fn   func(*Session) error
}

// WithGridSize sets the battlefield dimensions. Default is 10x10.
func WithGridSize(cols, rows int) SessionOption {
	return SessionOption{optInfra, func(s *Session) error {
		s.cols, s.rows = cols, rows
		return nil
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SessionOption {
	return SessionOption{optInfra, func(s *Session) error {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
		return nil
	}}
}

// WithRand injects a prepared RNG; tests use this to script rolls.
func WithRand(rng *rand.Rand) SessionOption {
	return SessionOption{optInfra, func(s *Session) error {
		s.rng = rng
		return nil
	}}
}

// WithSharedDeckCards replaces the shared opponent deck composition.
func WithSharedDeckCards(cards []Card) SessionOption {
	return SessionOption{optInfra, func(s *Session) error {
		s.sharedCards = cards
		return nil
	}}
}

// WithTerrain sets the terrain of one tile.
func WithTerrain(x, y int, t Terrain) SessionOption {
	return SessionOption{optTerrain, func(s *Session) error {
		s.Grid.SetTerrain(x, y, t)
		return nil
	}}
}

// WithPlayerUnit adds a player-controlled unit at (x, y).
func WithPlayerUnit(spec UnitSpec, x, y int) SessionOption {
	return SessionOption{optUnit, func(s *Session) error {
		return s.addUnit(TeamPlayer, spec, x, y)
	}}
}

// WithOpponentUnit adds an AI-controlled unit at (x, y).
func WithOpponentUnit(spec UnitSpec, x, y int) SessionOption {
	return SessionOption{optUnit, func(s *Session) error {
		return s.addUnit(TeamOpponent, spec, x, y)
	}}
}

// WithTurnOrder fixes the turn queue to the given creation-order indices,
// replacing the default pseudo-random permutation.
func WithTurnOrder(ids ...UnitID) SessionOption {
	return SessionOption{optQueue, func(s *Session) error {
		for _, id := range ids {
			if s.UnitByID(id) == nil {
				return fmt.Errorf("turn order references unknown unit %d", id)
			}
		}
		s.fixedOrder = ids
		return nil
	}}
}

// WithInitiativeByWill orders the queue by effective will, highest first,
// instead of the random permutation. Creation order breaks ties.
func WithInitiativeByWill() SessionOption {
	return SessionOption{optQueue, func(s *Session) error {
		s.initiativeByWill = true
		return nil
	}}
}

// Session is one battle: it exclusively owns the grid, the units, the decks,
// the RNG, and the scheduler. Sessions are single-threaded and
// turn-synchronous; a fixed seed reproduces a battle exactly.
type Session struct {
	Grid  *Grid
	Units []*Unit // creation order
	Log   *BattleLog

	rng         *rand.Rand
	sharedDeck  *Deck
	resolver    *Resolver
	sched       *Scheduler
	nextID      UnitID
	cols, rows  int
	sharedCards []Card
	fixedOrder  []UnitID

	initiativeByWill bool
}

// NewSession constructs a battle from the given options in ordered passes:
// infrastructure, grid, terrain, units, queue, scheduler. The only
// construction failure is a configuration fault (empty deck, bad placement,
// bad turn order), which must surface here, never mid-battle.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		Log:         NewBattleLog(),
		rng:         rand.New(rand.NewSource(1)), // #nosec G404 -- game only
		cols:        10,
		rows:        10,
		sharedCards: StandardComposition(),
	}
	for _, o := range opts {
		if o.kind == optInfra {
			if err := o.fn(s); err != nil {
				return nil, err
			}
		}
	}

	s.Grid = NewGrid(s.cols, s.rows)
	for _, o := range opts {
		if o.kind == optTerrain {
			if err := o.fn(s); err != nil {
				return nil, err
			}
		}
	}

	shared, err := NewDeck(s.sharedCards, s.rng)
	if err != nil {
		return nil, fmt.Errorf("shared deck: %w", err)
	}
	s.sharedDeck = shared

	for _, o := range opts {
		if o.kind == optUnit {
			if err := o.fn(s); err != nil {
				return nil, err
			}
		}
	}
	for _, o := range opts {
		if o.kind == optQueue {
			if err := o.fn(s); err != nil {
				return nil, err
			}
		}
	}

	var queue *TurnQueue
	if s.fixedOrder != nil {
		queue = NewOrderedTurnQueue(s.fixedOrder)
	} else {
		queue = NewTurnQueue(s.Units, s.rng)
	}
	if s.initiativeByWill {
		queue.SortBy(func(a, b UnitID) bool {
			ua, ub := s.UnitByID(a), s.UnitByID(b)
			return ua.EffectiveWill() > ub.EffectiveWill()
		})
	}

	s.resolver = NewResolver(s.Grid, s.rng, s.sharedDeck)
	s.sched = NewScheduler(s.Grid, s.Units, queue, s.resolver, s.Log)
	return s, nil
}

func (s *Session) addUnit(team Team, spec UnitSpec, x, y int) error {
	u := &Unit{
		ID:         s.nextID,
		Name:       spec.Name,
		Team:       team,
		Archetype:  spec.Archetype,
		HP:         spec.MaxHP,
		MaxHP:      spec.MaxHP,
		Sanity:     spec.MaxSanity,
		MaxSanity:  spec.MaxSanity,
		Accuracy:   spec.Accuracy,
		Will:       spec.Will,
		MoveBudget: spec.Move,
		MaxAP:      defaultMaxAP,
		Weapon:     spec.Weapon,
		Targeting:  spec.Targeting,
	}
	if spec.Deck != nil {
		d, err := NewDeck(spec.Deck, s.rng)
		if err != nil {
			return fmt.Errorf("unit %s deck: %w", spec.Name, err)
		}
		u.SetDeck(d)
	} else if team == TeamPlayer {
		d, err := NewDeck(StandardComposition(), s.rng)
		if err != nil {
			return err
		}
		u.SetDeck(d)
	}
	if block := s.Grid.PlaceUnit(u, x, y); block != MoveOK {
		return fmt.Errorf("cannot place unit %s at (%d,%d): %s", spec.Name, x, y, block)
	}
	s.nextID++
	s.Units = append(s.Units, u)
	return nil
}

// Start begins the battle loop.
func (s *Session) Start() { s.sched.Start() }

// Advance steps the scheduler; see Scheduler.Advance.
func (s *Session) Advance() { s.sched.Advance() }

// AttemptMove forwards a player movement command to the scheduler.
func (s *Session) AttemptMove(dest Point) MoveResult { return s.sched.AttemptMove(dest) }

// AttemptAttack forwards a player attack command to the scheduler.
func (s *Session) AttemptAttack(target UnitID) AttackResult { return s.sched.AttemptAttack(target) }

// EndTurn forwards a player end-turn command to the scheduler.
func (s *Session) EndTurn() { s.sched.EndTurn() }

// State returns the scheduler state name.
func (s *Session) State() string { return s.sched.State() }

// Outcome returns the terminal result, OutcomeNone while the battle runs.
func (s *Session) Outcome() Outcome { return s.sched.Outcome() }

// Round returns the current round counter.
func (s *Session) Round() int { return s.sched.Round() }

// ActiveUnit returns the unit whose turn it is, or nil.
func (s *Session) ActiveUnit() *Unit { return s.sched.ActiveUnit() }

// UnitByID returns the unit with the given id, or nil.
func (s *Session) UnitByID(id UnitID) *Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Resolver exposes the combat resolver for previews.
func (s *Session) Resolver() *Resolver { return s.resolver }

// Scheduler exposes the turn scheduler.
func (s *Session) Scheduler() *Scheduler { return s.sched }

// SharedDeck returns the opponent team's shared card deck.
func (s *Session) SharedDeck() *Deck { return s.sharedDeck }

// Report returns a human-readable battle summary.
func (s *Session) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Battle report: round %d, state %s ---\n", s.Round(), s.State())
	for _, u := range s.Units {
		status := "up"
		if u.IsIncapacitated() {
			status = "down"
		}
		fmt.Fprintf(&sb, "%-4s %-16s %-8s hp %d/%d  sanity %d/%d  (%d,%d)  %s\n",
			u.Label(), u.Name, u.Team, u.HP, u.MaxHP, u.Sanity, u.MaxSanity,
			u.Pos.X, u.Pos.Y, status)
	}
	if s.Outcome() != OutcomeNone {
		fmt.Fprintf(&sb, "outcome: %s\n", s.Outcome())
	}
	hits := s.Log.CountCategory("combat", "attack_hit")
	misses := s.Log.CountCategory("combat", "attack_miss")
	fmt.Fprintf(&sb, "attacks: %d hits, %d misses\n", hits, misses)
	return sb.String()
}
