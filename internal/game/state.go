package game

import (
	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
	"hoopsim/internal/game/prng"
)

// GameState is the single mutable object the core operates on. Every
// module that needs randomness reaches it through GameState.RNG; no
// package-level mutable state exists anywhere in this package, so two
// GameStates never interfere with each other.
type GameState struct {
	Seed uint32
	RNG  *prng.Stream

	Players [10]*SimPlayer // 0-4 team 0, 5-9 team 1
	Teams   [2]*Team
	Ball    *Ball

	Phase      Phase
	PhaseTicks int
	GameTime   float64

	Quarter   int
	GameClock float64
	ShotClock float64

	Possession int
	Score      [2]int
	BoxScore   [10]PlayerBoxScore

	Slots          map[court.Slot]int
	Roles          map[int]OffenseRole
	DefAssignments map[int]int

	CurrentPlay *Play
	CurrentStep int
	StepTimer   float64

	LastPassFrom int
	LastPassTime float64

	// LastDecisionTime is the GameTime of the last full read-and-react
	// evaluation; RunDecisionEngine's rules 3-9 are skipped until
	// decisionTickInterval has elapsed since this.
	LastDecisionTime float64

	DribbleTime      float64
	CrossedHalfCourt bool
	AdvanceClock     float64
	PossessionStage  PossessionStage

	FreeThrows  *FreeThrows
	PendingShot *ShotOutcome

	GameStarted bool
	GameOver    bool
	Turnover    bool

	Tick300Counter int
	TickCount      uint64

	EventLog *EventLog
}

// InitGameState constructs the starting state: 5 starters per team
// arranged near midcourt, ball at center, possession 0, phase jumpball,
// scores 0-0, default tactics (motion/man). seed is a 32-bit integer; the
// engine uses it alone as its sole source of non-determinism.
func InitGameState(seed uint32, home, away *Team) *GameState {
	g := &GameState{
		Seed:             seed,
		RNG:              prng.New(seed),
		Teams:            [2]*Team{home, away},
		Quarter:          1,
		GameClock:        quarterSeconds,
		ShotClock:        shotClockFull,
		Possession:       0,
		LastPassFrom:     -1,
		LastDecisionTime: -decisionTickInterval,

		Slots:          make(map[court.Slot]int),
		Roles:          make(map[int]OffenseRole),
		DefAssignments: make(map[int]int),

		EventLog: NewEventLog(),
	}

	mid := geom.Vec2{X: court.Width / 2, Y: court.Height / 2}
	rosters := [2][5]*Player{home.Roster, away.Roster}
	for team := 0; team < 2; team++ {
		for i := 0; i < 5; i++ {
			idx := team*5 + i
			spawn := mid.Add(geom.Vec2{X: float64(team*2-1) * 10, Y: float64(i-2) * 4})
			g.Players[idx] = NewSimPlayer(team, i, rosters[team][i], spawn)
		}
	}

	g.Ball = NewBall(mid)
	setPhase(g, PhaseJumpball)
	return g
}
