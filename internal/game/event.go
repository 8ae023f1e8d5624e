package game

import (
	"encoding/json"
	"time"
)

// EventType enum for play-by-play classification.
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // tick boundary with RNG seed, for replay
	EventTypeShotAttempt
	EventTypeMake
	EventTypeMiss
	EventTypeRebound
	EventTypeSteal
	EventTypeTurnover
	EventTypeFoul
	EventTypeFreeThrow
	EventTypeJumpBall
	EventTypePeriodMarker
)

// EventVersion for backwards compatibility in replay.
const EventVersion uint8 = 1

// Event is the core play-by-play log entry.
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Sequence  uint64    `json:"sequence"`
	TickNum   uint64    `json:"tickNum"`
	PlayerID  string    `json:"playerId"` // source player, for rate limiting
	Payload   []byte    `json:"payload"`
}

// String returns a human-readable event type name.
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeShotAttempt:
		return "shot_attempt"
	case EventTypeMake:
		return "make"
	case EventTypeMiss:
		return "miss"
	case EventTypeRebound:
		return "rebound"
	case EventTypeSteal:
		return "steal"
	case EventTypeTurnover:
		return "turnover"
	case EventTypeFoul:
		return "foul"
	case EventTypeFreeThrow:
		return "free_throw"
	case EventTypeJumpBall:
		return "jump_ball"
	case EventTypePeriodMarker:
		return "period_marker"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types.

// TickPayload records tick boundary info for replay.
type TickPayload struct {
	RNGSeed     uint32 `json:"rngSeed"`
	Quarter     int    `json:"quarter"`
	DeltaTimeNs int64  `json:"deltaTimeNs"`
}

// ShotAttemptPayload records a shot release: distance and contest tag.
type ShotAttemptPayload struct {
	ShooterID string  `json:"shooterId"`
	Distance  float64 `json:"distance"`
	ContestTag string `json:"contestTag"` // "open", "contested", "tight"
	Quarter   int     `json:"quarter"`
	ScoreHome int     `json:"scoreHome"`
	ScoreAway int     `json:"scoreAway"`
}

// MakePayload records a made shot: points scored and whether it was an
// and-one.
type MakePayload struct {
	ShooterID string `json:"shooterId"`
	Points    int    `json:"points"`
	AndOne    bool   `json:"andOne"`
	Quarter   int    `json:"quarter"`
	ScoreHome int    `json:"scoreHome"`
	ScoreAway int    `json:"scoreAway"`
}

// MissPayload records a missed shot: airball, rim_out, back_iron, or front_rim.
type MissPayload struct {
	ShooterID string `json:"shooterId"`
	MissType  string `json:"missType"`
	Fouled    bool   `json:"fouled"`
	Quarter   int    `json:"quarter"`
}

// ReboundPayload records a rebound, offensive or defensive.
type ReboundPayload struct {
	RebounderID string `json:"rebounderId"`
	Offensive   bool   `json:"offensive"`
	Quarter     int    `json:"quarter"`
}

// StealPayload records a steal.
type StealPayload struct {
	StealerID string `json:"stealerId"`
	VictimID  string `json:"victimId"`
	Quarter   int    `json:"quarter"`
}

// TurnoverPayload records a turnover (violation or steal).
type TurnoverPayload struct {
	PlayerID string `json:"playerId"`
	Reason   string `json:"reason"` // "shot_clock", "backcourt", "8_second", "steal"
	Quarter  int    `json:"quarter"`
}

// FoulPayload records a shooting foul: whether it was an and-one, and how
// many free throws result.
type FoulPayload struct {
	FoulerID  string `json:"foulerId"`
	ShooterID string `json:"shooterId"`
	AndOne    bool   `json:"andOne"`
	Attempts  int    `json:"attempts"`
	Quarter   int    `json:"quarter"`
}

// FreeThrowPayload records one free-throw attempt.
type FreeThrowPayload struct {
	ShooterID string `json:"shooterId"`
	Made      bool   `json:"made"`
	Remaining int    `json:"remaining"`
	Quarter   int    `json:"quarter"`
}

// JumpBallPayload records the opening tip result.
type JumpBallPayload struct {
	WinnerTeam int `json:"winnerTeam"`
}

// PeriodMarkerPayload records a quarter boundary.
type PeriodMarkerPayload struct {
	Quarter   int `json:"quarter"`
	ScoreHome int `json:"scoreHome"`
	ScoreAway int `json:"scoreAway"`
}

// EncodePayload marshals a payload to JSON bytes.
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// logPlayByPlay appends one event to g's log, if a log is attached.
func logPlayByPlay(g *GameState, eventType EventType, playerID string, payload interface{}) {
	if g.EventLog == nil {
		return
	}
	g.EventLog.EmitSimple(eventType, g.TickCount, playerID, payload)
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType EventType, tickNum uint64, playerID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		PlayerID:  playerID,
		Payload:   EncodePayload(payload),
	}
}
