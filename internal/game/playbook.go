package game

import (
	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

// RoleActionKind tags a RoleAction variant.
type RoleActionKind int

const (
	ActionMoveTo RoleActionKind = iota
	ActionScreen
	ActionCut
	ActionDrive
	ActionHold
	ActionPostUp
	ActionPop
	ActionRoll
	ActionRelocate
	ActionPassTo
	ActionShootIfOpen
	ActionReadAndReact
	ActionCallForBall
	ActionEntryPass
)

// DriveDirection is the lateral bias of a drive RoleAction.
type DriveDirection int

const (
	DriveLeft DriveDirection = iota
	DriveRight
	DriveBaseline
)

// RoleAction is a tagged union: only the fields relevant to Kind are
// populated by a given instance.
type RoleAction struct {
	Kind       RoleActionKind
	Slot       court.Slot      // moveTo, pop
	FromSlot   court.Slot      // cut
	ToSlot     court.Slot      // cut
	TargetRole OffenseRole     // screen, passTo, entryPass
	Dir        DriveDirection  // drive
}

// TriggerKind is a PlayStep's advancement condition.
type TriggerKind int

const (
	TriggerTime TriggerKind = iota
	TriggerPass
	TriggerPosition
)

// PlayStep is one beat of a Play: a duration/trigger pair and the
// RoleAction each offensive role performs during the step.
type PlayStep struct {
	Duration  float64
	Trigger   TriggerKind
	Predicate func(*GameState) bool
	Actions   map[OffenseRole]RoleAction
}

// Play is a named ordered sequence of PlayStep. Plays are static
// values; GameState references the active one by name and step index.
type Play struct {
	Name  string
	Steps []PlayStep
}

// maxStepDuration is the safety cap that terminates any step regardless of
// trigger.
const maxStepDuration = 5.0

func moveTo(slot court.Slot) RoleAction     { return RoleAction{Kind: ActionMoveTo, Slot: slot} }
func screenOn(role OffenseRole) RoleAction  { return RoleAction{Kind: ActionScreen, TargetRole: role} }
func cut(from, to court.Slot) RoleAction    { return RoleAction{Kind: ActionCut, FromSlot: from, ToSlot: to} }
func drive(dir DriveDirection) RoleAction   { return RoleAction{Kind: ActionDrive, Dir: dir} }
func hold() RoleAction                      { return RoleAction{Kind: ActionHold} }
func postUpAction() RoleAction              { return RoleAction{Kind: ActionPostUp} }
func pop(slot court.Slot) RoleAction        { return RoleAction{Kind: ActionPop, Slot: slot} }
func roll() RoleAction                      { return RoleAction{Kind: ActionRoll} }
func relocate() RoleAction                  { return RoleAction{Kind: ActionRelocate} }
func passTo(role OffenseRole) RoleAction    { return RoleAction{Kind: ActionPassTo, TargetRole: role} }
func shootIfOpen() RoleAction               { return RoleAction{Kind: ActionShootIfOpen} }
func readAndReact() RoleAction              { return RoleAction{Kind: ActionReadAndReact} }
func callForBall() RoleAction               { return RoleAction{Kind: ActionCallForBall} }
func entryPass(role OffenseRole) RoleAction { return RoleAction{Kind: ActionEntryPass, TargetRole: role} }

// playbook is the library of named plays. Built once at package init;
// Plays are read-only after construction.
var playbook = map[string]*Play{
	"Horns PnR": {
		Name: "Horns PnR",
		Steps: []PlayStep{
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.TopKey),
				RoleScreener:    moveTo(court.LeftElbow),
				RolePostUp:      moveTo(court.RightElbow),
				RoleCutter:      moveTo(court.LeftCorner),
				RoleSpacer:      moveTo(court.RightCorner),
			}},
			{Duration: 2.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: drive(DriveRight),
				RoleScreener:    screenOn(RoleBallHandler),
				RolePostUp:      pop(court.RightWing),
				RoleCutter:      relocate(),
				RoleSpacer:      relocate(),
			}},
			{Duration: 2.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: readAndReact(),
				RoleScreener:    roll(),
				RolePostUp:      shootIfOpen(),
				RoleCutter:      relocate(),
				RoleSpacer:      relocate(),
			}},
		},
	},
	"Flex": {
		Name: "Flex",
		Steps: []PlayStep{
			{Duration: 1.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.TopKey),
				RoleScreener:    moveTo(court.LowPostL),
				RolePostUp:      moveTo(court.LowPostR),
				RoleCutter:      moveTo(court.RightCorner),
				RoleSpacer:      moveTo(court.LeftCorner),
			}},
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: entryPass(RolePostUp),
				RoleScreener:    screenOn(RoleCutter),
				RolePostUp:      hold(),
				RoleCutter:      cut(court.RightCorner, court.LeftElbow),
				RoleSpacer:      relocate(),
			}},
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: relocate(),
				RoleScreener:    pop(court.RightWing),
				RolePostUp:      readAndReact(),
				RoleCutter:      shootIfOpen(),
				RoleSpacer:      relocate(),
			}},
		},
	},
	"UCLA Cut": {
		Name: "UCLA Cut",
		Steps: []PlayStep{
			{Duration: 1.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.RightWing),
				RoleScreener:    moveTo(court.LowPostL),
				RolePostUp:      moveTo(court.LeftElbow),
				RoleCutter:      moveTo(court.TopKey),
				RoleSpacer:      moveTo(court.RightCorner),
			}},
			{Duration: 2.0, Trigger: TriggerPass, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: entryPass(RolePostUp),
				RoleScreener:    screenOn(RoleCutter),
				RolePostUp:      hold(),
				RoleCutter:      cut(court.TopKey, court.LowPostR),
				RoleSpacer:      relocate(),
			}},
			{Duration: 2.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: relocate(),
				RoleScreener:    pop(court.LeftWing),
				RolePostUp:      passTo(RoleCutter),
				RoleCutter:      shootIfOpen(),
				RoleSpacer:      relocate(),
			}},
		},
	},
	"Spain PnR": {
		Name: "Spain PnR",
		Steps: []PlayStep{
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.TopKey),
				RoleScreener:    moveTo(court.LeftElbow),
				RolePostUp:      moveTo(court.LowPostR),
				RoleCutter:      moveTo(court.RightWing),
				RoleSpacer:      moveTo(court.LeftCorner),
			}},
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: drive(DriveLeft),
				RoleScreener:    screenOn(RoleBallHandler),
				RolePostUp:      relocate(),
				RoleCutter:      screenOn(RoleScreener),
				RoleSpacer:      relocate(),
			}},
			{Duration: 2.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: readAndReact(),
				RoleScreener:    roll(),
				RolePostUp:      shootIfOpen(),
				RoleCutter:      pop(court.RightCorner),
				RoleSpacer:      relocate(),
			}},
		},
	},
	"Floppy": {
		Name: "Floppy",
		Steps: []PlayStep{
			{Duration: 1.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.TopKey),
				RoleScreener:    moveTo(court.LowPostL),
				RolePostUp:      moveTo(court.LowPostR),
				RoleCutter:      moveTo(court.RightCorner),
				RoleSpacer:      moveTo(court.LeftCorner),
			}},
			{Duration: 2.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: hold(),
				RoleScreener:    screenOn(RoleCutter),
				RolePostUp:      screenOn(RoleCutter),
				RoleCutter:      cut(court.RightCorner, court.TopKey),
				RoleSpacer:      relocate(),
			}},
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: passTo(RoleCutter),
				RoleScreener:    pop(court.LeftWing),
				RolePostUp:      pop(court.RightWing),
				RoleCutter:      shootIfOpen(),
				RoleSpacer:      relocate(),
			}},
		},
	},
	"Side PnR": {
		Name: "Side PnR",
		Steps: []PlayStep{
			{Duration: 1.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.RightWing),
				RoleScreener:    moveTo(court.RightElbow),
				RolePostUp:      moveTo(court.LowPostL),
				RoleCutter:      moveTo(court.TopKey),
				RoleSpacer:      moveTo(court.LeftCorner),
			}},
			{Duration: 2.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: drive(DriveBaseline),
				RoleScreener:    screenOn(RoleBallHandler),
				RolePostUp:      hold(),
				RoleCutter:      relocate(),
				RoleSpacer:      relocate(),
			}},
			{Duration: 2.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: readAndReact(),
				RoleScreener:    roll(),
				RolePostUp:      shootIfOpen(),
				RoleCutter:      relocate(),
				RoleSpacer:      relocate(),
			}},
		},
	},
	"Post Up": {
		Name: "Post Up",
		Steps: []PlayStep{
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.TopKey),
				RoleScreener:    moveTo(court.LeftWing),
				RolePostUp:      moveTo(court.LowPostR),
				RoleCutter:      moveTo(court.RightCorner),
				RoleSpacer:      moveTo(court.LeftCorner),
			}},
			{Duration: 3.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: entryPass(RolePostUp),
				RoleScreener:    relocate(),
				RolePostUp:      postUpAction(),
				RoleCutter:      relocate(),
				RoleSpacer:      relocate(),
			}},
			{Duration: 3.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: relocate(),
				RoleScreener:    relocate(),
				RolePostUp:      shootIfOpen(),
				RoleCutter:      relocate(),
				RoleSpacer:      relocate(),
			}},
		},
	},
	"ISO Clear": {
		Name: "ISO Clear",
		Steps: []PlayStep{
			{Duration: 1.5, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: moveTo(court.TopKey),
				RoleScreener:    moveTo(court.LeftCorner),
				RolePostUp:      moveTo(court.RightCorner),
				RoleCutter:      moveTo(court.LeftWing),
				RoleSpacer:      moveTo(court.RightWing),
			}},
			{Duration: 4.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: readAndReact(),
				RoleScreener:    hold(),
				RolePostUp:      hold(),
				RoleCutter:      hold(),
				RoleSpacer:      hold(),
			}},
		},
	},
	"Fast Break": {
		Name: "Fast Break",
		Steps: []PlayStep{
			{Duration: 3.0, Trigger: TriggerPosition, Predicate: fastBreakLanesFilled, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: drive(DriveRight),
				RoleScreener:    moveTo(court.LeftCorner),
				RolePostUp:      moveTo(court.RightCorner),
				RoleCutter:      moveTo(court.LeftWing),
				RoleSpacer:      moveTo(court.RightWing),
			}},
			{Duration: 2.0, Trigger: TriggerTime, Actions: map[OffenseRole]RoleAction{
				RoleBallHandler: readAndReact(),
				RoleScreener:    callForBall(),
				RolePostUp:      callForBall(),
				RoleCutter:      callForBall(),
				RoleSpacer:      callForBall(),
			}},
		},
	},
}

// fastBreakLanesFilled is Fast Break step 1's position trigger predicate:
// advance once the wide lane runners are within 6 ft of their target.
func fastBreakLanesFilled(g *GameState) bool {
	off := offenseIndices(g.Possession)
	for _, i := range off {
		p := g.Players[i]
		if p.Role == RoleCutter || p.Role == RoleSpacer {
			if p.DistTo(p.TargetPos) > 6 {
				return false
			}
		}
	}
	return true
}

// motionCandidates, shootCandidates, insideCandidates are the play pools
// keyed by offensive tactic.
var (
	fastBreakCandidates = []string{"Fast Break"}
	isoCandidates        = []string{"ISO Clear"}
	insideCandidates     = []string{"Post Up", "Horns PnR"}
	shootCandidates      = []string{"Floppy", "Horns PnR", "Flex", "Spain PnR"}
	motionCandidates     = []string{"Horns PnR", "Side PnR", "UCLA Cut", "Flex", "Spain PnR", "Floppy"}
)

// SelectPlay chooses a play for the offensive team at possession start,
// uniformly at random among the tactic's candidate set, via the seeded
// PRNG.
func SelectPlay(g *GameState) *Play {
	tactic := g.Teams[g.Possession].Tactics.Offense
	var candidates []string
	switch tactic {
	case TacticFastBreak:
		candidates = fastBreakCandidates
	case TacticIso:
		candidates = isoCandidates
	case TacticInside:
		candidates = insideCandidates
	case TacticShoot:
		candidates = shootCandidates
	default:
		candidates = motionCandidates
	}
	name := candidates[g.RNG.Intn(len(candidates))]
	return playbook[name]
}

// StartPlay installs play as the active play at step 0.
func StartPlay(g *GameState, play *Play) {
	g.CurrentPlay = play
	g.CurrentStep = 0
	g.StepTimer = 0
}

// ClearPlay removes the active play (on shot, turnover, or completion).
func ClearPlay(g *GameState) {
	g.CurrentPlay = nil
	g.CurrentStep = 0
	g.StepTimer = 0
}

// AdvancePlay runs the active play's current step's actions and advances
// the step index when its trigger condition fires.
func AdvancePlay(g *GameState, dt float64) {
	if g.CurrentPlay == nil {
		return
	}
	if g.CurrentStep >= len(g.CurrentPlay.Steps) {
		ClearPlay(g)
		return
	}
	step := g.CurrentPlay.Steps[g.CurrentStep]
	g.StepTimer += dt

	runStepActions(g, step)

	advance := false
	switch step.Trigger {
	case TriggerTime:
		advance = g.StepTimer >= step.Duration
	case TriggerPass:
		advance = g.GameTime-g.LastPassTime < 0.5
	case TriggerPosition:
		if step.Predicate != nil {
			advance = step.Predicate(g)
		} else {
			advance = g.StepTimer >= step.Duration
		}
	}
	if g.StepTimer >= maxStepDuration {
		advance = true
	}

	if advance {
		g.CurrentStep++
		g.StepTimer = 0
		if g.CurrentStep >= len(g.CurrentPlay.Steps) {
			ClearPlay(g)
		}
	}
}

// runStepActions dispatches each offensive player's RoleAction for the
// active step.
func runStepActions(g *GameState, step PlayStep) {
	off := offenseIndices(g.Possession)
	dir := g.AttackDir(g.Possession)
	for _, i := range off {
		p := g.Players[i]
		action, ok := step.Actions[p.Role]
		if !ok {
			continue
		}
		ExecuteRoleAction(g, i, action, dir)
	}
}

// ExecuteRoleAction applies a single RoleAction to player idx.
func ExecuteRoleAction(g *GameState, idx int, action RoleAction, dir int) {
	p := g.Players[idx]
	switch action.Kind {
	case ActionMoveTo:
		if p.HasSlot {
			delete(g.Slots, p.Slot)
		}
		g.Slots[action.Slot] = idx
		p.HasSlot = true
		p.Slot = action.Slot
		p.TargetPos = court.SlotCoord(action.Slot, dir)

	case ActionScreen:
		target := findRole(g, action.TargetRole)
		if target == nil {
			break
		}
		basket := court.Basket(dir)
		toward := geom.Normalize(basket.Sub(target.Pos))
		jitter := (g.RNG.Float64()*2 - 1) * 3
		perp := geom.Vec2{X: -toward.Y, Y: toward.X}
		p.TargetPos = target.Pos.Add(toward.Scale(3)).Add(perp.Scale(jitter))
		p.IsScreening = true

	case ActionCut:
		if p.HasSlot {
			delete(g.Slots, p.Slot)
		}
		g.Slots[action.ToSlot] = idx
		p.HasSlot = true
		p.Slot = action.ToSlot
		p.TargetPos = court.SlotCoord(action.ToSlot, dir)
		p.IsCutting = true

	case ActionDrive:
		basket := court.Basket(dir)
		lateral := 6.0
		if action.Dir == DriveBaseline {
			lateral = 0
		} else if action.Dir == DriveLeft {
			lateral = -lateral
		}
		p.TargetPos = basket.Add(geom.Vec2{X: 0, Y: lateral})
		if p.HasBall && p.DistTo(basket) < 5 {
			AttemptShot(g, idx)
		}

	case ActionHold:
		p.TargetPos = p.Pos

	case ActionPostUp:
		basket := court.Basket(dir)
		toward := geom.Normalize(basket.Sub(p.Pos))
		p.TargetPos = basket.Sub(toward.Scale(6))

	case ActionPop:
		if p.HasSlot {
			delete(g.Slots, p.Slot)
		}
		g.Slots[action.Slot] = idx
		p.HasSlot = true
		p.Slot = action.Slot
		p.TargetPos = court.SlotCoord(action.Slot, dir)

	case ActionRoll:
		basket := court.Basket(dir)
		jitter := (g.RNG.Float64()*2 - 1) * 3
		toward := geom.Normalize(basket.Sub(p.Pos))
		perp := geom.Vec2{X: -toward.Y, Y: toward.X}
		p.TargetPos = basket.Sub(toward.Scale(8)).Add(perp.Scale(jitter))

	case ActionRelocate:
		if slot, ok := nearestFreeSlot(g, p.Pos, dir); ok {
			if p.HasSlot {
				delete(g.Slots, p.Slot)
			}
			g.Slots[slot] = idx
			p.HasSlot = true
			p.Slot = slot
			p.TargetPos = court.SlotCoord(slot, dir)
		}

	case ActionPassTo:
		if !p.HasBall {
			break
		}
		target := findRole(g, action.TargetRole)
		if target != nil {
			AttemptPass(g, idx, indexOfPlayer(g, target), PassChest)
		}

	case ActionEntryPass:
		if !p.HasBall {
			break
		}
		target := findRole(g, action.TargetRole)
		if target != nil && !laneBlocked(g, p.Pos, target.Pos, p.TeamIdx) {
			AttemptPass(g, idx, indexOfPlayer(g, target), PassBounce)
		}

	case ActionShootIfOpen:
		if p.HasBall && isOpen(g, p.Pos, p.TeamIdx) {
			AttemptShot(g, idx)
		}

	case ActionReadAndReact:
		if p.HasBall {
			RunDecisionEngine(g, idx)
		}

	case ActionCallForBall:
		p.CallingForBall = true
	}
}

func findRole(g *GameState, role OffenseRole) *SimPlayer {
	for _, i := range offenseIndices(g.Possession) {
		if g.Players[i].Role == role {
			return g.Players[i]
		}
	}
	return nil
}

func indexOfPlayer(g *GameState, p *SimPlayer) int {
	for i, pl := range g.Players {
		if pl == p {
			return i
		}
	}
	return -1
}
