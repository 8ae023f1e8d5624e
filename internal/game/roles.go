package game

import (
	"math"

	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

// OffenseRole is one of the five offensive roles assigned per possession.
type OffenseRole int

const (
	RoleBallHandler OffenseRole = iota
	RoleScreener
	RoleCutter
	RoleSpacer
	RolePostUp
)

func (r OffenseRole) String() string {
	switch r {
	case RoleBallHandler:
		return "ball_handler"
	case RoleScreener:
		return "screener"
	case RoleCutter:
		return "cutter"
	case RoleSpacer:
		return "spacer"
	case RolePostUp:
		return "post_up"
	default:
		return "?"
	}
}

// offenseIndices returns the five player indices (within Players) for the
// team currently on offense.
func offenseIndices(possession int) [5]int {
	var idx [5]int
	base := possession * 5
	for i := 0; i < 5; i++ {
		idx[i] = base + i
	}
	return idx
}

// AssignRoles runs offensive role assignment. It is called on every setup
// and action tick, so roles follow the current ball carrier and positions.
func AssignRoles(g *GameState) {
	off := offenseIndices(g.Possession)
	team := g.Teams[g.Possession]

	if g.Roles == nil {
		g.Roles = make(map[int]OffenseRole)
	}

	handlerIdx := -1
	for _, i := range off {
		if g.Players[i].HasBall {
			handlerIdx = i
			break
		}
	}
	if handlerIdx == -1 {
		handlerIdx = off[0]
	}
	g.Roles[handlerIdx] = RoleBallHandler
	g.Players[handlerIdx].HasRole = true
	g.Players[handlerIdx].Role = RoleBallHandler

	if team.Tactics.Offense == TacticIso && g.Players[handlerIdx].Static.IsSuperstar {
		for _, i := range off {
			if i == handlerIdx {
				continue
			}
			setRole(g, i, RoleSpacer)
		}
		return
	}

	remaining := make([]int, 0, 4)
	for _, i := range off {
		if i != handlerIdx {
			remaining = append(remaining, i)
		}
	}

	screenerIdx := pickBest(remaining, func(i int) bool {
		return g.Players[i].Static.Pos == C
	})
	if screenerIdx == -1 {
		screenerIdx = pickBest(remaining, func(i int) bool {
			return g.Players[i].Static.Pos == PF
		})
	}
	if screenerIdx == -1 && len(remaining) > 0 {
		screenerIdx = remaining[0]
	}
	if screenerIdx != -1 {
		setRole(g, screenerIdx, RoleScreener)
		remaining = removeIdx(remaining, screenerIdx)
	}

	postUpIdx := pickBest(remaining, func(i int) bool {
		return g.Players[i].Static.Pos == C || g.Players[i].Static.Pos == PF
	})
	if postUpIdx != -1 {
		setRole(g, postUpIdx, RolePostUp)
		remaining = removeIdx(remaining, postUpIdx)
	}

	cutterIdx := -1
	bestSpeed := -1
	for _, i := range remaining {
		if g.Players[i].Static.Athletic.Speed > bestSpeed {
			bestSpeed = g.Players[i].Static.Athletic.Speed
			cutterIdx = i
		}
	}
	if cutterIdx != -1 {
		setRole(g, cutterIdx, RoleCutter)
		remaining = removeIdx(remaining, cutterIdx)
	}

	for _, i := range remaining {
		setRole(g, i, RoleSpacer)
	}
}

func setRole(g *GameState, idx int, role OffenseRole) {
	g.Roles[idx] = role
	g.Players[idx].HasRole = true
	g.Players[idx].Role = role
}

func pickBest(candidates []int, match func(int) bool) int {
	for _, i := range candidates {
		if match(i) {
			return i
		}
	}
	return -1
}

func removeIdx(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// HandoffBallHandlerRole is called when the ball changes hands within a
// possession (e.g. a pass): the previous handler inherits the new handler's
// former role, and the new handler becomes ballHandler: roles stay stable
// across a possession except ballHandler, which always follows the ball.
func HandoffBallHandlerRole(g *GameState, prevHandlerIdx, newHandlerIdx int) {
	if g.Roles == nil {
		return
	}
	newHandlerOldRole, ok := g.Roles[newHandlerIdx]
	if !ok {
		newHandlerOldRole = RoleSpacer
	}
	g.Roles[prevHandlerIdx] = newHandlerOldRole
	g.Players[prevHandlerIdx].Role = newHandlerOldRole
	g.Roles[newHandlerIdx] = RoleBallHandler
	g.Players[newHandlerIdx].Role = RoleBallHandler
}

// FillEmptySlots assigns free slots to roleless/slotless offensive players,
// run each action tick.
func FillEmptySlots(g *GameState) {
	off := offenseIndices(g.Possession)
	dir := g.AttackDir(g.Possession)

	for _, i := range off {
		p := g.Players[i]
		if p.HasSlot && g.Slots[p.Slot] != i {
			p.HasSlot = false // desynchronized reference, lazily corrected
		}
	}

	var free []court.Slot
	for _, s := range court.AllSlots {
		if _, taken := g.Slots[s]; !taken {
			free = append(free, s)
		}
	}

	for _, i := range off {
		p := g.Players[i]
		if p.HasSlot || len(free) == 0 {
			continue
		}
		slot := free[0]
		free = free[1:]
		g.Slots[slot] = i
		p.HasSlot = true
		p.Slot = slot
		p.TargetPos = court.SlotCoord(slot, dir)
	}
}

// EnforceFloorSpacing relocates the more-fatigued of any two offensive
// non-handlers within 10 ft of each other to the nearest free slot.
func EnforceFloorSpacing(g *GameState) {
	off := offenseIndices(g.Possession)
	dir := g.AttackDir(g.Possession)

	for a := 0; a < len(off); a++ {
		for b := a + 1; b < len(off); b++ {
			pa, pb := g.Players[off[a]], g.Players[off[b]]
			if pa.HasBall || pb.HasBall {
				continue
			}
			if pa.Pos.Sub(pb.Pos).Len() >= 10 {
				continue
			}
			moverIdx, mover := off[a], pa
			if pb.Fatigue > pa.Fatigue {
				moverIdx, mover = off[b], pb
			}
			if mover.HasSlot {
				delete(g.Slots, mover.Slot)
				mover.HasSlot = false
			}
			if slot, ok := nearestFreeSlot(g, mover.Pos, dir); ok {
				g.Slots[slot] = moverIdx
				mover.HasSlot = true
				mover.Slot = slot
				mover.TargetPos = court.SlotCoord(slot, dir)
			}
		}
	}
}

// nearestFreeSlot returns the unoccupied slot closest to pos, if any.
func nearestFreeSlot(g *GameState, pos geom.Vec2, dir int) (court.Slot, bool) {
	best := court.Slot(-1)
	bestDist := math.MaxFloat64
	for _, s := range court.AllSlots {
		if _, taken := g.Slots[s]; taken {
			continue
		}
		d := geom.Dist(pos, court.SlotCoord(s, dir))
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best, best != -1
}
