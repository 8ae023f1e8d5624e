package game

import (
	"testing"

	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

func TestRunManDefenseAssignsBallDefenderInTheDriveGap(t *testing.T) {
	g := buildTestGame(1)
	defer g.EventLog.Stop()
	g.Teams[1].Tactics.Defense = DefenseMan
	g.Possession = 0
	handler := g.Players[0]
	handler.HasBall = true

	RunDefense(g)

	if g.DefAssignments[5] != 0 {
		t.Errorf("expected defender 5 assigned to ball handler 0, got %d", g.DefAssignments[5])
	}
	if !g.Players[5].IsDefensiveSliding {
		t.Error("expected the assigned defender to be marked as sliding")
	}
}

func TestRunZoneDefensePlacesDefendersAtFixedSlots(t *testing.T) {
	g := buildTestGame(2)
	defer g.EventLog.Stop()
	g.Teams[1].Tactics.Defense = DefenseZone
	g.Possession = 0

	RunDefense(g)

	for _, i := range offenseIndices(1) {
		if !g.Players[i].IsDefensiveSliding {
			t.Errorf("expected zone defender %d to be marked as sliding", i)
		}
	}
}

func TestRunZoneDefenseFortressCollapsesTowardThePaint(t *testing.T) {
	g := buildTestGame(3)
	defer g.EventLog.Stop()

	runZoneDefense(g, 1, 0, false)
	normal := g.Players[5].TargetPos

	runZoneDefense(g, 1, 0, true)
	fortress := g.Players[5].TargetPos

	if fortress == normal {
		t.Error("expected fortress positioning to differ from standard zone positioning")
	}
}

func TestRunScreenHandlingOnlyAppliesToManCoverages(t *testing.T) {
	g := buildTestGame(4)
	defer g.EventLog.Stop()
	g.Teams[1].Tactics.Defense = DefenseZone
	screener := g.Players[1]
	screener.IsScreening = true
	screener.Pos = g.Players[5].Pos

	g.DefAssignments = map[int]int{5: 0, 6: 1, 7: 2, 8: 3, 9: 4}
	before := g.DefAssignments[5]

	runScreenHandling(g, 1, 0)

	if g.DefAssignments[5] != before {
		t.Error("expected screen handling to be a no-op under zone coverage")
	}
}

func TestRunScreenHandlingSwitchesOrFightsThroughWithinFourFeet(t *testing.T) {
	g := buildTestGame(5)
	defer g.EventLog.Stop()
	g.Teams[1].Tactics.Defense = DefenseMan
	g.DefAssignments = map[int]int{5: 0, 6: 1, 7: 2, 8: 3, 9: 4}

	screener := g.Players[1]
	defender := g.Players[5]
	screener.Pos = defender.Pos
	screener.IsScreening = true

	runScreenHandling(g, 1, 0)

	switched := g.DefAssignments[5] == 1
	slidAway := defender.TargetPos != (geom.Vec2{})
	if !switched && !slidAway {
		t.Error("expected a screen within 4 ft to either switch the assignment or slide the defender away")
	}
}

func TestRunHelpAndRotateTriggersWithinFifteenFeetOfTheBasket(t *testing.T) {
	g := buildTestGame(6)
	defer g.EventLog.Stop()
	g.Possession = 0
	g.DefAssignments = map[int]int{5: 0, 6: 1, 7: 2, 8: 3, 9: 4}

	handler := g.Players[0]
	handler.HasBall = true
	dir := g.AttackDir(0)
	handler.Pos = court.Basket(dir)

	runHelpAndRotate(g, 1, 0)

	moved := false
	for _, i := range []int{6, 7, 8, 9} {
		if g.Players[i].TargetPos != (geom.Vec2{}) {
			moved = true
		}
	}
	if !moved {
		t.Error("expected at least one help defender to rotate when the handler is within 15 ft of the basket")
	}
}
