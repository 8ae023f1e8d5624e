package game

import (
	"testing"

	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

func TestNearestDefenderDistFindsClosestOpponent(t *testing.T) {
	g := buildTestGame(1)
	defer g.EventLog.Stop()

	g.Players[5].Pos = geom.Vec2{X: 10, Y: 25}
	g.Players[6].Pos = geom.Vec2{X: 40, Y: 25}

	dist, idx := nearestDefenderDist(g, geom.Vec2{X: 10, Y: 25}, 0)
	if idx != 5 {
		t.Errorf("expected nearest defender 5, got %d", idx)
	}
	if dist != 0 {
		t.Errorf("expected distance 0 for a coincident defender, got %v", dist)
	}
}

func TestIsOpenRequiresMoreThanSixFeetOfSpace(t *testing.T) {
	g := buildTestGame(2)
	defer g.EventLog.Stop()

	for _, i := range offenseIndices(1) {
		g.Players[i].Pos = geom.Vec2{X: -100, Y: -100}
	}
	g.Players[5].Pos = geom.Vec2{X: 10, Y: 25}

	if !isOpen(g, geom.Vec2{X: 17.5, Y: 25}, 0) {
		t.Error("expected a spot 7.5 ft from the nearest defender to be open")
	}
	if isOpen(g, geom.Vec2{X: 13, Y: 25}, 0) {
		t.Error("expected a spot 3 ft from the nearest defender to not be open")
	}
}

func TestLaneBlockedDetectsDefenderOnSegment(t *testing.T) {
	g := buildTestGame(3)
	defer g.EventLog.Stop()

	for _, i := range offenseIndices(1) {
		g.Players[i].Pos = geom.Vec2{X: -100, Y: -100}
	}
	g.Players[5].Pos = geom.Vec2{X: 20, Y: 25}

	blocked := laneBlocked(g, geom.Vec2{X: 10, Y: 25}, geom.Vec2{X: 30, Y: 25}, 0)
	if !blocked {
		t.Error("expected a defender sitting on the pass line to block it")
	}
}

func TestShotRangeSkillPicksLayupRangeUnderFiveFeet(t *testing.T) {
	g := buildTestGame(4)
	defer g.EventLog.Stop()
	p := g.Players[0]
	p.Static.Finishing.Layup = 77

	skill, basePct := shotRangeSkill(p, 3)
	if skill != 77 {
		t.Errorf("expected layup skill 77, got %d", skill)
	}
	if basePct != 0.60 {
		t.Errorf("expected layup base pct 0.60, got %v", basePct)
	}
}

func TestShotRangeSkillPicksThreePointRangeBeyond22Feet(t *testing.T) {
	g := buildTestGame(5)
	defer g.EventLog.Stop()
	p := g.Players[0]
	p.Static.Shooting.ThreePoint = 81

	skill, basePct := shotRangeSkill(p, 25)
	if skill != 81 {
		t.Errorf("expected three-point skill 81, got %d", skill)
	}
	if basePct != 0.35 {
		t.Errorf("expected three-point base pct 0.35, got %v", basePct)
	}
}

func TestShotProbabilityIsClampedToUnitInterval(t *testing.T) {
	g := buildTestGame(6)
	defer g.EventLog.Stop()
	shooter := g.Players[0]
	shooter.Static.IsSuperstar = true
	shooter.Static.Shooting.MidRange = 100

	pct := shotProbability(g, shooter, 10, 20, TacticIso, DefenseGamble)
	if pct < 0 || pct > 1 {
		t.Errorf("expected shot probability in [0, 1], got %v", pct)
	}
}

func TestFoulProbabilityIsZeroWhenUncontested(t *testing.T) {
	if p := foulProbability(10, 7); p != 0 {
		t.Errorf("expected zero foul probability beyond the 6 ft contest radius, got %v", p)
	}
}

func TestFoulProbabilityRisesOnTightContest(t *testing.T) {
	loose := foulProbability(3, 5)
	tight := foulProbability(3, 2)
	if tight <= loose {
		t.Errorf("expected a tighter contest to raise foul probability: loose=%v tight=%v", loose, tight)
	}
}

func TestAttemptShotRecordsAttemptAndStartsBallFlight(t *testing.T) {
	g := buildTestGame(7)
	defer g.EventLog.Stop()
	shooter := g.Players[0]
	shooter.Pos = geom.Vec2{X: 10, Y: 25}
	shooter.HasBall = true

	AttemptShot(g, 0)

	if g.BoxScore[0].FGAttempted != 1 {
		t.Errorf("expected one field goal attempt recorded, got %d", g.BoxScore[0].FGAttempted)
	}
	if g.PendingShot == nil {
		t.Fatal("expected a pending shot outcome after AttemptShot")
	}
	if g.Phase != PhaseShooting {
		t.Errorf("expected phase shooting, got %v", g.Phase)
	}
	if shooter.HasBall {
		t.Error("expected shooter to release the ball on attempt")
	}
}

func TestResolveShotAppliesMadePointsToScoreAndBoxScore(t *testing.T) {
	g := buildTestGame(8)
	defer g.EventLog.Stop()
	shooter := g.Players[0]
	g.PendingShot = &ShotOutcome{ShooterIdx: 0, Made: true, Points: 2, DefenderIdx: -1}

	ResolveShot(g)

	if g.BoxScore[0].FGMade != 1 {
		t.Errorf("expected one field goal made, got %d", g.BoxScore[0].FGMade)
	}
	if g.BoxScore[0].Points != 2 {
		t.Errorf("expected 2 points credited, got %d", g.BoxScore[0].Points)
	}
	if g.Score[shooter.TeamIdx] != 2 {
		t.Errorf("expected team score 2, got %d", g.Score[shooter.TeamIdx])
	}
	if g.PendingShot != nil {
		t.Error("expected pending shot to be cleared after resolution")
	}
}

func TestResolveShotCreditsAssistWithinThreeSecondsOfAPass(t *testing.T) {
	g := buildTestGame(9)
	defer g.EventLog.Stop()
	g.GameTime = 10
	g.LastPassFrom = 1
	g.LastPassTime = 9
	g.PendingShot = &ShotOutcome{ShooterIdx: 0, Made: true, Points: 3, DefenderIdx: -1}

	ResolveShot(g)

	if g.BoxScore[1].Assists != 1 {
		t.Errorf("expected an assist credited to player 1, got %d", g.BoxScore[1].Assists)
	}
}

func TestResolveShotDispatchesReboundOnMiss(t *testing.T) {
	g := buildTestGame(10)
	defer g.EventLog.Stop()
	g.PendingShot = &ShotOutcome{ShooterIdx: 0, Made: false, MissType: MissAirball, DefenderIdx: -1}

	ResolveShot(g)

	if g.Phase != PhaseRebound {
		t.Errorf("expected phase rebound after a clean miss, got %v", g.Phase)
	}
}

func TestResolveShotStartsFreeThrowsOnAndOne(t *testing.T) {
	g := buildTestGame(11)
	defer g.EventLog.Stop()
	g.PendingShot = &ShotOutcome{ShooterIdx: 0, Made: true, Points: 2, Fouled: true, DefenderIdx: 5}

	ResolveShot(g)

	if g.FreeThrows == nil {
		t.Fatal("expected an and-one to start a free throw sequence")
	}
	if g.FreeThrows.Remaining != 1 {
		t.Errorf("expected exactly one and-one free throw, got %d", g.FreeThrows.Remaining)
	}
}

func TestReboundTargetAirballLandsNearBasket(t *testing.T) {
	g := buildTestGame(12)
	defer g.EventLog.Stop()
	basket := court.BasketRight
	for i := 0; i < 50; i++ {
		landing := reboundTarget(g, MissAirball, basket)
		if geom.Dist(landing, basket) > 3 {
			t.Fatalf("expected an airball rebound to land within 3 ft of the basket, got %v away", geom.Dist(landing, basket))
		}
	}
}

func TestAttemptPassRecordsPasserStateAndHandsOffRole(t *testing.T) {
	g := buildTestGame(13)
	defer g.EventLog.Stop()
	g.GameTime = 5
	passer := g.Players[0]
	passer.HasBall = true
	AssignRoles(g)

	AttemptPass(g, 0, 1, PassChest)

	if passer.HasBall {
		t.Error("expected passer to release the ball")
	}
	if g.LastPassFrom != 0 {
		t.Errorf("expected last pass recorded from player 0, got %d", g.LastPassFrom)
	}
	if g.LastPassTime != 5 {
		t.Errorf("expected last pass time 5, got %v", g.LastPassTime)
	}
	if g.Players[1].Role != RoleBallHandler {
		t.Error("expected the pass target to inherit the ball handler role")
	}
}
