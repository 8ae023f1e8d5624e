package game

import (
	"testing"

	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

func TestDerivePossessionStageThresholds(t *testing.T) {
	cases := []struct {
		shotClock float64
		want      PossessionStage
	}{
		{24, StageEarly},
		{18.1, StageEarly},
		{18, StageMid},
		{10.1, StageMid},
		{10, StageLate},
		{4.1, StageLate},
		{4, StageDesperation},
		{0, StageDesperation},
	}
	for _, c := range cases {
		if got := derivePossessionStage(c.shotClock); got != c.want {
			t.Errorf("derivePossessionStage(%v) = %v, want %v", c.shotClock, got, c.want)
		}
	}
}

func TestMustAttackOnLongDribbleOrLowShotClock(t *testing.T) {
	g := buildTestGame(1)
	defer g.EventLog.Stop()

	g.DribbleTime = 0
	g.ShotClock = 20
	if mustAttack(g) {
		t.Error("expected no forced attack with fresh dribble and full shot clock")
	}

	g.DribbleTime = 4
	if !mustAttack(g) {
		t.Error("expected forced attack after 3+ seconds of dribbling")
	}

	g.DribbleTime = 0
	g.ShotClock = 5
	if !mustAttack(g) {
		t.Error("expected forced attack under a 6 second shot clock")
	}
}

func TestRunDecisionEngineIgnoresPlayersWithoutTheBall(t *testing.T) {
	g := buildTestGame(2)
	defer g.EventLog.Stop()
	before := g.BoxScore[0]

	RunDecisionEngine(g, 0)

	if g.BoxScore[0] != before {
		t.Error("expected no box score change for a player without the ball")
	}
}

func TestRunDecisionEngineRule1ShootsInLayupRange(t *testing.T) {
	g := buildTestGame(3)
	defer g.EventLog.Stop()
	shooter := g.Players[0]
	shooter.HasBall = true
	dir := g.AttackDir(0)
	basket := court.Basket(dir)
	shooter.Pos = basket.Add(geom.Vec2{X: -float64(dir) * 2, Y: 0})

	RunDecisionEngine(g, 0)

	if g.PendingShot == nil {
		t.Fatal("expected a shot attempt from point-blank range")
	}
	if g.PendingShot.ShooterIdx != 0 {
		t.Errorf("expected shooter index 0, got %d", g.PendingShot.ShooterIdx)
	}
}

func TestRunDecisionEngineRule8ShootsWithin25FeetWhenNoPassAvailable(t *testing.T) {
	g := buildTestGame(4)
	defer g.EventLog.Stop()
	shooter := g.Players[0]
	shooter.HasBall = true
	g.DribbleTime = 10
	g.ShotClock = 2

	dir := g.AttackDir(0)
	basket := court.Basket(dir)
	shooter.Pos = basket.Add(geom.Vec2{X: -float64(dir) * 15, Y: 0})

	for _, i := range offenseIndices(1) {
		g.Players[i].Pos = shooter.Pos.Add(geom.Vec2{X: 1, Y: 0})
	}
	for _, i := range offenseIndices(0) {
		if i == 0 {
			continue
		}
		g.Players[i].Pos = shooter.Pos.Add(geom.Vec2{X: 1, Y: 1})
	}

	RunDecisionEngine(g, 0)

	if g.PendingShot == nil {
		t.Error("expected the ball handler to shoot from 15 ft when hemmed in with a dying shot clock")
	}
}

func TestIsDefenderBetweenDetectsHelpOnTheDriveLine(t *testing.T) {
	g := buildTestGame(5)
	defer g.EventLog.Stop()
	p := g.Players[0]
	dir := g.AttackDir(0)
	basket := court.Basket(dir)
	p.Pos = geom.Vec2{X: basket.X - float64(dir)*20, Y: 25}
	g.Players[5].Pos = geom.Vec2{X: basket.X - float64(dir)*10, Y: 25}

	if !isDefenderBetween(g, p, basket, 0) {
		t.Error("expected a defender sitting on the drive line to be detected")
	}
}

func TestFindRollerPicksOffBallPlayerNearTheBasket(t *testing.T) {
	g := buildTestGame(6)
	defer g.EventLog.Stop()
	dir := g.AttackDir(0)
	basket := court.Basket(dir)
	g.Players[1].Pos = basket.Add(geom.Vec2{X: -float64(dir) * 5, Y: 0})
	g.Players[1].HasBall = false

	roller := findRoller(g, 0)
	if roller == nil || roller != g.Players[1] {
		t.Error("expected player 1 near the rim to be found as the roller")
	}
}

func TestFindOpenShooterRequiresThreePointRangeAndSeparation(t *testing.T) {
	g := buildTestGame(7)
	defer g.EventLog.Stop()
	dir := g.AttackDir(0)
	basket := court.Basket(dir)
	shooterSpot := basket.Add(geom.Vec2{X: -float64(dir) * 24, Y: 0})

	g.Players[1].Pos = shooterSpot
	g.Players[1].Static.Shooting.ThreePoint = 80
	for _, i := range offenseIndices(1) {
		g.Players[i].Pos = geom.Vec2{X: -500, Y: -500}
	}

	found := findOpenShooter(g, 0)
	if found != g.Players[1] {
		t.Error("expected the wide-open three-point shooter to be found")
	}
}

func TestClosestOpenTeammatePicksNearestOpenNonHandler(t *testing.T) {
	g := buildTestGame(8)
	defer g.EventLog.Stop()
	from := g.Players[0]
	from.Pos = geom.Vec2{X: 20, Y: 25}
	g.Players[1].Pos = geom.Vec2{X: 25, Y: 25}
	g.Players[2].Pos = geom.Vec2{X: 60, Y: 25}
	for _, i := range offenseIndices(1) {
		g.Players[i].Pos = geom.Vec2{X: -500, Y: -500}
	}

	target := closestOpenTeammate(g, from)
	if target != g.Players[1] {
		t.Error("expected the closer open teammate to be chosen over the farther one")
	}
}

func TestScorePassTargetRewardsOpenCandidatesNearTheBasket(t *testing.T) {
	g := buildTestGame(9)
	defer g.EventLog.Stop()
	passer := g.Players[0]
	dir := g.AttackDir(0)
	basket := court.Basket(dir)

	near := g.Players[1]
	near.Pos = basket.Add(geom.Vec2{X: -float64(dir) * 5, Y: 0})
	far := g.Players[2]
	// Both candidates stand inside 15 ft, where no shooting-touch bonus applies.
	far.Pos = basket.Add(geom.Vec2{X: -float64(dir) * 14, Y: 0})
	for _, i := range offenseIndices(1) {
		g.Players[i].Pos = geom.Vec2{X: -500, Y: -500}
	}

	nearScore := scorePassTarget(g, passer, near)
	farScore := scorePassTarget(g, passer, far)
	if nearScore <= farScore {
		t.Errorf("expected the closer candidate to score higher: near=%v far=%v", nearScore, farScore)
	}
}

func TestPassBallRespectsBackPassGuard(t *testing.T) {
	g := buildTestGame(10)
	defer g.EventLog.Stop()
	g.GameTime = 10
	g.LastPassFrom = 1
	g.LastPassTime = 9.5
	from := g.Players[0]
	from.HasBall = true
	for _, i := range offenseIndices(1) {
		g.Players[i].Pos = geom.Vec2{X: -500, Y: -500}
	}

	passBall(g, 0, g.Players[1])

	if !from.HasBall {
		t.Error("expected the back-pass guard to block a pass to the most recent passer within 1.5s")
	}
}
