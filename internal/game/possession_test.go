package game

import "testing"

func TestStartFreeThrowsEntersFreeThrowPhase(t *testing.T) {
	g := buildTestGame(1)
	defer g.EventLog.Stop()

	StartFreeThrows(g, 2, 2)

	if g.Phase != PhaseFreeThrow {
		t.Errorf("expected phase free_throw, got %v", g.Phase)
	}
	if g.FreeThrows == nil || g.FreeThrows.ShooterIdx != 2 || g.FreeThrows.Remaining != 2 {
		t.Errorf("unexpected free throw state: %+v", g.FreeThrows)
	}
}

func TestRunFreeThrowDecrementsRemainingUntilDone(t *testing.T) {
	g := buildTestGame(2)
	defer g.EventLog.Stop()
	StartFreeThrows(g, 0, 2)

	for ticks := 0; ticks < 300 && g.FreeThrows != nil; ticks++ {
		runFreeThrow(g, TickInterval)
	}

	if g.FreeThrows != nil {
		t.Fatal("free throw sequence should have completed within 300 ticks")
	}
	if g.BoxScore[0].FTAttempted != 2 {
		t.Errorf("expected 2 free throw attempts recorded, got %d", g.BoxScore[0].FTAttempted)
	}
}

func TestRunJumpballAssignsPossessionAfterThreeSeconds(t *testing.T) {
	g := buildTestGame(3)
	defer g.EventLog.Stop()

	for ticks := 0; ticks < 240 && g.Phase == PhaseJumpball; ticks++ {
		runJumpball(g, TickInterval)
		g.PhaseTicks++
	}

	if g.Phase == PhaseJumpball {
		t.Fatal("jump ball should resolve within 4 simulated seconds")
	}
	if !g.GameStarted {
		t.Error("winning the jump ball should start the game")
	}
	if !g.Ball.Carried() {
		t.Error("the jump ball winner should be carrying the ball")
	}
}

func TestDerivePossessionStageBucketsShotClock(t *testing.T) {
	if derivePossessionStage(24) != StageEarly {
		t.Error("a fresh shot clock should be early")
	}
	if derivePossessionStage(1) != StageDesperation {
		t.Error("a near-zero shot clock should be desperation")
	}
}
