package game

import "testing"

func TestFGPctWithNoAttemptsIsZero(t *testing.T) {
	var b PlayerBoxScore
	if b.FGPct() != 0 {
		t.Errorf("expected 0 with no attempts, got %v", b.FGPct())
	}
}

func TestFGPctComputesRatio(t *testing.T) {
	b := PlayerBoxScore{FGMade: 4, FGAttempted: 8}
	if b.FGPct() != 0.5 {
		t.Errorf("expected 0.5, got %v", b.FGPct())
	}
}

func TestThreePPctComputesRatio(t *testing.T) {
	b := PlayerBoxScore{ThreePMade: 1, ThreePAttempted: 4}
	if b.ThreePPct() != 0.25 {
		t.Errorf("expected 0.25, got %v", b.ThreePPct())
	}
}

func TestAccrueMinutesCreditsAllTenPlayersUniformly(t *testing.T) {
	g := buildTestGame(1)
	defer g.EventLog.Stop()

	accrueMinutes(g, 60)

	for i, b := range g.BoxScore {
		if b.Minutes != 1 {
			t.Errorf("player %d should have accrued 1 minute, got %v", i, b.Minutes)
		}
	}
}
