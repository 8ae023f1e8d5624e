package game

import "testing"

func TestNewTeamAppliesDefaultTactics(t *testing.T) {
	team := NewTeam("Test", buildTestRoster("T"))
	if team.Tactics != DefaultTactics() {
		t.Errorf("expected default tactics, got %+v", team.Tactics)
	}
	if team.Name != "Test" {
		t.Errorf("expected name Test, got %s", team.Name)
	}
}

func TestDefaultTacticsIsMotionMan(t *testing.T) {
	dt := DefaultTactics()
	if dt.Offense != TacticMotion || dt.Defense != DefenseMan {
		t.Errorf("expected motion/man, got %+v", dt)
	}
}

func TestSetTacticsRejectsInvalidTeamIndex(t *testing.T) {
	g := buildTestGame(1)
	defer g.EventLog.Stop()
	mg := &ManagedGame{State: g, snapshotPool: NewSnapshotPool(DefaultLimits)}

	if err := mg.SetTactics(2, Tactics{Offense: TacticShoot, Defense: DefenseZone}); err == nil {
		t.Error("expected an error for an out-of-range team index")
	}
}

func TestSetTacticsAppliesToTheRightTeam(t *testing.T) {
	g := buildTestGame(2)
	defer g.EventLog.Stop()
	mg := &ManagedGame{State: g, snapshotPool: NewSnapshotPool(DefaultLimits)}

	if err := mg.SetTactics(1, Tactics{Offense: TacticInside, Defense: DefensePress}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Teams[1].Tactics.Offense != TacticInside || g.Teams[1].Tactics.Defense != DefensePress {
		t.Errorf("tactics did not apply to team 1: %+v", g.Teams[1].Tactics)
	}
	if g.Teams[0].Tactics != DefaultTactics() {
		t.Error("team 0's tactics should be untouched")
	}
}
