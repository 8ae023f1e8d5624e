package game

// buildTestPlayer returns a roster entry with uniform mid-range ratings,
// tuned high enough that shots, passes, and rebounds all resolve at a
// realistic rate during short test runs.
func buildTestPlayer(name string, pos Position, superstar bool) *Player {
	return &Player{
		Name:        name,
		Pos:         pos,
		IsSuperstar: superstar,
		Shooting:    ShootingSkills{ThreePoint: 70, MidRange: 70, FreeThrow: 75},
		Finishing:   FinishingSkills{Layup: 70, Dunk: 60},
		Playmaking:  PlaymakingSkills{CourtVision: 70, BallHandling: 70},
		Defense:     DefenseSkills{Perimeter: 60, Post: 60, Steal: 50, Block: 50, Rebounding: 60},
		Athletic:    AthleticSkills{Speed: 70, Acceleration: 70, Vertical: 60, Stamina: 80, Height: 198},
	}
}

func buildTestRoster(prefix string) [5]*Player {
	return [5]*Player{
		buildTestPlayer(prefix+"-PG", PG, false),
		buildTestPlayer(prefix+"-SG", SG, false),
		buildTestPlayer(prefix+"-SF", SF, false),
		buildTestPlayer(prefix+"-PF", PF, false),
		buildTestPlayer(prefix+"-C", C, false),
	}
}

func buildTestTeams() (*Team, *Team) {
	return NewTeam("Home", buildTestRoster("H")), NewTeam("Away", buildTestRoster("A"))
}

func buildTestGame(seed uint32) *GameState {
	home, away := buildTestTeams()
	g := InitGameState(seed, home, away)
	g.EventLog.Start("")
	return g
}

func runTicks(g *GameState, n int) {
	for i := 0; i < n; i++ {
		Tick(g)
		if g.GameOver {
			return
		}
	}
}
