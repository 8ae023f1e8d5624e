package game

import (
	"testing"

	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

func TestUpdateKinematicsMovesTowardTarget(t *testing.T) {
	p := NewSimPlayer(0, 0, buildTestPlayer("mover", PG, false), geom.Vec2{X: 10, Y: 10})
	p.Pos = geom.Vec2{X: 10, Y: 10}
	p.TargetPos = geom.Vec2{X: 40, Y: 10}

	start := geom.Dist(p.Pos, p.TargetPos)
	for i := 0; i < 60; i++ {
		p.UpdateKinematics(TickInterval, nil)
	}
	if d := geom.Dist(p.Pos, p.TargetPos); d >= start {
		t.Errorf("player did not close distance toward target: start=%v end=%v", start, d)
	}
}

func TestUpdateKinematicsSettlesNearTarget(t *testing.T) {
	p := NewSimPlayer(0, 0, buildTestPlayer("settler", PG, false), geom.Vec2{X: 20, Y: 20})
	p.Pos = geom.Vec2{X: 20, Y: 20}
	p.TargetPos = geom.Vec2{X: 20.1, Y: 20}

	for i := 0; i < 30; i++ {
		p.UpdateKinematics(TickInterval, nil)
	}
	if d := geom.Dist(p.Pos, p.TargetPos); d > 0.5 {
		t.Errorf("player should have settled near a close target, still %v away", d)
	}
}

func TestUpdateKinematicsStaysWithinCourtBounds(t *testing.T) {
	p := NewSimPlayer(0, 0, buildTestPlayer("edge", C, false), geom.Vec2{X: court.MinX + 1, Y: court.MinY + 1})
	p.Pos = geom.Vec2{X: court.MinX + 1, Y: court.MinY + 1}
	p.TargetPos = geom.Vec2{X: court.MinX - 50, Y: court.MinY - 50}

	for i := 0; i < 120; i++ {
		p.UpdateKinematics(TickInterval, nil)
	}
	if p.Pos.X < court.MinX || p.Pos.Y < court.MinY {
		t.Errorf("player escaped court bounds: %+v", p.Pos)
	}
}

func TestUpdateKinematicsRepelsOverlappingPlayers(t *testing.T) {
	a := NewSimPlayer(0, 0, buildTestPlayer("a", SF, false), geom.Vec2{X: 30, Y: 25})
	b := NewSimPlayer(1, 1, buildTestPlayer("b", SF, false), geom.Vec2{X: 30.5, Y: 25})
	a.Pos = geom.Vec2{X: 30, Y: 25}
	b.Pos = geom.Vec2{X: 30.5, Y: 25}
	a.TargetPos, b.TargetPos = a.Pos, b.Pos

	before := geom.Dist(a.Pos, b.Pos)
	a.UpdateKinematics(TickInterval, []*SimPlayer{b})
	b.UpdateKinematics(TickInterval, []*SimPlayer{a})
	if after := geom.Dist(a.Pos, b.Pos); after <= before {
		t.Errorf("overlapping players should push apart: before=%v after=%v", before, after)
	}
}

func TestDistToMatchesGeomDist(t *testing.T) {
	p := NewSimPlayer(0, 0, buildTestPlayer("dist", SG, false), geom.Vec2{X: 0, Y: 0})
	p.Pos = geom.Vec2{X: 0, Y: 0}
	target := geom.Vec2{X: 3, Y: 4}
	if got := p.DistTo(target); got != 5 {
		t.Errorf("expected distance 5, got %v", got)
	}
}
