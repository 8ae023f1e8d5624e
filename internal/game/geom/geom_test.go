package geom

import "testing"

func TestDistMatchesPythagorean(t *testing.T) {
	d := Dist(Vec2{X: 0, Y: 0}, Vec2{X: 3, Y: 4})
	if d != 5 {
		t.Errorf("expected distance 5, got %v", d)
	}
}

func TestNormalizeProducesUnitLength(t *testing.T) {
	v := Normalize(Vec2{X: 3, Y: 4})
	if got := v.Len(); got < 0.999 || got > 1.001 {
		t.Errorf("expected unit length, got %v", got)
	}
}

func TestNormalizeZeroVectorStaysZero(t *testing.T) {
	v := Normalize(Vec2{})
	if v != (Vec2{}) {
		t.Errorf("expected zero vector to normalize to zero, got %v", v)
	}
}

func TestClamp1DRestrictsToRange(t *testing.T) {
	if got := Clamp1D(10, 0, 5); got != 5 {
		t.Errorf("expected clamp to upper bound 5, got %v", got)
	}
	if got := Clamp1D(-10, 0, 5); got != 0 {
		t.Errorf("expected clamp to lower bound 0, got %v", got)
	}
}

func TestDistanceToLineClampsToSegmentEndpoints(t *testing.T) {
	seg := Segment{From: Vec2{X: 0, Y: 0}, To: Vec2{X: 10, Y: 0}}

	onSegment := DistanceToLine(Vec2{X: 5, Y: 3}, seg)
	if onSegment != 3 {
		t.Errorf("expected perpendicular distance 3, got %v", onSegment)
	}

	pastEnd := DistanceToLine(Vec2{X: 15, Y: 0}, seg)
	if pastEnd != 5 {
		t.Errorf("expected distance to clamp to the segment's far endpoint, got %v", pastEnd)
	}
}

func TestDistanceToLineDegenerateSegmentIsPointDistance(t *testing.T) {
	seg := Segment{From: Vec2{X: 2, Y: 2}, To: Vec2{X: 2, Y: 2}}
	if got := DistanceToLine(Vec2{X: 5, Y: 2}, seg); got != 3 {
		t.Errorf("expected point distance for a degenerate segment, got %v", got)
	}
}
