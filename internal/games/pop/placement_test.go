package pop

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
)

func testPlacer(seed int64) *Placer {
	return NewPlacer(config.DefaultPopConfig().Placement, rand.New(rand.NewSource(seed)))
}

// checkBoardInvariants verifies spacing and touch bounds for every pair.
func checkBoardInvariants(t *testing.T, targets []Target, vp Viewport, diameter float64) {
	t.Helper()
	ids := make(map[string]bool, len(targets))
	for i, a := range targets {
		if ids[a.ID] {
			t.Fatalf("duplicate id %q", a.ID)
		}
		ids[a.ID] = true

		touching := 0
		for j, b := range targets {
			if i == j {
				continue
			}
			d := a.Center(vp).Dist(b.Center(vp))
			if d < 0.8*diameter-1e-9 {
				t.Fatalf("targets %d and %d overlap: distance %.3f < %.3f", i, j, d, 0.8*diameter)
			}
			if d <= 1.1*diameter {
				touching++
			}
		}
		if touching > 2 {
			t.Fatalf("target %d touches %d others", i, touching)
		}
	}
}

func TestPlaceKeepsInvariants(t *testing.T) {
	vp := ViewportForScreen(120, 40)
	d := TargetDiameter(vp, 17.5)

	for seed := int64(1); seed <= 20; seed++ {
		p := testPlacer(seed)
		rng := rand.New(rand.NewSource(seed))
		var targets []Target
		for i := 0; i < 60; i++ {
			var anchor *Target
			if len(targets) > 0 && rng.Intn(2) == 0 {
				a := targets[rng.Intn(len(targets))]
				anchor = &a
			}
			pos, ok := p.Place(targets, d, vp, nil, anchor)
			if !ok {
				continue
			}
			targets = append(targets, Target{ID: fmt.Sprintf("t%d", i), X: pos.X, Y: pos.Y, StackCount: 1})
		}
		if len(targets) == 0 {
			t.Fatalf("seed %d: nothing placed", seed)
		}
		checkBoardInvariants(t, targets, vp, d)
	}
}

func TestPlaceRespectsEdgesAndHeader(t *testing.T) {
	vp := ViewportForScreen(80, 24)
	d := TargetDiameter(vp, 17.5)
	p := testPlacer(7)

	for i := 0; i < 500; i++ {
		pos, ok := p.Place(nil, d, vp, nil, nil)
		if !ok {
			t.Fatal("placement on an empty board should succeed")
		}
		c := core.Point{X: core.FromPct(pos.X, vp.W), Y: core.FromPct(pos.Y, vp.H)}
		margin := 0.6 * d
		if c.X < margin || c.X > vp.W-margin || c.Y > vp.H-margin {
			t.Fatalf("center %v too close to an edge", c)
		}
		if c.Y < vp.H*0.15+margin/2 {
			t.Fatalf("center %v inside header band", c)
		}
	}
}

func TestPlaceAvoidsZone(t *testing.T) {
	vp := ViewportForScreen(80, 24)
	d := TargetDiameter(vp, 17.5)
	zone := core.Zone{Left: 0, Top: 0, Right: 60, Bottom: vp.H}
	p := testPlacer(3)

	for i := 0; i < 200; i++ {
		pos, ok := p.Place(nil, d, vp, &zone, nil)
		if !ok {
			continue
		}
		c := core.Point{X: core.FromPct(pos.X, vp.W), Y: core.FromPct(pos.Y, vp.H)}
		if zone.Contains(c) {
			t.Fatalf("center %v inside exclusion zone", c)
		}
	}
}

func TestPlaceFailureIsNotFatal(t *testing.T) {
	vp := ViewportForScreen(80, 24)
	d := TargetDiameter(vp, 17.5)
	// A zone covering the whole viewport leaves nowhere to go.
	zone := core.Zone{Left: -1, Top: -1, Right: vp.W + 1, Bottom: vp.H + 1}

	if _, ok := testPlacer(1).Place(nil, d, vp, &zone, nil); ok {
		t.Error("placement inside a full exclusion zone should fail")
	}
	if _, ok := testPlacer(1).Place(nil, d, Viewport{}, nil, nil); ok {
		t.Error("placement in an empty viewport should fail")
	}
}

func TestPlaceNearAnchor(t *testing.T) {
	vp := ViewportForScreen(120, 40)
	d := TargetDiameter(vp, 17.5)
	anchor := Target{ID: "a", X: 50, Y: 60, StackCount: 1}
	p := testPlacer(11)

	near := 0
	for i := 0; i < 100; i++ {
		pos, ok := p.Place([]Target{anchor}, d, vp, nil, &anchor)
		if !ok {
			continue
		}
		c := core.Point{X: core.FromPct(pos.X, vp.W), Y: core.FromPct(pos.Y, vp.H)}
		if dist := c.Dist(anchor.Center(vp)); dist > 1.04*d && dist < 1.06*d {
			near++
		}
	}
	if near < 90 {
		t.Errorf("expected most placements at the anchor offset, got %d/100", near)
	}
}

func TestChooseAnchor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	existing := []Target{
		{ID: "r", Color: "#EF4444"},
		{ID: "b", Color: "#3B82F6"},
	}

	if a := chooseAnchor(existing, "#EF4444", 0, rng); a != nil {
		t.Error("zero chance should never anchor")
	}
	a := chooseAnchor(existing, "#EF4444", 1, rng)
	if a == nil || a.ID != "r" {
		t.Errorf("expected anchor r, got %+v", a)
	}
	if a := chooseAnchor(existing, "#22C55E", 1, rng); a != nil {
		t.Error("no same-color target should mean no anchor")
	}
	if a := chooseAnchor(nil, "#EF4444", 1, rng); a != nil {
		t.Error("empty board should mean no anchor")
	}
}

func TestShapeContains(t *testing.T) {
	for _, s := range AllShapes() {
		if !s.Contains(0, 0.05) {
			t.Errorf("%s should contain its center", s)
		}
		if s.Contains(1.2, 1.2) {
			t.Errorf("%s should not contain a far corner", s)
		}
		if s.Label() == "???" || s.Glyph() == '?' {
			t.Errorf("%s is missing a label or glyph", s)
		}
		parsed, err := ParseShape(s.String())
		if err != nil || parsed != s {
			t.Errorf("ParseShape(%q) = %v, %v", s.String(), parsed, err)
		}
	}
	if _, err := ParseShape("blob"); err == nil {
		t.Error("unknown shape should fail to parse")
	}
}
