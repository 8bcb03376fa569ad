package pop

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/pop-arcade/internal/config"
)

func shapesOnBoard(shapes ...Shape) []Target {
	out := make([]Target, len(shapes))
	for i, s := range shapes {
		out[i] = Target{ID: string(rune('a' + i)), Shape: s, StackCount: 1}
	}
	return out
}

func TestRebuildEmptyBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := Rebuild(nil, []Shape{ShapeCircle}, 3, rng); len(got) != 0 {
		t.Errorf("empty board should give an empty queue, got %v", got)
	}
}

func TestRebuildBounds(t *testing.T) {
	live := shapesOnBoard(ShapeCircle, ShapeSquare, ShapeTriangle, ShapeStar, ShapeCircle, ShapeHexagon, ShapeDiamond)
	for seed := int64(1); seed <= 50; seed++ {
		q := Rebuild(live, nil, 3, rand.New(rand.NewSource(seed)))
		if len(q) != 3 {
			t.Fatalf("seed %d: expected 3 shapes, got %v", seed, q)
		}
		for _, s := range q {
			if !hasShape(live, s) {
				t.Fatalf("seed %d: %s is not on the board", seed, s)
			}
		}
	}
}

func TestRebuildLimitedByTargets(t *testing.T) {
	live := shapesOnBoard(ShapeCircle, ShapeSquare)
	q := Rebuild(live, nil, 3, rand.New(rand.NewSource(1)))
	if len(q) != 2 {
		t.Errorf("two targets should give at most two entries, got %v", q)
	}
}

func TestRebuildAvoidsImmediateRepeat(t *testing.T) {
	live := shapesOnBoard(ShapeCircle, ShapeCircle, ShapeSquare)
	allowed := [][]Shape{
		{ShapeCircle, ShapeSquare, ShapeCircle},
		{ShapeSquare, ShapeCircle, ShapeCircle},
	}
	for seed := int64(1); seed <= 50; seed++ {
		q := Rebuild(live, nil, 3, rand.New(rand.NewSource(seed)))
		ok := false
		for _, a := range allowed {
			if slices.Equal(q, a) {
				ok = true
			}
		}
		if !ok {
			t.Fatalf("seed %d: unexpected queue %v", seed, q)
		}
	}

	// With a single shape left a repeat is the only option.
	q := Rebuild(shapesOnBoard(ShapeStar, ShapeStar, ShapeStar), nil, 3, rand.New(rand.NewSource(1)))
	if !slices.Equal(q, []Shape{ShapeStar, ShapeStar, ShapeStar}) {
		t.Errorf("expected three stars, got %v", q)
	}
}

func TestRebuildKeepsSeedOrder(t *testing.T) {
	live := shapesOnBoard(ShapeCircle, ShapeSquare, ShapeTriangle, ShapeStar)
	seed := []Shape{ShapeSquare, ShapePentagon, ShapeCircle}

	q := Rebuild(live, seed, 3, rand.New(rand.NewSource(1)))
	if len(q) != 3 || q[0] != ShapeSquare || q[1] != ShapeCircle {
		t.Fatalf("seed entries on the board should lead in order, got %v", q)
	}
	if q[2] == ShapeCircle || q[2] == ShapeSquare {
		// Each seed entry consumed its only target.
		t.Errorf("third entry %s has no unclaimed target", q[2])
	}
}

func TestRouteSyncReportsChange(t *testing.T) {
	r := NewRoute(3, rand.New(rand.NewSource(1)))
	live := shapesOnBoard(ShapeCircle, ShapeSquare)

	q, changed := r.Sync(live, []Shape{ShapeSquare, ShapeCircle})
	if !changed || !slices.Equal(q, []Shape{ShapeSquare, ShapeCircle}) {
		t.Fatalf("first sync: %v changed=%v", q, changed)
	}
	if _, changed := r.Sync(live, r.Queue()); changed {
		t.Error("identical content should not count as a change")
	}
}

func TestRouteHealDropsMissingHead(t *testing.T) {
	r := NewRoute(3, rand.New(rand.NewSource(1)))
	r.Sync(shapesOnBoard(ShapeTriangle, ShapeCircle), []Shape{ShapeTriangle, ShapeCircle})

	// The triangle left the board without being popped in order.
	q, changed := r.Heal(shapesOnBoard(ShapeCircle))
	if !changed {
		t.Fatal("heal should change the queue")
	}
	if !slices.Equal(q, []Shape{ShapeCircle}) {
		t.Errorf("expected [circle], got %v", q)
	}
}

func TestRouteHeadAlwaysOnBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	r := NewRoute(3, rng)
	live := shapesOnBoard(ShapeCircle, ShapeSquare, ShapeTriangle, ShapeStar, ShapePentagon)

	for i := 0; i < 200; i++ {
		// Randomly remove a target and add another, then heal.
		idx := rng.Intn(len(live))
		live = removeTarget(live, idx)
		live = append(live, Target{ID: string(rune('A' + i%26)), Shape: AllShapes()[rng.Intn(7)], StackCount: 1})

		r.Heal(live)
		head, ok := r.Head()
		if !ok {
			t.Fatal("non-empty board should have a head")
		}
		if !hasShape(live, head) {
			t.Fatalf("step %d: head %s not on board", i, head)
		}
		if n := len(r.Queue()); n > 3 {
			t.Fatalf("queue length %d", n)
		}
	}

	r.Heal(nil)
	if _, ok := r.Head(); ok {
		t.Error("empty board should empty the queue")
	}
}

func TestQueueZoneContainsPanel(t *testing.T) {
	cfg := config.DefaultPopConfig().RouteZone
	vp := ViewportForScreen(120, 40)
	d := TargetDiameter(vp, 17.5)

	p := QueuePanel(vp, d, cfg, 3)
	z := QueueZone(vp, d, cfg, 3)
	if z.Left > p.Left || z.Right < p.Right || z.Top > p.Top || z.Bottom < p.Bottom {
		t.Errorf("zone %+v should contain panel %+v", z, p)
	}
	if mid := (p.Left + p.Right) / 2; mid != vp.W/2 {
		t.Errorf("panel centered at %.2f, want %.2f", mid, vp.W/2)
	}
	if p.Top != cfg.TopOffset {
		t.Errorf("panel top = %.2f, want %.2f", p.Top, cfg.TopOffset)
	}
}
