package curve

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuadraticBezier_CountAndEndpoints(t *testing.T) {
	p0 := Point{X: 97, Y: 256}
	ctrl := Point{X: 256, Y: 122}
	p2 := Point{X: 415, Y: 256}

	for _, steps := range []int{1, 2, 3, 7, 80, 257} {
		pts := QuadraticBezier(p0, ctrl, p2, steps)
		if len(pts) != steps+1 {
			t.Errorf("steps=%d: got %d points, want %d", steps, len(pts), steps+1)
			continue
		}
		if pts[0] != p0 {
			t.Errorf("steps=%d: first = %v, want %v", steps, pts[0], p0)
		}
		if pts[steps] != p2 {
			t.Errorf("steps=%d: last = %v, want %v", steps, pts[steps], p2)
		}
	}
}

func TestQuadraticBezier_Midpoint(t *testing.T) {
	// At t=0.5: 0.25*p0 + 0.5*ctrl + 0.25*p2.
	pts := QuadraticBezier(Point{X: 0, Y: 0}, Point{X: 10, Y: 20}, Point{X: 20, Y: 0}, 2)
	want := Point{X: 10, Y: 10}
	if d := math.Hypot(pts[1].X-want.X, pts[1].Y-want.Y); d > 1e-9 {
		t.Errorf("midpoint = %v, want %v", pts[1], want)
	}
}

func TestQuadraticBezier_StepsBelowOne(t *testing.T) {
	pts := QuadraticBezier(Point{X: 1, Y: 1}, Point{X: 2, Y: 2}, Point{X: 3, Y: 1}, 0)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
}

func TestEyePolygon_Deterministic(t *testing.T) {
	tr := Transform{Scale: 0.8, Offset: Point{X: 51.2, Y: 51.2}}
	a := EyePolygon(tr)
	b := EyePolygon(tr)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("EyePolygon not deterministic (-first +second):\n%s", diff)
	}
}

func TestEyePolygon_Shape(t *testing.T) {
	pts := EyePolygon(Identity)
	if len(pts) != 2*(DefaultSteps+1) {
		t.Fatalf("got %d points, want %d", len(pts), 2*(DefaultSteps+1))
	}
	if pts[0] != EyeLeft || pts[DefaultSteps] != EyeRight {
		t.Errorf("upper arc runs %v -> %v, want %v -> %v", pts[0], pts[DefaultSteps], EyeLeft, EyeRight)
	}
	if last := pts[len(pts)-1]; last != EyeLeft {
		t.Errorf("lower arc ends at %v, want %v", last, EyeLeft)
	}

	lo, hi := pts.Bounds()
	if lo.X != 97 || hi.X != 415 {
		t.Errorf("x extent = [%v, %v], want [97, 415]", lo.X, hi.X)
	}
	// The arcs reach halfway to their control points: 256 -/+ 67.
	if math.Abs(lo.Y-189) > 1e-9 || math.Abs(hi.Y-323) > 1e-9 {
		t.Errorf("y extent = [%v, %v], want [189, 323]", lo.Y, hi.Y)
	}
}

func TestEyePolygon_Transform(t *testing.T) {
	tr := Transform{Scale: 0.5, Offset: Point{X: 10, Y: 20}}
	base := EyePolygon(Identity)
	got := EyePolygon(tr)
	for i := range base {
		want := Point{X: base[i].X*0.5 + 10, Y: base[i].Y*0.5 + 20}
		if math.Abs(got[i].X-want.X) > 1e-9 || math.Abs(got[i].Y-want.Y) > 1e-9 {
			t.Fatalf("point %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestFit(t *testing.T) {
	tr := Fit(200, 1000, 48)
	if tr.Scale != 200.0/512 {
		t.Errorf("scale = %v, want %v", tr.Scale, 200.0/512)
	}
	if got := tr.Apply(Point{}); got != (Point{X: 1000, Y: 48}) {
		t.Errorf("origin maps to %v", got)
	}
	if got := tr.Scalar(512); math.Abs(got-200) > 1e-9 {
		t.Errorf("Scalar(512) = %v, want 200", got)
	}
}

func TestRoundedRect(t *testing.T) {
	p := RoundedRect(0, 0, 100, 50, 10)
	lo, hi := p.Bounds()
	if math.Abs(lo.X) > 1e-9 || math.Abs(lo.Y) > 1e-9 || math.Abs(hi.X-100) > 1e-9 || math.Abs(hi.Y-50) > 1e-9 {
		t.Errorf("bounds = %v..%v, want (0,0)..(100,50)", lo, hi)
	}
	if RoundedRect(0, 0, 0, 10, 2) != nil {
		t.Error("expected nil for zero width")
	}
	if got := RoundedRect(0, 0, 10, 10, 0); len(got) != 4 {
		t.Errorf("zero radius: got %d points, want 4", len(got))
	}
}

func TestEllipse(t *testing.T) {
	p := Ellipse(50, 40, 30, 20)
	lo, hi := p.Bounds()
	if math.Abs(lo.X-20) > 1e-9 || math.Abs(hi.X-80) > 1e-9 {
		t.Errorf("x extent = [%v, %v], want [20, 80]", lo.X, hi.X)
	}
	if hi.Y > 60+1e-9 || lo.Y < 20-1e-9 {
		t.Errorf("y extent = [%v, %v] exceeds [20, 60]", lo.Y, hi.Y)
	}
	if Ellipse(0, 0, 0, 5) != nil {
		t.Error("expected nil for zero radius")
	}
}

func TestPathReverse(t *testing.T) {
	p := Path{{X: 1}, {X: 2}, {X: 3}}
	want := Path{{X: 3}, {X: 2}, {X: 1}}
	if diff := cmp.Diff(want, p.Reverse()); diff != "" {
		t.Errorf("Reverse mismatch (-want +got):\n%s", diff)
	}
}
