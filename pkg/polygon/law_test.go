package polygon

import (
	"testing"

	"github.com/Faultbox/polyfx/pkg/math"
)

func testPolygon() *Polygon {
	outline := []math.Vec2{{X: -5, Y: -5}, {X: -5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: -5}}
	p := NewPolygon(outline, math.Vec3{X: 10, Y: 20, Z: -0.005}, 0.005)
	p.RotAngleStart = 5
	p.RotAngle = 5
	p.RotAxis = math.Vec3{Z: 1}
	p.FinalRelPos = math.Vec3{X: 30, Y: -40, Z: 0.2}
	p.FinalRotAngle = 90
	return p
}

func TestLawBoundaries(t *testing.T) {
	laws := []struct {
		name string
		law  Law
	}{
		{"linear", LinearLaw{}},
		{"decelerating", DeceleratingLaw{}},
	}

	for _, tt := range laws {
		t.Run(tt.name, func(t *testing.T) {
			p := testPolygon()

			tt.law.Step(p, 0)
			if p.Center != p.CenterStart {
				t.Errorf("step(0) center = %v, want %v", p.Center, p.CenterStart)
			}
			if p.RotAngle != p.RotAngleStart {
				t.Errorf("step(0) angle = %v, want %v", p.RotAngle, p.RotAngleStart)
			}

			tt.law.Step(p, 1)
			if want := p.CenterStart.Add(p.FinalRelPos); p.Center != want {
				t.Errorf("step(1) center = %v, want %v", p.Center, want)
			}
			if want := p.RotAngleStart + p.FinalRotAngle; p.RotAngle != want {
				t.Errorf("step(1) angle = %v, want %v", p.RotAngle, want)
			}
		})
	}
}

func TestWindowProgress(t *testing.T) {
	tests := []struct {
		name    string
		w       Window
		forward float32
		want    float32
	}{
		{"before start", Window{Start: 0.5, Duration: 0.25}, 0.25, 0},
		{"midway", Window{Start: 0.5, Duration: 0.25}, 0.625, 0.5},
		{"after end", Window{Start: 0.5, Duration: 0.25}, 1, 1},
		{"zero duration", Window{Start: 0.2}, 0.7, 0.5},
		{"default", Window{Start: 0, Duration: 1}, 0.3, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Progress(tt.forward); abs32(got-tt.want) > 1e-6 {
				t.Errorf("Progress(%v) = %v, want %v", tt.forward, got, tt.want)
			}
		})
	}
}

func TestDecelerate(t *testing.T) {
	if got := Decelerate(0); abs32(got) > 1e-6 {
		t.Errorf("Decelerate(0) = %v, want 0", got)
	}
	if got := Decelerate(1); abs32(got-1) > 1e-6 {
		t.Errorf("Decelerate(1) = %v, want 1", got)
	}

	prev := Decelerate(0)
	for i := 1; i <= 1000; i++ {
		x := float32(i) / 1000
		v := Decelerate(x)
		if v < prev {
			t.Fatalf("Decelerate not monotonic at %v: %v < %v", x, v, prev)
		}
		prev = v
	}

	if got := Decelerate(0.5); abs32(got-0.3932) > 1e-3 {
		t.Errorf("Decelerate(0.5) = %v, want 0.3932", got)
	}
}

func TestPhasedLaw(t *testing.T) {
	var ran []int
	phase := func(id int) LawFunc {
		return func(p *Polygon, forward float32) { ran = append(ran, id) }
	}
	law := PhasedLaw{Phases: []Phase{
		{Start: 0.2, Step: phase(1)},
		{Start: 0.5, Step: phase(2)},
		{Start: 0.8, Step: phase(3)},
	}}

	p := testPolygon()
	for _, fp := range []float32{0, 0.3, 0.5, 0.79, 0.8, 1} {
		law.Step(p, fp)
	}

	want := []int{1, 1, 2, 2, 3, 3}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("step %d ran phase %d, want %d", i, ran[i], want[i])
		}
	}
}

func TestLawFuncAdapter(t *testing.T) {
	called := false
	var law Law = LawFunc(func(p *Polygon, forward float32) { called = forward == 0.4 })
	law.Step(testPolygon(), 0.4)
	if !called {
		t.Error("LawFunc did not forward the call")
	}
}
