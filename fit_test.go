package nccprob

import (
	"math"
	"testing"
)

func TestFitDecayRecoversSlope(t *testing.T) {
	// exact power law: log10(p) = -1.2*log10(s) - 2
	var points []Point
	for x := 5.0; x < 7.5; x += 0.25 {
		points = append(points, Point{X: x, Y: -1.2*x - 2})
	}

	slope, intercept, e := FitDecay(points)
	if e != nil {
		t.Fatal(e)
	}
	if math.Abs(slope-(-1.2)) > 1e-6 {
		t.Errorf("got slope %v; want -1.2", slope)
	}
	if math.Abs(intercept-(-2)) > 1e-6 {
		t.Errorf("got intercept %v; want -2", intercept)
	}
}

func TestFitDecayTooShort(t *testing.T) {
	if _, _, e := FitDecay([]Point{{X: 5, Y: -7}}); e == nil {
		t.Error("1-point fit did not error")
	}
}
