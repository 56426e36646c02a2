package nccprob

import (
	"fmt"

	"github.com/sajari/regression"
)

// FitDecay fits log10(p) = intercept + slope*log10(s) over a curve's
// points. Contact probability decays roughly as a power law, so -slope
// estimates the decay exponent.
func FitDecay(points []Point) (slope, intercept float64, err error) {
	if len(points) < 2 {
		return 0, 0, fmt.Errorf("decay fit needs at least 2 points; got %v", len(points))
	}

	ds := make(regression.DataPoints, 0, len(points))
	for _, p := range points {
		ds = append(ds, regression.DataPoint(p.Y, []float64{p.X}))
	}

	r := new(regression.Regression)
	r.SetObserved("log10 contact probability")
	r.SetVar(0, "log10 separation")
	r.Train(ds...)
	if e := r.Run(); e != nil {
		return 0, 0, e
	}

	coeffs := r.GetCoeffs()
	if len(coeffs) < 2 {
		return 0, 0, fmt.Errorf("decay fit produced %v coefficients", len(coeffs))
	}
	return coeffs[1], coeffs[0], nil
}
