package nccprob

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// FileHists builds one density histogram per file on the shared edge
// grid. A file with nothing in range contributes zero in every bin rather
// than erroring: the empty-input check already happened when the file's
// contacts were collected.
func FileHists(perFile [][]SepWeight, cfg HistConfig) ([]Hist, error) {
	edges := cfg.Edges()
	if edges == nil {
		return nil, fmt.Errorf("bad histogram config: binsize %v, maxsep %v", cfg.BinSize, cfg.MaxSep)
	}

	hists := make([]Hist, len(perFile))
	for i, sws := range perFile {
		counts := histCounts(sws, edges)
		if floats.Sum(counts) > 0 {
			counts = Normalize(counts, edges)
		}
		hists[i] = Hist{Edges: edges, Density: counts}
	}
	return hists, nil
}

// BinStd is the per-bin sample standard deviation (n-1 divisor) of the
// per-file densities. It needs at least two files; with one file there is
// no dispersion to estimate.
func BinStd(hists []Hist) ([]float64, error) {
	if len(hists) < 2 {
		return nil, fmt.Errorf("dispersion needs at least 2 files; got %v", len(hists))
	}

	nbins := hists[0].Bins()
	for _, h := range hists {
		if h.Bins() != nbins {
			return nil, fmt.Errorf("histogram bin counts differ: %v vs %v", h.Bins(), nbins)
		}
	}

	out := make([]float64, nbins)
	vals := make([]float64, len(hists))
	for j := 0; j < nbins; j++ {
		for i, h := range hists {
			vals[i] = h.Density[j]
		}
		sd, err := stats.StandardDeviationSample(vals)
		if err != nil {
			return nil, err
		}
		out[j] = sd
	}
	return out, nil
}
