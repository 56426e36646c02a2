package nccprob

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrDegenerateHist = errors.New("all histogram bins empty")

// HistConfig fixes the linear bin grid: bins of roughly BinSize bp from
// BinSize up to MaxSep. MaxSep is a sentinel well past genome-scale
// separations.
type HistConfig struct {
	BinSize float64
	MaxSep  float64
}

func DefaultHistConfig() HistConfig {
	return HistConfig{
		BinSize: 1e5,
		MaxSep:  math.Pow(10, 7.7),
	}
}

// Edges spans BinSize to MaxSep inclusive with (MaxSep-BinSize)/BinSize
// points, so the realized bin width is slightly wider than BinSize.
func (c HistConfig) Edges() []float64 {
	n := int((c.MaxSep - c.BinSize) / c.BinSize)
	if n < 2 {
		return nil
	}
	return floats.Span(make([]float64, n), c.BinSize, c.MaxSep)
}

// Hist is a weighted histogram over a shared edge grid. Density holds one
// value per bin; empty bins stay zero so histograms from different files
// line up bin for bin.
type Hist struct {
	Edges   []float64
	Density []float64
}

func (h Hist) Bins() int {
	return len(h.Density)
}

// BinWidth is the linear width of bin i.
func (h Hist) BinWidth(i int) float64 {
	return h.Edges[i+1] - h.Edges[i]
}

// histCounts sums weights per bin, ignoring out-of-range separations the
// way the edge grid defines them. The last bin is closed on the right, so
// a separation exactly at the final edge lands in it.
func histCounts(sws []SepWeight, edges []float64) []float64 {
	lo := edges[0]
	hi := edges[len(edges)-1]

	atHi := 0.0
	seps := make([]float64, 0, len(sws))
	weights := make([]float64, 0, len(sws))
	for _, sw := range sws {
		s := float64(sw.Sep)
		if s < lo || s > hi {
			continue
		}
		if s == hi {
			atHi += sw.Weight
			continue
		}
		seps = append(seps, s)
		weights = append(weights, sw.Weight)
	}

	idx := make([]int, len(seps))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return seps[idx[i]] < seps[idx[j]]
	})
	sorted := make([]float64, len(seps))
	sortedw := make([]float64, len(weights))
	for i, j := range idx {
		sorted[i] = seps[j]
		sortedw[i] = weights[j]
	}

	counts := stat.Histogram(make([]float64, len(edges)-1), edges, sorted, sortedw)
	counts[len(counts)-1] += atHi
	return counts
}

// Normalize converts weighted counts to a density: each bin is divided by
// total weight times bin width, so the histogram integrates to 1.
func Normalize(counts, edges []float64) []float64 {
	total := floats.Sum(counts)
	if total <= 0 {
		return counts
	}
	for i := range counts {
		counts[i] /= total * (edges[i+1] - edges[i])
	}
	return counts
}

// BuildHist bins weighted separations into the configured grid and
// density-normalizes. An all-empty histogram is an error: there is no
// curve to report.
func BuildHist(sws []SepWeight, cfg HistConfig) (Hist, error) {
	edges := cfg.Edges()
	if edges == nil {
		return Hist{}, fmt.Errorf("bad histogram config: binsize %v, maxsep %v", cfg.BinSize, cfg.MaxSep)
	}

	counts := histCounts(sws, edges)
	if floats.Sum(counts) <= 0 {
		return Hist{}, ErrDegenerateHist
	}

	return Hist{Edges: edges, Density: Normalize(counts, edges)}, nil
}
