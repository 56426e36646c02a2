package nccprob

import (
	"fmt"
	"sort"
)

type Extent struct {
	Min int64
	Max int64
}

// Span is the usable chromosome length for finite-size weighting.
func (e Extent) Span() int64 {
	return e.Max - e.Min + 1
}

// Extents tracks the running fragment coordinate range of each chromosome
// within one input file. Chromosome coverage differs between datasets, so
// each file gets its own tracker.
type Extents struct {
	m map[string]Extent
}

func NewExtents() *Extents {
	return &Extents{m: make(map[string]Extent)}
}

// Add widens the chromosome's extent over all four fragment coordinates of
// a cis record. Extents never shrink.
func (x *Extents) Add(rec NccRecord) {
	ext, ok := x.m[rec.ChrA]
	if !ok {
		ext = Extent{Min: rec.FragStartA, Max: rec.FragStartA}
	}
	for _, c := range [4]int64{rec.FragStartA, rec.FragEndA, rec.FragStartB, rec.FragEndB} {
		if c < ext.Min {
			ext.Min = c
		}
		if c > ext.Max {
			ext.Max = c
		}
	}
	x.m[rec.ChrA] = ext
}

func (x *Extents) Extent(chrom string) (Extent, error) {
	ext, ok := x.m[chrom]
	if !ok {
		return ext, fmt.Errorf("chromosome %v never observed", chrom)
	}
	return ext, nil
}

func (x *Extents) Chroms() []string {
	out := make([]string, 0, len(x.m))
	for chrom := range x.m {
		out = append(out, chrom)
	}
	sort.Strings(out)
	return out
}
