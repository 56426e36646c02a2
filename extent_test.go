package nccprob

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtents(t *testing.T) {
	x := NewExtents()
	recs := collectNcc(t, gNccIn)
	for _, r := range recs {
		x.Add(r)
	}

	ext, e := x.Extent("chr1")
	if e != nil {
		t.Fatal(e)
	}
	if d := cmp.Diff(Extent{Min: 0, Max: 10000}, ext); d != "" {
		t.Errorf("chr1 extent mismatch:\n%v", d)
	}
	if ext.Span() != 10001 {
		t.Errorf("got span %v; want 10001", ext.Span())
	}

	ext, e = x.Extent("chr2")
	if e != nil {
		t.Fatal(e)
	}
	if d := cmp.Diff(Extent{Min: 100, Max: 4800}, ext); d != "" {
		t.Errorf("chr2 extent mismatch:\n%v", d)
	}

	if _, e := x.Extent("chr3"); e == nil {
		t.Error("unseen chromosome did not error")
	}
}

func TestExtentsNeverShrink(t *testing.T) {
	x := NewExtents()
	wide := "chr1 0 9000 10 110 + chr1 8000 9000 8100 8200 - 1 1 0\n"
	narrow := "chr1 4000 5000 4100 4200 + chr1 4500 4900 4600 4700 - 2 2 0\n"
	for _, r := range collectNcc(t, wide+narrow) {
		x.Add(r)
	}

	ext, e := x.Extent("chr1")
	if e != nil {
		t.Fatal(e)
	}
	if ext.Min != 0 || ext.Max != 9000 {
		t.Errorf("got extent %v; want {0 9000}", ext)
	}
}

func TestExtentsPerFile(t *testing.T) {
	// two trackers over different data stay independent
	a := NewExtents()
	b := NewExtents()
	for _, r := range collectNcc(t, gNccIn) {
		a.Add(r)
	}
	for _, r := range collectNcc(t, strings.Replace(gNccIn, "10000", "20000", -1)) {
		b.Add(r)
	}

	exta, _ := a.Extent("chr1")
	extb, _ := b.Extent("chr1")
	if exta.Max == extb.Max {
		t.Errorf("trackers shared state: %v vs %v", exta, extb)
	}
}
