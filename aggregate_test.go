package nccprob

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var gOneContact = "chr1 0 1000 10 110 + chr1 5000 10000 5100 5200 - 1 1 0\n"

func writeNcc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if e := os.WriteFile(path, []byte(content), 0644); e != nil {
		t.Fatal(e)
	}
	return path
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Hist = gSmallHist
	return cfg
}

func TestAggregateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	g := Group{Paths: []string{
		writeNcc(t, dir, "a.ncc", gOneContact),
		writeNcc(t, dir, "b.ncc", gOneContact),
	}}

	results, axes, e := Aggregate(smallConfig(), g)
	if e != nil {
		t.Fatal(e)
	}
	if results[0].Err != nil {
		t.Fatal(results[0].Err)
	}

	c := results[0].Curve
	if c.Label != "Combined datasets" {
		t.Errorf("got label %q; want \"Combined datasets\"", c.Label)
	}
	if len(c.Points) != 1 {
		t.Fatalf("got %v points; want 1", len(c.Points))
	}

	// one occupied bin covering separation 4000 at density 1/width
	edges := gSmallHist.Edges()
	h, e := BuildHist([]SepWeight{{Sep: 4000, Weight: 10001.0 / 6001.0}}, gSmallHist)
	if e != nil {
		t.Fatal(e)
	}
	wantPoints, bins := CurvePoints(h)
	if d := cmp.Diff(wantPoints, c.Points); d != "" {
		t.Errorf("curve points mismatch:\n%v", d)
	}
	if lo := edges[bins[0]]; lo > 4000 {
		t.Errorf("occupied bin starts at %v; should cover 4000", lo)
	}

	// identical files: zero dispersion, band bounds equal the curve
	if len(c.Band) != 1 {
		t.Fatalf("got %v band entries; want 1", len(c.Band))
	}
	if c.Band[0].Lower != 0 || c.Band[0].Upper != 0 {
		t.Errorf("got band %v; want zero band for identical files", c.Band[0])
	}

	if !math.IsNaN(float64(c.DecaySlope)) {
		t.Errorf("got decay slope %v for a 1-point curve; want NaN", c.DecaySlope)
	}

	if axes.XMin != math.Log10(gSmallHist.BinSize) {
		t.Errorf("got x min %v; want %v", axes.XMin, math.Log10(gSmallHist.BinSize))
	}
	if axes.XMax != math.Log10(gSmallHist.MaxSep) {
		t.Errorf("got x max %v; want %v", axes.XMax, math.Log10(gSmallHist.MaxSep))
	}
}

func TestAggregateIdempotent(t *testing.T) {
	dir := t.TempDir()
	g := Group{Paths: []string{
		writeNcc(t, dir, "a.ncc", gOneContact+gNccIn),
		writeNcc(t, dir, "b.ncc", gNccIn),
	}}

	r1, ax1, e := Aggregate(smallConfig(), g)
	if e != nil {
		t.Fatal(e)
	}
	r2, ax2, e := Aggregate(smallConfig(), g)
	if e != nil {
		t.Fatal(e)
	}

	if d := cmp.Diff(r1[0].Curve, r2[0].Curve, cmpopts.EquateNaNs(), equateJsonFloatNaNs); d != "" {
		t.Errorf("curves differ between runs:\n%v", d)
	}
	if d := cmp.Diff(ax1, ax2); d != "" {
		t.Errorf("axes differ between runs:\n%v", d)
	}
}

func TestAggregateGroupsFailIndependently(t *testing.T) {
	dir := t.TempDir()
	good := Group{Label: "good", Paths: []string{writeNcc(t, dir, "a.ncc", gOneContact)}}
	bad := Group{Label: "bad", Paths: []string{filepath.Join(dir, "missing.ncc")}}

	cfg := smallConfig()
	cfg.Mode = MultiGroupComparison

	results, axes, e := Aggregate(cfg, good, bad)
	if e != nil {
		t.Fatal(e)
	}
	if results[0].Err != nil {
		t.Errorf("good group failed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("bad group did not fail")
	}

	// multi-group comparison pins the y bounds
	if axes.YMin != -9.5 || axes.YMax != -5.5 {
		t.Errorf("got y bounds [%v, %v]; want [-9.5, -5.5]", axes.YMin, axes.YMax)
	}
}

func TestAggregateEmptyGroup(t *testing.T) {
	dir := t.TempDir()
	trans := "chr1 0 1000 10 110 + chr2 5000 10000 5100 5200 - 1 1 0\n"
	g := Group{Paths: []string{writeNcc(t, dir, "trans.ncc", trans)}}

	results, _, e := Aggregate(smallConfig(), g)
	if e == nil {
		t.Fatal("all-trans group did not error")
	}
	if !errors.Is(results[0].Err, ErrEmptyInput) {
		t.Errorf("got %v; want ErrEmptyInput", results[0].Err)
	}
}

func TestAggregateModeChecks(t *testing.T) {
	g1 := Group{Paths: []string{"a.ncc"}}
	g2 := Group{Paths: []string{"b.ncc"}}

	if _, _, e := Aggregate(smallConfig(), g1, g2); e == nil {
		t.Error("dispersion mode with 2 groups did not error")
	}
	if _, _, e := Aggregate(smallConfig()); e == nil {
		t.Error("0 groups did not error")
	}

	cfg := smallConfig()
	cfg.Mode = MultiGroupComparison
	many := []Group{g1, g2, g1, g2, g1}
	if _, _, e := Aggregate(cfg, many...); e == nil {
		t.Error("5 groups did not error")
	}
}

func TestDispersionOnlyInSingleGroupMode(t *testing.T) {
	dir := t.TempDir()
	g := Group{Paths: []string{
		writeNcc(t, dir, "a.ncc", gOneContact),
		writeNcc(t, dir, "b.ncc", gOneContact),
	}}

	cfg := smallConfig()
	cfg.Mode = MultiGroupComparison
	results, _, e := Aggregate(cfg, g)
	if e != nil {
		t.Fatal(e)
	}
	if results[0].Curve.Band != nil {
		t.Error("multi-group comparison computed a per-file band")
	}
}
