package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/nccprob"
)

type Flags struct {
	In        string
	Out       string
	BinSizeKb float64
	Multi     bool
}

func GetFlags() Flags {
	var f Flags
	flag.StringVar(&f.In, "i", "", "JSON curve stream from nccprob -j (default stdin).")
	flag.StringVar(&f.Out, "o", "", "Output image path, format by extension (required).")
	flag.Float64Var(&f.BinSizeKb, "b", 100, "Bin size in kb the curves were built with.")
	flag.BoolVar(&f.Multi, "multi", false, "Use the fixed multi-group y axis bounds.")
	flag.Parse()

	if f.Out == "" {
		fmt.Fprintln(os.Stderr, "Missing -o, output path")
		flag.Usage()
		os.Exit(1)
	}
	return f
}

func GetCurves(f Flags) ([]nccprob.GroupCurve, error) {
	if f.In == "" {
		return nccprob.ReadCurvesJson(os.Stdin)
	}

	r, e := csvh.OpenMaybeGz(f.In)
	if e != nil {
		return nil, e
	}
	defer func() { nccprob.Must(r.Close()) }()
	return nccprob.ReadCurvesJson(r)
}

func main() {
	f := GetFlags()

	curves, e := GetCurves(f)
	nccprob.Must(e)
	if len(curves) == 0 {
		nccprob.Must(fmt.Errorf("no curves to plot"))
	}

	cfg := nccprob.DefaultConfig()
	cfg.Hist.BinSize = f.BinSizeKb * 1e3
	if f.Multi {
		cfg.Mode = nccprob.MultiGroupComparison
	}

	axes, e := nccprob.CurveAxes(cfg, curves)
	nccprob.Must(e)

	nccprob.Must(nccprob.PlotCurves(f.Out, axes, curves...))
}
