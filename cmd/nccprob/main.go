package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jgbaldwinbrown/nccprob"
)

type Flags struct {
	BinSizeKb float64
	Manifest  string
	Labels    string
	JsonOut   bool
	Out       string
	Svg       string
	Threads   int
}

func GetFlags() Flags {
	var f Flags
	flag.Float64Var(&f.BinSizeKb, "b", 100, "Bin size in kb.")
	flag.StringVar(&f.Manifest, "m", "", "Tab-delimited group manifest (label, path); positional args form a single group instead.")
	flag.StringVar(&f.Labels, "labels", "", "Comma-separated group labels, overriding the manifest.")
	flag.BoolVar(&f.JsonOut, "j", false, "Output as JSON.")
	flag.StringVar(&f.Out, "o", "", "Output path (default stdout).")
	flag.StringVar(&f.Svg, "svg", "", "Also render the curves to this path.")
	flag.IntVar(&f.Threads, "t", -1, "Files to read concurrently per group (default unlimited).")
	flag.Parse()

	if f.Manifest == "" && flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Missing input: give -m or NCC paths")
		flag.Usage()
		os.Exit(1)
	}
	return f
}

func GetGroups(f Flags) ([]nccprob.Group, error) {
	var groups []nccprob.Group
	if f.Manifest != "" {
		var e error
		groups, e = nccprob.ParseManifestPath(f.Manifest)
		if e != nil {
			return nil, e
		}
	} else {
		groups = []nccprob.Group{{Paths: flag.Args()}}
	}

	if f.Labels != "" {
		labels := strings.Split(f.Labels, ",")
		if len(labels) != len(groups) {
			return nil, fmt.Errorf("got %v labels for %v groups", len(labels), len(groups))
		}
		for i := range groups {
			groups[i].Label = labels[i]
		}
	}
	return groups, nil
}

func WriteResults(f Flags, results ...nccprob.GroupResult) error {
	if f.Out != "" {
		return nccprob.WriteCurvesPath(f.Out, f.JsonOut, results...)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if f.JsonOut {
		return nccprob.WriteCurvesJson(w, results...)
	}
	return nccprob.FprintCurves(w, results...)
}

func main() {
	f := GetFlags()

	groups, e := GetGroups(f)
	nccprob.Must(e)

	cfg := nccprob.DefaultConfig()
	cfg.Hist.BinSize = f.BinSizeKb * 1e3
	cfg.Threads = f.Threads
	if len(groups) > 1 {
		cfg.Mode = nccprob.MultiGroupComparison
	}

	results, axes, e := nccprob.Aggregate(cfg, groups...)
	nccprob.Must(e)

	for _, res := range results {
		if res.Err != nil {
			log.Printf("%v", res.Err)
		}
	}

	nccprob.Must(WriteResults(f, results...))

	if f.Svg != "" {
		var curves []nccprob.GroupCurve
		for _, res := range results {
			if res.Err == nil {
				curves = append(curves, res.Curve)
			}
		}
		nccprob.Must(nccprob.PlotCurves(f.Svg, axes, curves...))
	}
}
