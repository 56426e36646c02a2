package nccprob

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Mode makes the dispersion policy explicit: per-file error bands are only
// estimated when a single group is being analyzed. When several groups are
// compared on one plot the groups are compared to each other instead.
type Mode int

const (
	SingleGroupWithDispersion Mode = iota
	MultiGroupComparison
)

// MaxGroups matches the number of distinguishable curve colors.
const MaxGroups = 4

type Config struct {
	Hist    HistConfig
	Mode    Mode
	Threads int
}

func DefaultConfig() Config {
	return Config{
		Hist:    DefaultHistConfig(),
		Mode:    SingleGroupWithDispersion,
		Threads: -1,
	}
}

// Group is an ordered set of NCC paths pooled into one curve.
type Group struct {
	Label string
	Paths []string
}

type Point struct {
	X float64
	Y float64
}

// ErrBand is the asymmetric-in-log error magnitude around one point.
type ErrBand struct {
	Lower JsonFloat
	Upper JsonFloat
}

// GroupCurve is one group's log-log contact probability curve. Band is nil
// when no dispersion was estimated. DecaySlope is the fitted log-log
// slope, NaN when the curve is too short to fit.
type GroupCurve struct {
	Label      string
	Points     []Point
	Band       []ErrBand `json:",omitempty"`
	DecaySlope JsonFloat
}

// GroupResult carries either a group's curve or that group's failure;
// independent groups fail independently.
type GroupResult struct {
	Group Group
	Curve GroupCurve
	Err   error
}

type Axes struct {
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64
	XTicks []float64
	YTicks []float64
}

// CollectGroupFiles reads each file's weighted separations, fanning out
// across files. Results come back in path order so pooling stays
// deterministic.
func CollectGroupFiles(threads int, paths ...string) ([][]SepWeight, error) {
	var g errgroup.Group
	if threads > 0 {
		g.SetLimit(threads)
	}

	out := make([][]SepWeight, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			sws, e := CollectFilePath(path)
			if e != nil {
				return e
			}
			out[i] = sws
			return nil
		})
	}
	if e := g.Wait(); e != nil {
		return nil, e
	}
	return out, nil
}

// CurvePoints keeps the occupied bins: empty bins have no density to
// report and would be -Inf after the log transform.
func CurvePoints(h Hist) ([]Point, []int) {
	var points []Point
	var bins []int
	for i, d := range h.Density {
		if d == 0 {
			continue
		}
		points = append(points, Point{
			X: math.Log10(h.Edges[i]),
			Y: math.Log10(d),
		})
		bins = append(bins, i)
	}
	return points, bins
}

// BuildGroupCurve pools a group's files into one combined curve, with a
// per-file dispersion band when the mode allows and the group has more
// than one file.
func BuildGroupCurve(g Group, cfg Config) (GroupCurve, error) {
	perFile, err := CollectGroupFiles(cfg.Threads, g.Paths...)
	if err != nil {
		return GroupCurve{}, err
	}

	var pooled []SepWeight
	for _, sws := range perFile {
		pooled = append(pooled, sws...)
	}

	comb, err := BuildHist(pooled, cfg.Hist)
	if err != nil {
		return GroupCurve{}, err
	}

	curve := GroupCurve{Label: strings.ReplaceAll(g.Label, "_", " ")}
	var bins []int
	curve.Points, bins = CurvePoints(comb)

	if cfg.Mode == SingleGroupWithDispersion && len(g.Paths) > 1 {
		hists, e := FileHists(perFile, cfg.Hist)
		if e != nil {
			return GroupCurve{}, e
		}
		std, e := BinStd(hists)
		if e != nil {
			return GroupCurve{}, e
		}

		curve.Band = make([]ErrBand, len(bins))
		for k, i := range bins {
			c := comb.Density[i]
			y := curve.Points[k].Y
			curve.Band[k] = ErrBand{
				Lower: JsonFloat(y - math.Log10(c-std[i])),
				Upper: JsonFloat(math.Log10(c+std[i]) - y),
			}
		}
	}

	if slope, _, e := FitDecay(curve.Points); e == nil {
		curve.DecaySlope = JsonFloat(slope)
	} else {
		curve.DecaySlope = JsonFloat(math.NaN())
	}

	return curve, nil
}

// GroupLabel fills in a default label for unlabeled multi-file groups.
func GroupLabel(g Group, i, ngroups int) string {
	if g.Label != "" {
		return g.Label
	}
	if len(g.Paths) > 1 {
		if ngroups > 1 {
			return fmt.Sprintf("Group %d", i+1)
		}
		return "Combined datasets"
	}
	return ""
}

func Ticks(lo, hi float64) []float64 {
	var out []float64
	for t := lo; t < hi; t += 0.5 {
		out = append(out, t)
	}
	return out
}

// CurveAxes picks plot bounds: x spans the bin grid; y comes from the
// curves, truncated to half integers, or is fixed when several groups
// share one plot so their scales match.
func CurveAxes(cfg Config, curves []GroupCurve) (Axes, error) {
	var ax Axes
	ax.XMin = math.Log10(cfg.Hist.BinSize)
	ax.XMax = math.Log10(cfg.Hist.MaxSep)

	if cfg.Mode == MultiGroupComparison {
		ax.YMin, ax.YMax = -9.5, -5.5
	} else {
		var ys []float64
		for _, c := range curves {
			for _, p := range c.Points {
				ys = append(ys, p.Y)
			}
		}
		ymin, err := stats.Min(ys)
		if err != nil {
			return ax, err
		}
		ymax, err := stats.Max(ys)
		if err != nil {
			return ax, err
		}
		ax.YMin = math.Trunc(2*ymin) / 2
		ax.YMax = math.Trunc(1+2*ymax) / 2
	}

	ax.XTicks = Ticks(ax.XMin, ax.XMax)
	ax.YTicks = Ticks(ax.YMin, ax.YMax)
	return ax, nil
}

// Aggregate produces one curve per group. A failing group taints only its
// own result; Aggregate errors out as a whole only when no group
// succeeds or the configuration itself is bad.
func Aggregate(cfg Config, groups ...Group) ([]GroupResult, Axes, error) {
	if len(groups) < 1 || len(groups) > MaxGroups {
		return nil, Axes{}, fmt.Errorf("got %v groups; need 1-%v", len(groups), MaxGroups)
	}
	if cfg.Mode == SingleGroupWithDispersion && len(groups) != 1 {
		return nil, Axes{}, fmt.Errorf("dispersion mode takes exactly 1 group; got %v", len(groups))
	}

	results := make([]GroupResult, len(groups))
	var curves []GroupCurve
	for i, g := range groups {
		g.Label = GroupLabel(g, i, len(groups))
		results[i].Group = g

		c, e := BuildGroupCurve(g, cfg)
		if e != nil {
			results[i].Err = fmt.Errorf("group %v (%v): %w", i+1, g.Label, e)
			continue
		}
		results[i].Curve = c
		curves = append(curves, c)
	}

	if len(curves) == 0 {
		errs := make([]string, 0, len(results))
		for _, res := range results {
			if res.Err != nil {
				errs = append(errs, res.Err.Error())
			}
		}
		return results, Axes{}, fmt.Errorf("no group produced a curve: %v", strings.Join(errs, "; "))
	}

	ax, err := CurveAxes(cfg, curves)
	if err != nil {
		return results, Axes{}, err
	}
	return results, ax, nil
}
