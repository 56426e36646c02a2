package nccprob

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/csvh"
)

func FprintCurveHeader(w io.Writer) {
	fmt.Fprintln(w, "group\tlabel\tlog10_sep\tlog10_prob\terr_lower\terr_upper")
}

// FprintCurves writes every successful group's curve as a TSV table.
// Points with no error band get NA in the error columns.
func FprintCurves(w io.Writer, results ...GroupResult) error {
	FprintCurveHeader(w)
	for i, res := range results {
		if res.Err != nil {
			continue
		}
		c := res.Curve
		for k, p := range c.Points {
			lower, upper := "NA", "NA"
			if c.Band != nil {
				lower = fmt.Sprint(float64(c.Band[k].Lower))
				upper = fmt.Sprint(float64(c.Band[k].Upper))
			}
			_, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n", i+1, c.Label, p.X, p.Y, lower, upper)
			if e != nil {
				return e
			}
		}
	}
	return nil
}

// WriteCurvesJson encodes one GroupCurve object per successful group, in
// group order.
func WriteCurvesJson(w io.Writer, results ...GroupResult) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if e := enc.Encode(res.Curve); e != nil {
			return e
		}
	}
	return nil
}

// ReadCurvesJson decodes a stream of GroupCurve objects, the inverse of
// WriteCurvesJson.
func ReadCurvesJson(r io.Reader) ([]GroupCurve, error) {
	dec := json.NewDecoder(r)
	var out []GroupCurve
	var c GroupCurve
	for err := dec.Decode(&c); err != io.EOF; err = dec.Decode(&c) {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		c = GroupCurve{}
	}
	return out, nil
}

func WriteCurvesPath(path string, jsonOut bool, results ...GroupResult) (err error) {
	w, err := csvh.CreateMaybeGz(path)
	if err != nil {
		return err
	}
	defer func() { csvh.DeferE(&err, w.Close()) }()

	if jsonOut {
		return WriteCurvesJson(w, results...)
	}
	return FprintCurves(w, results...)
}
