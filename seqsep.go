package nccprob

import (
	"errors"
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iter"
)

var (
	ErrEmptyInput         = errors.New("no usable cis contacts")
	ErrInconsistentExtent = errors.New("separation not less than chromosome span")
)

// SepWeight is one contact's anchor separation and its finite-size
// correction weight.
type SepWeight struct {
	Sep    int64
	Weight float64
}

type AnchorPair struct {
	A int64
	B int64
}

// FileContacts buffers the cis contacts of one file per chromosome.
// Weights depend on the final per-chromosome extent, which is only known
// once the whole file has been read, so nothing is weighted until
// Finalize.
type FileContacts struct {
	Extents *Extents
	Anchors map[string][]AnchorPair
}

func NewFileContacts() *FileContacts {
	return &FileContacts{
		Extents: NewExtents(),
		Anchors: make(map[string][]AnchorPair),
	}
}

func (f *FileContacts) Add(rec NccRecord) {
	f.Extents.Add(rec)
	f.Anchors[rec.ChrA] = append(f.Anchors[rec.ChrA], AnchorPair{rec.AnchorA(), rec.AnchorB()})
}

// Finalize computes separations and weights against the finished extents.
// Zero separations are dropped; a separation at or past the chromosome
// span means the extents and the data disagree, which is an error rather
// than a skip.
func (f *FileContacts) Finalize() ([]SepWeight, error) {
	var out []SepWeight
	for _, chrom := range f.Extents.Chroms() {
		ext, err := f.Extents.Extent(chrom)
		if err != nil {
			return nil, err
		}
		span := ext.Span()
		for _, a := range f.Anchors[chrom] {
			sep := Abs(a.A - a.B)
			if sep == 0 {
				continue
			}
			if sep >= span {
				return nil, fmt.Errorf("%v: separation %v, span %v: %w", chrom, sep, span, ErrInconsistentExtent)
			}
			w := float64(span) / float64(span-sep)
			out = append(out, SepWeight{Sep: sep, Weight: w})
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyInput
	}
	return out, nil
}

func CollectContacts(it iter.Iter[NccRecord]) (*FileContacts, error) {
	f := NewFileContacts()
	err := it.Iterate(func(rec NccRecord) error {
		f.Add(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CollectFile reads one NCC stream to the end and returns its weighted
// separations.
func CollectFile(r io.Reader) ([]SepWeight, error) {
	f, err := CollectContacts(ParseNcc(r))
	if err != nil {
		return nil, err
	}
	return f.Finalize()
}

func CollectFilePath(path string) (sws []SepWeight, err error) {
	r, err := csvh.OpenMaybeGz(path)
	if err != nil {
		return nil, err
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()

	sws, err = CollectFile(r)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return sws, nil
}

func Must(e error) {
	if e != nil {
		panic(e)
	}
}
