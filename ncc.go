package nccprob

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iter"
)

const NccFields = 15

// NccRecord is one line of an NCC contact file: the two restriction
// fragments a ligation junction joins, the read positions supporting it,
// and the pass-through bookkeeping fields.
type NccRecord struct {
	ChrA       string
	FragStartA int64
	FragEndA   int64
	StartA     int64
	EndA       int64
	StrandA    int
	ChrB       string
	FragStartB int64
	FragEndB   int64
	StartB     int64
	EndB       int64
	StrandB    int
	AmbigGroup string
	PairID     string
	Swapped    string
}

func (r NccRecord) Cis() bool {
	return r.ChrA == r.ChrB
}

// Anchor picks the ligation-proximal fragment coordinate: the fragment end
// on the plus strand, the fragment start on the minus strand.
func Anchor(strand int, fragStart, fragEnd int64) int64 {
	if strand > 0 {
		return fragEnd
	}
	return fragStart
}

func (r NccRecord) AnchorA() int64 {
	return Anchor(r.StrandA, r.FragStartA, r.FragEndA)
}

func (r NccRecord) AnchorB() int64 {
	return Anchor(r.StrandB, r.FragStartB, r.FragEndB)
}

func (r NccRecord) Separation() int64 {
	return Abs(r.AnchorA() - r.AnchorB())
}

func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// ParseStrand accepts the +/- convention and the signed-integer convention
// some NCC writers emit.
func ParseStrand(field string) (int, error) {
	switch field {
	case "+", "1":
		return 1, nil
	case "-", "-1":
		return -1, nil
	}
	return 0, fmt.Errorf("bad strand %q", field)
}

func ParseNccLine(fields []string) (NccRecord, error) {
	var rec NccRecord
	if len(fields) != NccFields {
		return rec, fmt.Errorf("got %v fields; need %v", len(fields), NccFields)
	}

	var strandA, strandB string
	_, err := csvh.Scan(fields,
		&rec.ChrA, &rec.FragStartA, &rec.FragEndA, &rec.StartA, &rec.EndA, &strandA,
		&rec.ChrB, &rec.FragStartB, &rec.FragEndB, &rec.StartB, &rec.EndB, &strandB,
		&rec.AmbigGroup, &rec.PairID, &rec.Swapped,
	)
	if err != nil {
		return rec, err
	}

	if rec.StrandA, err = ParseStrand(strandA); err != nil {
		return rec, err
	}
	if rec.StrandB, err = ParseStrand(strandB); err != nil {
		return rec, err
	}
	return rec, nil
}

// ParseNcc lazily yields the cis contacts of one NCC file. Records are
// whitespace-delimited; comment and blank lines are skipped; trans records
// are dropped before coordinate parsing. A malformed retained line is an
// error, not a skip: silently losing records would corrupt the probability
// normalization downstream.
func ParseNcc(r io.Reader) *iter.Iterator[NccRecord] {
	return &iter.Iterator[NccRecord]{Iteratef: func(yield func(NccRecord) error) error {
		s := bufio.NewScanner(r)
		s.Buffer([]byte{}, 1e12)
		lineno := 0
		for s.Scan() {
			lineno++
			text := s.Text()
			if text == "" || text[0] == '#' {
				continue
			}
			fields := strings.Fields(text)
			if len(fields) != NccFields {
				return fmt.Errorf("line %v: got %v fields; need %v", lineno, len(fields), NccFields)
			}
			if fields[0] != fields[6] {
				continue
			}
			rec, e := ParseNccLine(fields)
			if e != nil {
				return fmt.Errorf("line %v: %w", lineno, e)
			}
			if e := yield(rec); e != nil {
				return e
			}
		}
		return s.Err()
	}}
}
