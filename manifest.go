package nccprob

import (
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fasttsv"
)

// ParseManifest reads a tab-delimited group manifest: one line per input
// file, label then path. Consecutive lines sharing a label form one
// ordered group.
func ParseManifest(r io.Reader) ([]Group, error) {
	s := fasttsv.NewScanner(r)
	var groups []Group
	lineno := 0
	for s.Scan() {
		lineno++
		line := s.Line()
		if len(line) < 1 || line[0] == "" || line[0][0] == '#' {
			continue
		}
		if len(line) < 2 {
			return nil, fmt.Errorf("manifest line %v: need label and path", lineno)
		}

		var label, path string
		if _, e := csvh.Scan(line, &label, &path); e != nil {
			return nil, fmt.Errorf("manifest line %v: %w", lineno, e)
		}

		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, Group{Label: label})
		}
		g := &groups[len(groups)-1]
		g.Paths = append(g.Paths, path)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("empty manifest")
	}
	return groups, nil
}

func ParseManifestPath(path string) (groups []Group, err error) {
	r, err := csvh.OpenMaybeGz(path)
	if err != nil {
		return nil, err
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()

	groups, err = ParseManifest(r)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return groups, nil
}
