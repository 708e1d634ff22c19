package graph

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/DanastyChen/MINDG/matrix"
)

// LoadFeatures reads a sparse node feature matrix from file, the file
// format should be like:
// [nodeId featureIdx:value featureIdx:value ... featureIdx:value]
// the dense extents of the matrix are inferred from the index bounds
func LoadFeatures(fn string) (*matrix.CooMatrix, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrap(err, "graph: open feature file")
	}
	defer f.Close()

	feats := &matrix.CooMatrix{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		vals := strings.Split(line, " ")
		if len(vals) < 2 {
			log.Printf("bad feature line: %s", line)
			continue
		}

		nodeId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "graph: node id %q", vals[0])
		}

		for _, kv := range vals[1:] {
			fv := strings.Split(kv, ":")
			if len(fv) != 2 {
				log.Printf("bad feature: %s", kv)
				continue
			}

			featureIdx, err := strconv.ParseUint(fv[0], 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "graph: feature index %q", fv[0])
			}
			value, err := strconv.ParseFloat(fv[1], 32)
			if err != nil {
				return nil, errors.Wrapf(err, "graph: feature value %q", fv[1])
			}

			feats.Append(uint32(nodeId), uint32(featureIdx), float32(value))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "graph: scan feature file")
	}

	r, c := feats.Shape()
	log.Printf("feature matrix %d x %d", r, c)
	return feats, nil
}
