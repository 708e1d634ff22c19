package graph

import (
	"bufio"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/DanastyChen/MINDG/matrix"
	"github.com/DanastyChen/MINDG/util"
)

var ErrEmptyGraph = errors.New("graph: no nodes")

type Graph struct {
	NodeNum uint32
	EdgeNum uint32
	Edges   map[uint32][]*Endpoint
}

// Endpoint is one weighted arc out of a source node
type Endpoint struct {
	Dst    uint32
	Weight float32
}

// load graph data from file, the file format should be like:
// [srcId dstId:weight dstId:weight ... dstId:weight]
// symmetric graphs should list both directions of every edge. the
// function returns an error if srcId, dstId or weight cannot be parsed
func (this *Graph) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return errors.Wrap(err, "graph: open edge file")
	}
	defer f.Close()

	if this.Edges == nil {
		this.Edges = make(map[uint32][]*Endpoint)
	}
	nodeMaxId := uint32(0)
	seen := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		vals := strings.Split(line, " ")
		if len(vals) < 2 {
			log.Printf("bad adjacency line: %s", line)
			continue
		}

		srcId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return errors.Wrapf(err, "graph: source id %q", vals[0])
		}
		seen = true
		if uint32(srcId) > nodeMaxId {
			nodeMaxId = uint32(srcId)
		}

		for _, kv := range vals[1:] {
			dw := strings.Split(kv, ":")
			if len(dw) != 2 {
				log.Printf("bad edge: %s", kv)
				continue
			}

			dstId, err := strconv.ParseUint(dw[0], 10, 32)
			if err != nil {
				return errors.Wrapf(err, "graph: destination id %q", dw[0])
			}
			weight, err := strconv.ParseFloat(dw[1], 32)
			if err != nil {
				return errors.Wrapf(err, "graph: edge weight %q", dw[1])
			}

			this.Edges[uint32(srcId)] = append(this.Edges[uint32(srcId)], &Endpoint{
				Dst:    uint32(dstId),
				Weight: float32(weight),
			})
			this.EdgeNum += uint32(1)
			if uint32(dstId) > nodeMaxId {
				nodeMaxId = uint32(dstId)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "graph: scan edge file")
	}
	if seen {
		this.NodeNum = nodeMaxId + 1
	}

	log.Printf("number of nodes %d", this.NodeNum)
	log.Printf("number of edges %d", this.EdgeNum)
	return nil
}

// NormalizedAdjacency builds the symmetrically normalized adjacency
// matrix with unit self loops: entry [i, j] holds
// w(i, j) / sqrt(deg(i) * deg(j)) where deg counts the self loop, so
// repeated multiplication neither explodes nor vanishes feature
// magnitudes. Entries are emitted in source node order, self loop first
func (this *Graph) NormalizedAdjacency() (*matrix.CooMatrix, error) {
	deg := make([]float32, this.NodeNum)
	for src := uint32(0); src < this.NodeNum; src += 1 {
		deg[src] = 1.0 // self loop
		for _, e := range this.Edges[src] {
			deg[src] += e.Weight
		}
	}
	if util.Float32VectorSum(deg) == 0 {
		return nil, ErrEmptyGraph
	}

	adj := &matrix.CooMatrix{}
	for src := uint32(0); src < this.NodeNum; src += 1 {
		adj.Append(src, src, 1.0/deg[src])
		for _, e := range this.Edges[src] {
			norm := float32(math.Sqrt(float64(deg[src]) * float64(deg[e.Dst])))
			adj.Append(src, e.Dst, e.Weight/norm)
		}
	}
	return adj, nil
}
