package main

import (
	"flag"
	"log"

	"github.com/DanastyChen/MINDG/graph"
	"github.com/DanastyChen/MINDG/layer"
	"github.com/DanastyChen/MINDG/matrix"
)

var (
	edgeFile    = flag.String("edge_file", "", "input graph edge list file")
	featureFile = flag.String("feature_file", "", "input node feature file")
	layerType   = flag.String("layer", "sparse", "layer variant")
	outChannels = flag.Uint("filters", 16, "number of output filters")
	iterations  = flag.Int("iter", 2, "adjacency matrix power order")
	dropoutRate = flag.Float64("dropout", 0.5, "dropout value")
	weightsIn   = flag.String("load_weights", "", "load layer weights from file prefix")
	weightsOut  = flag.String("save_weights", "", "save layer weights to file prefix")
	outputFile  = flag.String("output", "", "save convolved features to file")
)

func main() {
	flag.Parse()

	// read graph data
	g := &graph.Graph{}
	if err := g.Load(*edgeFile); err != nil {
		log.Fatal(err)
	}
	feats, err := graph.LoadFeatures(*featureFile)
	if err != nil {
		log.Fatal(err)
	}
	adj, err := g.NormalizedAdjacency()
	if err != nil {
		log.Fatal(err)
	}

	// init layer
	_, inChannels := feats.Shape()
	ctor, err := layer.GetLayer(*layerType)
	if err != nil {
		log.Fatal(err)
	}
	l, err := ctor(layer.Config{
		InChannels:  inChannels,
		OutChannels: uint32(*outChannels),
		Iterations:  *iterations,
		DropoutRate: float32(*dropoutRate),
	})
	if err != nil {
		log.Fatal(err)
	}
	if *weightsIn != "" {
		if err := l.LoadWeights(*weightsIn); err != nil {
			log.Fatal(err)
		}
	}

	// convolve features, densifying the input for the dense variant
	var features matrix.Matrix = feats
	if *layerType == "dense" {
		features = feats.Dense()
	}
	out, err := l.Forward(adj, features)
	if err != nil {
		log.Fatal(err)
	}
	r, c := out.Shape()
	log.Printf("%v produced %d x %d features", l, r, c)

	if *weightsOut != "" {
		if err := l.SaveWeights(*weightsOut); err != nil {
			log.Fatal(err)
		}
	}
	if *outputFile != "" {
		if err := out.Serialize(*outputFile); err != nil {
			log.Fatal(err)
		}
	}
}
