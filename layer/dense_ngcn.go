package layer

import (
	"fmt"
	"math/rand"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/DanastyChen/MINDG/matrix"
)

func init() {
	Register("dense", NewDenseNGCN)
}

// DenseNGCN is the multi-scale graph convolution layer over a dense
// feature matrix. Unlike the sparse variant, dropout runs right after
// the projection, no activation is applied, and the bias is added after
// the propagation loop. The two variants disagree on this ordering on
// purpose: unifying them would change the function computed by
// previously trained weights
type DenseNGCN struct {
	parameters
	inChannels  uint32
	outChannels uint32
	iterations  int
	dropoutRate float32
	training    bool
	rng         *rand.Rand
}

// NewDenseNGCN creates a dense multi-scale graph convolution layer
func NewDenseNGCN(cfg Config) (Layer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := cfg.rng()
	return &DenseNGCN{
		parameters:  newParameters(cfg.InChannels, cfg.OutChannels, rng),
		inChannels:  cfg.InChannels,
		outChannels: cfg.OutChannels,
		iterations:  cfg.Iterations,
		dropoutRate: cfg.DropoutRate,
		rng:         rng,
	}, nil
}

// SetTraining switches dropout on or off
func (this *DenseNGCN) SetTraining(training bool) {
	this.training = training
}

// Forward does one forward pass: projection, dropout, iterations-1
// applications of the normalized adjacency matrix, then the bias add.
// Inputs are never mutated
func (this *DenseNGCN) Forward(adjacency *matrix.CooMatrix, features matrix.Matrix) (*matrix.Float32Matrix, error) {
	dense, ok := features.(*matrix.Float32Matrix)
	if !ok {
		return nil, errors.Wrapf(matrix.ErrDimensionMismatch,
			"dense ngcn: feature matrix must be dense, got %T", features)
	}
	nodeNum, featNum := dense.Shape()
	if featNum != this.inChannels {
		return nil, errors.Wrapf(matrix.ErrDimensionMismatch,
			"dense ngcn: feature count %d, layer expects %d", featNum, this.inChannels)
	}

	base, err := dense.Mul(this.weight)
	if err != nil {
		return nil, errors.Wrap(err, "dense ngcn: projection")
	}
	dropout(base, this.dropoutRate, this.training, this.rng)

	for i := 1; i < this.iterations; i += 1 {
		base, err = matrix.SpMM(adjacency, nodeNum, nodeNum, base)
		if err != nil {
			return nil, errors.Wrapf(err, "dense ngcn: hop %d", i)
		}
	}
	if err := base.AddRow(this.bias); err != nil {
		return nil, errors.Wrap(err, "dense ngcn: bias")
	}
	log.V(2).Infof("%v convolved %d nodes over %d hops",
		this, nodeNum, this.iterations-1)

	return base, nil
}

func (this *DenseNGCN) String() string {
	return fmt.Sprintf("DenseNGCN (%d -> %d)", this.inChannels, this.outChannels)
}
