package layer

import (
	"fmt"
	"math/rand"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/DanastyChen/MINDG/matrix"
)

func init() {
	Register("sparse", NewSparseNGCN)
}

// SparseNGCN is the multi-scale graph convolution layer over a sparse
// feature matrix: a learned linear projection of the features followed
// by repeated propagation through powers of the normalized adjacency
// matrix. Bias, dropout and activation run once before the propagation
// loop; the dense variant orders these steps differently, see DenseNGCN
type SparseNGCN struct {
	parameters
	inChannels  uint32
	outChannels uint32
	iterations  int
	dropoutRate float32
	training    bool
	rng         *rand.Rand
}

// NewSparseNGCN creates a sparse multi-scale graph convolution layer
func NewSparseNGCN(cfg Config) (Layer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := cfg.rng()
	return &SparseNGCN{
		parameters:  newParameters(cfg.InChannels, cfg.OutChannels, rng),
		inChannels:  cfg.InChannels,
		outChannels: cfg.OutChannels,
		iterations:  cfg.Iterations,
		dropoutRate: cfg.DropoutRate,
		rng:         rng,
	}, nil
}

// SetTraining switches dropout on or off
func (this *SparseNGCN) SetTraining(training bool) {
	this.training = training
}

// Forward does one forward pass. The dense extents of the sparse feature
// matrix are inferred from its index bounds; the projected features get
// the bias, dropout and relu once, then the normalized adjacency matrix
// is applied iterations-1 times. Inputs are never mutated
func (this *SparseNGCN) Forward(adjacency *matrix.CooMatrix, features matrix.Matrix) (*matrix.Float32Matrix, error) {
	sparse, ok := features.(*matrix.CooMatrix)
	if !ok {
		return nil, errors.Wrapf(matrix.ErrDimensionMismatch,
			"sparse ngcn: feature matrix must be sparse, got %T", features)
	}
	nodeNum, featNum := sparse.Shape()
	if featNum != this.inChannels {
		return nil, errors.Wrapf(matrix.ErrDimensionMismatch,
			"sparse ngcn: feature count %d, layer expects %d", featNum, this.inChannels)
	}

	base, err := matrix.SpMM(sparse, nodeNum, featNum, this.weight)
	if err != nil {
		return nil, errors.Wrap(err, "sparse ngcn: projection")
	}
	if err := base.AddRow(this.bias); err != nil {
		return nil, errors.Wrap(err, "sparse ngcn: bias")
	}
	dropout(base, this.dropoutRate, this.training, this.rng)
	relu(base)

	for i := 1; i < this.iterations; i += 1 {
		base, err = matrix.SpMM(adjacency, nodeNum, nodeNum, base)
		if err != nil {
			return nil, errors.Wrapf(err, "sparse ngcn: hop %d", i)
		}
	}
	log.V(2).Infof("%v convolved %d nodes over %d hops",
		this, nodeNum, this.iterations-1)

	return base, nil
}

func (this *SparseNGCN) String() string {
	return fmt.Sprintf("SparseNGCN (%d -> %d)", this.inChannels, this.outChannels)
}
