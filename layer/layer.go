package layer

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/DanastyChen/MINDG/matrix"
)

var constructors = make(map[string]LayerCtor)

// the common interface new graph convolution layers should follow
type Layer interface {
	// convolve features over the normalized adjacency matrix
	Forward(adjacency *matrix.CooMatrix, features matrix.Matrix) (*matrix.Float32Matrix, error)
	// enumerate the learnable matrices for an external optimizer
	Parameters() []*matrix.Float32Matrix
	// switch between training and inference behavior
	SetTraining(training bool)
	// serialize weight and bias matrices
	SaveWeights(fn string) error
	// deserialize weight and bias matrices
	LoadWeights(fn string) error
}

// new layer variants should register themselves using this function
func Register(layerType string, ctor LayerCtor) {
	constructors[layerType] = ctor
}

type LayerCtor func(cfg Config) (Layer, error)

func GetLayer(layerType string) (LayerCtor, error) {
	if _, ok := constructors[layerType]; !ok {
		return nil, errors.Errorf("layer %s not registered", layerType)
	}
	return constructors[layerType], nil
}

var ErrInvalidConfig = errors.New("layer: invalid configuration")

// Config carries the construction time options shared by the layer
// variants. Rand is the random source used for parameter initialization
// and dropout masks; a nil Rand falls back to a time seeded source
type Config struct {
	InChannels  uint32  // number of features
	OutChannels uint32  // number of filters
	Iterations  int     // adjacency matrix power order
	DropoutRate float32 // dropout value
	Rand        *rand.Rand
}

func (c Config) validate() error {
	if c.InChannels == 0 || c.OutChannels == 0 {
		return errors.Wrapf(ErrInvalidConfig,
			"channels must be positive, got %d -> %d", c.InChannels, c.OutChannels)
	}
	if c.Iterations < 1 {
		return errors.Wrapf(ErrInvalidConfig,
			"iterations must be positive, got %d", c.Iterations)
	}
	if c.DropoutRate < 0 || c.DropoutRate >= 1 {
		return errors.Wrapf(ErrInvalidConfig,
			"dropout rate must be in [0, 1), got %f", c.DropoutRate)
	}
	return nil
}

func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.New(rand.NewSource(time.Now().Unix()))
}

// parameters is the learnable state shared by the layer variants: a
// weight matrix of shape (in, out) and a bias row vector of shape
// (1, out), both Xavier-uniform initialized. The matrices are created
// once at construction and mutated only by the owning optimizer
type parameters struct {
	weight *matrix.Float32Matrix
	bias   *matrix.Float32Matrix
}

func newParameters(in, out uint32, rng *rand.Rand) parameters {
	p := parameters{
		weight: matrix.NewFloat32Matrix(in, out),
		bias:   matrix.NewFloat32Matrix(uint32(1), out),
	}
	xavierUniform(p.weight, rng)
	xavierUniform(p.bias, rng)
	return p
}

// Parameters enumerates the matrices mutated by an external optimizer
func (p parameters) Parameters() []*matrix.Float32Matrix {
	return []*matrix.Float32Matrix{p.weight, p.bias}
}

// serialize weight and bias matrices
func (p parameters) SaveWeights(fn string) error {
	if err := p.weight.Serialize(fn + ".w"); err != nil {
		return err
	}
	if err := p.bias.Serialize(fn + ".b"); err != nil {
		return err
	}
	return nil
}

// deserialize weight and bias matrices
func (p parameters) LoadWeights(fn string) error {
	if err := p.weight.Deserialize(fn + ".w"); err != nil {
		return err
	}
	if err := p.bias.Deserialize(fn + ".b"); err != nil {
		return err
	}
	return nil
}
