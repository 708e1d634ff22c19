package layer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DanastyChen/MINDG/matrix"
)

// identity-padded 4x3 sparse feature matrix
func sparseFeatures4x3(t *testing.T) *matrix.CooMatrix {
	feats, err := matrix.NewCooMatrix(
		[]uint32{0, 1, 2, 3},
		[]uint32{0, 1, 2, 0},
		[]float32{1.0, 1.0, 1.0, 1.0})
	assert.NoError(t, err)
	return feats
}

func newSparse(t *testing.T, iterations int, dropoutRate float32) Layer {
	l, err := NewSparseNGCN(Config{
		InChannels:  uint32(3),
		OutChannels: uint32(2),
		Iterations:  iterations,
		DropoutRate: dropoutRate,
		Rand:        rand.New(rand.NewSource(1)),
	})
	assert.NoError(t, err)
	return l
}

func TestSparseNGCNSingleIteration(t *testing.T) {
	l := newSparse(t, 1, 0)
	setParameters(l,
		[][]float32{{1, 2}, {3, 4}, {5, 6}},
		[]float32{-3, 0.5})

	out, err := l.Forward(identityAdjacency(uint32(4)), sparseFeatures4x3(t))
	assert.NoError(t, err)

	// relu(X*W + b) with one propagation step elided
	expected := [][]float32{
		{0, 2.5},
		{0, 4.5},
		{2, 6.5},
		{0, 2.5},
	}
	r, c := out.Shape()
	assert.Equal(t, uint32(4), r)
	assert.Equal(t, uint32(2), c)
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			assert.InDelta(t, float64(expected[ridx][cidx]),
				float64(out.Get(ridx, cidx)), 1e-6)
		}
	}
}

func TestSparseNGCNIdentityPropagation(t *testing.T) {
	// the identity adjacency matrix leaves the propagated features
	// unchanged for any power order
	weight := [][]float32{{1, 2}, {3, 4}, {5, 6}}
	bias := []float32{-3, 0.5}

	one := newSparse(t, 1, 0)
	setParameters(one, weight, bias)
	four := newSparse(t, 4, 0)
	setParameters(four, weight, bias)

	adj := identityAdjacency(uint32(4))
	outOne, err := one.Forward(adj, sparseFeatures4x3(t))
	assert.NoError(t, err)
	outFour, err := four.Forward(adj, sparseFeatures4x3(t))
	assert.NoError(t, err)

	r, c := outOne.Shape()
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			assert.InDelta(t, float64(outOne.Get(ridx, cidx)),
				float64(outFour.Get(ridx, cidx)), 1e-6)
		}
	}
}

func TestSparseNGCNDropoutEvalDeterministic(t *testing.T) {
	l := newSparse(t, 2, 0.9)
	setParameters(l,
		[][]float32{{1, 2}, {3, 4}, {5, 6}},
		[]float32{-3, 0.5})

	adj := identityAdjacency(uint32(4))
	first, err := l.Forward(adj, sparseFeatures4x3(t))
	assert.NoError(t, err)
	second, err := l.Forward(adj, sparseFeatures4x3(t))
	assert.NoError(t, err)

	r, c := first.Shape()
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			assert.Equal(t, first.Get(ridx, cidx), second.Get(ridx, cidx))
		}
	}
}

func TestSparseNGCNDropoutTraining(t *testing.T) {
	l := newSparse(t, 1, 0.5)
	setParameters(l,
		[][]float32{{1, 1}, {2, 2}, {3, 3}},
		[]float32{1, 1})

	feats, err := matrix.NewCooMatrix(
		[]uint32{0, 1, 2},
		[]uint32{0, 1, 2},
		[]float32{1.0, 1.0, 1.0})
	assert.NoError(t, err)
	adj := identityAdjacency(uint32(3))

	eval, err := l.Forward(adj, feats)
	assert.NoError(t, err)

	l.SetTraining(true)
	train, err := l.Forward(adj, feats)
	assert.NoError(t, err)

	// every element is either dropped or rescaled by 1/(1-rate)
	r, c := eval.Shape()
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			got := float64(train.Get(ridx, cidx))
			kept := 2.0 * float64(eval.Get(ridx, cidx))
			assert.True(t, got == 0 || math.Abs(got-kept) < 1e-5,
				"element [%d, %d] is %f, want 0 or %f", ridx, cidx, got, kept)
		}
	}
}

func TestSparseNGCNRejectsDenseFeatures(t *testing.T) {
	l := newSparse(t, 1, 0)

	_, err := l.Forward(identityAdjacency(uint32(2)), matrix.NewFloat32Matrix(uint32(2), uint32(3)))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSparseNGCNFeatureCountMismatch(t *testing.T) {
	l := newSparse(t, 1, 0)

	// max column index 1 infers two feature columns, the layer expects three
	feats, err := matrix.NewCooMatrix(
		[]uint32{0, 1},
		[]uint32{0, 1},
		[]float32{1.0, 1.0})
	assert.NoError(t, err)

	_, err = l.Forward(identityAdjacency(uint32(2)), feats)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
