package matrix

// Matrix is the common surface of the dense and sparse matrix
// representations, so code taking node features can accept either kind
type Matrix interface {
	Shape() (uint32, uint32)
}
