package matrix

// CooMatrix is a sparse matrix in coordinate list form: parallel slices
// of row indices, column indices and values. Entries keep insertion
// order and duplicates accumulate when the matrix is materialized
type CooMatrix struct {
	rows []uint32
	cols []uint32
	vals []float32
	nrow uint32
	ncol uint32
}

// NewCooMatrix creates a CooMatrix from parallel index and value slices.
// the three slices must have equal length
func NewCooMatrix(rows, cols []uint32, vals []float32) (*CooMatrix, error) {
	if len(rows) != len(vals) || len(cols) != len(vals) {
		return nil, ErrLengthMismatch
	}
	m := &CooMatrix{}
	for i := 0; i < len(vals); i += 1 {
		m.Append(rows[i], cols[i], vals[i])
	}
	return m, nil
}

// Append adds one entry to the matrix
func (m *CooMatrix) Append(r, c uint32, val float32) {
	m.rows = append(m.rows, r)
	m.cols = append(m.cols, c)
	m.vals = append(m.vals, val)
	if r+1 > m.nrow {
		m.nrow = r + 1
	}
	if c+1 > m.ncol {
		m.ncol = c + 1
	}
}

// Shape returns the inferred dense extents of the matrix, one plus the
// maximum row and column index seen so far
func (m *CooMatrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the number of stored entries
func (m *CooMatrix) Len() int {
	return len(m.vals)
}

// Dense materializes the matrix at its inferred extents
func (m *CooMatrix) Dense() *Float32Matrix {
	out := NewFloat32Matrix(m.nrow, m.ncol)
	for i := 0; i < len(m.vals); i += 1 {
		out.Incr(m.rows[i], m.cols[i], m.vals[i])
	}
	return out
}

// SpMM multiplies the sparse matrix s, taken with dense extents r rows
// by c columns, with the dense matrix on the right, producing a dense
// matrix with r rows. the row count of dense must equal c and every
// stored index of s must fall inside the declared extents
func SpMM(s *CooMatrix, r, c uint32, dense *Float32Matrix) (*Float32Matrix, error) {
	dr, dc := dense.Shape()
	if dr != c {
		return nil, ErrDimensionMismatch
	}
	out := NewFloat32Matrix(r, dc)
	for i := 0; i < len(s.vals); i += 1 {
		if s.rows[i] >= r || s.cols[i] >= c {
			return nil, ErrIndexOutOfRange
		}
		val := s.vals[i]
		for j := uint32(0); j < dc; j += 1 {
			out.Incr(s.rows[i], j, val*dense.Get(s.cols[i], j))
		}
	}
	return out, nil
}
