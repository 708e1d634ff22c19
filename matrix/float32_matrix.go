package matrix

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// internal Float32 matrix representation
type Float32Matrix struct {
	nrow uint32
	ncol uint32
	data []float32
}

// NewFloat32Matrix creates a new Float32Matrix with r rows and c columns.
// if r*c == 0, it will panic. A float32 slice is used as the underlying
// storage and the data layout is in row major order, i.e. the (i*c + j)-th
// element in the data slice is the [i, j]-th element in the matrix.
// Vector is defined as a matrix with one row, i.e. a row vector.
func NewFloat32Matrix(r, c uint32) *Float32Matrix {
	if r*c == 0 {
		panic(ErrBadShape)
	}
	return &Float32Matrix{
		nrow: r,
		ncol: c,
		data: make([]float32, r*c),
	}
}

// get the shape of the matrix
func (m *Float32Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float32Matrix) Get(r, c uint32) float32 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// get the r-th row of the matrix
func (m *Float32Matrix) GetRow(r uint32) []float32 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}

	var row []float32
	for c := uint32(0); c < m.ncol; c += 1 {
		row = append(row, m.Get(r, c))
	}
	return row
}

// set val to the [r, c]-th element of the matrix
func (m *Float32Matrix) Set(r, c uint32, val float32) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// increment the [r, c]-th element of the matrix by val
func (m *Float32Matrix) Incr(r, c uint32, val float32) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] += val
}

// Mul multiplies m by other and returns the dense product matrix.
// the column count of m must match the row count of other
func (m *Float32Matrix) Mul(other *Float32Matrix) (*Float32Matrix, error) {
	if m.ncol != other.nrow {
		return nil, ErrDimensionMismatch
	}
	out := NewFloat32Matrix(m.nrow, other.ncol)
	for r := uint32(0); r < m.nrow; r += 1 {
		for k := uint32(0); k < m.ncol; k += 1 {
			val := m.data[r*m.ncol+k]
			if val == 0 {
				continue
			}
			for c := uint32(0); c < other.ncol; c += 1 {
				out.data[r*out.ncol+c] += val * other.data[k*other.ncol+c]
			}
		}
	}
	return out, nil
}

// AddRow adds the row vector v to every row of the matrix in place.
// v must have shape (1, ncol)
func (m *Float32Matrix) AddRow(v *Float32Matrix) error {
	if v.nrow != 1 || v.ncol != m.ncol {
		return ErrDimensionMismatch
	}
	for r := uint32(0); r < m.nrow; r += 1 {
		for c := uint32(0); c < m.ncol; c += 1 {
			m.data[r*m.ncol+c] += v.data[c]
		}
	}
	return nil
}

// serialize data to file
func (m *Float32Matrix) Serialize(fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	r, c := m.Shape()
	// write the matrix shape
	out.WriteString(fmt.Sprintf("%d,%d\n", r, c))

	var val float32
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			val = m.Get(ridx, cidx)
			if val != 0 { // only write out nonzero value
				out.WriteString(fmt.Sprintf("%d,%d,%e\n", ridx, cidx, val))
			}
		}
	}
	return nil
}

// deserialize data from file. the shape recorded in the file must match
// the shape of the receiver; all elements absent from the file are zeroed
func (m *Float32Matrix) Deserialize(fn string) error {
	file, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer file.Close()

	lineIdx := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return fmt.Errorf("matrix corrupted, shape not found: %s", txt)
			}
			row, err := strconv.ParseUint(shape[0], 10, 32)
			if err != nil {
				return err
			}
			col, err := strconv.ParseUint(shape[1], 10, 32)
			if err != nil {
				return err
			}
			if uint32(row) != m.nrow || uint32(col) != m.ncol {
				return ErrDimensionMismatch
			}
			for i := range m.data {
				m.data[i] = 0
			}
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Infof("data corrupted, row %d, data %s",
				lineIdx, txt)
			continue
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return err
		}
		cidx, err := strconv.ParseUint(value[1], 10, 32)
		if err != nil {
			return err
		}
		val, err := strconv.ParseFloat(value[2], 32)
		if err != nil {
			return err
		}
		m.Set(uint32(ridx), uint32(cidx), float32(val))

		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return nil
}
