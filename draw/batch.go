// Package draw delivers draw commands from the emulation to a renderer.
//
// Each emulated frame produces zero or more batches of triangles followed by
// exactly one display event. Batches are pushed to the Renderer as they are
// produced. There is no queue and a Renderer that is not ready must still
// deal with the batch before returning, because the slices in a Batch are
// reused by the emulation as soon as the call returns.
package draw

import (
	"errors"
	"fmt"
)

// MaxMatrices is the maximum number of projection matrices in a Batch.
const MaxMatrices = 32

// Matrix is a 4x4 matrix of float32 values in column-major order.
type Matrix [16]float32

// Identity is the identity matrix.
var Identity = Matrix{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Batch is a list of triangles. Every three vertices form one triangle.
//
// The slices are only valid for the duration of the call to which the Batch is
// passed. A Renderer that needs to keep the data must copy it.
type Batch struct {
	// table of projection matrices. each vertex selects one of them
	Matrices []Matrix

	// x, y and z components of each vertex
	Positions []int16

	// r, g, b and a components of each vertex
	Colors []uint8

	// index into the Matrices table for each vertex
	MatrixIndices []uint8

	// number of vertices
	Count int
}

// InvalidBatch is returned by Validate() for any malformed Batch.
var InvalidBatch = errors.New("invalid batch")

// Validate checks that the slices in the batch are consistent with the vertex
// count and that every matrix index refers to a matrix in the batch.
func (b Batch) Validate() error {
	if b.Count < 0 || b.Count%3 != 0 {
		return fmt.Errorf("%w: vertex count (%d) is not a multiple of three", InvalidBatch, b.Count)
	}
	if b.Count == 0 {
		return nil
	}
	if len(b.Matrices) == 0 || len(b.Matrices) > MaxMatrices {
		return fmt.Errorf("%w: number of matrices (%d) must be between 1 and %d", InvalidBatch, len(b.Matrices), MaxMatrices)
	}
	if len(b.Positions) < b.Count*3 {
		return fmt.Errorf("%w: %d positions for %d vertices", InvalidBatch, len(b.Positions), b.Count)
	}
	if len(b.Colors) < b.Count*4 {
		return fmt.Errorf("%w: %d colours for %d vertices", InvalidBatch, len(b.Colors), b.Count)
	}
	if len(b.MatrixIndices) < b.Count {
		return fmt.Errorf("%w: %d matrix indices for %d vertices", InvalidBatch, len(b.MatrixIndices), b.Count)
	}
	for i, m := range b.MatrixIndices[:b.Count] {
		if int(m) >= len(b.Matrices) {
			return fmt.Errorf("%w: vertex %d selects matrix %d of %d", InvalidBatch, i, m, len(b.Matrices))
		}
	}
	return nil
}

// Vertex returns the position, colour and matrix of the indexed vertex. The
// batch should have been validated before calling this function.
func (b Batch) Vertex(i int) (x, y, z int16, col [4]uint8, m *Matrix) {
	x, y, z = b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]
	copy(col[:], b.Colors[i*4:i*4+4])
	m = &b.Matrices[b.MatrixIndices[i]]
	return x, y, z, col, m
}

// Copy returns a deep copy of the batch. The copy remains valid after the
// original backing memory has been reused.
func (b Batch) Copy() Batch {
	return Batch{
		Matrices:      append([]Matrix(nil), b.Matrices...),
		Positions:     append([]int16(nil), b.Positions[:b.Count*3]...),
		Colors:        append([]uint8(nil), b.Colors[:b.Count*4]...),
		MatrixIndices: append([]uint8(nil), b.MatrixIndices[:b.Count]...),
		Count:         b.Count,
	}
}
