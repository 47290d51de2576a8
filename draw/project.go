package draw

// Transform multiplies the vector (x, y, z, 1) by the matrix and returns the
// result in clip space.
func (m *Matrix) Transform(x, y, z float32) (float32, float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15]
}

// Multiply returns the product m × n.
func (m *Matrix) Multiply(n *Matrix) Matrix {
	var r Matrix
	for col := range 4 {
		for row := range 4 {
			var v float32
			for k := range 4 {
				v += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = v
		}
	}
	return r
}

// Scale returns a matrix that scales each axis independently.
func Scale(x, y, z float32) Matrix {
	return Matrix{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a matrix that moves a point by the specified amount.
func Translate(x, y, z float32) Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Viewport maps clip space coordinates to pixel coordinates. The origin of the
// viewport is the top-left corner.
type Viewport struct {
	Width  int
	Height int
}

// Map converts a clip space coordinate to a pixel coordinate. A w value of zero
// is treated as one.
func (v Viewport) Map(x, y, w float32) (float32, float32) {
	if w == 0 {
		w = 1
	}
	px := (x/w + 1) * 0.5 * float32(v.Width)
	py := (1 - y/w) * 0.5 * float32(v.Height)
	return px, py
}

// Project transforms a vertex position by the matrix and performs the
// perspective divide. The result is in normalised device coordinates. A w
// component of zero is treated as one.
func Project(m *Matrix, x, y, z float32) (float32, float32, float32) {
	cx, cy, cz, cw := m.Transform(x, y, z)
	if cw == 0 {
		cw = 1
	}
	return cx / cw, cy / cw, cz / cw
}
