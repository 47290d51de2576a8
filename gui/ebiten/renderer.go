package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jetsetilly/nora32/draw"
	"github.com/jetsetilly/nora32/gui"
)

// size of the logical screen
const (
	screenWidth  = 640
	screenHeight = 480
)

// indices are 16bit so a single call to DrawTriangles() can address no more
// than this number of vertices. the value is a multiple of three so that a
// triangle is never split between calls
const maxVertices = 65535

// renderer transforms the vertices of a gui.Frame on the CPU and draws them
// with ebiten's DrawTriangles()
type renderer struct {
	viewport draw.Viewport

	// all triangles are drawn with a single white pixel as the source image.
	// the colour of a triangle comes entirely from the vertex colours
	white *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

func newRenderer() *renderer {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)

	return &renderer{
		viewport: draw.Viewport{Width: screenWidth, Height: screenHeight},
		white:    img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		vertices: make([]ebiten.Vertex, 0, 1024),
		indices:  make([]uint16, 0, 1024),
	}
}

func (r *renderer) draw(screen *ebiten.Image, f *gui.Frame) {
	if f == nil {
		return
	}

	r.vertices = r.vertices[:0]

	for _, b := range f.Batches[:f.Count] {
		for i := range b.Count {
			if len(r.vertices) >= maxVertices {
				r.flush(screen)
			}

			x, y, z, col, m := b.Vertex(i)
			nx, ny, _ := draw.Project(m, float32(x), float32(y), float32(z))
			px, py := r.viewport.Map(nx, ny, 1)

			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   px,
				DstY:   py,
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(col[0]) / 255,
				ColorG: float32(col[1]) / 255,
				ColorB: float32(col[2]) / 255,
				ColorA: float32(col[3]) / 255,
			})
		}
	}

	r.flush(screen)
}

func (r *renderer) flush(screen *ebiten.Image) {
	if len(r.vertices) == 0 {
		return
	}

	r.indices = r.indices[:0]
	for i := range len(r.vertices) {
		r.indices = append(r.indices, uint16(i))
	}

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	screen.DrawTriangles(r.vertices, r.indices, r.white, &op)

	r.vertices = r.vertices[:0]
}
