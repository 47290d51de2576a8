package draw

// Recorder is a Renderer that keeps a copy of every batch. Batches are grouped
// by frame and the group for the current frame is closed by the display
// event.
type Recorder struct {
	// completed frames
	Frames [][]Batch

	// batches received since the most recent display event
	Pending []Batch
}

// DrawTriangles implements the Renderer interface.
func (r *Recorder) DrawTriangles(b Batch) {
	r.Pending = append(r.Pending, b.Copy())
}

// DisplayFramebuffer implements the Renderer interface.
func (r *Recorder) DisplayFramebuffer() {
	r.Frames = append(r.Frames, r.Pending)
	r.Pending = nil
}

// Discard is a Renderer that counts and then forgets everything it receives.
type Discard struct {
	Batches  int
	Vertices int
	Displays int
}

// DrawTriangles implements the Renderer interface.
func (d *Discard) DrawTriangles(b Batch) {
	d.Batches++
	d.Vertices += b.Count
}

// DisplayFramebuffer implements the Renderer interface.
func (d *Discard) DisplayFramebuffer() {
	d.Displays++
}
