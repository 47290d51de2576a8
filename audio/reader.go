package audio

import "encoding/binary"

// Reader is an io.Reader that supplies signed 16bit little-endian stereo
// bytes, rendering quanta from a Source as required. It is the bridge between
// a Source and audio libraries that pull byte data, such as oto.
//
// The quantum size is fixed at creation and a quantum that is only partly
// consumed by one Read() is carried over to the next. Read() never allocates.
type Reader struct {
	src     Source
	quantum []int16
	data    []uint8

	// the next unread byte in data. when equal to len(data) a new quantum
	// will be rendered
	ofs int
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(src Source, quantumFrames int) *Reader {
	return &Reader{
		src:     src,
		quantum: make([]int16, quantumFrames*2),
		data:    make([]uint8, quantumFrames*4),
		ofs:     quantumFrames * 4,
	}
}

// Read implements the io.Reader interface. The buffer is always completely
// filled and the error is always nil.
func (r *Reader) Read(buf []uint8) (int, error) {
	var n int
	for n < len(buf) {
		if r.ofs >= len(r.data) {
			r.src.Render(r.quantum)
			for i, s := range r.quantum {
				binary.LittleEndian.PutUint16(r.data[i*2:], uint16(s))
			}
			r.ofs = 0
		}
		c := copy(buf[n:], r.data[r.ofs:])
		r.ofs += c
		n += c
	}
	return n, nil
}
