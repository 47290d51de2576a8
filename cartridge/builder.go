package cartridge

import (
	"encoding/binary"
	"fmt"
	"hash/adler32"
)

// Builder assembles a cartridge image. It is used to create the built-in
// test card image and to create images for testing.
type Builder struct {
	header  []uint8
	payload []uint8
	ops     int
}

// NewBuilder is the preferred method of initialisation for the Builder type.
func NewBuilder() *Builder {
	b := &Builder{
		header: make([]uint8, HeaderSize),
	}
	for i := range b.header {
		b.header[i] = 0xff
	}
	copy(b.header, Magic)
	return b
}

// AddOp adds an operation to the boot script.
func (b *Builder) AddOp(code [4]byte, params ...uint32) error {
	off := ScriptStart + b.ops*EntrySize
	if off >= HeaderSize {
		return fmt.Errorf("cartridge: no space left in header for %s", code[:])
	}
	if len(params) > 3 {
		return fmt.Errorf("cartridge: too many parameters for %s", code[:])
	}
	b.ops++

	copy(b.header[off:], code[:])
	var p [3]uint32
	copy(p[:], params)
	for i, v := range p {
		binary.LittleEndian.PutUint32(b.header[off+4+i*4:], v)
	}
	return nil
}

// AddData appends data to the image and returns its address in ROM.
func (b *Builder) AddData(data []uint8) uint32 {
	addr := ROMBase + uint32(HeaderSize+len(b.payload))
	b.payload = append(b.payload, data...)
	return addr
}

// AddFilesystem appends a filesystem section containing the data and adds
// the operation that describes it to the boot script.
func (b *Builder) AddFilesystem(data []uint8) error {
	// sections are aligned to 1KB
	for (HeaderSize+len(b.payload))%1024 != 0 {
		b.payload = append(b.payload, 0xff)
	}
	start := HeaderSize + len(b.payload)

	fs := make([]uint8, filesystemHeader, filesystemHeader+len(data))
	copy(fs, FilesystemMagic)
	fs = append(fs, data...)
	binary.LittleEndian.PutUint32(fs[4:], uint32(len(fs)-filesystemHeader))
	binary.LittleEndian.PutUint32(fs[8:], adler32.Checksum(fs[checksumStart:]))
	b.payload = append(b.payload, fs...)

	return b.AddOp(OpFilesystem, uint32(start), uint32(len(fs)))
}

// Bytes returns the assembled image.
func (b *Builder) Bytes() []uint8 {
	d := make([]uint8, 0, len(b.header)+len(b.payload))
	d = append(d, b.header...)
	return append(d, b.payload...)
}
