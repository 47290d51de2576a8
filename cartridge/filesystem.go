package cartridge

import (
	"bytes"
	"encoding/binary"
	"hash/adler32"
)

// FilesystemMagic is the string at the start of the filesystem section.
const FilesystemMagic = "NRFS"

// the filesystem section header is the magic string, the length of the
// section after the header, the checksum and four reserved bytes
const filesystemHeader = 16

// the checksum covers everything after the checksum field
const checksumStart = 12

// filesystem checks the filesystem section at the offset and returns it
func filesystem(data []uint8, offset uint32, size uint32) ([]uint8, error) {
	if size < filesystemHeader || uint64(offset)+uint64(size) > uint64(len(data)) {
		return nil, loadError(BadFilesystem, "section at %08x (%d bytes) is outside the image", offset, size)
	}
	fs := data[offset : offset+size]

	if !bytes.Equal(fs[:4], []byte(FilesystemMagic)) {
		return nil, loadError(BadFilesystem, "missing %s magic", FilesystemMagic)
	}

	l := binary.LittleEndian.Uint32(fs[4:])
	if l != size-filesystemHeader {
		return nil, loadError(BadFilesystem, "length field (%d) does not match section size (%d)", l, size)
	}

	sum := binary.LittleEndian.Uint32(fs[8:])
	if c := adler32.Checksum(fs[checksumStart:]); c != sum {
		return nil, loadError(BadFilesystem, "checksum mismatch (%08x != %08x)", c, sum)
	}

	return fs, nil
}
