// Package cartridge recognises NR32 cartridge images. An image starts with a
// 256 byte header containing a magic string and a boot script:
//
//	0x00  "NR32CRT0"
//	0x08  reserved
//	0x10  boot script entries, 16 bytes each
//
// Each boot script entry is a four byte operation code followed by three
// little-endian 32bit parameters. The script ends with an operation code of
// 0xffffffff or at the end of the header.
//
// Fingerprint() checks that an image is well formed. It does not execute the
// boot script.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jetsetilly/nora32/core"
)

// Sentinel errors. All errors returned by Fingerprint() also wrap
// core.LoadError.
var (
	UnrecognisedData = errors.New("unrecognised data")
	TooLarge         = errors.New("image too large")
	BadBootScript    = errors.New("bad boot script")
	BadFilesystem    = errors.New("bad filesystem")
)

// Magic is the string at the start of every cartridge image.
const Magic = "NR32CRT0"

// Extensions is the list of filename extensions commonly used for cartridge
// images. Used by file requesters. Fingerprint() does not check the filename.
var Extensions = []string{"nr32", "bin", "rom"}

// Sizes and locations of the parts of the image.
const (
	HeaderSize     = 0x100
	ScriptStart    = 0x10
	EntrySize      = 0x10
	scriptEndEntry = 0xffffffff
)

// Memory map of the console, as seen by the boot script.
const (
	RAMBase = 0x0000_0000
	RAMSize = 2 * 1024 * 1024
	ROMBase = 0x2000_0000
	ROMSize = 64 * 1024 * 1024
)

// An image must be smaller than the ROM region that it is loaded into.
const MaxImageSize = ROMSize - 1

// The operation codes in a boot script.
var (
	OpCopy       = [4]byte{'C', 'O', 'P', 'Y'}
	OpZero       = [4]byte{'Z', 'E', 'R', 'O'}
	OpHeap       = [4]byte{'H', 'E', 'A', 'P'}
	OpExec       = [4]byte{'E', 'X', 'E', 'C'}
	OpFilesystem = [4]byte{'%', 'F', 'S', 'M'}
)

// Op is a single boot script entry.
type Op struct {
	Code   [4]byte
	Params [3]uint32
}

func (op Op) String() string {
	return fmt.Sprintf("%s %08x %08x %08x", op.Code[:], op.Params[0], op.Params[1], op.Params[2])
}

// Image is a recognised cartridge image.
type Image struct {
	Data []uint8
	Ops  []Op

	// the parameters of the EXEC operation
	Entry     uint32
	StackSize uint32

	// the filesystem section of the image. nil if there is no filesystem
	Filesystem []uint8
}

// Label returns a short description of the image.
func (img Image) Label() string {
	if img.Filesystem != nil {
		return fmt.Sprintf("NR32 %dKB with filesystem, entry %08x", len(img.Data)/1024, img.Entry)
	}
	return fmt.Sprintf("NR32 %dKB, entry %08x", len(img.Data)/1024, img.Entry)
}

func loadError(sentinel error, detail string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", core.LoadError, sentinel, fmt.Sprintf(detail, args...))
}

func inRAM(addr uint32, size uint32) bool {
	return uint64(addr)+uint64(size) <= RAMBase+RAMSize
}

func inROM(addr uint32, size uint32) bool {
	return addr >= ROMBase && uint64(addr)+uint64(size) <= ROMBase+ROMSize
}

// Fingerprint checks that the data is a well formed cartridge image.
func Fingerprint(data []uint8) (Image, error) {
	if len(data) < HeaderSize {
		return Image{}, loadError(UnrecognisedData, "%d bytes is too short for a cartridge header", len(data))
	}
	if !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return Image{}, loadError(UnrecognisedData, "missing %s magic", Magic)
	}
	if len(data) >= ROMSize {
		return Image{}, loadError(TooLarge, "%d bytes does not fit in %d bytes of ROM", len(data), ROMSize)
	}

	img := Image{Data: data}

	var exec bool

	for off := ScriptStart; off < HeaderSize; off += EntrySize {
		if binary.LittleEndian.Uint32(data[off:]) == scriptEndEntry {
			break
		}

		var op Op
		copy(op.Code[:], data[off:off+4])
		for i := range op.Params {
			op.Params[i] = binary.LittleEndian.Uint32(data[off+4+i*4:])
		}

		if exec {
			return Image{}, loadError(BadBootScript, "%s follows EXEC", op.Code[:])
		}

		switch op.Code {
		case OpCopy:
			src, dst, size := op.Params[0], op.Params[1], op.Params[2]
			if !inROM(src, size) || !inRAM(dst, size) {
				return Image{}, loadError(BadBootScript, "COPY out of range: %s", op)
			}
			if uint64(src-ROMBase)+uint64(size) > uint64(len(data)) {
				return Image{}, loadError(BadBootScript, "COPY beyond end of image: %s", op)
			}
		case OpZero, OpHeap:
			if !inRAM(op.Params[0], op.Params[1]) {
				return Image{}, loadError(BadBootScript, "%s out of range: %s", op.Code[:], op)
			}
		case OpExec:
			if !inRAM(op.Params[0], 4) && !inROM(op.Params[0], 4) {
				return Image{}, loadError(BadBootScript, "EXEC entry not in RAM or ROM: %s", op)
			}
			exec = true
			img.Entry = op.Params[0]
			img.StackSize = op.Params[1]
		case OpFilesystem:
			fs, err := filesystem(data, op.Params[0], op.Params[1])
			if err != nil {
				return Image{}, err
			}
			img.Filesystem = fs
		default:
			return Image{}, loadError(BadBootScript, "unknown operation %q", op.Code[:])
		}

		img.Ops = append(img.Ops, op)
	}

	if !exec {
		return Image{}, loadError(BadBootScript, "no EXEC operation")
	}

	return img, nil
}
