package record

import (
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the fixed, byte-exact size of the per-file header: five
// meaningful bytes followed by padding out to the record boundary, per the
// on-disk format's own convention of starting the first record at a fixed
// offset regardless of the declared field widths.
const HeaderSize = 8

const (
	littleEndian = 0
	ieeeFloat    = 0
)

// ErrShortHeader is returned when a file is too small to hold a header.
var ErrShortHeader = errors.New("binout: file too small to contain a header")

// Header is the fixed-layout preamble every member file begins with. Its
// fields declare the widths of the length/command/typeid fields that every
// subsequent record in the file uses.
type Header struct {
	Endianness       uint8
	FloatFormat      uint8
	LengthFieldSize  uint8
	CommandFieldSize uint8
	TypeIDFieldSize  uint8
}

// ReadHeader reads and validates the header at the start of r. Any
// violation of the format's constraints (non-little-endian, non-IEEE
// floats, or a field width above 8 bytes) is reported as an error and the
// caller should treat the whole file as failed — other files in an archive
// are unaffected.
func ReadHeader(r io.ReaderAt) (Header, error) {
	var buf [HeaderSize]byte
	n, err := r.ReadAt(buf[:], 0)
	if n < HeaderSize {
		if err == nil || errors.Is(err, io.EOF) {
			return Header{}, ErrShortHeader
		}
		return Header{}, fmt.Errorf("binout: failed to read header: %w", err)
	}

	h := Header{
		Endianness:       buf[0],
		FloatFormat:      buf[1],
		LengthFieldSize:  buf[2],
		CommandFieldSize: buf[3],
		TypeIDFieldSize:  buf[4],
	}

	if h.Endianness != littleEndian {
		return Header{}, errors.New("unsupported endianess")
	}
	if h.FloatFormat != ieeeFloat {
		return Header{}, errors.New("the float format is unsupported")
	}
	if h.LengthFieldSize == 0 || h.LengthFieldSize > 8 {
		return Header{}, errors.New("the record length field size is unsupported")
	}
	if h.CommandFieldSize == 0 || h.CommandFieldSize > 8 {
		return Header{}, errors.New("the command length field size is unsupported")
	}
	if h.TypeIDFieldSize == 0 || h.TypeIDFieldSize > 8 {
		return Header{}, errors.New("the typeid field size is unsupported")
	}

	return h, nil
}
