package record

import "fmt"

// readUint decodes a little-endian unsigned integer of width bytes
// (1 <= width <= 8) from buf into a uint64 via zero-extension. The header's
// declared field widths are the only variable-width integers this format
// has, so callers funnel every length/command/typeid read through this one
// helper rather than inlining the shift loop — the same shape as the
// retrieved scigolib/hdf5 superblock reader's readValue helper, which faces
// the identical "file header declares its own field widths" problem.
func readUint(buf []byte, width uint8) (uint64, error) {
	if width == 0 || width > 8 {
		return 0, fmt.Errorf("binout: unsupported field width %d", width)
	}
	if len(buf) < int(width) {
		return 0, fmt.Errorf("binout: short read decoding %d-byte field", width)
	}
	var v uint64
	for i := uint8(0); i < width; i++ {
		v |= uint64(buf[i]) << (8 * i)
	}
	return v, nil
}
