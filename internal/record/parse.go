package record

import (
	"fmt"
	"io"

	"github.com/PucklaMotzer09/dynareadout/internal/binpath"
)

// nameLengthFieldSize is the fixed 1-byte width of a DATA record's
// variable-name-length field, carried over literally from the original
// format's BINOUT_DATA_NAME_LENGTH.
const nameLengthFieldSize = 1

// Parse scans one physical file end to end: it validates the header, then
// walks the record stream until size, tracking the mutable "current
// directory" across CD records and building an ordered slice of
// DataPointers from DATA records. Any short read, failed seek, or
// inconsistent per-variable length aborts parsing and returns an error —
// the caller is responsible for treating that as a single failed file, not
// a fatal condition for the whole archive.
func Parse(r io.ReaderAt, size int64) (Header, []DataPointer, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return Header{}, nil, err
	}

	var (
		pointers []DataPointer
		current  binpath.Path
		haveCWD  bool
		pos      int64 = HeaderSize
	)

	for pos < size {
		length, command, dataStart, err := readRecordPrefix(r, header, pos)
		if err != nil {
			return Header{}, nil, err
		}
		dataLen := int64(length) - int64(header.LengthFieldSize) - int64(header.CommandFieldSize)
		if dataLen < 0 {
			return Header{}, nil, fmt.Errorf("binout: record at offset %d has a negative data length", pos)
		}

		switch Command(command) {
		case CD:
			data, err := readExact(r, dataStart, dataLen)
			if err != nil {
				return Header{}, nil, fmt.Errorf("binout: failed to read PATH of CD record: %w", err)
			}
			next := binpath.New(string(data))
			if binpath.IsAbs(string(data)) || !haveCWD {
				current = next
			} else {
				current = current.JoinPath(next)
			}
			current = current.Parse()
			haveCWD = true

		case Data:
			pointers, err = applyDataRecord(pointers, r, header, current, dataStart, dataLen)
			if err != nil {
				return Header{}, nil, err
			}

		default:
			// Opaque record: NULL, VARIABLE, BEGINSYMBOLTABLE,
			// ENDSYMBOLTABLE, SYMBOLTABLEOFFSET, or unknown. Nothing to do;
			// the name is retained only for diagnostic printing by callers
			// that want to log Command(command).String().
		}

		pos = dataStart + dataLen
	}

	return header, pointers, nil
}

// readRecordPrefix reads the length and command fields of the record at
// pos and returns them along with the offset its data portion starts at.
func readRecordPrefix(r io.ReaderAt, h Header, pos int64) (length, command uint64, dataStart int64, err error) {
	prefixLen := int(h.LengthFieldSize) + int(h.CommandFieldSize)
	buf := make([]byte, prefixLen)
	n, err := r.ReadAt(buf, pos)
	if n < prefixLen {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return 0, 0, 0, fmt.Errorf("binout: failed to read record length/command at offset %d: %w", pos, err)
	}

	length, err = readUint(buf[:h.LengthFieldSize], h.LengthFieldSize)
	if err != nil {
		return 0, 0, 0, err
	}
	command, err = readUint(buf[h.LengthFieldSize:], h.CommandFieldSize)
	if err != nil {
		return 0, 0, 0, err
	}
	return length, command, pos + int64(prefixLen), nil
}

// readExact reads exactly n bytes at off, failing on a short read.
func readExact(r io.ReaderAt, off, n int64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := r.ReadAt(buf, off)
	if int64(read) < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf, nil
}

// applyDataRecord decodes one DATA record's type/name fields, skips its
// payload (callers read payload bytes on demand, keyed by the offset
// recorded here), and inserts or updates the matching DataPointer.
func applyDataRecord(pointers []DataPointer, r io.ReaderAt, h Header, current binpath.Path, dataStart, dataLen int64) ([]DataPointer, error) {
	typeBuf, err := readExact(r, dataStart, int64(h.TypeIDFieldSize))
	if err != nil {
		return nil, fmt.Errorf("binout: failed to read TYPEID of DATA record: %w", err)
	}
	typeIDRaw, err := readUint(typeBuf, h.TypeIDFieldSize)
	if err != nil {
		return nil, err
	}

	nameLenBuf, err := readExact(r, dataStart+int64(h.TypeIDFieldSize), nameLengthFieldSize)
	if err != nil {
		return nil, fmt.Errorf("binout: failed to read Name length of DATA record: %w", err)
	}
	nameLen := int64(nameLenBuf[0])

	nameStart := dataStart + int64(h.TypeIDFieldSize) + nameLengthFieldSize
	nameBuf, err := readExact(r, nameStart, nameLen)
	if err != nil {
		return nil, fmt.Errorf("binout: failed to read Name of DATA record: %w", err)
	}
	name := string(nameBuf)

	payloadStart := nameStart + nameLen
	payloadLen := dataLen - int64(h.TypeIDFieldSize) - nameLengthFieldSize - nameLen
	if payloadLen < 0 {
		return nil, fmt.Errorf("binout: DATA record %q has a negative payload length", name)
	}

	typeID := TypeFromID(typeIDRaw)

	dp := FindDataPointer(pointers, current, name)
	if dp != nil {
		if payloadLen != dp.DataLength {
			return nil, fmt.Errorf(
				"binout: the data length of record %q is different from another even though they should be the same",
				name)
		}
		if typeID != dp.TypeID {
			return nil, fmt.Errorf(
				"binout: the type of record %q is different from another even though they should be the same",
				name)
		}
	} else {
		pointers = append(pointers, DataPointer{
			Name:       name,
			TypeID:     typeID,
			DataLength: payloadLen,
		})
		dp = &pointers[len(pointers)-1]
	}

	if i := dp.findRecord(current); i >= 0 {
		dp.Records[i].FilePos = payloadStart
	} else {
		dp.Records = append(dp.Records, DataRecord{
			Path:    binpath.FromElements(current.Elements(), current.IsAbs()),
			FilePos: payloadStart,
		})
	}

	return pointers, nil
}
