package binout

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/PucklaMotzer09/dynareadout/internal/record"
)

// Numeric is the set of element types a binout variable can hold.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Read returns the typed vector stored at path. It clears the archive's
// transient error before running, and both returns a Go error and (for
// callers following the original string-polling API) sets it via
// [Archive.ErrorString] — see DESIGN.md's Open Question O2.
//
// If no file has a variable at path, Read returns (nil, nil): the zero
// value, with no error, the same way the original leaves it to a separate
// [Archive.VariableExists] call to distinguish "empty" from "not found".
func Read[T Numeric](a *Archive, path string) ([]T, error) {
	a.clearError()
	parent, name := splitVariable(path)

	wantType := typeOf[T]()

	for _, f := range a.files {
		dp, rec := record.FindRecord(f.pointers, parent, name)
		if dp == nil {
			continue
		}

		if dp.TypeID != wantType {
			err := fmt.Errorf("the data is of type %s instead of %s", dp.TypeID, wantType)
			return nil, a.setError(err)
		}

		if rec == nil {
			return nil, a.setError(errNotFound)
		}

		buf := make([]byte, dp.DataLength)
		n, err := f.readAt(buf, rec.FilePos)
		if n < len(buf) {
			if err == nil {
				err = fmt.Errorf("short read")
			}
			return nil, a.setError(fmt.Errorf("failed to read the data: %w", err))
		}

		return decode[T](buf), nil
	}

	return nil, nil
}

// typeOf maps a Go numeric type parameter to its [record.Type].
func typeOf[T Numeric]() record.Type {
	var zero T
	switch any(zero).(type) {
	case int8:
		return record.Int8
	case int16:
		return record.Int16
	case int32:
		return record.Int32
	case int64:
		return record.Int64
	case uint8:
		return record.Uint8
	case uint16:
		return record.Uint16
	case uint32:
		return record.Uint32
	case uint64:
		return record.Uint64
	case float32:
		return record.Float32
	case float64:
		return record.Float64
	default:
		return record.Invalid
	}
}

// decode reinterprets buf as a contiguous little-endian array of T. The
// format is always little-endian regardless of host byte order, so this
// never branches on runtime host endianness — it is correct on a
// big-endian host by construction, not by detecting one.
func decode[T Numeric](buf []byte) []T {
	size := typeOf[T]().Size()
	n := len(buf) / size
	out := make([]T, n)
	for i := 0; i < n; i++ {
		chunk := buf[i*size : (i+1)*size]
		var v T
		switch size {
		case 1:
			v = T(chunk[0])
		case 2:
			v = fromBits2[T](binary.LittleEndian.Uint16(chunk))
		case 4:
			v = fromBits4[T](binary.LittleEndian.Uint32(chunk))
		case 8:
			v = fromBits8[T](binary.LittleEndian.Uint64(chunk))
		}
		out[i] = v
	}
	return out
}

func fromBits2[T Numeric](bits uint16) T {
	var zero T
	switch any(zero).(type) {
	case int16:
		return T(int16(bits))
	default:
		return T(bits)
	}
}

func fromBits4[T Numeric](bits uint32) T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return T(int32(bits))
	case float32:
		return any(math.Float32frombits(bits)).(T)
	default:
		return T(bits)
	}
}

func fromBits8[T Numeric](bits uint64) T {
	var zero T
	switch any(zero).(type) {
	case int64:
		return T(int64(bits))
	case float64:
		return any(math.Float64frombits(bits)).(T)
	default:
		return T(bits)
	}
}

// ReadInt8 reads an Int8 variable. See [Read].
func ReadInt8(a *Archive, path string) ([]int8, error) { return Read[int8](a, path) }

// ReadInt16 reads an Int16 variable. See [Read].
func ReadInt16(a *Archive, path string) ([]int16, error) { return Read[int16](a, path) }

// ReadInt32 reads an Int32 variable. See [Read].
func ReadInt32(a *Archive, path string) ([]int32, error) { return Read[int32](a, path) }

// ReadInt64 reads an Int64 variable. See [Read].
func ReadInt64(a *Archive, path string) ([]int64, error) { return Read[int64](a, path) }

// ReadUint8 reads a Uint8 variable. See [Read].
func ReadUint8(a *Archive, path string) ([]uint8, error) { return Read[uint8](a, path) }

// ReadUint16 reads a Uint16 variable. See [Read].
func ReadUint16(a *Archive, path string) ([]uint16, error) { return Read[uint16](a, path) }

// ReadUint32 reads a Uint32 variable. See [Read].
func ReadUint32(a *Archive, path string) ([]uint32, error) { return Read[uint32](a, path) }

// ReadUint64 reads a Uint64 variable. See [Read].
func ReadUint64(a *Archive, path string) ([]uint64, error) { return Read[uint64](a, path) }

// ReadFloat32 reads a Float32 variable. See [Read].
func ReadFloat32(a *Archive, path string) ([]float32, error) { return Read[float32](a, path) }

// ReadFloat64 reads a Float64 variable. See [Read].
func ReadFloat64(a *Archive, path string) ([]float64, error) { return Read[float64](a, path) }
