package record

import "fmt"

// Type is the closed enum of primitive numeric element types a DATA record
// can carry, plus an Invalid sentinel. The numeric values match the
// on-disk type identifiers used by binout.c's BINOUT_TYPE_* constants.
type Type uint8

const (
	Int8 Type = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Invalid
)

// Size returns the byte width of one element of t, or 255 for Invalid.
func (t Type) Size() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 255
	}
}

func (t Type) String() string {
	switch t {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// TypeFromID maps an on-disk type identifier to a [Type], returning Invalid
// for anything unrecognized rather than an error: an unknown type is a
// valid (if unreadable) variable, not a parse failure.
func TypeFromID(id uint64) Type {
	if id < uint64(Invalid) {
		return Type(id)
	}
	return Invalid
}

func (t Type) GoString() string {
	return fmt.Sprintf("record.Type(%d:%s)", uint8(t), t.String())
}
