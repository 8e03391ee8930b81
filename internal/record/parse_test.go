package record

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/PucklaMotzer09/dynareadout/internal/binpath"
)

// synthBuilder assembles a minimal binout byte stream for tests: a fixed
// header (4-byte length/command fields, 4-byte type-id field, matching the
// original format's own default widths) followed by however many records
// are appended.
type synthBuilder struct {
	buf bytes.Buffer
}

func newSynthBuilder() *synthBuilder {
	b := &synthBuilder{}
	b.buf.Write([]byte{0, 0, 4, 4, 4, 0, 0, 0}) // endian, float fmt, len, cmd, typeid, padding
	return b
}

func (b *synthBuilder) record(command uint64, data []byte) *synthBuilder {
	length := uint64(4 + 4 + len(data)) // length field itself + command field + data
	var lengthBuf, cmdBuf [4]byte
	binary.LittleEndian.PutUint32(lengthBuf[:], uint32(length))
	binary.LittleEndian.PutUint32(cmdBuf[:], uint32(command))
	b.buf.Write(lengthBuf[:])
	b.buf.Write(cmdBuf[:])
	b.buf.Write(data)
	return b
}

func (b *synthBuilder) cd(path string) *synthBuilder {
	return b.record(uint64(CD), []byte(path))
}

func (b *synthBuilder) data(typeID Type, name string, payload []byte) *synthBuilder {
	var typeBuf [4]byte
	binary.LittleEndian.PutUint32(typeBuf[:], uint32(typeID))

	var buf bytes.Buffer
	buf.Write(typeBuf[:])
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	buf.Write(payload)
	return b.record(uint64(Data), buf.Bytes())
}

func (b *synthBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func float32Bytes(v float32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return buf[:]
}

func TestParseSingleVariable(t *testing.T) {
	raw := newSynthBuilder().
		cd("/ioutstat/d000001").
		data(Float32, "time", float32Bytes(1.5)).
		bytes()

	r := bytes.NewReader(raw)
	_, pointers, err := Parse(r, int64(len(raw)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(pointers) != 1 {
		t.Fatalf("len(pointers) = %d, want 1", len(pointers))
	}
	dp := pointers[0]
	if dp.Name != "time" || dp.TypeID != Float32 {
		t.Fatalf("pointers[0] = %+v, want name=time type=Float32", dp)
	}
	if len(dp.Records) != 1 {
		t.Fatalf("len(dp.Records) = %d, want 1", len(dp.Records))
	}
	if !binpath.Equals(dp.Records[0].Path, binpath.New("/ioutstat/d000001")) {
		t.Errorf("dp.Records[0].Path = %v, want /ioutstat/d000001", dp.Records[0].Path)
	}
}

func TestParseOverwriteSamePath(t *testing.T) {
	raw := newSynthBuilder().
		cd("/rcforc").
		data(Float32, "time", float32Bytes(1.0)).
		data(Float32, "time", float32Bytes(2.0)).
		bytes()

	r := bytes.NewReader(raw)
	_, pointers, err := Parse(r, int64(len(raw)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(pointers) != 1 {
		t.Fatalf("len(pointers) = %d, want 1 (overwrite, not append)", len(pointers))
	}
	if len(pointers[0].Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(pointers[0].Records))
	}
}

func TestParseRelativeCDJoins(t *testing.T) {
	raw := newSynthBuilder().
		cd("/ioutstat").
		cd("d000001").
		data(Float32, "time", float32Bytes(1.5)).
		bytes()

	r := bytes.NewReader(raw)
	_, pointers, err := Parse(r, int64(len(raw)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !binpath.Equals(pointers[0].Records[0].Path, binpath.New("/ioutstat/d000001")) {
		t.Errorf("path = %v, want /ioutstat/d000001", pointers[0].Records[0].Path)
	}
}

func TestParseDotDotCD(t *testing.T) {
	raw := newSynthBuilder().
		cd("/ioutstat/d000001").
		cd("../d000002").
		data(Float32, "time", float32Bytes(1.5)).
		bytes()

	r := bytes.NewReader(raw)
	_, pointers, err := Parse(r, int64(len(raw)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !binpath.Equals(pointers[0].Records[0].Path, binpath.New("/ioutstat/d000002")) {
		t.Errorf("path = %v, want /ioutstat/d000002", pointers[0].Records[0].Path)
	}
}

func TestParseSiblingTimestepDirectoriesShareSeries(t *testing.T) {
	raw := newSynthBuilder().
		cd("/rcforc/d000001").
		data(Float32, "force", float32Bytes(1.0)).
		cd("/rcforc/d000002").
		data(Float32, "force", float32Bytes(2.0)).
		bytes()

	r := bytes.NewReader(raw)
	_, pointers, err := Parse(r, int64(len(raw)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(pointers) != 1 {
		t.Fatalf("len(pointers) = %d, want 1 (sibling timestep directories share one series)", len(pointers))
	}
	if len(pointers[0].Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(pointers[0].Records))
	}
	if !binpath.Equals(pointers[0].Records[0].Path, binpath.New("/rcforc/d000001")) {
		t.Errorf("Records[0].Path = %v, want /rcforc/d000001", pointers[0].Records[0].Path)
	}
	if !binpath.Equals(pointers[0].Records[1].Path, binpath.New("/rcforc/d000002")) {
		t.Errorf("Records[1].Path = %v, want /rcforc/d000002", pointers[0].Records[1].Path)
	}
}

func TestParseDifferentTopLevelDirectoriesStayDistinct(t *testing.T) {
	raw := newSynthBuilder().
		cd("/rcforc/d000001").
		data(Float32, "force", float32Bytes(1.0)).
		cd("/ioutstat/d000001").
		data(Float32, "force", float32Bytes(2.0)).
		bytes()

	r := bytes.NewReader(raw)
	_, pointers, err := Parse(r, int64(len(raw)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(pointers) != 2 {
		t.Fatalf("len(pointers) = %d, want 2 (unrelated directories do not share a series)", len(pointers))
	}
}

func TestParseMismatchedLengthFails(t *testing.T) {
	raw := newSynthBuilder().
		cd("/rcforc").
		data(Float32, "time", float32Bytes(1.0)).
		data(Float32, "time", append(float32Bytes(1.0), float32Bytes(2.0)...)).
		bytes()

	r := bytes.NewReader(raw)
	if _, _, err := Parse(r, int64(len(raw))); err == nil {
		t.Error("Parse() with mismatched payload length for the same variable: want error, got nil")
	}
}

func TestFindDataPointerAndFindRecord(t *testing.T) {
	raw := newSynthBuilder().
		cd("/ioutstat/d000001").
		data(Float32, "time", float32Bytes(1.5)).
		bytes()

	r := bytes.NewReader(raw)
	_, pointers, err := Parse(r, int64(len(raw)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	parent := binpath.New("/ioutstat/d000001")
	if FindDataPointer(pointers, parent, "time") == nil {
		t.Error("FindDataPointer() = nil, want a hit")
	}
	if FindDataPointer(pointers, parent, "missing") != nil {
		t.Error("FindDataPointer() for an absent name = non-nil, want nil")
	}
	if dp, rec := FindRecord(pointers, parent, "time"); dp == nil || rec == nil {
		t.Error("FindRecord() = nil, want a hit")
	}

	sibling := binpath.New("/ioutstat/d000002")
	if dp, rec := FindRecord(pointers, sibling, "time"); dp == nil || rec != nil {
		t.Errorf("FindRecord() for a sibling timestep directory = (%v, %v), want (non-nil, nil): same series, no exact record", dp, rec)
	}

	unrelated := binpath.New("/rcforc/d000001")
	if dp, rec := FindRecord(pointers, unrelated, "time"); dp != nil || rec != nil {
		t.Errorf("FindRecord() for an unrelated directory = (%v, %v), want (nil, nil)", dp, rec)
	}
}
