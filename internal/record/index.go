package record

import "github.com/PucklaMotzer09/dynareadout/internal/binpath"

// DataRecord is one physical occurrence of a logical variable: the
// directory (CD path) in effect when the owning DATA record was seen, plus
// the byte offset of its payload. A later DATA record at the same
// directory with the same variable name overwrites FilePos in place — last
// writer wins.
type DataRecord struct {
	Path    binpath.Path
	FilePos int64
}

// DataPointer is the logical variable: a (parent-directory, name) pair
// backed by one or more [DataRecord]s, one per distinct directory the
// variable was written from. A series ordinarily has several records, not
// one: the same variable name is written repeatedly from a sequence of
// sibling directories that differ only in their last element (one
// subdirectory per simulation timestep), and those all belong to the same
// DataPointer — see [FindDataPointer]. Every record sharing one DataPointer
// carries the identical DataLength and TypeID; a violating record fails
// parsing of the whole file (see the parser).
type DataPointer struct {
	Name       string
	TypeID     Type
	DataLength int64
	Records    []DataRecord
}

// findRecord returns the index of the DataRecord whose directory equals
// parent exactly, or -1.
func (dp *DataPointer) findRecord(parent binpath.Path) int {
	for i := range dp.Records {
		if binpath.Equals(dp.Records[i].Path, parent) {
			return i
		}
	}
	return -1
}

// sameSeries reports whether two parent directories belong to the same
// logical variable series: identical except possibly for their very last
// element, the timestep-specific subdirectory a series is written from
// repeatedly (e.g. ".../d000001" and ".../d000002" are the same series;
// "force" under either one is the same DataPointer, with two DataRecords).
// Two directories with zero elements (both the archive root) are the same
// series trivially.
func sameSeries(a, b binpath.Path) bool {
	if a.Len() == 0 && b.Len() == 0 {
		return true
	}
	return binpath.MainEquals(a, b)
}

// FindDataPointer searches pointers for one whose name equals name and
// whose first record's directory is the same series as parent (see
// [sameSeries]) — i.e. the pointer that already owns this variable's
// series. A linear scan is acceptable: the index is small, tens to low
// thousands of entries per file.
func FindDataPointer(pointers []DataPointer, parent binpath.Path, name string) *DataPointer {
	for i := range pointers {
		if pointers[i].Name != name {
			continue
		}
		if len(pointers[i].Records) == 0 {
			continue
		}
		if sameSeries(pointers[i].Records[0].Path, parent) {
			return &pointers[i]
		}
	}
	return nil
}

// FindRecord locates the exact DataRecord for (parent, name) within
// pointers, returning the owning pointer and record together, or (nil, nil)
// if no such instance exists.
func FindRecord(pointers []DataPointer, parent binpath.Path, name string) (*DataPointer, *DataRecord) {
	dp := FindDataPointer(pointers, parent, name)
	if dp == nil {
		return nil, nil
	}
	i := dp.findRecord(parent)
	if i < 0 {
		return dp, nil
	}
	return dp, &dp.Records[i]
}
