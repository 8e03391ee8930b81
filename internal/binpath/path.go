// Package binpath implements the POSIX-flavoured hierarchical paths used to
// key variables inside a binout archive: an ordered sequence of non-empty
// string elements with an implicit leading root.
package binpath

import "strings"

// Path is an ordered sequence of path elements. The zero value is the empty
// relative path. A Path is a value type: Join and Parse return a new Path
// rather than mutating the receiver in place, so a Path copied into a
// [record.DataRecord] never aliases whatever the parser's "current
// directory" does next.
type Path struct {
	elements []string
	abs      bool
}

// New splits src on "/" and drops empty segments, exactly like [Elements].
func New(src string) Path {
	return Path{elements: Elements(src), abs: IsAbs(src)}
}

// FromElements builds a Path directly from already-split elements.
func FromElements(elements []string, abs bool) Path {
	return Path{elements: append([]string(nil), elements...), abs: abs}
}

// Elements splits src at '/', dropping empty segments. A leading '/' is
// reflected only in [IsAbs]; it is never itself an element.
func Elements(src string) []string {
	var out []string
	for _, e := range strings.Split(src, "/") {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// IsAbs reports whether src begins with '/'.
func IsAbs(src string) bool {
	return strings.HasPrefix(src, "/")
}

// IsAbs reports whether p was built from an absolute source string.
func (p Path) IsAbs() bool { return p.abs }

// Elements returns the path's elements. The caller must not mutate the
// returned slice.
func (p Path) Elements() []string { return p.elements }

// Len returns the number of elements.
func (p Path) Len() int { return len(p.elements) }

// Last returns the final element, or "" if the path is empty.
func (p Path) Last() string {
	if len(p.elements) == 0 {
		return ""
	}
	return p.elements[len(p.elements)-1]
}

// Join appends rel's elements onto p. It performs no normalisation; call
// [Path.Parse] afterwards to resolve "." and "..".
func (p Path) Join(rel string) Path {
	out := Path{
		elements: append(append([]string(nil), p.elements...), Elements(rel)...),
		abs:      p.abs,
	}
	return out
}

// JoinPath is like Join but takes an already-parsed Path as the right-hand
// side, keeping the left side's absoluteness.
func (p Path) JoinPath(rel Path) Path {
	out := Path{
		elements: append(append([]string(nil), p.elements...), rel.elements...),
		abs:      p.abs,
	}
	return out
}

// Parse normalises p: scanning left to right, an element equal to "." is
// dropped, and an element equal to ".." pops the previous element (or is
// itself dropped if there is nothing to pop). Parse is idempotent.
func (p Path) Parse() Path {
	out := make([]string, 0, len(p.elements))
	for _, e := range p.elements {
		switch e {
		case ".":
			// dropped
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, e)
		}
	}
	return Path{elements: out, abs: p.abs}
}

// Equals reports element-wise, same-length equality. Absoluteness is not
// considered; the binout format's CD records only ever compare split
// element sequences.
func Equals(a, b Path) bool {
	if len(a.elements) != len(b.elements) {
		return false
	}
	for i := range a.elements {
		if a.elements[i] != b.elements[i] {
			return false
		}
	}
	return true
}

// MainEquals is Equals restricted to the first len-1 elements of both paths
// — a "same parent directory" test. Both paths must be non-empty.
func MainEquals(a, b Path) bool {
	if len(a.elements) == 0 || len(b.elements) == 0 {
		return false
	}
	return Equals(Path{elements: a.elements[:len(a.elements)-1]}, Path{elements: b.elements[:len(b.elements)-1]})
}

// String renders p as "/" followed by its elements joined with "/".
func (p Path) String() string {
	return "/" + strings.Join(p.elements, "/")
}

// ElementsContain is a linear membership test used by the children-listing
// de-duplication.
func ElementsContain(set []string, s string) bool {
	for _, e := range set {
		if e == s {
			return true
		}
	}
	return false
}
