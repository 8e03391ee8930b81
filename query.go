package binout

import (
	"github.com/PucklaMotzer09/dynareadout/internal/binpath"
	"github.com/PucklaMotzer09/dynareadout/internal/record"
)

// splitVariable splits a "/some/path/variable_name" query into its parent
// directory and the variable's leaf name.
func splitVariable(path string) (parent binpath.Path, name string) {
	elements := binpath.Elements(path)
	if len(elements) == 0 {
		return binpath.Path{}, ""
	}
	name = elements[len(elements)-1]
	parent = binpath.FromElements(elements[:len(elements)-1], binpath.IsAbs(path))
	return parent, name
}

// lookupResult bundles a hit against one member file.
type lookupResult struct {
	file *fileIndex
	dp   *record.DataPointer
}

// lookup finds the first file (in archive order) whose index has a
// DataPointer for (parent, name).
func (a *Archive) lookup(parent binpath.Path, name string) (lookupResult, bool) {
	for _, f := range a.files {
		if dp := record.FindDataPointer(f.pointers, parent, name); dp != nil {
			return lookupResult{file: f, dp: dp}, true
		}
	}
	return lookupResult{}, false
}

// GetTypeID returns the element type of the variable at path, or
// ([record.Invalid], false) if no file has such a variable.
func (a *Archive) GetTypeID(path string) (record.Type, bool) {
	a.clearError()
	parent, name := splitVariable(path)
	hit, ok := a.lookup(parent, name)
	if !ok {
		a.setError(errNotFound)
		return record.Invalid, false
	}
	return hit.dp.TypeID, true
}

// VariableExists reports whether the exact variable instance at path
// exists: not merely some variable of the same name somewhere in the
// tree, but this DataPointer with a DataRecord at this exact parent
// directory.
func (a *Archive) VariableExists(path string) bool {
	a.clearError()
	parent, name := splitVariable(path)
	for _, f := range a.files {
		if dp, rec := record.FindRecord(f.pointers, parent, name); dp != nil && rec != nil {
			return true
		}
	}
	return false
}

// GetChildren returns the deduplicated set of immediate child element
// names under path, across every file in the archive. Order follows
// insertion order during the scan (file order, then per-file discovery
// order); duplicates are suppressed via [binpath.ElementsContain].
//
// The search is right-anchored on path's last element rather than a
// direct "record's parent equals path" comparison: the record's directory
// elements (not its variable name) are scanned from the tail for the
// rightmost element equal to path's last element, and the candidate child
// is whatever immediately follows it in directory-plus-name order. This stays compatible with
// malformed archives that nest the same name deeper in the tree, at the
// cost of being more expensive than an exact-parent comparison.
func (a *Archive) GetChildren(path string) []string {
	a.clearError()
	query := binpath.New(path)
	queryElems := query.Elements()

	var children []string
	for _, f := range a.files {
		for i := range f.pointers {
			dp := &f.pointers[i]
			for j := range dp.Records {
				rec := &dp.Records[j]
				parentElems := rec.Path.Elements()

				var child string
				var ok bool
				if len(queryElems) == 0 {
					// Children of the root: the first element of every
					// record's full (directory+name) path.
					if len(parentElems) > 0 {
						child, ok = parentElems[0], true
					} else {
						child, ok = dp.Name, true
					}
				} else {
					child, ok = matchChild(parentElems, dp.Name, queryElems)
				}

				if ok && !binpath.ElementsContain(children, child) {
					children = append(children, child)
				}
			}
		}
	}
	return children
}

// matchChild implements binout_get_children's right-anchored search: find
// the rightmost element of parentElems equal to queryElems' last element,
// then require every preceding queryElems element to match the
// correspondingly-positioned preceding parentElems element (scanning both
// backwards from that point). The candidate child is whatever sits one
// past the match — name itself, if the match was at parentElems' last
// position.
func matchChild(parentElems []string, name string, queryElems []string) (child string, ok bool) {
	last := queryElems[len(queryElems)-1]

	k := -1
	for i := len(parentElems) - 1; i >= 0; i-- {
		if parentElems[i] == last {
			k = i
			break
		}
	}
	if k < 0 {
		return "", false
	}

	if len(queryElems) > 1 {
		pi, qi := k-1, len(queryElems)-2
		for qi >= 0 {
			if pi < 0 || parentElems[pi] != queryElems[qi] {
				return "", false
			}
			pi--
			qi--
		}
	}

	if k+1 < len(parentElems) {
		return parentElems[k+1], true
	}
	return name, true
}
