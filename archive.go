// Package binout provides random-access read of a multi-file binout
// container: the on-disk output format of an LS-DYNA-style finite-element
// simulation run. A binout archive is a set of append-only record streams
// that, replayed, reconstruct a hierarchical virtual filesystem whose
// leaves are typed numeric arrays keyed by a POSIX-style path plus a
// variable name.
//
// Open resolves a glob pattern into member files, parses each once into an
// in-memory index, and returns an [Archive] ready for [Read], [GetTypeID],
// [VariableExists], and [GetChildren] queries. The format is read-only:
// there is no write path.
package binout

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	bufra "github.com/avvmoto/buf-readerat"

	"github.com/PucklaMotzer09/dynareadout/internal/record"
)

// fileIndex is one surviving member file: an open, buffered handle plus
// the ordered list of DataPointers produced while scanning it. mu
// serialises ReadAt calls against this one file, so that reads against
// distinct files in the same archive can still proceed in parallel while
// reads against the same file serialise.
type fileIndex struct {
	name     string
	handle   *os.File
	reader   *bufra.BufReaderAt
	size     int64
	pointers []record.DataPointer
	mu       sync.Mutex
}

func (f *fileIndex) readAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reader.ReadAt(p, off)
}

func (f *fileIndex) close() error {
	return f.handle.Close()
}

// Archive is the merged view of every member file resolved from a single
// glob pattern. It owns every file handle, index entry, and error string
// it holds; all of it is released by [Archive.Close]. An Archive is not
// safe for concurrent queries from multiple goroutines: query operations
// mutate the archive's transient error state, and simultaneous calls
// would race on it even though per-file reads are individually
// serialised by fileIndex.mu.
type Archive struct {
	files       []*fileIndex
	fileErrors  []string
	errorString string
	logger      *slog.Logger
}

// Open resolves pattern via the configured [enumerate.Enumerator] (a glob
// expansion by default) and parses every resolved file. Files that fail to
// open or parse are dropped from the archive but their error is retained —
// see [Archive.OpenError]. An empty expansion yields an archive with zero
// files and a single file error, never a Go error return: opening is
// never fatal, matching the original format's own API shape.
func Open(pattern string, opts ...Option) *Archive {
	cfg := newConfig(opts)
	a := &Archive{logger: cfg.logger}

	names, err := cfg.enumerator.Enumerate(pattern)
	if err != nil {
		a.addFileError(pattern, err.Error())
		return a
	}
	if len(names) == 0 {
		a.addFileError(pattern, "No files have been found")
		return a
	}

	for _, name := range names {
		fi, err := openMember(name, cfg.bufferSize)
		if err != nil {
			a.addFileError(name, err.Error())
			a.logger.Warn("binout: dropping file", "file", name, "error", err)
			continue
		}
		a.files = append(a.files, fi)
		a.logger.Debug("binout: parsed file", "file", name, "variables", len(fi.pointers))
	}

	return a
}

func openMember(name string, bufferSize int) (*fileIndex, error) {
	handle, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := handle.Stat()
	if err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to get the file size: %w", err)
	}
	size := info.Size()

	reader := bufra.NewBufReaderAt(handle, bufferSize)

	_, pointers, err := record.Parse(reader, size)
	if err != nil {
		handle.Close()
		return nil, err
	}

	return &fileIndex{name: name, handle: handle, reader: reader, size: size, pointers: pointers}, nil
}

// Close releases every file handle the archive owns. It is safe to call
// twice.
func (a *Archive) Close() error {
	var firstErr error
	for _, f := range a.files {
		if err := f.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.files = nil
	return firstErr
}

// addFileError records a per-file open/parse failure. Distinct from the
// transient query error string — file errors accumulate for the life of
// the archive.
func (a *Archive) addFileError(name, message string) {
	a.fileErrors = append(a.fileErrors, fmt.Sprintf("%s: %s", name, message))
}

// OpenError concatenates every distinct file error with "\n", or returns
// ("", false) if no file failed. This resolves the original's ambiguous
// "keeps re-joining the last error" behaviour in favour of the evidently
// intended one — see DESIGN.md Open Question O1.
func (a *Archive) OpenError() (string, bool) {
	if len(a.fileErrors) == 0 {
		return "", false
	}
	return strings.Join(a.fileErrors, "\n"), true
}

// ErrorString returns the error set by the most recent query operation, or
// ("", false) if that operation succeeded. It is cleared at the start of
// every query — see [Archive.clearError].
func (a *Archive) ErrorString() (string, bool) {
	if a.errorString == "" {
		return "", false
	}
	return a.errorString, true
}

func (a *Archive) clearError() {
	a.errorString = ""
}

func (a *Archive) setError(err error) error {
	a.errorString = err.Error()
	return err
}

// errNotFound is returned (and surfaced through ErrorString) when a query
// names a path with no matching variable.
var errNotFound = fmt.Errorf("the given path has not been found")
