package reader

import (
	stdjson "encoding/json"
	"os"
	"path/filepath"
)

// JSONReader yields the elements of the JSON array stored in one file.
// The whole array is decoded on the first call to Next.
type JSONReader struct {
	path    string
	loaded  bool
	entries []stdjson.RawMessage
	next    int
	entry   stdjson.RawMessage
	err     error
}

// NewJSONReader creates a JSONReader over path
func NewJSONReader(path string) *JSONReader {
	return &JSONReader{path: path}
}

// Next advances to the next array element.
func (r *JSONReader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.loaded {
		r.loaded = true
		if r.entries, r.err = decodeArray(r.path); r.err != nil {
			return false
		}
	}
	if r.next >= len(r.entries) {
		return false
	}
	r.entry = r.entries[r.next]
	r.next++
	return true
}

// Entry is the current element, still encoded
func (r *JSONReader) Entry() stdjson.RawMessage { return r.entry }

// Err returns the error which stopped the reader, if any
func (r *JSONReader) Err() error { return r.err }

// JSONDataReader yields (base name, element) pairs for the JSON arrays
// stored in several files. An empty file yields a single pair with a nil
// element.
type JSONDataReader struct {
	paths   []string
	next    int
	name    string
	pending []stdjson.RawMessage
	entry   stdjson.RawMessage
	err     error
}

// NewJSONDataReader creates a JSONDataReader over paths
func NewJSONDataReader(paths []string) *JSONDataReader {
	return &JSONDataReader{paths: paths}
}

// Next advances to the next element, moving on to the following file
// when the current one is exhausted.
func (r *JSONDataReader) Next() bool {
	if r.err != nil {
		return false
	}
	for len(r.pending) == 0 {
		if r.next >= len(r.paths) {
			return false
		}
		path := r.paths[r.next]
		r.next++
		info, err := os.Stat(path)
		if err != nil {
			r.err = err
			return false
		}
		r.name = filepath.Base(path)
		if info.Size() < 1 {
			r.entry = nil
			return true
		}
		if r.pending, r.err = decodeArray(path); r.err != nil {
			return false
		}
	}
	r.entry = r.pending[0]
	r.pending = r.pending[1:]
	return true
}

// Name is the base name of the file the current element comes from
func (r *JSONDataReader) Name() string { return r.name }

// Entry is the current element, nil for an empty file
func (r *JSONDataReader) Entry() stdjson.RawMessage { return r.entry }

// Err returns the error which stopped the reader, if any
func (r *JSONDataReader) Err() error { return r.err }
