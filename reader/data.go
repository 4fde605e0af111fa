package reader

import (
	"os"
	"path/filepath"
	"strings"
)

// DataReader yields the base name and the lines of each file in turn.
type DataReader struct {
	paths []string
	next  int
	name  string
	lines []string
	err   error
}

// NewDataReader creates a DataReader over paths
func NewDataReader(paths []string) *DataReader {
	return &DataReader{paths: paths}
}

// Next reads the next file. It returns false when all files have been
// read or a file could not be read.
func (r *DataReader) Next() bool {
	if r.err != nil || r.next >= len(r.paths) {
		return false
	}
	path := r.paths[r.next]
	r.next++
	lines, err := readLines(path)
	if err != nil {
		r.err = err
		return false
	}
	r.name = filepath.Base(path)
	r.lines = lines
	return true
}

// Name is the base name of the current file
func (r *DataReader) Name() string { return r.name }

// Lines are the lines of the current file without their terminators
func (r *DataReader) Lines() []string { return r.lines }

// Err returns the error which stopped the reader, if any
func (r *DataReader) Err() error { return r.err }

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []string{}, nil
	}
	lines := strings.Split(string(data), "\n")
	// the final terminator does not start another line
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}
