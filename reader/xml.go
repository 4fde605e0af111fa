// (c) Copyright 2016 Hewlett Packard Enterprise Development LP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reader

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// XMLReader yields, for each file, its base name without the .xml suffix
// and a NodeIterator streaming the file's elements. The file stays open
// until the following call to Next or Close.
type XMLReader struct {
	paths []string
	next  int
	name  string
	file  *os.File
	nodes *NodeIterator
	err   error
}

// NewXMLReader creates an XMLReader over paths
func NewXMLReader(paths []string) *XMLReader {
	return &XMLReader{paths: paths}
}

// Next closes the current file and opens the next one.
func (r *XMLReader) Next() bool {
	if err := r.closeCurrent(); err != nil && r.err == nil {
		r.err = err
	}
	if r.err != nil || r.next >= len(r.paths) {
		return false
	}
	path := r.paths[r.next]
	r.next++
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		r.err = err
		return false
	}
	r.file = f
	r.name = strings.TrimSuffix(filepath.Base(path), ".xml")
	r.nodes = newNodeIterator(path, f)
	return true
}

// Name is the base name of the current file without .xml
func (r *XMLReader) Name() string { return r.name }

// Nodes streams the elements of the current file
func (r *XMLReader) Nodes() *NodeIterator { return r.nodes }

// Err returns the error which stopped the reader, if any
func (r *XMLReader) Err() error { return r.err }

// Close releases the current file. It is safe to call more than once.
func (r *XMLReader) Close() error {
	return r.closeCurrent()
}

// Each calls fn for every file and closes each file once fn returns,
// including when fn fails.
func (r *XMLReader) Each(fn func(name string, nodes *NodeIterator) error) (err error) {
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for r.Next() {
		if err := fn(r.name, r.nodes); err != nil {
			return err
		}
	}
	return r.Err()
}

func (r *XMLReader) closeCurrent() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	if r.nodes != nil {
		r.nodes.closed = true
	}
	return err
}

// NodeIterator yields the elements of an XML document in the order their
// end tags are read, so every yielded element already holds its children,
// attributes and text.
type NodeIterator struct {
	path   string
	dec    *xml.Decoder
	stack  []*etree.Element
	seen   bool
	node   *etree.Element
	err    error
	closed bool
}

func newNodeIterator(path string, r io.Reader) *NodeIterator {
	return &NodeIterator{path: path, dec: xml.NewDecoder(r)}
}

// Next advances to the next completed element.
func (it *NodeIterator) Next() bool {
	if it.err != nil || it.closed {
		return false
	}
	for {
		tok, err := it.dec.Token()
		if errors.Is(err, io.EOF) {
			if !it.seen || len(it.stack) > 0 {
				it.err = &DecodeError{Path: it.path, Err: io.ErrUnexpectedEOF}
			}
			it.closed = true
			return false
		}
		if err != nil {
			it.err = &DecodeError{Path: it.path, Err: err}
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			it.push(t)
		case xml.EndElement:
			it.node = it.stack[len(it.stack)-1]
			it.stack = it.stack[:len(it.stack)-1]
			return true
		case xml.CharData:
			if len(it.stack) > 0 {
				it.stack[len(it.stack)-1].CreateText(string(t))
			}
		}
	}
}

// Node is the current element
func (it *NodeIterator) Node() *etree.Element { return it.node }

// Err returns the error which stopped the iterator, if any
func (it *NodeIterator) Err() error { return it.err }

func (it *NodeIterator) push(t xml.StartElement) {
	var el *etree.Element
	if len(it.stack) == 0 {
		el = etree.NewElement(t.Name.Local)
	} else {
		el = it.stack[len(it.stack)-1].CreateElement(t.Name.Local)
	}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		el.CreateAttr(a.Name.Local, a.Value)
	}
	it.stack = append(it.stack, el)
	it.seen = true
}
