/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package streams

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Stream mirrors the gowarc.Stream byte-source/sink abstraction,
// redeclared here to avoid an import cycle with the root package
// (which imports this package's implementations in its tests).
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
	Tell() (int64, error)
	Seek(pos int64) error
}

// GzipStream wraps a sink Stream, writing each record as its own
// independent gzip member, mirroring the on-disk .warc.gz convention
// where every member can be decompressed in isolation.
type GzipStream struct {
	sink   Stream
	gz     *gzip.Writer
	inside bool
}

// NewGzipStream wraps sink for member-per-record compressed writing.
func NewGzipStream(sink Stream) *GzipStream {
	return &GzipStream{sink: sink}
}

func (g *GzipStream) Write(p []byte) (int, error) {
	if !g.inside {
		return 0, fmt.Errorf("gowarc: write outside of a gzip member, call BeginMember first")
	}
	return g.gz.Write(p)
}

func (g *GzipStream) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("gowarc: GzipStream is write-only, use GzipReaderStream to read")
}

// BeginMember starts a new gzip member and returns the underlying
// sink's byte offset at that point.
func (g *GzipStream) BeginMember() (int64, error) {
	if g.inside {
		if _, err := g.EndMember(); err != nil {
			return 0, err
		}
	}
	offset, err := g.sink.Tell()
	if err != nil {
		return 0, err
	}
	g.gz = gzip.NewWriter(g.sink)
	g.inside = true
	return offset, nil
}

// EndMember flushes and closes the current gzip member without
// closing the underlying sink, returning the sink's new offset.
func (g *GzipStream) EndMember() (int64, error) {
	if !g.inside {
		return g.sink.Tell()
	}
	if err := g.gz.Close(); err != nil {
		return 0, err
	}
	g.inside = false
	g.gz = nil
	return g.sink.Tell()
}

func (g *GzipStream) Tell() (int64, error) {
	return g.sink.Tell()
}

// BlockCompressed reports that positions on this stream are
// block-boundary-only, letting an ArchiveIterator or RecordWriter
// distinguish it from a stream whose Tell is a logical byte offset.
func (g *GzipStream) BlockCompressed() bool { return true }

func (g *GzipStream) Seek(pos int64) error {
	return fmt.Errorf("gowarc: GzipStream does not support seeking")
}

func (g *GzipStream) Close() error {
	if g.inside {
		if _, err := g.EndMember(); err != nil {
			return err
		}
	}
	return g.sink.Close()
}

// GzipReaderStream decompresses a member-per-record .warc.gz stream
// transparently, using klauspost/compress/gzip's multistream support
// so record boundaries are invisible to the caller, while still
// exposing the compressed stream's Tell for block-boundary position
// reporting.
type GzipReaderStream struct {
	src Stream
	gz  *gzip.Reader
}

// NewGzipReaderStream wraps src, decompressing across gzip member
// boundaries as a single logical byte stream.
func NewGzipReaderStream(src Stream) (*GzipReaderStream, error) {
	gz, err := gzip.NewReader(src)
	if err != nil {
		return nil, err
	}
	gz.Multistream(true)
	return &GzipReaderStream{src: src, gz: gz}, nil
}

func (g *GzipReaderStream) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *GzipReaderStream) Write(p []byte) (int, error) {
	return 0, fmt.Errorf("gowarc: GzipReaderStream is read-only")
}

// Tell reports the compressed stream's byte offset, meaningful at
// gzip member boundaries only.
func (g *GzipReaderStream) Tell() (int64, error) {
	return g.src.Tell()
}

// BlockCompressed reports that positions on this stream are
// block-boundary-only.
func (g *GzipReaderStream) BlockCompressed() bool { return true }

func (g *GzipReaderStream) Seek(pos int64) error {
	return fmt.Errorf("gowarc: GzipReaderStream does not support seeking")
}

func (g *GzipReaderStream) Close() error {
	if err := g.gz.Close(); err != nil {
		return err
	}
	return g.src.Close()
}
