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

package gowarc

import "io"

// Stream is the byte-source/sink abstraction the core consumes.
// Concrete implementations (file-backed, in-memory, gzip
// member-per-record) live in the streams subpackage.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
	// Tell reports the current byte offset.
	Tell() (int64, error)
	// Seek repositions the stream, for implementations that support
	// it. Streams that don't may return an error.
	Seek(pos int64) error
}

// CompressingStream extends Stream for block-compressed containers
// such as .warc.gz, where each record is written as its own
// independently decodable compression member.
type CompressingStream interface {
	Stream
	// BeginMember starts a new compression member and returns the
	// underlying sink's byte offset at that point.
	BeginMember() (int64, error)
	// EndMember flushes and closes the current member without
	// closing the underlying sink, returning the sink's new offset.
	EndMember() (int64, error)
}

// blockCompressed is implemented by both CompressingStream (the
// write side) and a transparently-decompressing read side such as
// streams.GzipReaderStream, so the ArchiveIterator can tell whether
// Tell reports a logical offset or a block-boundary-only offset on
// the compressed substrate, regardless of read/write direction.
type blockCompressed interface {
	BlockCompressed() bool
}

func isBlockCompressed(s Stream) bool {
	bc, ok := s.(blockCompressed)
	return ok && bc.BlockCompressed()
}
