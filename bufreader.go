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

import (
	"bufio"
	"io"

	"github.com/crawlkeep/gowarc/internal/countingreader"
)

// BufferedReader is the reader contract the ArchiveIterator and
// WarcRecord require of their byte source: bounded reads, line
// reads, a resettable limit used for content-length framing, and a
// consume operation that fast-forwards past unread payload bytes.
type BufferedReader interface {
	io.Reader
	// ReadLine reads a single line, terminator included. It returns
	// an empty slice (no error) at EOF or at the current limit.
	ReadLine() ([]byte, error)
	// Tell reports the number of bytes delivered since the reader was
	// constructed; SetLimit and ResetLimit do not reset it.
	Tell() int64
	// SetLimit bounds further reads to at most n bytes.
	SetLimit(n int64)
	// ResetLimit removes any limit set by SetLimit.
	ResetLimit()
	// Remaining reports how many bytes may still be read before the
	// current limit is reached, or -1 if there is no limit.
	Remaining() int64
	// Consume discards up to n bytes without returning them. A
	// negative n discards everything up to the current limit.
	Consume(n int64) (int64, error)
	Close() error
}

// streamReader is the concrete BufferedReader used throughout this
// package, layering a resettable byte-counting limit (countingreader)
// under a bufio.Reader for line-oriented reads.
type streamReader struct {
	br      *bufio.Reader
	counter *countingreader.Reader
	closer  io.Closer
}

// NewBufferedReader wraps a Stream (or any io.Reader) in the
// BufferedReader contract required by the ArchiveIterator.
func NewBufferedReader(r io.Reader) BufferedReader {
	counter := countingreader.New(r)
	sr := &streamReader{counter: counter}
	sr.br = bufio.NewReader(counter)
	if c, ok := r.(io.Closer); ok {
		sr.closer = c
	}
	return sr
}

func (s *streamReader) Read(p []byte) (int, error) {
	return s.br.Read(p)
}

func (s *streamReader) ReadLine() ([]byte, error) {
	line, err := s.br.ReadBytes('\n')
	if err != nil {
		if err == io.EOF {
			return line, nil
		}
		return line, err
	}
	return line, nil
}

func (s *streamReader) Tell() int64 {
	return s.counter.Total()
}

func (s *streamReader) SetLimit(n int64) {
	s.counter.SetLimit(n)
}

func (s *streamReader) ResetLimit() {
	s.counter.ResetLimit()
	s.br.Reset(s.counter)
}

func (s *streamReader) Remaining() int64 {
	return s.counter.Remaining()
}

func (s *streamReader) Consume(n int64) (int64, error) {
	if n < 0 {
		remaining := s.counter.Remaining()
		if remaining < 0 {
			return 0, nil
		}
		n = remaining
	}
	return io.CopyN(io.Discard, s.br, n)
}

func (s *streamReader) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
