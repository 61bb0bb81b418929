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

// Package streams provides the concrete Stream and CompressingStream
// implementations the gowarc core consumes through its Stream
// interface: a plain file, an in-memory buffer, and a gzip
// member-per-record compressed stream.
package streams

import (
	"fmt"
	"io"
	"os"

	"github.com/crawlkeep/gowarc/internal/countingreader"
)

// FileStream is a Stream backed by an *os.File.
type FileStream struct {
	f       *os.File
	counter *countingreader.Reader
}

// Open opens name for reading and returns a FileStream.
func Open(name string) (*FileStream, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &FileStream{f: f, counter: countingreader.New(f)}, nil
}

// Create creates or truncates name for writing and returns a FileStream.
func Create(name string) (*FileStream, error) {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileStream{f: f}, nil
}

func (s *FileStream) Read(p []byte) (int, error) {
	if s.counter == nil {
		s.counter = countingreader.New(s.f)
	}
	return s.counter.Read(p)
}

func (s *FileStream) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

func (s *FileStream) Tell() (int64, error) {
	if s.counter != nil {
		return s.counter.N(), nil
	}
	return s.f.Seek(0, io.SeekCurrent)
}

func (s *FileStream) Seek(pos int64) error {
	_, err := s.f.Seek(pos, io.SeekStart)
	if err != nil {
		return err
	}
	if s.counter != nil {
		s.counter = countingreader.New(s.f)
	}
	return nil
}

func (s *FileStream) Close() error {
	return s.f.Close()
}

func (s *FileStream) String() string {
	return fmt.Sprintf("FileStream(%s)", s.f.Name())
}
