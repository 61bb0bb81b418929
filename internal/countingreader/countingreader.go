/*
 * Copyright 2020 National Library of Norway.
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

package countingreader

import (
	"io"
	"sync/atomic"
)

// Reader counts the bytes read through it and can be given a byte
// limit that makes it behave as if the underlying reader hit EOF once
// the limit is reached. The limit can be reset to reuse the same
// Reader across multiple framed reads from the same underlying stream,
// which is how the BufferedReader contract's set_limit/reset_limit
// pair is implemented on top of it.
type Reader struct {
	ioReader  io.Reader
	bytesRead int64
	maxBytes  int64
	total     int64
}

// New makes a new Reader that counts the bytes read through it, with
// no limit.
func New(r io.Reader) *Reader {
	return &Reader{
		ioReader: r,
		maxBytes: -1,
	}
}

// NewLimited makes a new Reader that counts the bytes read through it.
//
// When maxBytes bytes are read, the next read will return io.EOF even
// though the underlying reader has more data.
func NewLimited(r io.Reader, maxBytes int64) *Reader {
	return &Reader{
		ioReader: r,
		maxBytes: maxBytes,
	}
}

func (r *Reader) Read(p []byte) (n int, err error) {
	if r.maxBytes >= 0 {
		remaining := r.maxBytes - r.N()
		if remaining <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
		n, err = r.ioReader.Read(p)
		atomic.AddInt64(&r.bytesRead, int64(n))
		atomic.AddInt64(&r.total, int64(n))

		if r.N() >= r.maxBytes && err == nil {
			err = io.EOF
		}
	} else {
		n, err = r.ioReader.Read(p)
		atomic.AddInt64(&r.bytesRead, int64(n))
		atomic.AddInt64(&r.total, int64(n))
	}
	return
}

// Total returns the number of bytes read through this Reader since
// construction, unaffected by SetLimit or ResetLimit.
func (r *Reader) Total() int64 {
	return atomic.LoadInt64(&r.total)
}

// N gets the number of bytes that have been read so far, counted from
// the last call to SetLimit or ResetLimit or from construction,
// whichever is most recent.
func (r *Reader) N() int64 {
	return atomic.LoadInt64(&r.bytesRead)
}

// SetLimit bounds the number of further bytes Read will deliver before
// reporting io.EOF, resetting the byte counter to zero.
func (r *Reader) SetLimit(n int64) {
	atomic.StoreInt64(&r.bytesRead, 0)
	r.maxBytes = n
}

// ResetLimit removes any limit set by SetLimit; Read will no longer
// synthesize an EOF based on byte count.
func (r *Reader) ResetLimit() {
	atomic.StoreInt64(&r.bytesRead, 0)
	r.maxBytes = -1
}

// Remaining reports how many bytes may still be read before the
// current limit is reached. It returns -1 if there is no limit.
func (r *Reader) Remaining() int64 {
	if r.maxBytes < 0 {
		return -1
	}
	remaining := r.maxBytes - r.N()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Consume discards up to n bytes without returning them to the
// caller. If n is negative, it discards up to the current limit (all
// remaining bytes under the limit); with no limit set and n negative,
// Consume is a no-op.
func (r *Reader) Consume(n int64) (int64, error) {
	if n < 0 {
		n = r.Remaining()
		if n < 0 {
			return 0, nil
		}
	}
	return io.CopyN(io.Discard, r, n)
}
