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
	"io"
	"strconv"

	"github.com/crawlkeep/gowarc/internal/diskbuffer"
)

const defaultChunkSize = 16384

// RecordWriter serializes WarcRecord values to a Stream. On the
// materialized path (see WarcRecord.Write) it recomputes
// Content-Length and, when asked, block/payload digests; the fast path
// writes the WARC headers unchanged.
type RecordWriter struct {
	opts options
}

// NewRecordWriter constructs a RecordWriter.
func NewRecordWriter(opts ...Option) *RecordWriter {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &RecordWriter{opts: o}
}

// WriteRecord writes rec to out. See WarcRecord.Write for the
// materialization rules; checksumData requests recomputed
// WARC-Block-Digest/WARC-Payload-Digest headers.
func (w *RecordWriter) WriteRecord(out Stream, rec *WarcRecord, checksumData bool) (int64, error) {
	return rec.Write(out, checksumData, defaultChunkSize, w.opts.digestAlgorithm)
}

// Write serializes the record to out.
//
// Fast path (neither checksumData nor HTTPParsed): stream the WARC
// headers, a blank line, then pass through the reader's remaining
// bytes in chunkSize blocks, then the trailing blank line.
//
// Checksum/HTTP-parsed path: materialize the block (HTTP headers if
// present, plus blank line, plus payload) into a diskbuffer.Buffer
// (held in memory, spilling to a temporary file when large), computing the
// block digest over the whole materialized block and the payload
// digest over just the payload portion. Content-Length is rewritten
// to the materialized length; if checksumData, WARC-Block-Digest and
// (if HTTP-parsed) WARC-Payload-Digest are set from the computed
// sums.
//
// If out is a CompressingStream, the write is wrapped in
// BeginMember/EndMember so the record forms its own independent
// compression member. Write returns the number of bytes written as
// reported by out (post-compression, if applicable).
func (r *WarcRecord) Write(out Stream, checksumData bool, chunkSize int, digestAlgorithm string) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	cs, isCompressing := out.(CompressingStream)
	var before int64
	var err error
	if isCompressing {
		before, err = cs.BeginMember()
		if err != nil {
			return 0, err
		}
	} else {
		before, err = out.Tell()
		if err != nil {
			return 0, err
		}
	}

	if !checksumData && !r.httpParsed {
		if err := r.writeFastPath(out, chunkSize); err != nil {
			return 0, err
		}
	} else {
		if err := r.writeMaterializedPath(out, checksumData, digestAlgorithm); err != nil {
			return 0, err
		}
	}

	var after int64
	if isCompressing {
		after, err = cs.EndMember()
	} else {
		after, err = out.Tell()
	}
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

func (r *WarcRecord) writeFastPath(out Stream, chunkSize int) error {
	if _, err := out.Write(r.warcHeaders.Bytes()); err != nil {
		return err
	}
	if _, err := out.Write([]byte("\r\n")); err != nil {
		return err
	}
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(writerOnly{out}, r.reader, buf); err != nil && err != io.EOF {
		return err
	}
	_, err := out.Write([]byte("\r\n\r\n"))
	return err
}

func (r *WarcRecord) writeMaterializedPath(out Stream, checksumData bool, digestAlgorithm string) error {
	block := diskbuffer.New()
	defer block.Close()
	var payloadStart int64

	if r.httpParsed && r.httpHeaders != nil {
		if _, err := block.Write(r.httpHeaders.Bytes()); err != nil {
			return err
		}
		if _, err := block.WriteString("\r\n"); err != nil {
			return err
		}
		payloadStart = block.Size()
	}

	remaining := r.contentLength
	if remaining > 0 {
		if _, err := io.CopyN(block, r.reader, remaining); err != nil && err != io.EOF {
			return err
		}
	}

	r.warcHeaders.Set(ContentLength, strconv.FormatInt(block.Size(), 10))

	if checksumData {
		h, err := newHash(digestAlgorithm)
		if err != nil {
			return err
		}
		if _, err := block.Slice(0, block.Size()).WriteTo(h); err != nil {
			return err
		}
		r.warcHeaders.Set(WarcBlockDigest, formatDigestField(digestAlgorithm, h.Sum(nil)))

		if r.httpParsed {
			ph, err := newHash(digestAlgorithm)
			if err != nil {
				return err
			}
			if _, err := block.Slice(payloadStart, block.Size()-payloadStart).WriteTo(ph); err != nil {
				return err
			}
			r.warcHeaders.Set(WarcPayloadDigest, formatDigestField(digestAlgorithm, ph.Sum(nil)))
		}
	}

	if _, err := out.Write(r.warcHeaders.Bytes()); err != nil {
		return err
	}
	if _, err := out.Write([]byte("\r\n")); err != nil {
		return err
	}
	if _, err := block.Slice(0, block.Size()).WriteTo(out); err != nil {
		return err
	}
	_, err := out.Write([]byte("\r\n\r\n"))
	return err
}

// writerOnly hides Stream's Read/Tell/Seek/Close so io.CopyBuffer
// cannot accidentally short-circuit through a ReaderFrom/WriterTo
// implemented for the wrong direction.
type writerOnly struct {
	io.Writer
}
