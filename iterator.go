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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crawlkeep/gowarc/charset"
)

// ArchiveIterator drives record-by-record extraction from a Stream:
// it skips inter-record blanks, validates the version line, parses
// WARC headers, sets the payload reader's limit, optionally parses an
// embedded HTTP header block, applies the record-type filter, and
// yields records one at a time.
//
// An ArchiveIterator is not safe for concurrent use; it shares its
// buffered reader with the record it most recently yielded.
type ArchiveIterator struct {
	stream      Stream
	compressing bool
	reader      BufferedReader
	opts        options
	current     *WarcRecord
	closed      bool
}

// NewArchiveIterator constructs an ArchiveIterator over stream.
func NewArchiveIterator(stream Stream, opts ...Option) *ArchiveIterator {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &ArchiveIterator{
		stream:      stream,
		compressing: isBlockCompressed(stream),
		reader:      NewBufferedReader(stream),
		opts:        o,
	}
}

// Next advances the iterator and returns the next record. It returns
// ErrEndOfStream when the stream is exhausted (or stops looking like
// WARC at a record boundary, a defensive resync under the default
// error policy), and ErrSkipped for a record filtered out by
// WithRecordTypeFilter — its payload has already been discarded, and
// the caller should simply call Next again.
func (it *ArchiveIterator) Next() (*WarcRecord, error) {
	if it.closed {
		return nil, ErrEndOfStream
	}

	// Step 1: reclaim the previous record's unread payload.
	if it.current != nil {
		if _, err := it.reader.Consume(-1); err != nil {
			return nil, err
		}
		it.reader.ResetLimit()
		it.current = nil
	}

	// Step 2: record the start offset.
	var streamPos int64
	var err error
	if it.compressing {
		streamPos, err = it.stream.Tell()
	} else {
		streamPos = it.reader.Tell()
	}
	if err != nil {
		return nil, err
	}

	// Step 3: consume blank lines.
	for {
		line, err := it.reader.ReadLine()
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			return nil, ErrEndOfStream
		}
		trimmed := strings.TrimRight(string(line), "\r\n")
		if trimmed != "" {
			// Step 4: this is the version line.
			version := ParseWarcVersion(trimmed)
			if version == nil {
				// Unsupported version: defensive EndOfStream, no resync.
				return nil, ErrEndOfStream
			}
			return it.readRecord(version, streamPos)
		}
		if !it.compressing {
			streamPos += int64(len(line))
		}
	}
}

func (it *ArchiveIterator) readRecord(version *WarcVersion, streamPos int64) (*WarcRecord, error) {
	headers := NewHeaderMap(charset.UTF8)
	headers.SetStatusLine(version.String())

	// Step 5: parse the WARC header block.
	if _, err := parseHeaderBlock(it.reader, headers, false, it.opts.strict); err != nil && err != io.EOF {
		if it.opts.strict {
			return nil, err
		}
		return nil, ErrEndOfStream
	}

	// Step 6: scan once for Content-Length, WARC-Type, Content-Type.
	contentLength, recordType, isHTTP, err := scanHeaders(headers, it.opts.strict)
	if err != nil {
		return nil, err
	}

	rec := &WarcRecord{
		version:       version,
		warcHeaders:   headers,
		recordType:    recordType,
		isHTTP:        isHTTP,
		contentLength: contentLength,
		streamPos:     streamPos,
	}

	rec.validation = validateTargetURI(headers, it.opts.targetURIPolicy)
	if it.opts.targetURIPolicy == ErrFail && !rec.validation.Valid() {
		return nil, *rec.validation
	}

	// Step 7: apply the record-type filter.
	if recordType&it.opts.recordTypeFilter == 0 {
		it.reader.ResetLimit()
		it.reader.SetLimit(contentLength)
		if _, err := it.reader.Consume(-1); err != nil {
			return nil, err
		}
		it.reader.ResetLimit()
		return nil, ErrSkipped
	}

	// Step 8: bind the limited reader.
	it.reader.ResetLimit()
	it.reader.SetLimit(contentLength)
	rec.reader = it.reader
	it.current = rec

	// Step 9: optionally parse the embedded HTTP header block.
	if it.opts.parseHTTP && isHTTP {
		if err := rec.ParseHTTP(); err != nil {
			if it.opts.strict {
				return nil, err
			}
		}
	}

	// Step 10.
	return rec, nil
}

// scanHeaders extracts Content-Length, WARC-Type and the
// application/http Content-Type marker in a single pass over headers.
func scanHeaders(headers *HeaderMap, strict bool) (contentLength int64, recordType RecordType, isHTTP bool, err error) {
	haveLength, haveType, haveContentType := false, false, false
	recordType = Unknown

	for _, name := range headers.Names() {
		if haveLength && haveType && haveContentType {
			break
		}
		switch {
		case !haveLength && strings.EqualFold(name, ContentLength):
			v, _ := headers.Get(name)
			n, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if perr != nil || n < 0 {
				if strict {
					return 0, 0, false, newHeaderFieldErrorf(ContentLength, "malformed Content-Length %q", v)
				}
				return 0, 0, false, ErrEndOfStream
			}
			contentLength = n
			haveLength = true
		case !haveType && strings.EqualFold(name, WarcType):
			v, _ := headers.Get(name)
			recordType = ParseRecordType(v)
			if strict && recordType == Unknown {
				return 0, 0, false, newHeaderFieldErrorf(WarcType, "unrecognized WARC-Type %q", v)
			}
			haveType = true
		case !haveContentType && strings.EqualFold(name, ContentType):
			v, _ := headers.Get(name)
			isHTTP = strings.HasPrefix(strings.ToLower(strings.TrimSpace(v)), "application/http")
			haveContentType = true
		}
	}

	if !haveLength {
		if strict {
			return 0, 0, false, fmt.Errorf("gowarc: missing Content-Length header")
		}
		return 0, 0, false, ErrEndOfStream
	}
	return contentLength, recordType, isHTTP, nil
}

// Close closes the underlying stream.
func (it *ArchiveIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.reader.Close()
}
