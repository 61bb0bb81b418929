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
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/crawlkeep/gowarc/charset"
	"github.com/crawlkeep/gowarc/internal/timestamp"
)

// WarcRecord is a single WARC record: its WARC header map, an
// optional parsed HTTP header map, and a reader bound to the record's
// payload extent.
//
// A record yielded by an ArchiveIterator is valid only until the next
// call to Next: the iterator reclaims the shared reader at that point.
type WarcRecord struct {
	version     *WarcVersion
	warcHeaders *HeaderMap
	httpHeaders *HeaderMap

	recordType RecordType
	isHTTP     bool
	httpParsed bool

	contentLength int64
	streamPos     int64

	reader     BufferedReader
	validation *Validation
}

// Version returns the record's WARC version.
func (r *WarcRecord) Version() *WarcVersion { return r.version }

// WarcHeaders returns the record's WARC header map.
func (r *WarcRecord) WarcHeaders() *HeaderMap { return r.warcHeaders }

// HTTPHeaders returns the record's embedded HTTP header map, or nil
// if HTTP parsing has not happened (or the record is not HTTP).
func (r *WarcRecord) HTTPHeaders() *HeaderMap { return r.httpHeaders }

// Type returns the record's WARC-Type.
func (r *WarcRecord) Type() RecordType { return r.recordType }

// IsHTTP reports whether Content-Type begins with application/http.
func (r *WarcRecord) IsHTTP() bool { return r.isHTTP }

// HTTPParsed reports whether ParseHTTP has run successfully.
func (r *WarcRecord) HTTPParsed() bool { return r.httpParsed }

// ContentLength returns the remaining payload length: the original
// Content-Length header value, decremented by the HTTP header block
// size once ParseHTTP has run.
func (r *WarcRecord) ContentLength() int64 { return r.contentLength }

// StreamPos returns the record's start offset: the logical byte
// offset on an uncompressed stream, or the compressed substrate's
// offset at the record's block boundary on a block-compressed one.
func (r *WarcRecord) StreamPos() int64 { return r.streamPos }

// Reader returns the record's payload reader, bound to ContentLength
// bytes. It is shared with the owning ArchiveIterator and becomes
// invalid once the iterator's Next is called again.
func (r *WarcRecord) Reader() BufferedReader { return r.reader }

// Validation returns the non-fatal issues collected while the record's
// headers were scanned, such as a malformed WARC-Target-URI under a
// non-strict target-URI policy. It is never nil.
func (r *WarcRecord) Validation() *Validation {
	if r.validation == nil {
		r.validation = &Validation{}
	}
	return r.validation
}

// ParseHTTP parses the embedded HTTP status line and header block at
// the start of the record's payload, iso-8859-15 decoded, and
// decrements ContentLength by the bytes it consumed so that the
// remaining reader delivers exactly the HTTP body. It is idempotent:
// calling it twice on an already-parsed record is a no-op.
func (r *WarcRecord) ParseHTTP() error {
	if r.httpParsed {
		return nil
	}
	httpHeaders := NewHeaderMap(charset.ISO88591)
	// The embedded HTTP header block is always parsed leniently: the
	// WARC-level strict option governs the WARC header block, not the
	// HTTP payload it wraps.
	consumed, err := parseHeaderBlock(r.reader, httpHeaders, true, false)
	if err != nil && err != io.EOF {
		return err
	}
	r.httpHeaders = httpHeaders
	r.contentLength -= consumed
	if r.contentLength < 0 {
		r.contentLength = 0
	}
	r.httpParsed = true
	return nil
}

// SetBytesContent replaces the record's reader with an in-memory
// reader over b and sets ContentLength to len(b). Used when building
// a record programmatically for writing.
func (r *WarcRecord) SetBytesContent(b []byte) {
	r.reader = NewBufferedReader(bytes.NewReader(b))
	r.contentLength = int64(len(b))
}

// InitHeaders resets the record's WARC headers and populates the
// status line and the four required headers, in order: WARC-Type,
// WARC-Date, WARC-Record-ID, Content-Length. recordID defaults to a
// freshly generated version-4 UUID rendered as a URN when empty.
func (r *WarcRecord) InitHeaders(contentLength int64, recordType RecordType, recordID string, version *WarcVersion, clock func() time.Time) {
	if version == nil {
		version = V1_1
	}
	if clock == nil {
		clock = time.Now
	}
	if recordID == "" {
		recordID = "<urn:uuid:" + uuid.New().String() + ">"
	}

	r.version = version
	r.recordType = recordType
	r.contentLength = contentLength

	r.warcHeaders = NewHeaderMap(charset.UTF8)
	r.warcHeaders.SetStatusLine(version.String())
	r.warcHeaders.Add(WarcType, recordType.String())
	r.warcHeaders.Add(WarcDate, timestamp.UTCW3cIso8601(clock()))
	r.warcHeaders.Add(WarcRecordID, recordID)
	r.warcHeaders.Add(ContentLength, strconv.FormatInt(contentLength, 10))
}

// VerifyBlockDigest streams the record's payload through the
// algorithm named in its WARC-Block-Digest header while tee'ing the
// bytes into memory, then rebinds the record's reader to that buffer
// so the caller can still read the payload afterward. It returns
// false, without error, if the header is absent or names an
// unsupported algorithm.
func (r *WarcRecord) VerifyBlockDigest() (bool, error) {
	field, ok := r.warcHeaders.Get(WarcBlockDigest)
	if !ok {
		return false, nil
	}
	return r.verifyDigestField(field)
}

// VerifyPayloadDigest is analogous to VerifyBlockDigest, keyed on
// WARC-Payload-Digest. It returns false if the record's HTTP body has
// not been parsed, since the payload digest is only defined over the
// HTTP entity body.
func (r *WarcRecord) VerifyPayloadDigest() (bool, error) {
	if !r.httpParsed {
		return false, nil
	}
	field, ok := r.warcHeaders.Get(WarcPayloadDigest)
	if !ok {
		return false, nil
	}
	return r.verifyDigestField(field)
}

func (r *WarcRecord) verifyDigestField(field string) (bool, error) {
	algorithm, want, err := parseDigestField(field)
	if err != nil {
		return false, err
	}
	h, err := newHash(algorithm)
	if err != nil {
		if _, ok := err.(*ErrUnsupportedDigestAlgorithm); ok {
			return false, nil
		}
		return false, err
	}

	var buf bytes.Buffer
	tee := io.TeeReader(r.reader, &buf)
	if _, err := io.Copy(h, tee); err != nil {
		return false, err
	}

	r.reader = NewBufferedReader(bytes.NewReader(buf.Bytes()))
	r.reader.SetLimit(int64(buf.Len()))

	return bytes.Equal(h.Sum(nil), want), nil
}

// ValidateDigest recomputes both the block digest and, if the record
// is HTTP, the payload digest, streaming the block exactly once
// instead of requiring two destructive tee'd passes. Mismatches and
// unsupported algorithms are reported through the returned
// Validation rather than failing outright, unless policy is ErrFail.
func (r *WarcRecord) ValidateDigest(policy ErrorPolicy) (*Validation, error) {
	v := &Validation{}

	blockField, hasBlock := r.warcHeaders.Get(WarcBlockDigest)
	payloadField, hasPayload := r.warcHeaders.Get(WarcPayloadDigest)
	wantPayload := hasPayload && r.httpParsed

	var blockHash, payloadHash io.Writer
	var blockHasher, payloadHasher interface {
		Sum([]byte) []byte
	}

	if hasBlock {
		if alg, _, err := parseDigestField(blockField); err == nil {
			if h, err := newHash(alg); err == nil {
				blockHash = h
				blockHasher = h
			} else {
				reportDigestIssue(v, policy, err)
			}
		} else {
			reportDigestIssue(v, policy, err)
		}
	}
	if wantPayload {
		if alg, _, err := parseDigestField(payloadField); err == nil {
			if h, err := newHash(alg); err == nil {
				payloadHash = h
				payloadHasher = h
			} else {
				reportDigestIssue(v, policy, err)
			}
		} else {
			reportDigestIssue(v, policy, err)
		}
	}

	var buf bytes.Buffer
	writers := []io.Writer{&buf}
	if blockHash != nil {
		writers = append(writers, blockHash)
	}
	mw := io.MultiWriter(writers...)

	remaining := r.reader.Remaining()
	if remaining < 0 {
		remaining = r.contentLength
	}
	if _, err := io.CopyN(mw, r.reader, remaining); err != nil && err != io.EOF {
		return v, err
	}

	if payloadHash != nil {
		if _, err := payloadHash.Write(buf.Bytes()); err != nil {
			return v, err
		}
	}

	r.reader = NewBufferedReader(bytes.NewReader(buf.Bytes()))
	r.reader.SetLimit(int64(buf.Len()))

	if blockHasher != nil {
		_, want, _ := parseDigestField(blockField)
		if !bytes.Equal(blockHasher.Sum(nil), want) {
			reportDigestIssue(v, policy, fmt.Errorf("gowarc: block digest mismatch"))
		}
	}
	if payloadHasher != nil {
		_, want, _ := parseDigestField(payloadField)
		if !bytes.Equal(payloadHasher.Sum(nil), want) {
			reportDigestIssue(v, policy, fmt.Errorf("gowarc: payload digest mismatch"))
		}
	}

	if policy == ErrFail && !v.Valid() {
		return v, *v
	}
	return v, nil
}

func reportDigestIssue(v *Validation, policy ErrorPolicy, err error) {
	if policy == ErrIgnore {
		return
	}
	v.AddError(err)
}
