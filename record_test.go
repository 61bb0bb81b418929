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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crawlkeep/gowarc/charset"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestInitHeaders(t *testing.T) {
	rec := &WarcRecord{}
	when := time.Date(2020, 1, 5, 10, 44, 25, 0, time.UTC)
	rec.InitHeaders(5, Response, "", V1_1, fixedClock(when))

	assert := assert.New(t)
	assert.Equal("WARC/1.1", rec.WarcHeaders().StatusLine())

	wt, ok := rec.WarcHeaders().Get(WarcType)
	assert.True(ok)
	assert.Equal("response", wt)

	wd, ok := rec.WarcHeaders().Get(WarcDate)
	assert.True(ok)
	assert.Equal("2020-01-05T10:44:25Z", wd)

	cl, ok := rec.WarcHeaders().Get(ContentLength)
	assert.True(ok)
	assert.Equal("5", cl)

	id, ok := rec.WarcHeaders().Get(WarcRecordID)
	assert.True(ok)
	assert.True(len(id) > 0)
}

func TestInitHeaders_DefaultsVersionAndClock(t *testing.T) {
	rec := &WarcRecord{}
	rec.InitHeaders(0, Warcinfo, "<urn:uuid:fixed>", nil, nil)

	assert := assert.New(t)
	assert.Equal(V1_1, rec.Version())
	id, _ := rec.WarcHeaders().Get(WarcRecordID)
	assert.Equal("<urn:uuid:fixed>", id)
}

func TestSetBytesContent(t *testing.T) {
	rec := &WarcRecord{}
	rec.SetBytesContent([]byte("hello"))

	assert := assert.New(t)
	assert.Equal(int64(5), rec.ContentLength())

	b, err := io.ReadAll(rec.Reader())
	assert.NoError(err)
	assert.Equal("hello", string(b))
}

func TestParseHTTP(t *testing.T) {
	rec := &WarcRecord{}
	body := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\nhi"
	rec.SetBytesContent([]byte(body))
	rec.isHTTP = true

	assert := assert.New(t)
	assert.NoError(rec.ParseHTTP())
	assert.True(rec.HTTPParsed())

	ct, ok := rec.HTTPHeaders().Get("Content-Type")
	assert.True(ok)
	assert.Equal("text/plain", ct)

	assert.Equal(int64(2), rec.ContentLength())

	b, err := io.ReadAll(rec.Reader())
	assert.NoError(err)
	assert.Equal("hi", string(b))

	// Idempotent: calling again is a no-op.
	assert.NoError(rec.ParseHTTP())
}

func TestVerifyBlockDigest(t *testing.T) {
	rec := &WarcRecord{}
	rec.SetBytesContent([]byte("abc"))
	rec.warcHeaders = NewHeaderMap(charset.UTF8)
	rec.warcHeaders.Add(WarcBlockDigest, "sha1:VGMT4NSHA2AWVOR6EVYXQUGCNSONBWE5")

	ok, err := rec.VerifyBlockDigest()
	assert := assert.New(t)
	assert.NoError(err)
	assert.True(ok)

	// Tee property: the payload is still readable afterward.
	b, err := io.ReadAll(rec.Reader())
	assert.NoError(err)
	assert.Equal("abc", string(b))
}

func TestVerifyBlockDigest_Mismatch(t *testing.T) {
	rec := &WarcRecord{}
	rec.SetBytesContent([]byte("abc"))
	rec.warcHeaders = NewHeaderMap(charset.UTF8)
	rec.warcHeaders.Add(WarcBlockDigest, "sha1:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

	ok, err := rec.VerifyBlockDigest()
	assert := assert.New(t)
	assert.NoError(err)
	assert.False(ok)
}

func TestVerifyBlockDigest_UnsupportedAlgorithm(t *testing.T) {
	rec := &WarcRecord{}
	rec.SetBytesContent([]byte("abc"))
	rec.warcHeaders = NewHeaderMap(charset.UTF8)
	rec.warcHeaders.Add(WarcBlockDigest, "sha512:AAAA")

	ok, err := rec.VerifyBlockDigest()
	assert := assert.New(t)
	assert.NoError(err)
	assert.False(ok)
}

func TestValidateDigest_Block(t *testing.T) {
	rec := &WarcRecord{}
	rec.SetBytesContent([]byte("abc"))

	h, err := newHash("sha1")
	assert := assert.New(t)
	assert.NoError(err)
	_, _ = h.Write([]byte("abc"))

	rec.warcHeaders = NewHeaderMap(charset.UTF8)
	rec.warcHeaders.Add(WarcBlockDigest, formatDigestField("sha1", h.Sum(nil)))

	v, err := rec.ValidateDigest(ErrWarn)
	assert.NoError(err)
	assert.True(v.Valid())

	b, err := io.ReadAll(rec.Reader())
	assert.NoError(err)
	assert.Equal("abc", string(b))
}

func TestValidateDigest_Payload(t *testing.T) {
	rec := &WarcRecord{}
	body := "HTTP/1.1 200 OK\r\n\r\nabc"
	rec.SetBytesContent([]byte(body))
	rec.isHTTP = true
	assert := assert.New(t)
	assert.NoError(rec.ParseHTTP())

	h, err := newHash("sha1")
	assert.NoError(err)
	_, _ = h.Write([]byte("abc"))

	rec.warcHeaders = NewHeaderMap(charset.UTF8)
	rec.warcHeaders.Add(WarcPayloadDigest, formatDigestField("sha1", h.Sum(nil)))

	v, err := rec.ValidateDigest(ErrWarn)
	assert.NoError(err)
	assert.True(v.Valid())
}

func TestValidateDigest_Mismatch_ErrFail(t *testing.T) {
	rec := &WarcRecord{}
	rec.SetBytesContent([]byte("abc"))
	rec.warcHeaders = NewHeaderMap(charset.UTF8)
	rec.warcHeaders.Add(WarcBlockDigest, "sha1:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

	v, err := rec.ValidateDigest(ErrFail)
	assert := assert.New(t)
	assert.Error(err)
	assert.False(v.Valid())
}
