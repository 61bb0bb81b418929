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
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStream_ReadWriteTell(t *testing.T) {
	s := NewMemoryStream([]byte("hello"))
	buf := make([]byte, 3)

	n, err := s.Read(buf)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(3, n)
	assert.Equal("hel", string(buf))

	pos, err := s.Tell()
	assert.NoError(err)
	assert.Equal(int64(3), pos)

	assert.NoError(s.Seek(0))
	all, err := io.ReadAll(s)
	assert.NoError(err)
	assert.Equal("hello", string(all))
}

func TestMemoryStream_WriteGrows(t *testing.T) {
	s := NewMemoryWriteStream()
	_, err := s.Write([]byte("foo"))
	assert := assert.New(t)
	assert.NoError(err)
	_, err = s.Write([]byte("bar"))
	assert.NoError(err)
	assert.Equal("foobar", string(s.Bytes()))
}

func TestFileStream_WriteThenRead(t *testing.T) {
	name := filepath.Join(t.TempDir(), "record.warc")
	assert := assert.New(t)

	w, err := Create(name)
	assert.NoError(err)
	_, err = w.Write([]byte("payload"))
	assert.NoError(err)
	assert.NoError(w.Close())

	r, err := Open(name)
	assert.NoError(err)
	defer r.Close()

	b, err := io.ReadAll(r)
	assert.NoError(err)
	assert.Equal("payload", string(b))

	pos, err := r.Tell()
	assert.NoError(err)
	assert.Equal(int64(len("payload")), pos)
}

func TestGzipStream_MemberPerRecordRoundTrip(t *testing.T) {
	sink := NewMemoryWriteStream()
	gz := NewGzipStream(sink)
	assert := assert.New(t)

	_, err := gz.BeginMember()
	assert.NoError(err)
	_, err = gz.Write([]byte("first"))
	assert.NoError(err)
	_, err = gz.EndMember()
	assert.NoError(err)

	_, err = gz.BeginMember()
	assert.NoError(err)
	_, err = gz.Write([]byte("second"))
	assert.NoError(err)
	assert.NoError(gz.Close())

	src := NewMemoryStream(sink.Bytes())
	reader, err := NewGzipReaderStream(src)
	assert.NoError(err)
	defer reader.Close()

	all, err := io.ReadAll(reader)
	assert.NoError(err)
	assert.Equal("firstsecond", string(all))
	assert.True(reader.BlockCompressed())
}
