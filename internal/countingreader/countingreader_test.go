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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReader_NResetsOnSetLimitButTotalDoesNot(t *testing.T) {
	r := New(strings.NewReader("0123456789"))
	assert := assert.New(t)

	_, err := io.CopyN(io.Discard, r, 4)
	assert.NoError(err)
	assert.Equal(int64(4), r.N())
	assert.Equal(int64(4), r.Total())

	r.SetLimit(3)
	assert.Equal(int64(0), r.N())
	assert.Equal(int64(4), r.Total())

	_, err = io.CopyN(io.Discard, r, 3)
	assert.NoError(err)
	assert.Equal(int64(3), r.N())
	assert.Equal(int64(7), r.Total())

	r.ResetLimit()
	assert.Equal(int64(0), r.N())
	assert.Equal(int64(7), r.Total())

	_, err = io.CopyN(io.Discard, r, 3)
	assert.NoError(err)
	assert.Equal(int64(10), r.Total())
}

func TestReader_LimitSynthesizesEOF(t *testing.T) {
	r := NewLimited(strings.NewReader("0123456789"), 3)
	b, err := io.ReadAll(r)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("012", string(b))
}

func TestReader_Remaining(t *testing.T) {
	r := New(strings.NewReader("0123456789"))
	assert := assert.New(t)
	assert.Equal(int64(-1), r.Remaining())

	r.SetLimit(5)
	assert.Equal(int64(5), r.Remaining())

	_, err := io.CopyN(io.Discard, r, 2)
	assert.NoError(err)
	assert.Equal(int64(3), r.Remaining())
}

func TestReader_ConsumeNegativeDiscardsRemaining(t *testing.T) {
	r := New(strings.NewReader("0123456789"))
	r.SetLimit(5)

	n, err := r.Consume(-1)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(int64(5), n)
	assert.Equal(int64(0), r.Remaining())
}
