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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert := assert.New(t)
	assert.False(o.strict)
	assert.True(o.parseHTTP)
	assert.Equal(AnyType, o.recordTypeFilter)
	assert.Equal(V1_1, o.version)
	assert.Equal("sha1", o.digestAlgorithm)
	assert.Equal(ErrWarn, o.targetURIPolicy)
}

func TestWithStrict_AlsoTightensTargetURIPolicy(t *testing.T) {
	o := defaultOptions()
	WithStrict(true).apply(&o)

	assert := assert.New(t)
	assert.True(o.strict)
	assert.Equal(ErrFail, o.targetURIPolicy)
}

func TestWithStrictFalse_LeavesTargetURIPolicyAlone(t *testing.T) {
	o := defaultOptions()
	o.targetURIPolicy = ErrIgnore
	WithStrict(false).apply(&o)

	assert := assert.New(t)
	assert.False(o.strict)
	assert.Equal(ErrIgnore, o.targetURIPolicy)
}

func TestWithRecordTypeFilter(t *testing.T) {
	o := defaultOptions()
	WithRecordTypeFilter(Response | Request).apply(&o)
	assert.Equal(t, Response|Request, o.recordTypeFilter)
}
