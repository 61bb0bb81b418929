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

	"github.com/crawlkeep/gowarc/charset"
)

func TestValidateTargetURI_ValidURIPasses(t *testing.T) {
	headers := NewHeaderMap(charset.UTF8)
	headers.Add(WarcTargetURI, "http://example.com/path")

	v := validateTargetURI(headers, ErrWarn)
	assert.True(t, v.Valid())
}

func TestValidateTargetURI_MalformedURICollected(t *testing.T) {
	headers := NewHeaderMap(charset.UTF8)
	headers.Add(WarcTargetURI, "not a uri")

	v := validateTargetURI(headers, ErrWarn)
	assert := assert.New(t)
	assert.False(v.Valid())
	assert.Contains(v.Error(), WarcTargetURI)
}

func TestValidateTargetURI_IgnorePolicySkipsValidation(t *testing.T) {
	headers := NewHeaderMap(charset.UTF8)
	headers.Add(WarcTargetURI, "not a uri")

	v := validateTargetURI(headers, ErrIgnore)
	assert.True(t, v.Valid())
}

func TestValidateTargetURI_MissingFieldIsNotAnError(t *testing.T) {
	headers := NewHeaderMap(charset.UTF8)

	v := validateTargetURI(headers, ErrWarn)
	assert.True(t, v.Valid())
}

func TestValidateTargetURI_RefersToTargetURIChecked(t *testing.T) {
	headers := NewHeaderMap(charset.UTF8)
	headers.Add(WarcRefersToTargetURI, "not a uri")

	v := validateTargetURI(headers, ErrWarn)
	assert.False(t, v.Valid())
}
