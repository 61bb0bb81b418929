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
	"github.com/nlnwa/whatwg-url/url"
)

// targetURIFields are the WARC header fields holding a URI that gets
// syntax-checked under a non-ignore targetURIPolicy.
var targetURIFields = [...]string{WarcTargetURI, WarcRefersToTargetURI}

// validateTargetURI checks WARC-Target-URI and WARC-Refers-To-Target-URI,
// when present and non-empty, against the WHATWG URL parser. Violations
// are collected into the returned Validation rather than raised
// immediately; the caller decides whether policy demands failing the
// record.
func validateTargetURI(headers *HeaderMap, policy ErrorPolicy) *Validation {
	v := &Validation{}
	if policy == ErrIgnore {
		return v
	}
	for _, name := range targetURIFields {
		value, ok := headers.Get(name)
		if !ok || value == "" {
			continue
		}
		if _, err := url.Parse(value); err != nil {
			v.AddError(newHeaderFieldErrorf(name, "malformed URI %q: %v", value, err))
		}
	}
	return v
}
