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

// Package charset decodes header byte strings under a configured
// charset. WARC headers default to UTF-8; HTTP headers embedded in a
// WARC record default to ISO-8859-15, the charset legacy HTTP servers
// assume in the absence of a Content-Type charset parameter.
package charset

import (
	"golang.org/x/text/encoding/charmap"
)

// Charset identifies a decoding to apply to header byte strings.
type Charset int

const (
	// UTF8 passes bytes through unchanged, since Go strings are
	// already UTF-8 byte sequences; invalid sequences are preserved
	// rather than replaced.
	UTF8 Charset = iota
	// ISO88591 decodes bytes as ISO-8859-15, the default charset for
	// HTTP headers in this module.
	ISO88591
)

// Decode converts b into a string under the given charset.
func Decode(b []byte, cs Charset) (string, error) {
	switch cs {
	case ISO88591:
		decoded, err := charmap.ISO8859_15.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return string(b), nil
	}
}
