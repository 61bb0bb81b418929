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
	"strings"

	"github.com/crawlkeep/gowarc/charset"
)

type nameValue struct {
	name  string
	value string
}

// HeaderMap is an ordered, case-insensitive multimap of header
// name/value pairs with an optional status line. It is the model for
// both the WARC header block and an embedded HTTP header block.
type HeaderMap struct {
	statusLine string
	fields     []nameValue
	charset    charset.Charset

	dirty  bool
	decode map[string][]string
}

// NewHeaderMap creates an empty HeaderMap decoding values under cs.
func NewHeaderMap(cs charset.Charset) *HeaderMap {
	return &HeaderMap{charset: cs, dirty: true}
}

// StatusLine returns the header block's status line, e.g. "WARC/1.1"
// or "HTTP/1.1 200 OK".
func (h *HeaderMap) StatusLine() string {
	return h.statusLine
}

// SetStatusLine sets the status line.
func (h *HeaderMap) SetStatusLine(line string) {
	h.statusLine = line
}

// Add appends a new (name, value) pair, preserving any existing
// entries with the same name.
func (h *HeaderMap) Add(name, value string) {
	h.fields = append(h.fields, nameValue{name: name, value: value})
	h.dirty = true
}

// AddContinuation folds a continuation line into the value of the
// previously added header. If there is no previous header, a
// synthetic pair with an empty name is created, matching the
// tolerant behavior of real-world WARC files.
func (h *HeaderMap) AddContinuation(trimmed string) {
	if len(h.fields) == 0 {
		h.fields = append(h.fields, nameValue{name: "", value: trimmed})
		h.dirty = true
		return
	}
	last := &h.fields[len(h.fields)-1]
	last.value = last.value + " " + trimmed
	h.dirty = true
}

// Set replaces the first entry matching name (case-insensitively)
// with value, or appends a new entry if none exists.
func (h *HeaderMap) Set(name, value string) {
	for i := range h.fields {
		if strings.EqualFold(h.fields[i].name, name) {
			h.fields[i].value = value
			h.dirty = true
			return
		}
	}
	h.Add(name, value)
}

// Delete removes every entry matching name, case-insensitively.
func (h *HeaderMap) Delete(name string) {
	out := h.fields[:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.name, name) {
			out = append(out, f)
		}
	}
	h.fields = out
	h.dirty = true
}

// Get returns the first value matching name, case-insensitively, and
// whether it was found.
func (h *HeaderMap) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			return f.value, true
		}
	}
	return "", false
}

// GetAll returns every value matching name, case-insensitively, in
// insertion order.
func (h *HeaderMap) GetAll(name string) []string {
	var out []string
	for _, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			out = append(out, f.value)
		}
	}
	return out
}

// Has reports whether any entry matches name, case-insensitively.
func (h *HeaderMap) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Names returns every distinct header name in first-occurrence order.
func (h *HeaderMap) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range h.fields {
		key := strings.ToLower(f.name)
		if !seen[key] {
			seen[key] = true
			out = append(out, f.name)
		}
	}
	return out
}

// Len returns the number of (name, value) pairs, duplicates included.
func (h *HeaderMap) Len() int {
	return len(h.fields)
}

// Each calls fn for every (name, value) pair in insertion order.
func (h *HeaderMap) Each(fn func(name, value string)) {
	for _, f := range h.fields {
		fn(f.name, f.value)
	}
}

// Dict returns a read-through map[string][]string view of the header
// map decoded under its configured charset. The view is cached and
// invalidated on any mutation.
func (h *HeaderMap) Dict() (map[string][]string, error) {
	if !h.dirty && h.decode != nil {
		return h.decode, nil
	}
	decoded := make(map[string][]string, len(h.fields))
	for _, f := range h.fields {
		name, err := charset.Decode([]byte(f.name), h.charset)
		if err != nil {
			return nil, err
		}
		value, err := charset.Decode([]byte(f.value), h.charset)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(name)
		decoded[key] = append(decoded[key], value)
	}
	h.decode = decoded
	h.dirty = false
	return decoded, nil
}

// Bytes serializes the header map as the status line (if any)
// followed by each header as "name: value\r\n", in insertion order.
// It does not write the terminating blank line.
func (h *HeaderMap) Bytes() []byte {
	var b strings.Builder
	if h.statusLine != "" {
		b.WriteString(h.statusLine)
		b.WriteString("\r\n")
	}
	for _, f := range h.fields {
		b.WriteString(f.name)
		b.WriteString(": ")
		b.WriteString(f.value)
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}
