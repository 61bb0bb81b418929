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
	"time"

	"github.com/crawlkeep/gowarc/internal"
	"github.com/crawlkeep/gowarc/internal/timestamp"
)

// FilenameGenerator produces WARC output filenames following the
// conventional "<prefix>-<timestamp>-<serial>-<host>.warc(.gz)"
// pattern, using internal.Sprintt's named-parameter formatting.
type FilenameGenerator struct {
	Pattern string
	Prefix  string
	Serial  func() int
	Host    func() string
	Clock   func() time.Time
}

// NewFilenameGenerator returns a generator for prefix using the
// default pattern and the local hostname (falling back to the
// outbound IP if the hostname cannot be resolved).
func NewFilenameGenerator(prefix string, serial func() int) *FilenameGenerator {
	return &FilenameGenerator{
		Pattern: "%{prefix}s-%{timestamp}s-%{serial}05d-%{host}s.warc.gz",
		Prefix:  prefix,
		Serial:  serial,
		Host:    internal.GetHostNameOrIP,
		Clock:   time.Now,
	}
}

// Next renders the next filename.
func (g *FilenameGenerator) Next() string {
	clock := g.Clock
	if clock == nil {
		clock = time.Now
	}
	params := map[string]any{
		"prefix":    g.Prefix,
		"timestamp": timestamp.UTC14(clock()),
		"serial":    g.Serial(),
		"host":      g.Host(),
	}
	return internal.Sprintt(g.Pattern, params)
}
