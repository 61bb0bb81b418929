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

import "time"

// ErrorPolicy describes how ArchiveIterator and WarcRecord.ValidateDigest
// react to a recoverable error.
type ErrorPolicy int8

const (
	// ErrIgnore silently tolerates the condition.
	ErrIgnore ErrorPolicy = iota
	// ErrWarn tolerates the condition but records it in a Validation.
	ErrWarn
	// ErrFail surfaces the condition as an error from the caller.
	ErrFail
)

type options struct {
	strict           bool
	parseHTTP        bool
	recordTypeFilter RecordType
	version          *WarcVersion
	clock            func() time.Time
	digestAlgorithm  string
	targetURIPolicy  ErrorPolicy
}

func defaultOptions() options {
	return options{
		strict:           false,
		parseHTTP:        true,
		recordTypeFilter: AnyType,
		version:          V1_1,
		clock:            time.Now,
		digestAlgorithm:  "sha1",
		targetURIPolicy:  ErrWarn,
	}
}

// Option configures an ArchiveIterator or RecordWriter.
type Option interface {
	apply(*options)
}

type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(o *options) {
	fo.f(o)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{f: f}
}

// WithStrict makes malformed Content-Length, unknown header syntax
// and invalid WARC-Target-URI values surface as errors instead of
// being tolerated under the default policy.
func WithStrict(strict bool) Option {
	return newFuncOption(func(o *options) {
		o.strict = strict
		if strict {
			o.targetURIPolicy = ErrFail
		}
	})
}

// WithParseHTTP controls whether the iterator parses the embedded
// HTTP header block of application/http records. Defaults to true.
func WithParseHTTP(parse bool) Option {
	return newFuncOption(func(o *options) {
		o.parseHTTP = parse
	})
}

// WithRecordTypeFilter restricts iteration to records whose type
// intersects mask. Defaults to AnyType.
func WithRecordTypeFilter(mask RecordType) Option {
	return newFuncOption(func(o *options) {
		o.recordTypeFilter = mask
	})
}

// WithVersion stores a WARC version in the options. Defaults to
// WARC/1.1. Neither ArchiveIterator nor RecordWriter reads it, and
// InitHeaders takes its version as an argument instead.
func WithVersion(v *WarcVersion) Option {
	return newFuncOption(func(o *options) {
		o.version = v
	})
}

// WithClock stores a time source in the options. Defaults to
// time.Now. Neither ArchiveIterator nor RecordWriter reads it;
// InitHeaders takes the clock for WARC-Date as an argument instead.
func WithClock(clock func() time.Time) Option {
	return newFuncOption(func(o *options) {
		o.clock = clock
	})
}

// WithTargetURIPolicy overrides how a malformed WARC-Target-URI or
// WARC-Refers-To-Target-URI is handled, independently of WithStrict.
// Defaults to ErrWarn.
func WithTargetURIPolicy(policy ErrorPolicy) Option {
	return newFuncOption(func(o *options) {
		o.targetURIPolicy = policy
	})
}

// WithDigestAlgorithm sets the hash algorithm RecordWriter uses when
// asked to compute checksums. Supported values: "sha1", "md5",
// "sha256". Defaults to "sha1".
func WithDigestAlgorithm(alg string) Option {
	return newFuncOption(func(o *options) {
		o.digestAlgorithm = alg
	})
}
