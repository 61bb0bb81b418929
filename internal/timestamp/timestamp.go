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

// Package timestamp converts between the WARC-Date timestamp format
// (RFC 3339 / ISO 8601, second precision, Z suffix) and the compact
// 14-digit form used in generated WARC filenames.
package timestamp

import "time"

const (
	iso8601Layout = "2006-01-02T15:04:05Z"
	compact14     = "20060102150405"
)

// To14 converts an ISO 8601 timestamp such as "2020-01-05T10:44:25Z"
// into its compact 14-digit form "20200105104425".
func To14(iso8601 string) (string, error) {
	t, err := time.Parse(iso8601Layout, iso8601)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(compact14), nil
}

// From14ToTime parses a compact 14-digit timestamp back into a time.Time
// in UTC.
func From14ToTime(s string) (time.Time, error) {
	return time.ParseInLocation(compact14, s, time.UTC)
}

// UTC returns t converted to UTC.
func UTC(t time.Time) time.Time {
	return t.UTC()
}

// UTC14 formats t as a compact 14-digit UTC timestamp.
func UTC14(t time.Time) string {
	return t.UTC().Format(compact14)
}

// UTCW3cIso8601 formats t as a WARC-Date value: UTC, second precision,
// Z suffix.
func UTCW3cIso8601(t time.Time) string {
	return t.UTC().Format(iso8601Layout)
}
