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
	"io"
	"strings"
)

// parseHeaderBlock consumes lines from r into target until a blank
// line or EOF, folding continuation lines and splitting "name: value"
// pairs. If hasStatusLine is true, the first non-continuation line is
// stored as target's status line instead of being parsed as a
// header. It returns the number of bytes consumed from r, terminator
// bytes included.
//
// Under the default, lenient policy (strict false) a line with no
// colon is tolerated as a best-effort continuation of whatever came
// before, and a line terminated by a bare "\n" is accepted the same as
// one terminated by "\r\n". Under strict, both are syntax violations
// and are reported as a *SyntaxError instead.
func parseHeaderBlock(r BufferedReader, target *HeaderMap, hasStatusLine bool, strict bool) (int64, error) {
	var consumed int64
	line := 0
	for {
		raw, err := r.ReadLine()
		if err != nil {
			if strict && err != io.EOF {
				return consumed, newWrappedSyntaxError("error reading header line", line+1, err)
			}
			return consumed, err
		}
		consumed += int64(len(raw))
		line++

		trimmedEnd := strings.TrimRight(string(raw), "\r\n")
		if trimmedEnd == "" {
			// Blank line ("\r\n" or "\n"), or EOF (ReadLine returns
			// an empty slice at EOF under the BufferedReader contract).
			return consumed, nil
		}

		if strict && !strings.HasSuffix(string(raw), "\r\n") {
			return consumed, newSyntaxError("header line not terminated by CRLF", line)
		}

		if raw[0] == ' ' || raw[0] == '\t' {
			target.AddContinuation(strings.TrimSpace(trimmedEnd))
			continue
		}

		if hasStatusLine {
			target.SetStatusLine(strings.TrimSpace(trimmedEnd))
			hasStatusLine = false
			continue
		}

		idx := strings.IndexByte(trimmedEnd, ':')
		if idx < 0 {
			if strict {
				return consumed, newSyntaxError("header line missing colon", line)
			}
			// No colon: tolerated as a best-effort continuation of
			// whatever came before, per the lenient default policy.
			target.AddContinuation(strings.TrimSpace(trimmedEnd))
			continue
		}

		name := strings.TrimSpace(trimmedEnd[:idx])
		value := strings.TrimSpace(trimmedEnd[idx+1:])
		target.Add(name, value)
	}
}
