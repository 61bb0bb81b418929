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
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"hash"
	"strings"
)

// ErrUnsupportedDigestAlgorithm is returned when a WARC-*-Digest
// header names an algorithm this package does not implement.
// Verification treats it as a warning, not an abort: it returns false
// rather than propagating the error up through Next.
type ErrUnsupportedDigestAlgorithm struct {
	Algorithm string
}

func (e *ErrUnsupportedDigestAlgorithm) Error() string {
	return fmt.Sprintf("gowarc: unsupported digest algorithm %q", e.Algorithm)
}

func newHash(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "sha1":
		return sha1.New(), nil
	case "md5":
		return md5.New(), nil
	case "sha256":
		return sha256.New(), nil
	default:
		return nil, &ErrUnsupportedDigestAlgorithm{Algorithm: algorithm}
	}
}

// parseDigestField splits a WARC-Block-Digest/WARC-Payload-Digest
// value of the form "<alg>:<base32-upper digest>" into its algorithm
// and raw digest bytes.
func parseDigestField(field string) (algorithm string, digest []byte, err error) {
	idx := strings.IndexByte(field, ':')
	if idx < 0 {
		return "", nil, newHeaderFieldErrorf(WarcBlockDigest, "malformed digest field %q: missing colon", field)
	}
	algorithm = field[:idx]
	encoded := field[idx+1:]
	digest, err = base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(encoded))
	if err != nil {
		return algorithm, nil, err
	}
	return algorithm, digest, nil
}

// formatDigestField renders algorithm and sum as a WARC digest field
// value: "<alg>:<base32-upper digest>".
func formatDigestField(algorithm string, sum []byte) string {
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(sum)
	return algorithm + ":" + strings.ToUpper(encoded)
}
