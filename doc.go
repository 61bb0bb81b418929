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

/*
Package gowarc implements a streaming reader and writer for the Web
ARChive (WARC) file format, versions 1.0 and 1.1.

# WARC

The WARC format offers a standard way to structure, manage and store billions of resources collected from the web and elsewhere.
It is used to build applications for harvesting, managing, accessing, mining and exchanging content.

To learn more about the WARC standard, read the specification at https://iipc.github.io/warc-specifications/specifications/warc-format/warc-1.1/

# Iterating a stream

[NewArchiveIterator] wraps a [Stream] (a file, an in-memory buffer, or a
gzip member-per-record compressed stream from the streams subpackage)
and yields [WarcRecord] values one at a time without materializing the
whole file in memory. Each record's payload is read through a Reader
bound to the record's Content-Length; the iterator reclaims any unread
payload bytes the next time Next is called.

# Create WARC records

[WarcRecord.InitHeaders] builds the four required WARC headers
(WARC-Type, WARC-Date, WARC-Record-ID, Content-Length) for a new
record. The [RecordWriter] is used to write records back to a [Stream],
recomputing Content-Length and block/payload digests as configured.

# Validation and repair

Validation is done when parsing WARC records. What is validated and how validation errors are handled can be controlled
by setting the appropriate options when creating the [ArchiveIterator], and by the policy passed to [WarcRecord.ValidateDigest].
*/
package gowarc
