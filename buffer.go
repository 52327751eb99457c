// Copyright 2026 The WS-Driver Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package driver

import "bytes"

// byteQueue is an append-and-consume byte queue shared by every handshake
// and frame parser in this package. Unlike bytes.Buffer it supports peeking
// ahead without consuming, which the Hybi frame header parser needs to
// decide how many more bytes it requires before committing to a read.
type byteQueue struct {
	buf []byte
	off int
}

// Append adds p to the end of the queue. The slice is copied.
func (q *byteQueue) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	q.buf = append(q.buf, p...)
	q.compact()
}

// Len returns the number of unread bytes.
func (q *byteQueue) Len() int {
	return len(q.buf) - q.off
}

// Peek returns the next n unread bytes without consuming them. If fewer
// than n bytes are currently available it returns nil and false.
func (q *byteQueue) Peek(n int) ([]byte, bool) {
	if q.Len() < n {
		return nil, false
	}
	return q.buf[q.off : q.off+n], true
}

// ReadN consumes and returns exactly n bytes, or returns false if fewer than
// n bytes are available (in which case nothing is consumed).
func (q *byteQueue) ReadN(n int) ([]byte, bool) {
	b, ok := q.Peek(n)
	if !ok {
		return nil, false
	}
	out := make([]byte, n)
	copy(out, b)
	q.off += n
	return out, true
}

// ReadUntil consumes and returns the bytes up to but not including the first
// occurrence of delim, also consuming delim itself. Returns false, without
// consuming anything, if delim has not yet appeared in the buffered bytes.
func (q *byteQueue) ReadUntil(delim byte) ([]byte, bool) {
	idx := bytes.IndexByte(q.buf[q.off:], delim)
	if idx < 0 {
		return nil, false
	}
	out := make([]byte, idx)
	copy(out, q.buf[q.off:q.off+idx])
	q.off += idx + 1
	return out, true
}

// Index returns the position of the first occurrence of sep in the unread
// bytes, or -1 if not present.
func (q *byteQueue) Index(sep []byte) int {
	return bytes.Index(q.buf[q.off:], sep)
}

// Discard drops all buffered bytes, used once the driver reaches CLOSED so
// further Parse calls are a no-op per spec.
func (q *byteQueue) Discard() {
	q.buf = nil
	q.off = 0
}

// compact reclaims the consumed prefix once it grows large relative to the
// unread tail, so a long-lived connection doesn't retain every byte it ever
// received.
func (q *byteQueue) compact() {
	if q.off == 0 {
		return
	}
	if q.off < 4096 && q.off < len(q.buf)/2 {
		return
	}
	n := copy(q.buf, q.buf[q.off:])
	q.buf = q.buf[:n]
	q.off = 0
}
