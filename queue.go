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

// queuedKind identifies the send operation that was deferred because the
// Driver was not yet OPEN.
type queuedKind int

const (
	queuedText queuedKind = iota
	queuedBinary
	queuedPing
)

// queuedSend is one send call issued before the handshake completed. It is
// replayed, in FIFO order, the instant the Driver transitions to OPEN.
type queuedSend struct {
	kind    queuedKind
	text    string
	payload []byte
	pingCB  func([]byte)
}

// outboundQueue holds queuedSend records awaiting flush. Per spec.md §4.8,
// anything sent after the queue has been drained bypasses it entirely by
// going straight to the frame codec, so this type only ever needs push and
// a one-shot drain.
type outboundQueue struct {
	items []queuedSend
}

func (q *outboundQueue) push(item queuedSend) {
	q.items = append(q.items, item)
}

// drain returns the queued items in insertion order and empties the queue.
func (q *outboundQueue) drain() []queuedSend {
	items := q.items
	q.items = nil
	return items
}
