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

import "encoding/binary"

// maskBytes XORs data in place against key, starting at the given
// wrap-around offset into key, and returns the offset to resume from for a
// subsequent call against the continuation of the same payload. For long
// payloads it XORs 8 bytes at a time against a repeated copy of the key,
// the same batching trick production WebSocket servers use to keep masking
// off the hot path for large frames.
func maskBytes(key [4]byte, offset int, data []byte) int {
	p := offset & 3
	if len(data) < 16 {
		for i := range data {
			data[i] ^= key[p&3]
			p++
		}
		return p & 3
	}

	var k [8]byte
	for i := 0; i < 8; i++ {
		k[i] = key[(p+i)&3]
	}
	km := binary.BigEndian.Uint64(k[:])

	n := (len(data) / 8) * 8
	for i := 0; i < n; i += 8 {
		v := binary.BigEndian.Uint64(data[i : i+8])
		v ^= km
		binary.BigEndian.PutUint64(data[i:], v)
	}
	rest := data[n:]
	for i := range rest {
		rest[i] ^= key[p&3]
		p++
	}
	return p & 3
}
