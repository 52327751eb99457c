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

import (
	"encoding/binary"

	"github.com/pion/randutil"
)

// secureRand is the process-wide cryptographically secure random source
// used for client masking keys and the client's Sec-WebSocket-Key. Per
// spec, this source must be crypto-secure; randutil's CryptoRandomGenerator
// is backed by crypto/rand.
var secureRand randutil.Generator = randutil.NewCryptoRandomGenerator()

// randomBytes fills a buffer of n bytes (n must be a multiple of 8) using
// secureRand, eight bytes at a time.
func randomBytes(n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i += 8 {
		v, err := secureRand.GenerateUint64(false, 0)
		if err != nil {
			// crypto/rand failures are unrecoverable; a broken entropy
			// source is not something this driver can work around.
			panic(err)
		}
		binary.BigEndian.PutUint64(out[i:i+8], v)
	}
	return out
}

// randomMaskKey returns a fresh 4-byte client masking key.
func randomMaskKey() [4]byte {
	var key [4]byte
	copy(key[:], randomBytes(8)[:4])
	return key
}

// randomWSKey returns a fresh, base64-ready 16-byte client handshake key.
func randomWSKey() []byte {
	return randomBytes(16)
}
