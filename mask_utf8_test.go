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

import "testing"

func TestMaskRoundTrip(t *testing.T) {
	key := [4]byte{0x12, 0x34, 0x56, 0x78}
	payload := []byte("the quick brown fox jumps over the lazy dog, twice over")
	masked := append([]byte(nil), payload...)
	maskBytes(key, 0, masked)
	require_NotEqual(t, masked, payload)

	unmasked := append([]byte(nil), masked...)
	maskBytes(key, 0, unmasked)
	require_Equal(t, unmasked, payload)
}

func TestMaskOffsetWraparound(t *testing.T) {
	key := [4]byte{1, 2, 3, 4}
	whole := []byte("abcdefgh")

	wholeMasked := append([]byte(nil), whole...)
	maskBytes(key, 0, wholeMasked)

	split := append([]byte(nil), whole...)
	newOff := maskBytes(key, 0, split[:3])
	maskBytes(key, newOff, split[3:])

	require_Equal(t, split, wholeMasked)
}

func TestUTF8ValidatorAcrossFragments(t *testing.T) {
	// "héllo" with the 2-byte 'é' (0xC3 0xA9) split across two writes.
	full := []byte("h\xc3\xa9llo")
	var v utf8Validator
	r1 := v.Write(full[:2]) // "h" + leading byte of é
	require_True(t, r1 != utf8Invalid)
	r2 := v.Write(full[2:])
	require_True(t, r2 == utf8Valid)
	require_True(t, v.Complete())
}

func TestUTF8ValidatorRejectsInvalid(t *testing.T) {
	var v utf8Validator
	r := v.Write([]byte{0xff, 0xfe})
	require_Equal(t, r, utf8Invalid)
}

func TestUTF8ValidatorIncompleteAtEnd(t *testing.T) {
	var v utf8Validator
	// A 3-byte sequence leader followed by only one of its two continuation
	// bytes.
	v.Write([]byte{0xe2, 0x82})
	require_False(t, v.Complete())
}

func TestCloseCodeValidity(t *testing.T) {
	cases := map[int]bool{
		1000: true,
		1001: true,
		1002: true,
		1004: false,
		1005: false,
		1006: false,
		1007: true,
		1011: true,
		1012: false,
		1015: false,
		2999: false,
		3000: true,
		4999: true,
		5000: false,
	}
	for code, want := range cases {
		require_Equal(t, validCloseCode(code), want)
	}
}
