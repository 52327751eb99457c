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

// The original (Hixie draft) framing predates the Hybi bit-packed header:
// a text frame is a leading 0x00 byte, the UTF-8 payload, and a trailing
// 0xFF terminator. Hixie-76 additionally defines a length-prefixed binary
// frame (leading 0x80, a base-128 length, then the raw payload) and a
// two-byte close frame (0xFF 0x00), neither of which Hixie-75 peers
// understand.

const (
	hixieFrameStart byte = 0x00
	hixieFrameEnd   byte = 0xFF
	hixieBinaryLead byte = 0x80
)

// parseHixieFrames drains as many complete legacy frames as d.in holds.
// allowBinary gates the length-prefixed binary/close framing that only
// Hixie-76 peers speak.
func parseHixieFrames(d *Driver, allowBinary bool) error {
	for {
		lead, ok := d.in.Peek(1)
		if !ok {
			return nil
		}
		switch {
		case lead[0] == hixieFrameStart:
			consumed, err := parseHixieTextFrame(d)
			if err != nil || !consumed {
				return err
			}
		case allowBinary && lead[0] == hixieBinaryLead:
			consumed, err := parseHixieBinaryFrame(d)
			if err != nil || !consumed {
				return err
			}
		case allowBinary && lead[0] == hixieFrameEnd:
			consumed, err := parseHixieCloseFrame(d)
			if err != nil || !consumed {
				return err
			}
		default:
			return newProtoError(CloseProtocolError, "invalid frame leader 0x%x", lead[0])
		}
	}
}

func parseHixieTextFrame(d *Driver) (bool, error) {
	raw, ok := d.in.Peek(d.in.Len())
	if !ok {
		return false, nil
	}
	idx := -1
	for i := 1; i < len(raw); i++ {
		if raw[i] == hixieFrameEnd {
			idx = i
			break
		}
	}
	length := idx - 1
	if idx < 0 {
		length = len(raw) - 1
	}
	if int64(length) > d.cfg.maxFrameSize() {
		return false, newProtoError(CloseMessageTooBig, "text frame of %d bytes exceeds limit", length)
	}
	if idx < 0 {
		return false, nil
	}
	frame, _ := d.in.ReadN(idx + 1)
	payload := frame[1:idx]
	if !validUTF8(payload) {
		return false, newProtoError(CloseInvalidPayloadData, "text frame is not valid UTF-8")
	}
	d.events.OnMessage(MessageEvent{Data: string(payload)})
	return true, nil
}

func parseHixieBinaryFrame(d *Driver) (bool, error) {
	raw, ok := d.in.Peek(d.in.Len())
	if !ok {
		return false, nil
	}
	length := 0
	i := 1
	for {
		if i >= len(raw) {
			return false, nil
		}
		b := raw[i]
		length = length<<7 | int(b&0x7f)
		i++
		if b&0x80 == 0 {
			break
		}
	}
	total := i + length
	if int64(length) > d.cfg.maxFrameSize() {
		return false, newProtoError(CloseMessageTooBig, "binary frame of %d bytes exceeds limit", length)
	}
	if len(raw) < total {
		return false, nil
	}
	frame, _ := d.in.ReadN(total)
	payload := make([]byte, length)
	copy(payload, frame[i:total])
	d.events.OnMessage(MessageEvent{Data: payload})
	return true, nil
}

func parseHixieCloseFrame(d *Driver) (bool, error) {
	frame, ok := d.in.Peek(2)
	if !ok {
		return false, nil
	}
	if frame[1] != 0x00 {
		return false, newProtoError(CloseProtocolError, "malformed close frame")
	}
	d.in.ReadN(2)
	d.onPeerClose(CloseNormalClosure, "")
	return true, nil
}

func encodeHixieText(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	out = append(out, hixieFrameStart)
	out = append(out, payload...)
	out = append(out, hixieFrameEnd)
	return out
}

func encodeHixieBinary(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+5)
	out = append(out, hixieBinaryLead)
	out = append(out, encodeHixieLength(len(payload))...)
	out = append(out, payload...)
	return out
}

func encodeHixieLength(n int) []byte {
	if n == 0 {
		return []byte{0x00}
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte(n & 0x7f)}, digits...)
		n >>= 7
	}
	for i := 0; i < len(digits)-1; i++ {
		digits[i] |= 0x80
	}
	return digits
}

func encodeHixieClose() []byte {
	return []byte{hixieFrameEnd, 0x00}
}
