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

// Hybi opcodes, RFC 6455 section 5.2.
const (
	opcodeContinuation byte = 0x0
	opcodeText         byte = 0x1
	opcodeBinary       byte = 0x2
	opcodeClose        byte = 0x8
	opcodePing         byte = 0x9
	opcodePong         byte = 0xA
)

// parseFrames drains as many complete frames as d.in currently holds,
// grounded on the teacher's wsRead/wsFillFrameHeader loop. A trailing
// partial frame is left buffered for the next Parse call.
func (v *hybiVariant) parseFrames(d *Driver) error {
	for {
		consumed, err := v.parseOneFrame(d)
		if err != nil {
			return err
		}
		if !consumed {
			return nil
		}
	}
}

// parseOneFrame attempts to consume a single frame from d.in. It returns
// (false, nil) when fewer bytes are buffered than the frame needs.
func (v *hybiVariant) parseOneFrame(d *Driver) (bool, error) {
	hdr, ok := d.in.Peek(2)
	if !ok {
		return false, nil
	}
	b0, b1 := hdr[0], hdr[1]
	fin := b0&0x80 != 0
	rsv := b0 & 0x70
	opcode := b0 & 0x0f
	masked := b1&0x80 != 0
	lenField := int(b1 & 0x7f)

	headerLen := 2
	switch lenField {
	case 126:
		headerLen += 2
	case 127:
		headerLen += 8
	}
	if masked {
		headerLen += 4
	}

	full, ok := d.in.Peek(headerLen)
	if !ok {
		return false, nil
	}

	idx := 2
	var payloadLen uint64
	switch lenField {
	case 126:
		payloadLen = uint64(binary.BigEndian.Uint16(full[idx : idx+2]))
		idx += 2
	case 127:
		payloadLen = binary.BigEndian.Uint64(full[idx : idx+8])
		idx += 8
	default:
		payloadLen = uint64(lenField)
	}

	var maskKey [4]byte
	if masked {
		copy(maskKey[:], full[idx:idx+4])
		idx += 4
	}

	if payloadLen > uint64(d.cfg.maxFrameSize()) {
		return false, newProtoError(CloseMessageTooBig, "frame payload of %d bytes exceeds limit", payloadLen)
	}

	total := headerLen + int(payloadLen)
	frame, ok := d.in.Peek(total)
	if !ok {
		return false, nil
	}
	frame, _ = d.in.ReadN(total)
	payload := frame[headerLen:]
	if masked {
		maskBytes(maskKey, 0, payload)
	}

	if rsv != 0 {
		return false, newProtoError(CloseProtocolError, "reserved bits must be zero")
	}
	expectMasked := d.role == RoleServer
	if masked != expectMasked {
		return false, newProtoError(CloseProtocolError, "unexpected frame masking")
	}

	if err := v.dispatchFrame(d, fin, opcode, payload); err != nil {
		return false, err
	}
	d.onAnyFrameWhileClosing()
	return true, nil
}

func (v *hybiVariant) dispatchFrame(d *Driver, fin bool, opcode byte, payload []byte) error {
	switch opcode {
	case opcodeText, opcodeBinary, opcodeContinuation:
		return v.dispatchMessageFrame(d, fin, opcode, payload)
	case opcodeClose:
		return v.dispatchCloseFrame(d, payload)
	case opcodePing:
		return v.dispatchPingFrame(d, fin, payload)
	case opcodePong:
		return v.dispatchPongFrame(d, fin, payload)
	default:
		return newProtoError(CloseProtocolError, "unsupported opcode 0x%x", opcode)
	}
}

func (v *hybiVariant) dispatchMessageFrame(d *Driver, fin bool, opcode byte, payload []byte) error {
	var complete bool
	var msg []byte
	var err error
	if opcode == opcodeContinuation {
		complete, msg, err = d.assembler.continuation(payload, fin)
	} else {
		op := msgBinary
		if opcode == opcodeText {
			op = msgText
		}
		complete, msg, err = d.assembler.begin(op, payload, fin)
	}
	if err != nil {
		return err
	}
	if !complete {
		return nil
	}
	if d.assembler.opcode == msgText || opcode == opcodeText {
		d.events.OnMessage(MessageEvent{Data: string(msg)})
	} else {
		d.events.OnMessage(MessageEvent{Data: msg})
	}
	return nil
}

func (v *hybiVariant) dispatchCloseFrame(d *Driver, payload []byte) error {
	code := CloseNoStatusReceived
	reason := ""
	if len(payload) >= 2 {
		code = int(binary.BigEndian.Uint16(payload[:2]))
		reason = string(payload[2:])
	}
	if len(payload) == 1 || (len(payload) >= 2 && !validCloseCode(code)) {
		return newProtoError(CloseProtocolError, "invalid close code %d", code)
	}
	if !validUTF8([]byte(reason)) {
		return newProtoError(CloseInvalidPayloadData, "close reason is not valid UTF-8")
	}
	d.onPeerClose(code, reason)
	return nil
}

func (v *hybiVariant) dispatchPingFrame(d *Driver, fin bool, payload []byte) error {
	if !fin || len(payload) > 125 {
		return newProtoError(CloseProtocolError, "control frame must not be fragmented")
	}
	if !d.limiter.Allow() {
		return newProtoError(ClosePolicyViolation, "control frame rate exceeded")
	}
	d.events.OnPing(PingEvent{Data: payload})
	d.emit(v.encodePong(d, payload))
	return nil
}

func (v *hybiVariant) dispatchPongFrame(d *Driver, fin bool, payload []byte) error {
	if !fin || len(payload) > 125 {
		return newProtoError(CloseProtocolError, "control frame must not be fragmented")
	}
	key := string(payload)
	if cb, ok := d.pendingPings[key]; ok {
		cb(payload)
		delete(d.pendingPings, key)
	}
	d.events.OnPong(PongEvent{Data: payload})
	return nil
}

// buildFrame assembles a single unfragmented frame, masking the payload
// when this Driver plays the client role (RFC 6455 section 5.1 requires
// every client-to-server frame be masked).
func (v *hybiVariant) buildFrame(d *Driver, opcode byte, payload []byte) []byte {
	mask := d.role == RoleClient
	var out []byte
	b0 := byte(0x80) | opcode
	out = append(out, b0)

	n := len(payload)
	switch {
	case n <= 125:
		out = append(out, maskBit(mask, byte(n)))
	case n <= 0xFFFF:
		out = append(out, maskBit(mask, 126))
		var ext [2]byte
		binary.BigEndian.PutUint16(ext[:], uint16(n))
		out = append(out, ext[:]...)
	default:
		out = append(out, maskBit(mask, 127))
		var ext [8]byte
		binary.BigEndian.PutUint64(ext[:], uint64(n))
		out = append(out, ext[:]...)
	}

	if !mask {
		out = append(out, payload...)
		return out
	}
	key := randomMaskKey()
	out = append(out, key[:]...)
	masked := make([]byte, n)
	copy(masked, payload)
	maskBytes(key, 0, masked)
	out = append(out, masked...)
	return out
}

func maskBit(mask bool, length byte) byte {
	if mask {
		return length | 0x80
	}
	return length
}

func (v *hybiVariant) encodeText(d *Driver, payload []byte) []byte {
	return v.buildFrame(d, opcodeText, payload)
}

func (v *hybiVariant) encodeBinary(d *Driver, payload []byte) []byte {
	return v.buildFrame(d, opcodeBinary, payload)
}

func (v *hybiVariant) encodePing(d *Driver, payload []byte) []byte {
	return v.buildFrame(d, opcodePing, payload)
}

func (v *hybiVariant) encodePong(d *Driver, payload []byte) []byte {
	return v.buildFrame(d, opcodePong, payload)
}

func (v *hybiVariant) encodeClose(d *Driver, code int, reason string) []byte {
	if code == 0 {
		return v.buildFrame(d, opcodeClose, nil)
	}
	payload := make([]byte, 2+len(reason))
	binary.BigEndian.PutUint16(payload[:2], uint16(code))
	copy(payload[2:], reason)
	return v.buildFrame(d, opcodeClose, payload)
}
