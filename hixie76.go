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
	"bufio"
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// hixie76Variant speaks draft-hixie-thewebsocketprotocol-76: the same
// 0x00...0xFF text framing as Hixie-75, plus a length-prefixed binary
// frame, a two-byte close frame, and an MD5 challenge-response handshake
// whose answer depends on 8 bytes the headers never announce. Grounded on
// spec.md §4.3's "deferred body" note: most HTTP front ends hand a server
// the request headers well before (or without ever) handing it those
// trailing 8 bytes, so the handshake is necessarily two-phase.
type hixie76Variant struct {
	n1, n2 uint32
	origin string

	// client-role state
	body     [8]byte
	expected [16]byte
}

func (v *hixie76Variant) version() string     { return "hixie-76" }
func (v *hixie76Variant) supportsBinary() bool { return true }
func (v *hixie76Variant) supportsPing() bool   { return false }

func (v *hixie76Variant) startHandshake(d *Driver) ([]byte, bool, error) {
	if d.role == RoleServer {
		return v.startServerHandshake(d)
	}
	return v.startClientHandshake(d)
}

func (v *hixie76Variant) startServerHandshake(d *Driver) ([]byte, bool, error) {
	h := d.header
	if !strings.EqualFold(d.method, "GET") {
		return nil, false, newProtoError(CloseProtocolError, "request method must be GET")
	}
	if !headerContainsToken(h, "Upgrade", "websocket") {
		return nil, false, newProtoError(CloseProtocolError, "invalid 'Upgrade' header")
	}
	if !headerContainsToken(h, "Connection", "upgrade") {
		return nil, false, newProtoError(CloseProtocolError, "invalid 'Connection' header")
	}
	key1 := h.Get("Sec-WebSocket-Key1")
	key2 := h.Get("Sec-WebSocket-Key2")
	if key1 == "" || key2 == "" {
		return nil, false, newProtoError(CloseProtocolError, "Sec-WebSocket-Key1/Key2 missing")
	}
	n1, err := parseHixieKeyNumber(key1)
	if err != nil {
		return nil, false, wrapProtoError(CloseProtocolError, err, "invalid Sec-WebSocket-Key1")
	}
	n2, err := parseHixieKeyNumber(key2)
	if err != nil {
		return nil, false, wrapProtoError(CloseProtocolError, err, "invalid Sec-WebSocket-Key2")
	}
	v.n1, v.n2 = n1, n2

	if err := checkOrigin(d.cfg, h, h.Get("Host"), strings.HasPrefix(d.url, "wss://")); err != nil {
		return nil, false, wrapProtoError(CloseProtocolError, err, "origin rejected")
	}
	v.origin = h.Get("Origin")

	var buf bytes.Buffer
	buf.WriteString("HTTP/1.1 101 WebSocket Protocol Handshake\r\n")
	buf.WriteString("Upgrade: WebSocket\r\n")
	buf.WriteString("Connection: Upgrade\r\n")
	buf.WriteString("Sec-WebSocket-Origin: " + v.origin + "\r\n")
	buf.WriteString("Sec-WebSocket-Location: " + d.url + "\r\n")
	buf.WriteString("\r\n")
	return buf.Bytes(), false, nil
}

func (v *hixie76Variant) startClientHandshake(d *Driver) ([]byte, bool, error) {
	u, err := url.Parse(d.url)
	if err != nil {
		return nil, false, wrapProtoError(CloseProtocolError, err, "invalid request URL")
	}
	path := u.RequestURI()
	if path == "" {
		path = "/"
	}

	key1, n1 := genHixieKeyPart()
	key2, n2 := genHixieKeyPart()
	v.n1, v.n2 = n1, n2
	copy(v.body[:], randomBytes(8))
	v.expected = computeHixieDigest(n1, n2, v.body)

	var buf bytes.Buffer
	buf.WriteString("GET " + path + " HTTP/1.1\r\n")
	buf.WriteString("Host: " + u.Host + "\r\n")
	buf.WriteString("Upgrade: WebSocket\r\n")
	buf.WriteString("Connection: Upgrade\r\n")
	buf.WriteString("Sec-WebSocket-Key1: " + key1 + "\r\n")
	buf.WriteString("Sec-WebSocket-Key2: " + key2 + "\r\n")
	for name, vals := range d.header {
		for _, val := range vals {
			buf.WriteString(name + ": " + val + "\r\n")
		}
	}
	buf.WriteString("\r\n")
	buf.Write(v.body[:])
	return buf.Bytes(), false, nil
}

func (v *hixie76Variant) parseHandshake(d *Driver) (bool, error) {
	if d.role == RoleServer {
		return v.parseServerBody(d)
	}
	return v.parseClientResponse(d)
}

// parseServerBody waits for the 8 bytes of challenge body the client sent
// after its headers, computes the MD5 digest, and emits it: the only
// output the handshake still owes the wire.
func (v *hixie76Variant) parseServerBody(d *Driver) (bool, error) {
	if d.in.Len() < 8 {
		return false, nil
	}
	body, _ := d.in.ReadN(8)
	var b8 [8]byte
	copy(b8[:], body)
	digest := computeHixieDigest(v.n1, v.n2, b8)
	d.emit(digest[:])
	return true, nil
}

func (v *hixie76Variant) parseClientResponse(d *Driver) (bool, error) {
	idx := d.in.Index([]byte("\r\n\r\n"))
	if idx < 0 {
		return false, nil
	}
	need := idx + 4 + 16
	if _, ok := d.in.Peek(need); !ok {
		return false, nil
	}
	block, _ := d.in.ReadN(idx + 4)
	digest, _ := d.in.ReadN(16)

	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(block)), &http.Request{Method: "GET"})
	if err != nil {
		return false, wrapProtoError(CloseProtocolError, err, "malformed handshake response")
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		return false, newProtoError(CloseProtocolError, "unexpected handshake status %d", resp.StatusCode)
	}
	if !bytes.Equal(digest, v.expected[:]) {
		return false, newProtoError(CloseProtocolError, "MD5 challenge response mismatch")
	}
	return true, nil
}

func (v *hixie76Variant) parseFrames(d *Driver) error {
	return parseHixieFrames(d, true)
}

func (v *hixie76Variant) encodeText(d *Driver, payload []byte) []byte {
	return encodeHixieText(payload)
}
func (v *hixie76Variant) encodeBinary(d *Driver, payload []byte) []byte {
	return encodeHixieBinary(payload)
}
func (v *hixie76Variant) encodePing(d *Driver, payload []byte) []byte { return nil }
func (v *hixie76Variant) encodePong(d *Driver, payload []byte) []byte { return nil }

func (v *hixie76Variant) encodeClose(d *Driver, code int, reason string) []byte {
	return encodeHixieClose()
}

// parseHixieKeyNumber extracts the decimal number spelled out by a
// Sec-WebSocket-Key's digit characters and divides it by the key's space
// count, per draft-hixie-76 section 4.1.
func parseHixieKeyNumber(key string) (uint32, error) {
	var digits strings.Builder
	spaces := 0
	for _, r := range key {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ':
			spaces++
		}
	}
	if spaces == 0 {
		return 0, newProtoError(CloseProtocolError, "key has no spaces")
	}
	if digits.Len() == 0 {
		return 0, newProtoError(CloseProtocolError, "key has no digits")
	}
	n, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return 0, wrapProtoError(CloseProtocolError, err, "key digits overflow")
	}
	if n%uint64(spaces) != 0 {
		return 0, newProtoError(CloseProtocolError, "key number not divisible by space count")
	}
	return uint32(n / uint64(spaces)), nil
}

func computeHixieDigest(n1, n2 uint32, body [8]byte) [16]byte {
	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0:4], n1)
	binary.BigEndian.PutUint32(buf[4:8], n2)
	copy(buf[8:], body[:])
	return md5.Sum(buf[:])
}

// genHixieKeyPart builds a Sec-WebSocket-Key string together with the
// number it encodes, choosing a space count first so the embedded digit
// run is guaranteed divisible by it. The spaces sit between a leading
// non-digit character and the digits, since HTTP header values lose any
// leading or trailing whitespace in transit.
func genHixieKeyPart() (key string, derived uint32) {
	r := randomBytes(8)
	spaces := 1 + int(binary.BigEndian.Uint32(r[0:4])%8)
	derived = binary.BigEndian.Uint32(r[4:8])%1_000_000 + 1
	n := uint64(derived) * uint64(spaces)
	key = "k" + strings.Repeat(" ", spaces) + strconv.FormatUint(n, 10)
	return key, derived
}
