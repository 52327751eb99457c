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
	"net/http"
	"net/url"
	"strings"
)

// hixie75Variant speaks the original draft-hixie-thewebsocketprotocol-75
// framing: text-only messages delimited by 0x00...0xFF, no masking, no
// challenge/response, no close handshake on the wire.
type hixie75Variant struct{}

func (v *hixie75Variant) version() string       { return "hixie-75" }
func (v *hixie75Variant) supportsBinary() bool   { return false }
func (v *hixie75Variant) supportsPing() bool     { return false }

func (v *hixie75Variant) startHandshake(d *Driver) ([]byte, bool, error) {
	if d.role == RoleServer {
		return v.startServerHandshake(d)
	}
	return v.startClientHandshake(d)
}

func (v *hixie75Variant) startServerHandshake(d *Driver) ([]byte, bool, error) {
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
	if err := checkOrigin(d.cfg, h, h.Get("Host"), strings.HasPrefix(d.url, "wss://")); err != nil {
		return nil, false, wrapProtoError(CloseProtocolError, err, "origin rejected")
	}

	origin := h.Get("Origin")
	var buf bytes.Buffer
	buf.WriteString("HTTP/1.1 101 Web Socket Protocol Handshake\r\n")
	buf.WriteString("Upgrade: WebSocket\r\n")
	buf.WriteString("Connection: Upgrade\r\n")
	buf.WriteString("WebSocket-Origin: " + origin + "\r\n")
	buf.WriteString("WebSocket-Location: " + d.url + "\r\n")
	buf.WriteString("\r\n")
	return buf.Bytes(), true, nil
}

func (v *hixie75Variant) startClientHandshake(d *Driver) ([]byte, bool, error) {
	u, err := url.Parse(d.url)
	if err != nil {
		return nil, false, wrapProtoError(CloseProtocolError, err, "invalid request URL")
	}
	path := u.RequestURI()
	if path == "" {
		path = "/"
	}
	var buf bytes.Buffer
	buf.WriteString("GET " + path + " HTTP/1.1\r\n")
	buf.WriteString("Host: " + u.Host + "\r\n")
	buf.WriteString("Upgrade: WebSocket\r\n")
	buf.WriteString("Connection: Upgrade\r\n")
	for name, vals := range d.header {
		for _, val := range vals {
			buf.WriteString(name + ": " + val + "\r\n")
		}
	}
	buf.WriteString("\r\n")
	return buf.Bytes(), false, nil
}

func (v *hixie75Variant) parseHandshake(d *Driver) (bool, error) {
	if d.role == RoleServer {
		return true, nil
	}
	idx := d.in.Index([]byte("\r\n\r\n"))
	if idx < 0 {
		return false, nil
	}
	block, _ := d.in.ReadN(idx + 4)
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(block)), &http.Request{Method: "GET"})
	if err != nil {
		return false, wrapProtoError(CloseProtocolError, err, "malformed handshake response")
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		return false, newProtoError(CloseProtocolError, "unexpected handshake status %d", resp.StatusCode)
	}
	return true, nil
}

func (v *hixie75Variant) parseFrames(d *Driver) error {
	return parseHixieFrames(d, false)
}

func (v *hixie75Variant) encodeText(d *Driver, payload []byte) []byte { return encodeHixieText(payload) }
func (v *hixie75Variant) encodeBinary(d *Driver, payload []byte) []byte { return nil }
func (v *hixie75Variant) encodePing(d *Driver, payload []byte) []byte  { return nil }
func (v *hixie75Variant) encodePong(d *Driver, payload []byte) []byte  { return nil }

func (v *hixie75Variant) encodeClose(d *Driver, code int, reason string) []byte {
	// Hixie-75 has no wire-level close handshake; the connection is simply
	// torn down by the embedder.
	return nil
}
