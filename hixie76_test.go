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
	"io"
	"net/http"
	"testing"
)

func TestHixieKeyNumberVector(t *testing.T) {
	// draft-hixie-thewebsocketprotocol-76 section 1.3's worked example key
	// strings: digits "4146546015" over 5 spaces, and "1299853100" over 5
	// spaces respectively.
	n1, err := parseHixieKeyNumber("4 @1  46546xW%0l 1 5")
	require_NoError(t, err)
	require_Equal(t, n1, uint32(829309203))

	n2, err := parseHixieKeyNumber("12998 5 Y3 1  .P00")
	require_NoError(t, err)
	require_Equal(t, n2, uint32(259970620))
}

func TestHixieKeyNumberRejectsNoSpaces(t *testing.T) {
	_, err := parseHixieKeyNumber("123456")
	require_Error(t, err)
}

func TestHixieKeyNumberRejectsIndivisible(t *testing.T) {
	_, err := parseHixieKeyNumber("7 1 1") // digits "711", 2 spaces, 711%2 != 0
	require_Error(t, err)
}

func TestHixieDigestDeterministic(t *testing.T) {
	body := [8]byte{'^', 'n', ':', 'd', 's', '[', '4', 'U'}
	digest := computeHixieDigest(829309203, 259970620, body)
	require_Len(t, len(digest), 16)

	digest2 := computeHixieDigest(829309203, 259970620, body)
	require_Equal(t, digest, digest2)

	otherBody := body
	otherBody[0] = 'X'
	digest3 := computeHixieDigest(829309203, 259970620, otherBody)
	require_NotEqual(t, digest, digest3)
}

func TestHixieGenKeyPartRoundTrips(t *testing.T) {
	for i := 0; i < 20; i++ {
		key, derived := genHixieKeyPart()
		got, err := parseHixieKeyNumber(key)
		require_NoError(t, err)
		require_Equal(t, got, derived)
	}
}

func TestHixie76ServerHandshakeDeferredBody(t *testing.T) {
	h := make(http.Header)
	h.Set("Host", "example.com")
	h.Set("Upgrade", "WebSocket")
	h.Set("Connection", "Upgrade")
	h.Set("Origin", "http://example.com")
	h.Set("Sec-WebSocket-Key1", "4 @1  46546xW%0l 1 5")
	h.Set("Sec-WebSocket-Key2", "12998 5 Y3 1  .P00")

	var out []byte
	var opened bool
	events := EventSinkFuncs{Open: func(e OpenEvent) { opened = true }}
	write := func(p []byte) { out = append(out, p...) }

	d := NewServerDriver("GET", h, "example.com", "/demo", write, events, Config{})
	require_True(t, d.Start())
	require_Equal(t, d.State(), StateConnecting)
	require_False(t, opened)

	d.Parse([]byte("^n:ds[4U"))
	require_True(t, opened)
	require_Equal(t, d.State(), StateOpen)
	require_True(t, len(out) >= 16)
}

// TestHixie76FullHandshakeRoundTrip drives a client Driver and a server
// Driver against each other with no hand-computed vectors, so it exercises
// the actual digest computed on both sides rather than a constant any
// implementation bug could coincidentally match.
func TestHixie76FullHandshakeRoundTrip(t *testing.T) {
	var clientOut []byte
	client := NewClientDriver("ws://example.com/chat", make(http.Header), func(p []byte) { clientOut = append(clientOut, p...) }, EventSinkFuncs{}, Config{})
	client.v = &hixie76Variant{}

	require_True(t, client.Start())
	require_Equal(t, client.State(), StateConnecting)
	require_True(t, len(clientOut) > 0)

	br := bufio.NewReader(bytes.NewReader(clientOut))
	req, err := http.ReadRequest(br)
	require_NoError(t, err)
	body := make([]byte, 8)
	_, err = io.ReadFull(br, body)
	require_NoError(t, err)

	var serverOut []byte
	var serverOpened bool
	serverEvents := EventSinkFuncs{Open: func(e OpenEvent) { serverOpened = true }}
	server := NewServerDriver(req.Method, req.Header, req.Host, req.URL.RequestURI(), func(p []byte) { serverOut = append(serverOut, p...) }, serverEvents, Config{})
	require_True(t, server.Start())
	require_Equal(t, server.State(), StateConnecting)

	server.Parse(body)
	require_True(t, serverOpened)
	require_Equal(t, server.State(), StateOpen)
	require_True(t, len(serverOut) > 0)

	client.Parse(serverOut)
	require_Equal(t, client.State(), StateOpen)
}
