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
	"testing"
)

func TestAcceptKeyVector(t *testing.T) {
	// RFC 6455 section 1.3's worked example.
	got := acceptKey("dGhlIHNhbXBsZSBub25jZQ==")
	require_Equal(t, got, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=")
}

func TestNegotiateSubprotocol(t *testing.T) {
	require_Equal(t, negotiateSubprotocol([]string{"soap", "wamp"}, "xmpp, wamp"), "wamp")
	require_Equal(t, negotiateSubprotocol([]string{"soap"}, "xmpp, wamp"), "")
	require_Equal(t, negotiateSubprotocol(nil, "xmpp"), "")
	require_Equal(t, negotiateSubprotocol([]string{"soap"}, ""), "")
}

func TestHybiFullClientServerHandshake(t *testing.T) {
	var clientOut []byte
	client := NewClientDriver("ws://example.com/chat", make(http.Header), func(p []byte) { clientOut = append(clientOut, p...) }, EventSinkFuncs{}, Config{Subprotocols: []string{"chat"}})
	require_True(t, client.Start())
	require_Equal(t, client.State(), StateConnecting)

	br := bufio.NewReader(bytes.NewReader(clientOut))
	req, err := http.ReadRequest(br)
	require_NoError(t, err)

	var serverOut []byte
	var opened bool
	var negotiated string
	events := EventSinkFuncs{Open: func(e OpenEvent) { opened = true; negotiated = e.Protocol }}
	server := NewServerDriver(req.Method, req.Header, req.Host, req.URL.RequestURI(), func(p []byte) { serverOut = append(serverOut, p...) }, events, Config{Subprotocols: []string{"chat", "superchat"}})
	require_True(t, server.Start())
	require_True(t, opened)
	require_Equal(t, negotiated, "chat")
	require_Equal(t, server.State(), StateOpen)

	client.Parse(serverOut)
	require_Equal(t, client.State(), StateOpen)
	require_Equal(t, client.Protocol(), "chat")
}

func TestHybiClientRejectsBadAccept(t *testing.T) {
	var clientOut []byte
	client := NewClientDriver("ws://example.com/chat", make(http.Header), func(p []byte) { clientOut = append(clientOut, p...) }, EventSinkFuncs{}, Config{})
	require_True(t, client.Start())

	bogus := "HTTP/1.1 101 Switching Protocols\r\nUpgrade: websocket\r\nConnection: Upgrade\r\nSec-WebSocket-Accept: not-the-right-value\r\n\r\n"
	client.Parse([]byte(bogus))
	require_Equal(t, client.State(), StateClosed)
}
