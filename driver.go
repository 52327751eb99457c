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

// Package driver implements the WebSocket wire protocol (Hixie-75,
// Hixie-76, and Hybi/RFC 6455) as a transport-decoupled state machine. A
// Driver consumes inbound bytes via Parse and emits outbound bytes through
// a caller-supplied WriteFunc; it never touches a socket directly.
package driver

import (
	"net/http"

	"github.com/pion/logging"
)

// Role distinguishes which side of the handshake a Driver plays.
type Role int

const (
	RoleServer Role = iota
	RoleClient
)

// State is the Driver's position in the CONNECTING -> OPEN -> CLOSING ->
// CLOSED lifecycle, per spec.md §3/§4.1.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// WriteFunc is the embedder-supplied sink bytes are delivered to. Per
// spec.md §6 it must not fail synchronously; any I/O error is the
// embedder's concern, discovered out of band.
type WriteFunc func(p []byte)

// Driver is a single per-connection protocol engine. It is not safe for
// concurrent or reentrant use: per spec.md §5, the embedder must serialize
// every call into a given Driver.
type Driver struct {
	role Role
	cfg  Config
	id   string
	log  logging.LeveledLogger

	v     variant
	state State

	write  WriteFunc
	events EventSink

	in        byteQueue
	assembler messageAssembler
	queue     outboundQueue
	limiter   *controlFrameLimiter

	protocol string

	pendingPings map[string]func([]byte)

	closeCode   int
	closeReason string
	closeSent   bool

	// Server-role immutable request context (spec.md §3).
	method string
	header http.Header
	url    string

	// Client-role request state.
	clientKey []byte // raw 16 bytes, before base64
}

// NewServerDriver constructs a server-role Driver from an already-parsed
// HTTP request line and headers (spec.md §6's "embedder-supplied request
// context"); the variant is chosen per spec.md §4.1 from those headers.
// requestURI is the request's path+query, used only to derive URL().
func NewServerDriver(method string, header http.Header, host, requestURI string, write WriteFunc, events EventSink, cfg Config) *Driver {
	d := newDriver(RoleServer, write, events, cfg)
	d.method = method
	d.header = header
	d.url = RequestURL(header, host, requestURI)
	d.v = selectServerVariant(header)
	return d
}

// NewClientDriver constructs a client-role Driver. The client always speaks
// Hybi version 13.
func NewClientDriver(requestURL string, header http.Header, write WriteFunc, events EventSink, cfg Config) *Driver {
	d := newDriver(RoleClient, write, events, cfg)
	d.url = requestURL
	d.header = header
	d.v = &hybiVariant{}
	return d
}

func newDriver(role Role, write WriteFunc, events EventSink, cfg Config) *Driver {
	d := &Driver{
		role:         role,
		cfg:          cfg,
		id:           nextConnID(),
		log:          cfg.logger(),
		state:        StateConnecting,
		write:        write,
		events:       events,
		pendingPings: make(map[string]func([]byte)),
	}
	return d
}

func selectServerVariant(header http.Header) variant {
	if header.Get("Sec-WebSocket-Version") != "" {
		return &hybiVariant{}
	}
	if header.Get("Sec-WebSocket-Key1") != "" {
		return &hixie76Variant{}
	}
	return &hixie75Variant{}
}

// ID returns this Driver's process-unique correlation ID, suitable for
// grepping its log lines out of a busy embedder's combined stream.
func (d *Driver) ID() string { return d.id }

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Version reports the negotiated protocol generation, e.g. "hybi-13",
// "hixie-76", or "hixie-75".
func (d *Driver) Version() string { return d.v.version() }

// Protocol returns the negotiated subprotocol, or "" if none was agreed.
func (d *Driver) Protocol() string { return d.protocol }

// URL returns the full ws:// or wss:// URL this Driver is bound to.
func (d *Driver) URL() string { return d.url }

// Start emits the initial handshake bytes (the client's GET request, or
// the server's response) and reports whether anything was written.
func (d *Driver) Start() bool {
	if d.state != StateConnecting {
		return false
	}
	b, done, err := d.v.startHandshake(d)
	if err != nil {
		d.failHandshake(err)
		return false
	}
	wrote := len(b) > 0
	if wrote {
		d.emit(b)
	}
	if done {
		d.transitionOpen()
	}
	return wrote
}

// Parse feeds newly-arrived bytes into the Driver. Per spec.md §3, once
// CLOSED this silently discards its input.
func (d *Driver) Parse(data []byte) {
	if d.state == StateClosed {
		return
	}
	d.in.Append(data)

	if d.state == StateConnecting {
		done, err := d.v.parseHandshake(d)
		if err != nil {
			d.failHandshake(err)
			return
		}
		if !done {
			return
		}
		d.transitionOpen()
	}
	if d.state == StateOpen || d.state == StateClosing {
		if err := d.v.parseFrames(d); err != nil {
			d.failProtocol(err)
			return
		}
	}
}

func (d *Driver) transitionOpen() {
	d.state = StateOpen
	if d.v.supportsPing() {
		d.limiter = newControlFrameLimiter(d.cfg.ControlFrameBurst, d.cfg.ControlFrameRefillPerSecond)
	}
	d.log.Debugf("wsdriver[%s]: handshake complete, protocol=%q", d.id, d.protocol)
	d.events.OnOpen(OpenEvent{Protocol: d.protocol})
	d.flushQueue()
}

func (d *Driver) flushQueue() {
	for _, item := range d.queue.drain() {
		switch item.kind {
		case queuedText:
			d.sendText(item.text)
		case queuedBinary:
			d.sendBinary(item.payload)
		case queuedPing:
			d.sendPing(item.payload, item.pingCB)
		}
	}
}

// Text queues or sends a text message, per spec.md §4.1.
func (d *Driver) Text(s string) bool {
	if d.state == StateClosed {
		return false
	}
	if d.state != StateOpen {
		d.queue.push(queuedSend{kind: queuedText, text: s})
		return true
	}
	return d.sendText(s)
}

func (d *Driver) sendText(s string) bool {
	b := d.v.encodeText(d, []byte(s))
	if b == nil {
		return false
	}
	d.emit(b)
	return true
}

// Binary queues or sends a binary message. Unsupported (returns false,
// queues nothing) for Hixie variants.
func (d *Driver) Binary(b []byte) bool {
	if d.state == StateClosed {
		return false
	}
	if !d.v.supportsBinary() {
		return false
	}
	if d.state != StateOpen {
		d.queue.push(queuedSend{kind: queuedBinary, payload: b})
		return true
	}
	return d.sendBinary(b)
}

func (d *Driver) sendBinary(b []byte) bool {
	enc := d.v.encodeBinary(d, b)
	if enc == nil {
		return false
	}
	d.emit(enc)
	return true
}

// Ping queues or sends a ping, recording cb to fire on the matching pong.
// Unsupported for Hixie variants (ping is a Hybi-only control frame).
func (d *Driver) Ping(payload []byte, cb func([]byte)) bool {
	if d.state == StateClosed {
		return false
	}
	if !d.v.supportsPing() {
		return false
	}
	if d.state != StateOpen {
		d.queue.push(queuedSend{kind: queuedPing, payload: payload, pingCB: cb})
		return true
	}
	return d.sendPing(payload, cb)
}

func (d *Driver) sendPing(payload []byte, cb func([]byte)) bool {
	b := d.v.encodePing(d, payload)
	if b == nil {
		return false
	}
	if cb != nil {
		d.pendingPings[string(payload)] = cb
	}
	d.emit(b)
	return true
}

// Close begins (Hybi) or performs (Hixie) the close handshake. code == 0
// selects CloseNormalClosure. Always returns true unless already CLOSED,
// per spec.md §4.1.
func (d *Driver) Close(code int, reason string) bool {
	if d.state == StateClosed {
		return false
	}
	if code == 0 {
		code = CloseNormalClosure
	}
	if d.state == StateConnecting {
		// No framing exists yet; there is nothing to send, just tear down.
		d.finish(code, reason)
		return true
	}
	if d.closeSent {
		return true
	}
	wireCode, wireReason := wireCloseCode(code), reason
	if wireCode == 0 {
		wireReason = ""
	}
	b := d.v.encodeClose(d, wireCode, wireReason)
	d.closeSent = true
	if b != nil {
		d.emit(b)
	}
	if d.v.supportsPing() {
		// Hybi: await the peer's close frame (or any further bytes) before
		// finishing, per spec.md §4.1's CLOSING state.
		d.state = StateClosing
		d.closeCode, d.closeReason = code, reason
		d.log.Debugf("wsdriver[%s]: closing code=%d reason=%q", d.id, code, reason)
		return true
	}
	// Hixie: no wire close handshake exists; close immediately.
	d.finish(code, reason)
	return true
}

// onPeerClose is invoked by the Hybi frame codec when a close frame
// arrives from the peer. code/reason are what the embedder's CloseEvent
// reports (including a synthesized 1005 when the peer sent no code at
// all); the echoed close frame must never put a wire-forbidden code back
// on the wire, so it is built from wireCloseCode(code) instead.
func (d *Driver) onPeerClose(code int, reason string) {
	if !d.closeSent {
		wireCode, wireReason := wireCloseCode(code), reason
		if wireCode == 0 {
			wireReason = ""
		}
		b := d.v.encodeClose(d, wireCode, wireReason)
		d.closeSent = true
		if b != nil {
			d.emit(b)
		}
	}
	d.finish(code, reason)
}

// wireCloseCode maps an embedder-facing close code to the code legal to
// place on the wire, per spec.md §3/§6: 1005, 1006, and 1015 are
// synthesized locally for codes a peer never actually sent and must never
// be echoed back; encodeClose's code == 0 convention produces a close
// frame with no code at all in that case.
func wireCloseCode(code int) int {
	switch code {
	case CloseNoStatusReceived, CloseAbnormalClosure, CloseTLSHandshake:
		return 0
	default:
		return code
	}
}

// onAnyFrameWhileClosing lets the Hybi codec finish the CLOSING state on
// receipt of any frame once a close has already been sent locally, per
// spec.md §4.1.
func (d *Driver) onAnyFrameWhileClosing() {
	if d.state == StateClosing {
		d.finish(d.closeCode, d.closeReason)
	}
}

func (d *Driver) finish(code int, reason string) {
	d.setClosed(code, reason)
}

// failHandshake tears the connection down for a failed opening handshake.
// No handshake response bytes are written for the client role; a server
// role's HTTP-error response, if any, is the embedder's responsibility
// (spec.md §7).
func (d *Driver) failHandshake(err error) {
	code := CloseProtocolError
	if pe, ok := err.(*protoError); ok {
		code = pe.code
	}
	d.log.Errorf("wsdriver[%s]: handshake failed: %v", d.id, err)
	d.events.OnError(ErrorEvent{Message: err.Error()})
	d.setClosed(code, err.Error())
}

// failProtocol tears the connection down for a fault discovered while
// framed (OPEN or CLOSING): it sends a close frame when the variant
// supports one, then closes.
func (d *Driver) failProtocol(err error) {
	code := CloseProtocolError
	if pe, ok := err.(*protoError); ok {
		code = pe.code
	}
	d.log.Errorf("wsdriver[%s]: protocol error: %v", d.id, err)
	d.events.OnError(ErrorEvent{Message: err.Error()})
	if !d.closeSent {
		wireCode := wireCloseCode(code)
		wireReason := err.Error()
		if wireCode == 0 {
			wireReason = ""
		}
		if b := d.v.encodeClose(d, wireCode, wireReason); b != nil {
			d.closeSent = true
			d.emit(b)
		}
	}
	d.setClosed(code, err.Error())
}

func (d *Driver) setClosed(code int, reason string) {
	d.state = StateClosed
	d.closeCode, d.closeReason = code, reason
	d.in.Discard()
	d.log.Debugf("wsdriver[%s]: closed code=%d reason=%q", d.id, code, reason)
	d.events.OnClose(CloseEvent{Code: code, Reason: reason})
}

func (d *Driver) emit(b []byte) {
	if len(b) == 0 {
		return
	}
	d.write(b)
}
