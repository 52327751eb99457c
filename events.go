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

// OpenEvent is emitted exactly once, when the handshake completes.
type OpenEvent struct {
	Protocol string
}

// MessageEvent is emitted for each completed text or binary message. Data
// holds a string for text messages and a []byte for binary messages.
type MessageEvent struct {
	Data interface{}
}

// PingEvent is emitted when a ping control frame is received (Hybi only).
type PingEvent struct {
	Data []byte
}

// PongEvent is emitted when a pong control frame is received (Hybi only),
// in addition to any callback registered via Driver.Ping being invoked.
type PongEvent struct {
	Data []byte
}

// CloseEvent is emitted exactly once, as the last event a Driver ever
// fires, carrying the close code and reason observed on the wire (or
// synthesized per spec when none arrived).
type CloseEvent struct {
	Code   int
	Reason string
}

// ErrorEvent is emitted ahead of a CloseEvent whenever a fault forces the
// connection closed.
type ErrorEvent struct {
	Message string
}

// EventSink receives every event a Driver emits, synchronously, from
// inside whichever Driver method triggered it (Start, Parse, Close).
type EventSink interface {
	OnOpen(OpenEvent)
	OnMessage(MessageEvent)
	OnPing(PingEvent)
	OnPong(PongEvent)
	OnClose(CloseEvent)
	OnError(ErrorEvent)
}

// EventSinkFuncs is an EventSink built from individual callback funcs, any
// of which may be left nil to ignore that event. It saves an embedder that
// only cares about messages and closes from declaring a full interface.
type EventSinkFuncs struct {
	Open    func(OpenEvent)
	Message func(MessageEvent)
	Ping    func(PingEvent)
	Pong    func(PongEvent)
	Close   func(CloseEvent)
	Error   func(ErrorEvent)
}

func (f EventSinkFuncs) OnOpen(e OpenEvent) {
	if f.Open != nil {
		f.Open(e)
	}
}

func (f EventSinkFuncs) OnMessage(e MessageEvent) {
	if f.Message != nil {
		f.Message(e)
	}
}

func (f EventSinkFuncs) OnPing(e PingEvent) {
	if f.Ping != nil {
		f.Ping(e)
	}
}

func (f EventSinkFuncs) OnPong(e PongEvent) {
	if f.Pong != nil {
		f.Pong(e)
	}
}

func (f EventSinkFuncs) OnClose(e CloseEvent) {
	if f.Close != nil {
		f.Close(e)
	}
}

func (f EventSinkFuncs) OnError(e ErrorEvent) {
	if f.Error != nil {
		f.Error(e)
	}
}
