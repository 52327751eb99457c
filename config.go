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

import "github.com/pion/logging"

// MaxFrameSizeCeiling is the recommended hard cap on a single frame's
// payload size, per spec.md §5. Frames larger than this are rejected with
// CloseMessageTooBig rather than ever being fully buffered.
const MaxFrameSizeCeiling = 1<<31 - 1

// Config holds the tunables every Driver construction accepts. Every field
// has a usable zero value.
type Config struct {
	// Logger receives every state transition and fault. Defaults to a
	// package-scoped logging.LeveledLogger when nil.
	Logger logging.LeveledLogger

	// Subprotocols is the list of application subprotocols this side is
	// willing to speak, most-preferred first (server role: offered to the
	// client in Sec-WebSocket-Protocol negotiation; client role: sent
	// verbatim in the request).
	Subprotocols []string

	// MaxFrameSize caps a single frame's payload size. Zero selects
	// MaxFrameSizeCeiling.
	MaxFrameSize int64

	// ControlFrameBurst and ControlFrameRefillPerSecond configure the
	// inbound ping flood guard (Hybi only). Zero selects the
	// package defaults.
	ControlFrameBurst          int
	ControlFrameRefillPerSecond float64

	// SameOrigin requires a server-role request's Origin header to match
	// the request's own Host (scheme + host + port), per the teacher's
	// checkOrigin. AllowedOrigins, if non-empty, additionally (or instead)
	// allows any origin appearing in the list. Neither set means every
	// origin is accepted.
	SameOrigin     bool
	AllowedOrigins []string
}

func (c Config) logger() logging.LeveledLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return newDefaultLogger()
}

func (c Config) maxFrameSize() int64 {
	if c.MaxFrameSize <= 0 {
		return MaxFrameSizeCeiling
	}
	return c.MaxFrameSize
}
