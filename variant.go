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

// variant is the tagged-union operation set every protocol generation
// (Hixie-75, Hixie-76, Hybi) implements. Capability negation (Hixie can't
// send binary or ping frames) is modeled as a bool method returning false
// rather than a runtime panic, per spec.md §9.
type variant interface {
	// version is the string returned by Driver.Version.
	version() string

	supportsBinary() bool
	supportsPing() bool

	// startHandshake returns the bytes to emit immediately from Start
	// (e.g. the client's GET request, or a server's synchronous response)
	// and whether the handshake is already fully resolved at that point
	// (true for every server-role variant but Hixie-76, which still needs
	// its deferred 8-byte body; false for the client role, which still
	// needs the server's response).
	startHandshake(d *Driver) (resp []byte, done bool, err error)

	// parseHandshake consumes as much of d.in as it can. It returns true
	// once the handshake is fully resolved (success recorded on d
	// directly; failure returned as err), or false if more bytes are
	// needed.
	parseHandshake(d *Driver) (bool, error)

	// parseFrames consumes as many complete frames as d.in currently holds,
	// dispatching each to the message assembler or handling it as a control
	// frame in place. It leaves a trailing partial frame buffered.
	parseFrames(d *Driver) error

	encodeText(d *Driver, payload []byte) []byte
	encodeBinary(d *Driver, payload []byte) []byte // nil if unsupported
	encodePing(d *Driver, payload []byte) []byte   // nil if unsupported
	encodePong(d *Driver, payload []byte) []byte   // nil if unsupported
	encodeClose(d *Driver, code int, reason string) []byte
}
