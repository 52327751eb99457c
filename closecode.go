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

// Close codes this engine emits on the wire, per RFC 6455 section 7.4 and
// the Hixie-76 draft's notion of a "normal" closure.
const (
	CloseNormalClosure      = 1000
	CloseGoingAway          = 1001
	CloseProtocolError      = 1002
	CloseUnsupportedData    = 1003
	CloseNoStatusReceived   = 1005 // never sent on the wire, synthesized only
	CloseAbnormalClosure    = 1006 // never sent on the wire, synthesized only
	CloseInvalidPayloadData = 1007
	ClosePolicyViolation    = 1008
	CloseMessageTooBig      = 1009
	CloseInternalError      = 1011
	CloseTLSHandshake       = 1015 // never sent on the wire, synthesized only
)

// validCloseCode reports whether code is legal to place in an outgoing or
// incoming close frame, per spec.md §3: 1000; 1001-1011 excluding the
// reserved-for-local-use 1004/1005/1006; or the private-use range
// 3000-4999. 1015 is excluded by virtue of sitting outside every allowed
// range.
func validCloseCode(code int) bool {
	switch {
	case code == CloseNormalClosure:
		return true
	case code >= 1001 && code <= 1011:
		switch code {
		case 1004, 1005, 1006:
			return false
		default:
			return true
		}
	case code >= 3000 && code <= 4999:
		return true
	default:
		return false
	}
}
