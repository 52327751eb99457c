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

import "github.com/pkg/errors"

// protoError is a fault that closes the connection with a specific close
// code. Every parser-boundary failure in this package is constructed as one
// of these so the Driver state machine can decide what to send on the wire
// and what to hand the embedder, without string-matching error messages.
type protoError struct {
	code   int
	cause  error
	detail string
}

func (e *protoError) Error() string {
	return e.detail
}

// Cause lets github.com/pkg/errors.Cause unwrap to whatever triggered this
// protocol fault, e.g. a malformed HTTP response or a rejected origin. It is
// nil for faults built with newProtoError.
func (e *protoError) Cause() error {
	return e.cause
}

func newProtoError(code int, format string, args ...interface{}) *protoError {
	return &protoError{code: code, detail: errors.Errorf(format, args...).Error()}
}

func wrapProtoError(code int, cause error, msg string) *protoError {
	return &protoError{code: code, cause: cause, detail: errors.Wrap(cause, msg).Error()}
}
