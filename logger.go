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

var defaultLoggerFactory = logging.NewDefaultLoggerFactory()

// newDefaultLogger returns the package-wide default leveled logger used
// when a Config does not supply its own, scoped so log lines from this
// package are easy to grep out of an embedder's combined log stream.
func newDefaultLogger() logging.LeveledLogger {
	return defaultLoggerFactory.NewLogger("wsdriver")
}
