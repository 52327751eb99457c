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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextConnIDIsUnique(t *testing.T) {
	a := nextConnID()
	b := nextConnID()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}

func TestDefaultLoggerNotNil(t *testing.T) {
	log := newDefaultLogger()
	assert.NotNil(t, log)
	// Must not panic at any level.
	log.Debugf("wsdriver test debug %d", 1)
	log.Warnf("wsdriver test warn")
}

func TestConfigLoggerDefaultsWhenNil(t *testing.T) {
	cfg := Config{}
	assert.NotNil(t, cfg.logger())
}

func TestConfigMaxFrameSizeDefault(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, int64(MaxFrameSizeCeiling), cfg.maxFrameSize())

	cfg2 := Config{MaxFrameSize: 4096}
	assert.Equal(t, int64(4096), cfg2.maxFrameSize())
}
