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

func TestControlFrameLimiterBurst(t *testing.T) {
	l := newControlFrameLimiter(3, 1)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestControlFrameLimiterNilIsPermissive(t *testing.T) {
	var l *controlFrameLimiter
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
}

func TestControlFrameLimiterDefaults(t *testing.T) {
	l := newControlFrameLimiter(0, 0)
	assert.NotNil(t, l)
	assert.True(t, l.Allow())
}
