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
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultControlFrameBurst   = 10
	defaultControlFrameRefill  = 5 // per second
)

// controlFrameLimiter bounds the rate of inbound ping frames for a single
// Driver; pong and close frames are not counted. Hybi only: Hixie-75/76
// have no ping frames, so a limiter never applies to them.
type controlFrameLimiter struct {
	limiter *rate.Limiter
}

func newControlFrameLimiter(burst int, refillPerSecond float64) *controlFrameLimiter {
	if burst <= 0 {
		burst = defaultControlFrameBurst
	}
	if refillPerSecond <= 0 {
		refillPerSecond = defaultControlFrameRefill
	}
	return &controlFrameLimiter{limiter: rate.NewLimiter(rate.Limit(refillPerSecond), burst)}
}

// Allow reports whether one more control frame may be admitted right now.
func (l *controlFrameLimiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.AllowN(time.Now(), 1)
}
