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
	"net/http"
	"net/url"
	"strings"
)

// headerContainsToken reports whether any value of header h under name
// contains value as a comma-separated, whitespace-trimmed, case-insensitive
// token. Grounded on the teacher's wsHeaderContains.
func headerContainsToken(h http.Header, name, value string) bool {
	for _, s := range h[http.CanonicalHeaderKey(name)] {
		for _, tok := range strings.Split(s, ",") {
			if strings.EqualFold(strings.TrimSpace(tok), value) {
				return true
			}
		}
	}
	return false
}

// IsWebSocketUpgrade reports whether method/header describe a WebSocket
// upgrade request, per spec.md §6: method GET, a Connection header
// containing the token "upgrade", and an Upgrade header equal to
// "websocket" (case-insensitive in both cases).
func IsWebSocketUpgrade(method string, header http.Header) bool {
	if !strings.EqualFold(method, "GET") {
		return false
	}
	if !headerContainsToken(header, "Connection", "upgrade") {
		return false
	}
	return strings.EqualFold(header.Get("Upgrade"), "websocket")
}

// RequestURL derives the full ws:// or wss:// URL for a server-side
// request, per spec.md §6: the X-Forwarded-Proto header takes precedence
// over scheme detection from the Origin header; failing both, the
// connection is assumed plaintext (ws://).
func RequestURL(header http.Header, host, requestURI string) string {
	scheme := "ws"
	if proto := header.Get("X-Forwarded-Proto"); proto != "" {
		if strings.EqualFold(proto, "https") {
			scheme = "wss"
		}
	} else if origin := header.Get("Origin"); origin != "" {
		if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Scheme, "https") {
			scheme = "wss"
		}
	}
	if host == "" {
		host = header.Get("Host")
	}
	return scheme + "://" + host + requestURI
}
