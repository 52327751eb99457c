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
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// checkOrigin validates a server-role request's Origin header against cfg,
// grounded on the teacher's (*srvWebsocket).checkOrigin. If neither
// SameOrigin nor AllowedOrigins is configured, every origin is accepted.
func checkOrigin(cfg Config, header http.Header, requestHost string, requestTLS bool) error {
	if !cfg.SameOrigin && len(cfg.AllowedOrigins) == 0 {
		return nil
	}
	origin := header.Get("Origin")
	if origin == "" {
		origin = header.Get("Sec-WebSocket-Origin")
	}
	if origin == "" {
		return errors.New("origin not provided")
	}
	u, err := url.ParseRequestURI(origin)
	if err != nil {
		return errors.Wrap(err, "malformed origin")
	}
	oh, op, err := hostAndPort(u.Scheme == "https", u.Host)
	if err != nil {
		return errors.Wrap(err, "malformed origin host")
	}

	if cfg.SameOrigin {
		rh, rp, err := hostAndPort(requestTLS, requestHost)
		if err != nil {
			return errors.Wrap(err, "malformed request host")
		}
		if oh == rh && op == rp {
			return nil
		}
		if len(cfg.AllowedOrigins) == 0 {
			return errors.New("origin does not match request host")
		}
		// Not same-origin: the allow-list is an additional accepted set,
		// so the origin may still be admitted below.
	}
	if len(cfg.AllowedOrigins) > 0 {
		for _, ao := range cfg.AllowedOrigins {
			au, err := url.ParseRequestURI(ao)
			if err != nil {
				continue
			}
			ah, ap, err := hostAndPort(au.Scheme == "https", au.Host)
			if err != nil {
				continue
			}
			if ah == oh && ap == op && strings.EqualFold(au.Scheme, u.Scheme) {
				return nil
			}
		}
		return errors.New("origin not in the allowed list")
	}
	return nil
}

func hostAndPort(tls bool, hostport string) (string, string, error) {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		if ae, ok := err.(*net.AddrError); ok && strings.Contains(ae.Err, "missing port") {
			host = hostport
			if tls {
				port = "443"
			} else {
				port = "80"
			}
			err = nil
		}
	}
	return strings.ToLower(host), port, err
}
