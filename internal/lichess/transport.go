package lichess

import (
	"net"
	"net/http"
	"time"
)

// DefaultDialTimeout is the default timeout for establishing connections.
const DefaultDialTimeout = 30 * time.Second

// DefaultResponseHeaderTimeout is the default timeout for receiving response
// headers.
const DefaultResponseHeaderTimeout = 30 * time.Second

// newHTTPClient returns a client with per-phase timeouts and no overall
// timeout: a page of games can take a while to stream.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DefaultDialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ResponseHeaderTimeout: DefaultResponseHeaderTimeout,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
