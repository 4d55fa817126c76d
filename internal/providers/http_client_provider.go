package providers

import (
	"hyperstat/internal/structures"
	"net"
	"net/http"
	"time"
)

// NewHttpClientProvider builds the outbound client used for Nexon Open API calls.
// conf.Nexon.Timeout bounds the whole exchange including reading the body.
func NewHttpClientProvider(conf *structures.Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
			ResponseHeaderTimeout: conf.Nexon.Timeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
		},
		Timeout: conf.Nexon.Timeout,
	}
}
