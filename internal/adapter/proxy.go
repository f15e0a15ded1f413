package adapter

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/logging"
)

// Proxy schemes the transport can dial
const (
	schemeHTTP   = "http"
	schemeSOCKS5 = "socks5"
)

// ProxyPool holds HTTP proxies and picks one at random per request
type ProxyPool struct {
	proxies []string
}

// NewProxyPool creates a pool from "host:port", "user:pass@host:port" or
// http:// and socks5:// URLs. Entries with another scheme are skipped.
func NewProxyPool(proxies ...string) *ProxyPool {
	pool := &ProxyPool{}
	for _, proxy := range proxies {
		if proxy = strings.TrimSpace(proxy); proxy == "" {
			continue
		}
		normalized, err := NormalizeProxy(proxy)
		if err != nil {
			logging.GetGlobalLogger().WithError(err).Warn("Skipping proxy")
			continue
		}
		pool.proxies = append(pool.proxies, normalized)
	}
	return pool
}

// NormalizeProxy prefixes http:// when the proxy has no scheme and rejects
// schemes other than http and socks5
func NormalizeProxy(proxy string) (string, error) {
	scheme, rest, found := strings.Cut(proxy, "://")
	if !found {
		return schemeHTTP + "://" + proxy, nil
	}
	scheme = strings.ToLower(scheme)
	if scheme != schemeHTTP && scheme != schemeSOCKS5 {
		return "", errors.NewInvalidParameterError("proxy", fmt.Sprintf("unsupported scheme %q", scheme))
	}
	if rest == "" {
		return "", errors.NewInvalidParameterError("proxy", "missing host")
	}
	return scheme + "://" + rest, nil
}

// Pick returns a random proxy, or "" for a direct connection
func (p *ProxyPool) Pick() string {
	if p == nil || len(p.proxies) == 0 {
		return ""
	}
	if len(p.proxies) == 1 {
		return p.proxies[0]
	}
	return p.proxies[rand.IntN(len(p.proxies))]
}

// Len returns the number of proxies in the pool
func (p *ProxyPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}
