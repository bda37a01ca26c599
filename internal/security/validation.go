// Package security provides URL validation used before the server fetches or
// publishes third-party URLs.
package security

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// maxRedirects matches net/http's default redirect limit.
const maxRedirects = 10

// ErrHostNotAllowed is returned when a URL's host is outside the configured allow-list
// or resolves to a local/private address.
var ErrHostNotAllowed = errors.New("host not allowed")

// IsAbsoluteHTTPURL reports whether s parses as an absolute http:// or https:// URL
// with a host.
func IsAbsoluteHTTPURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

// HostPolicy decides which hosts the server may fetch from.
type HostPolicy struct {
	// Allowed lists permitted hostnames. Empty allows any public host. A leading
	// "." matches subdomains (".cloudfront.net").
	Allowed []string

	// AllowPrivate permits localhost and private ranges.
	AllowPrivate bool
}

// ValidateFetchURL validates an HTTP(S) URL the server is about to download.
func (p HostPolicy) ValidateFetchURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}
	if !IsAbsoluteHTTPURL(urlStr) {
		return fmt.Errorf("only absolute http(s) URLs are allowed: %q", urlStr)
	}

	parsed, _ := url.Parse(urlStr)
	host := strings.TrimSuffix(strings.ToLower(parsed.Hostname()), ".")

	if !p.AllowPrivate && isLocalOrPrivateHost(host) {
		return fmt.Errorf("%w: local or private host %s", ErrHostNotAllowed, host)
	}
	if len(p.Allowed) > 0 && !p.hostAllowed(host) {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
	}
	return nil
}

func (p HostPolicy) hostAllowed(host string) bool {
	for _, allowed := range p.Allowed {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == host {
			return true
		}
		if strings.HasPrefix(allowed, ".") && strings.HasSuffix(host, allowed) {
			return true
		}
	}
	return false
}

// DialControl rejects connections to local or private addresses after name
// resolution, so hostnames resolving to such addresses are caught too. It fits
// net.Dialer.Control.
func (p HostPolicy) DialControl(_, address string, _ syscall.RawConn) error {
	if p.AllowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, address)
	}
	ip := net.ParseIP(host)
	if ip == nil || isLocalOrPrivateIP(ip) {
		return fmt.Errorf("%w: dial to local or private address %s", ErrHostNotAllowed, host)
	}
	return nil
}

// HTTPClient returns a client that enforces the policy at dial time and on
// every redirect.
func (p HostPolicy) HTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
		Control:   p.DialControl,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return p.ValidateFetchURL(req.URL.String())
		},
	}
}

// isLocalOrPrivateHost checks if a hostname is localhost, an internal-only name
// or a private IP.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") ||
		strings.HasSuffix(host, ".internal") || strings.HasSuffix(host, ".local") {
		return true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return isLocalOrPrivateIP(ip)
}

// sharedAddressSpace is the carrier-grade NAT range (RFC 6598).
var sharedAddressSpace = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

func isLocalOrPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified() || sharedAddressSpace.Contains(ip)
}
