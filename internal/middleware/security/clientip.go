package security

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// IPResolver extracts the real client IP, honoring forwarded headers only
// when the direct peer is a trusted proxy.
type IPResolver struct {
	trustedProxies []*net.IPNet
}

func NewIPResolver() *IPResolver {
	return &IPResolver{
		trustedProxies: []*net.IPNet{
			mustParseCIDR("127.0.0.0/8"),
			mustParseCIDR("10.0.0.0/8"),
			mustParseCIDR("172.16.0.0/12"),
			mustParseCIDR("192.168.0.0/16"),
		},
	}
}

func mustParseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("parse trusted proxy CIDR %s: %v", cidr, err))
	}
	return network
}

// AddTrustedProxy registers another trusted proxy network.
func (p *IPResolver) AddTrustedProxy(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	p.trustedProxies = append(p.trustedProxies, network)
	return nil
}

// ExtractClientIP returns the client IP for r. Forwarded headers are only
// believed when the connection comes from a trusted proxy.
func (p *IPResolver) ExtractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsed := net.ParseIP(directIP)
	if parsed == nil || !p.isTrustedProxy(parsed) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}
	return directIP
}

func (p *IPResolver) isTrustedProxy(ip net.IP) bool {
	for _, network := range p.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
