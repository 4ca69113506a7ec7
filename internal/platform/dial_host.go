//go:build !rp2040

package platform

import (
	"crypto/tls"
	"net"
	"time"

	"airmon-go/logflare"
)

// TLSDialer opens TLS connections through the host network stack.
type TLSDialer struct {
	// Config is optional; nil verifies against the system root set.
	Config *tls.Config
}

func NewTLSDialer() *TLSDialer { return &TLSDialer{} }

func (d *TLSDialer) DialTLS(host string, timeout time.Duration) (logflare.Conn, error) {
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: timeout}, "tcp",
		net.JoinHostPort(host, "443"), d.Config)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
