//go:build rp2040

package platform

import (
	"crypto/tls"
	"time"

	"airmon-go/logflare"
)

// TLSDialer opens TLS connections through the netdev stack installed
// by probe.Probe.
type TLSDialer struct{}

func NewTLSDialer() *TLSDialer { return &TLSDialer{} }

func (d *TLSDialer) DialTLS(host string, timeout time.Duration) (logflare.Conn, error) {
	return tls.Dial("tcp", host+":443", nil)
}
