// Package logflare is a minimal client for Logflare's HTTP log
// ingestion API. It opens one fresh TLS connection per event, issues a
// single POST with Connection: close, and reads just enough of the
// response to learn the status code. Delivery is best-effort: every
// fault collapses to a false return, and retry policy stays with the
// caller (a retried event must carry a new sequence id, not be
// repeated verbatim).
package logflare

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for the hosted Logflare service.
const (
	DefaultHost = "api.logflare.app"
	DefaultPath = "/logs"

	defaultTimeout = 10 * time.Second
)

// Conn is the socket surface the client needs. Satisfied by net.Conn.
type Conn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetDeadline(t time.Time) error
}

// Dialer opens a TLS connection to host:443. One dial per Send call.
type Dialer interface {
	DialTLS(host string, timeout time.Duration) (Conn, error)
}

// Config for a Client. APIKey and SourceID are required; the rest
// defaults to the hosted service.
type Config struct {
	APIKey   string
	SourceID string
	Host     string
	Path     string
	// Timeout bounds the whole call: dial, write and read. Default 10s.
	Timeout time.Duration
}

// Client sends log events to a single Logflare source.
type Client struct {
	dialer  Dialer
	host    string
	target  string // path?source=...
	apiKey  string
	timeout time.Duration
	log     zerolog.Logger
}

type payload struct {
	EventMessage string         `json:"event_message"`
	Timestamp    string         `json:"timestamp,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// New creates a Client. The Dialer supplies the transport so the
// client stays portable across host and device network stacks.
func New(dialer Dialer, cfg Config, log zerolog.Logger) *Client {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		dialer:  dialer,
		host:    host,
		target:  path + "?source=" + cfg.SourceID,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		log:     log.With().Str("component", "logflare").Logger(),
	}
}

// Send delivers one event. It reports success only for HTTP 200/201;
// any transport fault, timeout, or unexpected status yields false.
func (c *Client) Send(eventMessage string, metadata map[string]any) bool {
	return c.SendAt(eventMessage, metadata, "")
}

// SendAt is Send with an explicit event timestamp (RFC 3339, UTC).
// An empty timestamp is omitted from the payload.
func (c *Client) SendAt(eventMessage string, metadata map[string]any, timestamp string) bool {
	body, err := json.Marshal(payload{
		EventMessage: eventMessage,
		Timestamp:    timestamp,
		Metadata:     metadata,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("encode failed")
		return false
	}

	conn, err := c.dialer.DialTLS(c.host, c.timeout)
	if err != nil {
		c.log.Warn().Err(err).Str("host", c.host).Msg("dial failed")
		return false
	}
	defer conn.Close()

	// One absolute deadline covers write and read.
	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		c.log.Warn().Err(err).Msg("set deadline failed")
		return false
	}

	if err := c.writeRequest(conn, body); err != nil {
		c.log.Warn().Err(err).Msg("write failed")
		return false
	}

	status, ok := readStatus(conn)
	if !ok {
		c.log.Warn().Msg("no status line in response")
		return false
	}
	if status != 200 && status != 201 {
		c.log.Warn().Int("status", status).Msg("api error")
		return false
	}
	return true
}

func (c *Client) writeRequest(conn Conn, body []byte) error {
	var req bytes.Buffer
	req.WriteString("POST " + c.target + " HTTP/1.1\r\n")
	req.WriteString("Host: " + c.host + "\r\n")
	req.WriteString("X-API-KEY: " + c.apiKey + "\r\n")
	req.WriteString("Content-Type: application/json\r\n")
	req.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
	req.WriteString("Connection: close\r\n\r\n")
	req.Write(body)

	b := req.Bytes()
	for len(b) > 0 {
		n, err := conn.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// readStatus reads up to the end of the status line and parses the
// numeric code. It never reads more of the response than needed.
func readStatus(conn Conn) (int, bool) {
	var line [64]byte
	n := 0
	for n < len(line) {
		m, err := conn.Read(line[n : n+1])
		if m > 0 {
			if line[n] == '\n' {
				break
			}
			n += m
			continue
		}
		if err != nil {
			break
		}
	}
	return parseStatusLine(line[:n])
}

// parseStatusLine extracts the status code from "HTTP/1.x NNN ...".
func parseStatusLine(line []byte) (int, bool) {
	sp := bytes.IndexByte(line, ' ')
	if sp < 0 || !bytes.HasPrefix(line, []byte("HTTP/")) {
		return 0, false
	}
	rest := line[sp+1:]
	if len(rest) < 3 {
		return 0, false
	}
	code := 0
	for _, c := range rest[:3] {
		if c < '0' || c > '9' {
			return 0, false
		}
		code = code*10 + int(c-'0')
	}
	return code, true
}
