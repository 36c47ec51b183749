package java_protocol

import (
	"net"
	"sync/atomic"

	"github.com/go-mclib/server/crypto"
)

// Conn wraps a net.Conn with optional encryption and tracks the raw
// byte counts of one Minecraft connection's lifetime, surfaced by the
// server package when a connection closes (join/leave traffic
// accounting, not part of the wire protocol itself).
type Conn struct {
	conn       net.Conn
	encryption *crypto.Encryption

	bytesRead    int64
	bytesWritten int64
}

// NewConn creates a new Conn wrapping the given net.Conn.
func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn:       conn,
		encryption: crypto.NewEncryption(),
	}
}

// Read implements io.Reader. If encryption is enabled, data is decrypted.
func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.conn.Read(p)
	if n > 0 {
		atomic.AddInt64(&c.bytesRead, int64(n))
	}
	if err != nil {
		return n, err
	}

	if c.encryption.IsEnabled() {
		decrypted := c.encryption.Decrypt(p[:n])
		copy(p[:n], decrypted)
	}

	return n, nil
}

// Write implements io.Writer. If encryption is enabled, data is encrypted.
func (c *Conn) Write(p []byte) (int, error) {
	data := p
	if c.encryption.IsEnabled() {
		data = c.encryption.Encrypt(p)
	}

	n, err := c.conn.Write(data)
	if n > 0 {
		atomic.AddInt64(&c.bytesWritten, int64(n))
	}
	return n, err
}

// Stats returns the cumulative raw bytes read from and written to the
// underlying socket, counted before decryption and after encryption
// (i.e. wire sizes; CFB8 doesn't change length either way).
func (c *Conn) Stats() (read, written int64) {
	return atomic.LoadInt64(&c.bytesRead), atomic.LoadInt64(&c.bytesWritten)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// NetConn returns the underlying net.Conn.
func (c *Conn) NetConn() net.Conn {
	return c.conn
}

// Encryption returns the encryption instance for configuration.
func (c *Conn) Encryption() *crypto.Encryption {
	return c.encryption
}

// LocalAddr returns the local network address.
func (c *Conn) LocalAddr() net.Addr {
	if c.conn != nil {
		return c.conn.LocalAddr()
	}
	return nil
}

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr {
	if c.conn != nil {
		return c.conn.RemoteAddr()
	}
	return nil
}
