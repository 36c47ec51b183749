package server

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
	"github.com/go-mclib/server/java_protocol/packets"
	"github.com/go-mclib/server/protoerr"
	"github.com/go-mclib/server/world"
)

// Connection is one accepted socket and everything tied to its
// lifetime: protocol state, compression and encryption negotiation,
// the bound player once in PLAY, and the outstanding-heartbeat set.
type Connection struct {
	srv    *Server
	conn   *jp.Conn
	logger *slog.Logger

	state                 jp.State
	compressionThreshold  int
	protocolVersion       ns.VarInt
	verifyToken           []byte

	writeMu sync.Mutex

	mu         sync.Mutex
	closed     bool
	pendingName string
	player     *world.PlayerEntity
	lastKnownPosition [3]float64

	heartbeats   []heartbeat
	keepaliveStop chan struct{}
}

type heartbeat struct {
	token ns.VarInt
	sent  time.Time
}

func newConnection(srv *Server, nc net.Conn) *Connection {
	return &Connection{
		srv:                  srv,
		conn:                 jp.NewConn(nc),
		logger:               srv.logger.With("remote", nc.RemoteAddr().String()),
		state:                jp.StateHandshake,
		compressionThreshold: -1,
	}
}

// Close closes the underlying socket and stops the keepalive timer.
// Idempotent: safe to call more than once or concurrently.
func (c *Connection) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	stop := c.keepaliveStop
	player := c.player
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if player != nil {
		c.srv.removePlayer(player.UUID().String())
	}

	read, written := c.conn.Stats()
	c.logger.Debug("closed", "bytes_read", read, "bytes_written", written)

	_ = c.conn.Close()
	c.srv.removeConnection(c)
}

func (c *Connection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// send frames and writes p, serialising concurrent writers (the
// connection's own reader goroutine and the keepalive timer).
func (c *Connection) send(p jp.Packet) error {
	wire, err := jp.ToWire(p)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wire.WriteTo(c.conn, c.compressionThreshold)
}

// disconnect sends a Disconnect/LoginDisconnect carrying reason, then
// closes the connection — the IllegalData response path.
func (c *Connection) disconnect(reason string) {
	var p jp.Packet
	switch c.state {
	case jp.StateLogin:
		p = &packets.LoginDisconnect{Reason: ns.String(fmt.Sprintf(`{"text":%q}`, reason))}
	default:
		p = &packets.Disconnect{Reason: ns.String(fmt.Sprintf(`{"text":%q}`, reason))}
	}
	_ = c.send(p)
	c.Close()
}

// serve is the connection's read loop: one goroutine per connection,
// reading frames, enforcing the read timeout, and dispatching by
// (state, packet id).
func (c *Connection) serve() {
	defer c.Close()

	for {
		if c.isClosed() {
			return
		}

		if nc := c.conn.NetConn(); nc != nil {
			_ = nc.SetReadDeadline(time.Now().Add(c.srv.connectionTimeout()))
		}

		wire, err := jp.ReadWirePacketFrom(c.conn, c.compressionThreshold)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.logger.Debug("read", "err", err)
			}
			return
		}

		if err := c.dispatch(wire); err != nil {
			var illegal *protoerr.IllegalData
			if errors.As(err, &illegal) {
				c.disconnect(illegal.Msg)
				return
			}
			c.logger.Debug("dispatch", "err", err)
			return
		}

		if c.state == jp.StatePlay {
			if err := c.checkHeartbeats(); err != nil {
				c.logger.Debug("keepalive", "err", err)
				return
			}
		}
	}
}

func (c *Connection) dispatch(wire *jp.WirePacket) error {
	switch c.state {
	case jp.StateHandshake:
		return c.handleHandshake(wire)
	case jp.StateStatus:
		return c.handleStatus(wire)
	case jp.StateLogin:
		return c.handleLogin(wire)
	case jp.StatePlay:
		return c.handlePlay(wire)
	default:
		return fmt.Errorf("server: unknown state %v", c.state)
	}
}

func randomVerifyToken() []byte {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return b
}
