package server

import (
	"crypto/rand"
	"time"

	ns "github.com/go-mclib/server/java_protocol/net_structures"
	"github.com/go-mclib/server/java_protocol/packets"
	"github.com/go-mclib/server/protoerr"
)

// startKeepalive begins the PLAY-state heartbeat timer: every
// send_interval seconds it emits a KeepAliveOut with a fresh token and
// records the send time. Stops when the connection closes.
func (c *Connection) startKeepalive() {
	c.mu.Lock()
	c.keepaliveStop = make(chan struct{})
	stop := c.keepaliveStop
	c.mu.Unlock()

	interval := time.Duration(c.srv.cfg.Keepalive.SendInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			token := randomKeepaliveToken()
			if err := c.send(&packets.KeepAliveOut{Token: token}); err != nil {
				return
			}
			c.mu.Lock()
			c.heartbeats = append(c.heartbeats, heartbeat{token: token, sent: time.Now()})
			c.mu.Unlock()
		}
	}
}

func randomKeepaliveToken() ns.VarInt {
	var b [1]byte
	_, _ = rand.Read(b[:])
	return ns.VarInt(b[0] & 0x7F)
}

// checkHeartbeats fails the connection if any outstanding heartbeat is
// older than the configured timeout.
func (c *Connection) checkHeartbeats() error {
	timeout := time.Duration(c.srv.cfg.Keepalive.Timeout) * time.Second

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, hb := range c.heartbeats {
		if time.Since(hb.sent) > timeout {
			return protoerr.NewProtocolError("Player timed out")
		}
	}
	return nil
}

// confirmKeepalive removes the heartbeat matching token, if any.
func (c *Connection) confirmKeepalive(token ns.VarInt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, hb := range c.heartbeats {
		if hb.token == token {
			c.heartbeats = append(c.heartbeats[:i], c.heartbeats[i+1:]...)
			return
		}
	}
}
