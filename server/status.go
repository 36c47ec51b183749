package server

import (
	"encoding/json"
	"fmt"

	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
	"github.com/go-mclib/server/java_protocol/packets"
)

// ProtocolVersion and ProtocolName identify protocol 107 ("1.9") on
// the status response and in log lines.
const (
	ProtocolVersion = 107
	ProtocolName    = "1.9"
)

func (c *Connection) handleHandshake(wire *jp.WirePacket) error {
	hs, err := jp.ReadPacket[packets.Handshake](wire)
	if err != nil {
		return err
	}
	c.protocolVersion = hs.ProtocolVersion

	switch hs.NextState {
	case packets.HandshakeNextStatus:
		c.state = jp.StateStatus
	case packets.HandshakeNextLogin:
		c.state = jp.StateLogin
	default:
		return fmt.Errorf("server: handshake requested unknown next state %d", hs.NextState)
	}
	return nil
}

type statusVersion struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type statusPlayers struct {
	Max    int `json:"max"`
	Online int `json:"online"`
}

type statusDescription struct {
	Text string `json:"text"`
}

type statusResponse struct {
	Version     statusVersion     `json:"version"`
	Players     statusPlayers     `json:"players"`
	Description statusDescription `json:"description"`
}

func (c *Connection) handleStatus(wire *jp.WirePacket) error {
	switch wire.PacketID {
	case (&packets.StatusRequest{}).ID():
		body := statusResponse{
			Version:     statusVersion{Name: ProtocolName, Protocol: ProtocolVersion},
			Players:     statusPlayers{Max: c.srv.cfg.Players.Max, Online: c.srv.PlayerCount()},
			Description: statusDescription{Text: c.srv.cfg.Description},
		}
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		return c.send(&packets.Response{JSON: ns.String(data)})

	case (&packets.Ping{}).ID():
		ping, err := jp.ReadPacket[packets.Ping](wire)
		if err != nil {
			return err
		}
		if err := c.send(&packets.Pong{Payload: ping.Payload}); err != nil {
			return err
		}
		c.Close()
		return nil

	default:
		c.logger.Debug("unknown status packet", "id", wire.PacketID)
		return nil
	}
}
