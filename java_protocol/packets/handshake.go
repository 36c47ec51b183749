package packets

import (
	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
)

// Next state values carried by the Handshake packet.
const (
	HandshakeNextStatus = ns.VarInt(1)
	HandshakeNextLogin  = ns.VarInt(2)
)

// Handshake is the first packet sent on any connection. It carries the
// client's declared protocol version and picks the next state: Status
// (server list ping) or Login (join the game).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Handshake
type Handshake struct {
	ProtocolVersion ns.VarInt
	ServerAddress   ns.String
	ServerPort      ns.Uint16
	NextState       ns.VarInt
}

func (*Handshake) ID() ns.VarInt  { return 0x00 }
func (*Handshake) State() jp.State { return jp.StateHandshake }
func (*Handshake) Bound() jp.Bound { return jp.C2S }

func (p *Handshake) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ProtocolVersion, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ServerAddress, err = buf.ReadString(255); err != nil {
		return err
	}
	if p.ServerPort, err = buf.ReadUint16(); err != nil {
		return err
	}
	p.NextState, err = buf.ReadVarInt()
	return err
}

func (p *Handshake) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.ProtocolVersion); err != nil {
		return err
	}
	if err := buf.WriteString(p.ServerAddress); err != nil {
		return err
	}
	if err := buf.WriteUint16(p.ServerPort); err != nil {
		return err
	}
	return buf.WriteVarInt(p.NextState)
}
