package packets

import (
	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
)

// StatusRequest has no body; it asks the server to reply with a Response.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Request
type StatusRequest struct{}

func (*StatusRequest) ID() ns.VarInt   { return 0x00 }
func (*StatusRequest) State() jp.State { return jp.StateStatus }
func (*StatusRequest) Bound() jp.Bound { return jp.C2S }
func (*StatusRequest) Read(*ns.PacketBuffer) error  { return nil }
func (*StatusRequest) Write(*ns.PacketBuffer) error { return nil }

// Response replies to StatusRequest with the server-list-ping JSON blob:
// version name/protocol, current/max player counts, and a description.
// The JSON body is built by the server package from its own fields; this
// packet only carries the already-serialized string.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Response
type Response struct {
	JSON ns.String
}

func (*Response) ID() ns.VarInt   { return 0x00 }
func (*Response) State() jp.State { return jp.StateStatus }
func (*Response) Bound() jp.Bound { return jp.S2C }

func (p *Response) Read(buf *ns.PacketBuffer) error {
	var err error
	p.JSON, err = buf.ReadString(0)
	return err
}

func (p *Response) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.JSON)
}

// Ping carries an arbitrary 64-bit payload that the server must echo back
// unchanged in a Pong, then close the connection.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Ping_Request
type Ping struct {
	Payload ns.Int64
}

func (*Ping) ID() ns.VarInt   { return 0x01 }
func (*Ping) State() jp.State { return jp.StateStatus }
func (*Ping) Bound() jp.Bound { return jp.C2S }

func (p *Ping) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Payload, err = buf.ReadInt64()
	return err
}

func (p *Ping) Write(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.Payload)
}

// Pong echoes a Ping's payload.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Pong
type Pong struct {
	Payload ns.Int64
}

func (*Pong) ID() ns.VarInt   { return 0x01 }
func (*Pong) State() jp.State { return jp.StateStatus }
func (*Pong) Bound() jp.Bound { return jp.S2C }

func (p *Pong) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Payload, err = buf.ReadInt64()
	return err
}

func (p *Pong) Write(buf *ns.PacketBuffer) error {
	return buf.WriteInt64(p.Payload)
}
