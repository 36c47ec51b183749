package packets

import (
	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
)

// LoginStart is the first packet in the LOGIN state: just the player's
// chosen username. Protocol 107 does not carry a client-supplied UUID
// here (that arrives later from the session server, or is synthesized
// offline).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Start
type LoginStart struct {
	Name ns.String
}

func (*LoginStart) ID() ns.VarInt   { return 0x00 }
func (*LoginStart) State() jp.State { return jp.StateLogin }
func (*LoginStart) Bound() jp.Bound { return jp.C2S }

func (p *LoginStart) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Name, err = buf.ReadString(16)
	return err
}

func (p *LoginStart) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Name)
}

// EncryptionRequest challenges the client to prove it can talk to the
// Mojang session server, and hands it the server's RSA public key.
// ServerID is always the empty string for a vanilla-compatible handshake.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Request
type EncryptionRequest struct {
	ServerID    ns.String
	PublicKey   ns.ByteArray // DER-encoded SubjectPublicKeyInfo
	VerifyToken ns.ByteArray
}

func (*EncryptionRequest) ID() ns.VarInt   { return 0x01 }
func (*EncryptionRequest) State() jp.State { return jp.StateLogin }
func (*EncryptionRequest) Bound() jp.Bound { return jp.S2C }

func (p *EncryptionRequest) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ServerID, err = buf.ReadString(20); err != nil {
		return err
	}
	if p.PublicKey, err = buf.ReadByteArray(0); err != nil {
		return err
	}
	p.VerifyToken, err = buf.ReadByteArray(0)
	return err
}

func (p *EncryptionRequest) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.ServerID); err != nil {
		return err
	}
	if err := buf.WriteByteArray(p.PublicKey); err != nil {
		return err
	}
	return buf.WriteByteArray(p.VerifyToken)
}

// EncryptionResponse carries the client's RSA-encrypted shared secret and
// verify token. The server must decrypt both with its private key: the
// shared secret must be exactly 16 bytes (the AES-128 key and CFB8 IV),
// and the verify token must decrypt to the bytes the server sent.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Response
type EncryptionResponse struct {
	SharedSecret ns.ByteArray
	VerifyToken  ns.ByteArray
}

func (*EncryptionResponse) ID() ns.VarInt   { return 0x01 }
func (*EncryptionResponse) State() jp.State { return jp.StateLogin }
func (*EncryptionResponse) Bound() jp.Bound { return jp.C2S }

func (p *EncryptionResponse) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.SharedSecret, err = buf.ReadByteArray(0); err != nil {
		return err
	}
	p.VerifyToken, err = buf.ReadByteArray(0)
	return err
}

func (p *EncryptionResponse) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteByteArray(p.SharedSecret); err != nil {
		return err
	}
	return buf.WriteByteArray(p.VerifyToken)
}

// SetCompression enables packet compression for all frames sent after it;
// a negative Threshold disables compression again.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Set_Compression
type SetCompression struct {
	Threshold ns.VarInt
}

func (*SetCompression) ID() ns.VarInt   { return 0x03 }
func (*SetCompression) State() jp.State { return jp.StateLogin }
func (*SetCompression) Bound() jp.Bound { return jp.S2C }

func (p *SetCompression) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Threshold, err = buf.ReadVarInt()
	return err
}

func (p *SetCompression) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.Threshold)
}

// LoginSuccess finishes the LOGIN state; the connection transitions to
// PLAY immediately after this is written.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Success
type LoginSuccess struct {
	UUID     ns.String // hyphenated string form, per protocol 107
	Username ns.String
}

func (*LoginSuccess) ID() ns.VarInt   { return 0x02 }
func (*LoginSuccess) State() jp.State { return jp.StateLogin }
func (*LoginSuccess) Bound() jp.Bound { return jp.S2C }

func (p *LoginSuccess) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.UUID, err = buf.ReadString(36); err != nil {
		return err
	}
	p.Username, err = buf.ReadString(16)
	return err
}

func (p *LoginSuccess) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.UUID); err != nil {
		return err
	}
	return buf.WriteString(p.Username)
}

// LoginDisconnect carries a chat-JSON reason and ends the connection
// while still in the LOGIN state (e.g. the session server rejected the
// player).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Disconnect_(login)
type LoginDisconnect struct {
	Reason ns.String
}

func (*LoginDisconnect) ID() ns.VarInt   { return 0x00 }
func (*LoginDisconnect) State() jp.State { return jp.StateLogin }
func (*LoginDisconnect) Bound() jp.Bound { return jp.S2C }

func (p *LoginDisconnect) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Reason, err = buf.ReadString(0)
	return err
}

func (p *LoginDisconnect) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Reason)
}
