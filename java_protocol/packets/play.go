package packets

import (
	"io"

	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
)

// TeleportConfirm acknowledges a previously-sent PlayerPositionAndLook's
// teleport id.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Teleport_Confirm
type TeleportConfirm struct {
	TeleportID ns.VarInt
}

func (*TeleportConfirm) ID() ns.VarInt   { return 0x00 }
func (*TeleportConfirm) State() jp.State { return jp.StatePlay }
func (*TeleportConfirm) Bound() jp.Bound { return jp.C2S }

func (p *TeleportConfirm) Read(buf *ns.PacketBuffer) error {
	var err error
	p.TeleportID, err = buf.ReadVarInt()
	return err
}

func (p *TeleportConfirm) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.TeleportID)
}

// ClientStatus actions.
const (
	ClientStatusRespawn      = ns.VarInt(0)
	ClientStatusRequestStats = ns.VarInt(1)
	ClientStatusOpenInv      = ns.VarInt(2)
)

// ClientStatus reports a client-side lifecycle action (respawn, stats
// request, inventory achievement open).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Client_Status
type ClientStatus struct {
	ActionID ns.VarInt
}

func (*ClientStatus) ID() ns.VarInt   { return 0x03 }
func (*ClientStatus) State() jp.State { return jp.StatePlay }
func (*ClientStatus) Bound() jp.Bound { return jp.C2S }

func (p *ClientStatus) Read(buf *ns.PacketBuffer) error {
	var err error
	p.ActionID, err = buf.ReadVarInt()
	return err
}

func (p *ClientStatus) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.ActionID)
}

// ClientSettings carries the player's locale/display preferences.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Client_Settings
type ClientSettings struct {
	Locale             ns.String
	ViewDistance       ns.Uint8
	ChatMode           ns.VarInt
	ChatColors         ns.Boolean
	SkinParts          ns.Uint8
	MainHand           ns.VarInt
}

func (*ClientSettings) ID() ns.VarInt   { return 0x04 }
func (*ClientSettings) State() jp.State { return jp.StatePlay }
func (*ClientSettings) Bound() jp.Bound { return jp.C2S }

func (p *ClientSettings) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Locale, err = buf.ReadString(16); err != nil {
		return err
	}
	if p.ViewDistance, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.ChatMode, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ChatColors, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.SkinParts, err = buf.ReadUint8(); err != nil {
		return err
	}
	p.MainHand, err = buf.ReadVarInt()
	return err
}

func (p *ClientSettings) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Locale); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.ViewDistance); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ChatMode); err != nil {
		return err
	}
	if err := buf.WriteBool(p.ChatColors); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.SkinParts); err != nil {
		return err
	}
	return buf.WriteVarInt(p.MainHand)
}

// PluginMessageIn carries an opaque, channel-addressed payload from the
// client (e.g. "MC|Brand"). The payload is whatever bytes remain in the
// packet after the channel string.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Plugin_Message_(serverbound)
type PluginMessageIn struct {
	Channel ns.String
	Data    ns.ByteArray
}

func (*PluginMessageIn) ID() ns.VarInt   { return 0x09 }
func (*PluginMessageIn) State() jp.State { return jp.StatePlay }
func (*PluginMessageIn) Bound() jp.Bound { return jp.C2S }

func (p *PluginMessageIn) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Channel, err = buf.ReadString(0); err != nil {
		return err
	}
	p.Data, err = io.ReadAll(buf.Reader())
	return err
}

func (p *PluginMessageIn) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Channel); err != nil {
		return err
	}
	return buf.WriteFixedByteArray(p.Data)
}

// PluginMessageOut is the clientbound counterpart of PluginMessageIn.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Plugin_Message_(clientbound)
type PluginMessageOut struct {
	Channel ns.String
	Data    ns.ByteArray
}

func (*PluginMessageOut) ID() ns.VarInt   { return 0x18 }
func (*PluginMessageOut) State() jp.State { return jp.StatePlay }
func (*PluginMessageOut) Bound() jp.Bound { return jp.S2C }

func (p *PluginMessageOut) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Channel, err = buf.ReadString(0); err != nil {
		return err
	}
	p.Data, err = io.ReadAll(buf.Reader())
	return err
}

func (p *PluginMessageOut) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Channel); err != nil {
		return err
	}
	return buf.WriteFixedByteArray(p.Data)
}

// KeepAliveIn echoes a KeepAliveOut token, encoded as a VarInt (unlike
// later protocol versions, which widen this to a VarLong/Int64).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Keep_Alive_(serverbound)
type KeepAliveIn struct {
	Token ns.VarInt
}

func (*KeepAliveIn) ID() ns.VarInt   { return 0x0B }
func (*KeepAliveIn) State() jp.State { return jp.StatePlay }
func (*KeepAliveIn) Bound() jp.Bound { return jp.C2S }

func (p *KeepAliveIn) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Token, err = buf.ReadVarInt()
	return err
}

func (p *KeepAliveIn) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.Token)
}

// KeepAliveOut is the heartbeat the server emits periodically; the client
// must echo its token back via KeepAliveIn within the configured timeout.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Keep_Alive_(clientbound)
type KeepAliveOut struct {
	Token ns.VarInt
}

func (*KeepAliveOut) ID() ns.VarInt   { return 0x1F }
func (*KeepAliveOut) State() jp.State { return jp.StatePlay }
func (*KeepAliveOut) Bound() jp.Bound { return jp.S2C }

func (p *KeepAliveOut) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Token, err = buf.ReadVarInt()
	return err
}

func (p *KeepAliveOut) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.Token)
}

// PositionLook is the combined serverbound position+rotation update sent
// continuously while the player moves and looks around.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Player_Position_and_Look_(serverbound)
type PositionLook struct {
	X, Y, Z    ns.Float64
	Yaw, Pitch ns.Float32
	OnGround   ns.Boolean
}

func (*PositionLook) ID() ns.VarInt   { return 0x0D }
func (*PositionLook) State() jp.State { return jp.StatePlay }
func (*PositionLook) Bound() jp.Bound { return jp.C2S }

func (p *PositionLook) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Y, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Yaw, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Pitch, err = buf.ReadFloat32(); err != nil {
		return err
	}
	p.OnGround, err = buf.ReadBool()
	return err
}

func (p *PositionLook) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Y); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Z); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Yaw); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Pitch); err != nil {
		return err
	}
	return buf.WriteBool(p.OnGround)
}

// JoinGame transitions the client into the world after login completes.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Join_Game
type JoinGame struct {
	EntityID          ns.Int32
	Gamemode          ns.Uint8
	Dimension         ns.Int8
	Difficulty        ns.Uint8
	MaxPlayers        ns.Uint8
	LevelType         ns.String
	ReducedDebugInfo  ns.Boolean
}

func (*JoinGame) ID() ns.VarInt   { return 0x23 }
func (*JoinGame) State() jp.State { return jp.StatePlay }
func (*JoinGame) Bound() jp.Bound { return jp.S2C }

func (p *JoinGame) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.EntityID, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.Gamemode, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.Dimension, err = buf.ReadInt8(); err != nil {
		return err
	}
	if p.Difficulty, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.MaxPlayers, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.LevelType, err = buf.ReadString(16); err != nil {
		return err
	}
	p.ReducedDebugInfo, err = buf.ReadBool()
	return err
}

func (p *JoinGame) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteInt32(p.EntityID); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.Gamemode); err != nil {
		return err
	}
	if err := buf.WriteInt8(p.Dimension); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.Difficulty); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.MaxPlayers); err != nil {
		return err
	}
	if err := buf.WriteString(p.LevelType); err != nil {
		return err
	}
	return buf.WriteBool(p.ReducedDebugInfo)
}

// ServerDifficulty announces the world difficulty.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Server_Difficulty
type ServerDifficulty struct {
	Difficulty ns.Uint8
}

func (*ServerDifficulty) ID() ns.VarInt   { return 0x0D }
func (*ServerDifficulty) State() jp.State { return jp.StatePlay }
func (*ServerDifficulty) Bound() jp.Bound { return jp.S2C }

func (p *ServerDifficulty) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Difficulty, err = buf.ReadUint8()
	return err
}

func (p *ServerDifficulty) Write(buf *ns.PacketBuffer) error {
	return buf.WriteUint8(p.Difficulty)
}

// SpawnPosition announces the world spawn point (for the compass), packed
// the same way as any other block position.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Spawn_Position
type SpawnPosition struct {
	Location ns.Position
}

func (*SpawnPosition) ID() ns.VarInt   { return 0x43 }
func (*SpawnPosition) State() jp.State { return jp.StatePlay }
func (*SpawnPosition) Bound() jp.Bound { return jp.S2C }

func (p *SpawnPosition) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Location, err = buf.ReadPosition()
	return err
}

func (p *SpawnPosition) Write(buf *ns.PacketBuffer) error {
	return buf.WritePosition(p.Location)
}

// Player ability flag bits for PlayerAbilities.Flags.
const (
	AbilityInvulnerable = ns.Int8(0x01)
	AbilityFlying       = ns.Int8(0x02)
	AbilityCanFly       = ns.Int8(0x04)
	AbilityCreative     = ns.Int8(0x08)
)

// PlayerAbilities announces flight/invulnerability state and movement
// speeds.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Player_Abilities_(clientbound)
type PlayerAbilities struct {
	Flags      ns.Int8
	FlySpeed   ns.Float32
	WalkSpeed  ns.Float32
}

func (*PlayerAbilities) ID() ns.VarInt   { return 0x2B }
func (*PlayerAbilities) State() jp.State { return jp.StatePlay }
func (*PlayerAbilities) Bound() jp.Bound { return jp.S2C }

func (p *PlayerAbilities) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Flags, err = buf.ReadInt8(); err != nil {
		return err
	}
	if p.FlySpeed, err = buf.ReadFloat32(); err != nil {
		return err
	}
	p.WalkSpeed, err = buf.ReadFloat32()
	return err
}

func (p *PlayerAbilities) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteInt8(p.Flags); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.FlySpeed); err != nil {
		return err
	}
	return buf.WriteFloat32(p.WalkSpeed)
}

// Relative-update flag bits for PlayerPositionAndLook.Flags.
const (
	PosLookRelX     = ns.Int8(0x01)
	PosLookRelY     = ns.Int8(0x02)
	PosLookRelZ     = ns.Int8(0x04)
	PosLookRelPitch = ns.Int8(0x08)
	PosLookRelYaw   = ns.Int8(0x10)
)

// PlayerPositionAndLook sets (or nudges) the client's view of its own
// position. Every send carries a fresh teleport id; the client must echo
// it back via TeleportConfirm.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Player_Position_and_Look_(clientbound)
type PlayerPositionAndLook struct {
	X, Y, Z    ns.Float64
	Yaw, Pitch ns.Float32
	Flags      ns.Int8
	TeleportID ns.VarInt
}

func (*PlayerPositionAndLook) ID() ns.VarInt   { return 0x2E }
func (*PlayerPositionAndLook) State() jp.State { return jp.StatePlay }
func (*PlayerPositionAndLook) Bound() jp.Bound { return jp.S2C }

func (p *PlayerPositionAndLook) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Y, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Yaw, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Pitch, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Flags, err = buf.ReadInt8(); err != nil {
		return err
	}
	p.TeleportID, err = buf.ReadVarInt()
	return err
}

func (p *PlayerPositionAndLook) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Y); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Z); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Yaw); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Pitch); err != nil {
		return err
	}
	if err := buf.WriteInt8(p.Flags); err != nil {
		return err
	}
	return buf.WriteVarInt(p.TeleportID)
}

// Disconnect ends the connection in the PLAY state, carrying a chat-JSON
// reason.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Disconnect_(play)
type Disconnect struct {
	Reason ns.String
}

func (*Disconnect) ID() ns.VarInt   { return 0x1A }
func (*Disconnect) State() jp.State { return jp.StatePlay }
func (*Disconnect) Bound() jp.Bound { return jp.S2C }

func (p *Disconnect) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Reason, err = buf.ReadString(0)
	return err
}

func (p *Disconnect) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Reason)
}

// ChunkData carries one full chunk column's block, light, and biome data.
// Per a deliberate simplification (see DESIGN.md), the tile-entity list is
// always empty: the trailing VarInt count is written as 0 and no NBT
// entries follow, sidestepping a vanilla-client parse discrepancy that
// appears in the face of a non-empty list at this protocol version.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Chunk_Data
type ChunkData struct {
	ChunkX              ns.Int32
	ChunkZ              ns.Int32
	GroundUpContinuous  ns.Boolean
	PrimaryBitMask      ns.VarInt
	Data                ns.ByteArray // concatenated sections + biome array
}

func (*ChunkData) ID() ns.VarInt   { return 0x20 }
func (*ChunkData) State() jp.State { return jp.StatePlay }
func (*ChunkData) Bound() jp.Bound { return jp.S2C }

func (p *ChunkData) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ChunkX, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.ChunkZ, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.GroundUpContinuous, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.PrimaryBitMask, err = buf.ReadVarInt(); err != nil {
		return err
	}
	size, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	if p.Data, err = buf.ReadFixedByteArray(int(size)); err != nil {
		return err
	}
	tileEntityCount, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	if tileEntityCount != 0 {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func (p *ChunkData) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteInt32(p.ChunkX); err != nil {
		return err
	}
	if err := buf.WriteInt32(p.ChunkZ); err != nil {
		return err
	}
	if err := buf.WriteBool(p.GroundUpContinuous); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.PrimaryBitMask); err != nil {
		return err
	}
	if err := buf.WriteVarInt(ns.VarInt(len(p.Data))); err != nil {
		return err
	}
	if err := buf.WriteFixedByteArray(p.Data); err != nil {
		return err
	}
	return buf.WriteVarInt(0) // tile-entity count, always zero
}
