package server

import (
	"math"

	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
	"github.com/go-mclib/server/java_protocol/packets"
	"github.com/go-mclib/server/protoerr"
	"github.com/go-mclib/server/world"
)

// implementationBrand is sent as the MC|Brand plugin message payload
// right after JoinGame, identifying the server implementation to the
// client's brand-aware UI (F3 screen, server-side mod detection).
const implementationBrand = "go-mclib-server"

// maxMoveDistance is the speed-check threshold: a single PositionLook
// step further than this many blocks from the last known position is
// treated as cheating (or a desynced client) and disconnects.
const maxMoveDistance = 100

const levelTypeDefault = "default"

// sendJoinSequence emits the fixed post-login packet sequence
// (JoinGame through ChunkData) and starts the keepalive timer.
func (c *Connection) sendJoinSequence(player *world.PlayerEntity) error {
	if err := c.send(&packets.JoinGame{
		EntityID:         ns.Int32(player.EntityID),
		Gamemode:         ns.Uint8(player.Gamemode),
		Dimension:        ns.Int8(player.Dimension),
		Difficulty:       ns.Uint8(c.srv.cfg.Difficulty),
		MaxPlayers:       ns.Uint8(c.srv.cfg.Players.Max),
		LevelType:        levelTypeDefault,
		ReducedDebugInfo: false,
	}); err != nil {
		return err
	}

	if err := c.send(&packets.PluginMessageOut{
		Channel: "MC|Brand",
		Data:    []byte(implementationBrand),
	}); err != nil {
		return err
	}

	if err := c.send(&packets.ServerDifficulty{Difficulty: ns.Uint8(c.srv.cfg.Difficulty)}); err != nil {
		return err
	}

	level := c.srv.world.Level
	if err := c.send(&packets.SpawnPosition{
		Location: ns.NewPosition(int(level.SpawnX), int(level.SpawnY), int(level.SpawnZ)),
	}); err != nil {
		return err
	}

	if err := c.send(&packets.PlayerAbilities{
		Flags:     ns.Int8(player.Abilities.Flags()),
		FlySpeed:  ns.Float32(player.Abilities.FlySpeed),
		WalkSpeed: ns.Float32(player.Abilities.WalkSpeed),
	}); err != nil {
		return err
	}

	teleportID := player.PushTeleport()
	if err := c.send(&packets.PlayerPositionAndLook{
		X:          ns.Float64(player.Position[0]),
		Y:          ns.Float64(player.Position[1]),
		Z:          ns.Float64(player.Position[2]),
		Yaw:        ns.Float32(player.Yaw()),
		Pitch:      ns.Float32(player.Pitch()),
		Flags:      0,
		TeleportID: ns.VarInt(teleportID),
	}); err != nil {
		return err
	}

	if err := c.sendChunk(int(player.Position[0]) >> 4, int(player.Position[2]) >> 4); err != nil {
		return err
	}

	go c.startKeepalive()
	return nil
}

func (c *Connection) sendChunk(cx, cz int) error {
	chunk, err := c.srv.world.GetChunk(cx, cz, int(c.playerOrZero().Dimension))
	if err != nil {
		// A not-yet-generated chunk is not a protocol fault; skip it
		// rather than failing the connection.
		c.logger.Debug("chunk unavailable", "x", cx, "z", cz, "err", err)
		return nil
	}

	mask, data, err := chunk.Serialize()
	if err != nil {
		return err
	}

	return c.send(&packets.ChunkData{
		ChunkX:             ns.Int32(cx),
		ChunkZ:             ns.Int32(cz),
		GroundUpContinuous: true,
		PrimaryBitMask:     mask,
		Data:               data,
	})
}

func (c *Connection) playerOrZero() *world.PlayerEntity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.player == nil {
		return &world.PlayerEntity{}
	}
	return c.player
}

func (c *Connection) handlePlay(wire *jp.WirePacket) error {
	switch wire.PacketID {
	case (&packets.TeleportConfirm{}).ID():
		p, err := jp.ReadPacket[packets.TeleportConfirm](wire)
		if err != nil {
			return err
		}
		if player := c.playerOrZero(); player != nil {
			player.ConfirmTeleport(int32(p.TeleportID))
		}
		return nil

	case (&packets.ClientStatus{}).ID():
		_, err := jp.ReadPacket[packets.ClientStatus](wire)
		return err

	case (&packets.ClientSettings{}).ID():
		p, err := jp.ReadPacket[packets.ClientSettings](wire)
		if err != nil {
			return err
		}
		if player := c.playerOrZero(); player != nil {
			player.ApplyClientSettings(
				string(p.Locale),
				int8(p.ViewDistance),
				int32(p.ChatMode),
				bool(p.ChatColors),
				uint8(p.SkinParts),
				int32(p.MainHand),
			)
		}
		return nil

	case (&packets.PluginMessageIn{}).ID():
		_, err := jp.ReadPacket[packets.PluginMessageIn](wire)
		return err

	case (&packets.KeepAliveIn{}).ID():
		p, err := jp.ReadPacket[packets.KeepAliveIn](wire)
		if err != nil {
			return err
		}
		c.confirmKeepalive(p.Token)
		return nil

	case (&packets.PositionLook{}).ID():
		return c.handlePositionLook(wire)

	default:
		c.logger.Debug("unknown play packet", "id", wire.PacketID)
		return nil
	}
}

func (c *Connection) handlePositionLook(wire *jp.WirePacket) error {
	p, err := jp.ReadPacket[packets.PositionLook](wire)
	if err != nil {
		return err
	}

	c.mu.Lock()
	prev := c.lastKnownPosition
	c.mu.Unlock()

	dx := float64(p.X) - prev[0]
	dy := float64(p.Y) - prev[1]
	dz := float64(p.Z) - prev[2]
	distance := math.Sqrt(dx*dx + dy*dy + dz*dz)

	if distance > maxMoveDistance {
		return protoerr.NewIllegalData("You moved too quickly!")
	}

	player := c.playerOrZero()
	player.Position = []float64{float64(p.X), float64(p.Y), float64(p.Z)}
	player.Rotation = []float32{float32(p.Yaw), float32(p.Pitch)}
	player.OnGround = bool(p.OnGround)

	c.mu.Lock()
	c.lastKnownPosition = [3]float64{float64(p.X), float64(p.Y), float64(p.Z)}
	c.mu.Unlock()

	return nil
}
