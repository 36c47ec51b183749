package server

import (
	"fmt"

	"github.com/google/uuid"

	jp "github.com/go-mclib/server/java_protocol"
	ns "github.com/go-mclib/server/java_protocol/net_structures"
	"github.com/go-mclib/server/java_protocol/packets"
	"github.com/go-mclib/server/java_protocol/session_server"
	"github.com/go-mclib/server/protoerr"
)

// offlineUUIDNamespace is a fixed namespace for deriving an offline
// player's UUID deterministically from their username: a UUIDv5 over
// a fixed namespace. Only offline-mode logins use it; an online login
// takes its UUID from the session server's response.
var offlineUUIDNamespace = uuid.MustParse("a8b6a239-8f0c-4c6e-9e4d-8d1a0a5e4b5f")

func offlineUUID(name string) uuid.UUID {
	return uuid.NewSHA1(offlineUUIDNamespace, []byte(name))
}

func (c *Connection) handleLogin(wire *jp.WirePacket) error {
	switch wire.PacketID {
	case (&packets.LoginStart{}).ID():
		return c.handleLoginStart(wire)
	case (&packets.EncryptionResponse{}).ID():
		return c.handleEncryptionResponse(wire)
	default:
		c.logger.Debug("unknown login packet", "id", wire.PacketID)
		return nil
	}
}

func (c *Connection) handleLoginStart(wire *jp.WirePacket) error {
	ls, err := jp.ReadPacket[packets.LoginStart](wire)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.pendingName = string(ls.Name)
	c.mu.Unlock()

	if !c.srv.cfg.Online {
		return c.finishLogin(string(ls.Name), offlineUUID(string(ls.Name)).String())
	}

	c.verifyToken = randomVerifyToken()
	return c.send(&packets.EncryptionRequest{
		ServerID:    "",
		PublicKey:   c.srv.pubKey,
		VerifyToken: c.verifyToken,
	})
}

func (c *Connection) handleEncryptionResponse(wire *jp.WirePacket) error {
	er, err := jp.ReadPacket[packets.EncryptionResponse](wire)
	if err != nil {
		return err
	}

	sharedSecret, err := decryptWithServerKey(c.srv, er.SharedSecret)
	if err != nil {
		return protoerr.NewIllegalData("could not decrypt shared secret")
	}
	if len(sharedSecret) != 16 {
		return protoerr.NewIllegalData("shared secret must be 16 bytes, got %d", len(sharedSecret))
	}

	verify, err := decryptWithServerKey(c.srv, er.VerifyToken)
	if err != nil || string(verify) != string(c.verifyToken) {
		return protoerr.NewIllegalData("verify token mismatch")
	}

	enc := c.conn.Encryption()
	enc.SetSharedSecret(sharedSecret)
	if err := enc.EnableEncryption(); err != nil {
		return fmt.Errorf("server: enable encryption: %w", err)
	}

	hash := session_server.ComputeServerHash("", sharedSecret, c.srv.pubKey)

	c.mu.Lock()
	name := c.pendingName
	c.mu.Unlock()

	profile, err := c.srv.session.HasJoined(name, hash)
	if err != nil {
		return fmt.Errorf("server: session verification: %w", err)
	}
	if profile == nil {
		return protoerr.NewIllegalData("User is not logged in!")
	}

	return c.finishLogin(profile.Name, profile.ID)
}

// finishLogin sends SetCompression + LoginSuccess, switches the
// connection to PLAY, loads the player's persisted state, and sends
// the standard post-login packet sequence.
func (c *Connection) finishLogin(name, playerUUID string) error {
	threshold := c.srv.cfg.Compression
	if threshold >= 0 {
		if err := c.send(&packets.SetCompression{Threshold: ns.VarInt(threshold)}); err != nil {
			return err
		}
		c.compressionThreshold = threshold
	}

	if err := c.send(&packets.LoginSuccess{UUID: ns.String(playerUUID), Username: ns.String(name)}); err != nil {
		return err
	}
	c.state = jp.StatePlay

	player, err := c.srv.world.GetPlayer(playerUUID, name)
	if err != nil {
		return fmt.Errorf("server: load player: %w", err)
	}

	c.mu.Lock()
	c.player = player
	c.lastKnownPosition = [3]float64{player.Position[0], player.Position[1], player.Position[2]}
	c.mu.Unlock()

	c.srv.addPlayer(player, playerUUID)

	return c.sendJoinSequence(player)
}

func decryptWithServerKey(s *Server, ciphertext []byte) ([]byte, error) {
	return decryptRSA(s.rsaKey, ciphertext)
}
