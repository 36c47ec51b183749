package packets_test

import (
	"testing"

	ns "github.com/go-mclib/server/java_protocol/net_structures"
	"github.com/go-mclib/server/java_protocol/packets"
)

func TestHandshakeRoundTrip(t *testing.T) {
	want := packets.Handshake{
		ProtocolVersion: 107,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       packets.HandshakeNextLogin,
	}

	buf := ns.NewWriter()
	if err := want.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got packets.Handshake
	if err := got.Read(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got != want {
		t.Errorf("Handshake round-trip = %+v, want %+v", got, want)
	}
}

func TestChunkDataRejectsTrailingTileEntities(t *testing.T) {
	buf := ns.NewWriter()
	if err := buf.WriteInt32(0); err != nil {
		t.Fatalf("WriteInt32 (ChunkX): %v", err)
	}
	if err := buf.WriteInt32(0); err != nil {
		t.Fatalf("WriteInt32 (ChunkZ): %v", err)
	}
	if err := buf.WriteBool(true); err != nil {
		t.Fatalf("WriteBool: %v", err)
	}
	if err := buf.WriteVarInt(0); err != nil {
		t.Fatalf("WriteVarInt (bitmask): %v", err)
	}
	if err := buf.WriteVarInt(0); err != nil {
		t.Fatalf("WriteVarInt (data size): %v", err)
	}
	// Non-zero trailing tile-entity count: must be rejected.
	if err := buf.WriteVarInt(1); err != nil {
		t.Fatalf("WriteVarInt (tile entities): %v", err)
	}

	var cd packets.ChunkData
	if err := cd.Read(ns.NewReader(buf.Bytes())); err == nil {
		t.Error("Read() with a non-zero tile-entity count should error")
	}
}

func TestChunkDataWriteAlwaysEmitsZeroTileEntityCount(t *testing.T) {
	cd := packets.ChunkData{
		ChunkX:             1,
		ChunkZ:             -1,
		GroundUpContinuous: true,
		PrimaryBitMask:     0x1,
		Data:               []byte{0xAA},
	}

	buf := ns.NewWriter()
	if err := cd.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got packets.ChunkData
	if err := got.Read(ns.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.ChunkX != cd.ChunkX || got.ChunkZ != cd.ChunkZ || got.PrimaryBitMask != cd.PrimaryBitMask {
		t.Errorf("ChunkData round-trip = %+v, want %+v", got, cd)
	}
}
