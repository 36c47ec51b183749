package world

import (
	"bytes"
	"fmt"
	"math"

	ns "github.com/go-mclib/server/java_protocol/net_structures"
)

// bitsPerBlock is the constant global-palette block width protocol 107
// uses for every section: 9 bits of block id (the Blocks byte plus the
// lowest bit of the legacy Add nibble) above 4 bits of block data/meta.
const bitsPerBlock = 13

const indicesPerSection = 4096

// sectionDataLength is the byte length of a fully-packed section's
// data array: ceil(4096*13/8).
const sectionDataLength = (indicesPerSection*bitsPerBlock + 7) / 8

// Section is one 16x16x16 sub-cube of a Chunk. Grounded on
// original_source/claspymc/world.py's Section.
type Section struct {
	Y          byte   `nbt:"Y"`
	Blocks     []byte `nbt:"Blocks"`
	Add        []byte `nbt:"Add,omitempty"`
	Data       []byte `nbt:"Data"`
	BlockLight []byte `nbt:"BlockLight"`
	SkyLight   []byte `nbt:"SkyLight"`
}

// Bytes packs the section into the wire body ChunkData expects:
// bits-per-block, palette-length (0, global palette), data-length,
// data, block-light, sky-light.
//
// Each of the 4096 block indices is assembled from the Blocks byte
// (id bits 0-7) and the optional Add nibble (id bits 8-11: low nibble
// for even local indices, high nibble for odd); the id is shifted left
// by 4 and the Data nibble (same even/odd nibble split) fills the low
// 4 bits — the legacy id+meta layout — and the result is masked to
// bitsPerBlock bits.
//
// The source's packing loop overwrites a straddled byte's low bits
// with the next field's shifted-in high bits instead of OR-accumulating
// them; this implementation treats that as a bug and ORs into the
// byte instead, which is what the compact-array format requires.
func (s Section) Bytes() ([]byte, error) {
	if len(s.Blocks) != indicesPerSection {
		return nil, fmt.Errorf("world: section has %d blocks, want %d", len(s.Blocks), indicesPerSection)
	}

	var buf bytes.Buffer
	if err := ns.Uint8(bitsPerBlock).Encode(&buf); err != nil {
		return nil, err
	}
	if err := ns.VarInt(0).Encode(&buf); err != nil {
		return nil, err
	}

	data := make([]byte, sectionDataLength)
	for i := 0; i < indicesPerSection; i++ {
		offset := i * bitsPerBlock
		dataIdx := offset >> 3
		dataOff := uint(offset & 0x07)
		addIdx := i >> 1

		item := int(s.Blocks[i])

		if i&1 == 1 {
			if s.Add != nil {
				item |= int(s.Add[addIdx]>>4) << 8
			}
			item = (item << 4) | int(s.Data[addIdx]>>4)
		} else {
			if s.Add != nil {
				item |= int(s.Add[addIdx]&0x0F) << 8
			}
			item = (item << 4) | int(s.Data[addIdx]&0x0F)
		}

		item &= (1 << bitsPerBlock) - 1
		item <<= dataOff

		for item != 0 {
			data[dataIdx] |= byte(item & 0xFF)
			item >>= 8
			dataIdx++
		}
	}

	if err := ns.VarInt(len(data)).Encode(&buf); err != nil {
		return nil, err
	}
	buf.Write(data)
	buf.Write(s.BlockLight)
	buf.Write(s.SkyLight)
	return buf.Bytes(), nil
}

// Chunk is the "Level" compound of a chunk container: up to sixteen
// sections plus biomes, entities and tile data.
type Chunk struct {
	X                int32     `nbt:"xPos"`
	Z                int32     `nbt:"zPos"`
	LastUpdate       int64     `nbt:"LastUpdate"`
	LightPopulated   bool      `nbt:"LightPopulated"`
	TerrainPopulated bool      `nbt:"TerrainPopulated"`
	InhabitedTime    int64     `nbt:"InhabitedTime"`
	Biomes           []byte    `nbt:"Biomes"`
	Sections         []Section `nbt:"Sections"`
	Entities         []Entity  `nbt:"Entities,omitempty"`
	TileEntities     []any     `nbt:"TileEntities,omitempty"`
	TileTicks        []any     `nbt:"TileTicks,omitempty"`
}

// ChunkContainer is the root compound of a chunk's NBT record.
type ChunkContainer struct {
	DataVersion int32 `nbt:"DataVersion"`
	Level       Chunk `nbt:"Level"`
}

// Serialize builds the primary-bit-mask and concatenated section+biome
// payload a ChunkData packet carries. The tile-entity count is
// emitted separately as a literal zero VarInt by the caller rather
// than walking TileEntities.
func (c Chunk) Serialize() (bitMask ns.VarInt, payload []byte, err error) {
	var buf bytes.Buffer

	bySection := make(map[byte]Section, len(c.Sections))
	for _, s := range c.Sections {
		bySection[s.Y] = s
	}

	var mask int32
	for y := byte(0); y < 16; y++ {
		sec, ok := bySection[y]
		if !ok {
			continue
		}
		b, err := sec.Bytes()
		if err != nil {
			return 0, nil, fmt.Errorf("world: section %d: %w", y, err)
		}
		buf.Write(b)
		mask |= 1 << y
	}

	buf.Write(c.Biomes)

	if mask < 0 || mask > math.MaxInt32 {
		return 0, nil, fmt.Errorf("world: section mask overflow")
	}
	return ns.VarInt(mask), buf.Bytes(), nil
}
