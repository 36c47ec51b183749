package world

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-mclib/server/nbt"
)

// regionFileHeader is the 8KiB of location+timestamp tables every
// Anvil region file starts with: 1024 4-byte (offset,size) sector
// entries followed by 1024 4-byte big-endian unix timestamps.
const regionFileHeader = 8192
const sectorSize = 4096

// compression tags used in a chunk's 1-byte compression-scheme field.
const (
	compressionGZip = 1
	compressionZlib = 2
)

// chunkNBTMaxDepth and chunkNBTMaxBytes bound decoding of a single
// chunk's NBT: a full section stack nests a handful of levels
// (Level -> Sections[]/Entities[]/TileEntities[] -> fields), and a
// worst-case 16x256x16 chunk with dense tile entities still decodes
// to well under this ceiling. A region file entry claiming more than
// this is corrupt or hostile, not a legitimately large chunk.
const (
	chunkNBTMaxDepth = 64
	chunkNBTMaxBytes = 4 << 20
)

// RegionFile is a lazily-opened handle on one 32x32-chunk `.mca` file.
// No pack example repo ships an Anvil reader; this is implemented
// directly against the documented on-disk format (a fixed sector
// table plus per-chunk length-prefixed, compression-tagged NBT
// blobs) using the standard library's zlib/gzip codecs.
type RegionFile struct {
	path string
	file *os.File
}

// OpenRegionFile opens (without fully reading) the region file at path.
func OpenRegionFile(path string) (*RegionFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &RegionFile{path: path, file: f}, nil
}

// Close releases the underlying file handle.
func (r *RegionFile) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// GetNBT reads and decompresses the chunk at local coordinates
// (0 <= x,z < 32) within this region, returning its decoded root tag.
// A chunk that was never generated (a zero location entry) returns
// (nil, nil).
func (r *RegionFile) GetNBT(x, z int) (nbt.Tag, error) {
	if x < 0 || x >= 32 || z < 0 || z >= 32 {
		return nil, fmt.Errorf("world: chunk-in-region coordinates out of range: %d,%d", x, z)
	}

	entryOffset := int64(4 * (x + z*32))
	var entry [4]byte
	if _, err := r.file.ReadAt(entry[:], entryOffset); err != nil {
		return nil, fmt.Errorf("world: read region location entry: %w", err)
	}

	sectorOffset := int(entry[0])<<16 | int(entry[1])<<8 | int(entry[2])
	sectorCount := int(entry[3])
	if sectorOffset == 0 && sectorCount == 0 {
		return nil, nil
	}

	header := make([]byte, 5)
	if _, err := r.file.ReadAt(header, int64(sectorOffset)*sectorSize); err != nil {
		return nil, fmt.Errorf("world: read chunk header: %w", err)
	}

	length := binary.BigEndian.Uint32(header[0:4])
	if length == 0 {
		return nil, nil
	}
	scheme := header[4]

	body := make([]byte, length-1)
	if _, err := r.file.ReadAt(body, int64(sectorOffset)*sectorSize+5); err != nil {
		return nil, fmt.Errorf("world: read chunk body: %w", err)
	}

	raw, err := decompressChunk(scheme, body)
	if err != nil {
		return nil, err
	}

	tag, _, err := nbt.Decode(raw, false, nbt.WithMaxDepth(chunkNBTMaxDepth), nbt.WithMaxBytes(chunkNBTMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("world: decode chunk NBT: %w", err)
	}
	return tag, nil
}

func decompressChunk(scheme byte, body []byte) ([]byte, error) {
	switch scheme {
	case compressionGZip:
		gr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("world: gzip chunk: %w", err)
		}
		defer gr.Close()
		return io.ReadAll(gr)
	case compressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("world: zlib chunk: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	default:
		return nil, fmt.Errorf("world: unknown chunk compression scheme %d", scheme)
	}
}

// readGzipFile reads and gunzips a whole file, the framing level.dat
// and playerdata/*.dat both use.
func readGzipFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("world: gunzip %s: %w", path, err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}
