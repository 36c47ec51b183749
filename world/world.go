package world

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-mclib/server/nbt"
)

// NBT ceilings for the two small, single-object files this package
// decodes outside of region data (level.dat, playerdata/*.dat): both
// are a handful of nesting levels deep (Data -> Player -> Inventory[]
// -> Slot -> tag) and a few KB in practice, so these ceilings exist to
// reject a truncated or maliciously crafted file rather than to
// accommodate legitimately large ones.
const (
	levelNBTMaxDepth  = 32
	levelNBTMaxBytes  = 1 << 20
	playerNBTMaxDepth = 32
	playerNBTMaxBytes = 1 << 20
)

type regionKey struct {
	dimension, x, z int
}

type chunkKey struct {
	dimension, x, z int
}

// World owns a world save directory: the parsed level.dat and two
// lazily-populated caches mapping region/chunk coordinates to their
// decoded structures. Grounded on
// original_source/claspymc/world.py's MCWorld.
type World struct {
	base  string
	Level LevelData

	mu      sync.Mutex
	regions map[regionKey]*RegionFile
	chunks  map[chunkKey]*ChunkContainer
}

// Open loads level.dat from base and returns a World ready to serve
// regions, chunks and player data from it.
func Open(base string) (*World, error) {
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("world: base path %q must be an existing directory", base)
	}

	raw, err := readGzipFile(filepath.Join(base, "level.dat"))
	if err != nil {
		return nil, fmt.Errorf("world: level.dat: %w", err)
	}

	var container LevelContainer
	if _, err := nbt.UnmarshalFileOptions(raw, &container, nbt.WithMaxDepth(levelNBTMaxDepth), nbt.WithMaxBytes(levelNBTMaxBytes)); err != nil {
		return nil, fmt.Errorf("world: decode level.dat: %w", err)
	}

	return &World{
		base:    base,
		Level:   container.Data,
		regions: make(map[regionKey]*RegionFile),
		chunks:  make(map[chunkKey]*ChunkContainer),
	}, nil
}

// regionPath mirrors get_region's path construction:
// <base>[/DIM{n}]/region/r.{x}.{z}.mca.
func (w *World) regionPath(x, z, dimension int) string {
	dir := w.base
	if dimension != 0 {
		dir = filepath.Join(dir, fmt.Sprintf("DIM%d", dimension))
	}
	return filepath.Join(dir, "region", fmt.Sprintf("r.%d.%d.mca", x, z))
}

// GetRegion returns the (cached) region file handle for region
// coordinates (x,z) in dimension.
func (w *World) GetRegion(x, z, dimension int) (*RegionFile, error) {
	key := regionKey{dimension, x, z}

	w.mu.Lock()
	defer w.mu.Unlock()

	if r, ok := w.regions[key]; ok {
		return r, nil
	}

	r, err := OpenRegionFile(w.regionPath(x, z, dimension))
	if err != nil {
		return nil, err
	}
	w.regions[key] = r
	return r, nil
}

// GetChunk returns the chunk at absolute chunk coordinates (cx,cz) in
// dimension, loading and caching it from its region file on first use.
func (w *World) GetChunk(cx, cz, dimension int) (*Chunk, error) {
	key := chunkKey{dimension, cx, cz}

	w.mu.Lock()
	if c, ok := w.chunks[key]; ok {
		w.mu.Unlock()
		return &c.Level, nil
	}
	w.mu.Unlock()

	region, err := w.GetRegion(cx>>5, cz>>5, dimension)
	if err != nil {
		return nil, err
	}

	tag, err := region.GetNBT(cx&0x1f, cz&0x1f)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, fmt.Errorf("world: chunk %d,%d not generated", cx, cz)
	}

	var container ChunkContainer
	if err := nbt.UnmarshalTag(tag, &container); err != nil {
		return nil, fmt.Errorf("world: decode chunk %d,%d: %w", cx, cz, err)
	}

	w.mu.Lock()
	w.chunks[key] = &container
	w.mu.Unlock()

	return &container.Level, nil
}

// GetPlayer loads the named player's persisted state from
// <base>/playerdata/{uuid}.dat, or returns a freshly-constructed
// PlayerEntity spawned at the world's spawn point if no file exists.
func (w *World) GetPlayer(playerUUID, name string) (*PlayerEntity, error) {
	path := filepath.Join(w.base, "playerdata", playerUUID+".dat")

	raw, err := readGzipFile(path)
	if os.IsNotExist(err) {
		p := NewPlayerEntity(name)
		p.Position = []float64{float64(w.Level.SpawnX), float64(w.Level.SpawnY), float64(w.Level.SpawnZ)}
		p.SpawnX, p.SpawnY, p.SpawnZ = w.Level.SpawnX, w.Level.SpawnY, w.Level.SpawnZ
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("world: playerdata: %w", err)
	}

	var p PlayerEntity
	if _, err := nbt.UnmarshalFileOptions(raw, &p, nbt.WithMaxDepth(playerNBTMaxDepth), nbt.WithMaxBytes(playerNBTMaxBytes)); err != nil {
		return nil, fmt.Errorf("world: decode playerdata: %w", err)
	}
	p.Name = name
	p.EntityID = AllocateEntityID()

	if len(p.Position) != 3 || (p.Position[0] == 0 && p.Position[1] == 0 && p.Position[2] == 0) {
		p.Position = []float64{float64(w.Level.SpawnX), float64(w.Level.SpawnY), float64(w.Level.SpawnZ)}
		p.SpawnX, p.SpawnY, p.SpawnZ = w.Level.SpawnX, w.Level.SpawnY, w.Level.SpawnZ
	}

	return &p, nil
}

// Close releases every open region file handle.
func (w *World) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	for _, r := range w.regions {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
