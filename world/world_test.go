package world_test

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-mclib/server/nbt"
	"github.com/go-mclib/server/world"
)

func writeGzipNBT(t *testing.T, path string, v any, rootName string) {
	t.Helper()
	data, err := nbt.MarshalFile(v, rootName)
	if err != nil {
		t.Fatalf("MarshalFile: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	dir := t.TempDir()

	container := world.LevelContainer{
		Data: world.LevelData{
			Name:   "test",
			SpawnX: 10,
			SpawnY: 70,
			SpawnZ: -5,
		},
	}
	writeGzipNBT(t, filepath.Join(dir, "level.dat"), &container, "")

	w, err := world.Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return w
}

func TestOpenParsesLevelData(t *testing.T) {
	w := newTestWorld(t)
	if w.Level.SpawnX != 10 || w.Level.SpawnY != 70 || w.Level.SpawnZ != -5 {
		t.Errorf("Level spawn = (%d,%d,%d), want (10,70,-5)", w.Level.SpawnX, w.Level.SpawnY, w.Level.SpawnZ)
	}
}

func TestOpenRejectsMissingDirectory(t *testing.T) {
	if _, err := world.Open(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("Open() on a missing directory should error")
	}
}

func TestGetPlayerFallsBackToSpawnWhenMissing(t *testing.T) {
	w := newTestWorld(t)

	p, err := w.GetPlayer("11111111-1111-1111-1111-111111111111", "Notch")
	if err != nil {
		t.Fatalf("GetPlayer() error = %v", err)
	}
	if p.Name != "Notch" {
		t.Errorf("Name = %q, want Notch", p.Name)
	}
	if len(p.Position) != 3 || p.Position[0] != 10 || p.Position[1] != 70 || p.Position[2] != -5 {
		t.Errorf("Position = %v, want world spawn [10 70 -5]", p.Position)
	}
	if p.EntityID == 0 {
		t.Error("EntityID should be allocated for a freshly-spawned player")
	}
}
