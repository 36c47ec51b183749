package world_test

import (
	"testing"

	"github.com/go-mclib/server/nbt"
	"github.com/go-mclib/server/world"
)

func TestPlayerEntityNBTRoundTrip(t *testing.T) {
	p := world.NewPlayerEntity("Notch")
	p.Position = []float64{12.5, 64, -8.25}
	p.Motion = []float64{0, 0, 0}
	p.Rotation = []float32{90, 0}
	p.Dimension = 0
	p.FoodLevel = 18

	data, err := nbt.Marshal(&p.Entity)
	if err != nil {
		t.Fatalf("Marshal(Entity) error = %v", err)
	}

	var got world.Entity
	if err := nbt.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal(Entity) error = %v", err)
	}

	if len(got.Position) != 3 || got.Position[0] != 12.5 || got.Position[2] != -8.25 {
		t.Errorf("Position round-trip = %v, want [12.5 64 -8.25]", got.Position)
	}
	if len(got.Rotation) != 2 || got.Rotation[0] != 90 {
		t.Errorf("Rotation round-trip = %v, want [90 0]", got.Rotation)
	}
	if got.Air != 300 {
		t.Errorf("Air default = %d, want 300", got.Air)
	}
	if got.Fire != -20 {
		t.Errorf("Fire default = %d, want -20", got.Fire)
	}
}

func TestNewEntityUUIDRoundTrip(t *testing.T) {
	e := world.NewEntity("minecraft:pig")
	u := e.UUID()
	if u.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("NewEntity produced a nil UUID")
	}
}

func TestPlayerAbilitiesFlags(t *testing.T) {
	a := world.NewPlayerAbilities()
	if a.Flags() != 0 {
		t.Errorf("default Flags() = %d, want 0", a.Flags())
	}

	a.IsFlying = true
	a.CanFly = true
	if got, want := a.Flags(), int8(0b0110); got != want {
		t.Errorf("Flags() with flying+canfly = %b, want %b", got, want)
	}

	a.Invulnerable = true
	a.InstantBuild = true
	if got, want := a.Flags(), int8(0b1111); got != want {
		t.Errorf("Flags() all set = %b, want %b", got, want)
	}
}

func TestTeleportConfirmOutOfOrder(t *testing.T) {
	p := world.NewPlayerEntity("Steve")

	id1 := p.PushTeleport()
	id2 := p.PushTeleport()
	id3 := p.PushTeleport()

	p.ConfirmTeleport(id2)
	p.ConfirmTeleport(id1)
	p.ConfirmTeleport(id3)

	if len(p.OutstandingTeleports) != 0 {
		t.Errorf("OutstandingTeleports = %v, want empty after confirming all three", p.OutstandingTeleports)
	}
}

func TestConfirmTeleportUnknownIDIsNoop(t *testing.T) {
	p := world.NewPlayerEntity("Steve")
	id := p.PushTeleport()

	p.ConfirmTeleport(id + 1000)

	if len(p.OutstandingTeleports) != 1 {
		t.Errorf("OutstandingTeleports = %v, want still holding the one unconfirmed id", p.OutstandingTeleports)
	}
}
