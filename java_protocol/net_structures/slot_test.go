package net_structures_test

import (
	"bytes"
	"testing"

	ns "github.com/go-mclib/server/java_protocol/net_structures"
	"github.com/go-mclib/server/nbt"
)

func TestVec3RoundTrip(t *testing.T) {
	v := ns.Vec3{X: 1.5, Y: -2.25, Z: 0}

	buf := ns.NewWriter()
	if err := buf.WriteVec3(v); err != nil {
		t.Fatalf("WriteVec3 error: %v", err)
	}
	if len(buf.Bytes()) != 12 {
		t.Fatalf("Vec3 wire size = %d, want 12", len(buf.Bytes()))
	}

	got, err := ns.NewReader(buf.Bytes()).ReadVec3()
	if err != nil {
		t.Fatalf("ReadVec3 error: %v", err)
	}
	if got != v {
		t.Errorf("got %+v, want %+v", got, v)
	}
}

func TestVec3Add(t *testing.T) {
	a := ns.Vec3{X: 1, Y: 2, Z: 3}
	b := ns.Vec3{X: 0.5, Y: -2, Z: 1}
	got := a.Add(b)
	want := ns.Vec3{X: 1.5, Y: 0, Z: 4}
	if got != want {
		t.Errorf("Add = %+v, want %+v", got, want)
	}
}

func TestSlotEmptyRoundTrip(t *testing.T) {
	s := ns.Slot{ItemID: -1}
	if !s.Empty() {
		t.Fatal("Empty() = false for negative item id")
	}

	buf := ns.NewWriter()
	if err := buf.WriteSlot(s); err != nil {
		t.Fatalf("WriteSlot error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xff, 0xff}) {
		t.Errorf("empty slot wire = %x, want ffff", buf.Bytes())
	}

	got, err := ns.NewReader(buf.Bytes()).ReadSlot()
	if err != nil {
		t.Fatalf("ReadSlot error: %v", err)
	}
	if !got.Empty() {
		t.Errorf("round-tripped slot not empty: %+v", got)
	}
}

func TestSlotWithTagRoundTrip(t *testing.T) {
	tag := nbt.Compound{"ench": nbt.List{}}
	s := ns.Slot{ItemID: 278, Count: 1, Damage: 0, Tag: tag}

	buf := ns.NewWriter()
	if err := buf.WriteSlot(s); err != nil {
		t.Fatalf("WriteSlot error: %v", err)
	}

	got, err := ns.NewReader(buf.Bytes()).ReadSlot()
	if err != nil {
		t.Fatalf("ReadSlot error: %v", err)
	}
	if got.ItemID != s.ItemID || got.Count != s.Count || got.Damage != s.Damage {
		t.Errorf("got %+v, want %+v", got, s)
	}
	if got.Tag == nil {
		t.Fatal("round-tripped tag is nil, want Compound")
	}
}

func TestSlotNoTagRoundTrip(t *testing.T) {
	s := ns.Slot{ItemID: 1, Count: 64, Damage: 0}

	buf := ns.NewWriter()
	if err := buf.WriteSlot(s); err != nil {
		t.Fatalf("WriteSlot error: %v", err)
	}

	got, err := ns.NewReader(buf.Bytes()).ReadSlot()
	if err != nil {
		t.Fatalf("ReadSlot error: %v", err)
	}
	if got.Tag != nil {
		t.Errorf("round-tripped tag = %v, want nil", got.Tag)
	}
	if got.Count != 64 {
		t.Errorf("Count = %d, want 64", got.Count)
	}
}
