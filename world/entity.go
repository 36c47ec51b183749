// Package world holds the persistent game-world model: level metadata,
// chunks and their sections, and the entity/player records NBT
// persistence loads and saves. Packet handlers read and mutate these
// structures directly; the package does no networking of its own.
//
// Schemas are grounded in original_source/claspymc/entity.py and
// world.py, translated from that reflective field-descriptor scheme
// into plain Go structs with `nbt:"..."` tags consumed by the
// project's own nbt package (github.com/go-mclib/server/nbt).
package world

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/google/uuid"
)

// Slot is an inventory entry as persisted to disk: either empty
// (Count==0) or an item stack with an optional NBT tag compound. The
// wire representation is net_structures.Slot, keyed by numeric item
// id rather than this schema's namespaced ID string.
type Slot struct {
	Count  byte   `nbt:"Count"`
	SlotNo byte   `nbt:"Slot,omitempty"`
	Damage int16  `nbt:"Damage"`
	ID     string `nbt:"id"`
	Tag    any    `nbt:"tag,omitempty"`
}

var nextEntityID int32

// AllocateEntityID returns a process-wide monotone entity id, matching
// the source's running _running_id() generator.
func AllocateEntityID() int32 {
	nextEntityID++
	return nextEntityID
}

// Entity is the common NBT schema shared by every mob and player.
type Entity struct {
	Kind             string    `nbt:"id"`
	Position         []float64 `nbt:"Pos"`
	Motion           []float64 `nbt:"Motion"`
	Rotation         []float32 `nbt:"Rotation"`
	FallDistance     float32   `nbt:"FallDistance"`
	Fire             int16     `nbt:"Fire"`
	Air              int16     `nbt:"Air"`
	OnGround         bool      `nbt:"OnGround"`
	Invulnerable     bool      `nbt:"Invulnerable"`
	PortalCooldown   int32     `nbt:"PortalCooldown"`
	UUIDMost         int64     `nbt:"UUIDMost"`
	UUIDLeast        int64     `nbt:"UUIDLeast"`
	CustomName       string    `nbt:"CustomName,omitempty"`
	CustomNameVisible bool     `nbt:"CustomNameVisible,omitempty"`
	Silent           bool      `nbt:"Silent"`
	Glowing          bool      `nbt:"Glowing"`
	Tags             []string  `nbt:"Tags,omitempty"`

	// EntityID is the server-local runtime id, not part of NBT.
	EntityID int32 `nbt:"-"`
}

// NewEntity builds an Entity with the defaults the source constructor
// applies: a fresh runtime id, a random UUID, and vanilla fire/air.
func NewEntity(kind string) Entity {
	id := uuid.New()
	most := int64(binary.BigEndian.Uint64(id[0:8]))
	least := int64(binary.BigEndian.Uint64(id[8:16]))
	return Entity{
		Kind:      kind,
		Position:  []float64{0, 0, 0},
		Motion:    []float64{0, 0, 0},
		Rotation:  []float32{0, 0},
		Fire:      -20,
		Air:       300,
		UUIDMost:  most,
		UUIDLeast: least,
		EntityID:  AllocateEntityID(),
	}
}

// UUID reconstructs the entity's UUID from its split NBT halves.
func (e *Entity) UUID() uuid.UUID {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(e.UUIDMost))
	binary.BigEndian.PutUint64(b[8:16], uint64(e.UUIDLeast))
	return uuid.UUID(b)
}

func (e *Entity) Yaw() float32   { return e.rotationAt(0) }
func (e *Entity) Pitch() float32 { return e.rotationAt(1) }

func (e *Entity) rotationAt(i int) float32 {
	if len(e.Rotation) <= i {
		return 0
	}
	return e.Rotation[i]
}

// MobAttributeModifier modifies a MobAttribute's base value.
type MobAttributeModifier struct {
	Name      string  `nbt:"Name"`
	Amount    float64 `nbt:"Amount"`
	Operation int32   `nbt:"Operation"`
	UUIDMost  int64   `nbt:"UUIDMost"`
	UUIDLeast int64   `nbt:"UUIDLeast"`
}

// MobAttribute is a named, modifiable numeric stat (movement speed,
// max health, attack damage, ...).
type MobAttribute struct {
	Name      string                  `nbt:"Name"`
	Base      float64                 `nbt:"Base"`
	Modifiers []MobAttributeModifier  `nbt:"Modifiers,omitempty"`
}

// MobEffect is an active status effect (potion effect).
type MobEffect struct {
	ID            byte  `nbt:"Id"`
	Amplifier     byte  `nbt:"Amplifier"`
	Duration      int32 `nbt:"Duration"`
	Ambient       bool  `nbt:"Ambient"`
	ShowParticles bool  `nbt:"ShowParticles"`
}

// Mob extends Entity with health, damage timers, attributes and
// active effects.
type Mob struct {
	Entity

	Health         float32        `nbt:"Health"`
	Absorption     float32        `nbt:"AbsorptionAmount"`
	HurtTime       int16          `nbt:"HurtTime"`
	HurtByTimestamp int32         `nbt:"HurtByTimestamp"`
	DeathTime      int16          `nbt:"DeathTime"`
	FallFlying     bool           `nbt:"FallFlying"`
	Attributes     []MobAttribute `nbt:"Attributes,omitempty"`
	ActiveEffects  []MobEffect    `nbt:"ActiveEffects,omitempty"`
}

// NewMob builds a Mob with vanilla-default health.
func NewMob(kind string) Mob {
	return Mob{Entity: NewEntity(kind), Health: 20}
}

// PlayerAbilities is the player's flight/build permission sub-record.
type PlayerAbilities struct {
	WalkSpeed     float32 `nbt:"walkSpeed"`
	FlySpeed      float32 `nbt:"flySpeed"`
	CanFly        bool    `nbt:"mayfly"`
	IsFlying      bool    `nbt:"flying"`
	Invulnerable  bool    `nbt:"invulnerable"`
	CanBuild      bool    `nbt:"mayBuild"`
	InstantBuild  bool    `nbt:"instabuild"`
}

// NewPlayerAbilities applies the source's defaults.
func NewPlayerAbilities() PlayerAbilities {
	return PlayerAbilities{
		WalkSpeed: 0.1,
		FlySpeed:  0.05,
		CanBuild:  true,
	}
}

// Flags packs the abilities into the single byte PlayerAbilities
// expects on the wire: bit0 invulnerable, bit1 flying, bit2 allow
// flying, bit3 creative/instant build.
func (a PlayerAbilities) Flags() int8 {
	var f int8
	if a.Invulnerable {
		f |= 0x01
	}
	if a.IsFlying {
		f |= 0x02
	}
	if a.CanFly {
		f |= 0x04
	}
	if a.InstantBuild {
		f |= 0x08
	}
	return f
}

// PlayerEntity is the full per-player persistence record, the schema
// read from and written to <world>/playerdata/{uuid}.dat.
type PlayerEntity struct {
	Mob

	DataVersion    int32           `nbt:"DataVersion"`
	Dimension      int32           `nbt:"Dimension"`
	Gamemode       int32           `nbt:"playerGameType"`
	Score          int32           `nbt:"Score"`
	SelectedSlot   int32           `nbt:"SelectedItemSlot"`
	SelectedItem   Slot            `nbt:"SelectedItem"`
	SpawnX         int32           `nbt:"SpawnX,omitempty"`
	SpawnY         int32           `nbt:"SpawnY,omitempty"`
	SpawnZ         int32           `nbt:"SpawnZ,omitempty"`
	SpawnForced    bool            `nbt:"SpawnForced"`
	FoodLevel      int32           `nbt:"foodLevel"`
	FoodExhaustion float32         `nbt:"foodExhaustionLevel"`
	FoodSaturation float32         `nbt:"foodSaturationLevel"`
	FoodTickTimer  int32           `nbt:"foodTickTimer"`
	XPLevel        int32           `nbt:"XpLevel"`
	XPPercent      float32         `nbt:"XpP"`
	XPTotal        int32           `nbt:"XpTotal"`
	Inventory      []Slot          `nbt:"Inventory,omitempty"`
	EnderItems     []Slot          `nbt:"EnderItems,omitempty"`
	Abilities      PlayerAbilities `nbt:"abilities"`

	// Name, the outstanding teleport-id set and the client-reported
	// settings below are server-side runtime state, never persisted:
	// they are re-sent by the client via ClientSettings on every join.
	Name                 string  `nbt:"-"`
	OutstandingTeleports []int32 `nbt:"-"`

	Locale          string `nbt:"-"`
	ViewDistance    int8   `nbt:"-"`
	ChatMode        int32  `nbt:"-"`
	ChatColours     bool   `nbt:"-"`
	SkinParts       uint8  `nbt:"-"`
	MainHand        int32  `nbt:"-"`
	PermissionLevel int32  `nbt:"-"`
}

// ApplyClientSettings stores the locale/display preferences the
// client reports in its ClientSettings packet, sent once on join and
// again whenever the player changes them in-game.
func (p *PlayerEntity) ApplyClientSettings(locale string, viewDistance int8, chatMode int32, chatColours bool, skinParts uint8, mainHand int32) {
	p.Locale = locale
	p.ViewDistance = viewDistance
	p.ChatMode = chatMode
	p.ChatColours = chatColours
	p.SkinParts = skinParts
	p.MainHand = mainHand
}

// NewPlayerEntity builds a fresh, never-before-seen player record, the
// fallback get_player uses when no playerdata file exists.
func NewPlayerEntity(name string) *PlayerEntity {
	p := &PlayerEntity{
		Mob:            NewMob("minecraft:player"),
		FoodLevel:      20,
		FoodSaturation: 5,
		Abilities:      NewPlayerAbilities(),
		Name:           name,
	}
	return p
}

// PushTeleport appends a fresh teleport id in [1, 2^24-1) to the
// player's outstanding set, as issued with each PlayerPositionAndLook.
func (p *PlayerEntity) PushTeleport() int32 {
	id := randomTeleportID()
	p.OutstandingTeleports = append(p.OutstandingTeleports, id)
	return id
}

// ConfirmTeleport removes a matching outstanding id. Unknown ids are
// silently ignored, and removal tolerates any order.
func (p *PlayerEntity) ConfirmTeleport(id int32) {
	for i, want := range p.OutstandingTeleports {
		if want == id {
			p.OutstandingTeleports = append(p.OutstandingTeleports[:i], p.OutstandingTeleports[i+1:]...)
			return
		}
	}
}

func randomTeleportID() int32 {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return int32(binary.BigEndian.Uint32(b[:])%(1<<24-2)) + 1
}
