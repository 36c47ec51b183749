// Package wirenbt wraps the tag-tree half of the server's nbt package
// (github.com/go-mclib/server/nbt) for wire slots that carry a
// self-describing, schema-less NBT payload: a Slot's item tag, or
// anything else a handler wants to forward opaquely instead of through
// a fixed Go struct. Schema'd persistence (chunks, entities, player
// data) goes through the nbt package's struct-tag unmarshalling
// against real structs instead.
//
// Adapted from an earlier net_structures.NBT wrapper that wrapped a
// third-party NBT codec; this wraps the in-tree nbt package instead so
// the codec stays in one place.
package wirenbt

import (
	"bytes"
	"fmt"

	"github.com/go-mclib/server/nbt"
)

// Value holds an arbitrary NBT payload as a decoded tag tree
// (nbt.Compound, nbt.List, nbt.String, ...) rather than a fixed struct.
type Value struct {
	Tag nbt.Tag
}

// Empty returns a Value encoding the zero-length TAG_End payload used for
// "no NBT here" wire slots.
func Empty() Value { return Value{} }

// Of wraps an already-decoded tag, most commonly an nbt.Compound built by
// hand or produced from a struct by nbt.MarshalTag.
func Of(tag nbt.Tag) Value { return Value{Tag: tag} }

// ToBytes encodes the value in network NBT format (nameless root tag).
func (v Value) ToBytes() ([]byte, error) {
	if v.Tag == nil {
		return []byte{nbt.TagEnd}, nil
	}

	w := nbt.NewWriter()
	if err := w.WriteTag(v.Tag, "", true); err != nil {
		return nil, fmt.Errorf("wirenbt: encode: %w", err)
	}
	return w.Bytes(), nil
}

// FromBytes decodes a network-format NBT value, returning the number of
// bytes consumed.
func (v *Value) FromBytes(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("wirenbt: no data")
	}
	if data[0] == nbt.TagEnd {
		v.Tag = nil
		return 1, nil
	}

	r := bytes.NewReader(data)
	tag, _, err := nbt.NewReaderFrom(r).ReadTag(true)
	if err != nil {
		return 0, fmt.Errorf("wirenbt: decode: %w", err)
	}
	v.Tag = tag
	return len(data) - r.Len(), nil
}

// DecodeTo unmarshals the wrapped tag into dest, a pointer to a struct
// annotated with `nbt:"..."` tags.
func (v Value) DecodeTo(dest any) error {
	if v.Tag == nil {
		return fmt.Errorf("wirenbt: value is empty")
	}
	return nbt.UnmarshalTag(v.Tag, dest)
}

// IsEmpty reports whether the value carries no NBT payload.
func (v Value) IsEmpty() bool { return v.Tag == nil }

func (v Value) String() string {
	if v.Tag == nil {
		return "NBT{empty}"
	}
	return fmt.Sprintf("NBT{%+v}", v.Tag)
}
