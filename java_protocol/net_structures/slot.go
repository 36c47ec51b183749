package net_structures

import (
	"io"

	"github.com/go-mclib/server/nbt"
)

// Slot is an inventory entry on the wire: either empty (ItemID < 0) or
// a stack carrying a count, a damage value and an optional NBT tag
// compound. Protocol 107 predates the 1.13 item-ID flattening, so the
// item is a raw numeric id rather than a namespaced Identifier.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Slot_Data
type Slot struct {
	ItemID int16
	Count  int8
	Damage int16
	Tag    nbt.Tag
}

// Empty reports whether the slot carries no item.
func (s Slot) Empty() bool { return s.ItemID < 0 }

// Encode writes the Slot to w.
func (s Slot) Encode(w io.Writer) error {
	if err := Int16(s.ItemID).Encode(w); err != nil {
		return err
	}
	if s.ItemID < 0 {
		return nil
	}
	if err := Int8(s.Count).Encode(w); err != nil {
		return err
	}
	if err := Int16(s.Damage).Encode(w); err != nil {
		return err
	}
	return encodeSlotTag(w, s.Tag)
}

func encodeSlotTag(w io.Writer, tag nbt.Tag) error {
	if tag == nil {
		_, err := w.Write([]byte{nbt.TagEnd})
		return err
	}
	return nbt.NewWriterTo(w).WriteTag(tag, "", true)
}

// DecodeSlot reads a Slot from r.
func DecodeSlot(r io.Reader) (Slot, error) {
	id, err := DecodeInt16(r)
	if err != nil {
		return Slot{}, err
	}
	if id < 0 {
		return Slot{ItemID: int16(id)}, nil
	}

	count, err := DecodeInt8(r)
	if err != nil {
		return Slot{}, err
	}
	damage, err := DecodeInt16(r)
	if err != nil {
		return Slot{}, err
	}

	tag, _, err := nbt.NewReaderFrom(r).ReadTag(true)
	if err != nil {
		return Slot{}, err
	}
	if _, isEnd := tag.(nbt.End); isEnd {
		tag = nil
	}

	return Slot{ItemID: int16(id), Count: int8(count), Damage: int16(damage), Tag: tag}, nil
}
