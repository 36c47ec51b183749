package net_structures

import "io"

// Position represents a block position in the world.
//
// Protocol 107 packs a position into a 64-bit integer using the legacy
// pre-1.14 layout:
//   - X: 26 bits (signed, bits 38-63)
//   - Y: 12 bits (signed, bits 26-37)
//   - Z: 26 bits (signed, bits 0-25)
//
// This allows coordinates:
//   - X, Z: -33554432 to 33554431
//   - Y: -2048 to 2047
//
// Later protocol versions move Y to the low bits and swap the Y/Z
// order; this is the layout protocol 107 actually uses on the wire.
type Position struct {
	X, Y, Z int
}

// NewPosition creates a new Position.
func NewPosition(x, y, z int) Position {
	return Position{X: x, Y: y, Z: z}
}

// Encode writes the Position to w as a packed 64-bit integer.
func (p Position) Encode(w io.Writer) error {
	return Int64(p.Pack()).Encode(w)
}

// DecodePosition reads a Position from r.
func DecodePosition(r io.Reader) (Position, error) {
	val, err := DecodeInt64(r)
	if err != nil {
		return Position{}, err
	}
	return UnpackPosition(int64(val)), nil
}

// Pack encodes the position into a 64-bit integer using the legacy
// X(38,26)/Y(26,12)/Z(0,26) layout.
func (p Position) Pack() int64 {
	return ((int64(p.X) & 0x3FFFFFF) << 38) |
		((int64(p.Y) & 0xFFF) << 26) |
		(int64(p.Z) & 0x3FFFFFF)
}

// UnpackPosition decodes a 64-bit integer into a Position using the
// legacy X(38,26)/Y(26,12)/Z(0,26) layout.
func UnpackPosition(val int64) Position {
	x := int(val >> 38)
	y := int(val << 26 >> 52)
	z := int(val << 38 >> 38)

	// Sign extension for X (26 bits)
	if x >= 1<<25 {
		x -= 1 << 26
	}
	// Sign extension for Y (12 bits)
	if y >= 1<<11 {
		y -= 1 << 12
	}
	// Sign extension for Z (26 bits)
	if z >= 1<<25 {
		z -= 1 << 26
	}

	return Position{X: x, Y: y, Z: z}
}
