package net_structures

import "io"

// Vec3 is an absolute 3-axis float vector: three big-endian IEEE 754
// singles with no packing, used wherever the protocol sends a raw
// position/offset rather than a packed block Position (entity spawn
// velocities, particle deltas, explosion offsets).
type Vec3 struct {
	X, Y, Z float32
}

// Encode writes the Vec3 to w as three consecutive Float32 fields.
func (v Vec3) Encode(w io.Writer) error {
	if err := Float32(v.X).Encode(w); err != nil {
		return err
	}
	if err := Float32(v.Y).Encode(w); err != nil {
		return err
	}
	return Float32(v.Z).Encode(w)
}

// DecodeVec3 reads a Vec3 from r.
func DecodeVec3(r io.Reader) (Vec3, error) {
	x, err := DecodeFloat32(r)
	if err != nil {
		return Vec3{}, err
	}
	y, err := DecodeFloat32(r)
	if err != nil {
		return Vec3{}, err
	}
	z, err := DecodeFloat32(r)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}
