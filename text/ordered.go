package text

import "math"

// OrderedF32 is a float32 with a total order, usable as a map key.
//
// Native float equality is unsuitable for cache keys: NaN never equals
// itself and -0 equals +0 while hashing differently through the bit
// pattern. OrderedF32 stores normalized bits instead. The zero value
// is +0.
type OrderedF32 struct {
	bits uint32
}

// Ordered wraps v for use as a cache key.
//
// -0 is folded into +0 so both key identically. NaN is not a valid
// key and panics: advance widths and pixel scales come from font
// metrics, so a NaN here is a programming error upstream.
func Ordered(v float32) OrderedF32 {
	if math.IsNaN(float64(v)) {
		panic("text: NaN is not a valid cache key")
	}
	if v == 0 {
		return OrderedF32{}
	}
	return OrderedF32{bits: math.Float32bits(v)}
}

// F32 returns the wrapped value.
func (o OrderedF32) F32() float32 {
	return math.Float32frombits(o.bits)
}

// Less reports whether o orders before other.
func (o OrderedF32) Less(other OrderedF32) bool {
	return o.orderKey() < other.orderKey()
}

// orderKey maps the IEEE 754 bit pattern to a monotonically
// increasing integer: flip all bits of negative values, flip only the
// sign bit of non-negative ones.
func (o OrderedF32) orderKey() uint32 {
	if o.bits&0x8000_0000 != 0 {
		return ^o.bits
	}
	return o.bits | 0x8000_0000
}
