package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeID is a compact handle into the Table: a dense index packed
// together with a pointer-depth count and a flag nibble so that
// deref/ref/set_nr_muls/clear_flag/has_flag are pure bit arithmetic and
// never touch the Table itself. Zero is the sentinel "unresolved" type.
//
//	bits 0..23  index into Table.symbols
//	bits 24..27 pointer depth (nr_muls), 0..15
//	bits 28..31 flags
type TypeID uint32

const NoTypeID TypeID = 0

const (
	idxMask   TypeID = 0x00FFFFFF
	depthMask TypeID = 0x0F000000
	depthBits        = 24
	flagMask  TypeID = 0xF0000000
	flagBits         = 28
)

// Flag enumerates the bits spec §3 requires TypeID arithmetic to
// preserve across transforms.
type Flag uint8

const (
	FlagOptional Flag = 1 << iota
	FlagVariadic
	FlagGeneric
	FlagShared
)

func idOf(index uint32) TypeID {
	v, err := safecast.Conv[TypeID](index)
	if err != nil {
		panic(fmt.Errorf("types: index overflow: %w", err))
	}
	return v & idxMask
}

// Idx returns the bare index into the Table's symbol arena.
func (t TypeID) Idx() uint32 { return uint32(t & idxMask) }

// NrMuls returns the pointer-depth count (how many `*` this handle adds
// on top of the base symbol).
func (t TypeID) NrMuls() uint8 { return uint8((t & depthMask) >> depthBits) }

// SetNrMuls returns a copy of t with the pointer depth replaced. Depths
// beyond 15 saturate at 15 rather than overflowing into the flag bits.
func (t TypeID) SetNrMuls(n uint8) TypeID {
	if n > 15 {
		n = 15
	}
	return (t &^ depthMask) | (TypeID(n) << depthBits)
}

// Deref drops one pointer level; it is a no-op at depth zero.
func (t TypeID) Deref() TypeID {
	if d := t.NrMuls(); d > 0 {
		return t.SetNrMuls(d - 1)
	}
	return t
}

// Ref adds one pointer level.
func (t TypeID) Ref() TypeID {
	return t.SetNrMuls(t.NrMuls() + 1)
}

func (t TypeID) HasFlag(f Flag) bool {
	return uint8((t&flagMask)>>flagBits)&uint8(f) != 0
}

func (t TypeID) SetFlag(f Flag) TypeID {
	bits := uint8((t&flagMask)>>flagBits) | uint8(f)
	return (t &^ flagMask) | (TypeID(bits) << flagBits)
}

func (t TypeID) ClearFlag(f Flag) TypeID {
	bits := uint8((t&flagMask)>>flagBits) &^ uint8(f)
	return (t &^ flagMask) | (TypeID(bits) << flagBits)
}

// Base strips pointer depth and flags, returning the bare indexed handle
// — the form under which the symbol itself is stored and interned.
func (t TypeID) Base() TypeID { return t & idxMask }

// IsValid reports whether the index portion of t refers to anything but
// the sentinel.
func (t TypeID) IsValid() bool { return t.Idx() != 0 }
