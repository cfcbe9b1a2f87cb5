package heap

import "math"

// Slot is the 32-bit-wide storage cell local variables, the operand
// stack, instance fields and static fields are all built from (spec
// section 3). A category-2 value (long, double) spans two consecutive
// slots: Num holds the low-order half in the first slot and the
// high-order half in the second, Ref is always nil in both halves.
type Slot struct {
	Num int32
	Ref *Object
}

// Slots is a flat, indexable run of Slot, the common storage shape
// behind LocalVars, the operand stack, instance fields and static
// fields. category-2 accessors always address the low slot; callers
// never touch the padding half directly.
type Slots []Slot

func NewSlots(n uint32) Slots {
	return make(Slots, n)
}

func (s Slots) SetInt(index uint32, val int32) {
	s[index] = Slot{Num: val}
}

func (s Slots) GetInt(index uint32) int32 {
	return s[index].Num
}

func (s Slots) SetFloat(index uint32, val float32) {
	s[index] = Slot{Num: int32(math.Float32bits(val))}
}

func (s Slots) GetFloat(index uint32) float32 {
	return math.Float32frombits(uint32(s[index].Num))
}

func (s Slots) SetLong(index uint32, val int64) {
	s[index] = Slot{Num: int32(val)}
	s[index+1] = Slot{Num: int32(val >> 32)}
}

func (s Slots) GetLong(index uint32) int64 {
	low := uint32(s[index].Num)
	high := uint32(s[index+1].Num)
	return int64(uint64(high)<<32 | uint64(low))
}

func (s Slots) SetDouble(index uint32, val float64) {
	s.SetLong(index, int64(math.Float64bits(val)))
}

func (s Slots) GetDouble(index uint32) float64 {
	return math.Float64frombits(uint64(s.GetLong(index)))
}

func (s Slots) SetRef(index uint32, ref *Object) {
	s[index] = Slot{Ref: ref}
}

func (s Slots) GetRef(index uint32) *Object {
	return s[index].Ref
}

func (s Slots) SetBoolean(index uint32, val bool) {
	if val {
		s.SetInt(index, 1)
	} else {
		s.SetInt(index, 0)
	}
}

func (s Slots) GetBoolean(index uint32) bool {
	return s.GetInt(index) != 0
}

// StaticVars is the per-class storage a Class's static fields live in,
// allocated once by the loader's Prepare step.
type StaticVars struct {
	Slots Slots
}

func NewStaticVars(count uint32) *StaticVars {
	return &StaticVars{Slots: NewSlots(count)}
}
