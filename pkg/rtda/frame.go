// Package rtda implements the runtime data area: local variables, the
// operand stack, frames, the per-thread frame stack, and the thread's
// program counter (spec section 3). It builds directly on pkg/heap's
// Slot representation so a value can move between a local variable, the
// operand stack and an object field without format conversion.
package rtda

import (
	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/heap"
)

// LocalVars is a frame's local variable array, indexed the way the
// bytecode's iload/istore/aload/astore family addresses it: a long or
// double at index i also occupies index i+1.
type LocalVars struct {
	slots heap.Slots
}

func NewLocalVars(maxLocals uint16) LocalVars {
	return LocalVars{slots: heap.NewSlots(uint32(maxLocals))}
}

func (lv LocalVars) SetInt(index uint32, val int32)       { lv.slots.SetInt(index, val) }
func (lv LocalVars) GetInt(index uint32) int32             { return lv.slots.GetInt(index) }
func (lv LocalVars) SetFloat(index uint32, val float32)    { lv.slots.SetFloat(index, val) }
func (lv LocalVars) GetFloat(index uint32) float32         { return lv.slots.GetFloat(index) }
func (lv LocalVars) SetLong(index uint32, val int64)       { lv.slots.SetLong(index, val) }
func (lv LocalVars) GetLong(index uint32) int64            { return lv.slots.GetLong(index) }
func (lv LocalVars) SetDouble(index uint32, val float64)    { lv.slots.SetDouble(index, val) }
func (lv LocalVars) GetDouble(index uint32) float64        { return lv.slots.GetDouble(index) }
func (lv LocalVars) SetRef(index uint32, ref *heap.Object)  { lv.slots.SetRef(index, ref) }
func (lv LocalVars) GetRef(index uint32) *heap.Object       { return lv.slots.GetRef(index) }
func (lv LocalVars) SetBoolean(index uint32, val bool)      { lv.slots.SetBoolean(index, val) }
func (lv LocalVars) GetBoolean(index uint32) bool           { return lv.slots.GetBoolean(index) }
func (lv LocalVars) SetSlot(index uint32, s heap.Slot)      { lv.slots[index] = s }
func (lv LocalVars) GetSlot(index uint32) heap.Slot         { return lv.slots[index] }

// OperandStack is a frame's bounded LIFO value stack, sized to the
// method's max_stack. Push/Pop panic with an InterpreterBug on
// overflow/underflow: the verifier is supposed to make that impossible,
// and since Verify is a no-op here, a violation means the decoder or an
// instruction's stack bookkeeping has a bug, not that the input program
// is malformed.
type OperandStack struct {
	slots heap.Slots
	sp    uint32
}

func NewOperandStack(maxStack uint16) *OperandStack {
	return &OperandStack{slots: heap.NewSlots(uint32(maxStack))}
}

func (os *OperandStack) push(s heap.Slot) {
	if int(os.sp) >= len(os.slots) {
		panic(&vmerrors.InterpreterBug{Detail: "operand stack overflow"})
	}
	os.slots[os.sp] = s
	os.sp++
}

func (os *OperandStack) pop() heap.Slot {
	if os.sp == 0 {
		panic(&vmerrors.InterpreterBug{Detail: "operand stack underflow"})
	}
	os.sp--
	return os.slots[os.sp]
}

func (os *OperandStack) PushInt(val int32)  { os.push(heap.Slot{Num: val}) }
func (os *OperandStack) PopInt() int32      { return os.pop().Num }

func (os *OperandStack) PushFloat(val float32) {
	tmp := heap.NewSlots(1)
	tmp.SetFloat(0, val)
	os.push(tmp[0])
}
func (os *OperandStack) PopFloat() float32 {
	tmp := heap.Slots{os.pop()}
	return tmp.GetFloat(0)
}

func (os *OperandStack) PushLong(val int64) {
	tmp := heap.NewSlots(2)
	tmp.SetLong(0, val)
	os.push(tmp[0])
	os.push(tmp[1])
}
func (os *OperandStack) PopLong() int64 {
	high := os.pop()
	low := os.pop()
	tmp := heap.Slots{low, high}
	return tmp.GetLong(0)
}

func (os *OperandStack) PushDouble(val float64) {
	tmp := heap.NewSlots(2)
	tmp.SetDouble(0, val)
	os.push(tmp[0])
	os.push(tmp[1])
}
func (os *OperandStack) PopDouble() float64 {
	high := os.pop()
	low := os.pop()
	tmp := heap.Slots{low, high}
	return tmp.GetDouble(0)
}

func (os *OperandStack) PushRef(ref *heap.Object) { os.push(heap.Slot{Ref: ref}) }
func (os *OperandStack) PopRef() *heap.Object     { return os.pop().Ref }

func (os *OperandStack) PushBoolean(val bool) {
	if val {
		os.PushInt(1)
	} else {
		os.PushInt(0)
	}
}
func (os *OperandStack) PopBoolean() bool { return os.PopInt() != 0 }

// PushSlot/PopSlot move a value without regard to its type, for dup/swap
// family instructions that only shuffle category-1 slots around.
func (os *OperandStack) PushSlot(s heap.Slot) { os.push(s) }
func (os *OperandStack) PopSlot() heap.Slot   { return os.pop() }

func (os *OperandStack) Size() uint32 { return os.sp }

// Frame is one activation record: a method's local variables, its
// operand stack, the method being executed, and the next instruction's
// program counter (spec 3.4). Frames form an intrusive singly-linked
// list via lower so the Stack holding them never needs a separate slice.
type Frame struct {
	LocalVars    LocalVars
	OperandStack *OperandStack
	Method       *heap.Method
	NextPC       int

	// Returned and ReturnValue let a *return instruction hand its result
	// back to the interpreter loop without the instruction needing to
	// know anything about the caller's frame: nil for a void return, one
	// slot for category-1, two for category-2 (long/double).
	Returned    bool
	ReturnValue heap.Slots

	lower *Frame
}

func NewFrame(method *heap.Method) *Frame {
	return &Frame{
		LocalVars:    NewLocalVars(method.MaxLocals),
		OperandStack: NewOperandStack(method.MaxStack),
		Method:       method,
	}
}

// The following fetch_operands helpers read from the owning method's
// code array starting at NextPC, advancing it past what they read, the
// way the interpreter loop fetches an instruction's immediate operands
// right after decoding its opcode (spec 4.9).

func (f *Frame) ReadU8() uint8 {
	v := f.Method.Code[f.NextPC]
	f.NextPC++
	return v
}

func (f *Frame) ReadI8() int8 {
	return int8(f.ReadU8())
}

func (f *Frame) ReadU16() uint16 {
	hi := f.ReadU8()
	lo := f.ReadU8()
	return uint16(hi)<<8 | uint16(lo)
}

func (f *Frame) ReadI16() int16 {
	return int16(f.ReadU16())
}

func (f *Frame) ReadU32() uint32 {
	hi := f.ReadU16()
	lo := f.ReadU16()
	return uint32(hi)<<16 | uint32(lo)
}

func (f *Frame) ReadI32() int32 {
	return int32(f.ReadU32())
}

// SkipPadding consumes the 0-3 zero bytes tableswitch/lookupswitch
// require to realign their following operands to a 4-byte boundary
// measured from the start of the method's code.
func (f *Frame) SkipPadding() {
	for f.NextPC%4 != 0 {
		f.NextPC++
	}
}
