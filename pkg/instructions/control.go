package instructions

import (
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

func execGoto(frame *rtda.Frame) error {
	branchPC := frame.NextPC - 1
	offset := frame.ReadI16()
	frame.NextPC = branchPC + int(offset)
	return nil
}

func execGotoW(frame *rtda.Frame) error {
	branchPC := frame.NextPC - 1
	offset := frame.ReadI32()
	frame.NextPC = branchPC + int(offset)
	return nil
}

// execTableswitch implements tableswitch: default_offset, then low/high
// bounds, then (high-low+1) jump offsets, starting at the next 4-byte
// boundary from the start of the method's code; each offset is relative
// to the instruction's own opcode position (JVMS 6.5.tableswitch).
func execTableswitch(frame *rtda.Frame) error {
	opcodePC := frame.NextPC - 1
	frame.NextPC = opcodePC + 1
	frame.SkipPadding()

	defaultOffset := frame.ReadI32()
	low := frame.ReadI32()
	high := frame.ReadI32()

	index := frame.OperandStack.PopInt()
	if index < low || index > high {
		frame.NextPC = opcodePC + int(defaultOffset)
		return nil
	}

	// Skip to the matching offset entry without materializing the whole
	// jump table.
	skip := int(index-low) * 4
	frame.NextPC += skip
	offset := frame.ReadI32()
	frame.NextPC = opcodePC + int(offset)
	return nil
}

// execLookupswitch implements lookupswitch: default_offset, npairs, then
// npairs sorted (match, offset) pairs (JVMS 6.5.lookupswitch). Matches
// are sorted by the compiler but this does a linear scan since a
// Code attribute's npairs is typically small.
func execLookupswitch(frame *rtda.Frame) error {
	opcodePC := frame.NextPC - 1
	frame.NextPC = opcodePC + 1
	frame.SkipPadding()

	defaultOffset := frame.ReadI32()
	npairs := frame.ReadI32()

	key := frame.OperandStack.PopInt()
	offset := defaultOffset
	for i := int32(0); i < npairs; i++ {
		match := frame.ReadI32()
		pairOffset := frame.ReadI32()
		if match == key {
			offset = pairOffset
		}
	}
	frame.NextPC = opcodePC + int(offset)
	return nil
}

// execReturn implements {i,l,f,d,a}return: pop width slots off the
// operand stack (1 for int/float/ref, 2 for long/double) and hand them
// to the interpreter loop via Frame.Returned/ReturnValue. isRef only
// matters for the single-slot case, to pop a reference instead of an
// int/float-shaped slot.
func execReturn(width int, isRef bool) Instruction {
	return func(frame *rtda.Frame) error {
		frame.Returned = true
		switch width {
		case 1:
			if isRef {
				frame.ReturnValue = heap.Slots{{Ref: frame.OperandStack.PopRef()}}
			} else {
				frame.ReturnValue = heap.Slots{{Num: frame.OperandStack.PopInt()}}
			}
		case 2:
			high := frame.OperandStack.PopSlot()
			low := frame.OperandStack.PopSlot()
			frame.ReturnValue = heap.Slots{low, high}
		}
		return nil
	}
}

func execReturnVoid(frame *rtda.Frame) error {
	frame.Returned = true
	frame.ReturnValue = nil
	return nil
}
