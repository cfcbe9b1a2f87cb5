package instructions

import "github.com/daimatz/jvmgo/pkg/rtda"

// The dup/pop family operates on raw slots without regard to type, the
// same way the JVM spec itself describes them: "computational type 1"
// is any single slot, "computational type 2" is the low half of a
// long/double. Category-2 values are only ever pushed as adjacent
// high/low slot pairs, so popping two raw slots off the top always
// yields either one category-2 value or two category-1 values, and
// either reading matches what pop2/dup2 need.

func execPop(frame *rtda.Frame) error {
	frame.OperandStack.PopSlot()
	return nil
}

func execPop2(frame *rtda.Frame) error {
	frame.OperandStack.PopSlot()
	frame.OperandStack.PopSlot()
	return nil
}

func execDup(frame *rtda.Frame) error {
	v := frame.OperandStack.PopSlot()
	frame.OperandStack.PushSlot(v)
	frame.OperandStack.PushSlot(v)
	return nil
}

func execDupX1(frame *rtda.Frame) error {
	v1 := frame.OperandStack.PopSlot()
	v2 := frame.OperandStack.PopSlot()
	frame.OperandStack.PushSlot(v1)
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	return nil
}

func execDupX2(frame *rtda.Frame) error {
	v1 := frame.OperandStack.PopSlot()
	v2 := frame.OperandStack.PopSlot()
	v3 := frame.OperandStack.PopSlot()
	frame.OperandStack.PushSlot(v1)
	frame.OperandStack.PushSlot(v3)
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	return nil
}

func execDup2(frame *rtda.Frame) error {
	v1 := frame.OperandStack.PopSlot()
	v2 := frame.OperandStack.PopSlot()
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	return nil
}

func execDup2X1(frame *rtda.Frame) error {
	v1 := frame.OperandStack.PopSlot()
	v2 := frame.OperandStack.PopSlot()
	v3 := frame.OperandStack.PopSlot()
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	frame.OperandStack.PushSlot(v3)
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	return nil
}

func execDup2X2(frame *rtda.Frame) error {
	v1 := frame.OperandStack.PopSlot()
	v2 := frame.OperandStack.PopSlot()
	v3 := frame.OperandStack.PopSlot()
	v4 := frame.OperandStack.PopSlot()
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	frame.OperandStack.PushSlot(v4)
	frame.OperandStack.PushSlot(v3)
	frame.OperandStack.PushSlot(v2)
	frame.OperandStack.PushSlot(v1)
	return nil
}

func execSwap(frame *rtda.Frame) error {
	v1 := frame.OperandStack.PopSlot()
	v2 := frame.OperandStack.PopSlot()
	frame.OperandStack.PushSlot(v1)
	frame.OperandStack.PushSlot(v2)
	return nil
}
