package instructions

import (
	"math"

	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

func execIadd(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v1 + v2)
	return nil
}

func execLadd(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v1 + v2)
	return nil
}

func execFadd(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopFloat()
	v1 := frame.OperandStack.PopFloat()
	frame.OperandStack.PushFloat(v1 + v2)
	return nil
}

func execDadd(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopDouble()
	v1 := frame.OperandStack.PopDouble()
	frame.OperandStack.PushDouble(v1 + v2)
	return nil
}

func execIsub(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v1 - v2)
	return nil
}

func execLsub(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v1 - v2)
	return nil
}

func execFsub(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopFloat()
	v1 := frame.OperandStack.PopFloat()
	frame.OperandStack.PushFloat(v1 - v2)
	return nil
}

func execDsub(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopDouble()
	v1 := frame.OperandStack.PopDouble()
	frame.OperandStack.PushDouble(v1 - v2)
	return nil
}

func execImul(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v1 * v2)
	return nil
}

func execLmul(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v1 * v2)
	return nil
}

func execFmul(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopFloat()
	v1 := frame.OperandStack.PopFloat()
	frame.OperandStack.PushFloat(v1 * v2)
	return nil
}

func execDmul(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopDouble()
	v1 := frame.OperandStack.PopDouble()
	frame.OperandStack.PushDouble(v1 * v2)
	return nil
}

func execIdiv(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	if v2 == 0 {
		return &vmerrors.RuntimeError{Kind: vmerrors.ArithmeticException, Detail: "/ by zero"}
	}
	frame.OperandStack.PushInt(v1 / v2)
	return nil
}

func execLdiv(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	if v2 == 0 {
		return &vmerrors.RuntimeError{Kind: vmerrors.ArithmeticException, Detail: "/ by zero"}
	}
	frame.OperandStack.PushLong(v1 / v2)
	return nil
}

func execFdiv(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopFloat()
	v1 := frame.OperandStack.PopFloat()
	frame.OperandStack.PushFloat(v1 / v2)
	return nil
}

func execDdiv(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopDouble()
	v1 := frame.OperandStack.PopDouble()
	frame.OperandStack.PushDouble(v1 / v2)
	return nil
}

func execIrem(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	if v2 == 0 {
		return &vmerrors.RuntimeError{Kind: vmerrors.ArithmeticException, Detail: "/ by zero"}
	}
	frame.OperandStack.PushInt(v1 % v2)
	return nil
}

func execLrem(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	if v2 == 0 {
		return &vmerrors.RuntimeError{Kind: vmerrors.ArithmeticException, Detail: "/ by zero"}
	}
	frame.OperandStack.PushLong(v1 % v2)
	return nil
}

func execFrem(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopFloat()
	v1 := frame.OperandStack.PopFloat()
	frame.OperandStack.PushFloat(float32(math.Mod(float64(v1), float64(v2))))
	return nil
}

func execDrem(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopDouble()
	v1 := frame.OperandStack.PopDouble()
	frame.OperandStack.PushDouble(math.Mod(v1, v2))
	return nil
}

func execIneg(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(-frame.OperandStack.PopInt())
	return nil
}

func execLneg(frame *rtda.Frame) error {
	frame.OperandStack.PushLong(-frame.OperandStack.PopLong())
	return nil
}

func execFneg(frame *rtda.Frame) error {
	frame.OperandStack.PushFloat(-frame.OperandStack.PopFloat())
	return nil
}

func execDneg(frame *rtda.Frame) error {
	frame.OperandStack.PushDouble(-frame.OperandStack.PopDouble())
	return nil
}

// Shift amounts mask to the low 5 bits for int, low 6 for long (JVMS
// ishl/lshl/...): shifting a 32-bit value by 33 behaves as shifting by 1.
func execIshl(frame *rtda.Frame) error {
	s := frame.OperandStack.PopInt()
	v := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v << (uint32(s) & 0x1f))
	return nil
}

func execLshl(frame *rtda.Frame) error {
	s := frame.OperandStack.PopInt()
	v := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v << (uint32(s) & 0x3f))
	return nil
}

func execIshr(frame *rtda.Frame) error {
	s := frame.OperandStack.PopInt()
	v := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v >> (uint32(s) & 0x1f))
	return nil
}

func execLshr(frame *rtda.Frame) error {
	s := frame.OperandStack.PopInt()
	v := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v >> (uint32(s) & 0x3f))
	return nil
}

func execIushr(frame *rtda.Frame) error {
	s := frame.OperandStack.PopInt()
	v := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(int32(uint32(v) >> (uint32(s) & 0x1f)))
	return nil
}

func execLushr(frame *rtda.Frame) error {
	s := frame.OperandStack.PopInt()
	v := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(int64(uint64(v) >> (uint32(s) & 0x3f)))
	return nil
}

func execIand(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v1 & v2)
	return nil
}

func execLand(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v1 & v2)
	return nil
}

func execIor(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v1 | v2)
	return nil
}

func execLor(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v1 | v2)
	return nil
}

func execIxor(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopInt()
	v1 := frame.OperandStack.PopInt()
	frame.OperandStack.PushInt(v1 ^ v2)
	return nil
}

func execLxor(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	frame.OperandStack.PushLong(v1 ^ v2)
	return nil
}

func execIinc(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	delta := int32(frame.ReadI8())
	frame.LocalVars.SetInt(index, frame.LocalVars.GetInt(index)+delta)
	return nil
}
