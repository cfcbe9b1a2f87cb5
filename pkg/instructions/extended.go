package instructions

import (
	"fmt"

	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// execWide implements the wide prefix (JVMS 6.5.wide): the next opcode's
// local variable index, normally a single byte, is read as u16 instead,
// and wide iinc additionally reads its increment as an i16 rather than
// an i8. Everything else about the wrapped instruction is unchanged.
func execWide(frame *rtda.Frame) error {
	opcode := frame.ReadU8()
	switch opcode {
	case OpIload:
		index := uint32(frame.ReadU16())
		frame.OperandStack.PushInt(frame.LocalVars.GetInt(index))
	case OpLload:
		index := uint32(frame.ReadU16())
		frame.OperandStack.PushLong(frame.LocalVars.GetLong(index))
	case OpFload:
		index := uint32(frame.ReadU16())
		frame.OperandStack.PushFloat(frame.LocalVars.GetFloat(index))
	case OpDload:
		index := uint32(frame.ReadU16())
		frame.OperandStack.PushDouble(frame.LocalVars.GetDouble(index))
	case OpAload:
		index := uint32(frame.ReadU16())
		frame.OperandStack.PushRef(frame.LocalVars.GetRef(index))
	case OpIstore:
		index := uint32(frame.ReadU16())
		frame.LocalVars.SetInt(index, frame.OperandStack.PopInt())
	case OpLstore:
		index := uint32(frame.ReadU16())
		frame.LocalVars.SetLong(index, frame.OperandStack.PopLong())
	case OpFstore:
		index := uint32(frame.ReadU16())
		frame.LocalVars.SetFloat(index, frame.OperandStack.PopFloat())
	case OpDstore:
		index := uint32(frame.ReadU16())
		frame.LocalVars.SetDouble(index, frame.OperandStack.PopDouble())
	case OpAstore:
		index := uint32(frame.ReadU16())
		frame.LocalVars.SetRef(index, frame.OperandStack.PopRef())
	case OpIinc:
		index := uint32(frame.ReadU16())
		delta := int32(frame.ReadI16())
		frame.LocalVars.SetInt(index, frame.LocalVars.GetInt(index)+delta)
	default:
		panic(&vmerrors.InterpreterBug{Detail: fmt.Sprintf("wide does not support opcode 0x%02X", opcode)})
	}
	return nil
}
