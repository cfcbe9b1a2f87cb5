package instructions

import "github.com/daimatz/jvmgo/pkg/rtda"

func execIload(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.OperandStack.PushInt(frame.LocalVars.GetInt(index))
	return nil
}

func execLload(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.OperandStack.PushLong(frame.LocalVars.GetLong(index))
	return nil
}

func execFload(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.OperandStack.PushFloat(frame.LocalVars.GetFloat(index))
	return nil
}

func execDload(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.OperandStack.PushDouble(frame.LocalVars.GetDouble(index))
	return nil
}

func execAload(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.OperandStack.PushRef(frame.LocalVars.GetRef(index))
	return nil
}

func execIloadN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushInt(frame.LocalVars.GetInt(index))
		return nil
	}
}

func execLloadN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushLong(frame.LocalVars.GetLong(index))
		return nil
	}
}

func execFloadN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushFloat(frame.LocalVars.GetFloat(index))
		return nil
	}
}

func execDloadN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushDouble(frame.LocalVars.GetDouble(index))
		return nil
	}
}

func execAloadN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushRef(frame.LocalVars.GetRef(index))
		return nil
	}
}
