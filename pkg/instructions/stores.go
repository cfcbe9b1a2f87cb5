package instructions

import "github.com/daimatz/jvmgo/pkg/rtda"

func execIstore(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.LocalVars.SetInt(index, frame.OperandStack.PopInt())
	return nil
}

func execLstore(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.LocalVars.SetLong(index, frame.OperandStack.PopLong())
	return nil
}

func execFstore(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.LocalVars.SetFloat(index, frame.OperandStack.PopFloat())
	return nil
}

func execDstore(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.LocalVars.SetDouble(index, frame.OperandStack.PopDouble())
	return nil
}

func execAstore(frame *rtda.Frame) error {
	index := uint32(frame.ReadU8())
	frame.LocalVars.SetRef(index, frame.OperandStack.PopRef())
	return nil
}

func execIstoreN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.LocalVars.SetInt(index, frame.OperandStack.PopInt())
		return nil
	}
}

func execLstoreN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.LocalVars.SetLong(index, frame.OperandStack.PopLong())
		return nil
	}
}

func execFstoreN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.LocalVars.SetFloat(index, frame.OperandStack.PopFloat())
		return nil
	}
}

func execDstoreN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.LocalVars.SetDouble(index, frame.OperandStack.PopDouble())
		return nil
	}
}

func execAstoreN(index uint32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.LocalVars.SetRef(index, frame.OperandStack.PopRef())
		return nil
	}
}
