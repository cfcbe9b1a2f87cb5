package instructions

import "github.com/daimatz/jvmgo/pkg/rtda"

func execLcmp(frame *rtda.Frame) error {
	v2 := frame.OperandStack.PopLong()
	v1 := frame.OperandStack.PopLong()
	switch {
	case v1 > v2:
		frame.OperandStack.PushInt(1)
	case v1 < v2:
		frame.OperandStack.PushInt(-1)
	default:
		frame.OperandStack.PushInt(0)
	}
	return nil
}

// execFcmp/execDcmp implement fcmpl/fcmpg/dcmpl/dcmpg: identical except
// for which value a NaN operand produces, +1 (the "g" variants) or -1
// (the "l" variants), per JVMS 6.5.fcmp<op>.
func execFcmp(nanIsOne bool) Instruction {
	return func(frame *rtda.Frame) error {
		v2 := frame.OperandStack.PopFloat()
		v1 := frame.OperandStack.PopFloat()
		frame.OperandStack.PushInt(compareFloat(float64(v1), float64(v2), nanIsOne))
		return nil
	}
}

func execDcmp(nanIsOne bool) Instruction {
	return func(frame *rtda.Frame) error {
		v2 := frame.OperandStack.PopDouble()
		v1 := frame.OperandStack.PopDouble()
		frame.OperandStack.PushInt(compareFloat(v1, v2, nanIsOne))
		return nil
	}
}

func compareFloat(v1, v2 float64, nanIsOne bool) int32 {
	if v1 != v1 || v2 != v2 { // either operand is NaN
		if nanIsOne {
			return 1
		}
		return -1
	}
	switch {
	case v1 > v2:
		return 1
	case v1 < v2:
		return -1
	default:
		return 0
	}
}

func execIfCond(cond func(int32) bool) Instruction {
	return func(frame *rtda.Frame) error {
		branchPC := frame.NextPC - 1
		offset := frame.ReadI16()
		v := frame.OperandStack.PopInt()
		if cond(v) {
			frame.NextPC = branchPC + int(offset)
		}
		return nil
	}
}

func execIfICmp(cond func(a, b int32) bool) Instruction {
	return func(frame *rtda.Frame) error {
		branchPC := frame.NextPC - 1
		offset := frame.ReadI16()
		v2 := frame.OperandStack.PopInt()
		v1 := frame.OperandStack.PopInt()
		if cond(v1, v2) {
			frame.NextPC = branchPC + int(offset)
		}
		return nil
	}
}

// execIfACmp implements if_acmpeq (wantEqual=true) and if_acmpne
// (wantEqual=false): reference identity comparison.
func execIfACmp(wantEqual bool) Instruction {
	return func(frame *rtda.Frame) error {
		branchPC := frame.NextPC - 1
		offset := frame.ReadI16()
		v2 := frame.OperandStack.PopRef()
		v1 := frame.OperandStack.PopRef()
		if (v1 == v2) == wantEqual {
			frame.NextPC = branchPC + int(offset)
		}
		return nil
	}
}

// execIfNull implements ifnull (wantNull=true) and ifnonnull (wantNull=false).
func execIfNull(wantNull bool) Instruction {
	return func(frame *rtda.Frame) error {
		branchPC := frame.NextPC - 1
		offset := frame.ReadI16()
		v := frame.OperandStack.PopRef()
		if (v == nil) == wantNull {
			frame.NextPC = branchPC + int(offset)
		}
		return nil
	}
}
