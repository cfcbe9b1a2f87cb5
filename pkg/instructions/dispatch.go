package instructions

import (
	"fmt"

	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// Instruction executes one opcode against frame. It has already fetched
// the opcode byte itself; an Instruction is responsible for fetching
// its own immediate operands from frame before touching the stack, the
// local variables, or the program counter (spec 4.9).
type Instruction func(frame *rtda.Frame) error

var table [256]Instruction

func init() {
	table[OpNop] = execNop

	table[OpAconstNull] = execAconstNull
	table[OpIconstM1] = execIconst(-1)
	table[OpIconst0] = execIconst(0)
	table[OpIconst1] = execIconst(1)
	table[OpIconst2] = execIconst(2)
	table[OpIconst3] = execIconst(3)
	table[OpIconst4] = execIconst(4)
	table[OpIconst5] = execIconst(5)
	table[OpLconst0] = execLconst(0)
	table[OpLconst1] = execLconst(1)
	table[OpFconst0] = execFconst(0)
	table[OpFconst1] = execFconst(1)
	table[OpFconst2] = execFconst(2)
	table[OpDconst0] = execDconst(0)
	table[OpDconst1] = execDconst(1)
	table[OpBipush] = execBipush
	table[OpSipush] = execSipush

	table[OpIload] = execIload
	table[OpLload] = execLload
	table[OpFload] = execFload
	table[OpDload] = execDload
	table[OpAload] = execAload
	table[OpIload0] = execIloadN(0)
	table[OpIload1] = execIloadN(1)
	table[OpIload2] = execIloadN(2)
	table[OpIload3] = execIloadN(3)
	table[OpLload0] = execLloadN(0)
	table[OpLload1] = execLloadN(1)
	table[OpLload2] = execLloadN(2)
	table[OpLload3] = execLloadN(3)
	table[OpFload0] = execFloadN(0)
	table[OpFload1] = execFloadN(1)
	table[OpFload2] = execFloadN(2)
	table[OpFload3] = execFloadN(3)
	table[OpDload0] = execDloadN(0)
	table[OpDload1] = execDloadN(1)
	table[OpDload2] = execDloadN(2)
	table[OpDload3] = execDloadN(3)
	table[OpAload0] = execAloadN(0)
	table[OpAload1] = execAloadN(1)
	table[OpAload2] = execAloadN(2)
	table[OpAload3] = execAloadN(3)

	table[OpIstore] = execIstore
	table[OpLstore] = execLstore
	table[OpFstore] = execFstore
	table[OpDstore] = execDstore
	table[OpAstore] = execAstore
	table[OpIstore0] = execIstoreN(0)
	table[OpIstore1] = execIstoreN(1)
	table[OpIstore2] = execIstoreN(2)
	table[OpIstore3] = execIstoreN(3)
	table[OpLstore0] = execLstoreN(0)
	table[OpLstore1] = execLstoreN(1)
	table[OpLstore2] = execLstoreN(2)
	table[OpLstore3] = execLstoreN(3)
	table[OpFstore0] = execFstoreN(0)
	table[OpFstore1] = execFstoreN(1)
	table[OpFstore2] = execFstoreN(2)
	table[OpFstore3] = execFstoreN(3)
	table[OpDstore0] = execDstoreN(0)
	table[OpDstore1] = execDstoreN(1)
	table[OpDstore2] = execDstoreN(2)
	table[OpDstore3] = execDstoreN(3)
	table[OpAstore0] = execAstoreN(0)
	table[OpAstore1] = execAstoreN(1)
	table[OpAstore2] = execAstoreN(2)
	table[OpAstore3] = execAstoreN(3)

	table[OpPop] = execPop
	table[OpPop2] = execPop2
	table[OpDup] = execDup
	table[OpDupX1] = execDupX1
	table[OpDupX2] = execDupX2
	table[OpDup2] = execDup2
	table[OpDup2X1] = execDup2X1
	table[OpDup2X2] = execDup2X2
	table[OpSwap] = execSwap

	table[OpIadd] = execIadd
	table[OpLadd] = execLadd
	table[OpFadd] = execFadd
	table[OpDadd] = execDadd
	table[OpIsub] = execIsub
	table[OpLsub] = execLsub
	table[OpFsub] = execFsub
	table[OpDsub] = execDsub
	table[OpImul] = execImul
	table[OpLmul] = execLmul
	table[OpFmul] = execFmul
	table[OpDmul] = execDmul
	table[OpIdiv] = execIdiv
	table[OpLdiv] = execLdiv
	table[OpFdiv] = execFdiv
	table[OpDdiv] = execDdiv
	table[OpIrem] = execIrem
	table[OpLrem] = execLrem
	table[OpFrem] = execFrem
	table[OpDrem] = execDrem
	table[OpIneg] = execIneg
	table[OpLneg] = execLneg
	table[OpFneg] = execFneg
	table[OpDneg] = execDneg
	table[OpIshl] = execIshl
	table[OpLshl] = execLshl
	table[OpIshr] = execIshr
	table[OpLshr] = execLshr
	table[OpIushr] = execIushr
	table[OpLushr] = execLushr
	table[OpIand] = execIand
	table[OpLand] = execLand
	table[OpIor] = execIor
	table[OpLor] = execLor
	table[OpIxor] = execIxor
	table[OpLxor] = execLxor
	table[OpIinc] = execIinc

	table[OpI2l] = execI2l
	table[OpI2f] = execI2f
	table[OpI2d] = execI2d
	table[OpL2i] = execL2i
	table[OpL2f] = execL2f
	table[OpL2d] = execL2d
	table[OpF2i] = execF2i
	table[OpF2l] = execF2l
	table[OpF2d] = execF2d
	table[OpD2i] = execD2i
	table[OpD2l] = execD2l
	table[OpD2f] = execD2f
	table[OpI2b] = execI2b
	table[OpI2c] = execI2c
	table[OpI2s] = execI2s

	table[OpLcmp] = execLcmp
	table[OpFcmpl] = execFcmp(false)
	table[OpFcmpg] = execFcmp(true)
	table[OpDcmpl] = execDcmp(false)
	table[OpDcmpg] = execDcmp(true)

	table[OpIfeq] = execIfCond(func(v int32) bool { return v == 0 })
	table[OpIfne] = execIfCond(func(v int32) bool { return v != 0 })
	table[OpIflt] = execIfCond(func(v int32) bool { return v < 0 })
	table[OpIfge] = execIfCond(func(v int32) bool { return v >= 0 })
	table[OpIfgt] = execIfCond(func(v int32) bool { return v > 0 })
	table[OpIfle] = execIfCond(func(v int32) bool { return v <= 0 })

	table[OpIfIcmpeq] = execIfICmp(func(a, b int32) bool { return a == b })
	table[OpIfIcmpne] = execIfICmp(func(a, b int32) bool { return a != b })
	table[OpIfIcmplt] = execIfICmp(func(a, b int32) bool { return a < b })
	table[OpIfIcmpge] = execIfICmp(func(a, b int32) bool { return a >= b })
	table[OpIfIcmpgt] = execIfICmp(func(a, b int32) bool { return a > b })
	table[OpIfIcmple] = execIfICmp(func(a, b int32) bool { return a <= b })
	table[OpIfAcmpeq] = execIfACmp(true)
	table[OpIfAcmpne] = execIfACmp(false)
	table[OpIfnull] = execIfNull(true)
	table[OpIfnonnull] = execIfNull(false)

	table[OpGoto] = execGoto
	table[OpGotoW] = execGotoW
	table[OpTableswitch] = execTableswitch
	table[OpLookupswitch] = execLookupswitch

	table[OpIreturn] = execReturn(1, false)
	table[OpFreturn] = execReturn(1, false)
	table[OpAreturn] = execReturn(1, true)
	table[OpLreturn] = execReturn(2, false)
	table[OpDreturn] = execReturn(2, false)
	table[OpReturn] = execReturnVoid

	table[OpPutstatic] = execPutstatic
	table[OpGetfield] = execGetfield
	table[OpPutfield] = execPutfield

	table[OpNew] = execNew
	table[OpInstanceof] = execInstanceof
	table[OpCheckcast] = execCheckcast

	table[OpWide] = execWide
}

// Execute dispatches the opcode at pc against frame. It fetches opcode
// from frame.Method.Code[pc] and sets frame.NextPC to pc+1 itself, so
// callers don't duplicate that logic. An opcode with no table entry
// panics with an InterpreterBug.
func Execute(pc int, frame *rtda.Frame) error {
	opcode := frame.Method.Code[pc]
	frame.NextPC = pc + 1
	handler := table[opcode]
	if handler == nil {
		panic(&vmerrors.InterpreterBug{Detail: fmt.Sprintf("unimplemented or out-of-scope opcode 0x%02X at pc=%d", opcode, pc)})
	}
	return handler(frame)
}

func execNop(frame *rtda.Frame) error { return nil }

func execAconstNull(frame *rtda.Frame) error {
	frame.OperandStack.PushRef(nil)
	return nil
}

func execIconst(v int32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushInt(v)
		return nil
	}
}

func execLconst(v int64) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushLong(v)
		return nil
	}
}

func execFconst(v float32) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushFloat(v)
		return nil
	}
}

func execDconst(v float64) Instruction {
	return func(frame *rtda.Frame) error {
		frame.OperandStack.PushDouble(v)
		return nil
	}
}

func execBipush(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(int32(frame.ReadI8()))
	return nil
}

func execSipush(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(int32(frame.ReadI16()))
	return nil
}
