// Package interpreter drives the fetch-decode-execute loop over a
// Thread's frame stack (spec 4.9), filling in the handful of opcodes
// pkg/instructions leaves to a caller that owns frame creation: the
// invoke* family, ldc/ldc_w/ldc2_w, and getstatic (which needs a look
// at gfunction's shimmed static fields before falling back to
// heap.ResolveField, the resolution pkg/instructions uses for the other
// field opcodes).
package interpreter

import (
	"fmt"

	"github.com/daimatz/jvmgo/pkg/instructions"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// Run executes thread until its frame stack empties, returning the
// first error any instruction raises. A raised RuntimeError or
// LinkageError aborts the run rather than searching an exception
// table; athrow and the exception-table subsystem are a follow-up
// (spec 7's propagation policy).
func Run(thread *rtda.Thread) error {
	for !thread.IsStackEmpty() {
		frame := thread.CurrentFrame()
		pc := frame.NextPC
		opcode := frame.Method.Code[pc]

		var err error
		switch opcode {
		case instructions.OpInvokevirtual:
			frame.NextPC = pc + 1
			err = execInvokevirtual(thread, frame)
		case instructions.OpInvokespecial:
			frame.NextPC = pc + 1
			err = execInvokespecial(thread, frame)
		case instructions.OpInvokestatic:
			frame.NextPC = pc + 1
			err = execInvokestatic(thread, frame)
		case instructions.OpInvokeinterface:
			frame.NextPC = pc + 1
			err = execInvokeinterface(thread, frame)
		case instructions.OpLdc:
			frame.NextPC = pc + 1
			err = execLdc(frame, uint16(frame.ReadU8()))
		case instructions.OpLdcW:
			frame.NextPC = pc + 1
			err = execLdc(frame, frame.ReadU16())
		case instructions.OpLdc2W:
			frame.NextPC = pc + 1
			err = execLdc2W(frame)
		case instructions.OpGetstatic:
			frame.NextPC = pc + 1
			err = execGetstatic(frame)
		default:
			err = instructions.Execute(pc, frame)
		}
		if err != nil {
			return fmt.Errorf("%s.%s%s at pc=%d: %w", frame.Method.Class.Name, frame.Method.Name, frame.Method.Descriptor, pc, err)
		}

		top := thread.CurrentFrame()
		if top != nil && top.Returned {
			thread.PopFrame()
			if !thread.IsStackEmpty() {
				caller := thread.CurrentFrame()
				for _, s := range top.ReturnValue {
					caller.OperandStack.PushSlot(s)
				}
			}
		}
	}
	return nil
}
