package interpreter

import (
	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/gfunction"
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// execGetstatic resolves the field through heap.ResolveField and pushes
// its static slot(s) the way pkg/instructions' pushFieldValue does for
// the other field opcodes, but checks gfunction's static field registry first (java/lang/System.out
// and .err) the same way invoke* dispatch checks Lookup before resolving
// a symbolic reference's declaring class: System is never loaded for real,
// so its two stream fields have nothing to resolve against.
func execGetstatic(frame *rtda.Frame) error {
	index := frame.ReadU16()
	entry, err := frame.Method.Class.ConstantPool.At(index)
	if err != nil {
		return err
	}
	fc, ok := entry.(*heap.FieldRefConstant)
	if !ok {
		return &vmerrors.MalformedClassFile{Reason: "fieldref operand does not name a field"}
	}

	if obj, ok := gfunction.StaticField(fc.Ref.ClassName, fc.Ref.Name); ok {
		frame.OperandStack.PushRef(obj)
		return nil
	}

	field, err := heap.ResolveField(frame.Method.Class, fc.Ref)
	if err != nil {
		return err
	}
	backing := field.Class.StaticVars.Slots
	frame.OperandStack.PushSlot(backing[field.SlotID])
	if field.Descriptor == "J" || field.Descriptor == "D" {
		frame.OperandStack.PushSlot(backing[field.SlotID+1])
	}
	return nil
}
