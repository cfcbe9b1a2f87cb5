package instructions

import (
	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// fieldRefAt resolves a getfield/putfield/putstatic operand's constant
// pool index down to the Field it names, starting from the frame's own
// declaring class. getstatic is handled by pkg/interpreter instead,
// since it needs a look at gfunction's shimmed static fields first.
func fieldRefAt(frame *rtda.Frame, index uint16) (*heap.Field, error) {
	class := frame.Method.Class
	entry, err := class.ConstantPool.At(index)
	if err != nil {
		return nil, err
	}
	fc, ok := entry.(*heap.FieldRefConstant)
	if !ok {
		return nil, &vmerrors.MalformedClassFile{Reason: "fieldref operand does not name a field"}
	}
	return heap.ResolveField(class, fc.Ref)
}

func execPutstatic(frame *rtda.Frame) error {
	index := frame.ReadU16()
	field, err := fieldRefAt(frame, index)
	if err != nil {
		return err
	}
	popFieldValue(frame, field, field.Class.StaticVars.Slots)
	return nil
}

func execGetfield(frame *rtda.Frame) error {
	index := frame.ReadU16()
	field, err := fieldRefAt(frame, index)
	if err != nil {
		return err
	}
	obj := frame.OperandStack.PopRef()
	if obj == nil {
		return &vmerrors.RuntimeError{Kind: vmerrors.NullPointer}
	}
	pushFieldValue(frame, field, obj.Fields)
	return nil
}

func execPutfield(frame *rtda.Frame) error {
	index := frame.ReadU16()
	field, err := fieldRefAt(frame, index)
	if err != nil {
		return err
	}
	isWide := field.Descriptor == "J" || field.Descriptor == "D"
	var high, low heap.Slot
	if isWide {
		high = frame.OperandStack.PopSlot()
		low = frame.OperandStack.PopSlot()
	} else {
		low = frame.OperandStack.PopSlot()
	}
	obj := frame.OperandStack.PopRef()
	if obj == nil {
		return &vmerrors.RuntimeError{Kind: vmerrors.NullPointer}
	}
	obj.SetFieldValue(field, low)
	if isWide {
		obj.Fields[field.SlotID+1] = high
	}
	return nil
}

// pushFieldValue/popFieldValue read or write a field's slot(s) against
// whichever backing array holds it, an object's Fields for an instance
// field or a class's StaticVars for a static one, as a single
// category-1 slot or as a high/low pair for long/double fields.
func pushFieldValue(frame *rtda.Frame, field *heap.Field, backing heap.Slots) {
	frame.OperandStack.PushSlot(backing[field.SlotID])
	if field.Descriptor == "J" || field.Descriptor == "D" {
		frame.OperandStack.PushSlot(backing[field.SlotID+1])
	}
}

func popFieldValue(frame *rtda.Frame, field *heap.Field, backing heap.Slots) {
	if field.Descriptor == "J" || field.Descriptor == "D" {
		high := frame.OperandStack.PopSlot()
		low := frame.OperandStack.PopSlot()
		backing[field.SlotID] = low
		backing[field.SlotID+1] = high
		return
	}
	backing[field.SlotID] = frame.OperandStack.PopSlot()
}

func execNew(frame *rtda.Frame) error {
	index := frame.ReadU16()
	class, err := heap.ResolveClass(frame.Method.Class, index)
	if err != nil {
		return err
	}
	if class.IsInterface() || class.IsAbstract() {
		return &vmerrors.RuntimeError{Kind: vmerrors.Instantiation, Detail: class.Name}
	}
	frame.OperandStack.PushRef(heap.NewObject(class))
	return nil
}

func execInstanceof(frame *rtda.Frame) error {
	index := frame.ReadU16()
	class, err := heap.ResolveClass(frame.Method.Class, index)
	if err != nil {
		return err
	}
	obj := frame.OperandStack.PopRef()
	frame.OperandStack.PushBoolean(obj.IsInstanceOf(class))
	return nil
}

func execCheckcast(frame *rtda.Frame) error {
	index := frame.ReadU16()
	class, err := heap.ResolveClass(frame.Method.Class, index)
	if err != nil {
		return err
	}
	obj := frame.OperandStack.PopRef()
	if obj != nil && !obj.IsInstanceOf(class) {
		return &vmerrors.RuntimeError{Kind: vmerrors.ClassCast, Detail: obj.Class.Name + " cannot be cast to " + class.Name}
	}
	frame.OperandStack.PushRef(obj)
	return nil
}
