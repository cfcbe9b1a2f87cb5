package interpreter

import (
	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// execLdc handles ldc and ldc_w: push a constant pool entry's runtime
// value, allocating (and interning) a java/lang/String instance for a
// String constant and a lightweight java/lang/Class stand-in for a
// class literal (JVMS ldc/ldc_w).
func execLdc(frame *rtda.Frame, index uint16) error {
	entry, err := frame.Method.Class.ConstantPool.At(index)
	if err != nil {
		return err
	}

	switch c := entry.(type) {
	case *heap.IntegerConstant:
		frame.OperandStack.PushInt(c.Value)
	case *heap.FloatConstant:
		frame.OperandStack.PushFloat(c.Value)
	case *heap.StringConstant:
		str, err := frame.Method.Class.Loader.InternString(c.Value)
		if err != nil {
			return err
		}
		frame.OperandStack.PushRef(str)
	case *heap.ClassRef:
		class, err := frame.Method.Class.ConstantPool.ClassRefAt(index, frame.Method.Class.Loader, frame.Method.Class)
		if err != nil {
			return err
		}
		classObj, err := classLiteral(frame.Method.Class.Loader, class)
		if err != nil {
			return err
		}
		frame.OperandStack.PushRef(classObj)
	default:
		return &vmerrors.MalformedClassFile{Reason: "ldc operand is not a loadable constant"}
	}
	return nil
}

// execLdc2W handles ldc2_w, the wide-index long/double counterpart
// (JVMS ldc2_w). Unlike ldc it has no narrow-index form and never
// targets a String or Class constant.
func execLdc2W(frame *rtda.Frame) error {
	index := frame.ReadU16()
	entry, err := frame.Method.Class.ConstantPool.At(index)
	if err != nil {
		return err
	}

	switch c := entry.(type) {
	case *heap.LongConstant:
		frame.OperandStack.PushLong(c.Value)
	case *heap.DoubleConstant:
		frame.OperandStack.PushDouble(c.Value)
	default:
		return &vmerrors.MalformedClassFile{Reason: "ldc2_w operand is not a long or double constant"}
	}
	return nil
}

// classLiteral builds the java/lang/Class stand-in a class literal
// evaluates to. A real Class object carries far more than a name, but
// nothing in this core reflects on one beyond identity and getName, so
// reusing the String field for the represented class's name avoids
// inventing a second heap representation just for this.
func classLiteral(loader *heap.ClassLoader, represented *heap.Class) (*heap.Object, error) {
	classClass, err := loader.LoadClass("java/lang/Class")
	if err != nil {
		return nil, err
	}
	return &heap.Object{Class: classClass, Fields: heap.NewSlots(classClass.InstanceSlotCount), Str: represented.Name, HasStr: true}, nil
}
