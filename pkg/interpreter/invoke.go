package interpreter

import (
	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/gfunction"
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// tryShim checks gfunction's registry for a call site's (class, name,
// descriptor) before any symbolic resolution is attempted, and if one
// is registered, pops the call's arguments and receiver straight off
// the caller's operand stack and runs it. Shimmed classes (PrintStream,
// StringBuilder, the boxed wrapper types, String) never need to be
// resolved or loaded at all for a call gfunction recognizes, which is
// what lets them work without a real java.base on the classpath.
func tryShim(frame *rtda.Frame, ref *heap.MemberRef, isStatic bool) (bool, error) {
	native, ok := gfunction.Lookup(ref.ClassName, ref.Name, ref.Descriptor)
	if !ok {
		return false, nil
	}
	params, total, err := scanParams(ref.Descriptor)
	if err != nil {
		return true, err
	}
	args := popArgs(frame, params, total)
	if !isStatic {
		receiver := frame.OperandStack.PopRef()
		if receiver == nil {
			return true, &vmerrors.RuntimeError{Kind: vmerrors.NullPointer}
		}
		args = append(heap.Slots{{Ref: receiver}}, args...)
	}
	ret, err := native(frame.Method.Class.Loader, args)
	if err != nil {
		return true, err
	}
	if !isVoidReturn(ref.Descriptor) {
		for _, s := range ret {
			frame.OperandStack.PushSlot(s)
		}
	}
	return true, nil
}

func methodRefAt(frame *rtda.Frame, index uint16) (*heap.MemberRef, bool, error) {
	entry, err := frame.Method.Class.ConstantPool.At(index)
	if err != nil {
		return nil, false, err
	}
	switch c := entry.(type) {
	case *heap.MethodRefConstant:
		return c.Ref, false, nil
	case *heap.InterfaceMethodRefConstant:
		return c.Ref, true, nil
	default:
		return nil, false, &vmerrors.MalformedClassFile{Reason: "methodref operand does not name a method"}
	}
}

// execInvokestatic resolves and calls a static method, with no receiver
// (JVMS 5.4.3.3, spec 4.5). It does not run the declaring class's
// static initializer before the call.
func execInvokestatic(thread *rtda.Thread, frame *rtda.Frame) error {
	index := frame.ReadU16()
	ref, isInterfaceRef, err := methodRefAt(frame, index)
	if err != nil {
		return err
	}
	if handled, err := tryShim(frame, ref, true); handled {
		return err
	}
	var method *heap.Method
	if isInterfaceRef {
		method, err = heap.ResolveInterfaceMethod(frame.Method.Class, ref)
	} else {
		method, err = heap.ResolveMethod(frame.Method.Class, ref)
	}
	if err != nil {
		return err
	}

	params, total, err := scanParams(method.Descriptor)
	if err != nil {
		return err
	}
	args := popArgs(frame, params, total)
	return invokeResolved(thread, frame, method, nil, args)
}

// execInvokespecial calls a constructor, a private method, or a
// superclass method exactly as resolved, without virtual dispatch
// (JVMS 5.4.3.3, invokespecial's whole reason for existing).
func execInvokespecial(thread *rtda.Thread, frame *rtda.Frame) error {
	index := frame.ReadU16()
	ref, _, err := methodRefAt(frame, index)
	if err != nil {
		return err
	}
	if handled, err := tryShim(frame, ref, false); handled {
		return err
	}
	method, err := heap.ResolveMethod(frame.Method.Class, ref)
	if err != nil {
		return err
	}

	params, total, err := scanParams(method.Descriptor)
	if err != nil {
		return err
	}
	args := popArgs(frame, params, total)
	receiver := frame.OperandStack.PopRef()
	if receiver == nil {
		return &vmerrors.RuntimeError{Kind: vmerrors.NullPointer}
	}
	return invokeResolved(thread, frame, method, receiver, args)
}

// execInvokevirtual resolves the call's static target for access
// checking, then re-selects the actual method to run from the
// receiver's runtime class (JVMS 5.4.6's virtual method selection).
func execInvokevirtual(thread *rtda.Thread, frame *rtda.Frame) error {
	index := frame.ReadU16()
	ref, _, err := methodRefAt(frame, index)
	if err != nil {
		return err
	}
	if handled, err := tryShim(frame, ref, false); handled {
		return err
	}
	resolved, err := heap.ResolveMethod(frame.Method.Class, ref)
	if err != nil {
		return err
	}

	params, total, err := scanParams(resolved.Descriptor)
	if err != nil {
		return err
	}
	args := popArgs(frame, params, total)
	receiver := frame.OperandStack.PopRef()
	if receiver == nil {
		return &vmerrors.RuntimeError{Kind: vmerrors.NullPointer}
	}

	method := heap.FindVirtualMethod(receiver.Class, resolved.Name, resolved.Descriptor)
	if method == nil {
		method = resolved
	}
	return invokeResolved(thread, frame, method, receiver, args)
}

// execInvokeinterface is invokevirtual's counterpart for a statically
// typed interface reference; count and the reserved byte are part of
// the instruction's fixed encoding but carry no information the
// interpreter needs (JVMS 6.5.invokeinterface).
func execInvokeinterface(thread *rtda.Thread, frame *rtda.Frame) error {
	index := frame.ReadU16()
	frame.ReadU8() // count
	frame.ReadU8() // reserved, must be 0

	ref, _, err := methodRefAt(frame, index)
	if err != nil {
		return err
	}
	if handled, err := tryShim(frame, ref, false); handled {
		return err
	}
	resolved, err := heap.ResolveInterfaceMethod(frame.Method.Class, ref)
	if err != nil {
		return err
	}

	params, total, err := scanParams(resolved.Descriptor)
	if err != nil {
		return err
	}
	args := popArgs(frame, params, total)
	receiver := frame.OperandStack.PopRef()
	if receiver == nil {
		return &vmerrors.RuntimeError{Kind: vmerrors.NullPointer}
	}

	method := heap.FindVirtualMethod(receiver.Class, resolved.Name, resolved.Descriptor)
	if method == nil {
		method = resolved
	}
	return invokeResolved(thread, frame, method, receiver, args)
}

// invokeResolved dispatches a fully resolved method: a native method
// runs synchronously and pushes its result straight onto the caller's
// operand stack, while a method with bytecode gets a fresh Frame pushed
// onto thread so the interpreter loop picks it up on its next
// iteration (spec 4.9's "execute may push/pop frames").
func invokeResolved(thread *rtda.Thread, caller *rtda.Frame, method *heap.Method, receiver *heap.Object, args heap.Slots) error {
	if method.IsAbstract() {
		return &vmerrors.LinkageError{Kind: vmerrors.IncompatibleClassChange, Detail: "abstract method " + method.Class.Name + "." + method.Name + " has no implementation"}
	}

	if method.IsNative() {
		native, ok := gfunction.Lookup(method.Class.Name, method.Name, method.Descriptor)
		if !ok {
			return &vmerrors.InterpreterBug{Detail: "native method not implemented: " + method.Class.Name + "." + method.Name + method.Descriptor}
		}
		fullArgs := args
		if receiver != nil {
			fullArgs = append(heap.Slots{{Ref: receiver}}, args...)
		}
		ret, err := native(method.Class.Loader, fullArgs)
		if err != nil {
			return err
		}
		if !isVoidReturn(method.Descriptor) {
			for _, s := range ret {
				caller.OperandStack.PushSlot(s)
			}
		}
		return nil
	}

	callee := rtda.NewFrame(method)
	var slot uint32
	if receiver != nil {
		callee.LocalVars.SetRef(0, receiver)
		slot = 1
	}
	for i, s := range args {
		callee.LocalVars.SetSlot(slot+uint32(i), s)
	}
	return thread.PushFrame(callee)
}
