package interpreter

import (
	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// paramInfo locates one formal parameter within the slot-indexed
// argument layout a method's local variables start with: offset is
// where it begins (0-based, not yet shifted for an implicit `this`),
// width is 1 for everything except long/double, and isRef marks object
// and array parameters so they pop off the operand stack via PopRef
// rather than PopSlot.
type paramInfo struct {
	offset uint32
	width  int
	isRef  bool
}

// scanParams walks a method descriptor's parameter list left to right,
// assigning each parameter the slot offset it will occupy in the callee's
// local variables. total is the number of slots every parameter
// together needs.
func scanParams(descriptor string) (params []paramInfo, total uint32, err error) {
	i := 1 // skip '('
	var offset uint32
	for i < len(descriptor) && descriptor[i] != ')' {
		isRef, size, err := paramKind(descriptor, i)
		if err != nil {
			return nil, 0, err
		}
		width := 1
		if !isRef && (descriptor[i] == 'J' || descriptor[i] == 'D') {
			width = 2
		}
		params = append(params, paramInfo{offset: offset, width: width, isRef: isRef})
		offset += uint32(width)
		i += size
	}
	return params, offset, nil
}

// paramKind reports whether the parameter starting at descriptor[i] is
// a reference type (object or array) and how many descriptor bytes it
// occupies.
func paramKind(descriptor string, i int) (isRef bool, size int, err error) {
	switch descriptor[i] {
	case 'B', 'C', 'F', 'I', 'S', 'Z', 'J', 'D':
		return false, 1, nil
	case 'L':
		j := i
		for j < len(descriptor) && descriptor[j] != ';' {
			j++
		}
		if j >= len(descriptor) {
			return false, 0, &vmerrors.MalformedClassFile{Reason: "unterminated object type in descriptor " + descriptor}
		}
		return true, j - i + 1, nil
	case '[':
		j := i
		for j < len(descriptor) && descriptor[j] == '[' {
			j++
		}
		if j >= len(descriptor) {
			return false, 0, &vmerrors.MalformedClassFile{Reason: "truncated array type in descriptor " + descriptor}
		}
		_, elemSize, err := paramKind(descriptor, j)
		if err != nil {
			return false, 0, err
		}
		return true, j - i + elemSize, nil
	default:
		return false, 0, &vmerrors.MalformedClassFile{Reason: "invalid type descriptor in " + descriptor}
	}
}

// isVoidReturn reports whether a method descriptor's return type is V.
func isVoidReturn(descriptor string) bool {
	for i := len(descriptor) - 1; i >= 0; i-- {
		if descriptor[i] == ')' {
			return descriptor[i+1:] == "V"
		}
	}
	return false
}

// popArgs pops a call's arguments off the caller frame's operand stack,
// in descriptor order, into a freshly sized Slots buffer laid out the
// way the callee's local variables expect them to start (spec 4.8's
// invoke* family: arguments are pushed left to right, so the last
// parameter is popped first).
func popArgs(frame *rtda.Frame, params []paramInfo, total uint32) heap.Slots {
	args := heap.NewSlots(total)
	for i := len(params) - 1; i >= 0; i-- {
		p := params[i]
		switch {
		case p.width == 2:
			high := frame.OperandStack.PopSlot()
			low := frame.OperandStack.PopSlot()
			args[p.offset] = low
			args[p.offset+1] = high
		case p.isRef:
			args[p.offset] = heap.Slot{Ref: frame.OperandStack.PopRef()}
		default:
			args[p.offset] = frame.OperandStack.PopSlot()
		}
	}
	return args
}
