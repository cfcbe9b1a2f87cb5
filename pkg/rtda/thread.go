package rtda

import "github.com/daimatz/jvmgo/internal/vmerrors"

// Stack is a bounded LIFO of Frames: one per thread, sized at thread
// creation (the --xss flag's max_stack_depth, spec 3.5). Pushing past
// the bound raises StackOverflow rather than growing, the same
// fixed-capacity discipline the operand stack and local variables use.
type Stack struct {
	top      *Frame
	size     int
	maxDepth int
}

func NewStack(maxDepth int) *Stack {
	return &Stack{maxDepth: maxDepth}
}

func (s *Stack) Push(f *Frame) error {
	if s.size >= s.maxDepth {
		return &vmerrors.RuntimeError{Kind: vmerrors.StackOverflow}
	}
	f.lower = s.top
	s.top = f
	s.size++
	return nil
}

func (s *Stack) Pop() *Frame {
	if s.top == nil {
		panic(&vmerrors.InterpreterBug{Detail: "frame stack underflow"})
	}
	f := s.top
	s.top = f.lower
	f.lower = nil
	s.size--
	return f
}

func (s *Stack) Top() *Frame {
	return s.top
}

func (s *Stack) IsEmpty() bool {
	return s.top == nil
}

func (s *Stack) Depth() int {
	return s.size
}

// Thread is a single (cooperatively scheduled) execution context: its
// call stack of Frames plus accessors to push, pop and read the current
// frame (spec 3.6, 4.9). Thread keeps no program counter of its own;
// each Frame's NextPC is the only one.
type Thread struct {
	stack *Stack
}

// DefaultMaxStackDepth is used when a caller doesn't size a Thread's
// frame stack explicitly (the --xss flag's default).
const DefaultMaxStackDepth = 1024

func NewThread() *Thread {
	return &Thread{stack: NewStack(DefaultMaxStackDepth)}
}

func NewThreadWithStackDepth(maxDepth int) *Thread {
	return &Thread{stack: NewStack(maxDepth)}
}

func (t *Thread) PushFrame(f *Frame) error {
	return t.stack.Push(f)
}

func (t *Thread) PopFrame() *Frame {
	return t.stack.Pop()
}

func (t *Thread) CurrentFrame() *Frame {
	return t.stack.Top()
}

func (t *Thread) IsStackEmpty() bool {
	return t.stack.IsEmpty()
}

func (t *Thread) StackDepth() int {
	return t.stack.Depth()
}
