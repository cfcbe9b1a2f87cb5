package rtda

import (
	"errors"
	"testing"

	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/heap"
)

func TestStackPushPopOrder(t *testing.T) {
	method := &heap.Method{MaxLocals: 1, MaxStack: 1}
	s := NewStack(4)

	f1 := NewFrame(method)
	f2 := NewFrame(method)
	if err := s.Push(f1); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := s.Push(f2); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if s.Top() != f2 {
		t.Error("Top should return the most recently pushed frame")
	}
	if popped := s.Pop(); popped != f2 {
		t.Error("Pop should return frames in LIFO order")
	}
	if popped := s.Pop(); popped != f1 {
		t.Error("Pop should return frames in LIFO order")
	}
	if !s.IsEmpty() {
		t.Error("stack should be empty after popping every pushed frame")
	}
}

// TestStackOverflow confirms a Stack that has reached its configured
// maxDepth returns a RuntimeError rather than panicking or silently
// growing, so a deeply recursive but otherwise valid program surfaces
// StackOverflowError through the normal error path (spec section 7
// treats it as a RuntimeException, not an InterpreterBug).
func TestStackOverflow(t *testing.T) {
	method := &heap.Method{MaxLocals: 0, MaxStack: 0}
	s := NewStack(2)
	if err := s.Push(NewFrame(method)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := s.Push(NewFrame(method)); err != nil {
		t.Fatalf("Push: %v", err)
	}

	err := s.Push(NewFrame(method)) // exceeds maxDepth
	if err == nil {
		t.Fatal("expected an error pushing past maxDepth")
	}
	var runtimeErr *vmerrors.RuntimeError
	if !errors.As(err, &runtimeErr) || runtimeErr.Kind != vmerrors.StackOverflow {
		t.Errorf("expected a StackOverflow RuntimeError, got %v", err)
	}
}

func TestThreadCurrentFrameTracksPushPop(t *testing.T) {
	method := &heap.Method{MaxLocals: 1, MaxStack: 1}
	th := NewThread()

	if th.CurrentFrame() != nil {
		t.Error("a fresh thread should have no current frame")
	}

	f := NewFrame(method)
	if err := th.PushFrame(f); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}
	if th.CurrentFrame() != f {
		t.Error("CurrentFrame should return the just-pushed frame")
	}

	th.PopFrame()
	if th.CurrentFrame() != nil {
		t.Error("CurrentFrame should be nil after popping the only frame")
	}
}
